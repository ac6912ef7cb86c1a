// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/smartcolors/colordef"
	"github.com/bitmark-inc/smartcolors/colorproof"
	"github.com/bitmark-inc/smartcolors/ledger"
	"github.com/bitmark-inc/smartcolors/proofio"
)

func runDecodeColorDef(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName := c.Args().Get(0)
	if "" == fileName {
		return fmt.Errorf("missing colordef FILE argument")
	}
	fh, err := os.Open(fileName)
	if nil != err {
		return err
	}
	defer fh.Close()

	def, err := proofio.ReadColorDef(fh)
	if nil != err {
		return err
	}

	stegKey := def.StegKey()
	fmt.Fprintf(m.w, "colordef:  %s\n", def.Hash())
	fmt.Fprintf(m.w, "version:   %d\n", def.Version())
	fmt.Fprintf(m.w, "birthdate: %d\n", def.Birthdate())
	fmt.Fprintf(m.w, "stegkey:   %x\n", stegKey)
	fmt.Fprintf(m.w, "total issuance: %d\n", def.TotalIssuance())

	fmt.Fprintf(m.w, "genesis outpoints:\n")
	def.EachGenesisOutPoint(func(g colordef.GenesisOutPoint) bool {
		fmt.Fprintf(m.w, "    %s %d\n", g.OutPoint, g.Qty)
		return true
	})

	fmt.Fprintf(m.w, "genesis scriptPubKeys:\n")
	def.EachGenesisScript(func(script ledger.Script) bool {
		fmt.Fprintf(m.w, "    %s\n", script)
		return true
	})
	return nil
}

func runDecodeProof(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName := c.Args().Get(0)
	if "" == fileName {
		return fmt.Errorf("missing proof FILE argument")
	}
	fh, err := os.Open(fileName)
	if nil != err {
		return err
	}
	defer fh.Close()

	proof, err := proofio.ReadProof(fh)
	if nil != err {
		return err
	}

	printProof(m, proof, "")
	return nil
}

// recursively print a proof and its subproofs
func printProof(m *metadata, proof colorproof.ColorProof, indent string) {
	fmt.Fprintf(m.w, "%sproof:    %s\n", indent, proof.Hash())
	fmt.Fprintf(m.w, "%stype:     %s\n", indent, proofTypeName(proof.Tag()))
	fmt.Fprintf(m.w, "%scolordef: %s\n", indent, proof.ColorDef().Hash())
	fmt.Fprintf(m.w, "%soutpoint: %s\n", indent, proof.OutPoint())
	fmt.Fprintf(m.w, "%sqty:      %d\n", indent, proof.Qty())

	if transferred, ok := proof.(*colorproof.TransferredProof); ok && m.verbose {
		transferred.EachPrevOut(func(prevOut ledger.OutPoint, sub colorproof.ColorProof) bool {
			fmt.Fprintf(m.w, "%sprevout %s:\n", indent, prevOut)
			printProof(m, sub, indent+"    ")
			return true
		})
	}
}
