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
	"github.com/bitmark-inc/smartcolors/digest"
	"github.com/bitmark-inc/smartcolors/ledger"
	"github.com/bitmark-inc/smartcolors/proofio"
	"github.com/bitmark-inc/smartcolors/storage"
)

func runProve(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName := c.Args().Get(0)
	if "" == fileName {
		return fmt.Errorf("missing proof output FILE argument")
	}
	outPoint, err := parseOutPoint(c.String("outpoint"))
	if nil != err {
		return err
	}

	wantDef := false
	var defHash digest.Digest
	if s := c.String("colordef"); "" != s {
		defHash, err = digest.DigestFromHex(s)
		if nil != err {
			return fmt.Errorf("invalid colordef hash: %q: %s", s, err)
		}
		wantDef = true
	}

	db, closer, err := openDatabase(m, storage.ReadOnly)
	if nil != err {
		return err
	}
	defer closer()

	var candidates []colorproof.ColorProof
	colors := 0
	db.EachColoredOutPoint(func(op ledger.OutPoint, def *colordef.ColorDef, proofs []colorproof.ColorProof) bool {
		if op != outPoint {
			return true
		}
		if wantDef && def.Hash() != defHash {
			return true
		}
		colors += 1
		candidates = proofs
		return true
	})

	if colors > 1 {
		return fmt.Errorf("outpoint %s carries %d colors, select one with: --colordef HEX", outPoint, colors)
	}
	proof := selectProof(candidates)
	if nil == proof {
		return fmt.Errorf("no proof for outpoint: %s", outPoint)
	}

	fh, err := os.Create(fileName)
	if nil != err {
		return err
	}
	defer fh.Close()
	if err := proofio.WriteProof(fh, proof); nil != err {
		return err
	}

	fmt.Fprintf(m.w, "proof: %s\n", proof.Hash())
	fmt.Fprintf(m.w, "qty:   %d\n", proof.Qty())
	fmt.Fprintf(m.w, "file:  %s\n", fileName)
	return nil
}
