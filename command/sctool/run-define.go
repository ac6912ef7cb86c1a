// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/smartcolors/colordef"
	"github.com/bitmark-inc/smartcolors/ledger"
	"github.com/bitmark-inc/smartcolors/proofio"
)

func runDefine(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	fileName := c.Args().Get(0)
	if "" == fileName {
		return fmt.Errorf("missing colordef output FILE argument")
	}

	outPoints := []colordef.GenesisOutPoint(nil)
	for _, s := range c.StringSlice("outpoint") {
		outPoint, qty, err := parseOutPointQty(s)
		if nil != err {
			return err
		}
		outPoints = append(outPoints, colordef.GenesisOutPoint{
			OutPoint: outPoint,
			Qty:      qty,
		})
	}

	scripts := []ledger.Script(nil)
	for _, address := range c.StringSlice("address") {
		script, err := ledger.AddressToScript(address, m.testnet)
		if nil != err {
			return fmt.Errorf("invalid address: %q: %s", address, err)
		}
		scripts = append(scripts, script)
	}
	for _, s := range c.StringSlice("script") {
		script, err := hex.DecodeString(s)
		if nil != err {
			return fmt.Errorf("invalid scriptPubKey hex: %q: %s", s, err)
		}
		scripts = append(scripts, ledger.Script(script))
	}

	if 0 == len(outPoints) && 0 == len(scripts) {
		return fmt.Errorf("a colordef needs at least one genesis outpoint or scriptPubKey")
	}

	var stegKey [colordef.StegKeyLength]byte
	if s := c.String("stegkey"); "" != s {
		raw, err := hex.DecodeString(s)
		if nil != err || colordef.StegKeyLength != len(raw) {
			return fmt.Errorf("stegkey must be %d bytes of hex", colordef.StegKeyLength)
		}
		copy(stegKey[:], raw)
	} else if _, err := rand.Read(stegKey[:]); nil != err {
		return err
	}

	def, err := colordef.New(c.Uint64("birthdate"), stegKey, outPoints, scripts)
	if nil != err {
		return err
	}

	fh, err := os.Create(fileName)
	if nil != err {
		return err
	}
	defer fh.Close()
	if err := proofio.WriteColorDef(fh, def); nil != err {
		return err
	}

	fmt.Fprintf(m.w, "colordef: %s\n", def.Hash())
	fmt.Fprintf(m.w, "stegkey:  %x\n", stegKey)
	fmt.Fprintf(m.w, "file:     %s\n", fileName)
	return nil
}
