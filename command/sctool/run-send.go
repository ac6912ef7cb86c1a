// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/smartcolors/digest"
	"github.com/bitmark-inc/smartcolors/ledger"
	"github.com/bitmark-inc/smartcolors/spend"
	"github.com/bitmark-inc/smartcolors/storage"
)

func runSend(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	defHash, err := digest.DigestFromHex(c.String("colordef"))
	if nil != err {
		return fmt.Errorf("invalid colordef hash: %s", err)
	}
	if 0 == len(c.StringSlice("input")) {
		return fmt.Errorf("at least one colored --input is required")
	}

	db, closer, err := openDatabase(m, storage.ReadOnly)
	if nil != err {
		return err
	}
	defer closer()

	inputs := []spend.Input(nil)
	for _, s := range c.StringSlice("input") {
		outPoint, err := parseOutPoint(s)
		if nil != err {
			return err
		}
		proof := selectProof(db.ProofsFor(outPoint, defHash))
		if nil == proof {
			return fmt.Errorf("no proof for outpoint: %s", outPoint)
		}
		inputs = append(inputs, spend.Input{Proof: proof})
	}
	for _, s := range c.StringSlice("uncolored") {
		outPoint, err := parseOutPoint(s)
		if nil != err {
			return err
		}
		inputs = append(inputs, spend.Input{PrevOut: outPoint})
	}

	outputs := []spend.Output(nil)
	for _, s := range c.StringSlice("to") {
		script, qty, err := parseAddressQty(m, s)
		if nil != err {
			return err
		}
		outputs = append(outputs, spend.Output{
			Colored:      true,
			Qty:          qty,
			ScriptPubKey: script,
		})
	}
	for _, s := range c.StringSlice("pay") {
		script, value, err := parseAddressQty(m, s)
		if nil != err {
			return err
		}
		outputs = append(outputs, spend.Output{
			Value:        value,
			ScriptPubKey: script,
		})
	}

	var change spend.ChangeFunc
	if address := c.String("change"); "" != address {
		script, err := ledger.AddressToScript(address, m.testnet)
		if nil != err {
			return fmt.Errorf("invalid change address: %q: %s", address, err)
		}
		change = func(qty uint64) ledger.Script {
			if m.verbose {
				fmt.Fprintf(m.e, "colored change: %d\n", qty)
			}
			return script
		}
	}

	dust := func(ledger.Script) uint64 { return m.config.DustLimit }

	tx, err := spend.CreateColorTx(inputs, outputs, change, dust, m.config.UseSteg)
	if nil != err {
		return err
	}

	fmt.Fprintf(m.w, "txid: %s\n", tx.TxID())
	fmt.Fprintf(m.w, "raw:  %x\n", tx.Pack())
	return nil
}
