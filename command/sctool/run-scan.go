// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/smartcolors/colordef"
	"github.com/bitmark-inc/smartcolors/colorproof"
	"github.com/bitmark-inc/smartcolors/ledger"
	"github.com/bitmark-inc/smartcolors/storage"
)

func runScan(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	tx, err := readTransaction(c.Args().Get(0))
	if nil != err {
		return err
	}

	db, closer, err := openDatabase(m, storage.ReadWrite)
	if nil != err {
		return err
	}
	defer closer()

	if err := db.AddTx(tx); nil != err {
		return err
	}

	// persist every proof the transaction produced
	txid := tx.TxID()
	found := 0
	var storeErr error
	db.EachColoredOutPoint(func(outPoint ledger.OutPoint, def *colordef.ColorDef, proofs []colorproof.ColorProof) bool {
		if outPoint.TxID != txid {
			return true
		}
		for _, proof := range proofs {
			if storeErr = storage.StoreProof(proof); nil != storeErr {
				return false
			}
		}
		found += 1
		fmt.Fprintf(m.w, "%s: color %s qty %d\n", outPoint, def.Hash(), proofs[0].Qty())
		return true
	})
	if nil != storeErr {
		return storeErr
	}

	if 0 == found {
		fmt.Fprintf(m.w, "no color movements in %s\n", txid)
	}
	return nil
}
