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

func runListColored(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	db, closer, err := openDatabase(m, storage.ReadOnly)
	if nil != err {
		return err
	}
	defer closer()

	count := 0
	db.EachColoredOutPoint(func(outPoint ledger.OutPoint, def *colordef.ColorDef, proofs []colorproof.ColorProof) bool {
		count += 1
		fmt.Fprintf(m.w, "%s: color %s qty %d (%d proofs)\n",
			outPoint, def.Hash(), proofs[0].Qty(), len(proofs))
		return true
	})

	if m.verbose {
		fmt.Fprintf(m.e, "colored outpoints: %d\n", count)
	}
	return nil
}
