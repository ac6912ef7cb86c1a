// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/smartcolors/proofio"
	"github.com/bitmark-inc/smartcolors/storage"
)

func runTrack(c *cli.Context) error {

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

	db, closer, err := openDatabase(m, storage.ReadWrite)
	if nil != err {
		return err
	}
	defer closer()

	if err := db.AddColorDef(def); nil != err {
		return err
	}
	if err := storage.StoreColorDef(def); nil != err {
		return err
	}

	fmt.Fprintf(m.w, "tracking colordef: %s\n", def.Hash())
	return nil
}
