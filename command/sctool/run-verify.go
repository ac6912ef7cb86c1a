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
)

func runVerify(c *cli.Context) error {

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

	if err := proof.Validate(); nil != err {
		return fmt.Errorf("proof is INVALID: %s", err)
	}

	fmt.Fprintf(m.w, "proof is valid\n")
	printProof(m, proof, "")
	return nil
}
