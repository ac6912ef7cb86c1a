// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/bitmark-inc/smartcolors/configuration"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	testnet bool
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// commands that only operate on their file arguments and never touch
// the configuration or the database
var offlineCommands = map[string]bool{
	"":                true, // bare invocation just prints usage
	"decode-colordef": true,
	"decode-proof":    true,
	"verify":          true,
	"help":            true,
	"h":               true,
}

func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	app := cli.NewApp()
	app.Name = "sctool"
	app.Usage = "client-side colored coin tool"
	app.Version = version

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: "*configuration file `PATH`",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "define",
			Usage:     "create a new colordef file",
			ArgsUsage: "FILE\n   (* = required, at least one -o/-a/-s)",
			Flags: []cli.Flag{
				cli.StringSliceFlag{
					Name:  "outpoint, o",
					Usage: " genesis outpoint `TXID:N:QTY`",
				},
				cli.StringSliceFlag{
					Name:  "address, a",
					Usage: " genesis address `ADDRESS`",
				},
				cli.StringSliceFlag{
					Name:  "script, s",
					Usage: " hex-encoded genesis scriptPubKey `HEX`",
				},
				cli.StringFlag{
					Name:  "stegkey",
					Value: "",
					Usage: " 16 byte stegkey `HEX`, random if omitted",
				},
				cli.Uint64Flag{
					Name:  "birthdate, b",
					Value: 0,
					Usage: " birthdate block height `HEIGHT`",
				},
			},
			Action: runDefine,
		},
		{
			Name:      "track",
			Usage:     "add a colordef file to the database",
			ArgsUsage: "FILE",
			Action:    runTrack,
		},
		{
			Name:      "decode-colordef",
			Usage:     "show the contents of a colordef file",
			ArgsUsage: "FILE",
			Action:    runDecodeColorDef,
		},
		{
			Name:      "decode-proof",
			Usage:     "show the contents of a proof file",
			ArgsUsage: "FILE",
			Action:    runDecodeProof,
		},
		{
			Name:      "scan",
			Usage:     "scan a raw transaction for color movements",
			ArgsUsage: "HEX|FILE",
			Action:    runScan,
		},
		{
			Name:   "listcolored",
			Usage:  "list all colored outpoints in the database",
			Action: runListColored,
		},
		{
			Name:      "prove",
			Usage:     "export the proof for a colored outpoint",
			ArgsUsage: "FILE\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "outpoint, o",
					Value: "",
					Usage: "*outpoint to prove `TXID:N`",
				},
				cli.StringFlag{
					Name:  "colordef, d",
					Value: "",
					Usage: " colordef hash `HEX` when the outpoint carries several colors",
				},
			},
			Action: runProve,
		},
		{
			Name:      "verify",
			Usage:     "verify a proof file",
			ArgsUsage: "FILE",
			Action:    runVerify,
		},
		{
			Name:      "send",
			Usage:     "build a transaction moving color",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "colordef, d",
					Value: "",
					Usage: "*colordef hash `HEX`",
				},
				cli.StringSliceFlag{
					Name:  "input, i",
					Usage: "*colored outpoint to spend `TXID:N`",
				},
				cli.StringSliceFlag{
					Name:  "uncolored, u",
					Usage: " uncolored outpoint to spend `TXID:N`",
				},
				cli.StringSliceFlag{
					Name:  "to, t",
					Usage: "*colored output `ADDRESS:QTY`",
				},
				cli.StringSliceFlag{
					Name:  "pay, p",
					Usage: " uncolored output `ADDRESS:VALUE`",
				},
				cli.StringFlag{
					Name:  "change",
					Value: "",
					Usage: " address for colored change `ADDRESS`",
				},
			},
			Action: runSend,
		},
	}

	app.Before = func(c *cli.Context) error {
		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		command := c.Args().Get(0)
		if offlineCommands[command] {
			c.App.Metadata["config"] = &metadata{
				verbose: verbose,
				e:       e,
				w:       w,
			}
			return nil
		}

		file := c.GlobalString("config")
		if "" == file {
			return fmt.Errorf("configuration file is required, use: --config FILE")
		}
		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		config, err := configuration.GetConfiguration(file)
		if nil != err {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			file:    file,
			config:  config,
			testnet: config.Testnet,
			verbose: verbose,
			e:       e,
			w:       w,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		exitwithstatus.Message("terminated with error: %s", err)
	}
}
