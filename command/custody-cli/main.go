// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/chain"
)

type config struct {
	network   string
	connect   string
	keypair   string
	programID string
	verbose   bool
	e         io.Writer
	w         io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

const defaultConnect = "127.0.0.1:2130"

func main() {
	app := cli.NewApp()
	app.Name = "custody-cli"
	app.Usage = "manage NFT deposits held by a custody program"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "network, n",
			Value: chain.Local,
			Usage: " connect to custody `NETWORK` [live|testing|local]",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  defaultConnect,
			EnvVar: "CUSTODY_CONNECT",
			Usage:  " custodyd host/IP and port, `HOST:PORT`",
		},
		cli.StringFlag{
			Name:   "keypair, k",
			Value:  "",
			EnvVar: "CUSTODY_KEYPAIR",
			Usage:  " signing keypair `FILE`",
		},
		cli.StringFlag{
			Name:   "program-id, p",
			Value:  "",
			EnvVar: "CUSTODY_PROGRAM_ID",
			Usage:  " custody program `ID` [default from custodyd]",
		},
	}
	app.Commands = commands

	app.Before = func(c *cli.Context) error {
		network := c.GlobalString("network")
		switch network {
		case chain.Live, "mainnet":
			network = chain.Live
		case chain.Testing, "test", "devnet":
			network = chain.Testing
		case chain.Local, "localnet":
			network = chain.Local
		default:
			return fmt.Errorf("network: %q can only be live/testing/local", network)
		}

		m := &config{
			network:   network,
			connect:   c.GlobalString("connect"),
			keypair:   c.GlobalString("keypair"),
			programID: c.GlobalString("program-id"),
			verbose:   c.GlobalBool("verbose"),
			e:         c.App.ErrWriter,
			w:         c.App.Writer,
		}
		if m.verbose {
			fmt.Fprintf(m.e, "network: %s  connect: %s\n", m.network, m.connect)
		}
		c.App.Metadata["config"] = m
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		exitwithstatus.Exit(1)
	}
}
