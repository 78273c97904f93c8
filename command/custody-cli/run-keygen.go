// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/fault"
)

type keygenReply struct {
	Identity account.Identity `json:"identity"`
	File     string           `json:"file"`
}

func runKeygen(c *cli.Context) error {
	m := c.App.Metadata["config"].(*config)

	output := strings.TrimSpace(c.String("output"))
	if "" == output {
		return fault.ErrRequiredKeypair
	}

	key, err := account.NewPrivateKey()
	if nil != err {
		return err
	}
	err = key.WriteKeypairFile(output)
	if nil != err {
		return err
	}

	return printJson(m.w, keygenReply{
		Identity: key.Identity(),
		File:     output,
	})
}
