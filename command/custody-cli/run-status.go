// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/record"
	"github.com/bitmark-inc/custodyd/rpc/node"
)

type statusReply struct {
	Node   *node.InfoReply `json:"node"`
	Global *record.Global  `json:"global"`
	Role   *record.Role    `json:"role,omitempty"`
}

func runStatus(c *cli.Context) error {
	return inspect(c, func(s *session) (interface{}, error) {
		return status(s)
	})
}

func status(s *session) (*statusReply, error) {
	info, err := s.client.GetInfo()
	if nil != err {
		return nil, err
	}
	global, err := s.custody.Global()
	if nil != err {
		return nil, err
	}
	reply := &statusReply{
		Node:   info,
		Global: global,
	}

	// a keypair was given
	if id := s.custody.Identity(); !id.IsZero() {
		reply.Role, err = s.custody.Role(id)
		if nil != err {
			return nil, err
		}
	}
	return reply, nil
}
