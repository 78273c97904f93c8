// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/custodyd/chain"
	"github.com/bitmark-inc/custodyd/ledger"
	"github.com/bitmark-inc/custodyd/rpc/assets"
	rpcledger "github.com/bitmark-inc/custodyd/rpc/ledger"
	"github.com/bitmark-inc/custodyd/rpc/listeners"
	"github.com/bitmark-inc/custodyd/rpc/node"
	"github.com/bitmark-inc/logger"
)

// Create - RPC server with every service registered
func Create(log *logger.L, version string, chainName string, local *ledger.Local, connections *listeners.Connections) *rpc.Server {
	start := time.Now().UTC()
	p := local.Program()

	server := rpc.NewServer()

	_ = server.Register(assets.New(log, local, chain.CanIssue(chainName)))
	_ = server.Register(rpcledger.New(log, local))
	_ = server.Register(node.New(log, start, version, chainName, p.ID(), p.Vault(), connections))

	return server
}
