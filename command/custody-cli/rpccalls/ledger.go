// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/ledger"
	rpcledger "github.com/bitmark-inc/custodyd/rpc/ledger"
	"github.com/bitmark-inc/custodyd/transaction"
)

// Submit - send a signed bundle
func (client *Client) Submit(packed transaction.Packed) (*ledger.Receipt, error) {
	var reply rpcledger.SubmitReply
	err := client.call("Ledger.Submit", &rpcledger.SubmitArguments{Bundle: packed}, &reply)
	if nil != err {
		return nil, err
	}
	return &ledger.Receipt{
		TxId:      reply.TxId,
		Timestamp: reply.Timestamp,
	}, nil
}

// Fetch - raw record at an address, nil if absent
func (client *Client) Fetch(address account.Identity) ([]byte, error) {
	var reply rpcledger.FetchReply
	err := client.call("Ledger.Fetch", &rpcledger.FetchArguments{Address: address}, &reply)
	if nil != err {
		return nil, err
	}
	if !reply.Found {
		return nil, nil
	}
	return reply.Data, nil
}

// Scan - records of a size matching all predicates
func (client *Client) Scan(size int, predicates []ledger.Predicate) ([]ledger.Account, error) {
	var reply rpcledger.ScanReply
	err := client.call("Ledger.Scan", &rpcledger.ScanArguments{Size: size, Predicates: predicates}, &reply)
	if nil != err {
		return nil, err
	}
	return reply.Accounts, nil
}
