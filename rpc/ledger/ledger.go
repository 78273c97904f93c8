// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/fault"
	core "github.com/bitmark-inc/custodyd/ledger"
	"github.com/bitmark-inc/custodyd/rpc/ratelimit"
	"github.com/bitmark-inc/custodyd/transaction"
	"github.com/bitmark-inc/logger"
)

// Ledger - type for the RPC
type Ledger struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Client  core.Client
}

const (
	rateLimitLedger = 200
	rateBurstLedger = 100

	// MaximumPredicates - per scan request
	MaximumPredicates = 8
)

// New - ledger RPC over a ledger client
func New(log *logger.L, client core.Client) *Ledger {
	return &Ledger{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitLedger, rateBurstLedger),
		Client:  client,
	}
}

// ---

// SubmitArguments - arguments for RPC request
type SubmitArguments struct {
	Bundle transaction.Packed `json:"bundle"`
}

// SubmitReply - results from RPC request
type SubmitReply struct {
	TxId      transaction.Digest `json:"txId"`
	Timestamp int64              `json:"timestamp"`
}

// Submit - apply a signed bundle
func (l *Ledger) Submit(arguments *SubmitArguments, reply *SubmitReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	if nil == arguments || 0 == len(arguments.Bundle) {
		return fault.ErrEmptyBundle
	}
	if len(arguments.Bundle) > transaction.MaximumBundleSize {
		return fault.ErrBundleTooLarge
	}

	l.Log.Infof("Ledger.Submit: %s", arguments.Bundle.Digest())

	receipt, err := l.Client.Submit(arguments.Bundle)
	if nil != err {
		l.Log.Debugf("Ledger.Submit error: %s", err)
		return err
	}

	reply.TxId = receipt.TxId
	reply.Timestamp = receipt.Timestamp
	return nil
}

// ---

// FetchArguments - arguments for RPC request
type FetchArguments struct {
	Address account.Identity `json:"address"`
}

// FetchReply - results from RPC request
type FetchReply struct {
	Found bool   `json:"found"`
	Data  []byte `json:"data"`
}

// Fetch - raw record at an address
func (l *Ledger) Fetch(arguments *FetchArguments, reply *FetchReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	l.Log.Debugf("Ledger.Fetch: %s", arguments.Address)

	data, err := l.Client.Fetch(arguments.Address)
	if nil != err {
		return err
	}
	reply.Found = nil != data
	reply.Data = data
	return nil
}

// ---

// ScanArguments - arguments for RPC request
type ScanArguments struct {
	Size       int              `json:"size"`
	Predicates []core.Predicate `json:"predicates"`
}

// ScanReply - results from RPC request
type ScanReply struct {
	Accounts []core.Account `json:"accounts"`
}

// Scan - all records of a size matching every predicate
func (l *Ledger) Scan(arguments *ScanArguments, reply *ScanReply) error {
	if err := ratelimit.LimitN(l.Limiter, len(arguments.Predicates)+1, MaximumPredicates+1); nil != err {
		if fault.ErrInvalidCount == err {
			return fault.ErrInvalidPredicate
		}
		return err
	}

	l.Log.Infof("Ledger.Scan: size: %d  predicates: %d", arguments.Size, len(arguments.Predicates))

	accounts, err := l.Client.Scan(arguments.Size, arguments.Predicates)
	if nil != err {
		return err
	}
	reply.Accounts = accounts
	return nil
}
