// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the system of record that holds program records
// at addresses, holds assets and applies bundles all or nothing
package ledger

import (
	"bytes"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/record"
	"github.com/bitmark-inc/custodyd/transaction"
)

// Client - access to a ledger, local or remote
type Client interface {
	// Submit - apply a signed bundle
	Submit(packed transaction.Packed) (*Receipt, error)

	// Fetch - raw record at an address, nil if absent
	Fetch(address account.Identity) ([]byte, error)

	// Scan - every record of the given size matching all predicates
	//
	// the order of results is the ledger's storage order
	Scan(size int, predicates []Predicate) ([]Account, error)
}

// Holdings - asset ownership held by a ledger
type Holdings interface {
	// Asset - holding of an asset, fault.ErrAssetNotFound if none
	Asset(asset account.Identity) (*record.Asset, error)

	// Issue - create an asset held by owner
	Issue(asset account.Identity, owner account.Identity, collection account.Identity) error
}

// Receipt - returned for a committed bundle
type Receipt struct {
	TxId      transaction.Digest `json:"txId"`
	Timestamp int64              `json:"timestamp"`
}

// Account - a record and its address
type Account struct {
	Address account.Identity `json:"address"`
	Data    []byte           `json:"data"`
}

// Predicate - bytes that must appear at an offset in a record
type Predicate struct {
	Offset int    `json:"offset"`
	Bytes  []byte `json:"bytes"`
}

// Match - true if data holds the bytes at the offset
func (p Predicate) Match(data []byte) bool {
	if p.Offset < 0 || p.Offset+len(p.Bytes) > len(data) {
		return false
	}
	return bytes.Equal(data[p.Offset:p.Offset+len(p.Bytes)], p.Bytes)
}

// MatchAll - logical AND of predicates, true for none
func MatchAll(predicates []Predicate, data []byte) bool {
	for _, p := range predicates {
		if !p.Match(data) {
			return false
		}
	}
	return true
}
