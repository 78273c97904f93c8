// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package custody

import (
	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/ledger"
	"github.com/bitmark-inc/custodyd/query"
	"github.com/bitmark-inc/custodyd/record"
)

// records fetched through the client, the first fetch error sticks
type fetcher struct {
	client ledger.Client
	err    error
}

func (f *fetcher) Record(address account.Identity) []byte {
	if nil != f.err {
		return nil
	}
	data, err := f.client.Fetch(address)
	if nil != err {
		f.err = err
		return nil
	}
	return data
}

func (c *Custody) reader() *fetcher {
	return &fetcher{client: c.client}
}

// Global - the global record, nil if not initialised
func (c *Custody) Global() (*record.Global, error) {
	f := c.reader()
	global, err := c.program.Global(f)
	if nil != f.err {
		return nil, f.err
	}
	return global, err
}

// Role - a user's role record, nil if absent
func (c *Custody) Role(user account.Identity) (*record.Role, error) {
	f := c.reader()
	role, err := c.program.Role(f, user)
	if nil != f.err {
		return nil, f.err
	}
	return role, err
}

// Collection - a collection's allowlist record, nil if never registered
func (c *Custody) Collection(collection account.Identity) (*record.Collection, error) {
	f := c.reader()
	result, err := c.program.Collection(f, collection)
	if nil != f.err {
		return nil, f.err
	}
	return result, err
}

// Deposit - an asset's deposit record, nil if never deposited
func (c *Custody) Deposit(asset account.Identity) (*record.Deposit, error) {
	f := c.reader()
	d, err := c.program.Deposit(f, asset)
	if nil != f.err {
		return nil, f.err
	}
	return d, err
}

// Deposits - deposit records matching every field set in the filter
func (c *Custody) Deposits(filter query.Filter) (*query.DepositCursor, error) {
	return query.Deposits(c.client, c.program.ID(), filter)
}

// Roles - every role record
func (c *Custody) Roles() (*query.RoleCursor, error) {
	return query.Roles(c.client)
}
