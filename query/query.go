// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package query - rebuild views of the system by scanning records
//
// A scan selects a record kind by size then applies byte equality
// predicates at fixed offsets. Results are a snapshot of whatever
// the ledger had committed when it ran and may already be stale.
package query

import (
	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/derive"
	"github.com/bitmark-inc/custodyd/ledger"
	"github.com/bitmark-inc/custodyd/record"
)

// Filter - deposit selection, a nil field matches everything
type Filter struct {
	Owner  *account.Identity `json:"owner,omitempty"`
	Locked *bool             `json:"locked,omitempty"`
	Status *record.Status    `json:"status,omitempty"`
	Asset  *account.Identity `json:"asset,omitempty"`
}

// Predicates - the byte comparisons for the set fields
//
// Asset is not a predicate, it selects the address directly
func (f Filter) Predicates() []ledger.Predicate {
	predicates := []ledger.Predicate{}
	if nil != f.Owner {
		predicates = append(predicates, ledger.Predicate{
			Offset: record.DepositOwnerOffset,
			Bytes:  f.Owner.Bytes(),
		})
	}
	if nil != f.Status {
		predicates = append(predicates, ledger.Predicate{
			Offset: record.DepositStatusOffset,
			Bytes:  []byte{byte(*f.Status)},
		})
	}
	if nil != f.Locked {
		predicates = append(predicates, ledger.Predicate{
			Offset: record.DepositLockedOffset,
			Bytes:  []byte{record.BoolByte(*f.Locked)},
		})
	}
	return predicates
}

// Deposits - deposit records matching the filter
func Deposits(client ledger.Client, programID account.Identity, filter Filter) (*DepositCursor, error) {
	predicates := filter.Predicates()

	if nil != filter.Asset {
		address := derive.Deposit(programID, *filter.Asset)
		data, err := client.Fetch(address)
		if nil != err {
			return nil, err
		}
		accounts := []ledger.Account{}
		if nil != data && len(data) == record.DepositSize && ledger.MatchAll(predicates, data) {
			accounts = append(accounts, ledger.Account{
				Address: address,
				Data:    data,
			})
		}
		return &DepositCursor{accounts: accounts}, nil
	}

	accounts, err := client.Scan(record.DepositSize, predicates)
	if nil != err {
		return nil, err
	}
	return &DepositCursor{accounts: accounts}, nil
}

// Roles - every role record
func Roles(client ledger.Client) (*RoleCursor, error) {
	accounts, err := client.Scan(record.RoleSize, nil)
	if nil != err {
		return nil, err
	}
	return &RoleCursor{accounts: accounts}, nil
}

// DepositCursor - scan results decoded on demand
type DepositCursor struct {
	accounts []ledger.Account
}

// Count - number of matching records
func (c *DepositCursor) Count() int {
	return len(c.accounts)
}

// Map - decode and pass each record in turn
//
// stops at the first decode or callback error
func (c *DepositCursor) Map(f func(address account.Identity, d *record.Deposit) error) error {
	for _, a := range c.accounts {
		d, err := record.UnpackDeposit(a.Data)
		if nil != err {
			return err
		}
		if err := f(a.Address, d); nil != err {
			return err
		}
	}
	return nil
}

// DepositItem - a deposit and its address
type DepositItem struct {
	Address account.Identity `json:"address"`
	Deposit *record.Deposit  `json:"deposit"`
}

// All - decode everything
func (c *DepositCursor) All() ([]DepositItem, error) {
	items := make([]DepositItem, 0, len(c.accounts))
	err := c.Map(func(address account.Identity, d *record.Deposit) error {
		items = append(items, DepositItem{Address: address, Deposit: d})
		return nil
	})
	return items, err
}

// RoleCursor - role scan results decoded on demand
type RoleCursor struct {
	accounts []ledger.Account
}

// Count - number of matching records
func (c *RoleCursor) Count() int {
	return len(c.accounts)
}

// Map - decode and pass each record in turn
func (c *RoleCursor) Map(f func(address account.Identity, r *record.Role) error) error {
	for _, a := range c.accounts {
		r, err := record.UnpackRole(a.Data)
		if nil != err {
			return err
		}
		if err := f(a.Address, r); nil != err {
			return err
		}
	}
	return nil
}

// RoleItem - a role record and its address
type RoleItem struct {
	Address account.Identity `json:"address"`
	Role    *record.Role     `json:"role"`
}

// All - decode everything
func (c *RoleCursor) All() ([]RoleItem, error) {
	items := make([]RoleItem, 0, len(c.accounts))
	err := c.Map(func(address account.Identity, r *record.Role) error {
		items = append(items, RoleItem{Address: address, Role: r})
		return nil
	})
	return items, err
}
