// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package program

import (
	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/derive"
	"github.com/bitmark-inc/custodyd/record"
)

// Reader - read only access to records
type Reader interface {
	Record(address account.Identity) []byte
}

// Global - the global record, nil if not initialised
func (p *Program) Global(r Reader) (*record.Global, error) {
	data := r.Record(p.vault)
	if nil == data {
		return nil, nil
	}
	return record.UnpackGlobal(data)
}

// Role - a principal's role record, nil if absent
func (p *Program) Role(r Reader, user account.Identity) (*record.Role, error) {
	data := r.Record(derive.Role(p.id, user))
	if nil == data {
		return nil, nil
	}
	return record.UnpackRole(data)
}

// Collection - a collection's allowlist record, nil if absent
func (p *Program) Collection(r Reader, collection account.Identity) (*record.Collection, error) {
	data := r.Record(derive.Collection(p.id, collection))
	if nil == data {
		return nil, nil
	}
	return record.UnpackCollection(data)
}

// Deposit - an asset's deposit record, nil if absent
func (p *Program) Deposit(r Reader, asset account.Identity) (*record.Deposit, error) {
	data := r.Record(derive.Deposit(p.id, asset))
	if nil == data {
		return nil, nil
	}
	return record.UnpackDeposit(data)
}

func (p *Program) globalAndRole(r Reader, actor account.Identity) (*record.Global, *record.Role, error) {
	global, err := p.Global(r)
	if nil != err {
		return nil, nil, err
	}
	role, err := p.Role(r, actor)
	if nil != err {
		return nil, nil, err
	}
	return global, role, nil
}
