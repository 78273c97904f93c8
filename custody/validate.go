// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package custody

import (
	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/authority"
	"github.com/bitmark-inc/custodyd/program"
)

// Validate - run the authority check for an instruction against the
// records currently held by the ledger
//
// a deposit whose actor has no role record is accepted here since the
// bundle may create it first; an existing deposit record only blocks a
// deposit while the vault holds the asset
func (c *Custody) Validate(i program.Instruction) error {
	r := &authority.Request{
		Operation: i.Operation(),
		Actor:     i.Actor(),
	}

	var err error
	switch r.Operation {
	case authority.InitUser:
		return authority.Check(r)
	case authority.Initialise, authority.TransferSuperAdmin:
		r.Global, err = c.Global()
		if nil != err {
			return err
		}
		return authority.Check(r)
	}

	r.Global, err = c.Global()
	if nil != err {
		return err
	}
	r.Role, err = c.Role(r.Actor)
	if nil != err {
		return err
	}

	var asset account.Identity
	switch v := i.(type) {
	case *program.Deposit:
		asset = v.Asset
		r.Collection, err = c.Collection(v.Collection)
		if nil != err {
			return err
		}
	case *program.UpdateDeposit:
		asset = v.Asset
	case *program.WithdrawToOwner:
		asset = v.Asset
	case *program.WithdrawToTreasury:
		asset = v.Asset
	case *program.Finalise:
		asset = v.Asset
	default:
		return authority.Check(r)
	}

	r.Deposit, err = c.Deposit(asset)
	if nil != err {
		return err
	}
	if authority.Deposit == r.Operation && nil != r.Deposit {
		holder, err := c.resolver.Holder(asset)
		if nil != err {
			return err
		}
		r.InCustody = holder == c.Vault()
	}
	return authority.Check(r)
}
