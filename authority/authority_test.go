// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package authority_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/authority"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/record"
)

func makeIdentity(b byte) account.Identity {
	id := account.Identity{}
	id[0] = b
	return id
}

var (
	superAdmin = makeIdentity(1)
	owner      = makeIdentity(2)
	stranger   = makeIdentity(3)

	global = &record.Global{
		SuperAdmin: superAdmin,
		Treasury:   makeIdentity(9),
	}

	adminRole     = &record.Role{IsAdmin: true}
	updaterRole   = &record.Role{IsUpdater: true}
	plainRole     = &record.Role{}
	allowed       = &record.Collection{Allowed: true}
	revoked       = &record.Collection{Allowed: false}
	openDeposit   = &record.Deposit{Owner: owner}
	lockedDeposit = &record.Deposit{Owner: owner, Locked: true}
)

func TestCheck(t *testing.T) {
	items := []struct {
		name    string
		request authority.Request
		err     error
	}{
		{"first initialise", authority.Request{Operation: authority.Initialise, Actor: stranger}, nil},
		{"second initialise", authority.Request{Operation: authority.Initialise, Actor: superAdmin, Global: global}, fault.ErrAlreadyInitialised},
		{"initialise by other", authority.Request{Operation: authority.Initialise, Actor: stranger, Global: global}, fault.ErrNotSuperAdmin},

		{"transfer by super admin", authority.Request{Operation: authority.TransferSuperAdmin, Actor: superAdmin, Global: global}, nil},
		{"transfer by admin role", authority.Request{Operation: authority.TransferSuperAdmin, Actor: stranger, Global: global, Role: adminRole}, fault.ErrNotSuperAdmin},
		{"transfer uninitialised", authority.Request{Operation: authority.TransferSuperAdmin, Actor: superAdmin}, fault.ErrNotInitialised},

		{"treasury by admin", authority.Request{Operation: authority.ChangeTreasury, Actor: stranger, Global: global, Role: adminRole}, nil},
		{"treasury by super admin without role", authority.Request{Operation: authority.ChangeTreasury, Actor: superAdmin, Global: global}, fault.ErrMissingRoleRecord},
		{"treasury by updater", authority.Request{Operation: authority.ChangeTreasury, Actor: stranger, Global: global, Role: updaterRole}, fault.ErrNotAdmin},

		{"role by admin", authority.Request{Operation: authority.ChangeRole, Actor: stranger, Global: global, Role: adminRole}, nil},
		{"role by plain", authority.Request{Operation: authority.ChangeRole, Actor: stranger, Global: global, Role: plainRole}, fault.ErrNotAdmin},
		{"register by admin", authority.Request{Operation: authority.RegisterCollection, Actor: stranger, Global: global, Role: adminRole}, nil},
		{"revoke without role", authority.Request{Operation: authority.RevokeCollection, Actor: stranger, Global: global}, fault.ErrMissingRoleRecord},

		{"init user by anyone", authority.Request{Operation: authority.InitUser, Actor: stranger}, nil},

		{"deposit allowed", authority.Request{Operation: authority.Deposit, Actor: owner, Global: global, Collection: allowed}, nil},
		{"deposit revoked", authority.Request{Operation: authority.Deposit, Actor: owner, Global: global, Collection: revoked}, fault.ErrCollectionNotAllowed},
		{"deposit unregistered", authority.Request{Operation: authority.Deposit, Actor: owner, Global: global}, fault.ErrCollectionNotAllowed},
		{"deposit twice", authority.Request{Operation: authority.Deposit, Actor: owner, Global: global, Collection: allowed, Deposit: openDeposit, InCustody: true}, fault.ErrAlreadyDeposited},
		{"deposit after withdrawal", authority.Request{Operation: authority.Deposit, Actor: owner, Global: global, Collection: allowed, Deposit: openDeposit}, nil},

		{"update by updater", authority.Request{Operation: authority.UpdateDeposit, Actor: stranger, Global: global, Role: updaterRole, Deposit: openDeposit}, nil},
		{"update by admin", authority.Request{Operation: authority.UpdateDeposit, Actor: stranger, Global: global, Role: adminRole, Deposit: lockedDeposit}, nil},
		{"update by owner", authority.Request{Operation: authority.UpdateDeposit, Actor: owner, Global: global, Role: plainRole, Deposit: openDeposit}, fault.ErrNotUpdater},
		{"update missing", authority.Request{Operation: authority.UpdateDeposit, Actor: stranger, Global: global, Role: updaterRole}, fault.ErrNotDeposited},

		{"withdraw by owner", authority.Request{Operation: authority.WithdrawToOwner, Actor: owner, Global: global, Deposit: openDeposit}, nil},
		{"withdraw by admin", authority.Request{Operation: authority.WithdrawToOwner, Actor: stranger, Global: global, Role: adminRole, Deposit: openDeposit}, nil},
		{"withdraw by stranger", authority.Request{Operation: authority.WithdrawToOwner, Actor: stranger, Global: global, Role: updaterRole, Deposit: openDeposit}, fault.ErrNotOwnerOrAdmin},
		{"withdraw locked by owner", authority.Request{Operation: authority.WithdrawToOwner, Actor: owner, Global: global, Deposit: lockedDeposit}, fault.ErrDisabledWithdrawal},
		{"withdraw locked by admin", authority.Request{Operation: authority.WithdrawToOwner, Actor: stranger, Global: global, Role: adminRole, Deposit: lockedDeposit}, fault.ErrDisabledWithdrawal},

		{"treasury withdraw by admin", authority.Request{Operation: authority.WithdrawToTreasury, Actor: stranger, Global: global, Role: adminRole, Deposit: openDeposit}, nil},
		{"treasury withdraw locked", authority.Request{Operation: authority.WithdrawToTreasury, Actor: stranger, Global: global, Role: adminRole, Deposit: lockedDeposit}, fault.ErrDisabledWithdrawal},
		{"treasury withdraw by updater", authority.Request{Operation: authority.WithdrawToTreasury, Actor: stranger, Global: global, Role: updaterRole, Deposit: openDeposit}, fault.ErrNotAdmin},

		{"finalise by updater", authority.Request{Operation: authority.Finalise, Actor: stranger, Global: global, Role: updaterRole, Deposit: openDeposit}, nil},
		{"finalise locked", authority.Request{Operation: authority.Finalise, Actor: stranger, Global: global, Role: updaterRole, Deposit: lockedDeposit}, nil},
		{"finalise by owner", authority.Request{Operation: authority.Finalise, Actor: owner, Global: global, Deposit: openDeposit}, fault.ErrMissingRoleRecord},
	}

	for _, item := range items {
		err := authority.Check(&item.request)
		assert.Equal(t, item.err, err, item.name)
	}
}

func TestDenyClasses(t *testing.T) {
	err := authority.Check(&authority.Request{
		Operation: authority.WithdrawToOwner,
		Actor:     stranger,
		Global:    global,
		Deposit:   openDeposit,
	})
	assert.True(t, fault.IsErrDenied(err), "not owner should be denied: %v", err)

	err = authority.Check(&authority.Request{
		Operation: authority.WithdrawToTreasury,
		Actor:     stranger,
		Global:    global,
		Role:      adminRole,
		Deposit:   lockedDeposit,
	})
	assert.True(t, fault.IsErrPrecondition(err), "lock should be a precondition: %v", err)
}
