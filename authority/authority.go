// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package authority - decide whether an actor may perform an operation
//
// The same checks run twice: by a client before building a bundle,
// so it can fail fast, and by the program when the bundle executes.
package authority

import (
	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/record"
)

// Operation - enumeration of the state transitions
type Operation int

// the operations
const (
	Initialise Operation = iota
	TransferSuperAdmin
	ChangeTreasury
	InitUser
	ChangeRole
	RegisterCollection
	RevokeCollection
	Deposit
	UpdateDeposit
	WithdrawToOwner
	WithdrawToTreasury
	Finalise
)

var operationNames = []string{
	Initialise:         "initialise",
	TransferSuperAdmin: "transfer super admin",
	ChangeTreasury:     "change treasury",
	InitUser:           "init user",
	ChangeRole:         "change role",
	RegisterCollection: "register collection",
	RevokeCollection:   "revoke collection",
	Deposit:            "deposit",
	UpdateDeposit:      "update deposit",
	WithdrawToOwner:    "withdraw to owner",
	WithdrawToTreasury: "withdraw to treasury",
	Finalise:           "finalise",
}

func (op Operation) String() string {
	if op < 0 || int(op) >= len(operationNames) {
		return "unknown"
	}
	return operationNames[op]
}

// Request - everything a decision depends on
//
// a nil record means the record does not exist
type Request struct {
	Operation  Operation
	Actor      account.Identity
	Global     *record.Global
	Role       *record.Role       // the actor's own role record
	Deposit    *record.Deposit    // target of the deposit operations
	Collection *record.Collection // allowlist entry, deposit only
	InCustody  bool               // the vault holds the asset, deposit only
}

// Check - nil if allowed, otherwise the specific reason
func Check(r *Request) error {
	switch r.Operation {

	case Initialise:
		if nil == r.Global {
			return nil
		}
		if r.Actor != r.Global.SuperAdmin {
			return fault.ErrNotSuperAdmin
		}
		return fault.ErrAlreadyInitialised

	case TransferSuperAdmin:
		if nil == r.Global {
			return fault.ErrNotInitialised
		}
		if r.Actor != r.Global.SuperAdmin {
			return fault.ErrNotSuperAdmin
		}
		return nil

	case ChangeTreasury, ChangeRole, RegisterCollection, RevokeCollection:
		if nil == r.Global {
			return fault.ErrNotInitialised
		}
		return requireAdmin(r.Role)

	case InitUser:
		return nil

	case Deposit:
		if nil == r.Global {
			return fault.ErrNotInitialised
		}
		if nil == r.Collection || !r.Collection.Allowed {
			return fault.ErrCollectionNotAllowed
		}
		// a record left by a withdrawal is replaced by the new deposit
		if nil != r.Deposit && r.InCustody {
			return fault.ErrAlreadyDeposited
		}
		return nil

	case UpdateDeposit, Finalise:
		if nil == r.Global {
			return fault.ErrNotInitialised
		}
		if err := requireUpdater(r.Role); nil != err {
			return err
		}
		if nil == r.Deposit {
			return fault.ErrNotDeposited
		}
		return nil

	case WithdrawToOwner:
		if nil == r.Global {
			return fault.ErrNotInitialised
		}
		if nil == r.Deposit {
			return fault.ErrNotDeposited
		}
		if r.Actor != r.Deposit.Owner {
			if nil == r.Role || !r.Role.IsAdmin {
				return fault.ErrNotOwnerOrAdmin
			}
		}
		if r.Deposit.Locked {
			return fault.ErrDisabledWithdrawal
		}
		return nil

	case WithdrawToTreasury:
		if nil == r.Global {
			return fault.ErrNotInitialised
		}
		if err := requireAdmin(r.Role); nil != err {
			return err
		}
		if nil == r.Deposit {
			return fault.ErrNotDeposited
		}
		if r.Deposit.Locked {
			return fault.ErrDisabledWithdrawal
		}
		return nil

	default:
		return fault.ErrUnknownInstruction
	}
}

func requireAdmin(role *record.Role) error {
	if nil == role {
		return fault.ErrMissingRoleRecord
	}
	if !role.IsAdmin {
		return fault.ErrNotAdmin
	}
	return nil
}

// admins may do anything an updater can
func requireUpdater(role *record.Role) error {
	if nil == role {
		return fault.ErrMissingRoleRecord
	}
	if !role.IsAdmin && !role.IsUpdater {
		return fault.ErrNotUpdater
	}
	return nil
}
