// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package program

import (
	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/authority"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/record"
	"github.com/bitmark-inc/custodyd/util"
)

// Instruction - one state transition
//
// the actor must be one of the bundle's signers
type Instruction interface {
	Operation() authority.Operation
	Actor() account.Identity
	pack(p *util.Packer)
}

// Initialise - create the global record, actor becomes super admin
type Initialise struct {
	Admin    account.Identity `json:"admin"`
	Treasury account.Identity `json:"treasury"`
}

// TransferSuperAdmin - replace the super admin
type TransferSuperAdmin struct {
	Admin    account.Identity `json:"admin"`
	NewAdmin account.Identity `json:"newAdmin"`
}

// ChangeTreasury - replace the treasury
type ChangeTreasury struct {
	Admin    account.Identity `json:"admin"`
	Treasury account.Identity `json:"treasury"`
}

// InitUser - create a role record with no flags, if missing
type InitUser struct {
	Payer account.Identity `json:"payer"`
	User  account.Identity `json:"user"`
}

// ChangeRole - set or clear the role flags of a user
type ChangeRole struct {
	Admin     account.Identity `json:"admin"`
	User      account.Identity `json:"user"`
	IsAdmin   Option           `json:"isAdmin"`
	IsUpdater Option           `json:"isUpdater"`
}

// RegisterCollection - allow deposits from a collection
type RegisterCollection struct {
	Admin      account.Identity `json:"admin"`
	Collection account.Identity `json:"collection"`
}

// RevokeCollection - stop deposits from a collection
type RevokeCollection struct {
	Admin      account.Identity `json:"admin"`
	Collection account.Identity `json:"collection"`
}

// Deposit - move an asset into custody
type Deposit struct {
	Depositor  account.Identity `json:"depositor"`
	Asset      account.Identity `json:"asset"`
	Collection account.Identity `json:"collection"`
	UserTag    string           `json:"user"`
}

// UpdateDeposit - set status and/or lock
type UpdateDeposit struct {
	Updater account.Identity `json:"updater"`
	Asset   account.Identity `json:"asset"`
	Status  StatusOption     `json:"status"`
	Locked  Option           `json:"locked"`
}

// WithdrawToOwner - return the asset to its depositor
type WithdrawToOwner struct {
	Caller account.Identity `json:"caller"`
	Asset  account.Identity `json:"asset"`
}

// WithdrawToTreasury - administrative removal to the treasury
type WithdrawToTreasury struct {
	Admin account.Identity `json:"admin"`
	Asset account.Identity `json:"asset"`
}

// Finalise - close a completed shipment, asset goes to the treasury
type Finalise struct {
	Updater account.Identity `json:"updater"`
	Asset   account.Identity `json:"asset"`
}

func (i *Initialise) Operation() authority.Operation         { return authority.Initialise }
func (i *TransferSuperAdmin) Operation() authority.Operation { return authority.TransferSuperAdmin }
func (i *ChangeTreasury) Operation() authority.Operation     { return authority.ChangeTreasury }
func (i *InitUser) Operation() authority.Operation           { return authority.InitUser }
func (i *ChangeRole) Operation() authority.Operation         { return authority.ChangeRole }
func (i *RegisterCollection) Operation() authority.Operation { return authority.RegisterCollection }
func (i *RevokeCollection) Operation() authority.Operation   { return authority.RevokeCollection }
func (i *Deposit) Operation() authority.Operation            { return authority.Deposit }
func (i *UpdateDeposit) Operation() authority.Operation      { return authority.UpdateDeposit }
func (i *WithdrawToOwner) Operation() authority.Operation    { return authority.WithdrawToOwner }
func (i *WithdrawToTreasury) Operation() authority.Operation { return authority.WithdrawToTreasury }
func (i *Finalise) Operation() authority.Operation           { return authority.Finalise }

func (i *Initialise) Actor() account.Identity         { return i.Admin }
func (i *TransferSuperAdmin) Actor() account.Identity { return i.Admin }
func (i *ChangeTreasury) Actor() account.Identity     { return i.Admin }
func (i *InitUser) Actor() account.Identity           { return i.Payer }
func (i *ChangeRole) Actor() account.Identity         { return i.Admin }
func (i *RegisterCollection) Actor() account.Identity { return i.Admin }
func (i *RevokeCollection) Actor() account.Identity   { return i.Admin }
func (i *Deposit) Actor() account.Identity            { return i.Depositor }
func (i *UpdateDeposit) Actor() account.Identity      { return i.Updater }
func (i *WithdrawToOwner) Actor() account.Identity    { return i.Caller }
func (i *WithdrawToTreasury) Actor() account.Identity { return i.Admin }
func (i *Finalise) Actor() account.Identity           { return i.Updater }

func (i *Initialise) pack(p *util.Packer) {
	p.Fixed(i.Admin[:])
	p.Fixed(i.Treasury[:])
}

func (i *TransferSuperAdmin) pack(p *util.Packer) {
	p.Fixed(i.Admin[:])
	p.Fixed(i.NewAdmin[:])
}

func (i *ChangeTreasury) pack(p *util.Packer) {
	p.Fixed(i.Admin[:])
	p.Fixed(i.Treasury[:])
}

func (i *InitUser) pack(p *util.Packer) {
	p.Fixed(i.Payer[:])
	p.Fixed(i.User[:])
}

func (i *ChangeRole) pack(p *util.Packer) {
	p.Fixed(i.Admin[:])
	p.Fixed(i.User[:])
	p.Varint(uint64(i.IsAdmin))
	p.Varint(uint64(i.IsUpdater))
}

func (i *RegisterCollection) pack(p *util.Packer) {
	p.Fixed(i.Admin[:])
	p.Fixed(i.Collection[:])
}

func (i *RevokeCollection) pack(p *util.Packer) {
	p.Fixed(i.Admin[:])
	p.Fixed(i.Collection[:])
}

func (i *Deposit) pack(p *util.Packer) {
	p.Fixed(i.Depositor[:])
	p.Fixed(i.Asset[:])
	p.Fixed(i.Collection[:])
	p.Bytes([]byte(i.UserTag))
}

// status is packed as 0 for unchanged, otherwise 1 + status
func (i *UpdateDeposit) pack(p *util.Packer) {
	p.Fixed(i.Updater[:])
	p.Fixed(i.Asset[:])
	if i.Status.Set {
		p.Varint(1 + uint64(i.Status.Status))
	} else {
		p.Varint(0)
	}
	p.Varint(uint64(i.Locked))
}

func (i *WithdrawToOwner) pack(p *util.Packer) {
	p.Fixed(i.Caller[:])
	p.Fixed(i.Asset[:])
}

func (i *WithdrawToTreasury) pack(p *util.Packer) {
	p.Fixed(i.Admin[:])
	p.Fixed(i.Asset[:])
}

func (i *Finalise) pack(p *util.Packer) {
	p.Fixed(i.Updater[:])
	p.Fixed(i.Asset[:])
}

// Pack - append an instruction: operation code followed by its fields
func Pack(p *util.Packer, i Instruction) {
	p.Varint(uint64(i.Operation()))
	i.pack(p)
}

// Unpack - read the next instruction
func Unpack(u *util.Unpacker) (Instruction, error) {
	code, err := u.Varint()
	if nil != err {
		return nil, err
	}

	r := reader{u: u}

	var i Instruction
	switch authority.Operation(code) {
	case authority.Initialise:
		i = &Initialise{Admin: r.identity(), Treasury: r.identity()}
	case authority.TransferSuperAdmin:
		i = &TransferSuperAdmin{Admin: r.identity(), NewAdmin: r.identity()}
	case authority.ChangeTreasury:
		i = &ChangeTreasury{Admin: r.identity(), Treasury: r.identity()}
	case authority.InitUser:
		i = &InitUser{Payer: r.identity(), User: r.identity()}
	case authority.ChangeRole:
		i = &ChangeRole{Admin: r.identity(), User: r.identity(), IsAdmin: r.option(), IsUpdater: r.option()}
	case authority.RegisterCollection:
		i = &RegisterCollection{Admin: r.identity(), Collection: r.identity()}
	case authority.RevokeCollection:
		i = &RevokeCollection{Admin: r.identity(), Collection: r.identity()}
	case authority.Deposit:
		i = &Deposit{Depositor: r.identity(), Asset: r.identity(), Collection: r.identity(), UserTag: r.text()}
	case authority.UpdateDeposit:
		i = &UpdateDeposit{Updater: r.identity(), Asset: r.identity(), Status: r.status(), Locked: r.option()}
	case authority.WithdrawToOwner:
		i = &WithdrawToOwner{Caller: r.identity(), Asset: r.identity()}
	case authority.WithdrawToTreasury:
		i = &WithdrawToTreasury{Admin: r.identity(), Asset: r.identity()}
	case authority.Finalise:
		i = &Finalise{Updater: r.identity(), Asset: r.identity()}
	default:
		return nil, fault.ErrUnknownInstruction
	}

	if nil != r.err {
		return nil, r.err
	}
	return i, nil
}

// keeps the first error so the field lists above stay flat
type reader struct {
	u   *util.Unpacker
	err error
}

func (r *reader) identity() account.Identity {
	if nil != r.err {
		return account.Zero
	}
	buffer, err := r.u.Fixed(account.IdentitySize)
	if nil != err {
		r.err = err
		return account.Zero
	}
	id, _ := account.IdentityFromBytes(buffer)
	return id
}

func (r *reader) option() Option {
	if nil != r.err {
		return Unchanged
	}
	n, err := r.u.Varint()
	if nil != err {
		r.err = err
		return Unchanged
	}
	o := Option(n)
	if n > uint64(SetTrue) {
		r.err = fault.ErrInvalidOption
		return Unchanged
	}
	return o
}

func (r *reader) status() StatusOption {
	if nil != r.err {
		return StatusOption{}
	}
	n, err := r.u.Varint()
	if nil != err {
		r.err = err
		return StatusOption{}
	}
	if 0 == n {
		return StatusOption{}
	}
	if n-1 > uint64(record.Delivered) {
		r.err = fault.ErrInvalidStatus
		return StatusOption{}
	}
	return StatusOf(record.Status(n - 1))
}

func (r *reader) text() string {
	if nil != r.err {
		return ""
	}
	buffer, err := r.u.Bytes()
	if nil != err {
		r.err = err
		return ""
	}
	return string(buffer)
}
