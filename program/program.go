// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package program - the custody state machine
//
// The program owns every record. It executes a list of instructions
// against a State; the caller applies the resulting changes only if
// the whole list succeeds.
package program

import (
	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/authority"
	"github.com/bitmark-inc/custodyd/derive"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/record"
)

// MaximumInstructions - upper limit for one bundle
const MaximumInstructions = 16

// State - the ledger as seen by the program
//
// reads must observe earlier writes of the same execution
type State interface {
	Record(address account.Identity) []byte
	SetRecord(address account.Identity, data []byte)
	Asset(asset account.Identity) *record.Asset
	SetHolder(asset account.Identity, holder account.Identity)
}

// Program - one deployment of the custody program
type Program struct {
	id    account.Identity
	vault account.Identity
}

// New - program for a deployment identity
func New(id account.Identity) *Program {
	return &Program{
		id:    id,
		vault: derive.Global(id),
	}
}

// ID - the deployment identity used in every derivation
func (p *Program) ID() account.Identity {
	return p.id
}

// Vault - the holder of all custodied assets
//
// this is also the address of the global record
func (p *Program) Vault() account.Identity {
	return p.vault
}

// Execute - run all instructions in order
//
// the first failure is returned and state may be partly written,
// the caller must then discard it
func (p *Program) Execute(state State, signers []account.Identity, now int64, instructions []Instruction) error {
	if 0 == len(instructions) {
		return fault.ErrEmptyBundle
	}
	if len(instructions) > MaximumInstructions {
		return fault.ErrTooManyInstructions
	}

	signed := make(map[account.Identity]struct{}, len(signers))
	for _, s := range signers {
		signed[s] = struct{}{}
	}

	for _, i := range instructions {
		if _, ok := signed[i.Actor()]; !ok {
			return fault.ErrMissingSignature
		}
		if err := p.execute(state, now, i); nil != err {
			return err
		}
	}
	return nil
}

func (p *Program) execute(state State, now int64, instruction Instruction) error {
	switch i := instruction.(type) {
	case *Initialise:
		return p.initialise(state, i)
	case *TransferSuperAdmin:
		return p.transferSuperAdmin(state, i)
	case *ChangeTreasury:
		return p.changeTreasury(state, i)
	case *InitUser:
		return p.initUser(state, i)
	case *ChangeRole:
		return p.changeRole(state, i)
	case *RegisterCollection:
		return p.setCollection(state, i.Admin, i.Collection, authority.RegisterCollection, true)
	case *RevokeCollection:
		return p.setCollection(state, i.Admin, i.Collection, authority.RevokeCollection, false)
	case *Deposit:
		return p.deposit(state, now, i)
	case *UpdateDeposit:
		return p.updateDeposit(state, i)
	case *WithdrawToOwner:
		return p.withdraw(state, authority.WithdrawToOwner, i.Caller, i.Asset)
	case *WithdrawToTreasury:
		return p.withdraw(state, authority.WithdrawToTreasury, i.Admin, i.Asset)
	case *Finalise:
		return p.withdraw(state, authority.Finalise, i.Updater, i.Asset)
	default:
		return fault.ErrUnknownInstruction
	}
}

func (p *Program) initialise(state State, i *Initialise) error {
	global, err := p.Global(state)
	if nil != err {
		return err
	}
	err = authority.Check(&authority.Request{
		Operation: authority.Initialise,
		Actor:     i.Admin,
		Global:    global,
	})
	if nil != err {
		return err
	}

	global = &record.Global{
		SuperAdmin: i.Admin,
		Treasury:   i.Treasury,
	}
	state.SetRecord(p.vault, global.Pack())

	// bootstrap: the first admin
	role, err := p.Role(state, i.Admin)
	if nil != err {
		return err
	}
	if nil == role {
		role = &record.Role{Owner: i.Admin}
	}
	role.IsAdmin = true
	state.SetRecord(derive.Role(p.id, i.Admin), role.Pack())
	return nil
}

func (p *Program) transferSuperAdmin(state State, i *TransferSuperAdmin) error {
	global, err := p.Global(state)
	if nil != err {
		return err
	}
	err = authority.Check(&authority.Request{
		Operation: authority.TransferSuperAdmin,
		Actor:     i.Admin,
		Global:    global,
	})
	if nil != err {
		return err
	}

	global.SuperAdmin = i.NewAdmin
	state.SetRecord(p.vault, global.Pack())
	return nil
}

func (p *Program) changeTreasury(state State, i *ChangeTreasury) error {
	global, role, err := p.globalAndRole(state, i.Admin)
	if nil != err {
		return err
	}
	err = authority.Check(&authority.Request{
		Operation: authority.ChangeTreasury,
		Actor:     i.Admin,
		Global:    global,
		Role:      role,
	})
	if nil != err {
		return err
	}

	global.Treasury = i.Treasury
	state.SetRecord(p.vault, global.Pack())
	return nil
}

// an existing record is left untouched
func (p *Program) initUser(state State, i *InitUser) error {
	err := authority.Check(&authority.Request{
		Operation: authority.InitUser,
		Actor:     i.Payer,
	})
	if nil != err {
		return err
	}

	role, err := p.Role(state, i.User)
	if nil != err || nil != role {
		return err
	}
	role = &record.Role{Owner: i.User}
	state.SetRecord(derive.Role(p.id, i.User), role.Pack())
	return nil
}

// creates the target's role record if missing
func (p *Program) changeRole(state State, i *ChangeRole) error {
	if !i.IsAdmin.IsValid() || !i.IsUpdater.IsValid() {
		return fault.ErrInvalidOption
	}
	global, role, err := p.globalAndRole(state, i.Admin)
	if nil != err {
		return err
	}
	err = authority.Check(&authority.Request{
		Operation: authority.ChangeRole,
		Actor:     i.Admin,
		Global:    global,
		Role:      role,
	})
	if nil != err {
		return err
	}

	target, err := p.Role(state, i.User)
	if nil != err {
		return err
	}
	if nil == target {
		target = &record.Role{Owner: i.User}
	}
	target.IsAdmin = i.IsAdmin.Apply(target.IsAdmin)
	target.IsUpdater = i.IsUpdater.Apply(target.IsUpdater)
	state.SetRecord(derive.Role(p.id, i.User), target.Pack())
	return nil
}

func (p *Program) setCollection(state State, admin account.Identity, collection account.Identity, op authority.Operation, allowed bool) error {
	global, role, err := p.globalAndRole(state, admin)
	if nil != err {
		return err
	}
	err = authority.Check(&authority.Request{
		Operation: op,
		Actor:     admin,
		Global:    global,
		Role:      role,
	})
	if nil != err {
		return err
	}

	c := &record.Collection{
		Collection: collection,
		Allowed:    allowed,
	}
	state.SetRecord(derive.Collection(p.id, collection), c.Pack())
	return nil
}

func (p *Program) deposit(state State, now int64, i *Deposit) error {
	if err := record.CheckUserTag(i.UserTag); nil != err {
		return err
	}

	global, role, err := p.globalAndRole(state, i.Depositor)
	if nil != err {
		return err
	}
	collection, err := p.Collection(state, i.Collection)
	if nil != err {
		return err
	}
	existing, err := p.Deposit(state, i.Asset)
	if nil != err {
		return err
	}
	asset := state.Asset(i.Asset)
	err = authority.Check(&authority.Request{
		Operation:  authority.Deposit,
		Actor:      i.Depositor,
		Global:     global,
		Role:       role,
		Deposit:    existing,
		Collection: collection,
		InCustody:  nil != asset && asset.Holder == p.vault,
	})
	if nil != err {
		return err
	}

	if nil == asset {
		return fault.ErrAssetNotFound
	}
	if asset.Collection != i.Collection {
		return fault.ErrCollectionMismatch
	}
	if asset.Holder != i.Depositor {
		return fault.ErrNotAssetHolder
	}
	if nil == role {
		return fault.ErrRoleRecordNotFound
	}

	d := &record.Deposit{
		Owner:   i.Depositor,
		Asset:   i.Asset,
		Created: now,
		Status:  record.Created,
		Locked:  false,
		UserTag: i.UserTag,
	}
	data, err := d.Pack()
	if nil != err {
		return err
	}
	state.SetRecord(derive.Deposit(p.id, i.Asset), data)

	global.TotalDepositCount += 1
	state.SetRecord(p.vault, global.Pack())

	role.DepositCount += 1
	state.SetRecord(derive.Role(p.id, i.Depositor), role.Pack())

	state.SetHolder(i.Asset, p.vault)
	return nil
}

// no ordering is imposed on status values
func (p *Program) updateDeposit(state State, i *UpdateDeposit) error {
	if i.Status.Set && !i.Status.Status.IsValid() {
		return fault.ErrInvalidStatus
	}
	if !i.Locked.IsValid() {
		return fault.ErrInvalidOption
	}

	global, role, err := p.globalAndRole(state, i.Updater)
	if nil != err {
		return err
	}
	d, err := p.Deposit(state, i.Asset)
	if nil != err {
		return err
	}
	err = authority.Check(&authority.Request{
		Operation: authority.UpdateDeposit,
		Actor:     i.Updater,
		Global:    global,
		Role:      role,
		Deposit:   d,
	})
	if nil != err {
		return err
	}

	d.Status = i.Status.Apply(d.Status)
	d.Locked = i.Locked.Apply(d.Locked)
	data, err := d.Pack()
	if nil != err {
		return err
	}
	state.SetRecord(derive.Deposit(p.id, i.Asset), data)
	return nil
}

// the three ways an asset leaves custody, the deposit record stays
// until the asset is deposited again
func (p *Program) withdraw(state State, op authority.Operation, actor account.Identity, assetID account.Identity) error {
	global, role, err := p.globalAndRole(state, actor)
	if nil != err {
		return err
	}
	d, err := p.Deposit(state, assetID)
	if nil != err {
		return err
	}
	err = authority.Check(&authority.Request{
		Operation: op,
		Actor:     actor,
		Global:    global,
		Role:      role,
		Deposit:   d,
	})
	if nil != err {
		return err
	}

	asset := state.Asset(assetID)
	if nil == asset || asset.Holder != p.vault {
		return fault.ErrNotInCustody
	}

	destination := global.Treasury
	if authority.WithdrawToOwner == op {
		destination = d.Owner
	}
	state.SetHolder(assetID, destination)
	return nil
}
