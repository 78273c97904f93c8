// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package custody - build, check, sign and submit custody bundles
//
// Each state transition has one method. Before anything is sent the
// current records are fetched and the same authority checks that the
// program applies are run locally, so a request that cannot succeed
// never reaches the ledger.
package custody

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/authority"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/ledger"
	"github.com/bitmark-inc/custodyd/metadata"
	"github.com/bitmark-inc/custodyd/program"
	"github.com/bitmark-inc/custodyd/record"
	"github.com/bitmark-inc/custodyd/transaction"
	"github.com/bitmark-inc/logger"
)

// Signer - the key that authorises submitted bundles
type Signer interface {
	Identity() account.Identity
	Sign(message []byte) account.Signature
}

// Custody - client side of the custody program
type Custody struct {
	log      *logger.L
	client   ledger.Client
	resolver metadata.Resolver
	program  *program.Program
	signer   Signer
	nonce    func() uint64
}

// New - custody client acting as signer
func New(client ledger.Client, resolver metadata.Resolver, programID account.Identity, signer Signer) *Custody {
	return &Custody{
		log:      logger.New("custody"),
		client:   client,
		resolver: resolver,
		program:  program.New(programID),
		signer:   signer,
		nonce:    randomNonce,
	}
}

// Identity - the signer
func (c *Custody) Identity() account.Identity {
	return c.signer.Identity()
}

// ProgramID - the deployment every address is derived from
func (c *Custody) ProgramID() account.Identity {
	return c.program.ID()
}

// Vault - holder of custodied assets
func (c *Custody) Vault() account.Identity {
	return c.program.Vault()
}

func randomNonce() uint64 {
	buffer := make([]byte, 8)
	_, err := rand.Read(buffer)
	logger.PanicIfError("custody: nonce", err)
	return binary.LittleEndian.Uint64(buffer)
}

// Initialise - create the global record with the signer as super admin
func (c *Custody) Initialise(treasury account.Identity) (*ledger.Receipt, error) {
	if treasury.IsZero() {
		return nil, fault.ErrRequiredTreasury
	}
	return c.submit(&program.Initialise{
		Admin:    c.Identity(),
		Treasury: treasury,
	})
}

// TransferSuperAdmin - hand the super admin over to another principal
func (c *Custody) TransferSuperAdmin(newAdmin account.Identity) (*ledger.Receipt, error) {
	if newAdmin.IsZero() {
		return nil, fault.ErrRequiredUser
	}
	return c.submit(&program.TransferSuperAdmin{
		Admin:    c.Identity(),
		NewAdmin: newAdmin,
	})
}

// ChangeTreasury - set the withdrawal destination for confiscated assets
func (c *Custody) ChangeTreasury(treasury account.Identity) (*ledger.Receipt, error) {
	if treasury.IsZero() {
		return nil, fault.ErrRequiredTreasury
	}
	return c.submit(&program.ChangeTreasury{
		Admin:    c.Identity(),
		Treasury: treasury,
	})
}

// InitUser - create an empty role record for a user, paid by the signer
func (c *Custody) InitUser(user account.Identity) (*ledger.Receipt, error) {
	if user.IsZero() {
		return nil, fault.ErrRequiredUser
	}
	return c.submit(&program.InitUser{
		Payer: c.Identity(),
		User:  user,
	})
}

// ChangeRole - alter a user's flags, unchanged options keep their value
func (c *Custody) ChangeRole(user account.Identity, isAdmin program.Option, isUpdater program.Option) (*ledger.Receipt, error) {
	if user.IsZero() {
		return nil, fault.ErrRequiredUser
	}
	if !isAdmin.IsValid() || !isUpdater.IsValid() {
		return nil, fault.ErrInvalidOption
	}
	return c.submit(&program.ChangeRole{
		Admin:     c.Identity(),
		User:      user,
		IsAdmin:   isAdmin,
		IsUpdater: isUpdater,
	})
}

// RegisterCollection - allow deposits from a collection
func (c *Custody) RegisterCollection(collection account.Identity) (*ledger.Receipt, error) {
	if collection.IsZero() {
		return nil, fault.ErrRequiredCollection
	}
	return c.submit(&program.RegisterCollection{
		Admin:      c.Identity(),
		Collection: collection,
	})
}

// RevokeCollection - refuse further deposits from a collection
func (c *Custody) RevokeCollection(collection account.Identity) (*ledger.Receipt, error) {
	if collection.IsZero() {
		return nil, fault.ErrRequiredCollection
	}
	return c.submit(&program.RevokeCollection{
		Admin:      c.Identity(),
		Collection: collection,
	})
}

// CreateDeposit - move an asset held by the signer into custody
//
// the collection is taken from the asset's metadata; a non-zero
// collection argument must agree with it. If the signer has no role
// record one is created in the same bundle.
func (c *Custody) CreateDeposit(asset account.Identity, collection account.Identity, userTag string) (*ledger.Receipt, error) {
	if asset.IsZero() {
		return nil, fault.ErrRequiredAsset
	}
	if err := record.CheckUserTag(userTag); nil != err {
		return nil, err
	}

	declared, err := c.resolver.Collection(asset)
	if nil != err {
		return nil, err
	}
	if !collection.IsZero() && collection != declared {
		return nil, fault.ErrCollectionMismatch
	}

	depositor := c.Identity()
	instructions := []program.Instruction{}

	role, err := c.Role(depositor)
	if nil != err {
		return nil, err
	}
	if nil == role {
		c.log.Infof("no role record for: %s, adding init user", depositor)
		instructions = append(instructions, &program.InitUser{
			Payer: depositor,
			User:  depositor,
		})
	}

	instructions = append(instructions, &program.Deposit{
		Depositor:  depositor,
		Asset:      asset,
		Collection: declared,
		UserTag:    userTag,
	})
	return c.submit(instructions...)
}

// UpdateDeposit - change status and lock of a custodied asset
func (c *Custody) UpdateDeposit(asset account.Identity, status program.StatusOption, locked program.Option) (*ledger.Receipt, error) {
	if asset.IsZero() {
		return nil, fault.ErrRequiredAsset
	}
	if status.Set && !status.Status.IsValid() {
		return nil, fault.ErrInvalidStatus
	}
	if !locked.IsValid() {
		return nil, fault.ErrInvalidOption
	}
	return c.submit(&program.UpdateDeposit{
		Updater: c.Identity(),
		Asset:   asset,
		Status:  status,
		Locked:  locked,
	})
}

// WithdrawToOwner - return an unlocked asset to its depositor
func (c *Custody) WithdrawToOwner(asset account.Identity) (*ledger.Receipt, error) {
	if asset.IsZero() {
		return nil, fault.ErrRequiredAsset
	}
	return c.submit(&program.WithdrawToOwner{
		Caller: c.Identity(),
		Asset:  asset,
	})
}

// WithdrawToTreasury - move an unlocked asset to the treasury
func (c *Custody) WithdrawToTreasury(asset account.Identity) (*ledger.Receipt, error) {
	if asset.IsZero() {
		return nil, fault.ErrRequiredAsset
	}
	return c.submit(&program.WithdrawToTreasury{
		Admin: c.Identity(),
		Asset: asset,
	})
}

// Finalise - settle a deposit by moving the asset to the treasury
func (c *Custody) Finalise(asset account.Identity) (*ledger.Receipt, error) {
	if asset.IsZero() {
		return nil, fault.ErrRequiredAsset
	}
	return c.submit(&program.Finalise{
		Updater: c.Identity(),
		Asset:   asset,
	})
}

// check every instruction, then sign and send them as one bundle
func (c *Custody) submit(instructions ...program.Instruction) (*ledger.Receipt, error) {
	for _, i := range instructions {
		if authority.InitUser == i.Operation() {
			continue
		}
		if err := c.Validate(i); nil != err {
			c.log.Debugf("%s rejected locally: %s", i.Operation(), err)
			return nil, err
		}
	}

	bundle := transaction.New(c.nonce(), instructions...)
	if err := bundle.Sign(c.signer); nil != err {
		return nil, err
	}
	packed, err := bundle.Pack()
	if nil != err {
		return nil, err
	}

	receipt, err := c.client.Submit(packed)
	if nil != err {
		c.log.Warnf("submit %s failed: %s", packed.Digest(), err)
		return nil, err
	}
	c.log.Infof("submitted: %s", receipt.TxId)
	return receipt, nil
}
