// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package custody_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/custody"
	"github.com/bitmark-inc/custodyd/derive"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/fixtures"
	"github.com/bitmark-inc/custodyd/ledger"
	"github.com/bitmark-inc/custodyd/ledger/mocks"
	"github.com/bitmark-inc/custodyd/metadata"
	metadatamocks "github.com/bitmark-inc/custodyd/metadata/mocks"
	"github.com/bitmark-inc/custodyd/program"
	"github.com/bitmark-inc/custodyd/query"
	"github.com/bitmark-inc/custodyd/record"
	"github.com/bitmark-inc/custodyd/storage"
	"github.com/bitmark-inc/custodyd/transaction"
)

var (
	programID  = fixtures.Identity(0x01)
	collection = fixtures.Identity(0x02)
	other      = fixtures.Identity(0x03)
	superAdmin = fixtures.Key(0x10)
	treasury   = fixtures.Key(0x11)
	updater    = fixtures.Key(0x12)
	depositor  = fixtures.Key(0x13)
	stranger   = fixtures.Key(0x14)
)

// records served by a mock client
type records map[account.Identity][]byte

func (r records) fetch(address account.Identity) ([]byte, error) {
	return r[address], nil
}

func initialised() records {
	global := &record.Global{
		SuperAdmin: superAdmin.Identity(),
		Treasury:   treasury.Identity(),
	}
	allowed := &record.Collection{
		Collection: collection,
		Allowed:    true,
	}
	return records{
		derive.Global(programID):                           global.Pack(),
		derive.Collection(programID, collection):           allowed.Pack(),
		derive.Role(programID, superAdmin.Identity()):      (&record.Role{Owner: superAdmin.Identity(), IsAdmin: true}).Pack(),
		derive.Role(programID, updater.Identity()):         (&record.Role{Owner: updater.Identity(), IsUpdater: true}).Pack(),
		derive.Role(programID, stranger.Identity()):        (&record.Role{Owner: stranger.Identity()}).Pack(),
		derive.Collection(programID, fixtures.Identity(9)): (&record.Collection{Collection: fixtures.Identity(9)}).Pack(),
		derive.Deposit(programID, fixtures.Identity(0x40)): mustDeposit(fixtures.Identity(0x40), true),
		derive.Deposit(programID, fixtures.Identity(0x41)): mustDeposit(fixtures.Identity(0x41), false),
	}
}

func mustDeposit(asset account.Identity, locked bool) []byte {
	d := &record.Deposit{
		Owner:  depositor.Identity(),
		Asset:  asset,
		Status: record.Shipped,
		Locked: locked,
	}
	data, err := d.Pack()
	if nil != err {
		panic(err)
	}
	return data
}

func newMocked(t *testing.T, ctl *gomock.Controller, signer custody.Signer, r records) (*custody.Custody, *mocks.MockClient, *metadatamocks.MockSource) {
	client := mocks.NewMockClient(ctl)
	client.EXPECT().Fetch(gomock.Any()).DoAndReturn(r.fetch).AnyTimes()
	source := metadatamocks.NewMockSource(ctl)
	return custody.New(client, metadata.New(source, 0), programID, signer), client, source
}

// requests that would fail on the ledger are never submitted
func TestLocalRejection(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	asset := fixtures.Identity(0x40)
	unlocked := fixtures.Identity(0x41)
	missing := fixtures.Identity(0x42)

	tests := []struct {
		signer *account.PrivateKey
		run    func(c *custody.Custody) (*ledger.Receipt, error)
		err    error
	}{
		{superAdmin, func(c *custody.Custody) (*ledger.Receipt, error) {
			return c.Initialise(treasury.Identity())
		}, fault.ErrAlreadyInitialised},
		{stranger, func(c *custody.Custody) (*ledger.Receipt, error) {
			return c.Initialise(treasury.Identity())
		}, fault.ErrNotSuperAdmin},
		{updater, func(c *custody.Custody) (*ledger.Receipt, error) {
			return c.TransferSuperAdmin(stranger.Identity())
		}, fault.ErrNotSuperAdmin},
		{stranger, func(c *custody.Custody) (*ledger.Receipt, error) {
			return c.ChangeTreasury(other)
		}, fault.ErrNotAdmin},
		{depositor, func(c *custody.Custody) (*ledger.Receipt, error) {
			return c.ChangeRole(other, program.SetTrue, program.Unchanged)
		}, fault.ErrMissingRoleRecord},
		{updater, func(c *custody.Custody) (*ledger.Receipt, error) {
			return c.RegisterCollection(other)
		}, fault.ErrNotAdmin},
		{stranger, func(c *custody.Custody) (*ledger.Receipt, error) {
			return c.RevokeCollection(collection)
		}, fault.ErrNotAdmin},
		{stranger, func(c *custody.Custody) (*ledger.Receipt, error) {
			return c.UpdateDeposit(asset, program.StatusOf(record.Delivered), program.Unchanged)
		}, fault.ErrNotUpdater},
		{updater, func(c *custody.Custody) (*ledger.Receipt, error) {
			return c.UpdateDeposit(missing, program.StatusOf(record.Delivered), program.Unchanged)
		}, fault.ErrNotDeposited},
		{stranger, func(c *custody.Custody) (*ledger.Receipt, error) {
			return c.WithdrawToOwner(unlocked)
		}, fault.ErrNotOwnerOrAdmin},
		{depositor, func(c *custody.Custody) (*ledger.Receipt, error) {
			return c.WithdrawToOwner(asset)
		}, fault.ErrDisabledWithdrawal},
		{superAdmin, func(c *custody.Custody) (*ledger.Receipt, error) {
			return c.WithdrawToTreasury(asset)
		}, fault.ErrDisabledWithdrawal},
		{updater, func(c *custody.Custody) (*ledger.Receipt, error) {
			return c.WithdrawToTreasury(unlocked)
		}, fault.ErrNotAdmin},
		{stranger, func(c *custody.Custody) (*ledger.Receipt, error) {
			return c.Finalise(unlocked)
		}, fault.ErrNotUpdater},
		{superAdmin, func(c *custody.Custody) (*ledger.Receipt, error) {
			return c.Initialise(account.Zero)
		}, fault.ErrRequiredTreasury},
		{superAdmin, func(c *custody.Custody) (*ledger.Receipt, error) {
			return c.ChangeRole(other, program.Option(7), program.Unchanged)
		}, fault.ErrInvalidOption},
		{updater, func(c *custody.Custody) (*ledger.Receipt, error) {
			return c.UpdateDeposit(asset, program.StatusOption{Set: true, Status: record.Status(9)}, program.Unchanged)
		}, fault.ErrInvalidStatus},
		{updater, func(c *custody.Custody) (*ledger.Receipt, error) {
			return c.Finalise(account.Zero)
		}, fault.ErrRequiredAsset},
	}

	for i, item := range tests {
		c, _, _ := newMocked(t, ctl, item.signer, initialised())
		receipt, err := item.run(c)
		assert.Equal(t, item.err, err, "%d: error", i)
		assert.Nil(t, receipt, "%d: receipt", i)
	}
}

func TestNotInitialised(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c, _, _ := newMocked(t, ctl, superAdmin, records{})
	_, err := c.RegisterCollection(collection)
	assert.Equal(t, fault.ErrNotInitialised, err, "register before initialise")

	global, err := c.Global()
	assert.Nil(t, err, "global error")
	assert.Nil(t, global, "global found")
}

func TestFetchError(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	client := mocks.NewMockClient(ctl)
	client.EXPECT().Fetch(derive.Global(programID)).Return(nil, fault.ErrNotConfigured).Times(1)

	c := custody.New(client, metadata.New(metadatamocks.NewMockSource(ctl), 0), programID, superAdmin)
	_, err := c.ChangeTreasury(other)
	assert.Equal(t, fault.ErrNotConfigured, err, "fetch error not returned")
}

// first deposit by a principal without a role record adds init user
func TestDepositAddsInitUser(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	asset := fixtures.Identity(0x50)
	c, client, source := newMocked(t, ctl, depositor, initialised())

	source.EXPECT().Asset(asset).Return(&record.Asset{
		Asset:      asset,
		Holder:     depositor.Identity(),
		Collection: collection,
	}, nil).Times(1)

	var submitted *transaction.Bundle
	client.EXPECT().Submit(gomock.Any()).DoAndReturn(func(packed transaction.Packed) (*ledger.Receipt, error) {
		b, err := packed.Unpack()
		assert.Nil(t, err, "unpack error")
		assert.Nil(t, b.Verify(), "verify error")
		submitted = b
		return &ledger.Receipt{TxId: packed.Digest()}, nil
	}).Times(1)

	receipt, err := c.CreateDeposit(asset, account.Zero, "u-42")
	assert.Nil(t, err, "deposit error")
	assert.NotNil(t, receipt, "no receipt")

	assert.Equal(t, 2, len(submitted.Instructions), "instruction count")
	assert.Equal(t, &program.InitUser{Payer: depositor.Identity(), User: depositor.Identity()}, submitted.Instructions[0], "init user")
	assert.Equal(t, &program.Deposit{
		Depositor:  depositor.Identity(),
		Asset:      asset,
		Collection: collection,
		UserTag:    "u-42",
	}, submitted.Instructions[1], "deposit")
	assert.Equal(t, []account.Identity{depositor.Identity()}, submitted.Signers, "signers")
}

func TestDepositChecks(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c, _, source := newMocked(t, ctl, stranger, initialised())

	deposited := fixtures.Identity(0x40)
	revoked := fixtures.Identity(0x51)
	unknown := fixtures.Identity(0x52)

	source.EXPECT().Asset(deposited).Return(&record.Asset{Asset: deposited, Holder: c.Vault(), Collection: collection}, nil).Times(2)
	source.EXPECT().Asset(revoked).Return(&record.Asset{Asset: revoked, Collection: fixtures.Identity(9)}, nil).Times(1)
	source.EXPECT().Asset(unknown).Return(nil, fault.ErrAssetNotFound).Times(1)

	_, err := c.CreateDeposit(deposited, account.Zero, "")
	assert.Equal(t, fault.ErrAlreadyDeposited, err, "double deposit")

	_, err = c.CreateDeposit(revoked, account.Zero, "")
	assert.Equal(t, fault.ErrCollectionNotAllowed, err, "revoked collection")

	_, err = c.CreateDeposit(unknown, account.Zero, "")
	assert.Equal(t, fault.ErrAssetNotFound, err, "unknown asset")

	// cached from the first call
	_, err = c.CreateDeposit(deposited, other, "")
	assert.Equal(t, fault.ErrCollectionMismatch, err, "explicit collection")

	long := string(make([]byte, record.DepositUserTagDataSize+1))
	_, err = c.CreateDeposit(deposited, account.Zero, long)
	assert.Equal(t, fault.ErrUserTagTooLong, err, "long tag")
}

func TestValidate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	c, _, source := newMocked(t, ctl, stranger, initialised())

	err := c.Validate(&program.WithdrawToOwner{Caller: depositor.Identity(), Asset: fixtures.Identity(0x41)})
	assert.Nil(t, err, "owner may withdraw")

	withdrawn := fixtures.Identity(0x41)
	source.EXPECT().Asset(withdrawn).Return(&record.Asset{Asset: withdrawn, Holder: depositor.Identity(), Collection: collection}, nil).Times(1)
	err = c.Validate(&program.Deposit{Depositor: depositor.Identity(), Asset: withdrawn, Collection: collection})
	assert.Nil(t, err, "deposit of a withdrawn asset")

	err = c.Validate(&program.Finalise{Updater: updater.Identity(), Asset: fixtures.Identity(0x40)})
	assert.Nil(t, err, "finalise ignores lock")

	err = c.Validate(&program.InitUser{Payer: stranger.Identity(), User: other})
	assert.Nil(t, err, "init user is open")

	err = c.Validate(&program.WithdrawToOwner{Caller: depositor.Identity(), Asset: fixtures.Identity(0x40)})
	assert.Equal(t, fault.ErrDisabledWithdrawal, err, "locked")
}

// the full workflow against a local ledger
func TestWorkflow(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	database, remove := fixtures.TempDatabase()
	defer remove()
	err := storage.Initialise(database, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	l := ledger.NewLocal(program.New(programID), true)
	resolver := metadata.New(l, 0)
	client := func(key *account.PrivateKey) *custody.Custody {
		return custody.New(l, resolver, programID, key)
	}

	admin := client(superAdmin)
	_, err = admin.Initialise(treasury.Identity())
	assert.Nil(t, err, "initialise error")
	_, err = admin.ChangeRole(updater.Identity(), program.Unchanged, program.SetTrue)
	assert.Nil(t, err, "change role error")
	_, err = admin.RegisterCollection(collection)
	assert.Nil(t, err, "register error")

	assets := []account.Identity{fixtures.Identity(0x60), fixtures.Identity(0x61)}
	for _, a := range assets {
		err = l.Issue(a, depositor.Identity(), collection)
		assert.Nil(t, err, "issue error")
	}

	user := client(depositor)
	for _, a := range assets {
		_, err = user.CreateDeposit(a, collection, "u-42")
		assert.Nil(t, err, "deposit error")
	}

	role, err := user.Role(depositor.Identity())
	assert.Nil(t, err, "role error")
	assert.Equal(t, uint64(2), role.DepositCount, "deposit count")

	global, err := admin.Global()
	assert.Nil(t, err, "global error")
	assert.Equal(t, uint64(2), global.TotalDepositCount, "total count")

	worker := client(updater)
	_, err = worker.UpdateDeposit(assets[0], program.StatusOf(record.Shipped), program.SetTrue)
	assert.Nil(t, err, "update error")

	_, err = user.WithdrawToOwner(assets[0])
	assert.Equal(t, fault.ErrDisabledWithdrawal, err, "locked withdraw")

	_, err = client(stranger).WithdrawToOwner(assets[1])
	assert.Equal(t, fault.ErrNotOwnerOrAdmin, err, "stranger withdraw")

	locked := true
	cursor, err := admin.Deposits(query.Filter{Locked: &locked})
	assert.Nil(t, err, "query error")
	items, err := cursor.All()
	assert.Nil(t, err, "decode error")
	assert.Equal(t, 1, len(items), "locked count")
	assert.Equal(t, assets[0], items[0].Deposit.Asset, "locked asset")

	_, err = worker.Finalise(assets[0])
	assert.Nil(t, err, "finalise error")
	a, err := l.Asset(assets[0])
	assert.Nil(t, err, "asset error")
	assert.Equal(t, treasury.Identity(), a.Holder, "finalised holder")

	_, err = user.WithdrawToOwner(assets[1])
	assert.Nil(t, err, "withdraw error")
	a, err = l.Asset(assets[1])
	assert.Nil(t, err, "asset error")
	assert.Equal(t, depositor.Identity(), a.Holder, "withdrawn holder")

	_, err = user.WithdrawToOwner(assets[1])
	assert.Equal(t, fault.ErrNotInCustody, err, "second withdraw")

	// a withdrawn asset can come back into custody
	_, err = worker.UpdateDeposit(assets[1], program.StatusOf(record.Delivered), program.Unchanged)
	assert.Nil(t, err, "update error")
	_, err = user.CreateDeposit(assets[1], collection, "u-43")
	assert.Nil(t, err, "re-deposit error")

	d, err := user.Deposit(assets[1])
	assert.Nil(t, err, "deposit error")
	assert.Equal(t, record.Created, d.Status, "re-deposit status")
	assert.False(t, d.Locked, "re-deposit locked")
	assert.Equal(t, "u-43", d.UserTag, "re-deposit tag")

	role, err = user.Role(depositor.Identity())
	assert.Nil(t, err, "role error")
	assert.Equal(t, uint64(3), role.DepositCount, "deposit count after re-deposit")

	_, err = user.CreateDeposit(assets[1], collection, "u-44")
	assert.Equal(t, fault.ErrAlreadyDeposited, err, "deposit while in custody")

	roles, err := admin.Roles()
	assert.Nil(t, err, "roles error")
	assert.Equal(t, 3, roles.Count(), "role count")
}
