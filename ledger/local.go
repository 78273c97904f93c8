// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/program"
	"github.com/bitmark-inc/custodyd/record"
	"github.com/bitmark-inc/custodyd/storage"
	"github.com/bitmark-inc/custodyd/transaction"
	"github.com/bitmark-inc/logger"
)

// Local - ledger kept in the storage pools of this process
//
// submissions are serialised; scans and fetches do not wait for them
type Local struct {
	sync.Mutex
	log     *logger.L
	program *program.Program
	issuing bool
	clock   func() time.Time
}

// NewLocal - ledger for one program deployment
//
// storage must already be initialised; issuing enables Issue
func NewLocal(p *program.Program, issuing bool) *Local {
	return &Local{
		log:     logger.New("ledger"),
		program: p,
		issuing: issuing,
		clock:   time.Now,
	}
}

// Program - the program executed by this ledger
func (l *Local) Program() *program.Program {
	return l.program
}

// Submit - verify, execute and commit a bundle
func (l *Local) Submit(packed transaction.Packed) (*Receipt, error) {
	bundle, err := packed.Unpack()
	if nil != err {
		return nil, err
	}
	err = bundle.Verify()
	if nil != err {
		return nil, err
	}

	digest := packed.Digest()

	l.Lock()
	defer l.Unlock()

	if storage.Pool.Bundles.Has(digest[:]) {
		return nil, fault.ErrAlreadyProcessed
	}

	now := l.clock().Unix()

	trx := storage.NewTransaction()
	state := &bundleState{trx: trx}

	err = l.program.Execute(state, bundle.Signers, now, bundle.Instructions)
	if nil != err {
		trx.Abort()
		l.log.Debugf("bundle: %s  rejected: %s", digest, err)
		return nil, err
	}

	timestamp := make([]byte, 8)
	binary.BigEndian.PutUint64(timestamp, uint64(now))
	trx.Put(storage.Pool.Bundles, digest[:], timestamp)

	err = trx.Commit()
	if nil != err {
		l.log.Errorf("bundle: %s  commit error: %s", digest, err)
		return nil, err
	}

	l.log.Infof("bundle: %s  instructions: %d", digest, len(bundle.Instructions))

	return &Receipt{
		TxId:      digest,
		Timestamp: now,
	}, nil
}

// Fetch - raw record at an address, nil if absent
func (l *Local) Fetch(address account.Identity) ([]byte, error) {
	data := storage.Pool.Accounts.Get(address[:])
	if nil == data {
		return nil, nil
	}
	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// Scan - every record of the given size matching all predicates
//
// results are in address order
func (l *Local) Scan(size int, predicates []Predicate) ([]Account, error) {
	if size <= 0 {
		return nil, fault.ErrInvalidRecordSize
	}
	for _, p := range predicates {
		if p.Offset < 0 || 0 == len(p.Bytes) || p.Offset+len(p.Bytes) > size {
			return nil, fault.ErrInvalidPredicate
		}
	}

	results := []Account{}
	err := storage.Pool.Accounts.NewFetchCursor().Map(func(key []byte, value []byte) error {
		if len(value) != size || !MatchAll(predicates, value) {
			return nil
		}
		address, err := account.IdentityFromBytes(key)
		if nil != err {
			return err
		}
		results = append(results, Account{
			Address: address,
			Data:    value,
		})
		return nil
	})
	if nil != err {
		return nil, err
	}
	return results, nil
}

// Asset - holder and collection of an asset
func (l *Local) Asset(asset account.Identity) (*record.Asset, error) {
	data := storage.Pool.Holdings.Get(asset[:])
	if nil == data {
		return nil, fault.ErrAssetNotFound
	}
	return record.UnpackHolding(asset, data)
}

// Issue - create a new asset held by owner
//
// only on chains that allow it
func (l *Local) Issue(asset account.Identity, owner account.Identity, collection account.Identity) error {
	if !l.issuing {
		return fault.ErrIssueDisabled
	}

	l.Lock()
	defer l.Unlock()

	if storage.Pool.Holdings.Has(asset[:]) {
		return fault.ErrAssetExists
	}

	a := &record.Asset{
		Asset:      asset,
		Holder:     owner,
		Collection: collection,
	}
	trx := storage.NewTransaction()
	trx.Put(storage.Pool.Holdings, asset[:], a.PackHolding())
	err := trx.Commit()
	if nil != err {
		return err
	}

	l.log.Infof("issued asset: %s  owner: %s  collection: %s", asset, owner, collection)
	return nil
}

// program view of a pending storage transaction
type bundleState struct {
	trx *storage.Transaction
}

func (s *bundleState) Record(address account.Identity) []byte {
	return s.trx.Get(storage.Pool.Accounts, address[:])
}

func (s *bundleState) SetRecord(address account.Identity, data []byte) {
	s.trx.Put(storage.Pool.Accounts, address[:], data)
}

func (s *bundleState) Asset(asset account.Identity) *record.Asset {
	data := s.trx.Get(storage.Pool.Holdings, asset[:])
	if nil == data {
		return nil
	}
	a, err := record.UnpackHolding(asset, data)
	logger.PanicIfError("ledger: corrupt holding", err)
	return a
}

func (s *bundleState) SetHolder(asset account.Identity, holder account.Identity) {
	a := s.Asset(asset)
	if nil == a {
		logger.Panicf("ledger: move of missing asset: %s", asset)
	}
	a.Holder = holder
	s.trx.Put(storage.Pool.Holdings, asset[:], a.PackHolding())
}
