// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/custodyd/fault"
)

// Transaction - a set of pending writes applied in one batch
//
// reads through a transaction see its own pending writes first;
// nothing reaches the database until Commit
type Transaction struct {
	batch   *leveldb.Batch
	pending map[string][]byte
	order   []string
}

// NewTransaction - start an empty transaction
func NewTransaction() *Transaction {
	return &Transaction{
		batch:   new(leveldb.Batch),
		pending: make(map[string][]byte),
	}
}

// Put - stage a key/value pair
func (t *Transaction) Put(p *PoolHandle, key []byte, value []byte) {
	prefixedKey := p.prefixKey(key)
	stored := make([]byte, len(value))
	copy(stored, value)

	k := string(prefixedKey)
	if _, ok := t.pending[k]; !ok {
		t.order = append(t.order, k)
	}
	t.pending[k] = stored
}

// Get - pending value if any, otherwise the stored value
func (t *Transaction) Get(p *PoolHandle, key []byte) []byte {
	if value, ok := t.pending[string(p.prefixKey(key))]; ok {
		return value
	}
	return p.Get(key)
}

// Size - number of distinct keys written
func (t *Transaction) Size() int {
	return len(t.pending)
}

// Commit - write all pending values atomically
//
// the transaction is empty afterwards
func (t *Transaction) Commit() error {
	poolData.Lock()
	defer poolData.Unlock()

	if nil == poolData.database {
		return fault.ErrNotConfigured
	}

	for _, k := range t.order {
		t.batch.Put([]byte(k), t.pending[k])
	}

	err := poolData.database.Write(t.batch, nil)
	if nil != err {
		t.Abort()
		return err
	}

	for _, k := range t.order {
		poolData.cache.Put([]byte(k), t.pending[k])
	}
	t.Abort()
	return nil
}

// Abort - discard all pending values
func (t *Transaction) Abort() {
	t.batch.Reset()
	t.pending = make(map[string][]byte)
	t.order = nil
}
