// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"
)

// PoolHandle - the structure of a pool handle
type PoolHandle struct {
	prefix byte
	limit  []byte
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Get - read a value for a given key
//
// returns nil if the key is not present
// the result is shared with the cache and must not be modified
func (p *PoolHandle) Get(key []byte) []byte {
	poolData.RLock()
	defer poolData.RUnlock()

	if nil == poolData.database {
		return nil
	}

	prefixedKey := p.prefixKey(key)

	if data, found := poolData.cache.Get(prefixedKey); found {
		if !data.present {
			return nil
		}
		return data.value
	}

	value, err := poolData.database.Get(prefixedKey, nil)
	if leveldb.ErrNotFound == err {
		poolData.cache.Absent(prefixedKey)
		return nil
	}
	logger.PanicIfError("pool.Get", err)

	poolData.cache.Put(prefixedKey, value)
	return value
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	return nil != p.Get(key)
}
