// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

const (
	defaultExpiration = 1 * time.Minute
	cleanupInterval   = 2 * time.Minute
)

// read cache in front of the database
//
// absent keys are cached too so repeated misses do not reach leveldb
type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	present bool
	value   []byte
}

func newCache() *dbCache {
	return &dbCache{
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

// second value is false if the key has never been cached
func (c *dbCache) Get(key []byte) (cacheData, bool) {
	obj, found := c.cache.Get(string(key))
	if !found {
		return cacheData{}, false
	}
	return obj.(cacheData), true
}

func (c *dbCache) Put(key []byte, value []byte) {
	c.cache.Set(string(key), cacheData{present: true, value: value}, cache.DefaultExpiration)
}

func (c *dbCache) Absent(key []byte) {
	c.cache.Set(string(key), cacheData{present: false}, cache.DefaultExpiration)
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
