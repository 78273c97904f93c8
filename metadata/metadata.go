// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metadata - find the collection an asset declares
package metadata

import (
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/record"
	"github.com/bitmark-inc/logger"
)

// Source - raw asset lookup
type Source interface {
	Asset(asset account.Identity) (*record.Asset, error)
}

// Resolver - asset lookups needed to build a deposit
type Resolver interface {
	Collection(asset account.Identity) (account.Identity, error)

	// Holder - current holder, never cached
	Holder(asset account.Identity) (account.Identity, error)
}

// DefaultExpiry - how long a resolved collection is remembered
const DefaultExpiry = 10 * time.Minute

type cachedResolver struct {
	log    *logger.L
	source Source
	cache  *cache.Cache
}

// New - resolver that remembers answers from a source
//
// a declared collection never changes so only successful lookups
// are cached
func New(source Source, expiry time.Duration) Resolver {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &cachedResolver{
		log:    logger.New("metadata"),
		source: source,
		cache:  cache.New(expiry, 2*expiry),
	}
}

func (r *cachedResolver) Collection(asset account.Identity) (account.Identity, error) {
	key := asset.String()
	if c, found := r.cache.Get(key); found {
		return c.(account.Identity), nil
	}

	a, err := r.source.Asset(asset)
	if nil != err {
		r.log.Debugf("asset: %s  lookup error: %s", asset, err)
		return account.Zero, err
	}

	r.cache.SetDefault(key, a.Collection)
	return a.Collection, nil
}

func (r *cachedResolver) Holder(asset account.Identity) (account.Identity, error) {
	a, err := r.source.Asset(asset)
	if nil != err {
		r.log.Debugf("asset: %s  holder lookup error: %s", asset, err)
		return account.Zero, err
	}

	r.cache.SetDefault(asset.String(), a.Collection)
	return a.Holder, nil
}
