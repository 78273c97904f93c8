// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/custodyd/account"
)

// collection record layout
const (
	CollectionIdentityOffset = 8
	CollectionAllowedOffset  = 40
	CollectionSize           = 48
)

// Collection - allowlist entry for one collection
//
// revocation clears Allowed, the record is never removed
type Collection struct {
	Collection account.Identity `json:"collection"`
	Allowed    bool             `json:"allowed"`
}

// Pack - serialise
func (c *Collection) Pack() []byte {
	buffer := newBuffer(CollectionKind)
	putIdentity(buffer, CollectionIdentityOffset, c.Collection)
	putBool(buffer, CollectionAllowedOffset, c.Allowed)
	return buffer
}

// UnpackCollection - deserialise
func UnpackCollection(buffer []byte) (*Collection, error) {
	if err := checkBuffer(CollectionKind, buffer); nil != err {
		return nil, err
	}
	allowed, err := getBool(buffer, CollectionAllowedOffset)
	if nil != err {
		return nil, err
	}
	return &Collection{
		Collection: getIdentity(buffer, CollectionIdentityOffset),
		Allowed:    allowed,
	}, nil
}
