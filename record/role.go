// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/binary"

	"github.com/bitmark-inc/custodyd/account"
)

// role record layout
const (
	RoleOwnerOffset        = 8
	RoleDepositCountOffset = 40
	RoleIsAdminOffset      = 48
	RoleIsUpdaterOffset    = 49
	RoleSize               = 56
)

// Role - the per principal role record
type Role struct {
	Owner        account.Identity `json:"owner"`
	DepositCount uint64           `json:"depositCount"`
	IsAdmin      bool             `json:"isAdmin"`
	IsUpdater    bool             `json:"isUpdater"`
}

// Pack - serialise
func (r *Role) Pack() []byte {
	buffer := newBuffer(RoleKind)
	putIdentity(buffer, RoleOwnerOffset, r.Owner)
	binary.LittleEndian.PutUint64(buffer[RoleDepositCountOffset:], r.DepositCount)
	putBool(buffer, RoleIsAdminOffset, r.IsAdmin)
	putBool(buffer, RoleIsUpdaterOffset, r.IsUpdater)
	return buffer
}

// UnpackRole - deserialise
func UnpackRole(buffer []byte) (*Role, error) {
	if err := checkBuffer(RoleKind, buffer); nil != err {
		return nil, err
	}
	isAdmin, err := getBool(buffer, RoleIsAdminOffset)
	if nil != err {
		return nil, err
	}
	isUpdater, err := getBool(buffer, RoleIsUpdaterOffset)
	if nil != err {
		return nil, err
	}
	return &Role{
		Owner:        getIdentity(buffer, RoleOwnerOffset),
		DepositCount: binary.LittleEndian.Uint64(buffer[RoleDepositCountOffset:]),
		IsAdmin:      isAdmin,
		IsUpdater:    isUpdater,
	}, nil
}
