// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/binary"

	"github.com/bitmark-inc/custodyd/account"
)

// global record layout
const (
	GlobalSuperAdminOffset   = 8
	GlobalTreasuryOffset     = 40
	GlobalTotalDepositOffset = 72
	GlobalSize               = 80
)

// Global - the singleton system record
type Global struct {
	SuperAdmin        account.Identity `json:"superAdmin"`
	Treasury          account.Identity `json:"treasury"`
	TotalDepositCount uint64           `json:"totalDepositCount"`
}

// Pack - serialise
func (g *Global) Pack() []byte {
	buffer := newBuffer(GlobalKind)
	putIdentity(buffer, GlobalSuperAdminOffset, g.SuperAdmin)
	putIdentity(buffer, GlobalTreasuryOffset, g.Treasury)
	binary.LittleEndian.PutUint64(buffer[GlobalTotalDepositOffset:], g.TotalDepositCount)
	return buffer
}

// UnpackGlobal - deserialise
func UnpackGlobal(buffer []byte) (*Global, error) {
	if err := checkBuffer(GlobalKind, buffer); nil != err {
		return nil, err
	}
	return &Global{
		SuperAdmin:        getIdentity(buffer, GlobalSuperAdminOffset),
		Treasury:          getIdentity(buffer, GlobalTreasuryOffset),
		TotalDepositCount: binary.LittleEndian.Uint64(buffer[GlobalTotalDepositOffset:]),
	}, nil
}
