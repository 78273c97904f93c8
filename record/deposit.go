// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/binary"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/fault"
)

// deposit record layout
const (
	DepositOwnerOffset     = 8
	DepositAssetOffset     = 40
	DepositCreatedOffset   = 72
	DepositStatusOffset    = 80
	DepositLockedOffset    = 81
	DepositUserTagOffset   = 82
	DepositUserTagDataSize = 64
	DepositSize            = 152
)

// Deposit - one custodied asset
//
// Owner and Asset never change after creation
type Deposit struct {
	Owner   account.Identity `json:"owner"`
	Asset   account.Identity `json:"asset"`
	Created int64            `json:"created"`
	Status  Status           `json:"status"`
	Locked  bool             `json:"locked"`
	UserTag string           `json:"user"`
}

// CheckUserTag - reject a tag that does not fit the record
func CheckUserTag(tag string) error {
	if len(tag) > DepositUserTagDataSize {
		return fault.ErrUserTagTooLong
	}
	return nil
}

// Pack - serialise
func (d *Deposit) Pack() ([]byte, error) {
	if err := CheckUserTag(d.UserTag); nil != err {
		return nil, err
	}
	if !d.Status.IsValid() {
		return nil, fault.ErrInvalidStatus
	}

	buffer := newBuffer(DepositKind)
	putIdentity(buffer, DepositOwnerOffset, d.Owner)
	putIdentity(buffer, DepositAssetOffset, d.Asset)
	binary.LittleEndian.PutUint64(buffer[DepositCreatedOffset:], uint64(d.Created))
	buffer[DepositStatusOffset] = byte(d.Status)
	putBool(buffer, DepositLockedOffset, d.Locked)

	tagStart := DepositUserTagOffset + 4
	binary.LittleEndian.PutUint32(buffer[DepositUserTagOffset:], uint32(len(d.UserTag)))
	copy(buffer[tagStart:], d.UserTag)
	return buffer, nil
}

// UnpackDeposit - deserialise
func UnpackDeposit(buffer []byte) (*Deposit, error) {
	if err := checkBuffer(DepositKind, buffer); nil != err {
		return nil, err
	}

	status := Status(buffer[DepositStatusOffset])
	if !status.IsValid() {
		return nil, fault.ErrInvalidStatus
	}
	locked, err := getBool(buffer, DepositLockedOffset)
	if nil != err {
		return nil, err
	}

	tagLength := binary.LittleEndian.Uint32(buffer[DepositUserTagOffset:])
	if tagLength > DepositUserTagDataSize {
		return nil, fault.ErrUserTagTooLong
	}
	tagStart := DepositUserTagOffset + 4

	return &Deposit{
		Owner:   getIdentity(buffer, DepositOwnerOffset),
		Asset:   getIdentity(buffer, DepositAssetOffset),
		Created: int64(binary.LittleEndian.Uint64(buffer[DepositCreatedOffset:])),
		Status:  status,
		Locked:  locked,
		UserTag: string(buffer[tagStart : tagStart+int(tagLength)]),
	}, nil
}
