// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - fixed layout records held at derived addresses
//
// Every record begins with an 8 byte discriminator, the first 8 bytes
// of sha256("account:" + kind name), followed by little endian fields
// at fixed offsets. Each kind has a distinct size so a scan can select
// a kind by size alone.
package record

import (
	"bytes"
	"crypto/sha256"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/fault"
)

// DiscriminatorSize - bytes at the start of every record
const DiscriminatorSize = 8

// Kind - enumeration of record kinds
type Kind int

// the record kinds
const (
	GlobalKind Kind = iota
	RoleKind
	CollectionKind
	DepositKind
)

// names hashed into the discriminators
var kindNames = map[Kind]string{
	GlobalKind:     "Global",
	RoleKind:       "Role",
	CollectionKind: "Collection",
	DepositKind:    "Deposit",
}

// String - kind name
func (kind Kind) String() string {
	if name, ok := kindNames[kind]; ok {
		return name
	}
	return "Unknown"
}

// Size - serialised size of a kind
func (kind Kind) Size() int {
	switch kind {
	case GlobalKind:
		return GlobalSize
	case RoleKind:
		return RoleSize
	case CollectionKind:
		return CollectionSize
	case DepositKind:
		return DepositSize
	default:
		return 0
	}
}

// Discriminator - the 8 byte prefix of a kind
func (kind Kind) Discriminator() []byte {
	h := sha256.Sum256([]byte("account:" + kind.String()))
	return h[:DiscriminatorSize]
}

// KindOf - determine the kind of a serialised record
func KindOf(buffer []byte) (Kind, error) {
	for kind := GlobalKind; kind <= DepositKind; kind += 1 {
		if len(buffer) == kind.Size() && bytes.HasPrefix(buffer, kind.Discriminator()) {
			return kind, nil
		}
	}
	return 0, fault.ErrInvalidRecordKind
}

// allocate a zeroed buffer with the discriminator set
func newBuffer(kind Kind) []byte {
	buffer := make([]byte, kind.Size())
	copy(buffer, kind.Discriminator())
	return buffer
}

// check size and discriminator before decoding
func checkBuffer(kind Kind, buffer []byte) error {
	if len(buffer) != kind.Size() {
		return fault.ErrInvalidRecordSize
	}
	if !bytes.Equal(buffer[:DiscriminatorSize], kind.Discriminator()) {
		return fault.ErrInvalidRecordKind
	}
	return nil
}

func putIdentity(buffer []byte, offset int, id account.Identity) {
	copy(buffer[offset:offset+account.IdentitySize], id[:])
}

func getIdentity(buffer []byte, offset int) account.Identity {
	id := account.Identity{}
	copy(id[:], buffer[offset:offset+account.IdentitySize])
	return id
}

func putBool(buffer []byte, offset int, value bool) {
	if value {
		buffer[offset] = 1
	} else {
		buffer[offset] = 0
	}
}

func getBool(buffer []byte, offset int) (bool, error) {
	switch buffer[offset] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fault.ErrInvalidBoolean
	}
}

// BoolByte - the stored form of a flag, for scan predicates
func BoolByte(value bool) byte {
	if value {
		return 1
	}
	return 0
}

// Decode - any serialised record as its structure
func Decode(buffer []byte) (Kind, interface{}, error) {
	kind, err := KindOf(buffer)
	if nil != err {
		return 0, nil, err
	}

	var r interface{}
	switch kind {
	case GlobalKind:
		r, err = UnpackGlobal(buffer)
	case RoleKind:
		r, err = UnpackRole(buffer)
	case CollectionKind:
		r, err = UnpackCollection(buffer)
	case DepositKind:
		r, err = UnpackDeposit(buffer)
	}
	if nil != err {
		return 0, nil, err
	}
	return kind, r, nil
}
