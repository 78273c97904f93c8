// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/custodyd/fault"
)

// IdentitySize - number of bytes in any identity or address
const IdentitySize = ed25519.PublicKeySize

// Identity - a principal (ed25519 public key), an asset, a collection
// or a derived storage address
//
// the text form is plain base58 with no checksum
type Identity [IdentitySize]byte

// Zero - the all zero identity
var Zero Identity

// IdentityFromBase58 - decode the text form of an identity
func IdentityFromBase58(s string) (Identity, error) {
	buffer, err := base58.Decode(s)
	if nil != err {
		return Zero, fault.ErrInvalidIdentity
	}
	return IdentityFromBytes(buffer)
}

// IdentityFromBytes - convert a raw 32 byte value to an identity
func IdentityFromBytes(buffer []byte) (Identity, error) {
	id := Identity{}
	if len(buffer) != IdentitySize {
		return Zero, fault.ErrInvalidIdentity
	}
	copy(id[:], buffer)
	return id, nil
}

// Bytes - raw bytes of the identity
func (id Identity) Bytes() []byte {
	return id[:]
}

// IsZero - true for the all zero identity
func (id Identity) IsZero() bool {
	return id == Zero
}

// Less - byte order comparison, used to sort results
func (id Identity) Less(other Identity) bool {
	return bytes.Compare(id[:], other[:]) < 0
}

// String - base58 form for the fmt package (for %s)
func (id Identity) String() string {
	return base58.Encode(id[:])
}

// GoString - for the fmt package (for %#v)
func (id Identity) GoString() string {
	return "<identity:" + base58.Encode(id[:]) + ">"
}

// MarshalText - convert identity to base58 text
func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - convert base58 text to an identity
func (id *Identity) UnmarshalText(s []byte) error {
	decoded, err := IdentityFromBase58(string(s))
	if nil != err {
		return err
	}
	*id = decoded
	return nil
}
