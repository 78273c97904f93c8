// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package derive - deterministic storage addresses
//
// An address is computed from a seed class, zero or more
// discriminators and the program identity. The seed class is always
// hashed first so no two classes can share an address for the same
// discriminator. Candidates are tried from bump 255 downwards and the
// first one that is not a point on the ed25519 curve is accepted, so
// no private key can exist for a derived address.
package derive

import (
	"crypto/sha256"

	"filippo.io/edwards25519"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/fault"
)

// Class - the first seed of every derivation
type Class string

// the seed classes
const (
	GlobalClass     Class = "global-authority"
	RoleClass       Class = "user-pool"
	CollectionClass Class = "collection-pool"
	DepositClass    Class = "nft-deposit"
)

const marker = "ProgramDerivedAddress"

// Address - derive an address and its bump
//
// an empty discriminator is rejected
func Address(programID account.Identity, class Class, discriminators ...[]byte) (account.Identity, byte, error) {
	if 0 == len(class) {
		return account.Zero, 0, fault.ErrEmptyDiscriminator
	}
	for _, d := range discriminators {
		if 0 == len(d) {
			return account.Zero, 0, fault.ErrEmptyDiscriminator
		}
	}

	for bump := 255; bump >= 0; bump -= 1 {
		h := sha256.New()
		h.Write([]byte(class))
		for _, d := range discriminators {
			h.Write(d)
		}
		h.Write([]byte{byte(bump)})
		h.Write(programID[:])
		h.Write([]byte(marker))

		candidate := account.Identity{}
		copy(candidate[:], h.Sum(nil))

		if !onCurve(candidate) {
			return candidate, byte(bump), nil
		}
	}
	return account.Zero, 0, fault.ErrNoAddressFound
}

// true if the bytes decode to a valid curve point
func onCurve(id account.Identity) bool {
	_, err := new(edwards25519.Point).SetBytes(id[:])
	return nil == err
}

// Global - address of the singleton global record
//
// the same address is the vault that holds custodied assets
func Global(programID account.Identity) account.Identity {
	address, _, err := Address(programID, GlobalClass)
	if nil != err {
		panic("global address derivation failed: " + err.Error())
	}
	return address
}

// Role - address of a principal's role record
func Role(programID account.Identity, user account.Identity) account.Identity {
	return mustDerive(programID, RoleClass, user)
}

// Collection - address of a collection allowlist record
func Collection(programID account.Identity, collection account.Identity) account.Identity {
	return mustDerive(programID, CollectionClass, collection)
}

// Deposit - address of an asset's deposit record
func Deposit(programID account.Identity, asset account.Identity) account.Identity {
	return mustDerive(programID, DepositClass, asset)
}

// identities are always 32 bytes so the only failure left is
// exhausting all bumps, which has probability 2^-256
func mustDerive(programID account.Identity, class Class, id account.Identity) account.Identity {
	address, _, err := Address(programID, class, id[:])
	if nil != err {
		panic("address derivation failed: " + err.Error())
	}
	return address
}
