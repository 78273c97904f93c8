// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package derive_test

import (
	"crypto/sha256"
	"testing"

	"filippo.io/edwards25519"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/derive"
	"github.com/bitmark-inc/custodyd/fault"
)

var classes = []derive.Class{
	derive.GlobalClass,
	derive.RoleClass,
	derive.CollectionClass,
	derive.DepositClass,
}

func makeIdentity(b byte) account.Identity {
	id := account.Identity{}
	for i := range id {
		id[i] = b ^ byte(i)
	}
	return id
}

func TestDeterministic(t *testing.T) {
	program := makeIdentity(0x11)

	for i := 0; i < 32; i += 1 {
		d := makeIdentity(byte(i))
		for _, class := range classes {
			a1, b1, err := derive.Address(program, class, d[:])
			assert.Nil(t, err, "%s: derive error", class)
			a2, b2, err := derive.Address(program, class, d[:])
			assert.Nil(t, err, "%s: derive error", class)
			assert.Equal(t, a1, a2, "%s: address not deterministic", class)
			assert.Equal(t, b1, b2, "%s: bump not deterministic", class)
		}
	}
}

func TestNamespaceSeparation(t *testing.T) {
	program := makeIdentity(0x22)

	for i := 0; i < 32; i += 1 {
		d := makeIdentity(byte(i))
		seen := make(map[account.Identity]derive.Class)
		for _, class := range classes {
			address, _, err := derive.Address(program, class, d[:])
			assert.Nil(t, err, "%s: derive error", class)
			previous, ok := seen[address]
			assert.False(t, ok, "%s collides with %s", class, previous)
			seen[address] = class
		}
	}
}

func TestProgramSeparation(t *testing.T) {
	user := makeIdentity(0x33)
	assert.NotEqual(t,
		derive.Role(makeIdentity(0x01), user),
		derive.Role(makeIdentity(0x02), user),
		"different programs share an address",
	)
}

func TestOffCurveWithBump(t *testing.T) {
	program := makeIdentity(0x44)
	asset := makeIdentity(0x55)

	address, bump, err := derive.Address(program, derive.DepositClass, asset[:])
	assert.Nil(t, err, "derive error")
	assert.Equal(t, derive.Deposit(program, asset), address, "helper disagrees")

	// recompute the hash for the returned bump
	h := sha256.New()
	h.Write([]byte(derive.DepositClass))
	h.Write(asset[:])
	h.Write([]byte{bump})
	h.Write(program[:])
	h.Write([]byte("ProgramDerivedAddress"))
	assert.Equal(t, h.Sum(nil), address[:], "address is not the hash for its bump")

	_, err = new(edwards25519.Point).SetBytes(address[:])
	assert.NotNil(t, err, "derived address is on the curve")
}

func TestEmptyDiscriminator(t *testing.T) {
	program := makeIdentity(0x66)

	_, _, err := derive.Address(program, derive.RoleClass, []byte{})
	assert.Equal(t, fault.ErrEmptyDiscriminator, err, "empty discriminator accepted")
	assert.True(t, fault.IsErrInvalid(err), "wrong class")

	_, _, err = derive.Address(program, "", []byte{1})
	assert.Equal(t, fault.ErrEmptyDiscriminator, err, "empty class accepted")

	_, _, err = derive.Address(program, derive.GlobalClass)
	assert.Nil(t, err, "global needs no discriminator")
}
