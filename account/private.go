// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/rand"
	"encoding/json"
	"io/ioutil"
	"os"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/custodyd/fault"
)

// PrivateKey - an ed25519 signing key
type PrivateKey struct {
	key ed25519.PrivateKey
}

// NewPrivateKey - generate a random key
func NewPrivateKey() (*PrivateKey, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromSeed - deterministic key from a 32 byte seed
func PrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fault.ErrInvalidKeypair
	}
	return &PrivateKey{key: ed25519.NewKeyFromSeed(seed)}, nil
}

// PrivateKeyFromBytes - key from the 64 byte private||public form
//
// the public half must match the private half
func PrivateKeyFromBytes(buffer []byte) (*PrivateKey, error) {
	if len(buffer) != ed25519.PrivateKeySize {
		return nil, fault.ErrInvalidKeypair
	}
	key := ed25519.NewKeyFromSeed(buffer[:ed25519.SeedSize])
	for i, b := range key {
		if b != buffer[i] {
			return nil, fault.ErrInvalidKeypair
		}
	}
	return &PrivateKey{key: key}, nil
}

// PrivateKeyFromKeypairFile - read a keypair file
//
// the file is a JSON array of the 64 bytes private||public
func PrivateKeyFromKeypairFile(filename string) (*PrivateKey, error) {
	data, err := ioutil.ReadFile(filename)
	if nil != err {
		return nil, err
	}

	numbers := []int{}
	err = json.Unmarshal(data, &numbers)
	if nil != err {
		return nil, fault.ErrInvalidKeypair
	}

	buffer := make([]byte, len(numbers))
	for i, n := range numbers {
		if n < 0 || n > 255 {
			return nil, fault.ErrInvalidKeypair
		}
		buffer[i] = byte(n)
	}
	return PrivateKeyFromBytes(buffer)
}

// WriteKeypairFile - save the key in keypair file form
//
// an existing file is never overwritten
func (privateKey *PrivateKey) WriteKeypairFile(filename string) error {
	if _, err := os.Stat(filename); nil == err {
		return fault.ErrKeyFileAlreadyExists
	}

	numbers := make([]int, len(privateKey.key))
	for i, b := range privateKey.key {
		numbers[i] = int(b)
	}
	data, err := json.Marshal(numbers)
	if nil != err {
		return err
	}
	return ioutil.WriteFile(filename, data, 0600)
}

// Identity - the public identity of this key
func (privateKey *PrivateKey) Identity() Identity {
	id := Identity{}
	copy(id[:], privateKey.key.Public().(ed25519.PublicKey))
	return id
}

// Sign - sign a message
func (privateKey *PrivateKey) Sign(message []byte) Signature {
	return Signature(ed25519.Sign(privateKey.key, message))
}
