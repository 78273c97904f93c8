// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transaction - bundles of instructions applied all or nothing
//
// Wire format, all integers are varints:
//
//	version
//	nonce
//	signer count, signer identities (32 bytes each)
//	instruction count, instructions
//	signature count, signatures (length prefixed)
//
// Signatures cover everything before the signature count.
package transaction

import (
	"bytes"
	"encoding/hex"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/program"
	"github.com/bitmark-inc/custodyd/util"
)

const currentVersion = 1

// MaximumSigners - upper limit of distinct signers in a bundle
const MaximumSigners = 8

// MaximumBundleSize - upper limit of the wire form of a bundle
const MaximumBundleSize = 16384

// Signer - the acting principal's signing collaborator
type Signer interface {
	Identity() account.Identity
	Sign(message []byte) account.Signature
}

// Bundle - an ordered list of instructions with their signatures
type Bundle struct {
	Nonce        uint64
	Signers      []account.Identity
	Instructions []program.Instruction
	Signatures   []account.Signature
}

// Packed - the wire form of a bundle
type Packed []byte

// New - a bundle requiring a signature from every instruction actor
func New(nonce uint64, instructions ...program.Instruction) *Bundle {
	signers := []account.Identity{}
	seen := make(map[account.Identity]struct{})
	for _, i := range instructions {
		if _, ok := seen[i.Actor()]; ok {
			continue
		}
		seen[i.Actor()] = struct{}{}
		signers = append(signers, i.Actor())
	}

	return &Bundle{
		Nonce:        nonce,
		Signers:      signers,
		Instructions: instructions,
	}
}

// Message - the bytes covered by the signatures
func (b *Bundle) Message() []byte {
	p := util.Packer{}
	p.Varint(currentVersion)
	p.Varint(b.Nonce)
	p.Varint(uint64(len(b.Signers)))
	for _, s := range b.Signers {
		p.Fixed(s[:])
	}
	p.Varint(uint64(len(b.Instructions)))
	for _, i := range b.Instructions {
		program.Pack(&p, i)
	}
	return p
}

// Sign - add the signature of one of the required signers
//
// signatures are kept in signer order
func (b *Bundle) Sign(signer Signer) error {
	n := -1
	for i, s := range b.Signers {
		if s == signer.Identity() {
			n = i
			break
		}
	}
	if n < 0 {
		return fault.ErrMissingSignature
	}

	if len(b.Signatures) != len(b.Signers) {
		signatures := make([]account.Signature, len(b.Signers))
		copy(signatures, b.Signatures)
		b.Signatures = signatures
	}
	b.Signatures[n] = signer.Sign(b.Message())
	return nil
}

// Verify - every signer has signed the message
func (b *Bundle) Verify() error {
	if 0 == len(b.Signers) || len(b.Signers) > MaximumSigners {
		return fault.ErrSignatureCount
	}
	if len(b.Signatures) != len(b.Signers) {
		return fault.ErrSignatureCount
	}

	message := b.Message()
	for i, s := range b.Signers {
		if err := s.CheckSignature(message, b.Signatures[i]); nil != err {
			return err
		}
	}
	return nil
}

// Pack - wire form
func (b *Bundle) Pack() (Packed, error) {
	if 0 == len(b.Instructions) {
		return nil, fault.ErrEmptyBundle
	}
	if len(b.Instructions) > program.MaximumInstructions {
		return nil, fault.ErrTooManyInstructions
	}
	if len(b.Signers) > MaximumSigners {
		return nil, fault.ErrSignatureCount
	}

	p := util.Packer(b.Message())
	p.Varint(uint64(len(b.Signatures)))
	for _, s := range b.Signatures {
		p.Bytes(s)
	}
	return Packed(p), nil
}

// Unpack - decode the wire form
//
// signatures are not verified here
func (packed Packed) Unpack() (*Bundle, error) {
	if len(packed) > MaximumBundleSize {
		return nil, fault.ErrBundleTooLarge
	}
	u := util.NewUnpacker(packed)

	version, err := u.Varint()
	if nil != err {
		return nil, err
	}
	if currentVersion != version {
		return nil, fault.ErrUnknownVersion
	}

	b := &Bundle{}

	b.Nonce, err = u.Varint()
	if nil != err {
		return nil, err
	}

	n, err := u.Varint()
	if nil != err {
		return nil, err
	}
	if n > MaximumSigners {
		return nil, fault.ErrSignatureCount
	}
	for i := uint64(0); i < n; i += 1 {
		buffer, err := u.Fixed(account.IdentitySize)
		if nil != err {
			return nil, err
		}
		id, _ := account.IdentityFromBytes(buffer)
		b.Signers = append(b.Signers, id)
	}

	n, err = u.Varint()
	if nil != err {
		return nil, err
	}
	if 0 == n {
		return nil, fault.ErrEmptyBundle
	}
	if n > program.MaximumInstructions {
		return nil, fault.ErrTooManyInstructions
	}
	for i := uint64(0); i < n; i += 1 {
		instruction, err := program.Unpack(u)
		if nil != err {
			return nil, err
		}
		b.Instructions = append(b.Instructions, instruction)
	}

	n, err = u.Varint()
	if nil != err {
		return nil, err
	}
	if n > MaximumSigners {
		return nil, fault.ErrSignatureCount
	}
	for i := uint64(0); i < n; i += 1 {
		signature, err := u.Bytes()
		if nil != err {
			return nil, err
		}
		b.Signatures = append(b.Signatures, signature)
	}

	if 0 != u.Remaining() {
		return nil, fault.ErrTrailingData
	}

	// the digest is taken over the wire bytes, so only one
	// encoding of a bundle may exist
	canonical, err := b.Pack()
	if nil != err {
		return nil, err
	}
	if !bytes.Equal(canonical, packed) {
		return nil, fault.ErrNonCanonicalBundle
	}
	return b, nil
}

// Digest - the bundle id
func (packed Packed) Digest() Digest {
	return NewDigest(packed)
}

// MarshalText - hex form for JSON
func (packed Packed) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(packed)))
	hex.Encode(buffer, packed)
	return buffer, nil
}

// UnmarshalText - from hex
func (packed *Packed) UnmarshalText(s []byte) error {
	buffer := make([]byte, hex.DecodedLen(len(s)))
	n, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	*packed = buffer[:n]
	return nil
}
