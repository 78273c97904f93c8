// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/bitmark-inc/custodyd/fault"
)

// Varint64MaximumBytes - maximum possible number of bytes in Varint64
const Varint64MaximumBytes = 9

// Packer - append only buffer of varints and length prefixed byte strings
type Packer []byte

// Varint - append a 64 bit unsigned integer as a Varint64
//
// seven bits per byte, least significant group first, high bit set
// on every byte except the last; the ninth byte carries all 8 bits
func (p *Packer) Varint(value uint64) {
	buffer := *p
	for i := 0; i < Varint64MaximumBytes-1; i += 1 {
		if value < 0x80 {
			*p = append(buffer, byte(value))
			return
		}
		buffer = append(buffer, byte(value)|0x80)
		value >>= 7
	}
	*p = append(buffer, byte(value))
}

// Bytes - append a byte string preceded by its varint length
func (p *Packer) Bytes(data []byte) {
	p.Varint(uint64(len(data)))
	*p = append(*p, data...)
}

// Fixed - append a byte string with no length
func (p *Packer) Fixed(data []byte) {
	*p = append(*p, data...)
}

// Unpacker - read back the contents of a Packer
type Unpacker struct {
	buffer []byte
}

// NewUnpacker - start reading a packed buffer
func NewUnpacker(buffer []byte) *Unpacker {
	return &Unpacker{
		buffer: buffer,
	}
}

// Remaining - number of bytes not yet read
func (u *Unpacker) Remaining() int {
	return len(u.buffer)
}

// Varint - read one Varint64
//
// only the shortest encoding of a value is accepted
func (u *Unpacker) Varint() (uint64, error) {
	value := uint64(0)
	shift := uint(0)
	for n, b := range u.buffer {
		if n > 0 && 0 == b {
			return 0, fault.ErrNonCanonicalVarint
		}
		if n == Varint64MaximumBytes-1 {
			value |= uint64(b) << shift
			u.buffer = u.buffer[n+1:]
			return value, nil
		}
		value |= uint64(b&0x7f) << shift
		if 0 == b&0x80 {
			u.buffer = u.buffer[n+1:]
			return value, nil
		}
		shift += 7
	}
	return 0, fault.ErrTruncatedData
}

// Bytes - read a length prefixed byte string
//
// the result is a copy
func (u *Unpacker) Bytes() ([]byte, error) {
	length, err := u.Varint()
	if nil != err {
		return nil, err
	}
	if length > uint64(len(u.buffer)) {
		return nil, fault.ErrTruncatedData
	}
	return u.Fixed(int(length))
}

// Fixed - read exactly n bytes
//
// the result is a copy
func (u *Unpacker) Fixed(n int) ([]byte, error) {
	if n < 0 || n > len(u.buffer) {
		return nil, fault.ErrTruncatedData
	}
	data := make([]byte, n)
	copy(data, u.buffer[:n])
	u.buffer = u.buffer[n:]
	return data, nil
}
