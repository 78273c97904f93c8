// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - leveldb pools for the custody ledger
//
// A single database holds several pools, each distinguished by a
// one byte key prefix:
//
//	A<address>   -> record data
//	H<asset>     -> holder ++ collection
//	T<digest>    -> commit timestamp (big endian uint64)
//
// Reads go through a short lived cache. Writes only happen through a
// Transaction so that all changes of one bundle are committed in a
// single leveldb batch.
package storage
