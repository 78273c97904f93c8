// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"strconv"
	"strings"

	"github.com/bitmark-inc/custodyd/fault"
)

// Status - shipment progress of a deposit
type Status byte

// the deposit states
const (
	Created      Status = 0
	CopyPrepared Status = 1
	Shipped      Status = 2
	Delivered    Status = 3
)

var statusNames = []string{
	Created:      "CREATED",
	CopyPrepared: "COPY_PREPARED",
	Shipped:      "SHIPPED",
	Delivered:    "DELIVERED",
}

// IsValid - true for a defined status
func (s Status) IsValid() bool {
	return s <= Delivered
}

// String - the status name
func (s Status) String() string {
	if !s.IsValid() {
		return "UNKNOWN(" + strconv.Itoa(int(s)) + ")"
	}
	return statusNames[s]
}

// MarshalText - status as its name
func (s Status) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fault.ErrInvalidStatus
	}
	return []byte(s.String()), nil
}

// UnmarshalText - status from its name
func (s *Status) UnmarshalText(text []byte) error {
	status, err := StatusFromString(string(text))
	if nil != err {
		return err
	}
	*s = status
	return nil
}

// StatusFromString - accepts the name in any case, with '-' or '_',
// or the numeric value
func StatusFromString(text string) (Status, error) {
	name := strings.ToUpper(strings.Replace(text, "-", "_", -1))
	for i, n := range statusNames {
		if n == name {
			return Status(i), nil
		}
	}
	n, err := strconv.Atoi(text)
	if nil != err || n < 0 || n > int(Delivered) {
		return 0, fault.ErrInvalidStatus
	}
	return Status(n), nil
}
