// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package program

import (
	"strings"

	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/record"
)

// Option - a flag update that can also leave the flag alone
//
// the zero value is Unchanged
type Option byte

// the option values
const (
	Unchanged Option = 0
	SetFalse  Option = 1
	SetTrue   Option = 2
)

// OptionOf - an explicit setting
func OptionOf(value bool) Option {
	if value {
		return SetTrue
	}
	return SetFalse
}

// OptionFromString - "true", "false" or "" / "unchanged"
func OptionFromString(s string) (Option, error) {
	switch strings.ToLower(s) {
	case "", "unchanged":
		return Unchanged, nil
	case "true", "yes", "1":
		return SetTrue, nil
	case "false", "no", "0":
		return SetFalse, nil
	default:
		return Unchanged, fault.ErrInvalidOption
	}
}

// Apply - the updated flag
func (o Option) Apply(current bool) bool {
	switch o {
	case SetTrue:
		return true
	case SetFalse:
		return false
	default:
		return current
	}
}

// IsValid - only the three defined values
func (o Option) IsValid() bool {
	return o <= SetTrue
}

func (o Option) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case SetFalse:
		return "false"
	case SetTrue:
		return "true"
	default:
		return "invalid"
	}
}

// StatusOption - a status update that can also leave status alone
type StatusOption struct {
	Set    bool
	Status record.Status
}

// StatusOf - an explicit status
func StatusOf(status record.Status) StatusOption {
	return StatusOption{Set: true, Status: status}
}

// Apply - the updated status
func (o StatusOption) Apply(current record.Status) record.Status {
	if o.Set {
		return o.Status
	}
	return current
}

func (o StatusOption) String() string {
	if !o.Set {
		return "unchanged"
	}
	return o.Status.String()
}
