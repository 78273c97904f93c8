// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Each class of error is a distinct string type so that the class of
// any error can be determined by the IsErr… functions:
//
//	DeniedError       - the actor lacks a role flag or identity match
//	PreconditionError - record state forbids the request
//	InvalidError      - malformed input
//	NotFoundError     - missing item
//	ExistsError       - duplicate item
//	ProcessError      - local processing failure
package fault
