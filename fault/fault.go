// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type DeniedError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type PreconditionError GenericError
type ProcessError GenericError

// every error value by its message, used to restore errors that
// crossed the RPC boundary as plain text
var registry = make(map[string]error)

// authorization errors - keep in alphabetic order
var (
	ErrMissingRoleRecord = denied("caller has no role record")
	ErrMissingSignature  = denied("instruction actor has not signed the bundle")
	ErrNotAdmin          = denied("caller is not an admin")
	ErrNotOwnerOrAdmin   = denied("caller is neither the deposit owner nor an admin")
	ErrNotSuperAdmin     = denied("caller is not the super admin")
	ErrNotUpdater        = denied("caller is neither an updater nor an admin")
)

// state dependent errors - keep in alphabetic order
var (
	ErrAlreadyDeposited     = precondition("asset is already deposited")
	ErrAlreadyInitialised   = precondition("global record is already initialised")
	ErrAlreadyProcessed     = precondition("bundle has already been processed")
	ErrCollectionMismatch   = precondition("asset does not belong to the collection")
	ErrCollectionNotAllowed = precondition("collection is not allowed")
	ErrDisabledWithdrawal   = precondition("withdrawal is disabled while the deposit is locked")
	ErrIssueDisabled        = precondition("asset issue is disabled on this chain")
	ErrNotAssetHolder       = precondition("depositor does not hold the asset")
	ErrNotDeposited         = precondition("asset is not deposited")
	ErrNotInCustody         = precondition("asset is no longer in custody")
	ErrNotInitialised       = precondition("global record is not initialised")
	ErrRoleRecordNotFound   = precondition("role record not found")
)

// common errors - keep in alphabetic order
var (
	ErrAssetExists                  = exists("asset already exists")
	ErrAssetNotFound                = notFound("asset not found")
	ErrBundleTooLarge               = invalid("bundle is too large")
	ErrCertificateFileAlreadyExists = exists("certificate file already exists")
	ErrEmptyBundle                  = invalid("bundle has no instructions")
	ErrEmptyDiscriminator           = invalid("discriminator is empty")
	ErrInvalidBoolean               = invalid("boolean field is not 0 or 1")
	ErrInvalidChain                 = invalid("chain name is invalid")
	ErrInvalidCount                 = invalid("count is invalid")
	ErrInvalidIPAddress             = invalid("IP address is invalid")
	ErrInvalidIdentity              = invalid("identity is invalid")
	ErrInvalidKeypair               = invalid("keypair is invalid")
	ErrInvalidOption                = invalid("option must be true, false or unchanged")
	ErrInvalidPredicate             = invalid("scan predicate is invalid")
	ErrInvalidProgramID             = invalid("program id is invalid")
	ErrInvalidRecordKind            = invalid("record discriminator does not match")
	ErrInvalidRecordSize            = invalid("record size is invalid")
	ErrInvalidSignature             = invalid("invalid signature")
	ErrInvalidStatus                = invalid("deposit status is invalid")
	ErrKeyFileAlreadyExists         = exists("key file already exists")
	ErrMissingParameters            = invalid("missing parameters")
	ErrModuleInitialised            = process("already initialised")
	ErrModuleNotInitialised         = process("not initialised")
	ErrNoAddressFound               = notFound("no address derived for any bump")
	ErrNonCanonicalBundle           = invalid("bundle is not in canonical form")
	ErrNonCanonicalVarint           = invalid("varint is not in canonical form")
	ErrNotConfigured                = process("not configured")
	ErrRateLimiting                 = process("rate limiting")
	ErrRequiredAsset                = invalid("asset is required")
	ErrRequiredCollection           = invalid("collection is required")
	ErrRequiredConnect              = invalid("connect is required")
	ErrRequiredKeypair              = invalid("keypair is required")
	ErrRequiredTreasury             = invalid("treasury is required")
	ErrRequiredUser                 = invalid("user is required")
	ErrSignatureCount               = invalid("signature count is invalid")
	ErrTooManyInstructions          = invalid("too many instructions in bundle")
	ErrTrailingData                 = invalid("packed data has trailing bytes")
	ErrTruncatedData                = invalid("packed data is truncated")
	ErrUnknownInstruction           = invalid("instruction kind is unknown")
	ErrUnknownVersion               = invalid("bundle version is unknown")
	ErrUserTagTooLong               = invalid("user tag is too long")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e DeniedError) Error() string       { return string(e) }
func (e ExistsError) Error() string       { return string(e) }
func (e InvalidError) Error() string      { return string(e) }
func (e NotFoundError) Error() string     { return string(e) }
func (e PreconditionError) Error() string { return string(e) }
func (e ProcessError) Error() string      { return string(e) }

// determine the class of an error
func IsErrDenied(e error) bool       { _, ok := e.(DeniedError); return ok }
func IsErrExists(e error) bool       { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool      { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool     { _, ok := e.(NotFoundError); return ok }
func IsErrPrecondition(e error) bool { _, ok := e.(PreconditionError); return ok }
func IsErrProcess(e error) bool      { _, ok := e.(ProcessError); return ok }

// Lookup - return the registered error with the given message
//
// the second value is false if no error has that message
func Lookup(message string) (error, bool) {
	err, ok := registry[message]
	return err, ok
}

func register(message string, err error) {
	if _, ok := registry[message]; ok {
		panic("duplicate error message: " + message)
	}
	registry[message] = err
}

func denied(s string) DeniedError {
	e := DeniedError(s)
	register(s, e)
	return e
}

func exists(s string) ExistsError {
	e := ExistsError(s)
	register(s, e)
	return e
}

func invalid(s string) InvalidError {
	e := InvalidError(s)
	register(s, e)
	return e
}

func notFound(s string) NotFoundError {
	e := NotFoundError(s)
	register(s, e)
	return e
}

func precondition(s string) PreconditionError {
	e := PreconditionError(s)
	register(s, e)
	return e
}

func process(s string) ProcessError {
	e := ProcessError(s)
	register(s, e)
	return e
}
