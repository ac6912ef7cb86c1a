// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// error instances
//
// Provides a single instance of errors to allow easy comparison
package fault

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type ValidationError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised       = ProcessError("already initialised")
	ErrBadBackReference         = InvalidError("bad memoized back reference")
	ErrColorDefIsPruned         = InvalidError("colordef is pruned")
	ErrColorQtyTooLarge         = InvalidError("color quantity too large")
	ErrDuplicateGenesisOutPoint = ExistsError("duplicate genesis outpoint")
	ErrDuplicateGenesisScript   = ExistsError("duplicate genesis scriptPubKey")
	ErrDuplicateKey             = ExistsError("duplicate key")
	ErrHashMismatch             = InvalidError("hash mismatch")
	ErrInsufficientColor        = ProcessError("insufficient color available")
	ErrInvalidAddress           = InvalidError("invalid address")
	ErrInvalidColorProofType    = InvalidError("invalid colorproof type")
	ErrInvalidCount             = InvalidError("invalid count")
	ErrInvalidDataDirectory     = InvalidError("invalid data directory")
	ErrInvalidLoggerChannel     = InvalidError("invalid logger channel")
	ErrKernelReservedBitsSet    = InvalidError("kernel reserved bits are set")
	ErrKeyLength                = LengthError("key length is invalid")
	ErrKeyNotFound              = NotFoundError("key not found")
	ErrMinimumValueOutOfRange   = InvalidError("minimum value out of range")
	ErrMismatchedColorDefs      = InvalidError("mismatched colordefs")
	ErrPrunedSubtree            = ProcessError("subtree is pruned")
	ErrTooManyColoredOutputs    = InvalidError("too many colored outputs")
	ErrTrailingBytes            = InvalidError("unexpected trailing bytes")
	ErrTruncatedRecord          = LengthError("record is truncated")
	ErrUnsupportedKernel        = InvalidError("unsupported color kernel")
	ErrUnsupportedVersion       = InvalidError("unsupported record version")
	ErrVarintTooBig             = InvalidError("varint value is too big")
	ErrWrongFileVersion         = InvalidError("wrong file version")
	ErrWrongMagic               = InvalidError("wrong magic bytes")
	ErrWrongNetworkForAddress   = InvalidError("wrong network for address")
)

// validation errors - a proof failed one of its local checks
// keep in alphabetic order
var (
	ErrProofInvalidQty         = ValidationError("proof quantity does not match kernel result")
	ErrProofNotGenesisOutPoint = ValidationError("outpoint is not a genesis outpoint")
	ErrProofNotGenesisScript   = ValidationError("scriptPubKey is not a genesis scriptPubKey")
	ErrProofOutOfRange         = ValidationError("outpoint index out of range")
	ErrProofOutPointMismatch   = ValidationError("outpoint does not match transaction")
	ErrProofOutputNotColored   = ValidationError("kernel yields no color for output")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e LengthError) Error() string     { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e ProcessError) Error() string    { return string(e) }
func (e ValidationError) Error() string { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool     { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool     { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
func IsErrValidation(e error) bool { _, ok := e.(ValidationError); return ok }
