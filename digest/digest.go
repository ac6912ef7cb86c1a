// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/bitmark-inc/smartcolors/fault"
)

// number of bytes in the digest
const DigestLength = 32

// Digest - type for a 32 byte digest
// stored and displayed in natural byte order
// to convert to bytes just use d[:]
type Digest [DigestLength]byte

// NewSHA256 - create a digest from a byte slice
func NewSHA256(record []byte) Digest {
	return sha256.Sum256(record)
}

// NewDoubleSHA256 - create a digest by hashing twice
//
// this is the transaction id construction
func NewDoubleSHA256(record []byte) Digest {
	first := sha256.Sum256(record)
	return sha256.Sum256(first[:])
}

// NewKeyed - create a keyed digest over one or more byte slices
//
// HMAC-SHA256 keyed by a per-class serialization key so that
// different record types can never produce colliding digests
func NewKeyed(key []byte, records ...[]byte) Digest {
	mac := hmac.New(sha256.New, key)
	for _, record := range records {
		mac.Write(record)
	}
	var digest Digest
	copy(digest[:], mac.Sum(nil))
	return digest
}

// MustKey - decode a hex class key, panic on malformed constants
func MustKey(s string) []byte {
	key, err := hex.DecodeString(s)
	if nil != err {
		panic("digest: bad class key: " + s)
	}
	return key
}

// Compare - total order over digests
//
// returns +ve, 0, -ve for a > b, a == b, a < b
func (digest Digest) Compare(other Digest) int {
	return bytes.Compare(digest[:], other[:])
}

// String - convert a binary digest to hex string for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// GoString - convert a binary digest to hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<SHA256:" + hex.EncodeToString(digest[:]) + ">"
}

// Scan - convert a hex representation to a digest for use by the format package scan routines
func (digest *Digest) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'F' {
			return true
		}
		if c >= 'a' && c <= 'f' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	if len(token) != hex.EncodedLen(DigestLength) {
		return fault.ErrKeyLength
	}

	buffer := make([]byte, hex.DecodedLen(len(token)))
	_, err = hex.Decode(buffer, token)
	if nil != err {
		return err
	}
	copy(digest[:], buffer)
	return nil
}

// MarshalText - convert digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(len(digest)))
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// UnmarshalText - convert hex text into a digest
func (digest *Digest) UnmarshalText(s []byte) error {
	if DigestLength != hex.DecodedLen(len(s)) {
		return fault.ErrKeyLength
	}
	buffer := make([]byte, DigestLength)
	_, err := hex.Decode(buffer, s)
	if nil != err {
		return err
	}
	copy(digest[:], buffer)
	return nil
}

// DigestFromBytes - convert and validate a binary byte slice to a digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if DigestLength != len(buffer) {
		return fault.ErrKeyLength
	}
	copy(digest[:], buffer)
	return nil
}

// DigestFromHex - convert a hex string to a digest
func DigestFromHex(s string) (Digest, error) {
	var digest Digest
	err := digest.UnmarshalText([]byte(s))
	return digest, err
}
