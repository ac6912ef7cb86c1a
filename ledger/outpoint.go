// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"fmt"

	"github.com/bitmark-inc/smartcolors/digest"
	"github.com/bitmark-inc/smartcolors/fault"
)

// serialized size of an outpoint
const OutPointLength = digest.DigestLength + 4

// class key for outpoint content hashes
var outPointKey = digest.MustKey("eac9aef052700336a94accea6a883e59")

// OutPoint - reference to a transaction output
//
// a comparable value type, usable as a map key
type OutPoint struct {
	TxID digest.Digest
	N    uint32
}

// Pack - serialize as txid followed by little-endian index
func (o OutPoint) Pack() []byte {
	buffer := make([]byte, OutPointLength)
	copy(buffer, o.TxID[:])
	binary.LittleEndian.PutUint32(buffer[digest.DigestLength:], o.N)
	return buffer
}

// UnpackOutPoint - deserialize an outpoint from the start of a buffer
//
// second return value is the number of bytes consumed
func UnpackOutPoint(buffer []byte) (OutPoint, int, error) {
	if len(buffer) < OutPointLength {
		return OutPoint{}, 0, fault.ErrTruncatedRecord
	}
	var o OutPoint
	copy(o.TxID[:], buffer[:digest.DigestLength])
	o.N = binary.LittleEndian.Uint32(buffer[digest.DigestLength:OutPointLength])
	return o, OutPointLength, nil
}

// Hash - keyed content hash over the 36 byte serialization
func (o OutPoint) Hash() digest.Digest {
	return digest.NewKeyed(outPointKey, o.Pack())
}

// Compare - total order: by txid bytes then by index
func (o OutPoint) Compare(other OutPoint) int {
	if c := o.TxID.Compare(other.TxID); 0 != c {
		return c
	}
	switch {
	case o.N < other.N:
		return -1
	case o.N > other.N:
		return 1
	default:
		return 0
	}
}

// String - display as txid:n
func (o OutPoint) String() string {
	return fmt.Sprintf("%s:%d", o.TxID, o.N)
}
