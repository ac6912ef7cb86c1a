// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
)

// append a compact-size count to a buffer
//
// single byte below 0xfd, then 0xfd/0xfe/0xff prefixed
// little-endian 16/32/64 bit values
func appendCompactSize(buffer []byte, n uint64) []byte {
	switch {
	case n < 0xfd:
		return append(buffer, byte(n))
	case n <= 0xffff:
		buffer = append(buffer, 0xfd)
		return append(buffer, byte(n), byte(n>>8))
	case n <= 0xffffffff:
		buffer = append(buffer, 0xfe)
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(n))
		return append(buffer, b[:]...)
	default:
		buffer = append(buffer, 0xff)
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], n)
		return append(buffer, b[:]...)
	}
}

func appendUint32(buffer []byte, n uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], n)
	return append(buffer, b[:]...)
}

func appendUint64(buffer []byte, n uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], n)
	return append(buffer, b[:]...)
}

func appendScript(buffer []byte, s Script) []byte {
	buffer = appendCompactSize(buffer, uint64(len(s)))
	return append(buffer, s...)
}

// Pack - serialize a transaction in the canonical wire format
func (tx *Transaction) Pack() []byte {

	buffer := make([]byte, 0, 256)
	buffer = appendUint32(buffer, tx.Version)

	buffer = appendCompactSize(buffer, uint64(len(tx.Vin)))
	for _, in := range tx.Vin {
		buffer = append(buffer, in.PrevOut.Pack()...)
		buffer = appendScript(buffer, in.ScriptSig)
		buffer = appendUint32(buffer, in.Sequence)
	}

	buffer = appendCompactSize(buffer, uint64(len(tx.Vout)))
	for _, out := range tx.Vout {
		buffer = appendUint64(buffer, out.Value)
		buffer = appendScript(buffer, out.ScriptPubKey)
	}

	buffer = appendUint32(buffer, tx.LockTime)
	return buffer
}
