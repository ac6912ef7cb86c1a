// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"

	"github.com/bitmark-inc/smartcolors/fault"
)

// maximum script length accepted during unpack
const maxScriptLength = 10000

// maximum vin/vout count accepted during unpack
const maxVectorCount = 100000

// decode a compact-size count from the start of a buffer
func compactSize(buffer []byte) (uint64, int, error) {
	if 0 == len(buffer) {
		return 0, 0, fault.ErrTruncatedRecord
	}
	switch b := buffer[0]; b {
	case 0xfd:
		if len(buffer) < 3 {
			return 0, 0, fault.ErrTruncatedRecord
		}
		return uint64(binary.LittleEndian.Uint16(buffer[1:3])), 3, nil
	case 0xfe:
		if len(buffer) < 5 {
			return 0, 0, fault.ErrTruncatedRecord
		}
		return uint64(binary.LittleEndian.Uint32(buffer[1:5])), 5, nil
	case 0xff:
		if len(buffer) < 9 {
			return 0, 0, fault.ErrTruncatedRecord
		}
		return binary.LittleEndian.Uint64(buffer[1:9]), 9, nil
	default:
		return uint64(b), 1, nil
	}
}

func unpackScript(buffer []byte) (Script, int, error) {
	length, n, err := compactSize(buffer)
	if nil != err {
		return nil, 0, err
	}
	if length > maxScriptLength {
		return nil, 0, fault.ErrInvalidCount
	}
	if uint64(len(buffer)-n) < length {
		return nil, 0, fault.ErrTruncatedRecord
	}
	script := make(Script, length)
	copy(script, buffer[n:n+int(length)])
	return script, n + int(length), nil
}

// UnpackTransaction - deserialize a transaction from the wire format
//
// the whole buffer must be consumed
func UnpackTransaction(buffer []byte) (*Transaction, error) {

	tx := &Transaction{}

	if len(buffer) < 4 {
		return nil, fault.ErrTruncatedRecord
	}
	tx.Version = binary.LittleEndian.Uint32(buffer[:4])
	offset := 4

	vinCount, n, err := compactSize(buffer[offset:])
	if nil != err {
		return nil, err
	}
	if vinCount > maxVectorCount {
		return nil, fault.ErrInvalidCount
	}
	offset += n

	tx.Vin = make([]TxIn, vinCount)
	for i := uint64(0); i < vinCount; i += 1 {
		prevOut, n, err := UnpackOutPoint(buffer[offset:])
		if nil != err {
			return nil, err
		}
		offset += n

		scriptSig, n, err := unpackScript(buffer[offset:])
		if nil != err {
			return nil, err
		}
		offset += n

		if len(buffer)-offset < 4 {
			return nil, fault.ErrTruncatedRecord
		}
		sequence := binary.LittleEndian.Uint32(buffer[offset : offset+4])
		offset += 4

		tx.Vin[i] = TxIn{
			PrevOut:   prevOut,
			ScriptSig: scriptSig,
			Sequence:  sequence,
		}
	}

	voutCount, n, err := compactSize(buffer[offset:])
	if nil != err {
		return nil, err
	}
	if voutCount > maxVectorCount {
		return nil, fault.ErrInvalidCount
	}
	offset += n

	tx.Vout = make([]TxOut, voutCount)
	for i := uint64(0); i < voutCount; i += 1 {
		if len(buffer)-offset < 8 {
			return nil, fault.ErrTruncatedRecord
		}
		value := binary.LittleEndian.Uint64(buffer[offset : offset+8])
		offset += 8

		scriptPubKey, n, err := unpackScript(buffer[offset:])
		if nil != err {
			return nil, err
		}
		offset += n

		tx.Vout[i] = TxOut{
			Value:        value,
			ScriptPubKey: scriptPubKey,
		}
	}

	if len(buffer)-offset < 4 {
		return nil, fault.ErrTruncatedRecord
	}
	tx.LockTime = binary.LittleEndian.Uint32(buffer[offset : offset+4])
	offset += 4

	if offset != len(buffer) {
		return nil, fault.ErrTrailingBytes
	}

	return tx, nil
}
