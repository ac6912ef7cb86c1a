// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// Varint64MaximumBytes - maximum possible number of bytes in Varint64
const Varint64MaximumBytes = 10

// ToVarint64 - convert a 64 bit unsigned integer to Varint64
//
// unsigned little-endian base128 (LEB128)
//
// Structure of the result
// byte 1:  ext | B06 | B05 | B04 | B03 | B02 | B01 | B00
// byte 2:  ext | B13 | B12 | B11 | B10 | B09 | B08 | B07
// ...
// byte 9:  ext | B62 | B61 | B60 | B59 | B58 | B57 | B56
// byte 10:   0 |   0 |   0 |   0 |   0 |   0 |   0 | B63
func ToVarint64(value uint64) []byte {
	result := make([]byte, 0, Varint64MaximumBytes)
	if value < 0x80 {
		result = append(result, byte(value))
		return result
	}

	for value != 0 {
		ext := uint64(0x80)
		if value < 0x80 {
			ext = 0x00
		}
		result = append(result, byte(value&0x7f|ext))
		value >>= 7
	}
	return result
}

// FromVarint64 - convert an array of up to Varint64MaximumBytes to a uint64
//
// also return the number of bytes used as second value
// returns 0, 0 if varint64 buffer is truncated or overlong
func FromVarint64(buffer []byte) (uint64, int) {
	result := uint64(0)

	shift := uint(0)
	count := 0

	for count < len(buffer) && count < Varint64MaximumBytes {
		currByte := uint64(buffer[count])
		count += 1
		result |= currByte & 0x7f << shift
		if 0 == currByte&0x80 {
			return result, count
		}
		shift += 7
	}
	return 0, 0
}

// CopyVarint64 - make a copy of a Varint64 from the beginning of a buffer
func CopyVarint64(buffer []byte) []byte {
	result := make([]byte, 0)

loop:
	for count := 0; count < Varint64MaximumBytes && count < len(buffer); count += 1 {
		currentByte := buffer[count]
		result = append(result, currentByte)
		if 0 == currentByte&0x80 {
			break loop
		}
	}
	return result
}

// ClippedVarint64 - return a positive clipped value as an int
// any value outside the range minimum..maximum is an error
func ClippedVarint64(buffer []byte, minimum int, maximum int) (int, int) {
	if minimum < 0 || maximum < 0 || minimum >= maximum {
		return 0, 0
	}

	value, count := FromVarint64(buffer)
	if 0 == count {
		return 0, 0
	}
	iValue := int(value)
	if iValue < minimum || iValue > maximum {
		return 0, 0
	}
	return iValue, count
}
