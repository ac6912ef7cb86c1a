// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/bitmark-inc/smartcolors/util"
)

// test Varint64
func TestVarint64(t *testing.T) {

	testData := []struct {
		value   uint64
		encoded []byte
	}{
		{0x00, []byte{0x00}},
		{0x01, []byte{0x01}},
		{0x7f, []byte{0x7f}},
		{0x80, []byte{0x80, 0x01}},
		{0x86, []byte{0x86, 0x01}},
		{0xff, []byte{0xff, 0x01}},
		{0x100, []byte{0x80, 0x02}},
		{0x3fff, []byte{0xff, 0x7f}},
		{0x4000, []byte{0x80, 0x80, 0x01}},
		{0x1fffff, []byte{0xff, 0xff, 0x7f}},
		{0x200000, []byte{0x80, 0x80, 0x80, 0x01}},
		{134, []byte{0x86, 0x01}},
		{5000000000, []byte{0x80, 0xe4, 0x97, 0xd0, 0x12}},
		{0x7fffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f}},
		{0x8000000000000000, []byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}},
		{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
	}

	for i, item := range testData {

		result := util.ToVarint64(item.value)
		if !bytes.Equal(result, item.encoded) {
			t.Errorf("%d: ToVarint64(%d) = %x  expected: %x", i, item.value, result, item.encoded)
		}

		value, count := util.FromVarint64(item.encoded)
		if value != item.value {
			t.Errorf("%d: FromVarint64(%x) = %d  expected: %d", i, item.encoded, value, item.value)
		}
		if count != len(item.encoded) {
			t.Errorf("%d: FromVarint64(%x) count = %d  expected: %d", i, item.encoded, count, len(item.encoded))
		}

		// decode with trailing data must not consume it
		padded := append(append([]byte{}, item.encoded...), 0xcc, 0x55)
		value, count = util.FromVarint64(padded)
		if value != item.value || count != len(item.encoded) {
			t.Errorf("%d: FromVarint64(%x) = %d, %d  expected: %d, %d", i, padded, value, count, item.value, len(item.encoded))
		}

		copied := util.CopyVarint64(padded)
		if !bytes.Equal(copied, item.encoded) {
			t.Errorf("%d: CopyVarint64(%x) = %x  expected: %x", i, padded, copied, item.encoded)
		}
	}
}

// truncated buffers must decode as: 0, 0
func TestVarint64Truncated(t *testing.T) {

	testData := [][]byte{
		{},
		{0x80},
		{0xff},
		{0x80, 0x80},
		{0xff, 0xff, 0xff, 0xff},
		{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80},
	}

	for i, item := range testData {
		value, count := util.FromVarint64(item)
		if 0 != value || 0 != count {
			t.Errorf("%d: FromVarint64(%x) = %d, %d  expected: 0, 0", i, item, value, count)
		}
	}
}

// test ClippedVarint64
func TestClippedVarint64(t *testing.T) {

	testData := []struct {
		encoded []byte
		minimum int
		maximum int
		value   int
		count   int
	}{
		{[]byte{0x05}, 1, 10, 5, 1},
		{[]byte{0x05}, 6, 10, 0, 0},
		{[]byte{0x05}, 1, 4, 0, 0},
		{[]byte{0x86, 0x01}, 1, 200, 134, 2},
		{[]byte{0x86, 0x01}, 200, 100, 0, 0},
		{[]byte{0x80}, 1, 10, 0, 0},
	}

	for i, item := range testData {
		value, count := util.ClippedVarint64(item.encoded, item.minimum, item.maximum)
		if value != item.value || count != item.count {
			t.Errorf("%d: ClippedVarint64(%x, %d, %d) = %d, %d  expected: %d, %d",
				i, item.encoded, item.minimum, item.maximum, value, count, item.value, item.count)
		}
	}
}
