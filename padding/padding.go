// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package padding - MSB-Drop value padding
//
// Hides a color quantity inside an output value that still clears a
// minimum (e.g. the dust limit). The quantity is shifted left one
// bit; LSB 0 means the natural value already clears the minimum, LSB
// 1 means a single disposable high bit was added purely as padding.
package padding

import (
	"github.com/bitmark-inc/smartcolors/fault"
)

// MaximumQty - the largest quantity that can be padded
//
// one bit is lost to the LSB flag and one to the padding bit
const MaximumQty = 1<<62 - 1

// Pad - encode a quantity as an output value of at least minimum
func Pad(qty uint64, minimum uint64) (uint64, error) {
	if qty > MaximumQty {
		return 0, fault.ErrColorQtyTooLarge
	}

	if qty<<1 >= minimum {
		return qty << 1, nil
	}

	i := uint(0)
	for 1<<i < qty<<1|1 {
		i += 1
	}
	for 1<<i|qty<<1|1 < minimum {
		i += 1
		if i > 63 {
			return 0, fault.ErrMinimumValueOutOfRange
		}
	}

	return 1<<i | qty<<1 | 1, nil
}

// Unpad - decode an output value back to its quantity
func Unpad(padded uint64) uint64 {
	if 0 == padded&1 {
		return padded >> 1
	}

	// drop the highest set bit, it was the padding
	for i := uint(63); i >= 1; i -= 1 {
		mask := uint64(1) << i
		if 0 != padded&mask {
			return (padded &^ mask) >> 1
		}
	}

	// degenerate case: padded == 1 encodes zero
	return 0
}
