// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package colordef

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/bitmark-inc/smartcolors/fault"
	"github.com/bitmark-inc/smartcolors/ledger"
	"github.com/bitmark-inc/smartcolors/padding"
)

// layout of the 32 bit nSequence routing field
const (
	kernelVariantMask = 0x0000007f
	kernelVariant     = 0x0000007e
	kernelStegFlag    = 0x00000080
	kernelReserved    = 0x0000ff00
	kernelOutputShift = 16

	// the steg pad never touches the variant and flag byte
	kernelStegMask = 0xffffff00
)

// MaxColoredOutputs - outputs addressable by the routing bitmask
const MaxColoredOutputs = 16

// prefix for deriving per-outpoint nSequence pads
var nSequencePadMagic = []byte("\x00Smartcolors\x00nSequence pad\x00")

// NSequencePad - the per-outpoint steganography pad
//
// low 32 bits of SHA256(magic ‖ stegkey ‖ outpoint), little-endian;
// without the stegkey the routing field XORed with this pad is
// indistinguishable from noise
func (cd *ColorDef) NSequencePad(outPoint ledger.OutPoint) uint32 {
	h := sha256.New()
	h.Write(nSequencePadMagic)
	h.Write(cd.stegKey[:])
	h.Write(outPoint.Pack())
	d := h.Sum(nil)
	return binary.LittleEndian.Uint32(d[0:4])
}

// EncodeSequence - build an nSequence routing field
//
// mask selects colored outputs by index, steg hides the mask under
// the outpoint's pad
func (cd *ColorDef) EncodeSequence(outPoint ledger.OutPoint, mask uint16, steg bool) uint32 {
	nSequence := uint32(mask) << kernelOutputShift
	if steg {
		nSequence ^= cd.NSequencePad(outPoint)
	}
	nSequence = nSequence&kernelStegMask | kernelVariant
	if steg {
		nSequence |= kernelStegFlag
	}
	return nSequence
}

// decode the output bitmask from a routing field
func (cd *ColorDef) decodeSequence(outPoint ledger.OutPoint, nSequence uint32) (uint16, error) {
	if kernelVariant != nSequence&kernelVariantMask {
		return 0, fault.ErrUnsupportedKernel
	}

	if 0 != nSequence&kernelStegFlag {
		nSequence ^= cd.NSequencePad(outPoint) & kernelStegMask
	}

	if 0 != nSequence&kernelReserved {
		return 0, fault.ErrKernelReservedBitsSet
	}

	return uint16(nSequence >> kernelOutputShift), nil
}

// ApplyKernel - route color from inputs to outputs
//
// colorIn maps previous outpoints to their color quantities, inputs
// with no entry contribute nothing. The result has one entry per
// output: nil for an output the kernel never opened, a pointer to
// the accumulated quantity otherwise. Output buckets fill statefully
// in input order, an earlier input can consume capacity a later
// input would otherwise have used. Quantity left after an input's
// mask is exhausted is destroyed.
func (cd *ColorDef) ApplyKernel(tx *ledger.Transaction, colorIn map[ledger.OutPoint]uint64) ([]*uint64, error) {

	colorOut := make([]*uint64, len(tx.Vout))

	limit := len(tx.Vout)
	if limit > MaxColoredOutputs {
		limit = MaxColoredOutputs
	}

	for _, in := range tx.Vin {
		remaining, ok := colorIn[in.PrevOut]
		if !ok {
			continue
		}

		mask, err := cd.decodeSequence(in.PrevOut, in.Sequence)
		if nil != err {
			return nil, err
		}

		for j := 0; j < limit && remaining > 0; j += 1 {
			if 0 == mask>>j&1 {
				continue
			}

			if nil == colorOut[j] {
				colorOut[j] = new(uint64)
			}

			capacity := padding.Unpad(tx.Vout[j].Value) - *colorOut[j]
			transferred := remaining
			if transferred > capacity {
				transferred = capacity
			}

			*colorOut[j] += transferred
			remaining -= transferred
		}
	}

	return colorOut, nil
}
