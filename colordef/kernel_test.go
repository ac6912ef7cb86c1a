// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package colordef_test

import (
	"testing"

	"github.com/bitmark-inc/smartcolors/colordef"
	"github.com/bitmark-inc/smartcolors/digest"
	"github.com/bitmark-inc/smartcolors/fault"
	"github.com/bitmark-inc/smartcolors/ledger"
	"github.com/bitmark-inc/smartcolors/padding"
)

func emptyDef(t *testing.T) *colordef.ColorDef {
	t.Helper()
	var stegKey [colordef.StegKeyLength]byte
	cd, err := colordef.New(0, stegKey, nil, nil)
	if nil != err {
		t.Fatalf("new colordef error: %s", err)
	}
	return cd
}

// build a transaction with one input per mask and one output per
// capacity, output values padded with a zero minimum
func makeColorTx(t *testing.T, masks []uint16, capacities []uint64) *ledger.Transaction {
	t.Helper()

	tx := &ledger.Transaction{Version: 1}
	for i, mask := range masks {
		tx.Vin = append(tx.Vin, ledger.TxIn{
			PrevOut:  ledger.OutPoint{TxID: digest.Digest{}, N: uint32(i)},
			Sequence: uint32(mask)<<16 | 0x7e,
		})
	}
	for _, capacity := range capacities {
		value, err := padding.Pad(capacity, 0)
		if nil != err {
			t.Fatalf("pad error: %s", err)
		}
		tx.Vout = append(tx.Vout, ledger.TxOut{Value: value})
	}
	return tx
}

func some(qty uint64) *uint64 {
	return &qty
}

func equalColorOut(actual []*uint64, expected []*uint64) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, e := range expected {
		a := actual[i]
		if (nil == a) != (nil == e) {
			return false
		}
		if nil != a && *a != *e {
			return false
		}
	}
	return true
}

func TestKernel(t *testing.T) {
	cd := emptyDef(t)

	testData := []struct {
		description string
		masks       []uint16
		capacities  []uint64
		colorIn     []uint64 // 0 = uncolored input
		expected    []*uint64
	}{
		{"no colored inputs",
			[]uint16{0}, []uint64{0}, []uint64{0},
			[]*uint64{nil}},

		{"one to one exact",
			[]uint16{0b1}, []uint64{1}, []uint64{1},
			[]*uint64{some(1)}},
		{"one to one less than max",
			[]uint16{0b1}, []uint64{10}, []uint64{1},
			[]*uint64{some(1)}},
		{"one to one more than max",
			[]uint16{0b1}, []uint64{1}, []uint64{2},
			[]*uint64{some(1)}},

		{"one to two exact",
			[]uint16{0b11}, []uint64{1, 2}, []uint64{3},
			[]*uint64{some(1), some(2)}},
		{"one to two fills only first",
			[]uint16{0b11}, []uint64{1, 2}, []uint64{1},
			[]*uint64{some(1), nil}},
		{"one to two partial second",
			[]uint16{0b11}, []uint64{1, 3}, []uint64{3},
			[]*uint64{some(1), some(2)}},
		{"third output marked but starved",
			[]uint16{0b111}, []uint64{1, 3, 4}, []uint64{3},
			[]*uint64{some(1), some(2), nil}},
		{"starved plus unmarked output",
			[]uint16{0b1011}, []uint64{1, 3, 4, 5}, []uint64{3},
			[]*uint64{some(1), some(2), nil, nil}},

		{"one to two with leftover destroyed",
			[]uint16{0b11}, []uint64{1, 2}, []uint64{4},
			[]*uint64{some(1), some(2)}},
		{"leftover not assigned to unmarked output",
			[]uint16{0b11}, []uint64{1, 2, 3}, []uint64{4},
			[]*uint64{some(1), some(2), nil}},

		{"two to two direct mapping",
			[]uint16{0b01, 0b10}, []uint64{1, 2}, []uint64{1, 2},
			[]*uint64{some(1), some(2)}},
		{"two to two reversed mapping",
			[]uint16{0b10, 0b11}, []uint64{1, 2}, []uint64{1, 2},
			[]*uint64{some(1), some(2)}},
		{"two to two leftover destroyed",
			[]uint16{0b10, 0b01}, []uint64{2, 3, 4}, []uint64{1, 3},
			[]*uint64{some(2), some(1), nil}},

		{"five to one",
			[]uint16{0b1, 0b1, 0b1, 0b1, 0b1}, []uint64{15}, []uint64{1, 2, 3, 4, 5},
			[]*uint64{some(15)}},
		{"five to one second output starved",
			[]uint16{0b11, 0b11, 0b11, 0b11, 0b11}, []uint64{15, 100}, []uint64{1, 2, 3, 4, 5},
			[]*uint64{some(15), nil}},

		{"stateful filling across inputs",
			[]uint16{0b11, 0b11}, []uint64{2, 1}, []uint64{2, 1},
			[]*uint64{some(2), some(1)}},
		{"second output never opened",
			[]uint16{0b11}, []uint64{2, 1}, []uint64{2},
			[]*uint64{some(2), nil}},
	}

	for _, item := range testData {
		tx := makeColorTx(t, item.masks, item.capacities)

		colorIn := make(map[ledger.OutPoint]uint64)
		for i, qty := range item.colorIn {
			if qty > 0 {
				colorIn[tx.Vin[i].PrevOut] = qty
			}
		}

		colorOut, err := cd.ApplyKernel(tx, colorIn)
		if nil != err {
			t.Fatalf("%s: kernel error: %s", item.description, err)
		}
		if !equalColorOut(colorOut, item.expected) {
			t.Errorf("%s: colorOut mismatch", item.description)
		}
	}
}

// a zero quantity output is opened but distinct from never opened
func TestKernelZeroQtyOutput(t *testing.T) {
	cd := emptyDef(t)

	tx := makeColorTx(t, []uint16{0b11}, []uint64{0, 2})
	colorOut, err := cd.ApplyKernel(tx, map[ledger.OutPoint]uint64{tx.Vin[0].PrevOut: 2})
	if nil != err {
		t.Fatalf("kernel error: %s", err)
	}
	if !equalColorOut(colorOut, []*uint64{some(0), some(2)}) {
		t.Errorf("colorOut mismatch: %v", colorOut)
	}
}

func TestKernelSteg(t *testing.T) {
	var stegKey [colordef.StegKeyLength]byte
	copy(stegKey[:], "sixteen byte key")
	cd, err := colordef.New(0, stegKey, nil, nil)
	if nil != err {
		t.Fatalf("new colordef error: %s", err)
	}

	outPoint := ledger.OutPoint{TxID: digest.Digest{0xaa}, N: 3}

	value, err := padding.Pad(42, 0)
	if nil != err {
		t.Fatalf("pad error: %s", err)
	}
	tx := &ledger.Transaction{
		Version: 1,
		Vin: []ledger.TxIn{{
			PrevOut:  outPoint,
			Sequence: cd.EncodeSequence(outPoint, 0xffff, true),
		}},
		Vout: []ledger.TxOut{{Value: value}},
	}

	colorOut, err := cd.ApplyKernel(tx, map[ledger.OutPoint]uint64{outPoint: 42})
	if nil != err {
		t.Fatalf("kernel error: %s", err)
	}
	if !equalColorOut(colorOut, []*uint64{some(42)}) {
		t.Errorf("colorOut mismatch: %v", colorOut)
	}

	// the steg pad itself must not decode without the flag
	if pad := cd.NSequencePad(outPoint); 0 == pad {
		t.Errorf("zero nSequence pad")
	}
}

func TestKernelErrors(t *testing.T) {
	cd := emptyDef(t)

	tx := makeColorTx(t, []uint16{0b1}, []uint64{1})
	colorIn := map[ledger.OutPoint]uint64{tx.Vin[0].PrevOut: 1}

	// unknown variant
	tx.Vin[0].Sequence = tx.Vin[0].Sequence&^0x7f | 0x7d
	if _, err := cd.ApplyKernel(tx, colorIn); fault.ErrUnsupportedKernel != err {
		t.Errorf("err: %v  expected: %v", err, fault.ErrUnsupportedKernel)
	}

	// reserved bits
	tx.Vin[0].Sequence = 0x0001007e
	if _, err := cd.ApplyKernel(tx, colorIn); fault.ErrKernelReservedBitsSet != err {
		t.Errorf("err: %v  expected: %v", err, fault.ErrKernelReservedBitsSet)
	}

	// uncolored inputs never touch the routing field
	if _, err := cd.ApplyKernel(tx, nil); nil != err {
		t.Errorf("uncolored input error: %s", err)
	}
}
