// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package spend - build transactions that move color
//
// the caller supplies proven inputs and desired outputs, the builder
// works out the padded output values and the nSequence markings
package spend

import (
	"github.com/bitmark-inc/smartcolors/colorproof"
	"github.com/bitmark-inc/smartcolors/digest"
	"github.com/bitmark-inc/smartcolors/fault"
	"github.com/bitmark-inc/smartcolors/ledger"
	"github.com/bitmark-inc/smartcolors/padding"
)

// Input - one transaction input
//
// colored inputs carry their proof, uncolored inputs just name the
// outpoint being spent
type Input struct {
	Proof   colorproof.ColorProof // nil for uncolored
	PrevOut ledger.OutPoint       // only read when Proof is nil
}

// Output - one desired transaction output
//
// colored outputs give a quantity and let the builder pick the
// padded value, uncolored outputs give the value directly
type Output struct {
	Colored      bool
	Qty          uint64 // colored only
	Value        uint64 // uncolored only
	ScriptPubKey ledger.Script
}

// ChangeFunc - called with any leftover color quantity, returns the
// scriptPubKey to send it to or nil to let the leftover be destroyed
type ChangeFunc func(qty uint64) ledger.Script

// DustFunc - minimum value an output paying a scriptPubKey may carry
type DustFunc func(scriptPubKey ledger.Script) uint64

// CreateColorTx - build a transaction moving one color
//
// all colored inputs must prove the same color; at most sixteen
// outputs can be marked colored, fifteen when change may be added;
// with steg enabled each colored input's marking is xored with its
// outpoint-specific pad so the transaction looks ordinary on the wire
func CreateColorTx(inputs []Input, outputs []Output, change ChangeFunc, dust DustFunc, useSteg bool) (*ledger.Transaction, error) {

	qtyIn := uint64(0)
	haveColor := false
	var colorDefHash digest.Digest
	for _, in := range inputs {
		if nil == in.Proof {
			continue
		}
		h := in.Proof.ColorDef().Hash()
		if !haveColor {
			haveColor = true
			colorDefHash = h
		} else if colorDefHash != h {
			return nil, fault.ErrMismatchedColorDefs
		}
		qtyIn += in.Proof.Qty()
	}

	qtyOut := uint64(0)
	for _, out := range outputs {
		if out.Colored {
			qtyOut += out.Qty
		}
	}
	if qtyOut > qtyIn {
		return nil, fault.ErrInsufficientColor
	}

	// checked before asking for a change address so none are created
	// unnecessarily
	limit := 16
	if qtyIn > qtyOut {
		limit = 15
	}
	if len(outputs) > limit {
		return nil, fault.ErrTooManyColoredOutputs
	}

	if qtyIn > qtyOut && nil != change {
		changeQty := qtyIn - qtyOut
		if script := change(changeQty); nil != script {
			outputs = append(outputs, Output{
				Colored:      true,
				Qty:          changeQty,
				ScriptPubKey: script,
			})
		}
	}

	mask := uint16(0)
	vout := make([]ledger.TxOut, 0, len(outputs))
	for i, out := range outputs {
		value := out.Value
		if out.Colored {
			minimum := uint64(0)
			if nil != dust {
				minimum = dust(out.ScriptPubKey)
			}
			var err error
			value, err = padding.Pad(out.Qty, minimum)
			if nil != err {
				return nil, err
			}
			mask |= 1 << uint(i)
		}
		vout = append(vout, ledger.TxOut{
			Value:        value,
			ScriptPubKey: out.ScriptPubKey,
		})
	}

	vin := make([]ledger.TxIn, 0, len(inputs))
	for _, in := range inputs {
		if nil == in.Proof {
			vin = append(vin, ledger.TxIn{
				PrevOut:  in.PrevOut,
				Sequence: 0xffffffff,
			})
			continue
		}
		prevOut := in.Proof.OutPoint()
		vin = append(vin, ledger.TxIn{
			PrevOut:  prevOut,
			Sequence: in.Proof.ColorDef().EncodeSequence(prevOut, mask, useSteg),
		})
	}

	return &ledger.Transaction{
		Version: 1,
		Vin:     vin,
		Vout:    vout,
	}, nil
}
