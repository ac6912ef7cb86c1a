// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package colorproof

import (
	"sort"

	"github.com/bitmark-inc/smartcolors/colordef"
	"github.com/bitmark-inc/smartcolors/digest"
	"github.com/bitmark-inc/smartcolors/fault"
	"github.com/bitmark-inc/smartcolors/ledger"
	"github.com/bitmark-inc/smartcolors/merbinner"
	"github.com/bitmark-inc/smartcolors/util"
)

// scheme of the prevout proof merkle-sum tree
var prevOutScheme = merbinner.NewSumScheme(digest.MustKey("486a3b9f0cc1adc7f0f7f3e388b89dbc"))

// TransferredProof - color moved by a transaction
//
// the kernel applied to the transaction with the subproof quantities
// as input must yield the claimed quantity at the claimed output
type TransferredProof struct {
	proofBase
	tx            *ledger.Transaction
	prevOuts      []ledger.OutPoint // sorted
	prevOutProofs map[ledger.OutPoint]ColorProof
	prevOutTree   *merbinner.Tree
}

// NewTransferred - prove an output of a spending transaction
//
// prevOutProofs maps each colored previous outpoint to its proof,
// all proofs must be for the same colordef
func NewTransferred(def *colordef.ColorDef, outPoint ledger.OutPoint, tx *ledger.Transaction, prevOutProofs map[ledger.OutPoint]ColorProof) (*TransferredProof, error) {

	if outPoint.TxID != tx.TxID() {
		return nil, fault.ErrProofOutPointMismatch
	}
	if uint64(outPoint.N) >= uint64(len(tx.Vout)) {
		return nil, fault.ErrProofOutOfRange
	}

	prevOuts := make([]ledger.OutPoint, 0, len(prevOutProofs))
	items := make([]merbinner.Item, 0, len(prevOutProofs))
	colorIn := make(map[ledger.OutPoint]uint64, len(prevOutProofs))
	for prevOut, proof := range prevOutProofs {
		if proof.ColorDef().Hash() != def.Hash() {
			return nil, fault.ErrMismatchedColorDefs
		}
		if proof.OutPoint() != prevOut {
			return nil, fault.ErrProofOutPointMismatch
		}
		prevOuts = append(prevOuts, prevOut)
		items = append(items, merbinner.Item{
			Key:   prevOut.Hash(),
			Value: proof.(merbinner.SumValue),
		})
		colorIn[prevOut] = proof.Qty()
	}
	sort.Slice(prevOuts, func(i, j int) bool {
		return prevOuts[i].Compare(prevOuts[j]) < 0
	})

	tree, err := merbinner.FromItems(prevOutScheme, items)
	if nil != err {
		return nil, err
	}

	colorOut, err := def.ApplyKernel(tx, colorIn)
	if nil != err {
		return nil, err
	}
	if nil == colorOut[outPoint.N] {
		return nil, fault.ErrProofOutputNotColored
	}

	txHash := tx.Hash()
	treeHash := tree.Hash()
	return &TransferredProof{
		proofBase: proofBase{
			def:      def,
			outPoint: outPoint,
			qty:      *colorOut[outPoint.N],
			hash: proofHash(TagTransferred, def,
				util.ToVarint64(uint64(outPoint.N)), txHash[:], treeHash[:]),
		},
		tx:            tx,
		prevOuts:      prevOuts,
		prevOutProofs: prevOutProofs,
		prevOutTree:   tree,
	}, nil
}

// Tag - type tag
func (p *TransferredProof) Tag() byte { return TagTransferred }

// Tx - the spending transaction
func (p *TransferredProof) Tx() *ledger.Transaction { return p.tx }

// PrevOutTree - the merkle-sum tree over the subproofs
func (p *TransferredProof) PrevOutTree() *merbinner.Tree { return p.prevOutTree }

// EachPrevOut - visit subproofs in outpoint order
func (p *TransferredProof) EachPrevOut(fn func(ledger.OutPoint, ColorProof) bool) {
	for _, prevOut := range p.prevOuts {
		if !fn(prevOut, p.prevOutProofs[prevOut]) {
			return
		}
	}
}

// Validate - check the kernel agreement here and every subproof
func (p *TransferredProof) Validate() error { return validate(p) }

func (p *TransferredProof) localValidate() error {
	if p.outPoint.TxID != p.tx.TxID() {
		return fault.ErrProofOutPointMismatch
	}
	if uint64(p.outPoint.N) >= uint64(len(p.tx.Vout)) {
		return fault.ErrProofOutOfRange
	}

	colorIn := make(map[ledger.OutPoint]uint64, len(p.prevOutProofs))
	for prevOut, proof := range p.prevOutProofs {
		colorIn[prevOut] = proof.Qty()
	}

	colorOut, err := p.def.ApplyKernel(p.tx, colorIn)
	if nil != err {
		return err
	}
	if nil == colorOut[p.outPoint.N] {
		return fault.ErrProofOutputNotColored
	}
	if *colorOut[p.outPoint.N] != p.qty {
		return fault.ErrProofInvalidQty
	}
	return nil
}

func (p *TransferredProof) dependencies() []ColorProof {
	deps := make([]ColorProof, 0, len(p.prevOuts))
	for _, prevOut := range p.prevOuts {
		deps = append(deps, p.prevOutProofs[prevOut])
	}
	return deps
}
