// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package colorproof

import (
	"github.com/bitmark-inc/smartcolors/colordef"
	"github.com/bitmark-inc/smartcolors/fault"
	"github.com/bitmark-inc/smartcolors/ledger"
	"github.com/bitmark-inc/smartcolors/padding"
	"github.com/bitmark-inc/smartcolors/util"
)

// GenesisOutPointProof - the outpoint is a genesis outpoint
//
// needs no transaction, the colordef itself mints the quantity
type GenesisOutPointProof struct {
	proofBase
}

// NewGenesisOutPoint - prove a genesis outpoint
func NewGenesisOutPoint(def *colordef.ColorDef, outPoint ledger.OutPoint) (*GenesisOutPointProof, error) {

	qty, ok := def.GenesisQty(outPoint)
	if !ok {
		return nil, fault.ErrProofNotGenesisOutPoint
	}

	outPointHash := outPoint.Hash()
	return &GenesisOutPointProof{
		proofBase: proofBase{
			def:      def,
			outPoint: outPoint,
			qty:      qty,
			hash:     proofHash(TagGenesisOutPoint, def, outPointHash[:]),
		},
	}, nil
}

// Tag - type tag
func (p *GenesisOutPointProof) Tag() byte { return TagGenesisOutPoint }

// Validate - check membership in the colordef's genesis outpoints
func (p *GenesisOutPointProof) Validate() error { return validate(p) }

func (p *GenesisOutPointProof) localValidate() error {
	qty, ok := p.def.GenesisQty(p.outPoint)
	if !ok {
		return fault.ErrProofNotGenesisOutPoint
	}
	if qty != p.qty {
		return fault.ErrProofInvalidQty
	}
	return nil
}

func (p *GenesisOutPointProof) dependencies() []ColorProof { return nil }

// GenesisScriptProof - the outpoint pays a genesis scriptPubKey
//
// the quantity is the unpadded value of the paying output
type GenesisScriptProof struct {
	proofBase
	tx *ledger.Transaction
}

// NewGenesisScript - prove an output paying a genesis scriptPubKey
func NewGenesisScript(def *colordef.ColorDef, outPoint ledger.OutPoint, tx *ledger.Transaction) (*GenesisScriptProof, error) {

	p := &GenesisScriptProof{
		proofBase: proofBase{
			def:      def,
			outPoint: outPoint,
		},
		tx: tx,
	}

	if err := p.localValidate(); nil != err {
		return nil, err
	}

	p.qty = padding.Unpad(tx.Vout[outPoint.N].Value)

	txHash := tx.Hash()
	p.hash = proofHash(TagGenesisScript, def,
		util.ToVarint64(uint64(outPoint.N)), txHash[:])

	return p, nil
}

// Tag - type tag
func (p *GenesisScriptProof) Tag() byte { return TagGenesisScript }

// Tx - the transaction paying the genesis scriptPubKey
func (p *GenesisScriptProof) Tx() *ledger.Transaction { return p.tx }

// Validate - check the output pays a genesis scriptPubKey
func (p *GenesisScriptProof) Validate() error { return validate(p) }

func (p *GenesisScriptProof) localValidate() error {
	if p.outPoint.TxID != p.tx.TxID() {
		return fault.ErrProofOutPointMismatch
	}
	if uint64(p.outPoint.N) >= uint64(len(p.tx.Vout)) {
		return fault.ErrProofOutOfRange
	}
	if !p.def.HasGenesisScript(p.tx.Vout[p.outPoint.N].ScriptPubKey) {
		return fault.ErrProofNotGenesisScript
	}
	return nil
}

func (p *GenesisScriptProof) dependencies() []ColorProof { return nil }
