// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package colorproof - client side proofs of color ownership
//
// A proof shows that an outpoint carries a quantity of a color: by
// being a genesis outpoint, by paying a genesis scriptPubKey, or by
// a transaction whose inputs are themselves proven colored. Proofs
// form a DAG ending at genesis proofs and are validated breadth
// first from the claimed outpoint back towards the genesis points.
package colorproof

import (
	"github.com/bitmark-inc/smartcolors/colordef"
	"github.com/bitmark-inc/smartcolors/digest"
	"github.com/bitmark-inc/smartcolors/ledger"
)

// record version written into every proof hash
const Version = 1

// type tags, also the wire tags
const (
	TagGenesisOutPoint = 0x01
	TagGenesisScript   = 0x02
	TagTransferred     = 0x03
)

// class key for proof record hashes
var proofKey = digest.MustKey("b96dae8e52cb124d01804353736a8384")

// ColorProof - one node of a proof DAG
//
// a closed interface, the concrete types all live in this package
type ColorProof interface {
	// Hash - the content hash, domain separated by type tag
	Hash() digest.Digest

	// Tag - the concrete type tag
	Tag() byte

	// ColorDef - the color being proven
	ColorDef() *colordef.ColorDef

	// OutPoint - the outpoint proven to carry color
	OutPoint() ledger.OutPoint

	// Qty - the proven quantity, fixed at construction
	Qty() uint64

	// Validate - check this proof and everything it depends on
	Validate() error

	// single-step check of this proof only
	localValidate() error

	// proofs this one depends on, empty for genesis proofs
	dependencies() []ColorProof
}

// shared fields of every concrete proof
//
// Sum makes proofs usable as merkle-sum tree values
type proofBase struct {
	def      *colordef.ColorDef
	outPoint ledger.OutPoint
	qty      uint64
	hash     digest.Digest
}

func (p *proofBase) Hash() digest.Digest            { return p.hash }
func (p *proofBase) ColorDef() *colordef.ColorDef   { return p.def }
func (p *proofBase) OutPoint() ledger.OutPoint      { return p.outPoint }
func (p *proofBase) Qty() uint64                    { return p.qty }
func (p *proofBase) Sum() uint64                    { return p.qty }

// hash the tag, version, colordef hash and type specific payload
func proofHash(tag byte, def *colordef.ColorDef, payload ...[]byte) digest.Digest {
	defHash := def.Hash()
	records := make([][]byte, 0, 3+len(payload))
	records = append(records, []byte{tag}, []byte{Version}, defHash[:])
	records = append(records, payload...)
	return digest.NewKeyed(proofKey, records...)
}

// breadth-first validation over the proof DAG
//
// structurally shared subproofs are checked once, termination
// follows from the DAG being finite and acyclic
func validate(start ColorProof) error {
	queue := []ColorProof{start}
	seen := make(map[digest.Digest]struct{})

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		hash := p.Hash()
		if _, ok := seen[hash]; ok {
			continue
		}
		seen[hash] = struct{}{}

		if err := p.localValidate(); nil != err {
			return err
		}
		queue = append(queue, p.dependencies()...)
	}
	return nil
}
