// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package proofdb - incremental database of color proofs
//
// Maintains the set of known colordefs and every proof relevant to
// transactions fed in so far. Proofs are owned once in a content
// hash keyed arena, the index maps only hold hash references, so
// structurally identical proofs are never stored twice.
package proofdb

import (
	"sync"

	"github.com/bitmark-inc/smartcolors/colordef"
	"github.com/bitmark-inc/smartcolors/colorproof"
	"github.com/bitmark-inc/smartcolors/digest"
	"github.com/bitmark-inc/smartcolors/fault"
	"github.com/bitmark-inc/smartcolors/ledger"
)

type hashSet map[digest.Digest]struct{}

// ColorProofDb - all proofs known for all tracked colors
type ColorProofDb struct {
	sync.RWMutex

	// all owned records by content hash
	colorDefs map[digest.Digest]*colordef.ColorDef
	proofs    map[digest.Digest]colorproof.ColorProof

	// reverse indexes, values are hash references into the arena
	genesisOutPoints map[ledger.OutPoint]hashSet
	genesisScripts   map[string]hashSet
	coloredOutPoints map[ledger.OutPoint]map[digest.Digest]hashSet
}

// New - an empty database
func New() *ColorProofDb {
	return &ColorProofDb{
		colorDefs:        make(map[digest.Digest]*colordef.ColorDef),
		proofs:           make(map[digest.Digest]colorproof.ColorProof),
		genesisOutPoints: make(map[ledger.OutPoint]hashSet),
		genesisScripts:   make(map[string]hashSet),
		coloredOutPoints: make(map[ledger.OutPoint]map[digest.Digest]hashSet),
	}
}

// AddColorDef - start tracking a color
//
// genesis outpoints need no transaction to be proven, their proofs
// are materialized immediately; adding a colordef twice is a no-op
func (db *ColorProofDb) AddColorDef(def *colordef.ColorDef) error {
	db.Lock()
	defer db.Unlock()
	return db.addColorDef(def)
}

func (db *ColorProofDb) addColorDef(def *colordef.ColorDef) error {
	if def.IsPruned() {
		return fault.ErrColorDefIsPruned
	}

	defHash := def.Hash()
	if _, ok := db.colorDefs[defHash]; ok {
		return nil
	}
	db.colorDefs[defHash] = def

	var err error
	def.EachGenesisOutPoint(func(g colordef.GenesisOutPoint) bool {
		defs, ok := db.genesisOutPoints[g.OutPoint]
		if !ok {
			defs = make(hashSet)
			db.genesisOutPoints[g.OutPoint] = defs
		}
		defs[defHash] = struct{}{}

		var proof *colorproof.GenesisOutPointProof
		proof, err = colorproof.NewGenesisOutPoint(def, g.OutPoint)
		if nil != err {
			return false
		}
		db.indexProof(proof)
		return true
	})
	if nil != err {
		return err
	}

	def.EachGenesisScript(func(script ledger.Script) bool {
		defs, ok := db.genesisScripts[string(script)]
		if !ok {
			defs = make(hashSet)
			db.genesisScripts[string(script)] = defs
		}
		defs[defHash] = struct{}{}
		return true
	})

	return nil
}

// place a proof into the arena and the colored outpoint index
func (db *ColorProofDb) indexProof(proof colorproof.ColorProof) {
	proofHash := proof.Hash()
	if _, ok := db.proofs[proofHash]; ok {
		return
	}
	db.proofs[proofHash] = proof

	byDef, ok := db.coloredOutPoints[proof.OutPoint()]
	if !ok {
		byDef = make(map[digest.Digest]hashSet)
		db.coloredOutPoints[proof.OutPoint()] = byDef
	}
	defHash := proof.ColorDef().Hash()
	proofSet, ok := byDef[defHash]
	if !ok {
		proofSet = make(hashSet)
		byDef[defHash] = proofSet
	}
	proofSet[proofHash] = struct{}{}
}

// AddColorProof - insert a proof and everything it depends on
//
// subproofs of a transferred proof are inserted first so the
// database is always closed under dependency
func (db *ColorProofDb) AddColorProof(proof colorproof.ColorProof) error {
	db.Lock()
	defer db.Unlock()
	return db.addColorProof(proof)
}

func (db *ColorProofDb) addColorProof(proof colorproof.ColorProof) error {
	if err := db.addColorDef(proof.ColorDef()); nil != err {
		return err
	}

	if transferred, ok := proof.(*colorproof.TransferredProof); ok {
		var err error
		transferred.EachPrevOut(func(prevOut ledger.OutPoint, sub colorproof.ColorProof) bool {
			err = db.addColorProof(sub)
			return nil == err
		})
		if nil != err {
			return err
		}
	}

	db.indexProof(proof)
	return nil
}

// AddTx - extract every provable color movement from a transaction
//
// synthesizes genesis script proofs for matching outputs, then for
// each color with proven inputs applies the kernel and records a
// transferred proof for every colored output; identical knowledge
// fed twice produces no duplicates
func (db *ColorProofDb) AddTx(tx *ledger.Transaction) error {
	db.Lock()
	defer db.Unlock()

	txid := tx.TxID()

	// step 1: genesis scriptPubKey proofs for the outputs
	for i, out := range tx.Vout {
		defs, ok := db.genesisScripts[string(out.ScriptPubKey)]
		if !ok {
			continue
		}
		outPoint := ledger.OutPoint{TxID: txid, N: uint32(i)}
		for defHash := range defs {
			proof, err := colorproof.NewGenesisScript(db.colorDefs[defHash], outPoint, tx)
			if nil != err {
				return err
			}
			db.indexProof(proof)
		}
	}

	// step 2: collect candidate proofs at the inputs, per colordef
	candidates := make(map[digest.Digest]map[ledger.OutPoint]hashSet)
	for _, in := range tx.Vin {
		for defHash, proofSet := range db.coloredOutPoints[in.PrevOut] {
			byOutPoint, ok := candidates[defHash]
			if !ok {
				byOutPoint = make(map[ledger.OutPoint]hashSet)
				candidates[defHash] = byOutPoint
			}
			set, ok := byOutPoint[in.PrevOut]
			if !ok {
				set = make(hashSet)
				byOutPoint[in.PrevOut] = set
			}
			for proofHash := range proofSet {
				set[proofHash] = struct{}{}
			}
		}
	}

	// steps 3 and 4: per color, pick the best proof per input and
	// run the kernel over the claimed quantities
	for defHash, byOutPoint := range candidates {
		def := db.colorDefs[defHash]

		prevOutProofs := make(map[ledger.OutPoint]colorproof.ColorProof, len(byOutPoint))
		colorIn := make(map[ledger.OutPoint]uint64, len(byOutPoint))
		for outPoint, proofSet := range byOutPoint {
			best := db.bestProof(proofSet)
			prevOutProofs[outPoint] = best
			colorIn[outPoint] = best.Qty()
		}

		colorOut, err := def.ApplyKernel(tx, colorIn)
		if nil != err {
			return err
		}

		for i, qty := range colorOut {
			if nil == qty {
				continue
			}
			outPoint := ledger.OutPoint{TxID: txid, N: uint32(i)}
			proof, err := colorproof.NewTransferred(def, outPoint, tx, prevOutProofs)
			if nil != err {
				return err
			}
			if proof.Qty() != *qty {
				fault.Panicf("proofdb: transferred proof qty %d disagrees with kernel qty %d at %s",
					proof.Qty(), *qty, outPoint)
			}
			db.indexProof(proof)
		}
	}

	return nil
}

// choose one proof from a non-empty candidate set
//
// priority: genesis outpoint, then genesis scriptPubKey, then
// transferred; ties break on hash for determinism; every candidate
// must agree on the proven quantity, disagreement is a database
// consistency violation
func (db *ColorProofDb) bestProof(proofSet hashSet) colorproof.ColorProof {
	var best colorproof.ColorProof
	for proofHash := range proofSet {
		proof := db.proofs[proofHash]
		if nil == proof {
			fault.Panicf("proofdb: indexed proof %s missing from arena", proofHash)
		}
		if nil == best {
			best = proof
			continue
		}
		if proof.Tag() < best.Tag() ||
			(proof.Tag() == best.Tag() && proof.Hash().Compare(best.Hash()) < 0) {
			best = proof
		}
	}

	for proofHash := range proofSet {
		if qty := db.proofs[proofHash].Qty(); qty != best.Qty() {
			fault.Panicf("proofdb: proofs at %s disagree on qty: %d != %d",
				best.OutPoint(), qty, best.Qty())
		}
	}
	return best
}

// ColorDef - look up a tracked colordef by hash
func (db *ColorProofDb) ColorDef(defHash digest.Digest) (*colordef.ColorDef, bool) {
	db.RLock()
	defer db.RUnlock()
	def, ok := db.colorDefs[defHash]
	return def, ok
}

// Proof - look up a proof by hash
func (db *ColorProofDb) Proof(proofHash digest.Digest) (colorproof.ColorProof, bool) {
	db.RLock()
	defer db.RUnlock()
	proof, ok := db.proofs[proofHash]
	return proof, ok
}

// ProofsFor - all proofs at an outpoint for one color
func (db *ColorProofDb) ProofsFor(outPoint ledger.OutPoint, defHash digest.Digest) []colorproof.ColorProof {
	db.RLock()
	defer db.RUnlock()

	var proofs []colorproof.ColorProof
	for proofHash := range db.coloredOutPoints[outPoint][defHash] {
		proofs = append(proofs, db.proofs[proofHash])
	}
	return proofs
}

// EachColorDef - visit every tracked colordef
func (db *ColorProofDb) EachColorDef(fn func(*colordef.ColorDef) bool) {
	db.RLock()
	defer db.RUnlock()

	for _, def := range db.colorDefs {
		if !fn(def) {
			return
		}
	}
}

// EachColoredOutPoint - visit every colored outpoint with its proofs
// grouped by colordef
func (db *ColorProofDb) EachColoredOutPoint(fn func(ledger.OutPoint, *colordef.ColorDef, []colorproof.ColorProof) bool) {
	db.RLock()
	defer db.RUnlock()

	for outPoint, byDef := range db.coloredOutPoints {
		for defHash, proofSet := range byDef {
			proofs := make([]colorproof.ColorProof, 0, len(proofSet))
			for proofHash := range proofSet {
				proofs = append(proofs, db.proofs[proofHash])
			}
			if !fn(outPoint, db.colorDefs[defHash], proofs) {
				return
			}
		}
	}
}

// EachProof - visit every proof in the arena
func (db *ColorProofDb) EachProof(fn func(colorproof.ColorProof) bool) {
	db.RLock()
	defer db.RUnlock()

	for _, proof := range db.proofs {
		if !fn(proof) {
			return
		}
	}
}
