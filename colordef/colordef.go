// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package colordef

import (
	"github.com/bitmark-inc/smartcolors/digest"
	"github.com/bitmark-inc/smartcolors/fault"
	"github.com/bitmark-inc/smartcolors/ledger"
	"github.com/bitmark-inc/smartcolors/marshal"
	"github.com/bitmark-inc/smartcolors/merbinner"
	"github.com/bitmark-inc/smartcolors/util"
)

// StegKeyLength - bytes in a stegkey
const StegKeyLength = 16

// Version - the only record version in use
const Version = 1

// class key for colordef record hashes
var colorDefKey = digest.MustKey("02de85d36bbed4204a7d1e1a41eed4b7")

// limits applied when deserializing
const (
	maxGenesisPoints = 1 << 20
	maxScriptLength  = 10000
)

// tree schemes shared by all colordefs
var (
	outPointScheme = merbinner.NewSumScheme(digest.MustKey("fa12a4b173342045883d0dc8456a0073"))
	scriptScheme   = merbinner.NewScheme(digest.MustKey("2dbb26ed47ad14ec12b0de37dc33e1dc"))
)

// GenesisOutPoint - one genesis outpoint and the quantity it mints
type GenesisOutPoint struct {
	OutPoint ledger.OutPoint
	Qty      uint64
}

// Hash - leaf value hash in the genesis outpoint tree
func (g GenesisOutPoint) Hash() digest.Digest {
	return digest.NewKeyed(colorDefKey, g.OutPoint.Pack(), util.ToVarint64(g.Qty))
}

// Sum - genesis outpoint trees sum minted quantities
func (g GenesisOutPoint) Sum() uint64 {
	return g.Qty
}

// ColorDef - immutable definition of one color
type ColorDef struct {
	version   uint64
	birthdate uint64
	stegKey   [StegKeyLength]byte

	// wire order, as created or deserialized
	outPoints []GenesisOutPoint
	scripts   []ledger.Script

	// membership and selective disclosure
	outPointTree *merbinner.Tree
	scriptTree   *merbinner.Tree

	hash     digest.Digest
	isPruned bool
}

// New - build a colordef from its genesis points
func New(birthdate uint64, stegKey [StegKeyLength]byte, outPoints []GenesisOutPoint, scripts []ledger.Script) (*ColorDef, error) {

	cd := &ColorDef{
		version:   Version,
		birthdate: birthdate,
		stegKey:   stegKey,
		outPoints: outPoints,
		scripts:   scripts,
	}

	err := cd.buildTrees()
	if nil != err {
		return nil, err
	}

	packed, err := cd.Pack()
	if nil != err {
		return nil, err
	}
	cd.hash = digest.NewKeyed(colorDefKey, packed)

	return cd, nil
}

func (cd *ColorDef) buildTrees() error {

	outPointItems := make([]merbinner.Item, len(cd.outPoints))
	for i, g := range cd.outPoints {
		outPointItems[i] = merbinner.Item{
			Key:   g.OutPoint.Hash(),
			Value: g,
		}
	}
	outPointTree, err := merbinner.FromItems(outPointScheme, outPointItems)
	if nil != err {
		if fault.ErrDuplicateKey == err {
			return fault.ErrDuplicateGenesisOutPoint
		}
		return err
	}

	scriptItems := make([]merbinner.Item, len(cd.scripts))
	for i, script := range cd.scripts {
		scriptItems[i] = merbinner.Item{
			Key:   script.Hash(),
			Value: script,
		}
	}
	scriptTree, err := merbinner.FromItems(scriptScheme, scriptItems)
	if nil != err {
		if fault.ErrDuplicateKey == err {
			return fault.ErrDuplicateGenesisScript
		}
		return err
	}

	cd.outPointTree = outPointTree
	cd.scriptTree = scriptTree
	return nil
}

// Pack - the flat wire serialization
//
// version, birthdate, stegkey, genesis outpoint list, genesis
// script list; pruned colordefs have withheld contents and cannot be
// represented this way
func (cd *ColorDef) Pack() ([]byte, error) {
	if cd.isPruned {
		return nil, fault.ErrColorDefIsPruned
	}

	w := marshal.NewWriter()
	w.WriteVaruint(cd.version)
	w.WriteVaruint(cd.birthdate)
	w.WriteBytes(cd.stegKey[:])

	w.WriteVaruint(uint64(len(cd.outPoints)))
	for _, g := range cd.outPoints {
		w.WriteBytes(g.OutPoint.Pack())
		w.WriteVaruint(g.Qty)
	}

	w.WriteVaruint(uint64(len(cd.scripts)))
	for _, script := range cd.scripts {
		w.WriteVarBytes(script)
	}

	return w.Bytes(), nil
}

// Unpack - deserialize a flat colordef record
func Unpack(buffer []byte) (*ColorDef, error) {
	r := marshal.NewReader(buffer)
	cd, err := unpackReader(r)
	if nil != err {
		return nil, err
	}
	if err := r.Done(); nil != err {
		return nil, err
	}
	return cd, nil
}

func unpackReader(r *marshal.Reader) (*ColorDef, error) {

	cd := &ColorDef{}

	version, err := r.ReadVaruint()
	if nil != err {
		return nil, err
	}
	if Version != version {
		return nil, fault.ErrUnsupportedVersion
	}
	cd.version = version

	cd.birthdate, err = r.ReadVaruint()
	if nil != err {
		return nil, err
	}

	stegKey, err := r.ReadBytes(StegKeyLength)
	if nil != err {
		return nil, err
	}
	copy(cd.stegKey[:], stegKey)

	outPointCount, err := r.ReadVaruint()
	if nil != err {
		return nil, err
	}
	if outPointCount > maxGenesisPoints {
		return nil, fault.ErrInvalidCount
	}
	cd.outPoints = make([]GenesisOutPoint, outPointCount)
	for i := uint64(0); i < outPointCount; i += 1 {
		packed, err := r.ReadBytes(ledger.OutPointLength)
		if nil != err {
			return nil, err
		}
		outPoint, _, err := ledger.UnpackOutPoint(packed)
		if nil != err {
			return nil, err
		}
		qty, err := r.ReadVaruint()
		if nil != err {
			return nil, err
		}
		cd.outPoints[i] = GenesisOutPoint{OutPoint: outPoint, Qty: qty}
	}

	scriptCount, err := r.ReadVaruint()
	if nil != err {
		return nil, err
	}
	if scriptCount > maxGenesisPoints {
		return nil, fault.ErrInvalidCount
	}
	cd.scripts = make([]ledger.Script, scriptCount)
	for i := uint64(0); i < scriptCount; i += 1 {
		script, err := r.ReadVarBytes(maxScriptLength)
		if nil != err {
			return nil, err
		}
		cd.scripts[i] = script
	}

	err = cd.buildTrees()
	if nil != err {
		return nil, err
	}

	packed, err := cd.Pack()
	if nil != err {
		return nil, err
	}
	cd.hash = digest.NewKeyed(colorDefKey, packed)

	return cd, nil
}

// Hash - the record hash, stable across pruning
func (cd *ColorDef) Hash() digest.Digest {
	return cd.hash
}

// Version - record version
func (cd *ColorDef) Version() uint64 {
	return cd.version
}

// Birthdate - block height before which no genesis point is valid
func (cd *ColorDef) Birthdate() uint64 {
	return cd.birthdate
}

// StegKey - the steganography key
func (cd *ColorDef) StegKey() [StegKeyLength]byte {
	return cd.stegKey
}

// IsPruned - true when any genesis contents have been withheld
func (cd *ColorDef) IsPruned() bool {
	return cd.isPruned
}

// GenesisQty - minted quantity for a genesis outpoint
func (cd *ColorDef) GenesisQty(outPoint ledger.OutPoint) (uint64, bool) {
	value, err := cd.outPointTree.Get(outPoint.Hash())
	if nil != err {
		return 0, false
	}
	return value.(GenesisOutPoint).Qty, true
}

// HasGenesisScript - is the script a genesis scriptPubKey
func (cd *ColorDef) HasGenesisScript(script ledger.Script) bool {
	_, err := cd.scriptTree.Get(script.Hash())
	return nil == err
}

// TotalIssuance - sum of all genesis outpoint quantities
//
// remains correct on pruned colordefs because pruned subtrees keep
// their sums
func (cd *ColorDef) TotalIssuance() uint64 {
	return cd.outPointTree.Sum()
}

// EachGenesisOutPoint - visit visible genesis outpoints in wire order
func (cd *ColorDef) EachGenesisOutPoint(fn func(GenesisOutPoint) bool) {
	for _, g := range cd.outPoints {
		if !fn(g) {
			return
		}
	}
}

// EachGenesisScript - visit visible genesis scripts in wire order
func (cd *ColorDef) EachGenesisScript(fn func(ledger.Script) bool) {
	for _, script := range cd.scripts {
		if !fn(script) {
			return
		}
	}
}

// Prune - a copy disclosing only the given genesis points
//
// the copy keeps the original hash and total issuance but can no
// longer produce the flat serialization
func (cd *ColorDef) Prune(keepOutPoints []ledger.OutPoint, keepScripts []ledger.Script) *ColorDef {

	outPointKeys := make([]digest.Digest, len(keepOutPoints))
	keepOutPointSet := make(map[ledger.OutPoint]struct{}, len(keepOutPoints))
	for i, outPoint := range keepOutPoints {
		outPointKeys[i] = outPoint.Hash()
		keepOutPointSet[outPoint] = struct{}{}
	}

	scriptKeys := make([]digest.Digest, len(keepScripts))
	keepScriptSet := make(map[string]struct{}, len(keepScripts))
	for i, script := range keepScripts {
		scriptKeys[i] = script.Hash()
		keepScriptSet[string(script)] = struct{}{}
	}

	outPoints := make([]GenesisOutPoint, 0, len(keepOutPoints))
	for _, g := range cd.outPoints {
		if _, ok := keepOutPointSet[g.OutPoint]; ok {
			outPoints = append(outPoints, g)
		}
	}
	scripts := make([]ledger.Script, 0, len(keepScripts))
	for _, script := range cd.scripts {
		if _, ok := keepScriptSet[string(script)]; ok {
			scripts = append(scripts, script)
		}
	}

	return &ColorDef{
		version:      cd.version,
		birthdate:    cd.birthdate,
		stegKey:      cd.stegKey,
		outPoints:    outPoints,
		scripts:      scripts,
		outPointTree: cd.outPointTree.Prove(outPointKeys),
		scriptTree:   cd.scriptTree.Prove(scriptKeys),
		hash:         cd.hash,
		isPruned:     true,
	}
}
