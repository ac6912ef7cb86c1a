// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package colorproof_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/bitmark-inc/smartcolors/colordef"
	"github.com/bitmark-inc/smartcolors/colorproof"
	"github.com/bitmark-inc/smartcolors/digest"
	"github.com/bitmark-inc/smartcolors/fault"
	"github.com/bitmark-inc/smartcolors/ledger"
	"github.com/bitmark-inc/smartcolors/marshal"
	"github.com/bitmark-inc/smartcolors/padding"
	"github.com/bitmark-inc/smartcolors/util"
)

// colordef with the genesis block's coinbase outpoint and the
// "hello world!" genesis script
const mixedDefHex = "0100e21a56b106c2b720ed82c603471b5d55013ba3edfd7a7b12b27ac72c3e67768f617fc81bc3888a51323a9fb8aa4b1e5e4a0000000080e497d012010d0c68656c6c6f20776f726c6421"

const outPointDefHex = "0100ec746756751d8ac6e9345f9050e1565f013ba3edfd7a7b12b27ac72c3e67768f617fc81bc3888a51323a9fb8aa4b1e5e4a0000000080e497d01200"

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if nil != err {
		t.Fatalf("bad hex: %s", err)
	}
	return b
}

// a txid given in the conventional reversed display order
func reversedTxID(t *testing.T, s string) digest.Digest {
	t.Helper()
	b := mustHex(t, s)
	var d digest.Digest
	for i, v := range b {
		d[len(b)-1-i] = v
	}
	return d
}

func proofKeyedHash(t *testing.T, chunks ...[]byte) digest.Digest {
	t.Helper()
	mac := hmac.New(sha256.New, mustHex(t, "b96dae8e52cb124d01804353736a8384"))
	for _, chunk := range chunks {
		mac.Write(chunk)
	}
	var d digest.Digest
	copy(d[:], mac.Sum(nil))
	return d
}

func treeKeyedHash(t *testing.T, chunks ...[]byte) digest.Digest {
	t.Helper()
	mac := hmac.New(sha256.New, mustHex(t, "486a3b9f0cc1adc7f0f7f3e388b89dbc"))
	for _, chunk := range chunks {
		mac.Write(chunk)
	}
	var d digest.Digest
	copy(d[:], mac.Sum(nil))
	return d
}

func genesisOutPoint(t *testing.T) ledger.OutPoint {
	t.Helper()
	return ledger.OutPoint{
		TxID: reversedTxID(t, "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"),
		N:    0,
	}
}

func TestGenesisOutPointHash(t *testing.T) {
	def, err := colordef.Unpack(mustHex(t, outPointDefHex))
	if nil != err {
		t.Fatalf("unpack colordef error: %s", err)
	}

	outPoint := genesisOutPoint(t)
	proof, err := colorproof.NewGenesisOutPoint(def, outPoint)
	if nil != err {
		t.Fatalf("new proof error: %s", err)
	}

	defHash := def.Hash()
	outPointHash := outPoint.Hash()
	expected := proofKeyedHash(t,
		[]byte{0x01}, // proof type
		[]byte{0x01}, // version
		defHash[:],
		outPointHash[:])

	if proof.Hash() != expected {
		t.Errorf("hash: %s  expected: %s", proof.Hash(), expected)
	}
	if 5000000000 != proof.Qty() {
		t.Errorf("qty: %d  expected: 5000000000", proof.Qty())
	}
	if err := proof.Validate(); nil != err {
		t.Errorf("validate error: %s", err)
	}
}

func TestGenesisOutPointQty(t *testing.T) {
	outPoint := ledger.OutPoint{TxID: digest.Digest{0xaa}, N: 0}
	var stegKey [colordef.StegKeyLength]byte
	def, err := colordef.New(0, stegKey,
		[]colordef.GenesisOutPoint{{OutPoint: outPoint, Qty: 42}}, nil)
	if nil != err {
		t.Fatalf("new colordef error: %s", err)
	}

	proof, err := colorproof.NewGenesisOutPoint(def, outPoint)
	if nil != err {
		t.Fatalf("new proof error: %s", err)
	}
	if 42 != proof.Qty() {
		t.Errorf("qty: %d  expected: 42", proof.Qty())
	}

	// an outpoint the colordef does not mint
	_, err = colorproof.NewGenesisOutPoint(def, ledger.OutPoint{})
	if fault.ErrProofNotGenesisOutPoint != err {
		t.Errorf("err: %v  expected: %v", err, fault.ErrProofNotGenesisOutPoint)
	}
}

// the genesis block's full coinbase transaction
const mainCoinbaseHex = "01000000010000000000000000000000000000000000000000000000000000000000000000ffffffff4d04ffff001d0104455468652054696d65732030332f4a616e2f32303039204368616e63656c6c6f72206f6e206272696e6b206f66207365636f6e64206261696c6f757420666f722062616e6b73ffffffff0100f2052a01000000434104678afdb0fe5548271967f1a67130b7105cd6a828e03909a67962e0ea1f61deb649f6bc3f4cef38c4f35504e51ec112de5c384df7ba0b8d578a4c702b6bf11d5fac00000000"

const scriptDefHex = "01006bbd59a72d6a9b5629b0162a4ab90f3b00010d0c68656c6c6f20776f726c6421"

func TestGenesisScriptHash(t *testing.T) {
	def, err := colordef.Unpack(mustHex(t, scriptDefHex))
	if nil != err {
		t.Fatalf("unpack colordef error: %s", err)
	}

	tx, err := ledger.UnpackTransaction(mustHex(t, mainCoinbaseHex))
	if nil != err {
		t.Fatalf("unpack tx error: %s", err)
	}

	// the coinbase does not pay the genesis script
	_, err = colorproof.NewGenesisScript(def, tx.OutPoint(0), tx)
	if fault.ErrProofNotGenesisScript != err {
		t.Fatalf("err: %v  expected: %v", err, fault.ErrProofNotGenesisScript)
	}

	// replace the output script with the genesis script
	tx.Vout[0].ScriptPubKey = ledger.Script("\x0chello world!")

	proof, err := colorproof.NewGenesisScript(def, tx.OutPoint(0), tx)
	if nil != err {
		t.Fatalf("new proof error: %s", err)
	}

	defHash := def.Hash()
	txHash := tx.Hash()
	expected := proofKeyedHash(t,
		[]byte{0x02}, // proof type
		[]byte{0x01}, // version
		defHash[:],
		[]byte{0x00}, // n
		txHash[:])

	if proof.Hash() != expected {
		t.Errorf("hash: %s  expected: %s", proof.Hash(), expected)
	}
	if err := proof.Validate(); nil != err {
		t.Errorf("validate error: %s", err)
	}
}

func TestGenesisScriptQty(t *testing.T) {
	script := ledger.Script("\x0chello world!")
	var stegKey [colordef.StegKeyLength]byte
	def, err := colordef.New(0, stegKey, nil, []ledger.Script{script})
	if nil != err {
		t.Fatalf("new colordef error: %s", err)
	}

	tx := &ledger.Transaction{
		Version: 1,
		Vout:    []ledger.TxOut{{Value: 42 << 1, ScriptPubKey: script}},
	}

	proof, err := colorproof.NewGenesisScript(def, tx.OutPoint(0), tx)
	if nil != err {
		t.Fatalf("new proof error: %s", err)
	}
	if 42 != proof.Qty() {
		t.Errorf("qty: %d  expected: 42", proof.Qty())
	}

	// outpoint not matching the transaction
	_, err = colorproof.NewGenesisScript(def, ledger.OutPoint{}, tx)
	if fault.ErrProofOutPointMismatch != err {
		t.Errorf("err: %v  expected: %v", err, fault.ErrProofOutPointMismatch)
	}

	// index out of range
	_, err = colorproof.NewGenesisScript(def, tx.OutPoint(1), tx)
	if fault.ErrProofOutOfRange != err {
		t.Errorf("err: %v  expected: %v", err, fault.ErrProofOutOfRange)
	}
}

// build the transferred proof scenario from the original record
// vectors: a genesis outpoint proof and a genesis script proof spent
// together into one output
func transferredScenario(t *testing.T) (*colordef.ColorDef, *colorproof.TransferredProof) {
	t.Helper()

	def, err := colordef.Unpack(mustHex(t, mixedDefHex))
	if nil != err {
		t.Fatalf("unpack colordef error: %s", err)
	}

	genesisScript := ledger.Script("\x0chello world!")

	// locktime chosen so the prevout tree exercises both a bit
	// collision and a split
	txGenesisScript := &ledger.Transaction{
		Version: 1,
		Vin: []ledger.TxIn{{
			PrevOut: ledger.OutPoint{
				TxID: reversedTxID(t, "0e3e2357e806b6cdb1f70b54c3a3a17b6714ee1f0e68bebb44a74b1efd512098"),
				N:    0,
			},
			Sequence: 0xffffffff,
		}},
		Vout:     []ledger.TxOut{{Value: 1 << 1, ScriptPubKey: genesisScript}},
		LockTime: 5,
	}

	outPointProof, err := colorproof.NewGenesisOutPoint(def, genesisOutPoint(t))
	if nil != err {
		t.Fatalf("new outpoint proof error: %s", err)
	}
	scriptProof, err := colorproof.NewGenesisScript(def, txGenesisScript.OutPoint(0), txGenesisScript)
	if nil != err {
		t.Fatalf("new script proof error: %s", err)
	}

	tx := &ledger.Transaction{
		Version: 1,
		Vin: []ledger.TxIn{
			{PrevOut: outPointProof.OutPoint(), Sequence: 0xffff007e},
			{PrevOut: scriptProof.OutPoint(), Sequence: 0xffff007e},
		},
		Vout: []ledger.TxOut{{Value: 1 << 1}},
	}

	proof, err := colorproof.NewTransferred(def, tx.OutPoint(0), tx,
		map[ledger.OutPoint]colorproof.ColorProof{
			outPointProof.OutPoint(): outPointProof,
			scriptProof.OutPoint():   scriptProof,
		})
	if nil != err {
		t.Fatalf("new transferred proof error: %s", err)
	}
	return def, proof
}

func TestTransferredHash(t *testing.T) {
	def, proof := transferredScenario(t)
	tx := proof.Tx()

	// the outpoint content hashes drive the tree structure
	vin0Hash := tx.Vin[0].PrevOut.Hash()
	vin1Hash := tx.Vin[1].PrevOut.Hash()
	if "f2eea3c6203bebe501c42ac420469afca0cee4e48a67d8754c449b832b1d084c" != vin0Hash.String() {
		t.Fatalf("vin0 hash: %s", vin0Hash)
	}
	if "aae7c112d92b9dcab3ae78b78884c77e092b94a56941cf05c5f406ef40daf2f2" != vin1Hash.String() {
		t.Fatalf("vin1 hash: %s", vin1Hash)
	}

	// brute force the prevout tree:
	// Inner(Inner(Leaf[outpoint proof], Leaf[script proof]), Empty)
	var outPointProof, scriptProof colorproof.ColorProof
	proof.EachPrevOut(func(prevOut ledger.OutPoint, sub colorproof.ColorProof) bool {
		switch sub.Tag() {
		case colorproof.TagGenesisOutPoint:
			outPointProof = sub
		case colorproof.TagGenesisScript:
			scriptProof = sub
		}
		return true
	})
	if nil == outPointProof || nil == scriptProof {
		t.Fatalf("missing subproofs")
	}

	outPointProofHash := outPointProof.Hash()
	scriptProofHash := scriptProof.Hash()
	leafOutPoint := treeKeyedHash(t, []byte{0x01}, vin0Hash[:], outPointProofHash[:])
	leafScript := treeKeyedHash(t, []byte{0x01}, vin1Hash[:], scriptProofHash[:])
	inner := treeKeyedHash(t, []byte{0x02},
		leafOutPoint[:], util.ToVarint64(5000000000),
		leafScript[:], util.ToVarint64(1))
	empty := treeKeyedHash(t, []byte{0x00})
	expectedTreeHash := treeKeyedHash(t, []byte{0x02},
		inner[:], util.ToVarint64(5000000001),
		empty[:], []byte{0x00})

	if proof.PrevOutTree().Hash() != expectedTreeHash {
		t.Errorf("tree hash: %s  expected: %s", proof.PrevOutTree().Hash(), expectedTreeHash)
	}
	if 5000000001 != proof.PrevOutTree().Sum() {
		t.Errorf("tree sum: %d  expected: 5000000001", proof.PrevOutTree().Sum())
	}

	defHash := def.Hash()
	txHash := tx.Hash()
	expected := proofKeyedHash(t,
		[]byte{0x03}, // proof type
		[]byte{0x01}, // version
		defHash[:],
		[]byte{0x00}, // n
		txHash[:],
		expectedTreeHash[:])

	if proof.Hash() != expected {
		t.Errorf("hash: %s  expected: %s", proof.Hash(), expected)
	}

	// most of the routed color was destroyed by the single small output
	if 1 != proof.Qty() {
		t.Errorf("qty: %d  expected: 1", proof.Qty())
	}
}

func stegSpendScenario(t *testing.T) (*colordef.ColorDef, *colorproof.TransferredProof) {
	t.Helper()

	outPoint := ledger.OutPoint{TxID: digest.Digest{0xaa}, N: 0}
	var stegKey [colordef.StegKeyLength]byte
	copy(stegKey[:], "sixteen byte key")
	def, err := colordef.New(0, stegKey,
		[]colordef.GenesisOutPoint{{OutPoint: outPoint, Qty: 42}}, nil)
	if nil != err {
		t.Fatalf("new colordef error: %s", err)
	}

	genesisProof, err := colorproof.NewGenesisOutPoint(def, outPoint)
	if nil != err {
		t.Fatalf("new genesis proof error: %s", err)
	}

	value, err := padding.Pad(42, 546)
	if nil != err {
		t.Fatalf("pad error: %s", err)
	}
	tx := &ledger.Transaction{
		Version: 1,
		Vin: []ledger.TxIn{{
			PrevOut:  outPoint,
			Sequence: def.EncodeSequence(outPoint, 0x0001, true),
		}},
		Vout: []ledger.TxOut{{Value: value}},
	}

	proof, err := colorproof.NewTransferred(def, tx.OutPoint(0), tx,
		map[ledger.OutPoint]colorproof.ColorProof{outPoint: genesisProof})
	if nil != err {
		t.Fatalf("new transferred proof error: %s", err)
	}
	return def, proof
}

func TestTransferredValidate(t *testing.T) {
	_, proof := transferredScenario(t)
	if err := proof.Validate(); nil != err {
		t.Fatalf("validate error: %s", err)
	}

	_, stegProof := stegSpendScenario(t)
	if 42 != stegProof.Qty() {
		t.Errorf("qty: %d  expected: 42", stegProof.Qty())
	}
	if err := stegProof.Validate(); nil != err {
		t.Fatalf("validate error: %s", err)
	}

	// breaking the kernel agreement must fail validation
	stegProof.Tx().Vout[0].Value = 0
	err := stegProof.Validate()
	if !fault.IsErrValidation(err) {
		t.Errorf("err: %v  expected a validation error", err)
	}
}

func TestTransferredConstructionErrors(t *testing.T) {
	def, proof := transferredScenario(t)
	tx := proof.Tx()

	// outpoint not matching the transaction
	_, err := colorproof.NewTransferred(def, ledger.OutPoint{}, tx, nil)
	if fault.ErrProofOutPointMismatch != err {
		t.Errorf("err: %v  expected: %v", err, fault.ErrProofOutPointMismatch)
	}

	// index out of range
	_, err = colorproof.NewTransferred(def, tx.OutPoint(7), tx, nil)
	if fault.ErrProofOutOfRange != err {
		t.Errorf("err: %v  expected: %v", err, fault.ErrProofOutOfRange)
	}

	// no colored inputs reach the claimed output
	_, err = colorproof.NewTransferred(def, tx.OutPoint(0), tx, nil)
	if fault.ErrProofOutputNotColored != err {
		t.Errorf("err: %v  expected: %v", err, fault.ErrProofOutputNotColored)
	}

	// subproof for a different colordef
	otherDef, err := colordef.Unpack(mustHex(t, outPointDefHex))
	if nil != err {
		t.Fatalf("unpack colordef error: %s", err)
	}
	otherProof, err := colorproof.NewGenesisOutPoint(otherDef, genesisOutPoint(t))
	if nil != err {
		t.Fatalf("new proof error: %s", err)
	}
	_, err = colorproof.NewTransferred(def, tx.OutPoint(0), tx,
		map[ledger.OutPoint]colorproof.ColorProof{otherProof.OutPoint(): otherProof})
	if fault.ErrMismatchedColorDefs != err {
		t.Errorf("err: %v  expected: %v", err, fault.ErrMismatchedColorDefs)
	}
}

func TestPackUnpack(t *testing.T) {
	_, proof := transferredScenario(t)

	w := marshal.NewWriter()
	if err := colorproof.Pack(w, proof); nil != err {
		t.Fatalf("pack error: %s", err)
	}

	r := marshal.NewReader(w.Bytes())
	unpacked, err := colorproof.Unpack(r)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if err := r.Done(); nil != err {
		t.Fatalf("done: %v", err)
	}

	if unpacked.Hash() != proof.Hash() {
		t.Errorf("hash: %s  expected: %s", unpacked.Hash(), proof.Hash())
	}
	if unpacked.Qty() != proof.Qty() {
		t.Errorf("qty: %d  expected: %d", unpacked.Qty(), proof.Qty())
	}
	if err := unpacked.Validate(); nil != err {
		t.Errorf("validate error: %s", err)
	}

	// the memoized colordef is shared across the rebuilt DAG
	transferred, ok := unpacked.(*colorproof.TransferredProof)
	if !ok {
		t.Fatalf("unpacked is %T  expected a transferred proof", unpacked)
	}
	transferred.EachPrevOut(func(prevOut ledger.OutPoint, sub colorproof.ColorProof) bool {
		if sub.ColorDef() != transferred.ColorDef() {
			t.Errorf("colordef not shared with subproof at %s", prevOut)
		}
		return true
	})

	// a pruned colordef cannot be serialized
	_, stegProof := stegSpendScenario(t)
	genesisOut := stegProof.Tx().Vin[0].PrevOut
	prunedDef := stegProof.ColorDef().Prune([]ledger.OutPoint{genesisOut}, nil)
	prunedProof, err := colorproof.NewGenesisOutPoint(prunedDef, genesisOut)
	if nil != err {
		t.Fatalf("new proof error: %s", err)
	}
	w = marshal.NewWriter()
	if err := colorproof.Pack(w, prunedProof); fault.ErrColorDefIsPruned != err {
		t.Errorf("err: %v  expected: %v", err, fault.ErrColorDefIsPruned)
	}
}
