// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package colordef_test

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/bitmark-inc/smartcolors/colordef"
	"github.com/bitmark-inc/smartcolors/fault"
	"github.com/bitmark-inc/smartcolors/ledger"
)

// one genesis outpoint minting 5,000,000,000, no genesis scripts
const outPointDefHex = "0100ec746756751d8ac6e9345f9050e1565f013ba3edfd7a7b12b27ac72c3e67768f617fc81bc3888a51323a9fb8aa4b1e5e4a0000000080e497d01200"

// no genesis outpoints, one genesis script
const scriptDefHex = "01006bbd59a72d6a9b5629b0162a4ab90f3b00010d0c68656c6c6f20776f726c6421"

// one of each
const mixedDefHex = "0100e21a56b106c2b720ed82c603471b5d55013ba3edfd7a7b12b27ac72c3e67768f617fc81bc3888a51323a9fb8aa4b1e5e4a0000000080e497d012010d0c68656c6c6f20776f726c6421"

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if nil != err {
		t.Fatalf("bad hex: %s", err)
	}
	return b
}

func genesisOutPoint(t *testing.T) ledger.OutPoint {
	t.Helper()
	packed := mustHex(t, "3ba3edfd7a7b12b27ac72c3e67768f617fc81bc3888a51323a9fb8aa4b1e5e4a00000000")
	outPoint, _, err := ledger.UnpackOutPoint(packed)
	if nil != err {
		t.Fatalf("unpack outpoint error: %s", err)
	}
	return outPoint
}

func TestUnpackOutPointDef(t *testing.T) {
	serialized := mustHex(t, outPointDefHex)

	cd, err := colordef.Unpack(serialized)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}

	if 1 != cd.Version() {
		t.Errorf("version: %d  expected: 1", cd.Version())
	}
	if 0 != cd.Birthdate() {
		t.Errorf("birthdate: %d  expected: 0", cd.Birthdate())
	}
	stegKey := cd.StegKey()
	if !bytes.Equal(stegKey[:], mustHex(t, "ec746756751d8ac6e9345f9050e1565f")) {
		t.Errorf("stegkey: %x", stegKey)
	}

	qty, ok := cd.GenesisQty(genesisOutPoint(t))
	if !ok {
		t.Fatalf("genesis outpoint missing")
	}
	if 5000000000 != qty {
		t.Errorf("qty: %d  expected: 5000000000", qty)
	}
	if 5000000000 != cd.TotalIssuance() {
		t.Errorf("issuance: %d  expected: 5000000000", cd.TotalIssuance())
	}
	if cd.HasGenesisScript(ledger.Script("\x0chello world!")) {
		t.Errorf("unexpected genesis script")
	}

	packed, err := cd.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	if !bytes.Equal(packed, serialized) {
		t.Errorf("packed: %x  expected: %x", packed, serialized)
	}
}

func TestUnpackScriptDef(t *testing.T) {
	serialized := mustHex(t, scriptDefHex)

	cd, err := colordef.Unpack(serialized)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}

	if !cd.HasGenesisScript(ledger.Script("\x0chello world!")) {
		t.Errorf("genesis script missing")
	}
	if _, ok := cd.GenesisQty(genesisOutPoint(t)); ok {
		t.Errorf("unexpected genesis outpoint")
	}

	packed, err := cd.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	if !bytes.Equal(packed, serialized) {
		t.Errorf("packed: %x  expected: %x", packed, serialized)
	}
}

func TestUnpackMixedDef(t *testing.T) {
	serialized := mustHex(t, mixedDefHex)

	cd, err := colordef.Unpack(serialized)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}

	if _, ok := cd.GenesisQty(genesisOutPoint(t)); !ok {
		t.Errorf("genesis outpoint missing")
	}
	if !cd.HasGenesisScript(ledger.Script("\x0chello world!")) {
		t.Errorf("genesis script missing")
	}

	packed, err := cd.Pack()
	if nil != err {
		t.Fatalf("pack error: %s", err)
	}
	if !bytes.Equal(packed, serialized) {
		t.Errorf("packed: %x  expected: %x", packed, serialized)
	}

	// the hash is over the exact wire bytes, so a reparse agrees
	reparsed, err := colordef.Unpack(packed)
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}
	if reparsed.Hash() != cd.Hash() {
		t.Errorf("hash: %s  expected: %s", reparsed.Hash(), cd.Hash())
	}
}

func TestUnpackErrors(t *testing.T) {
	serialized := mustHex(t, mixedDefHex)

	// bad version
	bad := append([]byte{0x02}, serialized[1:]...)
	if _, err := colordef.Unpack(bad); fault.ErrUnsupportedVersion != err {
		t.Errorf("err: %v  expected: %v", err, fault.ErrUnsupportedVersion)
	}

	// truncation anywhere must fail cleanly
	for n := 0; n < len(serialized); n += 1 {
		if _, err := colordef.Unpack(serialized[:n]); nil == err {
			t.Errorf("truncated at %d: no error", n)
		}
	}

	// trailing garbage
	padded := append(append([]byte{}, serialized...), 0x00)
	if _, err := colordef.Unpack(padded); fault.ErrTrailingBytes != err {
		t.Errorf("err: %v  expected: %v", err, fault.ErrTrailingBytes)
	}
}

func TestNewDuplicates(t *testing.T) {
	outPoint := genesisOutPoint(t)
	var stegKey [colordef.StegKeyLength]byte

	_, err := colordef.New(0, stegKey, []colordef.GenesisOutPoint{
		{OutPoint: outPoint, Qty: 1},
		{OutPoint: outPoint, Qty: 2},
	}, nil)
	if fault.ErrDuplicateGenesisOutPoint != err {
		t.Errorf("err: %v  expected: %v", err, fault.ErrDuplicateGenesisOutPoint)
	}

	script := ledger.Script("script")
	_, err = colordef.New(0, stegKey, nil, []ledger.Script{script, script})
	if fault.ErrDuplicateGenesisScript != err {
		t.Errorf("err: %v  expected: %v", err, fault.ErrDuplicateGenesisScript)
	}
}

func TestPrune(t *testing.T) {
	cd, err := colordef.Unpack(mustHex(t, mixedDefHex))
	if nil != err {
		t.Fatalf("unpack error: %s", err)
	}

	outPoint := genesisOutPoint(t)
	pruned := cd.Prune([]ledger.OutPoint{outPoint}, nil)

	if !pruned.IsPruned() {
		t.Errorf("pruned colordef does not report pruned")
	}
	if pruned.Hash() != cd.Hash() {
		t.Errorf("hash changed by pruning")
	}
	if pruned.TotalIssuance() != cd.TotalIssuance() {
		t.Errorf("issuance changed by pruning")
	}
	if qty, ok := pruned.GenesisQty(outPoint); !ok || 5000000000 != qty {
		t.Errorf("disclosed genesis outpoint lost: %d %v", qty, ok)
	}

	if _, err := pruned.Pack(); fault.ErrColorDefIsPruned != err {
		t.Errorf("err: %v  expected: %v", err, fault.ErrColorDefIsPruned)
	}
}
