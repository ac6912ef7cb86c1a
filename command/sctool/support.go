// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/smartcolors/colorproof"
	"github.com/bitmark-inc/smartcolors/digest"
	"github.com/bitmark-inc/smartcolors/fault"
	"github.com/bitmark-inc/smartcolors/ledger"
	"github.com/bitmark-inc/smartcolors/proofdb"
	"github.com/bitmark-inc/smartcolors/storage"
)

// open the database and rebuild the in-memory proof database from it
//
// the returned closer must run before the process exits
func openDatabase(m *metadata, readOnly bool) (*proofdb.ColorProofDb, func(), error) {

	if err := os.MkdirAll(m.config.Logging.Directory, 0700); nil != err {
		return nil, nil, err
	}
	if err := logger.Initialise(m.config.Logging); nil != err {
		return nil, nil, err
	}
	if err := fault.Initialise(); nil != err {
		logger.Finalise()
		return nil, nil, err
	}

	if err := os.MkdirAll(m.config.Database.Directory, 0700); nil != err {
		logger.Finalise()
		return nil, nil, err
	}
	if err := storage.Initialise(m.config.DatabasePath(), readOnly); nil != err {
		logger.Finalise()
		return nil, nil, err
	}

	closer := func() {
		storage.Finalise()
		fault.Finalise()
		logger.Finalise()
	}

	db := proofdb.New()
	if err := storage.Reload(db); nil != err {
		closer()
		return nil, nil, err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "database state: %s\n", db.CalcStateHash())
	}
	return db, closer, nil
}

// parse "TXID:N"
func parseOutPoint(s string) (ledger.OutPoint, error) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return ledger.OutPoint{}, fmt.Errorf("invalid outpoint: %q", s)
	}

	txid, err := digest.DigestFromHex(s[:i])
	if nil != err {
		return ledger.OutPoint{}, fmt.Errorf("invalid outpoint txid: %q: %s", s, err)
	}
	n, err := strconv.ParseUint(s[i+1:], 10, 32)
	if nil != err {
		return ledger.OutPoint{}, fmt.Errorf("invalid outpoint index: %q: %s", s, err)
	}
	return ledger.OutPoint{TxID: txid, N: uint32(n)}, nil
}

// parse "TXID:N:QTY"
func parseOutPointQty(s string) (ledger.OutPoint, uint64, error) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return ledger.OutPoint{}, 0, fmt.Errorf("invalid outpoint/qty: %q", s)
	}

	outPoint, err := parseOutPoint(s[:i])
	if nil != err {
		return ledger.OutPoint{}, 0, err
	}
	qty, err := strconv.ParseUint(s[i+1:], 10, 64)
	if nil != err {
		return ledger.OutPoint{}, 0, fmt.Errorf("invalid quantity: %q: %s", s, err)
	}
	return outPoint, qty, nil
}

// parse "ADDRESS:QTY"
func parseAddressQty(m *metadata, s string) (ledger.Script, uint64, error) {
	i := strings.LastIndex(s, ":")
	if i < 0 {
		return nil, 0, fmt.Errorf("invalid address/qty: %q", s)
	}

	script, err := ledger.AddressToScript(s[:i], m.testnet)
	if nil != err {
		return nil, 0, fmt.Errorf("invalid address: %q: %s", s[:i], err)
	}
	qty, err := strconv.ParseUint(s[i+1:], 10, 64)
	if nil != err {
		return nil, 0, fmt.Errorf("invalid quantity: %q: %s", s, err)
	}
	return script, qty, nil
}

// read a raw transaction given as a hex string or a file of hex
func readTransaction(arg string) (*ledger.Transaction, error) {
	if "" == arg {
		return nil, fmt.Errorf("missing transaction argument")
	}

	text := arg
	if buffer, err := ioutil.ReadFile(arg); nil == err {
		text = strings.TrimSpace(string(buffer))
	}

	raw, err := hex.DecodeString(text)
	if nil != err {
		return nil, fmt.Errorf("invalid transaction hex: %s", err)
	}
	return ledger.UnpackTransaction(raw)
}

// pick the strongest proof from a set that all prove the same
// quantity
func selectProof(proofs []colorproof.ColorProof) colorproof.ColorProof {
	var best colorproof.ColorProof
	for _, proof := range proofs {
		if nil == best || proof.Tag() < best.Tag() {
			best = proof
		}
	}
	return best
}

func proofTypeName(tag byte) string {
	switch tag {
	case colorproof.TagGenesisOutPoint:
		return "genesis outpoint"
	case colorproof.TagGenesisScript:
		return "genesis scriptPubKey"
	case colorproof.TagTransferred:
		return "transferred"
	default:
		return fmt.Sprintf("unknown (0x%02x)", tag)
	}
}
