// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/smartcolors/digest"
	"github.com/bitmark-inc/smartcolors/util"
)

// class key for transaction content hashes
var transactionKey = digest.MustKey("4668df91fe332d65378cc758958d701d")

// TxIn - transaction input
type TxIn struct {
	PrevOut   OutPoint
	ScriptSig Script
	Sequence  uint32
}

// TxOut - transaction output
type TxOut struct {
	Value        uint64
	ScriptPubKey Script
}

// Transaction - a bitcoin transaction
type Transaction struct {
	Version  uint32
	Vin      []TxIn
	Vout     []TxOut
	LockTime uint32
}

// TxID - double SHA256 of the canonical serialization
func (tx *Transaction) TxID() digest.Digest {
	return digest.NewDoubleSHA256(tx.Pack())
}

// Hash - keyed content hash over the length-prefixed serialization
func (tx *Transaction) Hash() digest.Digest {
	packed := tx.Pack()
	return digest.NewKeyed(transactionKey, util.ToVarint64(uint64(len(packed))), packed)
}

// OutPoint - the outpoint referring to output n of this transaction
func (tx *Transaction) OutPoint(n uint32) OutPoint {
	return OutPoint{TxID: tx.TxID(), N: n}
}
