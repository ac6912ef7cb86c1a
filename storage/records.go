// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/smartcolors/colordef"
	"github.com/bitmark-inc/smartcolors/colorproof"
	"github.com/bitmark-inc/smartcolors/marshal"
	"github.com/bitmark-inc/smartcolors/proofdb"
)

// StoreColorDef - persist a colordef under its hash
func StoreColorDef(def *colordef.ColorDef) error {
	packed, err := def.Pack()
	if nil != err {
		return err
	}
	defHash := def.Hash()
	Pool.ColorDefs.Put(defHash[:], packed)
	return nil
}

// StoreProof - persist a proof and its dependency DAG under its hash
//
// the colordef travels inside the proof record, but is stored on its
// own as well so colors with no proofs yet survive a restart
func StoreProof(proof colorproof.ColorProof) error {
	if err := StoreColorDef(proof.ColorDef()); nil != err {
		return err
	}

	w := marshal.NewWriter()
	if err := colorproof.Pack(w, proof); nil != err {
		return err
	}
	proofHash := proof.Hash()
	Pool.Proofs.Put(proofHash[:], w.Bytes())
	return nil
}

// Reload - rebuild an in-memory proof database from the pools
//
// colordefs replay first so genesis proofs exist before any
// transferred proof references them
func Reload(db *proofdb.ColorProofDb) error {
	var err error

	Pool.ColorDefs.EachElement(func(e Element) bool {
		var def *colordef.ColorDef
		def, err = colordef.Unpack(e.Value)
		if nil != err {
			return false
		}
		err = db.AddColorDef(def)
		return nil == err
	})
	if nil != err {
		return err
	}

	Pool.Proofs.EachElement(func(e Element) bool {
		r := marshal.NewReader(e.Value)
		var proof colorproof.ColorProof
		proof, err = colorproof.Unpack(r)
		if nil != err {
			return false
		}
		if err = r.Done(); nil != err {
			return false
		}
		err = db.AddColorProof(proof)
		return nil == err
	})
	return err
}
