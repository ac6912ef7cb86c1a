// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package colorproof

import (
	"github.com/bitmark-inc/smartcolors/colordef"
	"github.com/bitmark-inc/smartcolors/fault"
	"github.com/bitmark-inc/smartcolors/ledger"
	"github.com/bitmark-inc/smartcolors/marshal"
)

// limits applied when deserializing
const (
	maxTxLength  = 1000000
	maxDefLength = 10000000
	maxPrevOuts  = 100000
)

// Pack - serialize a proof with its full dependency DAG
//
// nested objects (colordef, transactions, shared subproofs) are
// memoized so the DAG's structural sharing survives the round trip
func Pack(w *marshal.Writer, p ColorProof) error {

	// every colordef instance in the DAG must be serializable
	queue := []ColorProof{p}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next.ColorDef().IsPruned() {
			return fault.ErrColorDefIsPruned
		}
		queue = append(queue, next.dependencies()...)
	}

	packProof(w, p)
	return nil
}

func packProof(w *marshal.Writer, p ColorProof) {
	w.WriteObj(p, func(w *marshal.Writer) {
		w.WriteBytes([]byte{p.Tag()})
		w.WriteVaruint(Version)
		packDef(w, p.ColorDef())

		switch p := p.(type) {
		case *GenesisOutPointProof:
			w.WriteBytes(p.outPoint.Pack())

		case *GenesisScriptProof:
			w.WriteVaruint(uint64(p.outPoint.N))
			packTx(w, p.tx)

		case *TransferredProof:
			w.WriteVaruint(uint64(p.outPoint.N))
			packTx(w, p.tx)
			w.WriteVaruint(uint64(len(p.prevOuts)))
			for _, prevOut := range p.prevOuts {
				packProof(w, p.prevOutProofs[prevOut])
			}

		default:
			fault.Panicf("colorproof: pack: unknown proof type %T", p)
		}
	})
}

func packDef(w *marshal.Writer, def *colordef.ColorDef) {
	w.WriteObj(def, func(w *marshal.Writer) {
		packed, err := def.Pack()
		if nil != err {
			fault.Panicf("colorproof: pack: %s", err)
		}
		w.WriteVarBytes(packed)
	})
}

func packTx(w *marshal.Writer, tx *ledger.Transaction) {
	w.WriteObj(tx, func(w *marshal.Writer) {
		w.WriteVarBytes(tx.Pack())
	})
}

// Unpack - deserialize a proof and rebuild its dependency DAG
//
// each proof is reconstructed through its constructor so quantities
// and hashes are recomputed from scratch, inconsistent records fail
// here rather than at validation time
func Unpack(r *marshal.Reader) (ColorProof, error) {
	obj, err := r.ReadObj(unpackProofObj)
	if nil != err {
		return nil, err
	}
	p, ok := obj.(ColorProof)
	if !ok {
		return nil, fault.ErrBadBackReference
	}
	return p, nil
}

func unpackProofObj(r *marshal.Reader) (interface{}, error) {

	tagByte, err := r.ReadBytes(1)
	if nil != err {
		return nil, err
	}

	version, err := r.ReadVaruint()
	if nil != err {
		return nil, err
	}
	if Version != version {
		return nil, fault.ErrUnsupportedVersion
	}

	def, err := unpackDef(r)
	if nil != err {
		return nil, err
	}

	switch tagByte[0] {
	case TagGenesisOutPoint:
		packed, err := r.ReadBytes(ledger.OutPointLength)
		if nil != err {
			return nil, err
		}
		outPoint, _, err := ledger.UnpackOutPoint(packed)
		if nil != err {
			return nil, err
		}
		return NewGenesisOutPoint(def, outPoint)

	case TagGenesisScript:
		n, err := r.ReadVaruint()
		if nil != err {
			return nil, err
		}
		tx, err := unpackTx(r)
		if nil != err {
			return nil, err
		}
		if n >= uint64(len(tx.Vout)) {
			return nil, fault.ErrProofOutOfRange
		}
		return NewGenesisScript(def, tx.OutPoint(uint32(n)), tx)

	case TagTransferred:
		n, err := r.ReadVaruint()
		if nil != err {
			return nil, err
		}
		tx, err := unpackTx(r)
		if nil != err {
			return nil, err
		}
		if n >= uint64(len(tx.Vout)) {
			return nil, fault.ErrProofOutOfRange
		}

		count, err := r.ReadVaruint()
		if nil != err {
			return nil, err
		}
		if count > maxPrevOuts {
			return nil, fault.ErrInvalidCount
		}
		prevOutProofs := make(map[ledger.OutPoint]ColorProof, count)
		for i := uint64(0); i < count; i += 1 {
			sub, err := Unpack(r)
			if nil != err {
				return nil, err
			}
			prevOutProofs[sub.OutPoint()] = sub
		}
		return NewTransferred(def, tx.OutPoint(uint32(n)), tx, prevOutProofs)

	default:
		return nil, fault.ErrInvalidColorProofType
	}
}

func unpackDef(r *marshal.Reader) (*colordef.ColorDef, error) {
	obj, err := r.ReadObj(func(r *marshal.Reader) (interface{}, error) {
		packed, err := r.ReadVarBytes(maxDefLength)
		if nil != err {
			return nil, err
		}
		return colordef.Unpack(packed)
	})
	if nil != err {
		return nil, err
	}
	def, ok := obj.(*colordef.ColorDef)
	if !ok {
		return nil, fault.ErrBadBackReference
	}
	return def, nil
}

func unpackTx(r *marshal.Reader) (*ledger.Transaction, error) {
	obj, err := r.ReadObj(func(r *marshal.Reader) (interface{}, error) {
		packed, err := r.ReadVarBytes(maxTxLength)
		if nil != err {
			return nil, err
		}
		return ledger.UnpackTransaction(packed)
	})
	if nil != err {
		return nil, err
	}
	tx, ok := obj.(*ledger.Transaction)
	if !ok {
		return nil, fault.ErrBadBackReference
	}
	return tx, nil
}
