// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merbinner

import (
	"github.com/bitmark-inc/smartcolors/digest"
	"github.com/bitmark-inc/smartcolors/util"
)

// node type tags in the hashed data
const (
	tagEmpty = 0x00
	tagInner = 0x01
	tagLeaf  = 0x02

	// the sum layout tags leaves before inner nodes
	sumTagLeaf  = 0x01
	sumTagInner = 0x02
)

// Value - anything storable in a tree leaf
type Value interface {
	Hash() digest.Digest
}

// SumValue - leaf values of a merkle-sum tree also carry a quantity
type SumValue interface {
	Value
	Sum() uint64
}

// Scheme - the hash layout of one tree class
//
// each tree class hashes with its own key so trees of different
// classes can never produce colliding digests
type Scheme struct {
	key       []byte
	sum       bool
	emptyHash digest.Digest
}

// NewScheme - plain layout
//
// empty: H(0x00)
// leaf:  H(valueHash ‖ key ‖ 0x02)
// inner: H(leftHash ‖ rightHash ‖ 0x01)
func NewScheme(classKey []byte) *Scheme {
	s := &Scheme{key: classKey}
	s.emptyHash = s.hash([]byte{tagEmpty})
	return s
}

// NewSumScheme - merkle-sum layout
//
// empty: H(0x00)
// leaf:  H(0x01 ‖ key ‖ valueHash)
// inner: H(0x02 ‖ leftHash ‖ leftSum ‖ rightHash ‖ rightSum)
// with sums encoded as LEB128 varints
func NewSumScheme(classKey []byte) *Scheme {
	s := &Scheme{key: classKey, sum: true}
	s.emptyHash = s.hash([]byte{tagEmpty})
	return s
}

func (s *Scheme) hash(records ...[]byte) digest.Digest {
	return digest.NewKeyed(s.key, records...)
}

func (s *Scheme) leafHash(key digest.Digest, value Value) digest.Digest {
	valueHash := value.Hash()
	if s.sum {
		return s.hash([]byte{sumTagLeaf}, key[:], valueHash[:])
	}
	return s.hash(valueHash[:], key[:], []byte{tagLeaf})
}

func (s *Scheme) innerHash(left Node, right Node) digest.Digest {
	leftHash := left.Hash()
	rightHash := right.Hash()
	if s.sum {
		return s.hash([]byte{sumTagInner},
			leftHash[:], util.ToVarint64(left.Sum()),
			rightHash[:], util.ToVarint64(right.Sum()))
	}
	return s.hash(leftHash[:], rightHash[:], []byte{tagInner})
}

// sum of a leaf value, zero in a plain tree
func (s *Scheme) valueSum(value Value) uint64 {
	if !s.sum {
		return 0
	}
	return value.(SumValue).Sum()
}
