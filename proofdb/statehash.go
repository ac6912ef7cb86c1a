// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proofdb

import (
	"crypto/sha256"
	"sort"

	"github.com/bitmark-inc/smartcolors/digest"
)

// CalcStateHash - deterministic digest of the entire database state
//
// two databases holding the same knowledge produce the same digest
// regardless of insertion order; sets hash as the concatenation of
// their sorted member hashes, maps as sorted key/value hash pairs
func (db *ColorProofDb) CalcStateHash() digest.Digest {
	db.RLock()
	defer db.RUnlock()

	colorDefHashes := make([]digest.Digest, 0, len(db.colorDefs))
	for defHash := range db.colorDefs {
		colorDefHashes = append(colorDefHashes, defHash)
	}
	colorDefsDigest := hashDigestSet(colorDefHashes)

	genesisOutPointPairs := make([]hashPair, 0, len(db.genesisOutPoints))
	for outPoint, defs := range db.genesisOutPoints {
		genesisOutPointPairs = append(genesisOutPointPairs, hashPair{
			key:   digest.NewDoubleSHA256(outPoint.Pack()),
			value: hashDigestSet(setMembers(defs)),
		})
	}
	genesisOutPointsDigest := hashPairs(genesisOutPointPairs)

	genesisScriptPairs := make([]hashPair, 0, len(db.genesisScripts))
	for script, defs := range db.genesisScripts {
		genesisScriptPairs = append(genesisScriptPairs, hashPair{
			key:   digest.NewDoubleSHA256([]byte(script)),
			value: hashDigestSet(setMembers(defs)),
		})
	}
	genesisScriptsDigest := hashPairs(genesisScriptPairs)

	coloredOutPointPairs := make([]hashPair, 0, len(db.coloredOutPoints))
	for outPoint, byDef := range db.coloredOutPoints {
		innerPairs := make([]hashPair, 0, len(byDef))
		for defHash, proofSet := range byDef {
			innerPairs = append(innerPairs, hashPair{
				key:   defHash,
				value: hashDigestSet(setMembers(proofSet)),
			})
		}
		coloredOutPointPairs = append(coloredOutPointPairs, hashPair{
			key:   digest.NewDoubleSHA256(outPoint.Pack()),
			value: hashPairs(innerPairs),
		})
	}
	coloredOutPointsDigest := hashPairs(coloredOutPointPairs)

	h := sha256.New()
	h.Write(colorDefsDigest[:])
	h.Write(genesisOutPointsDigest[:])
	h.Write(genesisScriptsDigest[:])
	h.Write(coloredOutPointsDigest[:])

	var state digest.Digest
	copy(state[:], h.Sum(nil))
	return state
}

type hashPair struct {
	key   digest.Digest
	value digest.Digest
}

func setMembers(set hashSet) []digest.Digest {
	members := make([]digest.Digest, 0, len(set))
	for member := range set {
		members = append(members, member)
	}
	return members
}

func hashDigestSet(members []digest.Digest) digest.Digest {
	sort.Slice(members, func(i, j int) bool {
		return members[i].Compare(members[j]) < 0
	})

	h := sha256.New()
	for _, member := range members {
		h.Write(member[:])
	}

	var d digest.Digest
	copy(d[:], h.Sum(nil))
	return d
}

func hashPairs(pairs []hashPair) digest.Digest {
	sort.Slice(pairs, func(i, j int) bool {
		c := pairs[i].key.Compare(pairs[j].key)
		if 0 != c {
			return c < 0
		}
		return pairs[i].value.Compare(pairs[j].value) < 0
	})

	h := sha256.New()
	for _, pair := range pairs {
		h.Write(pair.key[:])
		h.Write(pair.value[:])
	}

	var d digest.Digest
	copy(d[:], h.Sum(nil))
	return d
}
