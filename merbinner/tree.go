// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merbinner

import (
	"github.com/bitmark-inc/smartcolors/digest"
	"github.com/bitmark-inc/smartcolors/fault"
)

// Item - one key/value pair for bulk construction
type Item struct {
	Key   digest.Digest
	Value Value
}

// Tree - an immutable tree sharing structure with its ancestors
//
// all update operations return a new tree, the receiver is never
// modified
type Tree struct {
	scheme *Scheme
	root   Node
}

// New - an empty tree
func New(scheme *Scheme) *Tree {
	return &Tree{
		scheme: scheme,
		root:   newEmpty(scheme),
	}
}

// FromItems - build a canonical tree from key/value pairs
//
// the resulting root hash is independent of item order, duplicate
// keys are an error
func FromItems(scheme *Scheme, items []Item) (*Tree, error) {
	seen := make(map[digest.Digest]struct{}, len(items))
	leaves := make([]*leafNode, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.Key]; ok {
			return nil, fault.ErrDuplicateKey
		}
		seen[item.Key] = struct{}{}
		leaves = append(leaves, newLeaf(scheme, item.Key, item.Value))
	}

	return &Tree{
		scheme: scheme,
		root:   fromLeafNodes(scheme, leaves, 0),
	}, nil
}

// Hash - the root digest
func (t *Tree) Hash() digest.Digest {
	return t.root.Hash()
}

// Sum - total of all leaf values, including hidden pruned subtrees
func (t *Tree) Sum() uint64 {
	return t.root.Sum()
}

// Len - number of visible leaves
func (t *Tree) Len() int {
	return t.root.size()
}

// IsPruned - true when any subtree has been replaced by a stub
func (t *Tree) IsPruned() bool {
	return t.root.pruned()
}

// Root - the root node, for subtree identity comparisons
func (t *Tree) Root() Node {
	return t.root
}

// Get - value for a key
//
// ErrKeyNotFound for missing keys, ErrPrunedSubtree when the key
// path descends into a pruned stub
func (t *Tree) Get(key digest.Digest) (Value, error) {
	return t.root.get(key, 0)
}

// Set - a new tree with key bound to value
//
// only the nodes on the key path are reallocated
func (t *Tree) Set(key digest.Digest, value Value) (*Tree, error) {
	root, err := t.root.set(t.scheme, newLeaf(t.scheme, key, value), 0)
	if nil != err {
		return nil, err
	}
	return &Tree{scheme: t.scheme, root: root}, nil
}

// Pop - a new tree without key, plus the removed value
func (t *Tree) Pop(key digest.Digest) (*Tree, Value, error) {
	root, value, err := t.root.pop(t.scheme, key, 0)
	if nil != err {
		return nil, nil, err
	}
	return &Tree{scheme: t.scheme, root: root}, value, nil
}

// Walk - call fn for every visible leaf, left side first
//
// returning false from fn stops the walk
func (t *Tree) Walk(fn func(key digest.Digest, value Value) bool) {
	t.root.walk(fn)
}

// Prove - a pruned copy disclosing only the given keys
//
// the result has the same root hash and sum as the receiver, every
// subtree off the requested key paths is replaced by a stub
func (t *Tree) Prove(keys []digest.Digest) *Tree {
	keySet := make(map[digest.Digest]struct{}, len(keys))
	for _, key := range keys {
		keySet[key] = struct{}{}
	}
	return &Tree{
		scheme: t.scheme,
		root:   t.root.prove(t.scheme, keySet, 0),
	}
}
