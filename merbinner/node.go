// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merbinner

import (
	"github.com/bitmark-inc/smartcolors/digest"
	"github.com/bitmark-inc/smartcolors/fault"
)

// Node - one node of a tree
//
// exported so callers can compare subtree identity, all
// implementations live in this package
type Node interface {
	// Hash - the authenticated digest of this subtree
	Hash() digest.Digest

	// Sum - total of all leaf values beneath, zero in plain trees
	Sum() uint64

	pruned() bool
	size() int
	get(key digest.Digest, depth uint) (Value, error)
	set(s *Scheme, leaf *leafNode, depth uint) (Node, error)
	pop(s *Scheme, key digest.Digest, depth uint) (Node, Value, error)
	walk(fn func(digest.Digest, Value) bool) bool
	prove(s *Scheme, keys map[digest.Digest]struct{}, depth uint) Node
}

// the bit of key selecting a branch at depth, set selects left
func keyBit(key digest.Digest, depth uint) bool {
	return 0 != key[depth/8]>>(7-depth%8)&1
}

// empty node

type emptyNode struct {
	hash digest.Digest
}

func newEmpty(s *Scheme) *emptyNode {
	return &emptyNode{hash: s.emptyHash}
}

func (n *emptyNode) Hash() digest.Digest { return n.hash }
func (n *emptyNode) Sum() uint64         { return 0 }
func (n *emptyNode) pruned() bool        { return false }
func (n *emptyNode) size() int           { return 0 }

func (n *emptyNode) get(key digest.Digest, depth uint) (Value, error) {
	return nil, fault.ErrKeyNotFound
}

func (n *emptyNode) set(s *Scheme, leaf *leafNode, depth uint) (Node, error) {
	return leaf, nil
}

func (n *emptyNode) pop(s *Scheme, key digest.Digest, depth uint) (Node, Value, error) {
	return nil, nil, fault.ErrKeyNotFound
}

func (n *emptyNode) walk(fn func(digest.Digest, Value) bool) bool {
	return true
}

func (n *emptyNode) prove(s *Scheme, keys map[digest.Digest]struct{}, depth uint) Node {
	return n
}

// leaf node

type leafNode struct {
	key   digest.Digest
	value Value
	hash  digest.Digest
	sum   uint64
}

func newLeaf(s *Scheme, key digest.Digest, value Value) *leafNode {
	return &leafNode{
		key:   key,
		value: value,
		hash:  s.leafHash(key, value),
		sum:   s.valueSum(value),
	}
}

func (n *leafNode) Hash() digest.Digest { return n.hash }
func (n *leafNode) Sum() uint64         { return n.sum }
func (n *leafNode) pruned() bool        { return false }
func (n *leafNode) size() int           { return 1 }

func (n *leafNode) get(key digest.Digest, depth uint) (Value, error) {
	if key != n.key {
		return nil, fault.ErrKeyNotFound
	}
	return n.value, nil
}

func (n *leafNode) set(s *Scheme, leaf *leafNode, depth uint) (Node, error) {
	if leaf.key == n.key {
		return leaf, nil
	}
	return fromLeafNodes(s, []*leafNode{n, leaf}, depth), nil
}

func (n *leafNode) pop(s *Scheme, key digest.Digest, depth uint) (Node, Value, error) {
	if key != n.key {
		return nil, nil, fault.ErrKeyNotFound
	}
	return newEmpty(s), n.value, nil
}

func (n *leafNode) walk(fn func(digest.Digest, Value) bool) bool {
	return fn(n.key, n.value)
}

func (n *leafNode) prove(s *Scheme, keys map[digest.Digest]struct{}, depth uint) Node {
	if _, ok := keys[n.key]; ok {
		return n
	}
	return newPruned(n.hash, n.sum)
}

// inner node

type innerNode struct {
	left  Node
	right Node
	hash  digest.Digest
	sum   uint64
	keys  int
	prune bool
}

// newInner - build an inner node, collapsing degenerate shapes
//
// an inner node never holds fewer than two real children: any
// combination of an empty node with an empty or leaf node returns the
// other side directly so identical contents always produce identical
// trees
func newInner(s *Scheme, left Node, right Node) Node {
	if isEmpty(left) && isCollapsible(right) {
		return right
	}
	if isEmpty(right) && isCollapsible(left) {
		return left
	}

	return &innerNode{
		left:  left,
		right: right,
		hash:  s.innerHash(left, right),
		sum:   left.Sum() + right.Sum(),
		keys:  left.size() + right.size(),
		prune: left.pruned() || right.pruned(),
	}
}

func isEmpty(n Node) bool {
	_, ok := n.(*emptyNode)
	return ok
}

func isCollapsible(n Node) bool {
	switch n.(type) {
	case *emptyNode, *leafNode:
		return true
	default:
		return false
	}
}

func (n *innerNode) Hash() digest.Digest { return n.hash }
func (n *innerNode) Sum() uint64         { return n.sum }
func (n *innerNode) pruned() bool        { return n.prune }
func (n *innerNode) size() int           { return n.keys }

func (n *innerNode) get(key digest.Digest, depth uint) (Value, error) {
	if keyBit(key, depth) {
		return n.left.get(key, depth+1)
	}
	return n.right.get(key, depth+1)
}

func (n *innerNode) set(s *Scheme, leaf *leafNode, depth uint) (Node, error) {
	left := n.left
	right := n.right
	var err error
	if keyBit(leaf.key, depth) {
		left, err = n.left.set(s, leaf, depth+1)
	} else {
		right, err = n.right.set(s, leaf, depth+1)
	}
	if nil != err {
		return nil, err
	}
	return newInner(s, left, right), nil
}

func (n *innerNode) pop(s *Scheme, key digest.Digest, depth uint) (Node, Value, error) {
	left := n.left
	right := n.right
	var value Value
	var err error
	if keyBit(key, depth) {
		left, value, err = n.left.pop(s, key, depth+1)
	} else {
		right, value, err = n.right.pop(s, key, depth+1)
	}
	if nil != err {
		return nil, nil, err
	}
	return newInner(s, left, right), value, nil
}

func (n *innerNode) walk(fn func(digest.Digest, Value) bool) bool {
	if !n.left.walk(fn) {
		return false
	}
	return n.right.walk(fn)
}

func (n *innerNode) prove(s *Scheme, keys map[digest.Digest]struct{}, depth uint) Node {
	left := n.left.prove(s, keys, depth+1)
	right := n.right.prove(s, keys, depth+1)

	if _, leftPruned := left.(*prunedNode); leftPruned {
		if _, rightPruned := right.(*prunedNode); rightPruned {
			// nothing of interest below here
			return newPruned(n.hash, n.sum)
		}
	}

	return &innerNode{
		left:  left,
		right: right,
		hash:  n.hash,
		sum:   n.sum,
		keys:  left.size() + right.size(),
		prune: left.pruned() || right.pruned(),
	}
}

// pruned node

type prunedNode struct {
	hash digest.Digest
	sum  uint64
}

func newPruned(hash digest.Digest, sum uint64) *prunedNode {
	return &prunedNode{hash: hash, sum: sum}
}

func (n *prunedNode) Hash() digest.Digest { return n.hash }
func (n *prunedNode) Sum() uint64         { return n.sum }
func (n *prunedNode) pruned() bool        { return true }
func (n *prunedNode) size() int           { return 0 }

func (n *prunedNode) get(key digest.Digest, depth uint) (Value, error) {
	return nil, fault.ErrPrunedSubtree
}

func (n *prunedNode) set(s *Scheme, leaf *leafNode, depth uint) (Node, error) {
	return nil, fault.ErrPrunedSubtree
}

func (n *prunedNode) pop(s *Scheme, key digest.Digest, depth uint) (Node, Value, error) {
	return nil, nil, fault.ErrPrunedSubtree
}

func (n *prunedNode) walk(fn func(digest.Digest, Value) bool) bool {
	return true
}

func (n *prunedNode) prove(s *Scheme, keys map[digest.Digest]struct{}, depth uint) Node {
	return n
}

// build a canonical subtree from leaves, partitioning by the key bit
// at each depth
func fromLeafNodes(s *Scheme, leaves []*leafNode, depth uint) Node {
	switch len(leaves) {
	case 0:
		return newEmpty(s)
	case 1:
		return leaves[0]
	}

	left := make([]*leafNode, 0, len(leaves))
	right := make([]*leafNode, 0, len(leaves))
	for _, leaf := range leaves {
		if keyBit(leaf.key, depth) {
			left = append(left, leaf)
		} else {
			right = append(right, leaf)
		}
	}

	return newInner(s,
		fromLeafNodes(s, left, depth+1),
		fromLeafNodes(s, right, depth+1))
}
