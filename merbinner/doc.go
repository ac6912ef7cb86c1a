// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merbinner - merklized binary radix trees
//
// Persistent authenticated trees over fixed 32 byte keys. Each
// update returns a new root and shares every untouched subtree with
// the previous version by reference. Two hash layouts are provided:
// a plain layout committing to keys and values only, and a
// merkle-sum layout where every node additionally commits to the sum
// of the leaf values beneath it. Subtrees can be replaced by pruned
// stubs that keep the root hash (and sum) verifiable while hiding
// contents.
package merbinner
