// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// colordefs and proofs are kept in a single LevelDB database split
// into prefixed pools:
//
//	D  colordefs   key: colordef hash   value: packed colordef
//	P  proofs      key: proof hash      value: packed proof DAG
//
// records are content addressed so rewriting a record is always
// harmless; the in-memory proof database is rebuilt from the pools
// at startup
package storage
