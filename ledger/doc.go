// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - minimal bitcoin transaction primitives
//
// Just enough of the ledger data model for colored coin proofs:
// outpoints, scripts and transactions with the canonical wire
// encoding, plus the keyed content hashes the proof protocol commits
// to. Script execution, signing and consensus rules are out of scope.
package ledger
