// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/hex"

	"github.com/bitmark-inc/smartcolors/digest"
	"github.com/bitmark-inc/smartcolors/util"
)

// class key for script content hashes
var scriptKey = digest.MustKey("3b808252881682adf56f7cc5abc0cb3c")

// Script - raw scriptPubKey or scriptSig bytes
type Script []byte

// Hash - keyed content hash over length-prefixed script bytes
func (s Script) Hash() digest.Digest {
	return digest.NewKeyed(scriptKey, util.ToVarint64(uint64(len(s))), s)
}

// Equal - byte equality
func (s Script) Equal(other Script) bool {
	if len(s) != len(other) {
		return false
	}
	for i, b := range s {
		if other[i] != b {
			return false
		}
	}
	return true
}

// String - display as hex
func (s Script) String() string {
	return hex.EncodeToString(s)
}
