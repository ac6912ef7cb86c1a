// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"bytes"
	"crypto/sha256"

	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/smartcolors/fault"
)

// AddressVersion - the base58check version byte of an address
type AddressVersion byte

// from: https://en.bitcoin.it/wiki/List_of_address_prefixes
const (
	Livenet       AddressVersion = 0
	LivenetScript AddressVersion = 5
	Testnet       AddressVersion = 111
	TestnetScript AddressVersion = 196
	vNull         AddressVersion = 0xff
)

// ValidateAddress - check the base58check encoding and return version and payload
func ValidateAddress(address string) (AddressVersion, []byte, error) {

	addr, err := base58.Decode(address)
	if nil != err {
		return vNull, nil, fault.ErrInvalidAddress
	}

	if 25 != len(addr) {
		return vNull, nil, fault.ErrInvalidAddress
	}

	h := sha256.New()
	h.Write(addr[:21])
	d := h.Sum([]byte{})
	h = sha256.New()
	h.Write(d)
	d = h.Sum([]byte{})

	if !bytes.Equal(d[0:4], addr[21:]) {
		return vNull, nil, fault.ErrInvalidAddress
	}
	return AddressVersion(addr[0]), addr[1:21], nil
}

// AddressToScript - build the scriptPubKey paying to an address
//
// supports pay-to-pubkey-hash and pay-to-script-hash versions on
// livenet and testnet
func AddressToScript(address string, testnet bool) (Script, error) {
	version, payload, err := ValidateAddress(address)
	if nil != err {
		return nil, err
	}

	switch version {
	case Livenet, Testnet:
		if testnet != (Testnet == version) {
			return nil, fault.ErrWrongNetworkForAddress
		}
		// OP_DUP OP_HASH160 <20 bytes> OP_EQUALVERIFY OP_CHECKSIG
		script := make(Script, 0, 25)
		script = append(script, 0x76, 0xa9, 0x14)
		script = append(script, payload...)
		script = append(script, 0x88, 0xac)
		return script, nil

	case LivenetScript, TestnetScript:
		if testnet != (TestnetScript == version) {
			return nil, fault.ErrWrongNetworkForAddress
		}
		// OP_HASH160 <20 bytes> OP_EQUAL
		script := make(Script, 0, 23)
		script = append(script, 0xa9, 0x14)
		script = append(script, payload...)
		script = append(script, 0x87)
		return script, nil

	default:
		return nil, fault.ErrInvalidAddress
	}
}
