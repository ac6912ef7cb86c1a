// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package proofio - detached file containers for colordefs and proofs
//
// both containers start with a fixed 32 byte magic chosen to be
// recognizable in a hex dump and impossible to mistake for the other,
// then a format version byte, the record itself and a trailing copy
// of the record's hash as an integrity check
package proofio

import (
	"io"
	"io/ioutil"

	"github.com/bitmark-inc/smartcolors/colordef"
	"github.com/bitmark-inc/smartcolors/colorproof"
	"github.com/bitmark-inc/smartcolors/digest"
	"github.com/bitmark-inc/smartcolors/fault"
	"github.com/bitmark-inc/smartcolors/marshal"
)

// file format magics, 32 bytes each
var (
	colorDefMagic = []byte("\x00Smartcolors\x00\xfc\xbe\x88\x00Colordef\x00\xa8\xed\xdd\xf2\x14\x01")
	proofMagic    = []byte("\x00Smartcolors\x00\xf8\xac\xdc\x00Colorproof\x00\xcb\x93\xf2\xc5")
)

const (
	magicLength = 32
	fileVersion = 0x00

	maxColorDefFile = 10000000
)

// WriteColorDef - write a colordef container
func WriteColorDef(w io.Writer, def *colordef.ColorDef) error {
	packed, err := def.Pack()
	if nil != err {
		return err
	}

	body := marshal.NewWriter()
	body.WriteVarBytes(packed)

	defHash := def.Hash()
	return writeContainer(w, colorDefMagic, body.Bytes(), defHash)
}

// ReadColorDef - read back a colordef container
func ReadColorDef(rd io.Reader) (*colordef.ColorDef, error) {
	body, trailer, err := readContainer(rd, colorDefMagic)
	if nil != err {
		return nil, err
	}

	r := marshal.NewReader(body)
	packed, err := r.ReadVarBytes(maxColorDefFile)
	if nil != err {
		return nil, err
	}
	def, err := colordef.Unpack(packed)
	if nil != err {
		return nil, err
	}
	if err := r.Done(); nil != err {
		return nil, err
	}

	if trailer != def.Hash() {
		return nil, fault.ErrHashMismatch
	}
	return def, nil
}

// WriteProof - write a proof container with its full dependency DAG
func WriteProof(w io.Writer, proof colorproof.ColorProof) error {
	body := marshal.NewWriter()
	if err := colorproof.Pack(body, proof); nil != err {
		return err
	}
	return writeContainer(w, proofMagic, body.Bytes(), proof.Hash())
}

// ReadProof - read back a proof container
func ReadProof(rd io.Reader) (colorproof.ColorProof, error) {
	body, trailer, err := readContainer(rd, proofMagic)
	if nil != err {
		return nil, err
	}

	r := marshal.NewReader(body)
	proof, err := colorproof.Unpack(r)
	if nil != err {
		return nil, err
	}
	if err := r.Done(); nil != err {
		return nil, err
	}

	if trailer != proof.Hash() {
		return nil, fault.ErrHashMismatch
	}
	return proof, nil
}

func writeContainer(w io.Writer, magic []byte, body []byte, recordHash digest.Digest) error {
	if _, err := w.Write(magic); nil != err {
		return err
	}
	if _, err := w.Write([]byte{fileVersion}); nil != err {
		return err
	}
	if _, err := w.Write(body); nil != err {
		return err
	}
	_, err := w.Write(recordHash[:])
	return err
}

// split a container into its body and trailing hash after checking
// the magic and version
func readContainer(rd io.Reader, magic []byte) ([]byte, digest.Digest, error) {
	var trailer digest.Digest

	buffer, err := ioutil.ReadAll(rd)
	if nil != err {
		return nil, trailer, err
	}

	if len(buffer) < magicLength+1+digest.DigestLength {
		return nil, trailer, fault.ErrTruncatedRecord
	}
	for i := 0; i < magicLength; i += 1 {
		if buffer[i] != magic[i] {
			return nil, trailer, fault.ErrWrongMagic
		}
	}
	if fileVersion != buffer[magicLength] {
		return nil, trailer, fault.ErrWrongFileVersion
	}

	copy(trailer[:], buffer[len(buffer)-digest.DigestLength:])
	return buffer[magicLength+1 : len(buffer)-digest.DigestLength], trailer, nil
}
