// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package marshal - serialization contexts for proof records
//
// A Writer accumulates LEB128 varuints, raw bytes and length-prefixed
// bytes. Nested objects are memoized: the first occurrence is written
// literally behind a zero marker, repeats are written as a one-based
// back-reference index keyed by the object's content hash. A Reader
// reverses the process and rebuilds the shared object graph.
package marshal

import (
	"bytes"

	"github.com/bitmark-inc/smartcolors/digest"
	"github.com/bitmark-inc/smartcolors/fault"
	"github.com/bitmark-inc/smartcolors/util"
)

// Hashable - objects that can be memoized by content hash
type Hashable interface {
	Hash() digest.Digest
}

// Writer - serialization context
type Writer struct {
	buffer bytes.Buffer
	memo   map[digest.Digest]uint64
}

// NewWriter - a fresh serialization context with an empty memo
func NewWriter() *Writer {
	return &Writer{
		memo: make(map[digest.Digest]uint64),
	}
}

// Bytes - everything written so far
func (w *Writer) Bytes() []byte {
	return w.buffer.Bytes()
}

// WriteVaruint - append a LEB128 varuint
func (w *Writer) WriteVaruint(value uint64) {
	w.buffer.Write(util.ToVarint64(value))
}

// WriteBytes - append raw bytes with no length prefix
func (w *Writer) WriteBytes(b []byte) {
	w.buffer.Write(b)
}

// WriteVarBytes - append a varuint length followed by the bytes
func (w *Writer) WriteVarBytes(b []byte) {
	w.WriteVaruint(uint64(len(b)))
	w.buffer.Write(b)
}

// WriteDigest - append the 32 raw digest bytes
func (w *Writer) WriteDigest(d digest.Digest) {
	w.buffer.Write(d[:])
}

// WriteObj - append a nested object, memoized
//
// pack is only called on the first occurrence of the object's hash,
// repeats are written as a back-reference
func (w *Writer) WriteObj(obj Hashable, pack func(*Writer)) {
	hash := obj.Hash()
	if idx, ok := w.memo[hash]; ok {
		w.WriteVaruint(idx)
		return
	}

	w.WriteVaruint(0)
	pack(w)

	// nested objects written by pack claim earlier indexes
	w.memo[hash] = uint64(len(w.memo)) + 1
}

// Reader - deserialization context
type Reader struct {
	buffer []byte
	offset int
	memo   []interface{}
}

// NewReader - a deserialization context over a byte slice
func NewReader(buffer []byte) *Reader {
	return &Reader{buffer: buffer}
}

// Remaining - bytes not yet consumed
func (r *Reader) Remaining() int {
	return len(r.buffer) - r.offset
}

// Done - check that the whole buffer was consumed
func (r *Reader) Done() error {
	if r.offset != len(r.buffer) {
		return fault.ErrTrailingBytes
	}
	return nil
}

// ReadVaruint - consume a LEB128 varuint
func (r *Reader) ReadVaruint() (uint64, error) {
	value, count := util.FromVarint64(r.buffer[r.offset:])
	if 0 == count {
		if r.Remaining() >= util.Varint64MaximumBytes {
			return 0, fault.ErrVarintTooBig
		}
		return 0, fault.ErrTruncatedRecord
	}
	r.offset += count
	return value, nil
}

// ReadBytes - consume exactly n raw bytes
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, fault.ErrTruncatedRecord
	}
	b := make([]byte, n)
	copy(b, r.buffer[r.offset:r.offset+n])
	r.offset += n
	return b, nil
}

// ReadVarBytes - consume a varuint length then that many bytes
func (r *Reader) ReadVarBytes(maximum int) ([]byte, error) {
	length, err := r.ReadVaruint()
	if nil != err {
		return nil, err
	}
	if length > uint64(maximum) {
		return nil, fault.ErrInvalidCount
	}
	return r.ReadBytes(int(length))
}

// ReadDigest - consume 32 raw digest bytes
func (r *Reader) ReadDigest() (digest.Digest, error) {
	var d digest.Digest
	b, err := r.ReadBytes(digest.DigestLength)
	if nil != err {
		return d, err
	}
	copy(d[:], b)
	return d, nil
}

// ReadObj - consume a nested object, memoized
//
// a zero marker means a literal object follows and unpack is called,
// otherwise the back-referenced object is returned as-is
func (r *Reader) ReadObj(unpack func(*Reader) (interface{}, error)) (interface{}, error) {
	idx, err := r.ReadVaruint()
	if nil != err {
		return nil, err
	}

	if idx > 0 {
		if idx > uint64(len(r.memo)) {
			return nil, fault.ErrBadBackReference
		}
		return r.memo[idx-1], nil
	}

	obj, err := unpack(r)
	if nil != err {
		return nil, err
	}
	r.memo = append(r.memo, obj)
	return obj, nil
}
