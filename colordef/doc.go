// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package colordef - color definitions and the color kernel
//
// A color definition names the genesis outpoints and scriptPubKeys
// that mint a color, carries the stegkey hiding the color's routing
// data inside nSequence fields, and implements the kernel that
// routes color quantities from transaction inputs to outputs.
package colordef
