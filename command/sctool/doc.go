// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// sctool - command line smartcolors tool
//
// define colors, scan transactions for color movements, keep the
// proof database up to date and exchange detached colordef and proof
// files with other parties
package main
