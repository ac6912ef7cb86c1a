// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - read the configuration file
//
// the configuration is a Lua script executed in a fresh interpreter,
// the table it leaves on top of the stack becomes the configuration
package configuration
