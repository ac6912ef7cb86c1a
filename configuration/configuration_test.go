// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/smartcolors/configuration"
)

const testConfiguration = `
local M = {}

M.data_directory = "."
M.testnet = true

M.database = {
    name = "colors-test",
}

M.dust_limit = 1000
M.use_steg = false

M.logging = {
    size = 65536,
    count = 5,
    console = true,
    levels = {
        DEFAULT = "info",
    },
}

return M
`

func writeConfiguration(t *testing.T, text string) string {
	t.Helper()
	dir := t.TempDir()
	fileName := filepath.Join(dir, "sctool.conf")
	if err := ioutil.WriteFile(fileName, []byte(text), 0600); nil != err {
		t.Fatalf("write configuration: error: %s", err)
	}
	return fileName
}

func TestGetConfiguration(t *testing.T) {
	fileName := writeConfiguration(t, testConfiguration)
	dir := filepath.Dir(fileName)

	options, err := configuration.GetConfiguration(fileName)
	if nil != err {
		t.Fatalf("get configuration: error: %s", err)
	}

	assert.Equal(t, dir, options.DataDirectory, "data directory")
	assert.True(t, options.Testnet, "testnet")
	assert.False(t, options.UseSteg, "use steg")
	assert.Equal(t, uint64(1000), options.DustLimit, "dust limit")

	// unset keys keep their defaults, relative paths attach to the
	// data directory
	assert.Equal(t, filepath.Join(dir, "data"), options.Database.Directory, "database directory")
	assert.Equal(t, filepath.Join(dir, "data", "colors-test"), options.DatabasePath(), "database path")
	assert.Equal(t, filepath.Join(dir, "log"), options.Logging.Directory, "log directory")
	assert.Equal(t, 65536, options.Logging.Size, "log size")
	assert.Equal(t, 5, options.Logging.Count, "log count")
	assert.True(t, options.Logging.Console, "log console")
	assert.Equal(t, "info", options.Logging.Levels["DEFAULT"], "log level")
}

func TestGetConfigurationDefaults(t *testing.T) {
	fileName := writeConfiguration(t, "local M = {}\nM.data_directory = \".\"\nreturn M\n")

	options, err := configuration.GetConfiguration(fileName)
	if nil != err {
		t.Fatalf("get configuration: error: %s", err)
	}

	assert.False(t, options.Testnet, "testnet")
	assert.True(t, options.UseSteg, "use steg")
	assert.Equal(t, uint64(546), options.DustLimit, "dust limit")
	assert.Equal(t, "sctool.log", options.Logging.File, "log file")
}

func TestGetConfigurationMissingFile(t *testing.T) {
	_, err := configuration.GetConfiguration(filepath.Join(t.TempDir(), "no-such.conf"))
	assert.NotNil(t, err, "missing file")
}

func TestGetConfigurationBadDataDirectory(t *testing.T) {
	fileName := writeConfiguration(t, "local M = {}\nM.data_directory = \"no-such-subdir\"\nreturn M\n")

	_, err := configuration.GetConfiguration(fileName)
	assert.True(t, os.IsNotExist(err), "missing data directory")
}
