// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/smartcolors/fault"
)

// basic defaults (directories and files are relative to the "data_directory" from the configuration file)
const (
	defaultDatabaseDirectory = "data"
	defaultDatabaseName      = "smartcolors"

	defaultLogDirectory = "log"
	defaultLogFile      = "sctool.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultDustLimit = 546
)

// DatabaseType - where the proof database lives
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// Configuration - the validated configuration
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	Testnet       bool                 `gluamapper:"testnet" json:"testnet"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	DustLimit     uint64               `gluamapper:"dust_limit" json:"dust_limit"`
	UseSteg       bool                 `gluamapper:"use_steg" json:"use_steg"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// GetConfiguration - read the configuration file and fill in any
// defaults
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{
		DataDirectory: dataDirectory,
		Testnet:       false,
		Database: DatabaseType{
			Directory: defaultDatabaseDirectory,
			Name:      defaultDatabaseName,
		},
		DustLimit: defaultDustLimit,
		UseSteg:   true,
		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels: map[string]string{
				logger.DefaultTag: "critical",
			},
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options); nil != err {
		return nil, err
	}

	// if any test mode and the database file was not specified
	// switch to appropriate default
	if "" == options.DataDirectory {
		return nil, fault.ErrInvalidDataDirectory
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// ensure absolute data directory
	if !filepath.IsAbs(options.DataDirectory) {
		options.DataDirectory, err = filepath.Abs(filepath.Join(dataDirectory, options.DataDirectory))
		if nil != err {
			return nil, fault.ErrInvalidDataDirectory
		}
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fault.ErrInvalidDataDirectory
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}

	return options, nil
}

// DatabasePath - the LevelDB location, without the extension that
// storage.Initialise appends
func (c *Configuration) DatabasePath() string {
	return filepath.Join(c.Database.Directory, c.Database.Name)
}

// ensureAbsolute - ensure the path is absolute
//
// if not, prepend the directory to make absolute path
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
