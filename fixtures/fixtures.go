// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared test setup
package fixtures

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/logger"
)

const (
	dir = "testing"

	// LogCategory - logger tag used by tests
	LogCategory = "testing"
)

// SetupTestLogger - log to a local directory, critical messages only
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the log directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

// TempDatabase - a fresh database path and a function to remove it
func TempDatabase() (string, func()) {
	d, err := ioutil.TempDir("", "custodyd-test")
	if nil != err {
		panic(err)
	}
	return filepath.Join(d, "test.leveldb"), func() {
		os.RemoveAll(d)
	}
}

// Key - deterministic private key for test principals
func Key(n byte) *account.PrivateKey {
	key, err := account.PrivateKeyFromSeed(bytes.Repeat([]byte{n}, 32))
	if nil != err {
		panic(err)
	}
	return key
}

// Identity - deterministic identity that is not a signer
func Identity(n byte) account.Identity {
	id := account.Identity{}
	for i := range id {
		id[i] = n
	}
	id[0] = 0xcc
	return id
}
