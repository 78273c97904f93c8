// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/custodyd/background"
	"github.com/bitmark-inc/custodyd/fixtures"
	"github.com/bitmark-inc/custodyd/ledger"
	"github.com/bitmark-inc/custodyd/program"
	"github.com/bitmark-inc/custodyd/storage"
	"github.com/bitmark-inc/custodyd/transaction"
)

func TestDumpAccounts(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	database, remove := fixtures.TempDatabase()
	defer remove()

	err := storage.Initialise(database, storage.ReadWrite)
	assert.Nil(t, err, "storage")
	defer storage.Finalise()

	admin := fixtures.Key(1)
	local := ledger.NewLocal(program.New(fixtures.Identity(200)), true)

	b := transaction.New(1,
		&program.Initialise{
			Admin:    admin.Identity(),
			Treasury: fixtures.Identity(2),
		},
		&program.RegisterCollection{
			Admin:      admin.Identity(),
			Collection: fixtures.Identity(3),
		},
	)
	err = b.Sign(admin)
	assert.Nil(t, err, "sign")
	packed, err := b.Pack()
	assert.Nil(t, err, "pack")

	_, err = local.Submit(packed)
	assert.Nil(t, err, "submit")

	out := &bytes.Buffer{}
	err = dumpAccounts(out, local)
	assert.Nil(t, err, "dump")

	items := []struct {
		Kind string `json:"kind"`
	}{}
	err = json.Unmarshal(out.Bytes(), &items)
	assert.Nil(t, err, "decode dump")

	kinds := []string{}
	for _, item := range items {
		kinds = append(kinds, item.Kind)
	}
	assert.Equal(t, []string{"Global", "Role", "Collection"}, kinds, "kinds in order")
}

func TestFilenameWithDirectory(t *testing.T) {
	assert.Equal(t, "rpc.crt", getFilenameWithDirectory(nil, "rpc.crt"))
	assert.Equal(t, filepath.Join("/etc/custodyd", "rpc.key"), getFilenameWithDirectory([]string{"/etc/custodyd", "10.0.0.1"}, "rpc.key"))
}

func TestStatistics(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	database, remove := fixtures.TempDatabase()
	defer remove()

	err := storage.Initialise(database, storage.ReadWrite)
	assert.Nil(t, err, "storage")
	defer storage.Finalise()

	local := ledger.NewLocal(program.New(fixtures.Identity(201)), false)

	p := background.Start(background.Processes{newStatistics(time.Millisecond)}, local)
	time.Sleep(10 * time.Millisecond)
	p.Stop()
}
