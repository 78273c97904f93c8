// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc_test

import (
	"crypto/tls"
	"net/rpc/jsonrpc"
	"testing"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/custodyd/chain"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/fixtures"
	"github.com/bitmark-inc/custodyd/ledger"
	"github.com/bitmark-inc/custodyd/program"
	"github.com/bitmark-inc/custodyd/rpc"
	"github.com/bitmark-inc/custodyd/rpc/listeners"
	"github.com/bitmark-inc/custodyd/rpc/node"
)

func TestInitialiseFinalise(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	cert, key, err := certgen.NewTLSCertPair("test", time.Now().Add(time.Hour), false, nil)
	assert.Nil(t, err, "certificate generation")

	configuration := &listeners.Configuration{
		MaximumConnections: 2,
		Listen:             []string{"127.0.0.1:0"},
		Certificate:        string(cert),
		PrivateKey:         string(key),
	}
	local := ledger.NewLocal(program.New(fixtures.Identity(0x01)), false)

	err = rpc.Initialise(configuration, "1.0", chain.Live, local)
	assert.Nil(t, err, "initialise error")

	err = rpc.Initialise(configuration, "1.0", chain.Live, local)
	assert.Equal(t, fault.ErrModuleInitialised, err, "second initialise")

	err = rpc.Finalise()
	assert.Nil(t, err, "finalise error")

	err = rpc.Finalise()
	assert.Equal(t, fault.ErrModuleNotInitialised, err, "second finalise")
}

func TestInitialiseBadCertificate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	configuration := &listeners.Configuration{
		MaximumConnections: 2,
		Listen:             []string{"127.0.0.1:0"},
		Certificate:        "junk",
		PrivateKey:         "junk",
	}
	local := ledger.NewLocal(program.New(fixtures.Identity(0x01)), false)

	err := rpc.Initialise(configuration, "1.0", chain.Live, local)
	assert.NotNil(t, err, "bad certificate accepted")
}

// reached through a real TLS listener
func TestServeInfo(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	cert, key, err := certgen.NewTLSCertPair("test", time.Now().Add(time.Hour), false, nil)
	assert.Nil(t, err, "certificate generation")

	configuration := &listeners.Configuration{
		MaximumConnections: 2,
		Listen:             []string{"127.0.0.1:0"},
		Certificate:        string(cert),
		PrivateKey:         string(key),
	}
	local := ledger.NewLocal(program.New(fixtures.Identity(0x01)), false)

	err = rpc.Initialise(configuration, "1.0", chain.Testing, local)
	assert.Nil(t, err, "initialise error")
	defer rpc.Finalise()

	conn, err := tls.Dial("tcp", rpc.Addresses()[0], &tls.Config{InsecureSkipVerify: true})
	if nil != err {
		t.Fatalf("dial error: %s", err)
	}
	client := jsonrpc.NewClient(conn)
	defer client.Close()

	var reply node.InfoReply
	err = client.Call("Node.Info", &node.InfoArguments{}, &reply)
	assert.Nil(t, err, "info error")
	assert.Equal(t, chain.Testing, reply.Chain, "wrong chain")
	assert.Equal(t, uint64(1), reply.RPCs, "wrong connection count")
}
