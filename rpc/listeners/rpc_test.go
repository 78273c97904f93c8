// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"net/rpc"
	"net/rpc/jsonrpc"
	"testing"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/fixtures"
	"github.com/bitmark-inc/custodyd/rpc/certificate"
	"github.com/bitmark-inc/custodyd/rpc/listeners"
	"github.com/bitmark-inc/logger"
)

type Add struct{}
type AddArg struct {
	A, B int
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func tlsConfig(t *testing.T) (*tls.Config, certificate.Fingerprint) {
	cert, key, err := certgen.NewTLSCertPair("test", time.Now().Add(time.Hour), false, nil)
	if nil != err {
		t.Fatalf("certificate generation error: %s", err)
	}
	c, fin, err := certificate.Get(logger.New(fixtures.LogCategory), "test", string(cert), string(key))
	if nil != err {
		t.Fatalf("certificate error: %s", err)
	}
	return c, fin
}

func TestRpcListenerServe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	con := listeners.Configuration{
		MaximumConnections: 5,
		Listen:             []string{"127.0.0.1:0"},
	}

	s := rpc.NewServer()
	err := s.Register(Add{})
	assert.Nil(t, err, "register error")

	c, fin := tlsConfig(t)
	count := listeners.Connections(0)

	l, err := listeners.NewRPC(&con, logger.New(fixtures.LogCategory), &count, s, c, fin)
	assert.Nil(t, err, "wrong NewRPC")

	err = l.Serve()
	assert.Nil(t, err, "wrong Serve")
	defer l.Close()

	address := l.Addresses()
	assert.Equal(t, 1, len(address), "listen count")

	conn, err := tls.Dial("tcp", address[0], &tls.Config{InsecureSkipVerify: true})
	if nil != err {
		t.Fatalf("dial error: %s", err)
	}

	arg := AddArg{A: 2, B: 5}
	var reply int

	client := jsonrpc.NewClient(conn)
	defer client.Close()

	err = client.Call("Add.Add", &arg, &reply)
	assert.Nil(t, err, "wrong client Call")
	assert.Equal(t, arg.A+arg.B, reply, "wrong result")
	assert.Equal(t, uint64(1), count.Uint64(), "connection count")
}

func TestRpcListenerConfiguration(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	tests := []struct {
		configuration listeners.Configuration
		err           error
	}{
		{listeners.Configuration{MaximumConnections: 0, Listen: []string{"127.0.0.1:2150"}}, fault.ErrMissingParameters},
		{listeners.Configuration{MaximumConnections: 1}, fault.ErrMissingParameters},
		{listeners.Configuration{MaximumConnections: 1, Listen: []string{"localhost:2150"}}, fault.ErrInvalidIPAddress},
		{listeners.Configuration{MaximumConnections: 1, Listen: []string{"127.0.0.1"}}, fault.ErrInvalidIPAddress},
		{listeners.Configuration{MaximumConnections: 1, Listen: []string{"*:2150", "[::1]:2150", "127.0.0.1:2150"}}, nil},
	}

	count := listeners.Connections(0)
	for i, item := range tests {
		_, err := listeners.NewRPC(&item.configuration, logger.New(fixtures.LogCategory), &count, rpc.NewServer(), &tls.Config{}, certificate.Fingerprint{})
		assert.Equal(t, item.err, err, "%d: wrong error", i)
	}
}

func TestConnections(t *testing.T) {
	var c listeners.Connections
	assert.Equal(t, uint64(1), c.Increment(), "increment")
	assert.Equal(t, uint64(2), c.Increment(), "increment")
	assert.Equal(t, uint64(1), c.Decrement(), "decrement")
	assert.Equal(t, uint64(1), c.Uint64(), "value")
}
