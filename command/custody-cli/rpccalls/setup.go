// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"

	"github.com/bitmark-inc/custodyd/fault"
)

// Client - to hold RPC connections streams
type Client struct {
	conn    net.Conn
	client  *rpc.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a RPC connection to a custodyd
func NewClient(connect string, verbose bool, handle io.Writer) (*Client, error) {
	if "" == connect {
		return nil, fault.ErrRequiredConnect
	}

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	conn, err := tls.Dial("tcp", connect, tlsConfig)
	if nil != err {
		return nil, err
	}
	return FromConnection(conn, verbose, handle), nil
}

// FromConnection - client over an established connection
func FromConnection(conn net.Conn, verbose bool, handle io.Writer) *Client {
	return &Client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		verbose: verbose,
		handle:  handle,
	}
}

// Close - shutdown the custodyd connection
func (client *Client) Close() {
	_ = client.client.Close()
	_ = client.conn.Close()
}

// call a method, restoring server errors to their fault values
func (client *Client) call(method string, arguments interface{}, reply interface{}) error {
	client.printJson(method+" request", arguments)

	err := client.client.Call(method, arguments, reply)
	if nil != err {
		return restoreError(err)
	}

	client.printJson(method+" reply", reply)
	return nil
}

func restoreError(err error) error {
	if s, ok := err.(rpc.ServerError); ok {
		if e, found := fault.Lookup(string(s)); found {
			return e
		}
	}
	return err
}

func (client *Client) printJson(title string, message interface{}) {
	if !client.verbose {
		return
	}
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		fmt.Fprintf(client.handle, "%s: marshal error: %s\n", title, err)
		return
	}
	fmt.Fprintf(client.handle, "%s:\n%s\n", title, b)
}
