// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/command/custody-cli/rpccalls"
	"github.com/bitmark-inc/custodyd/custody"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/ledger"
	"github.com/bitmark-inc/custodyd/metadata"
)

// signs nothing, for commands that only read records
type readOnly struct{}

func (readOnly) Identity() account.Identity      { return account.Zero }
func (readOnly) Sign(_ []byte) account.Signature { return nil }

// a connected client and a custody handle built on it
type session struct {
	client  *rpccalls.Client
	custody *custody.Custody
}

func (s *session) Close() {
	s.client.Close()
}

func checkIdentity(value string, required error) (account.Identity, error) {
	value = strings.TrimSpace(value)
	if "" == value {
		return account.Zero, required
	}
	return account.IdentityFromBase58(value)
}

func checkOptionalIdentity(value string) (*account.Identity, error) {
	value = strings.TrimSpace(value)
	if "" == value {
		return nil, nil
	}
	id, err := account.IdentityFromBase58(value)
	if nil != err {
		return nil, err
	}
	return &id, nil
}

// connect and resolve the program id, the keypair is loaded when
// signing is true and otherwise only if one was given
func openSession(m *config, signing bool) (*session, error) {
	if signing && "" == m.keypair {
		return nil, fault.ErrRequiredKeypair
	}

	var signer custody.Signer = readOnly{}
	if "" != m.keypair {
		key, err := account.PrivateKeyFromKeypairFile(m.keypair)
		if nil != err {
			return nil, err
		}
		signer = key
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return nil, err
	}

	programID, err := resolveProgramID(m, client)
	if nil != err {
		client.Close()
		return nil, err
	}
	if m.verbose {
		fmt.Fprintf(m.e, "program: %s  signer: %s\n", programID, signer.Identity())
	}

	return &session{
		client:  client,
		custody: custody.New(client, metadata.New(client, 0), programID, signer),
	}, nil
}

func resolveProgramID(m *config, client *rpccalls.Client) (account.Identity, error) {
	if "" != m.programID {
		id, err := account.IdentityFromBase58(m.programID)
		if nil != err {
			return account.Zero, fault.ErrInvalidProgramID
		}
		return id, nil
	}

	info, err := client.GetInfo()
	if nil != err {
		return account.Zero, err
	}
	if m.network != info.Chain {
		return account.Zero, fmt.Errorf("network: %q but custodyd is on: %q", m.network, info.Chain)
	}
	return info.ProgramID, nil
}

// the outcome of a submitted transition
type receiptReply struct {
	Operation string           `json:"operation"`
	Signer    account.Identity `json:"signer"`
	*ledger.Receipt
}

// run one signing transition and print its receipt
func transition(c *cli.Context, operation string, f func(*custody.Custody) (*ledger.Receipt, error)) error {
	m := c.App.Metadata["config"].(*config)

	s, err := openSession(m, true)
	if nil != err {
		return err
	}
	defer s.Close()

	receipt, err := f(s.custody)
	if nil != err {
		return err
	}

	return printJson(m.w, receiptReply{
		Operation: operation,
		Signer:    s.custody.Identity(),
		Receipt:   receipt,
	})
}

// run one read only query and print its result
func inspect(c *cli.Context, f func(*session) (interface{}, error)) error {
	m := c.App.Metadata["config"].(*config)

	s, err := openSession(m, false)
	if nil != err {
		return err
	}
	defer s.Close()

	result, err := f(s)
	if nil != err {
		return err
	}
	return printJson(m.w, result)
}
