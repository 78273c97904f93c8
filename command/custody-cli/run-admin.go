// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/custody"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/ledger"
	"github.com/bitmark-inc/custodyd/program"
)

func runInitialise(c *cli.Context) error {
	treasury, err := checkIdentity(c.String("treasury"), fault.ErrRequiredTreasury)
	if nil != err {
		return err
	}
	return transition(c, "init", func(cu *custody.Custody) (*ledger.Receipt, error) {
		return cu.Initialise(treasury)
	})
}

func runTransferAuthority(c *cli.Context) error {
	newAdmin, err := checkIdentity(c.String("new-admin"), fault.ErrRequiredUser)
	if nil != err {
		return err
	}
	return transition(c, "transfer-authority", func(cu *custody.Custody) (*ledger.Receipt, error) {
		return cu.TransferSuperAdmin(newAdmin)
	})
}

func runSetTreasury(c *cli.Context) error {
	treasury, err := checkIdentity(c.String("treasury"), fault.ErrRequiredTreasury)
	if nil != err {
		return err
	}
	return transition(c, "set-treasury", func(cu *custody.Custody) (*ledger.Receipt, error) {
		return cu.ChangeTreasury(treasury)
	})
}

func runInitUser(c *cli.Context) error {
	user, err := checkIdentity(c.String("user"), fault.ErrRequiredUser)
	if nil != err {
		return err
	}
	return transition(c, "init-user", func(cu *custody.Custody) (*ledger.Receipt, error) {
		return cu.InitUser(user)
	})
}

func runSetRole(c *cli.Context) error {
	user, err := checkIdentity(c.String("user"), fault.ErrRequiredUser)
	if nil != err {
		return err
	}
	isAdmin, err := program.OptionFromString(strings.TrimSpace(c.String("admin")))
	if nil != err {
		return err
	}
	isUpdater, err := program.OptionFromString(strings.TrimSpace(c.String("updater")))
	if nil != err {
		return err
	}
	return transition(c, "set-role", func(cu *custody.Custody) (*ledger.Receipt, error) {
		return cu.ChangeRole(user, isAdmin, isUpdater)
	})
}

func runGetRoles(c *cli.Context) error {
	return inspect(c, func(s *session) (interface{}, error) {
		cursor, err := s.custody.Roles()
		if nil != err {
			return nil, err
		}
		return cursor.All()
	})
}

func runRegisterCollection(c *cli.Context) error {
	collection, err := checkIdentity(c.String("collection"), fault.ErrRequiredCollection)
	if nil != err {
		return err
	}
	return transition(c, "register-collection", func(cu *custody.Custody) (*ledger.Receipt, error) {
		return cu.RegisterCollection(collection)
	})
}

func runRevokeCollection(c *cli.Context) error {
	collection, err := checkIdentity(c.String("collection"), fault.ErrRequiredCollection)
	if nil != err {
		return err
	}
	return transition(c, "revoke-collection", func(cu *custody.Custody) (*ledger.Receipt, error) {
		return cu.RevokeCollection(collection)
	})
}

type collectionReply struct {
	Collection account.Identity `json:"collection"`
	Registered bool             `json:"registered"`
	Allowed    bool             `json:"allowed"`
}

func runCollectionStatus(c *cli.Context) error {
	collection, err := checkIdentity(c.String("collection"), fault.ErrRequiredCollection)
	if nil != err {
		return err
	}
	return inspect(c, func(s *session) (interface{}, error) {
		r, err := s.custody.Collection(collection)
		if nil != err {
			return nil, err
		}
		reply := collectionReply{
			Collection: collection,
		}
		if nil != r {
			reply.Registered = true
			reply.Allowed = r.Allowed
		}
		return reply, nil
	})
}
