// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strconv"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/custody"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/ledger"
	"github.com/bitmark-inc/custodyd/program"
	"github.com/bitmark-inc/custodyd/query"
	"github.com/bitmark-inc/custodyd/record"
)

func runCreateDeposit(c *cli.Context) error {
	asset, err := checkIdentity(c.String("asset"), fault.ErrRequiredAsset)
	if nil != err {
		return err
	}
	collection := account.Zero
	if s := strings.TrimSpace(c.String("collection")); "" != s {
		collection, err = account.IdentityFromBase58(s)
		if nil != err {
			return err
		}
	}
	userTag := c.String("user-tag")
	if err := record.CheckUserTag(userTag); nil != err {
		return err
	}

	return transition(c, "create-deposit", func(cu *custody.Custody) (*ledger.Receipt, error) {
		return cu.CreateDeposit(asset, collection, userTag)
	})
}

func runGetDeposits(c *cli.Context) error {
	filter := query.Filter{}

	owner, err := checkOptionalIdentity(c.String("owner"))
	if nil != err {
		return err
	}
	filter.Owner = owner

	asset, err := checkOptionalIdentity(c.String("asset"))
	if nil != err {
		return err
	}
	filter.Asset = asset

	if s := strings.TrimSpace(c.String("locked")); "" != s {
		locked, err := strconv.ParseBool(s)
		if nil != err {
			return fault.ErrInvalidOption
		}
		filter.Locked = &locked
	}

	if s := strings.TrimSpace(c.String("status")); "" != s {
		status, err := record.StatusFromString(s)
		if nil != err {
			return err
		}
		filter.Status = &status
	}

	return inspect(c, func(s *session) (interface{}, error) {
		cursor, err := s.custody.Deposits(filter)
		if nil != err {
			return nil, err
		}
		return cursor.All()
	})
}

func runUpdateDeposit(c *cli.Context) error {
	asset, err := checkIdentity(c.String("asset"), fault.ErrRequiredAsset)
	if nil != err {
		return err
	}

	status := program.StatusOption{}
	if s := strings.TrimSpace(c.String("status")); "" != s && "unchanged" != strings.ToLower(s) {
		value, err := record.StatusFromString(s)
		if nil != err {
			return err
		}
		status = program.StatusOf(value)
	}

	locked, err := program.OptionFromString(strings.TrimSpace(c.String("locked")))
	if nil != err {
		return err
	}

	return transition(c, "update-deposit", func(cu *custody.Custody) (*ledger.Receipt, error) {
		return cu.UpdateDeposit(asset, status, locked)
	})
}

func runWithdrawToTreasury(c *cli.Context) error {
	asset, err := checkIdentity(c.String("asset"), fault.ErrRequiredAsset)
	if nil != err {
		return err
	}
	return transition(c, "withdraw-to-treasury", func(cu *custody.Custody) (*ledger.Receipt, error) {
		return cu.WithdrawToTreasury(asset)
	})
}

func runWithdrawToOwner(c *cli.Context) error {
	asset, err := checkIdentity(c.String("asset"), fault.ErrRequiredAsset)
	if nil != err {
		return err
	}
	return transition(c, "withdraw-to-owner", func(cu *custody.Custody) (*ledger.Receipt, error) {
		return cu.WithdrawToOwner(asset)
	})
}

func runFinalise(c *cli.Context) error {
	asset, err := checkIdentity(c.String("asset"), fault.ErrRequiredAsset)
	if nil != err {
		return err
	}
	return transition(c, "finalize-deposit", func(cu *custody.Custody) (*ledger.Receipt, error) {
		return cu.Finalise(asset)
	})
}
