// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package assets

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/ledger"
	"github.com/bitmark-inc/custodyd/record"
	"github.com/bitmark-inc/custodyd/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

// Assets - type for the RPC
type Assets struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Holdings ledger.Holdings
	CanIssue bool
}

const (
	maximumAssets   = 100
	rateLimitAssets = 200
	rateBurstAssets = 100
)

// New - assets RPC, issue is only served when canIssue is set
func New(log *logger.L, holdings ledger.Holdings, canIssue bool) *Assets {
	return &Assets{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitAssets, rateBurstAssets),
		Holdings: holdings,
		CanIssue: canIssue,
	}
}

// ---

// GetArguments - arguments for RPC request
type GetArguments struct {
	Assets []account.Identity `json:"assets"`
}

// GetReply - results from get RPC request
//
// an unknown asset leaves a nil entry
type GetReply struct {
	Assets []*record.Asset `json:"assets"`
}

// Get - RPC to fetch holder and collection of assets
func (assets *Assets) Get(arguments *GetArguments, reply *GetReply) error {
	count := len(arguments.Assets)
	if err := ratelimit.LimitN(assets.Limiter, count, maximumAssets); nil != err {
		return err
	}

	assets.Log.Infof("Assets.Get: %d", count)

	a := make([]*record.Asset, count)
	for i, id := range arguments.Assets {
		holding, err := assets.Holdings.Asset(id)
		if fault.ErrAssetNotFound == err {
			continue
		}
		if nil != err {
			return err
		}
		a[i] = holding
	}

	reply.Assets = a
	return nil
}

// ---

// IssueArguments - arguments for RPC request
type IssueArguments struct {
	Asset      account.Identity `json:"asset"`
	Owner      account.Identity `json:"owner"`
	Collection account.Identity `json:"collection"`
}

// IssueReply - results from issue RPC request
type IssueReply struct {
	Asset *record.Asset `json:"asset"`
}

// Issue - RPC to create a new asset on a test chain
func (assets *Assets) Issue(arguments *IssueArguments, reply *IssueReply) error {
	if err := ratelimit.Limit(assets.Limiter); nil != err {
		return err
	}
	if !assets.CanIssue {
		return fault.ErrIssueDisabled
	}
	if arguments.Asset.IsZero() {
		return fault.ErrRequiredAsset
	}
	if arguments.Owner.IsZero() {
		return fault.ErrRequiredUser
	}
	if arguments.Collection.IsZero() {
		return fault.ErrRequiredCollection
	}

	assets.Log.Infof("Assets.Issue: %s  owner: %s", arguments.Asset, arguments.Owner)

	err := assets.Holdings.Issue(arguments.Asset, arguments.Owner, arguments.Collection)
	if nil != err {
		return err
	}

	reply.Asset = &record.Asset{
		Asset:      arguments.Asset,
		Holder:     arguments.Owner,
		Collection: arguments.Collection,
	}
	return nil
}
