// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/record"
	"github.com/bitmark-inc/custodyd/rpc/assets"
)

// Asset - holder and declared collection of an asset
func (client *Client) Asset(asset account.Identity) (*record.Asset, error) {
	var reply assets.GetReply
	err := client.call("Assets.Get", &assets.GetArguments{Assets: []account.Identity{asset}}, &reply)
	if nil != err {
		return nil, err
	}
	if 1 != len(reply.Assets) || nil == reply.Assets[0] {
		return nil, fault.ErrAssetNotFound
	}
	return reply.Assets[0], nil
}

// Issue - create an asset on a test chain
func (client *Client) Issue(asset account.Identity, owner account.Identity, collection account.Identity) (*record.Asset, error) {
	arguments := assets.IssueArguments{
		Asset:      asset,
		Owner:      owner,
		Collection: collection,
	}
	var reply assets.IssueReply
	err := client.call("Assets.Issue", &arguments, &reply)
	if nil != err {
		return nil, err
	}
	return reply.Asset, nil
}
