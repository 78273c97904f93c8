// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/fault"
)

// AssetHoldingSize - stored size of an asset holding
const AssetHoldingSize = 2 * account.IdentitySize

// Asset - ledger held facts about an asset: who holds it and the
// collection it declares
//
// this is kept by the ledger beside the records, not by the program
type Asset struct {
	Asset      account.Identity `json:"asset"`
	Holder     account.Identity `json:"holder"`
	Collection account.Identity `json:"collection"`
}

// PackHolding - holder followed by collection
func (a *Asset) PackHolding() []byte {
	buffer := make([]byte, AssetHoldingSize)
	putIdentity(buffer, 0, a.Holder)
	putIdentity(buffer, account.IdentitySize, a.Collection)
	return buffer
}

// UnpackHolding - reverse of PackHolding
func UnpackHolding(asset account.Identity, buffer []byte) (*Asset, error) {
	if len(buffer) != AssetHoldingSize {
		return nil, fault.ErrInvalidRecordSize
	}
	return &Asset{
		Asset:      asset,
		Holder:     getIdentity(buffer, 0),
		Collection: getIdentity(buffer, account.IdentitySize),
	}, nil
}
