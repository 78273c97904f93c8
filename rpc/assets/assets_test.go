// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package assets_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/fixtures"
	"github.com/bitmark-inc/custodyd/ledger/mocks"
	"github.com/bitmark-inc/custodyd/record"
	"github.com/bitmark-inc/custodyd/rpc/assets"
	"github.com/bitmark-inc/logger"
)

func TestAssetsGet(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	known := fixtures.Identity(0x20)
	unknown := fixtures.Identity(0x21)
	holding := &record.Asset{
		Asset:      known,
		Holder:     fixtures.Identity(0x30),
		Collection: fixtures.Identity(0x02),
	}

	h := mocks.NewMockHoldings(ctl)
	h.EXPECT().Asset(known).Return(holding, nil).Times(1)
	h.EXPECT().Asset(unknown).Return(nil, fault.ErrAssetNotFound).Times(1)

	a := assets.New(logger.New(fixtures.LogCategory), h, false)

	var reply assets.GetReply
	err := a.Get(&assets.GetArguments{Assets: []account.Identity{known, unknown}}, &reply)
	assert.Nil(t, err, "wrong get")
	assert.Equal(t, 2, len(reply.Assets), "wrong asset count")
	assert.Equal(t, holding, reply.Assets[0], "wrong holding")
	assert.Nil(t, reply.Assets[1], "unknown asset returned")

	err = a.Get(&assets.GetArguments{}, &reply)
	assert.Equal(t, fault.ErrInvalidCount, err, "empty request")
}

func TestAssetsIssue(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	arguments := assets.IssueArguments{
		Asset:      fixtures.Identity(0x20),
		Owner:      fixtures.Identity(0x30),
		Collection: fixtures.Identity(0x02),
	}

	h := mocks.NewMockHoldings(ctl)
	h.EXPECT().Issue(arguments.Asset, arguments.Owner, arguments.Collection).Return(nil).Times(1)

	a := assets.New(logger.New(fixtures.LogCategory), h, true)

	var reply assets.IssueReply
	err := a.Issue(&arguments, &reply)
	assert.Nil(t, err, "wrong issue")
	assert.Equal(t, arguments.Owner, reply.Asset.Holder, "wrong holder")

	missing := arguments
	missing.Collection = account.Zero
	err = a.Issue(&missing, &reply)
	assert.Equal(t, fault.ErrRequiredCollection, err, "missing collection")
}

func TestAssetsIssueDisabled(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	a := assets.New(logger.New(fixtures.LogCategory), mocks.NewMockHoldings(ctl), false)

	var reply assets.IssueReply
	err := a.Issue(&assets.IssueArguments{Asset: fixtures.Identity(0x20)}, &reply)
	assert.Equal(t, fault.ErrIssueDisabled, err, "issue on live chain")
}
