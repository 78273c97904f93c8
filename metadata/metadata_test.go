// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metadata_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/custodyd/account"
	"github.com/bitmark-inc/custodyd/fault"
	"github.com/bitmark-inc/custodyd/fixtures"
	"github.com/bitmark-inc/custodyd/metadata"
	"github.com/bitmark-inc/custodyd/metadata/mocks"
	"github.com/bitmark-inc/custodyd/record"
)

func TestCollectionIsCached(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	asset := fixtures.Identity(1)
	collection := fixtures.Identity(2)

	s := mocks.NewMockSource(ctl)
	s.EXPECT().Asset(asset).Return(&record.Asset{
		Asset:      asset,
		Holder:     fixtures.Identity(3),
		Collection: collection,
	}, nil).Times(1)

	r := metadata.New(s, 0)

	for i := 0; i < 3; i += 1 {
		c, err := r.Collection(asset)
		assert.Nil(t, err, "%d: resolve error", i)
		assert.Equal(t, collection, c, "%d: wrong collection", i)
	}
}

func TestCollectionErrorNotCached(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	asset := fixtures.Identity(4)

	s := mocks.NewMockSource(ctl)
	s.EXPECT().Asset(asset).Return(nil, fault.ErrAssetNotFound).Times(2)

	r := metadata.New(s, 0)

	for i := 0; i < 2; i += 1 {
		c, err := r.Collection(asset)
		assert.Equal(t, fault.ErrAssetNotFound, err, "%d: wrong error", i)
		assert.Equal(t, account.Zero, c, "%d: collection returned", i)
	}
}

func TestHolderIsNotCached(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	asset := fixtures.Identity(5)
	collection := fixtures.Identity(6)
	first := fixtures.Identity(7)
	second := fixtures.Identity(8)

	s := mocks.NewMockSource(ctl)
	gomock.InOrder(
		s.EXPECT().Asset(asset).Return(&record.Asset{Asset: asset, Holder: first, Collection: collection}, nil),
		s.EXPECT().Asset(asset).Return(&record.Asset{Asset: asset, Holder: second, Collection: collection}, nil),
	)

	r := metadata.New(s, 0)

	h, err := r.Holder(asset)
	assert.Nil(t, err, "holder error")
	assert.Equal(t, first, h, "first holder")

	h, err = r.Holder(asset)
	assert.Nil(t, err, "holder error")
	assert.Equal(t, second, h, "holder was cached")

	// the collection came along with the holder
	c, err := r.Collection(asset)
	assert.Nil(t, err, "resolve error")
	assert.Equal(t, collection, c, "wrong collection")
}
