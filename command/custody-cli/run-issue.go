// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/custodyd/fault"
)

// issue an asset on a chain that allows it, the owner defaults to
// the keypair account
func runIssueAsset(c *cli.Context) error {
	asset, err := checkIdentity(c.String("asset"), fault.ErrRequiredAsset)
	if nil != err {
		return err
	}
	collection, err := checkIdentity(c.String("collection"), fault.ErrRequiredCollection)
	if nil != err {
		return err
	}

	owner := strings.TrimSpace(c.String("owner"))
	signing := "" == owner

	return inspect(c, func(s *session) (interface{}, error) {
		holder := s.custody.Identity()
		if !signing {
			holder, err = checkIdentity(owner, fault.ErrRequiredUser)
			if nil != err {
				return nil, err
			}
		} else if holder.IsZero() {
			return nil, fault.ErrRequiredKeypair
		}
		return s.client.Issue(asset, holder, collection)
	})
}
