// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"
)

var (
	assetFlag = cli.StringFlag{
		Name:  "asset, a",
		Value: "",
		Usage: "*asset `ID`",
	}
	collectionFlag = cli.StringFlag{
		Name:  "collection, C",
		Value: "",
		Usage: "*collection `ID`",
	}
	treasuryFlag = cli.StringFlag{
		Name:  "treasury, t",
		Value: "",
		Usage: "*treasury `ACCOUNT`",
	}
	userFlag = cli.StringFlag{
		Name:  "user, u",
		Value: "",
		Usage: "*user `ACCOUNT`",
	}
)

var commands = []cli.Command{
	{
		Name:      "status",
		Usage:     "display custodyd and global record status",
		ArgsUsage: "\n   (* = required)",
		Action:    runStatus,
	},
	{
		Name:      "init",
		Usage:     "initialise the custody program, caller becomes super admin",
		ArgsUsage: "\n   (* = required)",
		Flags:     []cli.Flag{treasuryFlag},
		Action:    runInitialise,
	},
	{
		Name:      "transfer-authority",
		Usage:     "hand super admin over to another account",
		ArgsUsage: "\n   (* = required)",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "new-admin, N",
				Value: "",
				Usage: "*new super admin `ACCOUNT`",
			},
		},
		Action: runTransferAuthority,
	},
	{
		Name:      "set-treasury",
		Usage:     "change the treasury account",
		ArgsUsage: "\n   (* = required)",
		Flags:     []cli.Flag{treasuryFlag},
		Action:    runSetTreasury,
	},
	{
		Name:      "init-user",
		Usage:     "create an empty role record for an account",
		ArgsUsage: "\n   (* = required)",
		Flags:     []cli.Flag{userFlag},
		Action:    runInitUser,
	},
	{
		Name:      "set-role",
		Usage:     "change the admin and updater flags of an account",
		ArgsUsage: "\n   (* = required)",
		Flags: []cli.Flag{
			userFlag,
			cli.StringFlag{
				Name:  "admin, A",
				Value: "",
				Usage: " admin flag `BOOL` [true|false|unchanged]",
			},
			cli.StringFlag{
				Name:  "updater, U",
				Value: "",
				Usage: " updater flag `BOOL` [true|false|unchanged]",
			},
		},
		Action: runSetRole,
	},
	{
		Name:      "get-roles",
		Usage:     "list every role record",
		ArgsUsage: "\n   (* = required)",
		Action:    runGetRoles,
	},
	{
		Name:      "register-collection",
		Usage:     "allow deposits from a collection",
		ArgsUsage: "\n   (* = required)",
		Flags:     []cli.Flag{collectionFlag},
		Action:    runRegisterCollection,
	},
	{
		Name:      "revoke-collection",
		Usage:     "refuse further deposits from a collection",
		ArgsUsage: "\n   (* = required)",
		Flags:     []cli.Flag{collectionFlag},
		Action:    runRevokeCollection,
	},
	{
		Name:      "collection-status",
		Usage:     "display a collection's allowlist record",
		ArgsUsage: "\n   (* = required)",
		Flags:     []cli.Flag{collectionFlag},
		Action:    runCollectionStatus,
	},
	{
		Name:      "create-deposit",
		Usage:     "move an asset into custody",
		ArgsUsage: "\n   (* = required)",
		Flags: []cli.Flag{
			assetFlag,
			cli.StringFlag{
				Name:  "collection, C",
				Value: "",
				Usage: " expected collection `ID` [default from asset]",
			},
			cli.StringFlag{
				Name:  "user-tag, T",
				Value: "",
				Usage: " opaque user `TAG`",
			},
		},
		Action: runCreateDeposit,
	},
	{
		Name:      "get-deposits",
		Usage:     "list deposit records matching all given filters",
		ArgsUsage: "\n   (* = required)",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "owner, o",
				Value: "",
				Usage: " depositor `ACCOUNT`",
			},
			cli.StringFlag{
				Name:  "locked, l",
				Value: "",
				Usage: " lock state `BOOL`",
			},
			cli.StringFlag{
				Name:  "status, s",
				Value: "",
				Usage: " deposit `STATUS` [created|copy_prepared|shipped|delivered]",
			},
			cli.StringFlag{
				Name:  "asset, a",
				Value: "",
				Usage: " asset `ID`",
			},
		},
		Action: runGetDeposits,
	},
	{
		Name:      "update-deposit",
		Usage:     "change status and lock of a deposit",
		ArgsUsage: "\n   (* = required)",
		Flags: []cli.Flag{
			assetFlag,
			cli.StringFlag{
				Name:  "status, s",
				Value: "",
				Usage: " new `STATUS` [created|copy_prepared|shipped|delivered]",
			},
			cli.StringFlag{
				Name:  "locked, l",
				Value: "",
				Usage: " lock state `BOOL` [true|false|unchanged]",
			},
		},
		Action: runUpdateDeposit,
	},
	{
		Name:      "withdraw-to-treasury",
		Usage:     "move an unlocked deposit to the treasury",
		ArgsUsage: "\n   (* = required)",
		Flags:     []cli.Flag{assetFlag},
		Action:    runWithdrawToTreasury,
	},
	{
		Name:      "withdraw-to-owner",
		Usage:     "return an unlocked deposit to its depositor",
		ArgsUsage: "\n   (* = required)",
		Flags:     []cli.Flag{assetFlag},
		Action:    runWithdrawToOwner,
	},
	{
		Name:      "finalize-deposit",
		Usage:     "settle a deposit by moving it to the treasury",
		ArgsUsage: "\n   (* = required)",
		Flags:     []cli.Flag{assetFlag},
		Action:    runFinalise,
	},
	{
		Name:      "issue-asset",
		Usage:     "create an asset on a testing or local chain",
		ArgsUsage: "\n   (* = required)",
		Flags: []cli.Flag{
			assetFlag,
			collectionFlag,
			cli.StringFlag{
				Name:  "owner, o",
				Value: "",
				Usage: " holder `ACCOUNT` [default keypair account]",
			},
		},
		Action: runIssueAsset,
	},
	{
		Name:      "keygen",
		Usage:     "generate a new signing keypair file",
		ArgsUsage: "\n   (* = required)",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "output, O",
				Value: "",
				Usage: "*keypair `FILE` to create",
			},
		},
		Action: runKeygen,
	},
	{
		Name:  "version",
		Usage: "display custody-cli version",
		Action: func(c *cli.Context) error {
			fmt.Fprintf(c.App.Writer, "%s\n", version)
			return nil
		},
	},
}
