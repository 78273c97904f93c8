// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"runtime"
	"time"

	"github.com/bitmark-inc/custodyd/ledger"
	"github.com/bitmark-inc/custodyd/record"
	"github.com/bitmark-inc/custodyd/rpc"
	"github.com/bitmark-inc/logger"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

// periodic memory and ledger figures
type statistics struct {
	log   *logger.L
	delay time.Duration
}

func newStatistics(delay time.Duration) *statistics {
	return &statistics{
		log:   logger.New("stats"),
		delay: delay,
	}
}

// Run - report until shutdown, args is the *ledger.Local
func (s *statistics) Run(args interface{}, shutdown <-chan struct{}) {
	local := args.(*ledger.Local)

	s.log.Info("starting…")
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(s.delay):
		}
		s.report(local)
	}
	s.log.Info("stopped")
}

func (s *statistics) report(local *ledger.Local) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	a := m.Alloc / mega
	t := m.TotalAlloc / mega
	v := m.Sys / mega
	s.log.Infof("allocated: %d M  cumulative: %d M  OS virtual: %d M  goroutines: %d", a, t, v, runtime.NumGoroutine())
	s.log.Debugf("rpc listeners: %v", rpc.Addresses())

	for _, kind := range []record.Kind{record.RoleKind, record.CollectionKind, record.DepositKind} {
		accounts, err := local.Scan(kind.Size(), nil)
		if nil != err {
			s.log.Errorf("scan: %s  error: %s", kind, err)
			return
		}
		s.log.Infof("%s records: %d", kind, len(accounts))
	}
}
