// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/custodyd/background"
)

type ticker struct {
	ticks    int64
	started  chan struct{}
	finished bool
}

func (p *ticker) Run(args interface{}, shutdown <-chan struct{}) {
	close(p.started)
	step := args.(int64)
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(time.Millisecond):
			atomic.AddInt64(&p.ticks, step)
		}
	}
	p.finished = true
}

func TestBackground(t *testing.T) {
	proc1 := &ticker{started: make(chan struct{})}
	proc2 := &ticker{started: make(chan struct{})}

	p := background.Start(background.Processes{proc1, proc2}, int64(3))

	<-proc1.started
	<-proc2.started
	time.Sleep(20 * time.Millisecond)

	p.Stop()

	assert.True(t, proc1.finished, "first process still running")
	assert.True(t, proc2.finished, "second process still running")
	assert.True(t, atomic.LoadInt64(&proc1.ticks) > 0, "first process did not run")
	assert.Equal(t, int64(0), atomic.LoadInt64(&proc2.ticks)%3, "wrong argument")

	// second stop must not panic or block
	p.Stop()
}

func TestEmpty(t *testing.T) {
	p := background.Start(nil, nil)
	p.Stop()
}
