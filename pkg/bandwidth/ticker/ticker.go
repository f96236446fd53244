// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

// Package ticker paces sampling rounds with a visible countdown.
package ticker

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/benbjohnson/clock"
)

// Ticker waits between rounds, one second at a time.
type Ticker struct {
	clock  clock.Clock
	status io.Writer
}

// New returns a Ticker counting on clk and writing its countdown to status.
func New(clk clock.Clock, status io.Writer) *Ticker {
	if status == nil {
		status = io.Discard
	}
	return &Ticker{clock: clk, status: status}
}

// Wait blocks for the given number of seconds. Unless quiet, it writes
// "\r<n>" at the start of every second and a final "\r", so the counter is
// overwritten in place on a terminal. It returns ctx.Err() if ctx is done
// first.
func (t *Ticker) Wait(ctx context.Context, seconds int, quiet bool) error {
	for i := 0; i < seconds; i++ {
		if !quiet {
			fmt.Fprintf(t.status, "\r%d", i)
		}
		timer := t.clock.Timer(time.Second)
		select {
		case <-ctx.Done():
			timer.Stop()
			if !quiet {
				fmt.Fprint(t.status, "\r")
			}
			return ctx.Err()
		case <-timer.C:
		}
	}
	if !quiet {
		fmt.Fprint(t.status, "\r")
	}
	return nil
}
