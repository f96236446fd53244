// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

// Package report publishes the result of every sampling round.
package report

import (
	"errors"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/DataDog/fetch-out-bw/pkg/bandwidth/rate"
)

// GatewayRate is one gateway's contribution to a round.
type GatewayRate struct {
	Name  string
	Rate  rate.Sample
	Speed uint64
}

// Round is the outcome of one successful sampling round.
type Round struct {
	// Number starts at 1.
	Number               int
	Timestamp            time.Time
	TotalOctetsPerSecond float64
	Mbps                 int64
	Gateways             []GatewayRate
}

// ErrResultNotWritten is wrapped by a Reporter that could not write the round
// result line itself. Unlike other sink failures it ends the run.
var ErrResultNotWritten = errors.New("round result could not be written")

// Reporter is an output sink for rounds.
type Reporter interface {
	Report(round Round) error
	Close() error
}

// Multi sends every round to all its reporters.
type Multi []Reporter

// Report calls every reporter, even after a failure, and returns the joined
// errors.
func (m Multi) Report(round Round) error {
	var result *multierror.Error
	for _, r := range m {
		if err := r.Report(round); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Close closes every reporter.
func (m Multi) Close() error {
	var result *multierror.Error
	for _, r := range m {
		if err := r.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
