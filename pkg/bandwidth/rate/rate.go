// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

// Package rate turns two counter samples into a throughput.
package rate

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/DataDog/fetch-out-bw/pkg/bandwidth/counter"
)

var (
	// ErrNonPositiveElapsed is returned when the current sample is not
	// strictly newer than the previous one.
	ErrNonPositiveElapsed = errors.New("elapsed time between samples must be positive")
	// ErrCounterWrap is returned when the counter went backwards, either a
	// wrap or an agent restart.
	ErrCounterWrap = errors.New("counter decreased between samples")
)

// Sample is the throughput of one gateway over one interval.
type Sample struct {
	OctetsPerSecond float64
	OctetDelta      uint64
	Elapsed         time.Duration
}

// Idle reports whether no octet was sent during the interval.
func (s Sample) Idle() bool {
	return s.OctetDelta == 0
}

// Compute derives the rate between previous and current.
func Compute(previous, current counter.Sample) (Sample, error) {
	elapsed := current.Timestamp.Sub(previous.Timestamp)
	if elapsed <= 0 {
		return Sample{}, fmt.Errorf("%w: got %s", ErrNonPositiveElapsed, elapsed)
	}
	if current.Octets < previous.Octets {
		return Sample{}, fmt.Errorf("%w: from %d to %d", ErrCounterWrap, previous.Octets, current.Octets)
	}
	delta := current.Octets - previous.Octets
	return Sample{
		OctetsPerSecond: float64(delta) / elapsed.Seconds(),
		OctetDelta:      delta,
		Elapsed:         elapsed,
	}, nil
}

// Mbps converts octets per second to whole megabits per second, rounding
// down.
func Mbps(octetsPerSecond float64) int64 {
	return int64(math.Floor(octetsPerSecond * 8 / 1000 / 1000))
}

// Utilization returns the interface load in percent of ifSpeed. The second
// value is false when the speed is unknown.
func Utilization(octetsPerSecond float64, speed uint64) (float64, bool) {
	if speed == 0 {
		return 0, false
	}
	return octetsPerSecond * 8 / float64(speed) * 100, true
}
