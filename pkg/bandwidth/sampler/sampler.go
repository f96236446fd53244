// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

// Package sampler runs the sampling rounds: it primes a baseline per gateway,
// then every round re-reads all gateways, sums their rates and reports the
// total.
package sampler

import (
	"context"
	"errors"
	"fmt"

	"github.com/DataDog/fetch-out-bw/pkg/bandwidth/counter"
	"github.com/DataDog/fetch-out-bw/pkg/bandwidth/rate"
	"github.com/DataDog/fetch-out-bw/pkg/bandwidth/report"
	"github.com/DataDog/fetch-out-bw/pkg/gateway"
	"github.com/DataDog/fetch-out-bw/pkg/util/log"
)

// Forever makes Run loop until its context is cancelled.
const Forever = -1

// CounterReader reads one gateway's counter.
type CounterReader interface {
	ReadCounter(ctx context.Context, gw gateway.Gateway) (counter.Sample, error)
}

// Waiter blocks between rounds.
type Waiter interface {
	Wait(ctx context.Context, seconds int, quiet bool) error
}

// Baselines maps a gateway name to its latest committed sample.
type Baselines map[string]counter.Sample

// Clone returns an independent copy.
func (b Baselines) Clone() Baselines {
	c := make(Baselines, len(b))
	for k, v := range b {
		c[k] = v
	}
	return c
}

// Sampler owns the gateways and their baselines. It is not safe for
// concurrent use.
type Sampler struct {
	gateways  []gateway.Gateway
	reader    CounterReader
	waiter    Waiter
	reporter  report.Reporter
	quiet     bool
	baselines Baselines
}

// New returns a Sampler polling gateways in the given order.
func New(gateways []gateway.Gateway, reader CounterReader, waiter Waiter, reporter report.Reporter, quiet bool) *Sampler {
	return &Sampler{
		gateways: gateways,
		reader:   reader,
		waiter:   waiter,
		reporter: reporter,
		quiet:    quiet,
	}
}

// Baselines returns a copy of the committed baselines.
func (s *Sampler) Baselines() Baselines {
	return s.baselines.Clone()
}

// Prime reads every gateway once. Baselines are only set when all reads
// succeed.
func (s *Sampler) Prime(ctx context.Context) error {
	baselines := make(Baselines, len(s.gateways))
	for _, gw := range s.gateways {
		sample, err := s.reader.ReadCounter(ctx, gw)
		if err != nil {
			return err
		}
		log.Debugf("gateway %s primed with %d octets", gw.Name, sample.Octets)
		baselines[gw.Name] = sample
	}
	s.baselines = baselines
	return nil
}

// Round reads every gateway and computes the total rate against the
// baselines. New baselines are committed only if every gateway succeeds, so
// a failed round leaves them untouched.
func (s *Sampler) Round(ctx context.Context, number int) (report.Round, error) {
	if s.baselines == nil {
		return report.Round{}, errors.New("sampler is not primed")
	}
	next := s.baselines.Clone()
	result := report.Round{Number: number}

	for _, gw := range s.gateways {
		current, err := s.reader.ReadCounter(ctx, gw)
		if err != nil {
			return report.Round{}, err
		}
		previous, ok := next[gw.Name]
		if !ok {
			return report.Round{}, fmt.Errorf("gateway %s has no baseline", gw.Name)
		}
		r, err := rate.Compute(previous, current)
		if err != nil {
			return report.Round{}, fmt.Errorf("gateway %s: %w", gw.Name, err)
		}
		next[gw.Name] = current

		result.TotalOctetsPerSecond += r.OctetsPerSecond
		result.Gateways = append(result.Gateways, report.GatewayRate{Name: gw.Name, Rate: r, Speed: current.Speed})
		if current.Timestamp.After(result.Timestamp) {
			result.Timestamp = current.Timestamp
		}
	}

	result.Mbps = rate.Mbps(result.TotalOctetsPerSecond)
	s.baselines = next
	return result, nil
}

// Run primes the baselines, then runs rounds rounds separated by delay
// seconds, reporting each one. rounds may be Forever, in which case a
// cancelled ctx ends the run without error. Zero rounds only primes.
func (s *Sampler) Run(ctx context.Context, rounds int, delay int) error {
	if err := s.Prime(ctx); err != nil {
		return s.stopped(rounds, err)
	}
	log.Debugf("primed %d gateway(s)", len(s.gateways))

	for number := 1; rounds == Forever || number <= rounds; number++ {
		if err := s.waiter.Wait(ctx, delay, s.quiet); err != nil {
			return s.stopped(rounds, err)
		}
		result, err := s.Round(ctx, number)
		if err != nil {
			return s.stopped(rounds, err)
		}
		log.Debugf("round %d: %.0f octets per second over %d gateway(s)", number, result.TotalOctetsPerSecond, len(result.Gateways))
		if err := s.reporter.Report(result); err != nil {
			if errors.Is(err, report.ErrResultNotWritten) {
				return fmt.Errorf("round %d: %w", number, err)
			}
			log.Warnf("round %d could not be fully reported: %v", number, err)
		}
	}
	return nil
}

// stopped maps a cancellation in forever mode to a clean exit.
func (s *Sampler) stopped(rounds int, err error) error {
	if rounds == Forever && errors.Is(err, context.Canceled) {
		log.Info("interrupted, stopping")
		return nil
	}
	return err
}
