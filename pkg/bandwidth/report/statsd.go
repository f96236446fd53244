// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

package report

import (
	"fmt"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/hashicorp/go-multierror"
)

// Statsd sends round results as DogStatsD gauges.
type Statsd struct {
	client statsd.ClientInterface
}

// NewStatsd creates a DogStatsD client for addr. Metric names are prefixed
// with namespace and carry the constant tags.
func NewStatsd(addr, namespace string, tags []string) (*Statsd, error) {
	client, err := statsd.New(addr, statsd.WithNamespace(namespace), statsd.WithTags(tags))
	if err != nil {
		return nil, fmt.Errorf("unable to create dogstatsd client for %s: %w", addr, err)
	}
	return NewStatsdWithClient(client), nil
}

// NewStatsdWithClient wraps an existing client.
func NewStatsdWithClient(client statsd.ClientInterface) *Statsd {
	return &Statsd{client: client}
}

// Report implements Reporter.
func (s *Statsd) Report(round Round) error {
	var result *multierror.Error
	if err := s.client.Gauge("total.mbps", float64(round.Mbps), nil, 1); err != nil {
		result = multierror.Append(result, err)
	}
	if err := s.client.Gauge("total.octets_per_second", round.TotalOctetsPerSecond, nil, 1); err != nil {
		result = multierror.Append(result, err)
	}
	for _, gw := range round.Gateways {
		if err := s.client.Gauge("octets_per_second", gw.Rate.OctetsPerSecond, []string{"gateway:" + gw.Name}, 1); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := s.client.Flush(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// Close implements Reporter.
func (s *Statsd) Close() error {
	return s.client.Close()
}
