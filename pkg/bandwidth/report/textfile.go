// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

package report

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Textfile rewrites a node_exporter textfile collector file after every
// round.
type Textfile struct {
	path     string
	registry *prometheus.Registry

	totalMbps    prometheus.Gauge
	totalRate    prometheus.Gauge
	gatewayRate  *prometheus.GaugeVec
	rounds       prometheus.Counter
	lastRoundSec prometheus.Gauge
}

// NewTextfile returns a Textfile writing to path, which should end in .prom.
func NewTextfile(path string) *Textfile {
	t := &Textfile{
		path:     path,
		registry: prometheus.NewRegistry(),
		totalMbps: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fetch_out_bw_total_mbps",
			Help: "Total outbound bandwidth of all gateways in whole Mbit/s.",
		}),
		totalRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fetch_out_bw_total_octets_per_second",
			Help: "Total outbound rate of all gateways.",
		}),
		gatewayRate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fetch_out_bw_octets_per_second",
			Help: "Outbound rate of one gateway interface.",
		}, []string{"gateway"}),
		rounds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fetch_out_bw_rounds_total",
			Help: "Sampling rounds completed.",
		}),
		lastRoundSec: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fetch_out_bw_last_round_timestamp_seconds",
			Help: "Unix time of the last completed round.",
		}),
	}
	t.registry.MustRegister(t.totalMbps, t.totalRate, t.gatewayRate, t.rounds, t.lastRoundSec)
	return t
}

// Report implements Reporter.
func (t *Textfile) Report(round Round) error {
	t.totalMbps.Set(float64(round.Mbps))
	t.totalRate.Set(round.TotalOctetsPerSecond)
	for _, gw := range round.Gateways {
		t.gatewayRate.WithLabelValues(gw.Name).Set(gw.Rate.OctetsPerSecond)
	}
	t.rounds.Inc()
	t.lastRoundSec.Set(float64(round.Timestamp.Unix()))

	if err := prometheus.WriteToTextfile(t.path, t.registry); err != nil {
		return fmt.Errorf("unable to write textfile %s: %w", t.path, err)
	}
	return nil
}

// Close implements Reporter.
func (t *Textfile) Close() error {
	return nil
}
