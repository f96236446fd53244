// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

package sampler

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataDog/fetch-out-bw/pkg/bandwidth/counter"
	"github.com/DataDog/fetch-out-bw/pkg/bandwidth/rate"
	"github.com/DataDog/fetch-out-bw/pkg/bandwidth/report"
	"github.com/DataDog/fetch-out-bw/pkg/gateway"
)

type reading struct {
	octets uint64
	err    error
}

// scriptedReader returns the scripted readings of each gateway in order,
// stamped with the mock clock.
type scriptedReader struct {
	clk    *clock.Mock
	script map[string][]reading
	calls  map[string]int
}

func newScriptedReader(clk *clock.Mock, script map[string][]reading) *scriptedReader {
	return &scriptedReader{clk: clk, script: script, calls: map[string]int{}}
}

func (r *scriptedReader) ReadCounter(ctx context.Context, gw gateway.Gateway) (counter.Sample, error) {
	if err := ctx.Err(); err != nil {
		return counter.Sample{}, err
	}
	i := r.calls[gw.Name]
	r.calls[gw.Name]++
	if i >= len(r.script[gw.Name]) {
		return counter.Sample{}, fmt.Errorf("unexpected read %d of %s", i+1, gw.Name)
	}
	rd := r.script[gw.Name][i]
	if rd.err != nil {
		return counter.Sample{}, rd.err
	}
	return counter.Sample{Timestamp: r.clk.Now(), Octets: rd.octets}, nil
}

// clockWaiter advances the mock clock instead of sleeping. cancelOn cancels
// the run on that wait, counting from 1.
type clockWaiter struct {
	clk      *clock.Mock
	waits    int
	cancelOn int
	cancel   context.CancelFunc
}

func (w *clockWaiter) Wait(ctx context.Context, seconds int, _ bool) error {
	w.waits++
	if w.cancelOn > 0 && w.waits == w.cancelOn {
		w.cancel()
		return ctx.Err()
	}
	w.clk.Add(time.Duration(seconds) * time.Second)
	return nil
}

type recordingReporter struct {
	rounds []report.Round
	err    error
}

func (r *recordingReporter) Report(round report.Round) error {
	r.rounds = append(r.rounds, round)
	return r.err
}

func (r *recordingReporter) Close() error { return nil }

func gateways(names ...string) []gateway.Gateway {
	var gws []gateway.Gateway
	for _, name := range names {
		gws = append(gws, gateway.Gateway{Name: name, Community: "public", InterfaceID: "1", InterfaceDescr: "WAN"})
	}
	return gws
}

type fixture struct {
	clk      *clock.Mock
	reader   *scriptedReader
	waiter   *clockWaiter
	reporter *recordingReporter
	sampler  *Sampler
}

func newFixture(names []string, script map[string][]reading) *fixture {
	clk := clock.NewMock()
	f := &fixture{
		clk:      clk,
		reader:   newScriptedReader(clk, script),
		waiter:   &clockWaiter{clk: clk},
		reporter: &recordingReporter{},
	}
	f.sampler = New(gateways(names...), f.reader, f.waiter, f.reporter, true)
	return f
}

func TestSingleGatewayOneMbps(t *testing.T) {
	f := newFixture([]string{"gw1"}, map[string][]reading{
		"gw1": {{octets: 1000000}, {octets: 6000000}},
	})

	require.NoError(t, f.sampler.Run(context.Background(), 1, 30))
	require.Len(t, f.reporter.rounds, 1)
	round := f.reporter.rounds[0]
	assert.Equal(t, 1, round.Number)
	assert.Equal(t, int64(1), round.Mbps)
	assert.InDelta(t, 166666.67, round.TotalOctetsPerSecond, 0.01)
	assert.Equal(t, 30*time.Second, round.Gateways[0].Rate.Elapsed)
	assert.Equal(t, f.clk.Now(), round.Timestamp)
}

func TestTotalIsSumOfGateways(t *testing.T) {
	f := newFixture([]string{"gw1", "gw2"}, map[string][]reading{
		"gw1": {{octets: 1000}, {octets: 1000 + 500000*30}},
		"gw2": {{octets: 2000}, {octets: 2000 + 500000*30}},
	})

	require.NoError(t, f.sampler.Run(context.Background(), 1, 30))
	require.Len(t, f.reporter.rounds, 1)
	assert.Equal(t, int64(8), f.reporter.rounds[0].Mbps)
	assert.Equal(t, float64(1000000), f.reporter.rounds[0].TotalOctetsPerSecond)
	assert.Equal(t, []string{"gw1", "gw2"}, []string{f.reporter.rounds[0].Gateways[0].Name, f.reporter.rounds[0].Gateways[1].Name})
}

func TestSeveralRoundsRollBaselinesForward(t *testing.T) {
	f := newFixture([]string{"gw1"}, map[string][]reading{
		"gw1": {{octets: 1000}, {octets: 1000 + 125000*10}, {octets: 1000 + 125000*10 + 250000*10}},
	})

	require.NoError(t, f.sampler.Run(context.Background(), 2, 10))
	require.Len(t, f.reporter.rounds, 2)
	assert.Equal(t, int64(1), f.reporter.rounds[0].Mbps)
	assert.Equal(t, int64(2), f.reporter.rounds[1].Mbps)
	assert.Equal(t, 2, f.reporter.rounds[1].Number)
	assert.Equal(t, 2, f.waiter.waits)
}

func TestPrimingFailureEmitsNothing(t *testing.T) {
	mismatch := &counter.ReadError{Gateway: "gw2", Kind: counter.ErrDescriptionMismatch}
	f := newFixture([]string{"gw1", "gw2", "gw3"}, map[string][]reading{
		"gw1": {{octets: 1000}},
		"gw2": {{err: mismatch}},
		"gw3": {{octets: 1000}},
	})

	err := f.sampler.Run(context.Background(), 3, 30)
	assert.ErrorIs(t, err, counter.ErrDescriptionMismatch)
	assert.ErrorIs(t, err, counter.ErrNoValidResponse)
	assert.Empty(t, f.reporter.rounds)
	assert.Equal(t, 0, f.waiter.waits)
	assert.Equal(t, 0, f.reader.calls["gw3"])
	assert.Empty(t, f.sampler.Baselines())
}

func TestMidRunFailureRollsBackRound(t *testing.T) {
	transport := &counter.ReadError{Gateway: "gw2", Kind: counter.ErrTransport, Err: errors.New("request timeout")}
	f := newFixture([]string{"gw1", "gw2", "gw3"}, map[string][]reading{
		"gw1": {{octets: 100}, {octets: 200}, {octets: 300}},
		"gw2": {{octets: 100}, {octets: 200}, {err: transport}},
		"gw3": {{octets: 100}, {octets: 200}, {octets: 300}},
	})

	err := f.sampler.Run(context.Background(), 3, 1)
	assert.ErrorIs(t, err, counter.ErrTransport)
	// only round 1 got out
	require.Len(t, f.reporter.rounds, 1)
	// gw3 was never read in round 2
	assert.Equal(t, 2, f.reader.calls["gw3"])

	baselines := f.sampler.Baselines()
	for _, name := range []string{"gw1", "gw2", "gw3"} {
		assert.Equal(t, uint64(200), baselines[name].Octets, name)
	}
}

func TestRoundFailureKeepsBaselines(t *testing.T) {
	f := newFixture([]string{"gw1", "gw2"}, map[string][]reading{
		"gw1": {{octets: 100}, {octets: 500}},
		"gw2": {{octets: 100}, {err: &counter.ReadError{Gateway: "gw2", Kind: counter.ErrInvalidCounterReading}}},
	})
	require.NoError(t, f.sampler.Prime(context.Background()))
	before := f.sampler.Baselines()
	f.clk.Add(time.Second)

	_, err := f.sampler.Round(context.Background(), 1)
	assert.ErrorIs(t, err, counter.ErrInvalidCounterReading)
	assert.Equal(t, before, f.sampler.Baselines())
}

func TestZeroRoundsOnlyPrimes(t *testing.T) {
	f := newFixture([]string{"gw1", "gw2"}, map[string][]reading{
		"gw1": {{octets: 100}},
		"gw2": {{octets: 100}},
	})

	require.NoError(t, f.sampler.Run(context.Background(), 0, 30))
	assert.Empty(t, f.reporter.rounds)
	assert.Equal(t, 0, f.waiter.waits)
	assert.Len(t, f.sampler.Baselines(), 2)
}

func TestZeroRoundsPrimingFailure(t *testing.T) {
	f := newFixture([]string{"gw1"}, map[string][]reading{
		"gw1": {{err: &counter.ReadError{Gateway: "gw1", Kind: counter.ErrTransport}}},
	})

	assert.ErrorIs(t, f.sampler.Run(context.Background(), 0, 30), counter.ErrTransport)
}

func TestCounterWrapIsFatal(t *testing.T) {
	f := newFixture([]string{"gw1"}, map[string][]reading{
		"gw1": {{octets: 6000000}, {octets: 1000}},
	})

	err := f.sampler.Run(context.Background(), 1, 30)
	assert.ErrorIs(t, err, rate.ErrCounterWrap)
	assert.ErrorContains(t, err, "gateway gw1")
	assert.Empty(t, f.reporter.rounds)
}

func TestNonPositiveElapsedIsFatal(t *testing.T) {
	f := newFixture([]string{"gw1"}, map[string][]reading{
		"gw1": {{octets: 1}, {octets: 2}},
	})

	// a zero delay leaves the mock clock where it was
	err := f.sampler.Run(context.Background(), 1, 0)
	assert.ErrorIs(t, err, rate.ErrNonPositiveElapsed)
}

func TestForeverStopsCleanlyOnCancel(t *testing.T) {
	script := []reading{{octets: 100}}
	for i := 1; i <= 3; i++ {
		script = append(script, reading{octets: uint64(100 + i*125000)})
	}
	f := newFixture([]string{"gw1"}, map[string][]reading{"gw1": script})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.waiter.cancelOn = 4
	f.waiter.cancel = cancel

	require.NoError(t, f.sampler.Run(ctx, Forever, 1))
	assert.Len(t, f.reporter.rounds, 3)
}

func TestFixedCountInterruptedIsError(t *testing.T) {
	f := newFixture([]string{"gw1"}, map[string][]reading{
		"gw1": {{octets: 100}, {octets: 200}},
	})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.waiter.cancelOn = 2
	f.waiter.cancel = cancel

	err := f.sampler.Run(ctx, 5, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, f.reporter.rounds, 1)
}

func TestReporterFailureDoesNotStopRun(t *testing.T) {
	f := newFixture([]string{"gw1"}, map[string][]reading{
		"gw1": {{octets: 100}, {octets: 200}, {octets: 300}},
	})
	f.reporter.err = errors.New("textfile unwritable")

	require.NoError(t, f.sampler.Run(context.Background(), 2, 1))
	assert.Len(t, f.reporter.rounds, 2)
}

func TestResultNotWrittenStopsRun(t *testing.T) {
	f := newFixture([]string{"gw1"}, map[string][]reading{
		"gw1": {{octets: 100}, {octets: 200}, {octets: 300}},
	})
	f.reporter.err = fmt.Errorf("%w: broken pipe", report.ErrResultNotWritten)

	err := f.sampler.Run(context.Background(), 2, 1)
	assert.ErrorIs(t, err, report.ErrResultNotWritten)
	assert.ErrorContains(t, err, "round 1")
	assert.Len(t, f.reporter.rounds, 1)
}

func TestRoundBeforePrime(t *testing.T) {
	f := newFixture([]string{"gw1"}, nil)
	_, err := f.sampler.Round(context.Background(), 1)
	assert.ErrorContains(t, err, "not primed")
}

func TestBaselinesClone(t *testing.T) {
	b := Baselines{"gw1": {Octets: 1}}
	c := b.Clone()
	c["gw1"] = counter.Sample{Octets: 2}
	assert.Equal(t, uint64(1), b["gw1"].Octets)
}
