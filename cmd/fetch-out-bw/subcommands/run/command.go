// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

// Package run implements 'fetch-out-bw run', also the default command.
package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/DataDog/fetch-out-bw/cmd/fetch-out-bw/command"
	"github.com/DataDog/fetch-out-bw/pkg/bandwidth/counter"
	"github.com/DataDog/fetch-out-bw/pkg/bandwidth/report"
	"github.com/DataDog/fetch-out-bw/pkg/bandwidth/sampler"
	"github.com/DataDog/fetch-out-bw/pkg/bandwidth/ticker"
	"github.com/DataDog/fetch-out-bw/pkg/config"
	"github.com/DataDog/fetch-out-bw/pkg/gateway"
	"github.com/DataDog/fetch-out-bw/pkg/snmp/session"
	"github.com/DataDog/fetch-out-bw/pkg/util/fxutil"
	"github.com/DataDog/fetch-out-bw/pkg/util/log"
)

// cliParams are the command-line arguments for this subcommand
type cliParams struct {
	*command.GlobalParams

	count   int
	delay   int
	forever bool
}

func (p *cliParams) rounds() int {
	if p.forever {
		return sampler.Forever
	}
	return p.count
}

func (p *cliParams) validate() error {
	if p.count < 0 {
		return fmt.Errorf("--count must not be negative, got %d", p.count)
	}
	if p.delay < 0 {
		return fmt.Errorf("--delay must not be negative, got %d", p.delay)
	}
	return nil
}

// Commands returns a slice of subcommands for the 'fetch-out-bw' command.
func Commands(globalParams *command.GlobalParams) []*cobra.Command {
	cliParams := &cliParams{
		GlobalParams: globalParams,
	}
	runCmd := &cobra.Command{
		Use:         "run",
		Short:       "Sample the gateways and print the total outbound Mbit/s per round",
		Long:        ``,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{command.DefaultAnnotation: "true"},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := cliParams.validate(); err != nil {
				return err
			}
			return fxutil.OneShot(run,
				fx.Supply(cliParams, cliParams.GlobalParams),
				command.Bundle(),
				fx.Provide(
					newSessionParams,
					newReader,
					newTicker,
					newReporter,
					newSampler,
				),
			)
		},
	}
	runCmd.Flags().IntVarP(&cliParams.count, "count", "c", 1, "number of rounds")
	runCmd.Flags().IntVarP(&cliParams.delay, "delay", "d", 30, "seconds between rounds")
	runCmd.Flags().BoolVar(&cliParams.forever, "forever", false, "run rounds until interrupted, ignoring --count")

	return []*cobra.Command{runCmd}
}

func newSessionParams(cfg config.Config) (session.Params, error) {
	return session.ParamsFromConfig(cfg)
}

func newReader(params session.Params) sampler.CounterReader {
	return counter.NewReader(params, clock.New())
}

func newTicker() sampler.Waiter {
	return ticker.New(clock.New(), os.Stderr)
}

func newReporter(lc fx.Lifecycle, params *cliParams, cfg config.Config) (report.Reporter, error) {
	reporters := report.Multi{report.NewConsole(os.Stdout, params.Debug)}

	if cfg.GetBool("dogstatsd.enabled") {
		s, err := report.NewStatsd(cfg.GetString("dogstatsd.addr"), cfg.GetString("dogstatsd.namespace"), cfg.GetStringSlice("dogstatsd.tags"))
		if err != nil {
			return nil, err
		}
		log.Infof("sending round results to dogstatsd at %s", cfg.GetString("dogstatsd.addr"))
		reporters = append(reporters, s)
	}
	if path := cfg.GetString("prometheus.textfile"); path != "" {
		log.Infof("writing round results to %s", path)
		reporters = append(reporters, report.NewTextfile(path))
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return reporters.Close()
		},
	})
	return reporters, nil
}

func newSampler(gateways []gateway.Gateway, reader sampler.CounterReader, waiter sampler.Waiter, reporter report.Reporter, params *cliParams) *sampler.Sampler {
	return sampler.New(gateways, reader, waiter, reporter, params.Quiet)
}

func run(params *cliParams, gateways []gateway.Gateway, s *sampler.Sampler) error {
	if params.Debug {
		printOptions(os.Stdout, params)
		printGateways(os.Stdout, gateways)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := s.Run(ctx, params.rounds(), params.delay)
	if errors.Is(err, context.Canceled) {
		return errors.New("interrupted before all rounds completed")
	}
	return err
}

func printOptions(w io.Writer, params *cliParams) {
	fmt.Fprintln(w, "Options:")
	fmt.Fprintf(w, "  quiet = %t\n", params.Quiet)
	fmt.Fprintf(w, "  debug = %t\n", params.Debug)
	fmt.Fprintf(w, "  count = %d\n", params.count)
	fmt.Fprintf(w, "  delay = %d\n", params.delay)
	fmt.Fprintf(w, "  forever = %t\n", params.forever)
	fmt.Fprintf(w, "  gateway_conf = %s\n", params.GatewaysPath)
}

func printGateways(w io.Writer, gateways []gateway.Gateway) {
	fmt.Fprintln(w, "Gateways:")
	for _, gw := range gateways {
		fmt.Fprintf(w, "  %s\n", gw)
	}
}
