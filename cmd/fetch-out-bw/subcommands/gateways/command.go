// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

// Package gateways implements 'fetch-out-bw gateways'.
package gateways

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/benbjohnson/clock"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/DataDog/fetch-out-bw/cmd/fetch-out-bw/command"
	"github.com/DataDog/fetch-out-bw/pkg/bandwidth/counter"
	"github.com/DataDog/fetch-out-bw/pkg/config"
	"github.com/DataDog/fetch-out-bw/pkg/gateway"
	"github.com/DataDog/fetch-out-bw/pkg/snmp/session"
	"github.com/DataDog/fetch-out-bw/pkg/util/fxutil"
)

// cliParams are the command-line arguments for this subcommand
type cliParams struct {
	*command.GlobalParams

	probe bool
}

// Commands returns a slice of subcommands for the 'fetch-out-bw' command.
func Commands(globalParams *command.GlobalParams) []*cobra.Command {
	cliParams := &cliParams{
		GlobalParams: globalParams,
	}
	gatewaysCmd := &cobra.Command{
		Use:   "gateways",
		Short: "Validate and print the gateway list",
		Long:  `Validate the gateway list and print it with communities masked. With --probe, read every gateway's counter once.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return fxutil.OneShot(listGateways,
				fx.Supply(cliParams, cliParams.GlobalParams),
				command.Bundle(),
			)
		},
	}
	gatewaysCmd.Flags().BoolVar(&cliParams.probe, "probe", false, "read each gateway's counter once")

	return []*cobra.Command{gatewaysCmd}
}

func listGateways(params *cliParams, cfg config.Config, gateways []gateway.Gateway) error {
	if !params.probe {
		printTable(os.Stdout, gateways, nil)
		return nil
	}
	sessionParams, err := session.ParamsFromConfig(cfg)
	if err != nil {
		return err
	}
	results := probe(context.Background(), counter.NewReader(sessionParams, clock.New()), gateways)
	printTable(os.Stdout, gateways, results)

	var failed int
	for _, r := range results {
		if r.err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d gateway(s) did not answer correctly", failed, len(gateways))
	}
	return nil
}

type probeResult struct {
	sample counter.Sample
	err    error
}

type reader interface {
	ReadCounter(ctx context.Context, gw gateway.Gateway) (counter.Sample, error)
}

// probe reads every gateway once and keeps going after failures.
func probe(ctx context.Context, r reader, gateways []gateway.Gateway) []probeResult {
	results := make([]probeResult, 0, len(gateways))
	for _, gw := range gateways {
		sample, err := r.ReadCounter(ctx, gw)
		results = append(results, probeResult{sample: sample, err: err})
	}
	return results
}

func printTable(w io.Writer, gateways []gateway.Gateway, results []probeResult) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	header := []string{"Name", "Address", "Interface", "Description", "Community"}
	if results != nil {
		header = append(header, "ifDescr", "ifHCOutOctets", "ifSpeed", "Status")
	}
	table.SetHeader(header)

	for i, gw := range gateways {
		row := []string{gw.Name, gw.Address(), string(gw.InterfaceID), gw.InterfaceDescr, "********"}
		if results != nil {
			row = append(row, probeColumns(results[i])...)
		}
		table.Append(row)
	}
	table.Render()
}

func probeColumns(r probeResult) []string {
	if r.err != nil {
		status := "failed"
		var readErr *counter.ReadError
		if errors.As(r.err, &readErr) {
			status = readErr.Kind.Error()
		}
		return []string{"", "", "", color.RedString(status)}
	}
	speed := "unknown"
	if r.sample.Speed > 0 {
		speed = humanize.SIWithDigits(float64(r.sample.Speed), 0, "bit/s")
	}
	return []string{r.sample.Descr, strconv.FormatUint(r.sample.Octets, 10), speed, color.GreenString("ok")}
}
