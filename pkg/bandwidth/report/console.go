// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/DataDog/fetch-out-bw/pkg/bandwidth/rate"
)

// Console prints the round total in Mbit/s, one line per round. In debug mode
// it first prints the per-gateway deltas and a summary table.
type Console struct {
	out   io.Writer
	debug bool
}

// NewConsole returns a Console writing to out.
func NewConsole(out io.Writer, debug bool) *Console {
	return &Console{out: out, debug: debug}
}

// Report implements Reporter.
func (c *Console) Report(round Round) error {
	if c.debug {
		for _, gw := range round.Gateways {
			if gw.Rate.Idle() {
				fmt.Fprintf(c.out, "delta of %s is 0\n", gw.Name)
			}
			fmt.Fprintf(c.out, "%s has a delta of %d in a time delta %s: %d octets per second\n",
				gw.Name, gw.Rate.OctetDelta, gw.Rate.Elapsed, int64(gw.Rate.OctetsPerSecond))
		}
		c.renderTable(round)
	}
	if _, err := fmt.Fprintf(c.out, "%d\n", round.Mbps); err != nil {
		return fmt.Errorf("%w: %w", ErrResultNotWritten, err)
	}
	return nil
}

func (c *Console) renderTable(round Round) {
	table := tablewriter.NewWriter(c.out)
	table.SetHeader([]string{"Gateway", "Delta", "Interval", "Rate", "Utilization"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for _, gw := range round.Gateways {
		utilization := "n/a"
		if u, ok := rate.Utilization(gw.Rate.OctetsPerSecond, gw.Speed); ok {
			utilization = fmt.Sprintf("%.2f%% of %s", u, humanize.SIWithDigits(float64(gw.Speed), 0, "bit/s"))
		}
		table.Append([]string{
			gw.Name,
			humanize.Comma(int64(gw.Rate.OctetDelta)),
			gw.Rate.Elapsed.String(),
			humanize.SIWithDigits(gw.Rate.OctetsPerSecond*8, 2, "bit/s"),
			utilization,
		})
	}
	table.SetFooter([]string{"Total", "", "", humanize.SIWithDigits(round.TotalOctetsPerSecond*8, 2, "bit/s"), ""})
	table.Render()
}

// Close implements Reporter.
func (c *Console) Close() error {
	return nil
}
