// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

// Package command implements the root of the fetch-out-bw command tree.
package command

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/DataDog/fetch-out-bw/pkg/gateway"
	"github.com/DataDog/fetch-out-bw/pkg/version"
)

// DefaultAnnotation marks the subcommand the root command runs when invoked
// without one.
const DefaultAnnotation = "fetch-out-bw/default"

// GlobalParams contains the values of fetch-out-bw-global Cobra flags.
//
// A pointer to this type is passed to SubcommandFactory's, but its contents
// are not valid until Cobra calls the subcommand's Run or RunE function.
type GlobalParams struct {
	// GatewaysPath is the path of the gateway list.
	GatewaysPath string

	// ConfFilePath is the optional settings file.
	ConfFilePath string

	Quiet   bool
	Debug   bool
	NoColor bool
}

// SubcommandFactory is a callable that will return a slice of subcommands.
type SubcommandFactory func(globalParams *GlobalParams) []*cobra.Command

// MakeCommand makes the top-level Cobra command for this app.
func MakeCommand(subcommandFactories []SubcommandFactory) *cobra.Command {
	globalParams := GlobalParams{}

	cmd := &cobra.Command{
		Use:   "fetch-out-bw [command]",
		Short: "Report the total outbound bandwidth of a set of gateways",
		Long: `fetch-out-bw polls the ifHCOutOctets counter of one interface on each
configured gateway over SNMP and prints their summed outbound rate in Mbit/s,
once per round.`,
		Version:       version.String(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if globalParams.NoColor {
				color.NoColor = true
			}
			// debug output replaces the countdown
			if globalParams.Debug {
				globalParams.Quiet = false
			}
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.PersistentFlags().StringVarP(&globalParams.GatewaysPath, "gateways", "g", gateway.DefaultPath, "path to the gateway list")
	cmd.PersistentFlags().StringVar(&globalParams.ConfFilePath, "cfgpath", "", "path to an optional settings file")
	cmd.PersistentFlags().BoolVarP(&globalParams.Quiet, "quiet", "q", false, "do not print the countdown between rounds")
	cmd.PersistentFlags().BoolVarP(&globalParams.Debug, "debug", "u", false, "print per-gateway deltas and debug logs")
	cmd.PersistentFlags().BoolVar(&globalParams.NoColor, "no-color", false, "disable color output")

	for _, sf := range subcommandFactories {
		for _, subcmd := range sf(&globalParams) {
			if subcmd.Annotations[DefaultAnnotation] == "true" {
				if cmd.RunE != nil {
					panic(fmt.Sprintf("two default subcommands: %s", subcmd.Name()))
				}
				cmd.RunE = subcmd.RunE
				cmd.Flags().AddFlagSet(subcmd.Flags())
			}
			cmd.AddCommand(subcmd)
		}
	}

	return cmd
}
