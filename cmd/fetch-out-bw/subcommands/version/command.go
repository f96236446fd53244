// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

// Package version implements 'fetch-out-bw version'.
package version

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/DataDog/fetch-out-bw/cmd/fetch-out-bw/command"
	"github.com/DataDog/fetch-out-bw/pkg/version"
)

// Commands returns a slice of subcommands for the 'fetch-out-bw' command.
func Commands(_ *command.GlobalParams) []*cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version info",
		Long:  ``,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			commit := ""
			if version.Commit != "" {
				commit = fmt.Sprintf("- Commit: %s ", color.GreenString(version.Commit))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "fetch-out-bw version %s %s- Go version: %s\n",
				color.CyanString(version.ToolVersion),
				commit,
				color.RedString(runtime.Version()),
			)
		},
	}
	return []*cobra.Command{versionCmd}
}
