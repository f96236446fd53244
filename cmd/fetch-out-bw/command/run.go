// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

package command

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/DataDog/fetch-out-bw/pkg/util/log"
)

// Run executes cmd and returns the process exit status. Errors are printed
// in red on stderr.
func Run(cmd *cobra.Command) int {
	return run(cmd, color.Error)
}

func run(cmd *cobra.Command, stderr io.Writer) int {
	err := cmd.Execute()
	log.Flush()
	if err == nil {
		return 0
	}
	fmt.Fprintln(stderr, color.RedString("Error: %v", err))
	fmt.Fprintf(stderr, "See '%s --help'.\n", cmd.Root().Name())
	return 1
}
