// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

// Command fetch-out-bw reports the total outbound bandwidth of a set of
// gateways.
package main

import (
	"os"

	"github.com/DataDog/fetch-out-bw/cmd/fetch-out-bw/command"
	"github.com/DataDog/fetch-out-bw/cmd/fetch-out-bw/subcommands"
)

func main() {
	os.Exit(command.Run(command.MakeCommand(subcommands.FetchOutBWSubcommands())))
}
