// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

// Package subcommands lists the fetch-out-bw subcommands.
package subcommands

import (
	"github.com/DataDog/fetch-out-bw/cmd/fetch-out-bw/command"
	cmdgateways "github.com/DataDog/fetch-out-bw/cmd/fetch-out-bw/subcommands/gateways"
	cmdrun "github.com/DataDog/fetch-out-bw/cmd/fetch-out-bw/subcommands/run"
	cmdversion "github.com/DataDog/fetch-out-bw/cmd/fetch-out-bw/subcommands/version"
)

// FetchOutBWSubcommands returns SubcommandFactories for the subcommands
// supported by fetch-out-bw.
func FetchOutBWSubcommands() []command.SubcommandFactory {
	return []command.SubcommandFactory{
		cmdrun.Commands,
		cmdversion.Commands,
		cmdgateways.Commands,
	}
}
