// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

package fxutil

import (
	"reflect"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

// TestOneShotSubcommand checks that running the given command line against
// the subcommands reaches OneShot with expectedOneShotFunc, then resolves the
// options it was given and calls verifyFn with the resolved values.
//
// The command is not actually executed, only its fx wiring is.
func TestOneShotSubcommand(
	t *testing.T,
	subcommands []*cobra.Command,
	commandline []string,
	expectedOneShotFunc interface{},
	verifyFn interface{},
) {
	var oneShotCalled bool
	fxAppTestOverride = func(oneShotFunc interface{}, opts []fx.Option) error {
		oneShotCalled = true
		require.Equal(t,
			reflect.ValueOf(expectedOneShotFunc).Pointer(),
			reflect.ValueOf(oneShotFunc).Pointer(),
			"got a different OneShot function than expected")

		opts = append(opts, fx.Invoke(verifyFn), fx.NopLogger)
		return fx.New(opts...).Err()
	}
	defer func() { fxAppTestOverride = nil }()

	rootCmd := &cobra.Command{Use: "test", SilenceUsage: true}
	for _, c := range subcommands {
		rootCmd.AddCommand(c)
	}
	rootCmd.SetArgs(commandline)
	require.NoError(t, rootCmd.Execute())
	require.True(t, oneShotCalled, "fxutil.OneShot was not called")
}
