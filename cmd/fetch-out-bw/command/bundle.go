// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

package command

import (
	"go.uber.org/fx"

	"github.com/DataDog/fetch-out-bw/pkg/config"
	"github.com/DataDog/fetch-out-bw/pkg/gateway"
)

// Bundle provides the settings, sets up logging and loads the gateway list.
// It expects a *GlobalParams in the app.
func Bundle() fx.Option {
	return fx.Options(
		fx.Provide(newSettings),
		fx.Provide(loadGateways),
		fx.Invoke(setupLogger),
	)
}

func newSettings(params *GlobalParams) (config.Config, error) {
	if err := config.Load(params.ConfFilePath); err != nil {
		return nil, err
	}
	return config.Settings, nil
}

// LogLevel returns the effective log level: --debug wins, --quiet keeps
// errors only.
func LogLevel(params *GlobalParams, cfg config.Config) string {
	switch {
	case params.Debug:
		return "debug"
	case params.Quiet:
		return "error"
	}
	return cfg.GetString("log_level")
}

func setupLogger(params *GlobalParams, cfg config.Config) error {
	return config.SetupLogger(LogLevel(params, cfg), cfg.GetString("log_file"))
}

func loadGateways(params *GlobalParams) ([]gateway.Gateway, error) {
	return gateway.Load(params.GatewaysPath)
}
