// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

// Package version defines the version of fetch-out-bw
package version

import "fmt"

// ToolVersion contains the version of fetch-out-bw.
// It is populated at build time using -ldflags "-X".
var ToolVersion string

// Commit is populated with the short commit hash from which the tool was built
var Commit string

var toolVersionDefault = "0.0.3"

func init() {
	if ToolVersion == "" {
		ToolVersion = toolVersionDefault
	}
}

// String renders the version line printed by the version flag and command.
func String() string {
	if Commit != "" {
		return fmt.Sprintf("fetch-out-bw version %s (commit %s)", ToolVersion, Commit)
	}
	return fmt.Sprintf("fetch-out-bw version %s", ToolVersion)
}
