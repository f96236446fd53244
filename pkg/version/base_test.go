// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert.Equal(t, "fetch-out-bw version "+toolVersionDefault, String())

	Commit = "abc1234"
	defer func() { Commit = "" }()
	assert.Equal(t, "fetch-out-bw version "+toolVersionDefault+" (commit abc1234)", String())
}
