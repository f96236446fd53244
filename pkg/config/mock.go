// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

package config

import (
	"strings"
	"sync"
	"testing"
)

var (
	isConfigMocked = false
	m              = sync.Mutex{}
)

// MockConfig should only be used in tests
type MockConfig struct {
	Config
}

// Mock swaps Settings for a fresh config holding only defaults and returns
// it. The previous Settings are restored when the test ends.
func Mock(t testing.TB) *MockConfig {
	m.Lock()
	defer m.Unlock()
	if isConfigMocked {
		t.Fatal("config.Mock called twice in the same test")
	}
	isConfigMocked = true

	original := Settings
	t.Cleanup(func() {
		m.Lock()
		defer m.Unlock()
		isConfigMocked = false
		Settings = original
	})

	c := NewConfig("fetch-out-bw", EnvPrefix, strings.NewReplacer(".", "_"))
	initConfig(c)
	Settings = c
	return &MockConfig{Config: c}
}
