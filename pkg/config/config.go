// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

// Package config holds the process-wide settings of fetch-out-bw.
//
// Settings come, in increasing priority, from the defaults registered in
// initConfig, an optional YAML settings file and FETCHOUTBW_* environment
// variables. The gateway list is not part of these settings, see pkg/gateway.
package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/DataDog/viper"

	"github.com/DataDog/fetch-out-bw/pkg/util/log"
)

// EnvPrefix is the prefix of every environment variable read by the settings.
const EnvPrefix = "FETCHOUTBW"

// Settings is the global configuration object
var Settings Config

// Config wraps viper with a safety lock.
type Config interface {
	GetString(key string) string
	GetStringSlice(key string) []string
	GetInt(key string) int
	GetBool(key string) bool
	GetDuration(key string) time.Duration
	IsSet(key string) bool
	Set(key string, value interface{})
	SetConfigFile(path string)
	ReadInConfig() error
	BindEnvAndSetDefault(key string, value interface{})
	AllSettings() map[string]interface{}
}

type safeConfig struct {
	*viper.Viper
	sync.RWMutex
	envPrefix      string
	envKeyReplacer *strings.Replacer
}

// NewConfig returns a new Config object.
func NewConfig(name string, envPrefix string, envKeyReplacer *strings.Replacer) Config {
	c := &safeConfig{
		Viper:          viper.New(),
		envPrefix:      envPrefix,
		envKeyReplacer: envKeyReplacer,
	}
	c.Viper.SetConfigName(name)
	c.Viper.SetConfigType("yaml")
	c.Viper.SetEnvPrefix(envPrefix)
	c.Viper.SetEnvKeyReplacer(envKeyReplacer)
	c.Viper.SetTypeByDefaultValue(true)
	return c
}

func init() {
	Settings = NewConfig("fetch-out-bw", EnvPrefix, strings.NewReplacer(".", "_"))
	initConfig(Settings)
}

// initConfig initializes the config defaults on a config
func initConfig(config Config) {
	config.BindEnvAndSetDefault("log_level", "info")
	config.BindEnvAndSetDefault("log_file", "")

	// SNMP session
	config.BindEnvAndSetDefault("snmp.port", 161)
	config.BindEnvAndSetDefault("snmp.version", "2c")
	config.BindEnvAndSetDefault("snmp.timeout", 5)
	config.BindEnvAndSetDefault("snmp.retries", 0)

	// Extra round sinks, all off by default
	config.BindEnvAndSetDefault("dogstatsd.enabled", false)
	config.BindEnvAndSetDefault("dogstatsd.addr", "localhost:8125")
	config.BindEnvAndSetDefault("dogstatsd.namespace", "fetch_out_bw.")
	config.BindEnvAndSetDefault("dogstatsd.tags", []string{})
	config.BindEnvAndSetDefault("prometheus.textfile", "")
}

// BindEnvAndSetDefault sets the default value for a config parameter, and
// adds an env binding so FETCHOUTBW_<KEY> overrides it.
func (c *safeConfig) BindEnvAndSetDefault(key string, value interface{}) {
	c.Lock()
	defer c.Unlock()
	envKey := c.envPrefix + "_" + strings.ToUpper(c.envKeyReplacer.Replace(key))
	c.Viper.SetDefault(key, value)
	c.Viper.BindEnv(key, envKey) //nolint:errcheck
}

func (c *safeConfig) Set(key string, value interface{}) {
	c.Lock()
	defer c.Unlock()
	c.Viper.Set(key, value)
}

func (c *safeConfig) SetConfigFile(path string) {
	c.Lock()
	defer c.Unlock()
	c.Viper.SetConfigFile(path)
}

func (c *safeConfig) ReadInConfig() error {
	c.Lock()
	defer c.Unlock()
	return c.Viper.ReadInConfig()
}

func (c *safeConfig) IsSet(key string) bool {
	c.RLock()
	defer c.RUnlock()
	return c.Viper.IsSet(key)
}

func (c *safeConfig) GetString(key string) string {
	c.RLock()
	defer c.RUnlock()
	return c.Viper.GetString(key)
}

func (c *safeConfig) GetStringSlice(key string) []string {
	c.RLock()
	defer c.RUnlock()
	return c.Viper.GetStringSlice(key)
}

func (c *safeConfig) GetInt(key string) int {
	c.RLock()
	defer c.RUnlock()
	return c.Viper.GetInt(key)
}

func (c *safeConfig) GetBool(key string) bool {
	c.RLock()
	defer c.RUnlock()
	return c.Viper.GetBool(key)
}

func (c *safeConfig) GetDuration(key string) time.Duration {
	c.RLock()
	defer c.RUnlock()
	return c.Viper.GetDuration(key)
}

func (c *safeConfig) AllSettings() map[string]interface{} {
	c.RLock()
	defer c.RUnlock()
	return c.Viper.AllSettings()
}

// Load reads the optional settings file at path into Settings and validates
// the result. An empty path keeps defaults and environment only.
func Load(path string) error {
	return load(Settings, path)
}

func load(config Config, path string) error {
	if path == "" {
		log.Debugf("no settings file given, using defaults and %s_* environment", EnvPrefix)
		return validate(config)
	}
	config.SetConfigFile(path)
	if err := config.ReadInConfig(); err != nil {
		return fmt.Errorf("unable to load settings file %s: %w", path, err)
	}
	log.Infof("settings loaded from %s", path)
	return validate(config)
}

func validate(config Config) error {
	if port := config.GetInt("snmp.port"); port <= 0 || port > 65535 {
		return fmt.Errorf("snmp.port must be between 1 and 65535, got %d", port)
	}
	if config.GetInt("snmp.timeout") <= 0 {
		return fmt.Errorf("snmp.timeout must be a positive number of seconds, got %d", config.GetInt("snmp.timeout"))
	}
	if config.GetInt("snmp.retries") < 0 {
		return fmt.Errorf("snmp.retries cannot be negative, got %d", config.GetInt("snmp.retries"))
	}
	return nil
}

// SNMPTimeout returns the per-request SNMP timeout.
func SNMPTimeout(config Config) time.Duration {
	return time.Duration(config.GetInt("snmp.timeout")) * time.Second
}
