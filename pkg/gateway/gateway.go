// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

// Package gateway loads the list of gateways to poll from a YAML file.
package gateway

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v2"

	"github.com/DataDog/fetch-out-bw/pkg/util/log"
)

// DefaultPath is where the gateway file is looked up when no path is given.
const DefaultPath = "./gateways.yml"

// ErrConfigUnreadable is returned when the gateway file is missing, not valid
// YAML, or holds invalid entries.
var ErrConfigUnreadable = errors.New("could not read gateway file")

// InterfaceID is an SNMP ifIndex. The file may spell it as a number or a
// string, both decode to the same value.
type InterfaceID string

// UnmarshalYAML accepts both `interface_id: 3` and `interface_id: "3"`.
func (i *InterfaceID) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case int:
		*i = InterfaceID(strconv.Itoa(v))
	case string:
		*i = InterfaceID(strings.TrimSpace(v))
	case nil:
		*i = ""
	default:
		return fmt.Errorf("interface_id must be an integer or a string, got %T", raw)
	}
	return nil
}

// Gateway is one polled interface. Values are immutable once loaded.
type Gateway struct {
	Name           string      `yaml:"name"`
	Host           string      `yaml:"host"`
	Community      string      `yaml:"snmp_community"`
	InterfaceID    InterfaceID `yaml:"interface_id"`
	InterfaceDescr string      `yaml:"interface_descr"`
}

// Address returns the network address to query, the gateway name when no
// host is configured.
func (g Gateway) Address() string {
	if g.Host != "" {
		return g.Host
	}
	return g.Name
}

// String is safe to log: the community is masked.
func (g Gateway) String() string {
	return fmt.Sprintf("%s (host=%s if=%s descr=%q community=********)", g.Name, g.Address(), g.InterfaceID, g.InterfaceDescr)
}

type fileContent struct {
	Gateways []Gateway `yaml:"gateways"`
}

// Load reads and validates the gateway file at path. The returned slice keeps
// the file order, which is the polling order.
func Load(path string) ([]Gateway, error) {
	return LoadFs(afero.NewOsFs(), path)
}

// LoadFs is Load on the given filesystem.
func LoadFs(fs afero.Fs, path string) ([]Gateway, error) {
	raw, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrConfigUnreadable, path, err)
	}
	gateways, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrConfigUnreadable, path, err)
	}
	log.Debugf("loaded %d gateway(s) from %s", len(gateways), path)
	return gateways, nil
}

// Parse decodes and validates gateway file content.
func Parse(raw []byte) ([]Gateway, error) {
	var content fileContent
	if err := yaml.Unmarshal(raw, &content); err != nil {
		return nil, err
	}
	if err := validate(content.Gateways); err != nil {
		return nil, err
	}
	var communities []string
	for _, gw := range content.Gateways {
		communities = append(communities, gw.Community)
	}
	log.AddStrippedValues(communities)
	return content.Gateways, nil
}

func validate(gateways []Gateway) error {
	if len(gateways) == 0 {
		return errors.New("no gateways configured")
	}
	var result *multierror.Error
	seen := make(map[string]bool, len(gateways))
	for i, gw := range gateways {
		if gw.Name == "" {
			result = multierror.Append(result, fmt.Errorf("gateway #%d: `name` is required", i+1))
			continue
		}
		if seen[gw.Name] {
			result = multierror.Append(result, fmt.Errorf("gateway %s: duplicate name", gw.Name))
		}
		seen[gw.Name] = true
		if gw.Community == "" {
			result = multierror.Append(result, fmt.Errorf("gateway %s: `snmp_community` is required", gw.Name))
		}
		if gw.InterfaceID == "" {
			result = multierror.Append(result, fmt.Errorf("gateway %s: `interface_id` is required", gw.Name))
		} else if _, err := strconv.ParseUint(string(gw.InterfaceID), 10, 32); err != nil {
			result = multierror.Append(result, fmt.Errorf("gateway %s: `interface_id` must be a positive integer, got %q", gw.Name, gw.InterfaceID))
		}
		if gw.InterfaceDescr == "" {
			result = multierror.Append(result, fmt.Errorf("gateway %s: `interface_descr` is required", gw.Name))
		}
	}
	return result.ErrorOrNil()
}
