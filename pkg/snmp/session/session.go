// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

// Package session wraps a gosnmp client behind a small interface so the
// counter reader can be tested against a mock agent.
package session

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/cihub/seelog"
	"github.com/gosnmp/gosnmp"

	"github.com/DataDog/fetch-out-bw/pkg/config"
	"github.com/DataDog/fetch-out-bw/pkg/gateway"
	"github.com/DataDog/fetch-out-bw/pkg/util/log"
)

// Session interface for connecting to a snmp device
type Session interface {
	Connect() error
	Close() error
	Get(oids []string) (result *gosnmp.SnmpPacket, err error)
}

// Params holds the transport settings shared by every gateway.
type Params struct {
	Port    uint16
	Version gosnmp.SnmpVersion
	Timeout time.Duration
	Retries int
}

// ParamsFromConfig reads the snmp.* settings.
func ParamsFromConfig(cfg config.Config) (Params, error) {
	version, err := BuildVersion(cfg.GetString("snmp.version"))
	if err != nil {
		return Params{}, err
	}
	port := cfg.GetInt("snmp.port")
	if port <= 0 || port > 65535 {
		return Params{}, fmt.Errorf("invalid snmp.port %d", port)
	}
	return Params{
		Port:    uint16(port),
		Version: version,
		Timeout: config.SNMPTimeout(cfg),
		Retries: cfg.GetInt("snmp.retries"),
	}, nil
}

// GosnmpSession is used to connect to a snmp device
type GosnmpSession struct {
	gosnmpInst gosnmp.GoSNMP
}

// Connect is used to create a new connection
func (s *GosnmpSession) Connect() error {
	return s.gosnmpInst.Connect()
}

// Close is used to close the connection
func (s *GosnmpSession) Close() error {
	if s.gosnmpInst.Conn == nil {
		return nil
	}
	return s.gosnmpInst.Conn.Close()
}

// Get will send a SNMPGET command
func (s *GosnmpSession) Get(oids []string) (result *gosnmp.SnmpPacket, err error) {
	return s.gosnmpInst.Get(oids)
}

// NewGosnmpSession creates a new session to the gateway's SNMP agent.
// A `host:port` address overrides the configured port.
func NewGosnmpSession(gw gateway.Gateway, params Params) (Session, error) {
	host, port, err := splitAddress(gw.Address(), params.Port)
	if err != nil {
		return nil, fmt.Errorf("gateway %s: %w", gw.Name, err)
	}
	s := &GosnmpSession{}
	s.gosnmpInst = gosnmp.GoSNMP{
		Target:    host,
		Port:      port,
		Transport: "udp",
		Community: gw.Community,
		Version:   params.Version,
		Timeout:   params.Timeout,
		Retries:   params.Retries,
		MaxOids:   gosnmp.MaxOids,
	}

	if log.ShouldLog(seelog.TraceLvl) {
		s.gosnmpInst.Logger = gosnmp.NewLogger(&traceLogger{})
	}
	return s, nil
}

func splitAddress(address string, defaultPort uint16) (string, uint16, error) {
	host, rawPort, err := net.SplitHostPort(address)
	if err != nil {
		// no port in the address
		return address, defaultPort, nil
	}
	port, err := strconv.ParseUint(rawPort, 10, 16)
	if err != nil || port == 0 {
		return "", 0, fmt.Errorf("invalid port in address %q", address)
	}
	return host, uint16(port), nil
}

// NewSession is a variable to allow tests to swap in a mock session
var NewSession = NewGosnmpSession

// traceLogger routes gosnmp's packet traces to the trace log level.
type traceLogger struct{}

func (x *traceLogger) Print(v ...interface{}) {
	log.Trace(v...)
}

func (x *traceLogger) Printf(format string, v ...interface{}) {
	log.Tracef(format, v...)
}

// BuildVersion returns a GoSNMP version value from a string value.
func BuildVersion(value string) (gosnmp.SnmpVersion, error) {
	switch value {
	case "1":
		return gosnmp.Version1, nil
	case "2", "2c", "":
		return gosnmp.Version2c, nil
	default:
		return 0, fmt.Errorf("unsupported snmp version: '%s' (possible values are '1' and '2c')", value)
	}
}
