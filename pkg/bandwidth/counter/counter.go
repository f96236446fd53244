// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

// Package counter reads a gateway's interface output-octet counter over SNMP.
package counter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/cihub/seelog"
	"github.com/gosnmp/gosnmp"

	"github.com/DataDog/fetch-out-bw/pkg/gateway"
	"github.com/DataDog/fetch-out-bw/pkg/snmp/gosnmplib"
	"github.com/DataDog/fetch-out-bw/pkg/snmp/session"
	"github.com/DataDog/fetch-out-bw/pkg/util/log"
)

// IF-MIB column OIDs, the ifIndex is appended.
const (
	IfDescrOID       = "1.3.6.1.2.1.2.2.1.2"
	IfHCOutOctetsOID = "1.3.6.1.2.1.31.1.1.1.10"
	IfSpeedOID       = "1.3.6.1.2.1.2.2.1.5"
)

// Sample is one timestamped reading of a gateway's counters.
type Sample struct {
	Timestamp time.Time
	Octets    uint64
	// Speed is ifSpeed in bits per second, zero when unknown.
	Speed uint64
	Descr string
}

// OIDs returns the three instance OIDs queried for an interface.
func OIDs(id gateway.InterfaceID) []string {
	return []string{
		IfDescrOID + "." + string(id),
		IfHCOutOctetsOID + "." + string(id),
		IfSpeedOID + "." + string(id),
	}
}

// Reader queries gateways. It opens a new session for every read.
type Reader struct {
	params session.Params
	clock  clock.Clock
}

// NewReader returns a Reader using the given transport settings and clock.
func NewReader(params session.Params, clk clock.Clock) *Reader {
	return &Reader{params: params, clock: clk}
}

// ReadCounter performs one GET against the gateway and validates the answer.
// Failures are *ReadError values, except a cancelled ctx which is returned
// unchanged.
func (r *Reader) ReadCounter(ctx context.Context, gw gateway.Gateway) (Sample, error) {
	if err := ctx.Err(); err != nil {
		return Sample{}, err
	}

	sess, err := session.NewSession(gw, r.params)
	if err != nil {
		return Sample{}, newReadError(gw.Name, ErrTransport, err)
	}
	if err := sess.Connect(); err != nil {
		return Sample{}, newReadError(gw.Name, ErrTransport, fmt.Errorf("snmp connection error: %w", err))
	}
	defer func() {
		if err := sess.Close(); err != nil {
			log.Debugf("gateway %s: failed to close session: %v", gw.Name, err)
		}
	}()

	timestamp := r.clock.Now()
	oids := OIDs(gw.InterfaceID)
	packet, err := sess.Get(oids)
	if err != nil {
		return Sample{}, newReadError(gw.Name, ErrTransport, fmt.Errorf("snmp get error: %w", err))
	}
	if packet == nil {
		return Sample{}, newReadError(gw.Name, ErrTransport, errors.New("empty snmp response"))
	}
	log.Tracef("gateway %s: response %s", gw.Name, gosnmplib.PacketAsStringIfLoglevel(packet, seelog.TraceLvl))
	if packet.Error != gosnmp.NoError {
		return Sample{}, newReadError(gw.Name, ErrTransport, fmt.Errorf("agent returned error-status %s at index %d", packet.Error, packet.ErrorIndex))
	}

	sample, err := parsePacket(gw, oids, packet)
	if err != nil {
		return Sample{}, err
	}
	sample.Timestamp = timestamp
	return sample, nil
}

func parsePacket(gw gateway.Gateway, oids []string, packet *gosnmp.SnmpPacket) (Sample, error) {
	var (
		sample      Sample
		descrFound  bool
		octetsFound bool
	)
	for _, pdu := range packet.Variables {
		switch gosnmplib.NormalizeOID(pdu.Name) {
		case oids[0]:
			descr, err := gosnmplib.StringValue(pdu)
			if err != nil && !errors.Is(err, gosnmplib.ErrNoValue) {
				return Sample{}, newReadError(gw.Name, ErrTransport, err)
			}
			sample.Descr = descr
			descrFound = err == nil
		case oids[1]:
			octets, err := gosnmplib.Uint64Value(pdu)
			if err != nil && !errors.Is(err, gosnmplib.ErrNoValue) {
				return Sample{}, newReadError(gw.Name, ErrTransport, err)
			}
			sample.Octets = octets
			octetsFound = err == nil
		case oids[2]:
			speed, err := gosnmplib.Uint64Value(pdu)
			if err != nil {
				log.Debugf("gateway %s: ifSpeed unavailable: %v", gw.Name, err)
			}
			sample.Speed = speed
		}
	}

	if !descrFound || !strings.Contains(sample.Descr, gw.InterfaceDescr) {
		return Sample{}, newReadError(gw.Name, ErrDescriptionMismatch,
			fmt.Errorf("ifDescr.%s is %q, expected it to contain %q", gw.InterfaceID, sample.Descr, gw.InterfaceDescr))
	}
	// a zero counter cannot be told apart from an agent that does not
	// implement ifHCOutOctets
	if !octetsFound || sample.Octets == 0 {
		return Sample{}, newReadError(gw.Name, ErrInvalidCounterReading,
			fmt.Errorf("ifHCOutOctets.%s is zero or missing", gw.InterfaceID))
	}
	return sample, nil
}
