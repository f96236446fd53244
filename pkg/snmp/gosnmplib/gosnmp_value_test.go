// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

package gosnmplib

import (
	"testing"

	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeOID(t *testing.T) {
	assert.Equal(t, "1.3.6.1.2.1.2.2.1.2.3", NormalizeOID(".1.3.6.1.2.1.2.2.1.2.3"))
	assert.Equal(t, "1.3.6.1.2.1.2.2.1.2.3", NormalizeOID("1.3.6.1.2.1.2.2.1.2.3"))
}

func TestStringValue(t *testing.T) {
	value, err := StringValue(gosnmp.SnmpPDU{Name: ".1.3.6.1.2.1.2.2.1.2.3", Type: gosnmp.OctetString, Value: []byte("WAN uplink")})
	require.NoError(t, err)
	assert.Equal(t, "WAN uplink", value)

	_, err = StringValue(gosnmp.SnmpPDU{Name: ".1.3.6.1.2.1.2.2.1.2.3", Type: gosnmp.NoSuchInstance})
	assert.ErrorIs(t, err, ErrNoValue)

	_, err = StringValue(gosnmp.SnmpPDU{Name: ".1.3.6.1.2.1.2.2.1.2.3", Type: gosnmp.Integer, Value: 3})
	assert.ErrorContains(t, err, "expected a string")
}

func TestUint64Value(t *testing.T) {
	tests := []struct {
		name     string
		pdu      gosnmp.SnmpPDU
		expected uint64
	}{
		{"counter64", gosnmp.SnmpPDU{Type: gosnmp.Counter64, Value: uint64(18446744073709551000)}, 18446744073709551000},
		{"counter32", gosnmp.SnmpPDU{Type: gosnmp.Counter32, Value: uint(4000000000)}, 4000000000},
		{"gauge32", gosnmp.SnmpPDU{Type: gosnmp.Gauge32, Value: uint(1000000000)}, 1000000000},
		{"integer", gosnmp.SnmpPDU{Type: gosnmp.Integer, Value: 42}, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := Uint64Value(tt.pdu)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestUint64ValueErrors(t *testing.T) {
	_, err := Uint64Value(gosnmp.SnmpPDU{Type: gosnmp.NoSuchObject})
	assert.ErrorIs(t, err, ErrNoValue)

	_, err = Uint64Value(gosnmp.SnmpPDU{Type: gosnmp.Integer, Value: -1})
	assert.ErrorContains(t, err, "does not fit")

	_, err = Uint64Value(gosnmp.SnmpPDU{Type: gosnmp.OctetString, Value: []byte("12")})
	assert.ErrorContains(t, err, "expected a numeric value")
}

func TestPacketAsString(t *testing.T) {
	packet := &gosnmp.SnmpPacket{
		Variables: []gosnmp.SnmpPDU{
			{Name: ".1.3.6.1.2.1.2.2.1.2.3", Type: gosnmp.OctetString, Value: []byte("WAN")},
			{Name: ".1.3.6.1.2.1.31.1.1.1.10.3", Type: gosnmp.Counter64, Value: uint64(123)},
			{Name: ".1.3.6.1.2.1.2.2.1.5.3", Type: gosnmp.NoSuchInstance},
		},
	}
	out := PacketAsString(packet)
	assert.Contains(t, out, "error=NoError(code:0, idx:0)")
	assert.Contains(t, out, `{"oid":"1.3.6.1.2.1.2.2.1.2.3","type":"OctetString","value":"WAN"}`)
	assert.Contains(t, out, `{"oid":"1.3.6.1.2.1.31.1.1.1.10.3","type":"Counter64","value":"123"}`)
	assert.Contains(t, out, `"parse_err":"`+"`no value`"+`"`)

	assert.Equal(t, "", PacketAsStringIfLoglevel(nil, 0))
}
