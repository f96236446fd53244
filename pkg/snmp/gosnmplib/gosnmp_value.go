// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

// Package gosnmplib decodes gosnmp PDUs into plain Go values.
package gosnmplib

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gosnmp/gosnmp"
)

// ErrNoValue is returned for PDUs the agent answered without a value
// (noSuchObject, noSuchInstance, endOfMibView or NULL).
var ErrNoValue = errors.New("no value")

// NormalizeOID strips the leading dot gosnmp puts on response names.
func NormalizeOID(oid string) string {
	return strings.TrimPrefix(oid, ".")
}

func hasNoValue(pdu gosnmp.SnmpPDU) bool {
	switch pdu.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView, gosnmp.Null:
		return true
	}
	return pdu.Value == nil
}

// StringValue returns the value of an OctetString PDU.
func StringValue(pdu gosnmp.SnmpPDU) (string, error) {
	if hasNoValue(pdu) {
		return "", fmt.Errorf("oid %s: %w (%v)", NormalizeOID(pdu.Name), ErrNoValue, pdu.Type)
	}
	switch v := pdu.Value.(type) {
	case []byte:
		return string(v), nil
	case string:
		return v, nil
	}
	return "", fmt.Errorf("oid %s: expected a string, got %v (%T)", NormalizeOID(pdu.Name), pdu.Type, pdu.Value)
}

// Uint64Value returns the value of a counter, gauge or integer PDU.
func Uint64Value(pdu gosnmp.SnmpPDU) (uint64, error) {
	if hasNoValue(pdu) {
		return 0, fmt.Errorf("oid %s: %w (%v)", NormalizeOID(pdu.Name), ErrNoValue, pdu.Type)
	}
	switch pdu.Type {
	case gosnmp.Counter64, gosnmp.Counter32, gosnmp.Gauge32, gosnmp.Uinteger32, gosnmp.TimeTicks, gosnmp.Integer:
		value := gosnmp.ToBigInt(pdu.Value)
		if value.Sign() < 0 || !value.IsUint64() {
			return 0, fmt.Errorf("oid %s: value %s does not fit an unsigned 64-bit counter", NormalizeOID(pdu.Name), value)
		}
		return value.Uint64(), nil
	}
	return 0, fmt.Errorf("oid %s: expected a numeric value, got %v", NormalizeOID(pdu.Name), pdu.Type)
}

// valueAsString renders any PDU value for debug output.
func valueAsString(pdu gosnmp.SnmpPDU) (string, error) {
	switch pdu.Type {
	case gosnmp.OctetString:
		return StringValue(pdu)
	case gosnmp.Counter64, gosnmp.Counter32, gosnmp.Gauge32, gosnmp.Uinteger32, gosnmp.TimeTicks, gosnmp.Integer:
		v, err := Uint64Value(pdu)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d", v), nil
	}
	if hasNoValue(pdu) {
		return "", ErrNoValue
	}
	return fmt.Sprintf("%v", pdu.Value), nil
}
