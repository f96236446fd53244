// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

package counter

import (
	"errors"
	"fmt"
)

// ErrNoValidResponse matches every failure of a counter read.
var ErrNoValidResponse = errors.New("no valid SNMP response")

type readKind struct {
	msg string
}

func (k *readKind) Error() string { return k.msg }

func (k *readKind) Is(target error) bool { return target == ErrNoValidResponse }

var (
	// ErrTransport covers connection failures, timeouts, SNMP error-status
	// and malformed PDUs.
	ErrTransport error = &readKind{"transport error"}
	// ErrDescriptionMismatch means ifDescr does not contain the expected
	// interface description.
	ErrDescriptionMismatch error = &readKind{"interface description mismatch"}
	// ErrInvalidCounterReading means ifHCOutOctets was zero or absent.
	ErrInvalidCounterReading error = &readKind{"invalid counter reading"}
)

// ReadError is returned by ReadCounter. Kind is one of ErrTransport,
// ErrDescriptionMismatch or ErrInvalidCounterReading.
type ReadError struct {
	Gateway string
	Kind    error
	Err     error
}

func (e *ReadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("gateway %s: %s", e.Gateway, e.Kind)
	}
	return fmt.Sprintf("gateway %s: %s: %s", e.Gateway, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *ReadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newReadError(gateway string, kind error, err error) *ReadError {
	return &ReadError{Gateway: gateway, Kind: kind, Err: err}
}
