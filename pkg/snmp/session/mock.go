// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

package session

import (
	"github.com/gosnmp/gosnmp"
	"github.com/stretchr/testify/mock"
)

// MockSession mocks a connection session
type MockSession struct {
	mock.Mock
	ConnectErr error
	Connects   int
	Closes     int
}

// CreateMockSession creates a mock session
func CreateMockSession() *MockSession {
	return &MockSession{}
}

// Connect is used to create a new connection
func (s *MockSession) Connect() error {
	s.Connects++
	return s.ConnectErr
}

// Close mocks a close connection
func (s *MockSession) Close() error {
	s.Closes++
	return nil
}

// Get mocks a get command
func (s *MockSession) Get(oids []string) (result *gosnmp.SnmpPacket, err error) {
	args := s.Mock.Called(oids)
	packet, _ := args.Get(0).(*gosnmp.SnmpPacket)
	return packet, args.Error(1)
}
