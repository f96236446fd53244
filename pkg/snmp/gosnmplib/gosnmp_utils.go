// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

package gosnmplib

import (
	"encoding/json"
	"fmt"

	"github.com/cihub/seelog"
	"github.com/gosnmp/gosnmp"

	"github.com/DataDog/fetch-out-bw/pkg/util/log"
)

type debugVariable struct {
	Oid      string      `json:"oid"`
	Type     string      `json:"type"`
	Value    interface{} `json:"value"`
	ParseErr string      `json:"parse_err,omitempty"`
}

// PacketAsStringIfLoglevel used to format gosnmp.SnmpPacket for debug logging
func PacketAsStringIfLoglevel(packet *gosnmp.SnmpPacket, logLevel seelog.LogLevel) string {
	if packet == nil {
		return ""
	}
	if curLogLevel, err := log.GetLogLevel(); err != nil || curLogLevel <= logLevel {
		return PacketAsString(packet)
	}
	return ""
}

// PacketAsString formats a packet's error status and variables as JSON.
func PacketAsString(packet *gosnmp.SnmpPacket) string {
	var debugVariables []debugVariable
	for _, pduVariable := range packet.Variables {
		var parseError string
		value := fmt.Sprintf("%v", pduVariable.Value)
		resValue, err := valueAsString(pduVariable)
		if err == nil {
			value = resValue
		} else {
			parseError = fmt.Sprintf("`%s`", err)
		}
		debugVar := debugVariable{Oid: NormalizeOID(pduVariable.Name), Type: fmt.Sprintf("%v", pduVariable.Type), Value: value, ParseErr: parseError}
		debugVariables = append(debugVariables, debugVar)
	}

	jsonPayload, err := json.Marshal(debugVariables)
	if err != nil {
		log.Debugf("error marshaling debugVar: %s", err)
	}
	return fmt.Sprintf("error=%s(code:%d, idx:%d), values=%s", packet.Error, packet.Error, packet.ErrorIndex, jsonPayload)
}
