// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

// Package log is the logging facade used by every fetch-out-bw package.
//
// It wraps a seelog logger, scrubs SNMP credentials from every line and
// buffers lines logged before SetupLogger is called.
package log

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/cihub/seelog"
)

var (
	logger *scrubbingLogger

	// Lines logged before the logger is set up, e.g. while the settings file
	// and the gateway file are being read.
	logsBuffer           = []func(){}
	bufferLogsBeforeInit = true
	bufferMutex          sync.Mutex
	defaultStackDepth    = 3
)

type scrubbingLogger struct {
	inner seelog.LoggerInterface
	level seelog.LogLevel
	l     sync.RWMutex
}

// SetupLogger configures the logger singleton with a seelog interface and
// flushes any buffered line.
func SetupLogger(l seelog.LoggerInterface, level string) {
	lvl, ok := seelog.LogLevelFromString(strings.ToLower(level))
	if !ok {
		lvl = seelog.InfoLvl
	}
	logger = &scrubbingLogger{
		inner: l,
		level: lvl,
	}

	// Exported helpers add two frames between the caller and seelog.
	logger.inner.SetAdditionalStackDepth(defaultStackDepth) //nolint:errcheck

	bufferMutex.Lock()
	bufferLogsBeforeInit = false
	defer bufferMutex.Unlock()
	for _, logLine := range logsBuffer {
		logLine()
	}
	logsBuffer = []func(){}
}

func addLogToBuffer(logHandle func()) {
	bufferMutex.Lock()
	defer bufferMutex.Unlock()

	logsBuffer = append(logsBuffer, logHandle)
}

func (sl *scrubbingLogger) shouldLog(level seelog.LogLevel) bool {
	sl.l.RLock()
	defer sl.l.RUnlock()
	return level >= sl.level
}

func (sl *scrubbingLogger) write(level seelog.LogLevel, s string) error {
	sl.l.Lock()
	defer sl.l.Unlock()

	scrubbed := scrubMessage(s)
	switch level {
	case seelog.TraceLvl:
		sl.inner.Trace(scrubbed)
	case seelog.DebugLvl:
		sl.inner.Debug(scrubbed)
	case seelog.InfoLvl:
		sl.inner.Info(scrubbed)
	case seelog.WarnLvl:
		return sl.inner.Warn(scrubbed)
	case seelog.ErrorLvl:
		return sl.inner.Error(scrubbed)
	case seelog.CriticalLvl:
		return sl.inner.Critical(scrubbed)
	}
	return nil
}

func buildLogEntry(v ...interface{}) string {
	var fmtBuffer bytes.Buffer

	for i := 0; i < len(v)-1; i++ {
		fmtBuffer.WriteString("%v ")
	}
	fmtBuffer.WriteString("%v")

	return fmt.Sprintf(fmtBuffer.String(), v...)
}

func scrubMessage(message string) string {
	msgScrubbed, err := CredentialsCleanerBytes([]byte(message))
	if err == nil {
		return string(msgScrubbed)
	}
	return "[REDACTED] - failure to clean the message"
}

func ready() bool {
	return logger != nil && logger.inner != nil
}

func log(level seelog.LogLevel, bufferFunc func(), msg string) {
	if ready() && logger.shouldLog(level) {
		logger.write(level, msg) //nolint:errcheck
	} else if bufferLogsBeforeInit && !ready() {
		addLogToBuffer(bufferFunc)
	}
}

func logWithError(level seelog.LogLevel, bufferFunc func(), fallbackStderr bool, msg string) error {
	if ready() && logger.shouldLog(level) {
		logger.write(level, msg) //nolint:errcheck
	} else if bufferLogsBeforeInit && !ready() {
		addLogToBuffer(bufferFunc)
	}
	err := errors.New(scrubMessage(msg))
	if fallbackStderr && !ready() {
		fmt.Fprintf(os.Stderr, "%s: %s\n", level.String(), err.Error())
	}
	return err
}

// Trace logs at the trace level
func Trace(v ...interface{}) {
	log(seelog.TraceLvl, func() { Trace(v...) }, buildLogEntry(v...))
}

// Tracef logs with format at the trace level
func Tracef(format string, params ...interface{}) {
	log(seelog.TraceLvl, func() { Tracef(format, params...) }, fmt.Sprintf(format, params...))
}

// Debug logs at the debug level
func Debug(v ...interface{}) {
	log(seelog.DebugLvl, func() { Debug(v...) }, buildLogEntry(v...))
}

// Debugf logs with format at the debug level
func Debugf(format string, params ...interface{}) {
	log(seelog.DebugLvl, func() { Debugf(format, params...) }, fmt.Sprintf(format, params...))
}

// Info logs at the info level
func Info(v ...interface{}) {
	log(seelog.InfoLvl, func() { Info(v...) }, buildLogEntry(v...))
}

// Infof logs with format at the info level
func Infof(format string, params ...interface{}) {
	log(seelog.InfoLvl, func() { Infof(format, params...) }, fmt.Sprintf(format, params...))
}

// Warn logs at the warn level and returns an error containing the formated log message
func Warn(v ...interface{}) error {
	return logWithError(seelog.WarnLvl, func() { Warn(v...) }, false, buildLogEntry(v...))
}

// Warnf logs with format at the warn level and returns an error containing the formated log message
func Warnf(format string, params ...interface{}) error {
	return logWithError(seelog.WarnLvl, func() { Warnf(format, params...) }, false, fmt.Sprintf(format, params...))
}

// Error logs at the error level and returns an error containing the formated log message
func Error(v ...interface{}) error {
	return logWithError(seelog.ErrorLvl, func() { Error(v...) }, true, buildLogEntry(v...))
}

// Errorf logs with format at the error level and returns an error containing the formated log message
func Errorf(format string, params ...interface{}) error {
	return logWithError(seelog.ErrorLvl, func() { Errorf(format, params...) }, true, fmt.Sprintf(format, params...))
}

// Critical logs at the critical level and returns an error containing the formated log message
func Critical(v ...interface{}) error {
	return logWithError(seelog.CriticalLvl, func() { Critical(v...) }, true, buildLogEntry(v...))
}

// Criticalf logs with format at the critical level and returns an error containing the formated log message
func Criticalf(format string, params ...interface{}) error {
	return logWithError(seelog.CriticalLvl, func() { Criticalf(format, params...) }, true, fmt.Sprintf(format, params...))
}

// Flush flushes the underlying inner log
func Flush() {
	if ready() {
		logger.inner.Flush()
	}
}

// GetLogLevel returns a seelog native representation of the current
// log level
func GetLogLevel() (seelog.LogLevel, error) {
	if ready() {
		logger.l.RLock()
		defer logger.l.RUnlock()
		return logger.level, nil
	}

	// need to return something, just set to Info (expected default)
	return seelog.InfoLvl, errors.New("cannot get loglevel: logger not initialized")
}

// ShouldLog returns whether a given log level should be logged by the
// current logger.
func ShouldLog(level seelog.LogLevel) bool {
	if !ready() {
		return false
	}
	return logger.shouldLog(level)
}
