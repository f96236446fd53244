// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/cihub/seelog"

	"github.com/DataDog/fetch-out-bw/pkg/util/log"
)

const logFileMaxSize = 10 * 1024 * 1024         // 10MB
const logDateFormat = "2006-01-02 15:04:05 MST" // see time.Format for format syntax

func init() {
	seelog.RegisterReceiver("stderr", &stderrReceiver{})
}

// stderrReceiver is a seelog custom receiver writing to stderr, stdout is
// reserved for round results.
type stderrReceiver struct{}

func (r *stderrReceiver) ReceiveMessage(message string, _ seelog.LogLevel, _ seelog.LogContextInterface) error {
	_, err := fmt.Fprint(os.Stderr, message)
	return err
}

func (r *stderrReceiver) AfterParse(_ seelog.CustomReceiverInitArgs) error { return nil }

func (r *stderrReceiver) Flush() {}

func (r *stderrReceiver) Close() error { return nil }

// buildLoggerConfig renders the seelog XML configuration.
func buildLoggerConfig(logLevel, logFile string) string {
	configTemplate := `<seelog minlevel="%s">
    <outputs formatid="common">
        <custom name="stderr" />`
	if logFile != "" {
		configTemplate += `<rollingfile type="size" filename="%s" maxsize="%d" maxrolls="1" />`
	}
	configTemplate += `</outputs>
    <formats>
        <format id="common" format="%%Date(%s) | FETCHOUTBW | %%LEVEL | (%%RelFile:%%Line in %%FuncShort) | %%Msg%%n"/>
    </formats>
</seelog>`

	if logFile != "" {
		return fmt.Sprintf(configTemplate, strings.ToLower(logLevel), logFile, logFileMaxSize, logDateFormat)
	}
	return fmt.Sprintf(configTemplate, strings.ToLower(logLevel), logDateFormat)
}

// SetupLogger sets up the default logger
func SetupLogger(logLevel, logFile string) error {
	if _, ok := seelog.LogLevelFromString(strings.ToLower(logLevel)); !ok {
		return fmt.Errorf("unknown log level %q", logLevel)
	}
	logger, err := seelog.LoggerFromConfigAsString(buildLoggerConfig(logLevel, logFile))
	if err != nil {
		return err
	}
	seelog.ReplaceLogger(logger) //nolint:errcheck
	log.SetupLogger(logger, logLevel)
	return nil
}
