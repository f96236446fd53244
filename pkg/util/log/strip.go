// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2026-present Datadog, Inc.

package log

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Replacer structure to store regex matching and replacement functions
type Replacer struct {
	Regex *regexp.Regexp
	Hints []string // If any of these hints do not exist in the line, then we know the regex wont match either
	Repl  []byte
}

var commentRegex = regexp.MustCompile(`^\s*#.*$`)
var blankRegex = regexp.MustCompile(`^\s*$`)
var singleLineReplacers []Replacer

func init() {
	// gateway files and debug dumps use YAML keys
	snmpYAMLReplacer := Replacer{
		Regex: matchYAMLKey(`(snmp_community|community_string|community)`),
		Hints: []string{"community"},
		Repl:  []byte(`$1 ********`),
	}
	// struct dumps (%+v) and key=value log lines
	snmpPairReplacer := Replacer{
		Regex: regexp.MustCompile(`(?i)\b((?:snmp_)?community(?:_string)?\s*[=:]\s*"?)[^\s",}]+`),
		Hints: []string{"ommunity"},
		Repl:  []byte(`${1}********`),
	}
	uriPasswordReplacer := Replacer{
		Regex: regexp.MustCompile(`([A-Za-z][A-Za-z0-9+-.]+\:\/\/|\b)([^\:\s]+)\:([^\s]+)\@`),
		Repl:  []byte(`$1$2:********@`),
	}
	singleLineReplacers = []Replacer{snmpYAMLReplacer, snmpPairReplacer, uriPasswordReplacer}
}

func matchYAMLKey(key string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`^(\s*-?\s*%s\s*:).+`, key))
}

// AddStrippedValues masks every occurrence of the given literal values, used
// for community strings that show up outside of a recognizable key.
func AddStrippedValues(values []string) {
	var quoted []string
	for _, v := range values {
		if v == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(v))
	}
	if len(quoted) == 0 {
		return
	}
	singleLineReplacers = append(singleLineReplacers, Replacer{
		Regex: regexp.MustCompile(fmt.Sprintf(`(%s)`, strings.Join(quoted, "|"))),
		Repl:  []byte(`********`),
	})
}

// CredentialsCleanerBytes scrubs credentials from slice of bytes
func CredentialsCleanerBytes(data []byte) ([]byte, error) {
	return credentialsCleaner(bytes.NewReader(data))
}

func credentialsCleaner(r io.Reader) ([]byte, error) {
	var cleaned []byte

	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		b := scanner.Bytes()
		if !commentRegex.Match(b) && !blankRegex.Match(b) {
			b = scrubCredentials(b, singleLineReplacers)
		}
		if !first {
			cleaned = append(cleaned, '\n')
		}
		cleaned = append(cleaned, b...)
		first = false
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cleaned, nil
}

// scrubCredentials obfuscate sensitive information based on Replacer Regex
func scrubCredentials(data []byte, replacers []Replacer) []byte {
	for _, repl := range replacers {
		containsHint := false
		for _, hint := range repl.Hints {
			if strings.Contains(string(data), hint) {
				containsHint = true
				break
			}
		}
		if len(repl.Hints) == 0 || containsHint {
			data = repl.Regex.ReplaceAll(data, repl.Repl)
		}
	}
	return data
}
