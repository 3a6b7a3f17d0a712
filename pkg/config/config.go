// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config holds the per-run formatting configuration and the
// target-version parsing rules shared by the CLI and the protocol layer.
package config

import (
	"strings"
	"time"
	"unicode"

	"gitlab.com/tozd/go/errors"
)

// 🐍 Python versions blackd knows how to target
const (
	PY27 = "27"
	PY33 = "33"
	PY34 = "34"
	PY35 = "35"
	PY36 = "36"
	PY37 = "37"
	PY38 = "38"
	PY39 = "39"
	PYI  = "PYI"
)

// 🗺️ supportedVersions is the fixed set of recognized version tags
var supportedVersions = []string{PY27, PY33, PY34, PY35, PY36, PY37, PY38, PY39, PYI}

// Defaults for daemon connection and formatting options
const (
	DefaultHost       = "localhost"
	DefaultPort       = 45484
	DefaultLineLength = 88
	DefaultTimeout    = 30 * time.Second
)

// 📚 Config is the immutable per-run configuration. It is built once from
// CLI flags and never mutated afterwards; every file in a batch shares it.
type Config struct {
	// Daemon connection
	Host    string        // blackd host
	Port    uint16        // blackd port
	Timeout time.Duration // per-request transport timeout

	// Formatting options
	LineLength              uint8    // characters per line (1-255)
	TargetVersions          []string // normalized tags, e.g. ["py36", "py39"]
	SkipStringNormalization bool     // don't normalize string quotes/prefixes
	SkipMagicTrailingComma  bool     // don't split on magic trailing commas
	Fast                    bool     // skip sanity checks
	Safe                    bool     // force sanity checks (wins over Fast)
	Diff                    bool     // emit a diff instead of rewriting files
}

// 🏭 New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Host:       DefaultHost,
		Port:       DefaultPort,
		Timeout:    DefaultTimeout,
		LineLength: DefaultLineLength,
	}
}

// ✅ Validate checks the few constraints flags can't express.
func (c *Config) Validate() error {
	if c.LineLength == 0 {
		return errors.Errorf("line length must be between 1 and 255")
	}
	if c.Host == "" {
		return errors.Errorf("host is required")
	}
	if c.Timeout <= 0 {
		return errors.Errorf("timeout must be positive")
	}
	return nil
}

// 🔍 ParseTargetVersions parses a comma-separated list of version tokens
// into normalized variant tags. Tokens are reduced to their numeric runes
// before matching ("py36", "3.6" and "36" all mean PY36); the special
// "PYI" stub-file tag is matched case-insensitively as-is. Unrecognized
// tokens are dropped without error, and relative order is preserved.
func ParseTargetVersions(raw string) []string {
	if raw == "" {
		return nil
	}

	var versions []string
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if tag, ok := normalizeVersionToken(token); ok {
			versions = append(versions, tag)
		}
	}
	return versions
}

// normalizeVersionToken maps one raw token to its normalized tag.
func normalizeVersionToken(token string) (string, bool) {
	// blackd expects the stub-file variant spelled lowercase
	if strings.EqualFold(token, PYI) {
		return "pyi", true
	}

	// Keep only the numeric runes, mirroring blackd's lenient parsing
	var digits strings.Builder
	for _, r := range token {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}

	for _, v := range supportedVersions {
		if digits.String() == v {
			return "py" + v, true
		}
	}
	return "", false
}
