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

// Package protocol translates a formatting configuration into the header
// set blackd understands. Translation is pure and never fails.
package protocol

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/walteh/blackline/pkg/config"
)

// 📡 Header names of the blackd request protocol
const (
	HeaderProtocolVersion         = "X-Protocol-Version"
	HeaderLineLength              = "X-Line-Length"
	HeaderSkipStringNormalization = "X-Skip-String-Normalization"
	HeaderSkipMagicTrailingComma  = "X-Skip-Magic-Trailing-Comma"
	HeaderFastOrSafe              = "X-Fast-Or-Safe"
	HeaderPythonVariant           = "X-Python-Variant"
	HeaderDiff                    = "X-Diff"
)

// ProtocolVersion is the single protocol revision this client speaks.
const ProtocolVersion = "1"

// 🎯 Headers derives the request headers for cfg. The protocol-version,
// line-length and fast-or-safe markers are always present; the remaining
// markers are set only when the corresponding option is non-default.
func Headers(cfg *config.Config) http.Header {
	headers := http.Header{}

	headers.Set(HeaderProtocolVersion, ProtocolVersion)
	headers.Set(HeaderLineLength, strconv.Itoa(int(cfg.LineLength)))

	if cfg.SkipStringNormalization {
		headers.Set(HeaderSkipStringNormalization, "true")
	}

	if cfg.SkipMagicTrailingComma {
		headers.Set(HeaderSkipMagicTrailingComma, "true")
	}

	// Safe is the default and always wins over Fast
	if cfg.Fast && !cfg.Safe {
		headers.Set(HeaderFastOrSafe, "fast")
	} else {
		headers.Set(HeaderFastOrSafe, "safe")
	}

	if len(cfg.TargetVersions) > 0 {
		headers.Set(HeaderPythonVariant, strings.Join(cfg.TargetVersions, ","))
	}

	if cfg.Diff {
		headers.Set(HeaderDiff, "true")
	}

	return headers
}
