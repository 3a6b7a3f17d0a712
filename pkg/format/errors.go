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

package format

import (
	"fmt"
	"net/http"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Kind classifies what went wrong with a single file. Every per-file
// failure is recoverable-continue; the kind exists so callers can still
// tell the failure modes apart.
type Kind int

const (
	KindUnknown Kind = iota
	KindFileAccess
	KindTransport
	KindProtocolRejection
	KindServerFault
	KindUnrecognizedResponse
	KindPersist
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindFileAccess:
		return "file_access"
	case KindTransport:
		return "transport"
	case KindProtocolRejection:
		return "protocol_rejection"
	case KindServerFault:
		return "server_fault"
	case KindUnrecognizedResponse:
		return "unrecognized_response"
	case KindPersist:
		return "persist"
	default:
		return "unknown"
	}
}

// ❌ Error is the single per-file error container. The heterogeneous
// underlying failures (I/O, transport, daemon rejections) all collapse
// into one type carrying a kind tag and a human-readable message.
type Error struct {
	kind  Kind
	path  string
	msg   string
	cause error
}

func (e *Error) Error() string {
	return e.msg
}

// Kind returns the failure classification.
func (e *Error) Kind() Kind {
	return e.kind
}

// Path returns the file the failure belongs to.
func (e *Error) Path() string {
	return e.path
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newFileAccessError(path string, cause error) *Error {
	return &Error{
		kind:  KindFileAccess,
		path:  path,
		msg:   fmt.Sprintf("could not read %s: %v", path, cause),
		cause: cause,
	}
}

func newTransportError(path string, cause error) *Error {
	return &Error{
		kind:  KindTransport,
		path:  path,
		msg:   fmt.Sprintf("could not reach blackd for %s: %v", path, cause),
		cause: cause,
	}
}

func newRejectionError(path string, body []byte) *Error {
	// The daemon's reason is passed through verbatim
	return &Error{
		kind: KindProtocolRejection,
		path: path,
		msg:  string(body),
	}
}

func newServerFaultError(path string) *Error {
	return &Error{
		kind: KindServerFault,
		path: path,
		msg:  fmt.Sprintf("%s caused an internal error in `blackd`", path),
	}
}

func newUnrecognizedError(path string, statusCode int) *Error {
	status := fmt.Sprintf("%d", statusCode)
	if text := http.StatusText(statusCode); text != "" {
		status = fmt.Sprintf("%d %s", statusCode, text)
	}
	return &Error{
		kind: KindUnrecognizedResponse,
		path: path,
		msg:  fmt.Sprintf("`blackd` returned an unrecognized status code: %s", status),
	}
}

func newPersistError(path string, cause error) *Error {
	return &Error{
		kind:  KindPersist,
		path:  path,
		msg:   fmt.Sprintf("could not persist reformatted code to %s: %v", path, cause),
		cause: cause,
	}
}

// 🔍 AsError unwraps err into the per-file *Error if there is one.
func AsError(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
