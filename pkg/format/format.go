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

// Package format drives the per-file request/response pipeline: read a
// source file, submit it to blackd, interpret the reply, and atomically
// replace the file when a reformatted version comes back.
package format

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/blackline/pkg/client"
	"github.com/walteh/blackline/pkg/fileops"
	"gitlab.com/tozd/go/errors"
)

// 📊 Outcome is the terminal state of one file's pipeline.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeRewritten         // daemon returned new content, file replaced
	OutcomeUnchanged         // daemon says already well formatted
	OutcomeSkipped           // file does not exist, no request issued
	OutcomeDiffed            // diff mode: daemon returned a diff, file untouched
	OutcomeFailed            // any per-file error
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeRewritten:
		return "rewritten"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeDiffed:
		return "diffed"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 Result records what happened to one file. Produced exactly once per
// input path and never mutated afterwards.
type Result struct {
	Path    string  // canonical path the pipeline operated on
	Outcome Outcome
	Diff    []byte // daemon's diff output, set only for OutcomeDiffed
	Err     *Error // set only for OutcomeFailed
}

// 🔧 Options configures a Processor.
type Options struct {
	// Client is the daemon-facing formatter
	Client client.Formatter
	// Diff leaves files untouched and captures the daemon's diff instead
	Diff bool
}

// 🎮 Processor runs the pipeline for individual files.
type Processor struct {
	client client.Formatter
	diff   bool
}

// 🏭 NewProcessor creates a Processor from options.
func NewProcessor(opts Options) (*Processor, error) {
	if opts.Client == nil {
		return nil, errors.Errorf("client is required")
	}
	return &Processor{
		client: opts.Client,
		diff:   opts.Diff,
	}, nil
}

// 🏃 ProcessFile runs one file through read → request → interpret →
// optional write. All failures are captured in the Result; the file on
// disk is either untouched or fully replaced, never in between.
func (p *Processor) ProcessFile(ctx context.Context, path string) Result {
	logger := zerolog.Ctx(ctx)

	path = canonicalPath(path)
	logger.Debug().Str("path", path).Msg("processing file")

	// A path that doesn't exist is a silent skip, not an error, and the
	// daemon is never contacted for it.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Debug().Str("path", path).Msg("file does not exist, skipping")
		return Result{Path: path, Outcome: OutcomeSkipped}
	}

	src, err := fileops.ReadFile(path)
	if err != nil {
		return Result{Path: path, Outcome: OutcomeFailed, Err: newFileAccessError(path, err)}
	}

	resp, err := p.client.Format(ctx, src)
	if err != nil {
		return Result{Path: path, Outcome: OutcomeFailed, Err: newTransportError(path, err)}
	}

	return p.interpret(ctx, path, resp)
}

// 🧠 interpret maps the daemon's reply onto a Result. This is the one
// place response statuses are given meaning; the write happens only for
// a 200 outside diff mode.
func (p *Processor) interpret(ctx context.Context, path string, resp *client.Response) Result {
	logger := zerolog.Ctx(ctx)

	switch resp.StatusCode {
	case http.StatusOK:
		if p.diff {
			logger.Debug().Str("path", path).Msg("daemon returned a diff")
			return Result{Path: path, Outcome: OutcomeDiffed, Diff: resp.Body}
		}
		if err := fileops.WriteFileAtomic(path, resp.Body); err != nil {
			return Result{Path: path, Outcome: OutcomeFailed, Err: newPersistError(path, err)}
		}
		return Result{Path: path, Outcome: OutcomeRewritten}

	case http.StatusNoContent:
		return Result{Path: path, Outcome: OutcomeUnchanged}

	case http.StatusBadRequest:
		return Result{Path: path, Outcome: OutcomeFailed, Err: newRejectionError(path, resp.Body)}

	case http.StatusInternalServerError:
		return Result{Path: path, Outcome: OutcomeFailed, Err: newServerFaultError(path)}

	default:
		return Result{Path: path, Outcome: OutcomeFailed, Err: newUnrecognizedError(path, resp.StatusCode)}
	}
}

// 🧭 canonicalPath resolves path to its absolute, symlink-free form.
// Resolution is best effort: if either step fails the literal input is
// used unchanged, which keeps nonexistent paths reportable as given.
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return path
	}
	return resolved
}
