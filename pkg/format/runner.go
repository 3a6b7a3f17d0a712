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
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📢 Reporter receives per-file outcomes and the final tally as they
// happen. Implementations live in pkg/status; this interface keeps the
// batch loop free of presentation concerns.
type Reporter interface {
	// FileRewritten announces a successfully replaced file
	FileRewritten(path string)
	// FileUnchanged announces an already well-formatted file
	FileUnchanged(path string)
	// FileSkipped announces a nonexistent path that was skipped
	FileSkipped(path string)
	// FileDiff emits the daemon's diff for a file left untouched
	FileDiff(path string, diff []byte)
	// FileError reports a per-file failure
	FileError(err error)
}

// 🧮 Summary is the final tally of a batch run.
type Summary struct {
	Reformatted int // files rewritten on disk
	Unchanged   int // everything else: unchanged, skipped, diffed, failed
}

// 🏃 Runner processes an ordered list of target paths sequentially, one
// Result per path, never aborting the batch on a single file's failure.
type Runner struct {
	processor *Processor
	reporter  Reporter
}

// 🏭 NewRunner creates a Runner.
func NewRunner(processor *Processor, reporter Reporter) (*Runner, error) {
	if processor == nil {
		return nil, errors.Errorf("processor is required")
	}
	if reporter == nil {
		return nil, errors.Errorf("reporter is required")
	}
	return &Runner{
		processor: processor,
		reporter:  reporter,
	}, nil
}

// 🏃 Run processes every path in order and returns the tally. Each file
// is an isolated unit: its error is captured into its own Result and
// reported, and the loop moves on.
func (r *Runner) Run(ctx context.Context, paths []string) Summary {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("files", len(paths)).Msg("starting batch")

	var summary Summary

	for _, path := range paths {
		result := r.processor.ProcessFile(ctx, path)

		switch result.Outcome {
		case OutcomeRewritten:
			summary.Reformatted++
			r.reporter.FileRewritten(result.Path)
		case OutcomeUnchanged:
			summary.Unchanged++
			r.reporter.FileUnchanged(result.Path)
		case OutcomeSkipped:
			summary.Unchanged++
			r.reporter.FileSkipped(result.Path)
		case OutcomeDiffed:
			summary.Unchanged++
			r.reporter.FileDiff(result.Path, result.Diff)
		case OutcomeFailed:
			summary.Unchanged++
			r.reporter.FileError(result.Err)
		}

		logger.Debug().
			Str("path", result.Path).
			Str("outcome", result.Outcome.String()).
			Msg("file processed")
	}

	logger.Debug().
		Int("reformatted", summary.Reformatted).
		Int("unchanged", summary.Unchanged).
		Msg("batch complete")

	return summary
}

// TODO(dr.methodical): 🔜 check ctx.Err() between files so a cancelled run
// stops at the next file boundary instead of finishing the batch
