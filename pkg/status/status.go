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

// Package status prints per-file outcomes and the end-of-run summary in
// black's familiar voice, mirroring everything to zerolog for debugging.
package status

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🖨️ Printer writes user-facing outcome lines to a console writer. It
// implements the batch layer's Reporter interface.
type Printer struct {
	console io.Writer
	zlog    zerolog.Logger
	mu      sync.Mutex
}

// 🏭 NewPrinter creates a Printer writing to console.
func NewPrinter(console io.Writer, zlog zerolog.Logger) *Printer {
	return &Printer{
		console: console,
		zlog:    zlog,
	}
}

// 📝 FileRewritten announces a successfully replaced file.
func (p *Printer) FileRewritten(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.console, "%s %s\n",
		color.New(color.FgGreen).Sprint("Successfully reformatted"),
		path)
	p.zlog.Debug().Str("path", path).Msg("file reformatted")
}

// 📝 FileUnchanged announces an already well-formatted file.
func (p *Printer) FileUnchanged(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.console, "%s already well formatted, good job.\n", path)
	p.zlog.Debug().Str("path", path).Msg("file already formatted")
}

// 📝 FileSkipped announces a nonexistent path.
func (p *Printer) FileSkipped(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.console, "%s %s\n",
		color.New(color.Faint).Sprint("Skipped nonexistent file"),
		path)
	p.zlog.Debug().Str("path", path).Msg("file skipped")
}

// 📝 FileDiff emits the daemon's diff for a file left untouched.
func (p *Printer) FileDiff(path string, diff []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.console, "%s %s\n",
		color.New(color.FgCyan).Sprint("Would reformat"),
		path)
	p.console.Write(diff)
	if len(diff) > 0 && diff[len(diff)-1] != '\n' {
		fmt.Fprintln(p.console)
	}
	p.zlog.Debug().Str("path", path).Int("bytes", len(diff)).Msg("diff emitted")
}

// 📝 FileError reports a per-file failure. The message is the daemon's
// or filesystem's reason, passed through verbatim.
func (p *Printer) FileError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.console, "%s\n", color.New(color.FgRed).Sprint(err.Error()))
	p.zlog.Debug().Err(err).Msg("file failed")
}

// 📝 Notice prints a standalone informational line.
func (p *Printer) Notice(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.console, "\n%s\n\n", msg)
	p.zlog.Debug().Msg(msg)
}

// 🧮 Summary prints the end-of-run tally, matching black's own phrasing
// down to the singular/plural forms.
func (p *Printer) Summary(reformatted, unchanged int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	results := "\nAll done! ✨ 🍰 ✨"

	if reformatted == 1 {
		results += "\n• 1 file reformatted"
	} else if reformatted > 1 {
		results += fmt.Sprintf("\n• %d files reformatted", reformatted)
	}

	if unchanged == 1 {
		results += "\n• 1 file left unchanged."
	} else if unchanged > 1 {
		results += fmt.Sprintf("\n• %d files left unchanged.", unchanged)
	}

	results += "\n"

	fmt.Fprintln(p.console, results)
	p.zlog.Debug().
		Int("reformatted", reformatted).
		Int("unchanged", unchanged).
		Msg("run complete")
}
