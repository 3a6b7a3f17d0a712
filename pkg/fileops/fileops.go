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

// Package fileops reads source files and replaces them atomically.
package fileops

import (
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

// 📖 ReadFile returns the full contents of path. There is no partial
// result: callers get either every byte or an error.
func ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}
	return content, nil
}

// 💾 WriteFileAtomic replaces the contents of path with data. The bytes
// are written to a fresh temp file in the same directory (same filesystem,
// so the final rename is atomic), synced, then renamed over the target.
// On any failure the target keeps its prior contents and the temp file is
// removed; no observer ever sees a truncated or half-written target.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	// Past this point any failure must leave the target untouched and
	// the temp file gone.
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		cleanup()
		return errors.Errorf("syncing temp file: %w", err)
	}

	// Keep the target's permission bits when it already exists; CreateTemp
	// defaults to 0600 which would silently tighten the file.
	if info, err := os.Stat(path); err == nil {
		if err := tmp.Chmod(info.Mode().Perm()); err != nil {
			cleanup()
			return errors.Errorf("preserving file mode: %w", err)
		}
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("replacing %s: %w", path, err)
	}

	return nil
}
