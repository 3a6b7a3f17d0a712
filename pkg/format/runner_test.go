package format_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/blackline/pkg/client"
	"github.com/walteh/blackline/pkg/config"
	"github.com/walteh/blackline/pkg/format"
	"gitlab.com/tozd/go/errors"
)

// 🧪 recordingReporter captures every callback for later inspection
type recordingReporter struct {
	rewritten []string
	unchanged []string
	skipped   []string
	diffs     map[string][]byte
	errs      []error
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{diffs: map[string][]byte{}}
}

func (r *recordingReporter) FileRewritten(path string) { r.rewritten = append(r.rewritten, path) }
func (r *recordingReporter) FileUnchanged(path string) { r.unchanged = append(r.unchanged, path) }
func (r *recordingReporter) FileSkipped(path string)   { r.skipped = append(r.skipped, path) }
func (r *recordingReporter) FileDiff(path string, diff []byte) {
	r.diffs[path] = diff
}
func (r *recordingReporter) FileError(err error) { r.errs = append(r.errs, err) }

// 🧪 pathStubFormatter routes responses per source content
type pathStubFormatter struct {
	respond func(src []byte) (*client.Response, error)
}

func (s *pathStubFormatter) Format(ctx context.Context, src []byte) (*client.Response, error) {
	return s.respond(src)
}

func TestNewRunner_Validation(t *testing.T) {
	stub := &stubFormatter{}
	processor := newProcessor(t, stub, false)
	reporter := newRecordingReporter()

	_, err := format.NewRunner(nil, reporter)
	require.Error(t, err)

	_, err = format.NewRunner(processor, nil)
	require.Error(t, err)

	_, err = format.NewRunner(processor, reporter)
	require.NoError(t, err)
}

func TestRunner_BatchIsolation(t *testing.T) {
	// Three files; the daemon breaks for the second one. The first and
	// third must still be processed and recorded.
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"one.py", "two.py", "three.py"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("x=1 # "+name), 0644))
		paths = append(paths, path)
	}

	stub := &pathStubFormatter{respond: func(src []byte) (*client.Response, error) {
		if string(src) == "x=1 # two.py" {
			return nil, errors.Errorf("connection reset")
		}
		return &client.Response{StatusCode: http.StatusOK, Body: []byte("x = 1\n")}, nil
	}}

	processor, err := format.NewProcessor(format.Options{Client: stub})
	require.NoError(t, err)
	reporter := newRecordingReporter()
	runner, err := format.NewRunner(processor, reporter)
	require.NoError(t, err)

	summary := runner.Run(context.Background(), paths)

	assert.Equal(t, 2, summary.Reformatted)
	assert.Equal(t, 1, summary.Unchanged)

	require.Len(t, reporter.rewritten, 2)
	require.Len(t, reporter.errs, 1)

	fe, ok := format.AsError(reporter.errs[0])
	require.True(t, ok)
	assert.Equal(t, format.KindTransport, fe.Kind())

	// The first and third files were actually rewritten on disk
	for _, path := range []string{paths[0], paths[2]} {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "x = 1\n", string(content))
	}
}

func TestRunner_MixedOutcomes(t *testing.T) {
	dir := t.TempDir()

	formatted := filepath.Join(dir, "formatted.py")
	require.NoError(t, os.WriteFile(formatted, []byte("x = 1\n"), 0644))
	unformatted := filepath.Join(dir, "unformatted.py")
	require.NoError(t, os.WriteFile(unformatted, []byte("x=1"), 0644))
	missing := filepath.Join(dir, "missing.py")

	stub := &pathStubFormatter{respond: func(src []byte) (*client.Response, error) {
		if string(src) == "x = 1\n" {
			return &client.Response{StatusCode: http.StatusNoContent}, nil
		}
		return &client.Response{StatusCode: http.StatusOK, Body: []byte("x = 1\n")}, nil
	}}

	processor, err := format.NewProcessor(format.Options{Client: stub})
	require.NoError(t, err)
	reporter := newRecordingReporter()
	runner, err := format.NewRunner(processor, reporter)
	require.NoError(t, err)

	summary := runner.Run(context.Background(), []string{formatted, unformatted, missing})

	assert.Equal(t, 1, summary.Reformatted)
	assert.Equal(t, 2, summary.Unchanged)
	assert.Len(t, reporter.unchanged, 1)
	assert.Len(t, reporter.rewritten, 1)
	assert.Len(t, reporter.skipped, 1)
	assert.Empty(t, reporter.errs)
}

func TestRunner_EmptyBatch(t *testing.T) {
	stub := &stubFormatter{}
	processor := newProcessor(t, stub, false)
	reporter := newRecordingReporter()
	runner, err := format.NewRunner(processor, reporter)
	require.NoError(t, err)

	summary := runner.Run(context.Background(), nil)

	assert.Zero(t, summary.Reformatted)
	assert.Zero(t, summary.Unchanged)
	assert.Zero(t, stub.calls)
}

// 🧪 daemonConfig points a default Config at the given test server
func daemonConfig(t *testing.T, srv *httptest.Server) *config.Config {
	t.Helper()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	port, err := strconv.ParseUint(u.Port(), 10, 16)
	require.NoError(t, err)

	cfg := config.New()
	cfg.Host = u.Hostname()
	cfg.Port = uint16(port)
	return cfg
}

func TestRunner_EndToEnd(t *testing.T) {
	// A stand-in daemon that reformats "x=1" and reports anything else
	// as already formatted
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		body, _ := io.ReadAll(r.Body)
		if string(body) == "x=1" {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("x = 1\n"))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "a.py")
	require.NoError(t, os.WriteFile(path, []byte("x=1"), 0644))

	cfg := daemonConfig(t, srv)
	processor, err := format.NewProcessor(format.Options{Client: client.New(cfg)})
	require.NoError(t, err)

	// First run: the file is rewritten in place
	reporter := newRecordingReporter()
	runner, err := format.NewRunner(processor, reporter)
	require.NoError(t, err)

	summary := runner.Run(context.Background(), []string{path})
	assert.Equal(t, 1, summary.Reformatted)
	assert.Equal(t, 0, summary.Unchanged)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(content))

	// Second run against the now-formatted file: unchanged
	summary = runner.Run(context.Background(), []string{path})
	assert.Equal(t, 0, summary.Reformatted)
	assert.Equal(t, 1, summary.Unchanged)

	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(content))

	assert.Equal(t, int64(2), requests.Load())
}
