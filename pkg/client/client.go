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

// Package client issues formatting requests against a blackd daemon.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/walteh/blackline/pkg/config"
	"github.com/walteh/blackline/pkg/protocol"
	"gitlab.com/tozd/go/errors"
)

// 📬 Response is the raw daemon reply: the status code and the full body.
// Interpreting the status is the caller's job.
type Response struct {
	StatusCode int
	Body       []byte
}

// 🔌 Formatter is the daemon-facing interface consumed by the batch layer.
// It exists so tests can substitute a stub without a live daemon.
type Formatter interface {
	// Format submits one file's bytes and returns the daemon's reply
	Format(ctx context.Context, src []byte) (*Response, error)
}

// 🎮 Client is the real HTTP implementation of Formatter. One request per
// file, no retries, no connection state beyond the underlying transport.
type Client struct {
	endpoint string
	headers  http.Header
	http     *http.Client
}

// 🏭 New creates a Client bound to the daemon described by cfg. The
// protocol headers are derived once and reused for every request.
func New(cfg *config.Config) *Client {
	return &Client{
		endpoint: fmt.Sprintf("http://%s:%d/", cfg.Host, cfg.Port),
		headers:  protocol.Headers(cfg),
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// 📡 Format POSTs src to the daemon and returns its status and body.
// Transport-level failures come back as errors; any received status,
// recognized or not, comes back as a Response.
func (c *Client) Format(ctx context.Context, src []byte) (*Response, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("endpoint", c.endpoint).Int("bytes", len(src)).Msg("sending format request")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(src))
	if err != nil {
		return nil, errors.Errorf("creating request: %w", err)
	}

	for name, values := range c.headers {
		for _, v := range values {
			req.Header.Set(name, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Errorf("sending request to %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Errorf("reading response body: %w", err)
	}

	logger.Debug().Int("status", resp.StatusCode).Int("bytes", len(body)).Msg("received format response")

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
