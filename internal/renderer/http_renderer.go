// Package renderer calls the external PDF rendering service.
package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"salesdocs/internal/config"
	"salesdocs/internal/domain"
	"salesdocs/internal/port"
)

const maxPDFBytes = 20 << 20

// HTTPRenderer posts render requests as JSON and reads back a PDF.
type HTTPRenderer struct {
	endpoint string
	token    string
	client   *http.Client
}

// New returns an HTTPRenderer, or a renderer that always fails with
// domain.ErrRendererUnavailable when no URL is configured.
func New(cfg *config.RendererConfig) port.DocumentRenderer {
	if cfg.URL == "" {
		return unavailable{}
	}
	return NewHTTPRenderer(cfg.URL, cfg.Token, cfg.Timeout)
}

// NewHTTPRenderer creates a renderer for the given endpoint.
func NewHTTPRenderer(endpoint, token string, timeout time.Duration) *HTTPRenderer {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPRenderer{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{Timeout: timeout},
	}
}

func (r *HTTPRenderer) Render(ctx context.Context, in port.RenderRequest) ([]byte, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshaling render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/pdf")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrRendererUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPDFBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrRendererUnavailable, err)
	}

	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrRendererUnavailable, resp.StatusCode, truncate(string(data), 200))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("renderer rejected %s template (status %d): %s", in.Template, resp.StatusCode, truncate(string(data), 200))
	}
	if len(data) > maxPDFBytes {
		return nil, fmt.Errorf("renderer returned more than %d bytes", maxPDFBytes)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		return nil, fmt.Errorf("renderer returned a non-PDF body (%s)", resp.Header.Get("Content-Type"))
	}
	return data, nil
}

type unavailable struct{}

func (unavailable) Render(context.Context, port.RenderRequest) ([]byte, error) {
	return nil, fmt.Errorf("%w: renderer.url is not configured", domain.ErrRendererUnavailable)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
