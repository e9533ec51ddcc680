package renderer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdocs/internal/config"
	"salesdocs/internal/domain"
	"salesdocs/internal/port"
	"salesdocs/internal/renderer"
)

func renderRequest() port.RenderRequest {
	return port.RenderRequest{
		Template:    "quotation",
		Document:    &domain.Document{Number: "RX-VQ25-25-07-001", DocumentType: domain.DocumentTypeQuotation},
		PrintConfig: domain.DefaultPrintConfig(),
		Company:     &domain.Company{Name: "Rexa"},
	}
}

func TestHTTPRenderer_Success(t *testing.T) {
	var got map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.7 fake"))
	}))
	defer srv.Close()

	pdf, err := renderer.NewHTTPRenderer(srv.URL, "secret", time.Second).Render(context.Background(), renderRequest())

	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 fake", string(pdf))
	assert.Equal(t, `"quotation"`, string(got["template"]))
	assert.Contains(t, got, "document")
	assert.Contains(t, got, "print_config")
	assert.Contains(t, got, "company")
}

func TestHTTPRenderer_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := renderer.NewHTTPRenderer(srv.URL, "", time.Second).Render(context.Background(), renderRequest())

	assert.ErrorIs(t, err, domain.ErrRendererUnavailable)
}

func TestHTTPRenderer_ClientErrorIsNotUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unknown template", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	_, err := renderer.NewHTTPRenderer(srv.URL, "", time.Second).Render(context.Background(), renderRequest())

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrRendererUnavailable)
	assert.Contains(t, err.Error(), "unknown template")
}

func TestHTTPRenderer_RejectsNonPDF(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	_, err := renderer.NewHTTPRenderer(srv.URL, "", time.Second).Render(context.Background(), renderRequest())

	assert.Error(t, err)
}

func TestHTTPRenderer_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := renderer.NewHTTPRenderer(url, "", time.Second).Render(context.Background(), renderRequest())

	assert.ErrorIs(t, err, domain.ErrRendererUnavailable)
}

func TestNew_WithoutURL(t *testing.T) {
	_, err := renderer.New(&config.RendererConfig{}).Render(context.Background(), renderRequest())

	assert.ErrorIs(t, err, domain.ErrRendererUnavailable)
}
