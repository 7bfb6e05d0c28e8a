package browser_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formpilot/internal/browser"
	"formpilot/internal/config"
	"formpilot/internal/domain"
)

func browserConfig() *config.BrowserConfig {
	return &config.BrowserConfig{
		APIKey:         "test-key",
		ProjectID:      "proj-1",
		ConnectTimeout: 200 * time.Millisecond,
	}
}

func TestNewProvider(t *testing.T) {
	p, err := browser.NewProvider(&config.BrowserConfig{Provider: "browserbase"})
	require.NoError(t, err)
	assert.IsType(t, &browser.BrowserbaseProvider{}, p)

	p, err = browser.NewProvider(&config.BrowserConfig{})
	require.NoError(t, err)
	assert.IsType(t, &browser.BrowserbaseProvider{}, p, "empty provider defaults to browserbase")

	p, err = browser.NewProvider(&config.BrowserConfig{Provider: "local"})
	require.NoError(t, err)
	assert.IsType(t, &browser.LocalProvider{}, p)

	_, err = browser.NewProvider(&config.BrowserConfig{Provider: "selenium"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown browser provider")
}

func TestBrowserbaseProvider_NewSession_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/sessions", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-BB-API-Key"))

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "proj-1", body["projectId"])

		http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	p := browser.NewBrowserbaseProviderWithEndpoint(browserConfig(), server.URL)
	_, err := p.NewSession(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSessionCreate)
	assert.Contains(t, err.Error(), "status 401")
}

func TestBrowserbaseProvider_NewSession_MissingConnectURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "sess-1"})
	}))
	defer server.Close()

	p := browser.NewBrowserbaseProviderWithEndpoint(browserConfig(), server.URL)
	_, err := p.NewSession(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSessionCreate)
	assert.Contains(t, err.Error(), "no connect URL")
}

func TestBrowserbaseProvider_NewSession_ConnectFailure(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/v1/sessions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		// Nothing listens on port 9; the CDP attach must fail.
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":         "sess-1",
			"connectUrl": "ws://127.0.0.1:9/devtools/browser/dead",
		})
	})
	mux.HandleFunc("/v1/sessions/sess-1/debug", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-BB-API-Key"))
		http.NotFound(w, r)
	})

	p := browser.NewBrowserbaseProviderWithEndpoint(browserConfig(), server.URL)
	_, err := p.NewSession(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBrowserConnect)
	assert.Contains(t, err.Error(), "sess-1")
}
