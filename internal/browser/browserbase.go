// Package browser provisions browser sessions and exposes them as
// port.PageSession. The Browserbase provider drives a remote Chrome over
// CDP; the local provider runs a headless Chrome on this machine with the
// same contract.
package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/chromedp/chromedp"

	"formpilot/internal/config"
	"formpilot/internal/domain"
	"formpilot/internal/port"
)

const defaultAPIEndpoint = "https://api.browserbase.com"

// NewProvider returns the session provider the configuration selects. An
// empty provider name means Browserbase.
func NewProvider(cfg *config.BrowserConfig) (port.BrowserProvider, error) {
	switch cfg.Provider {
	case "", "browserbase":
		return NewBrowserbaseProvider(cfg), nil
	case "local":
		return NewLocalProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unknown browser provider: %s", cfg.Provider)
	}
}

// BrowserbaseProvider creates remote Chrome sessions through the Browserbase
// REST API and attaches to them over the session's CDP connect URL.
type BrowserbaseProvider struct {
	apiKey         string
	projectID      string
	endpoint       string
	connectTimeout time.Duration
	navTimeout     time.Duration
	settle         time.Duration
	client         *http.Client
}

// NewBrowserbaseProvider creates a provider from configuration.
func NewBrowserbaseProvider(cfg *config.BrowserConfig) *BrowserbaseProvider {
	return newBrowserbaseProvider(cfg, cfg.APIEndpoint)
}

// NewBrowserbaseProviderWithEndpoint creates a provider pointing at a custom
// API endpoint (for testing).
func NewBrowserbaseProviderWithEndpoint(cfg *config.BrowserConfig, endpoint string) *BrowserbaseProvider {
	return newBrowserbaseProvider(cfg, endpoint)
}

func newBrowserbaseProvider(cfg *config.BrowserConfig, endpoint string) *BrowserbaseProvider {
	if endpoint == "" {
		endpoint = defaultAPIEndpoint
	}
	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 30 * time.Second
	}
	return &BrowserbaseProvider{
		apiKey:         cfg.APIKey,
		projectID:      cfg.ProjectID,
		endpoint:       endpoint,
		connectTimeout: connectTimeout,
		navTimeout:     cfg.NavigationTimeout,
		settle:         cfg.SettleDelay,
		client:         &http.Client{Timeout: 30 * time.Second},
	}
}

// sessionInfo is the slice of the Browserbase session resource we need.
type sessionInfo struct {
	ID         string `json:"id"`
	ConnectURL string `json:"connectUrl"`
}

func (p *BrowserbaseProvider) NewSession(ctx context.Context) (port.PageSession, error) {
	info, err := p.createSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionCreate, err)
	}
	log.Printf("browser.BrowserbaseProvider: created session %s", info.ID)

	viewerURL := p.debugViewerURL(ctx, info.ID)

	allocCtx, allocCancel := chromedp.NewRemoteAllocator(ctx, info.ConnectURL, chromedp.NoModifyURL)
	taskCtx, taskCancel := chromedp.NewContext(allocCtx)

	connectCtx, cancel := context.WithTimeout(taskCtx, p.connectTimeout)
	defer cancel()
	if err := chromedp.Run(connectCtx); err != nil {
		taskCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: session %s: %v", domain.ErrBrowserConnect, info.ID, err)
	}

	return &pageSession{
		taskCtx:    taskCtx,
		cancels:    []context.CancelFunc{taskCancel, allocCancel},
		sessionID:  info.ID,
		viewerURL:  viewerURL,
		navTimeout: p.navTimeout,
		settle:     p.settle,
	}, nil
}

func (p *BrowserbaseProvider) createSession(ctx context.Context) (*sessionInfo, error) {
	body, err := json.Marshal(map[string]interface{}{"projectId": p.projectID})
	if err != nil {
		return nil, fmt.Errorf("marshaling session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"/v1/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-BB-API-Key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling browserbase API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading session response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("browserbase API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var info sessionInfo
	if err := json.Unmarshal(respBody, &info); err != nil {
		return nil, fmt.Errorf("unmarshaling session response: %w", err)
	}
	if info.ConnectURL == "" {
		return nil, fmt.Errorf("session %s has no connect URL", info.ID)
	}
	return &info, nil
}

// debugViewerURL fetches the live debugger view for a session. The viewer is
// a convenience for humans watching the run, so any failure here downgrades
// to a log line.
func (p *BrowserbaseProvider) debugViewerURL(ctx context.Context, sessionID string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint+"/v1/sessions/"+sessionID+"/debug", nil)
	if err != nil {
		return ""
	}
	req.Header.Set("X-BB-API-Key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("browser.BrowserbaseProvider: debug view unavailable for %s: %v", sessionID, err)
		return ""
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		log.Printf("browser.BrowserbaseProvider: debug view unavailable for %s (status %d)", sessionID, resp.StatusCode)
		return ""
	}

	var debug struct {
		DebuggerFullscreenURL string `json:"debuggerFullscreenUrl"`
		DebuggerURL           string `json:"debuggerUrl"`
	}
	if err := json.Unmarshal(body, &debug); err != nil {
		return ""
	}
	if debug.DebuggerFullscreenURL != "" {
		return debug.DebuggerFullscreenURL
	}
	return debug.DebuggerURL
}
