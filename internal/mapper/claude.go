package mapper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"formpilot/internal/config"
	"formpilot/internal/port"
)

const (
	claudeAPIURL     = "https://api.anthropic.com/v1/messages"
	claudeAPIVersion = "2023-06-01"
)

// Claude implements port.FieldMapper against the Anthropic Messages API.
// Usually configured as the capable fallback tier behind a faster Gemini
// primary.
type Claude struct {
	apiKey      string
	model       string
	endpoint    string
	markupLimit int
	client      *http.Client
}

// NewClaude creates a Claude-backed field mapper.
func NewClaude(cfg *config.ProviderConfig, markupLimit int) *Claude {
	return newClaude(cfg, markupLimit, claudeAPIURL)
}

// NewClaudeWithEndpoint creates a mapper pointing at a custom API endpoint
// (for testing).
func NewClaudeWithEndpoint(cfg *config.ProviderConfig, markupLimit int, endpoint string) *Claude {
	return newClaude(cfg, markupLimit, endpoint)
}

func newClaude(cfg *config.ProviderConfig, markupLimit int, endpoint string) *Claude {
	model := cfg.DefaultModel
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Claude{
		apiKey:      cfg.APIKey,
		model:       model,
		endpoint:    endpoint,
		markupLimit: markupLimit,
		client:      &http.Client{Timeout: timeout},
	}
}

func (c *Claude) MapFields(ctx context.Context, input port.MapInput) (*port.MapOutput, error) {
	prompt := BuildMappingPrompt(input.Markup, input.Fields, c.markupLimit)

	reqBody := map[string]interface{}{
		"model":      c.model,
		"max_tokens": 8192,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{"type": "text", "text": prompt},
				},
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", claudeAPIVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling anthropic API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("anthropic API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		StopReason string `json:"stop_reason"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	var text string
	for _, block := range parsed.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return nil, fmt.Errorf("empty response from API")
	}
	if parsed.StopReason == "max_tokens" {
		return nil, fmt.Errorf("response truncated at token limit")
	}

	ops, err := DecodeOperations(text)
	if err != nil {
		return nil, err
	}
	return &port.MapOutput{
		Operations: ops,
		ModelUsed:  c.model,
		RawJSON:    json.RawMessage(text),
	}, nil
}
