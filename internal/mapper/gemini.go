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

const geminiBaseURL = "https://generativelanguage.googleapis.com"

// Gemini implements port.FieldMapper against the Gemini generateContent API.
// The mapping call is text-only: the prompt carries the truncated markup and
// the field values, and responseMimeType forces a JSON reply. No response
// schema is set; the command array shape is enforced by the prompt and by
// DecodeOperations.
type Gemini struct {
	apiKey      string
	model       string
	baseURL     string
	markupLimit int
	client      *http.Client
}

// NewGemini creates a Gemini-backed field mapper.
func NewGemini(cfg *config.ProviderConfig, markupLimit int) *Gemini {
	return newGemini(cfg, markupLimit, geminiBaseURL)
}

// NewGeminiWithBaseURL creates a mapper pointing at a custom API base URL
// (for testing).
func NewGeminiWithBaseURL(cfg *config.ProviderConfig, markupLimit int, baseURL string) *Gemini {
	return newGemini(cfg, markupLimit, baseURL)
}

func newGemini(cfg *config.ProviderConfig, markupLimit int, baseURL string) *Gemini {
	model := cfg.DefaultModel
	if model == "" {
		model = "gemini-3-flash-preview"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Gemini{
		apiKey:      cfg.APIKey,
		model:       model,
		baseURL:     baseURL,
		markupLimit: markupLimit,
		client:      &http.Client{Timeout: timeout},
	}
}

func (g *Gemini) MapFields(ctx context.Context, input port.MapInput) (*port.MapOutput, error) {
	prompt := BuildMappingPrompt(input.Markup, input.Fields, g.markupLimit)

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role": "user",
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
			"maxOutputTokens":  8192,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
			FinishReason string `json:"finishReason"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}

	var text string
	for _, part := range parsed.Candidates[0].Content.Parts {
		text += part.Text
	}
	if parsed.Candidates[0].FinishReason == "MAX_TOKENS" {
		return nil, fmt.Errorf("response truncated at token limit")
	}

	ops, err := DecodeOperations(text)
	if err != nil {
		return nil, err
	}
	return &port.MapOutput{
		Operations: ops,
		ModelUsed:  g.model,
		RawJSON:    json.RawMessage(text),
	}, nil
}
