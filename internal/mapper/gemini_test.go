package mapper_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formpilot/internal/config"
	"formpilot/internal/domain"
	"formpilot/internal/mapper"
	"formpilot/internal/port"
)

func geminiMapperConfig() *config.ProviderConfig {
	return &config.ProviderConfig{Provider: "gemini", APIKey: "test-key", DefaultModel: "test-model"}
}

func geminiTextResponse(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]interface{}{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
}

func TestGemini_MapFields(t *testing.T) {
	commands := `[{"action": "fill", "selector": "input[id='surname']", "value": "Nguyen"}]`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
			GenerationConfig struct {
				ResponseMimeType string `json:"responseMimeType"`
			} `json:"generationConfig"`
		}
		assert.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)
		if assert.NotEmpty(t, req.Contents) && assert.NotEmpty(t, req.Contents[0].Parts) {
			assert.Contains(t, req.Contents[0].Parts[0].Text, "HTML Form:")
			assert.Contains(t, req.Contents[0].Parts[0].Text, `"attorney_family_name": "Nguyen"`)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(geminiTextResponse(commands))
	}))
	defer server.Close()

	g := mapper.NewGeminiWithBaseURL(geminiMapperConfig(), 0, server.URL)
	out, err := g.MapFields(context.Background(), port.MapInput{
		Markup: "<form><input id='surname'></form>",
		Fields: []domain.FieldValue{{Name: "attorney_family_name", Value: strPtr("Nguyen")}},
	})

	require.NoError(t, err)
	require.Len(t, out.Operations, 1)
	assert.Equal(t, domain.ActionFill, out.Operations[0].Action)
	assert.Equal(t, "input[id='surname']", out.Operations[0].Selector)
	assert.Equal(t, "test-model", out.ModelUsed)
	assert.JSONEq(t, commands, string(out.RawJSON))
}

func TestGemini_MapFields_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	g := mapper.NewGeminiWithBaseURL(geminiMapperConfig(), 0, server.URL)
	_, err := g.MapFields(context.Background(), port.MapInput{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestGemini_MapFields_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	g := mapper.NewGeminiWithBaseURL(geminiMapperConfig(), 0, server.URL)
	_, err := g.MapFields(context.Background(), port.MapInput{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestGemini_MapFields_TruncatedAtTokenLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := geminiTextResponse(`[{"action": "fill"`)
		resp["candidates"].([]map[string]interface{})[0]["finishReason"] = "MAX_TOKENS"
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	g := mapper.NewGeminiWithBaseURL(geminiMapperConfig(), 0, server.URL)
	_, err := g.MapFields(context.Background(), port.MapInput{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}

func TestGemini_MapFields_UnparseableCommands(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(geminiTextResponse("no fields found"))
	}))
	defer server.Close()

	g := mapper.NewGeminiWithBaseURL(geminiMapperConfig(), 0, server.URL)
	_, err := g.MapFields(context.Background(), port.MapInput{})

	assert.Error(t, err)
}
