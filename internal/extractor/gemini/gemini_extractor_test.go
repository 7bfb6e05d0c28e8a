package gemini_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formpilot/internal/config"
	"formpilot/internal/domain"
	"formpilot/internal/extractor"
	"formpilot/internal/extractor/gemini"
	"formpilot/internal/port"
)

func inputFor(docs ...domain.SourceDocument) port.ExtractInput {
	return port.ExtractInput{Documents: docs}
}

func testConfig() *config.ProviderConfig {
	return &config.ProviderConfig{
		Provider:         "gemini",
		APIKey:           "test-key",
		DefaultModel:     "test-model",
		PollIntervalSecs: 1,
		PollMaxAttempts:  3,
	}
}

func passportDoc() domain.SourceDocument {
	return domain.SourceDocument{
		Kind:        domain.DocumentPassport,
		FileName:    "passport.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4 passport bytes"),
	}
}

// registerUploadEndpoints wires the resumable upload protocol into the mux:
// the start call hands back an upload URL, and the data call returns the file
// resource in the given state.
func registerUploadEndpoints(t *testing.T, mux *http.ServeMux, serverURL string, doc domain.SourceDocument, state string) {
	t.Helper()

	mux.HandleFunc("/upload/v1beta/files", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "resumable", r.Header.Get("X-Goog-Upload-Protocol"))
		assert.Equal(t, "start", r.Header.Get("X-Goog-Upload-Command"))
		assert.Equal(t, fmt.Sprint(len(doc.Data)), r.Header.Get("X-Goog-Upload-Header-Content-Length"))
		assert.Equal(t, doc.ContentType, r.Header.Get("X-Goog-Upload-Header-Content-Type"))

		w.Header().Set("X-Goog-Upload-URL", serverURL+"/upload-session")
		_, _ = w.Write([]byte("{}"))
	})

	mux.HandleFunc("/upload-session", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "0", r.Header.Get("X-Goog-Upload-Offset"))
		assert.Equal(t, "upload, finalize", r.Header.Get("X-Goog-Upload-Command"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, doc.Data, body)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"file": map[string]interface{}{
				"name":     "files/abc123",
				"uri":      "https://generativelanguage.googleapis.com/v1beta/files/abc123",
				"state":    state,
				"mimeType": doc.ContentType,
			},
		})
	})
}

func generateResponse(recordJSON string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]interface{}{{"text": recordJSON}},
				},
				"finishReason": "STOP",
			},
		},
	}
}

func TestExtractor_Extract(t *testing.T) {
	doc := passportDoc()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	registerUploadEndpoints(t, mux, server.URL, doc, "ACTIVE")
	mux.HandleFunc("/v1beta/models/test-model:generateContent", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		body, _ := io.ReadAll(r.Body)
		var req struct {
			Contents []struct {
				Parts []map[string]interface{} `json:"parts"`
			} `json:"contents"`
			GenerationConfig map[string]interface{} `json:"generationConfig"`
		}
		assert.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "application/json", req.GenerationConfig["responseMimeType"])
		assert.NotNil(t, req.GenerationConfig["responseJsonSchema"])
		if assert.NotEmpty(t, req.Contents) && assert.Len(t, req.Contents[0].Parts, 2) {
			fileData, ok := req.Contents[0].Parts[0]["file_data"].(map[string]interface{})
			if assert.True(t, ok) {
				assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta/files/abc123", fileData["file_uri"])
				assert.Equal(t, "application/pdf", fileData["mime_type"])
			}
			text, _ := req.Contents[0].Parts[1]["text"].(string)
			assert.Contains(t, text, "Extract ALL information")
		}

		_ = json.NewEncoder(w).Encode(generateResponse(`{"attorney_family_name": "Nguyen", "passport_number": "X1234567"}`))
	})

	e := gemini.NewExtractorWithBaseURL(testConfig(), server.URL)
	out, err := e.Extract(context.Background(), inputFor(doc))

	require.NoError(t, err)
	require.NotNil(t, out.Record.AttorneyFamilyName)
	assert.Equal(t, "Nguyen", *out.Record.AttorneyFamilyName)
	require.NotNil(t, out.Record.PassportNumber)
	assert.Equal(t, "X1234567", *out.Record.PassportNumber)
	assert.Equal(t, "test-model", out.ModelUsed)
	assert.JSONEq(t, `{"attorney_family_name": "Nguyen", "passport_number": "X1234567"}`, string(out.RawJSON))
}

func TestExtractor_Extract_PollsUntilActive(t *testing.T) {
	doc := passportDoc()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	var polls atomic.Int32
	registerUploadEndpoints(t, mux, server.URL, doc, "PROCESSING")
	mux.HandleFunc("/v1beta/files/abc123", func(w http.ResponseWriter, r *http.Request) {
		polls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"name":  "files/abc123",
			"uri":   "https://generativelanguage.googleapis.com/v1beta/files/abc123",
			"state": "ACTIVE",
		})
	})
	mux.HandleFunc("/v1beta/models/test-model:generateContent", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(generateResponse(`{"passport_number": "X1234567"}`))
	})

	e := gemini.NewExtractorWithBaseURL(testConfig(), server.URL)
	out, err := e.Extract(context.Background(), inputFor(doc))

	require.NoError(t, err)
	require.NotNil(t, out.Record.PassportNumber)
	assert.Equal(t, int32(1), polls.Load())
}

func TestExtractor_Extract_ProcessingTimeout(t *testing.T) {
	doc := passportDoc()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	registerUploadEndpoints(t, mux, server.URL, doc, "PROCESSING")
	mux.HandleFunc("/v1beta/files/abc123", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"name":  "files/abc123",
			"state": "PROCESSING",
		})
	})

	cfg := testConfig()
	cfg.PollMaxAttempts = 1
	e := gemini.NewExtractorWithBaseURL(cfg, server.URL)
	_, err := e.Extract(context.Background(), inputFor(doc))

	require.Error(t, err)
	var timeoutErr *extractor.ProcessingTimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, "files/abc123", timeoutErr.FileName)
}

func TestExtractor_Extract_ProcessingFailed(t *testing.T) {
	doc := passportDoc()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	registerUploadEndpoints(t, mux, server.URL, doc, "FAILED")

	e := gemini.NewExtractorWithBaseURL(testConfig(), server.URL)
	_, err := e.Extract(context.Background(), inputFor(doc))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "file processing failed")
}

func TestExtractor_Extract_RateLimited(t *testing.T) {
	doc := passportDoc()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	registerUploadEndpoints(t, mux, server.URL, doc, "ACTIVE")
	mux.HandleFunc("/v1beta/models/test-model:generateContent", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	})

	e := gemini.NewExtractorWithBaseURL(testConfig(), server.URL)
	_, err := e.Extract(context.Background(), inputFor(doc))

	require.Error(t, err)
	var rlErr *extractor.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "gemini", rlErr.Provider)
	assert.Equal(t, 30*time.Second, rlErr.RetryAfter)
}

func TestExtractor_Extract_TruncatedOutput(t *testing.T) {
	doc := passportDoc()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	registerUploadEndpoints(t, mux, server.URL, doc, "ACTIVE")
	mux.HandleFunc("/v1beta/models/test-model:generateContent", func(w http.ResponseWriter, r *http.Request) {
		resp := generateResponse(`{"attorney_family`)
		resp["candidates"].([]map[string]interface{})[0]["finishReason"] = "MAX_TOKENS"
		_ = json.NewEncoder(w).Encode(resp)
	})

	e := gemini.NewExtractorWithBaseURL(testConfig(), server.URL)
	_, err := e.Extract(context.Background(), inputFor(doc))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "truncated")
}

func TestExtractor_Extract_UnsupportedContentType(t *testing.T) {
	doc := passportDoc()
	doc.ContentType = "text/plain"

	e := gemini.NewExtractorWithBaseURL(testConfig(), "http://invalid.invalid")
	_, err := e.Extract(context.Background(), inputFor(doc))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
}

func TestExtractor_Extract_NoDocuments(t *testing.T) {
	e := gemini.NewExtractorWithBaseURL(testConfig(), "http://invalid.invalid")

	out, err := e.Extract(context.Background(), inputFor())

	require.NoError(t, err)
	assert.True(t, out.Record.IsEmpty())
	assert.Equal(t, "test-model", out.ModelUsed)
}
