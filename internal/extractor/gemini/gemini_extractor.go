package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"formpilot/internal/config"
	"formpilot/internal/domain"
	"formpilot/internal/extractor"
	"formpilot/internal/port"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

const (
	stateProcessing = "PROCESSING"
	stateFailed     = "FAILED"
)

func init() {
	extractor.RegisterProvider("gemini", func(cfg *config.ProviderConfig) (port.RecordExtractor, error) {
		return NewExtractor(cfg), nil
	})
}

// Extractor implements port.RecordExtractor using Google's Gemini API.
// Documents go through the Files API (upload, poll until processed) and the
// generate call references them by URI, so large PDFs never ride inline in
// the request body.
type Extractor struct {
	apiKey       string
	model        string
	baseURL      string
	pollInterval time.Duration
	pollAttempts int
	client       *http.Client
}

// NewExtractor creates a Gemini-based record extractor.
func NewExtractor(cfg *config.ProviderConfig) *Extractor {
	return newExtractor(cfg, defaultBaseURL)
}

// NewExtractorWithBaseURL creates an extractor pointing at a custom API base
// URL (for testing).
func NewExtractorWithBaseURL(cfg *config.ProviderConfig, baseURL string) *Extractor {
	return newExtractor(cfg, baseURL)
}

func newExtractor(cfg *config.ProviderConfig, baseURL string) *Extractor {
	model := cfg.DefaultModel
	if model == "" {
		model = "gemini-3-flash-preview"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	pollInterval := time.Duration(cfg.PollIntervalSecs) * time.Second
	if pollInterval == 0 {
		pollInterval = 2 * time.Second
	}
	pollAttempts := cfg.PollMaxAttempts
	if pollAttempts == 0 {
		pollAttempts = 30
	}
	return &Extractor{
		apiKey:       cfg.APIKey,
		model:        model,
		baseURL:      baseURL,
		pollInterval: pollInterval,
		pollAttempts: pollAttempts,
		client:       &http.Client{Timeout: timeout},
	}
}

func (e *Extractor) Extract(ctx context.Context, input port.ExtractInput) (*port.ExtractOutput, error) {
	if len(input.Documents) == 0 {
		return &port.ExtractOutput{Record: &domain.CaseRecord{}, ModelUsed: e.model}, nil
	}

	prompt := extractor.BuildExtractionPrompt()

	parts := make([]map[string]interface{}, 0, len(input.Documents)+1)
	for i := range input.Documents {
		doc := &input.Documents[i]
		mimeType, err := toGeminiMimeType(doc.ContentType)
		if err != nil {
			return nil, err
		}
		file, err := e.uploadFile(ctx, doc.FileName, mimeType, doc.Data)
		if err != nil {
			return nil, fmt.Errorf("uploading %s: %w", doc.FileName, err)
		}
		parts = append(parts, map[string]interface{}{
			"file_data": map[string]interface{}{
				"mime_type": mimeType,
				"file_uri":  file.URI,
			},
		})
	}
	parts = append(parts, map[string]interface{}{"text": prompt})

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"role":  "user",
				"parts": parts,
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType":   "application/json",
			"responseJsonSchema": extractor.JSONSchema(),
			"maxOutputTokens":    16384,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", e.baseURL, e.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(respBody))
		if resp.StatusCode == http.StatusTooManyRequests {
			retryAfter := extractor.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
			return nil, extractor.NewRateLimitError("gemini", baseErr, retryAfter)
		}
		return nil, baseErr
	}

	return parseResponse(respBody, e.model)
}

// fileInfo is the slice of the Files API resource this extractor needs.
type fileInfo struct {
	Name     string `json:"name"`
	URI      string `json:"uri"`
	State    string `json:"state"`
	MimeType string `json:"mimeType"`
}

// uploadFile pushes document bytes through the resumable upload protocol and
// waits until the file leaves the PROCESSING state.
func (e *Extractor) uploadFile(ctx context.Context, displayName, mimeType string, data []byte) (*fileInfo, error) {
	startBody, err := json.Marshal(map[string]interface{}{
		"file": map[string]interface{}{"display_name": displayName},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling upload start: %w", err)
	}

	startReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/upload/v1beta/files", bytes.NewReader(startBody))
	if err != nil {
		return nil, fmt.Errorf("creating upload start request: %w", err)
	}
	startReq.Header.Set("Content-Type", "application/json")
	startReq.Header.Set("x-goog-api-key", e.apiKey)
	startReq.Header.Set("X-Goog-Upload-Protocol", "resumable")
	startReq.Header.Set("X-Goog-Upload-Command", "start")
	startReq.Header.Set("X-Goog-Upload-Header-Content-Length", strconv.Itoa(len(data)))
	startReq.Header.Set("X-Goog-Upload-Header-Content-Type", mimeType)

	startResp, err := e.client.Do(startReq)
	if err != nil {
		return nil, fmt.Errorf("starting upload: %w", err)
	}
	startRespBody, _ := io.ReadAll(startResp.Body)
	_ = startResp.Body.Close()
	if startResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upload start failed (status %d): %s", startResp.StatusCode, string(startRespBody))
	}

	uploadURL := startResp.Header.Get("X-Goog-Upload-URL")
	if uploadURL == "" {
		return nil, fmt.Errorf("upload session missing X-Goog-Upload-URL header")
	}

	dataReq, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating upload data request: %w", err)
	}
	dataReq.Header.Set("X-Goog-Upload-Offset", "0")
	dataReq.Header.Set("X-Goog-Upload-Command", "upload, finalize")

	dataResp, err := e.client.Do(dataReq)
	if err != nil {
		return nil, fmt.Errorf("sending upload data: %w", err)
	}
	dataRespBody, err := io.ReadAll(dataResp.Body)
	_ = dataResp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading upload response: %w", err)
	}
	if dataResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upload failed (status %d): %s", dataResp.StatusCode, string(dataRespBody))
	}

	var wrapper struct {
		File fileInfo `json:"file"`
	}
	if err := json.Unmarshal(dataRespBody, &wrapper); err != nil {
		return nil, fmt.Errorf("unmarshaling upload response: %w", err)
	}

	return e.waitForProcessing(ctx, &wrapper.File)
}

// waitForProcessing polls the file resource until it is ready. The provider
// reports PROCESSING until OCR and indexing finish; FAILED is terminal.
func (e *Extractor) waitForProcessing(ctx context.Context, file *fileInfo) (*fileInfo, error) {
	for attempt := 0; file.State == stateProcessing; attempt++ {
		if attempt >= e.pollAttempts {
			return nil, &extractor.ProcessingTimeoutError{FileName: file.Name, Attempts: attempt}
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(e.pollInterval):
		}

		updated, err := e.getFile(ctx, file.Name)
		if err != nil {
			return nil, err
		}
		file = updated
	}

	if file.State == stateFailed {
		return nil, fmt.Errorf("file processing failed for %s", file.Name)
	}
	return file, nil
}

func (e *Extractor) getFile(ctx context.Context, name string) (*fileInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/v1beta/"+name, nil)
	if err != nil {
		return nil, fmt.Errorf("creating file status request: %w", err)
	}
	req.Header.Set("x-goog-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching file status: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading file status: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file status failed (status %d): %s", resp.StatusCode, string(body))
	}

	var file fileInfo
	if err := json.Unmarshal(body, &file); err != nil {
		return nil, fmt.Errorf("unmarshaling file status: %w", err)
	}
	return &file, nil
}

func toGeminiMimeType(contentType string) (string, error) {
	switch contentType {
	case "application/pdf", "image/jpeg", "image/png", "image/webp":
		return contentType, nil
	default:
		return "", fmt.Errorf("unsupported content type for extraction: %s", contentType)
	}
}

// geminiResponse models the Gemini API response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

func parseResponse(body []byte, model string) (*port.ExtractOutput, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshaling response: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from API: no candidates")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from API: no parts")
	}
	if resp.Candidates[0].FinishReason == "MAX_TOKENS" {
		return nil, fmt.Errorf("output truncated (finishReason: MAX_TOKENS): response exceeded output token limit")
	}

	text := resp.Candidates[0].Content.Parts[0].Text

	record, err := extractor.DecodeRecord(text)
	if err != nil {
		return nil, err
	}

	return &port.ExtractOutput{
		Record:    record,
		ModelUsed: model,
		RawJSON:   json.RawMessage(text),
	}, nil
}
