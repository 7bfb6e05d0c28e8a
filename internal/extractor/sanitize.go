package extractor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"formpilot/internal/domain"
)

// StripJSONFences removes markdown code fences some models wrap around JSON
// output despite instructions not to.
func StripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	return s
}

// DecodeRecord turns raw model output into a CaseRecord, normalizing sloppy
// values on the way: blank strings and textual null markers become nil, and
// bare numbers (ZIP codes, phone digits) are coerced to strings. Values that
// are neither strings nor numbers are dropped rather than failing the decode.
func DecodeRecord(raw string) (*domain.CaseRecord, error) {
	text := StripJSONFences(raw)

	var m map[string]interface{}
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return nil, fmt.Errorf("parsing LLM JSON output: %w (raw: %s)", err, truncate(text, 500))
	}

	norm := make(map[string]*string, len(m))
	for k, v := range m {
		switch t := v.(type) {
		case string:
			s := strings.TrimSpace(t)
			if s == "" || strings.EqualFold(s, "null") || strings.EqualFold(s, "n/a") {
				continue
			}
			norm[k] = &s
		case float64:
			s := strconv.FormatFloat(t, 'f', -1, 64)
			norm[k] = &s
		}
	}

	b, err := json.Marshal(norm)
	if err != nil {
		return nil, fmt.Errorf("re-encoding normalized record: %w", err)
	}
	var rec domain.CaseRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, fmt.Errorf("decoding normalized record: %w", err)
	}
	return &rec, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
