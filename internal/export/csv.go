// Package export renders a stored case record as CSV or XLSX for download.
// Both formats share one wide layout: metadata columns followed by every
// record field in canonical order, one row per record.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"formpilot/internal/domain"
)

// BOM is the UTF-8 byte order mark, written ahead of CSV output for Excel
// compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var metaColumns = []string{
	"Token",
	"Extraction Status",
	"Model",
	"Created At",
}

// acronyms maps field-name tokens that are not plain words to their header
// spelling.
var acronyms = map[string]string{
	"uscis": "USCIS",
	"zip":   "ZIP",
	"apt":   "Apt",
	"ste":   "Ste",
	"flr":   "Flr",
}

// Headers returns the full column header row: metadata first, then one
// column per record field in canonical order.
func Headers() []string {
	names := domain.FieldNames()
	headers := make([]string, 0, len(metaColumns)+len(names))
	headers = append(headers, metaColumns...)
	for _, name := range names {
		headers = append(headers, headerize(name))
	}
	return headers
}

// headerize turns a snake_case field name into a column header.
func headerize(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if special, ok := acronyms[w]; ok {
			words[i] = special
			continue
		}
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// recordToRow flattens a stored record into one row matching Headers().
func recordToRow(rec *domain.StoredRecord) []string {
	fields := rec.Record.Fields()
	row := make([]string, 0, len(metaColumns)+len(fields))
	row = append(row,
		rec.Token,
		string(rec.Status),
		rec.Model,
		rec.CreatedAt.Format(time.RFC3339),
	)
	for _, f := range fields {
		if f.Value != nil {
			row = append(row, *f.Value)
		} else {
			row = append(row, "")
		}
	}
	return row
}

// WriteCSV writes the BOM, the header row, and one row for the record.
func WriteCSV(w io.Writer, rec *domain.StoredRecord) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers()); err != nil {
		return err
	}
	if err := cw.Write(recordToRow(rec)); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a token for use in Content-Disposition. Replaces
// non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized attachment filename in the form
// case_{token}_{YYYY-MM-DD}.{ext}.
func BuildFilename(token, ext string) string {
	return fmt.Sprintf("case_%s_%s.%s", SanitizeFilename(token), time.Now().Format("2006-01-02"), ext)
}
