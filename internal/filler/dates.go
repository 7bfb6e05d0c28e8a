package filler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var targetDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ConvertDate normalizes a date value into the YYYY-MM-DD notation that date
// inputs expect. Input arrives month-first with slash separators, the
// notation the extraction prompt enforces. A value already in the target
// notation is returned unchanged, which makes the conversion idempotent. A
// value that does not parse is returned as-is; a bad date costs one field,
// not the run.
func ConvertDate(value string) string {
	trimmed := strings.TrimSpace(value)
	if targetDateRe.MatchString(trimmed) {
		return trimmed
	}

	parts := strings.Split(trimmed, "/")
	if len(parts) != 3 {
		return value
	}
	month, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	day, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return value
	}
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1000 || year > 9999 {
		return value
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
