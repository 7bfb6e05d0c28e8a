package markup

import "strings"

// SubstringInspector answers id-presence queries with a raw substring scan.
// The needle is `id="<fragment>` with no closing quote, so an id that starts
// with the fragment also matches. Overlapping ids therefore produce false
// positives; the fill executor's element-count check catches operations aimed
// at ids that do not actually exist.
type SubstringInspector struct {
	markup string
}

// NewSubstringInspector creates an inspector over the given markup.
func NewSubstringInspector(markup string) *SubstringInspector {
	return &SubstringInspector{markup: markup}
}

func (s *SubstringInspector) HasID(fragment string) bool {
	return strings.Contains(s.markup, `id="`+fragment)
}

func (s *SubstringInspector) KindOf(fragment string) ElementKind {
	idx := strings.Index(s.markup, `id="`+fragment)
	if idx < 0 {
		return KindText
	}

	// Slice out the enclosing tag: from the nearest '<' before the id
	// attribute to the next '>' after it.
	start := strings.LastIndexByte(s.markup[:idx], '<')
	if start < 0 {
		start = 0
	}
	end := strings.IndexByte(s.markup[idx:], '>')
	if end < 0 {
		end = len(s.markup) - idx - 1
	}
	tag := s.markup[start : idx+end+1]

	switch {
	case strings.HasPrefix(tag, "<select"):
		return KindSelect
	case hasAttr(tag, "type", "date"):
		return KindDate
	case hasAttr(tag, "type", "checkbox"):
		return KindCheckbox
	default:
		return KindText
	}
}

// hasAttr reports whether the tag text carries attr=value in either quoting
// style.
func hasAttr(tag, attr, value string) bool {
	return strings.Contains(tag, attr+`="`+value+`"`) ||
		strings.Contains(tag, attr+`='`+value+`'`)
}
