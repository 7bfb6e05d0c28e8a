// Package markup answers presence and element-type questions about captured
// form HTML. The deterministic matcher walks candidate element ids through an
// Inspector instead of touching the raw markup, so the cheap substring scan
// can be swapped for a real DOM query without changing matcher logic.
package markup

import "fmt"

// ElementKind classifies the form element that owns a matched id.
type ElementKind string

const (
	KindText     ElementKind = "text"
	KindSelect   ElementKind = "select"
	KindDate     ElementKind = "date"
	KindCheckbox ElementKind = "checkbox"
)

// Inspector reports whether an element id is present in the markup and what
// kind of element carries it. Fragment matching is prefix-based: an id that
// merely starts with the fragment counts as present. The substring
// implementation accepts that imprecision; the DOM implementation mirrors it
// so the two are interchangeable.
type Inspector interface {
	// HasID reports whether any element's id attribute starts with fragment.
	HasID(fragment string) bool
	// KindOf classifies the first element whose id starts with fragment.
	// Returns KindText when the fragment is absent.
	KindOf(fragment string) ElementKind
}

// New returns the inspector implementation selected by name. An empty name
// selects the substring inspector.
func New(name, markup string) (Inspector, error) {
	switch name {
	case "", "substring":
		return NewSubstringInspector(markup), nil
	case "dom":
		return NewDOMInspector(markup)
	default:
		return nil, fmt.Errorf("unknown markup inspector: %s", name)
	}
}
