package markup

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DOMInspector answers id queries against a parsed document tree. It keeps
// the Inspector prefix-match contract via an attribute prefix selector, but
// classifies elements from their real node name and type attribute rather
// than from nearby text.
type DOMInspector struct {
	doc *goquery.Document
}

// NewDOMInspector parses the markup into a document tree.
func NewDOMInspector(markup string) (*DOMInspector, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}
	return &DOMInspector{doc: doc}, nil
}

func (d *DOMInspector) HasID(fragment string) bool {
	return d.find(fragment).Length() > 0
}

func (d *DOMInspector) KindOf(fragment string) ElementKind {
	sel := d.find(fragment).First()
	if sel.Length() == 0 {
		return KindText
	}
	if goquery.NodeName(sel) == "select" {
		return KindSelect
	}
	typ, _ := sel.Attr("type")
	switch strings.ToLower(typ) {
	case "date":
		return KindDate
	case "checkbox":
		return KindCheckbox
	default:
		return KindText
	}
}

func (d *DOMInspector) find(fragment string) *goquery.Selection {
	return d.doc.Find(fmt.Sprintf("[id^=%q]", fragment))
}
