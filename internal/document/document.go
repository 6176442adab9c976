package document

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// updatePrefix precedes the timestamp on the top-level page.
const updatePrefix = "Update: "

// Document is a parsed page.
type Document struct {
	doc *goquery.Document
}

// Parse builds a Document from raw markup. It never fails: input that
// cannot be parsed at all yields an empty document.
func Parse(text string) *Document {
	root, err := html.Parse(strings.NewReader(text))
	if err != nil {
		root = &html.Node{Type: html.DocumentNode}
	}
	return &Document{doc: goquery.NewDocumentFromNode(root)}
}

// Texts returns the normalized text of every node matching sel, in document order.
func (d *Document) Texts(sel Selector) []string {
	return texts(d.doc.FindMatcher(sel.sel))
}

// Attrs returns the attr value of every node matching sel, in document order.
// A matched node without the attribute yields a MissingAttributeError.
func (d *Document) Attrs(sel Selector, attr string) ([]string, error) {
	matches := d.doc.FindMatcher(sel.sel)
	out := make([]string, 0, matches.Length())

	var missing error
	matches.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v, ok := s.Attr(attr)
		if !ok {
			missing = &MissingAttributeError{Selector: sel.String(), Attr: attr}
			return false
		}
		out = append(out, strings.TrimSpace(v))
		return true
	})
	if missing != nil {
		return nil, missing
	}
	return out, nil
}

// Timestamp returns the portal update time with the "Update: " prefix removed.
func (d *Document) Timestamp() (string, error) {
	ts := d.Texts(Timestamp)
	if len(ts) == 0 {
		return "", &MissingNodeError{Selector: Timestamp.String()}
	}
	return strings.TrimPrefix(ts[0], updatePrefix), nil
}

func texts(s *goquery.Selection) []string {
	out := make([]string, 0, s.Length())
	s.Each(func(_ int, n *goquery.Selection) {
		out = append(out, normalizeText(n.Text()))
	})
	return out
}

// normalizeText trims the text and collapses inner runs of whitespace.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
