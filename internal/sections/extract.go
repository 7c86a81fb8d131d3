// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sections turns rendered encyclopedia page HTML into an ordered map
// of heading → body text and labels the sections that describe an exam's
// summary, syllabus, and pattern.
package sections

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/examfetch/pkg/types"
)

// SummaryKey is the synthetic key that holds the page's lead paragraph.
const SummaryKey = "summary"

const (
	// strippedSelector matches elements removed before extraction. Tables
	// and infoboxes put unrelated text next to headings.
	strippedSelector = "table, .infobox, style, script"
	headingSelector  = "h1, h2, h3, h4, h5, h6"

	// headingWrapperClass marks the <div> Wikipedia wraps around headings.
	headingWrapperClass = "mw-heading"
)

// bodyTags are the sibling elements whose text belongs to a section.
var bodyTags = map[string]bool{"p": true, "ul": true, "ol": true, "div": true}

// Extract parses page markup and returns its sections in document order.
//
// Each h1–h6 heading becomes a key (normalised, whitespace-collapsed,
// lower-cased). Its value is the text of the p/ul/ol/div siblings that
// follow it, joined by a blank line, up to the next heading of any level.
// Headings without body text are skipped. The first non-empty paragraph
// that no section claimed (normally the lead, above the first heading) is
// stored under SummaryKey unless a "Summary" heading already produced it.
//
// Markup that cannot be parsed yields an empty map.
func Extract(markup string) types.SectionMap {
	out := types.NewSectionMap()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return out
	}
	doc.Find(strippedSelector).Remove()

	claimed := make(map[*html.Node]bool)
	doc.Find(headingSelector).Each(func(_ int, h *goquery.Selection) {
		node := h.Get(0)
		key := headingKey(nodeText(node))
		if key == "" {
			return
		}
		blocks := collectBody(walkAnchor(node))
		if len(blocks) == 0 {
			return
		}
		parts := make([]string, len(blocks))
		for i, b := range blocks {
			parts[i] = b.text
			claimed[b.node] = true
		}
		out.Set(key, strings.Join(parts, "\n\n"))
	})

	doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		node := p.Get(0)
		if insideClaimed(node, claimed) {
			return true
		}
		lead := collapse(nodeText(node))
		if lead == "" {
			return true
		}
		out.SetDefault(SummaryKey, lead)
		return false
	})

	return out
}

type block struct {
	node *html.Node
	text string
}

// collectBody walks the siblings after start and gathers body blocks until
// the first heading. Only the immediate sibling list is scanned; nesting
// below a sibling contributes through that sibling's text.
func collectBody(start *html.Node) []block {
	siblings := childElements(start.Parent)

	pos := -1
	for i, n := range siblings {
		if n == start {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil
	}

	var parts []block
	for i := pos + 1; i < len(siblings); i++ {
		n := siblings[i]
		if isHeadingBlock(n) {
			break
		}
		if !bodyTags[n.Data] {
			continue
		}
		if txt := collapse(nodeText(n)); txt != "" {
			parts = append(parts, block{node: n, text: txt})
		}
	}
	return parts
}

func insideClaimed(n *html.Node, claimed map[*html.Node]bool) bool {
	for ; n != nil; n = n.Parent {
		if claimed[n] {
			return true
		}
	}
	return false
}

// walkAnchor returns the node whose siblings hold the heading's body. For a
// heading that is the only element inside a mw-heading wrapper, that is the
// wrapper; otherwise it is the heading itself.
func walkAnchor(h *html.Node) *html.Node {
	p := h.Parent
	if p == nil || !isHeadingWrapper(p) {
		return h
	}
	if len(childElements(p)) != 1 {
		return h
	}
	return p
}

// childElements flattens the element children of n into a slice in
// document order. Text and comment nodes are dropped.
func childElements(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func isHeadingBlock(n *html.Node) bool {
	return isHeadingTag(n.Data) || isHeadingWrapper(n)
}

func isHeadingTag(tag string) bool {
	return len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6'
}

func isHeadingWrapper(n *html.Node) bool {
	if n.Type != html.ElementNode || n.Data != "div" {
		return false
	}
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == headingWrapperClass {
				return true
			}
		}
	}
	return false
}

// nodeText concatenates every text node below n, separated by spaces.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func headingKey(s string) string {
	return cases.Lower(language.Und).String(collapse(norm.NFKC.String(s)))
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
