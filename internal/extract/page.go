package extract

import (
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Page is a snapshot of a rendered DOM.
type Page struct {
	URL string
	Doc *goquery.Document
}

func NewPage(url string, doc *goquery.Document) *Page {
	return &Page{URL: url, Doc: doc}
}

// ParsePage builds a Page from serialized HTML, typically the outerHTML a
// browser reports after scripts have run.
func ParsePage(url string, r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return NewPage(url, doc), nil
}

func (p *Page) root() *html.Node {
	if p == nil || p.Doc == nil || len(p.Doc.Nodes) == 0 {
		return nil
	}
	return p.Doc.Nodes[0]
}

var skippedTags = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"template": {},
	"head":     {},
}

var blockTags = map[string]struct{}{
	"address": {}, "article": {}, "aside": {}, "blockquote": {}, "br": {},
	"dd": {}, "div": {}, "dl": {}, "dt": {}, "fieldset": {}, "figcaption": {},
	"figure": {}, "footer": {}, "form": {}, "h1": {}, "h2": {}, "h3": {},
	"h4": {}, "h5": {}, "h6": {}, "header": {}, "hr": {}, "li": {}, "main": {},
	"nav": {}, "ol": {}, "p": {}, "pre": {}, "section": {}, "table": {},
	"td": {}, "th": {}, "tr": {}, "ul": {},
}

// Text returns the visible text of n the way a browser's innerText would:
// whitespace inside a line is collapsed, block elements start new lines and
// blank lines are dropped.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	collectText(n, &sb)

	var lines []string
	for _, line := range strings.Split(sb.String(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// SelectionText is Text over the first node of s.
func SelectionText(s *goquery.Selection) string {
	if s == nil || s.Length() == 0 {
		return ""
	}
	return Text(s.Nodes[0])
}

func collectText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(collapseSpace(n.Data))
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		if _, skip := skippedTags[n.Data]; skip {
			return
		}
	}

	_, block := blockTags[n.Data]
	if n.Type == html.ElementNode && block {
		sb.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
	if n.Type == html.ElementNode && block {
		sb.WriteByte('\n')
	}
}

// collapseSpace turns every whitespace run, newlines included, into a single
// space so that only block boundaries produce line breaks.
func collapseSpace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !space {
				sb.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		sb.WriteRune(r)
	}
	return sb.String()
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
