package extract

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Strategy tries to read one field from a page. The bool reports whether the
// strategy matched; a matched strategy may still yield empty text.
type Strategy func(p *Page) (string, bool)

// First runs strategies in order and returns the first match.
func First(p *Page, strategies ...Strategy) string {
	for _, s := range strategies {
		if text, ok := s(p); ok {
			return text
		}
	}
	return ""
}

// Selector matches the first element, in document order, of a CSS selector
// group such as ".a, .b".
func Selector(css string) Strategy {
	return func(p *Page) (string, bool) {
		if p == nil || p.Doc == nil {
			return "", false
		}
		sel := p.Doc.Find(css)
		if sel.Length() == 0 {
			return "", false
		}
		return SelectionText(sel.First()), true
	}
}

// ListSelector returns the text of every element matching css.
func ListSelector(p *Page, css string) ([]string, bool) {
	if p == nil || p.Doc == nil {
		return nil, false
	}
	sel := p.Doc.Find(css)
	if sel.Length() == 0 {
		return nil, false
	}
	items := make([]string, 0, sel.Length())
	for _, n := range sel.Nodes {
		items = append(items, Text(n))
	}
	return items, true
}

const (
	minSiblingText = 5
	minParentText  = 20
	maxParentText  = 1000
)

// Keyword looks for heading-like elements whose own text mentions one of the
// keywords and reads the content next to them: the following sibling div,
// or failing that the parent block when its size is plausible for a single
// section rather than the whole page.
func Keyword(keywords ...string) Strategy {
	return func(p *Page) (string, bool) {
		root := p.root()
		if root == nil {
			return "", false
		}
		for _, key := range keywords {
			nodes, err := htmlquery.QueryAll(root, keywordXPath(key))
			if err != nil {
				continue
			}
			for _, el := range nodes {
				if text, ok := siblingText(el); ok {
					return text, true
				}
				if text, ok := parentText(el); ok {
					return text, true
				}
			}
		}
		return "", false
	}
}

func keywordXPath(key string) string {
	key = strings.ToLower(strings.ReplaceAll(key, "'", ""))
	return fmt.Sprintf(
		"//*[self::h2 or self::h3 or self::div or self::strong or self::span or self::p]"+
			"[contains(translate(text(), 'ABCDEFGHIJKLMNOPQRSTUVWXYZ', 'abcdefghijklmnopqrstuvwxyz'), '%s')]",
		key,
	)
}

func siblingText(el *html.Node) (string, bool) {
	sib, err := htmlquery.Query(el, "./following-sibling::div")
	if err != nil || sib == nil {
		return "", false
	}
	text := strings.TrimSpace(Text(sib))
	if runeLen(text) > minSiblingText {
		return text, true
	}
	return "", false
}

func parentText(el *html.Node) (string, bool) {
	if el.Parent == nil || el.Parent.Type != html.ElementNode {
		return "", false
	}
	text := strings.TrimSpace(Text(el.Parent))
	if n := runeLen(text); n > minParentText && n < maxParentText {
		return text, true
	}
	return "", false
}
