package core

import (
	"strings"
	"unicode"
)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "the": {}, "of": {}, "in": {}, "on": {}, "for": {},
	"to": {}, "with": {}, "who": {}, "is": {}, "are": {}, "me": {}, "i": {}, "want": {},
	"find": {}, "any": {}, "faculty": {}, "professor": {}, "works": {}, "working": {},
	"someone": {}, "about": {},
}

// QueryTerms lowercases q and splits it into keywords, dropping stop words
// and single letters.
func QueryTerms(q string) []string {
	fields := strings.FieldsFunc(strings.ToLower(q), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
	seen := make(map[string]struct{}, len(fields))
	var out []string
	for _, f := range fields {
		if len([]rune(f)) < 2 {
			continue
		}
		if _, ok := stopWords[f]; ok {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// CountKeywordHits counts how many of keywords occur in text, case-insensitively.
func CountKeywordHits(text string, keywords []string) int {
	lowerText := strings.ToLower(text)
	hits := 0
	for _, k := range keywords {
		if k != "" && strings.Contains(lowerText, strings.ToLower(k)) {
			hits++
		}
	}
	return hits
}
