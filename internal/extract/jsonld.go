package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Person is the subset of a schema.org Person block that can fill gaps left
// by a listing card.
type Person struct {
	Name     string
	Email    string
	JobTitle string
}

// PersonFromJSONLD returns the first schema.org Person found in the page's
// ld+json scripts.
func PersonFromJSONLD(p *Page) (Person, bool) {
	if p == nil || p.Doc == nil {
		return Person{}, false
	}
	var (
		found Person
		ok    bool
	)
	p.Doc.Find("script[type='application/ld+json']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		found, ok = parsePersonJSONLD(s.Text())
		return !ok
	})
	return found, ok
}

func parsePersonJSONLD(raw string) (Person, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Person{}, false
	}
	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return Person{}, false
	}
	return findPerson(payload)
}

func findPerson(payload any) (Person, bool) {
	switch t := payload.(type) {
	case map[string]any:
		if isPersonType(t["@type"]) {
			person := Person{
				Name:     stringField(t["name"]),
				Email:    strings.TrimPrefix(stringField(t["email"]), "mailto:"),
				JobTitle: stringField(t["jobTitle"]),
			}
			if person.Name != "" || person.Email != "" {
				return person, true
			}
		}
		if graph, ok := t["@graph"].([]any); ok {
			for _, item := range graph {
				if person, ok := findPerson(item); ok {
					return person, true
				}
			}
		}
	case []any:
		for _, item := range t {
			if person, ok := findPerson(item); ok {
				return person, true
			}
		}
	}
	return Person{}, false
}

func isPersonType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "Person"
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "Person" {
				return true
			}
		}
	}
	return false
}

func stringField(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		for _, item := range t {
			if s := stringField(item); s != "" {
				return s
			}
		}
	case map[string]any:
		if val, ok := t["@value"]; ok {
			if str, ok2 := val.(string); ok2 {
				return strings.TrimSpace(str)
			}
		}
	}
	return ""
}
