package scraper

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/daiict/faculty-finder/internal/extract"
	"github.com/daiict/faculty-finder/internal/store"
)

// UnknownEmail is stored when a profile has no email at all.
const UnknownEmail = "Unknown"

const bullet = "• "

var emailObfuscations = strings.NewReplacer(
	"[at]", "@",
	"(at)", "@",
	"[dot]", ".",
	"(dot)", ".",
)

// SimpleNormalizer turns markup that slipped into a captured value, such as
// entities or inline tags inside JSON-LD strings, into clean text.
type SimpleNormalizer struct{}

func NewSimpleNormalizer() *SimpleNormalizer {
	return &SimpleNormalizer{}
}

func (n *SimpleNormalizer) Normalize(htmlContent string) (string, error) {
	if !strings.ContainsAny(htmlContent, "<&") {
		return CleanText(htmlContent), nil
	}
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}
	return CleanText(extract.Text(doc)), nil
}

// CleanText collapses every whitespace run, newlines included, into a single
// space and trims the ends.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CleanEmail undoes the usual anti-harvesting spellings such as
// "name[at]host[dot]in".
func CleanEmail(s string) string {
	if s == "" {
		return UnknownEmail
	}
	return strings.TrimSpace(emailObfuscations.Replace(s))
}

// FlattenList renders a list as bulleted lines. A plain string is assumed to
// be flattened already and is returned as is.
func FlattenList[T string | []string](items T) string {
	switch v := any(items).(type) {
	case string:
		return v
	case []string:
		lines := make([]string, 0, len(v))
		for _, item := range v {
			if item == "" {
				continue
			}
			lines = append(lines, bullet+CleanText(item))
		}
		return strings.Join(lines, "\n")
	}
	return ""
}

// CleanProfile normalizes every field of a scraped profile for storage.
func CleanProfile(raw RawProfile) store.Profile {
	return store.Profile{
		Name:           CleanText(raw.Name),
		Designation:    CleanText(raw.Designation),
		Email:          CleanEmail(raw.Email),
		Bio:            CleanText(raw.Bio),
		Research:       CleanText(raw.Research),
		Publications:   FlattenList(raw.Publications),
		Teaching:       CleanText(raw.Teaching),
		Specialization: CleanText(raw.Specialization),
		ProfileURL:     raw.URL,
	}
}

// FromStored turns an exported record back into a RawProfile so that it can
// be re-ingested through CleanProfile.
func FromStored(p store.Profile) RawProfile {
	raw := RawProfile{
		Name:           p.Name,
		Designation:    p.Designation,
		Email:          p.Email,
		Bio:            p.Bio,
		Research:       p.Research,
		Teaching:       p.Teaching,
		Specialization: p.Specialization,
		URL:            p.ProfileURL,
	}
	for _, line := range strings.Split(p.Publications, "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "•"))
		if line != "" {
			raw.Publications = append(raw.Publications, line)
		}
	}
	return raw
}
