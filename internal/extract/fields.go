package extract

import "strings"

// Fields is the content read from a profile page before normalization.
type Fields struct {
	Bio            string
	Research       string
	Teaching       string
	Publications   []string
	Specialization string
}

const (
	publicationItems = ".education.overflowContent ul.bulletText li"
	researchNoise    = "Research Overview"
	researchNoiseLen = 50
)

var (
	bioStrategies = []Strategy{
		Selector(".field--name-field-biography, .about"),
		Keyword("biography", "about"),
	}
	researchStrategies = []Strategy{
		Selector(".work-exp1, .field--name-field-research-interests"),
		Keyword("research", "interest"),
	}
	teachingStrategies = []Strategy{
		Selector(".field--name-field-courses-taught, .field--name-field-teaching"),
		Keyword("teaching", "courses"),
	}
	specializationStrategies = []Strategy{
		Selector(".field--name-field-area-of-specialization"),
		Keyword("specialization"),
	}
	publicationFallback = Keyword("publication")
)

// Profile reads every profile field from a rendered profile page.
// listingSpecialization is what the listing card said; it is kept unless the
// profile page offers a longer value.
func Profile(p *Page, listingSpecialization string) Fields {
	return Fields{
		Bio:            First(p, bioStrategies...),
		Research:       FilterResearchNoise(First(p, researchStrategies...)),
		Teaching:       First(p, teachingStrategies...),
		Publications:   Publications(p),
		Specialization: MergeSpecialization(listingSpecialization, First(p, specializationStrategies...)),
	}
}

// Publications returns one entry per publication list item, or the keyword
// fallback block as a single entry.
func Publications(p *Page) []string {
	if items, ok := ListSelector(p, publicationItems); ok {
		return items
	}
	if text, ok := publicationFallback(p); ok && text != "" {
		return []string{text}
	}
	return []string{}
}

// FilterResearchNoise drops captures that are just the "Research Overview"
// tab label.
func FilterResearchNoise(text string) string {
	if strings.Contains(text, researchNoise) && runeLen(text) < researchNoiseLen {
		return ""
	}
	return text
}

// MergeSpecialization prefers the profile-page value only when it is strictly
// longer than the listing value.
func MergeSpecialization(listing, deep string) string {
	if deep != "" && runeLen(deep) > runeLen(listing) {
		return deep
	}
	return listing
}
