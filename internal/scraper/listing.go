package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/daiict/faculty-finder/internal/extract"
	"github.com/daiict/faculty-finder/internal/urlutil"
)

const (
	// ListContainer is the element a listing page renders its cards into.
	ListContainer = ".facultyInformation"
	cardSelector  = ".facultyInformation li"

	unknownName         = "Unknown"
	specializationLabel = "Area of Specialization"
)

// ParseListing reads every faculty card of a rendered listing page. Cards
// without a usable profile link are returned too, with an empty URL.
func ParseListing(page *extract.Page) []RawProfile {
	if page == nil || page.Doc == nil {
		return nil
	}
	var out []RawProfile
	page.Doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
		out = append(out, parseCard(page.URL, card))
	})
	return out
}

func parseCard(pageURL string, card *goquery.Selection) RawProfile {
	p := RawProfile{Name: unknownName}

	if h3 := card.Find("h3"); h3.Length() > 0 {
		p.Name = extract.SelectionText(h3)
	}
	if email := card.Find(".facultyemail"); email.Length() > 0 {
		p.Email = extract.SelectionText(email)
	}
	if edu := card.Find(".facultyEducation"); edu.Length() > 0 {
		p.Designation = extract.SelectionText(edu)
	}
	p.Specialization = cardSpecialization(card)

	if a := card.Find("a").First(); a.Length() > 0 {
		if href, ok := a.Attr("href"); ok {
			link := urlutil.Resolve(pageURL, href)
			if urlutil.IsProfileLink(link) {
				p.URL = link
			}
		}
	}
	return p
}

func cardSpecialization(card *goquery.Selection) string {
	if spec := card.Find(".areaSpecialization"); spec.Length() > 0 {
		return extract.SelectionText(spec)
	}
	var found string
	card.Find("div").EachWithBreak(func(_ int, div *goquery.Selection) bool {
		text := extract.SelectionText(div)
		if !strings.Contains(text, "Specialization") {
			return true
		}
		found = strings.TrimSpace(strings.ReplaceAll(text, specializationLabel, ""))
		return false
	})
	return found
}
