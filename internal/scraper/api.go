package scraper

// RawProfile is a faculty profile as scraped, before normalization.
type RawProfile struct {
	Name           string
	Designation    string
	Email          string
	Bio            string
	Research       string
	Teaching       string
	Specialization string
	Publications   []string
	URL            string
}

// HasLink reports whether the profile can be deep scraped.
func (p RawProfile) HasLink() bool {
	return p.URL != ""
}
