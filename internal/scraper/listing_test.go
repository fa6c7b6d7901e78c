package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daiict/faculty-finder/internal/extract"
)

const listingHTML = `<html><body>
<div class="facultyInformation"><ul>
  <li>
    <h3><a href="/faculty/a-sharma">A. Sharma</a></h3>
    <span class="facultyEducation">Assistant Professor</span>
    <span class="facultyemail">a_sharma[at]daiict[dot]ac[dot]in</span>
    <span class="areaSpecialization">Computer Networks</span>
  </li>
  <li>
    <h3>B. Patel</h3>
    <div>Area of Specialization Machine Learning</div>
    <a href="/news/some-event">News</a>
  </li>
  <li>
    <a href="https://www.daiict.ac.in/node/77">Profile</a>
  </li>
</ul></div>
</body></html>`

func TestParseListing(t *testing.T) {
	page, err := extract.ParsePage("https://www.daiict.ac.in/faculty", strings.NewReader(listingHTML))
	require.NoError(t, err)

	cards := ParseListing(page)
	require.Len(t, cards, 3)

	require.Equal(t, RawProfile{
		Name:           "A. Sharma",
		Designation:    "Assistant Professor",
		Email:          "a_sharma[at]daiict[dot]ac[dot]in",
		Specialization: "Computer Networks",
		URL:            "https://www.daiict.ac.in/faculty/a-sharma",
	}, cards[0])
	require.True(t, cards[0].HasLink())

	require.Equal(t, "B. Patel", cards[1].Name)
	require.Equal(t, "Machine Learning", cards[1].Specialization)
	require.Empty(t, cards[1].URL)
	require.False(t, cards[1].HasLink())

	require.Equal(t, "Unknown", cards[2].Name)
	require.Equal(t, "https://www.daiict.ac.in/node/77", cards[2].URL)
}

func TestParseListingWithoutContainer(t *testing.T) {
	page, err := extract.ParsePage("https://www.daiict.ac.in/faculty", strings.NewReader("<html><body><ul><li>x</li></ul></body></html>"))
	require.NoError(t, err)
	require.Empty(t, ParseListing(page))
}
