package scraper

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/require"

	"github.com/daiict/faculty-finder/internal/store"
)

func TestCleanText(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"Hello   \n  World",
		"\tleading and trailing\t\n",
		"a  b\r\nc",
		"already clean",
	}
	for _, in := range inputs {
		out := CleanText(in)
		require.Equal(t, strings.TrimSpace(out), out, "edges of %q", in)
		prevSpace := false
		for _, r := range out {
			isSpace := unicode.IsSpace(r)
			require.False(t, isSpace && r != ' ', "non-space whitespace in %q", out)
			require.False(t, isSpace && prevSpace, "whitespace run in %q", out)
			prevSpace = isSpace
		}
	}
	require.Equal(t, "Hello World", CleanText("Hello   \n  World"))
	require.Equal(t, "", CleanText("   "))
}

func TestCleanEmail(t *testing.T) {
	require.Equal(t, "Unknown", CleanEmail(""))
	require.Equal(t, "a@b.com", CleanEmail("a[at]b[dot]com"))
	require.Equal(t, "first_last@daiict.ac.in", CleanEmail("  first_last(at)daiict(dot)ac(dot)in "))
	require.Equal(t, "plain@daiict.ac.in", CleanEmail("plain@daiict.ac.in"))
}

func TestFlattenList(t *testing.T) {
	require.Equal(t, "", FlattenList([]string{}))
	require.Equal(t, "", FlattenList([]string(nil)))
	require.Equal(t, "• x\n• y", FlattenList([]string{"x", "y"}))
	require.Equal(t, "• a b\n• c", FlattenList([]string{"  a \n b", "", "c"}))
	require.Equal(t, "• already\n• flat", FlattenList("• already\n• flat"))
	require.Equal(t, "", FlattenList(""))
}

func TestCleanProfile(t *testing.T) {
	raw := RawProfile{
		Name:           "  A.   Sharma ",
		Designation:    "Assistant\nProfessor",
		Bio:            "  Works on\n\n networks. ",
		Research:       "",
		Teaching:       "Computer\tNetworks",
		Specialization: " Networks ",
		Publications:   []string{"Paper one", "Paper\n two"},
		URL:            "https://www.daiict.ac.in/faculty/a-sharma",
	}
	got := CleanProfile(raw)
	require.Equal(t, store.Profile{
		Name:           "A. Sharma",
		Designation:    "Assistant Professor",
		Email:          "Unknown",
		Bio:            "Works on networks.",
		Research:       "",
		Publications:   "• Paper one\n• Paper two",
		Teaching:       "Computer Networks",
		Specialization: "Networks",
		ProfileURL:     "https://www.daiict.ac.in/faculty/a-sharma",
	}, got)
}

func TestFromStoredRoundTrip(t *testing.T) {
	stored := store.Profile{
		Name:         "A. Sharma",
		Email:        "a@daiict.ac.in",
		Publications: "• Paper one\n• Paper two",
		ProfileURL:   "https://www.daiict.ac.in/faculty/a-sharma",
	}
	raw := FromStored(stored)
	require.Equal(t, []string{"Paper one", "Paper two"}, raw.Publications)
	require.Equal(t, stored, CleanProfile(raw))
}

func TestSimpleNormalizer(t *testing.T) {
	n := NewSimpleNormalizer()

	out, err := n.Normalize("Dean &amp; Professor")
	require.NoError(t, err)
	require.Equal(t, "Dean & Professor", out)

	out, err = n.Normalize("<b>Dr.</b>   C. Iyer<script>x()</script>")
	require.NoError(t, err)
	require.Equal(t, "Dr. C. Iyer", out)

	out, err = n.Normalize("  plain   text ")
	require.NoError(t, err)
	require.Equal(t, "plain text", out)
}
