package urlutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	page := "https://www.daiict.ac.in/faculty"

	require.Equal(t, "https://www.daiict.ac.in/faculty/anil-roy", Resolve(page, "/faculty/anil-roy"))
	require.Equal(t, "https://www.daiict.ac.in/node/42", Resolve(page, "node/42"))
	require.Equal(t, "https://other.example/x", Resolve(page, "https://other.example/x"))
	require.Equal(t, "", Resolve(page, "mailto:someone@daiict.ac.in"))
	require.Equal(t, "", Resolve(page, "  "))
}

func TestIsProfileLink(t *testing.T) {
	cases := map[string]bool{
		"https://www.daiict.ac.in/faculty/anil-roy":          true,
		"https://www.daiict.ac.in/node/1234":                 true,
		"https://www.daiict.ac.in/adjunct-faculty/j-doe":     true,
		"https://www.daiict.ac.in/distinguished-professor/x": true,
		"https://www.daiict.ac.in/research/centres":          false,
		"https://www.daiict.ac.in/faculty/cv.pdf":            false,
	}
	for link, want := range cases {
		require.Equal(t, want, IsProfileLink(link), link)
	}
	require.False(t, IsProfileLink(""))
}

func TestKey(t *testing.T) {
	a := Key("https://WWW.daiict.ac.in/faculty/anil-roy/?utm_source=x#top")
	b := Key("https://daiict.ac.in/faculty/anil-roy")
	require.Equal(t, a, b)
	require.NotEqual(t, Key("https://daiict.ac.in/faculty/a"), Key("https://daiict.ac.in/faculty/b"))
}
