package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleCSV = `name,email,bio,research,specialization,teaching,profile_url
A. Sharma,a@daiict.ac.in,` + "\"" + `A very long biography that keeps going well past the ninety character limit used for samples in the report.` + "\"" + `,Networks,Computer Networks,,https://www.daiict.ac.in/faculty/a-sharma
B. Patel,Unknown,   ,,Machine Learning,,https://www.daiict.ac.in/faculty/b-patel
B. Patel,Unknown,,,Machine Learning,,https://www.daiict.ac.in/faculty/b-patel
C. Iyer,c@daiict.ac.in,Short bio,Vision,Signal Processing,,https://www.daiict.ac.in/node/77
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "final_faculty_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func column(rep Report, name string) Column {
	for _, c := range rep.Columns {
		if c.Name == name {
			return c
		}
	}
	return Column{}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadEmptyFile(t *testing.T) {
	_, err := Load(writeCSV(t, ""))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestBuild(t *testing.T) {
	tbl, err := Load(writeCSV(t, sampleCSV))
	require.NoError(t, err)

	rep := Build(tbl)
	require.Equal(t, 4, rep.Records)

	bio := column(rep, "bio")
	require.Equal(t, 1, bio.Missing)
	require.Equal(t, 1, bio.Blank)
	require.Equal(t, 2, bio.TotalEmpty)
	require.InDelta(t, 50.0, bio.Completeness, 0.001)

	teaching := column(rep, "teaching")
	require.Equal(t, 4, teaching.Missing)
	require.InDelta(t, 0.0, teaching.Completeness, 0.001)

	require.InDelta(t, 100.0, column(rep, "name").Completeness, 0.001)

	require.Len(t, rep.Samples["bio"], 2)
	require.True(t, strings.HasSuffix(rep.Samples["bio"][0], "..."))
	require.Equal(t, 93, len([]rune(rep.Samples["bio"][0])))
	require.Equal(t, "Short bio", rep.Samples["bio"][1])
	require.Equal(t, []string{"Computer Networks", "Machine Learning", "Machine Learning"}, rep.Samples["specialization"])
	require.Empty(t, rep.Samples["teaching"])

	require.True(t, rep.HasURLColumn)
	require.Equal(t, 1, rep.DuplicateURLs)
}

func TestBuildHandlesShortRows(t *testing.T) {
	rep := Build(Table{Header: []string{"name", "profile_url"}, Rows: [][]string{{"A"}}})
	require.Equal(t, 1, column(rep, "profile_url").Missing)
}

func TestRender(t *testing.T) {
	tbl, err := Load(writeCSV(t, sampleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	Render(&buf, Build(tbl))
	out := buf.String()

	require.Contains(t, out, "Loaded 4 records")
	require.Contains(t, out, "Missing Data Breakdown")
	require.Contains(t, out, "Sample Data: Specialization")
	require.Contains(t, out, "\nSample Data: Specialization\n")
	require.Contains(t, out, "(No data found in this column)")
	require.Contains(t, out, "Found 1 duplicate profiles based on URL.")
}

func TestRenderEmptyExport(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, Build(Table{Header: []string{"name", "profile_url"}}))
	require.Contains(t, buf.String(), "n/a")
	require.Contains(t, buf.String(), "No duplicate profiles found.")
}
