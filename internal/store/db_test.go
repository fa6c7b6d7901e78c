package store

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func setup(t testing.TB) *Store {
	t.Helper()

	s, err := NewStore(filepath.Join(t.TempDir(), "faculty.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Init(context.Background()))
	return s
}

func TestInitIsIdempotent(t *testing.T) {
	s := setup(t)
	require.NoError(t, s.Init(context.Background()))
	require.NoError(t, s.Init(context.Background()))
}

func TestUpsertUpdatesInPlace(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	first := Profile{
		Name:        "Biswajit Mishra",
		Designation: "Professor",
		Email:       "biswajit@daiict.ac.in",
		Bio:         "first bio",
		ProfileURL:  "https://www.daiict.ac.in/faculty/biswajit-mishra",
	}
	require.NoError(t, s.Upsert(ctx, first))

	second := first
	second.Name = "B. Mishra"
	second.Designation = "Dean"
	second.Bio = "second bio"
	second.Research = "VLSI"
	require.NoError(t, s.Upsert(ctx, second))

	all, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "second bio", all[0].Bio)
	require.Equal(t, "VLSI", all[0].Research)
	// identity columns keep their first value
	require.Equal(t, "Biswajit Mishra", all[0].Name)
	require.Equal(t, "Professor", all[0].Designation)
}

func TestUpsertRequiresURL(t *testing.T) {
	s := setup(t)
	err := s.Upsert(context.Background(), Profile{Name: "No Link"})
	require.ErrorIs(t, err, ErrMissingURL)

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSearch(t *testing.T) {
	s := setup(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, Profile{Name: "Biswajit Mishra", ProfileURL: "u1"}))
	require.NoError(t, s.Upsert(ctx, Profile{Name: "Anil Roy", Research: "Machine Learning and vision", ProfileURL: "u2"}))
	require.NoError(t, s.Upsert(ctx, Profile{Name: "Sanjay Srivastava", Bio: "works on MACHINE learning theory", ProfileURL: "u3"}))

	got, err := s.Search(ctx, "mishra")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Biswajit Mishra", got[0].Name)

	got, err = s.Search(ctx, "machine learning")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "u2", got[0].ProfileURL)
	require.Equal(t, "u3", got[1].ProfileURL)

	got, err = s.Search(ctx, "quantum")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestExportRoundTrip(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	dir := t.TempDir()

	urls := []string{"https://x/faculty/a", "https://x/faculty/b", "https://x/faculty/c"}
	for _, u := range urls {
		require.NoError(t, s.Upsert(ctx, Profile{Name: u, Email: "Unknown", Publications: "• p1\n• p2", ProfileURL: u}))
	}
	require.NoError(t, s.Upsert(ctx, Profile{Name: "again", Designation: "Dean", Email: "Unknown", Bio: "changed", Publications: "• p3", ProfileURL: urls[0]}))

	csvPath := filepath.Join(dir, "out", "faculty.csv")
	jsonPath := filepath.Join(dir, "out", "faculty.json")
	require.NoError(t, s.Export(ctx, csvPath, jsonPath))

	loaded, err := LoadJSON(jsonPath)
	require.NoError(t, err)

	seen := map[string]int{}
	for _, p := range loaded {
		seen[p.ProfileURL]++
	}
	require.Len(t, seen, len(urls))
	for _, u := range urls {
		require.Equal(t, 1, seen[u])
	}

	f, err := os.Open(csvPath)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(urls)+1)
	require.Equal(t, CSVHeader, records[0])
	require.Equal(t, urls[0], records[1][1])
	require.Equal(t, "", records[1][2])
	require.Equal(t, "changed", records[1][4])
	require.Equal(t, "• p3", records[1][6])
	require.Equal(t, "• p1\n• p2", records[2][6])
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	s := setup(t)
	ctx := context.Background()
	require.NoError(t, s.Upsert(ctx, Profile{Name: "A. Sharma", Research: "100% coverage testing", ProfileURL: "u1"}))
	require.NoError(t, s.Upsert(ctx, Profile{Name: "B. Patel", Research: "graph_theory", ProfileURL: "u2"}))
	require.NoError(t, s.Upsert(ctx, Profile{Name: "C. Iyer", Bio: `path\to`, ProfileURL: "u3"}))

	got, err := s.Search(ctx, "_")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "u2", got[0].ProfileURL)

	got, err = s.Search(ctx, "%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "u1", got[0].ProfileURL)

	got, err = s.Search(ctx, `\`)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "u3", got[0].ProfileURL)
}

func TestExportEmptyTable(t *testing.T) {
	s := setup(t)
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "f.json")
	require.NoError(t, s.Export(context.Background(), filepath.Join(dir, "f.csv"), jsonPath))

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))
}

func TestDialectFor(t *testing.T) {
	require.Equal(t, dialectPostgres, dialectFor("postgres://u:p@localhost/db"))
	require.Equal(t, dialectPostgres, dialectFor("PostgreSQL://localhost/db"))
	require.Equal(t, dialectSQLite, dialectFor("Scraped_data/faculty.db"))
	require.Equal(t, dialectSQLite, dialectFor(":memory:"))
}
