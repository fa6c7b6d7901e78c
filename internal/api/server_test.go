package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/daiict/faculty-finder/internal/ai"
	"github.com/daiict/faculty-finder/internal/core"
	"github.com/daiict/faculty-finder/internal/store"
)

type stubClient struct {
	text string
	err  error
}

func (c stubClient) Recommend(context.Context, string, []ai.FacultyContext) (string, error) {
	return c.text, c.err
}

func newTestServer(t *testing.T, client ai.Client, profiles ...store.Profile) http.Handler {
	t.Helper()
	st, err := store.NewStore(filepath.Join(t.TempDir(), "faculty.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ctx := context.Background()
	require.NoError(t, st.Init(ctx))
	for _, p := range profiles {
		require.NoError(t, st.Upsert(ctx, p))
	}
	return NewServer(st, core.NewRecommenderService(st, client)).Router()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

var mishra = store.Profile{
	Name:           "Biswajit Mishra",
	Designation:    "Professor",
	Email:          "biswajit@daiict.ac.in",
	Research:       "VLSI design and embedded systems",
	Specialization: "Electronics",
	ProfileURL:     "https://www.daiict.ac.in/faculty/biswajit-mishra",
}

func TestHomeAndHealth(t *testing.T) {
	h := newTestServer(t, ai.NewMockClient())

	rec := get(t, h, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Status    string   `json:"status"`
		Endpoints []string `json:"endpoints"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Active", body.Status)
	require.Len(t, body.Endpoints, 3)

	rec = get(t, h, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "OK", rec.Body.String())

	rec = get(t, h, "/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"profiles_saved"`)
}

func TestListFaculty(t *testing.T) {
	rec := get(t, newTestServer(t, ai.NewMockClient()), "/faculty")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	rec = get(t, newTestServer(t, ai.NewMockClient(), mishra), "/faculty")
	require.Equal(t, http.StatusOK, rec.Code)
	var got []store.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, mishra.ProfileURL, got[0].ProfileURL)
}

func TestSearchFaculty(t *testing.T) {
	h := newTestServer(t, ai.NewMockClient(), mishra)

	rec := get(t, h, "/faculty/search?q=mishra")
	require.Equal(t, http.StatusOK, rec.Code)
	var got []store.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "Biswajit Mishra", got[0].Name)

	rec = get(t, h, "/faculty/search?q=vlsi")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, h, "/faculty/search?q=zzzz")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"No matches found."}`, rec.Body.String())

	rec = get(t, h, "/faculty/search")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommend(t *testing.T) {
	h := newTestServer(t, stubClient{text: "1. Biswajit Mishra: VLSI."}, mishra)

	rec := get(t, h, "/recommend?q=vlsi+design")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"query":"vlsi design","ai_response":"1. Biswajit Mishra: VLSI."}`, rec.Body.String())

	rec = get(t, h, "/recommend?q=astrophysics")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"No matches found."}`, rec.Body.String())

	rec = get(t, h, "/recommend")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecommendMapsEngineNoMatchTo404(t *testing.T) {
	h := newTestServer(t, stubClient{text: "Error: I couldn't find anyone suitable."}, mishra)

	rec := get(t, h, "/recommend?q=embedded")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecommendEngineFailure(t *testing.T) {
	h := newTestServer(t, stubClient{err: errors.New("quota exceeded")}, mishra)

	rec := get(t, h, "/recommend?q=embedded")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "quota exceeded")
}
