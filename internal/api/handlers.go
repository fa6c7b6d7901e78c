package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/daiict/faculty-finder/internal/ai"
	"github.com/daiict/faculty-finder/internal/observability"
	"github.com/daiict/faculty-finder/internal/store"
)

const noMatches = "No matches found."

var endpoints = []string{
	"/faculty (List all)",
	"/faculty/search?q=AI (Keyword Search)",
	"/recommend?q=Deep Learning (AI Analysis)",
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "Active",
		"endpoints": endpoints,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, observability.Snapshot())
}

func (s *Server) handleListFaculty(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.store.GetAll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch faculty: "+err.Error())
		return
	}
	// Return empty list if nil to be JSON friendly
	if profiles == nil {
		profiles = []store.Profile{}
	}
	respondJSON(w, http.StatusOK, profiles)
}

// handleSearchFaculty is a plain substring match over name, bio and research.
func (s *Server) handleSearchFaculty(w http.ResponseWriter, r *http.Request) {
	q, ok := queryParam(w, r)
	if !ok {
		return
	}

	profiles, err := s.store.Search(r.Context(), q)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to search faculty: "+err.Error())
		return
	}
	if len(profiles) == 0 {
		respondError(w, http.StatusNotFound, noMatches)
		return
	}
	respondJSON(w, http.StatusOK, profiles)
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	q, ok := queryParam(w, r)
	if !ok {
		return
	}

	text, err := s.recommender.Recommend(r.Context(), q)
	if err != nil {
		slog.Error("recommend failed", "query", q, "error", err)
		respondError(w, http.StatusInternalServerError, "Recommendation failed: "+err.Error())
		return
	}
	if ai.IsNoMatch(text) {
		respondError(w, http.StatusNotFound, noMatches)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"query":       q,
		"ai_response": text,
	})
}

func queryParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		respondError(w, http.StatusBadRequest, "query parameter q is required")
		return "", false
	}
	return q, true
}
