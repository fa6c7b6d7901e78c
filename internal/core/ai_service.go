package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/daiict/faculty-finder/internal/ai"
	"github.com/daiict/faculty-finder/internal/observability"
	"github.com/daiict/faculty-finder/internal/store"
)

const maxCandidates = 8

// Field weights for ranking. Specialization and research describe what a
// person works on; the rest only mention it.
var fieldWeights = []struct {
	weight int
	get    func(store.Profile) string
}{
	{3, func(p store.Profile) string { return p.Specialization }},
	{3, func(p store.Profile) string { return p.Research }},
	{2, func(p store.Profile) string { return p.Name }},
	{1, func(p store.Profile) string { return p.Bio }},
	{1, func(p store.Profile) string { return p.Teaching }},
}

type RecommenderService struct {
	store    *store.Store
	aiClient ai.Client
}

func NewRecommenderService(st *store.Store, aiClient ai.Client) *RecommenderService {
	return &RecommenderService{store: st, aiClient: aiClient}
}

// Recommend ranks stored profiles against q and asks the engine to pick from
// the best of them. When nothing matches, the no-match text is returned
// without calling the engine.
func (s *RecommenderService) Recommend(ctx context.Context, q string) (string, error) {
	profiles, err := s.store.GetAll(ctx)
	if err != nil {
		return "", fmt.Errorf("load faculty: %w", err)
	}

	candidates := Rank(profiles, QueryTerms(q), maxCandidates)
	if len(candidates) == 0 {
		return ai.NoMatch(q), nil
	}

	faculty := make([]ai.FacultyContext, 0, len(candidates))
	for _, p := range candidates {
		faculty = append(faculty, ai.FacultyContext{
			Name:           p.Name,
			Designation:    p.Designation,
			Email:          p.Email,
			Specialization: p.Specialization,
			Research:       p.Research,
			Bio:            p.Bio,
			ProfileURL:     p.ProfileURL,
		})
	}

	observability.IncAICall("recommender")
	text, err := s.aiClient.Recommend(ctx, q, faculty)
	if err != nil {
		observability.IncError(observability.ErrorAI, "recommender")
		return "", fmt.Errorf("recommendation failed: %w", err)
	}
	return text, nil
}

// Rank scores profiles by weighted keyword hits and returns at most limit
// profiles with a positive score, best first. Ties keep store order.
func Rank(profiles []store.Profile, terms []string, limit int) []store.Profile {
	if len(terms) == 0 {
		return nil
	}
	type scored struct {
		p     store.Profile
		score int
	}
	var hits []scored
	for _, p := range profiles {
		score := 0
		for _, f := range fieldWeights {
			score += f.weight * CountKeywordHits(f.get(p), terms)
		}
		if score > 0 {
			hits = append(hits, scored{p: p, score: score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	if len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]store.Profile, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.p)
	}
	return out
}
