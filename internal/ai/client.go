package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// NoMatchPrefix starts every response that reports an empty result. API
// callers map it to 404.
const NoMatchPrefix = "Error: I couldn't find any faculty matching"

type Client interface {
	Recommend(ctx context.Context, query string, faculty []FacultyContext) (string, error)
}

// FacultyContext is the slice of a stored profile handed to the engine.
type FacultyContext struct {
	Name           string
	Designation    string
	Email          string
	Specialization string
	Research       string
	Bio            string
	ProfileURL     string
}

// NoMatch is the response for a query no stored profile matches.
func NoMatch(query string) string {
	return fmt.Sprintf("%s %q. Try broader keywords.", NoMatchPrefix, query)
}

// IsNoMatch reports whether an engine response says nothing matched.
func IsNoMatch(text string) bool {
	return strings.Contains(text, "couldn't find") && strings.Contains(text, "Error")
}

// NewClient picks the engine by provider name. Supported providers: "gemini"
// (the default when a key is set) and "mock".
func NewClient(provider, apiKey, model string, logger *slog.Logger) Client {
	if logger == nil {
		logger = slog.Default()
	}
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		if apiKey != "" {
			provider = "gemini"
		} else {
			provider = "mock"
		}
	}

	switch provider {
	case "gemini":
		if apiKey == "" {
			logger.Warn("AI_PROVIDER=gemini but GEMINI_API_KEY not set, falling back to mock")
			return NewMockClient()
		}
		logger.Info("using gemini recommendation engine", "model", modelOrDefault(model))
		return NewGeminiClient(apiKey).WithModel(model)
	default:
		logger.Info("using mock recommendation engine (set GEMINI_API_KEY for real AI)")
		return NewMockClient()
	}
}

// MockClient answers deterministically from the candidates it is given.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Recommend(ctx context.Context, query string, faculty []FacultyContext) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(faculty) == 0 {
		return NoMatch(query), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Faculty matching %q:\n", query)
	for i, f := range faculty {
		fmt.Fprintf(&b, "%d. %s", i+1, f.Name)
		if f.Designation != "" {
			fmt.Fprintf(&b, " (%s)", f.Designation)
		}
		if f.Specialization != "" {
			fmt.Fprintf(&b, ": %s", f.Specialization)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
