package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel  = "gemini-1.5-flash"
)

// GeminiClient implements Client using Google's Gemini API.
// Get an API key at: https://aistudio.google.com/apikey
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		model:   defaultModel,
		baseURL: geminiBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithModel changes the model. An empty name keeps the current one.
func (g *GeminiClient) WithModel(model string) *GeminiClient {
	if model != "" {
		g.model = model
	}
	return g
}

// WithBaseURL points the client at another endpoint, e.g. a test server.
func (g *GeminiClient) WithBaseURL(baseURL string) *GeminiClient {
	g.baseURL = strings.TrimRight(baseURL, "/")
	return g
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

func (g *GeminiClient) callAPI(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{
				Parts: []geminiPart{
					{Text: prompt},
				},
			},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.3,
			MaxOutputTokens: 800,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if geminiResp.Error != nil {
		return "", fmt.Errorf("Gemini API error: %s (code: %d)", geminiResp.Error.Message, geminiResp.Error.Code)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

// Recommend asks Gemini to pick and explain the best faculty for the query
// from the supplied candidates only.
func (g *GeminiClient) Recommend(ctx context.Context, query string, faculty []FacultyContext) (string, error) {
	if len(faculty) == 0 {
		return NoMatch(query), nil
	}

	var b strings.Builder
	for i, f := range faculty {
		fmt.Fprintf(&b, "[%d] %s | %s | %s\n", i+1, f.Name, f.Designation, f.Email)
		fmt.Fprintf(&b, "    Specialization: %s\n", truncateText(f.Specialization, 200))
		fmt.Fprintf(&b, "    Research: %s\n", truncateText(f.Research, 300))
		fmt.Fprintf(&b, "    Bio: %s\n", truncateText(f.Bio, 300))
		fmt.Fprintf(&b, "    Profile: %s\n", f.ProfileURL)
	}

	prompt := fmt.Sprintf(`You are an academic advisor at a university.

A student is looking for faculty members to work with. Recommend the most
relevant faculty from the list below, best match first.

Rules:
- Only recommend people from the list. Never invent names.
- For each recommendation give the name, designation, email and one sentence on why they fit.
- Recommend at most 5 people.
- If none of them fits, reply exactly: "%s your query."

Student query: %s

Faculty:
%s`, NoMatchPrefix, query, b.String())

	response, err := g.callAPI(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

// truncateText limits text to maxLen runes.
func truncateText(text string, maxLen int) string {
	r := []rune(text)
	if len(r) <= maxLen {
		return text
	}
	return string(r[:maxLen]) + "..."
}

func modelOrDefault(model string) string {
	if model == "" {
		return defaultModel
	}
	return model
}
