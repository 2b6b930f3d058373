package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"insight-stack/internal/analytics"
	"insight-stack/shared/config"

	"google.golang.org/genai"
)

// Advisor generates free-text growth suggestions from a cadence summary using
// Gemini. Every failure mode is reported as analytics.ErrAdvisoryUnavailable
// so the caller falls back to the deterministic rule set.
type Advisor struct {
	client *genai.Client
	model  string
}

func NewAdvisor(cfg *config.Config) (*Advisor, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.AI.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Advisor{
		client: client,
		model:  cfg.AI.Model,
	}, nil
}

// GrowthSuggestions implements analytics.SuggestionProvider.
func (a *Advisor) GrowthSuggestions(ctx context.Context, summary analytics.CadenceSummary) ([]string, error) {
	payload, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cadence summary: %w", err)
	}

	prompt := fmt.Sprintf(`Based on this YouTube channel data, provide growth suggestions:
%s
Return ONLY a JSON array of suggestions like: ["suggestion1", "suggestion2"]`, payload)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		log.Printf("Gemini growth suggestions failed: %v", err)
		return nil, fmt.Errorf("%w: %v", analytics.ErrAdvisoryUnavailable, err)
	}

	responseText := result.Text()
	if responseText == "" {
		return nil, fmt.Errorf("%w: empty response", analytics.ErrAdvisoryUnavailable)
	}

	suggestions, err := parseSuggestions(responseText)
	if err != nil {
		log.Printf("Unparseable Gemini suggestions response: %v", err)
		return nil, fmt.Errorf("%w: %v", analytics.ErrAdvisoryUnavailable, err)
	}
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("%w: no suggestions in response", analytics.ErrAdvisoryUnavailable)
	}

	return suggestions, nil
}

// parseSuggestions extracts a JSON string array from a model response,
// tolerating surrounding prose and markdown code fences.
func parseSuggestions(response string) ([]string, error) {
	text := strings.TrimSpace(response)
	if strings.HasPrefix(text, "```") {
		parts := strings.SplitN(text, "```", 3)
		if len(parts) >= 2 {
			text = strings.TrimPrefix(strings.TrimSpace(parts[1]), "json")
		}
	}

	startIdx := strings.Index(text, "[")
	endIdx := strings.LastIndex(text, "]")
	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("no JSON array found in response: %s", response)
	}

	var suggestions []string
	if err := json.Unmarshal([]byte(text[startIdx:endIdx+1]), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal suggestions: %w", err)
	}

	return suggestions, nil
}
