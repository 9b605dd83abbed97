package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"prepstar/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-1.5-flash"

// FeedbackGenerator is the server side of the managed feedback function. It
// asks Gemini for structured feedback and falls back to the heuristic scorer
// whenever the model is unavailable or answers off-contract, so a complete
// request always yields usable feedback.
type FeedbackGenerator struct {
	client *genai.Client
	model  string
	scorer *LocalScorer
}

func NewFeedbackGenerator(ctx context.Context, apiKey, model string) (*FeedbackGenerator, error) {
	if model == "" {
		model = defaultGeminiModel
	}
	g := &FeedbackGenerator{model: model, scorer: NewLocalScorer()}
	if apiKey == "" {
		log.Printf("No Gemini API key configured, feedback function will answer heuristically")
		return g, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

func (g *FeedbackGenerator) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

// Generate produces feedback for a complete request. It never fails: model
// errors degrade to the heuristic scorer, and off-contract model fields are
// replaced with heuristic ones.
func (g *FeedbackGenerator) Generate(ctx context.Context, req *models.FeedbackRequest) *models.FeedbackResponse {
	heuristic := g.scorer.Generate(req)
	if g.client == nil {
		return heuristic
	}

	content, err := g.generateWithRetry(ctx, BuildFeedbackPrompt(req))
	if err != nil {
		log.Printf("Gemini feedback generation failed, using heuristic feedback: %v", err)
		return heuristic
	}

	jsonText := firstBalancedObject(cleanModelOutput(content))
	if jsonText == "" {
		log.Printf("No JSON object in Gemini output, using heuristic feedback")
		return heuristic
	}

	var feedback models.FeedbackResponse
	if err := json.Unmarshal([]byte(jsonText), &feedback); err != nil {
		log.Printf("Failed to parse Gemini output, using heuristic feedback: %v", err)
		return heuristic
	}
	return sanitizeFeedback(&feedback, heuristic)
}

func (g *FeedbackGenerator) generateWithRetry(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.model)

	var lastErr error
	for attempt := 0; attempt < defaultMaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryBaseDelay << (attempt - 1)):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			lastErr = fmt.Errorf("model returned no candidates")
			continue
		}
		for _, part := range resp.Candidates[0].Content.Parts {
			if text, ok := part.(genai.Text); ok && strings.TrimSpace(string(text)) != "" {
				return string(text), nil
			}
		}
		lastErr = fmt.Errorf("model returned no text parts")
	}
	return "", fmt.Errorf("generation failed after %d attempts: %w", defaultMaxRetries, lastErr)
}

func cleanModelOutput(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// sanitizeFeedback clamps the model's feedback into the contract, pulling any
// off-contract field from the heuristic response instead.
func sanitizeFeedback(feedback, heuristic *models.FeedbackResponse) *models.FeedbackResponse {
	out := &models.FeedbackResponse{
		OverallScore:       feedback.OverallScore,
		Strengths:          nonBlank(feedback.Strengths),
		AreasToImprove:     nonBlank(feedback.AreasToImprove),
		ExampleImprovement: feedback.ExampleImprovement,
		InterviewReadiness: feedback.InterviewReadiness,
	}
	if out.OverallScore < 1 {
		out.OverallScore = 1
	}
	if out.OverallScore > 5 {
		out.OverallScore = 5
	}
	if len(out.Strengths) == 0 {
		out.Strengths = heuristic.Strengths
	}
	if len(out.Strengths) > 3 {
		out.Strengths = out.Strengths[:3]
	}
	if len(out.AreasToImprove) == 0 {
		out.AreasToImprove = heuristic.AreasToImprove
	}
	if len(out.AreasToImprove) > 3 {
		out.AreasToImprove = out.AreasToImprove[:3]
	}
	if strings.TrimSpace(out.ExampleImprovement) == "" {
		out.ExampleImprovement = heuristic.ExampleImprovement
	}
	if strings.TrimSpace(out.InterviewReadiness) == "" {
		out.InterviewReadiness = heuristic.InterviewReadiness
	}
	return out
}

// nonBlank drops whitespace-only entries so a blank-padded model list falls
// back to the heuristic one instead of being served and then rejected by the
// caller's validation.
func nonBlank(entries []string) []string {
	var kept []string
	for _, entry := range entries {
		if strings.TrimSpace(entry) != "" {
			kept = append(kept, entry)
		}
	}
	return kept
}
