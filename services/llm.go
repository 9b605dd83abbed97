package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"prepstar/models"
)

const (
	defaultChatModel  = "gpt-3.5-turbo"
	defaultLLMTimeout = 30 * time.Second
)

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// DirectLLMClient sends one chat-completion request straight to a third-party
// provider and parses feedback JSON out of the model's free-form reply. It is
// a privacy-relevant boundary: user-authored answers leave the system, so the
// client can be disabled entirely in configuration. There is no retry at this
// layer; retries belong to the orchestrator if it wants them.
type DirectLLMClient struct {
	apiKey     string
	model      string
	url        string
	timeout    time.Duration
	httpClient *http.Client
}

func NewDirectLLMClient(apiKey, model string) *DirectLLMClient {
	if model == "" {
		model = defaultChatModel
	}
	return &DirectLLMClient{
		apiKey:     apiKey,
		model:      model,
		url:        "https://api.openai.com/v1/chat/completions",
		timeout:    defaultLLMTimeout,
		httpClient: &http.Client{},
	}
}

// Generate builds the coach prompt, performs one completion call, and
// validates the extracted JSON against the feedback contract.
func (c *DirectLLMClient) Generate(ctx context.Context, req *models.FeedbackRequest) (*models.FeedbackResponse, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("no API key configured for direct LLM client")
	}

	// One call, one wall-clock budget. A provider that accepts the
	// connection but never answers must not stall the pipeline.
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	content, err := c.chat(ctx, BuildFeedbackPrompt(req))
	if err != nil {
		return nil, err
	}

	jsonText := firstBalancedObject(content)
	if jsonText == "" {
		return nil, fmt.Errorf("no JSON object found in model output")
	}

	var feedback models.FeedbackResponse
	if err := json.Unmarshal([]byte(jsonText), &feedback); err != nil {
		return nil, fmt.Errorf("failed to parse model output: %w", err)
	}
	if err := feedback.Validate(); err != nil {
		return nil, fmt.Errorf("model returned invalid feedback: %w", err)
	}
	return &feedback, nil
}

func (c *DirectLLMClient) chat(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request data: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error: %s", string(body))
	}

	var responseData struct {
		Choices []struct {
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &responseData); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(responseData.Choices) == 0 || responseData.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("model returned no content")
	}
	return responseData.Choices[0].Message.Content, nil
}

// BuildFeedbackPrompt renders a request into the interview-coach prompt. The
// model is instructed to answer with nothing but the feedback JSON object.
func BuildFeedbackPrompt(req *models.FeedbackRequest) string {
	var responses strings.Builder
	for _, step := range models.FrameworkSteps(req.FrameworkName) {
		responses.WriteString(fmt.Sprintf("%s: %s\n\n", step, req.StepResponses[step]))
	}

	return fmt.Sprintf(`You are a professional interview coach analyzing a user's response to an interview question.

QUESTION: %q
FRAMEWORK USED: %s
CATEGORY: %s
DIFFICULTY: %s

USER RESPONSES:
%s
Based on the user's responses, provide feedback in the following JSON format:
{
  "overall_score": [number between 1-5, with 5 being the best],
  "strengths": [array of 2-3 specific strengths in their response],
  "areas_to_improve": [array of 2-3 specific areas to improve],
  "example_improvement": [a brief, specific example of how they could improve one point],
  "interview_readiness": [a 1-2 sentence assessment of how well this response would work in a real interview]
}

Ensure your feedback is constructive, specific to their responses, and focuses on both content and framework usage.
You MUST respond ONLY with valid JSON matching the format above.`,
		req.QuestionText, req.FrameworkName, req.Category, req.Difficulty, responses.String())
}

// firstBalancedObject returns the first balanced {...} substring of text, or
// "" when none exists. Braces inside JSON strings are accounted for.
func firstBalancedObject(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
