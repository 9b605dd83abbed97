package services

import (
	"reflect"
	"strings"
	"testing"

	"prepstar/models"
)

func strongStarRequest() *models.FeedbackRequest {
	// Each step is over 200 characters, keyword rich, and carries an
	// example-introducing phrase with concrete detail.
	return &models.FeedbackRequest{
		QuestionText:  "Tell me about a time you led a difficult project",
		FrameworkName: "STAR",
		Category:      "leadership",
		Difficulty:    "medium",
		StepResponses: map[string]string{
			"Situation": "Our team faced a stalled migration in March 2023. As the lead I took the initiative to own the problem, for example by mapping every stakeholder dependency across 3 services and presenting a clear decision record to drive alignment with Finance.",
			"Task":      "My task was to lead the recovery plan and mentor 2 junior engineers while keeping stakeholder trust. Specifically, I had to own the decision to pause the rollout in April, delegate the audit work, and drive a vision the whole team at Contoso could follow.",
			"Action":    "I chose to delegate the audit to 2 engineers and mentor them through it, for instance by pairing every Tuesday. I drove the decision to cut scope by 40 percent, took initiative on stakeholder updates, and kept a vision document that Marketing reviewed in June.",
			"Result":    "The result was a successful launch in July 2023 with 0 rollbacks. For example, our lead time dropped by 35 percent, the 2 mentees now own their own projects, and stakeholder satisfaction at Contoso rose in the next survey, a decision the team still cites.",
		},
	}
}

func TestLocalScorerDeterministic(t *testing.T) {
	scorer := NewLocalScorer()
	req := strongStarRequest()

	first := scorer.Generate(req)
	second := scorer.Generate(req)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical feedback for identical requests:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestLocalScorerStrongAnswerScoresHigh(t *testing.T) {
	feedback := NewLocalScorer().Generate(strongStarRequest())

	if feedback.OverallScore < 4 {
		t.Errorf("Expected overall score >= 4 for a strong answer, got %d", feedback.OverallScore)
	}
	if err := feedback.Validate(); err != nil {
		t.Errorf("Expected valid feedback, got: %v", err)
	}
}

func TestLocalScorerWeakAnswerScoresLow(t *testing.T) {
	req := &models.FeedbackRequest{
		QuestionText:  "Tell me about a challenge",
		FrameworkName: "CAR",
		Category:      "teamwork",
		StepResponses: map[string]string{
			"Context": "Stuff happened.",
			"Action":  "I did things.",
			"Result":  "It worked out.",
		},
	}
	feedback := NewLocalScorer().Generate(req)

	if feedback.OverallScore > 2 {
		t.Errorf("Expected overall score <= 2 for a weak answer, got %d", feedback.OverallScore)
	}
	if err := feedback.Validate(); err != nil {
		t.Errorf("Expected valid feedback even for weak answers, got: %v", err)
	}
}

func TestLocalScorerScoreAlwaysInRange(t *testing.T) {
	requests := []*models.FeedbackRequest{
		{FrameworkName: "STAR", StepResponses: map[string]string{}},
		{FrameworkName: "Unknown", StepResponses: map[string]string{"Only": ""}},
		strongStarRequest(),
	}
	for _, req := range requests {
		feedback := NewLocalScorer().Generate(req)
		if feedback.OverallScore < 1 || feedback.OverallScore > 5 {
			t.Errorf("Overall score %d out of range for request %+v", feedback.OverallScore, req)
		}
	}
}

func TestFrameworkUsageDuplicatePenalty(t *testing.T) {
	steps := []string{"Context", "Action", "Result"}
	responses := map[string]string{
		"Context": "I worked on the database",
		"Action":  "I worked on the database migration for two months",
		"Result":  "The migration shipped cleanly",
	}

	// "Context" is a substring of "Action", so both score 1. This also
	// fires on generic wording in very short answers; that false positive
	// is accepted behavior, not a bug.
	if got := frameworkUsageScore("Context", responses["Context"], steps, responses); got != 1 {
		t.Errorf("Expected duplicated step to score 1, got %d", got)
	}
	if got := frameworkUsageScore("Action", responses["Action"], steps, responses); got != 1 {
		t.Errorf("Expected containing step to score 1, got %d", got)
	}
	if got := frameworkUsageScore("Result", responses["Result"], steps, responses); got != 5 {
		t.Errorf("Expected unique step to score 5, got %d", got)
	}
}

func TestContentQualityThresholds(t *testing.T) {
	tests := []struct {
		length int
		want   int
	}{
		{250, 5}, {201, 5}, {200, 4}, {151, 4}, {150, 3}, {101, 3}, {100, 2}, {51, 2}, {50, 1}, {0, 1},
	}
	for _, tt := range tests {
		if got := contentQualityScore(strings.Repeat("a", tt.length)); got != tt.want {
			t.Errorf("contentQualityScore(len %d) = %d, want %d", tt.length, got, tt.want)
		}
	}
}

func TestSpecificityScoreRequiresExamples(t *testing.T) {
	// A high specificity count without an example phrase stays at 1.
	noExamples := ContentSignals{Specificity: 9}
	if got := specificityScore(noExamples); got != 1 {
		t.Errorf("Expected 1 without examples, got %d", got)
	}
	examplesNoDetail := ContentSignals{HasExamples: true}
	if got := specificityScore(examplesNoDetail); got != 2 {
		t.Errorf("Expected 2 with examples but no detail, got %d", got)
	}
	examplesRich := ContentSignals{HasExamples: true, Specificity: 5}
	if got := specificityScore(examplesRich); got != 5 {
		t.Errorf("Expected 5 with examples and rich detail, got %d", got)
	}
}

func TestLocalScorerListBounds(t *testing.T) {
	feedback := NewLocalScorer().Generate(strongStarRequest())
	if len(feedback.Strengths) < 1 || len(feedback.Strengths) > 3 {
		t.Errorf("Expected 1-3 strengths, got %d", len(feedback.Strengths))
	}
	if len(feedback.AreasToImprove) < 1 || len(feedback.AreasToImprove) > 3 {
		t.Errorf("Expected 1-3 areas to improve, got %d", len(feedback.AreasToImprove))
	}
}
