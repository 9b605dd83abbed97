package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"prepstar/models"
)

// LocalScorer is the deterministic heuristic fallback. It never fails and is
// the guaranteed terminal stage of the feedback pipeline.
type LocalScorer struct{}

func NewLocalScorer() *LocalScorer {
	return &LocalScorer{}
}

// Generate scores a complete request from text statistics alone. The same
// request always produces the same response.
func (s *LocalScorer) Generate(req *models.FeedbackRequest) *models.FeedbackResponse {
	steps := models.FrameworkSteps(req.FrameworkName)
	if len(steps) == 0 {
		// Unknown framework: score whatever steps were submitted, in a
		// stable order.
		for step := range req.StepResponses {
			steps = append(steps, step)
		}
		sort.Strings(steps)
	}

	var qualitySum, relevanceSum, specificitySum, usageSum float64
	var strengths, improvements []string

	for _, step := range steps {
		text := req.StepResponses[step]
		signals := AnalyzeContent(text, req.Category)

		qualitySum += float64(contentQualityScore(text))
		relevanceSum += float64(relevanceScore(len(signals.KeywordMatches)))
		specificitySum += float64(specificityScore(signals))
		usageSum += float64(frameworkUsageScore(step, text, steps, req.StepResponses))

		if len(signals.KeywordMatches) >= 3 {
			strengths = append(strengths, fmt.Sprintf("Your %s uses relevant, role-specific vocabulary", step))
		}
		if signals.HasExamples {
			strengths = append(strengths, fmt.Sprintf("Your %s is grounded in a concrete example", step))
		}
		if len(text) < 100 {
			improvements = append(improvements, fmt.Sprintf("Expand your %s with more detail about what you did and why", step))
		}
		if !signals.HasExamples {
			improvements = append(improvements, fmt.Sprintf("Add a specific example to your %s to make it more convincing", step))
		}
	}

	n := float64(len(steps))
	if n == 0 {
		n = 1
	}
	overall := 0.25*(qualitySum/n) + 0.25*(relevanceSum/n) + 0.25*(specificitySum/n) + 0.25*(usageSum/n)
	score := int(math.Round(overall))
	if score < 1 {
		score = 1
	}
	if score > 5 {
		score = 5
	}

	if len(strengths) == 0 {
		strengths = []string{"You worked through every step of the framework"}
	}
	if len(improvements) == 0 {
		improvements = []string{"Quantify your achievements with metrics to make the impact concrete"}
	}
	if len(strengths) > 3 {
		strengths = strengths[:3]
	}
	if len(improvements) > 3 {
		improvements = improvements[:3]
	}

	return &models.FeedbackResponse{
		OverallScore:       score,
		Strengths:          strengths,
		AreasToImprove:     improvements,
		ExampleImprovement: exampleImprovementFor(score),
		InterviewReadiness: interviewReadinessFor(score),
	}
}

func contentQualityScore(text string) int {
	switch l := len(text); {
	case l > 200:
		return 5
	case l > 150:
		return 4
	case l > 100:
		return 3
	case l > 50:
		return 2
	default:
		return 1
	}
}

func relevanceScore(keywordCount int) int {
	switch {
	case keywordCount >= 5:
		return 5
	case keywordCount >= 4:
		return 4
	case keywordCount >= 3:
		return 3
	case keywordCount >= 2:
		return 2
	default:
		return 1
	}
}

// specificityScore requires at least one example-introducing phrase before
// the specificity count is rewarded.
func specificityScore(signals ContentSignals) int {
	if !signals.HasExamples {
		return 1
	}
	switch {
	case signals.Specificity >= 5:
		return 5
	case signals.Specificity >= 3:
		return 4
	case signals.Specificity >= 1:
		return 3
	default:
		return 2
	}
}

// frameworkUsageScore checks that a step's text is not duplicated across
// steps. Containment either way counts as duplication. Very short answers can
// trip this on generic wording; that is accepted behavior.
func frameworkUsageScore(step, text string, steps []string, responses map[string]string) int {
	for _, other := range steps {
		if other == step {
			continue
		}
		otherText := responses[other]
		if text == "" || otherText == "" {
			continue
		}
		if strings.Contains(otherText, text) || strings.Contains(text, otherText) {
			return 1
		}
	}
	return 5
}

func exampleImprovementFor(score int) string {
	if score >= 4 {
		return "To push a strong answer further, attach a number to your result. For example: 'The new onboarding flow cut support tickets by 30% in the first quarter.'"
	}
	return "When describing your actions, include the specific steps you took and why you chose them. For example: 'I decided to run an A/B test because it would validate our hypothesis with real user data before a full rollout.'"
}

func interviewReadinessFor(score int) string {
	switch {
	case score >= 4:
		return "Your response is well structured and would likely land well in a real interview. Keep practicing with varied questions to stay sharp."
	case score >= 3:
		return "Your response shows good preparation. Tighten the weaker steps and add concrete examples to be interview ready."
	default:
		return "Your response needs more depth before it is interview ready. Work through each step again with a specific situation in mind."
	}
}
