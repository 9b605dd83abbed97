package services

import (
	"regexp"
	"sort"
	"strings"
)

// Sentiment verdicts produced by AnalyzeContent.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentMixed    = "mixed"
	SentimentNeutral  = "neutral"
)

// ContentSignals is the lightweight signal bundle extracted from one answer.
type ContentSignals struct {
	KeywordMatches []string
	Sentiment      string
	HasExamples    bool
	Specificity    int
	LearningCount  int
}

var categoryKeywords = map[string][]string{
	"teamwork": {
		"team", "collaborate", "together", "colleague", "coordinate",
		"support", "share", "align", "pair", "cross-functional",
	},
	"problemsolving": {
		"problem", "solve", "solution", "analyze", "root cause",
		"debug", "investigate", "approach", "trade-off", "prioritize",
	},
	"leadership": {
		"lead", "mentor", "delegate", "own", "initiative",
		"decision", "vision", "motivate", "stakeholder", "drive",
	},
	"technical": {
		"design", "implement", "architecture", "performance", "scale",
		"test", "deploy", "refactor", "migrate", "automate",
	},
	"communication": {
		"present", "explain", "listen", "feedback", "clarify",
		"document", "persuade", "negotiate", "update", "audience",
	},
}

var positiveWords = []string{
	"success", "achieved", "improved", "won", "delivered", "exceeded",
	"growth", "effective", "proud", "accomplished",
}

var negativeWords = []string{
	"failed", "failure", "mistake", "missed", "conflict", "blocked",
	"struggled", "difficult", "wrong", "lost",
}

var learningWords = []string{
	"learned", "learning", "realized", "takeaway", "lesson",
	"grew", "retrospective", "next time",
}

var examplePhrases = []string{
	"for example", "for instance", "such as", "like when",
	"specifically", "in particular",
}

var (
	digitSeqRe   = regexp.MustCompile(`\d+`)
	capitalProxy = regexp.MustCompile(`^[A-Z][a-z]+`)
	// Whole words only, so "maybe" is not a May and "marching" not a March.
	monthRe = regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\b`)
)

// AnalyzeContent extracts keyword, sentiment, example, and specificity
// signals from one answer. It is a pure function and always returns a value,
// including for empty input.
func AnalyzeContent(text, category string) ContentSignals {
	lower := strings.ToLower(text)

	matched := map[string]bool{}
	for _, kw := range keywordsForCategory(category) {
		if strings.Contains(lower, kw) {
			matched[kw] = true
		}
	}
	matches := make([]string, 0, len(matched))
	for kw := range matched {
		matches = append(matches, kw)
	}
	sort.Strings(matches)

	positiveCount := countContained(lower, positiveWords)
	negativeCount := countContained(lower, negativeWords)
	// The learning count is carried through as a signal but does not weigh
	// into the sentiment verdict.
	learningCount := countContained(lower, learningWords)

	sentiment := SentimentNeutral
	switch {
	case positiveCount > negativeCount:
		sentiment = SentimentPositive
	case negativeCount > positiveCount:
		sentiment = SentimentNegative
	case positiveCount > 0 && negativeCount > 0:
		sentiment = SentimentMixed
	}

	hasExamples := false
	for _, phrase := range examplePhrases {
		if strings.Contains(lower, phrase) {
			hasExamples = true
			break
		}
	}

	return ContentSignals{
		KeywordMatches: matches,
		Sentiment:      sentiment,
		HasExamples:    hasExamples,
		Specificity:    specificityCount(text, lower),
		LearningCount:  learningCount,
	}
}

// keywordsForCategory returns the keyword set for a known category, or the
// union of every set when the category is unrecognized.
func keywordsForCategory(category string) []string {
	key := strings.ToLower(strings.ReplaceAll(category, " ", ""))
	if kws, ok := categoryKeywords[key]; ok {
		return kws
	}
	var all []string
	for _, kws := range categoryKeywords {
		all = append(all, kws...)
	}
	return all
}

func countContained(lower string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			n++
		}
	}
	return n
}

// specificityCount counts digit sequences, month names, and capitalized
// tokens as a coarse proxy for concrete detail.
func specificityCount(text, lower string) int {
	count := len(digitSeqRe.FindAllString(text, -1))
	count += len(monthRe.FindAllString(lower, -1))
	for _, token := range strings.Fields(text) {
		if capitalProxy.MatchString(token) {
			count++
		}
	}
	return count
}
