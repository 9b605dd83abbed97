package models

import (
	"fmt"
	"strings"
	"time"
)

// Frameworks maps each answer framework to its ordered step names.
var Frameworks = map[string][]string{
	"STAR":   {"Situation", "Task", "Action", "Result"},
	"PARADE": {"Problem", "Action", "Result", "Analysis", "Decision", "Experience"},
	"CAR":    {"Context", "Action", "Result"},
	"CIRCLE": {"Comprehend", "Identify", "Report", "Cut", "List", "Evaluate"},
}

// FrameworkSteps returns the ordered step names for a framework, or nil if the
// framework is unknown.
func FrameworkSteps(name string) []string {
	return Frameworks[name]
}

// FeedbackRequest is one question-answer submission to be scored. The wire
// names match the payload the feedback function accepts.
type FeedbackRequest struct {
	QuestionText  string            `json:"question_text" bson:"questionText"`
	FrameworkName string            `json:"framework_name" bson:"frameworkName"`
	Category      string            `json:"category" bson:"category"`
	Difficulty    string            `json:"difficulty" bson:"difficulty"`
	StepResponses map[string]string `json:"framework_steps_with_responses" bson:"stepResponses"`
}

// MissingSteps reports which steps of the selected framework have no non-empty
// answer. An unknown framework yields no steps and therefore no missing ones.
func (r *FeedbackRequest) MissingSteps() []string {
	var missing []string
	for _, step := range Frameworks[r.FrameworkName] {
		if strings.TrimSpace(r.StepResponses[step]) == "" {
			missing = append(missing, step)
		}
	}
	return missing
}

// IsComplete reports whether the request names a known framework and carries a
// non-empty answer for every one of its steps.
func (r *FeedbackRequest) IsComplete() bool {
	if r.QuestionText == "" || r.FrameworkName == "" {
		return false
	}
	if _, ok := Frameworks[r.FrameworkName]; !ok {
		return false
	}
	return len(r.MissingSteps()) == 0
}

// FeedbackResponse is the structured feedback shown to the user.
type FeedbackResponse struct {
	OverallScore       int      `json:"overall_score" bson:"overallScore"`
	Strengths          []string `json:"strengths" bson:"strengths"`
	AreasToImprove     []string `json:"areas_to_improve" bson:"areasToImprove"`
	ExampleImprovement string   `json:"example_improvement" bson:"exampleImprovement"`
	InterviewReadiness string   `json:"interview_readiness" bson:"interviewReadiness"`
}

// Validate checks the response against the feedback contract. Anything that
// fails here is discarded rather than shown to the user.
func (f *FeedbackResponse) Validate() error {
	if f == nil {
		return fmt.Errorf("feedback is nil")
	}
	if f.OverallScore < 1 || f.OverallScore > 5 {
		return fmt.Errorf("overall_score %d out of range 1-5", f.OverallScore)
	}
	if len(f.Strengths) < 1 || len(f.Strengths) > 3 {
		return fmt.Errorf("strengths must contain 1-3 entries, got %d", len(f.Strengths))
	}
	if len(f.AreasToImprove) < 1 || len(f.AreasToImprove) > 3 {
		return fmt.Errorf("areas_to_improve must contain 1-3 entries, got %d", len(f.AreasToImprove))
	}
	for _, s := range f.Strengths {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("strengths contains an empty entry")
		}
	}
	for _, s := range f.AreasToImprove {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("areas_to_improve contains an empty entry")
		}
	}
	if strings.TrimSpace(f.ExampleImprovement) == "" {
		return fmt.Errorf("example_improvement is empty")
	}
	if strings.TrimSpace(f.InterviewReadiness) == "" {
		return fmt.Errorf("interview_readiness is empty")
	}
	return nil
}

// Feedback sources recorded in attempt logs.
const (
	SourceRemote    = "remote"
	SourceDirectLLM = "direct-llm"
	SourceLocal     = "local"
)

// AttemptLog records one pipeline stage and its outcome. Records are append
// only; nothing updates them after insertion.
type AttemptLog struct {
	ID           string            `json:"id" bson:"_id"`
	Source       string            `json:"source" bson:"source"`
	Request      FeedbackRequest   `json:"request" bson:"request"`
	Response     *FeedbackResponse `json:"response,omitempty" bson:"response,omitempty"`
	ErrorMessage string            `json:"errorMessage,omitempty" bson:"errorMessage,omitempty"`
	Success      bool              `json:"success" bson:"success"`
	CreatedAt    time.Time         `json:"createdAt" bson:"createdAt"`
}

// FeedbackRating is a user's thumbs-up or thumbs-down on a piece of feedback.
type FeedbackRating struct {
	FeedbackLogID string    `json:"feedbackLogId" bson:"feedbackLogId"`
	Helpful       bool      `json:"helpful" bson:"helpful"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}
