package models

import "testing"

func completeRequest() *FeedbackRequest {
	return &FeedbackRequest{
		QuestionText:  "Tell me about a time you failed",
		FrameworkName: "STAR",
		Category:      "Behavioral",
		Difficulty:    "easy",
		StepResponses: map[string]string{
			"Situation": "We shipped a bug.",
			"Task":      "I had to fix it.",
			"Action":    "I wrote a regression test.",
			"Result":    "It never recurred.",
		},
	}
}

func TestIsComplete(t *testing.T) {
	req := completeRequest()
	if !req.IsComplete() {
		t.Errorf("Expected a fully answered STAR request to be complete")
	}

	req.StepResponses["Action"] = "   "
	if req.IsComplete() {
		t.Errorf("Expected a whitespace-only step to make the request incomplete")
	}
}

func TestIsCompleteRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FeedbackRequest)
	}{
		{"missing question", func(r *FeedbackRequest) { r.QuestionText = "" }},
		{"missing framework", func(r *FeedbackRequest) { r.FrameworkName = "" }},
		{"unknown framework", func(r *FeedbackRequest) { r.FrameworkName = "SOAR" }},
		{"missing step", func(r *FeedbackRequest) { delete(r.StepResponses, "Result") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := completeRequest()
			tt.mutate(req)
			if req.IsComplete() {
				t.Errorf("Expected request to be incomplete")
			}
		})
	}
}

func TestMissingSteps(t *testing.T) {
	req := completeRequest()
	req.StepResponses["Task"] = ""
	delete(req.StepResponses, "Result")

	missing := req.MissingSteps()
	want := map[string]bool{"Task": true, "Result": true}
	if len(missing) != 2 {
		t.Fatalf("Expected 2 missing steps, got %v", missing)
	}
	for _, step := range missing {
		if !want[step] {
			t.Errorf("Unexpected missing step %q", step)
		}
	}
}

func validResponse() *FeedbackResponse {
	return &FeedbackResponse{
		OverallScore:       3,
		Strengths:          []string{"clear"},
		AreasToImprove:     []string{"depth"},
		ExampleImprovement: "Add a metric.",
		InterviewReadiness: "Getting there.",
	}
}

func TestFeedbackResponseValidate(t *testing.T) {
	if err := validResponse().Validate(); err != nil {
		t.Errorf("Expected valid response to pass, got: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*FeedbackResponse)
	}{
		{"score too low", func(f *FeedbackResponse) { f.OverallScore = 0 }},
		{"score too high", func(f *FeedbackResponse) { f.OverallScore = 6 }},
		{"no strengths", func(f *FeedbackResponse) { f.Strengths = nil }},
		{"too many strengths", func(f *FeedbackResponse) { f.Strengths = []string{"a", "b", "c", "d"} }},
		{"empty strength entry", func(f *FeedbackResponse) { f.Strengths = []string{" "} }},
		{"no areas", func(f *FeedbackResponse) { f.AreasToImprove = nil }},
		{"empty example", func(f *FeedbackResponse) { f.ExampleImprovement = "" }},
		{"empty readiness", func(f *FeedbackResponse) { f.InterviewReadiness = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validResponse()
			tt.mutate(f)
			if err := f.Validate(); err == nil {
				t.Errorf("Expected validation to fail")
			}
		})
	}
}

func TestFrameworkSteps(t *testing.T) {
	if steps := FrameworkSteps("STAR"); len(steps) != 4 || steps[0] != "Situation" {
		t.Errorf("Unexpected STAR steps: %v", steps)
	}
	if steps := FrameworkSteps("PARADE"); len(steps) != 6 {
		t.Errorf("Expected 6 PARADE steps, got %v", steps)
	}
	if steps := FrameworkSteps("nope"); steps != nil {
		t.Errorf("Expected nil for unknown framework, got %v", steps)
	}
}
