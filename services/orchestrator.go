package services

import (
	"context"
	"log"
	"time"

	"prepstar/models"

	"github.com/google/uuid"
)

// FeedbackSource is one stage of the feedback pipeline.
type FeedbackSource interface {
	Generate(ctx context.Context, req *models.FeedbackRequest) (*models.FeedbackResponse, error)
}

// AttemptLogger appends attempt records to a durable sink. Writes are best
// effort; a failed write never affects the pipeline result.
type AttemptLogger interface {
	Append(ctx context.Context, entry models.AttemptLog) error
}

// FeedbackResult is the outcome of one pipeline run: the feedback itself, the
// stage that produced it, and the log ID callers use for follow-up ratings.
type FeedbackResult struct {
	Feedback *models.FeedbackResponse `json:"feedback"`
	Source   string                   `json:"source"`
	LogID    string                   `json:"feedbackLogId,omitempty"`
}

// FeedbackOrchestrator runs the fallback pipeline: remote feedback function
// with retries, then one direct LLM call, then the local heuristic scorer.
// All collaborators are injected; the orchestrator holds no state across
// invocations and GenerateFeedback never fails.
type FeedbackOrchestrator struct {
	remote FeedbackSource
	direct FeedbackSource
	local  *LocalScorer
	logger AttemptLogger
	online func() bool
}

// NewFeedbackOrchestrator wires the pipeline. remote, direct, and logger may
// be nil; the corresponding stage is skipped. online may be nil, in which
// case the process is assumed to have connectivity.
func NewFeedbackOrchestrator(remote, direct FeedbackSource, local *LocalScorer, logger AttemptLogger, online func() bool) *FeedbackOrchestrator {
	if local == nil {
		local = NewLocalScorer()
	}
	if online == nil {
		online = func() bool { return true }
	}
	return &FeedbackOrchestrator{
		remote: remote,
		direct: direct,
		local:  local,
		logger: logger,
		online: online,
	}
}

// GenerateFeedback runs the pipeline for one request and always returns a
// valid response; degraded quality is the only visible effect of upstream
// failures.
func (o *FeedbackOrchestrator) GenerateFeedback(ctx context.Context, req *models.FeedbackRequest) *FeedbackResult {
	var attempts []models.AttemptLog

	record := func(source string, feedback *models.FeedbackResponse, err error) string {
		entry := models.AttemptLog{
			ID:        uuid.NewString(),
			Source:    source,
			Request:   *req,
			Response:  feedback,
			Success:   err == nil,
			CreatedAt: time.Now().UTC(),
		}
		if err != nil {
			entry.ErrorMessage = err.Error()
		}
		attempts = append(attempts, entry)
		return entry.ID
	}

	finish := func(source string, feedback *models.FeedbackResponse) *FeedbackResult {
		logID := record(source, feedback, nil)
		o.flush(attempts)
		return &FeedbackResult{Feedback: feedback, Source: source, LogID: logID}
	}

	if !req.IsComplete() {
		log.Printf("Incomplete feedback request for framework %q, returning invalid-submission feedback", req.FrameworkName)
		return finish(models.SourceLocal, invalidSubmissionFeedback())
	}

	if o.online() {
		if o.remote != nil {
			feedback, err := o.remote.Generate(ctx, req)
			if err == nil {
				return finish(models.SourceRemote, feedback)
			}
			log.Printf("Remote feedback function failed: %v", err)
			record(models.SourceRemote, nil, err)
		}

		if o.direct != nil {
			feedback, err := o.direct.Generate(ctx, req)
			if err == nil {
				return finish(models.SourceDirectLLM, feedback)
			}
			log.Printf("Direct LLM feedback failed: %v", err)
			record(models.SourceDirectLLM, nil, err)
		}
	} else {
		log.Printf("No network connectivity, using local feedback")
	}

	return finish(models.SourceLocal, o.local.Generate(req))
}

// flush writes the accumulated attempt records once the final outcome is
// known. Sink failures are swallowed.
func (o *FeedbackOrchestrator) flush(attempts []models.AttemptLog) {
	if o.logger == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, entry := range attempts {
		if err := o.logger.Append(ctx, entry); err != nil {
			log.Printf("Failed to write attempt log: %v", err)
		}
	}
}

// invalidSubmissionFeedback is returned without touching any remote source
// when the request is missing its question, framework, or step answers.
func invalidSubmissionFeedback() *models.FeedbackResponse {
	return &models.FeedbackResponse{
		OverallScore: 1,
		Strengths:    []string{"You started working through the question"},
		AreasToImprove: []string{
			"Complete every step of the framework before submitting",
			"Make sure each step has a written answer",
		},
		ExampleImprovement: "Fill in each framework step with at least a few sentences before asking for feedback.",
		InterviewReadiness: "Your submission is incomplete, so it cannot be assessed yet. Finish all steps and try again.",
	}
}
