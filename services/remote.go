package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"prepstar/models"
)

const (
	defaultFnTimeout  = 15 * time.Second
	defaultMaxRetries = 3
	retryBaseDelay    = time.Second
)

// RemoteFeedbackClient invokes the managed feedback function over HTTP. Each
// attempt races against a wall-clock budget; a timeout is retried exactly
// like a transport error. The client never falls back on its own -- after the
// last attempt it reports a terminal error to the orchestrator.
type RemoteFeedbackClient struct {
	url        string
	timeout    time.Duration
	maxRetries int
	httpClient *http.Client
}

func NewRemoteFeedbackClient(url string, timeoutSeconds, maxRetries int) *RemoteFeedbackClient {
	timeout := defaultFnTimeout
	if timeoutSeconds > 0 {
		timeout = time.Duration(timeoutSeconds) * time.Second
	}
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &RemoteFeedbackClient{
		url:        url,
		timeout:    timeout,
		maxRetries: maxRetries,
		httpClient: &http.Client{},
	}
}

// Generate calls the feedback function with retries and exponential backoff.
func (c *RemoteFeedbackClient) Generate(ctx context.Context, req *models.FeedbackRequest) (*models.FeedbackResponse, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay << (attempt - 1)
			log.Printf("Feedback function attempt %d failed, retrying in %v: %v", attempt, delay, lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		feedback, err := c.invoke(ctx, req)
		if err == nil {
			return feedback, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("feedback function failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *RemoteFeedbackClient) invoke(ctx context.Context, req *models.FeedbackRequest) (*models.FeedbackResponse, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-client-info", "prepstar/1.0")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("feedback function request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feedback function returned status %d: %s", resp.StatusCode, string(body))
	}

	var feedback models.FeedbackResponse
	if err := json.Unmarshal(body, &feedback); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if err := feedback.Validate(); err != nil {
		return nil, fmt.Errorf("feedback function returned invalid feedback: %w", err)
	}
	return &feedback, nil
}
