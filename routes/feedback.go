package routes

import (
	"net/http"
	"time"

	"prepstar/db"
	"prepstar/models"
	"prepstar/services"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler exposes the feedback pipeline and the feedback-on-feedback
// rating endpoint.
type FeedbackHandler struct {
	Orchestrator *services.FeedbackOrchestrator
	Store        *db.Store
}

// GenerateFeedback runs the fallback pipeline for one submission. The
// pipeline itself never fails; only a malformed JSON body is rejected.
func (h *FeedbackHandler) GenerateFeedback(c *gin.Context) {
	var req models.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	result := h.Orchestrator.GenerateFeedback(c.Request.Context(), &req)
	c.JSON(http.StatusOK, result)
}

// RateFeedback records whether generated feedback was helpful.
func (h *FeedbackHandler) RateFeedback(c *gin.Context) {
	var req struct {
		FeedbackLogID string `json:"feedbackLogId" binding:"required"`
		Helpful       *bool  `json:"helpful" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	rating := models.FeedbackRating{
		FeedbackLogID: req.FeedbackLogID,
		Helpful:       *req.Helpful,
		CreatedAt:     time.Now().UTC(),
	}
	if err := h.Store.InsertRating(c.Request.Context(), rating); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record rating"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}
