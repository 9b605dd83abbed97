package routes

import (
	"net/http"
	"strconv"
	"strings"

	"prepstar/models"
	"prepstar/services"

	"github.com/gin-gonic/gin"
)

// QuestionHandler serves practice questions.
type QuestionHandler struct {
	Service *services.QuestionService
}

// GetQuestions lists questions in random order, optionally filtered by
// category, difficulty, or company, excluding already-seen IDs.
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	filter := models.QuestionFilter{
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		Company:    c.Query("company"),
	}
	if exclude := c.Query("exclude"); exclude != "" {
		filter.ExcludeIDs = strings.Split(exclude, ",")
	}

	questions := h.Service.RandomQuestions(c.Request.Context(), filter, limit)
	c.JSON(http.StatusOK, questions)
}

// GetQuestionByID fetches one question.
func (h *QuestionHandler) GetQuestionByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question id is required"})
		return
	}
	question := h.Service.QuestionByID(c.Request.Context(), id)
	c.JSON(http.StatusOK, question)
}
