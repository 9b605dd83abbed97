package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"prepstar/config"
	"prepstar/models"
	"prepstar/services"

	"github.com/gin-gonic/gin"
)

// The managed feedback function as its own deployable. The API server's
// remote client calls this endpoint; in production it would sit behind the
// platform's function runtime.
func main() {
	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	generator, err := services.NewFeedbackGenerator(ctx, cfg.Gemini.ApiKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("Failed to initialize feedback generator: %v", err)
	}
	defer generator.Close()

	router := gin.Default()
	router.POST("/generate-feedback", func(c *gin.Context) {
		var req models.FeedbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}
		if req.QuestionText == "" || req.FrameworkName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		c.JSON(http.StatusOK, generator.Generate(c.Request.Context(), &req))
	})

	port := os.Getenv("FEEDBACK_FN_PORT")
	if port == "" {
		port = "8090"
	}
	log.Printf("Feedback function listening on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start feedback function: %v", err)
	}
}
