package main

import (
	"context"
	"log"
	"strconv"

	"prepstar/cache"
	"prepstar/config"
	"prepstar/db"
	"prepstar/routes"
	"prepstar/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	store, err := db.Connect(ctx, cfg.Database.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer store.Close(ctx)
	log.Println("Connected to MongoDB")

	// Seed the mock questions so a fresh database has something to serve.
	if err := store.InsertQuestions(ctx, services.MockQuestions); err != nil {
		log.Printf("Failed to seed questions: %v", err)
	}

	var questionCache *cache.QuestionCache
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis unavailable, question caching disabled: %v", err)
		} else {
			questionCache = cache.NewQuestionCache(redisClient)
		}
	}

	remote := services.NewRemoteFeedbackClient(cfg.FeedbackFn.URL, cfg.FeedbackFn.TimeoutSeconds, cfg.FeedbackFn.MaxRetries)

	var direct services.FeedbackSource
	if !cfg.Openai.Disabled && cfg.Openai.GptApiKey != "" {
		direct = services.NewDirectLLMClient(cfg.Openai.GptApiKey, cfg.Openai.Model)
	}

	orchestrator := services.NewFeedbackOrchestrator(
		remote,
		direct,
		services.NewLocalScorer(),
		store,
		func() bool { return !cfg.Offline },
	)

	questionService := services.NewQuestionService(store, questionCache)

	router := setupRouter(orchestrator, questionService, store)
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(orchestrator *services.FeedbackOrchestrator, questionService *services.QuestionService, store *db.Store) *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	feedbackHandler := &routes.FeedbackHandler{Orchestrator: orchestrator, Store: store}
	questionHandler := &routes.QuestionHandler{Service: questionService}

	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	router.POST("/feedback", feedbackHandler.GenerateFeedback)
	router.POST("/feedback/rating", feedbackHandler.RateFeedback)
	router.GET("/questions", questionHandler.GetQuestions)
	router.GET("/questions/:id", questionHandler.GetQuestionByID)

	return router
}
