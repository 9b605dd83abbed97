package services

import (
	"context"
	"log"
	"math/rand"
	"time"

	"prepstar/cache"
	"prepstar/models"
)

// Fetch more questions than requested for better randomization.
const fetchMultiplier = 3

// QuestionStore is the persistence surface the question service needs.
type QuestionStore interface {
	ListQuestions(ctx context.Context, filter models.QuestionFilter, limit int) ([]models.Question, error)
	QuestionByID(ctx context.Context, id string) (*models.Question, error)
}

// QuestionService serves practice questions, shuffling listings and caching
// single-question lookups. When the store is empty or unreachable it serves a
// built-in mock set so the app keeps working.
type QuestionService struct {
	store QuestionStore
	cache *cache.QuestionCache
}

func NewQuestionService(store QuestionStore, questionCache *cache.QuestionCache) *QuestionService {
	return &QuestionService{store: store, cache: questionCache}
}

// MockQuestions is the fallback question set, also used for seeding a fresh
// database.
var MockQuestions = []models.Question{
	{
		ID:         "mock-1",
		Question:   "Design an alarm clock for blind people",
		Category:   "Behavioral",
		Difficulty: "medium",
		Company:    "Google",
		JobRole:    "Product Management",
	},
	{
		ID:         "mock-2",
		Question:   "Tell me about a time you failed and what you learned from it",
		Category:   "Behavioral",
		Difficulty: "easy",
		Company:    "Apple",
		JobRole:    "Software Engineering",
	},
	{
		ID:         "mock-3",
		Question:   "How would you design a recommendation system for a streaming platform?",
		Category:   "Technical",
		Difficulty: "hard",
		Company:    "Netflix",
		JobRole:    "Data Science",
	},
}

// RandomQuestions returns up to limit questions matching the filter in random
// order. It never fails; storage problems degrade to the mock set.
func (s *QuestionService) RandomQuestions(ctx context.Context, filter models.QuestionFilter, limit int) []models.Question {
	if limit <= 0 {
		limit = 10
	}

	questions, err := s.store.ListQuestions(ctx, filter, limit*fetchMultiplier)
	if err != nil || len(questions) == 0 {
		if err != nil {
			log.Printf("Failed to list questions, serving mock set: %v", err)
		}
		return MockQuestions
	}

	shuffled := make([]models.Question, len(questions))
	copy(shuffled, questions)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if len(shuffled) > limit {
		shuffled = shuffled[:limit]
	}
	return shuffled
}

// QuestionByID fetches one question, consulting the cache first. An unknown
// ID degrades to the first mock question, matching listing behavior.
func (s *QuestionService) QuestionByID(ctx context.Context, id string) *models.Question {
	if s.cache != nil {
		if question, err := s.cache.Get(ctx, id); err == nil {
			return question
		}
	}

	question, err := s.store.QuestionByID(ctx, id)
	if err != nil {
		log.Printf("Failed to fetch question %s, serving mock question: %v", id, err)
		return &MockQuestions[0]
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, question); err != nil {
			log.Printf("Failed to cache question %s: %v", id, err)
		}
	}
	return question
}
