package cache

import (
	"context"
	"encoding/json"
	"time"

	"prepstar/models"

	"github.com/go-redis/redis/v8"
)

const questionTTL = 10 * time.Minute

// QuestionCache is a Redis-backed cache in front of the question store.
type QuestionCache struct {
	client *redis.Client
}

func NewQuestionCache(client *redis.Client) *QuestionCache {
	return &QuestionCache{client: client}
}

func (c *QuestionCache) Set(ctx context.Context, question *models.Question) error {
	data, err := json.Marshal(question)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "question:"+question.ID, data, questionTTL).Err()
}

func (c *QuestionCache) Get(ctx context.Context, id string) (*models.Question, error) {
	data, err := c.client.Get(ctx, "question:"+id).Result()
	if err != nil {
		return nil, err
	}
	var question models.Question
	err = json.Unmarshal([]byte(data), &question)
	return &question, err
}

func (c *QuestionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, "question:"+id).Err()
}
