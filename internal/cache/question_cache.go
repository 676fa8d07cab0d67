package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"quizboard/internal/model"
)

// QuestionCache keeps the trivia catalog in Redis so the selector's
// pool size and the REST catalog endpoint don't hit Mongo per request.
type QuestionCache interface {
	SetCatalog(ctx context.Context, questions []*model.Question) error
	GetCatalog(ctx context.Context) ([]*model.Question, error)
	Invalidate(ctx context.Context) error
}

const catalogKey = "questions:catalog"

type questionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewQuestionCache(client *redis.Client) QuestionCache {
	return &questionCache{
		client: client,
		ttl:    10 * time.Minute,
	}
}

func (c *questionCache) SetCatalog(ctx context.Context, questions []*model.Question) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, catalogKey, data, c.ttl).Err()
}

// GetCatalog returns nil, nil on a cache miss.
func (c *questionCache) GetCatalog(ctx context.Context) ([]*model.Question, error) {
	data, err := c.client.Get(ctx, catalogKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var questions []*model.Question
	if err := json.Unmarshal([]byte(data), &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (c *questionCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
