package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"quizlink/internal/models"

	"github.com/go-redis/redis/v8"
)

const quizTTL = 24 * time.Hour

// RedisCache keeps hot quiz payloads keyed by slug. Cache failures are
// logged and swallowed; the database stays the source of truth.
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisCache(addr string) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: client,
		ctx:    context.Background(),
	}
}

func quizKey(slug string) string {
	return "quiz:" + slug
}

func (c *RedisCache) GetQuiz(slug string) (*models.Quiz, bool) {
	data, err := c.client.Get(c.ctx, quizKey(slug)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache get %s: %v", slug, err)
		}
		return nil, false
	}

	var quiz models.Quiz
	if err := json.Unmarshal(data, &quiz); err != nil {
		log.Printf("cache decode %s: %v", slug, err)
		return nil, false
	}
	return &quiz, true
}

func (c *RedisCache) SetQuiz(quiz *models.Quiz) {
	data, err := json.Marshal(quiz)
	if err != nil {
		log.Printf("cache encode %s: %v", quiz.Slug, err)
		return
	}
	if err := c.client.Set(c.ctx, quizKey(quiz.Slug), data, quizTTL).Err(); err != nil {
		log.Printf("cache set %s: %v", quiz.Slug, err)
	}
}

func (c *RedisCache) Invalidate(slug string) {
	if err := c.client.Del(c.ctx, quizKey(slug)).Err(); err != nil {
		log.Printf("cache del %s: %v", slug, err)
	}
}
