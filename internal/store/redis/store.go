// Package redis persists both records as JSON strings in Redis, one key per
// record. TTL of zero keeps records forever; a positive TTL turns the store
// into a scratch classroom that expires.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"pocket-classroom/internal/domain"
	"pocket-classroom/internal/store"
)

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) LoadLessons(ctx context.Context) ([]domain.Lesson, bool, error) {
	raw, err := s.client.Get(ctx, store.LessonsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get lessons: %w", err)
	}
	var lessons []domain.Lesson
	if err := json.Unmarshal(raw, &lessons); err != nil {
		return nil, false, fmt.Errorf("decode lessons: %w", err)
	}
	return lessons, true, nil
}

func (s *Store) SaveLessons(ctx context.Context, lessons []domain.Lesson) error {
	return s.set(ctx, store.LessonsKey, lessons)
}

func (s *Store) LoadChat(ctx context.Context) ([]domain.ChatMessage, error) {
	raw, err := s.client.Get(ctx, store.ChatKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get chat: %w", err)
	}
	var chat []domain.ChatMessage
	if err := json.Unmarshal(raw, &chat); err != nil {
		return nil, fmt.Errorf("decode chat: %w", err)
	}
	return chat, nil
}

func (s *Store) SaveChat(ctx context.Context, chat []domain.ChatMessage) error {
	return s.set(ctx, store.ChatKey, chat)
}

func (s *Store) set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
