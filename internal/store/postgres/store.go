// Package postgres persists both records in a single key-value table,
// classroom_blobs(key text primary key, data jsonb). The blob contract stays
// identical to the other backends: one full-overwrite row per record.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"pocket-classroom/internal/domain"
	"pocket-classroom/internal/store"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) LoadLessons(ctx context.Context) ([]domain.Lesson, bool, error) {
	raw, found, err := s.get(ctx, store.LessonsKey)
	if err != nil || !found {
		return nil, false, err
	}
	var lessons []domain.Lesson
	if err := json.Unmarshal(raw, &lessons); err != nil {
		return nil, false, fmt.Errorf("decode lessons: %w", err)
	}
	return lessons, true, nil
}

func (s *Store) SaveLessons(ctx context.Context, lessons []domain.Lesson) error {
	return s.put(ctx, store.LessonsKey, lessons)
}

func (s *Store) LoadChat(ctx context.Context) ([]domain.ChatMessage, error) {
	raw, found, err := s.get(ctx, store.ChatKey)
	if err != nil || !found {
		return nil, err
	}
	var chat []domain.ChatMessage
	if err := json.Unmarshal(raw, &chat); err != nil {
		return nil, fmt.Errorf("decode chat: %w", err)
	}
	return chat, nil
}

func (s *Store) SaveChat(ctx context.Context, chat []domain.ChatMessage) error {
	return s.put(ctx, store.ChatKey, chat)
}

func (s *Store) get(ctx context.Context, key string) ([]byte, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM classroom_blobs WHERE key=$1`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	return raw, true, nil
}

func (s *Store) put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO classroom_blobs (key, data) VALUES ($1, $2::jsonb)
		 ON CONFLICT (key) DO UPDATE SET data=EXCLUDED.data`, key, raw)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
