// Package store defines the blob-store contract the classroom persists
// through. Two records exist: the lesson collection and the chat log. Every
// save is a full overwrite and every load decodes from scratch; adapters do
// not cache.
package store

import (
	"context"

	"pocket-classroom/internal/domain"
)

// Record keys shared by all adapters that address storage by key.
const (
	LessonsKey = "classroom:lessons"
	ChatKey    = "classroom:chat"
)

// Store reads and writes the two persisted records.
type Store interface {
	// LoadLessons returns the lesson collection. found=false means the key
	// was never written, which the seeder distinguishes from an explicitly
	// empty collection. A corrupt stored value is reported as absent with a
	// non-nil error so the caller can surface a warning instead of crashing.
	LoadLessons(ctx context.Context) (lessons []domain.Lesson, found bool, err error)
	SaveLessons(ctx context.Context, lessons []domain.Lesson) error

	// LoadChat returns the chat log; an absent key is an empty log.
	LoadChat(ctx context.Context) ([]domain.ChatMessage, error)
	SaveChat(ctx context.Context, chat []domain.ChatMessage) error
}
