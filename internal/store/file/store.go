// Package file persists each record as a JSON file under a data directory.
// This is the default backend: the closest analog to the browser's local
// key-value store the original design wrote through.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"pocket-classroom/internal/domain"
)

const (
	lessonsFile = "lessons.json"
	chatFile    = "chat.json"
)

// Store writes indented JSON files, one per record.
type Store struct {
	dir string
}

// New creates the data directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) LoadLessons(_ context.Context) ([]domain.Lesson, bool, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, lessonsFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read lessons: %w", err)
	}
	var lessons []domain.Lesson
	if err := json.Unmarshal(raw, &lessons); err != nil {
		// Corrupt record: treat as absent, report the decode failure upward.
		return nil, false, fmt.Errorf("decode lessons: %w", err)
	}
	return lessons, true, nil
}

func (s *Store) SaveLessons(_ context.Context, lessons []domain.Lesson) error {
	return s.write(lessonsFile, lessons)
}

func (s *Store) LoadChat(_ context.Context) ([]domain.ChatMessage, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, chatFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read chat: %w", err)
	}
	var chat []domain.ChatMessage
	if err := json.Unmarshal(raw, &chat); err != nil {
		return nil, fmt.Errorf("decode chat: %w", err)
	}
	return chat, nil
}

func (s *Store) SaveChat(_ context.Context, chat []domain.ChatMessage) error {
	return s.write(chatFile, chat)
}

func (s *Store) write(name string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
