// Package memory provides an in-memory store for tests and demo runs.
package memory

import (
	"context"
	"sync"

	"pocket-classroom/internal/domain"
)

// Store keeps both records in process memory. Copies are made on the way in
// and out so callers cannot alias the stored slices.
type Store struct {
	mu         sync.RWMutex
	lessons    []domain.Lesson
	hasLessons bool
	chat       []domain.ChatMessage
}

func New() *Store {
	return &Store{}
}

func (s *Store) LoadLessons(_ context.Context) ([]domain.Lesson, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasLessons {
		return nil, false, nil
	}
	return copyLessons(s.lessons), true, nil
}

func (s *Store) SaveLessons(_ context.Context, lessons []domain.Lesson) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lessons = copyLessons(lessons)
	s.hasLessons = true
	return nil
}

func (s *Store) LoadChat(_ context.Context) ([]domain.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ChatMessage, len(s.chat))
	copy(out, s.chat)
	return out, nil
}

func (s *Store) SaveChat(_ context.Context, chat []domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = make([]domain.ChatMessage, len(chat))
	copy(s.chat, chat)
	return nil
}

func copyLessons(in []domain.Lesson) []domain.Lesson {
	out := make([]domain.Lesson, len(in))
	for i, l := range in {
		l.Assignments = append([]string(nil), l.Assignments...)
		l.Quiz = append([]domain.Question(nil), l.Quiz...)
		out[i] = l
	}
	return out
}
