package app

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"pocket-classroom/internal/domain"
)

// ExportFilename is the fixed name offered with snapshot downloads.
const ExportFilename = "pocket-classroom-export.json"

// ExportSnapshot captures the whole in-memory state.
func (c *Classroom) ExportSnapshot() domain.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap := domain.Snapshot{
		Lessons: make([]domain.Lesson, len(c.lessons)),
		Chat:    make([]domain.ChatMessage, len(c.chat)),
	}
	copy(snap.Lessons, c.lessons)
	copy(snap.Chat, c.chat)
	return snap
}

// EncodeSnapshot renders the current state as indented JSON, the export file
// format.
func (c *Classroom) EncodeSnapshot() ([]byte, error) {
	raw, err := json.MarshalIndent(c.ExportSnapshot(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return raw, nil
}

// ImportSnapshot parses a snapshot and wholesale-replaces the corresponding
// state. The input is decoded completely before anything is touched: a
// malformed file fails with ImportError and changes nothing, not even
// partially. Absent top-level fields leave that collection as it was.
func (c *Classroom) ImportSnapshot(ctx context.Context, data []byte) error {
	var in struct {
		Lessons *[]domain.Lesson      `json:"lessons"`
		Chat    *[]domain.ChatMessage `json:"chat"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return &domain.ImportError{Err: err}
	}

	c.mu.Lock()
	if in.Lessons != nil {
		c.lessons = *in.Lessons
		if c.selectedID != "" && c.indexLocked(c.selectedID) < 0 {
			c.selectedID = ""
		}
	}
	if in.Chat != nil {
		c.chat = *in.Chat
	}
	lessons := make([]domain.Lesson, len(c.lessons))
	copy(lessons, c.lessons)
	chat := make([]domain.ChatMessage, len(c.chat))
	copy(chat, c.chat)
	c.mu.Unlock()

	// Both records flush; the first failure wins.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.store.SaveLessons(gctx, lessons) })
	g.Go(func() error { return c.store.SaveChat(gctx, chat) })
	if err := g.Wait(); err != nil {
		return fmt.Errorf("flush imported state: %w", err)
	}

	c.broadcastChat(chat)
	return nil
}
