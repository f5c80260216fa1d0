package app

import (
	"context"
	"fmt"
	"strings"

	"pocket-classroom/internal/domain"
)

// ChatLog returns the full message history, oldest first.
func (c *Classroom) ChatLog() []domain.ChatMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.ChatMessage, len(c.chat))
	copy(out, c.chat)
	return out
}

// PostMessage appends a message from the local sender, flushes the log, and
// notifies subscribers. Blank text is rejected; messages are never edited or
// deleted.
func (c *Classroom) PostMessage(ctx context.Context, text string) (domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatMessage{}, domain.NewValidationError("message", "text must not be blank")
	}

	msg := domain.ChatMessage{
		From: c.sender,
		Text: text,
		Time: domain.Stamp(c.now()),
	}

	c.mu.Lock()
	c.chat = append(c.chat, msg)
	log := make([]domain.ChatMessage, len(c.chat))
	copy(log, c.chat)
	c.mu.Unlock()

	if err := c.store.SaveChat(ctx, log); err != nil {
		return domain.ChatMessage{}, fmt.Errorf("flush chat: %w", err)
	}

	c.broadcastChat(log)
	return msg, nil
}

// SubscribeChat returns a channel that receives the full log after every
// post, newest message last. The caller must invoke cancel to avoid leaks.
func (c *Classroom) SubscribeChat() (<-chan []domain.ChatMessage, func()) {
	ch := make(chan []domain.ChatMessage, 8)

	c.mu.Lock()
	c.chatSubs[ch] = struct{}{}
	initial := make([]domain.ChatMessage, len(c.chat))
	copy(initial, c.chat)
	c.mu.Unlock()

	ch <- initial

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.chatSubs[ch]; ok {
			delete(c.chatSubs, ch)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

func (c *Classroom) broadcastChat(log []domain.ChatMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for ch := range c.chatSubs {
		select {
		case ch <- log:
		default:
			// Drop the stalest update so a slow reader never blocks a post.
			select {
			case <-ch:
			default:
			}
			ch <- log
		}
	}
}
