package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"pocket-classroom/internal/domain"
	"pocket-classroom/internal/store"
)

// DefaultSender is the label attached to chat messages when none is configured.
const DefaultSender = "You"

// Options tune a Classroom at construction. Zero values pick defaults;
// Now and NewID exist so tests can pin timestamps and ids.
type Options struct {
	Sender string
	Now    func() time.Time
	NewID  func() string
}

// Classroom owns the in-memory lesson collection, the chat log, and the
// current selection. Every mutation flushes the affected record through the
// store before returning, so at-rest state never lags across operations.
type Classroom struct {
	store  store.Store
	sender string
	now    func() time.Time
	newID  func() string

	mu         sync.RWMutex
	lessons    []domain.Lesson
	chat       []domain.ChatMessage
	selectedID string
	warning    string
	chatSubs   map[chan []domain.ChatMessage]struct{}
}

// Load hydrates a Classroom from the store. A corrupt lessons record is
// treated as absent and reported through Warning rather than failing the
// load; nothing here is fatal.
func Load(ctx context.Context, st store.Store, opts Options) (*Classroom, error) {
	c := &Classroom{
		store:    st,
		sender:   opts.Sender,
		now:      opts.Now,
		newID:    opts.NewID,
		chatSubs: make(map[chan []domain.ChatMessage]struct{}),
	}
	if c.sender == "" {
		c.sender = DefaultSender
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.newID == nil {
		c.newID = domain.NewID
	}

	lessons, found, err := st.LoadLessons(ctx)
	if err != nil {
		c.warning = fmt.Sprintf("stored lessons could not be read and were ignored: %v", err)
	} else if found {
		c.lessons = lessons
	}

	chat, err := st.LoadChat(ctx)
	if err != nil {
		c.warning = fmt.Sprintf("stored chat could not be read and was ignored: %v", err)
	} else {
		c.chat = chat
	}
	return c, nil
}

// Warning reports a non-fatal problem found while hydrating, or "".
func (c *Classroom) Warning() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.warning
}

// Lessons returns the collection in its current order (new lessons first).
func (c *Classroom) Lessons() []domain.Lesson {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Lesson, len(c.lessons))
	copy(out, c.lessons)
	return out
}

// LessonView is the list-entry shape the lesson list renders from. Selected
// is keyed by id, not title, so two lessons sharing a title stay distinct.
type LessonView struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Questions int    `json:"questions"`
	Selected  bool   `json:"selected"`
}

// LessonViews returns list entries for every lesson in order.
func (c *Classroom) LessonViews() []LessonView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	views := make([]LessonView, 0, len(c.lessons))
	for _, l := range c.lessons {
		views = append(views, LessonView{
			ID:        l.ID,
			Title:     l.Title,
			Questions: len(l.Quiz),
			Selected:  l.ID == c.selectedID,
		})
	}
	return views
}

// Get looks a lesson up by id.
func (c *Classroom) Get(id string) (domain.Lesson, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexLocked(id); i >= 0 {
		return c.lessons[i], true
	}
	return domain.Lesson{}, false
}

// Select makes the lesson with the given id current and returns it.
func (c *Classroom) Select(id string) (domain.Lesson, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(id)
	if i < 0 {
		return domain.Lesson{}, domain.ErrLessonNotFound
	}
	c.selectedID = id
	return c.lessons[i], nil
}

// Selected returns the currently selected lesson, if any.
func (c *Classroom) Selected() (domain.Lesson, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexLocked(c.selectedID); i >= 0 {
		return c.lessons[i], true
	}
	return domain.Lesson{}, false
}

// ClearSelection resets the detail pane to its placeholder state.
func (c *Classroom) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedID = ""
}

// AddAssignment appends a free-text task to the selected lesson.
func (c *Classroom) AddAssignment(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.NewValidationError("assignment", "text must not be blank")
	}

	c.mu.Lock()
	i := c.indexLocked(c.selectedID)
	if i < 0 {
		c.mu.Unlock()
		return domain.ErrNoLessonSelected
	}
	c.lessons[i].Assignments = append(c.lessons[i].Assignments, text)
	c.mu.Unlock()

	return c.flushLessons(ctx)
}

// CreateLesson validates the draft, assigns a fresh id, prepends the lesson
// to the collection, and selects it.
func (c *Classroom) CreateLesson(ctx context.Context, draft domain.LessonDraft) (domain.Lesson, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return domain.Lesson{}, domain.NewValidationError("title", "must not be blank")
	}

	lesson := domain.Lesson{
		ID:          c.newID(),
		Title:       title,
		Desc:        strings.TrimSpace(draft.Desc),
		Video:       strings.TrimSpace(draft.Video),
		Assignments: []string{},
		Quiz:        draft.Quiz,
	}
	if lesson.Quiz == nil {
		lesson.Quiz = []domain.Question{}
	}

	c.mu.Lock()
	c.lessons = append([]domain.Lesson{lesson}, c.lessons...)
	c.selectedID = lesson.ID
	c.mu.Unlock()

	if err := c.flushLessons(ctx); err != nil {
		return domain.Lesson{}, err
	}
	return lesson, nil
}

// UpdateLesson overwrites title/desc/video/quiz of an existing lesson in
// place. Assignments and the current selection are untouched.
func (c *Classroom) UpdateLesson(ctx context.Context, id string, draft domain.LessonDraft) (domain.Lesson, error) {
	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return domain.Lesson{}, domain.NewValidationError("title", "must not be blank")
	}

	c.mu.Lock()
	i := c.indexLocked(id)
	if i < 0 {
		c.mu.Unlock()
		return domain.Lesson{}, domain.ErrLessonNotFound
	}
	c.lessons[i].Title = title
	c.lessons[i].Desc = strings.TrimSpace(draft.Desc)
	c.lessons[i].Video = strings.TrimSpace(draft.Video)
	c.lessons[i].Quiz = draft.Quiz
	if c.lessons[i].Quiz == nil {
		c.lessons[i].Quiz = []domain.Question{}
	}
	updated := c.lessons[i]
	c.mu.Unlock()

	if err := c.flushLessons(ctx); err != nil {
		return domain.Lesson{}, err
	}
	return updated, nil
}

// DeleteLesson removes a lesson and everything it contains. If it was
// selected the selection is cleared. Confirmation is the caller's concern.
func (c *Classroom) DeleteLesson(ctx context.Context, id string) error {
	c.mu.Lock()
	i := c.indexLocked(id)
	if i < 0 {
		c.mu.Unlock()
		return domain.ErrLessonNotFound
	}
	c.lessons = append(c.lessons[:i], c.lessons[i+1:]...)
	if c.selectedID == id {
		c.selectedID = ""
	}
	c.mu.Unlock()

	return c.flushLessons(ctx)
}

func (c *Classroom) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i := range c.lessons {
		if c.lessons[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Classroom) flushLessons(ctx context.Context) error {
	c.mu.RLock()
	lessons := make([]domain.Lesson, len(c.lessons))
	copy(lessons, c.lessons)
	c.mu.RUnlock()
	if err := c.store.SaveLessons(ctx, lessons); err != nil {
		return fmt.Errorf("flush lessons: %w", err)
	}
	return nil
}
