package app

import (
	"strings"

	"pocket-classroom/internal/domain"
)

// QuestionRow is one editable question in an editor session: a prompt, four
// fixed choice slots, and the index of the correct choice.
type QuestionRow struct {
	ID      int      `json:"id"`
	Q       string   `json:"q"`
	Choices []string `json:"choices"`
	Answer  int      `json:"answer"`
}

// EditorSession is a stateful form bound to either "create" (no backing
// lesson) or "edit" (backing lesson id fixed at session start). Rows are
// added and removed freely until Submit collects them into a draft; after
// that the session is closed.
type EditorSession struct {
	lessonID string
	nextRow  int
	rows     []QuestionRow
	closed   bool
}

// NewEditorSession opens a create-mode session with a single blank row, the
// way the form opens with one empty question.
func NewEditorSession() *EditorSession {
	s := &EditorSession{}
	s.AddRow()
	return s
}

// EditSession opens an edit-mode session prefilled from the lesson's quiz.
func EditSession(lesson domain.Lesson) *EditorSession {
	s := &EditorSession{lessonID: lesson.ID}
	for _, q := range lesson.Quiz {
		s.AddRowFrom(q)
	}
	return s
}

// LessonID returns the backing lesson id, or "" in create mode.
func (s *EditorSession) LessonID() string {
	return s.lessonID
}

// AddRow appends a blank row: four empty choices, first choice marked correct.
func (s *EditorSession) AddRow() QuestionRow {
	return s.AddRowFrom(domain.Question{Choices: make([]string, domain.ChoiceCount)})
}

// AddRowFrom appends a row prefilled from an existing question.
func (s *EditorSession) AddRowFrom(q domain.Question) QuestionRow {
	row := QuestionRow{
		ID:      s.nextRow,
		Q:       q.Q,
		Choices: padChoices(q.Choices),
		Answer:  clampAnswer(q.Answer),
	}
	s.nextRow++
	s.rows = append(s.rows, row)
	return row
}

// RemoveRow deletes one row. No confirmation: the removal only matters for
// the lifetime of the session.
func (s *EditorSession) RemoveRow(id int) bool {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return true
		}
	}
	return false
}

// SetRow replaces the contents of an existing row, keeping its position.
func (s *EditorSession) SetRow(id int, q string, choices []string, answer int) bool {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Q = q
			s.rows[i].Choices = padChoices(choices)
			s.rows[i].Answer = clampAnswer(answer)
			return true
		}
	}
	return false
}

// Rows returns the current rows in order.
func (s *EditorSession) Rows() []QuestionRow {
	out := make([]QuestionRow, len(s.rows))
	copy(out, s.rows)
	return out
}

// Submit validates the title, collects the rows into a quiz, and closes the
// session. Rows with a blank prompt or four blank choices are dropped rather
// than blocking the save; dropped reports how many so the caller can warn.
func (s *EditorSession) Submit(title, desc, video string) (draft domain.LessonDraft, dropped int, err error) {
	if s.closed {
		return domain.LessonDraft{}, 0, domain.ErrSessionClosed
	}
	if strings.TrimSpace(title) == "" {
		return domain.LessonDraft{}, 0, domain.NewValidationError("title", "must not be blank")
	}

	quiz, dropped := BuildQuiz(s.rows)
	s.closed = true
	return domain.LessonDraft{
		Title: strings.TrimSpace(title),
		Desc:  strings.TrimSpace(desc),
		Video: strings.TrimSpace(video),
		Quiz:  quiz,
	}, dropped, nil
}

// BuildQuiz normalizes editor rows into stored questions. Text is trimmed,
// choices are padded or cut to exactly four slots, the answer index is
// clamped into range, and rows that are effectively empty are dropped.
func BuildQuiz(rows []QuestionRow) (quiz []domain.Question, dropped int) {
	quiz = make([]domain.Question, 0, len(rows))
	for _, row := range rows {
		q := domain.Question{
			Q:       strings.TrimSpace(row.Q),
			Choices: padChoices(row.Choices),
			Answer:  clampAnswer(row.Answer),
		}
		for i, c := range q.Choices {
			q.Choices[i] = strings.TrimSpace(c)
		}
		if q.Q == "" || allBlank(q.Choices) {
			dropped++
			continue
		}
		quiz = append(quiz, q)
	}
	return quiz, dropped
}

func padChoices(choices []string) []string {
	out := make([]string, domain.ChoiceCount)
	copy(out, choices)
	return out
}

func clampAnswer(answer int) int {
	if answer < 0 || answer >= domain.ChoiceCount {
		return 0
	}
	return answer
}

func allBlank(choices []string) bool {
	for _, c := range choices {
		if c != "" {
			return false
		}
	}
	return true
}
