package domain

import "time"

// ChoiceCount is the fixed number of choice slots per question.
const ChoiceCount = 4

// Question models an MCQ question with four choice slots and one correct index.
type Question struct {
	Q       string   `json:"q"`
	Choices []string `json:"choices"` // always length 4; slots may be blank
	Answer  int      `json:"answer"`  // index into Choices, 0-3
}

// Lesson is a titled unit of classroom content.
type Lesson struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Desc        string     `json:"desc,omitempty"`
	Video       string     `json:"video,omitempty"`
	Assignments []string   `json:"assignments"`
	Quiz        []Question `json:"quiz"`
}

// HasQuiz reports whether the lesson has at least one question.
func (l Lesson) HasQuiz() bool {
	return len(l.Quiz) > 0
}

// LessonDraft carries the editable fields of a lesson through the editor.
// Assignments are not part of a draft; they are appended separately.
type LessonDraft struct {
	Title string     `json:"title"`
	Desc  string     `json:"desc"`
	Video string     `json:"video"`
	Quiz  []Question `json:"quiz"`
}

// ChatMessage is one entry in the shared chat log. Time is milliseconds
// since epoch, matching the persisted wire format.
type ChatMessage struct {
	From string `json:"from"`
	Text string `json:"text"`
	Time int64  `json:"time"`
}

// Stamp converts a wall-clock instant to the chat timestamp format.
func Stamp(t time.Time) int64 {
	return t.UnixMilli()
}

// Snapshot is the export/import interchange object. A nil slice on import
// means the field was absent and the corresponding state is left untouched.
type Snapshot struct {
	Lessons []Lesson      `json:"lessons"`
	Chat    []ChatMessage `json:"chat"`
}

// QuizResult summarizes a graded quiz run.
type QuizResult struct {
	Score   int `json:"score"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}
