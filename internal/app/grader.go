package app

import (
	"fmt"
	"math"

	"pocket-classroom/internal/domain"
)

// RunState tracks a quiz run through its lifecycle.
type RunState int

const (
	RunNotStarted RunState = iota
	RunRendered
	RunGraded
)

// QuizRun is one read-only pass over a lesson's quiz: choices are selected
// per question, then the whole run is graded at once. Starting a run for a
// different lesson means constructing a new QuizRun; prior selections are
// not carried anywhere.
type QuizRun struct {
	lessonID   string
	title      string
	questions  []domain.Question
	selections []int // index per question, -1 = unanswered
	state      RunState
}

// StartQuiz opens a run for the lesson. Lessons without a quiz cannot be run.
func StartQuiz(lesson domain.Lesson) (*QuizRun, error) {
	if !lesson.HasQuiz() {
		return nil, domain.ErrNoQuiz
	}
	selections := make([]int, len(lesson.Quiz))
	for i := range selections {
		selections[i] = -1
	}
	return &QuizRun{
		lessonID:   lesson.ID,
		title:      lesson.Title,
		questions:  lesson.Quiz,
		selections: selections,
		state:      RunRendered,
	}, nil
}

// LessonID returns the lesson the run was started for.
func (r *QuizRun) LessonID() string { return r.lessonID }

// Title returns the lesson title for the quiz heading.
func (r *QuizRun) Title() string { return r.title }

// State returns the current lifecycle state.
func (r *QuizRun) State() RunState { return r.state }

// RunnerQuestion is a question as presented to the quiz taker: the correct
// answer is withheld.
type RunnerQuestion struct {
	Q       string   `json:"q"`
	Choices []string `json:"choices"`
}

// Questions returns the rendered question list without answers.
func (r *QuizRun) Questions() []RunnerQuestion {
	out := make([]RunnerQuestion, len(r.questions))
	for i, q := range r.questions {
		out[i] = RunnerQuestion{Q: q.Q, Choices: q.Choices}
	}
	return out
}

// SelectChoice records the single selection for one question. Selecting again
// replaces the previous choice.
func (r *QuizRun) SelectChoice(question, choice int) error {
	if question < 0 || question >= len(r.questions) {
		return fmt.Errorf("question %d out of range", question)
	}
	if choice < 0 || choice >= domain.ChoiceCount {
		return fmt.Errorf("choice %d out of range", choice)
	}
	r.selections[question] = choice
	return nil
}

// Grade tallies the run. Unanswered questions count as wrong; grading never
// fails and never blocks submission.
func (r *QuizRun) Grade() domain.QuizResult {
	r.state = RunGraded
	return GradeSelections(r.questions, r.selections)
}

// GradeSelections scores selections against a quiz. Selections beyond the
// quiz length are ignored; missing or -1 entries count as wrong.
func GradeSelections(quiz []domain.Question, selections []int) domain.QuizResult {
	score := 0
	for i, q := range quiz {
		if i < len(selections) && selections[i] == q.Answer {
			score++
		}
	}
	total := len(quiz)
	percent := 0
	if total > 0 {
		percent = int(math.Round(100 * float64(score) / float64(total)))
	}
	return domain.QuizResult{Score: score, Total: total, Percent: percent}
}
