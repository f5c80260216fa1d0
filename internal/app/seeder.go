package app

import (
	"context"
	"fmt"

	"pocket-classroom/internal/domain"
	"pocket-classroom/internal/store"
)

// EnsureSeeded writes the built-in sample lessons when the lessons record was
// never initialized. An existing record, even an empty collection the user
// deleted down to, is never overwritten. Returns whether seeding happened.
func EnsureSeeded(ctx context.Context, st store.Store) (bool, error) {
	_, found, err := st.LoadLessons(ctx)
	if err != nil {
		// A corrupt record is treated as absent per the recovery policy, but
		// seeding over it would destroy whatever the user had; leave it be.
		return false, fmt.Errorf("check lessons record: %w", err)
	}
	if found {
		return false, nil
	}
	if err := st.SaveLessons(ctx, SampleLessons()); err != nil {
		return false, fmt.Errorf("seed lessons: %w", err)
	}
	return true, nil
}

// SampleLessons returns the fixed starter content: two lessons, each with a
// description, an embedded video, and a short quiz.
func SampleLessons() []domain.Lesson {
	return []domain.Lesson{
		{
			ID:          domain.NewID(),
			Title:       "Project Introduction",
			Desc:        "Overview of Pocket Classroom demo and features.",
			Video:       "https://www.youtube.com/embed/2oIejLyD_Ro",
			Assignments: []string{"Read project brief", "Watch demo video"},
			Quiz: []domain.Question{
				{
					Q:       "What is Pocket Classroom?",
					Choices: []string{"A library", "A local-first classroom web app", "A game", "An API"},
					Answer:  1,
				},
				{
					Q:       "Where data is stored in this demo?",
					Choices: []string{"Server", "LocalStorage", "Cloud only", "None"},
					Answer:  1,
				},
			},
		},
		{
			ID:          domain.NewID(),
			Title:       "HTML Basics",
			Desc:        "Intro to HTML elements and structure.",
			Video:       "https://www.youtube.com/embed/dQw4w9WgXcQ",
			Assignments: []string{"Create a small HTML page"},
			Quiz: []domain.Question{
				{
					Q:       "HTML stands for?",
					Choices: []string{"HyperText Markup Language", "HighText Machine Language", "Hyperlinking Text", "None"},
					Answer:  0,
				},
			},
		},
	}
}
