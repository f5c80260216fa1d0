package app_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"pocket-classroom/internal/app"
	"pocket-classroom/internal/domain"
	"pocket-classroom/internal/store/memory"
)

func TestCreateLessonRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	classroom := newTestClassroom(t, st)

	draft := domain.LessonDraft{
		Title: "CSS Selectors",
		Desc:  "Matching elements by tag, class, and id.",
		Video: "https://example.com/embed/css",
		Quiz: []domain.Question{
			{Q: "Which selector matches a class?", Choices: []string{".x", "#x", "x", "*"}, Answer: 0},
		},
	}
	created, err := classroom.CreateLesson(ctx, draft)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected a fresh id")
	}

	// Reload from the store: the persisted copy must match what was created.
	reloaded := newTestClassroom(t, st)
	got, ok := reloaded.Get(created.ID)
	if !ok {
		t.Fatalf("lesson missing after reload")
	}
	if got.Title != draft.Title || got.Desc != draft.Desc || got.Video != draft.Video {
		t.Fatalf("fields changed across reload: %+v", got)
	}
	if !reflect.DeepEqual(got.Quiz, draft.Quiz) {
		t.Fatalf("quiz changed across reload: %+v", got.Quiz)
	}
}

func TestCreateLessonPrependsAndSelects(t *testing.T) {
	ctx := context.Background()
	classroom := newTestClassroom(t, memory.New())

	first, _ := classroom.CreateLesson(ctx, domain.LessonDraft{Title: "First"})
	second, _ := classroom.CreateLesson(ctx, domain.LessonDraft{Title: "Second"})

	lessons := classroom.Lessons()
	if len(lessons) != 2 || lessons[0].ID != second.ID || lessons[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", lessons)
	}
	selected, ok := classroom.Selected()
	if !ok || selected.ID != second.ID {
		t.Fatalf("expected new lesson selected, got %+v", selected)
	}
}

func TestCreateLessonRejectsBlankTitle(t *testing.T) {
	classroom := newTestClassroom(t, memory.New())
	_, err := classroom.CreateLesson(context.Background(), domain.LessonDraft{Title: "   "})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateLessonOverwritesInPlace(t *testing.T) {
	ctx := context.Background()
	classroom := newTestClassroom(t, memory.New())

	created, _ := classroom.CreateLesson(ctx, domain.LessonDraft{Title: "Old"})
	if err := classroom.AddAssignment(ctx, "keep me"); err != nil {
		t.Fatalf("add assignment: %v", err)
	}

	updated, err := classroom.UpdateLesson(ctx, created.ID, domain.LessonDraft{
		Title: "New",
		Quiz:  []domain.Question{{Q: "?", Choices: []string{"a", "", "", ""}, Answer: 0}},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "New" || len(updated.Quiz) != 1 {
		t.Fatalf("update did not apply: %+v", updated)
	}
	if len(updated.Assignments) != 1 || updated.Assignments[0] != "keep me" {
		t.Fatalf("assignments must survive update, got %+v", updated.Assignments)
	}
	if selected, ok := classroom.Selected(); !ok || selected.ID != created.ID {
		t.Fatalf("selection must not change on update")
	}
}

func TestUpdateMissingLesson(t *testing.T) {
	classroom := newTestClassroom(t, memory.New())
	_, err := classroom.UpdateLesson(context.Background(), "nope", domain.LessonDraft{Title: "x"})
	if !errors.Is(err, domain.ErrLessonNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteLessonCascadesAndClearsSelection(t *testing.T) {
	ctx := context.Background()
	classroom := newTestClassroom(t, memory.New())

	doomed, _ := classroom.CreateLesson(ctx, domain.LessonDraft{
		Title: "Doomed",
		Quiz:  []domain.Question{{Q: "?", Choices: []string{"a", "", "", ""}, Answer: 0}},
	})
	survivor, _ := classroom.CreateLesson(ctx, domain.LessonDraft{Title: "Survivor"})

	if _, err := classroom.Select(doomed.ID); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := classroom.AddAssignment(ctx, "goes with the lesson"); err != nil {
		t.Fatalf("add assignment: %v", err)
	}

	if err := classroom.DeleteLesson(ctx, doomed.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	lessons := classroom.Lessons()
	if len(lessons) != 1 || lessons[0].ID != survivor.ID {
		t.Fatalf("expected only survivor, got %+v", lessons)
	}
	if _, ok := classroom.Selected(); ok {
		t.Fatalf("selection must be cleared when the selected lesson is deleted")
	}
	if _, ok := classroom.Get(doomed.ID); ok {
		t.Fatalf("deleted lesson still reachable")
	}
}

func TestDeleteKeepsOtherSelection(t *testing.T) {
	ctx := context.Background()
	classroom := newTestClassroom(t, memory.New())

	doomed, _ := classroom.CreateLesson(ctx, domain.LessonDraft{Title: "Doomed"})
	kept, _ := classroom.CreateLesson(ctx, domain.LessonDraft{Title: "Kept"})

	if _, err := classroom.Select(kept.ID); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := classroom.DeleteLesson(ctx, doomed.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if selected, ok := classroom.Selected(); !ok || selected.ID != kept.ID {
		t.Fatalf("selection of another lesson must survive a delete")
	}
}

func TestAddAssignmentValidation(t *testing.T) {
	ctx := context.Background()
	classroom := newTestClassroom(t, memory.New())

	if err := classroom.AddAssignment(ctx, "  "); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for blank text, got %v", err)
	}

	classroom.ClearSelection()
	if err := classroom.AddAssignment(ctx, "task"); !errors.Is(err, domain.ErrNoLessonSelected) {
		t.Fatalf("expected no-selection error, got %v", err)
	}
}

func TestLessonViewsSelectedByID(t *testing.T) {
	ctx := context.Background()
	classroom := newTestClassroom(t, memory.New())

	// Two lessons with the same title; only the selected id may be marked.
	a, _ := classroom.CreateLesson(ctx, domain.LessonDraft{Title: "Twin"})
	b, _ := classroom.CreateLesson(ctx, domain.LessonDraft{Title: "Twin"})

	if _, err := classroom.Select(a.ID); err != nil {
		t.Fatalf("select: %v", err)
	}
	for _, view := range classroom.LessonViews() {
		if view.ID == a.ID && !view.Selected {
			t.Fatalf("selected lesson not marked: %+v", view)
		}
		if view.ID == b.ID && view.Selected {
			t.Fatalf("same-title sibling wrongly marked selected: %+v", view)
		}
	}
}

func newTestClassroom(t *testing.T, st *memory.Store) *app.Classroom {
	t.Helper()
	classroom, err := app.Load(context.Background(), st, app.Options{})
	if err != nil {
		t.Fatalf("load classroom: %v", err)
	}
	return classroom
}
