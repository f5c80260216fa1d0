package file

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"pocket-classroom/internal/domain"
)

func TestLessonsRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	if _, found, err := st.LoadLessons(ctx); err != nil || found {
		t.Fatalf("missing file must report absent, found=%v err=%v", found, err)
	}

	lessons := []domain.Lesson{{
		ID:          "l1",
		Title:       "Persisted",
		Assignments: []string{"task"},
		Quiz:        []domain.Question{{Q: "?", Choices: []string{"a", "b", "c", "d"}, Answer: 3}},
	}}
	if err := st.SaveLessons(ctx, lessons); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, found, err := st.LoadLessons(ctx)
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if !reflect.DeepEqual(got, lessons) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestCorruptLessonsReportedAsAbsent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	st, err := New(dir)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "lessons.json"), []byte("{broken"), 0o644); err != nil {
		t.Fatalf("write corrupt: %v", err)
	}

	lessons, found, err := st.LoadLessons(ctx)
	if found {
		t.Fatalf("corrupt record must not count as found")
	}
	if err == nil {
		t.Fatalf("corrupt record must surface a warning error")
	}
	if lessons != nil {
		t.Fatalf("no partial decode expected, got %+v", lessons)
	}
}

func TestChatAbsentIsEmptyLog(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	chat, err := st.LoadChat(ctx)
	if err != nil || len(chat) != 0 {
		t.Fatalf("expected empty log, got %+v err=%v", chat, err)
	}

	msgs := []domain.ChatMessage{{From: "You", Text: "hello", Time: 1756290000000}}
	if err := st.SaveChat(ctx, msgs); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := st.LoadChat(ctx)
	if err != nil || !reflect.DeepEqual(got, msgs) {
		t.Fatalf("round trip mismatch: %+v err=%v", got, err)
	}
}

func TestSaveOverwritesWholesale(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	if err := st.SaveLessons(ctx, []domain.Lesson{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := st.SaveLessons(ctx, []domain.Lesson{{ID: "b", Title: "B"}}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	lessons, _, _ := st.LoadLessons(ctx)
	if len(lessons) != 1 || lessons[0].ID != "b" {
		t.Fatalf("save must fully overwrite, got %+v", lessons)
	}
}

func newStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return st
}
