package redis

import (
	"context"
	"reflect"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"pocket-classroom/internal/domain"
	"pocket-classroom/internal/store"
)

func TestLessonsRoundTripThroughRedis(t *testing.T) {
	ctx := context.Background()
	mr, st := newStore(t)

	if _, found, err := st.LoadLessons(ctx); err != nil || found {
		t.Fatalf("missing key must report absent, found=%v err=%v", found, err)
	}

	lessons := []domain.Lesson{{
		ID:          "l1",
		Title:       "Cached",
		Assignments: []string{},
		Quiz:        []domain.Question{{Q: "?", Choices: []string{"a", "b", "", ""}, Answer: 1}},
	}}
	if err := st.SaveLessons(ctx, lessons); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists(store.LessonsKey) {
		t.Fatalf("expected %s key in redis", store.LessonsKey)
	}

	got, found, err := st.LoadLessons(ctx)
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if !reflect.DeepEqual(got, lessons) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestCorruptLessonsValue(t *testing.T) {
	ctx := context.Background()
	mr, st := newStore(t)

	mr.Set(store.LessonsKey, "{broken")
	_, found, err := st.LoadLessons(ctx)
	if found || err == nil {
		t.Fatalf("corrupt value must report absent with an error, found=%v err=%v", found, err)
	}
}

func TestChatRoundTripThroughRedis(t *testing.T) {
	ctx := context.Background()
	_, st := newStore(t)

	chat, err := st.LoadChat(ctx)
	if err != nil || len(chat) != 0 {
		t.Fatalf("missing key must be an empty log, got %+v err=%v", chat, err)
	}

	msgs := []domain.ChatMessage{{From: "You", Text: "ping", Time: 42}}
	if err := st.SaveChat(ctx, msgs); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := st.LoadChat(ctx)
	if err != nil || !reflect.DeepEqual(got, msgs) {
		t.Fatalf("round trip mismatch: %+v err=%v", got, err)
	}
}

func newStore(t *testing.T) (*miniredis.Miniredis, *Store) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, New(client, 0)
}
