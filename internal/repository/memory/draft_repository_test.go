package memory

import (
	"context"
	"testing"
	"time"

	"ai-courselab-be/pkg/store"

	"github.com/google/uuid"
)

func TestDraftRepositoryRoundTrip(t *testing.T) {
	repo := NewDraftRepository(time.Minute, time.Minute)
	ctx := context.Background()

	if _, found, err := repo.Get(ctx, "room-1"); found || err != nil {
		t.Fatalf("expected clean miss on empty cache, found=%v err=%v", found, err)
	}

	draft := &store.DraftState{Uuid: uuid.New(), Title: "Course"}
	if err := repo.Set(ctx, "room-1", draft); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, found, err := repo.Get(ctx, "room-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("expected hit after Set")
	}
	if got.Uuid != draft.Uuid || got.Title != "Course" {
		t.Errorf("Get() = %+v", got)
	}
}

func TestDraftRepositoryClearDropsDraftAndCursor(t *testing.T) {
	repo := NewDraftRepository(time.Minute, time.Minute)
	ctx := context.Background()

	repo.Set(ctx, "room-1", &store.DraftState{Uuid: uuid.New()})
	repo.SetCursor(ctx, "room-1", &store.PageCursor{Total: 3})

	if err := repo.Clear(ctx, "room-1"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, found, _ := repo.Get(ctx, "room-1"); found {
		t.Error("draft survived Clear")
	}
	if _, found, _ := repo.GetCursor(ctx, "room-1"); found {
		t.Error("cursor survived Clear")
	}
}

func TestDraftRepositoryTTLExpiry(t *testing.T) {
	repo := NewDraftRepository(10*time.Millisecond, time.Minute)
	ctx := context.Background()

	repo.Set(ctx, "room-1", &store.DraftState{Uuid: uuid.New()})
	time.Sleep(30 * time.Millisecond)

	if _, found, _ := repo.Get(ctx, "room-1"); found {
		t.Error("entry survived its TTL")
	}
}
