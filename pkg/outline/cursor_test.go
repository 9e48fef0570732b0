package outline

import (
	"errors"
	"testing"

	"ai-courselab-be/pkg/store"

	"github.com/google/uuid"
)

func pagedDraft(n int) (*store.DraftState, []uuid.UUID) {
	ids := make([]uuid.UUID, n)
	modules := make([]store.DraftModule, n)
	for i := 0; i < n; i++ {
		ids[i] = uuid.New()
		modules[i] = store.DraftModule{
			Uuid:    ids[i],
			Name:    "Module",
			Order:   i,
			Content: "content",
		}
	}
	return &store.DraftState{Uuid: uuid.New(), Title: "Course", Modules: modules}, ids
}

func TestResolveCursor(t *testing.T) {
	draft, ids := pagedDraft(3)

	tests := []struct {
		name         string
		current      uuid.UUID
		wantPrev     string
		wantNext     string
		wantPosition int
	}{
		{
			name:         "first page has no prev",
			current:      ids[0],
			wantPrev:     "",
			wantNext:     ids[1].String(),
			wantPosition: 1,
		},
		{
			name:         "middle page has both neighbours",
			current:      ids[1],
			wantPrev:     ids[0].String(),
			wantNext:     ids[2].String(),
			wantPosition: 2,
		},
		{
			name:         "last page has no next",
			current:      ids[2],
			wantPrev:     ids[1].String(),
			wantNext:     "",
			wantPosition: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cursor, err := ResolveCursor(draft, tt.current)
			if err != nil {
				t.Fatalf("ResolveCursor() error = %v", err)
			}
			if cursor.PrevPage != tt.wantPrev {
				t.Errorf("PrevPage = %q, want %q", cursor.PrevPage, tt.wantPrev)
			}
			if cursor.NextPage != tt.wantNext {
				t.Errorf("NextPage = %q, want %q", cursor.NextPage, tt.wantNext)
			}
			if cursor.CurrentOrder != tt.wantPosition {
				t.Errorf("CurrentOrder = %d, want %d", cursor.CurrentOrder, tt.wantPosition)
			}
			if cursor.Total != 3 {
				t.Errorf("Total = %d, want 3", cursor.Total)
			}
			if cursor.Course != draft.Uuid {
				t.Errorf("Course = %v, want %v", cursor.Course, draft.Uuid)
			}
			if cursor.Content != "content" {
				t.Errorf("Content = %q", cursor.Content)
			}
		})
	}
}

func TestResolveCursorUnknownId(t *testing.T) {
	draft, _ := pagedDraft(2)

	_, err := ResolveCursor(draft, uuid.New())
	if !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("error = %v, want ErrModuleNotFound", err)
	}
}

func TestResolveFirst(t *testing.T) {
	draft, ids := pagedDraft(3)

	cursor, err := ResolveFirst(draft)
	if err != nil {
		t.Fatalf("ResolveFirst() error = %v", err)
	}
	if cursor.CurrentPage != ids[0] {
		t.Errorf("CurrentPage = %v, want order-0 module %v", cursor.CurrentPage, ids[0])
	}
	if cursor.PrevPage != "" {
		t.Errorf("PrevPage = %q, want empty", cursor.PrevPage)
	}
}

func TestResolveFirstEmptyCourse(t *testing.T) {
	draft := &store.DraftState{Uuid: uuid.New()}

	_, err := ResolveFirst(draft)
	if !errors.Is(err, ErrCourseEmpty) {
		t.Errorf("error = %v, want ErrCourseEmpty", err)
	}
}
