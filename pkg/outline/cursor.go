package outline

import (
	"errors"

	"ai-courselab-be/pkg/store"

	"github.com/google/uuid"
)

var (
	// ErrModuleNotFound means the requested page id matched no module.
	ErrModuleNotFound = errors.New("module not found")
	// ErrCourseEmpty means the course has no modules to page through.
	ErrCourseEmpty = errors.New("course has no modules")
)

// ResolveCursor computes the prev/current/next view for the module with the
// given id. Neighbours are located by order value, not list position.
func ResolveCursor(draft *store.DraftState, currentID uuid.UUID) (*store.PageCursor, error) {
	var current *store.DraftModule
	for i := range draft.Modules {
		if draft.Modules[i].Uuid == currentID {
			current = &draft.Modules[i]
			break
		}
	}
	if current == nil {
		return nil, ErrModuleNotFound
	}

	cursor := &store.PageCursor{
		CurrentPage:  current.Uuid,
		Course:       draft.Uuid,
		Total:        len(draft.Modules),
		CurrentOrder: current.Order + 1,
		Content:      current.Content,
	}

	for i := range draft.Modules {
		switch draft.Modules[i].Order {
		case current.Order - 1:
			cursor.PrevPage = draft.Modules[i].Uuid.String()
		case current.Order + 1:
			cursor.NextPage = draft.Modules[i].Uuid.String()
		}
	}

	return cursor, nil
}

// ResolveFirst resolves the cursor for a course id alone, defined as the
// module with order 0.
func ResolveFirst(draft *store.DraftState) (*store.PageCursor, error) {
	if len(draft.Modules) == 0 {
		return nil, ErrCourseEmpty
	}
	for i := range draft.Modules {
		if draft.Modules[i].Order == 0 {
			return ResolveCursor(draft, draft.Modules[i].Uuid)
		}
	}
	return nil, ErrModuleNotFound
}
