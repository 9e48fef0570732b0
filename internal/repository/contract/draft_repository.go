package contract

import (
	"context"

	"ai-courselab-be/pkg/store"
)

// DraftRepository is the shared cache holding the uncommitted state of a
// room. Entries expire on their own (TTL) or on an explicit Clear; both are
// equivalent to losing the uncommitted edits.
//
// Reads distinguish absence from backend failure: (nil, false, nil) means the
// entry is gone and the caller may reseed, while a non-nil error means the
// cache could not be consulted and the caller must not overwrite anything.
type DraftRepository interface {
	Get(ctx context.Context, roomId string) (*store.DraftState, bool, error)
	Set(ctx context.Context, roomId string, draft *store.DraftState) error
	Clear(ctx context.Context, roomId string) error

	// Cursors are cached alongside drafts for document rooms so paging does
	// not recompute per message.
	GetCursor(ctx context.Context, roomId string) (*store.PageCursor, bool, error)
	SetCursor(ctx context.Context, roomId string, cursor *store.PageCursor) error
}
