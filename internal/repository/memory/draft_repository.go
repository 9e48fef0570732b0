package memory

import (
	"context"
	"time"

	"ai-courselab-be/internal/repository/contract"
	"ai-courselab-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

const cursorKeyPrefix = "cursor:"

// DraftRepository keeps room drafts in process memory. Suitable for a single
// instance; multi-instance deployments use the redis implementation instead.
type DraftRepository struct {
	cache *cache.Cache
}

func NewDraftRepository(ttl, purgeInterval time.Duration) contract.DraftRepository {
	return &DraftRepository{
		cache: cache.New(ttl, purgeInterval),
	}
}

func (r *DraftRepository) Get(_ context.Context, roomId string) (*store.DraftState, bool, error) {
	if x, found := r.cache.Get(roomId); found {
		return x.(*store.DraftState), true, nil
	}
	return nil, false, nil
}

func (r *DraftRepository) Set(_ context.Context, roomId string, draft *store.DraftState) error {
	r.cache.Set(roomId, draft, cache.DefaultExpiration)
	return nil
}

func (r *DraftRepository) Clear(_ context.Context, roomId string) error {
	r.cache.Delete(roomId)
	r.cache.Delete(cursorKeyPrefix + roomId)
	return nil
}

func (r *DraftRepository) GetCursor(_ context.Context, roomId string) (*store.PageCursor, bool, error) {
	if x, found := r.cache.Get(cursorKeyPrefix + roomId); found {
		return x.(*store.PageCursor), true, nil
	}
	return nil, false, nil
}

func (r *DraftRepository) SetCursor(_ context.Context, roomId string, cursor *store.PageCursor) error {
	r.cache.Set(cursorKeyPrefix+roomId, cursor, cache.DefaultExpiration)
	return nil
}
