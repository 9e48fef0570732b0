package redisrepo

import (
	"context"
	"encoding/json"
	"time"

	"ai-courselab-be/internal/pkg/logger"
	"ai-courselab-be/internal/repository/contract"
	"ai-courselab-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const (
	draftKeyPrefix  = "draft:"
	cursorKeyPrefix = "draft:cursor:"
)

// DraftRepository keeps room drafts in Redis so every instance behind a load
// balancer sees the same uncommitted state. Entries carry the configured TTL;
// every Set refreshes it.
type DraftRepository struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.ILogger
}

func NewDraftRepository(rdb *redis.Client, ttl time.Duration, log logger.ILogger) contract.DraftRepository {
	return &DraftRepository{
		rdb:    rdb,
		ttl:    ttl,
		logger: log,
	}
}

func (r *DraftRepository) Get(ctx context.Context, roomId string) (*store.DraftState, bool, error) {
	data, err := r.rdb.Get(ctx, draftKeyPrefix+roomId).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		// A read failure is not absence. Reporting it as a miss would let the
		// caller reseed over uncommitted edits that are still in Redis.
		r.logger.Error("DraftCache", "Redis read failed", map[string]interface{}{"room": roomId, "error": err.Error()})
		return nil, false, err
	}

	var draft store.DraftState
	if err := json.Unmarshal(data, &draft); err != nil {
		r.logger.Error("DraftCache", "Corrupt draft entry, dropping", map[string]interface{}{"room": roomId, "error": err.Error()})
		r.rdb.Del(ctx, draftKeyPrefix+roomId)
		return nil, false, nil
	}
	return &draft, true, nil
}

func (r *DraftRepository) Set(ctx context.Context, roomId string, draft *store.DraftState) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, draftKeyPrefix+roomId, data, r.ttl).Err()
}

func (r *DraftRepository) Clear(ctx context.Context, roomId string) error {
	return r.rdb.Del(ctx, draftKeyPrefix+roomId, cursorKeyPrefix+roomId).Err()
}

func (r *DraftRepository) GetCursor(ctx context.Context, roomId string) (*store.PageCursor, bool, error) {
	data, err := r.rdb.Get(ctx, cursorKeyPrefix+roomId).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		r.logger.Error("DraftCache", "Redis cursor read failed", map[string]interface{}{"room": roomId, "error": err.Error()})
		return nil, false, err
	}

	var cursor store.PageCursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		r.rdb.Del(ctx, cursorKeyPrefix+roomId)
		return nil, false, nil
	}
	return &cursor, true, nil
}

func (r *DraftRepository) SetCursor(ctx context.Context, roomId string, cursor *store.PageCursor) error {
	data, err := json.Marshal(cursor)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, cursorKeyPrefix+roomId, data, r.ttl).Err()
}
