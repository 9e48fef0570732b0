package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ai-courselab-be/internal/dto"
	"ai-courselab-be/internal/pkg/logger"
	"ai-courselab-be/internal/repository/contract"
	ws "ai-courselab-be/internal/websocket"
	"ai-courselab-be/pkg/outline"
	"ai-courselab-be/pkg/scribo"
	"ai-courselab-be/pkg/store"

	"github.com/google/uuid"
)

// Broadcaster fans a payload out to every member of a room. Satisfied by the
// websocket hub.
type Broadcaster interface {
	Broadcast(roomID string, payload interface{})
}

// RoomService drives the session protocol for outline and document rooms. It
// implements websocket.MessageHandler: the transport hands it raw frames and
// it decides what mutates the draft cache, what gets broadcast, and what goes
// back to the sender alone.
type RoomService struct {
	draftRepo     contract.DraftRepository
	courseService ICourseService
	pageService   IPageService
	generator     scribo.OutlineGenerator
	broadcaster   Broadcaster
	logger        logger.ILogger
	scriboTimeout time.Duration
	storeTimeout  time.Duration

	// One mutex per live room id. Every get -> mutate -> set sequence runs
	// under the room's mutex so concurrent members cannot interleave and
	// lose each other's edits.
	locks *roomLocks
}

var _ ws.MessageHandler = &RoomService{}

func NewRoomService(
	draftRepo contract.DraftRepository,
	courseService ICourseService,
	pageService IPageService,
	generator scribo.OutlineGenerator,
	broadcaster Broadcaster,
	log logger.ILogger,
	scriboTimeout time.Duration,
	storeTimeout time.Duration,
) *RoomService {
	return &RoomService{
		draftRepo:     draftRepo,
		courseService: courseService,
		pageService:   pageService,
		generator:     generator,
		broadcaster:   broadcaster,
		logger:        log,
		scriboTimeout: scriboTimeout,
		storeTimeout:  storeTimeout,
		locks:         newRoomLocks(),
	}
}

// HandleJoin seeds the room cache if this is the first member and sends the
// current state to the joining connection only. Members already in the room
// see nothing.
func (s *RoomService) HandleJoin(c *ws.Client) {
	ctx := context.Background()
	mu := s.locks.join(c.RoomID)
	mu.Lock()
	defer mu.Unlock()

	// Serve the cached state when the room is already live; seeding only
	// happens on a cache miss so a joiner never wipes uncommitted edits.
	switch c.Kind {
	case store.RoomDocument:
		cursor, err := s.currentCursor(ctx, c.RoomID)
		if err != nil {
			s.replyError(c, err)
			return
		}
		c.Reply(dto.RoomOutbound{Status: dto.StatusGood, Data: cursor})
	default:
		draft, err := s.currentDraft(ctx, c.RoomID)
		if err != nil {
			s.replyError(c, err)
			return
		}
		c.Reply(dto.RoomOutbound{Status: dto.StatusGood, Data: draft})
	}
}

// HandleMessage dispatches one inbound frame. A failing action answers the
// sender with a bad status and leaves the room running; nothing here tears
// the connection down.
func (s *RoomService) HandleMessage(c *ws.Client, raw []byte) {
	var msg dto.RoomInbound
	if err := json.Unmarshal(raw, &msg); err != nil {
		c.Reply(badReply("message is not valid JSON"))
		return
	}

	ctx := context.Background()
	if c.Kind == store.RoomDocument {
		s.handleDocumentAction(ctx, c, &msg)
		return
	}
	s.handleOutlineAction(ctx, c, &msg)
}

func (s *RoomService) HandleLeave(c *ws.Client) {
	s.locks.leave(c.RoomID)
	s.logger.Debug("RoomService", "Member left room", map[string]interface{}{
		"room": c.RoomID,
		"kind": c.Kind,
	})
}

func (s *RoomService) handleOutlineAction(ctx context.Context, c *ws.Client, msg *dto.RoomInbound) {
	switch msg.Action {
	case dto.ActionChange:
		s.applyChange(ctx, c, msg.Data.Changes)
	case dto.ActionUpdate:
		s.applyGeneratedUpdate(ctx, c, msg)
	case dto.ActionSave:
		s.saveDraft(ctx, c)
	case dto.ActionClear:
		s.clearDraft(ctx, c)
	default:
		c.Reply(badReply("unknown action for an outline room"))
	}
}

func (s *RoomService) handleDocumentAction(ctx context.Context, c *ws.Client, msg *dto.RoomInbound) {
	switch msg.Action {
	case dto.ActionNext, dto.ActionBack:
		s.turnPage(ctx, c, msg.Action)
	case dto.ActionChange:
		s.jumpToPage(ctx, c, msg.Data.CurrentPage)
	case dto.ActionClear:
		s.clearDraft(ctx, c)
	case "":
		s.shareContent(ctx, c, msg.Data.Content)
	default:
		c.Reply(badReply("unknown action for a document room"))
	}
}

// applyChange merges a client-authored ChangeSet into the cached draft and
// broadcasts the result. Update entries that matched no module are reported
// in the broadcast meta rather than silently dropped.
func (s *RoomService) applyChange(ctx context.Context, c *ws.Client, changes *store.ChangeSet) {
	if changes == nil {
		c.Reply(badReply("change action carries no changes"))
		return
	}

	mu := s.locks.get(c.RoomID)
	mu.Lock()
	defer mu.Unlock()

	draft, err := s.currentDraft(ctx, c.RoomID)
	if err != nil {
		s.replyError(c, err)
		return
	}

	result := outline.Merge(draft, changes)
	if err := s.draftRepo.Set(ctx, c.RoomID, result.Draft); err != nil {
		s.replyError(c, err)
		return
	}

	out := dto.RoomOutbound{Status: dto.StatusGood, Data: result.Draft}
	if len(result.IgnoredUpdates) > 0 {
		out.Meta = &dto.RoomMeta{IgnoredUpdates: result.IgnoredUpdates}
	}
	s.broadcaster.Broadcast(c.RoomID, out)
}

// applyGeneratedUpdate asks the generation backend to revise the draft from
// freeform notes. A backend failure answers the sender and leaves the cached
// draft exactly as it was.
func (s *RoomService) applyGeneratedUpdate(ctx context.Context, c *ws.Client, msg *dto.RoomInbound) {
	notes := msg.Data.Notes
	if notes == "" {
		notes = msg.Data.Comments
	}

	mu := s.locks.get(c.RoomID)
	mu.Lock()
	defer mu.Unlock()

	draft, err := s.currentDraft(ctx, c.RoomID)
	if err != nil {
		s.replyError(c, err)
		return
	}

	genCtx, cancel := context.WithTimeout(ctx, s.scriboTimeout)
	defer cancel()
	changes, err := s.generator.UpdateOutline(genCtx, draft, notes)
	if err != nil {
		s.logger.Warn("RoomService", "Outline update generation failed", map[string]interface{}{
			"room":  c.RoomID,
			"error": err.Error(),
		})
		s.replyError(c, err)
		return
	}

	result := outline.Merge(draft, changes)
	if err := s.draftRepo.Set(ctx, c.RoomID, result.Draft); err != nil {
		s.replyError(c, err)
		return
	}

	out := dto.RoomOutbound{Status: dto.StatusGood, Data: result.Draft}
	if len(result.IgnoredUpdates) > 0 {
		out.Meta = &dto.RoomMeta{IgnoredUpdates: result.IgnoredUpdates}
	}
	s.broadcaster.Broadcast(c.RoomID, out)
}

// saveDraft commits the cached draft to the store and broadcasts the saved
// state so every member sees the promoted status.
func (s *RoomService) saveDraft(ctx context.Context, c *ws.Client) {
	mu := s.locks.get(c.RoomID)
	mu.Lock()
	defer mu.Unlock()

	draft, ok, err := s.draftRepo.Get(ctx, c.RoomID)
	if err != nil {
		s.replyError(c, err)
		return
	}
	if !ok {
		c.Reply(badReply("no draft to save"))
		return
	}

	commitCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	saved, err := s.courseService.Commit(commitCtx, draft)
	if err != nil {
		s.replyError(c, err)
		return
	}

	draft.Status = saved.Status
	if err := s.draftRepo.Set(ctx, c.RoomID, draft); err != nil {
		s.replyError(c, err)
		return
	}
	s.broadcaster.Broadcast(c.RoomID, dto.RoomOutbound{Status: dto.StatusGood, Data: draft})
}

// clearDraft drops the cached room state. Only the sender is told; other
// members keep their local view until they act on the room again.
func (s *RoomService) clearDraft(ctx context.Context, c *ws.Client) {
	mu := s.locks.get(c.RoomID)
	mu.Lock()
	defer mu.Unlock()

	if err := s.draftRepo.Clear(ctx, c.RoomID); err != nil {
		s.replyError(c, err)
		return
	}
	c.Reply(dto.RoomOutbound{Status: dto.StatusCleared})
}

// turnPage moves the room cursor one module forward or back in outline
// order. At either boundary the neighbour id is empty and the sender gets a
// bad reply with no broadcast.
func (s *RoomService) turnPage(ctx context.Context, c *ws.Client, action string) {
	mu := s.locks.get(c.RoomID)
	mu.Lock()
	defer mu.Unlock()

	cursor, err := s.currentCursor(ctx, c.RoomID)
	if err != nil {
		s.replyError(c, err)
		return
	}

	target := cursor.NextPage
	if action == dto.ActionBack {
		target = cursor.PrevPage
	}
	if target == "" {
		c.Reply(badReply("no page in that direction"))
		return
	}
	targetId, err := uuid.Parse(target)
	if err != nil {
		s.replyError(c, err)
		return
	}
	s.moveCursor(ctx, c, targetId)
}

// jumpToPage repositions the room cursor on an explicit module id.
func (s *RoomService) jumpToPage(ctx context.Context, c *ws.Client, currentPage string) {
	pageId, err := uuid.Parse(currentPage)
	if err != nil {
		c.Reply(badReply("currentPage is not a valid id"))
		return
	}

	mu := s.locks.get(c.RoomID)
	mu.Lock()
	defer mu.Unlock()
	s.moveCursor(ctx, c, pageId)
}

// moveCursor resolves and caches the cursor for a target module, then
// broadcasts it. Callers hold the room lock. An unknown target leaves the
// cached cursor where it was.
func (s *RoomService) moveCursor(ctx context.Context, c *ws.Client, target uuid.UUID) {
	draft, err := s.documentDraft(ctx, c.RoomID)
	if err != nil {
		s.replyError(c, err)
		return
	}

	cursor, err := outline.ResolveCursor(draft, target)
	if err != nil {
		s.replyError(c, err)
		return
	}
	if err := s.draftRepo.SetCursor(ctx, c.RoomID, cursor); err != nil {
		s.replyError(c, err)
		return
	}
	s.broadcaster.Broadcast(c.RoomID, dto.RoomOutbound{Status: dto.StatusGood, Data: cursor})
}

// shareContent relays live page text to the room and keeps the cached cursor
// content current so late joiners see the in-progress text.
func (s *RoomService) shareContent(ctx context.Context, c *ws.Client, content string) {
	mu := s.locks.get(c.RoomID)
	mu.Lock()
	defer mu.Unlock()

	cursor, ok, err := s.draftRepo.GetCursor(ctx, c.RoomID)
	if err != nil {
		s.replyError(c, err)
		return
	}
	if ok {
		cursor.Content = content
		if err := s.draftRepo.SetCursor(ctx, c.RoomID, cursor); err != nil {
			s.replyError(c, err)
			return
		}
	}
	s.broadcaster.Broadcast(c.RoomID, dto.RoomOutbound{
		Status: dto.StatusGood,
		Data:   map[string]string{"content": content},
	})
}

// currentDraft returns the cached draft for an outline room, seeding it from
// the store when the cache entry expired. A cache read failure is surfaced as
// is; it never triggers a reseed. Callers hold the room lock.
func (s *RoomService) currentDraft(ctx context.Context, roomID string) (*store.DraftState, error) {
	draft, ok, err := s.draftRepo.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if ok {
		return draft, nil
	}
	return s.seedOutlineRoom(ctx, roomID)
}

// currentCursor returns the cached cursor for a document room, reseeding on
// expiry. Callers hold the room lock.
func (s *RoomService) currentCursor(ctx context.Context, roomID string) (*store.PageCursor, error) {
	cursor, ok, err := s.draftRepo.GetCursor(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if ok {
		return cursor, nil
	}
	return s.seedDocumentRoom(ctx, roomID)
}

// documentDraft returns the cached draft backing a document room, reseeding
// both draft and cursor on expiry. Callers hold the room lock.
func (s *RoomService) documentDraft(ctx context.Context, roomID string) (*store.DraftState, error) {
	draft, ok, err := s.draftRepo.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if ok {
		return draft, nil
	}
	if _, err := s.seedDocumentRoom(ctx, roomID); err != nil {
		return nil, err
	}
	draft, ok, err = s.draftRepo.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCourseNotFound
	}
	return draft, nil
}

func (s *RoomService) seedOutlineRoom(ctx context.Context, roomID string) (*store.DraftState, error) {
	courseId, err := uuid.Parse(roomID)
	if err != nil {
		return nil, &ValidationError{Field: "room", Reason: "id is not a valid course id"}
	}
	seedCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	draft, err := s.courseService.SeedDraft(seedCtx, courseId)
	if err != nil {
		return nil, err
	}
	if err := s.draftRepo.Set(ctx, roomID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *RoomService) seedDocumentRoom(ctx context.Context, roomID string) (*store.PageCursor, error) {
	roomId, err := uuid.Parse(roomID)
	if err != nil {
		return nil, &ValidationError{Field: "room", Reason: "id is not a valid course or page id"}
	}
	seedCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	draft, cursor, err := s.pageService.SeedPageRoom(seedCtx, roomId)
	if err != nil {
		return nil, err
	}
	if err := s.draftRepo.Set(ctx, roomID, draft); err != nil {
		return nil, err
	}
	if err := s.draftRepo.SetCursor(ctx, roomID, cursor); err != nil {
		return nil, err
	}
	return cursor, nil
}

func (s *RoomService) replyError(c *ws.Client, err error) {
	c.Reply(badReply(userFacingError(err)))
}

func badReply(message string) dto.RoomOutbound {
	return dto.RoomOutbound{
		Status: dto.StatusBad,
		Data:   map[string]string{"message": message},
	}
}

// userFacingError keeps backend internals out of room replies while staying
// specific enough to act on.
func userFacingError(err error) string {
	var vErr *ValidationError
	var genErr *scribo.GenerationError
	switch {
	case errors.Is(err, ErrCourseNotFound):
		return "course not found"
	case errors.Is(err, outline.ErrModuleNotFound):
		return "page not found"
	case errors.Is(err, outline.ErrCourseEmpty):
		return "course has no pages"
	case errors.As(err, &vErr):
		return vErr.Error()
	case errors.As(err, &genErr):
		return "generation backend failed, draft left untouched"
	default:
		return "internal error"
	}
}
