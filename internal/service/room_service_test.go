package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ai-courselab-be/internal/dto"
	"ai-courselab-be/internal/repository/contract"
	"ai-courselab-be/internal/repository/memory"
	ws "ai-courselab-be/internal/websocket"
	"ai-courselab-be/pkg/scribo"
	"ai-courselab-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedBroadcast struct {
	room    string
	payload dto.RoomOutbound
}

type stubBroadcaster struct {
	sent []recordedBroadcast
}

func (b *stubBroadcaster) Broadcast(roomID string, payload interface{}) {
	b.sent = append(b.sent, recordedBroadcast{room: roomID, payload: payload.(dto.RoomOutbound)})
}

type stubGenerator struct {
	updateChanges *store.ChangeSet
	updateErr     error
}

func (g *stubGenerator) GenerateOutline(ctx context.Context, topic, duration string) (*scribo.GeneratedOutline, error) {
	return nil, nil
}

func (g *stubGenerator) UpdateOutline(ctx context.Context, script *store.DraftState, notes string) (*store.ChangeSet, error) {
	if g.updateErr != nil {
		return nil, g.updateErr
	}
	return g.updateChanges, nil
}

func (g *stubGenerator) GeneratePage(ctx context.Context, req scribo.PageRequest) (string, error) {
	return "", nil
}

type stubCourseService struct {
	draft     *store.DraftState
	commitErr error
	committed []*store.DraftState

	seedBounded   bool
	commitBounded bool
}

func (s *stubCourseService) CreateOutline(ctx context.Context, req *dto.CreateOutlineRequest) (*dto.CourseResponse, error) {
	return nil, nil
}

func (s *stubCourseService) GetCourse(ctx context.Context, id uuid.UUID) (*dto.CourseResponse, error) {
	return nil, nil
}

func (s *stubCourseService) Publish(ctx context.Context, id uuid.UUID) (*dto.CourseResponse, error) {
	return nil, nil
}

func (s *stubCourseService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (s *stubCourseService) InitializePages(ctx context.Context, courseId uuid.UUID) (*dto.InitializePagesResponse, error) {
	return nil, nil
}

func (s *stubCourseService) SeedDraft(ctx context.Context, courseId uuid.UUID) (*store.DraftState, error) {
	_, s.seedBounded = ctx.Deadline()
	if s.draft == nil || s.draft.Uuid != courseId {
		return nil, ErrCourseNotFound
	}
	clone := *s.draft
	return &clone, nil
}

func (s *stubCourseService) Commit(ctx context.Context, draft *store.DraftState) (*dto.CourseResponse, error) {
	_, s.commitBounded = ctx.Deadline()
	if s.commitErr != nil {
		return nil, s.commitErr
	}
	s.committed = append(s.committed, draft)
	return &dto.CourseResponse{Id: draft.Uuid, Title: draft.Title, Status: store.StatusDraft}, nil
}

type stubPageService struct {
	draft  *store.DraftState
	cursor *store.PageCursor
}

func (s *stubPageService) GetPageByCourse(ctx context.Context, courseId uuid.UUID) (*store.PageCursor, error) {
	return s.cursor, nil
}

func (s *stubPageService) GetPageByModule(ctx context.Context, moduleId uuid.UUID) (*store.PageCursor, error) {
	return s.cursor, nil
}

func (s *stubPageService) SeedPageRoom(ctx context.Context, roomId uuid.UUID) (*store.DraftState, *store.PageCursor, error) {
	if s.draft == nil {
		return nil, nil, ErrCourseNotFound
	}
	return s.draft, s.cursor, nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func fixtureDraft() *store.DraftState {
	courseId := uuid.New()
	return &store.DraftState{
		Uuid:       courseId,
		Title:      "Intro to Gardening",
		Objectives: []string{"plant things"},
		Duration:   "3 weeks",
		Status:     store.StatusDraft,
		Modules: []store.DraftModule{
			{Uuid: uuid.New(), Name: "Soil", Order: 0},
			{Uuid: uuid.New(), Name: "Seeds", Order: 1},
			{Uuid: uuid.New(), Name: "Watering", Order: 2},
		},
	}
}

type roomFixture struct {
	svc         *RoomService
	broadcaster *stubBroadcaster
	generator   *stubGenerator
	courses     *stubCourseService
	pages       *stubPageService
	repo        contract.DraftRepository
}

func newRoomFixture(draft *store.DraftState) *roomFixture {
	return newRoomFixtureWithRepo(draft, memory.NewDraftRepository(time.Minute, time.Minute))
}

func newRoomFixtureWithRepo(draft *store.DraftState, repo contract.DraftRepository) *roomFixture {
	broadcaster := &stubBroadcaster{}
	generator := &stubGenerator{}
	courses := &stubCourseService{draft: draft}
	pages := &stubPageService{}
	svc := NewRoomService(repo, courses, pages, generator, broadcaster, noopLogger{}, time.Second, time.Second)
	return &roomFixture{
		svc:         svc,
		broadcaster: broadcaster,
		generator:   generator,
		courses:     courses,
		pages:       pages,
		repo:        repo,
	}
}

func newMember(roomID, kind string) *ws.Client {
	return &ws.Client{RoomID: roomID, Kind: kind, Send: make(chan []byte, 8)}
}

func lastReply(t *testing.T, c *ws.Client) dto.RoomOutbound {
	t.Helper()
	select {
	case raw := <-c.Send:
		var out dto.RoomOutbound
		require.NoError(t, json.Unmarshal(raw, &out))
		return out
	default:
		t.Fatal("expected a reply on the client send channel")
		return dto.RoomOutbound{}
	}
}

func assertNoReply(t *testing.T, c *ws.Client) {
	t.Helper()
	select {
	case raw := <-c.Send:
		t.Fatalf("unexpected reply: %s", raw)
	default:
	}
}

func inboundFrame(t *testing.T, msg dto.RoomInbound) []byte {
	t.Helper()
	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	return raw
}

func TestHandleJoinSeedsOutlineRoomForJoinerOnly(t *testing.T) {
	draft := fixtureDraft()
	f := newRoomFixture(draft)
	c := newMember(draft.Uuid.String(), store.RoomOutline)

	f.svc.HandleJoin(c)

	reply := lastReply(t, c)
	assert.Equal(t, dto.StatusGood, reply.Status)
	data := reply.Data.(map[string]interface{})
	assert.Equal(t, "Intro to Gardening", data["title"])
	assert.Empty(t, f.broadcaster.sent, "join must not broadcast to the room")

	cached, ok, _ := f.repo.Get(context.Background(), c.RoomID)
	require.True(t, ok)
	assert.Equal(t, draft.Uuid, cached.Uuid)
}

func TestLateJoinerGetsLiveDraftNotStoreState(t *testing.T) {
	draft := fixtureDraft()
	f := newRoomFixture(draft)
	room := draft.Uuid.String()
	alice := newMember(room, store.RoomOutline)
	f.svc.HandleJoin(alice)
	lastReply(t, alice)

	title := "Edited Before Bob Joined"
	f.svc.HandleMessage(alice, inboundFrame(t, dto.RoomInbound{
		Action: dto.ActionChange,
		Data:   dto.RoomInboundData{Changes: &store.ChangeSet{Title: &title}},
	}))

	bob := newMember(room, store.RoomOutline)
	f.svc.HandleJoin(bob)

	reply := lastReply(t, bob)
	assert.Equal(t, dto.StatusGood, reply.Status)
	data := reply.Data.(map[string]interface{})
	assert.Equal(t, title, data["title"], "join must serve the cached draft, not re-seed")
}

func TestHandleJoinUnknownCourseRepliesBad(t *testing.T) {
	f := newRoomFixture(fixtureDraft())
	c := newMember(uuid.NewString(), store.RoomOutline)

	f.svc.HandleJoin(c)

	reply := lastReply(t, c)
	assert.Equal(t, dto.StatusBad, reply.Status)
	_, ok, _ := f.repo.Get(context.Background(), c.RoomID)
	assert.False(t, ok)
}

func TestChangeActionMergesAndBroadcasts(t *testing.T) {
	draft := fixtureDraft()
	f := newRoomFixture(draft)
	room := draft.Uuid.String()
	alice := newMember(room, store.RoomOutline)
	f.svc.HandleJoin(alice)
	lastReply(t, alice)

	title := "Advanced Gardening"
	frame := inboundFrame(t, dto.RoomInbound{
		Action: dto.ActionChange,
		Data:   dto.RoomInboundData{Changes: &store.ChangeSet{Title: &title}},
	})
	f.svc.HandleMessage(alice, frame)

	require.Len(t, f.broadcaster.sent, 1)
	sent := f.broadcaster.sent[0]
	assert.Equal(t, room, sent.room)
	assert.Equal(t, dto.StatusGood, sent.payload.Status)
	assert.Equal(t, title, sent.payload.Data.(*store.DraftState).Title)
	assert.Nil(t, sent.payload.Meta)

	cached, ok, _ := f.repo.Get(context.Background(), room)
	require.True(t, ok)
	assert.Equal(t, title, cached.Title)
	assert.Len(t, cached.Modules, 3, "untouched keys survive the merge")
	assertNoReply(t, alice)
}

func TestChangeActionReportsIgnoredUpdates(t *testing.T) {
	draft := fixtureDraft()
	f := newRoomFixture(draft)
	room := draft.Uuid.String()
	c := newMember(room, store.RoomOutline)
	f.svc.HandleJoin(c)
	lastReply(t, c)

	ghost := uuid.New()
	name := "Phantom"
	frame := inboundFrame(t, dto.RoomInbound{
		Action: dto.ActionChange,
		Data: dto.RoomInboundData{Changes: &store.ChangeSet{
			ModuleChanges: &store.ModuleChanges{
				Update: []store.ModuleInput{{Uuid: &ghost, Name: &name}},
			},
		}},
	})
	f.svc.HandleMessage(c, frame)

	require.Len(t, f.broadcaster.sent, 1)
	meta := f.broadcaster.sent[0].payload.Meta
	require.NotNil(t, meta)
	assert.Equal(t, []uuid.UUID{ghost}, meta.IgnoredUpdates)
}

func TestChangeWithoutChangesRepliesBad(t *testing.T) {
	draft := fixtureDraft()
	f := newRoomFixture(draft)
	c := newMember(draft.Uuid.String(), store.RoomOutline)

	f.svc.HandleMessage(c, inboundFrame(t, dto.RoomInbound{Action: dto.ActionChange}))

	reply := lastReply(t, c)
	assert.Equal(t, dto.StatusBad, reply.Status)
	assert.Empty(t, f.broadcaster.sent)
}

func TestUpdateFailureLeavesDraftUntouched(t *testing.T) {
	draft := fixtureDraft()
	f := newRoomFixture(draft)
	room := draft.Uuid.String()
	c := newMember(room, store.RoomOutline)
	f.svc.HandleJoin(c)
	lastReply(t, c)

	f.generator.updateErr = &scribo.GenerationError{Op: "update-outline", Err: context.DeadlineExceeded}
	f.svc.HandleMessage(c, inboundFrame(t, dto.RoomInbound{
		Action: dto.ActionUpdate,
		Data:   dto.RoomInboundData{Notes: "make it shorter"},
	}))

	reply := lastReply(t, c)
	assert.Equal(t, dto.StatusBad, reply.Status)
	assert.Empty(t, f.broadcaster.sent, "a failed generation must not reach the room")

	cached, ok, _ := f.repo.Get(context.Background(), room)
	require.True(t, ok)
	assert.Equal(t, draft.Title, cached.Title)
	assert.Len(t, cached.Modules, 3)
}

func TestUpdateAppliesGeneratedChanges(t *testing.T) {
	draft := fixtureDraft()
	f := newRoomFixture(draft)
	room := draft.Uuid.String()
	c := newMember(room, store.RoomOutline)
	f.svc.HandleJoin(c)
	lastReply(t, c)

	summary := "Now with compost."
	f.generator.updateChanges = &store.ChangeSet{Summary: &summary}
	f.svc.HandleMessage(c, inboundFrame(t, dto.RoomInbound{
		Action: dto.ActionUpdate,
		Data:   dto.RoomInboundData{Notes: "add compost"},
	}))

	require.Len(t, f.broadcaster.sent, 1)
	assert.Equal(t, summary, f.broadcaster.sent[0].payload.Data.(*store.DraftState).Summary)
	assertNoReply(t, c)
}

func TestSaveCommitsAndBroadcastsPromotedStatus(t *testing.T) {
	draft := fixtureDraft()
	draft.Status = store.StatusTemp
	f := newRoomFixture(draft)
	room := draft.Uuid.String()
	c := newMember(room, store.RoomOutline)
	f.svc.HandleJoin(c)
	lastReply(t, c)

	f.svc.HandleMessage(c, inboundFrame(t, dto.RoomInbound{Action: dto.ActionSave}))

	require.Len(t, f.courses.committed, 1)
	require.Len(t, f.broadcaster.sent, 1)
	saved := f.broadcaster.sent[0].payload.Data.(*store.DraftState)
	assert.Equal(t, store.StatusDraft, saved.Status)
}

func TestSaveValidationErrorAnswersSenderOnly(t *testing.T) {
	draft := fixtureDraft()
	f := newRoomFixture(draft)
	room := draft.Uuid.String()
	c := newMember(room, store.RoomOutline)
	f.svc.HandleJoin(c)
	lastReply(t, c)

	f.courses.commitErr = &ValidationError{Field: "title", Reason: "is required"}
	f.svc.HandleMessage(c, inboundFrame(t, dto.RoomInbound{Action: dto.ActionSave}))

	reply := lastReply(t, c)
	assert.Equal(t, dto.StatusBad, reply.Status)
	assert.Empty(t, f.broadcaster.sent)
}

func TestClearDropsCacheAndAnswersSenderOnly(t *testing.T) {
	draft := fixtureDraft()
	f := newRoomFixture(draft)
	room := draft.Uuid.String()
	c := newMember(room, store.RoomOutline)
	f.svc.HandleJoin(c)
	lastReply(t, c)

	f.svc.HandleMessage(c, inboundFrame(t, dto.RoomInbound{Action: dto.ActionClear}))

	reply := lastReply(t, c)
	assert.Equal(t, dto.StatusCleared, reply.Status)
	assert.Empty(t, f.broadcaster.sent, "clear is acknowledged to the sender only")

	_, ok, _ := f.repo.Get(context.Background(), room)
	assert.False(t, ok)
}

func TestUnknownActionRepliesBad(t *testing.T) {
	draft := fixtureDraft()
	f := newRoomFixture(draft)
	c := newMember(draft.Uuid.String(), store.RoomOutline)

	f.svc.HandleMessage(c, inboundFrame(t, dto.RoomInbound{Action: "explode"}))

	reply := lastReply(t, c)
	assert.Equal(t, dto.StatusBad, reply.Status)
}

func TestMalformedFrameRepliesBad(t *testing.T) {
	draft := fixtureDraft()
	f := newRoomFixture(draft)
	c := newMember(draft.Uuid.String(), store.RoomOutline)

	f.svc.HandleMessage(c, []byte("{not json"))

	reply := lastReply(t, c)
	assert.Equal(t, dto.StatusBad, reply.Status)
}

func documentFixture() (*roomFixture, *store.DraftState) {
	draft := fixtureDraft()
	f := newRoomFixture(draft)
	f.pages.draft = draft
	f.pages.cursor = &store.PageCursor{
		CurrentPage:  draft.Modules[0].Uuid,
		Course:       draft.Uuid,
		NextPage:     draft.Modules[1].Uuid.String(),
		Total:        3,
		CurrentOrder: 1,
	}
	return f, draft
}

func TestDocumentJoinRepliesCursor(t *testing.T) {
	f, draft := documentFixture()
	c := newMember(draft.Uuid.String(), store.RoomDocument)

	f.svc.HandleJoin(c)

	reply := lastReply(t, c)
	assert.Equal(t, dto.StatusGood, reply.Status)
	data := reply.Data.(map[string]interface{})
	assert.Equal(t, draft.Modules[0].Uuid.String(), data["currentPage"])
	assert.Equal(t, float64(1), data["current_order"])
}

func TestNextActionAdvancesCursor(t *testing.T) {
	f, draft := documentFixture()
	room := draft.Uuid.String()
	c := newMember(room, store.RoomDocument)
	f.svc.HandleJoin(c)
	lastReply(t, c)

	f.svc.HandleMessage(c, inboundFrame(t, dto.RoomInbound{Action: dto.ActionNext}))

	require.Len(t, f.broadcaster.sent, 1)
	cursor := f.broadcaster.sent[0].payload.Data.(*store.PageCursor)
	assert.Equal(t, draft.Modules[1].Uuid, cursor.CurrentPage)
	assert.Equal(t, 2, cursor.CurrentOrder)
	assert.Equal(t, draft.Modules[0].Uuid.String(), cursor.PrevPage)

	cached, ok, _ := f.repo.GetCursor(context.Background(), room)
	require.True(t, ok)
	assert.Equal(t, draft.Modules[1].Uuid, cached.CurrentPage)
}

func TestBackAtFirstPageRepliesBad(t *testing.T) {
	f, draft := documentFixture()
	c := newMember(draft.Uuid.String(), store.RoomDocument)
	f.svc.HandleJoin(c)
	lastReply(t, c)

	f.svc.HandleMessage(c, inboundFrame(t, dto.RoomInbound{Action: dto.ActionBack}))

	reply := lastReply(t, c)
	assert.Equal(t, dto.StatusBad, reply.Status)
	assert.Empty(t, f.broadcaster.sent)
}

func TestJumpToUnknownPageLeavesCursor(t *testing.T) {
	f, draft := documentFixture()
	room := draft.Uuid.String()
	c := newMember(room, store.RoomDocument)
	f.svc.HandleJoin(c)
	lastReply(t, c)

	f.svc.HandleMessage(c, inboundFrame(t, dto.RoomInbound{
		Action: dto.ActionChange,
		Data:   dto.RoomInboundData{CurrentPage: uuid.NewString()},
	}))

	reply := lastReply(t, c)
	assert.Equal(t, dto.StatusBad, reply.Status)
	assert.Empty(t, f.broadcaster.sent)

	cached, ok, _ := f.repo.GetCursor(context.Background(), room)
	require.True(t, ok)
	assert.Equal(t, draft.Modules[0].Uuid, cached.CurrentPage)
}

func TestBareContentBroadcastsAndCachesText(t *testing.T) {
	f, draft := documentFixture()
	room := draft.Uuid.String()
	c := newMember(room, store.RoomDocument)
	f.svc.HandleJoin(c)
	lastReply(t, c)

	f.svc.HandleMessage(c, inboundFrame(t, dto.RoomInbound{
		Data: dto.RoomInboundData{Content: "## Soil basics"},
	}))

	require.Len(t, f.broadcaster.sent, 1)
	data := f.broadcaster.sent[0].payload.Data.(map[string]string)
	assert.Equal(t, "## Soil basics", data["content"])

	cached, ok, _ := f.repo.GetCursor(context.Background(), room)
	require.True(t, ok)
	assert.Equal(t, "## Soil basics", cached.Content)
}

var errCacheDown = errors.New("cache backend unreachable")

// flakyDraftRepo delegates to a working cache until fail is flipped, then
// every read reports a backend error.
type flakyDraftRepo struct {
	inner contract.DraftRepository
	fail  bool
}

func (r *flakyDraftRepo) Get(ctx context.Context, roomId string) (*store.DraftState, bool, error) {
	if r.fail {
		return nil, false, errCacheDown
	}
	return r.inner.Get(ctx, roomId)
}

func (r *flakyDraftRepo) Set(ctx context.Context, roomId string, draft *store.DraftState) error {
	return r.inner.Set(ctx, roomId, draft)
}

func (r *flakyDraftRepo) Clear(ctx context.Context, roomId string) error {
	return r.inner.Clear(ctx, roomId)
}

func (r *flakyDraftRepo) GetCursor(ctx context.Context, roomId string) (*store.PageCursor, bool, error) {
	if r.fail {
		return nil, false, errCacheDown
	}
	return r.inner.GetCursor(ctx, roomId)
}

func (r *flakyDraftRepo) SetCursor(ctx context.Context, roomId string, cursor *store.PageCursor) error {
	return r.inner.SetCursor(ctx, roomId, cursor)
}

func TestCacheReadFailureRepliesBadAndPreservesDraft(t *testing.T) {
	draft := fixtureDraft()
	flaky := &flakyDraftRepo{inner: memory.NewDraftRepository(time.Minute, time.Minute)}
	f := newRoomFixtureWithRepo(draft, flaky)
	room := draft.Uuid.String()
	c := newMember(room, store.RoomOutline)
	f.svc.HandleJoin(c)
	lastReply(t, c)

	title := "Edited Before The Outage"
	f.svc.HandleMessage(c, inboundFrame(t, dto.RoomInbound{
		Action: dto.ActionChange,
		Data:   dto.RoomInboundData{Changes: &store.ChangeSet{Title: &title}},
	}))
	require.Len(t, f.broadcaster.sent, 1)

	flaky.fail = true
	lost := "Edit During The Outage"
	f.svc.HandleMessage(c, inboundFrame(t, dto.RoomInbound{
		Action: dto.ActionChange,
		Data:   dto.RoomInboundData{Changes: &store.ChangeSet{Title: &lost}},
	}))

	reply := lastReply(t, c)
	assert.Equal(t, dto.StatusBad, reply.Status)
	assert.Len(t, f.broadcaster.sent, 1, "a failed read must not reach the room")

	// Once the cache is reachable again the earlier edit is still there; the
	// outage never triggered a reseed from the store.
	flaky.fail = false
	cached, ok, err := f.repo.Get(context.Background(), room)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, title, cached.Title)
}

func TestCacheReadFailureOnJoinDoesNotSeed(t *testing.T) {
	draft := fixtureDraft()
	flaky := &flakyDraftRepo{inner: memory.NewDraftRepository(time.Minute, time.Minute), fail: true}
	f := newRoomFixtureWithRepo(draft, flaky)
	c := newMember(draft.Uuid.String(), store.RoomOutline)

	f.svc.HandleJoin(c)

	reply := lastReply(t, c)
	assert.Equal(t, dto.StatusBad, reply.Status)

	flaky.fail = false
	_, ok, _ := f.repo.Get(context.Background(), c.RoomID)
	assert.False(t, ok, "a failed read must not be treated as a miss and seeded over")
}

func TestSaveDuringCacheOutageAnswersSenderOnly(t *testing.T) {
	draft := fixtureDraft()
	flaky := &flakyDraftRepo{inner: memory.NewDraftRepository(time.Minute, time.Minute)}
	f := newRoomFixtureWithRepo(draft, flaky)
	room := draft.Uuid.String()
	c := newMember(room, store.RoomOutline)
	f.svc.HandleJoin(c)
	lastReply(t, c)

	flaky.fail = true
	f.svc.HandleMessage(c, inboundFrame(t, dto.RoomInbound{Action: dto.ActionSave}))

	reply := lastReply(t, c)
	assert.Equal(t, dto.StatusBad, reply.Status)
	assert.Empty(t, f.courses.committed, "nothing may be committed off an unreadable cache")
	assert.Empty(t, f.broadcaster.sent)
}

func TestRoomLockEntryReleasedAfterLastLeave(t *testing.T) {
	draft := fixtureDraft()
	f := newRoomFixture(draft)
	room := draft.Uuid.String()
	alice := newMember(room, store.RoomOutline)
	bob := newMember(room, store.RoomOutline)

	f.svc.HandleJoin(alice)
	f.svc.HandleJoin(bob)
	assert.Equal(t, 1, f.svc.locks.size())

	f.svc.HandleLeave(alice)
	assert.Equal(t, 1, f.svc.locks.size(), "entry stays while a member remains")

	f.svc.HandleLeave(bob)
	assert.Equal(t, 0, f.svc.locks.size(), "last leave releases the room entry")
}

func TestStoreCallsFromRoomsCarryDeadlines(t *testing.T) {
	draft := fixtureDraft()
	f := newRoomFixture(draft)
	room := draft.Uuid.String()
	c := newMember(room, store.RoomOutline)

	f.svc.HandleJoin(c)
	lastReply(t, c)
	assert.True(t, f.courses.seedBounded, "seeding must run under a deadline")

	f.svc.HandleMessage(c, inboundFrame(t, dto.RoomInbound{Action: dto.ActionSave}))
	assert.True(t, f.courses.commitBounded, "commit must run under a deadline")
}
