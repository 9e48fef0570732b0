package store

import "github.com/google/uuid"

// Course lifecycle states
const (
	StatusTemp      = "temp"
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Room kinds. Outline rooms edit the course structure, document rooms
// page through generated module content.
const (
	RoomOutline  = "outline"
	RoomDocument = "document"
)

// DraftState is the uncommitted working copy of a course shared by every
// member of a room. It lives in the draft cache, keyed by room id, and only
// becomes durable on an explicit save.
type DraftState struct {
	Uuid         uuid.UUID     `json:"uuid"`
	Title        string        `json:"title"`
	Objectives   []string      `json:"objectives"`
	Duration     string        `json:"duration"`
	Summary      string        `json:"summary"`
	Status       string        `json:"status"`
	Organization uuid.UUID     `json:"organization"`
	Modules      []DraftModule `json:"modules"`
}

// DraftModule is the denormalized module entry embedded in a DraftState.
// Order is assigned at commit time from list position; inside the draft it
// carries whatever the last seed/merge left (gaps tolerated).
type DraftModule struct {
	Uuid      uuid.UUID `json:"uuid"`
	Name      string    `json:"name"`
	Duration  string    `json:"duration"`
	Subtopics []string  `json:"subtopics"`
	Features  []string  `json:"features"`
	Content   string    `json:"content"`
	Order     int       `json:"order"`
}

// ChangeSet is a partial update applied to a DraftState by the merge engine.
// Pointer fields distinguish "absent" from "present but empty"; nil fields
// leave the draft untouched.
type ChangeSet struct {
	Title         *string        `json:"title,omitempty"`
	Objectives    *[]string      `json:"objectives,omitempty"`
	Duration      *string        `json:"duration,omitempty"`
	Summary       *string        `json:"summary,omitempty"`
	ModuleChanges *ModuleChanges `json:"moduleChanges,omitempty"`
}

// ModuleChanges holds the structural half of a ChangeSet. Applied in fixed
// order: add, then remove, then update.
type ModuleChanges struct {
	Add    []ModuleInput `json:"add,omitempty"`
	Remove []uuid.UUID   `json:"remove,omitempty"`
	Update []ModuleInput `json:"update,omitempty"`
}

// ModuleInput is a partial module payload. For adds, nil fields default to
// zero values; for updates, nil fields keep the existing value.
type ModuleInput struct {
	Uuid      *uuid.UUID `json:"uuid,omitempty"`
	Name      *string    `json:"name,omitempty"`
	Duration  *string    `json:"duration,omitempty"`
	Subtopics *[]string  `json:"subtopics,omitempty"`
	Features  *[]string  `json:"features,omitempty"`
	Content   *string    `json:"content,omitempty"`
}

// PageCursor is the derived prev/current/next view served to document rooms.
// CurrentOrder is 1-based for display; PrevPage/NextPage are empty strings at
// the edges of the course.
type PageCursor struct {
	CurrentPage  uuid.UUID `json:"currentPage"`
	Course       uuid.UUID `json:"course"`
	PrevPage     string    `json:"prevPage"`
	NextPage     string    `json:"nextPage"`
	Total        int       `json:"total"`
	CurrentOrder int       `json:"current_order"`
	Content      string    `json:"content"`
}
