package dto

import (
	"ai-courselab-be/pkg/store"

	"github.com/google/uuid"
)

// Room protocol actions. Empty action on a document room broadcasts raw
// content (freehand co-editing of the current page).
const (
	ActionUpdate = "update"
	ActionSave   = "save"
	ActionChange = "change"
	ActionNext   = "next"
	ActionBack   = "back"
	ActionClear  = "clear"
)

// Outbound statuses.
const (
	StatusGood    = "good"
	StatusBad     = "bad"
	StatusCleared = "cleared"
)

// RoomInbound is a client message on a room connection.
type RoomInbound struct {
	Action string          `json:"action"`
	Data   RoomInboundData `json:"data"`
}

type RoomInboundData struct {
	Changes     *store.ChangeSet `json:"changes,omitempty"`
	Notes       string           `json:"notes,omitempty"`
	Comments    string           `json:"comments,omitempty"`
	Content     string           `json:"content,omitempty"`
	CurrentPage string           `json:"currentPage,omitempty"`
}

// RoomOutbound is a server message, either a broadcast to the whole room or
// a reply to a single connection.
type RoomOutbound struct {
	Status string    `json:"status"`
	Data   any       `json:"data"`
	Meta   *RoomMeta `json:"meta,omitempty"`
}

type RoomMeta struct {
	// Update ids from a ChangeSet that matched no module and were skipped.
	IgnoredUpdates []uuid.UUID `json:"ignoredUpdates,omitempty"`
}
