package session

import "encoding/json"

// Message is the envelope for all session traffic.
type Message struct {
	Type     string          `json:"type"`
	DesignID string          `json:"designId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

const (
	// Connection
	TypeWelcome = "welcome"
	TypeDocSync = "doc.sync"
	TypeError   = "error"

	// Presence
	TypeClientJoin  = "client.join"
	TypeClientLeave = "client.leave"

	// Editor commands (client → server)
	TypeSelectionSet = "selection.set"
	TypeDragBegin    = "drag.begin"
	TypeDragMove     = "drag.move"
	TypeDragEnd      = "drag.end"
	TypeDragCancel   = "drag.cancel"
	TypePropSet      = "prop.set"
	TypeAlignCenters = "align.centers"

	// Editor state (server → client)
	TypeGuidesState = "guides.state"
	TypePropsState  = "props.state"
	TypeRenderHint  = "render"
)

// WelcomePayload is sent once after the connection is accepted.
type WelcomePayload struct {
	ClientID string `json:"clientId"`
	DesignID string `json:"designId"`
}

// DocSyncPayload carries the full scene so a joining client can draw it.
type DocSyncPayload struct {
	Canvas  json.RawMessage `json:"canvas"`
	Objects json.RawMessage `json:"objects"`
}

// SelectionSetPayload replaces the sender's selection.
type SelectionSetPayload struct {
	IDs []string `json:"ids"`
}

// DragBeginPayload starts a drag on one object.
type DragBeginPayload struct {
	ObjectID string `json:"objectId"`
}

// DragMovePayload carries the raw pointer-tracked position.
type DragMovePayload struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}

// PropSetPayload commits one panel edit.
type PropSetPayload struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// GuidesStatePayload carries the corrected geometry and active guides
// after a drag-move, for the sender to render.
type GuidesStatePayload struct {
	ObjectID string          `json:"objectId"`
	Guides   json.RawMessage `json:"guides"`
}

// PropsStatePayload carries the panel view-model after a selection or
// property change.
type PropsStatePayload struct {
	State json.RawMessage `json:"state"`
}

// ErrorPayload reports a rejected command.
type ErrorPayload struct {
	Reason string `json:"reason"`
}
