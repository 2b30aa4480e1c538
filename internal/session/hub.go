// Package session hosts editor sessions over WebSocket: one room per
// design, one Editor per room, clients driving it with drag and property
// commands. Broadcasts are render hints for other clients of the same
// design, not a convergence protocol.
package session

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/sketchdeck/sketchdeck/backend-go/internal/editor"
)

// EditorFactory builds the editor for a design the first time a client
// joins its room.
type EditorFactory func(designID string) *editor.Editor

// Room is one design's session: its editor plus the connected clients.
// The editor core is single-threaded; the mutex serializes the client
// goroutines into it the way a UI event loop would.
type Room struct {
	designID string
	clients  map[string]*Client

	mu     sync.Mutex
	editor *editor.Editor
}

func NewRoom(designID string, ed *editor.Editor) *Room {
	return &Room{
		designID: designID,
		clients:  make(map[string]*Client),
		editor:   ed,
	}
}

// Hub routes clients into rooms and messages into editors.
type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room
	register   chan *Client
	unregister chan *Client

	newEditor EditorFactory
}

func NewHub(newEditor EditorFactory) *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		newEditor:  newEditor,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.DesignID]
	if !ok {
		room = NewRoom(client.DesignID, h.newEditor(client.DesignID))
		h.rooms[client.DesignID] = room
	}
	room.clients[client.ClientID] = client
	h.mu.Unlock()

	client.Send(&Message{
		Type:    TypeWelcome,
		Payload: mustMarshal(WelcomePayload{ClientID: client.ClientID, DesignID: client.DesignID}),
	})
	client.Send(room.docSyncMessage())

	joinMsg := &Message{
		Type:     TypeClientJoin,
		ClientID: client.ClientID,
	}
	h.broadcastToRoom(client.DesignID, joinMsg, client.ClientID)

	slog.Info("client joined", "client", client.ClientID, "design", client.DesignID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.DesignID]
	if !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	close(client.send)

	if len(room.clients) == 0 {
		delete(h.rooms, client.DesignID)
	}
	h.mu.Unlock()

	leaveMsg := &Message{
		Type:     TypeClientLeave,
		ClientID: client.ClientID,
	}
	h.broadcastToRoom(client.DesignID, leaveMsg, "")

	slog.Info("client left", "client", client.ClientID, "design", client.DesignID)
}

func (h *Hub) roomFor(designID string) *Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[designID]
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	room := h.roomFor(sender.DesignID)
	if room == nil {
		return
	}

	switch msg.Type {
	case TypeSelectionSet:
		var p SelectionSetPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			sendError(sender, "invalid selection payload")
			return
		}
		props := room.withEditor(func(ed *editor.Editor) string {
			ed.SetSelection(p.IDs)
			return ed.GetProperties()
		})
		sender.Send(&Message{Type: TypePropsState, Payload: mustMarshal(PropsStatePayload{State: json.RawMessage(props)})})

	case TypeDragBegin:
		var p DragBeginPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			sendError(sender, "invalid drag payload")
			return
		}
		room.withEditor(func(ed *editor.Editor) string {
			ed.BeginDrag(p.ObjectID)
			return ""
		})

	case TypeDragMove:
		var p DragMovePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			sendError(sender, "invalid drag payload")
			return
		}
		var objectID string
		guides := room.withEditor(func(ed *editor.Editor) string {
			ed.DragTo(p.Left, p.Top)
			objectID = ed.ActiveDragID()
			return ed.GetGuides()
		})
		sender.Send(&Message{Type: TypeGuidesState, Payload: mustMarshal(GuidesStatePayload{
			ObjectID: objectID,
			Guides:   json.RawMessage(guides),
		})})
		h.broadcastToRoom(sender.DesignID, &Message{Type: TypeRenderHint}, sender.ClientID)

	case TypeDragEnd, TypeDragCancel:
		room.withEditor(func(ed *editor.Editor) string {
			if msg.Type == TypeDragCancel {
				ed.CancelDrag()
			} else {
				ed.EndDrag()
			}
			return ""
		})
		sender.Send(&Message{Type: TypeGuidesState, Payload: mustMarshal(GuidesStatePayload{
			Guides: json.RawMessage("[]"),
		})})
		h.broadcastToRoom(sender.DesignID, &Message{Type: TypeRenderHint}, sender.ClientID)

	case TypePropSet:
		var p PropSetPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			sendError(sender, "invalid property payload")
			return
		}
		var applyErr error
		props := room.withEditor(func(ed *editor.Editor) string {
			applyErr = ed.ApplyProperty(p.Key, p.Value)
			return ed.GetProperties()
		})
		if applyErr != nil {
			sendError(sender, applyErr.Error())
			return
		}
		sender.Send(&Message{Type: TypePropsState, Payload: mustMarshal(PropsStatePayload{State: json.RawMessage(props)})})
		h.broadcastToRoom(sender.DesignID, &Message{Type: TypeRenderHint}, sender.ClientID)

	case TypeAlignCenters:
		room.withEditor(func(ed *editor.Editor) string {
			ed.AlignCenters()
			return ""
		})
		h.broadcastToRoom(sender.DesignID, &Message{Type: TypeRenderHint}, "")

	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", sender.ClientID)
	}
}

// withEditor serializes editor access for the room.
func (r *Room) withEditor(fn func(*editor.Editor) string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.editor)
}

func (r *Room) docSyncMessage() *Message {
	r.mu.Lock()
	doc := r.editor.Doc()
	canvas, _ := json.Marshal(doc.Canvas())
	objects, _ := json.Marshal(doc.List())
	r.mu.Unlock()

	return &Message{
		Type: TypeDocSync,
		Payload: mustMarshal(DocSyncPayload{
			Canvas:  canvas,
			Objects: objects,
		}),
	}
}

func (h *Hub) broadcastToRoom(designID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[designID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}

func sendError(c *Client, reason string) {
	c.Send(&Message{Type: TypeError, Payload: mustMarshal(ErrorPayload{Reason: reason})})
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshal payload", "error", err)
		return json.RawMessage("{}")
	}
	return data
}
