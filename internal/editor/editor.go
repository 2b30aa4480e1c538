// Package editor wires selection, snapping, drag handling and property
// reconciliation over one scene document, and exposes the command/query
// surface the transports (WebSocket session, wasm) drive.
package editor

import (
	"encoding/json"
	"fmt"

	"github.com/sketchdeck/sketchdeck/backend-go/internal/geom"
	"github.com/sketchdeck/sketchdeck/backend-go/internal/panel"
	"github.com/sketchdeck/sketchdeck/backend-go/internal/scene"
	"github.com/sketchdeck/sketchdeck/backend-go/internal/snap"
	"github.com/sketchdeck/sketchdeck/backend-go/internal/transform"
)

// Editor owns the per-session editing state. Commands mutate, queries
// return JSON for the frontend.
type Editor struct {
	doc       *scene.Document
	selection []string

	snapper *snap.Engine
	drag    *transform.Controller
	panel   *panel.Reconciler
}

// New creates an editor over the document. A non-positive snapThreshold
// falls back to the engine default.
func New(doc *scene.Document, snapThreshold float64) *Editor {
	snapper := snap.NewEngine(doc, snapThreshold)
	return &Editor{
		doc:     doc,
		snapper: snapper,
		drag:    transform.NewController(doc, snapper),
		panel:   panel.NewReconciler(doc),
	}
}

// Doc returns the underlying document.
func (e *Editor) Doc() *scene.Document {
	return e.doc
}

// Panel returns the property reconciler.
func (e *Editor) Panel() *panel.Reconciler {
	return e.panel
}

// --- Commands (frontend → backend) ---

// SetSelection replaces the selected object ids. The panel's override
// state is reset against the new derived baseline.
func (e *Editor) SetSelection(ids []string) {
	e.selection = ids
	e.panel.SetSelection(ids)
}

// BeginDrag starts dragging an object.
func (e *Editor) BeginDrag(id string) {
	e.drag.BeginDrag(id)
}

// DragTo moves the active drag to a new raw position; the snapped
// position is written back before the frame renders.
func (e *Editor) DragTo(left, top float64) {
	e.drag.DragTo(left, top)
}

// EndDrag finishes the active drag and clears guides.
func (e *Editor) EndDrag() {
	e.drag.EndDrag()
}

// CancelDrag abandons the active drag (pointer left the canvas).
// Identical to EndDrag.
func (e *Editor) CancelDrag() {
	e.drag.CancelDrag()
}

// SetAspectLock toggles locked-aspect resizing in the panel.
func (e *Editor) SetAspectLock(on bool) {
	e.panel.SetAspectLock(on)
}

// AlignCenters aligns the centers of a multi selection.
func (e *Editor) AlignCenters() {
	e.panel.AlignCenters()
}

// ApplyProperty dispatches a panel edit arriving over the wire to the
// typed reconciler setters. Unknown keys are an error; a value of the
// wrong shape yields a generic decode error.
func (e *Editor) ApplyProperty(key string, raw json.RawMessage) error {
	switch key {
	case "left", "top", "width", "height", "angle",
		"strokeWidth", "cornerRadius",
		"shadowOffsetX", "shadowOffsetY", "shadowBlur",
		"fontSize", "lineHeight", "letterSpacing":
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("property %s: %w", key, err)
		}
		switch key {
		case "left":
			e.panel.SetLeft(v)
		case "top":
			e.panel.SetTop(v)
		case "width":
			e.panel.SetWidth(v)
		case "height":
			e.panel.SetHeight(v)
		case "angle":
			e.panel.SetAngle(v)
		case "strokeWidth":
			e.panel.SetStrokeWidth(v)
		case "cornerRadius":
			e.panel.SetCornerRadius(v)
		case "shadowOffsetX":
			e.panel.SetShadowOffsetX(v)
		case "shadowOffsetY":
			e.panel.SetShadowOffsetY(v)
		case "shadowBlur":
			e.panel.SetShadowBlur(v)
		case "fontSize":
			e.panel.SetFontSize(v)
		case "lineHeight":
			e.panel.SetLineHeight(v)
		case "letterSpacing":
			e.panel.SetLetterSpacing(v)
		}
		return nil

	case "opacity":
		var p int
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("property %s: %w", key, err)
		}
		e.panel.SetOpacityPercent(p)
		return nil

	case "fill", "stroke", "blendMode", "shadowColor",
		"fontFamily", "fontWeight", "fontStyle", "textAlign", "textDecoration":
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("property %s: %w", key, err)
		}
		switch key {
		case "fill":
			e.panel.SetFill(v)
		case "stroke":
			e.panel.SetStroke(v)
		case "blendMode":
			e.panel.SetBlendMode(scene.BlendMode(v))
		case "shadowColor":
			e.panel.SetShadowColor(v)
		case "fontFamily":
			e.panel.SetFontFamily(v)
		case "fontWeight":
			e.panel.SetFontWeight(v)
		case "fontStyle":
			e.panel.SetFontStyle(v)
		case "textAlign":
			e.panel.SetTextAlign(v)
		case "textDecoration":
			e.panel.SetTextDecoration(v)
		}
		return nil

	case "shadowEnabled", "aspectLock":
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("property %s: %w", key, err)
		}
		if key == "shadowEnabled" {
			e.panel.SetShadowEnabled(v)
		} else {
			e.panel.SetAspectLock(v)
		}
		return nil
	}

	return fmt.Errorf("unknown property %q", key)
}

// --- Queries (frontend ← backend) ---

// GetSelection returns the current selection as JSON.
func (e *Editor) GetSelection() string {
	data, _ := json.Marshal(e.selection)
	return string(data)
}

// GetGuides returns the active alignment guides as JSON.
func (e *Editor) GetGuides() string {
	guides := e.drag.Guides()
	if guides == nil {
		return "[]"
	}
	data, _ := json.Marshal(guides)
	return string(data)
}

// GetProperties returns the panel view-model as JSON.
func (e *Editor) GetProperties() string {
	data, _ := json.Marshal(e.panel.State())
	return string(data)
}

// GetSelectionBounds returns the combined bounds of the selection as JSON.
func (e *Editor) GetSelectionBounds() string {
	var bounds geom.Bounds
	first := true
	for _, id := range e.selection {
		obj, ok := e.doc.Get(id)
		if !ok {
			continue
		}
		b := geom.BoundsOf(obj.Geometry)
		if first {
			bounds = b
			first = false
		} else {
			bounds = bounds.Union(b)
		}
	}
	data, _ := json.Marshal(bounds)
	return string(data)
}

// HitTest returns the id of the topmost visible object whose bounds
// contain the point, or "". Later objects are on top.
func (e *Editor) HitTest(x, y float64) string {
	objects := e.doc.List()
	for i := len(objects) - 1; i >= 0; i-- {
		obj := objects[i]
		if !obj.Visible {
			continue
		}
		b := geom.BoundsOf(obj.Geometry)
		if !b.IsEmpty() && b.Contains(x, y) {
			return obj.ID
		}
	}
	return ""
}

// Dragging reports whether a drag is in progress.
func (e *Editor) Dragging() bool {
	return e.drag.Dragging()
}

// ActiveDragID returns the id of the object being dragged, or "".
func (e *Editor) ActiveDragID() string {
	return e.drag.ActiveID()
}

// RenderCount returns the number of render requests issued so far.
func (e *Editor) RenderCount() int {
	return e.doc.RenderCount()
}
