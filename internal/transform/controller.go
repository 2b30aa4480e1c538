// Package transform wires the pointer drag lifecycle to the snap engine
// and the scene document: raw positions go in, snapped positions are
// written back, and guides are kept alive for the duration of the drag.
package transform

import (
	"github.com/sketchdeck/sketchdeck/backend-go/internal/scene"
	"github.com/sketchdeck/sketchdeck/backend-go/internal/snap"
)

// Controller tracks at most one active drag. It receives its document and
// snap engine at construction and never reaches into ambient state.
type Controller struct {
	doc      *scene.Document
	snapper  *snap.Engine
	activeID string
	guides   []snap.Guide
}

// NewController creates a drag controller over the document.
func NewController(doc *scene.Document, snapper *snap.Engine) *Controller {
	return &Controller{doc: doc, snapper: snapper}
}

// BeginDrag starts a drag for the object. Unknown ids are ignored; a
// drag already in progress is replaced.
func (c *Controller) BeginDrag(id string) {
	if c.doc == nil {
		return
	}
	if _, ok := c.doc.Get(id); !ok {
		return
	}
	c.activeID = id
	c.guides = nil
}

// DragTo applies the raw pointer-tracked position, runs a snap pass and
// writes the corrected position back before the frame renders. Called
// once per pointer-move event.
func (c *Controller) DragTo(left, top float64) {
	if c.activeID == "" {
		return
	}

	c.doc.SetGeometry(c.activeID, scene.GeometryPatch{Left: &left, Top: &top})

	res := c.snapper.Snap(c.activeID)
	if res.SnappedX || res.SnappedY {
		c.doc.SetGeometry(c.activeID, scene.GeometryPatch{Left: &res.Left, Top: &res.Top})
	}
	c.guides = res.Guides

	c.doc.RequestRender()
}

// EndDrag finishes the drag: guides are cleared and snapping stops until
// the next BeginDrag.
func (c *Controller) EndDrag() {
	if c.activeID == "" {
		return
	}
	c.activeID = ""
	c.guides = nil
	c.doc.RequestRender()
}

// CancelDrag handles an abandoned drag (pointer left the canvas). It is
// identical to EndDrag so no stale guides stay rendered.
func (c *Controller) CancelDrag() {
	c.EndDrag()
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool {
	return c.activeID != ""
}

// ActiveID returns the id of the object being dragged, or "".
func (c *Controller) ActiveID() string {
	return c.activeID
}

// Guides returns the guides produced by the latest snap pass. Empty
// outside a drag or when nothing is aligned.
func (c *Controller) Guides() []snap.Guide {
	return c.guides
}
