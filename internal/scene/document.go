package scene

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("object not found")

// Canvas is the drawing surface size in canvas coordinates.
type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Document is the scene graph facade the editor core reads and mutates.
// It keeps objects in insertion order; that order is also the z-order and
// the iteration order snap candidates are tested in.
//
// The document is single-threaded by design: it runs inside UI event
// callbacks, so mutation is serialized by the event loop, not by locks.
type Document struct {
	canvas      Canvas
	objects     map[string]*Object
	order       []string
	renderCount int
	onRender    func()
}

// NewDocument creates an empty document with the given canvas size.
func NewDocument(canvas Canvas) *Document {
	return &Document{
		canvas:  canvas,
		objects: make(map[string]*Object),
	}
}

// Canvas returns the canvas dimensions.
func (d *Document) Canvas() Canvas {
	return d.canvas
}

// Add registers an object. Object lifecycle belongs to the host
// (scene-authoring actions); the editor core only reads and mutates.
func (d *Document) Add(obj Object) error {
	if obj.ID == "" {
		return errors.New("object id is empty")
	}
	if _, ok := d.objects[obj.ID]; ok {
		return fmt.Errorf("duplicate object id %q", obj.ID)
	}
	c := obj.Clone()
	d.objects[obj.ID] = &c
	d.order = append(d.order, obj.ID)
	return nil
}

// Remove deletes an object. Unknown ids are a no-op.
func (d *Document) Remove(id string) {
	if _, ok := d.objects[id]; !ok {
		return
	}
	delete(d.objects, id)
	kept := d.order[:0]
	for _, oid := range d.order {
		if oid != id {
			kept = append(kept, oid)
		}
	}
	d.order = kept
}

// Get returns a copy of the object. Mutation goes through SetGeometry
// and SetStyle only.
func (d *Document) Get(id string) (Object, bool) {
	obj, ok := d.objects[id]
	if !ok {
		return Object{}, false
	}
	return obj.Clone(), true
}

// List returns copies of all objects in insertion order.
func (d *Document) List() []Object {
	out := make([]Object, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.objects[id].Clone())
	}
	return out
}

// ListSiblings returns copies of all objects except the excluded one,
// in insertion order.
func (d *Document) ListSiblings(excludingID string) []Object {
	out := make([]Object, 0, len(d.order))
	for _, id := range d.order {
		if id == excludingID {
			continue
		}
		out = append(out, d.objects[id].Clone())
	}
	return out
}

// Len returns the number of objects.
func (d *Document) Len() int {
	return len(d.order)
}

// SetGeometry applies a partial geometry update. Width and height are
// clamped to be non-negative.
func (d *Document) SetGeometry(id string, patch GeometryPatch) error {
	obj, ok := d.objects[id]
	if !ok {
		return fmt.Errorf("set geometry: %w: %s", ErrNotFound, id)
	}
	patch.applyTo(&obj.Geometry)
	return nil
}

// SetStyle applies a partial style update. Opacity is clamped to [0,1];
// attributes the object's kind does not support are silently skipped.
func (d *Document) SetStyle(id string, patch StylePatch) error {
	obj, ok := d.objects[id]
	if !ok {
		return fmt.Errorf("set style: %w: %s", ErrNotFound, id)
	}
	patch.applyTo(obj)
	return nil
}

// SetOnRender registers a host callback invoked on each render request.
func (d *Document) SetOnRender(fn func()) {
	d.onRender = fn
}

// RequestRender signals the host that the scene must be redrawn. It does
// not render anything itself.
func (d *Document) RequestRender() {
	d.renderCount++
	if d.onRender != nil {
		d.onRender()
	}
}

// RenderCount returns the number of render requests so far.
func (d *Document) RenderCount() int {
	return d.renderCount
}
