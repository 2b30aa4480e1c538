// Package panel keeps an editing panel consistent with the current
// selection: it derives displayed values from the selected object, tracks
// the user's not-yet-settled edits as overrides, and forwards committed
// edits back through the scene document.
package panel

import (
	"math"

	"github.com/sketchdeck/sketchdeck/backend-go/internal/geom"
	"github.com/sketchdeck/sketchdeck/backend-go/internal/scene"
)

// PropertyChangeFunc is notified for every committed edit, e.g. so the
// host can mark the design dirty. Saving itself is the host's concern.
type PropertyChangeFunc func(key string, value any)

// Reconciler produces the panel view-model for the current selection and
// applies panel edits back to the document.
type Reconciler struct {
	doc       *scene.Document
	selection []string
	overrides Patch

	aspectLock bool
	// aspectRatio is captured once when the selection changes, so repeated
	// locked edits do not compound rounding drift within one session.
	aspectRatio float64

	onChange PropertyChangeFunc
}

// NewReconciler creates a reconciler over the document.
func NewReconciler(doc *scene.Document) *Reconciler {
	return &Reconciler{doc: doc, aspectRatio: 1}
}

// SetOnPropertyChange registers the host's committed-edit callback.
func (r *Reconciler) SetOnPropertyChange(fn PropertyChangeFunc) {
	r.onChange = fn
}

// SetSelection replaces the selection. Overrides are cleared: a new
// selection means a new derived baseline. The aspect ratio for locked
// resizing is captured here, from the object's current size.
func (r *Reconciler) SetSelection(ids []string) {
	r.selection = append([]string(nil), ids...)
	r.overrides = Patch{}
	r.aspectRatio = 1

	if obj, ok := r.single(); ok {
		if obj.Geometry.Height != 0 {
			r.aspectRatio = obj.Geometry.Width / obj.Geometry.Height
		}
	}
}

// Selection returns the selected object ids in order.
func (r *Reconciler) Selection() []string {
	return append([]string(nil), r.selection...)
}

// SetAspectLock toggles the width/height coupling for resize edits.
func (r *Reconciler) SetAspectLock(on bool) {
	r.aspectLock = on
}

// AspectLock reports whether locked-aspect resize is active.
func (r *Reconciler) AspectLock() bool {
	return r.aspectLock
}

// AspectRatio returns the ratio captured at selection time.
func (r *Reconciler) AspectRatio() float64 {
	return r.aspectRatio
}

// State computes the panel view-model. Derived and Merged are present
// only for a single-object selection; a multi selection exposes just the
// batch subset (opacity, selection bounds, align centers).
func (r *Reconciler) State() State {
	st := State{Selection: r.Selection(), Overrides: r.overrides}

	if obj, ok := r.single(); ok {
		d := derive(obj)
		m := merge(d, r.overrides)
		st.Derived = &d
		st.Merged = &m
	}

	return st
}

func (r *Reconciler) single() (scene.Object, bool) {
	if len(r.selection) != 1 || r.doc == nil {
		return scene.Object{}, false
	}
	return r.doc.Get(r.selection[0])
}

func (r *Reconciler) multi() bool {
	return len(r.selection) > 1
}

func (r *Reconciler) emit(key string, value any) {
	if r.onChange != nil {
		r.onChange(key, value)
	}
}

// --- Geometry edits (single selection) ---

// SetLeft commits a new x position.
func (r *Reconciler) SetLeft(v float64) {
	obj, ok := r.single()
	if !ok {
		return
	}
	r.overrides.Left = &v
	r.doc.SetGeometry(obj.ID, scene.GeometryPatch{Left: &v})
	r.emit("left", v)
	r.doc.RequestRender()
}

// SetTop commits a new y position.
func (r *Reconciler) SetTop(v float64) {
	obj, ok := r.single()
	if !ok {
		return
	}
	r.overrides.Top = &v
	r.doc.SetGeometry(obj.ID, scene.GeometryPatch{Top: &v})
	r.emit("top", v)
	r.doc.RequestRender()
}

// SetAngle commits a new rotation in degrees.
func (r *Reconciler) SetAngle(v float64) {
	obj, ok := r.single()
	if !ok {
		return
	}
	r.overrides.Angle = &v
	r.doc.SetGeometry(obj.ID, scene.GeometryPatch{Angle: &v})
	r.emit("angle", v)
	r.doc.RequestRender()
}

// SetWidth commits a new width. With aspect lock active the height is
// recomputed from the selection-time ratio and both values are forwarded
// in the same update, so the object never passes through an inconsistent
// intermediate aspect ratio.
func (r *Reconciler) SetWidth(w float64) {
	obj, ok := r.single()
	if !ok {
		return
	}

	patch := scene.GeometryPatch{Width: &w}
	r.overrides.Width = &w

	if r.aspectLock {
		h := math.Round(w / r.aspectRatio)
		r.overrides.Height = &h
		patch.Height = &h
	}

	r.doc.SetGeometry(obj.ID, patch)
	r.emit("width", w)
	if patch.Height != nil {
		r.emit("height", *patch.Height)
	}
	r.doc.RequestRender()
}

// SetHeight commits a new height, coupling the width when aspect lock is
// active. The ratio captured at selection time is used, not one derived
// from the just-updated dimensions.
func (r *Reconciler) SetHeight(h float64) {
	obj, ok := r.single()
	if !ok {
		return
	}

	patch := scene.GeometryPatch{Height: &h}
	r.overrides.Height = &h

	if r.aspectLock {
		w := math.Round(h * r.aspectRatio)
		r.overrides.Width = &w
		patch.Width = &w
	}

	r.doc.SetGeometry(obj.ID, patch)
	r.emit("height", h)
	if patch.Width != nil {
		r.emit("width", *patch.Width)
	}
	r.doc.RequestRender()
}

// --- Style edits (single selection) ---

// SetFill commits a new fill color (doubles as text color).
func (r *Reconciler) SetFill(v string) {
	obj, ok := r.single()
	if !ok {
		return
	}
	r.overrides.Fill = &v
	r.doc.SetStyle(obj.ID, scene.StylePatch{Fill: &v})
	r.emit("fill", v)
	r.doc.RequestRender()
}

// SetStroke commits a new stroke color.
func (r *Reconciler) SetStroke(v string) {
	obj, ok := r.single()
	if !ok {
		return
	}
	r.overrides.Stroke = &v
	r.doc.SetStyle(obj.ID, scene.StylePatch{Stroke: &v})
	r.emit("stroke", v)
	r.doc.RequestRender()
}

// SetStrokeWidth commits a new stroke width.
func (r *Reconciler) SetStrokeWidth(v float64) {
	obj, ok := r.single()
	if !ok {
		return
	}
	r.overrides.StrokeWidth = &v
	r.doc.SetStyle(obj.ID, scene.StylePatch{StrokeWidth: &v})
	r.emit("strokeWidth", v)
	r.doc.RequestRender()
}

// SetCornerRadius commits the single corner radius control, writing rx
// and ry symmetrically.
func (r *Reconciler) SetCornerRadius(v float64) {
	obj, ok := r.single()
	if !ok {
		return
	}
	r.overrides.CornerRadius = &v
	r.doc.SetStyle(obj.ID, scene.StylePatch{RX: &v, RY: &v})
	r.emit("cornerRadius", v)
	r.doc.RequestRender()
}

// SetBlendMode commits a new blend mode. Invalid modes are ignored.
func (r *Reconciler) SetBlendMode(v scene.BlendMode) {
	obj, ok := r.single()
	if !ok || !v.Valid() {
		return
	}
	r.overrides.BlendMode = &v
	r.doc.SetStyle(obj.ID, scene.StylePatch{BlendMode: &v})
	r.emit("blendMode", string(v))
	r.doc.RequestRender()
}

// SetOpacityPercent commits a new opacity given as an integer percentage.
// For a single selection the edit is recorded as an override; for a multi
// selection it applies uniformly to every selected object and leaves the
// single-object override state untouched.
func (r *Reconciler) SetOpacityPercent(p int) {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	frac := OpacityFromPercent(p)

	if r.multi() {
		for _, id := range r.selection {
			// Unknown ids in a batch are skipped, not fatal.
			r.doc.SetStyle(id, scene.StylePatch{Opacity: &frac})
		}
		r.emit("opacity", frac)
		r.doc.RequestRender()
		return
	}

	obj, ok := r.single()
	if !ok {
		return
	}
	r.overrides.OpacityPercent = &p
	r.doc.SetStyle(obj.ID, scene.StylePatch{Opacity: &frac})
	r.emit("opacity", frac)
	r.doc.RequestRender()
}

// --- Shadow edits (single selection) ---

// SetShadowEnabled toggles the drop shadow. Disabling removes the shadow
// attribute entirely; enabling attaches it from whichever sub-values are
// currently overridden or derived, with panel defaults for the rest.
func (r *Reconciler) SetShadowEnabled(on bool) {
	obj, ok := r.single()
	if !ok {
		return
	}
	r.overrides.ShadowEnabled = &on

	if !on {
		r.doc.SetStyle(obj.ID, scene.StylePatch{Shadow: &scene.ShadowPatch{Shadow: nil}})
		r.emit("shadowEnabled", false)
		r.doc.RequestRender()
		return
	}

	sh := r.shadowFromState(obj)
	r.doc.SetStyle(obj.ID, scene.StylePatch{Shadow: &scene.ShadowPatch{Shadow: &sh}})
	r.emit("shadowEnabled", true)
	r.doc.RequestRender()
}

// SetShadowColor commits a new shadow color. When the shadow is currently
// disabled the value is kept as an override and applied at enable time.
func (r *Reconciler) SetShadowColor(v string) {
	r.setShadowField(func(o *Patch) { o.ShadowColor = &v }, func(sh *scene.Shadow) { sh.Color = v }, "shadowColor", v)
}

// SetShadowOffsetX commits a new shadow x offset.
func (r *Reconciler) SetShadowOffsetX(v float64) {
	r.setShadowField(func(o *Patch) { o.ShadowOffsetX = &v }, func(sh *scene.Shadow) { sh.OffsetX = v }, "shadowOffsetX", v)
}

// SetShadowOffsetY commits a new shadow y offset.
func (r *Reconciler) SetShadowOffsetY(v float64) {
	r.setShadowField(func(o *Patch) { o.ShadowOffsetY = &v }, func(sh *scene.Shadow) { sh.OffsetY = v }, "shadowOffsetY", v)
}

// SetShadowBlur commits a new shadow blur radius.
func (r *Reconciler) SetShadowBlur(v float64) {
	r.setShadowField(func(o *Patch) { o.ShadowBlur = &v }, func(sh *scene.Shadow) { sh.Blur = v }, "shadowBlur", v)
}

func (r *Reconciler) setShadowField(record func(*Patch), apply func(*scene.Shadow), key string, value any) {
	obj, ok := r.single()
	if !ok {
		return
	}
	record(&r.overrides)

	if obj.Style.Shadow != nil {
		sh := r.shadowFromState(obj)
		apply(&sh)
		r.doc.SetStyle(obj.ID, scene.StylePatch{Shadow: &scene.ShadowPatch{Shadow: &sh}})
	}

	r.emit(key, value)
	r.doc.RequestRender()
}

// shadowFromState resolves the shadow sub-values to attach: overrides
// win over the object's current shadow, and anything never set falls
// back to the panel defaults.
func (r *Reconciler) shadowFromState(obj scene.Object) scene.Shadow {
	sh := scene.Shadow{
		Color:   DefaultShadowColor,
		OffsetX: DefaultShadowOffset,
		OffsetY: DefaultShadowOffset,
		Blur:    DefaultShadowBlur,
	}

	if cur := obj.Style.Shadow; cur != nil {
		sh = *cur
	}

	o := r.overrides
	if o.ShadowColor != nil {
		sh.Color = *o.ShadowColor
	}
	if o.ShadowOffsetX != nil {
		sh.OffsetX = *o.ShadowOffsetX
	}
	if o.ShadowOffsetY != nil {
		sh.OffsetY = *o.ShadowOffsetY
	}
	if o.ShadowBlur != nil {
		sh.Blur = *o.ShadowBlur
	}

	return sh
}

// --- Text edits (single selection; skipped for non-text objects) ---

// SetFontSize commits a new font size.
func (r *Reconciler) SetFontSize(v float64) {
	r.setTextField(func(o *Patch) { o.FontSize = &v }, scene.TextPatch{FontSize: &v}, "fontSize", v)
}

// SetFontFamily commits a new font family.
func (r *Reconciler) SetFontFamily(v string) {
	r.setTextField(func(o *Patch) { o.FontFamily = &v }, scene.TextPatch{FontFamily: &v}, "fontFamily", v)
}

// SetFontWeight commits a new font weight.
func (r *Reconciler) SetFontWeight(v string) {
	r.setTextField(func(o *Patch) { o.FontWeight = &v }, scene.TextPatch{FontWeight: &v}, "fontWeight", v)
}

// SetFontStyle commits a new font style.
func (r *Reconciler) SetFontStyle(v string) {
	r.setTextField(func(o *Patch) { o.FontStyle = &v }, scene.TextPatch{FontStyle: &v}, "fontStyle", v)
}

// SetTextAlign commits a new text alignment.
func (r *Reconciler) SetTextAlign(v string) {
	r.setTextField(func(o *Patch) { o.TextAlign = &v }, scene.TextPatch{TextAlign: &v}, "textAlign", v)
}

// SetTextDecoration commits a new text decoration.
func (r *Reconciler) SetTextDecoration(v string) {
	r.setTextField(func(o *Patch) { o.TextDecoration = &v }, scene.TextPatch{TextDecoration: &v}, "textDecoration", v)
}

// SetLineHeight commits a new line height.
func (r *Reconciler) SetLineHeight(v float64) {
	r.setTextField(func(o *Patch) { o.LineHeight = &v }, scene.TextPatch{LineHeight: &v}, "lineHeight", v)
}

// SetLetterSpacing commits a new letter spacing.
func (r *Reconciler) SetLetterSpacing(v float64) {
	r.setTextField(func(o *Patch) { o.LetterSpacing = &v }, scene.TextPatch{LetterSpacing: &v}, "letterSpacing", v)
}

func (r *Reconciler) setTextField(record func(*Patch), tp scene.TextPatch, key string, value any) {
	obj, ok := r.single()
	if !ok || obj.Kind != scene.KindText {
		return
	}
	record(&r.overrides)
	r.doc.SetStyle(obj.ID, scene.StylePatch{Text: &tp})
	r.emit(key, value)
	r.doc.RequestRender()
}

// --- Multi-selection operations ---

// SelectionBounds returns the union of the selected objects' bounds.
// Unknown ids are skipped.
func (r *Reconciler) SelectionBounds() geom.Bounds {
	var out geom.Bounds
	first := true
	for _, id := range r.selection {
		obj, ok := r.doc.Get(id)
		if !ok {
			continue
		}
		b := geom.BoundsOf(obj.Geometry)
		if first {
			out = b
			first = false
		} else {
			out = out.Union(b)
		}
	}
	return out
}

// AlignCenters moves every selected object so its bounds center matches
// the combined selection bounds center on both axes.
func (r *Reconciler) AlignCenters() {
	if !r.multi() {
		return
	}

	target := r.SelectionBounds()
	if target.IsEmpty() {
		return
	}

	for _, id := range r.selection {
		obj, ok := r.doc.Get(id)
		if !ok {
			continue
		}
		b := geom.BoundsOf(obj.Geometry)
		left := obj.Geometry.Left + (target.CenterX - b.CenterX)
		top := obj.Geometry.Top + (target.CenterY - b.CenterY)
		r.doc.SetGeometry(id, scene.GeometryPatch{Left: &left, Top: &top})
	}

	r.emit("align", "centers")
	r.doc.RequestRender()
}
