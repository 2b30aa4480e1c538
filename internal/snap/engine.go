// Package snap finds positional corrections that align a dragged object
// with the canvas center or with sibling edges/centers, and produces the
// guide lines to display while the alignment holds.
package snap

import (
	"math"

	"github.com/sketchdeck/sketchdeck/backend-go/internal/geom"
	"github.com/sketchdeck/sketchdeck/backend-go/internal/scene"
)

// DefaultThreshold is the snap distance in canvas pixels.
const DefaultThreshold = 5

// Axis is the orientation of a guide line.
type Axis string

const (
	AxisVertical   Axis = "vertical"
	AxisHorizontal Axis = "horizontal"
)

// Source distinguishes canvas-center guides from sibling guides so the
// caller can render them in distinct colors.
type Source string

const (
	SourceCanvas Source = "canvas"
	SourceObject Source = "object"
)

// Guide is a transient alignment line shown during a drag.
type Guide struct {
	Axis     Axis    `json:"axis"`
	Position float64 `json:"position"`
	Source   Source  `json:"source"`
}

// Result is the outcome of one snap pass: the corrected position for the
// dragged object and the guides to render. When neither axis snapped,
// Left/Top are the object's current position unchanged.
type Result struct {
	Left     float64 `json:"left"`
	Top      float64 `json:"top"`
	SnappedX bool    `json:"snappedX"`
	SnappedY bool    `json:"snappedY"`
	Guides   []Guide `json:"guides,omitempty"`
}

// Engine scans a document for alignment candidates. It holds no per-drag
// state; each Snap call is a complete pass.
type Engine struct {
	doc       *scene.Document
	threshold float64
}

// NewEngine creates a snap engine over the document. A non-positive
// threshold falls back to DefaultThreshold.
func NewEngine(doc *scene.Document, threshold float64) *Engine {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Engine{doc: doc, threshold: threshold}
}

// Threshold returns the configured snap distance.
func (e *Engine) Threshold() float64 {
	return e.threshold
}

// Snap computes the best positional correction for the object at its
// current position. Candidates are tested in a fixed order: the canvas
// center first, then each sibling in document order with the pair order
// left-left, left-right, right-left, right-right, center-center per axis.
// The first candidate within threshold wins per axis, independently;
// the engine does not hunt for the globally closest match.
//
// A nil document or unknown id yields a zero-value no-snap result.
func (e *Engine) Snap(id string) Result {
	if e == nil || e.doc == nil {
		return Result{}
	}
	obj, ok := e.doc.Get(id)
	if !ok {
		return Result{}
	}

	moving := geom.BoundsOf(obj.Geometry)
	res := Result{Left: obj.Geometry.Left, Top: obj.Geometry.Top}

	canvas := e.doc.Canvas()
	centerX := canvas.Width / 2
	centerY := canvas.Height / 2

	if canvas.Width > 0 && math.Abs(moving.CenterX-centerX) < e.threshold {
		res.Left += centerX - moving.CenterX
		res.SnappedX = true
		res.Guides = append(res.Guides, Guide{Axis: AxisVertical, Position: centerX, Source: SourceCanvas})
	}
	if canvas.Height > 0 && math.Abs(moving.CenterY-centerY) < e.threshold {
		res.Top += centerY - moving.CenterY
		res.SnappedY = true
		res.Guides = append(res.Guides, Guide{Axis: AxisHorizontal, Position: centerY, Source: SourceCanvas})
	}

	for _, sib := range e.doc.ListSiblings(id) {
		if res.SnappedX && res.SnappedY {
			break
		}
		if !sib.Visible {
			continue
		}
		sb := geom.BoundsOf(sib.Geometry)

		if !res.SnappedX {
			pairs := [5][2]float64{
				{moving.Left, sb.Left},
				{moving.Left, sb.Right},
				{moving.Right, sb.Left},
				{moving.Right, sb.Right},
				{moving.CenterX, sb.CenterX},
			}
			for _, p := range pairs {
				if math.Abs(p[0]-p[1]) < e.threshold {
					res.Left += p[1] - p[0]
					res.SnappedX = true
					res.Guides = append(res.Guides, Guide{Axis: AxisVertical, Position: p[1], Source: SourceObject})
					break
				}
			}
		}

		if !res.SnappedY {
			pairs := [5][2]float64{
				{moving.Top, sb.Top},
				{moving.Top, sb.Bottom},
				{moving.Bottom, sb.Top},
				{moving.Bottom, sb.Bottom},
				{moving.CenterY, sb.CenterY},
			}
			for _, p := range pairs {
				if math.Abs(p[0]-p[1]) < e.threshold {
					res.Top += p[1] - p[0]
					res.SnappedY = true
					res.Guides = append(res.Guides, Guide{Axis: AxisHorizontal, Position: p[1], Source: SourceObject})
					break
				}
			}
		}
	}

	return res
}
