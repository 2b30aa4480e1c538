package geom

import (
	"math"

	"github.com/sketchdeck/sketchdeck/backend-go/internal/scene"
)

// Bounds is the axis-aligned bounding rectangle of an object after its
// full transform. It is derived on every query and never stored.
type Bounds struct {
	Left    float64 `json:"left"`
	Top     float64 `json:"top"`
	Right   float64 `json:"right"`
	Bottom  float64 `json:"bottom"`
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// FromRect builds Bounds from a top-left position and size.
func FromRect(left, top, width, height float64) Bounds {
	return Bounds{
		Left:    left,
		Top:     top,
		Right:   left + width,
		Bottom:  top + height,
		CenterX: left + width/2,
		CenterY: top + height/2,
		Width:   width,
		Height:  height,
	}
}

// IsEmpty reports whether the bounds have zero or negative area.
func (b Bounds) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Contains checks if a point is inside the bounds.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.Left && x <= b.Right && y >= b.Top && y <= b.Bottom
}

// Union returns the smallest bounds containing both.
func (b Bounds) Union(other Bounds) Bounds {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	left := min(b.Left, other.Left)
	top := min(b.Top, other.Top)
	right := max(b.Right, other.Right)
	bottom := max(b.Bottom, other.Bottom)
	return FromRect(left, top, right-left, bottom-top)
}

// BoundsOf computes the bounding rectangle of an object's geometry after
// applying scale and rotation. The scaled rect is rotated about the
// object's top-left origin and translated to (Left, Top), matching the
// renderer's hit-testing rectangle. Pure; callable concurrently.
func BoundsOf(g scene.Geometry) Bounds {
	w := g.Width * g.ScaleX
	h := g.Height * g.ScaleY

	m := Translate(g.Left, g.Top).Multiply(RotateDegrees(g.Angle))

	corners := [4][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}}

	var minX, minY, maxX, maxY float64
	for i, c := range corners {
		x, y := m.TransformPoint(c[0], c[1])
		if i == 0 {
			minX, maxX = x, x
			minY, maxY = y, y
			continue
		}
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}

	return FromRect(minX, minY, maxX-minX, maxY-minY)
}
