package snap

import (
	"testing"

	"github.com/sketchdeck/sketchdeck/backend-go/internal/scene"
)

func shape(id string, left, top, width, height float64) scene.Object {
	return scene.Object{
		ID:   id,
		Kind: scene.KindShape,
		Geometry: scene.Geometry{
			Left: left, Top: top, Width: width, Height: height,
			ScaleX: 1, ScaleY: 1,
		},
		Style:   scene.Style{Opacity: 1, BlendMode: scene.BlendNormal},
		Visible: true,
	}
}

func newDoc(t *testing.T, canvas scene.Canvas, objs ...scene.Object) *scene.Document {
	t.Helper()
	doc := scene.NewDocument(canvas)
	for _, o := range objs {
		if err := doc.Add(o); err != nil {
			t.Fatalf("add %s: %v", o.ID, err)
		}
	}
	return doc
}

func TestNewEngineDefaultThreshold(t *testing.T) {
	e := NewEngine(nil, 0)
	if e.Threshold() != DefaultThreshold {
		t.Errorf("got %v, want %v", e.Threshold(), DefaultThreshold)
	}
	e = NewEngine(nil, -3)
	if e.Threshold() != DefaultThreshold {
		t.Errorf("got %v, want %v", e.Threshold(), DefaultThreshold)
	}
	e = NewEngine(nil, 8)
	if e.Threshold() != 8 {
		t.Errorf("got %v, want 8", e.Threshold())
	}
}

func TestSnapUnknownIDAndNilDoc(t *testing.T) {
	var e *Engine
	if got := e.Snap("x"); got.SnappedX || got.SnappedY || got.Guides != nil {
		t.Errorf("nil engine: got %+v", got)
	}

	e = NewEngine(newDoc(t, scene.Canvas{Width: 100, Height: 100}), 5)
	if got := e.Snap("missing"); got.SnappedX || got.SnappedY {
		t.Errorf("unknown id: got %+v", got)
	}
}

func TestSnapSiblingLeftEdge(t *testing.T) {
	// A drag of the 100x50 object to left=103 snaps its left edge to the
	// sibling edge at 100: one vertical guide, nothing on the y axis.
	doc := newDoc(t, scene.Canvas{Width: 1080, Height: 1080},
		shape("b", 100, 400, 80, 80),
		shape("a", 103, 205, 100, 50),
	)
	e := NewEngine(doc, 5)

	res := e.Snap("a")
	if !res.SnappedX {
		t.Fatal("expected an x snap")
	}
	if res.Left != 100 {
		t.Errorf("left: got %v, want 100", res.Left)
	}
	if res.SnappedY {
		t.Error("unexpected y snap")
	}
	if res.Top != 205 {
		t.Errorf("top: got %v, want 205", res.Top)
	}
	if len(res.Guides) != 1 {
		t.Fatalf("guides: got %d, want 1", len(res.Guides))
	}
	g := res.Guides[0]
	if g.Axis != AxisVertical || g.Position != 100 || g.Source != SourceObject {
		t.Errorf("guide: got %+v", g)
	}
}

func TestSnapThresholdIsStrict(t *testing.T) {
	canvas := scene.Canvas{Width: 1080, Height: 1080}

	// Exactly at the threshold distance: no snap.
	doc := newDoc(t, canvas,
		shape("b", 100, 400, 80, 80),
		shape("a", 105, 205, 100, 50),
	)
	res := NewEngine(doc, 5).Snap("a")
	if res.SnappedX {
		t.Error("distance equal to threshold must not snap")
	}

	// One below the threshold: snaps exactly.
	doc = newDoc(t, canvas,
		shape("b", 100, 400, 80, 80),
		shape("a", 104, 205, 100, 50),
	)
	res = NewEngine(doc, 5).Snap("a")
	if !res.SnappedX || res.Left != 100 {
		t.Errorf("got snapped=%v left=%v, want snapped at 100", res.SnappedX, res.Left)
	}
}

func TestSnapCanvasCenterWinsOverSiblings(t *testing.T) {
	// Both the canvas center (500) and a sibling edge (497) are within
	// threshold of the dragged object's center/left; the canvas candidate
	// is tested first and wins the x axis.
	doc := newDoc(t, scene.Canvas{Width: 1000, Height: 1000},
		shape("b", 497, 800, 10, 10),
		shape("a", 448, 100, 100, 50), // centerX = 498
	)
	e := NewEngine(doc, 5)

	res := e.Snap("a")
	if !res.SnappedX {
		t.Fatal("expected an x snap")
	}
	if res.Left != 450 {
		t.Errorf("left: got %v, want 450 (center on 500)", res.Left)
	}
	if len(res.Guides) == 0 || res.Guides[0].Source != SourceCanvas {
		t.Errorf("guide source: got %+v, want canvas", res.Guides)
	}
	if res.Guides[0].Position != 500 {
		t.Errorf("guide position: got %v, want 500", res.Guides[0].Position)
	}
}

func TestSnapFirstSiblingInDocumentOrderWins(t *testing.T) {
	// Two siblings both offer a left-edge candidate within threshold. The
	// earlier one in insertion order wins even though the later one is
	// closer; the engine takes the first match, not the nearest.
	doc := newDoc(t, scene.Canvas{Width: 10000, Height: 10000},
		shape("early", 96, 500, 10, 10),
		shape("late", 99, 700, 10, 10),
		shape("a", 100, 100, 100, 50),
	)
	e := NewEngine(doc, 5)

	res := e.Snap("a")
	if !res.SnappedX {
		t.Fatal("expected an x snap")
	}
	if res.Left != 96 {
		t.Errorf("left: got %v, want 96", res.Left)
	}
}

func TestSnapPairPriorityLeftLeftBeforeLeftRight(t *testing.T) {
	// The sibling's left edge (100) and right edge (102) are both within
	// threshold of the dragged left edge (99). left-left is tested first.
	doc := newDoc(t, scene.Canvas{Width: 10000, Height: 10000},
		shape("b", 100, 500, 2, 80),
		shape("a", 99, 100, 50, 50),
	)
	res := NewEngine(doc, 5).Snap("a")
	if !res.SnappedX || res.Left != 100 {
		t.Errorf("got snapped=%v left=%v, want left edge on 100", res.SnappedX, res.Left)
	}
}

func TestSnapAxesAreIndependent(t *testing.T) {
	// X aligns with one sibling, Y with another; both corrections apply.
	doc := newDoc(t, scene.Canvas{Width: 10000, Height: 10000},
		shape("vert", 200, 900, 10, 10),
		shape("horz", 900, 300, 10, 10),
		shape("a", 202, 303, 50, 50),
	)
	res := NewEngine(doc, 5).Snap("a")
	if !res.SnappedX || res.Left != 200 {
		t.Errorf("x: got snapped=%v left=%v, want 200", res.SnappedX, res.Left)
	}
	if !res.SnappedY || res.Top != 300 {
		t.Errorf("y: got snapped=%v top=%v, want 300", res.SnappedY, res.Top)
	}
	if len(res.Guides) != 2 {
		t.Errorf("guides: got %d, want 2", len(res.Guides))
	}
}

func TestSnapIgnoresHiddenSiblings(t *testing.T) {
	hidden := shape("b", 100, 400, 80, 80)
	hidden.Visible = false
	doc := newDoc(t, scene.Canvas{Width: 10000, Height: 10000},
		hidden,
		shape("a", 103, 205, 100, 50),
	)
	res := NewEngine(doc, 5).Snap("a")
	if res.SnappedX || res.SnappedY {
		t.Errorf("snapped to a hidden sibling: %+v", res)
	}
}

func TestSnapCanvasOnlyWhenNoSiblings(t *testing.T) {
	doc := newDoc(t, scene.Canvas{Width: 1000, Height: 1000},
		shape("a", 452, 473, 100, 50), // center (502, 498)
	)
	res := NewEngine(doc, 5).Snap("a")
	if !res.SnappedX || !res.SnappedY {
		t.Fatalf("expected snaps on both axes: %+v", res)
	}
	if res.Left != 450 || res.Top != 475 {
		t.Errorf("got (%v, %v), want (450, 475)", res.Left, res.Top)
	}
	for _, g := range res.Guides {
		if g.Source != SourceCanvas {
			t.Errorf("guide source: got %v, want canvas", g.Source)
		}
	}
}

func TestSnapHonorsRotatedBounds(t *testing.T) {
	// A 100x50 object rotated 90 degrees about its top-left occupies
	// [left-50, left] horizontally. Its visual left edge, not the raw
	// Left value, is what aligns.
	rotated := shape("a", 153, 100, 100, 50)
	rotated.Geometry.Angle = 90
	doc := newDoc(t, scene.Canvas{Width: 10000, Height: 10000},
		shape("b", 100, 600, 80, 80),
		rotated,
	)
	res := NewEngine(doc, 5).Snap("a")
	if !res.SnappedX {
		t.Fatal("expected an x snap")
	}
	// Visual left = Left-50 = 103; correction of -3 moves Left to 150.
	if res.Left != 150 {
		t.Errorf("left: got %v, want 150", res.Left)
	}
}
