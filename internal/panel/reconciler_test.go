package panel

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
		Style:   scene.Style{Fill: "#ff0000", Opacity: 1, BlendMode: scene.BlendNormal},
		Visible: true,
	}
}

func textObject(id string) scene.Object {
	o := shape(id, 0, 0, 200, 40)
	o.Kind = scene.KindText
	o.Text = &scene.TextAttrs{FontSize: 16, FontFamily: "Inter"}
	return o
}

func newPanel(t *testing.T, objs ...scene.Object) (*Reconciler, *scene.Document) {
	t.Helper()
	doc := scene.NewDocument(scene.Canvas{Width: 1080, Height: 1080})
	for _, o := range objs {
		if err := doc.Add(o); err != nil {
			t.Fatalf("add %s: %v", o.ID, err)
		}
	}
	return NewReconciler(doc), doc
}

func TestStateEmptySelection(t *testing.T) {
	r, _ := newPanel(t, shape("a", 0, 0, 10, 10))
	st := r.State()
	if st.Derived != nil || st.Merged != nil {
		t.Error("derived view present without a selection")
	}
}

func TestDerivedReflectsObject(t *testing.T) {
	obj := shape("a", 10, 20, 100, 50)
	obj.Style.Opacity = 0.37
	obj.Style.RX = 8
	r, _ := newPanel(t, obj)
	r.SetSelection([]string{"a"})

	st := r.State()
	if st.Derived == nil {
		t.Fatal("no derived view")
	}
	d := st.Derived
	if d.Left != 10 || d.Top != 20 || d.Width != 100 || d.Height != 50 {
		t.Errorf("geometry: %+v", d)
	}
	if d.Fill != "#ff0000" {
		t.Errorf("fill: got %s", d.Fill)
	}
	if d.CornerRadius != 8 {
		t.Errorf("corner radius: got %v, want 8", d.CornerRadius)
	}
	if d.OpacityPercent != 37 {
		t.Errorf("opacity: got %d, want 37", d.OpacityPercent)
	}
	if d.ShadowEnabled {
		t.Error("shadow reported enabled without one attached")
	}
}

func TestDerivedFallsBackToDefaults(t *testing.T) {
	obj := shape("a", 0, 0, 10, 10)
	obj.Style.Fill = ""
	obj.Style.BlendMode = scene.BlendMode("bogus")
	r, _ := newPanel(t, obj)
	r.SetSelection([]string{"a"})

	d := r.State().Derived
	if d.Fill != DefaultFill {
		t.Errorf("fill: got %s, want %s", d.Fill, DefaultFill)
	}
	if d.BlendMode != DefaultBlendMode {
		t.Errorf("blend mode: got %s, want %s", d.BlendMode, DefaultBlendMode)
	}
	// A shape still shows text controls with neutral defaults.
	if d.FontSize != DefaultFontSize || d.FontFamily != DefaultFontFamily {
		t.Errorf("text defaults: got %v / %s", d.FontSize, d.FontFamily)
	}
}

func TestOverridesClearedOnSelectionChange(t *testing.T) {
	r, _ := newPanel(t, shape("a", 0, 0, 100, 50), shape("b", 0, 0, 30, 30))
	r.SetSelection([]string{"a"})
	r.SetFill("#123456")

	if r.State().Overrides.Fill == nil {
		t.Fatal("override not recorded")
	}

	r.SetSelection([]string{"b"})
	if r.State().Overrides.Fill != nil {
		t.Error("override survived a selection change")
	}
}

func TestMergedOverlaysOverrides(t *testing.T) {
	r, _ := newPanel(t, shape("a", 10, 20, 100, 50))
	r.SetSelection([]string{"a"})
	r.SetLeft(77)

	st := r.State()
	if st.Merged.Left != 77 {
		t.Errorf("merged left: got %v, want 77", st.Merged.Left)
	}
	// The edit was also forwarded, so derived agrees.
	if st.Derived.Left != 77 {
		t.Errorf("derived left: got %v, want 77", st.Derived.Left)
	}
}

func TestAspectLockCouplesDimensions(t *testing.T) {
	r, doc := newPanel(t, shape("a", 0, 0, 200, 100)) // ratio 2
	r.SetSelection([]string{"a"})
	r.SetAspectLock(true)

	if r.AspectRatio() != 2 {
		t.Fatalf("ratio: got %v, want 2", r.AspectRatio())
	}

	r.SetWidth(200)
	obj, _ := doc.Get("a")
	if obj.Geometry.Width != 200 || obj.Geometry.Height != 100 {
		t.Errorf("after width edit: got (%v, %v), want (200, 100)", obj.Geometry.Width, obj.Geometry.Height)
	}

	r.SetHeight(150)
	obj, _ = doc.Get("a")
	if obj.Geometry.Height != 150 || obj.Geometry.Width != 300 {
		t.Errorf("after height edit: got (%v, %v), want (300, 150)", obj.Geometry.Width, obj.Geometry.Height)
	}
}

func TestAspectRatioCapturedAtSelectionTime(t *testing.T) {
	r, doc := newPanel(t, shape("a", 0, 0, 200, 100))
	r.SetSelection([]string{"a"})
	r.SetAspectLock(true)

	// Distort the object behind the panel's back; the captured ratio
	// still governs locked edits until the selection changes.
	w, h := 500.0, 100.0
	doc.SetGeometry("a", scene.GeometryPatch{Width: &w, Height: &h})

	r.SetWidth(100)
	obj, _ := doc.Get("a")
	if obj.Geometry.Height != 50 {
		t.Errorf("height: got %v, want 50 (selection-time ratio 2)", obj.Geometry.Height)
	}
}

func TestAspectRatioZeroHeightDefaultsToOne(t *testing.T) {
	r, doc := newPanel(t, shape("a", 0, 0, 120, 0))
	r.SetSelection([]string{"a"})
	r.SetAspectLock(true)

	if r.AspectRatio() != 1 {
		t.Fatalf("ratio: got %v, want 1", r.AspectRatio())
	}

	r.SetWidth(80)
	obj, _ := doc.Get("a")
	if obj.Geometry.Height != 80 {
		t.Errorf("height: got %v, want 80", obj.Geometry.Height)
	}
}

func TestAspectUnlockedEditsAreIndependent(t *testing.T) {
	r, doc := newPanel(t, shape("a", 0, 0, 200, 100))
	r.SetSelection([]string{"a"})

	r.SetWidth(50)
	obj, _ := doc.Get("a")
	if obj.Geometry.Width != 50 || obj.Geometry.Height != 100 {
		t.Errorf("got (%v, %v), want (50, 100)", obj.Geometry.Width, obj.Geometry.Height)
	}
}

func TestOpacityPercentRoundTrip(t *testing.T) {
	r, doc := newPanel(t, shape("a", 0, 0, 10, 10))
	r.SetSelection([]string{"a"})

	r.SetOpacityPercent(37)
	obj, _ := doc.Get("a")
	if obj.Style.Opacity != 0.37 {
		t.Errorf("stored: got %v, want 0.37", obj.Style.Opacity)
	}
	if got := r.State().Derived.OpacityPercent; got != 37 {
		t.Errorf("displayed: got %d, want 37", got)
	}
}

func TestOpacityPercentClamped(t *testing.T) {
	r, doc := newPanel(t, shape("a", 0, 0, 10, 10))
	r.SetSelection([]string{"a"})

	r.SetOpacityPercent(150)
	obj, _ := doc.Get("a")
	if obj.Style.Opacity != 1 {
		t.Errorf("got %v, want 1", obj.Style.Opacity)
	}

	r.SetOpacityPercent(-10)
	obj, _ = doc.Get("a")
	if obj.Style.Opacity != 0 {
		t.Errorf("got %v, want 0", obj.Style.Opacity)
	}
}

func TestCornerRadiusWritesBothAxes(t *testing.T) {
	r, doc := newPanel(t, shape("a", 0, 0, 10, 10))
	r.SetSelection([]string{"a"})

	r.SetCornerRadius(6)
	obj, _ := doc.Get("a")
	if obj.Style.RX != 6 || obj.Style.RY != 6 {
		t.Errorf("got rx=%v ry=%v, want 6/6", obj.Style.RX, obj.Style.RY)
	}
}

func TestShadowEnableUsesDefaults(t *testing.T) {
	r, doc := newPanel(t, shape("a", 0, 0, 10, 10))
	r.SetSelection([]string{"a"})

	r.SetShadowEnabled(true)
	obj, _ := doc.Get("a")
	sh := obj.Style.Shadow
	if sh == nil {
		t.Fatal("shadow not attached")
	}
	if sh.Color != DefaultShadowColor || sh.OffsetX != DefaultShadowOffset ||
		sh.OffsetY != DefaultShadowOffset || sh.Blur != DefaultShadowBlur {
		t.Errorf("got %+v, want panel defaults", sh)
	}
}

func TestShadowDisableRemovesAttribute(t *testing.T) {
	obj := shape("a", 0, 0, 10, 10)
	obj.Style.Shadow = &scene.Shadow{Color: "#ff000080", OffsetX: 2, OffsetY: 2, Blur: 6}
	r, doc := newPanel(t, obj)
	r.SetSelection([]string{"a"})

	r.SetShadowEnabled(false)
	got, _ := doc.Get("a")
	if got.Style.Shadow != nil {
		t.Error("shadow still attached after disable")
	}
}

func TestShadowFieldEditWhileDisabledAppliesAtEnable(t *testing.T) {
	r, doc := newPanel(t, shape("a", 0, 0, 10, 10))
	r.SetSelection([]string{"a"})

	// Edits while disabled are held as overrides only.
	r.SetShadowBlur(20)
	obj, _ := doc.Get("a")
	if obj.Style.Shadow != nil {
		t.Fatal("field edit attached a shadow")
	}

	r.SetShadowEnabled(true)
	obj, _ = doc.Get("a")
	if obj.Style.Shadow == nil || obj.Style.Shadow.Blur != 20 {
		t.Errorf("got %+v, want blur 20", obj.Style.Shadow)
	}
	// Unedited fields take the defaults.
	if obj.Style.Shadow.Color != DefaultShadowColor {
		t.Errorf("color: got %s, want default", obj.Style.Shadow.Color)
	}
}

func TestShadowFieldEditWhileEnabledForwardsImmediately(t *testing.T) {
	obj := shape("a", 0, 0, 10, 10)
	obj.Style.Shadow = &scene.Shadow{Color: "#00000033", OffsetX: 4, OffsetY: 4, Blur: 10}
	r, doc := newPanel(t, obj)
	r.SetSelection([]string{"a"})

	r.SetShadowOffsetX(12)
	got, _ := doc.Get("a")
	if got.Style.Shadow.OffsetX != 12 {
		t.Errorf("offsetX: got %v, want 12", got.Style.Shadow.OffsetX)
	}
	if got.Style.Shadow.Blur != 10 {
		t.Error("untouched shadow field changed")
	}
}

func TestTextEditsSkippedForNonText(t *testing.T) {
	r, doc := newPanel(t, shape("a", 0, 0, 10, 10))
	r.SetSelection([]string{"a"})

	r.SetFontSize(32)
	obj, _ := doc.Get("a")
	if obj.Text != nil {
		t.Error("font edit attached text attrs to a shape")
	}
	if r.State().Overrides.FontSize != nil {
		t.Error("font override recorded for a shape")
	}
}

func TestTextEditsApplyToTextObjects(t *testing.T) {
	r, doc := newPanel(t, textObject("label"))
	r.SetSelection([]string{"label"})

	r.SetFontSize(32)
	r.SetFontFamily("Georgia")
	r.SetTextAlign("center")

	obj, _ := doc.Get("label")
	if obj.Text.FontSize != 32 || obj.Text.FontFamily != "Georgia" || obj.Text.TextAlign != "center" {
		t.Errorf("got %+v", obj.Text)
	}
}

func TestMultiSelectionHidesSingleView(t *testing.T) {
	r, _ := newPanel(t, shape("a", 0, 0, 10, 10), shape("b", 20, 20, 10, 10))
	r.SetSelection([]string{"a", "b"})

	st := r.State()
	if st.Derived != nil || st.Merged != nil {
		t.Error("single-object view exposed for a multi selection")
	}
}

func TestMultiSelectionBatchOpacity(t *testing.T) {
	r, doc := newPanel(t, shape("a", 0, 0, 10, 10), shape("b", 20, 20, 10, 10))
	r.SetSelection([]string{"a", "b", "missing"})

	r.SetOpacityPercent(50)
	for _, id := range []string{"a", "b"} {
		obj, _ := doc.Get(id)
		if obj.Style.Opacity != 0.5 {
			t.Errorf("%s opacity: got %v, want 0.5", id, obj.Style.Opacity)
		}
	}
	// Batch edits bypass the single-object override cache.
	if r.State().Overrides.OpacityPercent != nil {
		t.Error("batch opacity recorded an override")
	}
}

func TestMultiSelectionGeometryEditsIgnored(t *testing.T) {
	r, doc := newPanel(t, shape("a", 10, 0, 10, 10), shape("b", 20, 20, 10, 10))
	r.SetSelection([]string{"a", "b"})

	r.SetLeft(99)
	obj, _ := doc.Get("a")
	if obj.Geometry.Left != 10 {
		t.Error("geometry edit applied to a multi selection")
	}
}

func TestSelectionBoundsUnion(t *testing.T) {
	r, _ := newPanel(t,
		shape("a", 0, 0, 10, 10),
		shape("b", 100, 50, 20, 20),
	)
	r.SetSelection([]string{"a", "b", "missing"})

	b := r.SelectionBounds()
	if b.Left != 0 || b.Top != 0 || b.Right != 120 || b.Bottom != 70 {
		t.Errorf("got %+v", b)
	}
}

func TestAlignCenters(t *testing.T) {
	r, doc := newPanel(t,
		shape("a", 0, 0, 100, 100),  // center (50, 50)
		shape("b", 200, 100, 20, 20), // center (210, 110)
	)
	r.SetSelection([]string{"a", "b"})

	r.AlignCenters()

	// Combined bounds are (0,0)-(220,120); target center (110, 60).
	a, _ := doc.Get("a")
	if a.Geometry.Left != 60 || a.Geometry.Top != 10 {
		t.Errorf("a: got (%v, %v), want (60, 10)", a.Geometry.Left, a.Geometry.Top)
	}
	b, _ := doc.Get("b")
	if b.Geometry.Left != 100 || b.Geometry.Top != 50 {
		t.Errorf("b: got (%v, %v), want (100, 50)", b.Geometry.Left, b.Geometry.Top)
	}
}

func TestAlignCentersNoOpForSingleSelection(t *testing.T) {
	r, doc := newPanel(t, shape("a", 30, 40, 10, 10))
	r.SetSelection([]string{"a"})

	r.AlignCenters()
	obj, _ := doc.Get("a")
	if obj.Geometry.Left != 30 || obj.Geometry.Top != 40 {
		t.Error("single selection moved")
	}
}

func TestPropertyChangeCallback(t *testing.T) {
	r, _ := newPanel(t, shape("a", 0, 0, 200, 100))
	r.SetSelection([]string{"a"})
	r.SetAspectLock(true)

	var keys []string
	r.SetOnPropertyChange(func(key string, value any) { keys = append(keys, key) })

	r.SetWidth(100)
	if len(keys) != 2 || keys[0] != "width" || keys[1] != "height" {
		t.Errorf("emitted keys: %v, want [width height]", keys)
	}
}
