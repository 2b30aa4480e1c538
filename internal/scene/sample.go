package scene

import (
	"github.com/sketchdeck/sketchdeck/backend-go/internal/typeid"
)

// NewSampleDocument builds a small scene used by server sessions that have
// no host-provided document yet.
func NewSampleDocument() *Document {
	doc := NewDocument(Canvas{Width: 1080, Height: 1080})

	doc.Add(Object{
		ID:   typeid.NewObjectID(),
		Kind: KindShape,
		Geometry: Geometry{
			Left: 120, Top: 160, Width: 300, Height: 200, ScaleX: 1, ScaleY: 1,
		},
		Style: Style{
			Fill: "#e94560", Stroke: "#1a1a2e", StrokeWidth: 2,
			RX: 8, RY: 8, Opacity: 1, BlendMode: BlendNormal,
		},
		Visible: true,
	})

	doc.Add(Object{
		ID:   typeid.NewObjectID(),
		Kind: KindShape,
		Geometry: Geometry{
			Left: 560, Top: 420, Width: 240, Height: 240, ScaleX: 1, ScaleY: 1,
		},
		Style: Style{
			Fill: "#0f3460", Opacity: 1, BlendMode: BlendNormal,
		},
		Visible: true,
	})

	doc.Add(Object{
		ID:   typeid.NewObjectID(),
		Kind: KindText,
		Geometry: Geometry{
			Left: 200, Top: 720, Width: 400, Height: 60, ScaleX: 1, ScaleY: 1,
		},
		Style: Style{
			Fill: "#16213e", Opacity: 1, BlendMode: BlendNormal,
		},
		Text: &TextAttrs{
			FontSize: 32, FontFamily: "Inter", FontWeight: "normal",
			FontStyle: "normal", TextAlign: "left", TextDecoration: "none",
			LineHeight: 1.16,
		},
		Visible: true,
	})

	return doc
}
