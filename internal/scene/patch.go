package scene

// GeometryPatch is a partial geometry update. Nil fields are left alone.
type GeometryPatch struct {
	Left   *float64 `json:"left,omitempty"`
	Top    *float64 `json:"top,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
	ScaleX *float64 `json:"scaleX,omitempty"`
	ScaleY *float64 `json:"scaleY,omitempty"`
	Angle  *float64 `json:"angle,omitempty"`
}

// ShadowPatch wraps a shadow replacement. A nil Shadow inside a non-nil
// patch removes the shadow entirely; StylePatch.Shadow == nil leaves the
// current shadow untouched.
type ShadowPatch struct {
	Shadow *Shadow `json:"shadow"`
}

// TextPatch is a partial update of the text-specific attributes. It is
// silently skipped for objects that are not KindText.
type TextPatch struct {
	FontSize       *float64 `json:"fontSize,omitempty"`
	FontFamily     *string  `json:"fontFamily,omitempty"`
	FontWeight     *string  `json:"fontWeight,omitempty"`
	FontStyle      *string  `json:"fontStyle,omitempty"`
	TextAlign      *string  `json:"textAlign,omitempty"`
	TextDecoration *string  `json:"textDecoration,omitempty"`
	LineHeight     *float64 `json:"lineHeight,omitempty"`
	LetterSpacing  *float64 `json:"letterSpacing,omitempty"`
}

// StylePatch is a partial style update. Nil fields are left alone.
type StylePatch struct {
	Fill        *string      `json:"fill,omitempty"`
	Stroke      *string      `json:"stroke,omitempty"`
	StrokeWidth *float64     `json:"strokeWidth,omitempty"`
	RX          *float64     `json:"rx,omitempty"`
	RY          *float64     `json:"ry,omitempty"`
	Opacity     *float64     `json:"opacity,omitempty"`
	BlendMode   *BlendMode   `json:"blendMode,omitempty"`
	Shadow      *ShadowPatch `json:"shadow,omitempty"`
	Text        *TextPatch   `json:"text,omitempty"`
}

func (p GeometryPatch) applyTo(g *Geometry) {
	if p.Left != nil {
		g.Left = *p.Left
	}
	if p.Top != nil {
		g.Top = *p.Top
	}
	if p.Width != nil {
		g.Width = max(*p.Width, 0)
	}
	if p.Height != nil {
		g.Height = max(*p.Height, 0)
	}
	if p.ScaleX != nil {
		g.ScaleX = *p.ScaleX
	}
	if p.ScaleY != nil {
		g.ScaleY = *p.ScaleY
	}
	if p.Angle != nil {
		g.Angle = *p.Angle
	}
}

func (p StylePatch) applyTo(obj *Object) {
	s := &obj.Style

	if p.Fill != nil {
		s.Fill = *p.Fill
	}
	if p.Stroke != nil {
		s.Stroke = *p.Stroke
	}
	if p.StrokeWidth != nil {
		s.StrokeWidth = *p.StrokeWidth
	}
	if p.Opacity != nil {
		s.Opacity = min(max(*p.Opacity, 0), 1)
	}
	if p.BlendMode != nil && p.BlendMode.Valid() {
		s.BlendMode = *p.BlendMode
	}
	if p.Shadow != nil {
		if p.Shadow.Shadow == nil {
			s.Shadow = nil
		} else {
			sh := *p.Shadow.Shadow
			s.Shadow = &sh
		}
	}

	// Corner radius applies to shapes only
	if obj.Kind == KindShape {
		if p.RX != nil {
			s.RX = *p.RX
		}
		if p.RY != nil {
			s.RY = *p.RY
		}
	}

	// Text attributes apply to text objects only
	if p.Text != nil && obj.Kind == KindText && obj.Text != nil {
		p.Text.applyTo(obj.Text)
	}
}

func (p TextPatch) applyTo(t *TextAttrs) {
	if p.FontSize != nil {
		t.FontSize = *p.FontSize
	}
	if p.FontFamily != nil {
		t.FontFamily = *p.FontFamily
	}
	if p.FontWeight != nil {
		t.FontWeight = *p.FontWeight
	}
	if p.FontStyle != nil {
		t.FontStyle = *p.FontStyle
	}
	if p.TextAlign != nil {
		t.TextAlign = *p.TextAlign
	}
	if p.TextDecoration != nil {
		t.TextDecoration = *p.TextDecoration
	}
	if p.LineHeight != nil {
		t.LineHeight = *p.LineHeight
	}
	if p.LetterSpacing != nil {
		t.LetterSpacing = *p.LetterSpacing
	}
}
