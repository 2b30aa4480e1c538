package panel

import (
	"math"

	"github.com/sketchdeck/sketchdeck/backend-go/internal/scene"
)

// Properties is the full typed property set the panel displays for a
// single selected object. Attributes the object variant does not support
// carry the panel defaults.
type Properties struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Angle  float64 `json:"angle"`

	Fill         string          `json:"fill"`
	Stroke       string          `json:"stroke"`
	StrokeWidth  float64         `json:"strokeWidth"`
	CornerRadius float64         `json:"cornerRadius"`
	BlendMode    scene.BlendMode `json:"blendMode"`

	// Opacity is displayed and edited as an integer percentage; the
	// object stores a fraction in [0,1].
	OpacityPercent int `json:"opacity"`

	ShadowEnabled bool    `json:"shadowEnabled"`
	ShadowColor   string  `json:"shadowColor"`
	ShadowOffsetX float64 `json:"shadowOffsetX"`
	ShadowOffsetY float64 `json:"shadowOffsetY"`
	ShadowBlur    float64 `json:"shadowBlur"`

	FontSize       float64 `json:"fontSize"`
	FontFamily     string  `json:"fontFamily"`
	FontWeight     string  `json:"fontWeight"`
	FontStyle      string  `json:"fontStyle"`
	TextAlign      string  `json:"textAlign"`
	TextDecoration string  `json:"textDecoration"`
	LineHeight     float64 `json:"lineHeight"`
	LetterSpacing  float64 `json:"letterSpacing"`
}

// Patch holds the panel-session overrides: values the user has edited
// that were already forwarded to the object but are kept locally so the
// displayed value does not snap back on render-timing lag. Nil fields
// have no override.
type Patch struct {
	Left   *float64
	Top    *float64
	Width  *float64
	Height *float64
	Angle  *float64

	Fill         *string
	Stroke       *string
	StrokeWidth  *float64
	CornerRadius *float64
	BlendMode    *scene.BlendMode

	OpacityPercent *int

	ShadowEnabled *bool
	ShadowColor   *string
	ShadowOffsetX *float64
	ShadowOffsetY *float64
	ShadowBlur    *float64

	FontSize       *float64
	FontFamily     *string
	FontWeight     *string
	FontStyle      *string
	TextAlign      *string
	TextDecoration *string
	LineHeight     *float64
	LetterSpacing  *float64
}

// State is the view-model for the panel. Derived and Merged are nil
// unless exactly one object is selected.
type State struct {
	Selection []string    `json:"selection"`
	Derived   *Properties `json:"derived,omitempty"`
	Overrides Patch       `json:"-"`
	Merged    *Properties `json:"merged,omitempty"`
}

// OpacityToPercent converts a stored fraction to the displayed integer
// percentage. Rounding keeps integer percentages round-trip exact.
func OpacityToPercent(fraction float64) int {
	return int(math.Round(fraction * 100))
}

// OpacityFromPercent converts a displayed percentage to the stored
// fraction, clamped to [0,1].
func OpacityFromPercent(percent int) float64 {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return float64(percent) / 100
}

// derive reads a Properties view live from the object, with panel
// defaults for attributes the object's kind does not carry.
func derive(obj scene.Object) Properties {
	p := Properties{
		Left:   obj.Geometry.Left,
		Top:    obj.Geometry.Top,
		Width:  obj.Geometry.Width,
		Height: obj.Geometry.Height,
		Angle:  obj.Geometry.Angle,

		Fill:         obj.Style.Fill,
		Stroke:       obj.Style.Stroke,
		StrokeWidth:  obj.Style.StrokeWidth,
		CornerRadius: obj.Style.RX,
		BlendMode:    obj.Style.BlendMode,

		OpacityPercent: OpacityToPercent(obj.Style.Opacity),

		FontSize:       DefaultFontSize,
		FontFamily:     DefaultFontFamily,
		FontWeight:     DefaultFontWeight,
		FontStyle:      DefaultFontStyle,
		TextAlign:      DefaultTextAlign,
		TextDecoration: DefaultTextDecoration,
		LineHeight:     DefaultLineHeight,
		LetterSpacing:  DefaultLetterSpacing,
	}

	if p.Fill == "" {
		p.Fill = DefaultFill
	}
	if !p.BlendMode.Valid() {
		p.BlendMode = DefaultBlendMode
	}

	if sh := obj.Style.Shadow; sh != nil {
		p.ShadowEnabled = true
		p.ShadowColor = sh.Color
		p.ShadowOffsetX = sh.OffsetX
		p.ShadowOffsetY = sh.OffsetY
		p.ShadowBlur = sh.Blur
	}

	if obj.Kind == scene.KindText && obj.Text != nil {
		t := obj.Text
		if t.FontSize > 0 {
			p.FontSize = t.FontSize
		}
		if t.FontFamily != "" {
			p.FontFamily = t.FontFamily
		}
		if t.FontWeight != "" {
			p.FontWeight = t.FontWeight
		}
		if t.FontStyle != "" {
			p.FontStyle = t.FontStyle
		}
		if t.TextAlign != "" {
			p.TextAlign = t.TextAlign
		}
		if t.TextDecoration != "" {
			p.TextDecoration = t.TextDecoration
		}
		if t.LineHeight > 0 {
			p.LineHeight = t.LineHeight
		}
		p.LetterSpacing = t.LetterSpacing
	}

	return p
}

// merge overlays the overrides onto a derived view; overrides win.
func merge(derived Properties, o Patch) Properties {
	m := derived

	if o.Left != nil {
		m.Left = *o.Left
	}
	if o.Top != nil {
		m.Top = *o.Top
	}
	if o.Width != nil {
		m.Width = *o.Width
	}
	if o.Height != nil {
		m.Height = *o.Height
	}
	if o.Angle != nil {
		m.Angle = *o.Angle
	}

	if o.Fill != nil {
		m.Fill = *o.Fill
	}
	if o.Stroke != nil {
		m.Stroke = *o.Stroke
	}
	if o.StrokeWidth != nil {
		m.StrokeWidth = *o.StrokeWidth
	}
	if o.CornerRadius != nil {
		m.CornerRadius = *o.CornerRadius
	}
	if o.BlendMode != nil {
		m.BlendMode = *o.BlendMode
	}
	if o.OpacityPercent != nil {
		m.OpacityPercent = *o.OpacityPercent
	}

	if o.ShadowEnabled != nil {
		m.ShadowEnabled = *o.ShadowEnabled
	}
	if o.ShadowColor != nil {
		m.ShadowColor = *o.ShadowColor
	}
	if o.ShadowOffsetX != nil {
		m.ShadowOffsetX = *o.ShadowOffsetX
	}
	if o.ShadowOffsetY != nil {
		m.ShadowOffsetY = *o.ShadowOffsetY
	}
	if o.ShadowBlur != nil {
		m.ShadowBlur = *o.ShadowBlur
	}

	if o.FontSize != nil {
		m.FontSize = *o.FontSize
	}
	if o.FontFamily != nil {
		m.FontFamily = *o.FontFamily
	}
	if o.FontWeight != nil {
		m.FontWeight = *o.FontWeight
	}
	if o.FontStyle != nil {
		m.FontStyle = *o.FontStyle
	}
	if o.TextAlign != nil {
		m.TextAlign = *o.TextAlign
	}
	if o.TextDecoration != nil {
		m.TextDecoration = *o.TextDecoration
	}
	if o.LineHeight != nil {
		m.LineHeight = *o.LineHeight
	}
	if o.LetterSpacing != nil {
		m.LetterSpacing = *o.LetterSpacing
	}

	return m
}
