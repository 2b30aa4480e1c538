package panel

import "github.com/sketchdeck/sketchdeck/backend-go/internal/scene"

// Panel fallback values. These are the same constants the panel controls
// render with, so an object variant lacking an attribute shows sane
// defaults instead of blank controls.
const (
	DefaultFill           = "#000000"
	DefaultStroke         = ""
	DefaultStrokeWidth    = 0.0
	DefaultCornerRadius   = 0.0
	DefaultOpacityPercent = 100

	DefaultFontSize       = 16.0
	DefaultFontFamily     = "Inter"
	DefaultFontWeight     = "normal"
	DefaultFontStyle      = "normal"
	DefaultTextAlign      = "left"
	DefaultTextDecoration = "none"
	DefaultLineHeight     = 1.16
	DefaultLetterSpacing  = 0.0

	// Shadow sub-values used when the shadow is enabled with nothing
	// previously set.
	DefaultShadowColor  = "#00000033"
	DefaultShadowOffset = 4.0
	DefaultShadowBlur   = 10.0
)

// DefaultBlendMode is the composite mode shown for objects with no
// explicit blend mode.
const DefaultBlendMode = scene.BlendNormal
