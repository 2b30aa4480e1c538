package scene

// Kind discriminates the object variants placed on the canvas.
type Kind string

const (
	KindShape Kind = "shape"
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// BlendMode is a Canvas2D composite operation name.
type BlendMode string

const (
	BlendNormal     BlendMode = "normal"
	BlendMultiply   BlendMode = "multiply"
	BlendScreen     BlendMode = "screen"
	BlendOverlay    BlendMode = "overlay"
	BlendDarken     BlendMode = "darken"
	BlendLighten    BlendMode = "lighten"
	BlendColorDodge BlendMode = "color-dodge"
	BlendColorBurn  BlendMode = "color-burn"
	BlendHardLight  BlendMode = "hard-light"
	BlendSoftLight  BlendMode = "soft-light"
	BlendDifference BlendMode = "difference"
	BlendExclusion  BlendMode = "exclusion"
	BlendHue        BlendMode = "hue"
	BlendSaturation BlendMode = "saturation"
	BlendColor      BlendMode = "color"
	BlendLuminosity BlendMode = "luminosity"
)

var blendModes = map[BlendMode]bool{
	BlendNormal: true, BlendMultiply: true, BlendScreen: true, BlendOverlay: true,
	BlendDarken: true, BlendLighten: true, BlendColorDodge: true, BlendColorBurn: true,
	BlendHardLight: true, BlendSoftLight: true, BlendDifference: true, BlendExclusion: true,
	BlendHue: true, BlendSaturation: true, BlendColor: true, BlendLuminosity: true,
}

// Valid reports whether m is one of the 16 named blend modes.
func (m BlendMode) Valid() bool {
	return blendModes[m]
}

// Geometry is the placement of an object in canvas coordinates.
// Left/Top is the unrotated top-left corner; Width/Height is the unscaled
// size; Angle is in degrees.
type Geometry struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	ScaleX float64 `json:"scaleX"`
	ScaleY float64 `json:"scaleY"`
	Angle  float64 `json:"angle"`
}

// Shadow holds drop shadow attributes. Objects carry a *Shadow: a nil
// pointer means "no shadow", not a shadow with zeroed values.
type Shadow struct {
	Color   string  `json:"color"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
	Blur    float64 `json:"blur"`
}

// TextAttrs are the text-specific attributes of a KindText object.
// Fill on the shared Style doubles as the text color.
type TextAttrs struct {
	FontSize       float64 `json:"fontSize"`
	FontFamily     string  `json:"fontFamily"`
	FontWeight     string  `json:"fontWeight"`
	FontStyle      string  `json:"fontStyle"`
	TextAlign      string  `json:"textAlign"`
	TextDecoration string  `json:"textDecoration"`
	LineHeight     float64 `json:"lineHeight"`
	LetterSpacing  float64 `json:"letterSpacing"`
}

// Style holds the visual attributes shared by all object kinds.
type Style struct {
	Fill        string    `json:"fill"`
	Stroke      string    `json:"stroke"`
	StrokeWidth float64   `json:"strokeWidth"`
	RX          float64   `json:"rx"`
	RY          float64   `json:"ry"`
	Opacity     float64   `json:"opacity"`
	BlendMode   BlendMode `json:"blendMode"`
	Shadow      *Shadow   `json:"shadow,omitempty"`
}

// Object is one placed element. Kind-specific fields are explicit rather
// than an untyped attribute bag: Text is set only for KindText, AssetID
// only for KindImage.
type Object struct {
	ID       string     `json:"id"`
	Kind     Kind       `json:"kind"`
	Geometry Geometry   `json:"geometry"`
	Style    Style      `json:"style"`
	Text     *TextAttrs `json:"text,omitempty"`
	AssetID  string     `json:"assetId,omitempty"`
	Visible  bool       `json:"visible"`
	Locked   bool       `json:"locked"`
}

// Clone returns a deep copy. The registry hands out copies so that the
// only mutation path into the scene is SetGeometry/SetStyle.
func (o Object) Clone() Object {
	c := o
	if o.Style.Shadow != nil {
		sh := *o.Style.Shadow
		c.Style.Shadow = &sh
	}
	if o.Text != nil {
		t := *o.Text
		c.Text = &t
	}
	return c
}
