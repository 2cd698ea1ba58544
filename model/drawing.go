package model

// DrawingKind distinguishes pictures from vector shapes.
type DrawingKind int

const (
	DrawingImage DrawingKind = iota
	DrawingShape
)

// String returns the drawing kind name.
func (k DrawingKind) String() string {
	if k == DrawingShape {
		return "shape"
	}
	return "image"
}

// NoFill marks a shape fill or stroke explicitly turned off.
const NoFill = "none"

// Extent is a size in EMU.
type Extent struct {
	CX int64
	CY int64
}

// Drawing is an image or a shape placed inline or anchored in a run.
type Drawing struct {
	Kind        DrawingKind
	Name        string
	Description string
	Extent      Extent
	Position    Positioning

	// Image is set for DrawingImage.
	Image *ImageRef

	// Shape is set for DrawingShape.
	Shape *Shape
}

// ImageRef points at a media part of the package.
type ImageRef struct {
	RelID       string
	Path        string
	ContentType string

	// Format, Width and Height are taken from the image header when the
	// format is decodable (png, jpeg, gif, bmp, tiff, webp). Width and
	// Height are in pixels.
	Format string
	Width  int
	Height int

	Data []byte

	// RecognizedText is filled when image text recognition is enabled.
	RecognizedText string
}

// PositionMode tells inline drawings from floating ones.
type PositionMode string

const (
	PositionInline PositionMode = "inline"
	PositionAnchor PositionMode = "anchor"
)

// AnchorOffset is one axis of a floating drawing's position.
type AnchorOffset struct {
	RelativeFrom string
	Offset       int64 // EMU
	Align        string
}

// Positioning describes where a drawing sits relative to the text.
type Positioning struct {
	Mode       PositionMode
	Horizontal *AnchorOffset
	Vertical   *AnchorOffset

	// Distances from surrounding text, in EMU.
	DistTop    int64
	DistBottom int64
	DistLeft   int64
	DistRight  int64

	BehindText bool
	Wrap       string // square, tight, through, topAndBottom, none
}

// Shape is a preset-geometry vector shape.
type Shape struct {
	Preset string

	// Fill and Stroke are hex colors or NoFill.
	Fill   string
	Stroke string

	StrokeWidth int64 // EMU
	StrokeDash  string

	// Rotation is clockwise, in 60000ths of a degree.
	Rotation int
	FlipH    bool
	FlipV    bool

	// Content holds text-box blocks.
	Content []Block

	// Legacy is set for shapes rebuilt from a VML fallback.
	Legacy bool
}
