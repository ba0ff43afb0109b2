package domain

import "image"

// Dimensions is a target render or crop size in pixels.
type Dimensions struct {
	Width  int
	Height int
}

type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Angle returns the rotation in degrees for the orientation: 0 for
// horizontal, 90 for vertical, plus 180 (mod 360) when inverted.
func (o Orientation) Angle(inverted bool) (int, error) {
	var angle int

	switch o {
	case Horizontal:
		angle = 0
	case Vertical:
		angle = 90
	default:
		return 0, ErrUnknownOrientation
	}

	if inverted {
		angle = (angle + 180) % 360
	}

	return angle, nil
}

// EnhancementSettings holds multiplicative adjustment factors. 1.0 is
// neutral for every factor; a zero value means "black"/"no sharpening",
// not "unset", so start from DefaultEnhancement when loading partial
// config.
type EnhancementSettings struct {
	Brightness float64
	Contrast   float64
	Saturation float64
	Sharpness  float64
}

// DefaultEnhancement returns the neutral settings, all factors 1.0.
func DefaultEnhancement() EnhancementSettings {
	return EnhancementSettings{Brightness: 1, Contrast: 1, Saturation: 1, Sharpness: 1}
}

// KeepWidth anchors the horizontal crop at the left edge instead of
// centering when an image is wider than the target aspect ratio.
const KeepWidth = "keep-width"

// Source identifies what a frame is produced from. Exactly one field
// should be set: a direct image URL to fetch, a render target (URL or
// local path) for the screenshot renderer, or inline HTML markup.
type Source struct {
	ImageURL string
	Target   string
	HTML     string
}

type RenderOptions struct {
	Size        Dimensions
	Orientation Orientation
	Inverted    bool
	Resize      []string
	Enhancement EnhancementSettings
	Letterbox   bool
}

// Frame is a fully processed display image and its content hash.
type Frame struct {
	Image image.Image
	Hash  string
}
