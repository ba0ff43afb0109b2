package service

import (
	"image"
	"slices"

	"inkframe/internal/core/domain"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

const letterboxBlurRadius = 8

// ChangeOrientation rotates the image counter-clockwise to the display
// orientation, expanding the canvas to fit. Orientation must be
// horizontal or vertical.
func ChangeOrientation(img image.Image, orientation domain.Orientation, inverted bool) (image.Image, error) {
	angle, err := orientation.Angle(inverted)
	if err != nil {
		return nil, err
	}

	switch angle {
	case 90:
		return imaging.Rotate90(img), nil
	case 180:
		return imaging.Rotate180(img), nil
	case 270:
		return imaging.Rotate270(img), nil
	default:
		return imaging.Clone(img), nil
	}
}

// ResizeToFit crops the image to the target aspect ratio and resizes it
// to exactly the requested dimensions. The crop is centered unless the
// settings contain domain.KeepWidth, which anchors a width crop at the
// left edge; a height crop stays centered regardless of the flag.
func ResizeToFit(img image.Image, size domain.Dimensions, settings []string) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	imgRatio := float64(width) / float64(height)
	desiredRatio := float64(size.Width) / float64(size.Height)

	keepWidth := slices.Contains(settings, domain.KeepWidth)

	xOffset, yOffset := 0, 0
	newWidth, newHeight := width, height
	if imgRatio > desiredRatio {
		newWidth = int(float64(height) * desiredRatio)
		if !keepWidth {
			xOffset = (width - newWidth) / 2
		}
	} else {
		newHeight = int(float64(width) / desiredRatio)
		yOffset = (height - newHeight) / 2
	}

	cropped := imaging.Crop(img, image.Rect(xOffset, yOffset, xOffset+newWidth, yOffset+newHeight))

	return imaging.Resize(cropped, size.Width, size.Height, imaging.Lanczos)
}

// PadBlur letterboxes the image into the target dimensions: the source
// scaled to cover the full target and box-blurred forms the background,
// and the source scaled to fit within the target is pasted centered on
// top.
func PadBlur(img image.Image, size domain.Dimensions) image.Image {
	background := imaging.Fill(img, size.Width, size.Height, imaging.Center, imaging.Lanczos)
	blurred := blur.Box(background, letterboxBlurRadius)

	foreground := imaging.Fit(img, size.Width, size.Height, imaging.Lanczos)
	fb := foreground.Bounds()

	return imaging.Paste(blurred, foreground,
		image.Pt((size.Width-fb.Dx())/2, (size.Height-fb.Dy())/2))
}
