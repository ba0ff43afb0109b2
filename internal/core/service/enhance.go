package service

import (
	"image"

	"inkframe/internal/core/domain"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/convolution"
	"github.com/disintegration/imaging"
)

// ApplyEnhancements applies the four adjustment factors in fixed order:
// brightness, contrast, saturation, sharpness. Each stage feeds the
// next; a factor of 1.0 is a no-op and the stage is skipped.
func ApplyEnhancements(img image.Image, settings domain.EnhancementSettings) image.Image {
	out := img

	if settings.Brightness != 1 {
		out = adjust.Brightness(out, settings.Brightness-1)
	}
	if settings.Contrast != 1 {
		out = adjust.Contrast(out, settings.Contrast-1)
	}
	if settings.Saturation != 1 {
		out = adjust.Saturation(out, settings.Saturation-1)
	}
	if settings.Sharpness != 1 {
		out = adjustSharpness(out, settings.Sharpness)
	}

	return out
}

// adjustSharpness interpolates between a smoothed copy and the original:
// factor 0 yields the smoothed image, 1 the original, above 1
// over-sharpens.
func adjustSharpness(img image.Image, factor float64) image.Image {
	smooth := convolution.Convolve(img, smoothKernel().Normalized(),
		&convolution.Options{Bias: 0, Wrap: false, KeepAlpha: true})
	return interpolate(smooth, img, factor)
}

// smoothKernel is the classic 3x3 smoothing filter.
func smoothKernel() *convolution.Kernel {
	k := convolution.NewKernel(3, 3)
	k.Matrix = []float64{
		1, 1, 1,
		1, 5, 1,
		1, 1, 1,
	}
	return k
}

// interpolate blends a towards b by factor, extrapolating past 1 with
// per-channel clamping.
func interpolate(a, b image.Image, factor float64) *image.NRGBA {
	base := imaging.Clone(a)
	overlay := imaging.Clone(b)

	out := image.NewNRGBA(base.Bounds())
	for i := 0; i < len(base.Pix); i++ {
		av := float64(base.Pix[i])
		bv := float64(overlay.Pix[i])
		out.Pix[i] = clampUint8(av + (bv-av)*factor)
	}

	return out
}

func clampUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
