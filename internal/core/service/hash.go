package service

import (
	"crypto/sha256"
	"encoding/hex"
	"image"

	"inkframe/internal/core/domain"

	"github.com/disintegration/imaging"
)

// ComputeImageHash returns the SHA-256 hex digest of the raw RGB pixel
// content in row-major order. Identical pixel content hashes
// identically regardless of the source color model.
func ComputeImageHash(img image.Image) (string, error) {
	if img == nil {
		return "", domain.ErrEmptyImage
	}

	nrgba := imaging.Clone(img)
	bounds := nrgba.Bounds()

	h := sha256.New()
	row := make([]byte, bounds.Dx()*3)
	for y := 0; y < bounds.Dy(); y++ {
		offset := y * nrgba.Stride
		for x := 0; x < bounds.Dx(); x++ {
			copy(row[x*3:x*3+3], nrgba.Pix[offset+x*4:offset+x*4+3])
		}
		h.Write(row)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
