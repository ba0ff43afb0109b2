package port

import (
	"context"
	"image"
)

type ImageFetcher interface {
	// FetchImage retrieves and decodes the image at the given URL. A nil
	// image with a nil error means the server answered with an
	// unexpected status; callers should fall back rather than fail.
	FetchImage(ctx context.Context, url string) (image.Image, error)
}
