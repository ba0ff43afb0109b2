package service

import (
	"context"
	"image"
	"time"

	"inkframe/internal/core/domain"
	"inkframe/internal/core/port"

	"github.com/rs/zerolog/log"
)

// Pipeline produces display-ready frames: it acquires an image from a
// source, rotates it to the display orientation, fits it to the display
// dimensions and applies the configured enhancement factors.
type Pipeline struct {
	fetcher  port.ImageFetcher
	renderer port.ScreenshotRenderer
	timeout  time.Duration
}

func NewPipeline(fetcher port.ImageFetcher, renderer port.ScreenshotRenderer,
	timeout time.Duration) *Pipeline {
	return &Pipeline{fetcher: fetcher, renderer: renderer, timeout: timeout}
}

func (p *Pipeline) Process(ctx context.Context, source domain.Source,
	opts domain.RenderOptions) (*domain.Frame, error) {
	img, err := p.acquire(ctx, source, opts.Size)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, domain.ErrSourceUnavailable
	}

	img, err = ChangeOrientation(img, opts.Orientation, opts.Inverted)
	if err != nil {
		return nil, err
	}

	if opts.Letterbox {
		img = PadBlur(img, opts.Size)
	} else {
		img = ResizeToFit(img, opts.Size, opts.Resize)
	}

	img = ApplyEnhancements(img, opts.Enhancement)

	hash, err := ComputeImageHash(img)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("hash", hash).
		Int("width", opts.Size.Width).Int("height", opts.Size.Height).
		Msg("frame processed")

	return &domain.Frame{Image: img, Hash: hash}, nil
}

func (p *Pipeline) acquire(ctx context.Context, source domain.Source,
	size domain.Dimensions) (image.Image, error) {
	switch {
	case source.ImageURL != "":
		return p.fetcher.FetchImage(ctx, source.ImageURL)
	case source.HTML != "":
		return p.renderer.ScreenshotHTML(ctx, source.HTML, size, p.timeout), nil
	case source.Target != "":
		return p.renderer.Screenshot(ctx, source.Target, size, p.timeout), nil
	default:
		return nil, domain.ErrEmptySource
	}
}
