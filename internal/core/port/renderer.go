package port

import (
	"context"
	"image"
	"time"

	"inkframe/internal/core/domain"
)

type ScreenshotRenderer interface {
	// Screenshot renders a target (URL or local path) at the given size.
	// Returns nil if no browser produced a capture; it never fails into
	// the caller. A zero timeout means no limit per browser attempt.
	Screenshot(ctx context.Context, target string, size domain.Dimensions, timeout time.Duration) image.Image
	// ScreenshotHTML renders inline HTML markup at the given size, with
	// the same contract as Screenshot.
	ScreenshotHTML(ctx context.Context, html string, size domain.Dimensions, timeout time.Duration) image.Image
}
