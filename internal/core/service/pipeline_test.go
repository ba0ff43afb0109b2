package service

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"inkframe/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFetcher struct {
	img       image.Image
	err       error
	calledURL string
}

func (m *mockFetcher) FetchImage(_ context.Context, url string) (image.Image, error) {
	m.calledURL = url
	return m.img, m.err
}

type mockRenderer struct {
	img          image.Image
	calledTarget string
	calledHTML   string
	timeout      time.Duration
}

func (m *mockRenderer) Screenshot(_ context.Context, target string, _ domain.Dimensions,
	timeout time.Duration) image.Image {
	m.calledTarget = target
	m.timeout = timeout
	return m.img
}

func (m *mockRenderer) ScreenshotHTML(_ context.Context, html string, _ domain.Dimensions,
	timeout time.Duration) image.Image {
	m.calledHTML = html
	m.timeout = timeout
	return m.img
}

func defaultOptions() domain.RenderOptions {
	return domain.RenderOptions{
		Size:        domain.Dimensions{Width: 80, Height: 48},
		Orientation: domain.Horizontal,
		Enhancement: domain.DefaultEnhancement(),
	}
}

func TestPipelineProcessFromImageURL(t *testing.T) {
	mf := &mockFetcher{img: solidImage(100, 60, red)}
	mr := &mockRenderer{}

	p := NewPipeline(mf, mr, 0)

	frame, err := p.Process(context.Background(), domain.Source{ImageURL: "https://example.com/a.png"},
		defaultOptions())

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a.png", mf.calledURL)
	assert.Equal(t, 80, frame.Image.Bounds().Dx())
	assert.Equal(t, 48, frame.Image.Bounds().Dy())
	assert.Len(t, frame.Hash, 64)
}

func TestPipelineProcessFromHTML(t *testing.T) {
	mf := &mockFetcher{}
	mr := &mockRenderer{img: solidImage(80, 48, blue)}

	p := NewPipeline(mf, mr, 5*time.Second)

	frame, err := p.Process(context.Background(), domain.Source{HTML: "<h1>hello</h1>"},
		defaultOptions())

	require.NoError(t, err)
	assert.Equal(t, "<h1>hello</h1>", mr.calledHTML)
	assert.Equal(t, 5*time.Second, mr.timeout)
	assert.Equal(t, 80, frame.Image.Bounds().Dx())
}

func TestPipelineProcessFromTarget(t *testing.T) {
	mf := &mockFetcher{}
	mr := &mockRenderer{img: solidImage(200, 100, green)}

	p := NewPipeline(mf, mr, 0)

	opts := defaultOptions()
	opts.Letterbox = true

	frame, err := p.Process(context.Background(), domain.Source{Target: "https://example.com"}, opts)

	require.NoError(t, err)
	assert.Equal(t, "https://example.com", mr.calledTarget)
	assert.Equal(t, 80, frame.Image.Bounds().Dx())
	assert.Equal(t, 48, frame.Image.Bounds().Dy())
}

func TestPipelineProcessVerticalOrientation(t *testing.T) {
	mf := &mockFetcher{img: solidImage(100, 60, red)}
	mr := &mockRenderer{}

	p := NewPipeline(mf, mr, 0)

	opts := defaultOptions()
	opts.Orientation = domain.Vertical

	frame, err := p.Process(context.Background(), domain.Source{ImageURL: "https://example.com/a.png"}, opts)

	require.NoError(t, err)
	assert.Equal(t, 80, frame.Image.Bounds().Dx())
	assert.Equal(t, 48, frame.Image.Bounds().Dy())
}

func TestPipelineProcessSourceUnavailable(t *testing.T) {
	tests := []struct {
		name   string
		source domain.Source
	}{
		{name: "fetch absence", source: domain.Source{ImageURL: "https://example.com/a.png"}},
		{name: "render absence", source: domain.Source{Target: "https://example.com"}},
		{name: "html render absence", source: domain.Source{HTML: "<p>x</p>"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPipeline(&mockFetcher{}, &mockRenderer{}, 0)

			frame, err := p.Process(context.Background(), tc.source, defaultOptions())

			require.ErrorIs(t, err, domain.ErrSourceUnavailable)
			assert.Nil(t, frame)
		})
	}
}

func TestPipelineProcessFetchError(t *testing.T) {
	mf := &mockFetcher{err: errors.New("mock error")}

	p := NewPipeline(mf, &mockRenderer{}, 0)

	frame, err := p.Process(context.Background(), domain.Source{ImageURL: "https://example.com/a.png"},
		defaultOptions())

	require.Error(t, err)
	assert.Nil(t, frame)
}

func TestPipelineProcessEmptySource(t *testing.T) {
	p := NewPipeline(&mockFetcher{}, &mockRenderer{}, 0)

	frame, err := p.Process(context.Background(), domain.Source{}, defaultOptions())

	require.ErrorIs(t, err, domain.ErrEmptySource)
	assert.Nil(t, frame)
}

func TestPipelineProcessUnknownOrientation(t *testing.T) {
	mf := &mockFetcher{img: solidImage(100, 60, red)}

	p := NewPipeline(mf, &mockRenderer{}, 0)

	opts := defaultOptions()
	opts.Orientation = "diagonal"

	frame, err := p.Process(context.Background(), domain.Source{ImageURL: "https://example.com/a.png"}, opts)

	require.ErrorIs(t, err, domain.ErrUnknownOrientation)
	assert.Nil(t, frame)
}
