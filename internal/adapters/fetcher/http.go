package fetcher

import (
	"context"
	"fmt"
	"image"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"
)

type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{}}
}

// FetchImage performs a GET on the URL and decodes the body into an
// image. A 2xx or 304 status counts as success; any other status is
// logged and yields a nil image with no error. A 304 body is still
// decoded, matching the upstream contract even though such bodies are
// typically empty. Transport and decode errors propagate.
func (f *HTTPFetcher) FetchImage(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		err = fmt.Errorf("error creating request %w", err)
		log.Error().Err(err).Str("url", url).Send()
		return nil, err
	}

	res, err := f.client.Do(req)
	if err != nil {
		err = fmt.Errorf("error executing request %w", err)
		log.Error().Err(err).Str("url", url).Send()
		return nil, err
	}
	defer res.Body.Close()

	success := (res.StatusCode >= 200 && res.StatusCode < 300) ||
		res.StatusCode == http.StatusNotModified
	if !success {
		log.Error().Str("url", url).Int("status", res.StatusCode).
			Msg("received non-200 response")
		return nil, nil
	}

	img, err := imaging.Decode(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error decoding image %w", err)
	}

	return img, nil
}
