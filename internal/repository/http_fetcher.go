package repository

import (
	"context"
	"fmt"
	"time"

	drepo "MacroGold/internal/domain/repository"
	xhttp "MacroGold/pkg/http"
)

// HTTPFetcher implements domain repository.Fetcher over pkg/http. One GET,
// no retries: a broken upstream is reported per source, not worked around.
type HTTPFetcher struct {
	client *xhttp.Client
}

// NewHTTPFetcher creates a fetcher with a hard client-side timeout ceiling.
// Per-source timeouts are narrowed through the request context.
func NewHTTPFetcher(maxTimeout time.Duration, userAgent string) drepo.Fetcher {
	return &HTTPFetcher{
		client: xhttp.NewClient(
			xhttp.WithTimeout(maxTimeout),
			xhttp.WithUserAgent(userAgent),
		),
	}
}

// Fetch retrieves the document at url and returns its raw bytes.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	var body []byte
	err := f.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     url,
		Headers: headers,
	}, &body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return body, nil
}
