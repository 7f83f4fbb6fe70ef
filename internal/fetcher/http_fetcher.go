package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"wikiquiz/internal/domain"
)

// Wikipedia throttles requests carrying the Go default User-Agent, so the
// fetcher presents a desktop browser one.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// HTTPArticleFetcher implements domain.ArticleFetcher over net/http
type HTTPArticleFetcher struct {
	client *http.Client
}

// NewHTTPArticleFetcher creates a fetcher with a bounded-timeout HTTP client.
// A nil client gets a 20 second default.
func NewHTTPArticleFetcher(client *http.Client) domain.ArticleFetcher {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &HTTPArticleFetcher{client: client}
}

// Fetch retrieves the raw markup at url. Transport failures and non-2xx
// statuses both surface as FetchError.
func (f *HTTPArticleFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.NewFetchError(url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, domain.NewFetchError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.NewFetchError(url, fmt.Errorf("unexpected status: %s", resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewFetchError(url, err)
	}
	return body, nil
}

var _ domain.ArticleFetcher = (*HTTPArticleFetcher)(nil)
