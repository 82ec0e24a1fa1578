package prober

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lite-lake/ipsync/internal/domain"
)

// HTTPFetcher performs one bounded GET per call. Retrying is left to the
// caller.
type HTTPFetcher struct {
	client  *http.Client
	timeout time.Duration
}

func NewHTTPFetcher(client *http.Client, timeout time.Duration) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = domain.DownloadTimeout
	}
	return &HTTPFetcher{client: client, timeout: timeout}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", domain.WrapOp("build request", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", domain.WrapOp("download", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("download %s: unexpected status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return "", domain.WrapOp("read body", err)
	}
	return string(body), nil
}
