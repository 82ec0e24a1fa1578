package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/lite-lake/ipsync/internal/domain"
)

type client struct {
	http *http.Client
}

func newClient(hc *http.Client) client {
	if hc == nil {
		hc = &http.Client{Timeout: domain.ChannelTimeout}
	}
	return client{http: hc}
}

func (c client) postJSON(ctx context.Context, endpoint string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	return c.do(ctx, http.MethodPost, endpoint, "application/json", bytes.NewReader(body), out)
}

func (c client) postForm(ctx context.Context, endpoint string, form url.Values, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), out)
}

func (c client) get(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, "", nil, out)
}

func (c client) do(ctx context.Context, method, endpoint, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", redact(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d: %s", domain.ErrChannelRejected, resp.StatusCode, truncate(string(data)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: unreadable response: %s", domain.ErrChannelRejected, truncate(string(data)))
	}
	return nil
}

// boundClient attaches the send context to requests issued by SDK clients
// that do not take one.
type boundClient struct {
	ctx  context.Context
	http *http.Client
}

func (c boundClient) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req.WithContext(c.ctx))
	if err != nil {
		return nil, redact(err)
	}
	return resp, nil
}

// redact drops the request URL from transport errors since several
// channels carry their key in the path or query.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
