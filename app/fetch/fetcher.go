package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/proxectonos/galnews/app/config"
)

// Fetcher performs single HTTP GET retrievals with a fixed timeout and a
// fixed number of retries on transient failures. It is stateless:
// persistence of fetched content is the caller's responsibility.
type Fetcher struct {
	client     *http.Client
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	userAgent  string
}

func New(settings config.FetchSettings, userAgent string) *Fetcher {
	timeout := time.Duration(settings.Timeout) * time.Second
	return &Fetcher{
		client:     &http.Client{Timeout: timeout},
		timeout:    timeout,
		maxRetries: settings.MaxRetries,
		retryDelay: time.Duration(settings.RetryDelay * float64(time.Second)),
		userAgent:  userAgent,
	}
}

// Fetch retrieves url and returns the response body. Failures are reported
// as *Error with a Timeout, HTTP or Network kind; transient ones are retried
// up to the configured attempt count with a fixed delay between attempts.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr *Error

	for attempt := 1; attempt <= f.maxRetries; attempt++ {
		slog.Debug("Fetching URL", "url", url, "attempt", attempt)

		data, err := f.do(ctx, url)
		if err == nil {
			slog.Debug("Fetched URL", "url", url, "bytes", len(data))
			return data, nil
		}

		lastErr = err
		if !err.retryable() {
			return nil, err
		}

		if attempt < f.maxRetries {
			slog.Warn("Transient fetch failure, retrying",
				"url", url, "attempt", attempt, "error", err)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.retryDelay):
			}
		}
	}

	return nil, lastErr
}

func (f *Fetcher) do(ctx context.Context, url string) ([]byte, *Error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, URL: url, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Kind: KindHTTP, URL: url, Status: resp.StatusCode,
			Err: fmt.Errorf("unexpected status: %s", resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(url, err)
	}

	return data, nil
}

func classify(url string, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, URL: url, Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTimeout, URL: url, Err: err}
	}
	return &Error{Kind: KindNetwork, URL: url, Err: err}
}
