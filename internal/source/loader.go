// Package source loads translation records from a local export file or a URL.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"catexport/internal/config"
	"catexport/internal/models"
	"catexport/pkg/utils"
)

// Source errors.
var (
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrEmptySource          = errors.New("source is empty")
	ErrNoSource             = errors.New("no file or url configured")
	ErrSourceTooLarge       = errors.New("source exceeds buffer size")
)

// Loader fetches export payloads with config-driven retry logic.
type Loader struct {
	client       *http.Client
	http         *utils.HTTPHelper
	headers      map[string]string
	retryPolicy  *config.RetryPolicy
	bufferSizeKb int
}

// NewLoader creates a loader with the default retry policy.
func NewLoader() *Loader {
	return NewLoaderWithConfig(&config.DefaultConfig().Exporter.Retry, 64*1024)
}

// NewLoaderWithConfig creates a loader with a custom retry policy.
func NewLoaderWithConfig(retryPolicy *config.RetryPolicy, bufferSizeKb int) *Loader {
	return &Loader{
		client: &http.Client{
			Timeout: retryPolicy.GetTimeout(),
		},
		http:         utils.NewHTTPHelper(),
		retryPolicy:  retryPolicy,
		bufferSizeKb: bufferSizeKb,
	}
}

// SetHeaders sets extra request headers, replacing defaults with the same name.
func (l *Loader) SetHeaders(headers map[string]string) {
	l.headers = headers
}

// Load reads the configured source and decodes its records.
func (l *Loader) Load(ctx context.Context, src config.SourceConfig) ([]models.TranslationRecord, error) {
	var (
		data []byte
		err  error
	)

	switch {
	case src.IsLocalFile():
		data, err = l.ReadFile(src.File)
	case src.URL != "":
		data, err = l.Fetch(ctx, src.URL)
	default:
		return nil, ErrNoSource
	}

	if err != nil {
		return nil, err
	}

	records, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", src.GetSource(), err)
	}

	return records, nil
}

// ReadFile reads a local export file.
func (l *Loader) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read local file %s: %w", path, err)
	}

	return data, nil
}

// Fetch downloads url, retrying transport errors and temporary HTTP failures.
func (l *Loader) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= l.retryPolicy.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, l.retryPolicy.GetRetryDelay(attempt)); err != nil {
				return nil, err
			}
		}

		body, retry, err := l.fetchOnce(ctx, url)
		if err == nil {
			return body, nil
		}

		lastErr = fmt.Errorf("attempt %d/%d: %w", attempt, l.retryPolicy.MaxAttempts, err)
		if !retry {
			break
		}
	}

	return nil, lastErr
}

// fetchOnce performs a single request and reports whether a failure may be retried.
func (l *Loader) fetchOnce(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header = l.http.BuildHeaders(l.headers)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, ctx.Err() == nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, isRetryableStatus(resp.StatusCode), fmt.Errorf("%w: %d", ErrUnexpectedStatusCode, resp.StatusCode)
	}

	// bufferSizeKb is in KB, convert to bytes
	limit := int64(l.bufferSizeKb) * 1024

	// One byte past the limit tells a full buffer from a truncated payload
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, true, fmt.Errorf("failed to read response body: %w", err)
	}

	if int64(len(body)) > limit {
		return nil, false, fmt.Errorf("%w: more than %d KB", ErrSourceTooLarge, l.bufferSizeKb)
	}

	return body, false, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// isRetryableStatus determines if we should retry based on HTTP status code.
func isRetryableStatus(statusCode int) bool {
	// Retry on temporary failures
	switch statusCode {
	case http.StatusServiceUnavailable: // 503
		return true
	case http.StatusGatewayTimeout: // 504
		return true
	case http.StatusTooManyRequests: // 429
		return true
	case http.StatusRequestTimeout: // 408
		return true
	}

	return false
}
