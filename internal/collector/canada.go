package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// ErrUnavailable marks a remote fetch that failed after all retries. Callers
// treat the affected unit (one year, one request) as having no data.
var ErrUnavailable = errors.New("remote source unavailable")

// CanadaFetcher implements Fetcher against the Canada Lottery Results API.
// A single rate limiter is shared by all requests regardless of how many
// workers are fetching, so the minimum inter-request delay holds process-wide.
type CanadaFetcher struct {
	BaseURL    string
	APIKey     string
	Client     *http.Client
	Limiter    *rate.Limiter
	MaxRetries int
}

// NewCanadaFetcher creates a fetcher with optional proxy support.
func NewCanadaFetcher(baseURL, apiKey, proxyURL string, timeout, minDelay time.Duration, maxRetries int) *CanadaFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &CanadaFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		Limiter:    rate.NewLimiter(rate.Every(minDelay), 1),
		MaxRetries: maxRetries,
	}
}

func (f *CanadaFetcher) Name() string { return "canada-lottery" }

// FetchYears returns the years the remote source has published for a lottery.
func (f *CanadaFetcher) FetchYears(ctx context.Context, slug string) ([]int, error) {
	body, err := f.get(ctx, fmt.Sprintf("%s/%s/years", f.BaseURL, slug))
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, nil
	}
	var years []int
	if err := json.Unmarshal(body, &years); err != nil {
		return nil, fmt.Errorf("decode years: %w", err)
	}
	return years, nil
}

// FetchDrawsForYear returns all published draw records for one year. A 404
// (year not published yet) yields an empty result, not an error.
func (f *CanadaFetcher) FetchDrawsForYear(ctx context.Context, slug string, year int) ([]json.RawMessage, error) {
	body, err := f.get(ctx, fmt.Sprintf("%s/%s/years/%d", f.BaseURL, slug, year))
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, nil
	}
	var draws []json.RawMessage
	if err := json.Unmarshal(body, &draws); err != nil {
		return nil, fmt.Errorf("decode draws for %d: %w", year, err)
	}
	return draws, nil
}

// get performs a rate-limited GET with retries and exponential backoff.
// Returns (nil, nil) for 404 responses.
func (f *CanadaFetcher) get(ctx context.Context, endpoint string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= f.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if err := f.Limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, retryable, err := f.getOnce(ctx, endpoint)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		log.Printf("[WARN] fetch %s attempt %d/%d: %v", endpoint, attempt+1, f.MaxRetries+1, err)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}

func (f *CanadaFetcher) getOnce(ctx context.Context, endpoint string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("x-rapidapi-key", f.APIKey)
	if u, uerr := url.Parse(f.BaseURL); uerr == nil {
		req.Header.Set("x-rapidapi-host", u.Host)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return nil, false, nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, true, fmt.Errorf("status %d: %s", resp.StatusCode, truncate(data, 200))
	}
	return data, false, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
