// Package timesource supplies the trusted wall-clock time the time-lock
// state machine runs on. An ordered chain of external HTTP time providers is
// consulted with retries; when every provider is unreachable the local clock
// is used and the result is flagged untrusted.
package timesource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/veilcam/veilcam/internal/logging"
)

// Result is one answer to "what time is it".
type Result struct {
	Time time.Time
	// Trusted is false only for the local-clock fallback.
	Trusted bool
	// Source names the provider that answered.
	Source string
}

// Provider answers with the current UTC time.
type Provider interface {
	Now(ctx context.Context) (time.Time, error)
	Name() string
}

// HTTPProvider queries a worldtimeapi-style endpoint returning a JSON body
// with a unixtime field.
type HTTPProvider struct {
	name   string
	url    string
	client *http.Client
}

// NewHTTPProvider returns a new HTTPProvider.
func NewHTTPProvider(name, url string) *HTTPProvider {
	return &HTTPProvider{
		name:   name,
		url:    url,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

func (p *HTTPProvider) Name() string { return p.name }

func (p *HTTPProvider) Now(ctx context.Context) (time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return time.Time{}, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return time.Time{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return time.Time{}, fmt.Errorf("time source %s returned status %d", p.name, resp.StatusCode)
	}

	var body struct {
		UnixTime int64 `json:"unixtime"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return time.Time{}, fmt.Errorf("time source %s returned malformed body: %w", p.name, err)
	}
	if body.UnixTime == 0 {
		return time.Time{}, fmt.Errorf("time source %s returned no unixtime", p.name)
	}
	return time.Unix(body.UnixTime, 0).UTC(), nil
}

// seam for deterministic fallback in tests
var localNow = time.Now

// Chain consults providers in order, retrying each with backoff, and falls
// back to the local clock when all of them fail.
type Chain struct {
	providers []Provider
	logger    logging.Logger
}

// NewChain returns a new Chain.
func NewChain(logger logging.Logger, providers ...Provider) *Chain {
	return &Chain{providers: providers, logger: logger}
}

// Now returns the current time from the first provider that answers. Every
// provider gets up to three attempts with exponential backoff. Exhausting the
// chain yields the local clock flagged untrusted.
func (c *Chain) Now(ctx context.Context) Result {
	for _, p := range c.providers {
		var t time.Time

		b := retry.WithMaxRetries(2, retry.NewExponential(200*time.Millisecond))
		err := retry.Do(ctx, b, func(ctx context.Context) error {
			var err error
			t, err = p.Now(ctx)
			if err != nil {
				return retry.RetryableError(err)
			}
			return nil
		})
		if err == nil {
			return Result{Time: t, Trusted: true, Source: p.Name()}
		}
		c.logger.Warn(ctx, "time source unreachable", "source", p.Name(), "error", err.Error())
	}

	c.logger.Warn(ctx, "all time sources unreachable, falling back to local clock")
	return Result{Time: localNow().UTC(), Trusted: false, Source: "local"}
}
