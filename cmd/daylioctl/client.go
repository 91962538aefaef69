package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
)

const maxGetAttempts = 4

var retryInitialInterval = 250 * time.Millisecond

func newClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(2 * time.Minute)
}

// expectStatus turns an unexpected response into an error carrying the body.
func expectStatus(resp *resty.Response, want int) error {
	if resp.StatusCode() != want {
		return fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// getWithRetry issues an idempotent GET, retrying transport failures and 5xx
// replies with exponential backoff. Any other non-200 reply fails at once.
func getWithRetry(ctx context.Context, c *resty.Client, path string, initial time.Duration) (*resty.Response, error) {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = initial
	exp.Multiplier = 2
	exp.MaxInterval = 5 * time.Second
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, maxGetAttempts-1), ctx)

	var resp *resty.Response
	op := func() error {
		r, err := c.R().SetContext(ctx).Get(path)
		if err != nil {
			return fmt.Errorf("GET %s: %w", path, err)
		}
		resp = r
		if r.StatusCode() >= http.StatusInternalServerError {
			return expectStatus(r, http.StatusOK)
		}
		if err := expectStatus(r, http.StatusOK); err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}
	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}
	return resp, nil
}
