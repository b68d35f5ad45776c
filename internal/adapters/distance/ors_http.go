package distance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	initialBackoff = 200 * time.Millisecond
	// Upper bound for a server-requested Retry-After wait.
	maxRetryAfter = 10 * time.Second
)

// httpStatusError is a non-2xx ORS response.
type httpStatusError struct {
	Code       int
	Body       string
	RetryAfter time.Duration
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("ors status %d: %s", e.Code, e.Body)
}

func (o *ORSClient) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json, application/geo+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	return req, nil
}

// send waits for the rate limiter, then performs one request. Non-2xx
// responses are drained and returned as *httpStatusError.
func (o *ORSClient) send(req *http.Request) (*http.Response, error) {
	if o.limiter != nil {
		if err := o.limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	resp, err := o.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	return nil, &httpStatusError{
		Code:       resp.StatusCode,
		Body:       strings.TrimSpace(string(b)),
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
	}
}

// doWithRetry performs up to maxAttempts requests. Only transient failures
// (network errors, 429 and 5xx gateway responses) are retried, with
// exponential backoff or the server's Retry-After when longer.
func (o *ORSClient) doWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	attempts := max(o.maxAttempts, 1)
	backoff := initialBackoff

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := o.send(req)
		if err == nil {
			return resp, nil
		}

		wait, ok := retryDelay(err, backoff)
		if !ok || attempt >= attempts {
			return nil, err
		}
		log.Printf("op=ors.retry attempt=%d/%d wait=%s err=%v", attempt, attempts, wait, err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}
}

// retryDelay reports whether err is transient and how long to wait before the next attempt.
func retryDelay(err error, backoff time.Duration) (time.Duration, bool) {
	var he *httpStatusError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return max(backoff, he.RetryAfter), true
		}
		return 0, false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return backoff, true
	}
	return 0, false
}

// parseRetryAfter accepts the delay-seconds form only.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return min(time.Duration(secs)*time.Second, maxRetryAfter)
}
