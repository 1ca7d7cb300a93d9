// Package gateway is the adapter for the hosted table service. Table
// operations speak PostgREST conventions (filter and order query params,
// representation-returning writes); auth goes through the service's token
// endpoints. The server holds a service key, so table calls carry the
// configured key rather than a per-user session.
package gateway

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Binarybee001/Shabana-Palace/internal/adapters/observability"
	"github.com/Binarybee001/Shabana-Palace/internal/domain"
)

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("gateway base URL is required")
	}
	if key == "" {
		return nil, fmt.Errorf("gateway API key is required")
	}
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- request plumbing ----

type request struct {
	method string
	path   string // e.g. "/rest/v1/rooms"
	query  url.Values
	body   any
	bearer string // defaults to the API key
	// Prefer: return=representation on writes that need the stored record back
	representation bool
}

// do performs one gateway round trip with client-side rate limiting and, for
// idempotent methods, retries on 429 and transient 5xx honoring Retry-After.
// POSTs get a single attempt; a blind retry could double-insert.
func (c *Client) do(ctx context.Context, req request, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	attempts := 4
	if req.method == http.MethodPost {
		attempts = 1
	}

	u := c.base + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		var body io.Reader
		if req.body != nil {
			b, err := json.Marshal(req.body)
			if err != nil {
				return err
			}
			body = bytes.NewReader(b)
		}
		hr, err := http.NewRequestWithContext(ctx, req.method, u, body)
		if err != nil {
			return err
		}
		hr.Header.Set("apikey", c.key)
		bearer := req.bearer
		if bearer == "" {
			bearer = c.key
		}
		hr.Header.Set("Authorization", "Bearer "+bearer)
		hr.Header.Set("Accept", "application/json")
		if req.body != nil {
			hr.Header.Set("Content-Type", "application/json")
		}
		if req.representation {
			hr.Header.Set("Prefer", "return=representation")
		}

		start := time.Now()
		resp, err := c.hc.Do(hr)
		if err != nil {
			observability.ObserveExternal("gateway", req.path, 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < attempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			return lastErr
		}
		observability.ObserveExternal("gateway", req.path, resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated:
			if out == nil {
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				return nil
			}
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNoContent:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case http.StatusNotFound, http.StatusNotAcceptable:
			resp.Body.Close()
			return domain.ErrNotFound

		case http.StatusUnauthorized, http.StatusForbidden:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			resp.Body.Close()
			return fmt.Errorf("%w: gateway status %d: %s",
				domain.ErrAuth, resp.StatusCode, strings.TrimSpace(string(b)))

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("gateway status %d", resp.StatusCode)
			if i < attempts-1 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		case http.StatusBadRequest:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return &badRequestError{detail: strings.TrimSpace(string(b))}

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("gateway status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}
	return lastErr
}

// badRequestError carries a 400 response body; the auth adapter maps it to
// the credentials failure the token endpoint expresses this way.
type badRequestError struct{ detail string }

func (e *badRequestError) Error() string { return "gateway status 400: " + e.detail }

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if
// absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential delay (200ms, 400ms, 800ms...) with up to
// +50% jitter from crypto/rand, safe under concurrency.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
