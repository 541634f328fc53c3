package intervals

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// BaseURL is the Intervals.icu API root.
const BaseURL = "https://intervals.icu/api/v1"

const (
	maxAttempts = 5
	maxBackoff  = 30 * time.Second

	// basicAuthUser is the fixed username for API-key authentication.
	basicAuthUser = "API_KEY"
)

// Client is an Intervals.icu API client authenticated with an API key
// over HTTP Basic auth. Transient upstream failures are retried with
// capped exponential backoff, and the client slows down when the
// server-reported rate-limit budget runs low.
type Client struct {
	apiKey     string
	athleteID  int
	httpClient *http.Client
	baseURL    string

	// sleep is stubbed in tests.
	sleep func(time.Duration)
}

// NewClient creates a client for the given athlete.
func NewClient(apiKey string, athleteID int) *Client {
	return &Client{
		apiKey:     apiKey,
		athleteID:  athleteID,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    BaseURL,
		sleep:      time.Sleep,
	}
}

// ListActivities fetches completed activities with local start dates in
// [oldest, newest], both ISO dates. The response schema varies between
// athletes and plan tiers, so records are returned loosely typed.
func (c *Client) ListActivities(ctx context.Context, oldest, newest string) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("oldest", oldest)
	params.Set("newest", newest)
	path := fmt.Sprintf("/athlete/%d/activities", c.athleteID)

	resp, err := c.do(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var activities []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		return nil, fmt.Errorf("decoding activities response: %w", err)
	}
	return activities, nil
}

// UpsertEvents uploads calendar events in one bulk request. The server
// upserts by external_id, so the call is idempotent. No-op for an empty
// slice.
func (c *Client) UpsertEvents(ctx context.Context, events []Event) error {
	if len(events) == 0 {
		return nil
	}
	params := url.Values{}
	params.Set("upsert", "true")
	path := fmt.Sprintf("/athlete/%d/events/bulk", c.athleteID)

	resp, err := c.do(ctx, http.MethodPost, path, params, events)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any) (*http.Response, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
		if err != nil {
			return nil, err
		}
		req.SetBasicAuth(basicAuthUser, c.apiKey)
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if err := c.backoff(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			resp.Body.Close()
			return nil, fmt.Errorf("Intervals.icu auth failed (%d): check the API key", resp.StatusCode)
		case retryableStatus(resp.StatusCode):
			resp.Body.Close()
			lastErr = fmt.Errorf("API error %d", resp.StatusCode)
			if err := c.backoff(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		case resp.StatusCode >= 400:
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
		}

		c.maybeSlowDown(resp.Header)
		return resp, nil
	}
	return nil, fmt.Errorf("contacting Intervals.icu after %d attempts: %w", maxAttempts, lastErr)
}

// maybeSlowDown pauses briefly when the remaining rate-limit budget
// drops to 10% or below.
func (c *Client) maybeSlowDown(h http.Header) {
	remaining, err1 := strconv.Atoi(h.Get("X-RateLimit-Remaining"))
	limit, err2 := strconv.Atoi(h.Get("X-RateLimit-Limit"))
	if err1 != nil || err2 != nil || limit <= 0 {
		return
	}
	if float64(remaining)/float64(limit) <= 0.1 {
		c.sleep(2 * time.Second)
	}
}

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func (c *Client) backoff(ctx context.Context, attempt int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d := min(time.Duration(1<<attempt)*time.Second, maxBackoff)
	d += time.Duration(rand.Int63n(int64(500 * time.Millisecond)))
	c.sleep(d)
	return ctx.Err()
}
