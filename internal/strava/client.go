package strava

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
)

// BaseURL is the Strava API v3 root.
const BaseURL = "https://www.strava.com/api/v3"

const (
	maxAttempts = 5
	maxBackoff  = 30 * time.Second
)

// Client is a Strava API client. Requests are authenticated through the
// injected token source and paced by a rate limiter; transient upstream
// failures are retried with capped exponential backoff.
type Client struct {
	httpClient  *http.Client
	rateLimiter *RateLimiter
	baseURL     string
}

// NewClient creates a client that authenticates via tokenSource.
func NewClient(tokenSource oauth2.TokenSource) *Client {
	return &Client{
		httpClient:  oauth2.NewClient(context.Background(), tokenSource),
		rateLimiter: NewRateLimiter(),
		baseURL:     BaseURL,
	}
}

// ListActivities fetches all activities whose start time falls in
// (after, before), following pagination until the last page.
func (c *Client) ListActivities(ctx context.Context, after, before time.Time) ([]Activity, error) {
	perPage := 200
	var all []Activity
	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("after", strconv.FormatInt(after.Unix(), 10))
		params.Set("before", strconv.FormatInt(before.Unix(), 10))
		params.Set("page", strconv.Itoa(page))
		params.Set("per_page", strconv.Itoa(perPage))

		var activities []Activity
		if err := c.getJSON(ctx, "/athlete/activities", params, &activities); err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", page, err)
		}
		if len(activities) == 0 {
			break
		}
		all = append(all, activities...)
	}
	return all, nil
}

// ActivityDetail fetches the detailed record for one activity.
func (c *Client) ActivityDetail(ctx context.Context, activityID int64) (*ActivityDetail, error) {
	var detail ActivityDetail
	path := fmt.Sprintf("/activities/%d", activityID)
	if err := c.getJSON(ctx, path, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Gear fetches an equipment record by id.
func (c *Client) Gear(ctx context.Context, gearID string) (*Gear, error) {
	var gear Gear
	path := fmt.Sprintf("/gear/%s", url.PathEscape(gearID))
	if err := c.getJSON(ctx, path, nil, &gear); err != nil {
		return nil, err
	}
	return &gear, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	resp, err := c.get(ctx, path, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if err := backoff(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		}

		c.rateLimiter.UpdateFromHeaders(resp.Header)

		if retryableStatus(resp.StatusCode) {
			resp.Body.Close()
			lastErr = fmt.Errorf("API error %d", resp.StatusCode)
			if err := backoff(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
		}
		return resp, nil
	}
	return nil, fmt.Errorf("contacting Strava after %d attempts: %w", maxAttempts, lastErr)
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

// backoff sleeps for an exponentially growing, jittered interval.
func backoff(ctx context.Context, attempt int) error {
	d := min(time.Duration(1<<attempt)*time.Second, maxBackoff)
	d += time.Duration(rand.Int63n(int64(500 * time.Millisecond)))
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
