package strava

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	limiter := NewRateLimiter()
	limiter.minInterval = 0
	return &Client{
		httpClient:  server.Client(),
		rateLimiter: limiter,
		baseURL:     server.URL,
	}
}

func TestListActivitiesPagination(t *testing.T) {
	pages := map[string][]Activity{
		"1": {{ID: 1, Type: "Run"}, {ID: 2, Type: "Ride"}},
		"2": {{ID: 3, Type: "Run"}},
		"3": {},
	}

	var gotAfter, gotBefore string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/athlete/activities" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAfter = r.URL.Query().Get("after")
		gotBefore = r.URL.Query().Get("before")
		json.NewEncoder(w).Encode(pages[r.URL.Query().Get("page")])
	})

	after := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	before := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	activities, err := c.ListActivities(context.Background(), after, before)
	if err != nil {
		t.Fatalf("ListActivities() error = %v", err)
	}

	if len(activities) != 3 {
		t.Errorf("got %d activities across pages, want 3", len(activities))
	}
	if gotAfter != "1749427200" || gotBefore != "1750032000" {
		t.Errorf("epoch bounds = (%s, %s)", gotAfter, gotBefore)
	}
}

func TestActivityDetail(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/activities/42" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(ActivityDetail{ID: 42, Name: "Tempo", Description: "Felt good."})
	})

	detail, err := c.ActivityDetail(context.Background(), 42)
	if err != nil {
		t.Fatalf("ActivityDetail() error = %v", err)
	}
	if detail.Description != "Felt good." {
		t.Errorf("Description = %q", detail.Description)
	}
}

func TestGetNonRetryableError(t *testing.T) {
	calls := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Record Not Found"}`))
	})

	_, err := c.Gear(context.Background(), "g1")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("error = %v, want 404", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (4xx other than 429 is terminal)", calls)
	}
}
