package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// maxResponseSize caps the leaderboard body read from the server.
const maxResponseSize = 10 * 1024 * 1024

// apiClient fetches private leaderboards from the event website.
type apiClient struct {
	baseURL   string
	cookie    string
	userAgent string
	http      *http.Client
}

// newAPIClient creates a client for cfg. An empty cookie sends no Cookie header.
func newAPIClient(cfg appSettings, cookie string) (*apiClient, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base_url is required")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base_url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base_url: %q", cfg.BaseURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")

	c := &apiClient{
		baseURL:   u.String(),
		cookie:    strings.TrimSpace(cookie),
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.timeout()},
	}
	if c.userAgent == "" {
		c.userAgent = defaultUA
	}
	return c, nil
}

// statusError is a non-2xx response.
type statusError struct {
	StatusCode int
	Reason     string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d %s", e.StatusCode, e.Reason)
}

// transportError means no usable response was received.
type transportError struct {
	Err error
}

func (e *transportError) Error() string { return e.Err.Error() }
func (e *transportError) Unwrap() error { return e.Err }

// payloadError means the response body was not a leaderboard document.
type payloadError struct {
	Msg string
	Err error
}

func (e *payloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed leaderboard: %s: %v", e.Msg, e.Err)
	}
	return "malformed leaderboard: " + e.Msg
}

func (e *payloadError) Unwrap() error { return e.Err }

// leaderboardPath returns the JSON path of a private leaderboard.
func leaderboardPath(year int, id string) string {
	return fmt.Sprintf("/%d/leaderboard/private/view/%s.json", year, url.PathEscape(id))
}

// leaderboardURL returns the absolute JSON URL of a private leaderboard.
func (c *apiClient) leaderboardURL(year int, id string) string {
	return c.baseURL + leaderboardPath(year, id)
}

// get performs a single GET and returns the body of a 2xx response.
func (c *apiClient) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.cookie != "" {
		req.Header.Set("Cookie", "session="+c.cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &transportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{StatusCode: resp.StatusCode, Reason: reasonPhrase(resp)}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &transportError{Err: fmt.Errorf("read response: %w", err)}
	}
	return b, nil
}

// reasonPhrase prefers the server's phrase from the status line.
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}

// fetchLeaderboardJSON returns the raw leaderboard document after checking it is JSON.
func (c *apiClient) fetchLeaderboardJSON(ctx context.Context, year int, id string) ([]byte, error) {
	b, err := c.get(ctx, c.leaderboardURL(year, id))
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, &payloadError{Msg: "empty response body"}
	}
	if !gjson.ValidBytes(b) {
		return nil, &payloadError{Msg: "response is not valid JSON"}
	}
	return b, nil
}

// fetchLeaderboard fetches and decodes a private leaderboard.
func (c *apiClient) fetchLeaderboard(ctx context.Context, year int, id string) (*leaderboard, error) {
	b, err := c.fetchLeaderboardJSON(ctx, year, id)
	if err != nil {
		return nil, err
	}
	return parseLeaderboard(b)
}
