package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher defines the interface for talking to the research service.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	Ping(ctx context.Context) error
	FetchInitialCheck(ctx context.Context) (*InitialCheck, error)
	FetchSchedulerStatus(ctx context.Context) (*SchedulerStatus, error)
	FetchLatest(ctx context.Context) (*AnalysisBundle, error)
	FetchDates(ctx context.Context) ([]string, error)
	FetchAnalysis(ctx context.Context, date string) (*AnalysisBundle, error)
	FetchStats(ctx context.Context) (*StatsSummary, error)
	SubmitQuery(ctx context.Context, text string) (*QueryResult, error)
	TriggerUpdate(ctx context.Context) (*UpdateAck, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the research service HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultServerURL = "127.0.0.1:8000"
	defaultUserAgent = "stetho/0.1"
	maxErrorBody     = 64 << 10
)

// NewClient builds a Client for the provided server URL. A zero timeout
// leaves single attempts uncapped; the analysis endpoints can legitimately
// run long while the service regenerates content.
func NewClient(serverURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(serverURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// Ping issues a liveness request and discards the response body.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// FetchInitialCheck retrieves the service's startup status and next-update schedule.
func (c *Client) FetchInitialCheck(ctx context.Context) (*InitialCheck, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload InitialCheck
	if err := c.do(ctx, http.MethodGet, "/scheduler/initial-check", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchSchedulerStatus retrieves the background scheduler state and its jobs.
func (c *Client) FetchSchedulerStatus(ctx context.Context) (*SchedulerStatus, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload SchedulerStatus
	if err := c.do(ctx, http.MethodGet, "/scheduler/status", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchLatest retrieves the most recent analysis bundle.
func (c *Client) FetchLatest(ctx context.Context) (*AnalysisBundle, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload AnalysisBundle
	if err := c.do(ctx, http.MethodGet, "/analyses/latest", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchDates retrieves the index of dates that have analyses, newest first.
func (c *Client) FetchDates(ctx context.Context) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []string
	if err := c.do(ctx, http.MethodGet, "/analyses/dates", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchAnalysis retrieves the analysis bundle for one date (YYYY-MM-DD).
func (c *Client) FetchAnalysis(ctx context.Context, date string) (*AnalysisBundle, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, fmt.Errorf("date required")
	}
	rel := &url.URL{Path: "/analyses/" + date}
	var payload AnalysisBundle
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// FetchStats retrieves summary statistics about the analysis corpus.
func (c *Client) FetchStats(ctx context.Context) (*StatsSummary, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload StatsSummary
	if err := c.do(ctx, http.MethodGet, "/analyses/stats/summary", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// SubmitQuery sends an ad-hoc research question and returns the service's answer.
func (c *Client) SubmitQuery(ctx context.Context, text string) (*QueryResult, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("query text required")
	}
	body := queryRequest{Text: text}
	var payload QueryResult
	if err := c.do(ctx, http.MethodPost, "/query", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// TriggerUpdate asks the service to regenerate all analyses. The work is
// queued server-side; the ack arrives before the regeneration completes.
func (c *Client) TriggerUpdate(ctx context.Context) (*UpdateAck, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload UpdateAck
	if err := c.do(ctx, http.MethodPost, "/update-analyses", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	var req *http.Request
	var err error
	if reader != nil {
		req, err = http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	}
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &ServiceError{Status: resp.StatusCode, Detail: errorDetail(resp.Body)}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(serverURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(serverURL)
	if trimmed == "" {
		trimmed = defaultServerURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse server_url %q: %w", serverURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
