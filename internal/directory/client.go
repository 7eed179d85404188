package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "https://api.theorg.com/v1"
	defaultUserAgent = "prospect-directory-client/0.1"

	// Delay before the single retry on a rate-limited response.
	rateLimitDelay = time.Second
)

// Config controls how the directory client behaves.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	UserAgent  string
}

// Client talks to the positions directory API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	userAgent  string
}

// New creates a configured Client with sane defaults. A missing API key is a
// configuration error surfaced before any network call.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
		userAgent:  userAgent,
	}, nil
}

// SearchQuery filters a positions search.
type SearchQuery struct {
	Country string
	Titles  []string
	Limit   int
	Offset  int
}

type searchFilters struct {
	Departments []string         `json:"departments"`
	Locations   []locationFilter `json:"locations,omitempty"`
	JobTitles   []string         `json:"jobTitles,omitempty"`
}

type locationFilter struct {
	Country string `json:"country"`
}

type searchRequest struct {
	Limit   int           `json:"limit"`
	Offset  int           `json:"offset"`
	Filters searchFilters `json:"filters"`
}

// SearchPositions issues a single filtered request against the positions
// endpoint. One call covers all titles; per-title request loops burn through
// the rate limit for no gain.
func (c *Client) SearchPositions(ctx context.Context, query SearchQuery) ([]Position, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 10
	}
	reqBody := searchRequest{
		Limit:  limit,
		Offset: query.Offset,
		Filters: searchFilters{
			Departments: []string{"product"},
			JobTitles:   query.Titles,
		},
	}
	if query.Country != "" {
		reqBody.Filters.Locations = []locationFilter{{Country: query.Country}}
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("directory: marshal search body: %w", err)
	}

	data, err := c.post(ctx, "/positions", body)
	if err != nil {
		return nil, err
	}

	records := decodePositions(data)
	c.logger.Info("directory search completed",
		"country", query.Country,
		"offset", query.Offset,
		"records", len(records),
	)
	return records, nil
}

// post sends the request, retrying once after a short delay when the API
// answers 429.
func (c *Client) post(ctx context.Context, path string, body []byte) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("directory: build request: %w", err)
		}
		req.Header.Set("X-Api-Key", c.apiKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("directory: http error: %w", err)
		}
		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("directory: read response: %w", readErr)
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return data, nil
		}
		if resp.StatusCode == http.StatusTooManyRequests && attempt == 0 {
			c.logger.Warn("directory rate limited, retrying once", "path", path)
			select {
			case <-time.After(rateLimitDelay):
				continue
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		return nil, &DirectoryError{StatusCode: resp.StatusCode, Body: truncateBody(data)}
	}
}

// truncateBody keeps error payloads loggable.
func truncateBody(body []byte) string {
	const max = 512
	s := string(body)
	if len(s) > max {
		return s[:max]
	}
	return s
}
