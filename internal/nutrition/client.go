package nutrition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultURL is the Nutritionix natural language nutrients endpoint.
	DefaultURL = "https://trackapi.nutritionix.com/v2/natural/nutrients"
	// DefaultTimeout bounds a single lookup call.
	DefaultTimeout = 10 * time.Second

	maxErrorBody = 4 << 10
)

// Config holds the settings for a Nutritionix client
type Config struct {
	AppID   string
	AppKey  string
	URL     string
	Timeout time.Duration
	// HTTPClient is optional; a client without its own timeout is used otherwise.
	HTTPClient *http.Client
}

// Client calls the Nutritionix API
type Client struct {
	appID      string
	appKey     string
	url        string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a Client, failing fast when credentials are missing.
func NewClient(cfg Config) (*Client, error) {
	if err := checkCredentials(cfg.AppID, cfg.AppKey); err != nil {
		return nil, err
	}

	url := cfg.URL
	if url == "" {
		url = DefaultURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		appID:      cfg.AppID,
		appKey:     cfg.AppKey,
		url:        url,
		timeout:    timeout,
		httpClient: httpClient,
	}, nil
}

func checkCredentials(appID, appKey string) error {
	var missing []string
	if appID == "" {
		missing = append(missing, "NUTRITIONIX_APP_ID")
	}
	if appKey == "" {
		missing = append(missing, "NUTRITIONIX_APP_KEY")
	}
	if len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}
	return nil
}

type lookupRequest struct {
	Query string `json:"query"`
}

type lookupResponse struct {
	Foods []Food `json:"foods"`
}

// Lookup sends query to the nutrients endpoint and returns one record per
// recognised food. It performs exactly one outbound call and never retries.
func (c *Client) Lookup(ctx context.Context, query string) ([]Food, error) {
	if err := checkCredentials(c.appID, c.appKey); err != nil {
		return nil, err
	}
	if err := checkQuery(query); err != nil {
		return nil, err
	}

	jsonData, err := json.Marshal(lookupRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-app-id", c.appID)
	req.Header.Set("x-app-key", c.appKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "nutrition lookup failed", "query", query, "error", err)
		return nil, &UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	slog.DebugContext(ctx, "nutrition lookup",
		"query", query,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if readErr != nil {
			return nil, &UpstreamError{StatusCode: resp.StatusCode, Err: readErr}
		}
		slog.WarnContext(ctx, "nutrition service error",
			"query", query,
			"status", resp.StatusCode,
			"body", string(body),
		)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &UpstreamError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return result.Foods, nil
}
