package tunehub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lyrebird/internal/services"
)

// Result represents a single aggregate-search hit.
type Result struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Platform string `json:"platform"`
	LrcURL   string `json:"lrc"`
	PicURL   string `json:"pic"`
}

type searchResponse struct {
	Code int `json:"code"`
	Data struct {
		Results []Result `json:"results"`
	} `json:"data"`
}

// Client talks to a TuneHub aggregate-search deployment.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a TuneHub client.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tunehub base url required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Search performs an aggregate search across the upstream platforms.
// A payload-level non-200 code means the upstream found nothing and
// yields an empty result set, not an error.
func (c *Client) Search(ctx context.Context, keyword string) ([]Result, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, nil
	}
	endpoint, err := url.Parse(c.baseURL + "/api/")
	if err != nil {
		return nil, fmt.Errorf("parse tunehub url: %w", err)
	}
	params := url.Values{}
	params.Set("type", "aggregateSearch")
	params.Set("keyword", keyword)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, services.WrapCtx(ctx, services.ClassifyTransport(err), "tunehub", "search",
			fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, services.WrapCtx(ctx, services.ClassifyStatus(resp.StatusCode), "tunehub", "search",
			fmt.Sprintf("returned %d (latency=%v)", resp.StatusCode, latency), nil)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, services.WrapCtx(ctx, services.ErrProvider, "tunehub", "search", "decode response", err)
	}
	if payload.Code != http.StatusOK {
		return nil, nil
	}
	return payload.Data.Results, nil
}

// FetchLyrics retrieves the LRC text behind a result's lyrics URL.
// Empty or JSON-error bodies report absence.
func (c *Client) FetchLyrics(ctx context.Context, result Result) (string, error) {
	if strings.TrimSpace(result.LrcURL) == "" {
		return "", nil
	}
	body, _, err := c.fetch(ctx, result.LrcURL, "lyrics")
	if err != nil {
		return "", err
	}
	text := string(body)
	if text == "" || strings.HasPrefix(text, "{") {
		return "", nil
	}
	return text, nil
}

// FetchCover retrieves the image behind a result's cover URL. Responses that
// are neither image-typed nor plausibly sized report absence.
func (c *Client) FetchCover(ctx context.Context, result Result) ([]byte, error) {
	if strings.TrimSpace(result.PicURL) == "" {
		return nil, nil
	}
	body, contentType, err := c.fetch(ctx, result.PicURL, "cover")
	if err != nil {
		return nil, err
	}
	if strings.Contains(contentType, "image") || len(body) > 1000 {
		return body, nil
	}
	return nil, nil
}

func (c *Client) fetch(ctx context.Context, rawURL, op string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, "", services.WrapCtx(ctx, services.ClassifyTransport(err), "tunehub", op,
			fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", services.WrapCtx(ctx, services.ClassifyStatus(resp.StatusCode), "tunehub", op,
			fmt.Sprintf("returned %d (latency=%v)", resp.StatusCode, latency), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", services.WrapCtx(ctx, services.ErrTransient, "tunehub", op, "read body", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

