package lrcapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lyrebird/internal/services"
)

// Client talks to a self-hosted LrcApi deployment. LrcApi has no search
// endpoint; the /lyrics and /cover endpoints resolve directly from
// title/artist/album parameters.
type Client struct {
	baseURL    string
	authKey    string
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

// New creates an LrcApi client. authKey is optional; when set it is sent
// as the Authorization header.
func New(baseURL, authKey string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("lrcapi base url required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		authKey:    strings.TrimSpace(authKey),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FetchLyrics queries /lyrics. A body is accepted only when it looks like
// LRC text: non-empty, contains a timestamp bracket, and is not a JSON
// error payload. Anything else reports absence.
func (c *Client) FetchLyrics(ctx context.Context, title, artist string) (string, error) {
	params := url.Values{}
	if title != "" {
		params.Set("title", title)
	}
	if artist != "" {
		params.Set("artist", artist)
	}

	body, _, err := c.get(ctx, "/lyrics", params, "lyrics")
	if err != nil {
		return "", err
	}
	text := string(body)
	if text == "" || !strings.Contains(text, "[") || strings.HasPrefix(text, "{") {
		return "", nil
	}
	return text, nil
}

// FetchCover queries /cover. Responses that are neither image-typed nor
// plausibly sized report absence.
func (c *Client) FetchCover(ctx context.Context, title, artist, album string) ([]byte, error) {
	params := url.Values{}
	if title != "" {
		params.Set("title", title)
	}
	if album != "" {
		params.Set("album", album)
	}
	if artist != "" {
		params.Set("artist", artist)
	}

	body, contentType, err := c.get(ctx, "/cover", params, "cover")
	if err != nil {
		return nil, err
	}
	if strings.Contains(contentType, "image") || len(body) > 1000 {
		return body, nil
	}
	return nil, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, op string) ([]byte, string, error) {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, "", fmt.Errorf("parse lrcapi url: %w", err)
	}
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	if c.authKey != "" {
		req.Header.Set("Authorization", c.authKey)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, "", services.WrapCtx(ctx, services.ClassifyTransport(err), "lrcapi", op,
			fmt.Sprintf("execute request (latency=%v)", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", services.WrapCtx(ctx, services.ClassifyStatus(resp.StatusCode), "lrcapi", op,
			fmt.Sprintf("returned %d (latency=%v)", resp.StatusCode, latency), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", services.WrapCtx(ctx, services.ErrTransient, "lrcapi", op, "read body", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}
