// Package api talks to the remote posts collection (GET/POST /items,
// PUT/DELETE /items/{id}).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/blog/internal/model"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout bounds every request. Zero leaves requests unbounded.
// The timeout is set on a copy of the HTTP client, never on a caller's.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// Client is a JSON client for a single collection endpoint.
type Client struct {
	collection string
	httpClient *http.Client
	timeout    time.Duration
	log        zerolog.Logger
}

// NewClient creates a Client for the collection URL, e.g.
// "https://example.com/items".
func NewClient(collectionURL string, opts ...Option) (*Client, error) {
	collectionURL = strings.TrimSpace(collectionURL)
	if collectionURL == "" {
		return nil, errors.New("api: collection URL is required")
	}
	u, err := url.Parse(collectionURL)
	if err != nil {
		return nil, fmt.Errorf("api: invalid collection URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api: collection URL must be absolute, got %q", collectionURL)
	}

	c := &Client{
		collection: strings.TrimRight(u.String(), "/"),
		httpClient: &http.Client{},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// List returns every post in the collection.
func (c *Client) List(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := c.do(ctx, http.MethodGet, c.collection, nil, &posts); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	if posts == nil {
		posts = []model.Post{}
	}
	return posts, nil
}

// Create posts a new entry and returns what the server stored.
func (c *Client) Create(ctx context.Context, d model.Draft) (model.Post, error) {
	var p model.Post
	if err := c.do(ctx, http.MethodPost, c.collection, d, &p); err != nil {
		return model.Post{}, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

// Update replaces title and content of the post with the given id.
func (c *Client) Update(ctx context.Context, id string, d model.Draft) (model.Post, error) {
	var p model.Post
	if err := c.do(ctx, http.MethodPut, c.itemURL(id), d, &p); err != nil {
		return model.Post{}, fmt.Errorf("update post %s: %w", id, err)
	}
	return p, nil
}

// Delete removes the post with the given id and returns the server's
// confirmation. Any 2xx counts as deleted, whatever the body holds.
func (c *Client) Delete(ctx context.Context, id string) (string, error) {
	var body []byte
	if err := c.do(ctx, http.MethodDelete, c.itemURL(id), nil, &body); err != nil {
		return "", fmt.Errorf("delete post %s: %w", id, err)
	}
	return confirmation(body), nil
}

// confirmation reads the message of a JSON object or a JSON string, and
// otherwise keeps the trimmed body as is.
func confirmation(body []byte) string {
	body = bytes.TrimSpace(body)
	var obj struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &obj) == nil {
		return obj.Message
	}
	var str string
	if json.Unmarshal(body, &str) == nil {
		return str
	}
	return string(body)
}

func (c *Client) itemURL(id string) string {
	return c.collection + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, target string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newHTTPError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if raw, ok := out.(*[]byte); ok {
		*raw = data
		return nil
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}
