package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when the repository, ref or file does not exist.
	ErrNotFound = errors.New("github: not found")
	// ErrConflict is returned when the supplied blob SHA no longer matches the file.
	ErrConflict = errors.New("github: sha conflict")
)

// APIError describes a non-success response from the GitHub API.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("GitHub API error: %s", e.Status)
	}
	return fmt.Sprintf("GitHub API error: %d - %s", e.StatusCode, body)
}

// Unwrap maps well-known statuses onto the package sentinels. A stale sha is
// reported as 409, or as 422 with a message naming the sha.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode == http.StatusConflict:
		return ErrConflict
	case e.StatusCode == http.StatusUnprocessableEntity && strings.Contains(e.Body, "sha"):
		return ErrConflict
	}
	return nil
}

// File is a decoded file from the contents API.
type File struct {
	Content string
	SHA     string
}

// PutRequest describes a create-or-update of a single file.
type PutRequest struct {
	Owner   string
	Repo    string
	Path    string
	Message string
	Content string
	Branch  string
	SHA     string
}

// Commit is the outcome of a successful PutFile.
type Commit struct {
	SHA       string `json:"sha"`
	CommitURL string `json:"commitUrl"`
	Message   string `json:"message"`
}

// Client provides access to the GitHub contents API.
type Client struct {
	baseURL    string
	token      string
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

// WithToken authenticates requests with a bearer token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// New creates a GitHub client rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("github base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type contentResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	SHA      string `json:"sha"`
}

type putBody struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch,omitempty"`
	SHA     string `json:"sha,omitempty"`
}

type putResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
	Commit struct {
		SHA     string `json:"sha"`
		HTMLURL string `json:"html_url"`
	} `json:"commit"`
}

func (c *Client) contentsURL(owner, repo, path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		c.baseURL, url.PathEscape(owner), url.PathEscape(repo), strings.Join(segments, "/"))
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("github request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode github response: %w", err)
	}
	return nil
}

// GetFile fetches path at ref and decodes its base64 content.
func (c *Client) GetFile(ctx context.Context, owner, repo, path, ref string) (File, error) {
	endpoint := c.contentsURL(owner, repo, path)
	if ref != "" {
		endpoint += "?ref=" + url.QueryEscape(ref)
	}
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return File{}, err
	}
	var payload contentResponse
	if err := c.do(req, &payload); err != nil {
		return File{}, err
	}
	content, err := decodeContent(payload.Content)
	if err != nil {
		return File{}, err
	}
	return File{Content: content, SHA: payload.SHA}, nil
}

// PutFile creates or updates a file. SHA must be the current blob SHA when
// the file already exists and empty when creating it.
func (c *Client) PutFile(ctx context.Context, r PutRequest) (Commit, error) {
	body, err := json.Marshal(putBody{
		Message: r.Message,
		Content: base64.StdEncoding.EncodeToString([]byte(r.Content)),
		Branch:  r.Branch,
		SHA:     r.SHA,
	})
	if err != nil {
		return Commit{}, fmt.Errorf("encode request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPut, c.contentsURL(r.Owner, r.Repo, r.Path), bytes.NewReader(body))
	if err != nil {
		return Commit{}, err
	}
	var payload putResponse
	if err := c.do(req, &payload); err != nil {
		return Commit{}, err
	}
	return Commit{SHA: payload.Content.SHA, CommitURL: payload.Commit.HTMLURL}, nil
}

// decodeContent strips the line breaks GitHub inserts every 60 characters.
func decodeContent(encoded string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, encoded)
	data, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return "", fmt.Errorf("decode file content: %w", err)
	}
	return string(data), nil
}
