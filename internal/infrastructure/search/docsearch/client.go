package docsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okondratev/devdocs-qa/internal/core/domain"
	"github.com/okondratev/devdocs-qa/internal/infrastructure/resilience"
)

// Client queries the per-domain documentation search endpoints:
//
//	GET {base}/search/{domain}?query=..&max_results=n
//	GET {base}/document/{domain}/{id}
//
// Errors are returned to the caller; the retrieval loop treats them as empty
// results for the affected domain.
type Client struct {
	baseURL    string
	httpClient *http.Client
	executor   *resilience.Executor
}

type Options struct {
	Timeout  time.Duration
	Executor *resilience.Executor
}

func New(baseURL string, options Options) *Client {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		executor:   options.Executor,
	}
}

func (c *Client) Search(ctx context.Context, d domain.Domain, query string, maxResults int) ([]domain.DocumentRef, error) {
	if maxResults <= 0 {
		maxResults = 5
	}

	searchURL := fmt.Sprintf(
		"%s/search/%s?query=%s&max_results=%d",
		c.baseURL, url.PathEscape(string(d)), url.QueryEscape(query), maxResults,
	)

	var response struct {
		Documents []domain.DocumentRef `json:"documents"`
	}
	if err := c.get(ctx, "search.query", searchURL, &response); err != nil {
		return nil, err
	}
	return response.Documents, nil
}

func (c *Client) FetchContent(ctx context.Context, d domain.Domain, id string) (string, error) {
	contentURL := fmt.Sprintf(
		"%s/document/%s/%s",
		c.baseURL, url.PathEscape(string(d)), url.PathEscape(id),
	)

	var response struct {
		Content string `json:"content"`
	}
	if err := c.get(ctx, "search.fetch", contentURL, &response); err != nil {
		return "", err
	}
	return response.Content, nil
}

func (c *Client) get(ctx context.Context, operation, rawURL string, out any) error {
	call := func(callCtx context.Context) error {
		req, err := http.NewRequestWithContext(callCtx, http.MethodGet, rawURL, nil)
		if err != nil {
			return fmt.Errorf("create %s request: %w", operation, err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("doc search %s request: %w", operation, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			if msg := strings.TrimSpace(string(body)); msg != "" {
				return fmt.Errorf("doc search %s status: %s: %s", operation, resp.Status, msg)
			}
			return fmt.Errorf("doc search %s status: %s", operation, resp.Status)
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", operation, err)
		}
		return nil
	}

	if c.executor != nil {
		return c.executor.Execute(ctx, operation, call, classifySearchError)
	}
	return call(ctx)
}
