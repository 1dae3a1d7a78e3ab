package azdo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dshills/azdevops-mcp/internal/credentials"
)

const (
	// APIVersion is attached to every request as the api-version query
	// parameter.
	APIVersion = "7.1"

	requestTimeout = 30 * time.Second

	baseURLFormat   = "https://dev.azure.com/%s"
	vsspsURLFormat  = "https://vssps.dev.azure.com/%s"
	searchURLFormat = "https://almsearch.dev.azure.com/%s"

	contentTypeJSON      = "application/json"
	contentTypeJSONPatch = "application/json-patch+json"
)

// QueryParam is a single URL query pair. Parameters are sent in the order
// given and duplicate keys are preserved, per HTTP semantics.
type QueryParam struct {
	Key   string
	Value string
}

// Result is the decoded JSON body of a successful API response.
type Result map[string]interface{}

// Client calls the Azure DevOps REST API v7.1 for one organization. It
// holds the resolved credential pair and no other state, so a single
// instance is safe for concurrent use. The client never retries: 429 and
// 5xx responses surface as *TransientError for the caller to handle.
type Client struct {
	creds      credentials.Credentials
	httpClient *http.Client

	baseURL   string
	vsspsURL  string
	searchURL string
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURLs overrides the service hosts. Used by tests to point the
// client at a local server; empty strings keep the default host.
func WithBaseURLs(base, vssps, search string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = base
		}
		if vssps != "" {
			c.vsspsURL = vssps
		}
		if search != "" {
			c.searchURL = search
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a client for the organization named in creds.
func NewClient(creds credentials.Credentials, opts ...Option) *Client {
	c := &Client{
		creds: creds,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL:   fmt.Sprintf(baseURLFormat, creds.Org),
		vsspsURL:  fmt.Sprintf(vsspsURLFormat, creds.Org),
		searchURL: fmt.Sprintf(searchURLFormat, creds.Org),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call issues one authenticated request and translates the response.
// path is relative to the organization root (it may carry project and
// team segments); params are appended after api-version in caller order.
func (c *Client) call(ctx context.Context, method, base, path string, params []QueryParam, body interface{}, contentType string) (Result, error) {
	endpoint := base + "/" + path + "?" + encodeQuery(params)

	var reader io.Reader
	if body != nil {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(body); err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(bytes.TrimRight(buf.Bytes(), "\n"))
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// Azure DevOps convention: Basic auth with empty username and the
	// PAT as password.
	req.SetBasicAuth("", c.creds.PAT)
	req.Header.Set("Accept", contentTypeJSON)
	if body != nil {
		if contentType == "" {
			contentType = contentTypeJSON
		}
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	where := method + " " + req.URL.Path

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		if resp.StatusCode == http.StatusNoContent {
			return nil, nil
		}
		var result Result
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, &MalformedResponseError{Endpoint: where, Err: err}
		}
		return result, nil

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &AuthError{StatusCode: resp.StatusCode, Endpoint: where}

	case resp.StatusCode == http.StatusNotFound:
		return nil, &NotFoundError{Resource: where}

	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &TransientError{StatusCode: resp.StatusCode, Endpoint: where}

	default:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			Endpoint:   where,
			Body:       strings.TrimSpace(string(raw)),
		}
	}
}

func (c *Client) get(ctx context.Context, path string, params []QueryParam) (Result, error) {
	return c.call(ctx, http.MethodGet, c.baseURL, path, params, nil, "")
}

func (c *Client) post(ctx context.Context, path string, params []QueryParam, body interface{}) (Result, error) {
	return c.call(ctx, http.MethodPost, c.baseURL, path, params, body, "")
}

func (c *Client) patch(ctx context.Context, path string, params []QueryParam, body interface{}, contentType string) (Result, error) {
	return c.call(ctx, http.MethodPatch, c.baseURL, path, params, body, contentType)
}

// encodeQuery renders api-version plus the caller's parameters, keeping
// caller order and duplicates intact. url.Values cannot be used here
// because it sorts keys.
func encodeQuery(params []QueryParam) string {
	var sb strings.Builder
	sb.WriteString("api-version=")
	sb.WriteString(APIVersion)

	for _, p := range params {
		sb.WriteByte('&')
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}

// escape encodes one path segment (project and repository names may
// contain spaces).
func escape(segment string) string {
	return url.PathEscape(segment)
}
