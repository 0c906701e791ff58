package regulations

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

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the regulations.gov v3 endpoint on api.data.gov
	DefaultBaseURL = "https://api.data.gov:443/regulations/v3"

	defaultTimeout     = 30 * time.Second
	defaultUserAgent   = "regfetch/1.0"
	defaultMaxBodySize = 10 * 1024 * 1024 // 10MB
	maxErrorBodySize   = 1024

	redactedAPIKey = "REDACTED"
)

// Client represents a regulations.gov API client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	userAgent  string
	logger     zerolog.Logger
}

// NewClient creates a new regulations.gov client. The API key is sent as-is,
// an empty key is rejected by the server rather than by the client.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	baseURL := strings.TrimRight(o.baseURL, "/")
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: base URL: %v", ErrInvalidConfig, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: base URL must be an absolute http(s) URL: %q", ErrInvalidConfig, o.baseURL)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		userAgent:  o.userAgent,
		logger:     o.logger,
	}, nil
}

// GetDocket retrieves a docket with a default client
func GetDocket(ctx context.Context, apiKey, docketID string) (string, error) {
	client, err := NewClient(apiKey)
	if err != nil {
		return "", err
	}
	return client.GetDocket(ctx, docketID)
}

// DownloadDocument retrieves a document with a default client
func DownloadDocument(ctx context.Context, apiKey, documentID string) (*Document, error) {
	client, err := NewClient(apiKey)
	if err != nil {
		return nil, err
	}
	return client.DownloadDocument(ctx, documentID)
}

// GetDocket retrieves a docket and returns its JSON body as a compact string.
// Any 2xx body is returned as is, except bodies over 10 MiB, which fail with
// ErrInvalidResponse before they are read in full.
func (c *Client) GetDocket(ctx context.Context, docketID string) (string, error) {
	body, err := c.get(ctx, DocketResource, docketID)
	if err != nil {
		return "", err
	}
	return compactJSON(body), nil
}

// DownloadDocument retrieves a document and flattens its file format links.
// Bodies that are not JSON or exceed 10 MiB fail with ErrInvalidResponse.
func (c *Client) DownloadDocument(ctx context.Context, documentID string) (*Document, error) {
	body, err := c.get(ctx, DocumentResource, documentID)
	if err != nil {
		return nil, err
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: document %q: %v", ErrInvalidResponse, documentID, err)
	}

	doc := &Document{
		ID:          documentID,
		Body:        payload,
		Raw:         json.RawMessage(bytes.TrimSpace(body)),
		FileFormats: FileFormats(payload),
	}

	c.logger.Debug().
		Str("document_id", documentID).
		Int("file_formats", len(doc.FileFormats)).
		Msg("Downloaded document")

	return doc, nil
}

// get performs a GET request for a resource and classifies the response
func (c *Client) get(ctx context.Context, r Resource, id string) ([]byte, error) {
	requestURL := c.requestURL(r, c.apiKey, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.logger.Debug().
		Str("resource", r.String()).
		Str("url", c.requestURL(r, redactedAPIKey, id)).
		Msg("Making regulations API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", r, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, defaultMaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > defaultMaxBodySize {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrInvalidResponse, defaultMaxBodySize)
	}

	if err := classify(r, id, resp.StatusCode, resp.Header, truncate(body, maxErrorBodySize)); err != nil {
		c.logger.Debug().
			Str("resource", r.String()).
			Str("id", id).
			Int("status", resp.StatusCode).
			Msg("Regulations API request failed")
		return nil, err
	}

	return body, nil
}

// requestURL builds the endpoint URL with api_key first and the id second
func (c *Client) requestURL(r Resource, apiKey, id string) string {
	return c.baseURL + "/" + r.Path() + "?" + encodeQuery(
		queryParam{"api_key", apiKey},
		queryParam{r.IDParam(), id},
	)
}

type queryParam struct {
	key   string
	value string
}

// encodeQuery encodes parameters in the given order, unlike url.Values.Encode
func encodeQuery(params ...queryParam) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

// compactJSON returns body without insignificant whitespace. A body that is
// not valid JSON is returned trimmed but otherwise untouched.
func compactJSON(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed)
	}
	return buf.String()
}

func truncate(body []byte, n int) []byte {
	if len(body) > n {
		return body[:n]
	}
	return body
}
