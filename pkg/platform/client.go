// Package platform talks to the campaign platform: it fetches and
// extracts campaign pages, submits entries and decodes the
// replies, and calls campaign URL shorteners.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"digital.vasic.sweepbot/pkg/entry"
	"digital.vasic.sweepbot/pkg/logging"
)

// DefaultBaseURL is the platform origin entries are posted to.
const DefaultBaseURL = "https://gleam.io"

// ErrTransport marks failures to obtain a decodable reply.
var ErrTransport = errors.New("transport failure")

// ClientOption configures a Client via functional options.
type ClientOption func(*Client)

// Client is the platform HTTP client. It keeps the session
// cookies in a jar and sends the CSRF and XSRF tokens the
// platform expects on submissions.
type Client struct {
	baseURL    string
	userAgent  string
	csrfToken  string
	cookies    []*http.Cookie
	httpClient *http.Client
	logger     logging.Logger
}

// NewClient creates a platform client. Defaults target
// DefaultBaseURL with a 30 second timeout.
func NewClient(opts ...ClientOption) *Client {
	jar, _ := cookiejar.New(nil)
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
		logger: logging.NullLogger{},
	}
	for _, o := range opts {
		o(c)
	}
	if c.httpClient.Jar != nil && len(c.cookies) > 0 {
		if u, err := url.Parse(c.baseURL); err == nil {
			c.httpClient.Jar.SetCookies(u, c.cookies)
		}
	}
	return c
}

// WithBaseURL overrides the platform origin.
func WithBaseURL(base string) ClientOption {
	return func(c *Client) { c.baseURL = strings.TrimRight(base, "/") }
}

// WithTimeout overrides the default HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client. A client
// without a jar gets one.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc.Jar == nil {
			hc.Jar, _ = cookiejar.New(nil)
		}
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request/response logs.
func WithLogger(l logging.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// WithCookies seeds the session cookies, usually parsed from a
// browser's Cookie header with ParseCookieHeader.
func WithCookies(cookies []*http.Cookie) ClientOption {
	return func(c *Client) { c.cookies = cookies }
}

// ParseCookieHeader parses a "name=value; name2=value2" header.
func ParseCookieHeader(line string) ([]*http.Cookie, error) {
	if strings.TrimSpace(line) == "" {
		return nil, nil
	}
	cookies, err := http.ParseCookie(line)
	if err != nil {
		return nil, fmt.Errorf("parse cookie header: %w", err)
	}
	return cookies, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CSRFToken returns the token sent as x-csrf-token.
func (c *Client) CSRFToken() string {
	return c.csrfToken
}

// SetCSRFToken sets the token sent as x-csrf-token.
func (c *Client) SetCSRFToken(token string) {
	c.csrfToken = token
}

// XSRFToken returns the XSRF-TOKEN cookie for the base URL.
func (c *Client) XSRFToken() string {
	u, err := url.Parse(c.baseURL)
	if err != nil || c.httpClient.Jar == nil {
		return ""
	}
	for _, ck := range c.httpClient.Jar.Cookies(u) {
		if ck.Name == "XSRF-TOKEN" {
			if v, err := url.QueryUnescape(ck.Value); err == nil {
				return v
			}
			return ck.Value
		}
	}
	return ""
}

// FetchPage downloads pageURL and returns its body.
func (c *Client) FetchPage(
	ctx context.Context, pageURL string,
) (string, error) {
	status, data, err := c.do(ctx, http.MethodGet, pageURL, nil, nil)
	if err != nil {
		return "", err
	}
	if status < 200 || status > 299 {
		return "", fmt.Errorf(
			"fetch %s returned HTTP %d", pageURL, status,
		)
	}
	return string(data), nil
}

// LoadPage fetches and extracts a campaign page, remembering its
// CSRF token for later submissions.
func (c *Client) LoadPage(
	ctx context.Context, pageURL string,
) (*Page, error) {
	body, err := c.FetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	page, err := ExtractPage(strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	if page.CSRFToken != "" {
		c.csrfToken = page.CSRFToken
	}
	return page, nil
}

// Submit posts payload for entryID of campaignKey and decodes the
// reply. Any failure wraps ErrTransport.
func (c *Client) Submit(
	ctx context.Context,
	campaignKey, entryID string,
	payload *Payload,
) (Response, error) {
	body, err := payload.Marshal()
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	endpoint := c.baseURL + "/enter/" +
		url.PathEscape(campaignKey) + "/" + url.PathEscape(entryID)
	status, data, err := c.do(
		ctx, http.MethodPost, endpoint, body, c.jsonHeaders(),
	)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	resp, err := DecodeResponse(data)
	if err != nil {
		return Response{}, fmt.Errorf(
			"%w: HTTP %d: %w", ErrTransport, status, err,
		)
	}
	return resp, nil
}

// setContestantRequest is the body of /set-contestant.
type setContestantRequest struct {
	AdditionalDetails bool                    `json:"additional_details"`
	CampaignKey       string                  `json:"campaign_key"`
	Contestant        entry.ContestantDetails `json:"contestant"`
}

// SetContestant completes the contestant's details for
// campaignKey and returns the contestant the platform stored. Any
// failure wraps ErrTransport.
func (c *Client) SetContestant(
	ctx context.Context,
	campaignKey string,
	details entry.ContestantDetails,
) (*entry.Contestant, error) {
	body, err := json.Marshal(setContestantRequest{
		AdditionalDetails: true,
		CampaignKey:       campaignKey,
		Contestant:        details,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	status, data, err := c.do(
		ctx, http.MethodPost, c.baseURL+"/set-contestant", body,
		c.jsonHeaders(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf(
			"%w: set contestant returned HTTP %d", ErrTransport, status,
		)
	}

	var resp struct {
		Contestant *entry.Contestant `json:"contestant"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf(
			"%w: failed to parse contestant: %w", ErrTransport, err,
		)
	}
	if resp.Contestant == nil {
		return nil, fmt.Errorf(
			"%w: set contestant response has no contestant", ErrTransport,
		)
	}
	return resp.Contestant, nil
}

// jsonHeaders are sent with every JSON POST to the platform.
func (c *Client) jsonHeaders() map[string]string {
	headers := map[string]string{
		"Accept":       "application/json, text/plain, */*",
		"Content-Type": "application/json;charset=UTF-8",
		"X-Xsrf-Token": c.XSRFToken(),
	}
	if c.csrfToken != "" {
		headers["X-Csrf-Token"] = c.csrfToken
	}
	return headers
}

// Shorten asks a well-known shortener for a short link to
// longURL.
func (c *Client) Shorten(
	ctx context.Context, s entry.Shortener, longURL string,
) (string, error) {
	if !s.WellKnown() {
		return "", errors.New("shortener is not well-known")
	}
	q := url.Values{}
	q.Set("login", s.Username)
	q.Set("apiKey", s.APIKey)
	q.Set("longUrl", longURL)
	q.Set("format", "json")

	sep := "?"
	if strings.Contains(s.URL, "?") {
		sep = "&"
	}
	status, data, err := c.do(
		ctx, http.MethodGet, s.URL+sep+q.Encode(), nil, nil,
	)
	if err != nil {
		return "", err
	}
	if status < 200 || status > 299 {
		return "", fmt.Errorf("shortener returned HTTP %d", status)
	}

	var result struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("parse shortener response: %w", err)
	}
	if result.Data.URL == "" {
		return "", errors.New("shortener response has no url")
	}
	return result.Data.URL, nil
}

func (c *Client) do(
	ctx context.Context,
	method, target string,
	body []byte,
	headers map[string]string,
) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	requestID := uuid.NewString()
	c.logger.LogAPIRequest(logging.APIRequestLog{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		RequestID:  requestID,
		Method:     method,
		URL:        target,
		Headers:    headers,
		BodyLength: len(body),
	})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.LogAPIResponse(logging.APIResponseLog{
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		RequestID:      requestID,
		StatusCode:     resp.StatusCode,
		BodyPreview:    preview(data, 256),
		BodyLength:     len(data),
		ResponseTimeMs: time.Since(start).Milliseconds(),
	})
	return resp.StatusCode, data, nil
}
