// Package apiclient is the single gateway to the storefront backend. It
// attaches session cookies and the CSRF token to every call, collapses all
// failures into one error type and normalizes paginated list responses.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/carousell/ct-go/pkg/logger"
	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nguyentranbao-ct/storefront-core/internal/config"
	"github.com/nguyentranbao-ct/storefront-core/pkg/util"
)

const (
	csrfCookieName = "csrftoken"
	csrfHeader     = "X-CSRFToken"
)

// Client issues authenticated requests against the backend REST surface.
// Exactly one instance is constructed at process start and injected into
// the session provider and cart store.
type Client struct {
	http      *resty.Client
	baseURL   *url.URL
	log       *logger.Logger
	durations *prometheus.HistogramVec
}

func New(cfg *config.APIConfig) (*Client, error) {
	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("init cookie jar: %w", err)
	}

	durations, err := util.GetHistogramVec("storefront_api_request_duration_seconds", "method", "path", "status")
	if err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	httpClient := util.NewRestyClient(cfg.Timeout, cfg.RetryCount).
		SetBaseURL(cfg.BaseURL).
		SetCookieJar(jar)

	return &Client{
		http:      httpClient,
		baseURL:   baseURL,
		log:       logger.MustNamed("apiclient"),
		durations: durations,
	}, nil
}

// do runs one request and decodes the response into out when provided.
// Any failure comes back as *Error.
func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out any) error {
	req := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Requested-With", "XMLHttpRequest")

	if token := c.csrfToken(); token != "" {
		req.SetHeader(csrfHeader, token)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	c.observe(method, path, resp, err, start)

	if err != nil {
		c.log.Warnw("request failed", "method", method, "path", path, "error", err)
		return newNetworkError(err)
	}
	if resp.IsError() {
		apiErr := newAPIError(resp.StatusCode(), resp.Body())
		c.log.Warnw("request rejected",
			"method", method,
			"path", path,
			"status", resp.StatusCode(),
			"error", apiErr.Message,
		)
		return apiErr
	}
	if out != nil && len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return newNetworkError(fmt.Errorf("decode response: %w", err))
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// getList fetches a list endpoint and hands back the raw payload for
// DecodeResults, since methods cannot be generic.
func (c *Client) getList(ctx context.Context, path string, query map[string]string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.get(ctx, path, query, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// csrfToken reads the backend-issued CSRF cookie from the jar. Empty until
// the backend has set one.
func (c *Client) csrfToken() string {
	jar := c.http.GetClient().Jar
	if jar == nil {
		return ""
	}
	for _, cookie := range jar.Cookies(c.baseURL) {
		if cookie.Name == csrfCookieName {
			return cookie.Value
		}
	}
	return ""
}

func (c *Client) observe(method, path string, resp *resty.Response, err error, start time.Time) {
	status := "error"
	if err == nil && resp != nil {
		status = strconv.Itoa(resp.StatusCode())
	}
	c.durations.WithLabelValues(method, normalizePath(path), status).
		Observe(time.Since(start).Seconds())
}

// normalizePath collapses numeric path segments so metric cardinality stays
// bounded across resource ids.
func normalizePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		if _, err := strconv.ParseInt(segment, 10, 64); err == nil {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}
