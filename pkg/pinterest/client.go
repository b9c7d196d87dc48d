package pinterest

import (
	"context"
	"io"
	"net/http"
	"time"

	"pinscraper/pkg/config"
	"pinscraper/pkg/errors"
	"pinscraper/pkg/logger"
)

// Client fetches pin pages and media with a browser-like header set
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	logger     logger.Logger
}

// NewClient creates a new Pinterest client. A zero timeout keeps net/http's
// default behaviour of waiting indefinitely.
func NewClient(timeout time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		headers: map[string]string{
			"User-Agent":      config.DefaultUserAgent,
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
		},
		logger: log,
	}
}

// NewClientWithConfig creates a client whose headers and timeout come from cfg
func NewClientWithConfig(cfg *config.Config, log logger.Logger) *Client {
	c := NewClient(cfg.Download.Timeout, log)
	if cfg.Pinterest.UserAgent != "" {
		c.SetHeader("User-Agent", cfg.Pinterest.UserAgent)
	}
	if cfg.Pinterest.AcceptLanguage != "" {
		c.SetHeader("Accept-Language", cfg.Pinterest.AcceptLanguage)
	}
	return c
}

// SetHeader sets a custom header for the client
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// SetHTTPClient swaps the underlying HTTP client
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// Header returns the configured value for key
func (c *Client) Header(key string) string {
	return c.headers[key]
}

// pageStatusOK accepts only 200 for the pin page itself
func pageStatusOK(code int) bool { return code == http.StatusOK }

// mediaStatusOK accepts any 2xx for CDN media responses
func mediaStatusOK(code int) bool { return code >= 200 && code < 300 }

// doRequest performs a GET with the configured headers. Responses whose
// status fails accept come back as a bad_status error.
func (c *Client) doRequest(ctx context.Context, rawURL string, accept func(int) bool) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeNetwork,
			Message: "failed to create request",
			URL:     rawURL,
			Err:     err,
		}
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    rawURL,
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"url":      rawURL,
			"error":    err.Error(),
			"duration": duration,
		})
		return nil, &errors.Error{
			Type:    errors.ErrorTypeNetwork,
			Message: "request failed",
			URL:     rawURL,
			Err:     err,
		}
	}

	logger.LogRequest(c.logger, req.Method, rawURL, resp.StatusCode, duration)

	if !accept(resp.StatusCode) {
		resp.Body.Close()
		return nil, errors.BadStatus(rawURL, resp.StatusCode)
	}

	return resp, nil
}

// FetchPage downloads the HTML of a pin page
func (c *Client) FetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	resp, err := c.doRequest(ctx, pageURL, pageStatusOK)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.Error{
			Type:    errors.ErrorTypeNetwork,
			Message: "failed to read response body",
			URL:     pageURL,
			Code:    resp.StatusCode,
			Err:     err,
		}
	}

	c.logger.DebugWithFields("fetched pin page", map[string]interface{}{
		"url":  pageURL,
		"size": len(body),
	})

	return body, nil
}

// Open starts a media download and returns the unread body together with
// the advertised content length (-1 when unknown). The caller must close it.
func (c *Client) Open(ctx context.Context, mediaURL string) (io.ReadCloser, int64, error) {
	resp, err := c.doRequest(ctx, mediaURL, mediaStatusOK)
	if err != nil {
		return nil, 0, err
	}
	return resp.Body, resp.ContentLength, nil
}
