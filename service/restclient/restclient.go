// Package restclient is the JSON-over-HTTP transport shared by the upstream
// API clients.
package restclient

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

	"github.com/eapache/go-resiliency/retrier"
	"github.com/rs/zerolog/log"
)

const (
	defaultTimeout = 10 * time.Second
	defaultBackoff = 200 * time.Millisecond
)

var (
	ErrClient           = errors.New("client error")
	ErrServer           = errors.New("server error")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrDecode           = errors.New("unable to decode response")
)

type Client struct {
	baseURL    *url.URL         // Base URL for API requests, always ends with a slash
	httpClient *http.Client     // HTTP client used to communicate with the API
	retrier    *retrier.Retrier // Retries transient failures
	params     url.Values       // Query parameters added to every request
	headers    http.Header      // Headers added to every request
	timeout    time.Duration    // Per attempt timeout
	retries    int              // Number of retries after the first attempt
	backoff    time.Duration    // Initial backoff between attempts
	transport  http.RoundTripper
}

type Option func(*Client)

// WithQueryParam adds a query parameter, typically an API key, to every request.
func WithQueryParam(name, value string) Option {
	return func(c *Client) {
		if value != "" {
			c.params.Set(name, value)
		}
	}
}

// WithHeader adds a header to every request.
func WithHeader(name, value string) Option {
	return func(c *Client) {
		if value != "" {
			c.headers.Set(name, value)
		}
	}
}

// WithTimeout bounds every attempt.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetries sets how many times a transient failure is retried.
func WithRetries(n int, backoff time.Duration) Option {
	return func(c *Client) {
		if n >= 0 {
			c.retries = n
		}
		if backoff > 0 {
			c.backoff = backoff
		}
	}
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

// New returns a client resolving request paths against baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:   base,
		params:    url.Values{},
		headers:   http.Header{},
		timeout:   defaultTimeout,
		retries:   2,
		backoff:   defaultBackoff,
		transport: http.DefaultTransport,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.retrier = retrier.New(retrier.ExponentialBackoff(c.retries, c.backoff), transientClassifier{})
	c.httpClient = &http.Client{
		Timeout: c.timeout,
		Transport: roundTripperFn(
			func(req *http.Request) (*http.Response, error) {
				params := req.URL.Query()
				for name := range c.params {
					params.Set(name, c.params.Get(name))
				}
				req.URL.RawQuery = params.Encode()

				for name := range c.headers {
					req.Header.Set(name, c.headers.Get(name))
				}
				req.Header.Set("Accept", "application/json")

				return c.transport.RoundTrip(req)
			},
		),
	}

	return c, nil
}

// Host returns the host the client talks to.
func (c *Client) Host() string {
	return c.baseURL.Host
}

// Get issues GET path?query relative to the base URL and decodes the response into v.
func (c *Client) Get(ctx context.Context, path string, query url.Values, v interface{}) error {
	u, err := c.baseURL.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return err
	}

	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	return c.Do(ctx, req, v)
}

// Do sends req, retrying transient failures, and decodes the response into v.
// v may be nil, an io.Writer or a JSON target.
func (c *Client) Do(ctx context.Context, req *http.Request, v interface{}) error {
	start := time.Now()

	err := c.retrier.RunCtx(ctx, func(ctx context.Context) error {
		return c.do(req.Clone(ctx), v)
	})

	observe(c.baseURL.Host, err, time.Since(start))

	return err
}

func (c *Client) do(req *http.Request, v interface{}) error {
	log.Debug().Str("url", req.URL.Redacted()).Msg("fetching information from API")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError:
		return fmt.Errorf("%w: %s returned %d", ErrClient, req.URL.Path, resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s returned %d", ErrServer, req.URL.Path, resp.StatusCode)
	default:
		return fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, req.URL.Path, resp.StatusCode)
	}

	switch v := v.(type) {
	case nil:
	case io.Writer:
		_, err = io.Copy(v, resp.Body)
	default:
		decErr := json.NewDecoder(resp.Body).Decode(v)
		if decErr == io.EOF {
			decErr = nil // ignore EOF errors caused by empty response body
		}
		if decErr != nil {
			err = fmt.Errorf("%w: %v", ErrDecode, decErr)
		}
	}

	return err
}

type transientClassifier struct{}

// Classify implements retrier.Classifier.
func (transientClassifier) Classify(err error) retrier.Action {
	switch {
	case err == nil:
		return retrier.Succeed
	case errors.Is(err, ErrClient),
		errors.Is(err, ErrDecode),
		errors.Is(err, ErrUnexpectedStatus),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return retrier.Fail
	default:
		return retrier.Retry
	}
}

type roundTripperFn func(*http.Request) (*http.Response, error)

func (fn roundTripperFn) RoundTrip(r *http.Request) (*http.Response, error) {
	return fn(r)
}
