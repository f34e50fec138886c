package source

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/ppiankov/dayfacts/internal/model"
	"github.com/ppiankov/dayfacts/internal/util"
	"github.com/ppiankov/dayfacts/internal/worker"
)

// Fetcher performs JSON requests against the upstream services
type Fetcher struct {
	client    *retryablehttp.Client
	userAgent string
	maxBytes  int64
	limiter   *worker.Limiter
	robots    *util.RobotsChecker
}

// NewFetcher creates a Fetcher from the HTTP configuration. limiter may be nil.
func NewFetcher(cfg model.HTTPConfig, limiter *worker.Limiter) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy)
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via config
	}

	httpClient := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 3 {
				return fmt.Errorf("stopped after 3 redirects")
			}
			return nil
		},
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = httpClient
	retryClient.Logger = retryLogger{}
	retryClient.RetryMax = cfg.Retries
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	// Hand back the last response so status codes are classified here
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = model.DefaultConfig().HTTP.MaxBodyBytes
	}

	f := &Fetcher{
		client:    retryClient,
		userAgent: cfg.UserAgent,
		maxBytes:  maxBytes,
		limiter:   limiter,
	}
	if cfg.RespectRobots {
		f.robots = util.NewRobotsChecker(cfg.UserAgent, httpClient)
	}
	return f
}

// Get retrieves rawURL and returns the response body
func (f *Fetcher) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return f.do(ctx, req)
}

// PostForm submits form as application/x-www-form-urlencoded and returns the response body
func (f *Fetcher) PostForm(ctx context.Context, rawURL string, form url.Values) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return f.do(ctx, req)
}

func (f *Fetcher) do(ctx context.Context, req *retryablehttp.Request) ([]byte, error) {
	rawURL := req.URL.String()

	if f.robots != nil {
		allowed, err := f.robots.Allowed(ctx, rawURL)
		if err != nil {
			return nil, &TransportError{URL: rawURL, Err: err}
		}
		if !allowed {
			return nil, &TransportError{URL: rawURL, Err: ErrDisallowed}
		}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return nil, &TransportError{URL: rawURL, Err: fmt.Errorf("rate limit: %w", err)}
		}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := f.client.Do(req)
	if resp != nil {
		defer func() { _ = resp.Body.Close() }()
	}
	if resp != nil && (resp.StatusCode < 200 || resp.StatusCode >= 300) {
		return nil, &TransportError{URL: rawURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("%s", resp.Status)}
	}
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: fmt.Errorf("read body: %w", err)}
	}
	if int64(len(body)) > f.maxBytes {
		return nil, &TransportError{URL: rawURL, Err: ErrBodyTooLarge}
	}

	util.Log.WithFields(logrus.Fields{
		"url":      rawURL,
		"status":   resp.StatusCode,
		"bytes":    len(body),
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("fetched")

	return body, nil
}

// retryLogger routes retryablehttp's leveled output to the debug log
type retryLogger struct{}

func (retryLogger) Error(msg string, keysAndValues ...interface{}) { logKV(msg, keysAndValues) }
func (retryLogger) Info(msg string, keysAndValues ...interface{})  { logKV(msg, keysAndValues) }
func (retryLogger) Debug(msg string, keysAndValues ...interface{}) { logKV(msg, keysAndValues) }
func (retryLogger) Warn(msg string, keysAndValues ...interface{})  { logKV(msg, keysAndValues) }

func logKV(msg string, keysAndValues []interface{}) {
	entry := util.Log.WithField("component", "http")
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		entry = entry.WithField(fmt.Sprint(keysAndValues[i]), keysAndValues[i+1])
	}
	entry.Debug(msg)
}
