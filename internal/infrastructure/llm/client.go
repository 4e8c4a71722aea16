// Package llm contains the completion provider clients and the resilience
// wrapper placed around them.
package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/yonder/experience-recommender/internal/core/domain"
	"github.com/yonder/experience-recommender/internal/core/ports"
	"github.com/yonder/experience-recommender/internal/pkg/metrics"
)

const (
	defaultMaxTokens   = 1024
	maxErrorBodyBytes  = 512
	defaultHTTPTimeout = 60 * time.Second
)

// Provider is a Recommender that can name itself for logs and metrics.
type Provider interface {
	ports.Recommender
	Name() string
}

// Config is shared by every provider client.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	HTTPClient  *http.Client
}

func (c Config) withDefaults(baseURL, model string) Config {
	if c.BaseURL == "" {
		c.BaseURL = baseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Model == "" {
		c.Model = model
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = defaultMaxTokens
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return c
}

// StatusError is returned when the provider answers with a non-2xx status.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return domain.ErrUpstream }

// Temporary reports whether the request may succeed if repeated.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= http.StatusInternalServerError
}

// TransportError is returned when the request never produced a response.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() []error { return []error{domain.ErrUpstream, e.Err} }

// postJSON sends payload to url and decodes a 2xx body into out. It records
// one duration observation per call.
func postJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, payload, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		metrics.UpstreamRequestDuration.WithLabelValues(provider, outcome).Observe(time.Since(start).Seconds())
	}()

	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", provider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", provider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := client.Do(req)
	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues(provider, "transport").Inc()
		return &TransportError{Provider: provider, Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues(provider, "transport").Inc()
		return &TransportError{Provider: provider, Err: err}
	}

	if res.StatusCode >= 300 {
		metrics.UpstreamErrorsTotal.WithLabelValues(provider, "status").Inc()
		return &StatusError{Provider: provider, Code: res.StatusCode, Body: truncate(string(body), maxErrorBodyBytes)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues(provider, "decode").Inc()
		return fmt.Errorf("%w: %s: decode response: %v", domain.ErrUpstream, provider, err)
	}
	return nil
}

func emptyResponse(provider string) error {
	metrics.UpstreamErrorsTotal.WithLabelValues(provider, "empty").Inc()
	return fmt.Errorf("%w: %s: empty completion", domain.ErrUpstream, provider)
}

// retryable reports whether err is worth another attempt.
func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Temporary()
	}
	var te *TransportError
	if errors.As(err, &te) {
		return !errors.Is(te.Err, context.Canceled)
	}
	return false
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
