// Package upstream holds the HTTP plumbing shared by external product providers.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/nutrition-backend/internal/domain"
	"github.com/heartmarshall/nutrition-backend/internal/metrics"
	"github.com/heartmarshall/nutrition-backend/internal/provider"
)

// UserAgent identifies this service to upstream APIs.
const UserAgent = "nutrition-backend/1.0 (+https://github.com/heartmarshall/nutrition-backend)"

const maxBodyBytes = 8 << 20

// ErrNotFound is returned by GetJSON for HTTP 404.
var ErrNotFound = errors.New("upstream: not found")

// Recorder receives the outcome and duration of every upstream call.
type Recorder interface {
	ObserveUpstream(source domain.Source, status string, d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveUpstream(domain.Source, string, time.Duration) {}

// Client performs paced, time-boxed JSON GET requests against one source.
type Client struct {
	source   domain.Source
	doer     provider.HTTPDoer
	limiter  *rate.Limiter
	recorder Recorder
	log      *slog.Logger
}

// NewClient creates a Client. A nil limiter disables pacing and a nil
// recorder disables call metrics.
func NewClient(source domain.Source, doer provider.HTTPDoer, limiter *rate.Limiter, recorder Recorder, logger *slog.Logger) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Client{
		source:   source,
		doer:     doer,
		limiter:  limiter,
		recorder: recorder,
		log:      logger,
	}
}

// GetJSON fetches rawURL within timeout and decodes the body into out.
// Every failure except 404 is reported as *domain.ExternalError.
func (c *Client) GetJSON(ctx context.Context, rawURL string, timeout time.Duration, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return domain.NewExternalError(c.source, "rate limit wait aborted", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return domain.NewExternalError(c.source, "create request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		detail, status := "request failed", metrics.UpstreamError
		if errors.Is(err, context.DeadlineExceeded) {
			detail, status = fmt.Sprintf("request timed out after %s", timeout), metrics.UpstreamTimeout
		}
		c.recorder.ObserveUpstream(c.source, status, time.Since(start))
		c.log.ErrorContext(ctx, "upstream request failed",
			slog.String("path", req.URL.Path),
			slog.String("error", err.Error()),
		)
		return domain.NewExternalError(c.source, detail, err)
	}
	defer resp.Body.Close()

	c.log.DebugContext(ctx, "upstream response",
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode == http.StatusNotFound {
		c.recorder.ObserveUpstream(c.source, metrics.UpstreamNotFound, time.Since(start))
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.recorder.ObserveUpstream(c.source, metrics.UpstreamError, time.Since(start))
		return domain.NewExternalError(c.source, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.recorder.ObserveUpstream(c.source, metrics.UpstreamError, time.Since(start))
		return domain.NewExternalError(c.source, "read body", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.recorder.ObserveUpstream(c.source, metrics.UpstreamInvalid, time.Since(start))
		return domain.NewExternalError(c.source, "decode response", err)
	}
	c.recorder.ObserveUpstream(c.source, metrics.UpstreamOK, time.Since(start))
	return nil
}

// NewLimiter builds a token bucket allowing rps requests per second.
// Zero or negative rps disables pacing.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}
