// Package remote wraps outbound HTTP API calls with rate limiting,
// retries and a circuit breaker. Every failure surfaces as ErrUnavailable
// so callers can fall back uniformly.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/studyplanner/internal/logging"
	"github.com/dmitrijs2005/studyplanner/internal/server/metrics"
)

var ErrUnavailable = errors.New("remote service unavailable")

// StatusError is a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode >= 500 || se.StatusCode == http.StatusTooManyRequests
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// healthy reports whether err leaves the remote side looking healthy to the
// breaker. Client errors other than 429 are the caller's fault.
func healthy(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode < 500 && se.StatusCode != http.StatusTooManyRequests
	}
	return false
}

// Options tunes a Caller. Zero values pick defaults.
type Options struct {
	Name              string
	RequestsPerSecond float64
	Attempts          uint
	Delay             time.Duration
	FailureThreshold  uint32
	OpenTimeout       time.Duration
}

// Caller executes outbound requests for one remote API.
type Caller struct {
	name     string
	limiter  *rate.Limiter
	cb       *gobreaker.CircuitBreaker[[]byte]
	attempts uint
	delay    time.Duration
	log      logging.Logger
}

// NewCaller builds a Caller for the API called opts.Name.
func NewCaller(opts Options, log logging.Logger) *Caller {
	if opts.Attempts == 0 {
		opts.Attempts = 3
	}
	if opts.Delay == 0 {
		opts.Delay = 500 * time.Millisecond
	}
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = 5
	}
	if opts.OpenTimeout == 0 {
		opts.OpenTimeout = time.Minute
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	c := &Caller{
		name:     opts.Name,
		limiter:  rate.NewLimiter(limit, 1),
		attempts: opts.Attempts,
		delay:    opts.Delay,
		log:      log.With("module", "remote", "remote", opts.Name),
	}

	metrics.CircuitBreakerState.WithLabelValues(opts.Name).Set(0)

	c.cb = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        opts.Name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.FailureThreshold
		},
		IsSuccessful: healthy,
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn(context.Background(), "circuit breaker state change", "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return c
}

// Do runs fn under the rate limiter, circuit breaker and retry policy and
// returns its body.
func (c *Caller) Do(ctx context.Context, fn func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", c.name, ErrUnavailable, err)
	}

	body, err := c.cb.Execute(func() ([]byte, error) {
		return retry.DoWithData(
			func() ([]byte, error) {
				b, err := fn(ctx)
				if err != nil && !retryable(err) {
					return nil, retry.Unrecoverable(err)
				}
				return b, err
			},
			retry.Context(ctx),
			retry.Attempts(c.attempts),
			retry.Delay(c.delay),
			retry.DelayType(retry.BackOffDelay),
			retry.LastErrorOnly(true),
			retry.OnRetry(func(attempt uint, err error) {
				c.log.Debug(ctx, "retrying remote call", "attempt", attempt+1, "error", err)
			}),
		)
	})

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RemoteCalls.WithLabelValues(c.name, "rejected").Inc()
		} else {
			metrics.RemoteCalls.WithLabelValues(c.name, "failure").Inc()
		}
		return nil, fmt.Errorf("%s: %w: %w", c.name, ErrUnavailable, err)
	}

	metrics.RemoteCalls.WithLabelValues(c.name, "success").Inc()
	return body, nil
}

// ReadBody reads a response, turning non-2xx statuses into *StatusError.
func ReadBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(b), 256)}
	}
	return b, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
