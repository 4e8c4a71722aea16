package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/yonder/experience-recommender/internal/core/domain"
	"github.com/yonder/experience-recommender/internal/pkg/metrics"
)

// ResilienceOptions tunes the envelope around a Provider. Zero values take
// the defaults below.
type ResilienceOptions struct {
	// Timeout bounds a single attempt.
	Timeout time.Duration
	// MaxRetries is the number of extra attempts after the first one.
	MaxRetries int
	// BaseBackoff is the first retry delay; it doubles on every retry.
	BaseBackoff time.Duration
	// FailureThreshold is the number of consecutive failed calls that opens the circuit.
	FailureThreshold uint32
	// OpenTimeout is how long the circuit stays open before probing again.
	OpenTimeout time.Duration
}

const (
	defaultTimeout          = 30 * time.Second
	defaultBaseBackoff      = 250 * time.Millisecond
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 30 * time.Second
)

// Resilient wraps a Provider with a per-attempt timeout, bounded retry with
// exponential backoff and a circuit breaker. It satisfies ports.Recommender.
type Resilient struct {
	next Provider
	cb   *gobreaker.CircuitBreaker[string]
	opts ResilienceOptions
	log  zerolog.Logger
}

func NewResilient(next Provider, opts ResilienceOptions, log zerolog.Logger) *Resilient {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.BaseBackoff <= 0 {
		opts.BaseBackoff = defaultBaseBackoff
	}
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = defaultFailureThreshold
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = defaultOpenTimeout
	}

	name := next.Name()
	log = log.With().Str("provider", name).Logger()
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= opts.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("from", stateToString(from)).Str("to", stateToString(to)).Msg("circuit breaker state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
		// Cancelled calls do not count against the provider.
		IsExcluded: func(err error) bool {
			return errors.Is(err, context.Canceled)
		},
	})

	return &Resilient{next: next, cb: cb, opts: opts, log: log}
}

func (r *Resilient) Name() string { return r.next.Name() }

// Recommend calls the wrapped provider. Every error wraps domain.ErrUpstream.
func (r *Resilient) Recommend(ctx context.Context, prompt string) (string, error) {
	out, err := r.cb.Execute(func() (string, error) {
		return r.attempt(ctx, prompt)
	})
	if err == nil {
		return out, nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		metrics.UpstreamErrorsTotal.WithLabelValues(r.Name(), "circuit_open").Inc()
		return "", fmt.Errorf("%w: %s: %v", domain.ErrUpstream, r.Name(), err)
	}
	if !errors.Is(err, domain.ErrUpstream) {
		err = fmt.Errorf("%w: %s: %v", domain.ErrUpstream, r.Name(), err)
	}
	return "", err
}

func (r *Resilient) attempt(ctx context.Context, prompt string) (string, error) {
	backoff := retry.NewExponential(r.opts.BaseBackoff)
	backoff = retry.WithJitterPercent(10, backoff)
	backoff = retry.WithMaxRetries(uint64(r.opts.MaxRetries), backoff)

	tries := 0
	return retry.DoValue(ctx, backoff, func(ctx context.Context) (string, error) {
		tries++
		callCtx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()

		text, err := r.next.Recommend(callCtx, prompt)
		if err != nil {
			if retryable(err) && ctx.Err() == nil {
				r.log.Warn().Err(err).Int("attempt", tries).Msg("provider call failed, retrying")
				return "", retry.RetryableError(err)
			}
			return "", err
		}
		return text, nil
	})
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

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
