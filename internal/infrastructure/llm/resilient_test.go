package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/yonder/experience-recommender/internal/core/domain"
)

type stubProvider struct {
	calls int
	fn    func(ctx context.Context, call int) (string, error)
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Recommend(ctx context.Context, _ string) (string, error) {
	s.calls++
	return s.fn(ctx, s.calls)
}

func fastOptions() ResilienceOptions {
	return ResilienceOptions{
		Timeout:          time.Second,
		MaxRetries:       2,
		BaseBackoff:      time.Millisecond,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
	}
}

var serverError = &StatusError{Provider: "stub", Code: 503, Body: "unavailable"}

func TestResilient_RetriesTemporaryFailures(t *testing.T) {
	p := &stubProvider{fn: func(_ context.Context, call int) (string, error) {
		if call < 3 {
			return "", serverError
		}
		return "1. Kayak", nil
	}}

	out, err := NewResilient(p, fastOptions(), zerolog.Nop()).Recommend(context.Background(), "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1. Kayak" || p.calls != 3 {
		t.Fatalf("expected success on third call, got %q after %d calls", out, p.calls)
	}
}

func TestResilient_GivesUpAfterMaxRetries(t *testing.T) {
	p := &stubProvider{fn: func(context.Context, int) (string, error) { return "", serverError }}

	_, err := NewResilient(p, fastOptions(), zerolog.Nop()).Recommend(context.Background(), "p")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if p.calls != 3 {
		t.Fatalf("expected 1 call plus 2 retries, got %d", p.calls)
	}
}

func TestResilient_DoesNotRetryPermanentFailures(t *testing.T) {
	p := &stubProvider{fn: func(context.Context, int) (string, error) {
		return "", &StatusError{Provider: "stub", Code: 400, Body: "bad request"}
	}}

	_, err := NewResilient(p, fastOptions(), zerolog.Nop()).Recommend(context.Background(), "p")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if p.calls != 1 {
		t.Fatalf("4xx must not be retried, got %d calls", p.calls)
	}
}

func TestResilient_WrapsForeignErrors(t *testing.T) {
	p := &stubProvider{fn: func(context.Context, int) (string, error) { return "", errors.New("boom") }}

	_, err := NewResilient(p, fastOptions(), zerolog.Nop()).Recommend(context.Background(), "p")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestResilient_AttemptTimeout(t *testing.T) {
	p := &stubProvider{fn: func(ctx context.Context, _ int) (string, error) {
		<-ctx.Done()
		return "", &TransportError{Provider: "stub", Err: ctx.Err()}
	}}
	opts := fastOptions()
	opts.Timeout = 10 * time.Millisecond
	opts.MaxRetries = 0

	start := time.Now()
	_, err := NewResilient(p, opts, zerolog.Nop()).Recommend(context.Background(), "p")
	if !errors.Is(err, domain.ErrUpstream) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected upstream deadline error, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("attempt timeout not applied")
	}
}

func TestResilient_CircuitOpens(t *testing.T) {
	p := &stubProvider{fn: func(context.Context, int) (string, error) {
		return "", &StatusError{Provider: "stub", Code: 401, Body: "bad key"}
	}}
	r := NewResilient(p, fastOptions(), zerolog.Nop())

	for i := 0; i < 2; i++ {
		if _, err := r.Recommend(context.Background(), "p"); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}
	if p.calls != 2 {
		t.Fatalf("expected 2 provider calls before the circuit opens, got %d", p.calls)
	}

	_, err := r.Recommend(context.Background(), "p")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("open circuit must surface as ErrUpstream, got %v", err)
	}
	if p.calls != 2 {
		t.Fatalf("open circuit must not reach the provider, got %d calls", p.calls)
	}
}

func TestResilient_CancelledCallsDoNotTrip(t *testing.T) {
	p := &stubProvider{fn: func(ctx context.Context, _ int) (string, error) {
		return "", ctx.Err()
	}}
	r := NewResilient(p, fastOptions(), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for i := 0; i < 5; i++ {
		_, _ = r.Recommend(ctx, "p")
	}

	ok := &stubProvider{fn: func(context.Context, int) (string, error) { return "fine", nil }}
	r.next = ok
	if _, err := r.Recommend(context.Background(), "p"); err != nil {
		t.Fatalf("circuit should still be closed: %v", err)
	}
}
