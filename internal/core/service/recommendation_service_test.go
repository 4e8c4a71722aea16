package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/yonder/experience-recommender/internal/core/domain"
	"github.com/yonder/experience-recommender/internal/core/ports"
	"github.com/yonder/experience-recommender/internal/core/prompt"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubRecommender struct {
	calls       int
	lastPrompt  string
	recommendFn func(ctx context.Context, prompt string) (string, error)
}

func (s *stubRecommender) Recommend(ctx context.Context, p string) (string, error) {
	s.calls++
	s.lastPrompt = p
	return s.recommendFn(ctx, p)
}

type stubCache struct {
	data   map[string]string
	getErr error
	setErr error
	sets   int
	ttl    time.Duration
}

func newStubCache() *stubCache { return &stubCache{data: map[string]string{}} }

func (c *stubCache) Get(_ context.Context, key string) (string, bool, error) {
	if c.getErr != nil {
		return "", false, c.getErr
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *stubCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.sets++
	c.ttl = ttl
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func scenarioCatalog(t *testing.T) *CatalogStore {
	t.Helper()
	wine := experience("E1", "Sunset Wine Tasting")
	kayak := experience("E2", "Thames Kayak Tour")
	u := member("U1", "Ada", domain.PastRedeemedOffer{ExperienceID: "E1", RedeemedDate: "2024-03-15"})
	u.CardTransactions = []domain.CardTransaction{
		{TransactionID: "T1", Date: "2024-04-01", MerchantName: "Dishoom", Category: "Dining", Amount: 42.5},
	}

	store := newStore(staticSource(&ports.CatalogDocument{
		Members:     []domain.User{u},
		Experiences: []domain.Experience{wine, kayak},
	}))
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load scenario catalog: %v", err)
	}
	return store
}

func newComposer(t *testing.T) *prompt.Composer {
	t.Helper()
	c, err := prompt.NewComposer("")
	if err != nil {
		t.Fatalf("composer: %v", err)
	}
	return c
}

func okRecommender(text string) *stubRecommender {
	return &stubRecommender{recommendFn: func(context.Context, string) (string, error) { return text, nil }}
}

func newService(t *testing.T, rec ports.Recommender, cache ports.RecommendationCache, ttl time.Duration) ports.RecommendationService {
	t.Helper()
	return NewRecommendationService(
		scenarioCatalog(t),
		newComposer(t),
		rec,
		cache,
		RecommendationOptions{Count: 3, CacheTTL: ttl, CacheNamespace: "test"},
		discardLogger,
	)
}

// ---------------------------------------------------------------------------
// Recommend
// ---------------------------------------------------------------------------

func TestRecommend_Success(t *testing.T) {
	rec := okRecommender("  1. Thames Kayak Tour - fresh air after all that dining.\n")
	svc := newService(t, rec, nil, 0)

	out, err := svc.Recommend(context.Background(), "U1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "1. Thames Kayak Tour - fresh air after all that dining." {
		t.Fatalf("output should be trimmed provider text, got %q", out)
	}
	if rec.calls != 1 {
		t.Fatalf("expected 1 provider call, got %d", rec.calls)
	}

	p := rec.lastPrompt
	if !strings.Contains(p, "Sunset Wine Tasting, redeemed on 2024-03-15") {
		t.Error("prompt should list the redeemed experience")
	}
	if !strings.Contains(p, "Dining") {
		t.Error("prompt should mention the spending category")
	}
	candidates := p[strings.Index(p, "## 4."):]
	if !strings.Contains(candidates, "[E2] Thames Kayak Tour") {
		t.Error("E2 should be offered as a candidate")
	}
	if strings.Contains(candidates, "[E1]") {
		t.Error("redeemed E1 must not be offered as a candidate")
	}
}

func TestRecommend_UnknownUserSkipsProvider(t *testing.T) {
	rec := okRecommender("unused")
	svc := newService(t, rec, nil, 0)

	_, err := svc.Recommend(context.Background(), "does-not-exist")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if rec.calls != 0 {
		t.Fatalf("provider must not be called for unknown members, got %d calls", rec.calls)
	}
}

func TestRecommend_CatalogNotLoaded(t *testing.T) {
	rec := okRecommender("unused")
	svc := NewRecommendationService(newStore(staticSource(validDoc())), newComposer(t), rec, nil,
		RecommendationOptions{Count: 3}, discardLogger)

	_, err := svc.Recommend(context.Background(), "U1")
	if !errors.Is(err, domain.ErrDataLoad) {
		t.Fatalf("expected ErrDataLoad, got %v", err)
	}
	if rec.calls != 0 {
		t.Fatal("provider must not be called without a catalog")
	}
}

func TestRecommend_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   func(context.Context, string) (string, error)
	}{
		{
			name: "plain error is wrapped",
			fn:   func(context.Context, string) (string, error) { return "", errors.New("connection refused") },
		},
		{
			name: "upstream error is kept",
			fn: func(context.Context, string) (string, error) {
				return "", errors.Join(domain.ErrUpstream, errors.New("status 503"))
			},
		},
		{
			name: "blank response",
			fn:   func(context.Context, string) (string, error) { return " \n\t", nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := newStubCache()
			svc := newService(t, &stubRecommender{recommendFn: tt.fn}, cache, time.Minute)

			out, err := svc.Recommend(context.Background(), "U1")
			if !errors.Is(err, domain.ErrUpstream) {
				t.Fatalf("expected ErrUpstream, got %v", err)
			}
			if out != "" {
				t.Fatalf("expected empty output, got %q", out)
			}
			if cache.sets != 0 {
				t.Fatal("failures must not be cached")
			}
		})
	}
}

func TestRecommend_UpstreamFailureLoggedOnce(t *testing.T) {
	failures := map[string]func(context.Context, string) (string, error){
		"error": func(context.Context, string) (string, error) { return "", domain.ErrUpstream },
		"blank":    func(context.Context, string) (string, error) { return "", nil },
	}

	for name, fn := range failures {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			svc := NewRecommendationService(
				scenarioCatalog(t),
				newComposer(t),
				&stubRecommender{recommendFn: fn},
				nil,
				RecommendationOptions{Count: 3},
				zerolog.New(&buf),
			)

			if _, err := svc.Recommend(context.Background(), "U1"); !errors.Is(err, domain.ErrUpstream) {
				t.Fatalf("expected ErrUpstream, got %v", err)
			}

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			if len(lines) != 1 {
				t.Fatalf("expected a single log line, got %d: %s", len(lines), buf.String())
			}
			for _, want := range []string{`"level":"error"`, `"user_id":"U1"`, `"elapsed"`} {
				if !strings.Contains(lines[0], want) {
					t.Errorf("expected %s in %s", want, lines[0])
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Cache behaviour
// ---------------------------------------------------------------------------

func TestRecommend_CacheMissThenHit(t *testing.T) {
	rec := okRecommender("1. Thames Kayak Tour - outdoors.")
	cache := newStubCache()
	svc := newService(t, rec, cache, 10*time.Minute)

	first, err := svc.Recommend(context.Background(), "U1")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if cache.sets != 1 || cache.ttl != 10*time.Minute {
		t.Fatalf("expected one Set with the configured ttl, got sets=%d ttl=%s", cache.sets, cache.ttl)
	}

	second, err := svc.Recommend(context.Background(), "U1")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first != second {
		t.Fatalf("cached output differs: %q vs %q", first, second)
	}
	if rec.calls != 1 {
		t.Fatalf("second call should be served from cache, provider called %d times", rec.calls)
	}
}

func TestRecommend_CacheErrorsAreNotFatal(t *testing.T) {
	rec := okRecommender("1. Thames Kayak Tour - outdoors.")
	cache := newStubCache()
	cache.getErr = errors.New("redis: connection refused")
	cache.setErr = errors.New("redis: connection refused")
	svc := newService(t, rec, cache, time.Minute)

	out, err := svc.Recommend(context.Background(), "U1")
	if err != nil {
		t.Fatalf("cache failures must not fail the request: %v", err)
	}
	if out == "" || rec.calls != 1 {
		t.Fatalf("expected provider output, got %q (calls=%d)", out, rec.calls)
	}
}

func TestRecommend_ZeroTTLDisablesCache(t *testing.T) {
	rec := okRecommender("1. Thames Kayak Tour - outdoors.")
	cache := newStubCache()
	svc := newService(t, rec, cache, 0)

	for i := 0; i < 2; i++ {
		if _, err := svc.Recommend(context.Background(), "U1"); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if rec.calls != 2 {
		t.Fatalf("expected 2 provider calls with cache disabled, got %d", rec.calls)
	}
	if cache.sets != 0 {
		t.Fatal("cache must not be written when ttl is zero")
	}
}

func TestCacheKey(t *testing.T) {
	a := cacheKey("openai:gpt-4o-mini", "prompt")
	if a != cacheKey("openai:gpt-4o-mini", "prompt") {
		t.Error("cache key must be deterministic")
	}
	if a == cacheKey("anthropic:claude", "prompt") {
		t.Error("namespace must change the key")
	}
	if a == cacheKey("openai:gpt-4o-mini", "prompt2") {
		t.Error("prompt must change the key")
	}
}

// ---------------------------------------------------------------------------
// Prompt
// ---------------------------------------------------------------------------

func TestPrompt_IsDeterministic(t *testing.T) {
	svc := newService(t, okRecommender("unused"), nil, 0)

	a, err := svc.Prompt(context.Background(), "U1")
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	b, _ := svc.Prompt(context.Background(), "U1")
	if a != b {
		t.Fatal("prompt must be identical for identical inputs")
	}
	if !strings.Contains(a, "1. <experience title>") || !strings.Contains(a, "3. <experience title>") {
		t.Fatal("prompt should request three numbered recommendations")
	}
}
