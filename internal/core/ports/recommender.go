package ports

import (
	"context"
	"time"
)

// Recommender sends a composed prompt to a completion provider and returns the
// provider's text verbatim. Failures wrap domain.ErrUpstream.
type Recommender interface {
	Recommend(ctx context.Context, prompt string) (string, error)
}

// RecommendationCache stores provider responses keyed by prompt.
// A miss is reported as ("", false, nil).
type RecommendationCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
