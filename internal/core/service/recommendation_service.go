package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yonder/experience-recommender/internal/core/domain"
	"github.com/yonder/experience-recommender/internal/core/ports"
	"github.com/yonder/experience-recommender/internal/core/prompt"
	"github.com/yonder/experience-recommender/internal/pkg/metrics"
)

// PromptComposer renders the prompt view model into text.
type PromptComposer interface {
	Compose(d prompt.Data) (string, error)
}

// RecommendationOptions tunes the pipeline.
type RecommendationOptions struct {
	// Count is the number of recommendations asked of the provider.
	Count int
	// CacheTTL is how long provider responses are cached. Zero disables the cache.
	CacheTTL time.Duration
	// CacheNamespace separates cache entries produced by different providers or models.
	CacheNamespace string
}

type recommendationService struct {
	catalog     ports.CatalogService
	composer    PromptComposer
	recommender ports.Recommender
	cache       ports.RecommendationCache // optional
	opts        RecommendationOptions
	log         zerolog.Logger
}

// NewRecommendationService returns a RecommendationService implementation.
// cache may be nil.
func NewRecommendationService(
	catalog ports.CatalogService,
	composer PromptComposer,
	recommender ports.Recommender,
	cache ports.RecommendationCache,
	opts RecommendationOptions,
	log zerolog.Logger,
) ports.RecommendationService {
	if opts.CacheTTL <= 0 {
		cache = nil
	}
	return &recommendationService{
		catalog:     catalog,
		composer:    composer,
		recommender: recommender,
		cache:       cache,
		opts:        opts,
		log:         log,
	}
}

// Prompt composes the prompt for userID against a single catalog snapshot.
func (s *recommendationService) Prompt(_ context.Context, userID string) (string, error) {
	snap := s.catalog.Snapshot()
	if snap == nil {
		return "", fmt.Errorf("%w: catalog not loaded", domain.ErrDataLoad)
	}

	user, ok := snap.User(userID)
	if !ok {
		return "", domain.ErrUserNotFound
	}

	text, err := s.composer.Compose(prompt.NewData(user, snap.Experiences(), s.opts.Count))
	if err != nil {
		return "", fmt.Errorf("compose prompt for %s: %w", userID, err)
	}
	return text, nil
}

// Recommend runs the full pipeline for userID.
func (s *recommendationService) Recommend(ctx context.Context, userID string) (string, error) {
	// 1. Lookup + compose. Unknown members stop here, before any provider call.
	text, err := s.Prompt(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.RecommendationsTotal.WithLabelValues("not_found").Inc()
		} else {
			metrics.RecommendationsTotal.WithLabelValues("error").Inc()
		}
		return "", err
	}

	// 2. Cache lookup (non-fatal on failure).
	key := cacheKey(s.opts.CacheNamespace, text)
	if s.cache != nil {
		cached, hit, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Str("user_id", userID).Msg("recommendation cache lookup failed, calling provider")
		case hit:
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			metrics.RecommendationsTotal.WithLabelValues("cache_hit").Inc()
			s.log.Debug().Str("user_id", userID).Msg("recommendation served from cache")
			return cached, nil
		default:
			metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		}
	}

	// 3. Provider call.
	start := time.Now()
	out, err := s.recommender.Recommend(ctx, text)
	if err != nil {
		metrics.RecommendationsTotal.WithLabelValues("upstream_error").Inc()
		s.log.Error().Err(err).Str("user_id", userID).Dur("elapsed", time.Since(start)).Msg("recommendation provider failed")
		if !errors.Is(err, domain.ErrUpstream) {
			err = fmt.Errorf("%w: %v", domain.ErrUpstream, err)
		}
		return "", fmt.Errorf("recommend for %s: %w", userID, err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		metrics.RecommendationsTotal.WithLabelValues("upstream_error").Inc()
		s.log.Error().Str("user_id", userID).Dur("elapsed", time.Since(start)).Msg("recommendation provider returned an empty response")
		return "", fmt.Errorf("recommend for %s: %w: empty response", userID, domain.ErrUpstream)
	}

	// 4. Cache store (non-fatal on failure).
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, out, s.opts.CacheTTL); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to cache recommendation")
		}
	}

	metrics.RecommendationsTotal.WithLabelValues("success").Inc()
	s.log.Info().
		Str("user_id", userID).
		Int("prompt_bytes", len(text)).
		Dur("elapsed", time.Since(start)).
		Msg("recommendation generated")

	return out, nil
}

// cacheKey hashes the namespace and prompt; equal prompts share an entry.
func cacheKey(namespace, text string) string {
	sum := sha256.Sum256([]byte(namespace + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
