package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/yonder/experience-recommender/internal/core/domain"
	"github.com/yonder/experience-recommender/internal/core/ports"
	"github.com/yonder/experience-recommender/internal/pkg/metrics"
)

// RecordValidator checks a single catalog record.
type RecordValidator interface {
	Struct(i any) error
}

// CatalogStore owns the live catalog snapshot. Loads build a complete new
// snapshot and publish it with a single atomic pointer swap, so readers see
// either the old catalog or the new one, never a mix.
type CatalogStore struct {
	source   ports.CatalogSource
	validate RecordValidator
	snapshot atomic.Pointer[domain.Catalog]
	log      zerolog.Logger
	now      func() time.Time
}

// NewCatalogStore returns an empty store. Call Load before serving traffic.
func NewCatalogStore(source ports.CatalogSource, validate RecordValidator, log zerolog.Logger) *CatalogStore {
	return &CatalogStore{
		source:   source,
		validate: validate,
		log:      log,
		now:      time.Now,
	}
}

// Load reads, validates and indexes the catalog, then swaps it in. On any
// failure the error wraps domain.ErrDataLoad and the current snapshot is kept.
func (s *CatalogStore) Load(ctx context.Context) error {
	doc, err := s.source.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrDataLoad) {
			return err
		}
		return fmt.Errorf("%w: %s source: %v", domain.ErrDataLoad, s.source.Name(), err)
	}
	if doc == nil {
		return fmt.Errorf("%w: %s source returned no document", domain.ErrDataLoad, s.source.Name())
	}

	for i := range doc.Members {
		if err := s.validate.Struct(&doc.Members[i]); err != nil {
			return fmt.Errorf("%w: members[%d]: %v", domain.ErrDataLoad, i, err)
		}
	}
	for i := range doc.Experiences {
		if err := s.validate.Struct(&doc.Experiences[i]); err != nil {
			return fmt.Errorf("%w: experiences[%d]: %v", domain.ErrDataLoad, i, err)
		}
	}

	catalog, err := domain.NewCatalog(doc.Members, doc.Experiences, s.now().UTC())
	if err != nil {
		return err
	}

	prev := s.snapshot.Swap(catalog)

	metrics.CatalogRecords.WithLabelValues("members").Set(float64(catalog.UserCount()))
	metrics.CatalogRecords.WithLabelValues("experiences").Set(float64(catalog.ExperienceCount()))

	evt := s.log.Info().
		Str("source", s.source.Name()).
		Int("members", catalog.UserCount()).
		Int("experiences", catalog.ExperienceCount())
	if prev != nil {
		evt = evt.Int("previous_members", prev.UserCount()).Int("previous_experiences", prev.ExperienceCount())
	}
	evt.Msg("catalog loaded")

	return nil
}

// Reload is Load with reload accounting; it is what the HTTP trigger and the
// periodic reloader call.
func (s *CatalogStore) Reload(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		metrics.CatalogReloadsTotal.WithLabelValues(s.source.Name(), "error").Inc()
		s.log.Error().Err(err).Str("source", s.source.Name()).Msg("catalog reload failed, keeping previous snapshot")
		return err
	}
	metrics.CatalogReloadsTotal.WithLabelValues(s.source.Name(), "success").Inc()
	return nil
}

func (s *CatalogStore) Snapshot() *domain.Catalog {
	return s.snapshot.Load()
}

func (s *CatalogStore) Ready() bool {
	return s.snapshot.Load() != nil
}

// LookupUser returns the member with the given id or domain.ErrUserNotFound.
func (s *CatalogStore) LookupUser(id string) (domain.User, error) {
	c := s.snapshot.Load()
	if c == nil {
		return domain.User{}, domain.ErrUserNotFound
	}
	u, ok := c.User(id)
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

// LookupExperience returns the experience with the given id or domain.ErrExperienceNotFound.
func (s *CatalogStore) LookupExperience(id string) (domain.Experience, error) {
	c := s.snapshot.Load()
	if c == nil {
		return domain.Experience{}, domain.ErrExperienceNotFound
	}
	e, ok := c.Experience(id)
	if !ok {
		return domain.Experience{}, domain.ErrExperienceNotFound
	}
	return e, nil
}

func (s *CatalogStore) Users() []domain.User {
	c := s.snapshot.Load()
	if c == nil {
		return []domain.User{}
	}
	return c.Users()
}

func (s *CatalogStore) Experiences() []domain.Experience {
	c := s.snapshot.Load()
	if c == nil {
		return []domain.Experience{}
	}
	return c.Experiences()
}
