package ports

import (
	"context"

	"github.com/yonder/experience-recommender/internal/core/domain"
)

// CatalogService exposes read access to the current catalog snapshot and the
// reload trigger.
type CatalogService interface {
	Reload(ctx context.Context) error
	// Snapshot returns the live catalog, or nil before the first successful load.
	// Callers that need several reads to agree should take one snapshot and use it.
	Snapshot() *domain.Catalog
	LookupUser(id string) (domain.User, error)
	LookupExperience(id string) (domain.Experience, error)
	Users() []domain.User
	Experiences() []domain.Experience
	Ready() bool
}
