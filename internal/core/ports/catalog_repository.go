package ports

import (
	"context"

	"github.com/yonder/experience-recommender/internal/core/domain"
)

// CatalogDocument is the raw catalog as read from its backing store, before
// validation and indexing.
type CatalogDocument struct {
	Members     []domain.User       `json:"members"`
	Experiences []domain.Experience `json:"experiences"`
}

// CatalogSource reads the whole catalog from its backing store.
// Implementations must not return partially read documents.
type CatalogSource interface {
	Load(ctx context.Context) (*CatalogDocument, error)
	// Name identifies the source in logs and readiness output (e.g. "file", "mongo").
	Name() string
}
