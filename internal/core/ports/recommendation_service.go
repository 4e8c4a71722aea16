package ports

import "context"

// RecommendationService runs the lookup → profile → prompt → provider pipeline
// for a single member.
type RecommendationService interface {
	// Recommend returns the provider's recommendation text for the member.
	// Returns domain.ErrUserNotFound without contacting the provider when the
	// member does not exist.
	Recommend(ctx context.Context, userID string) (string, error)
	// Prompt returns the composed prompt without contacting the provider.
	Prompt(ctx context.Context, userID string) (string, error)
}
