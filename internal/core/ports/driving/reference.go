package driving

import (
	"context"

	"github.com/custodia-labs/cookbook/internal/core/domain"
)

// ReferenceService looks up and creates ingredient and cuisine entities.
type ReferenceService interface {
	// FindOrCreate returns the ID of the first entity matching the normalised
	// name, creating one with the given categories when none exists.
	FindOrCreate(ctx context.Context, kind domain.ReferenceKind, name string, categories []string) (string, error)

	// Lookup returns the first entity matching name.
	// Returns domain.ErrNotFound when there is none.
	Lookup(ctx context.Context, kind domain.ReferenceKind, name string) (*domain.ReferenceEntity, error)

	// Create writes a new entity. categorySpec is a semicolon-delimited list;
	// each token is normalised and title-cased.
	Create(ctx context.Context, kind domain.ReferenceKind, name, categorySpec string) (*domain.ReferenceEntity, error)
}

// CuisineService classifies recipes by cuisine.
type CuisineService interface {
	// Classify returns the normalised cuisine label, "Unknown" when the
	// classifier gives no answer. It never fails.
	Classify(ctx context.Context, title string, ingredients []string) string

	// Resolve classifies and returns the cuisine entity ID.
	Resolve(ctx context.Context, title string, ingredients []string) (string, error)

	// ClassifyRaw proxies the classifier. ingredientSpec is semicolon-delimited.
	ClassifyRaw(ctx context.Context, title, ingredientSpec string) (status int, body []byte, err error)
}
