package driven

import (
	"context"

	"github.com/custodia-labs/cookbook/internal/core/domain"
)

// ReferenceStore searches and creates reference entities in the document store.
type ReferenceStore interface {
	// Find returns the entities of a kind whose name matches exactly, in the
	// store's native order, with the store's raw query response when it has
	// one. An empty result is not an error.
	Find(ctx context.Context, kind domain.ReferenceKind, name string) (*domain.ReferenceMatches, error)

	// Create writes a new entity and returns it with its assigned ID.
	Create(ctx context.Context, entity domain.ReferenceEntity) (*domain.ReferenceEntity, error)
}
