package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/core/ports/driven"
	"github.com/custodia-labs/cookbook/internal/core/ports/driving"
	"github.com/custodia-labs/cookbook/internal/logger"
)

// Ensure ReferenceResolver implements the interface.
var _ driving.ReferenceService = (*ReferenceResolver)(nil)

// ReferenceResolver implements find-or-create over the reference collections.
//
// Find and create are separate store calls with nothing held in between, so
// two concurrent resolutions of the same new name can both miss and both
// create. The duplicate is accepted: later lookups take the first match.
type ReferenceResolver struct {
	store driven.ReferenceStore
}

// NewReferenceResolver creates a new reference resolver.
func NewReferenceResolver(store driven.ReferenceStore) *ReferenceResolver {
	return &ReferenceResolver{store: store}
}

// FindOrCreate returns the ID of the first entity matching the normalised
// name, creating one when none exists. Empty categories get the kind's default.
func (r *ReferenceResolver) FindOrCreate(
	ctx context.Context,
	kind domain.ReferenceKind,
	name string,
	categories []string,
) (string, error) {
	name = domain.CleanName(name)
	if name == "" {
		return "", domain.NewValidationError("name", msgRequired)
	}

	matches, err := r.store.Find(ctx, kind, name)
	if err != nil {
		return "", fmt.Errorf("find %s %q: %w", kind, name, err)
	}
	if first, ok := matches.First(); ok {
		logger.Debug("%s %q found: %s", kind, name, first.ID)
		return first.ID, nil
	}

	if len(categories) == 0 {
		categories = defaultCategories(kind)
	}
	created, err := r.store.Create(ctx, domain.ReferenceEntity{
		Kind:       kind,
		Name:       name,
		Categories: categories,
	})
	if err != nil {
		return "", fmt.Errorf("create %s %q: %w", kind, name, err)
	}

	logger.Info("Created %s %q (%s)", kind, name, created.ID)
	return created.ID, nil
}

// Lookup returns the first entity matching the normalised name.
// A miss is a *domain.NotFoundError carrying the store's query response.
func (r *ReferenceResolver) Lookup(ctx context.Context, kind domain.ReferenceKind, name string) (*domain.ReferenceEntity, error) {
	name = domain.CleanName(name)
	if name == "" {
		return nil, domain.NewValidationError("name", msgRequired)
	}

	matches, err := r.store.Find(ctx, kind, name)
	if err != nil {
		return nil, fmt.Errorf("find %s %q: %w", kind, name, err)
	}
	first, ok := matches.First()
	if !ok {
		notFound := &domain.NotFoundError{Kind: kind, Query: name}
		if matches != nil {
			notFound.Response = matches.Raw
		}
		return nil, notFound
	}
	return first, nil
}

// Create writes a new entity without searching first.
func (r *ReferenceResolver) Create(
	ctx context.Context,
	kind domain.ReferenceKind,
	name, categorySpec string,
) (*domain.ReferenceEntity, error) {
	name = domain.CleanName(name)
	if name == "" {
		return nil, domain.NewValidationError("name", msgRequired)
	}

	categories := ParseCategories(categorySpec)
	if len(categories) == 0 {
		categories = defaultCategories(kind)
	}

	created, err := r.store.Create(ctx, domain.ReferenceEntity{
		Kind:       kind,
		Name:       name,
		Categories: categories,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s %q: %w", kind, name, err)
	}
	return created, nil
}

// ParseCategories splits a semicolon-delimited category list. Each token is
// normalised and title-cased; tokens that normalise to nothing are dropped.
func ParseCategories(list string) []string {
	var out []string
	for _, token := range splitList(list) {
		if cat := domain.TitleCase(domain.Normalise(token, "")); cat != "" {
			out = append(out, cat)
		}
	}
	return out
}

func defaultCategories(kind domain.ReferenceKind) []string {
	if kind == domain.ReferenceCuisine {
		return []string{domain.CuisineType}
	}
	return []string{domain.DefaultCategory}
}
