package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/core/ports/driven"
	"github.com/custodia-labs/cookbook/internal/core/ports/driving"
	"github.com/custodia-labs/cookbook/internal/logger"
)

// Ensure CuisineService implements the interface.
var _ driving.CuisineService = (*CuisineService)(nil)

// CuisineService classifies recipes and resolves the cuisine entity.
type CuisineService struct {
	classifier driven.CuisineClassifier
	references driving.ReferenceService
}

// NewCuisineService creates a new cuisine service.
func NewCuisineService(classifier driven.CuisineClassifier, references driving.ReferenceService) *CuisineService {
	return &CuisineService{
		classifier: classifier,
		references: references,
	}
}

// Classify returns the normalised cuisine label for a recipe.
// Any classifier failure yields domain.UnknownCuisine.
func (s *CuisineService) Classify(ctx context.Context, title string, ingredients []string) string {
	resp, err := s.classifier.Classify(ctx, title, ingredients)
	if err != nil {
		logger.Warn("Cuisine classifier failed for %q: %v", title, err)
		return domain.UnknownCuisine
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("Cuisine classifier returned status %d for %q", resp.StatusCode, title)
		return domain.UnknownCuisine
	}

	label := domain.Normalise(resp.Cuisine, "")
	if label == "" {
		logger.Warn("Cuisine classifier gave no cuisine for %q", title)
		return domain.UnknownCuisine
	}

	logger.Debug("Classified %q as %s", title, label)
	return label
}

// Resolve classifies a recipe and returns the cuisine entity ID,
// creating the entity when it does not exist yet.
func (s *CuisineService) Resolve(ctx context.Context, title string, ingredients []string) (string, error) {
	label := s.Classify(ctx, title, ingredients)

	id, err := s.references.FindOrCreate(ctx, domain.ReferenceCuisine, label, []string{domain.CuisineType})
	if err != nil {
		return "", fmt.Errorf("resolve cuisine: %w", err)
	}
	return id, nil
}

// ClassifyRaw proxies the classifier and returns its status and body unchanged.
func (s *CuisineService) ClassifyRaw(ctx context.Context, title, ingredientSpec string) (int, []byte, error) {
	if err := requireFields("title", title, "ingredients", ingredientSpec); err != nil {
		return 0, nil, err
	}

	resp, err := s.classifier.Classify(ctx, title, splitList(ingredientSpec))
	if err != nil {
		return 0, nil, fmt.Errorf("classify cuisine: %w", err)
	}
	return resp.StatusCode, resp.Body, nil
}
