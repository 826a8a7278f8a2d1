package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/core/ports/driven"
	"github.com/custodia-labs/cookbook/internal/core/ports/driving"
)

// Ensure AnalyzeService implements the interface.
var _ driving.RecipeAnalyzer = (*AnalyzeService)(nil)

// AnalyzeService extracts recipes and merges in their nutrition analysis.
type AnalyzeService struct {
	api driven.RecipeAPI
}

// NewAnalyzeService creates a new analyze service.
func NewAnalyzeService(api driven.RecipeAPI) *AnalyzeService {
	return &AnalyzeService{api: api}
}

// Analyze extracts the recipe at sourceURL and enriches it with nutrition and taste.
func (s *AnalyzeService) Analyze(ctx context.Context, sourceURL string) (*domain.Recipe, error) {
	recipe, err := s.Extract(ctx, sourceURL)
	if err != nil {
		return nil, err
	}
	if err := s.Enrich(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Extract pulls the structured recipe from sourceURL.
func (s *AnalyzeService) Extract(ctx context.Context, sourceURL string) (*domain.Recipe, error) {
	if err := ValidateSourceURL(sourceURL); err != nil {
		return nil, err
	}

	recipe, err := s.api.Extract(ctx, sourceURL)
	if err != nil {
		return nil, fmt.Errorf("extract recipe: %w", err)
	}
	return recipe, nil
}

// Enrich submits an extracted recipe for analysis and copies only the
// nutrition and taste results onto it. The analysis response's servings and
// ingredients are placeholders and are never merged.
func (s *AnalyzeService) Enrich(ctx context.Context, recipe *domain.Recipe) error {
	analysis, err := s.api.Analyze(ctx, driven.AnalyzeRequest{
		Title:        recipe.Title,
		Servings:     recipe.Servings,
		Ingredients:  recipe.IngredientLines(),
		Instructions: recipe.Instructions,
	})
	if err != nil {
		return fmt.Errorf("analyze recipe: %w", err)
	}

	recipe.ApplyAnalysis(analysis)
	return nil
}
