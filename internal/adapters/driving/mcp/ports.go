package mcp

import (
	"github.com/custodia-labs/cookbook/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Recipes runs the import pipeline.
	Recipes driving.RecipeService

	// Analyzer extracts and analyses recipes without writing anything.
	Analyzer driving.RecipeAnalyzer

	// References looks up ingredients and cuisines.
	References driving.ReferenceService

	// Cuisines classifies recipes.
	Cuisines driving.CuisineService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Recipes == nil {
		return ErrMissingRecipeService
	}
	if p.References == nil {
		return ErrMissingReferenceService
	}
	// Analyzer and Cuisines are optional
	return nil
}
