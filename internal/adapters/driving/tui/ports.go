// Package tui provides the terminal progress view for cookbook.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/cookbook/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the TUI.
type Ports struct {
	// Recipes runs the import pipeline.
	Recipes driving.RecipeService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Recipes == nil {
		return ErrMissingRecipeService
	}
	return nil
}
