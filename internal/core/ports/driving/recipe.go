package driving

import (
	"context"

	"github.com/custodia-labs/cookbook/internal/core/domain"
)

// CreateRecipeRequest asks for a recipe page to be written.
type CreateRecipeRequest struct {
	// URL is the recipe's source page.
	URL string

	// PageID selects update mode when set: the existing page is patched
	// instead of a new page being created.
	PageID string
}

// RecipeService runs the recipe-to-page pipeline.
type RecipeService interface {
	// Validate checks a request without running it.
	Validate(req CreateRecipeRequest) error

	// Create runs the pipeline, sending progress to events. The channel is
	// never closed by Create. The last event sent is either redirecting or
	// error, and the returned error matches the error event.
	Create(ctx context.Context, req CreateRecipeRequest, events chan<- domain.ProgressEvent) error

	// Stream runs Create in a goroutine and returns a channel that is closed
	// after the terminal event.
	Stream(ctx context.Context, req CreateRecipeRequest) <-chan domain.ProgressEvent
}

// RecipeAnalyzer extracts a recipe and merges in its nutrition analysis.
type RecipeAnalyzer interface {
	Analyze(ctx context.Context, sourceURL string) (*domain.Recipe, error)
}
