package driven

import (
	"context"

	"github.com/custodia-labs/cookbook/internal/core/domain"
)

// RecipeAPI fetches and analyses recipes from the external food/nutrition API.
type RecipeAPI interface {
	// Extract pulls a structured recipe from a source URL.
	// The returned recipe carries no nutrition or taste data.
	Extract(ctx context.Context, sourceURL string) (*domain.Recipe, error)

	// Analyze submits a recipe for nutrition and taste analysis.
	// Implementations must not apply a timeout of their own to this call.
	Analyze(ctx context.Context, req AnalyzeRequest) (*domain.Analysis, error)
}

// AnalyzeRequest is the recipe content submitted for analysis.
type AnalyzeRequest struct {
	Title        string   `json:"title"`
	Servings     int      `json:"servings"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
}

// CuisineClassifier infers a cuisine from a recipe title and ingredient list.
type CuisineClassifier interface {
	// Classify returns the classifier's raw response. A non-2xx status is
	// reported through the response, not as an error; an error means no
	// response arrived.
	Classify(ctx context.Context, title string, ingredients []string) (*ClassifierResponse, error)
}

// ClassifierResponse is the classifier answer.
type ClassifierResponse struct {
	StatusCode int
	Body       []byte

	// Cuisine is the cuisine field of a 2xx body, empty when absent.
	Cuisine string
}
