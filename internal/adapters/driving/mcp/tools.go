package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/core/ports/driving"
)

// CreateRecipeInput is the input for the create_recipe tool.
type CreateRecipeInput struct {
	URL    string `json:"url" jsonschema:"URL of the recipe page to import"`
	PageID string `json:"page_id,omitempty" jsonschema:"existing page to update instead of creating a new one"`
}

// CreateRecipeOutput is the output for the create_recipe tool.
type CreateRecipeOutput struct {
	PageURL string          `json:"page_url"`
	Events  []ProgressEntry `json:"events"`
}

// ProgressEntry is one pipeline stage as reported to the client.
type ProgressEntry struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// AnalyzeRecipeInput is the input for the analyze_recipe tool.
type AnalyzeRecipeInput struct {
	URL string `json:"url" jsonschema:"URL of the recipe page to analyse"`
}

// AnalyzeRecipeOutput is the output for the analyze_recipe tool.
type AnalyzeRecipeOutput struct {
	Title          string   `json:"title"`
	SourceURL      string   `json:"source_url"`
	Servings       int      `json:"servings"`
	ReadyInMinutes int      `json:"ready_in_minutes"`
	Ingredients    []string `json:"ingredients"`
	DishTypes      []string `json:"dish_types"`
	Calories       *float64 `json:"calories,omitempty"`
	Protein        *float64 `json:"protein,omitempty"`
}

// FindReferenceInput is the input for the find_ingredient and find_cuisine tools.
type FindReferenceInput struct {
	Name string `json:"name" jsonschema:"name to look up"`
}

// FindReferenceOutput is the output for the find_ingredient and find_cuisine tools.
type FindReferenceOutput struct {
	Found      bool     `json:"found"`
	ID         string   `json:"id,omitempty"`
	Name       string   `json:"name,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// ClassifyCuisineInput is the input for the classify_cuisine tool.
type ClassifyCuisineInput struct {
	Title       string   `json:"title" jsonschema:"recipe title"`
	Ingredients []string `json:"ingredients" jsonschema:"ingredient names"`
}

// ClassifyCuisineOutput is the output for the classify_cuisine tool.
type ClassifyCuisineOutput struct {
	Cuisine string `json:"cuisine"`
}

// registerTools registers all MCP tools with the server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_recipe",
		Description: "Import a recipe from a URL into the recipe database. Pass page_id to rewrite an existing page.",
	}, s.handleCreateRecipe)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_ingredient",
		Description: "Look up an ingredient by name",
	}, s.handleFindIngredient)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_cuisine",
		Description: "Look up a cuisine by name",
	}, s.handleFindCuisine)

	if s.ports.Analyzer != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "analyze_recipe",
			Description: "Extract a recipe from a URL and report its ingredients and nutrition without writing anything",
		}, s.handleAnalyzeRecipe)
	}

	if s.ports.Cuisines != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "classify_cuisine",
			Description: "Classify a recipe's cuisine from its title and ingredients",
		}, s.handleClassifyCuisine)
	}
}

// handleCreateRecipe runs the recipe pipeline and collects its progress.
func (s *Server) handleCreateRecipe(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateRecipeInput,
) (*mcp.CallToolResult, CreateRecipeOutput, error) {
	req := driving.CreateRecipeRequest{URL: input.URL, PageID: input.PageID}

	output := CreateRecipeOutput{Events: []ProgressEntry{}}
	var failure string
	for event := range s.ports.Recipes.Stream(ctx, req) {
		output.Events = append(output.Events, ProgressEntry{
			Status:  event.Status.String(),
			Message: event.Message,
		})
		switch event.Status {
		case domain.StatusRedirecting:
			output.PageURL = event.URL
		case domain.StatusError:
			failure = event.Message
		}
	}

	if failure != "" {
		return nil, CreateRecipeOutput{}, fmt.Errorf("create recipe: %s", failure)
	}
	if output.PageURL == "" {
		return nil, CreateRecipeOutput{}, errors.New("create recipe: pipeline ended without a page")
	}
	return nil, output, nil
}

// handleAnalyzeRecipe extracts and analyses a recipe.
func (s *Server) handleAnalyzeRecipe(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeRecipeInput,
) (*mcp.CallToolResult, AnalyzeRecipeOutput, error) {
	recipe, err := s.ports.Analyzer.Analyze(ctx, input.URL)
	if err != nil {
		return nil, AnalyzeRecipeOutput{}, fmt.Errorf("analyze recipe: %w", err)
	}

	output := AnalyzeRecipeOutput{
		Title:          recipe.Title,
		SourceURL:      recipe.SourceURL,
		Servings:       recipe.Servings,
		ReadyInMinutes: recipe.ReadyInMinutes,
		Ingredients:    recipe.IngredientLines(),
		DishTypes:      recipe.DishTypes,
	}
	if output.DishTypes == nil {
		output.DishTypes = []string{}
	}
	if cal, ok := recipe.NutrientAmount(domain.NutrientCalories); ok {
		output.Calories = &cal
	}
	if protein, ok := recipe.NutrientAmount(domain.NutrientProtein); ok {
		output.Protein = &protein
	}

	return nil, output, nil
}

// handleFindIngredient looks up an ingredient.
func (s *Server) handleFindIngredient(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindReferenceInput,
) (*mcp.CallToolResult, FindReferenceOutput, error) {
	return s.findReference(ctx, domain.ReferenceIngredient, input.Name)
}

// handleFindCuisine looks up a cuisine.
func (s *Server) handleFindCuisine(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindReferenceInput,
) (*mcp.CallToolResult, FindReferenceOutput, error) {
	return s.findReference(ctx, domain.ReferenceCuisine, input.Name)
}

func (s *Server) findReference(
	ctx context.Context,
	kind domain.ReferenceKind,
	name string,
) (*mcp.CallToolResult, FindReferenceOutput, error) {
	entity, err := s.ports.References.Lookup(ctx, kind, name)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, FindReferenceOutput{Found: false}, nil
	}
	if err != nil {
		return nil, FindReferenceOutput{}, fmt.Errorf("find %s: %w", kind, err)
	}

	return nil, FindReferenceOutput{
		Found:      true,
		ID:         entity.ID,
		Name:       entity.Name,
		Categories: entity.Categories,
	}, nil
}

// handleClassifyCuisine classifies a recipe.
func (s *Server) handleClassifyCuisine(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ClassifyCuisineInput,
) (*mcp.CallToolResult, ClassifyCuisineOutput, error) {
	if input.Title == "" {
		return nil, ClassifyCuisineOutput{}, errors.New("classify cuisine: title is required")
	}
	label := s.ports.Cuisines.Classify(ctx, input.Title, input.Ingredients)
	return nil, ClassifyCuisineOutput{Cuisine: label}, nil
}
