package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cookbook/internal/core/domain"
)

func TestHandleCreateRecipe_Success(t *testing.T) {
	recipes := &mockRecipeService{events: []domain.ProgressEvent{
		{Status: domain.StatusExtracting, Message: "Extracting"},
		{Status: domain.StatusExtracted, Message: "Extracted"},
		{Status: domain.StatusRedirecting, Message: "Redirecting", URL: "https://www.notion.so/abc"},
	}}
	ports := newTestPorts()
	ports.Recipes = recipes
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, output, err := server.handleCreateRecipe(context.Background(), nil, CreateRecipeInput{
		URL:    "https://example.com/stew",
		PageID: "page-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://www.notion.so/abc", output.PageURL)
	require.Len(t, output.Events, 3)
	assert.Equal(t, "extracting", output.Events[0].Status)
	assert.Equal(t, "redirecting", output.Events[2].Status)

	require.Len(t, recipes.requests, 1)
	assert.Equal(t, "https://example.com/stew", recipes.requests[0].URL)
	assert.Equal(t, "page-1", recipes.requests[0].PageID)
}

func TestHandleCreateRecipe_Error(t *testing.T) {
	ports := newTestPorts()
	ports.Recipes = &mockRecipeService{events: []domain.ProgressEvent{
		{Status: domain.StatusExtracting, Message: "Extracting"},
		{Status: domain.StatusError, Message: "spoonacular: extract: status 402"},
	}}
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, _, err = server.handleCreateRecipe(context.Background(), nil, CreateRecipeInput{URL: "https://example.com"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 402")
}

func TestHandleCreateRecipe_NoTerminalEvent(t *testing.T) {
	server, err := NewServer(newTestPorts())
	require.NoError(t, err)

	_, _, err = server.handleCreateRecipe(context.Background(), nil, CreateRecipeInput{URL: "https://example.com"})

	assert.Error(t, err)
}

func TestHandleAnalyzeRecipe(t *testing.T) {
	ports := newTestPorts()
	ports.Analyzer = &mockAnalyzer{recipe: &domain.Recipe{
		Title:          "Stew",
		SourceURL:      "https://example.com/stew",
		Servings:       4,
		ReadyInMinutes: 90,
		ExtendedIngredients: []domain.Ingredient{
			{Original: "1 onion"},
			{Original: "500g beef"},
		},
		Nutrition: &domain.Nutrition{Nutrients: []domain.Nutrient{
			{Name: domain.NutrientCalories, Amount: 450},
		}},
	}}
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, output, err := server.handleAnalyzeRecipe(context.Background(), nil, AnalyzeRecipeInput{URL: "https://example.com/stew"})

	require.NoError(t, err)
	assert.Equal(t, "Stew", output.Title)
	assert.Equal(t, 4, output.Servings)
	assert.Equal(t, []string{"1 onion", "500g beef"}, output.Ingredients)
	assert.Equal(t, []string{}, output.DishTypes)
	require.NotNil(t, output.Calories)
	assert.InDelta(t, 450.0, *output.Calories, 0.0001)
	assert.Nil(t, output.Protein)
}

func TestHandleAnalyzeRecipe_Error(t *testing.T) {
	ports := newTestPorts()
	ports.Analyzer = &mockAnalyzer{err: errMock}
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, _, err = server.handleAnalyzeRecipe(context.Background(), nil, AnalyzeRecipeInput{URL: "https://example.com"})

	assert.ErrorIs(t, err, errMock)
}

func TestHandleFindReference(t *testing.T) {
	refs := newMockReferenceService()
	refs.add(&domain.ReferenceEntity{
		ID:         "ing-1",
		Kind:       domain.ReferenceIngredient,
		Name:       "Garlic",
		Categories: []string{"Produce"},
	})
	refs.add(&domain.ReferenceEntity{ID: "cui-1", Kind: domain.ReferenceCuisine, Name: "Thai"})
	ports := newTestPorts()
	ports.References = refs
	server, err := NewServer(ports)
	require.NoError(t, err)
	ctx := context.Background()

	_, output, err := server.handleFindIngredient(ctx, nil, FindReferenceInput{Name: "Garlic"})
	require.NoError(t, err)
	assert.True(t, output.Found)
	assert.Equal(t, "ing-1", output.ID)
	assert.Equal(t, []string{"Produce"}, output.Categories)

	_, output, err = server.handleFindCuisine(ctx, nil, FindReferenceInput{Name: "Thai"})
	require.NoError(t, err)
	assert.True(t, output.Found)
	assert.Equal(t, "cui-1", output.ID)

	// Kinds are separate collections
	_, output, err = server.handleFindCuisine(ctx, nil, FindReferenceInput{Name: "Garlic"})
	require.NoError(t, err)
	assert.False(t, output.Found)
	assert.Empty(t, output.ID)
}

func TestHandleFindReference_Error(t *testing.T) {
	refs := newMockReferenceService()
	refs.err = errMock
	ports := newTestPorts()
	ports.References = refs
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, _, err = server.handleFindIngredient(context.Background(), nil, FindReferenceInput{Name: "Garlic"})

	assert.ErrorIs(t, err, errMock)
}

func TestHandleClassifyCuisine(t *testing.T) {
	server, err := NewServer(newTestPorts())
	require.NoError(t, err)

	_, output, err := server.handleClassifyCuisine(context.Background(), nil, ClassifyCuisineInput{
		Title:       "Risotto",
		Ingredients: []string{"rice", "parmesan"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Italian", output.Cuisine)

	_, _, err = server.handleClassifyCuisine(context.Background(), nil, ClassifyCuisineInput{})
	assert.Error(t, err)
}
