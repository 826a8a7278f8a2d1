package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/core/services"
)

var testDatabases = domain.NotionSettings{
	IngredientDatabaseID: "ingredient-db",
	CuisineDatabaseID:    "cuisine-db",
}

const garlicPage = `{
	"object": "page",
	"id": "11111111-2222-3333-4444-555555555555",
	"url": "https://www.notion.so/Garlic-111111112222333344445555555555555",
	"properties": {
		"Name": {
			"id": "title",
			"type": "title",
			"title": [{"type": "text", "text": {"content": "Garlic"}, "plain_text": "Garlic"}]
		},
		"Category": {
			"id": "cat",
			"type": "multi_select",
			"multi_select": [{"id": "a", "name": "Produce", "color": "default"}]
		}
	}
}`

func TestReferenceStore_Find(t *testing.T) {
	client, fake := newFakeClient(t, map[string]fakeResponse{
		"POST /v1/databases/ingredient-db/query": {
			status: http.StatusOK,
			body:   `{"object": "list", "results": [` + garlicPage + `], "has_more": false}`,
		},
	})
	store := NewReferenceStore(client, testDatabases)

	matches, err := store.Find(context.Background(), domain.ReferenceIngredient, "Garlic")

	require.NoError(t, err)
	require.Len(t, matches.Entities, 1)
	found := matches.Entities[0]
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", found.ID)
	assert.Equal(t, "Garlic", found.Name)
	assert.Equal(t, domain.ReferenceIngredient, found.Kind)
	assert.Equal(t, []string{"Produce"}, found.Categories)
	assert.NotEmpty(t, found.Raw)

	reqs := fake.recorded()
	require.Len(t, reqs, 1)
	filter, ok := reqs[0].Body["filter"].(map[string]any)
	require.True(t, ok, "query carries a filter")
	assert.Equal(t, "Name", filter["property"])
	richText, ok := filter["rich_text"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Garlic", richText["equals"])
}

func TestReferenceStore_Find_NoResults(t *testing.T) {
	client, _ := newFakeClient(t, map[string]fakeResponse{
		"POST /v1/databases/cuisine-db/query": {
			status: http.StatusOK,
			body:   `{"object": "list", "results": [], "has_more": false}`,
		},
	})

	matches, err := NewReferenceStore(client, testDatabases).Find(context.Background(), domain.ReferenceCuisine, "Nordic")

	require.NoError(t, err)
	assert.NotNil(t, matches.Entities)
	assert.Empty(t, matches.Entities)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(matches.Raw, &raw))
	assert.Equal(t, "list", raw["object"])
	assert.Equal(t, []any{}, raw["results"])
}

func TestReferenceStore_ResolverCollapsesWhitespace(t *testing.T) {
	client, fake := newFakeClient(t, map[string]fakeResponse{
		"POST /v1/databases/ingredient-db/query": {
			status: http.StatusOK,
			body:   `{"object": "list", "results": [], "has_more": false}`,
		},
		"POST /v1/pages": {status: http.StatusOK, body: garlicPage},
	})
	resolver := services.NewReferenceResolver(NewReferenceStore(client, testDatabases))

	_, err := resolver.FindOrCreate(context.Background(), domain.ReferenceIngredient, "  Chicken   Thighs ", nil)
	require.NoError(t, err)

	reqs := fake.recorded()
	require.Len(t, reqs, 2)

	filter := reqs[0].Body["filter"].(map[string]any)
	richText := filter["rich_text"].(map[string]any)
	assert.Equal(t, "Chicken Thighs", richText["equals"])

	assert.Equal(t, "/v1/pages", reqs[1].Path)
	assert.Contains(t, string(reqs[1].RawBody), `"content":"Chicken Thighs"`)
	assert.NotContains(t, string(reqs[1].RawBody), "Chicken   Thighs")
}

func TestReferenceStore_Find_UpstreamError(t *testing.T) {
	client, _ := newFakeClient(t, map[string]fakeResponse{
		"POST /v1/databases/ingredient-db/query": {
			status: http.StatusNotFound,
			body:   `{"object": "error", "status": 404, "code": "object_not_found", "message": "Could not find database"}`,
		},
	})

	_, err := NewReferenceStore(client, testDatabases).Find(context.Background(), domain.ReferenceIngredient, "Garlic")

	var upErr *domain.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusNotFound, upErr.StatusCode)
	assert.Equal(t, "query ingredient", upErr.Op)
	assert.Contains(t, string(upErr.Body), "object_not_found")
}

func TestReferenceStore_Find_Unconfigured(t *testing.T) {
	client, fake := newFakeClient(t, nil)
	store := NewReferenceStore(client, domain.NotionSettings{IngredientDatabaseID: "ingredient-db"})

	_, err := store.Find(context.Background(), domain.ReferenceCuisine, "Thai")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)

	_, err = store.Find(context.Background(), domain.ReferenceKind("dish"), "Thai")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, fake.recorded())
}

func TestReferenceStore_Create_Ingredient(t *testing.T) {
	client, fake := newFakeClient(t, map[string]fakeResponse{
		"POST /v1/pages": {status: http.StatusOK, body: garlicPage},
	})

	created, err := NewReferenceStore(client, testDatabases).Create(context.Background(), domain.ReferenceEntity{
		Kind:       domain.ReferenceIngredient,
		Name:       "Garlic",
		Categories: []string{"Produce", "Spices"},
	})

	require.NoError(t, err)
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", created.ID)
	assert.Equal(t, "Garlic", created.Name)
	assert.Equal(t, []string{"Produce", "Spices"}, created.Categories)

	reqs := fake.recorded()
	require.Len(t, reqs, 1)
	body := reqs[0].Body
	parent := body["parent"].(map[string]any)
	assert.Equal(t, "ingredient-db", parent["database_id"])

	icon := body["icon"].(map[string]any)
	assert.Equal(t, "external", icon["type"])
	assert.Equal(t, domain.ReferenceIconURL, icon["external"].(map[string]any)["url"])

	props := body["properties"].(map[string]any)
	assert.Contains(t, props, "Name")
	category := props["Category"].(map[string]any)
	options := category["multi_select"].([]any)
	require.Len(t, options, 2)
	assert.Equal(t, "Produce", options[0].(map[string]any)["name"])
	assert.NotContains(t, props, "Type")
}

func TestReferenceStore_Create_Cuisine(t *testing.T) {
	client, fake := newFakeClient(t, map[string]fakeResponse{
		"POST /v1/pages": {status: http.StatusOK, body: `{"object": "page", "id": "cuisine-1", "properties": {}}`},
	})

	created, err := NewReferenceStore(client, testDatabases).Create(context.Background(), domain.ReferenceEntity{
		Kind:       domain.ReferenceCuisine,
		Name:       "Thai",
		Categories: []string{domain.CuisineType},
	})

	require.NoError(t, err)
	assert.Equal(t, "cuisine-1", created.ID)

	props := fake.recorded()[0].Body["properties"].(map[string]any)
	typ := props["Type"].(map[string]any)
	assert.Equal(t, "Cuisine", typ["select"].(map[string]any)["name"])
	assert.NotContains(t, props, "Category")
}

func TestReferenceStore_Create_UpstreamError(t *testing.T) {
	client, _ := newFakeClient(t, map[string]fakeResponse{
		"POST /v1/pages": {
			status: http.StatusBadRequest,
			body:   `{"object": "error", "status": 400, "code": "validation_error", "message": "Type is not a property"}`,
		},
	})

	_, err := NewReferenceStore(client, testDatabases).Create(context.Background(), domain.ReferenceEntity{
		Kind: domain.ReferenceCuisine,
		Name: "Thai",
	})

	assert.Equal(t, http.StatusBadRequest, domain.StatusCode(err))
}
