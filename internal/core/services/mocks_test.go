package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/cookbook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/core/ports/driven"
)

var errBoom = errors.New("boom")

// mockRecipeAPI returns canned recipes and analyses.
type mockRecipeAPI struct {
	recipe     *domain.Recipe
	analysis   *domain.Analysis
	extractErr error
	analyzeErr error

	analyzeRequests []driven.AnalyzeRequest
}

func (m *mockRecipeAPI) Extract(_ context.Context, sourceURL string) (*domain.Recipe, error) {
	if m.extractErr != nil {
		return nil, m.extractErr
	}
	r := *m.recipe
	if r.SourceURL == "" {
		r.SourceURL = sourceURL
	}
	return &r, nil
}

func (m *mockRecipeAPI) Analyze(_ context.Context, req driven.AnalyzeRequest) (*domain.Analysis, error) {
	m.analyzeRequests = append(m.analyzeRequests, req)
	if m.analyzeErr != nil {
		return nil, m.analyzeErr
	}
	return m.analysis, nil
}

// mockClassifier returns a fixed classifier response.
type mockClassifier struct {
	resp *driven.ClassifierResponse
	err  error

	calls [][]string
}

func (m *mockClassifier) Classify(_ context.Context, _ string, ingredients []string) (*driven.ClassifierResponse, error) {
	m.calls = append(m.calls, ingredients)
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

// countingReferenceStore wraps the memory store and counts calls.
type countingReferenceStore struct {
	*memory.ReferenceStore

	mu        sync.Mutex
	finds     int
	creates   int
	findErr   error
	createErr error
}

func newCountingReferenceStore() *countingReferenceStore {
	return &countingReferenceStore{ReferenceStore: memory.NewReferenceStore()}
}

func (s *countingReferenceStore) Find(ctx context.Context, kind domain.ReferenceKind, name string) (*domain.ReferenceMatches, error) {
	s.mu.Lock()
	s.finds++
	s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.ReferenceStore.Find(ctx, kind, name)
}

func (s *countingReferenceStore) Create(ctx context.Context, entity domain.ReferenceEntity) (*domain.ReferenceEntity, error) {
	s.mu.Lock()
	s.creates++
	s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.ReferenceStore.Create(ctx, entity)
}

// faultyPageStore wraps the memory page store with injectable failures.
type faultyPageStore struct {
	*memory.PageStore

	createErr     error
	propertiesErr error
	contentErr    error
	titleErr      error

	titles  []string
	created []*domain.PageRef
}

func newFaultyPageStore() *faultyPageStore {
	return &faultyPageStore{PageStore: memory.NewPageStore()}
}

func (s *faultyPageStore) CreatePage(ctx context.Context, page *domain.Page) (*domain.PageRef, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	ref, err := s.PageStore.CreatePage(ctx, page)
	if err == nil {
		s.created = append(s.created, ref)
	}
	return ref, err
}

func (s *faultyPageStore) UpdateProperties(ctx context.Context, pageID string, props domain.Properties, cover domain.ExternalFile) error {
	if s.propertiesErr != nil {
		return s.propertiesErr
	}
	return s.PageStore.UpdateProperties(ctx, pageID, props, cover)
}

func (s *faultyPageStore) AppendContent(ctx context.Context, pageID string, blocks domain.Blocks) error {
	if s.contentErr != nil {
		return s.contentErr
	}
	return s.PageStore.AppendContent(ctx, pageID, blocks)
}

func (s *faultyPageStore) UpdateTitle(ctx context.Context, pageID, title string) error {
	s.titles = append(s.titles, title)
	if s.titleErr != nil {
		return s.titleErr
	}
	return s.PageStore.UpdateTitle(ctx, pageID, title)
}

func strPtr(s string) *string {
	return &s
}

// sampleRecipe is a small recipe with one named instruction group.
func sampleRecipe() *domain.Recipe {
	return &domain.Recipe{
		Title:              "Chicken Tikka",
		Image:              "https://img.example.com/tikka.jpg",
		Servings:           4,
		PreparationMinutes: domain.Unknown,
		CookingMinutes:     30,
		ReadyInMinutes:     45,
		ExtendedIngredients: []domain.Ingredient{
			{Original: "500g chicken thighs", NameClean: "chicken thighs", Aisle: strPtr("Meat")},
			{Original: "1 tsp garam masala", NameClean: "garam masala", Aisle: strPtr("Spices and Seasonings,Ethnic Foods")},
			{Original: "a handful of love"},
		},
		Instructions: "Marinate. Grill.",
		AnalyzedInstructions: []domain.InstructionGroup{
			{Steps: []domain.Step{{Number: 1, Step: "Marinate the chicken."}, {Number: 2, Step: "Grill."}}},
			{Name: "Sauce", Steps: []domain.Step{{Number: 1, Step: "Simmer the tomatoes."}}},
		},
		GlutenFree: true,
		DishTypes:  []string{"main course", "dinner"},
	}
}
