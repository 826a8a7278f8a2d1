package mcp

import (
	"context"
	"errors"

	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/core/ports/driving"
)

var errMock = errors.New("mock failure")

// mockRecipeService replays a fixed event sequence.
type mockRecipeService struct {
	events   []domain.ProgressEvent
	requests []driving.CreateRecipeRequest
}

func (m *mockRecipeService) Validate(_ driving.CreateRecipeRequest) error {
	return nil
}

func (m *mockRecipeService) Create(
	_ context.Context,
	req driving.CreateRecipeRequest,
	events chan<- domain.ProgressEvent,
) error {
	m.requests = append(m.requests, req)
	for _, e := range m.events {
		events <- e
		if e.Status == domain.StatusError {
			return errors.New(e.Message)
		}
	}
	return nil
}

func (m *mockRecipeService) Stream(ctx context.Context, req driving.CreateRecipeRequest) <-chan domain.ProgressEvent {
	ch := make(chan domain.ProgressEvent, len(m.events))
	_ = m.Create(ctx, req, ch)
	close(ch)
	return ch
}

type mockAnalyzer struct {
	recipe *domain.Recipe
	err    error
}

func (m *mockAnalyzer) Analyze(_ context.Context, _ string) (*domain.Recipe, error) {
	return m.recipe, m.err
}

// mockReferenceService serves entities keyed by kind and exact name.
type mockReferenceService struct {
	entities map[domain.ReferenceKind]map[string]*domain.ReferenceEntity
	err      error
}

func newMockReferenceService() *mockReferenceService {
	return &mockReferenceService{entities: map[domain.ReferenceKind]map[string]*domain.ReferenceEntity{
		domain.ReferenceIngredient: {},
		domain.ReferenceCuisine:    {},
	}}
}

func (m *mockReferenceService) add(e *domain.ReferenceEntity) {
	m.entities[e.Kind][e.Name] = e
}

func (m *mockReferenceService) FindOrCreate(
	_ context.Context, _ domain.ReferenceKind, _ string, _ []string,
) (string, error) {
	return "", errors.New("not implemented")
}

func (m *mockReferenceService) Lookup(_ context.Context, kind domain.ReferenceKind, name string) (*domain.ReferenceEntity, error) {
	if m.err != nil {
		return nil, m.err
	}
	if e, ok := m.entities[kind][name]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockReferenceService) Create(
	_ context.Context, _ domain.ReferenceKind, _, _ string,
) (*domain.ReferenceEntity, error) {
	return nil, errors.New("not implemented")
}

type mockCuisineService struct {
	label string
}

func (m *mockCuisineService) Classify(_ context.Context, _ string, _ []string) string {
	return m.label
}

func (m *mockCuisineService) Resolve(_ context.Context, _ string, _ []string) (string, error) {
	return "", errors.New("not implemented")
}

func (m *mockCuisineService) ClassifyRaw(_ context.Context, _, _ string) (int, []byte, error) {
	return 0, nil, errors.New("not implemented")
}

func newTestPorts() *Ports {
	return &Ports{
		Recipes:    &mockRecipeService{},
		Analyzer:   &mockAnalyzer{},
		References: newMockReferenceService(),
		Cuisines:   &mockCuisineService{label: "Italian"},
	}
}
