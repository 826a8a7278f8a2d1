package web

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cookbook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/core/ports/driving"
	"github.com/custodia-labs/cookbook/internal/core/services"
)

// mockRecipeService replays a fixed event sequence and records requests.
type mockRecipeService struct {
	mu       sync.Mutex
	events   []domain.ProgressEvent
	requests []driving.CreateRecipeRequest
}

func (m *mockRecipeService) Validate(req driving.CreateRecipeRequest) error {
	return services.ValidateSourceURL(req.URL)
}

func (m *mockRecipeService) Create(
	_ context.Context,
	req driving.CreateRecipeRequest,
	events chan<- domain.ProgressEvent,
) error {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	for _, e := range m.events {
		events <- e
		if e.Status == domain.StatusError {
			return errors.New(e.Message)
		}
	}
	return nil
}

func (m *mockRecipeService) Stream(ctx context.Context, req driving.CreateRecipeRequest) <-chan domain.ProgressEvent {
	ch := make(chan domain.ProgressEvent)
	go func() {
		defer close(ch)
		_ = m.Create(ctx, req, ch)
	}()
	return ch
}

func (m *mockRecipeService) lastRequest() driving.CreateRecipeRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return driving.CreateRecipeRequest{}
	}
	return m.requests[len(m.requests)-1]
}

type mockAnalyzer struct {
	recipe *domain.Recipe
	err    error
}

func (m *mockAnalyzer) Analyze(_ context.Context, _ string) (*domain.Recipe, error) {
	return m.recipe, m.err
}

// mockCuisineService answers ClassifyRaw with a canned upstream reply.
type mockCuisineService struct {
	status int
	body   []byte
	err    error

	title       string
	ingredients string
}

func (m *mockCuisineService) Classify(_ context.Context, _ string, _ []string) string {
	return domain.UnknownCuisine
}

func (m *mockCuisineService) Resolve(_ context.Context, _ string, _ []string) (string, error) {
	return "", errors.New("not implemented")
}

func (m *mockCuisineService) ClassifyRaw(_ context.Context, title, ingredientSpec string) (int, []byte, error) {
	m.title = title
	m.ingredients = ingredientSpec
	if title == "" || ingredientSpec == "" {
		verr := &domain.ValidationError{}
		if title == "" {
			verr.Add("title", "Missing data for required field.")
		}
		if ingredientSpec == "" {
			verr.Add("ingredients", "Missing data for required field.")
		}
		return 0, nil, verr
	}
	return m.status, m.body, m.err
}

// failingReferenceService fails every call with err.
type failingReferenceService struct {
	err error
}

func (f *failingReferenceService) FindOrCreate(
	_ context.Context, _ domain.ReferenceKind, _ string, _ []string,
) (string, error) {
	return "", f.err
}

func (f *failingReferenceService) Lookup(_ context.Context, _ domain.ReferenceKind, _ string) (*domain.ReferenceEntity, error) {
	return nil, f.err
}

func (f *failingReferenceService) Create(
	_ context.Context, _ domain.ReferenceKind, _, _ string,
) (*domain.ReferenceEntity, error) {
	return nil, f.err
}

type testFixture struct {
	recipes  *mockRecipeService
	analyzer *mockAnalyzer
	refs     *memory.ReferenceStore
	cuisines *mockCuisineService
	ports    *Ports
}

func newFixture() *testFixture {
	f := &testFixture{
		recipes:  &mockRecipeService{},
		analyzer: &mockAnalyzer{},
		refs:     memory.NewReferenceStore(),
		cuisines: &mockCuisineService{status: http.StatusOK, body: []byte(`{"cuisine":"Italian"}`)},
	}
	f.ports = &Ports{
		Recipes:    f.recipes,
		Analyzer:   f.analyzer,
		References: services.NewReferenceResolver(f.refs),
		Cuisines:   f.cuisines,
	}
	return f
}

func (f *testFixture) handler(t *testing.T) http.Handler {
	t.Helper()
	s, err := NewServer(f.ports)
	require.NoError(t, err)
	return s.Handler()
}
