package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/core/ports/driven"
)

// Ensure ReferenceStore implements the interface.
var _ driven.ReferenceStore = (*ReferenceStore)(nil)

// ReferenceStore is an in-memory implementation of driven.ReferenceStore.
// Entities are kept in creation order per kind, which is the order Find
// returns them in. Names match on domain.NameKey.
type ReferenceStore struct {
	mu       sync.RWMutex
	entities map[domain.ReferenceKind][]domain.ReferenceEntity
}

// NewReferenceStore creates a new in-memory reference store.
func NewReferenceStore() *ReferenceStore {
	return &ReferenceStore{
		entities: make(map[domain.ReferenceKind][]domain.ReferenceEntity),
	}
}

// Find returns every entity of kind whose name matches. There is no raw
// response to carry.
func (s *ReferenceStore) Find(_ context.Context, kind domain.ReferenceKind, name string) (*domain.ReferenceMatches, error) {
	if !kind.IsValid() {
		return nil, domain.NewValidationError("kind", "unknown reference kind "+kind.String())
	}

	key := domain.NameKey(name)

	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.ReferenceEntity, 0, 1)
	for _, e := range s.entities[kind] {
		if domain.NameKey(e.Name) == key {
			result = append(result, copyEntity(e))
		}
	}
	return &domain.ReferenceMatches{Entities: result}, nil
}

// Create stores a new entity with a fresh ID.
// No uniqueness check is made: creating the same name twice yields two entities.
func (s *ReferenceStore) Create(_ context.Context, entity domain.ReferenceEntity) (*domain.ReferenceEntity, error) {
	if !entity.Kind.IsValid() {
		return nil, domain.NewValidationError("kind", "unknown reference kind "+entity.Kind.String())
	}

	entity = copyEntity(entity)
	entity.ID = uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities[entity.Kind] = append(s.entities[entity.Kind], entity)

	created := copyEntity(entity)
	return &created, nil
}

// List returns all entities of a kind in creation order.
func (s *ReferenceStore) List(kind domain.ReferenceKind) []domain.ReferenceEntity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.ReferenceEntity, 0, len(s.entities[kind]))
	for _, e := range s.entities[kind] {
		result = append(result, copyEntity(e))
	}
	return result
}

func copyEntity(e domain.ReferenceEntity) domain.ReferenceEntity {
	if e.Categories != nil {
		e.Categories = append([]string(nil), e.Categories...)
	}
	return e
}
