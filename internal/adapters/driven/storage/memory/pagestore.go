package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/core/ports/driven"
)

// Ensure PageStore implements the interface.
var _ driven.PageStore = (*PageStore)(nil)

// StoredPage is a page as held by the in-memory store.
type StoredPage struct {
	ID         string
	Parent     string
	Cover      domain.ExternalFile
	Properties domain.Properties
	Content    domain.Blocks

	// TitleHistory records every title written by UpdateTitle, in order.
	TitleHistory []string
}

// PageStore is an in-memory implementation of driven.PageStore.
type PageStore struct {
	mu    sync.RWMutex
	pages map[string]*StoredPage
}

// NewPageStore creates a new in-memory page store.
func NewPageStore() *PageStore {
	return &PageStore{
		pages: make(map[string]*StoredPage),
	}
}

// CreatePage stores a page under a fresh ID.
func (s *PageStore) CreatePage(_ context.Context, page *domain.Page) (*domain.PageRef, error) {
	if page == nil {
		return nil, fmt.Errorf("%w: nil page", domain.ErrInvalidInput)
	}

	id := uuid.New().String()
	stored := &StoredPage{
		ID:         id,
		Parent:     page.ParentDatabaseID,
		Cover:      page.Cover,
		Properties: copyProperties(page.Properties),
		Content:    append(domain.Blocks(nil), page.Children...),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[id] = stored

	return &domain.PageRef{ID: id, URL: domain.PageURL(id)}, nil
}

// UpdateProperties merges props into the page's properties and replaces its cover.
func (s *PageStore) UpdateProperties(_ context.Context, pageID string, props domain.Properties, cover domain.ExternalFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, ok := s.pages[pageID]
	if !ok {
		return fmt.Errorf("page %s: %w", pageID, domain.ErrNotFound)
	}
	for name, p := range props {
		page.Properties[name] = p
	}
	page.Cover = cover
	return nil
}

// AppendContent appends blocks to the page's content.
func (s *PageStore) AppendContent(_ context.Context, pageID string, blocks domain.Blocks) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, ok := s.pages[pageID]
	if !ok {
		return fmt.Errorf("page %s: %w", pageID, domain.ErrNotFound)
	}
	page.Content = append(page.Content, blocks...)
	return nil
}

// UpdateTitle replaces the page's Name property.
func (s *PageStore) UpdateTitle(_ context.Context, pageID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	page, ok := s.pages[pageID]
	if !ok {
		return fmt.Errorf("page %s: %w", pageID, domain.ErrNotFound)
	}
	page.Properties[domain.PropName] = domain.TitleProperty{Text: title}
	page.TitleHistory = append(page.TitleHistory, title)
	return nil
}

// Put stores a page under a caller-chosen ID, replacing any existing page.
// Used to seed update-mode runs.
func (s *PageStore) Put(id string, page *domain.Page) {
	stored := &StoredPage{ID: id, Properties: domain.Properties{}}
	if page != nil {
		stored.Parent = page.ParentDatabaseID
		stored.Cover = page.Cover
		stored.Properties = copyProperties(page.Properties)
		stored.Content = append(domain.Blocks(nil), page.Children...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[id] = stored
}

// Get returns a copy of a stored page.
func (s *PageStore) Get(id string) (*StoredPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	page, ok := s.pages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *page
	out.Properties = copyProperties(page.Properties)
	out.Content = append(domain.Blocks(nil), page.Content...)
	out.TitleHistory = append([]string(nil), page.TitleHistory...)
	return &out, nil
}

// Count returns the number of stored pages.
func (s *PageStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}

func copyProperties(props domain.Properties) domain.Properties {
	out := make(domain.Properties, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}
