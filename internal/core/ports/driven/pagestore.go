package driven

import (
	"context"

	"github.com/custodia-labs/cookbook/internal/core/domain"
)

// PageStore writes recipe pages to the document store.
// Each method is a single write call; none is transactional with another.
type PageStore interface {
	// CreatePage creates a new page under the page's parent collection.
	CreatePage(ctx context.Context, page *domain.Page) (*domain.PageRef, error)

	// UpdateProperties patches an existing page's properties and cover.
	UpdateProperties(ctx context.Context, pageID string, props domain.Properties, cover domain.ExternalFile) error

	// AppendContent appends content blocks to an existing page.
	AppendContent(ctx context.Context, pageID string, blocks domain.Blocks) error

	// UpdateTitle patches only the Name property of an existing page.
	UpdateTitle(ctx context.Context, pageID, title string) error
}
