package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jomei/notionapi"

	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/core/ports/driven"
	"github.com/custodia-labs/cookbook/internal/logger"
)

// Ensure ReferenceStore implements the interface.
var _ driven.ReferenceStore = (*ReferenceStore)(nil)

// Reference database property names.
const (
	propCategory = "Category"
	propType     = "Type"
)

// ReferenceStore keeps ingredients and cuisines in their Notion databases.
type ReferenceStore struct {
	api       *notionapi.Client
	databases domain.NotionSettings
}

// NewReferenceStore creates a reference store. Only the database IDs of
// settings are used.
func NewReferenceStore(client *Client, settings domain.NotionSettings) *ReferenceStore {
	return &ReferenceStore{
		api:       client.api,
		databases: settings,
	}
}

// Find queries the kind's database for pages whose Name equals name.
// Results keep the order Notion returns them in; Raw is the query response.
func (s *ReferenceStore) Find(ctx context.Context, kind domain.ReferenceKind, name string) (*domain.ReferenceMatches, error) {
	dbID, err := s.databaseID(kind)
	if err != nil {
		return nil, err
	}

	resp, err := s.api.Database.Query(ctx, notionapi.DatabaseID(dbID), &notionapi.DatabaseQueryRequest{
		Filter: &notionapi.PropertyFilter{
			Property: domain.PropName,
			RichText: &notionapi.TextFilterCondition{Equals: name},
		},
	})
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("query %s", kind))
	}

	entities := make([]domain.ReferenceEntity, 0, len(resp.Results))
	for i := range resp.Results {
		entities = append(entities, toEntity(kind, &resp.Results[i]))
	}
	logger.Debug("Notion %s query %q: %d result(s)", kind, name, len(entities))

	matches := &domain.ReferenceMatches{Entities: entities}
	matches.Raw, _ = json.Marshal(resp)
	return matches, nil
}

// Create adds a page to the kind's database. Ingredients carry their
// categories as a Category multi-select; cuisines carry the first category
// as a Type select.
func (s *ReferenceStore) Create(ctx context.Context, entity domain.ReferenceEntity) (*domain.ReferenceEntity, error) {
	dbID, err := s.databaseID(entity.Kind)
	if err != nil {
		return nil, err
	}

	props := notionapi.Properties{
		domain.PropName: notionapi.TitleProperty{
			Title: []notionapi.RichText{{Text: &notionapi.Text{Content: entity.Name}}},
		},
	}
	switch entity.Kind {
	case domain.ReferenceIngredient:
		options := make([]notionapi.Option, 0, len(entity.Categories))
		for _, c := range entity.Categories {
			options = append(options, notionapi.Option{Name: c})
		}
		props[propCategory] = notionapi.MultiSelectProperty{MultiSelect: options}
	case domain.ReferenceCuisine:
		if len(entity.Categories) > 0 {
			props[propType] = notionapi.SelectProperty{Select: notionapi.Option{Name: entity.Categories[0]}}
		}
	}

	page, err := s.api.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(dbID),
		},
		Properties: props,
		Icon: &notionapi.Icon{
			Type:     "external",
			External: &notionapi.FileObject{URL: domain.ReferenceIconURL},
		},
	})
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("create %s", entity.Kind))
	}

	created := entity
	created.ID = string(page.ID)
	created.Raw, _ = json.Marshal(page)
	return &created, nil
}

func (s *ReferenceStore) databaseID(kind domain.ReferenceKind) (string, error) {
	if !kind.IsValid() {
		return "", domain.NewValidationError("kind", "unknown reference kind "+kind.String())
	}
	id := s.databases.DatabaseID(kind)
	if id == "" {
		return "", fmt.Errorf("notion: %s database: %w", kind, domain.ErrNotConfigured)
	}
	return id, nil
}

// toEntity reads the name and categories off a reference page.
func toEntity(kind domain.ReferenceKind, page *notionapi.Page) domain.ReferenceEntity {
	entity := domain.ReferenceEntity{
		ID:   string(page.ID),
		Kind: kind,
	}
	entity.Raw, _ = json.Marshal(page)

	for name, prop := range page.Properties {
		switch p := prop.(type) {
		case *notionapi.TitleProperty:
			if name == domain.PropName {
				entity.Name = plainText(p.Title)
			}
		case *notionapi.MultiSelectProperty:
			if name == propCategory {
				for _, opt := range p.MultiSelect {
					entity.Categories = append(entity.Categories, opt.Name)
				}
			}
		case *notionapi.SelectProperty:
			if name == propType && p.Select.Name != "" {
				entity.Categories = append(entity.Categories, p.Select.Name)
			}
		}
	}
	return entity
}

func plainText(runs []notionapi.RichText) string {
	var b strings.Builder
	for _, rt := range runs {
		switch {
		case rt.PlainText != "":
			b.WriteString(rt.PlainText)
		case rt.Text != nil:
			b.WriteString(rt.Text.Content)
		}
	}
	return b.String()
}
