package domain

import (
	"encoding/json"
	"strings"
)

// Recipe page property names.
const (
	PropName        = "Name"
	PropIngredients = "Ingredients"
	PropURL         = "URL"
	PropCourse      = "Course"
	PropServings    = "Servings"
	PropCalories    = "Calories"
	PropProtein     = "Protein"
	PropPrepMins    = "Preparation Mins"
	PropCookingMins = "Cooking Mins"
	PropTotalMins   = "Total Mins"
	PropFavorite    = "Favorite"
	PropCuisine     = "Cuisine"
	PropTags        = "Tags"
)

// Default page artwork.
const (
	DefaultCoverURL  = "https://i.imgur.com/1bY0aV1.png"
	RecipeIconURL    = "https://www.notion.so/icons/bowl-food_gray.svg"
	ReferenceIconURL = "https://www.notion.so/icons/grocery_gray.svg"
	pageURLPrefix    = "https://www.notion.so/"
)

// ExternalFile is an externally hosted image used as a cover or icon.
type ExternalFile struct {
	URL string
}

// MarshalJSON encodes the file as {"type": "external", "external": {"url": ...}}.
func (f ExternalFile) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"type":     "external",
		"external": map[string]string{"url": f.URL},
	})
}

// Page is a document-store page: a parent database, artwork, typed properties
// and ordered content blocks. Pages are built per request and never stored locally.
type Page struct {
	ParentDatabaseID string
	Cover            ExternalFile
	Icon             ExternalFile
	Properties       Properties
	Children         Blocks
}

// MarshalJSON encodes the page as a create-page request body.
func (p *Page) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Parent     map[string]string `json:"parent"`
		Cover      ExternalFile      `json:"cover"`
		Icon       ExternalFile      `json:"icon"`
		Properties Properties        `json:"properties"`
		Children   Blocks            `json:"children"`
	}{
		Parent:     map[string]string{"database_id": p.ParentDatabaseID},
		Cover:      p.Cover,
		Icon:       p.Icon,
		Properties: p.Properties,
		Children:   p.Children,
	})
}

// PageRef identifies a page written to the document store.
type PageRef struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// PageURL returns the public URL of a page ID.
func PageURL(id string) string {
	return pageURLPrefix + strings.ReplaceAll(id, "-", "")
}
