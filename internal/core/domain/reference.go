package domain

import "encoding/json"

// ReferenceKind identifies a reference-entity collection.
type ReferenceKind string

// Reference collections mirrored in the document store.
const (
	ReferenceIngredient ReferenceKind = "ingredient"
	ReferenceCuisine    ReferenceKind = "cuisine"
)

// IsValid returns true if the kind is recognised.
func (k ReferenceKind) IsValid() bool {
	switch k {
	case ReferenceIngredient, ReferenceCuisine:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k ReferenceKind) String() string {
	return string(k)
}

// Reference defaults.
const (
	// DefaultCategory is the category given to ingredients with no aisle.
	DefaultCategory = "General"

	// CuisineType is the type tag written on cuisine entities.
	CuisineType = "Cuisine"

	// UnknownCuisine is the label used when the classifier gives no answer.
	UnknownCuisine = "Unknown"
)

// ReferenceEntity is an ingredient or cuisine record shared across recipes.
// Entities are looked up by normalised name and never deleted by this service.
type ReferenceEntity struct {
	ID         string        `json:"id"`
	Kind       ReferenceKind `json:"kind"`
	Name       string        `json:"name"`
	Categories []string      `json:"categories,omitempty"`

	// Raw is the store's own representation of the entity, when it has one.
	Raw json.RawMessage `json:"-"`
}

// ReferenceMatches is the result of a name search in a reference collection.
type ReferenceMatches struct {
	// Entities are the matches in the store's native order.
	Entities []ReferenceEntity

	// Raw is the store's own query response, when it has one.
	Raw json.RawMessage
}

// First returns the first match, or false when there is none.
func (m *ReferenceMatches) First() (*ReferenceEntity, bool) {
	if m == nil || len(m.Entities) == 0 {
		return nil, false
	}
	return &m.Entities[0], true
}
