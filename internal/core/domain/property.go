package domain

import (
	"encoding/json"
	"fmt"
)

// PropertyType is the wire tag of a page property.
type PropertyType string

// Property types written by this service.
const (
	PropertyTypeTitle       PropertyType = "title"
	PropertyTypeRelation    PropertyType = "relation"
	PropertyTypeURL         PropertyType = "url"
	PropertyTypeMultiSelect PropertyType = "multi_select"
	PropertyTypeNumber      PropertyType = "number"
	PropertyTypeCheckbox    PropertyType = "checkbox"
)

// ColorDefault is the default select option colour.
const ColorDefault = "default"

// Property is a typed page property. The set of implementations is closed:
// TitleProperty, RelationProperty, URLProperty, MultiSelectProperty,
// NumberProperty and CheckboxProperty.
type Property interface {
	// Type returns the property's wire tag.
	Type() PropertyType

	property()
}

// TitleProperty is the page title, a single plain-text run.
type TitleProperty struct {
	Text string
}

// RelationProperty links the page to other pages by ID.
type RelationProperty struct {
	IDs []string
}

// URLProperty holds a URL. An empty URL is written as null.
type URLProperty struct {
	URL string
}

// SelectOption is one entry of a multi-select property.
type SelectOption struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// MultiSelectProperty holds zero or more select options.
type MultiSelectProperty struct {
	Options []SelectOption
}

// NumberProperty holds an optional number. A nil Number is written as null.
type NumberProperty struct {
	Number *float64
}

// CheckboxProperty holds a boolean.
type CheckboxProperty struct {
	Checked bool
}

func (TitleProperty) Type() PropertyType       { return PropertyTypeTitle }
func (RelationProperty) Type() PropertyType    { return PropertyTypeRelation }
func (URLProperty) Type() PropertyType         { return PropertyTypeURL }
func (MultiSelectProperty) Type() PropertyType { return PropertyTypeMultiSelect }
func (NumberProperty) Type() PropertyType      { return PropertyTypeNumber }
func (CheckboxProperty) Type() PropertyType    { return PropertyTypeCheckbox }

func (TitleProperty) property()       {}
func (RelationProperty) property()    {}
func (URLProperty) property()         {}
func (MultiSelectProperty) property() {}
func (NumberProperty) property()      {}
func (CheckboxProperty) property()    {}

// Number returns a populated NumberProperty.
func Number(v float64) NumberProperty {
	return NumberProperty{Number: &v}
}

// Options builds default-coloured select options from names.
func Options(names ...string) []SelectOption {
	opts := make([]SelectOption, len(names))
	for i, name := range names {
		opts[i] = SelectOption{Name: name, Color: ColorDefault}
	}
	return opts
}

// richText is the wire form of a plain text run.
type richText struct {
	Type string   `json:"type"`
	Text textBody `json:"text"`
}

type textBody struct {
	Content string `json:"content"`
}

func plainText(s string) []richText {
	return []richText{{Type: "text", Text: textBody{Content: s}}}
}

type relationRef struct {
	ID string `json:"id"`
}

// PropertyValue returns the value half of a property's wire form, the part
// keyed by its type tag.
func PropertyValue(p Property) (any, error) {
	switch v := p.(type) {
	case TitleProperty:
		return plainText(v.Text), nil
	case RelationProperty:
		refs := make([]relationRef, 0, len(v.IDs))
		for _, id := range v.IDs {
			refs = append(refs, relationRef{ID: id})
		}
		return refs, nil
	case URLProperty:
		if v.URL == "" {
			return nil, nil
		}
		return v.URL, nil
	case MultiSelectProperty:
		if v.Options == nil {
			return []SelectOption{}, nil
		}
		return v.Options, nil
	case NumberProperty:
		if v.Number == nil {
			return nil, nil
		}
		return *v.Number, nil
	case CheckboxProperty:
		return v.Checked, nil
	default:
		return nil, fmt.Errorf("%w: unknown property type %T", ErrInvalidInput, p)
	}
}

// MarshalProperty encodes a property as {"type": tag, tag: value}.
func MarshalProperty(p Property) ([]byte, error) {
	value, err := PropertyValue(p)
	if err != nil {
		return nil, err
	}
	tag := string(p.Type())
	return json.Marshal(map[string]any{
		"type": tag,
		tag:    value,
	})
}

// Properties is a page's property set keyed by property name.
type Properties map[string]Property

// MarshalJSON encodes every property in its wire form.
func (ps Properties) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(ps))
	for name, p := range ps {
		raw, err := MarshalProperty(p)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		out[name] = raw
	}
	return json.Marshal(out)
}
