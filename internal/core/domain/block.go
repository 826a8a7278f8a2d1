package domain

import (
	"encoding/json"
	"fmt"
)

// BlockType is the wire tag of a content block.
type BlockType string

// Block types written by this service.
const (
	BlockTypeHeading  BlockType = "heading_3"
	BlockTypeDivider  BlockType = "divider"
	BlockTypeBullet   BlockType = "bulleted_list_item"
	BlockTypeNumbered BlockType = "numbered_list_item"
)

// Block is a content block on a page. The set of implementations is closed:
// HeadingBlock, DividerBlock, BulletBlock and NumberedBlock.
type Block interface {
	// Type returns the block's wire tag.
	Type() BlockType

	block()
}

// HeadingBlock is a third-level heading.
type HeadingBlock struct {
	Text string
}

// DividerBlock is a horizontal rule.
type DividerBlock struct{}

// BulletBlock is a bulleted list item.
type BulletBlock struct {
	Text string
}

// NumberedBlock is a numbered list item with optional nested items.
type NumberedBlock struct {
	Text     string
	Children []Block
}

func (HeadingBlock) Type() BlockType  { return BlockTypeHeading }
func (DividerBlock) Type() BlockType  { return BlockTypeDivider }
func (BulletBlock) Type() BlockType   { return BlockTypeBullet }
func (NumberedBlock) Type() BlockType { return BlockTypeNumbered }

func (HeadingBlock) block()  {}
func (DividerBlock) block()  {}
func (BulletBlock) block()   {}
func (NumberedBlock) block() {}

type textBlockBody struct {
	RichText []richText       `json:"rich_text"`
	Children []map[string]any `json:"children,omitempty"`
}

// BlockWire converts a block into its wire form:
// {"object": "block", "type": tag, tag: body}.
func BlockWire(b Block) (map[string]any, error) {
	var body any
	switch v := b.(type) {
	case HeadingBlock:
		body = textBlockBody{RichText: plainText(v.Text)}
	case DividerBlock:
		body = struct{}{}
	case BulletBlock:
		body = textBlockBody{RichText: plainText(v.Text)}
	case NumberedBlock:
		children, err := BlocksWire(v.Children)
		if err != nil {
			return nil, err
		}
		body = textBlockBody{RichText: plainText(v.Text), Children: children}
	default:
		return nil, fmt.Errorf("%w: unknown block type %T", ErrInvalidInput, b)
	}

	tag := string(b.Type())
	return map[string]any{
		"object": "block",
		"type":   tag,
		tag:      body,
	}, nil
}

// BlocksWire converts a block sequence, preserving order.
// Returns nil for an empty sequence.
func BlocksWire(blocks []Block) ([]map[string]any, error) {
	if len(blocks) == 0 {
		return nil, nil
	}
	out := make([]map[string]any, len(blocks))
	for i, b := range blocks {
		w, err := BlockWire(b)
		if err != nil {
			return nil, err
		}
		out[i] = w
	}
	return out, nil
}

// Blocks is an ordered block sequence with a wire encoding.
type Blocks []Block

// MarshalJSON encodes the blocks in their wire form.
func (bs Blocks) MarshalJSON() ([]byte, error) {
	wire, err := BlocksWire(bs)
	if err != nil {
		return nil, err
	}
	if wire == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(wire)
}
