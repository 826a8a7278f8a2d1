package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/core/ports/driven"
	"github.com/custodia-labs/cookbook/internal/logger"
)

// Ensure PageStore implements the interface.
var _ driven.PageStore = (*PageStore)(nil)

// MaxBlocksPerRequest is the most children Notion accepts in one request.
const MaxBlocksPerRequest = 100

// maxErrorBody caps how much of a failed response is kept.
const maxErrorBody = 64 << 10

// PageStore writes recipe pages with raw JSON requests.
type PageStore struct {
	http    *http.Client
	baseURL string
}

// NewPageStore creates a page store sharing the client's transport.
func NewPageStore(client *Client) *PageStore {
	return &PageStore{
		http:    client.http,
		baseURL: client.baseURL,
	}
}

// CreatePage creates a page under its parent database. Content beyond the
// first MaxBlocksPerRequest blocks is appended in further requests.
func (s *PageStore) CreatePage(ctx context.Context, page *domain.Page) (*domain.PageRef, error) {
	if page == nil {
		return nil, fmt.Errorf("%w: nil page", domain.ErrInvalidInput)
	}

	first, rest := splitBlocks(page.Children)
	head := *page
	head.Children = first

	body, err := s.send(ctx, http.MethodPost, "/pages", &head, "create page")
	if err != nil {
		return nil, err
	}

	ref := &domain.PageRef{
		ID:  gjson.GetBytes(body, "id").String(),
		URL: gjson.GetBytes(body, "url").String(),
	}
	if ref.ID == "" {
		return nil, &domain.UpstreamError{Service: ServiceName, Op: "create page", StatusCode: http.StatusOK, Body: body}
	}
	logger.Debug("Created Notion page %s", ref.ID)

	if len(rest) > 0 {
		if err := s.AppendContent(ctx, ref.ID, rest); err != nil {
			return nil, &domain.PartialWriteError{PageID: ref.ID, PropertiesOK: true, Err: err}
		}
	}
	return ref, nil
}

// UpdateProperties replaces the given properties and the cover of a page.
func (s *PageStore) UpdateProperties(ctx context.Context, pageID string, props domain.Properties, cover domain.ExternalFile) error {
	payload := struct {
		Properties domain.Properties   `json:"properties"`
		Cover      domain.ExternalFile `json:"cover"`
	}{props, cover}

	_, err := s.send(ctx, http.MethodPatch, "/pages/"+pageID, payload, "update properties")
	return err
}

// AppendContent appends blocks to the end of a page, in chunks of at most
// MaxBlocksPerRequest.
func (s *PageStore) AppendContent(ctx context.Context, pageID string, blocks domain.Blocks) error {
	for len(blocks) > 0 {
		chunk, rest := splitBlocks(blocks)
		payload := struct {
			Children domain.Blocks `json:"children"`
		}{chunk}
		if _, err := s.send(ctx, http.MethodPatch, "/blocks/"+pageID+"/children", payload, "append content"); err != nil {
			return err
		}
		blocks = rest
	}
	return nil
}

// UpdateTitle sets the Name property of a page.
func (s *PageStore) UpdateTitle(ctx context.Context, pageID, title string) error {
	payload := struct {
		Properties domain.Properties `json:"properties"`
	}{domain.Properties{domain.PropName: domain.TitleProperty{Text: title}}}

	_, err := s.send(ctx, http.MethodPatch, "/pages/"+pageID, payload, "update title")
	return err
}

// send encodes payload, sends it and returns the body of a 2xx response.
func (s *PageStore) send(ctx context.Context, method, path string, payload any, op string) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("notion: %s: encode: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("notion: %s: create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Service: ServiceName, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &domain.UpstreamError{Service: ServiceName, Op: op, StatusCode: resp.StatusCode, Body: body}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Service: ServiceName, Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	return body, nil
}

// splitBlocks returns the first MaxBlocksPerRequest blocks and the remainder.
func splitBlocks(blocks domain.Blocks) (domain.Blocks, domain.Blocks) {
	if len(blocks) <= MaxBlocksPerRequest {
		return blocks, nil
	}
	return blocks[:MaxBlocksPerRequest], blocks[MaxBlocksPerRequest:]
}
