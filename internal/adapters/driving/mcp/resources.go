package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cookbook/internal/core/domain"
)

// uriScheme is the URI scheme for cookbook resources.
const uriScheme = "cookbook"

// Resource URI prefixes.
const (
	ingredientURIPrefix = uriScheme + "://ingredients/"
	cuisineURIPrefix    = uriScheme + "://cuisines/"
)

// registerResources registers all MCP resources with the server.
func (s *Server) registerResources() {
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: ingredientURIPrefix + "{name}",
		Name:        "ingredient",
		Description: "An ingredient entity by name",
		MIMEType:    "application/json",
	}, s.handleIngredientResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: cuisineURIPrefix + "{name}",
		Name:        "cuisine",
		Description: "A cuisine entity by name",
		MIMEType:    "application/json",
	}, s.handleCuisineResource)
}

// handleIngredientResource returns an ingredient entity.
func (s *Server) handleIngredientResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return s.readReference(ctx, req.Params.URI, domain.ReferenceIngredient, ingredientURIPrefix)
}

// handleCuisineResource returns a cuisine entity.
func (s *Server) handleCuisineResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return s.readReference(ctx, req.Params.URI, domain.ReferenceCuisine, cuisineURIPrefix)
}

func (s *Server) readReference(
	ctx context.Context,
	uri string,
	kind domain.ReferenceKind,
	prefix string,
) (*mcp.ReadResourceResult, error) {
	name := extractName(uri, prefix)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	entity, err := s.ports.References.Lookup(ctx, kind, name)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", kind, err)
	}

	text, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", kind, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(text),
			},
		},
	}, nil
}

// extractName returns the unescaped entity name from a resource URI.
// Returns "" when the URI does not carry the prefix or the name is empty.
func extractName(uri, prefix string) string {
	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	raw := strings.TrimPrefix(uri, prefix)
	if raw == "" || strings.Contains(raw, "/") {
		return ""
	}
	name, err := url.PathUnescape(raw)
	if err != nil {
		return ""
	}
	return name
}
