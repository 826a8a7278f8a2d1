// Package mcp provides an MCP (Model Context Protocol) server adapter for cookbook.
// It lets AI assistants import recipes and look up reference entities.
package mcp

import "errors"

// ErrMissingRecipeService is returned when the recipe service is not provided.
var ErrMissingRecipeService = errors.New("mcp: recipe service is required")

// ErrMissingReferenceService is returned when the reference service is not provided.
var ErrMissingReferenceService = errors.New("mcp: reference service is required")
