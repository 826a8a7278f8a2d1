// Package domain defines the core business entities for the cookbook service.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Recipe: The semi-structured payload returned by the recipe API
//   - Page: A document-store page with typed Properties and content Blocks
//   - ReferenceEntity: An ingredient or cuisine shared across recipe pages
//   - ProgressEvent: One stage report of the recipe pipeline
//
// It also holds the text normaliser applied to every lookup key and label.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
