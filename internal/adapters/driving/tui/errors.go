package tui

import "errors"

// ErrMissingRecipeService is returned when the recipe service is not provided.
var ErrMissingRecipeService = errors.New("tui: recipe service is required")
