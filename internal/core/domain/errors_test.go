package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUpstream", ErrUpstream},
		{"ErrPartialWrite", ErrPartialWrite},
		{"ErrNotConfigured", ErrNotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.True(t, errors.Is(ErrNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, ErrInvalidInput))
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Kind: ReferenceCuisine, Query: "Nordic", Response: []byte(`{"results":[]}`)}

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(fmt.Errorf("lookup: %w", err), ErrNotFound))
	assert.False(t, errors.Is(err, ErrUpstream))
	assert.Equal(t, `cuisine "Nordic": not found`, err.Error())
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("url", "Missing data for required field.")
	err.Add("url", "Not a valid URL.")
	err.Add("id", "Not a valid string.")

	assert.True(t, err.HasErrors())
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrUpstream))
	assert.Equal(t,
		"invalid input: id: Not a valid string.; url: Missing data for required field., Not a valid URL.",
		err.Error())
}

func TestValidationError_Empty(t *testing.T) {
	var err *ValidationError
	assert.False(t, err.HasErrors())

	err = &ValidationError{}
	assert.False(t, err.HasErrors())
	err.Add("name", "required")
	assert.True(t, err.HasErrors())
}

func TestUpstreamError(t *testing.T) {
	t.Run("with body", func(t *testing.T) {
		err := &UpstreamError{Service: "notion", Op: "create page", StatusCode: 400, Body: []byte(`{"message":"bad"}` + "\n")}
		assert.Equal(t, `notion: create page: status 400: {"message":"bad"}`, err.Error())
		assert.True(t, errors.Is(err, ErrUpstream))
		assert.Equal(t, 400, StatusCode(err))
	})

	t.Run("without body", func(t *testing.T) {
		err := &UpstreamError{Service: "spoonacular", Op: "extract", StatusCode: 502}
		assert.Equal(t, "spoonacular: extract: status 502", err.Error())
	})

	t.Run("transport failure", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := &UpstreamError{Service: "spoonacular", Op: "analyze", Err: cause}
		assert.Equal(t, "spoonacular: analyze: connection refused", err.Error())
		assert.True(t, errors.Is(err, cause))
		assert.Equal(t, 0, StatusCode(err))
	})

	t.Run("status survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("resolve ingredient: %w", &UpstreamError{Service: "notion", Op: "query", StatusCode: 429})
		assert.Equal(t, 429, StatusCode(err))
		assert.True(t, errors.Is(err, ErrUpstream))
	})
}

func TestPartialWriteError(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name     string
		err      *PartialWriteError
		contains string
	}{
		{
			name:     "properties applied",
			err:      &PartialWriteError{PageID: "p1", PropertiesOK: true, Err: cause},
			contains: "properties updated but content update failed",
		},
		{
			name:     "content applied",
			err:      &PartialWriteError{PageID: "p1", ContentOK: true, Err: cause},
			contains: "content updated but properties update failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.err.Error(), tt.contains)
			assert.Contains(t, tt.err.Error(), "p1")
			assert.True(t, errors.Is(tt.err, ErrPartialWrite))
			assert.True(t, errors.Is(tt.err, cause))
		})
	}
}

func TestStatusCode_NoUpstream(t *testing.T) {
	assert.Equal(t, 0, StatusCode(nil))
	assert.Equal(t, 0, StatusCode(errors.New("plain")))
}
