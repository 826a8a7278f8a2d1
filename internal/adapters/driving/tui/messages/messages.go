// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/cookbook/internal/core/domain"
)

// ProgressReceived carries one pipeline event to the model.
type ProgressReceived struct {
	Event domain.ProgressEvent
}

// StreamClosed is sent when the progress channel is closed.
type StreamClosed struct{}
