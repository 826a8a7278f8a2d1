package notion

import (
	"encoding/json"
	"errors"

	"github.com/jomei/notionapi"

	"github.com/custodia-labs/cookbook/internal/core/domain"
)

// wrapError converts an SDK error into a *domain.UpstreamError.
// API errors keep their status and are re-encoded as the body.
func wrapError(err error, op string) error {
	if err == nil {
		return nil
	}

	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) {
		body, _ := json.Marshal(apiErr)
		return &domain.UpstreamError{
			Service:    ServiceName,
			Op:         op,
			StatusCode: apiErr.Status,
			Body:       body,
		}
	}
	return &domain.UpstreamError{Service: ServiceName, Op: op, Err: err}
}
