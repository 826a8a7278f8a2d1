package web

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/core/ports/driving"
	"github.com/custodia-labs/cookbook/internal/logger"
)

// streamProgress runs the pipeline and writes each event as a server-sent event.
// The pipeline keeps running if the client disconnects; later events are dropped.
func (s *Server) streamProgress(w http.ResponseWriter, r *http.Request, req driving.CreateRecipeRequest) {
	rc := http.NewResponseController(w)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	for event := range s.ports.Recipes.Stream(r.Context(), req) {
		if err := writeEvent(w, event); err != nil {
			logger.Debug("Dropping %s event: %v", event.Status, err)
			continue
		}
		if err := rc.Flush(); err != nil {
			logger.Debug("Flush failed: %v", err)
		}
	}
}

// writeEvent writes one frame: "event: <status>\ndata: <json>\n\n".
func writeEvent(w io.Writer, event domain.ProgressEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Status, data)
	return err
}
