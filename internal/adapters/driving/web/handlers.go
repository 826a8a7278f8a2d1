package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/tidwall/gjson"

	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/core/ports/driving"
)

// Paths read from a database automation callback body.
const (
	callbackURLPath    = "data.properties.URL.url"
	callbackPageIDPath = "data.properties.ID.formula.string"
)

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "The app is accessible",
		"server_info": map[string]string{
			"hostname": s.hostname,
		},
	})
}

func (s *Server) handleRecipeStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "The recipe namespace is accessible."})
}

func (s *Server) handleIngredientStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "The ingredient namespace is accessible."})
}

// handleAnalyze returns the extracted recipe merged with its analysis.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req := driving.CreateRecipeRequest{URL: queryParam(r, "url")}
	if err := s.ports.Recipes.Validate(req); err != nil {
		writeError(w, err)
		return
	}

	recipe, err := s.ports.Analyzer.Analyze(r.Context(), req.URL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

// handleCreateRecipe runs the recipe pipeline and streams its progress.
// A browser GET receives the loading page, which reconnects for the stream.
func (s *Server) handleCreateRecipe(w http.ResponseWriter, r *http.Request) {
	req, err := createRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.ports.Recipes.Validate(req); err != nil {
		writeError(w, err)
		return
	}

	if wantsHTML(r) {
		writeLoadingPage(w)
		return
	}

	s.streamProgress(w, r, req)
}

// createRequest reads a create request from query parameters or, for POST,
// from a database automation callback body.
func createRequest(r *http.Request) (driving.CreateRecipeRequest, error) {
	req := driving.CreateRecipeRequest{
		URL:    queryParam(r, "url"),
		PageID: queryParam(r, "id"),
	}
	if r.Method != http.MethodPost {
		return req, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return req, err
	}
	if len(body) == 0 {
		return req, nil
	}
	if !gjson.ValidBytes(body) {
		return req, domain.NewValidationError("body", "Invalid JSON.")
	}

	if v := gjson.GetBytes(body, callbackURLPath); v.Exists() {
		req.URL = v.String()
	}
	if v := gjson.GetBytes(body, callbackPageIDPath); v.Exists() {
		req.PageID = v.String()
	}
	return req, nil
}

func (s *Server) handleFindIngredient(w http.ResponseWriter, r *http.Request) {
	s.findReference(w, r, domain.ReferenceIngredient)
}

func (s *Server) handleFindCuisine(w http.ResponseWriter, r *http.Request) {
	s.findReference(w, r, domain.ReferenceCuisine)
}

// findReference returns the first entity matching the path name.
// A miss is still a 200, carrying a null id, the query and the store's
// own query response.
func (s *Server) findReference(w http.ResponseWriter, r *http.Request, kind domain.ReferenceKind) {
	name := chi.URLParam(r, "name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}

	entity, err := s.ports.References.Lookup(r.Context(), kind, name)
	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, http.StatusOK, map[string]any{
			"id":       nil,
			"query":    name,
			"response": notFoundResponse(err),
		})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeEntity(w, entity)
}

// notFoundResponse returns the store's query response carried by a miss,
// or an empty result list when the store has none.
func notFoundResponse(err error) any {
	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) && gjson.ValidBytes(notFound.Response) {
		return json.RawMessage(notFound.Response)
	}
	return map[string]any{
		"object":  "list",
		"results": []any{},
	}
}

// handleCreateIngredient writes a new ingredient.
// category is an optional semicolon-delimited list.
func (s *Server) handleCreateIngredient(w http.ResponseWriter, r *http.Request) {
	params, err := requestParams(r, "name", "category")
	if err != nil {
		writeError(w, err)
		return
	}

	entity, err := s.ports.References.Create(r.Context(), domain.ReferenceIngredient, params["name"], params["category"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeEntity(w, entity)
}

// handleCreateCuisine writes a new cuisine with an explicit type.
func (s *Server) handleCreateCuisine(w http.ResponseWriter, r *http.Request) {
	params, err := requestParams(r, "name", "type")
	if err != nil {
		writeError(w, err)
		return
	}

	verr := &domain.ValidationError{}
	if params["name"] == "" {
		verr.Add("name", "Missing data for required field.")
	}
	if params["type"] == "" {
		verr.Add("type", "Missing data for required field.")
	}
	if verr.HasErrors() {
		writeError(w, verr)
		return
	}

	entity, err := s.ports.References.Create(r.Context(), domain.ReferenceCuisine, params["name"], params["type"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeEntity(w, entity)
}

// handleClassify proxies the cuisine classifier and returns its answer unchanged.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	params, err := requestParams(r, "title", "ingredients")
	if err != nil {
		writeError(w, err)
		return
	}

	status, body, err := s.ports.Cuisines.ClassifyRaw(r.Context(), params["title"], params["ingredients"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeRaw(w, status, body)
}

// writeEntity writes the store's representation of an entity when it has one.
func writeEntity(w http.ResponseWriter, entity *domain.ReferenceEntity) {
	if len(entity.Raw) > 0 {
		writeRaw(w, http.StatusOK, entity.Raw)
		return
	}
	writeJSON(w, http.StatusOK, entity)
}
