package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/core/ports/driven"
	"github.com/custodia-labs/cookbook/internal/core/ports/driving"
	"github.com/custodia-labs/cookbook/internal/logger"
)

// Ensure RecipeOrchestrator implements the interface.
var _ driving.RecipeService = (*RecipeOrchestrator)(nil)

// streamBuffer is the capacity of channels returned by Stream. A full run
// emits seven events.
const streamBuffer = 8

// Title labels written onto the target page while an update runs.
const (
	titleExtracting = "⏳ Extracting recipe..."
	titleAnalyzing  = "⏳ Analyzing recipe..."
	titleCreating   = "⏳ Writing page..."
)

// RecipeOrchestrator runs the recipe pipeline:
// extract, analyze, resolve references, build the page, write it.
type RecipeOrchestrator struct {
	analyzer         *AnalyzeService
	references       driving.ReferenceService
	cuisines         driving.CuisineService
	pages            driven.PageStore
	recipeDatabaseID string
}

// NewRecipeOrchestrator creates a new recipe orchestrator.
// recipeDatabaseID is the parent collection for newly created pages.
func NewRecipeOrchestrator(
	analyzer *AnalyzeService,
	references driving.ReferenceService,
	cuisines driving.CuisineService,
	pages driven.PageStore,
	recipeDatabaseID string,
) *RecipeOrchestrator {
	return &RecipeOrchestrator{
		analyzer:         analyzer,
		references:       references,
		cuisines:         cuisines,
		pages:            pages,
		recipeDatabaseID: recipeDatabaseID,
	}
}

// Validate checks a request without running it.
func (o *RecipeOrchestrator) Validate(req driving.CreateRecipeRequest) error {
	return ValidateSourceURL(req.URL)
}

// Stream runs Create in a goroutine. The returned channel is closed after
// the terminal event.
func (o *RecipeOrchestrator) Stream(ctx context.Context, req driving.CreateRecipeRequest) <-chan domain.ProgressEvent {
	events := make(chan domain.ProgressEvent, streamBuffer)
	go func() {
		defer close(events)
		_ = o.Create(ctx, req, events)
	}()
	return events
}

// Create runs the pipeline for one request.
//
// Each event is sent before the call it announces. On failure exactly one
// error event is sent and nothing after it. Writes run on a context detached
// from ctx, so a caller that goes away does not abort them; events to a
// caller whose ctx is done are dropped.
func (o *RecipeOrchestrator) Create(ctx context.Context, req driving.CreateRecipeRequest, events chan<- domain.ProgressEvent) error {
	run := &recipeRun{
		orchestrator: o,
		req:          req,
		events:       events,
		callerCtx:    ctx,
		ctx:          context.WithoutCancel(ctx),
	}

	ref, err := run.execute()
	if err != nil {
		logger.Error("Recipe %s failed: %v", req.URL, err)
		run.emit(domain.StatusError, err.Error(), "")
		return err
	}

	logger.Info("Recipe %s written to %s", req.URL, ref.URL)
	run.emit(domain.StatusRedirecting, "Redirecting to the recipe page", ref.URL)
	return nil
}

// recipeRun holds the state of one pipeline run.
type recipeRun struct {
	orchestrator *RecipeOrchestrator
	req          driving.CreateRecipeRequest
	events       chan<- domain.ProgressEvent
	callerCtx    context.Context
	ctx          context.Context
}

func (r *recipeRun) updating() bool {
	return r.req.PageID != ""
}

func (r *recipeRun) execute() (*domain.PageRef, error) {
	o := r.orchestrator

	if err := ValidateSourceURL(r.req.URL); err != nil {
		return nil, err
	}

	// 1. Extract
	r.stage(domain.StatusExtracting, "Extracting recipe from "+r.req.URL, titleExtracting)
	recipe, err := o.analyzer.Extract(r.ctx, r.req.URL)
	if err != nil {
		return nil, err
	}
	r.emit(domain.StatusExtracted, fmt.Sprintf("Extracted %q", recipe.Title), "")

	// 2. Analyze
	r.stage(domain.StatusAnalyzing, "Analyzing nutrition and taste", titleAnalyzing)
	if err := o.analyzer.Enrich(r.ctx, recipe); err != nil {
		return nil, err
	}
	r.emit(domain.StatusAnalyzed, "Analysis complete", "")

	// 3. Resolve references, build and write the page
	verb := "Creating"
	if r.updating() {
		verb = "Updating"
	}
	r.stage(domain.StatusCreating, verb+" recipe page", titleCreating)

	ingredientIDs, err := r.resolveIngredients(recipe)
	if err != nil {
		return nil, err
	}
	cuisineID, err := o.cuisines.Resolve(r.ctx, recipe.Title, recipe.CleanIngredientNames())
	if err != nil {
		return nil, err
	}

	page := BuildPage(recipe, PageRefs{
		ParentDatabaseID: o.recipeDatabaseID,
		IngredientIDs:    ingredientIDs,
		CuisineID:        cuisineID,
	})

	ref, err := r.upsert(page)
	if err != nil {
		return nil, err
	}

	if r.updating() {
		r.emit(domain.StatusCreated, "Recipe page updated", "")
	} else {
		r.emit(domain.StatusCreated, "Recipe page created", "")
	}
	return ref, nil
}

// resolveIngredients finds or creates an entity per ingredient, sequentially
// and in recipe order. Ingredients without a canonical name are skipped.
func (r *recipeRun) resolveIngredients(recipe *domain.Recipe) ([]string, error) {
	ids := make([]string, 0, len(recipe.ExtendedIngredients))
	for _, ing := range recipe.ExtendedIngredients {
		name := domain.TitleCase(domain.Normalise(ing.NameClean, ""))
		if name == "" {
			logger.Debug("Skipping ingredient %q: no canonical name", ing.Original)
			continue
		}

		id, err := r.orchestrator.references.FindOrCreate(r.ctx, domain.ReferenceIngredient, name, IngredientCategories(ing.Aisle))
		if err != nil {
			return nil, fmt.Errorf("resolve ingredient %q: %w", name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// IngredientCategories derives an ingredient's categories from its aisle.
// Commas in the aisle become " /" so "Spices and Seasonings,Baking" stays
// one category, "Spices And Seasonings /Baking".
func IngredientCategories(aisle *string) []string {
	if aisle == nil {
		return []string{domain.DefaultCategory}
	}
	category := domain.TitleCase(domain.Normalise(*aisle, " /"))
	if category == "" {
		return []string{domain.DefaultCategory}
	}
	return []string{category}
}

// upsert creates the page, or in update mode patches properties and content
// as two separate writes. Both are attempted; if only one succeeds the
// result is a *domain.PartialWriteError.
func (r *recipeRun) upsert(page *domain.Page) (*domain.PageRef, error) {
	pages := r.orchestrator.pages

	if !r.updating() {
		ref, err := pages.CreatePage(r.ctx, page)
		if err != nil {
			return nil, fmt.Errorf("create page: %w", err)
		}
		if ref.URL == "" {
			ref.URL = domain.PageURL(ref.ID)
		}
		return ref, nil
	}

	id := r.req.PageID
	propsErr := pages.UpdateProperties(r.ctx, id, page.Properties, page.Cover)
	contentErr := pages.AppendContent(r.ctx, id, page.Children)

	switch {
	case propsErr == nil && contentErr == nil:
		return &domain.PageRef{ID: id, URL: domain.PageURL(id)}, nil
	case propsErr == nil:
		return nil, &domain.PartialWriteError{PageID: id, PropertiesOK: true, Err: contentErr}
	case contentErr == nil:
		return nil, &domain.PartialWriteError{PageID: id, ContentOK: true, Err: propsErr}
	default:
		return nil, fmt.Errorf("update page %s: %w", id, errors.Join(propsErr, contentErr))
	}
}

// stage announces a stage and, in update mode, writes its label as the
// page title. A failed title write is logged and ignored.
func (r *recipeRun) stage(status domain.ProgressStatus, message, title string) {
	r.emit(status, message, "")

	if !r.updating() {
		return
	}
	if err := r.orchestrator.pages.UpdateTitle(r.ctx, r.req.PageID, title); err != nil {
		logger.Warn("Title progress on page %s failed: %v", r.req.PageID, err)
	}
}

func (r *recipeRun) emit(status domain.ProgressStatus, message, url string) {
	logger.Debug("[%s] %s", status, message)
	event := domain.ProgressEvent{Status: status, Message: message, URL: url}
	select {
	case r.events <- event:
	case <-r.callerCtx.Done():
	}
}
