// Command cookbook imports recipes into a Notion cookbook.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/cookbook/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cookbook/internal/adapters/driven/notion"
	"github.com/custodia-labs/cookbook/internal/adapters/driven/recipeapi/spoonacular"
	"github.com/custodia-labs/cookbook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cookbook/internal/adapters/driving/cli"
	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/core/ports/driven"
	"github.com/custodia-labs/cookbook/internal/core/services"
	"github.com/custodia-labs/cookbook/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(buildServices)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildServices wires the adapters and services for the resolved settings.
// Incomplete settings are not an error: only the settings service is built
// and the reason is carried in ConfigErr for the commands that need more.
func buildServices(opts cli.Options) (*cli.Services, error) {
	// 1. Settings
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, nil)
	if opts.DryRun {
		if err := settingsService.SetBackend(domain.StoreBackendMemory); err != nil {
			return nil, err
		}
	}

	result := &cli.Services{Settings: settingsService}
	if err := settingsService.Validate(); err != nil {
		logger.Debug("Pipeline unavailable: %v", err)
		result.ConfigErr = err
		return result, nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("resolving settings: %w", err)
	}

	// 2. Recipe API
	api, err := spoonacular.NewClient(spoonacular.Config{
		APIKey:  settings.RecipeAPI.APIKey,
		Host:    settings.RecipeAPI.Host,
		BaseURL: settings.RecipeAPI.BaseURL,
		Timeout: settings.RecipeAPI.Timeout,
	})
	if err != nil {
		return nil, err
	}

	// 3. Stores
	references, pages, err := buildStores(settings)
	if err != nil {
		return nil, err
	}

	// 4. Services
	analyzer := services.NewAnalyzeService(api)
	resolver := services.NewReferenceResolver(references)
	cuisines := services.NewCuisineService(api, resolver)
	recipes := services.NewRecipeOrchestrator(analyzer, resolver, cuisines, pages, settings.Notion.RecipeDatabaseID)

	logger.Debug("Using %s backend", settings.Backend)

	result.Recipes = recipes
	result.Analyzer = analyzer
	result.References = resolver
	result.Cuisines = cuisines
	return result, nil
}

// buildStores returns the reference and page stores for the configured backend.
func buildStores(settings *domain.AppSettings) (driven.ReferenceStore, driven.PageStore, error) {
	if settings.Backend == domain.StoreBackendMemory {
		return memory.NewReferenceStore(), memory.NewPageStore(), nil
	}

	client, err := notion.NewClient(notion.Config{
		Token:             settings.Notion.Token,
		Version:           settings.Notion.Version,
		RequestsPerSecond: settings.Notion.RequestsPerSecond,
	})
	if err != nil {
		return nil, nil, err
	}
	return notion.NewReferenceStore(client, settings.Notion), notion.NewPageStore(client), nil
}
