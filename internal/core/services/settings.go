package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/custodia-labs/cookbook/internal/core/domain"
	"github.com/custodia-labs/cookbook/internal/core/ports/driven"
	"github.com/custodia-labs/cookbook/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyBackend            = "backend"
	keyNotionToken        = "notion.token"
	keyNotionVersion      = "notion.version"
	keyNotionRecipeDB     = "notion.recipe_database_id"
	keyNotionIngredientDB = "notion.ingredient_database_id"
	keyNotionCuisineDB    = "notion.cuisine_database_id"
	keyNotionRate         = "notion.requests_per_second"
	keyRecipeAPIKey       = "recipe_api.api_key"
	keyRecipeAPIHost      = "recipe_api.host"
	keyRecipeAPIBaseURL   = "recipe_api.base_url"
	keyRecipeAPITimeout   = "recipe_api.timeout"
	keyServerAddr         = "server.addr"
)

// Environment variables that override config keys.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvNotionSecret       = "NOTION_INTEGRATION_SECRET"
	EnvNotionRecipeDB     = "NOTION_RECIPE_DATABASE_ID"
	EnvNotionIngredientDB = "NOTION_INGREDIENT_DATABASE_ID"
	EnvNotionCuisineDB    = "NOTION_CUISINE_DATABASE_ID"
	EnvRecipeAPIKey       = "RFN_API_KEY"
	EnvRecipeAPIHost      = "RFN_API_BASE_URL"
	EnvServerAddr         = "COOKBOOK_ADDR"
)

// envOverrides maps each config key to the variable that overrides it.
var envOverrides = map[string]string{
	keyNotionToken:        EnvNotionSecret,
	keyNotionRecipeDB:     EnvNotionRecipeDB,
	keyNotionIngredientDB: EnvNotionIngredientDB,
	keyNotionCuisineDB:    EnvNotionCuisineDB,
	keyRecipeAPIKey:       EnvRecipeAPIKey,
	keyRecipeAPIHost:      EnvRecipeAPIHost,
	keyServerAddr:         EnvServerAddr,
}

// LookupEnvFunc reads an environment variable.
type LookupEnvFunc func(key string) (string, bool)

// SettingsService resolves application settings from the config store,
// with environment variables taking precedence.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   LookupEnvFunc

	// backendOverride wins over the stored backend when set.
	backendOverride domain.StoreBackend
}

// NewSettingsService creates a new settings service.
// A nil lookupEnv reads the process environment.
func NewSettingsService(configStore driven.ConfigStore, lookupEnv LookupEnvFunc) *SettingsService {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   lookupEnv,
	}
}

// Get resolves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Backend: s.getBackend(defaults.Backend),
		Notion: domain.NotionSettings{
			Token:                s.getString(keyNotionToken, ""),
			Version:              s.getString(keyNotionVersion, defaults.Notion.Version),
			RecipeDatabaseID:     s.getString(keyNotionRecipeDB, ""),
			IngredientDatabaseID: s.getString(keyNotionIngredientDB, ""),
			CuisineDatabaseID:    s.getString(keyNotionCuisineDB, ""),
			RequestsPerSecond:    s.getFloat(keyNotionRate, defaults.Notion.RequestsPerSecond),
		},
		RecipeAPI: domain.RecipeAPISettings{
			APIKey:  s.getString(keyRecipeAPIKey, ""),
			Host:    s.getString(keyRecipeAPIHost, defaults.RecipeAPI.Host),
			BaseURL: s.getString(keyRecipeAPIBaseURL, ""),
			Timeout: s.getDuration(keyRecipeAPITimeout, defaults.RecipeAPI.Timeout),
		},
		Server: domain.ServerSettings{
			Addr: s.getString(keyServerAddr, defaults.Server.Addr),
		},
	}

	if settings.RecipeAPI.BaseURL == "" {
		settings.RecipeAPI.BaseURL = "https://" + settings.RecipeAPI.Host
	}

	return settings, nil
}

// Save persists application settings.
// Values currently supplied by the environment are not written.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyBackend, settings.Backend.String()},
		{keyNotionToken, settings.Notion.Token},
		{keyNotionVersion, settings.Notion.Version},
		{keyNotionRecipeDB, settings.Notion.RecipeDatabaseID},
		{keyNotionIngredientDB, settings.Notion.IngredientDatabaseID},
		{keyNotionCuisineDB, settings.Notion.CuisineDatabaseID},
		{keyNotionRate, settings.Notion.RequestsPerSecond},
		{keyRecipeAPIKey, settings.RecipeAPI.APIKey},
		{keyRecipeAPIHost, settings.RecipeAPI.Host},
		{keyRecipeAPIBaseURL, settings.RecipeAPI.BaseURL},
		{keyRecipeAPITimeout, settings.RecipeAPI.Timeout.String()},
		{keyServerAddr, settings.Server.Addr},
	}

	for _, v := range values {
		if s.fromEnv(v.key) {
			continue
		}
		if str, ok := v.value.(string); ok && str == "" {
			continue
		}
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Validate checks that the settings needed by the configured backend are present.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Backend.IsValid() {
		return fmt.Errorf("%w: unknown backend %q", domain.ErrInvalidInput, settings.Backend)
	}

	var missing []string
	if !settings.RecipeAPI.IsConfigured() {
		missing = append(missing, s.describe(keyRecipeAPIKey))
	}
	if settings.Backend == domain.StoreBackendNotion {
		required := []struct {
			key   string
			value string
		}{
			{keyNotionToken, settings.Notion.Token},
			{keyNotionRecipeDB, settings.Notion.RecipeDatabaseID},
			{keyNotionIngredientDB, settings.Notion.IngredientDatabaseID},
			{keyNotionCuisineDB, settings.Notion.CuisineDatabaseID},
		}
		for _, r := range required {
			if r.value == "" {
				missing = append(missing, s.describe(r.key))
			}
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrNotConfigured, strings.Join(missing, ", "))
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// SetBackend overrides the configured store backend for this process.
// It is not persisted.
func (s *SettingsService) SetBackend(backend domain.StoreBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: unknown backend %q", domain.ErrInvalidInput, backend)
	}
	s.backendOverride = backend
	return nil
}

// describe names a key and the variable that can supply it.
func (s *SettingsService) describe(key string) string {
	if env, ok := envOverrides[key]; ok {
		return fmt.Sprintf("%s (or $%s)", key, env)
	}
	return key
}

// Helper methods for reading config with environment overrides and defaults.

func (s *SettingsService) fromEnv(key string) bool {
	env, ok := envOverrides[key]
	if !ok {
		return false
	}
	val, ok := s.lookupEnv(env)
	return ok && val != ""
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if env, ok := envOverrides[key]; ok {
		if val, ok := s.lookupEnv(env); ok && val != "" {
			return val
		}
	}
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	val := s.configStore.GetFloat(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetDuration(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBackend(defaultVal domain.StoreBackend) domain.StoreBackend {
	if s.backendOverride != "" {
		return s.backendOverride
	}
	val := s.configStore.GetString(keyBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StoreBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
