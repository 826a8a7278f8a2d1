package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cookbook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cookbook/internal/core/domain"
)

// envMap returns a lookup function over a fixed environment.
func envMap(env map[string]string) LookupEnvFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func noEnv() LookupEnvFunc {
	return envMap(nil)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), noEnv())

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Backend, settings.Backend)
	assert.Equal(t, defaults.Notion.Version, settings.Notion.Version)
	assert.InDelta(t, defaults.Notion.RequestsPerSecond, settings.Notion.RequestsPerSecond, 0.0001)
	assert.Equal(t, defaults.RecipeAPI.Host, settings.RecipeAPI.Host)
	assert.Equal(t, "https://"+defaults.RecipeAPI.Host, settings.RecipeAPI.BaseURL)
	assert.Equal(t, defaults.RecipeAPI.Timeout, settings.RecipeAPI.Timeout)
	assert.Equal(t, defaults.Server.Addr, settings.Server.Addr)
	assert.Empty(t, settings.Notion.Token)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"backend":                       "memory",
		"notion.token":                  "secret_file",
		"notion.recipe_database_id":     "recipes",
		"notion.requests_per_second":    1.5,
		"recipe_api.base_url":           "http://localhost:9999",
		"recipe_api.timeout":            "5s",
		"server.addr":                   "127.0.0.1:8080",
		"notion.ingredient_database_id": "ingredients",
	})
	service := NewSettingsService(store, noEnv())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.StoreBackendMemory, settings.Backend)
	assert.Equal(t, "secret_file", settings.Notion.Token)
	assert.Equal(t, "recipes", settings.Notion.RecipeDatabaseID)
	assert.Equal(t, "ingredients", settings.Notion.IngredientDatabaseID)
	assert.InDelta(t, 1.5, settings.Notion.RequestsPerSecond, 0.0001)
	assert.Equal(t, "http://localhost:9999", settings.RecipeAPI.BaseURL)
	assert.Equal(t, 5*time.Second, settings.RecipeAPI.Timeout)
	assert.Equal(t, "127.0.0.1:8080", settings.Server.Addr)
}

func TestSettingsService_Get_InvalidBackendReturnsDefault(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{"backend": "postgres"})
	service := NewSettingsService(store, noEnv())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.StoreBackendNotion, settings.Backend)
}

func TestSettingsService_Get_EnvironmentOverrides(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"notion.token":    "secret_file",
		"recipe_api.host": "file.example.com",
	})
	service := NewSettingsService(store, envMap(map[string]string{
		EnvNotionSecret:       "secret_env",
		EnvNotionRecipeDB:     "env-recipes",
		EnvNotionIngredientDB: "env-ingredients",
		EnvNotionCuisineDB:    "env-cuisines",
		EnvRecipeAPIKey:       "rapid-key",
		EnvRecipeAPIHost:      "env.example.com",
		EnvServerAddr:         ":7000",
	}))

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "secret_env", settings.Notion.Token)
	assert.Equal(t, "env-recipes", settings.Notion.RecipeDatabaseID)
	assert.Equal(t, "env-ingredients", settings.Notion.IngredientDatabaseID)
	assert.Equal(t, "env-cuisines", settings.Notion.CuisineDatabaseID)
	assert.Equal(t, "rapid-key", settings.RecipeAPI.APIKey)
	assert.Equal(t, "env.example.com", settings.RecipeAPI.Host)
	assert.Equal(t, "https://env.example.com", settings.RecipeAPI.BaseURL)
	assert.Equal(t, ":7000", settings.Server.Addr)
}

func TestSettingsService_Get_EmptyEnvironmentIgnored(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{"notion.token": "secret_file"})
	service := NewSettingsService(store, envMap(map[string]string{EnvNotionSecret: ""}))

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, "secret_file", settings.Notion.Token)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, noEnv())

	settings := domain.DefaultAppSettings()
	settings.Backend = domain.StoreBackendMemory
	settings.Notion.Token = "secret"
	settings.Notion.RecipeDatabaseID = "recipes"
	settings.RecipeAPI.Timeout = 10 * time.Second

	require.NoError(t, service.Save(&settings))

	assert.Equal(t, "memory", store.GetString("backend"))
	assert.Equal(t, "secret", store.GetString("notion.token"))
	assert.Equal(t, "recipes", store.GetString("notion.recipe_database_id"))
	assert.Equal(t, 10*time.Second, store.GetDuration("recipe_api.timeout"))
	_, ok := store.Get("notion.cuisine_database_id")
	assert.False(t, ok, "empty values are not written")

	reloaded, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StoreBackendMemory, reloaded.Backend)
	assert.Equal(t, "secret", reloaded.Notion.Token)
}

func TestSettingsService_Save_SkipsEnvironmentValues(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store, envMap(map[string]string{EnvNotionSecret: "secret_env"}))

	settings, err := service.Get()
	require.NoError(t, err)
	settings.Notion.RecipeDatabaseID = "recipes"

	require.NoError(t, service.Save(settings))

	_, ok := store.Get("notion.token")
	assert.False(t, ok, "environment secrets are never written to the config file")
	assert.Equal(t, "recipes", store.GetString("notion.recipe_database_id"))
}

func TestSettingsService_Validate(t *testing.T) {
	complete := map[string]string{
		EnvNotionSecret:       "secret",
		EnvNotionRecipeDB:     "r",
		EnvNotionIngredientDB: "i",
		EnvNotionCuisineDB:    "c",
		EnvRecipeAPIKey:       "k",
	}

	t.Run("complete", func(t *testing.T) {
		service := NewSettingsService(memory.NewConfigStore(), envMap(complete))
		assert.NoError(t, service.Validate())
	})

	t.Run("missing notion settings", func(t *testing.T) {
		service := NewSettingsService(memory.NewConfigStore(), envMap(map[string]string{EnvRecipeAPIKey: "k"}))

		err := service.Validate()

		require.ErrorIs(t, err, domain.ErrNotConfigured)
		assert.Contains(t, err.Error(), "notion.token (or $NOTION_INTEGRATION_SECRET)")
		assert.Contains(t, err.Error(), "notion.cuisine_database_id")
		assert.NotContains(t, err.Error(), "recipe_api.api_key")
	})

	t.Run("memory backend needs only the recipe API", func(t *testing.T) {
		store := memory.NewConfigStore(map[string]any{"backend": "memory"})
		service := NewSettingsService(store, envMap(map[string]string{EnvRecipeAPIKey: "k"}))
		assert.NoError(t, service.Validate())
	})

	t.Run("missing api key", func(t *testing.T) {
		store := memory.NewConfigStore(map[string]any{"backend": "memory"})
		service := NewSettingsService(store, noEnv())

		err := service.Validate()

		require.ErrorIs(t, err, domain.ErrNotConfigured)
		assert.Contains(t, err.Error(), "$RFN_API_KEY")
	})
}

func TestSettingsService_SetBackend(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{"backend": "notion"})
	service := NewSettingsService(store, noEnv())

	require.NoError(t, service.SetBackend(domain.StoreBackendMemory))
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StoreBackendMemory, settings.Backend)
	assert.Equal(t, "notion", store.GetString("backend"), "override is not persisted")

	assert.ErrorIs(t, service.SetBackend("sqlite"), domain.ErrInvalidInput)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(), nil)
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
