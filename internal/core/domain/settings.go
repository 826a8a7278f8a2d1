package domain

import "time"

const unknownDescription = "Unknown"

// StoreBackend selects where pages and reference entities are written.
type StoreBackend string

// Available store backends.
const (
	// StoreBackendNotion writes to the hosted Notion workspace.
	StoreBackendNotion StoreBackend = "notion"

	// StoreBackendMemory keeps everything in process memory (dry runs, tests).
	StoreBackendMemory StoreBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendNotion, StoreBackendMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StoreBackend) Description() string {
	switch b {
	case StoreBackendNotion:
		return "Notion (hosted workspace)"
	case StoreBackendMemory:
		return "Memory (dry run, nothing is persisted)"
	default:
		return unknownDescription
	}
}

// NotionSettings holds document-store credentials and collection IDs.
type NotionSettings struct {
	// Token is the integration secret.
	Token string

	// Version is the Notion-Version header value.
	Version string

	// RecipeDatabaseID is the parent database for recipe pages.
	RecipeDatabaseID string

	// IngredientDatabaseID is the ingredient collection.
	IngredientDatabaseID string

	// CuisineDatabaseID is the cuisine collection.
	CuisineDatabaseID string

	// RequestsPerSecond throttles outbound calls. Notion allows an average of 3.
	RequestsPerSecond float64
}

// IsConfigured returns true if every Notion setting needed for writes is present.
func (n NotionSettings) IsConfigured() bool {
	return n.Token != "" &&
		n.RecipeDatabaseID != "" &&
		n.IngredientDatabaseID != "" &&
		n.CuisineDatabaseID != ""
}

// DatabaseID returns the collection that holds a reference kind.
func (n NotionSettings) DatabaseID(kind ReferenceKind) string {
	switch kind {
	case ReferenceIngredient:
		return n.IngredientDatabaseID
	case ReferenceCuisine:
		return n.CuisineDatabaseID
	default:
		return ""
	}
}

// RecipeAPISettings holds configuration for the recipe/nutrition API.
type RecipeAPISettings struct {
	// APIKey is the RapidAPI key.
	APIKey string

	// Host is the RapidAPI host header value.
	Host string

	// BaseURL is the API root. Defaults to https://<Host>.
	BaseURL string

	// Timeout applies to every call except analysis, which runs unbounded.
	Timeout time.Duration
}

// IsConfigured returns true if the recipe API can be called.
func (r RecipeAPISettings) IsConfigured() bool {
	return r.APIKey != "" && r.Host != ""
}

// ServerSettings holds HTTP server configuration.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string
}

// AppSettings holds all application settings.
// Settings are resolved once at startup and passed to constructors.
type AppSettings struct {
	Backend   StoreBackend
	Notion    NotionSettings
	RecipeAPI RecipeAPISettings
	Server    ServerSettings
}

// Defaults for settings that have them.
const (
	DefaultNotionVersion    = "2022-06-28"
	DefaultNotionRate       = 3.0
	DefaultRecipeAPIHost    = "spoonacular-recipe-food-nutrition-v1.p.rapidapi.com"
	DefaultRecipeAPITimeout = 30 * time.Second
	DefaultServerAddr       = ":5000"
)

// DefaultAppSettings returns settings with sensible defaults.
// Credentials and database IDs have no defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Backend: StoreBackendNotion,
		Notion: NotionSettings{
			Version:           DefaultNotionVersion,
			RequestsPerSecond: DefaultNotionRate,
		},
		RecipeAPI: RecipeAPISettings{
			Host:    DefaultRecipeAPIHost,
			Timeout: DefaultRecipeAPITimeout,
		},
		Server: ServerSettings{
			Addr: DefaultServerAddr,
		},
	}
}

// AllStoreBackends returns all available store backends.
func AllStoreBackends() []StoreBackend {
	return []StoreBackend{
		StoreBackendNotion,
		StoreBackendMemory,
	}
}
