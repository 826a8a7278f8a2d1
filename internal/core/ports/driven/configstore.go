package driven

import "time"

// ConfigStore provides access to application configuration.
// Keys use dot notation ("notion.token"); implementations handle persistence
// and type conversion.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't a number.
	GetInt(key string) int

	// GetFloat retrieves a floating-point configuration value.
	// Integers are converted. Returns 0 if key doesn't exist or isn't a number.
	GetFloat(key string) float64

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// GetDuration retrieves a duration written as a string ("30s", "2m").
	// Returns 0 if key doesn't exist or doesn't parse.
	GetDuration(key string) time.Duration

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
