package driving

import "github.com/custodia-labs/cookbook/internal/core/domain"

// SettingsService resolves application settings.
type SettingsService interface {
	// Get resolves settings from the config store and the environment.
	Get() (*domain.AppSettings, error)

	// Save persists settings to the config store. Secrets supplied through
	// the environment are not written back.
	Save(settings *domain.AppSettings) error

	// Validate checks that the settings needed by the configured backend are present.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
