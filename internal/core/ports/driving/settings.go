package driving

import "github.com/futureyou-labs/careerindex/internal/core/domain"

// SettingsService manages application configuration.
type SettingsService interface {
	// Get returns the current settings, defaults filled in.
	Get() (*domain.AppSettings, error)

	// Save persists the settings.
	Save(settings *domain.AppSettings) error
}
