package driving

import "github.com/custodia-labs/shorttimeseries/internal/core/domain"

// SettingsService manages persisted preferences.
type SettingsService interface {
	// Get returns the current settings, with defaults for anything unset
	// or invalid.
	Get() domain.Settings

	// Set validates and stores a single setting given as text.
	Set(key, value string) error

	// Unset removes a setting, restoring its default.
	Unset(key string) error

	// Lookup returns the effective value of a setting as text.
	Lookup(key string) (string, error)

	// Keys returns all recognised setting keys.
	Keys() []string

	// Path returns where settings are stored.
	Path() string
}
