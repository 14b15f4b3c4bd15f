package services

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/custodia-labs/shorttimeseries/internal/core/domain"
	"github.com/custodia-labs/shorttimeseries/internal/core/ports/driven"
	"github.com/custodia-labs/shorttimeseries/internal/core/ports/driving"
	"github.com/custodia-labs/shorttimeseries/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyPrecision   = "parse.precision"
	KeyChunkSize   = "parse.chunk_size"
	KeyFormat      = "output.format"
	KeyColor       = "output.color"
	KeyStoragePath = "storage.path"
)

// SettingsService reads and writes settings through a ConfigStore.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current settings. Invalid stored values fall back to defaults.
func (s *SettingsService) Get() domain.Settings {
	defaults := domain.DefaultSettings()

	return domain.Settings{
		Parse: domain.ParseSettings{
			Precision: s.getPrecision(defaults.Parse.Precision),
			ChunkSize: s.getChunkSize(defaults.Parse.ChunkSize),
		},
		Output: domain.OutputSettings{
			Format: s.getFormat(defaults.Output.Format),
			Color:  s.getColor(defaults.Output.Color),
		},
		Storage: domain.StorageSettings{
			Path: s.configStore.GetString(KeyStoragePath),
		},
	}
}

// Set validates value for key and persists it.
func (s *SettingsService) Set(key, value string) error {
	var stored any
	switch key {
	case KeyPrecision:
		p, err := domain.ParsePrecision(value)
		if err != nil {
			return err
		}
		stored = string(p)
	case KeyChunkSize:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%s must be a positive integer, got %q", key, value)
		}
		stored = int64(n)
	case KeyFormat:
		if !domain.OutputFormat(value).IsValid() {
			return fmt.Errorf("%s must be one of text, json, sqlite, got %q", key, value)
		}
		stored = value
	case KeyColor:
		if !domain.ColorMode(value).IsValid() {
			return fmt.Errorf("%s must be one of auto, always, never, got %q", key, value)
		}
		stored = value
	case KeyStoragePath:
		stored = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// Unset removes key from the store.
func (s *SettingsService) Unset(key string) error {
	if !isKnownKey(key) {
		return fmt.Errorf("unknown setting %q", key)
	}
	return s.configStore.Unset(key)
}

// Lookup returns the effective value for key as text.
func (s *SettingsService) Lookup(key string) (string, error) {
	settings := s.Get()
	switch key {
	case KeyPrecision:
		return string(settings.Parse.Precision), nil
	case KeyChunkSize:
		return strconv.Itoa(settings.Parse.ChunkSize), nil
	case KeyFormat:
		return settings.Output.Format.String(), nil
	case KeyColor:
		return settings.Output.Color.String(), nil
	case KeyStoragePath:
		return settings.Storage.Path, nil
	default:
		return "", fmt.Errorf("unknown setting %q", key)
	}
}

// Keys returns all recognised keys in sorted order.
func (s *SettingsService) Keys() []string {
	keys := []string{KeyPrecision, KeyChunkSize, KeyFormat, KeyColor, KeyStoragePath}
	sort.Strings(keys)
	return keys
}

// Path returns the config file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func isKnownKey(key string) bool {
	switch key {
	case KeyPrecision, KeyChunkSize, KeyFormat, KeyColor, KeyStoragePath:
		return true
	}
	return false
}

func (s *SettingsService) getPrecision(def domain.Precision) domain.Precision {
	raw := s.configStore.GetString(KeyPrecision)
	if raw == "" {
		return def
	}
	p, err := domain.ParsePrecision(raw)
	if err != nil {
		logger.Warn("ignoring %s: %v", KeyPrecision, err)
		return def
	}
	return p
}

func (s *SettingsService) getChunkSize(def int) int {
	n := s.configStore.GetInt(KeyChunkSize)
	if n < 1 {
		return def
	}
	return n
}

func (s *SettingsService) getFormat(def domain.OutputFormat) domain.OutputFormat {
	f := domain.OutputFormat(s.configStore.GetString(KeyFormat))
	if !f.IsValid() {
		return def
	}
	return f
}

func (s *SettingsService) getColor(def domain.ColorMode) domain.ColorMode {
	m := domain.ColorMode(s.configStore.GetString(KeyColor))
	if !m.IsValid() {
		return def
	}
	return m
}
