package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/term"

	"github.com/custodia-labs/shorttimeseries/internal/core/domain"
)

// Flags shared by every command that reads timestamps.
var (
	precisionFlag string
	chunkSizeFlag int
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&precisionFlag, "precision", "p", "",
		"finest unit of each token: day, hour, minute or second (default from config, else minute)")
	rootCmd.PersistentFlags().IntVar(&chunkSizeFlag, "chunk-size", 0,
		"bytes read from the input at a time (default from config, else 16384)")
}

// currentSettings returns the stored settings, or the defaults when no
// settings service is configured.
func currentSettings() domain.Settings {
	if settingsService == nil {
		return domain.DefaultSettings()
	}
	return settingsService.Get()
}

// parseOptions merges command line flags over settings.
func parseOptions(settings domain.Settings) (domain.ParseOptions, error) {
	precision := settings.Parse.Precision
	if precisionFlag != "" {
		p, err := domain.ParsePrecision(precisionFlag)
		if err != nil {
			return domain.ParseOptions{}, err
		}
		precision = p
	}

	chunkSize := settings.Parse.ChunkSize
	if chunkSizeFlag < 0 {
		return domain.ParseOptions{}, usageError{fmt.Errorf("--chunk-size must be positive, got %d", chunkSizeFlag)}
	}
	if chunkSizeFlag > 0 {
		chunkSize = chunkSizeFlag
	}

	return domain.ParseOptions{Precision: precision, ChunkSize: chunkSize}, nil
}

// isToken reports whether s follows the short timestamp grammar: digits,
// optionally followed by '#' and a label.
func isToken(s string) bool {
	digits := strings.TrimLeft(s, "0123456789")
	return digits == "" || strings.HasPrefix(digits, "#")
}

// parseInitial interprets the --initial flag. Tokens are resolved by the
// parser itself; anything else is read as a calendar date in any common
// layout, e.g. "2000-02-02 02:02" or "Feb 2, 2000".
func parseInitial(s string) (domain.Initial, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.Initial{}, nil
	}
	if isToken(s) {
		return domain.InitialText(s), nil
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return domain.Initial{}, &domain.TimestampError{
			Kind:   domain.ErrMalformedInitial,
			Text:   s,
			Offset: -1,
			Unit:   domain.NoUnit,
			Err:    err,
		}
	}
	return domain.InitialAt(domain.FromTime(t)), nil
}

// outputFormat returns the flag value if set, else the configured format.
func outputFormat(flag string, settings domain.Settings) (domain.OutputFormat, error) {
	if flag == "" {
		return settings.Output.Format, nil
	}
	f := domain.OutputFormat(strings.ToLower(flag))
	if !f.IsValid() {
		return "", usageError{fmt.Errorf("invalid format %q: must be one of text, json, sqlite", flag)}
	}
	return f, nil
}

// colorMode returns the flag value if set, else the configured mode.
func colorMode(flag string, settings domain.Settings) (domain.ColorMode, error) {
	if flag == "" {
		return settings.Output.Color, nil
	}
	m := domain.ColorMode(strings.ToLower(flag))
	if !m.IsValid() {
		return "", usageError{fmt.Errorf("invalid color mode %q: must be one of auto, always, never", flag)}
	}
	return m, nil
}

// useColor decides whether output to w is styled.
func useColor(mode domain.ColorMode, w io.Writer) bool {
	switch mode {
	case domain.ColorAlways:
		return true
	case domain.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// storeDir returns the directory of the run database: the flag if set,
// then the configured storage path, then the configuration directory.
func storeDir(flag string, settings domain.Settings) string {
	if flag != "" {
		return flag
	}
	if settings.Storage.Path != "" {
		return settings.Storage.Path
	}
	if settingsService != nil {
		return filepath.Dir(settingsService.Path())
	}
	return ""
}
