package domain

// OutputFormat selects how resolved entries are written.
type OutputFormat string

// Available output formats.
const (
	// OutputText prints "2006-01-02T15:04:05 label" lines.
	OutputText OutputFormat = "text"

	// OutputJSON prints one JSON object per line.
	OutputJSON OutputFormat = "json"

	// OutputSQLite stores entries as a run in the SQLite database.
	OutputSQLite OutputFormat = "sqlite"
)

// IsValid returns true if the output format is recognised.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputText, OutputJSON, OutputSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f OutputFormat) String() string {
	return string(f)
}

// ColorMode controls styling of text output.
type ColorMode string

// Available colour modes.
const (
	// ColorAuto styles output only when stdout is a terminal.
	ColorAuto ColorMode = "auto"

	// ColorAlways always styles output.
	ColorAlways ColorMode = "always"

	// ColorNever never styles output.
	ColorNever ColorMode = "never"
)

// IsValid returns true if the colour mode is recognised.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m ColorMode) String() string {
	return string(m)
}

// Settings holds persisted user preferences.
// Command-line flags override them for a single invocation.
type Settings struct {
	Parse   ParseSettings
	Output  OutputSettings
	Storage StorageSettings
}

// ParseSettings configures tokenizing and resolution.
type ParseSettings struct {
	// Precision is the default precision.
	Precision Precision

	// ChunkSize is the read size in bytes.
	ChunkSize int
}

// OutputSettings configures how entries are written.
type OutputSettings struct {
	Format OutputFormat
	Color  ColorMode
}

// StorageSettings configures the SQLite output.
type StorageSettings struct {
	// Path is the directory holding the database. Empty means the default data directory.
	Path string
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Parse: ParseSettings{
			Precision: DefaultPrecision,
			ChunkSize: DefaultChunkSize,
		},
		Output: OutputSettings{
			Format: OutputText,
			Color:  ColorAuto,
		},
	}
}
