// Package domain defines the core entities for shorttimeseries.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Partial: a timestamp whose units may be unknown
//   - Timestamp: a fully resolved, calendar-valid timestamp
//   - Token, Entry, Resolved: the values flowing through the pipeline
//   - Precision: the finest unit a bare digit run may express
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
