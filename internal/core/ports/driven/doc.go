// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Adapters implement them; the CLI wires adapters to services.
//
// # Interfaces
//
//   - ConfigStore: Application configuration
//   - TimestampSink: Destination of resolved entries (text, JSON, SQLite)
//   - RunStore: Persistence of resolved entries grouped into runs
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
