// Package memory provides in-memory implementations of driven port interfaces.
// They hold no state beyond the process and back tests of the services and
// sinks that depend on those ports.
package memory
