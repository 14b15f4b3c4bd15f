// Package services implements the driving port interfaces.
//
// The timestamp pipeline is a chain of pull streams:
//
//	io.Reader -> Splitter -> EntryReader -> Timeline (Resolver) -> Resolved
//
// Each stage reads from the previous one only when asked for its next
// value, so memory use is bounded by the read chunk size and one pending
// token, however long the input.
//
// Services are pure Go with no CGO or external dependencies.
package services
