package domain

import "time"

// Run is one pass over one source whose entries were stored.
type Run struct {
	// ID is the unique identifier for the run.
	ID string

	// Source names the input, e.g. a file path or "-" for stdin.
	Source string

	// Precision is the precision the run was parsed with.
	Precision Precision

	// CreatedAt is when the run started.
	CreatedAt time.Time
}

// RunSummary is a run together with the span of its entries.
type RunSummary struct {
	Run

	// Entries is the number of stored entries.
	Entries int

	// First and Last are the first and last resolved timestamps.
	// They are zero when the run has no entries.
	First Timestamp
	Last  Timestamp
}
