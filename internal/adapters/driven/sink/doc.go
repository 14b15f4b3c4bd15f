// Package sink provides implementations of driven.TimestampSink.
//
// Sinks:
//   - TextSink: one "YYYY-MM-DDTHH:MM:SS label" line per entry, optionally styled
//   - JSONSink: one JSON object per line
//   - StoreSink: appends entries to a driven.RunStore run
package sink
