// Package source opens the byte streams timestamps are read from.
//
// Open handles files, stdin ("-") and gzip-compressed files. Follow keeps
// reading a growing file, blocking at end of file until more data is
// written or the context is cancelled.
package source
