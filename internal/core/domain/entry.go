package domain

// DefaultChunkSize is the default number of bytes read from a source at a time.
const DefaultChunkSize = 16 * 1024

// Token is a run of non-whitespace bytes from a source.
type Token struct {
	// Text is the exact source text of the token.
	Text string

	// Offset is the byte offset of the token's first byte in the source.
	Offset int64
}

// Entry is a parsed token: a partial timestamp and its label.
type Entry struct {
	// Partial holds the units decoded from the token's digit run.
	Partial Partial

	// Label is the text after '#', possibly empty.
	Label string

	// Token is the token the entry was parsed from.
	Token Token
}

// Resolved is an entry whose timestamp has been fully resolved.
type Resolved struct {
	Timestamp Timestamp
	Label     string
	Token     Token
}

// Initial is an explicit starting point for resolution.
// At most one of Text and At should be set; the zero value means none.
type Initial struct {
	// Text is a single token to be parsed and padded into a complete timestamp.
	Text string

	// At is an already resolved timestamp.
	At *Timestamp
}

// InitialAt returns an Initial seeded with ts.
func InitialAt(ts Timestamp) Initial {
	return Initial{At: &ts}
}

// InitialText returns an Initial parsed from text.
func InitialText(text string) Initial {
	return Initial{Text: text}
}

// IsZero reports whether no initial value is set.
func (i Initial) IsZero() bool {
	return i.At == nil && i.Text == ""
}

// SplitOptions configures tokenization.
type SplitOptions struct {
	// ChunkSize is the read size in bytes. Zero or negative means DefaultChunkSize.
	ChunkSize int
}

// ParseOptions configures parsing and resolution.
type ParseOptions struct {
	// Precision fixes the digit layout for the session. Empty means DefaultPrecision.
	Precision Precision

	// ChunkSize is passed through to the tokenizer.
	ChunkSize int

	// Initial optionally seeds the resolver.
	Initial Initial
}

// EffectivePrecision returns the configured precision or the default.
func (o ParseOptions) EffectivePrecision() Precision {
	if o.Precision == "" {
		return DefaultPrecision
	}
	return o.Precision
}
