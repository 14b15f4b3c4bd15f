package services

import (
	"fmt"
	"io"

	"github.com/custodia-labs/shorttimeseries/internal/core/domain"
	"github.com/custodia-labs/shorttimeseries/internal/core/ports/driving"
)

// Ensure Splitter implements the interface.
var _ driving.TokenStream = (*Splitter)(nil)

// Splitter tokenizes a reader on runs of whitespace without loading it
// into memory. At most one chunk plus one pending token is held at a time;
// a token split across reads is reassembled byte for byte.
type Splitter struct {
	r       io.Reader
	isSpace func(byte) bool

	buf     []byte
	pos     int   // next unread byte in buf
	end     int   // bytes valid in buf
	base    int64 // source offset of buf[0]
	pending []byte
	start   int64 // source offset of pending[0]

	eof bool
	err error
}

// SplitterOption configures a Splitter.
type SplitterOption func(*Splitter)

// WithChunkSize sets the number of bytes requested per read.
// Values below 1 select domain.DefaultChunkSize.
func WithChunkSize(n int) SplitterOption {
	return func(s *Splitter) {
		if n < 1 {
			n = domain.DefaultChunkSize
		}
		s.buf = make([]byte, n)
	}
}

// WithSpace sets the separator predicate. The default is IsSpace.
func WithSpace(fn func(byte) bool) SplitterOption {
	return func(s *Splitter) {
		s.isSpace = fn
	}
}

// IsSpace reports whether b is ASCII whitespace: space, tab, newline,
// carriage return, vertical tab or form feed. All of these are single
// bytes in UTF-8, so text and raw bytes split identically.
func IsSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// NewSplitter creates a Splitter reading from r.
func NewSplitter(r io.Reader, opts ...SplitterOption) *Splitter {
	s := &Splitter{r: r, isSpace: IsSpace}
	for _, o := range opts {
		o(s)
	}
	if s.buf == nil {
		s.buf = make([]byte, domain.DefaultChunkSize)
	}
	return s
}

// Next returns the next token, or io.EOF when the source is exhausted.
// Read errors other than io.EOF are returned once the bytes read along
// with them have been consumed; a token cut short by the error is dropped.
func (s *Splitter) Next() (domain.Token, error) {
	for {
		if s.pos == s.end {
			if s.err != nil {
				return domain.Token{}, s.err
			}
			if s.eof {
				if len(s.pending) > 0 {
					return s.flush(), nil
				}
				return domain.Token{}, io.EOF
			}
			s.fill()
			continue
		}

		if len(s.pending) == 0 {
			for s.pos < s.end && s.isSpace(s.buf[s.pos]) {
				s.pos++
			}
			if s.pos == s.end {
				continue
			}
			s.start = s.base + int64(s.pos)
		}

		i := s.pos
		for i < s.end && !s.isSpace(s.buf[i]) {
			i++
		}
		s.pending = append(s.pending, s.buf[s.pos:i]...)
		s.pos = i

		// A separator in this chunk ends the token; otherwise it may
		// continue in the next read.
		if i < s.end {
			return s.flush(), nil
		}
	}
}

func (s *Splitter) fill() {
	s.base += int64(s.end)
	n, err := s.r.Read(s.buf)
	s.pos, s.end = 0, n
	switch {
	case err == io.EOF:
		s.eof = true
	case err != nil:
		s.err = fmt.Errorf("reading source: %w", err)
	}
}

func (s *Splitter) flush() domain.Token {
	tok := domain.Token{Text: string(s.pending), Offset: s.start}
	s.pending = s.pending[:0]
	return tok
}
