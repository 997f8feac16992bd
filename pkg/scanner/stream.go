package scanner

import (
	"bufio"
	"io"

	"github.com/arthur-debert/glint/pkg/syntax"
	"github.com/arthur-debert/glint/pkg/token"
)

// Stream is a lazy token sequence over a file's lines. Lines are pulled from
// the reader only as tokens are consumed, so a caller that stops early (say,
// after a visible viewport) never scans the rest of the file. Stopping is
// the only cancellation needed; a Stream holds no resources beyond its
// reader.
//
// Usage follows bufio.Scanner:
//
//	s := scanner.NewStream(rs, f)
//	for s.Next() {
//	    tok := s.Token()
//	    ...
//	}
//	if err := s.Err(); err != nil { ... }
//
// A Stream binds its rule set at creation; a registry reload during the scan
// does not affect it.
type Stream struct {
	rs    *syntax.RuleSet
	lines *bufio.Scanner
	state State
	line  int
	toks  []token.Token
	idx   int
	err   error
}

// NewStream creates a Stream scanning r under the given rule set. A nil
// rule set produces uniform Text tokens.
func NewStream(rs *syntax.RuleSet, r io.Reader) *Stream {
	lines := bufio.NewScanner(r)
	// Minified sources put whole files on one line; the default 64KiB token
	// limit is far too small for them.
	lines.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Stream{
		rs:    rs,
		lines: lines,
	}
}

// Next advances to the next token. It returns false at end of input or on a
// read error; check Err afterwards.
func (s *Stream) Next() bool {
	s.idx++
	for s.idx >= len(s.toks) {
		if s.err != nil || !s.lines.Scan() {
			s.err = s.lines.Err()
			return false
		}
		s.line++
		s.toks, s.state = ScanLine(s.rs, s.lines.Text(), s.line, s.state)
		s.idx = 0
	}
	return true
}

// Token returns the current token. Valid only after Next returned true.
func (s *Stream) Token() token.Token {
	return s.toks[s.idx]
}

// Line returns the 1-based number of the line the current token is on.
func (s *Stream) Line() int { return s.line }

// Err returns the first read error encountered, if any.
func (s *Stream) Err() error { return s.err }

// ScanAll drains a reader and returns every token. Convenience for callers
// that want the whole file at once (and for tests).
func ScanAll(rs *syntax.RuleSet, r io.Reader) ([]token.Token, error) {
	s := NewStream(rs, r)
	var out []token.Token
	for s.Next() {
		out = append(out, s.Token())
	}
	return out, s.Err()
}

// ScanLines tokenizes the given lines, numbered from 1, returning per-line
// token slices. Lines are scanned eagerly; use Stream for lazy consumption.
func ScanLines(rs *syntax.RuleSet, lines []string) [][]token.Token {
	out := make([][]token.Token, len(lines))
	st := State{}
	for i, line := range lines {
		out[i], st = ScanLine(rs, line, i+1, st)
	}
	return out
}
