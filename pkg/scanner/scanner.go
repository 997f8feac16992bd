// Package scanner turns lines of source text into classified tokens by
// applying a compiled rule set. Scanning is line-oriented and stateful: a
// construct left open at the end of a line (an unterminated block comment, a
// multi-line string) is carried to the next line as an explicit State value
// threaded by the caller, so scans stay reentrant and independent scans of
// different files can run in parallel without coordination.
package scanner

import (
	"unicode/utf8"

	"github.com/arthur-debert/glint/pkg/pattern"
	"github.com/arthur-debert/glint/pkg/syntax"
	"github.com/arthur-debert/glint/pkg/token"
)

// State is the cross-line scanning state. The zero value is the default
// state (nothing open). States are cheap values; a scan session creates one,
// threads it through ScanLine calls, and discards it at end of file.
type State struct {
	category token.Category
	cont     *pattern.Continuation
}

// IsOpen reports whether a match is carried open across the line boundary.
func (s State) IsOpen() bool { return s.cont != nil }

// Category returns the category of the open match. Only meaningful when
// IsOpen is true.
func (s State) Category() token.Category { return s.category }

// ScanLine tokenizes one line under the given rule set, starting from the
// carried state, and returns the line's tokens plus the state for the next
// line. The returned tokens are contiguous, non-overlapping, and cover the
// whole line. Scanning cannot fail: text that matches no pattern is
// classified as Text, one character at a time (adjacent runs are merged).
//
// A nil rule set classifies the whole line as Text.
func ScanLine(rs *syntax.RuleSet, line string, lineNo int, st State) ([]token.Token, State) {
	if rs == nil {
		if st.IsOpen() {
			// The rule set that opened this state is gone; close it out.
			st = State{}
		}
		if line == "" {
			return nil, State{}
		}
		return []token.Token{{Category: token.Text, Line: lineNo, Start: 0, End: len(line)}}, State{}
	}

	var toks []token.Token
	col := 0

	if st.IsOpen() {
		end, next := st.cont.Resume(line)
		if end > 0 {
			toks = append(toks, token.Token{
				Category: st.category, Line: lineNo, Start: 0, End: end,
			})
		}
		if next != nil {
			return toks, State{category: st.category, cont: next}
		}
		col = end
	}

	for col < len(line) {
		tok, open, ok := matchAt(rs, line, lineNo, col)
		if !ok {
			// No pattern matched: one character of Text, merged into a
			// preceding Text token so unclassified runs stay one token.
			_, size := utf8.DecodeRuneInString(line[col:])
			if n := len(toks); n > 0 && toks[n-1].Category == token.Text && toks[n-1].End == col {
				toks[n-1].End = col + size
			} else {
				toks = append(toks, token.Token{
					Category: token.Text, Line: lineNo, Start: col, End: col + size,
				})
			}
			col += size
			continue
		}
		toks = append(toks, tok)
		if open != nil {
			return toks, State{category: tok.Category, cont: open}
		}
		col = tok.End
	}

	return toks, State{}
}

// matchAt probes each category's pattern at col in precedence order. The
// first category whose pattern consumes input wins; a pending match claims
// the rest of the line and reports the continuation.
func matchAt(rs *syntax.RuleSet, line string, lineNo, col int) (token.Token, *pattern.Continuation, bool) {
	for _, cat := range rs.Categories() {
		n, cont := rs.Pattern(cat).Match(line, col)
		if cont != nil {
			return token.Token{
				Category: cat, Line: lineNo, Start: col, End: len(line),
			}, cont, true
		}
		if n > 0 {
			return token.Token{
				Category: cat, Line: lineNo, Start: col, End: col + n,
			}, nil, true
		}
	}
	return token.Token{}, nil, false
}
