// Package pattern implements the highlighting pattern mini-language: a
// constrained, linear-time matching sublanguage with character classes,
// ordered alternation, greedy repetition and a negated-scan construct that
// can carry a partial match across line boundaries.
//
// The language is deliberately not a regular-expression engine: there is no
// backtracking, no captures and no longest-match guarantee. Alternation is
// ordered choice, repetition is greedy and final, and the negated scan is a
// dedicated node rather than an encoding into a general engine, which keeps
// both compilation and evaluation linear.
//
//	%a %d %l %u %w   ASCII alpha, digit, lower, upper, word (alnum + '_')
//	%%               literal '%'
//	%c               literal c, escaping metacharacters
//	.                any single character
//	^  $             zero-width start / end of line
//	A|B              ordered alternation, first success wins
//	A{P}             match A, then greedily repeat P
//	{esc… !S.}       negated scan: consume until terminator S; reaching end
//	                 of line fails (terminator required on this line)
//	{esc… !S$}       negated scan: reaching end of line succeeds and leaves
//	                 the match open for continuation on the next line
//	(...)            grouping, no capture
//
// A '$' alternative inside the terminator S closes the scan at end of line
// without a continuation, which is how single-line strings terminate.
package pattern

import "unicode/utf8"

// noMatch is the sentinel length for a failed match attempt.
const noMatch = -1

// node is one matcher in the compiled tree. match attempts to consume input
// at line[off:] and reports:
//
//	n >= 0, cont == nil  matched n bytes, complete
//	n >= 0, cont != nil  matched to end of line, open (negated scan pending)
//	n == noMatch         no match
type node interface {
	match(line string, off int) (n int, cont *Continuation)
}

// Pattern is an immutable compiled matcher for one category of one rule set.
// It is safe for concurrent use.
type Pattern struct {
	root node
	src  string
}

// Source returns the pattern text this Pattern was compiled from.
func (p *Pattern) Source() string { return p.src }

// Match attempts the pattern at line[off:]. It returns the number of bytes
// consumed and, when a negated scan ran off the end of the line, a
// Continuation to resume on the following line. A return of (NoMatch, nil)
// means the pattern did not match at this offset.
func (p *Pattern) Match(line string, off int) (int, *Continuation) {
	return p.root.match(line, off)
}

// NoMatch is the length returned by Match when the pattern fails.
const NoMatch = noMatch

// Continuation is the carried progress of a negated scan that reached the
// end of a line. It is resumed on following lines until the terminator
// matches or input ends. Continuations are single-use values owned by one
// scan session; the Pattern they came from stays immutable.
type Continuation struct {
	scan *negScan
	rest []node
}

// Resume continues the pending scan on the next line. It returns the column
// the match ends at on this line and the next continuation: nil when the
// match closed, non-nil when it is still open. Resume never fails; an
// unterminated construct simply consumes lines until input ends.
func (c *Continuation) Resume(line string) (int, *Continuation) {
	end, closed := c.scan.resume(line)
	if !closed {
		return len(line), c
	}
	// The terminator matched. Run whatever followed the scan in its
	// sequence; if that tail cannot match here the token still closes at
	// the terminator, since scanning must not fail.
	pos := end
	for i, nd := range c.rest {
		n, cont := nd.match(line, pos)
		if n == noMatch {
			return pos, nil
		}
		if cont != nil {
			cont.rest = appendNodes(cont.rest, c.rest[i+1:])
			return len(line), cont
		}
		pos += n
	}
	return pos, nil
}

// appendNodes concatenates without aliasing the inputs.
func appendNodes(a, b []node) []node {
	if len(b) == 0 {
		return a
	}
	out := make([]node, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// classKind identifies a built-in ASCII character class.
type classKind byte

const (
	classAlpha classKind = 'a'
	classDigit classKind = 'd'
	classLower classKind = 'l'
	classUpper classKind = 'u'
	classWord  classKind = 'w'
)

type classNode struct{ kind classKind }

func (c classNode) match(line string, off int) (int, *Continuation) {
	if off >= len(line) {
		return noMatch, nil
	}
	ch := line[off]
	var ok bool
	switch c.kind {
	case classAlpha:
		ok = isAlpha(ch)
	case classDigit:
		ok = ch >= '0' && ch <= '9'
	case classLower:
		ok = ch >= 'a' && ch <= 'z'
	case classUpper:
		ok = ch >= 'A' && ch <= 'Z'
	case classWord:
		ok = isAlpha(ch) || (ch >= '0' && ch <= '9') || ch == '_'
	}
	if !ok {
		return noMatch, nil
	}
	return 1, nil
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

type litNode struct{ ch byte }

func (l litNode) match(line string, off int) (int, *Continuation) {
	if off < len(line) && line[off] == l.ch {
		return 1, nil
	}
	return noMatch, nil
}

// anyNode matches a single character. Consumes a whole rune so multi-byte
// input is never split mid-sequence.
type anyNode struct{}

func (anyNode) match(line string, off int) (int, *Continuation) {
	if off >= len(line) {
		return noMatch, nil
	}
	_, size := utf8.DecodeRuneInString(line[off:])
	return size, nil
}

// startNode is the '^' anchor, zero-width at column zero.
type startNode struct{}

func (startNode) match(line string, off int) (int, *Continuation) {
	if off == 0 {
		return 0, nil
	}
	return noMatch, nil
}

// endNode is the '$' anchor, zero-width at end of line.
type endNode struct{}

func (endNode) match(line string, off int) (int, *Continuation) {
	if off == len(line) {
		return 0, nil
	}
	return noMatch, nil
}

// seqNode matches its children in order with no backtracking: once a child
// has consumed input, a later failure fails the whole sequence.
type seqNode struct{ nodes []node }

func (s seqNode) match(line string, off int) (int, *Continuation) {
	pos := off
	for i, nd := range s.nodes {
		n, cont := nd.match(line, pos)
		if n == noMatch {
			return noMatch, nil
		}
		if cont != nil {
			cont.rest = appendNodes(cont.rest, s.nodes[i+1:])
			return len(line) - off, cont
		}
		pos += n
	}
	return pos - off, nil
}

// altNode is ordered choice: alternatives are tried left to right and the
// first success wins, an open (pending) match counting as success.
type altNode struct{ alts []node }

func (a altNode) match(line string, off int) (int, *Continuation) {
	for _, alt := range a.alts {
		if n, cont := alt.match(line, off); n != noMatch {
			return n, cont
		}
	}
	return noMatch, nil
}

// repeatNode greedily matches its body zero or more times. A zero-width
// iteration terminates the loop so the matcher always makes progress.
type repeatNode struct{ body node }

func (r repeatNode) match(line string, off int) (int, *Continuation) {
	pos := off
	for pos <= len(line) {
		n, cont := r.body.match(line, pos)
		if cont != nil {
			// The body ran off the line; after it resumes, the repeat
			// itself continues on the remaining input.
			cont.rest = appendNodes(cont.rest, []node{r})
			return len(line) - off, cont
		}
		if n == noMatch || n == 0 {
			break
		}
		pos += n
	}
	return pos - off, nil
}

// negScan consumes characters one at a time while the upcoming text does not
// match the terminator. Escape alternatives are tried before each step so
// that, say, a backslash escape inside a string never terminates it. The
// terminator is consumed when found. Reaching end of line either fails the
// match (continueEOL false: a terminator was required on this line) or
// succeeds to end of line and stays open (continueEOL true).
type negScan struct {
	escapes     []node
	term        node
	continueEOL bool
}

func (s *negScan) match(line string, off int) (int, *Continuation) {
	end, closed := s.scanFrom(line, off)
	if closed {
		return end - off, nil
	}
	if s.continueEOL {
		return len(line) - off, &Continuation{scan: s}
	}
	return noMatch, nil
}

// resume re-runs the scan from the start of a new line.
func (s *negScan) resume(line string) (end int, closed bool) {
	return s.scanFrom(line, 0)
}

// scanFrom reports where the scan closes on this line, or closed=false if it
// reached end of line without its terminator.
func (s *negScan) scanFrom(line string, off int) (end int, closed bool) {
	pos := off
scan:
	for pos < len(line) {
		for _, esc := range s.escapes {
			if n, cont := esc.match(line, pos); cont == nil && n > 0 {
				pos += n
				continue scan
			}
		}
		if n, cont := s.term.match(line, pos); n != noMatch && cont == nil {
			return pos + n, true
		}
		_, size := utf8.DecodeRuneInString(line[pos:])
		pos += size
	}
	// A '$' alternative inside the terminator closes the scan at end of
	// line with nothing left open.
	if n, cont := s.term.match(line, len(line)); n != noMatch && cont == nil {
		return len(line) + n, true
	}
	return len(line), false
}
