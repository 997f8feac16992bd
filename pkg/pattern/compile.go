package pattern

import (
	"github.com/arthur-debert/glint/pkg/errors"
)

// Compile parses a pattern string into an immutable Pattern. Malformed input
// (unknown class, unbalanced group or brace, dangling negation, missing
// fallback) fails with a structured error carrying the pattern text and the
// offending offset; callers layer selector and category context on top.
func Compile(src string) (*Pattern, error) {
	if src == "" {
		return nil, errors.New(errors.ErrEmptyPattern, "empty pattern")
	}
	p := &parser{src: src, end: len(src)}
	root, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if p.pos != len(src) {
		// Only closers can stop parseAlternation early at top level.
		return nil, p.errorf(errors.ErrUnbalancedGroup, "unexpected %q", src[p.pos])
	}
	return &Pattern{root: root, src: src}, nil
}

// MustCompile is Compile for patterns known to be valid, such as built-in
// defaults. It panics on error.
func MustCompile(src string) *Pattern {
	p, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return p
}

// parser walks src[pos:end]. end is usually len(src); the negated-scan
// terminator is parsed with a tighter bound so errors still quote the
// whole pattern.
type parser struct {
	src string
	pos int
	end int
}

func (p *parser) errorf(code errors.ErrorCode, format string, args ...interface{}) error {
	return errors.Newf(code, format, args...).
		WithDetail("pattern", p.src).
		WithDetail("offset", p.pos)
}

// parseAlternation parses sequences separated by '|'. Stops at ')' or '}' so
// groups and brace bodies can share it.
func (p *parser) parseAlternation() (node, error) {
	first, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	alts := []node{first}
	for p.pos < p.end && p.src[p.pos] == '|' {
		p.pos++
		alt, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		alts = append(alts, alt)
	}
	if len(alts) == 1 {
		return first, nil
	}
	return altNode{alts: alts}, nil
}

// parseSequence parses elements until '|', a closer, or end of input.
func (p *parser) parseSequence() (node, error) {
	var nodes []node
	for p.pos < p.end {
		c := p.src[p.pos]
		if c == '|' || c == ')' || c == '}' {
			break
		}
		el, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, el)
	}
	if len(nodes) == 0 {
		return nil, p.errorf(errors.ErrEmptyPattern, "empty alternative")
	}
	if len(nodes) == 1 {
		return nodes[0], nil
	}
	return seqNode{nodes: nodes}, nil
}

// parseElement parses a single atom, group, or brace block.
func (p *parser) parseElement() (node, error) {
	switch c := p.src[p.pos]; c {
	case '(':
		return p.parseGroup()
	case '{':
		return p.parseBrace()
	case '!':
		return nil, p.errorf(errors.ErrDanglingNegation,
			"negation is only valid inside a scan block; escape a literal '!' as %%!")
	case '%':
		return p.parseEscape()
	case '.':
		p.pos++
		return anyNode{}, nil
	case '$':
		p.pos++
		return endNode{}, nil
	case '^':
		p.pos++
		return startNode{}, nil
	default:
		p.pos++
		return litNode{ch: c}, nil
	}
}

func (p *parser) parseEscape() (node, error) {
	if p.pos+1 >= p.end {
		return nil, p.errorf(errors.ErrPatternSyntax, "pattern ends with a bare '%%'")
	}
	c := p.src[p.pos+1]
	p.pos += 2
	switch c {
	case 'a', 'd', 'l', 'u', 'w':
		return classNode{kind: classKind(c)}, nil
	case '%':
		return litNode{ch: '%'}, nil
	default:
		// Unknown lowercase letters are reserved for future classes;
		// everything else escapes a metacharacter.
		if c >= 'a' && c <= 'z' {
			p.pos -= 2
			return nil, p.errorf(errors.ErrUnknownClass, "unknown class %%%c", c)
		}
		return litNode{ch: c}, nil
	}
}

func (p *parser) parseGroup() (node, error) {
	open := p.pos
	p.pos++ // '('
	inner, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if p.pos >= p.end || p.src[p.pos] != ')' {
		p.pos = open
		return nil, p.errorf(errors.ErrUnbalancedGroup, "missing ')'")
	}
	p.pos++
	return inner, nil
}

// parseBrace parses either a greedy repeat {P} or a negated scan
// {escapes… !terminator fallback}, distinguished by a top-level '!'.
func (p *parser) parseBrace() (node, error) {
	open := p.pos
	p.pos++ // '{'
	if p.bodyHasNegation() {
		return p.parseNegScan(open)
	}
	body, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if p.pos >= p.end || p.src[p.pos] != '}' {
		p.pos = open
		return nil, p.errorf(errors.ErrUnbalancedGroup, "missing '}'")
	}
	p.pos++
	return repeatNode{body: body}, nil
}

// bodyHasNegation scans ahead from the current position for a '!' at this
// brace's nesting level, without consuming input.
func (p *parser) bodyHasNegation() bool {
	depth := 0
	for i := p.pos; i < p.end; i++ {
		switch p.src[i] {
		case '%':
			i++ // skip escaped char
		case '(', '{':
			depth++
		case ')':
			depth--
		case '}':
			if depth == 0 {
				return false
			}
			depth--
		case '!':
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// parseNegScan parses "{escapes… !terminator fallback}" into a negScan node.
// Each escape is one alternative, tried before every scan step; the
// fallback is the single '.' or '$' immediately before the closing brace and
// selects the end-of-line behavior: '.' requires the terminator on the same
// line, '$' leaves the match open for continuation.
func (p *parser) parseNegScan(open int) (node, error) {
	var escapes []node
	for p.pos < p.end && p.src[p.pos] != '!' {
		if p.src[p.pos] == '|' {
			p.pos++
			continue
		}
		esc, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		escapes = append(escapes, esc)
	}
	if p.pos >= p.end {
		p.pos = open
		return nil, p.errorf(errors.ErrUnbalancedGroup, "missing '}'")
	}
	p.pos++ // '!'

	closer := p.findBraceClose(open)
	if closer < 0 {
		p.pos = open
		return nil, p.errorf(errors.ErrUnbalancedGroup, "missing '}'")
	}
	if closer <= p.pos || !p.isFallbackAt(closer-1) {
		return nil, p.errorf(errors.ErrPatternSyntax,
			"negated scan must end with a '.' or '$' fallback")
	}
	fallback := p.src[closer-1]
	termEnd := closer - 1
	if p.pos >= termEnd {
		return nil, p.errorf(errors.ErrDanglingNegation, "negated scan has no terminator")
	}

	term := &parser{src: p.src, pos: p.pos, end: termEnd}
	termNode, err := term.parseAlternation()
	if err != nil {
		return nil, err
	}
	if term.pos != termEnd {
		p.pos = term.pos
		return nil, p.errorf(errors.ErrUnbalancedGroup, "unexpected %q", p.src[term.pos])
	}
	p.pos = closer + 1

	return &negScan{
		escapes:     escapes,
		term:        termNode,
		continueEOL: fallback == '$',
	}, nil
}

// findBraceClose locates the '}' matching the brace at open.
func (p *parser) findBraceClose(open int) int {
	depth := 0
	for i := open; i < p.end; i++ {
		switch p.src[i] {
		case '%':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// isFallbackAt reports whether the '.' or '$' at index i is a real fallback
// marker rather than the tail of a '%' escape.
func (p *parser) isFallbackAt(i int) bool {
	if p.src[i] != '.' && p.src[i] != '$' {
		return false
	}
	escapes := 0
	for j := i - 1; j >= 0 && p.src[j] == '%'; j-- {
		escapes++
	}
	return escapes%2 == 0
}
