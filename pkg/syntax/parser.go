package syntax

import (
	"bufio"
	"io"
	"strings"

	"github.com/arthur-debert/glint/pkg/errors"
	"github.com/arthur-debert/glint/pkg/token"
)

// Definition is one parsed rule set definition: a selector plus the raw
// pattern string for each assigned category. Patterns are compiled later,
// at registration.
type Definition struct {
	Selector string
	Patterns map[token.Category]string
	Line     int
}

// ParseDefinitions reads rule definitions in the directive syntax:
//
//	# comment
//	syntax "**/*.{c,h}"
//	syntax keywords if|else|for
//	syntax comments "//{!$.}|/*{!(*/)$}"
//
// `syntax "<selector>"` opens (or reopens) a rule set; subsequent
// `syntax <kind> <pattern>` lines assign category patterns to it. An
// unquoted pattern is sugar for the quoted form. name is used in error
// messages only.
func ParseDefinitions(name string, r io.Reader) ([]Definition, error) {
	var defs []Definition
	bySelector := make(map[string]int)
	current := -1

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rest, ok := strings.CutPrefix(line, "syntax")
		if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
			return nil, errors.Newf(errors.ErrRuleParse,
				"%s:%d: expected a syntax directive, got %q", name, lineNo, line)
		}
		rest = strings.TrimSpace(rest)

		if strings.HasPrefix(rest, `"`) {
			selector, err := unquote(rest)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrRuleParse,
					"%s:%d: bad selector", name, lineNo)
			}
			if idx, ok := bySelector[selector]; ok {
				current = idx
				continue
			}
			defs = append(defs, Definition{
				Selector: selector,
				Patterns: make(map[token.Category]string),
				Line:     lineNo,
			})
			current = len(defs) - 1
			bySelector[selector] = current
			continue
		}

		kind, value, found := strings.Cut(rest, " ")
		if !found {
			return nil, errors.Newf(errors.ErrRuleParse,
				"%s:%d: expected `syntax <kind> <pattern>`", name, lineNo)
		}
		cat, err := token.ParseCategory(kind)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrRuleParse,
				"%s:%d", name, lineNo)
		}
		if current < 0 {
			return nil, errors.Newf(errors.ErrNoOpenRuleSet,
				"%s:%d: %s pattern before any `syntax \"<selector>\"` directive",
				name, lineNo, cat)
		}

		value = strings.TrimSpace(value)
		if strings.HasPrefix(value, `"`) {
			value, err = unquote(value)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrRuleParse,
					"%s:%d: bad %s pattern", name, lineNo, cat)
			}
		}
		defs[current].Patterns[cat] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrRuleParse, "reading %s", name)
	}
	return defs, nil
}

// unquote strips the surrounding double quotes. Quotes inside the pattern
// text are taken verbatim: only the outermost pair delimits, so patterns may
// contain quotes without any escaping.
func unquote(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", errors.Newf(errors.ErrRuleParse, "unterminated quote in %q", s)
	}
	return s[1 : len(s)-1], nil
}
