// Package syntax maps files to compiled rule sets: it parses rule definition
// files written in the directive syntax, compiles each category's pattern,
// and resolves paths to rule sets through selector expansion.
package syntax

import (
	"github.com/arthur-debert/glint/pkg/errors"
	"github.com/arthur-debert/glint/pkg/pattern"
	"github.com/arthur-debert/glint/pkg/token"
)

// RuleSet holds the compiled per-category patterns for one selector. It is
// immutable once built and safe to share across concurrent scans.
type RuleSet struct {
	selector string
	patterns [token.CategoryCount]*pattern.Pattern
	order    []token.Category
}

// CompileRuleSet compiles category pattern strings into a RuleSet. Compile
// failures carry the selector, category, and pattern text.
func CompileRuleSet(selector string, specs map[token.Category]string) (*RuleSet, error) {
	rs := &RuleSet{selector: selector}
	// Iterate in precedence order so order is stable regardless of map
	// iteration.
	for _, cat := range token.Categories {
		src, ok := specs[cat]
		if !ok {
			continue
		}
		p, err := pattern.Compile(src)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrRuleParse,
				"compiling %s pattern for %q", cat, selector).
				WithDetail("selector", selector).
				WithDetail("category", cat.String()).
				WithDetail("pattern", src)
		}
		rs.patterns[cat] = p
		rs.order = append(rs.order, cat)
	}
	return rs, nil
}

// Selector returns the selector string this rule set was registered under.
func (rs *RuleSet) Selector() string { return rs.selector }

// Pattern returns the compiled pattern for a category, or nil if the
// category is absent from this rule set.
func (rs *RuleSet) Pattern(c token.Category) *pattern.Pattern {
	return rs.patterns[c]
}

// Categories returns the categories present in this rule set, in precedence
// order. Callers must not modify the returned slice.
func (rs *RuleSet) Categories() []token.Category {
	return rs.order
}
