// Package token defines the token categories produced by scanning and the
// Token span type emitted for each classified region of a line.
package token

import (
	"fmt"

	"github.com/arthur-debert/glint/pkg/errors"
)

// Category classifies a span of source text. The declaration order below is
// the precedence order used when several categories match at the same
// position: an earlier category always wins.
type Category uint8

const (
	Comment Category = iota
	String
	Literal
	Keyword
	Type
	Symbol
	Text

	// CategoryCount is the number of categories, for sizing lookup tables.
	CategoryCount = int(Text) + 1
)

// Categories lists all categories in precedence order.
var Categories = [CategoryCount]Category{
	Comment, String, Literal, Keyword, Type, Symbol, Text,
}

var categoryNames = [CategoryCount]string{
	"comment", "string", "literal", "keyword", "type", "symbol", "text",
}

// String returns the singular lowercase name of the category
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// directive kinds as they appear in rule files, plural per category
var directiveKinds = map[string]Category{
	"comments": Comment,
	"strings":  String,
	"literals": Literal,
	"keywords": Keyword,
	"types":    Type,
	"symbols":  Symbol,
	"texts":    Text,
}

// ParseCategory maps a directive kind ("keywords", "comments", ...) to its
// Category. The singular form is accepted as well.
func ParseCategory(kind string) (Category, error) {
	if c, ok := directiveKinds[kind]; ok {
		return c, nil
	}
	if c, ok := directiveKinds[kind+"s"]; ok {
		return c, nil
	}
	return Text, errors.Newf(errors.ErrUnknownCategory, "unknown category kind %q", kind)
}

// Token is a classified span of one line. Line numbers are 1-based
// everywhere tokens are produced. Columns are byte offsets within the line,
// half-open: the token covers line[Start:End].
type Token struct {
	Category Category
	Line     int
	Start    int
	End      int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %d:%d-%d", t.Category, t.Line, t.Start, t.End)
}

// Len returns the number of bytes the token covers
func (t Token) Len() int {
	return t.End - t.Start
}
