package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/glint/pkg/scanner"
	"github.com/arthur-debert/glint/pkg/syntax"
	"github.com/arthur-debert/glint/pkg/token"
)

func compileRuleSet(t *testing.T, specs map[token.Category]string) *syntax.RuleSet {
	t.Helper()
	rs, err := syntax.CompileRuleSet("**/*.test", specs)
	require.NoError(t, err)
	return rs
}

// tok builds an expected token on line 0.
func tok(cat token.Category, start, end int) token.Token {
	return token.Token{Category: cat, Line: 0, Start: start, End: end}
}

func TestScanLineKeywordsAndSymbols(t *testing.T) {
	rs := compileRuleSet(t, map[token.Category]string{
		token.Keyword: "if|else",
		token.Symbol:  "%(|%)",
	})

	toks, st := scanner.ScanLine(rs, "if(x)", 0, scanner.State{})
	assert.False(t, st.IsOpen())
	assert.Equal(t, []token.Token{
		tok(token.Keyword, 0, 2),
		tok(token.Symbol, 2, 3),
		tok(token.Text, 3, 4),
		tok(token.Symbol, 4, 5),
	}, toks)
}

func TestScanLineStringWithEscapedQuote(t *testing.T) {
	rs := compileRuleSet(t, map[token.Category]string{
		token.String: `"{(\.)!("|$).}`,
	})

	toks, st := scanner.ScanLine(rs, `"a\"b"`, 0, scanner.State{})
	assert.False(t, st.IsOpen())
	assert.Equal(t, []token.Token{tok(token.String, 0, 6)}, toks)
}

func TestScanLineBlockCommentContinuation(t *testing.T) {
	rs := compileRuleSet(t, map[token.Category]string{
		token.Comment: "/*{!(*/)$}",
	})

	lines := []string{
		"/* first",
		"middle line",
		"end */ x",
	}

	toks, st := scanner.ScanLine(rs, lines[0], 0, scanner.State{})
	require.True(t, st.IsOpen())
	assert.Equal(t, token.Comment, st.Category())
	assert.Equal(t, []token.Token{tok(token.Comment, 0, len(lines[0]))}, toks)

	toks, st = scanner.ScanLine(rs, lines[1], 1, st)
	require.True(t, st.IsOpen())
	assert.Equal(t, []token.Token{
		{Category: token.Comment, Line: 1, Start: 0, End: len(lines[1])},
	}, toks)

	toks, st = scanner.ScanLine(rs, lines[2], 2, st)
	assert.False(t, st.IsOpen())
	assert.Equal(t, []token.Token{
		{Category: token.Comment, Line: 2, Start: 0, End: 6},
		{Category: token.Text, Line: 2, Start: 6, End: 8},
	}, toks)
}

func TestScanLineContinuationThroughEmptyLine(t *testing.T) {
	rs := compileRuleSet(t, map[token.Category]string{
		token.Comment: "/*{!(*/)$}",
	})

	_, st := scanner.ScanLine(rs, "/* open", 0, scanner.State{})
	require.True(t, st.IsOpen())

	toks, st := scanner.ScanLine(rs, "", 1, st)
	assert.Empty(t, toks)
	assert.True(t, st.IsOpen(), "an empty line must not close the comment")

	toks, st = scanner.ScanLine(rs, "*/", 2, st)
	assert.False(t, st.IsOpen())
	assert.Equal(t, []token.Token{
		{Category: token.Comment, Line: 2, Start: 0, End: 2},
	}, toks)
}

func TestScanLineUnterminatedCommentConsumesRest(t *testing.T) {
	rs := compileRuleSet(t, map[token.Category]string{
		token.Comment: "/*{!(*/)$}",
	})

	st := scanner.State{}
	var toks []token.Token
	toks, st = scanner.ScanLine(rs, "/* never closed", 0, st)
	require.True(t, st.IsOpen())
	require.Len(t, toks, 1)

	for i := 1; i <= 50; i++ {
		toks, st = scanner.ScanLine(rs, "more text", i, st)
		require.True(t, st.IsOpen(), "line %d", i)
		require.Equal(t, token.Comment, toks[0].Category)
	}
}

func TestScanLinePrecedence(t *testing.T) {
	// "for" is both a keyword and would match the type pattern; the
	// earlier category must win regardless of declaration order in the map.
	rs := compileRuleSet(t, map[token.Category]string{
		token.Type:    "%a{%w}",
		token.Keyword: "for|if",
	})

	toks, _ := scanner.ScanLine(rs, "for", 0, scanner.State{})
	require.Len(t, toks, 1)
	assert.Equal(t, token.Keyword, toks[0].Category)

	// A non-keyword identifier falls through to the type pattern.
	toks, _ = scanner.ScanLine(rs, "foo", 0, scanner.State{})
	require.Len(t, toks, 1)
	assert.Equal(t, token.Type, toks[0].Category)
}

func TestScanLineCommentBeatsString(t *testing.T) {
	rs := compileRuleSet(t, map[token.Category]string{
		token.String:  `"{!("|$).}`,
		token.Comment: `//{!$.}`,
	})

	toks, _ := scanner.ScanLine(rs, `// say "hi"`, 0, scanner.State{})
	require.Len(t, toks, 1)
	assert.Equal(t, token.Comment, toks[0].Category)
}

func TestScanLineCoverage(t *testing.T) {
	rs := compileRuleSet(t, map[token.Category]string{
		token.Comment: "//{!$.}|/*{!(*/)$}",
		token.String:  `"{(\.)!("|$).}`,
		token.Literal: "%d{%w}",
		token.Keyword: "if|else|return",
		token.Symbol:  "%(|%)|%{|%}|=|;|<|>|+",
	})

	lines := []string{
		`if (x < 10) { return "done"; } // ok`,
		`x = x + 1;`,
		`/* spans`,
		`two lines */ else`,
		``,
		`weird ~~~ §§ input`,
	}

	st := scanner.State{}
	for i, line := range lines {
		var toks []token.Token
		toks, st = scanner.ScanLine(rs, line, i, st)

		// Tokens are contiguous, gap-free, and span exactly the line.
		col := 0
		for _, tk := range toks {
			assert.Equal(t, col, tk.Start, "line %d: gap before %v", i, tk)
			assert.Greater(t, tk.End, tk.Start, "line %d: empty token %v", i, tk)
			assert.Equal(t, i, tk.Line)
			col = tk.End
		}
		assert.Equal(t, len(line), col, "line %d: tokens do not cover the line", i)
	}
	assert.False(t, st.IsOpen())
}

func TestScanLineDeterminism(t *testing.T) {
	rs := compileRuleSet(t, map[token.Category]string{
		token.Keyword: "if|else",
		token.Symbol:  "%(|%)",
	})

	line := "if(a)else(b)"
	first, _ := scanner.ScanLine(rs, line, 0, scanner.State{})
	for i := 0; i < 10; i++ {
		toks, _ := scanner.ScanLine(rs, line, 0, scanner.State{})
		assert.Equal(t, first, toks)
	}
}

func TestScanLineNilRuleSet(t *testing.T) {
	toks, st := scanner.ScanLine(nil, "anything at all", 0, scanner.State{})
	assert.False(t, st.IsOpen())
	assert.Equal(t, []token.Token{tok(token.Text, 0, 15)}, toks)

	toks, _ = scanner.ScanLine(nil, "", 0, scanner.State{})
	assert.Empty(t, toks)
}

func TestScanLineTextRunsMerge(t *testing.T) {
	rs := compileRuleSet(t, map[token.Category]string{
		token.Keyword: "if",
	})

	toks, _ := scanner.ScanLine(rs, "nothing matches here", 0, scanner.State{})
	require.Len(t, toks, 1)
	assert.Equal(t, tok(token.Text, 0, 20), toks[0])
}

func TestScanLineZeroWidthMatchDoesNotStall(t *testing.T) {
	// "{%d}" can match zero characters anywhere; the tokenizer must not
	// emit empty tokens or loop.
	rs := compileRuleSet(t, map[token.Category]string{
		token.Literal: "{%d}",
	})

	toks, _ := scanner.ScanLine(rs, "abc123", 0, scanner.State{})
	assert.Equal(t, []token.Token{
		tok(token.Text, 0, 3),
		tok(token.Literal, 3, 6),
	}, toks)
}
