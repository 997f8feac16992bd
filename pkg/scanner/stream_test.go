package scanner_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/glint/pkg/scanner"
	"github.com/arthur-debert/glint/pkg/token"
)

func TestStreamAcrossLines(t *testing.T) {
	rs := compileRuleSet(t, map[token.Category]string{
		token.Comment: "/*{!(*/)$}",
		token.Keyword: "if",
	})

	src := "if /*\ninside\n*/ if"
	toks, err := scanner.ScanAll(rs, strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, []token.Token{
		{Category: token.Keyword, Line: 1, Start: 0, End: 2},
		{Category: token.Text, Line: 1, Start: 2, End: 3},
		{Category: token.Comment, Line: 1, Start: 3, End: 5},
		{Category: token.Comment, Line: 2, Start: 0, End: 6},
		{Category: token.Comment, Line: 3, Start: 0, End: 2},
		{Category: token.Text, Line: 3, Start: 2, End: 3},
		{Category: token.Keyword, Line: 3, Start: 3, End: 5},
	}, toks)
}

func TestStreamLazyEarlyStop(t *testing.T) {
	rs := compileRuleSet(t, map[token.Category]string{
		token.Keyword: "word",
	})

	// A consumer that stops after the first token never needs the rest of
	// the input; make the remainder big enough that eager scanning would
	// be noticeable (and wrong).
	src := "word\n" + strings.Repeat("filler line\n", 10000)
	s := scanner.NewStream(rs, strings.NewReader(src))

	require.True(t, s.Next())
	assert.Equal(t, token.Token{Category: token.Keyword, Line: 1, Start: 0, End: 4}, s.Token())
	// Simply stop pulling: that is the whole cancellation protocol.
}

func TestStreamEmptyInput(t *testing.T) {
	rs := compileRuleSet(t, map[token.Category]string{
		token.Keyword: "if",
	})

	s := scanner.NewStream(rs, strings.NewReader(""))
	assert.False(t, s.Next())
	assert.NoError(t, s.Err())
}

func TestStreamSkipsEmptyLines(t *testing.T) {
	rs := compileRuleSet(t, map[token.Category]string{
		token.Keyword: "if",
	})

	toks, err := scanner.ScanAll(rs, strings.NewReader("\n\nif\n\n"))
	require.NoError(t, err)
	assert.Equal(t, []token.Token{
		{Category: token.Keyword, Line: 3, Start: 0, End: 2},
	}, toks)
}

func TestScanLines(t *testing.T) {
	rs := compileRuleSet(t, map[token.Category]string{
		token.Comment: "/*{!(*/)$}",
	})

	perLine := scanner.ScanLines(rs, []string{"/* a", "b", "c */"})
	require.Len(t, perLine, 3)
	for i, toks := range perLine {
		require.Len(t, toks, 1, "line %d", i)
		assert.Equal(t, token.Comment, toks[0].Category)
	}
}

func TestStreamNilRuleSetDegradesToText(t *testing.T) {
	toks, err := scanner.ScanAll(nil, strings.NewReader("plain\ntext"))
	require.NoError(t, err)
	assert.Equal(t, []token.Token{
		{Category: token.Text, Line: 1, Start: 0, End: 5},
		{Category: token.Text, Line: 2, Start: 0, End: 4},
	}, toks)
}

func TestStreamLongLine(t *testing.T) {
	rs := compileRuleSet(t, map[token.Category]string{
		token.Keyword: "if",
	})

	// A single line far beyond bufio.Scanner's default 64KiB token limit,
	// the shape of minified or generated one-line sources.
	long := "if " + strings.Repeat("x", 200*1024)
	toks, err := scanner.ScanAll(rs, strings.NewReader(long))
	require.NoError(t, err)

	require.Len(t, toks, 2)
	assert.Equal(t, token.Token{Category: token.Keyword, Line: 1, Start: 0, End: 2}, toks[0])
	assert.Equal(t, token.Token{Category: token.Text, Line: 1, Start: 2, End: len(long)}, toks[1])
}
