package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/glint/pkg/errors"
	"github.com/arthur-debert/glint/pkg/pattern"
)

func TestCompileValid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"single literal", "a"},
		{"literal word", "if"},
		{"class", "%a"},
		{"word class repeat", "%a{%w}"},
		{"escaped percent", "%%"},
		{"escaped metachar", "%(|%)"},
		{"any", "."},
		{"anchors", "^a$"},
		{"alternation", "if|else|for"},
		{"group", "(ab|cd)e"},
		{"nested group", "((a|b)|c)"},
		{"repeat", "a{b}"},
		{"repeat of alternation", "0{%d|_}"},
		{"negated scan to eol terminator", "//{!$.}"},
		{"negated scan multi-line", "/*{!(*/)$}"},
		{"negated scan with escapes", `"{(\.)!("|$).}`},
		{"escaped dot terminator", "{!%..}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := pattern.Compile(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.src, p.Source())
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.ErrorCode
	}{
		{"empty pattern", "", errors.ErrEmptyPattern},
		{"empty alternative", "a|", errors.ErrEmptyPattern},
		{"leading bar", "|a", errors.ErrEmptyPattern},
		{"unknown class", "%q", errors.ErrUnknownClass},
		{"trailing percent", "ab%", errors.ErrPatternSyntax},
		{"unbalanced group", "(ab", errors.ErrUnbalancedGroup},
		{"stray close paren", "ab)", errors.ErrUnbalancedGroup},
		{"unbalanced brace", "a{b", errors.ErrUnbalancedGroup},
		{"stray close brace", "a}b", errors.ErrUnbalancedGroup},
		{"dangling negation", "a!b", errors.ErrDanglingNegation},
		{"negation missing terminator", "{!$}", errors.ErrDanglingNegation},
		{"negation missing fallback", "{!ab}", errors.ErrPatternSyntax},
		{"negation escaped fallback", "{!a%.}", errors.ErrPatternSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pattern.Compile(tt.src)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code),
				"want code %s, got %s (%v)", tt.code, errors.GetErrorCode(err), err)

			// Every compile error names the offending pattern.
			details := errors.GetErrorDetails(err)
			if tt.src != "" {
				assert.Equal(t, tt.src, details["pattern"])
				assert.Contains(t, details, "offset")
			}
		})
	}
}

// An error inside a negated-scan terminator must still cite the whole
// pattern and an absolute offset, not just the scan-block fragment.
func TestCompileTerminatorErrorDetails(t *testing.T) {
	src := `<{!(%q)>.}`
	_, err := pattern.Compile(src)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownClass),
		"want code %s, got %s (%v)", errors.ErrUnknownClass, errors.GetErrorCode(err), err)

	details := errors.GetErrorDetails(err)
	assert.Equal(t, src, details["pattern"])
	assert.Equal(t, 4, details["offset"], "offset should point at %%q in the full pattern")
}

func TestMustCompilePanics(t *testing.T) {
	assert.Panics(t, func() { pattern.MustCompile("(") })
	assert.NotPanics(t, func() { pattern.MustCompile("%a{%w}") })
}
