package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/glint/pkg/errors"
	"github.com/arthur-debert/glint/pkg/token"
)

func TestCategoryPrecedenceOrder(t *testing.T) {
	// The numeric order of the constants is the precedence contract.
	want := []token.Category{
		token.Comment, token.String, token.Literal, token.Keyword,
		token.Type, token.Symbol, token.Text,
	}
	for i, c := range token.Categories {
		assert.Equal(t, want[i], c)
	}
	assert.Equal(t, len(want), token.CategoryCount)
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		kind string
		want token.Category
	}{
		{"comments", token.Comment},
		{"strings", token.String},
		{"literals", token.Literal},
		{"keywords", token.Keyword},
		{"types", token.Type},
		{"symbols", token.Symbol},
		{"texts", token.Text},
		// singular forms
		{"keyword", token.Keyword},
		{"comment", token.Comment},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			got, err := token.ParseCategory(tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCategoryUnknown(t *testing.T) {
	_, err := token.ParseCategory("identifiers")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownCategory))
}

func TestTokenString(t *testing.T) {
	tok := token.Token{Category: token.Keyword, Line: 3, Start: 0, End: 2}
	assert.Equal(t, "keyword 3:0-2", tok.String())
	assert.Equal(t, 2, tok.Len())
}
