// Package style renders token streams as styled terminal output.
package style

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/arthur-debert/glint/pkg/config"
	"github.com/arthur-debert/glint/pkg/errors"
	"github.com/arthur-debert/glint/pkg/token"
)

// Theme holds one lipgloss style per token category.
type Theme [token.CategoryCount]lipgloss.Style

// Style returns the style for a category.
func (t Theme) Style(cat token.Category) lipgloss.Style {
	return t[cat]
}

// ThemeFromConfig builds a Theme from the config's theme table. Categories
// absent from the table render unstyled; unknown category names are an error
// so typos in a user theme do not silently vanish.
func ThemeFromConfig(table map[string]config.StyleConfig) (Theme, error) {
	var theme Theme
	for name, sc := range table {
		cat, err := token.ParseCategory(name)
		if err != nil {
			return theme, errors.Wrapf(err, errors.ErrConfigParse,
				"theme entry %q", name)
		}
		theme[cat] = buildStyle(sc)
	}
	return theme, nil
}

func buildStyle(sc config.StyleConfig) lipgloss.Style {
	s := lipgloss.NewStyle()
	if sc.Foreground != "" {
		s = s.Foreground(lipgloss.Color(sc.Foreground))
	}
	if sc.Background != "" {
		s = s.Background(lipgloss.Color(sc.Background))
	}
	if sc.Bold {
		s = s.Bold(true)
	}
	if sc.Italic {
		s = s.Italic(true)
	}
	if sc.Underline {
		s = s.Underline(true)
	}
	return s
}
