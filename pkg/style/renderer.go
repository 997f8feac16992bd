package style

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/glint/pkg/config"
	"github.com/arthur-debert/glint/pkg/errors"
	"github.com/arthur-debert/glint/pkg/scanner"
	"github.com/arthur-debert/glint/pkg/syntax"
	"github.com/arthur-debert/glint/pkg/token"
)

var gutterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

// Renderer turns scanned lines into terminal output.
type Renderer struct {
	theme    Theme
	colored  bool
	gutter   bool
	tabWidth int
}

// NewRenderer builds a Renderer from the configuration. out is the stream
// the output is destined for; with color "auto" it is probed for a terminal.
func NewRenderer(cfg *config.Config, out *os.File) (*Renderer, error) {
	theme, err := ThemeFromConfig(cfg.Theme)
	if err != nil {
		return nil, err
	}

	var colored bool
	switch cfg.Output.Color {
	case "always":
		colored = true
	case "never":
		colored = false
	case "auto", "":
		colored = out != nil &&
			(isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())) &&
			termenv.EnvColorProfile() != termenv.Ascii
	default:
		return nil, errors.Newf(errors.ErrInvalidInput,
			"color must be auto, always or never, got %q", cfg.Output.Color)
	}

	tabWidth := cfg.Output.TabWidth
	if tabWidth <= 0 {
		tabWidth = 8
	}
	return &Renderer{
		theme:    theme,
		colored:  colored,
		gutter:   cfg.Output.Gutter,
		tabWidth: tabWidth,
	}, nil
}

// Colored reports whether output will carry ANSI styling.
func (r *Renderer) Colored() bool { return r.colored }

// Highlight scans src with the given rule set and writes the styled lines to
// w. A nil rule set renders everything as plain text.
func (r *Renderer) Highlight(w io.Writer, rs *syntax.RuleSet, src io.Reader) error {
	in := bufio.NewScanner(src)
	in.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var st scanner.State
	lineNo := 0
	for in.Scan() {
		lineNo++
		var toks []token.Token
		toks, st = scanner.ScanLine(rs, in.Text(), lineNo, st)
		if _, err := io.WriteString(w, r.Line(lineNo, in.Text(), toks)); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "writing output")
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return errors.Wrap(err, errors.ErrInternal, "writing output")
		}
	}
	if err := in.Err(); err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "reading input")
	}
	return nil
}

// Line renders one line. Tokens must cover contiguous spans of the line in
// order, which is what the scanner produces.
func (r *Renderer) Line(lineNo int, line string, toks []token.Token) string {
	var b strings.Builder
	col := 0

	if r.gutter {
		g := fmt.Sprintf("%4d ", lineNo)
		if r.colored {
			g = gutterStyle.Render(g)
		}
		b.WriteString(g)
	}

	for _, tok := range toks {
		text := line[tok.Start:tok.End]
		text, col = r.expandTabs(text, col)
		if r.colored {
			text = r.theme.Style(tok.Category).Render(text)
		}
		b.WriteString(text)
	}
	return b.String()
}

// expandTabs replaces tabs with spaces up to the next tab stop, tracking the
// display column across calls so stops stay aligned when a line is rendered
// span by span. Wide runes advance the column by their display width.
func (r *Renderer) expandTabs(s string, col int) (string, int) {
	if !strings.ContainsRune(s, '\t') {
		return s, col + runewidth.StringWidth(s)
	}
	var b strings.Builder
	for _, ch := range s {
		if ch == '\t' {
			pad := r.tabWidth - col%r.tabWidth
			b.WriteString(strings.Repeat(" ", pad))
			col += pad
			continue
		}
		b.WriteRune(ch)
		col += runewidth.RuneWidth(ch)
	}
	return b.String(), col
}
