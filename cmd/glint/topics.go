package main

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/glint/pkg/errors"
)

//go:embed docs/*.md
var topicFiles embed.FS

var topicsCmd = &cobra.Command{
	Use:   "topics [topic]",
	Short: MsgTopicsShort,
	Long:  "Display a list of all available help topics, or render one of them.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTopics,
}

func init() {
	rootCmd.AddCommand(topicsCmd)
}

func runTopics(cmd *cobra.Command, args []string) error {
	names, err := topicNames()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprintln(out, "Available topics:")
		for _, name := range names {
			fmt.Fprintf(out, "  %s\n", name)
		}
		fmt.Fprintln(out, "\nUse \"glint topics <topic>\" to read one.")
		return nil
	}

	name := args[0]
	content, err := topicFiles.ReadFile("docs/" + name + ".md")
	if err != nil {
		return errors.Newf(errors.ErrNotFound,
			"no topic %q, available: %s", name, strings.Join(names, ", "))
	}
	fmt.Fprint(out, renderMarkdown(string(content)))
	return nil
}

func topicNames() ([]string, error) {
	entries, err := topicFiles.ReadDir("docs")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "reading embedded topics")
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(names)
	return names, nil
}

// renderMarkdown renders with glamour, falling back to the raw text when the
// terminal cannot be probed.
func renderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
