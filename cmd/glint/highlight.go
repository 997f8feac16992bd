package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/glint/pkg/config"
	"github.com/arthur-debert/glint/pkg/errors"
	"github.com/arthur-debert/glint/pkg/logging"
	"github.com/arthur-debert/glint/pkg/style"
	"github.com/arthur-debert/glint/pkg/syntax"
)

var (
	highlightAs    string
	highlightColor string
	highlightRules []string
	gutter         bool
	watch          bool
)

var highlightCmd = &cobra.Command{
	Use:   "highlight [files...]",
	Short: MsgHighlightShort,
	Long:  MsgHighlightLong,
	RunE:  runHighlight,
}

func init() {
	highlightCmd.Flags().StringVar(&highlightAs, "as", "", "Select the rule set as if the input had this file name")
	highlightCmd.Flags().StringVar(&highlightColor, "color", "", "When to color output: auto, always or never")
	highlightCmd.Flags().StringArrayVar(&highlightRules, "rules", nil, "Additional rule files, applied after configured ones")
	highlightCmd.Flags().BoolVar(&gutter, "gutter", false, "Show a line-number gutter")
	highlightCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-render when a rule file changes")

	rootCmd.AddCommand(highlightCmd)
}

func runHighlight(cmd *cobra.Command, args []string) error {
	cfg, loader, err := loadApp(highlightRules)
	if err != nil {
		return err
	}
	applyOutputFlags(cmd, cfg)

	renderer, err := style.NewRenderer(cfg, os.Stdout)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		rs, _ := loader.Registry().Resolve(highlightAs)
		return renderer.Highlight(os.Stdout, rs, os.Stdin)
	}

	render := func() error {
		for _, path := range args {
			if err := highlightFile(renderer, loader.Registry(), path); err != nil {
				return err
			}
		}
		return nil
	}

	if err := render(); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.GetLogger("cmd.highlight")
	watcher := syntax.NewWatcher(loader)
	watcher.OnReload(func() {
		if renderer.Colored() {
			fmt.Print("\x1b[2J\x1b[H")
		}
		if err := render(); err != nil {
			logger.Warn().Err(err).Msg("re-render failed")
		}
	})
	return watcher.Watch(ctx)
}

func highlightFile(renderer *style.Renderer, reg *syntax.Registry, path string) error {
	name := path
	if highlightAs != "" {
		name = highlightAs
	}
	rs, _ := reg.Resolve(name)

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileNotFound, "opening %s", path)
	}
	defer func() { _ = f.Close() }()

	return renderer.Highlight(os.Stdout, rs, f)
}

// applyOutputFlags lets command-line flags override the configured output
// options. Only flags the user actually set are applied.
func applyOutputFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("gutter") {
		cfg.Output.Gutter = gutter
	}
	if cmd.Flags().Changed("color") {
		cfg.Output.Color = highlightColor
	}
}
