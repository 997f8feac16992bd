package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/glint/pkg/config"
	"github.com/arthur-debert/glint/pkg/errors"
)

var genConfigWrite bool

var genConfigCmd = &cobra.Command{
	Use:   "gen-config",
	Short: MsgGenConfigShort,
	Long:  MsgGenConfigLong,
	RunE:  runGenConfig,
}

var configPathCmd = &cobra.Command{
	Use:   "config-path",
	Short: "Print the user config file location",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.DefaultConfigPath())
	},
}

func init() {
	genConfigCmd.Flags().BoolVar(&genConfigWrite, "write", false, "Write to the config location instead of stdout")
	rootCmd.AddCommand(genConfigCmd)
	rootCmd.AddCommand(configPathCmd)
}

func runGenConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	content, err := config.GenerateConfigContent(cfg)
	if err != nil {
		return err
	}

	if !genConfigWrite {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}

	path := config.DefaultConfigPath()
	if _, err := os.Stat(path); err == nil {
		return errors.Newf(errors.ErrInvalidInput,
			"config file %s already exists, refusing to overwrite", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "creating %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "writing %s", path)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
