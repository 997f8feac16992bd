package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/glint/pkg/errors"
	"github.com/arthur-debert/glint/pkg/syntax"
)

var checkCmd = &cobra.Command{
	Use:   "check <rule-file>...",
	Short: MsgCheckShort,
	Long:  MsgCheckLong,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := false

	for _, path := range args {
		if err := checkRuleFile(path); err != nil {
			failed = true
			fmt.Fprintf(out, "%s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "%s: ok\n", path)
	}
	if failed {
		return errors.New(errors.ErrRuleParse, "some rule files have errors")
	}
	return nil
}

func checkRuleFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileNotFound, "opening %s", path)
	}
	defer func() { _ = f.Close() }()

	defs, err := syntax.ParseDefinitions(path, f)
	if err != nil {
		return err
	}
	for _, def := range defs {
		if _, err := syntax.CompileRuleSet(def.Selector, def.Patterns); err != nil {
			return err
		}
	}
	return nil
}
