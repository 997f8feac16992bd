package main

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: MsgRulesShort,
	RunE:  runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	_, loader, err := loadApp(nil)
	if err != nil {
		return err
	}

	data := pterm.TableData{{"SELECTOR", "CATEGORIES"}}
	for _, rs := range loader.Registry().RuleSets() {
		var names []string
		for _, cat := range rs.Categories() {
			names = append(names, cat.String())
		}
		data = append(data, []string{rs.Selector(), strings.Join(names, ", ")})
	}

	return pterm.DefaultTable.
		WithHasHeader().
		WithData(data).
		WithWriter(cmd.OutOrStdout()).
		Render()
}
