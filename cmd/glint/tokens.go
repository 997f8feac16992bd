package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/glint/pkg/errors"
	"github.com/arthur-debert/glint/pkg/scanner"
	"github.com/arthur-debert/glint/pkg/token"
)

var tokensAs string

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: MsgTokensShort,
	Long:  MsgTokensLong,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokens,
}

func init() {
	tokensCmd.Flags().StringVar(&tokensAs, "as", "", "Select the rule set as if the input had this file name")
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	_, loader, err := loadApp(nil)
	if err != nil {
		return err
	}

	var src io.Reader = os.Stdin
	name := tokensAs
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileNotFound, "opening %s", args[0])
		}
		defer func() { _ = f.Close() }()
		src = f
		if name == "" {
			name = args[0]
		}
	}
	rs, _ := loader.Registry().Resolve(name)

	out := cmd.OutOrStdout()
	in := bufio.NewScanner(src)
	in.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var st scanner.State
	lineNo := 0
	for in.Scan() {
		lineNo++
		line := in.Text()
		var toks []token.Token
		toks, st = scanner.ScanLine(rs, line, lineNo, st)
		for _, tok := range toks {
			fmt.Fprintf(out, "%d:%d-%d\t%s\t%q\n",
				tok.Line, tok.Start, tok.End, tok.Category, line[tok.Start:tok.End])
		}
	}
	if err := in.Err(); err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "reading input")
	}
	return nil
}
