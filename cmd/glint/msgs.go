package main

// Short messages (one-liners)
const (
	MsgRootShort       = "A pattern-driven terminal syntax highlighter"
	MsgHighlightShort  = "Highlight files on the terminal"
	MsgTokensShort     = "Print the token stream for a file"
	MsgCheckShort      = "Validate rule files"
	MsgRulesShort      = "List the loaded rule sets"
	MsgGenConfigShort  = "Print a starter configuration file"
	MsgTopicsShort     = "Display available documentation topics"
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"
	MsgManShort        = "Generate man page"
)

// Long messages
const (
	MsgRootLong = `glint highlights source code on the terminal using small, declarative
pattern rules instead of full language grammars. Rule sets are selected per
file by extension or glob, and user rule files extend or override the
built-in languages.`

	MsgHighlightLong = `Highlight reads the given files (or stdin when no file is given) and
writes them to stdout with ANSI styling per token category.

Rule sets are chosen by file name. For stdin or files with unhelpful names,
--as pretends the input has a different name:

  cat snippet | glint highlight --as main.go`

	MsgTokensLong = `Tokens prints one line per token: position, category and lexeme. Useful
when writing rule files to see exactly how a line is being split.`

	MsgCheckLong = `Check parses and compiles the given rule files without loading them into
a registry. Errors report the file, line and pattern offset.`

	MsgGenConfigLong = `gen-config prints the effective configuration as a TOML file with every
value commented out. Redirect it to the user config location to start
customizing:

  glint gen-config > ` + "`glint config-path`" + ``
)
