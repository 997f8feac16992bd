package main

import (
	"github.com/arthur-debert/glint/pkg/config"
	"github.com/arthur-debert/glint/pkg/syntax"
)

// loadApp loads the configuration and builds a populated rule registry.
// extraRules are rule files given on the command line, applied after the
// configured ones so they win.
func loadApp(extraRules []string) (*config.Config, *syntax.Loader, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, err
	}

	files := append(append([]string{}, cfg.Rules.Files...), extraRules...)
	loader := syntax.NewLoader(syntax.NewRegistry(), files, cfg.Rules.Builtin)
	if err := loader.Load(); err != nil {
		return nil, nil, err
	}
	return cfg, loader, nil
}
