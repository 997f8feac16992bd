package syntax

import (
	"bytes"
	_ "embed"
	"os"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/glint/pkg/errors"
	"github.com/arthur-debert/glint/pkg/logging"
)

//go:embed defaults.rules
var defaultRules []byte

// DefaultRules returns the built-in rule definition text.
func DefaultRules() string {
	return string(defaultRules)
}

// Loader builds a registry from the built-in definitions plus user rule
// files. Files are applied in order after the defaults, so a user selector
// overrides the built-in rule set for the same extensions.
type Loader struct {
	registry *Registry
	files    []string
	builtin  bool
	logger   zerolog.Logger
}

// NewLoader creates a Loader for the given registry and user rule files.
// When builtin is true the embedded defaults are loaded first.
func NewLoader(registry *Registry, files []string, builtin bool) *Loader {
	return &Loader{
		registry: registry,
		files:    files,
		builtin:  builtin,
		logger:   logging.GetLogger("syntax.loader"),
	}
}

// Registry returns the registry this loader populates.
func (l *Loader) Registry() *Registry { return l.registry }

// Files returns the user rule files the loader reads.
func (l *Loader) Files() []string { return l.files }

// Load parses and compiles all definitions, then swaps them into the
// registry. On any error the registry keeps its previous contents, so a
// broken edit to a rule file cannot take down working rule sets on reload.
func (l *Loader) Load() error {
	var defs []Definition

	if l.builtin {
		builtin, err := ParseDefinitions("builtin", bytes.NewReader(defaultRules))
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "built-in rules are malformed")
		}
		defs = append(defs, builtin...)
	}

	for _, path := range l.files {
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "opening rule file %s", path)
		}
		fileDefs, err := ParseDefinitions(path, f)
		_ = f.Close()
		if err != nil {
			return err
		}
		l.logger.Debug().
			Str("file", path).
			Int("ruleSets", len(fileDefs)).
			Msg("parsed rule file")
		defs = append(defs, fileDefs...)
	}

	if err := l.registry.Reload(defs); err != nil {
		return err
	}
	l.logger.Info().
		Int("ruleSets", len(defs)).
		Int("files", len(l.files)).
		Msg("rule sets loaded")
	return nil
}
