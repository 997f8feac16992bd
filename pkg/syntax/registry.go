package syntax

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/glint/pkg/errors"
	"github.com/arthur-debert/glint/pkg/logging"
	"github.com/arthur-debert/glint/pkg/token"
)

// Registry maps file paths to rule sets. Extension selectors resolve in
// O(1); other selectors fall back to glob matching on the base name. The
// registry is safe for concurrent use: rule sets are immutable, lookups take
// a read lock, and Reload builds the replacement tables before swapping them
// in, so in-flight scans keep the rule set they already resolved.
type Registry struct {
	mu     sync.RWMutex
	logger zerolog.Logger
	byExt  map[string]*RuleSet
	globs  []globEntry
}

type globEntry struct {
	matcher glob.Glob
	rs      *RuleSet
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		logger: logging.GetLogger("syntax.registry"),
		byExt:  make(map[string]*RuleSet),
	}
}

// Register compiles the given category patterns and binds them to the
// selector. Registering a selector that covers an already-bound extension
// replaces the earlier binding: last registration wins, which is what makes
// user rule files override the built-in defaults.
func (r *Registry) Register(selector string, specs map[token.Category]string) error {
	rs, err := CompileRuleSet(selector, specs)
	if err != nil {
		return err
	}
	return r.add(rs)
}

func (r *Registry) add(rs *RuleSet) error {
	exts, globPat, err := expandSelector(rs.selector)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range exts {
		if prev, ok := r.byExt[ext]; ok && prev.selector != rs.selector {
			r.logger.Warn().
				Str("extension", ext).
				Str("previous", prev.selector).
				Str("selector", rs.selector).
				Msg("selector overrides earlier registration")
		}
		r.byExt[ext] = rs
	}
	if globPat != nil {
		r.globs = append(r.globs, globEntry{matcher: globPat, rs: rs})
		r.logger.Debug().Str("selector", rs.selector).Msg("registered glob selector")
	}
	return nil
}

// Resolve returns the rule set for a path, matching by final extension first
// and falling back to registered glob selectors. A miss is non-fatal; the
// caller degrades to uniform text classification.
func (r *Registry) Resolve(path string) (*RuleSet, bool) {
	base := filepath.Base(path)
	ext := strings.TrimPrefix(filepath.Ext(base), ".")

	r.mu.RLock()
	defer r.mu.RUnlock()

	if ext != "" {
		if rs, ok := r.byExt[ext]; ok {
			return rs, true
		}
	}
	// Later registrations win, so scan from the newest entry.
	for i := len(r.globs) - 1; i >= 0; i-- {
		if r.globs[i].matcher.Match(base) {
			return r.globs[i].rs, true
		}
	}
	return nil, false
}

// Selectors returns the distinct selectors currently registered, sorted.
func (r *Registry) Selectors() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, rs := range r.byExt {
		seen[rs.selector] = struct{}{}
	}
	for _, g := range r.globs {
		seen[g.rs.selector] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// RuleSets returns one representative RuleSet per distinct selector, sorted
// by selector. Used for listing surfaces.
func (r *Registry) RuleSets() []*RuleSet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]*RuleSet)
	for _, rs := range r.byExt {
		seen[rs.selector] = rs
	}
	for _, g := range r.globs {
		seen[g.rs.selector] = g.rs
	}
	out := make([]*RuleSet, 0, len(seen))
	for _, rs := range seen {
		out = append(out, rs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].selector < out[j].selector })
	return out
}

// Reload replaces the registry contents with rule sets compiled from the
// given definitions, in order. Everything is compiled before the swap; on
// any error the registry is left untouched.
func (r *Registry) Reload(defs []Definition) error {
	type staged struct {
		rs      *RuleSet
		exts    []string
		globPat glob.Glob
	}
	stage := make([]staged, 0, len(defs))
	for _, def := range defs {
		rs, err := CompileRuleSet(def.Selector, def.Patterns)
		if err != nil {
			return err
		}
		exts, globPat, err := expandSelector(def.Selector)
		if err != nil {
			return err
		}
		stage = append(stage, staged{rs: rs, exts: exts, globPat: globPat})
	}

	byExt := make(map[string]*RuleSet)
	var globs []globEntry
	for _, s := range stage {
		for _, ext := range s.exts {
			byExt[ext] = s.rs
		}
		if s.globPat != nil {
			globs = append(globs, globEntry{matcher: s.globPat, rs: s.rs})
		}
	}

	r.mu.Lock()
	r.byExt = byExt
	r.globs = globs
	r.mu.Unlock()

	r.logger.Info().Int("ruleSets", len(stage)).Msg("registry reloaded")
	return nil
}

// expandSelector splits a selector into the extensions it covers, or a
// compiled glob when it is not a plain extension selector. Extension
// selectors match by final extension regardless of directory depth, so the
// leading "**/" is decorative.
func expandSelector(selector string) (exts []string, globPat glob.Glob, err error) {
	if selector == "" {
		return nil, nil, errors.New(errors.ErrSelectorInvalid, "empty selector")
	}
	trimmed := strings.TrimPrefix(selector, "**/")

	if rest, ok := strings.CutPrefix(trimmed, "*."); ok && !strings.ContainsAny(rest, "*?[].") {
		if list, ok := cutBraces(rest); ok {
			for _, ext := range list {
				if ext == "" {
					return nil, nil, errors.Newf(errors.ErrSelectorInvalid,
						"empty extension in selector %q", selector)
				}
				exts = append(exts, ext)
			}
			return exts, nil, nil
		}
		if !strings.ContainsAny(rest, "{},") {
			return []string{rest}, nil, nil
		}
		return nil, nil, errors.Newf(errors.ErrSelectorInvalid,
			"malformed extension list in selector %q", selector)
	}

	// Anything else (exact names like "**/Makefile", compound suffixes)
	// matches the path's base name as a glob.
	g, gerr := glob.Compile(trimmed)
	if gerr != nil {
		return nil, nil, errors.Wrapf(gerr, errors.ErrSelectorInvalid,
			"invalid selector %q", selector)
	}
	return nil, g, nil
}

// cutBraces parses "{a,b,c}" into its elements. Returns ok=false when the
// input is not a brace list at all.
func cutBraces(s string) ([]string, bool) {
	if !strings.HasPrefix(s, "{") {
		return nil, false
	}
	if !strings.HasSuffix(s, "}") {
		// Unterminated list; let the caller report it.
		return []string{""}, true
	}
	return strings.Split(s[1:len(s)-1], ","), true
}
