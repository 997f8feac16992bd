package syntax_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/glint/pkg/errors"
	"github.com/arthur-debert/glint/pkg/syntax"
	"github.com/arthur-debert/glint/pkg/testutil"
	"github.com/arthur-debert/glint/pkg/token"
)

// The embedded defaults must parse and every pattern in them must compile.
// Loading them through a Loader exercises the same path the CLI uses.
func TestLoadBuiltinDefaults(t *testing.T) {
	reg := syntax.NewRegistry()
	loader := syntax.NewLoader(reg, nil, true)
	require.NoError(t, loader.Load())

	// A few well-known file types must resolve.
	for _, name := range []string{"main.go", "lib.c", "lib.h", "crate.rs", "script.sh", "README.md", "Makefile"} {
		_, ok := reg.Resolve(name)
		assert.True(t, ok, "no built-in rule set for %s", name)
	}

	rs, ok := reg.Resolve("main.go")
	require.True(t, ok)
	assert.NotNil(t, rs.Pattern(token.Keyword))
	assert.NotNil(t, rs.Pattern(token.Comment))
}

func TestLoadUserFileOverridesDefaults(t *testing.T) {
	path := testutil.TempFile(t, "go.rules",
		"syntax \"**/*.go\"\nsyntax keywords onlykeyword\n")

	reg := syntax.NewRegistry()
	loader := syntax.NewLoader(reg, []string{path}, true)
	require.NoError(t, loader.Load())

	rs, ok := reg.Resolve("main.go")
	require.True(t, ok)
	// The user file registered last, so it wins for *.go.
	assert.Equal(t, "**/*.go", rs.Selector())
	assert.Nil(t, rs.Pattern(token.Comment))

	n, _ := rs.Pattern(token.Keyword).Match("onlykeyword rest", 0)
	assert.Equal(t, len("onlykeyword"), n)

	// Other defaults are untouched.
	_, ok = reg.Resolve("lib.c")
	assert.True(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	reg := syntax.NewRegistry()
	loader := syntax.NewLoader(reg, []string{filepath.Join(t.TempDir(), "nope.rules")}, true)
	testutil.AssertErrorCode(t, loader.Load(), errors.ErrFileAccess)
}

func TestLoadBrokenFileKeepsRegistry(t *testing.T) {
	dir := t.TempDir()
	good := testutil.WriteFile(t, dir, "good.rules",
		"syntax \"**/*.x\"\nsyntax keywords foo\n")

	reg := syntax.NewRegistry()
	require.NoError(t, syntax.NewLoader(reg, []string{good}, false).Load())
	_, ok := reg.Resolve("a.x")
	require.True(t, ok)

	bad := testutil.WriteFile(t, dir, "bad.rules",
		"syntax \"**/*.y\"\nsyntax keywords {unclosed\n")

	err := syntax.NewLoader(reg, []string{good, bad}, false).Load()
	require.Error(t, err)

	// The failed load leaves the previous rule sets in place.
	_, ok = reg.Resolve("a.x")
	assert.True(t, ok)
	_, ok = reg.Resolve("a.y")
	assert.False(t, ok)
}
