package javascript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ZacxDev/commands-site/config"
)

func TestCompileJSTarget(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "editor.js")
	require.NoError(t, os.WriteFile(source, []byte("const greeting = 'salut';\nconsole.log(greeting);\n"), 0o644))
	outDir := filepath.Join(dir, "static", "js")

	emitted, err := CompileJSTarget(map[string]config.JavascriptTarget{
		"admin": {Source: source, OutDir: outDir},
	})
	require.NoError(t, err)

	publicPath := emitted["admin"]
	name := filepath.Base(publicPath)
	require.True(t, strings.HasPrefix(name, "editor_"))
	require.True(t, strings.HasSuffix(name, ".js"))

	script, err := os.ReadFile(filepath.Join(outDir, name))
	require.NoError(t, err)
	require.Contains(t, string(script), "salut")
	require.True(t, strings.HasSuffix(string(script), "//# sourceMappingURL="+name+".map"))

	_, err = os.Stat(filepath.Join(outDir, name+".map"))
	require.NoError(t, err)
}

func TestCompileJSTargetReportsErrors(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "broken.js")
	require.NoError(t, os.WriteFile(source, []byte("const = ;"), 0o644))

	_, err := CompileJSTarget(map[string]config.JavascriptTarget{
		"admin": {Source: source, OutDir: filepath.Join(dir, "out")},
	})
	require.Error(t, err)
}
