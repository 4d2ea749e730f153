package utils

import (
	"go/ast"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("package x\n"), 0o644))
}

func TestExpandGlobs(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a", "a.go"))
	touch(t, filepath.Join(root, "a", "b", "b.go"))
	touch(t, filepath.Join(root, "c", "c.go"))
	touch(t, filepath.Join(root, ".hidden", "h.go"))

	files, err := ExpandGlobs(filepath.Join(root, "**", "*.go"), "!"+filepath.Join(root, "c"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a", "a.go"),
		filepath.Join(root, "a", "b", "b.go"),
	}, files)

	assert.Equal(t, []string{
		filepath.Join(root, "a"),
		filepath.Join(root, "a", "b"),
	}, UniqueDirs(files))
}

func TestAllPatternsAreImportPaths(t *testing.T) {
	assert.True(t, allPatternsAreImportPaths([]string{"."}))
	assert.True(t, allPatternsAreImportPaths([]string{"./...", "!example.com/m/internal/..."}))
	assert.True(t, allPatternsAreImportPaths([]string{"example.com/m/status"}))
	assert.False(t, allPatternsAreImportPaths([]string{"./models/*.go"}))
	assert.False(t, allPatternsAreImportPaths([]string{"./models"}))
}

func TestMatchesImportPath(t *testing.T) {
	patterns := []string{"example.com/m/internal/...", "example.com/m/gen"}
	assert.True(t, matchesImportPath("example.com/m/internal", patterns))
	assert.True(t, matchesImportPath("example.com/m/internal/x", patterns))
	assert.True(t, matchesImportPath("example.com/m/gen", patterns))
	assert.False(t, matchesImportPath("example.com/m/generated", patterns))
}

func TestExtractCommentText(t *testing.T) {
	cg := &ast.CommentGroup{List: []*ast.Comment{
		{Text: "// StatusOK means success."},
		{Text: `// @message("OK")`},
		{Text: "// Second line."},
	}}
	assert.Equal(t, "StatusOK means success.\nSecond line.", ExtractCommentText([]*ast.CommentGroup{cg, nil}))
}

func TestPtr(t *testing.T) {
	p := Ptr("x")
	assert.Equal(t, "x", *p)
	*p = "y"
	assert.Equal(t, "y", *Ptr(*p))
}

func TestDetectModulePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/detect // comment\n\ngo 1.22\n"), 0o644))
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	assert.Equal(t, "example.com/detect", DetectModulePath(sub))
	assert.Equal(t, "example.com/detect", DetectModulePath(dir))

	t.Chdir(sub)
	assert.Equal(t, "example.com/detect", DetectModulePath(""))
}
