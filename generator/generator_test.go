package generator

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pablor21/enummessage/config"
	"github.com/pablor21/enummessage/parser"
	"github.com/pablor21/enummessage/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const moduleSource = `package jobs

// @enummessage
type Status int

const (
	Pending Status = iota // @message("Waiting")
	Done                  // @message("Finished")
)

// @enummessage
type Priority string

const (
	Low  Priority = "low"  // @detailed_message("Runs when idle")
	High Priority = "high"
)
`

func setupModule(t *testing.T) (string, *types.ProcessContext) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/jobs\n\ngo 1.22\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jobs.go"), []byte(moduleSource), 0o644))

	ctx := types.NewProcessContext(config.NewDefaultConfig())
	ctx.Dir = dir
	return dir, ctx
}

func TestGenerateAndWritePackageStrategy(t *testing.T) {
	dir, pctx := setupModule(t)

	res, err := parser.New(pctx).Parse(".")
	require.NoError(t, err)
	require.Len(t, res.Enums, 2)

	g := New(pctx)
	files, err := g.Generate(t.Context(), res)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "jobs_enummessage.go"), files[0].Path)
	assert.Equal(t, []string{"Status", "Priority"}, files[0].Enums)

	require.NoError(t, g.Write(t.Context(), files))
	assert.Equal(t, StatusWritten, files[0].Status)

	// the package still type-checks with the generated file in place
	res, err = parser.New(pctx).Parse(".")
	require.NoError(t, err)
	require.Len(t, res.Enums, 2)

	files, err = g.Generate(t.Context(), res)
	require.NoError(t, err)
	require.NoError(t, g.Write(t.Context(), files))
	assert.Equal(t, StatusUnchanged, files[0].Status)
}

func TestGenerateTypeStrategy(t *testing.T) {
	dir, pctx := setupModule(t)
	pctx.Config.Strategy = config.GenStrategyType
	pctx.Config.Output = "{type}_messages.go"

	res, err := parser.New(pctx).Parse(".")
	require.NoError(t, err)

	files, err := New(pctx).Generate(t.Context(), res)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "status_messages.go"), files[0].Path)
	assert.Equal(t, filepath.Join(dir, "priority_messages.go"), files[1].Path)
}

func TestWriteDryRun(t *testing.T) {
	dir, pctx := setupModule(t)

	res, err := parser.New(pctx).Parse(".")
	require.NoError(t, err)

	g := New(pctx)
	g.DryRun = true
	files, err := g.Generate(t.Context(), res)
	require.NoError(t, err)
	require.NoError(t, g.Write(t.Context(), files))

	assert.Equal(t, StatusDryRun, files[0].Status)
	assert.NoFileExists(t, filepath.Join(dir, "jobs_enummessage.go"))
}

func TestGenerateHonoursCancellation(t *testing.T) {
	_, pctx := setupModule(t)

	res, err := parser.New(pctx).Parse(".")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err = New(pctx).Generate(ctx, res)
	assert.ErrorIs(t, err, context.Canceled)
}
