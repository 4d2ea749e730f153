package enummessage

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"testing"

	"github.com/pablor21/enummessage/config"
	"github.com/pablor21/enummessage/generator"
	"github.com/pablor21/enummessage/logger"
	"github.com/pablor21/enummessage/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level int

func (l level) Message() (string, bool) {
	if l == 1 {
		return "one", true
	}
	return "", false
}

func (l level) DetailedMessage() (string, bool) { return l.Message() }

func (l level) Serializations() []string {
	if l == 1 {
		return []string{"one", "uno"}
	}
	return nil
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "one", MessageOr(level(1), "?"))
	assert.Equal(t, "?", MessageOr(level(2), "?"))
	assert.Equal(t, "one", DetailedMessageOr(level(1), "?"))
	assert.Equal(t, "one", Serialization(level(1)))
	assert.Empty(t, Serialization(level(2)))
}

func TestGenerateWithContext(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/app\n\ngo 1.22\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mode.go"), []byte(`package app

// @enummessage
type Mode int

const (
	Fast Mode = iota // @message("fast")
	Slow             // @message("slow")
)
`), 0o644))

	cfg := config.NewDefaultConfig()
	pctx := &types.ProcessContext{Config: cfg, Logger: logger.New(logger.LogLevelNone, nil), Dir: dir}

	files, err := GenerateWithContext(t.Context(), pctx, GenerateOptions{DryRun: true})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, generator.StatusDryRun, files[0].Status)
	assert.Contains(t, string(files[0].Content), "func (m Mode) Message() (string, bool)")

	files, err = GenerateWithContext(t.Context(), pctx, GenerateOptions{})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.FileExists(t, filepath.Join(dir, "app_enummessage.go"))
	assert.Equal(t, "example.com/app", pctx.ModulePath)
}

func TestProcessRejectsInvalidConfig(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.Strategy = "sideways"
	_, err := ProcessWithConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestGetVersion(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v9.9.9"
	assert.Equal(t, "v9.9.9", GetVersion())

	Version = ""
	assert.NotEmpty(t, GetVersion())
}

func TestVersionFromBuildInfo(t *testing.T) {
	tests := []struct {
		name string
		info debug.BuildInfo
		want string
	}{
		{
			name: "installed release",
			info: debug.BuildInfo{Main: debug.Module{Path: modulePath, Version: "v1.4.0"}},
			want: "v1.4.0",
		},
		{
			name: "checkout",
			info: debug.BuildInfo{
				Main: debug.Module{Path: modulePath, Version: develVersion},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "0123456789abcdef0123"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			want: "0123456789ab+dirty",
		},
		{
			name: "checkout without vcs",
			info: debug.BuildInfo{Main: debug.Module{Path: modulePath}},
			want: develVersion,
		},
		{
			name: "dependency",
			info: debug.BuildInfo{
				Main: debug.Module{Path: "example.com/app", Version: develVersion},
				Deps: []*debug.Module{
					{Path: "golang.org/x/tools", Version: "v0.40.0"},
					{Path: modulePath, Version: "v1.2.0"},
				},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffffffffffff"}},
			},
			want: "v1.2.0",
		},
		{
			name: "replaced dependency",
			info: debug.BuildInfo{
				Main: debug.Module{Path: "example.com/app"},
				Deps: []*debug.Module{{Path: modulePath, Version: "v1.2.0", Replace: &debug.Module{Path: "../enummessage"}}},
			},
			want: "v1.2.0",
		},
		{
			name: "not linked",
			info: debug.BuildInfo{Main: debug.Module{Path: "example.com/app"}},
			want: develVersion,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, versionFromBuildInfo(&tt.info))
		})
	}
}
