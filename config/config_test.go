package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pablor21/enummessage/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := NewDefaultConfig()
	assert.Equal(t, []string{"."}, c.Packages)
	assert.Equal(t, GenStrategyPackage, c.Strategy)
	assert.Equal(t, "{package}_enummessage.go", c.Output)
	assert.Equal(t, logger.LogLevelInfo, c.Level())
	assert.Equal(t, ValidationActionWarn, c.Validator.Action)
	assert.Equal(t, 300, c.Watcher.DebounceMs)
	require.NoError(t, c.Validate())
}

func TestLoadConfigFileFormats(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"enummessage.yaml": "types: [Status]\nstrategy: type\noutput: \"{type}_msg.go\"\n",
		"enummessage.json": `{"types": ["Status"], "strategy": "type", "output": "{type}_msg.go"}`,
		"enummessage.toml": "types = [\"Status\"]\nstrategy = \"type\"\noutput = \"{type}_msg.go\"\n",
	}
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			c, err := LoadConfigFile(path)
			require.NoError(t, err)
			assert.Equal(t, []string{"Status"}, c.Types)
			assert.Equal(t, GenStrategyType, c.Strategy)
			assert.Equal(t, "{type}_msg.go", c.Output)
			// untouched fields keep their defaults
			assert.Equal(t, []string{"."}, c.Packages)
			require.NoError(t, c.Validate())
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	c := NewDefaultConfig()
	c.Types = []string{"Level"}
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			data, err := Marshal(c, format)
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "cfg."+format)
			require.NoError(t, os.WriteFile(path, data, 0o644))
			loaded, err := LoadConfigFile(path)
			require.NoError(t, err)
			assert.Equal(t, c.Types, loaded.Types)
			assert.Equal(t, c.Watcher, loaded.Watcher)
		})
	}

	_, err := Marshal(c, "ini")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown strategy", func(c *Config) { c.Strategy = "single" }},
		{"not a go file", func(c *Config) { c.Output = "out.txt" }},
		{"path output", func(c *Config) { c.Output = "gen/out.go" }},
		{"type strategy needs placeholder", func(c *Config) { c.Strategy = GenStrategyType }},
		{"validator action", func(c *Config) { c.Validator.Action = "explode" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewDefaultConfig()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestOutputName(t *testing.T) {
	c := NewDefaultConfig()
	assert.Equal(t, "httpstatus_enummessage.go", c.OutputName("httpstatus", "Code"))
	c.Output = "{type}_enummessage.go"
	assert.Equal(t, "code_enummessage.go", c.OutputName("httpstatus", "Code"))
}

func TestCandidatePaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	paths := CandidatePaths("custom.yml")
	require.Len(t, paths, 9)
	assert.Equal(t, "custom.yml", paths[0])
	assert.Equal(t, filepath.Join(home, BaseName, "enummessage.toml"), paths[8])

	assert.Len(t, CandidatePaths(""), 8)
}

func TestDecode(t *testing.T) {
	c, err := Decode([]byte("annotation_prefix = \"em\"\n[watcher]\ndebounce_ms = 50\n"), ".toml")
	require.NoError(t, err)
	assert.Equal(t, "em", c.AnnotationPrefix)
	assert.Equal(t, 50, c.Watcher.DebounceMs)
	assert.Empty(t, c.Packages, "absent fields stay zero")

	c, err = Decode([]byte("log_level: debug\n"), "yml")
	require.NoError(t, err)
	assert.Equal(t, logger.LogLevelDebug, c.Level())

	_, err = Decode([]byte("{"), "json")
	assert.Error(t, err)
}
