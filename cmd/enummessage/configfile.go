package main

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
	"github.com/pablor21/enummessage/config"
	toml "github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Commands whose flags are read from config files. kong-yaml only resolves
// command flags under the command name.
var configCommands = []string{"generate", "inspect"}

// configurationOptions registers the config files, highest priority first.
// kong keeps the value of the last resolver that answers, so the files are
// registered in reverse.
func configurationOptions(paths []string) []kong.Option {
	opts := make([]kong.Option, 0, len(paths))
	for i := len(paths) - 1; i >= 0; i-- {
		format := config.NormalizeFormat(filepath.Ext(paths[i]))
		opts = append(opts, kong.Configuration(configLoader(format), paths[i]))
	}
	return opts
}

// configLoader reads a file written with config.Config keys (the layout
// `config init` produces) and hands it to the kong loader of its format,
// re-keyed by flag name.
func configLoader(format string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		cfg, err := config.Decode(data, format)
		if err != nil {
			return nil, err
		}
		flags := flagValues(cfg)

		switch format {
		case "yaml":
			doc := map[string]any{}
			if v, ok := flags["log-level"]; ok {
				doc["log-level"] = v
			}
			for _, cmd := range configCommands {
				doc[cmd] = flags
			}
			out, err := yaml.Marshal(doc)
			if err != nil {
				return nil, err
			}
			return kongyaml.Loader(bytes.NewReader(out))
		case "toml":
			tree, err := toml.TreeFromMap(flags)
			if err != nil {
				return nil, err
			}
			return kongtoml.Loader(strings.NewReader(tree.String()))
		default:
			out, err := json.Marshal(flattenKeys("", flags))
			if err != nil {
				return nil, err
			}
			return kong.JSON(bytes.NewReader(out))
		}
	}
}

// flagValues maps the fields set in cfg to flag names. Grouped flags
// (validator-*, watcher-*) are nested under their group.
func flagValues(cfg *config.Config) map[string]any {
	flags := map[string]any{}
	if len(cfg.Packages) > 0 {
		flags["packages"] = cfg.Packages
	}
	if len(cfg.Types) > 0 {
		flags["types"] = cfg.Types
	}
	if cfg.Output != "" {
		flags["output"] = cfg.Output
	}
	if cfg.Strategy != "" {
		flags["strategy"] = string(cfg.Strategy)
	}
	if cfg.AnnotationPrefix != "" {
		flags["annotation-prefix"] = cfg.AnnotationPrefix
	}
	if cfg.AssertInterface {
		flags["assert-interface"] = true
	}
	if cfg.LogLevel != nil {
		flags["log-level"] = string(*cfg.LogLevel)
	}
	if cfg.Validator.Action != "" {
		flags["validator"] = map[string]any{"action": string(cfg.Validator.Action)}
	}

	watcher := map[string]any{}
	if cfg.Watcher.Enabled {
		watcher["enabled"] = true
	}
	if cfg.Watcher.DebounceMs > 0 {
		watcher["debounce-ms"] = cfg.Watcher.DebounceMs
	}
	if len(cfg.Watcher.IgnorePatterns) > 0 {
		watcher["ignore-patterns"] = cfg.Watcher.IgnorePatterns
	}
	if len(watcher) > 0 {
		flags["watcher"] = watcher
	}
	return flags
}

// flattenKeys joins nested keys the way kong.JSON looks them up:
// watcher: {debounce-ms} becomes watcher_debounce_ms.
func flattenKeys(prefix string, m map[string]any) map[string]any {
	out := map[string]any{}
	for k, v := range m {
		key := strings.ReplaceAll(k, "-", "_")
		if prefix != "" {
			key = prefix + "_" + key
		}
		if child, ok := v.(map[string]any); ok {
			for ck, cv := range flattenKeys(key, child) {
				out[ck] = cv
			}
			continue
		}
		out[key] = v
	}
	return out
}
