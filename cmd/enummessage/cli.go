package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pablor21/enummessage"
	"github.com/pablor21/enummessage/config"
	"github.com/pablor21/enummessage/types"
	"github.com/pablor21/enummessage/watch"
)

// CLI is the root command line. Config files use the config.Config keys;
// configLoader maps them to these flags, so --annotation-prefix reads
// annotation_prefix and --watcher-debounce-ms reads watcher.debounce_ms.
type CLI struct {
	Config   string `help:"Configuration file (json, yaml or toml)" type:"path" env:"ENUMMESSAGE_CONFIG"`
	LogLevel string `help:"Log level: debug, info, warn, error, none" default:"info" env:"ENUMMESSAGE_LOG_LEVEL"`
	LogFile  string `help:"Also write logs to this file" type:"path" env:"ENUMMESSAGE_LOG_FILE"`

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Generate accessors for the enums of the given packages"`
	Inspect  InspectCmd  `cmd:"" help:"Print the lookup tables without generating code"`
	Cfg      ConfigCmd   `cmd:"" name:"config" help:"Manage configuration files"`
	Version  VersionCmd  `cmd:"" help:"Print the version"`
}

// SourceFlags select the packages and enums to process.
type SourceFlags struct {
	Patterns         []string `arg:"" optional:"" name:"patterns" help:"Package patterns or file globs, '!' excludes (default: .)"`
	Packages         []string `help:"Package patterns used when no positional pattern is given" env:"ENUMMESSAGE_PACKAGES"`
	Types            []string `help:"Process these types even without @enummessage" env:"ENUMMESSAGE_TYPES"`
	AnnotationPrefix string   `name:"annotation-prefix" aliases:"prefix" help:"Annotation prefix, e.g. em for @emMessage" env:"ENUMMESSAGE_ANNOTATION_PREFIX"`
	Dir              string   `short:"C" help:"Run as if started in this directory" type:"path"`
	Validator        struct {
		Action string `help:"What to do with annotation problems: disabled, warn, fail" enum:"disabled,warn,fail" default:"warn" env:"ENUMMESSAGE_VALIDATOR_ACTION"`
	} `embed:"" prefix:"validator-"`
}

func (s *SourceFlags) apply(cfg *config.Config) {
	switch {
	case len(s.Patterns) > 0:
		cfg.Packages = s.Patterns
	case len(s.Packages) > 0:
		cfg.Packages = s.Packages
	}
	if len(s.Types) > 0 {
		cfg.Types = s.Types
	}
	cfg.AnnotationPrefix = s.AnnotationPrefix
	cfg.Validator.Action = config.ValidationAction(s.Validator.Action)
}

func (s *SourceFlags) processContext(cfg *config.Config, log *slog.Logger) *types.ProcessContext {
	return &types.ProcessContext{Config: cfg, Logger: log, Dir: s.Dir}
}

// GenerateCmd generates the accessor files.
type GenerateCmd struct {
	SourceFlags `embed:""`

	Output          string `help:"Output file name, {package} and {type} are replaced" default:"{package}_enummessage.go" env:"ENUMMESSAGE_OUTPUT"`
	Strategy        string `help:"One file per package or per type" enum:"package,type" default:"package" env:"ENUMMESSAGE_STRATEGY"`
	AssertInterface bool   `name:"assert-interface" aliases:"assert" help:"Emit a compile-time EnumMessage assertion" env:"ENUMMESSAGE_ASSERT_INTERFACE"`
	DryRun          bool   `help:"Render without writing files"`
	Watch           bool   `help:"Regenerate when sources change"`

	Watcher struct {
		Enabled        bool     `help:"Same as --watch"`
		DebounceMs     int      `name:"debounce-ms" help:"Quiet period before regenerating" default:"300"`
		IgnorePatterns []string `name:"ignore-patterns" help:"Directory or file patterns to ignore" default:"vendor,.git,testdata"`
	} `embed:"" prefix:"watcher-"`
}

func (g *GenerateCmd) config() (*config.Config, error) {
	cfg := config.NewDefaultConfig()
	g.apply(cfg)
	cfg.Output = g.Output
	cfg.Strategy = config.GenStrategy(g.Strategy)
	cfg.AssertInterface = g.AssertInterface
	cfg.Watcher.Enabled = g.Watch || g.Watcher.Enabled
	cfg.Watcher.DebounceMs = g.Watcher.DebounceMs
	cfg.Watcher.IgnorePatterns = g.Watcher.IgnorePatterns
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (g *GenerateCmd) Run(log *slog.Logger) error {
	cfg, err := g.config()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return g.run(ctx, cfg, log)
}

func (g *GenerateCmd) run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	opts := enummessage.GenerateOptions{DryRun: g.DryRun}
	generate := func(ctx context.Context) error {
		files, err := enummessage.GenerateWithContext(ctx, g.processContext(cfg, log), opts)
		if err != nil {
			return err
		}
		log.Debug("Generation finished", "files", len(files))
		return nil
	}

	err := generate(ctx)
	if !cfg.Watcher.Enabled {
		return err
	}
	if err != nil {
		log.Error("Generation failed", "error", err)
	}

	root := g.Dir
	if root == "" {
		root = "."
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return err
	}
	w, err := watch.New([]string{root}, cfg.Watcher, log, func(ctx context.Context, _ []string) error {
		return generate(ctx)
	})
	if err != nil {
		return err
	}
	log.Info("Watching for changes", "root", root)
	return w.Run(ctx)
}

// InspectCmd prints the lookup table of every enum found.
type InspectCmd struct {
	SourceFlags `embed:""`

	Format string `help:"Output format" enum:"json,yaml" default:"json"`
}

func (c *InspectCmd) Run(log *slog.Logger, out io.Writer) error {
	cfg := config.NewDefaultConfig()
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	pctx := c.processContext(cfg, log)
	res, err := enummessage.ProcessWithContext(pctx)
	if err != nil {
		return err
	}
	data, err := marshalReport(buildReport(pctx, res), c.Format)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

// ConfigCmd groups config-related subcommands.
type ConfigCmd struct {
	Init ConfigInit `cmd:"" help:"Write a configuration file with the default values"`
}

// ConfigInit writes the default configuration.
type ConfigInit struct {
	Format string `help:"Output format" enum:"json,yaml,toml" default:"yaml"`
	Path   string `short:"o" help:"Destination file path (defaults to enummessage.<format> in the current directory)" type:"path"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

func (c *ConfigInit) Run(log *slog.Logger) error {
	format := config.NormalizeFormat(c.Format)
	if format == "" {
		return fmt.Errorf("unsupported format: %s", c.Format)
	}

	dest := c.Path
	if dest == "" {
		dest = config.BaseName + "." + format
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return fmt.Errorf("%s exists; use --force to overwrite", dest)
		}
	}
	if err := config.EnsureDir(dest); err != nil {
		return err
	}

	data, err := config.Marshal(config.NewDefaultConfig(), format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return err
	}
	log.Info("Wrote configuration", "path", dest)
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (VersionCmd) Run(out io.Writer) error {
	_, err := fmt.Fprintln(out, "enummessage", enummessage.GetVersion())
	return err
}
