package enummessage

import (
	"context"
	"fmt"
	"os"

	"github.com/pablor21/enummessage/config"
	"github.com/pablor21/enummessage/generator"
	"github.com/pablor21/enummessage/logger"
	"github.com/pablor21/enummessage/parser"
	"github.com/pablor21/enummessage/types"
)

// GenerateOptions tune a generation run.
type GenerateOptions struct {
	// DryRun renders the files without writing them.
	DryRun bool
}

// Process processes Go packages with default configuration
func Process() (*types.ProcessResult, error) {
	return ProcessWithConfig(config.NewDefaultConfig())
}

// ProcessWithConfig processes Go packages with the provided configuration
func ProcessWithConfig(cfg *config.Config) (*types.ProcessResult, error) {
	return ProcessWithContext(newProcessContext(cfg))
}

// ProcessWithContext processes Go packages using the provided context
func ProcessWithContext(ctx *types.ProcessContext) (*types.ProcessResult, error) {
	if ctx.Config == nil {
		ctx.Config = config.NewDefaultConfig()
	}
	if err := ctx.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return parser.New(ctx).Parse(ctx.Config.Packages...)
}

// Generate processes the configured packages and writes their accessor files.
func Generate(ctx context.Context, cfg *config.Config) ([]*generator.GeneratedFile, error) {
	return GenerateWithContext(ctx, newProcessContext(cfg), GenerateOptions{})
}

// GenerateWithContext is Generate with an explicit process context.
func GenerateWithContext(ctx context.Context, pctx *types.ProcessContext, opts GenerateOptions) ([]*generator.GeneratedFile, error) {
	res, err := ProcessWithContext(pctx)
	if err != nil {
		return nil, err
	}
	if len(res.Enums) == 0 {
		pctx.Logger.Warn("No enums found", "packages", pctx.Config.Packages)
		return nil, nil
	}

	g := generator.New(pctx)
	g.DryRun = opts.DryRun
	files, err := g.Generate(ctx, res)
	if err != nil {
		return nil, err
	}
	if err := g.Write(ctx, files); err != nil {
		return nil, err
	}
	return files, nil
}

func newProcessContext(cfg *config.Config) *types.ProcessContext {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &types.ProcessContext{
		Config: cfg,
		Logger: logger.New(cfg.Level(), os.Stderr),
	}
}
