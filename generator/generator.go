package generator

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dave/jennifer/jen"
	"github.com/pablor21/enummessage/config"
	"github.com/pablor21/enummessage/logger"
	"github.com/pablor21/enummessage/types"
	"github.com/pablor21/enummessage/utils"
	"golang.org/x/sync/errgroup"
)

// FileStatus is the outcome of writing a generated file.
type FileStatus string

const (
	StatusPending   FileStatus = "pending"
	StatusWritten   FileStatus = "written"
	StatusUnchanged FileStatus = "unchanged"
	StatusDryRun    FileStatus = "dry-run"
)

// GeneratedFile is one rendered output file.
type GeneratedFile struct {
	Path    string     `json:"path" yaml:"path"`
	Package string     `json:"package" yaml:"package"`
	PkgPath string     `json:"pkg_path" yaml:"pkg_path"`
	Enums   []string   `json:"enums" yaml:"enums"`
	Content []byte     `json:"-" yaml:"-"`
	Status  FileStatus `json:"status" yaml:"status"`
}

// Generator renders and writes the accessor files
type Generator struct {
	cfg *config.Config
	log logger.Logger
	// DryRun renders files without writing them.
	DryRun bool
}

func New(ctx *types.ProcessContext) *Generator {
	if ctx == nil {
		ctx = types.NewProcessContext(nil)
	}
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	log := ctx.Logger
	if log == nil {
		log = logger.NewDefaultLogger()
	}
	return &Generator{cfg: cfg, log: log}
}

// Generate renders one file per package, or one per enum with the type strategy.
func (g *Generator) Generate(ctx context.Context, res *types.ProcessResult) ([]*GeneratedFile, error) {
	var files []*GeneratedFile

	for _, pkg := range res.ByPackage() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch g.cfg.Strategy {
		case config.GenStrategyType:
			for _, e := range pkg.Enums {
				file, err := g.renderFile(pkg, []*types.Enum{e}, g.cfg.OutputName(pkg.Name, e.Name))
				if err != nil {
					return nil, err
				}
				files = append(files, file)
			}
		default:
			file, err := g.renderFile(pkg, pkg.Enums, g.cfg.OutputName(pkg.Name, ""))
			if err != nil {
				return nil, err
			}
			files = append(files, file)
		}
	}

	return files, nil
}

func (g *Generator) renderFile(pkg *types.PackageEnums, enums []*types.Enum, name string) (*GeneratedFile, error) {
	f := jen.NewFilePathName(pkg.PkgPath, pkg.Name)
	f.HeaderComment(types.GeneratedHeader)
	f.ImportName(RuntimePath, "enummessage")

	out := &GeneratedFile{
		Path:    filepath.Join(pkg.Dir, name),
		Package: pkg.Name,
		PkgPath: pkg.PkgPath,
		Status:  StatusPending,
	}
	opts := Options{AssertInterface: g.cfg.AssertInterface}
	for _, e := range enums {
		if err := Render(f, e, BuildTable(e), opts); err != nil {
			return nil, fmt.Errorf("render %s: %w", e.Qualified(), err)
		}
		out.Enums = append(out.Enums, e.Name)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("format %s: %w", out.Path, err)
	}
	out.Content = buf.Bytes()
	return out, nil
}

// Write writes files concurrently. Files whose content did not change are
// left untouched so their modification time stays stable.
func (g *Generator) Write(ctx context.Context, files []*GeneratedFile) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(8)

	for _, file := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if g.DryRun {
				file.Status = StatusDryRun
				g.log.Info("Would generate file", "path", file.Path, "enums", file.Enums)
				return nil
			}

			if existing, err := os.ReadFile(file.Path); err == nil && bytes.Equal(existing, file.Content) {
				file.Status = StatusUnchanged
				g.log.Debug("File unchanged", "path", file.Path)
				return nil
			}

			if err := utils.EnsureDir(filepath.Dir(file.Path)); err != nil {
				return fmt.Errorf("create directory for %s: %w", file.Path, err)
			}
			if err := os.WriteFile(file.Path, file.Content, 0644); err != nil {
				return fmt.Errorf("write file %s: %w", file.Path, err)
			}
			file.Status = StatusWritten
			g.log.Info("Generated file", "path", file.Path, "enums", file.Enums, "bytes", len(file.Content))
			return nil
		})
	}

	return eg.Wait()
}
