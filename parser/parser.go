// Package parser discovers annotated enums in Go packages.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pablor21/enummessage/annotations"
	"github.com/pablor21/enummessage/config"
	"github.com/pablor21/enummessage/logger"
	"github.com/pablor21/enummessage/types"
	"github.com/pablor21/enummessage/utils"
	"golang.org/x/tools/go/packages"
)

var (
	// ErrNotEnum is returned when a selected type cannot be an enum.
	ErrNotEnum = errors.New("enummessage only works on enums")
	// ErrGenericEnum is returned for enum types with type parameters.
	ErrGenericEnum = errors.New("generic enum types are not supported")
	// ErrTypeNotFound is returned when a type listed in the config is not declared in any loaded package.
	ErrTypeNotFound = errors.New("type not found")
)

// Parser scans Go packages and extracts enum information
type Parser struct {
	ctx       *types.ProcessContext
	defs      annotations.PluginDefinitions
	validator *Validator
}

func New(ctx *types.ProcessContext) *Parser {
	if ctx == nil {
		ctx = types.NewProcessContext(nil)
	}
	if ctx.Config == nil {
		ctx.Config = config.NewDefaultConfig()
	}
	if ctx.Logger == nil {
		ctx.Logger = logger.NewDefaultLogger()
	}
	if ctx.ModulePath == "" {
		ctx.ModulePath = utils.DetectModulePath(ctx.Dir)
	}
	return &Parser{
		ctx:       ctx,
		defs:      annotations.Definitions(),
		validator: NewValidator(ctx.Config.Validator.Action, ctx.Logger),
	}
}

// Validator returns the validator collecting annotation problems.
func (p *Parser) Validator() *Validator {
	return p.validator
}

func (p *Parser) prefix() string {
	return p.ctx.Config.AnnotationPrefix
}

func (p *Parser) names(name string) []string {
	return p.defs.Names(name)
}

// Load loads the packages matched by patterns. Errors located in files
// previously generated by enummessage are ignored: a stale generated file
// must not prevent its own regeneration.
func (p *Parser) Load(patterns ...string) ([]*packages.Package, error) {
	pkgs, err := utils.LoadPackages(p.ctx.Dir, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			if p.inGeneratedFiles(pkg, e) {
				p.ctx.Logger.Debug("Ignoring error in generated file", "package", pkg.PkgPath, "error", e.Msg)
				continue
			}
			errs = append(errs, fmt.Errorf("%s: %s", pkg.PkgPath, e))
		}
	})
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to load packages: %w", errors.Join(errs...))
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages matched %v", patterns)
	}
	return pkgs, nil
}

// Parse loads the packages and extracts their enums.
func (p *Parser) Parse(patterns ...string) (*types.ProcessResult, error) {
	pkgs, err := p.Load(patterns...)
	if err != nil {
		return nil, err
	}

	res := types.NewProcessResult()
	for _, pkg := range pkgs {
		enums, err := p.ExtractEnums(pkg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse package %s: %w", pkg.PkgPath, err)
		}
		res.Add(enums...)
	}

	for _, name := range p.ctx.Config.Types {
		if res.Find(p.ctx.QualifyType(name)) == nil {
			return nil, fmt.Errorf("%s: %w", name, ErrTypeNotFound)
		}
	}

	if err := p.validator.Err(); err != nil {
		return nil, err
	}

	p.ctx.Logger.Info("Parsed enums", "module", p.ctx.ModulePath, "packages", len(pkgs), "enums", len(res.Enums))
	return res, nil
}

// inGeneratedFiles reports whether every file an error points at was
// generated by enummessage.
func (p *Parser) inGeneratedFiles(pkg *packages.Package, e packages.Error) bool {
	files := errorFiles(e)
	if len(files) == 0 {
		return false
	}
	for _, f := range files {
		if !IsGeneratedFile(p.resolveFile(pkg, f)) {
			return false
		}
	}
	return true
}

// resolveFile maps a file named in an error to a path on disk. Compiler
// messages name files relative to the directory go list ran in.
func (p *Parser) resolveFile(pkg *packages.Package, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	rel := "/" + strings.TrimPrefix(filepath.ToSlash(file), "./")
	for _, gf := range pkg.CompiledGoFiles {
		if strings.HasSuffix(filepath.ToSlash(gf), rel) {
			return gf
		}
	}
	for _, gf := range pkg.GoFiles {
		if strings.HasSuffix(filepath.ToSlash(gf), rel) {
			return gf
		}
	}
	return filepath.Join(p.ctx.Dir, file)
}

// errorFiles lists the files a package error points at. Type errors carry
// a "file:line:col" position; go list reports compiler failures with
// position "-" and one "file:line:col: message" line per problem. Nil when
// some line names no file.
func errorFiles(e packages.Error) []string {
	if file := positionFile(e.Pos); file != "" {
		return []string{file}
	}

	var files []string
	for _, line := range strings.Split(e.Msg, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			// "# importpath" header, sometimes followed by the first problem
			parts := strings.SplitN(line, " ", 3)
			if len(parts) < 3 {
				continue
			}
			line = strings.TrimSpace(parts[2])
		}
		if line == "" || line == "too many errors" {
			continue
		}
		idx := strings.Index(line, ": ")
		if idx == -1 {
			return nil
		}
		file := positionFile(line[:idx])
		if file == "" || file == line[:idx] {
			return nil
		}
		files = append(files, file)
	}
	return files
}

// positionFile extracts the file name of a "file:line:col" position.
func positionFile(pos string) string {
	file := pos
	for range 2 {
		idx := strings.LastIndex(file, ":")
		if idx == -1 {
			break
		}
		if _, err := strconv.Atoi(file[idx+1:]); err != nil {
			break
		}
		file = file[:idx]
	}
	if file == "-" || file == "" {
		return ""
	}
	return file
}

// IsGeneratedFile reports whether the file starts with the enummessage header.
func IsGeneratedFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for i := 0; i < 5 && sc.Scan(); i++ {
		if strings.Contains(sc.Text(), types.GeneratedHeader) {
			return true
		}
	}
	return false
}
