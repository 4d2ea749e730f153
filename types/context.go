package types

import (
	"strings"

	"github.com/pablor21/enummessage/config"
	"github.com/pablor21/enummessage/logger"
)

type ProcessContext struct {
	Config     *config.Config
	Logger     logger.Logger
	ModulePath string // The module path of the project being scanned
	Dir        string // Directory packages are loaded from, the working directory when empty
}

// NewProcessContext returns a context with the default logger.
func NewProcessContext(cfg *config.Config) *ProcessContext {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}
	return &ProcessContext{
		Config: cfg,
		Logger: logger.New(cfg.Level(), nil),
	}
}

// QualifyType expands a module-relative type reference to the
// importpath.Name form: "./models.Side" names Side in the models package of
// the module, "./Side" names it in the module root. Other names and contexts
// without a module path are returned unchanged.
func (c *ProcessContext) QualifyType(name string) string {
	rel, ok := strings.CutPrefix(name, "./")
	if !ok || c.ModulePath == "" {
		return name
	}
	if !strings.Contains(rel, ".") {
		return c.ModulePath + "." + rel
	}
	return c.ModulePath + "/" + rel
}

// RelativeType is the inverse of QualifyType: the module-relative reference
// of an enum, or its qualified name when it lives outside the module.
func (c *ProcessContext) RelativeType(e *Enum) string {
	if c.ModulePath == "" {
		return e.Qualified()
	}
	if e.PkgPath == c.ModulePath {
		return "./" + e.Name
	}
	if rest, ok := strings.CutPrefix(e.PkgPath, c.ModulePath+"/"); ok {
		return "./" + rest + "." + e.Name
	}
	return e.Qualified()
}
