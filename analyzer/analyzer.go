// Package analyzer reports misuse of enummessage annotations without
// generating code, for use with go vet and editors.
package analyzer

import (
	"go/ast"
	"go/token"
	gotypes "go/types"

	"github.com/pablor21/enummessage/annotations"
	"github.com/pablor21/enummessage/parser"
	"github.com/pablor21/enummessage/types"
	"golang.org/x/tools/go/analysis"
)

const doc = `enummessage checks @enummessage annotations

It reports @enummessage on types that cannot be enums, repeated unique
annotations, message annotations without a value, and variant annotations on
declarations that belong to no enummessage enum.`

// Analyzer is the enummessage checker.
var Analyzer = &analysis.Analyzer{
	Name: "enummessage",
	Doc:  doc,
	Run:  run,
}

var prefix string

func init() {
	Analyzer.Flags.StringVar(&prefix, "prefix", "", "annotation prefix, e.g. em for @emMessage")
}

var (
	defs = annotations.Definitions()
	// annotations that may appear once per variant
	uniqueVariant = []string{annotations.Message, annotations.DetailedMessage, annotations.Disabled}
	// annotations whose value is the message text
	valued      = []string{annotations.Message, annotations.DetailedMessage, annotations.Serialize}
	variantAnns = []string{annotations.Message, annotations.DetailedMessage, annotations.Serialize, annotations.Disabled}
)

type checker struct {
	pass   *analysis.Pass
	consts map[*gotypes.Named]bool
	sealed []*gotypes.Interface
}

func run(pass *analysis.Pass) (any, error) {
	c := &checker{pass: pass, consts: make(map[*gotypes.Named]bool)}

	for _, file := range pass.Files {
		c.eachSpec(file, token.TYPE, c.collectEnum)
	}
	for _, file := range pass.Files {
		c.eachSpec(file, token.CONST, c.checkConst)
		c.eachSpec(file, token.TYPE, c.checkType)
	}
	return nil, nil
}

func (c *checker) eachSpec(file *ast.File, tok token.Token, fn func(ast.Spec, []annotations.Annotation)) {
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != tok {
			continue
		}
		for _, spec := range genDecl.Specs {
			var groups []*ast.CommentGroup
			switch s := spec.(type) {
			case *ast.TypeSpec:
				groups = annotations.SpecComments(genDecl, s.Doc, s.Comment)
			case *ast.ValueSpec:
				groups = annotations.SpecComments(genDecl, s.Doc, s.Comment)
			}
			fn(spec, annotations.ParseAnnotations(groups))
		}
	}
}

func names(name string) []string {
	return defs.Names(name)
}

func (c *checker) collectEnum(spec ast.Spec, anns []annotations.Annotation) {
	ts := spec.(*ast.TypeSpec)
	if len(annotations.Filter(anns, prefix, names(annotations.EnumMessage)...)) == 0 {
		return
	}

	obj, ok := c.pass.TypesInfo.Defs[ts.Name].(*gotypes.TypeName)
	if !ok || obj.IsAlias() {
		c.pass.Reportf(ts.Name.Pos(), "@enummessage on %s: enummessage only works on enums", ts.Name.Name)
		return
	}
	named, ok := obj.Type().(*gotypes.Named)
	if !ok {
		return
	}
	kind, _, err := parser.ClassifyEnum(named)
	if err != nil {
		c.pass.Reportf(ts.Name.Pos(), "@enummessage on %s: %v", ts.Name.Name, err)
		return
	}
	if kind == types.EnumKindSealed {
		c.sealed = append(c.sealed, named.Underlying().(*gotypes.Interface))
	} else {
		c.consts[named] = true
	}
}

func (c *checker) checkConst(spec ast.Spec, anns []annotations.Annotation) {
	vs := spec.(*ast.ValueSpec)
	for _, name := range vs.Names {
		if name.Name == "_" {
			continue
		}
		variant := false
		if obj, ok := c.pass.TypesInfo.Defs[name].(*gotypes.Const); ok {
			if named, ok := obj.Type().(*gotypes.Named); ok {
				variant = c.consts[named]
			}
		}
		c.checkVariant(name, anns, variant)
	}
}

func (c *checker) checkType(spec ast.Spec, anns []annotations.Annotation) {
	ts := spec.(*ast.TypeSpec)
	obj, ok := c.pass.TypesInfo.Defs[ts.Name].(*gotypes.TypeName)
	if !ok {
		return
	}
	named, ok := obj.Type().(*gotypes.Named)
	if !ok {
		return
	}
	if _, isIface := named.Underlying().(*gotypes.Interface); isIface {
		return
	}

	variant := false
	for _, iface := range c.sealed {
		if gotypes.Implements(named, iface) || gotypes.Implements(gotypes.NewPointer(named), iface) {
			variant = true
			break
		}
	}
	c.checkVariant(ts.Name, anns, variant)
}

func (c *checker) checkVariant(id *ast.Ident, anns []annotations.Annotation, variant bool) {
	var found []annotations.Annotation
	for _, name := range variantAnns {
		found = append(found, annotations.Filter(anns, prefix, names(name)...)...)
	}
	if len(found) == 0 {
		return
	}
	if !variant {
		c.pass.Reportf(id.Pos(), "@%s on %s, which is not a variant of an @enummessage enum", found[0].Name, id.Name)
		return
	}

	for _, name := range uniqueVariant {
		if matches := annotations.Filter(anns, prefix, names(name)...); len(matches) > 1 {
			c.pass.Reportf(id.Pos(), "@%s repeated %d times on %s", matches[0].Name, len(matches), id.Name)
		}
	}
	for _, name := range valued {
		for _, ann := range annotations.Filter(anns, prefix, names(name)...) {
			if _, ok := ann.Value(); !ok {
				c.pass.Reportf(id.Pos(), "@%s on %s requires a quoted value", ann.Name, id.Name)
			}
		}
	}
}
