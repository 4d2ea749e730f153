package parser

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	gotypes "go/types"
	"sort"

	"github.com/pablor21/enummessage/annotations"
	"github.com/pablor21/enummessage/types"
	"github.com/pablor21/enummessage/utils"
	"golang.org/x/tools/go/packages"
)

// enumState pairs an enum with its type-checker objects while variants are collected.
type enumState struct {
	enum  *types.Enum
	named *gotypes.Named
	iface *gotypes.Interface // sealed enums only
	seen  map[string]*types.Variant
}

// ExtractEnums extracts every enum of the package selected by annotation or
// by Config.Types, with variants in declaration order.
func (p *Parser) ExtractEnums(pkg *packages.Package) ([]*types.Enum, error) {
	if pkg.TypesInfo == nil {
		return nil, fmt.Errorf("package %s has no type information", pkg.PkgPath)
	}
	files := sortedFiles(pkg)

	states, err := p.extractEnumTypes(pkg, files)
	if err != nil {
		return nil, err
	}
	if len(states) == 0 {
		return nil, nil
	}

	if err := p.extractConstVariants(pkg, files, states); err != nil {
		return nil, err
	}
	if err := p.extractSealedVariants(pkg, files, states); err != nil {
		return nil, err
	}

	enums := make([]*types.Enum, 0, len(states))
	for _, st := range states {
		if len(st.enum.Variants) == 0 {
			p.ctx.Logger.Warn("Enum has no variants", "enum", st.enum.Qualified())
		}
		p.ctx.Logger.Debug("Extracted enum", "enum", st.enum.Qualified(), "kind", st.enum.Kind, "variants", len(st.enum.Variants))
		enums = append(enums, st.enum)
	}
	return enums, nil
}

func sortedFiles(pkg *packages.Package) []*ast.File {
	files := append([]*ast.File(nil), pkg.Syntax...)
	sort.SliceStable(files, func(i, j int) bool {
		return pkg.Fset.Position(files[i].Pos()).Filename < pkg.Fset.Position(files[j].Pos()).Filename
	})
	return files
}

func (p *Parser) isListed(pkg *packages.Package, name string) bool {
	for _, t := range p.ctx.Config.Types {
		t = p.ctx.QualifyType(t)
		if t == name || t == pkg.PkgPath+"."+name {
			return true
		}
	}
	return false
}

func (p *Parser) extractEnumTypes(pkg *packages.Package, files []*ast.File) ([]*enumState, error) {
	var states []*enumState

	for _, file := range files {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				groups := annotations.SpecComments(genDecl, typeSpec.Doc, typeSpec.Comment)
				anns := annotations.ParseAnnotations(groups)
				pos := pkg.Fset.Position(typeSpec.Pos())
				location := fmt.Sprintf("%s (%s)", typeSpec.Name.Name, pos)

				marked := len(annotations.Filter(anns, p.prefix(), p.names(annotations.EnumMessage)...)) > 0
				if !marked && !p.isListed(pkg, typeSpec.Name.Name) {
					continue
				}
				p.validator.ValidateTarget(anns, p.prefix(), annotations.AnnotationValidOnEnum, location)

				st, err := p.newEnumState(pkg, typeSpec, pos)
				if err != nil {
					return nil, fmt.Errorf("%s: %s: %w", pos, typeSpec.Name.Name, err)
				}
				st.enum.Comment = utils.ExtractCommentText(groups)
				st.enum.Annotations = anns
				states = append(states, st)
			}
		}
	}

	return states, nil
}

func (p *Parser) newEnumState(pkg *packages.Package, typeSpec *ast.TypeSpec, pos token.Position) (*enumState, error) {
	if typeSpec.TypeParams != nil && len(typeSpec.TypeParams.List) > 0 {
		return nil, ErrGenericEnum
	}
	if typeSpec.Assign.IsValid() {
		return nil, fmt.Errorf("type alias: %w", ErrNotEnum)
	}

	obj, ok := pkg.TypesInfo.Defs[typeSpec.Name].(*gotypes.TypeName)
	if !ok {
		return nil, fmt.Errorf("no type information: %w", ErrNotEnum)
	}
	named, ok := obj.Type().(*gotypes.Named)
	if !ok {
		return nil, ErrNotEnum
	}

	st := &enumState{
		named: named,
		seen:  make(map[string]*types.Variant),
		enum: &types.Enum{
			Name:       typeSpec.Name.Name,
			Package:    pkg.Name,
			PkgPath:    pkg.PkgPath,
			Dir:        utils.PackageDir(pkg),
			SourceFile: pos.Filename,
			Position:   pos,
		},
	}

	kind, underlying, err := ClassifyEnum(named)
	if err != nil {
		return nil, err
	}
	st.enum.Kind = kind
	st.enum.Underlying = underlying
	if kind == types.EnumKindSealed {
		st.iface = named.Underlying().(*gotypes.Interface)
	}
	return st, nil
}

func (p *Parser) extractConstVariants(pkg *packages.Package, files []*ast.File, states []*enumState) error {
	byType := make(map[*gotypes.Named]*enumState)
	for _, st := range states {
		if st.enum.Kind == types.EnumKindConst {
			byType[st.named] = st
		}
	}
	if len(byType) == 0 {
		return nil
	}

	for _, file := range files {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.CONST {
				continue
			}
			for _, spec := range genDecl.Specs {
				valueSpec, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}
				groups := annotations.SpecComments(genDecl, valueSpec.Doc, valueSpec.Comment)
				anns := annotations.ParseAnnotations(groups)

				for _, name := range valueSpec.Names {
					if name.Name == "_" {
						continue
					}
					c, ok := pkg.TypesInfo.Defs[name].(*gotypes.Const)
					if !ok {
						continue
					}
					named, ok := c.Type().(*gotypes.Named)
					if !ok {
						continue
					}
					st, ok := byType[named]
					if !ok {
						continue
					}

					pos := pkg.Fset.Position(name.Pos())
					value := c.Val().ExactString()
					if first, dup := st.seen[value]; dup {
						first.Aliases = append(first.Aliases, name.Name)
						p.ctx.Logger.Warn("Constant shares its value with an earlier variant, skipped",
							"enum", st.enum.Name, "constant", name.Name, "variant", first.Name, "value", value)
						if len(anns) > 0 {
							p.validator.Add(fmt.Sprintf("%s.%s (%s)", st.enum.Name, name.Name, pos),
								fmt.Sprintf("annotations are ignored: value %s already belongs to %s", value, first.Name), SeverityWarning)
						}
						continue
					}

					v, err := p.buildVariant(st.enum, name.Name, types.ShapeUnit, anns, groups, pos)
					if err != nil {
						return err
					}
					v.Value = value
					st.seen[value] = v
					st.enum.Variants = append(st.enum.Variants, v)
				}
			}
		}
	}
	return nil
}

func (p *Parser) extractSealedVariants(pkg *packages.Package, files []*ast.File, states []*enumState) error {
	var sealed []*enumState
	for _, st := range states {
		if st.enum.Kind == types.EnumKindSealed {
			sealed = append(sealed, st)
		}
	}
	if len(sealed) == 0 {
		return nil
	}

	for _, file := range files {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok || typeSpec.Assign.IsValid() || typeSpec.TypeParams != nil {
					continue
				}
				obj, ok := pkg.TypesInfo.Defs[typeSpec.Name].(*gotypes.TypeName)
				if !ok {
					continue
				}
				named, ok := obj.Type().(*gotypes.Named)
				if !ok {
					continue
				}
				if _, isIface := named.Underlying().(*gotypes.Interface); isIface {
					continue
				}

				shape := types.ShapeTuple
				if _, isStruct := named.Underlying().(*gotypes.Struct); isStruct {
					shape = types.ShapeStruct
				}

				for _, st := range sealed {
					valueImpl := gotypes.Implements(named, st.iface)
					pointerImpl := gotypes.Implements(gotypes.NewPointer(named), st.iface)
					if !valueImpl && !pointerImpl {
						continue
					}

					groups := annotations.SpecComments(genDecl, typeSpec.Doc, typeSpec.Comment)
					anns := annotations.ParseAnnotations(groups)
					pos := pkg.Fset.Position(typeSpec.Pos())
					v, err := p.buildVariant(st.enum, typeSpec.Name.Name, shape, anns, groups, pos)
					if err != nil {
						return err
					}
					v.ValueImpl = valueImpl
					v.PointerImpl = pointerImpl
					st.enum.Variants = append(st.enum.Variants, v)
				}
			}
		}
	}
	return nil
}

// buildVariant reads the message annotations of one variant.
func (p *Parser) buildVariant(enum *types.Enum, name string, shape types.VariantShape, anns []annotations.Annotation, groups []*ast.CommentGroup, pos token.Position) (*types.Variant, error) {
	location := fmt.Sprintf("%s.%s (%s)", enum.Name, name, pos)
	p.validator.ValidateTarget(anns, p.prefix(), annotations.AnnotationValidOnEnumValue, location)

	wrap := func(err error) error {
		return fmt.Errorf("%s: %s.%s: %w", pos, enum.Name, name, err)
	}

	message, err := p.uniqueValue(anns, annotations.Message)
	if err != nil {
		return nil, wrap(err)
	}
	detailed, err := p.uniqueValue(anns, annotations.DetailedMessage)
	if err != nil {
		return nil, wrap(err)
	}

	serializations := annotations.Extract(anns, p.prefix(), p.names(annotations.Serialize)...)
	if len(serializations) == 0 {
		serializations = []string{name}
	}

	v := &types.Variant{
		Name:            name,
		Shape:           shape,
		Message:         message,
		DetailedMessage: detailed,
		Serializations:  serializations,
		Disabled:        annotations.IsDisabled(anns, p.prefix()),
		Comment:         utils.ExtractCommentText(groups),
		Annotations:     anns,
		Position:        pos,
	}
	if v.Disabled && message == nil && detailed == nil {
		p.validator.Add(location, "@disabled has no effect without @message or @detailed_message", SeverityWarning)
	}
	return v, nil
}

// uniqueValue reads a message annotation. One without a usable value counts
// as absent: the validator has already recorded it, and its action decides
// whether parsing fails.
func (p *Parser) uniqueValue(anns []annotations.Annotation, name string) (*string, error) {
	v, err := annotations.UniqueValue(anns, p.prefix(), p.names(name)...)
	if errors.Is(err, annotations.ErrMissingValue) || errors.Is(err, annotations.ErrMalformedAnnotation) {
		return nil, nil
	}
	return v, err
}

// ClassifyEnum tells which kind of enum a named type can be: a const enum
// over an integer or string type, or a sealed enum over an interface with
// at least one method. Anything else is ErrNotEnum.
func ClassifyEnum(named *gotypes.Named) (types.EnumKind, string, error) {
	if named.TypeParams().Len() > 0 {
		return "", "", ErrGenericEnum
	}
	switch u := named.Underlying().(type) {
	case *gotypes.Basic:
		if u.Info()&(gotypes.IsInteger|gotypes.IsString) == 0 {
			return "", "", fmt.Errorf("underlying type %s: %w", u, ErrNotEnum)
		}
		return types.EnumKindConst, u.Name(), nil
	case *gotypes.Interface:
		if u.NumMethods() == 0 {
			return "", "", fmt.Errorf("sealed enum interface declares no methods: %w", ErrNotEnum)
		}
		return types.EnumKindSealed, "interface", nil
	default:
		return "", "", fmt.Errorf("underlying type %s: %w", u, ErrNotEnum)
	}
}
