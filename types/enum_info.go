package types

import (
	"go/token"

	"github.com/pablor21/enummessage/annotations"
)

// EnumKind tells how the variants of an enum are declared.
type EnumKind string

const (
	// EnumKindConst is a named integer or string type whose typed constants are the variants.
	EnumKindConst EnumKind = "const"
	// EnumKindSealed is an interface whose implementations in the same package are the variants.
	EnumKindSealed EnumKind = "sealed"
)

// VariantShape is the data shape of a variant. It picks the pattern used to
// match the variant in generated code.
type VariantShape string

const (
	ShapeUnit   VariantShape = "unit"   // a constant
	ShapeTuple  VariantShape = "tuple"  // a named non-struct type (array, slice, basic...)
	ShapeStruct VariantShape = "struct" // a named struct type
)

// Enum is an enum type selected for generation.
type Enum struct {
	Name        string
	Kind        EnumKind
	Package     string // package name
	PkgPath     string // import path
	Dir         string // directory of the package
	SourceFile  string
	Underlying  string // underlying type, e.g. "int", "string", "interface"
	Comment     string
	Annotations []annotations.Annotation `json:"-" yaml:"-"`
	Variants    []*Variant
	Position    token.Position
}

// Variant represents a single enum value: a constant of a const enum or
// an implementation of a sealed enum.
type Variant struct {
	Name  string
	Shape VariantShape
	// Value is the constant value (Go syntax) of unit variants, empty otherwise.
	Value string
	// Message is the @message text, nil when absent.
	Message *string
	// DetailedMessage is the @detailed_message text, nil when absent.
	DetailedMessage *string
	// Serializations holds the @serialize values, or the variant name when none.
	Serializations []string
	// Disabled variants keep their serializations but get no message arms.
	Disabled bool
	// ValueImpl and PointerImpl tell which of T and *T implement a sealed enum.
	ValueImpl   bool
	PointerImpl bool
	// Aliases are later constants sharing this variant's value.
	Aliases     []string
	Comment     string
	Annotations []annotations.Annotation `json:"-" yaml:"-"`
	Position    token.Position
}

// Qualified returns pkgpath.Name.
func (e *Enum) Qualified() string {
	return e.PkgPath + "." + e.Name
}

// Lookup returns the variant with the given name, nil when absent.
func (e *Enum) Lookup(name string) *Variant {
	for _, v := range e.Variants {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// GeneratedHeader is the first line of every file written by enummessage.
const GeneratedHeader = "Code generated by enummessage. DO NOT EDIT."
