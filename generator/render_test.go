package generator

import (
	"bytes"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	gotypes "go/types"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/pablor21/enummessage/types"
	"github.com/pablor21/enummessage/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statusDecl = `package status

type Status int

const (
	Pending Status = iota
	Running
	Unknown
)
`

var statusEnum = &types.Enum{
	Name:    "Status",
	Kind:    types.EnumKindConst,
	Package: "status",
	PkgPath: "example.com/status",
	Variants: []*types.Variant{
		{Name: "Pending", Shape: types.ShapeUnit, Message: utils.Ptr("Waiting"), Serializations: []string{"Pending"}},
		{Name: "Running", Shape: types.ShapeUnit, Message: utils.Ptr(`Say "go"`), Serializations: []string{"running", "in_progress"}},
		{Name: "Unknown", Shape: types.ShapeUnit, Serializations: []string{"Unknown"}},
	},
}

const shapeDecl = `package shape

type Shape interface{ isShape() }

type Circle struct{ Radius float64 }

func (*Circle) isShape() {}

type Square float64

func (Square) isShape() {}
`

var shapeEnum = &types.Enum{
	Name:    "Shape",
	Kind:    types.EnumKindSealed,
	Package: "shape",
	PkgPath: "example.com/shape",
	Variants: []*types.Variant{
		{Name: "Circle", Shape: types.ShapeStruct, Message: utils.Ptr("A circle"), Serializations: []string{"circle"}, PointerImpl: true},
		{Name: "Square", Shape: types.ShapeTuple, DetailedMessage: utils.Ptr("Four equal sides"), Serializations: []string{"Square"}, ValueImpl: true, PointerImpl: true},
	},
}

func render(t *testing.T, enum *types.Enum, opts Options) string {
	t.Helper()
	f := jen.NewFilePathName(enum.PkgPath, enum.Package)
	f.HeaderComment(types.GeneratedHeader)
	require.NoError(t, Render(f, enum, BuildTable(enum), opts))
	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf))
	return buf.String()
}

// typeCheck compiles the declarations together with the generated code.
func typeCheck(t *testing.T, path string, sources ...string) {
	t.Helper()
	fset := token.NewFileSet()
	var files []*ast.File
	for _, src := range sources {
		file, err := parser.ParseFile(fset, "", src, parser.ParseComments)
		require.NoError(t, err, src)
		files = append(files, file)
	}
	conf := gotypes.Config{Importer: importer.Default()}
	_, err := conf.Check(path, fset, files, nil)
	require.NoError(t, err)
}

func TestRenderConstEnum(t *testing.T) {
	out := render(t, statusEnum, Options{})

	assert.Contains(t, out, "// "+types.GeneratedHeader)
	assert.Contains(t, out, "func (s Status) Message() (string, bool) {")
	assert.Contains(t, out, "case Pending:\n\t\treturn \"Waiting\", true")
	assert.Contains(t, out, `return "Say \"go\"", true`)
	assert.Contains(t, out, "func (s Status) DetailedMessage() (string, bool) {")
	assert.Contains(t, out, "func (s Status) Serializations() []string {")
	assert.Contains(t, out, `return []string{"running", "in_progress"}`)
	assert.Contains(t, out, "return nil")
	assert.NotContains(t, out, "case Unknown:\n\t\treturn \"")
	assert.NotContains(t, out, "var _ enummessage.EnumMessage")

	typeCheck(t, statusEnum.PkgPath, statusDecl, out)
}

func TestRenderAssertInterface(t *testing.T) {
	out := render(t, statusEnum, Options{AssertInterface: true})
	assert.Contains(t, out, `"github.com/pablor21/enummessage"`)
	assert.Contains(t, out, "var _ enummessage.EnumMessage = (*Status)(nil)")
}

func TestRenderSealedEnum(t *testing.T) {
	out := render(t, shapeEnum, Options{AssertInterface: true})

	assert.Contains(t, out, "func ShapeMessage(v Shape) (string, bool) {")
	assert.Contains(t, out, "switch v.(type) {")
	assert.Contains(t, out, "case *Circle:\n\t\treturn \"A circle\", true")
	assert.Contains(t, out, "case Square, *Square:\n\t\treturn \"Four equal sides\", true")
	assert.Contains(t, out, "func ShapeSerializations(v Shape) []string {")
	assert.NotContains(t, out, "enummessage.EnumMessage")

	typeCheck(t, shapeEnum.PkgPath, shapeDecl, out)
}

func TestRenderEmptyEnum(t *testing.T) {
	enum := &types.Enum{Name: "Empty", Kind: types.EnumKindConst, Package: "empty", PkgPath: "example.com/empty"}
	out := render(t, enum, Options{})
	assert.NotContains(t, out, "switch")
	typeCheck(t, enum.PkgPath, "package empty\n\ntype Empty int\n", out)
}

func TestReceiverName(t *testing.T) {
	assert.Equal(t, "s", receiverName(&types.Enum{Name: "Status"}))
	assert.Equal(t, "e", receiverName(&types.Enum{Name: "Status", Variants: []*types.Variant{{Name: "s"}}}))
}
