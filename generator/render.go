package generator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"
	"github.com/pablor21/enummessage/types"
)

// RuntimePath is the import path of the package declaring the EnumMessage interface.
const RuntimePath = "github.com/pablor21/enummessage"

// Options tune the rendered code.
type Options struct {
	// AssertInterface adds `var _ enummessage.EnumMessage = (*T)(nil)` for const enums.
	AssertInterface bool
}

// Render appends the accessors of one enum to f.
func Render(f *jen.File, enum *types.Enum, table *Table, opts Options) error {
	switch enum.Kind {
	case types.EnumKindConst:
		renderConst(f, enum, table, opts)
	case types.EnumKindSealed:
		if err := renderSealed(f, enum, table); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%s: unknown enum kind %q", enum.Name, enum.Kind)
	}
	return nil
}

func renderConst(f *jen.File, enum *types.Enum, table *Table, opts Options) {
	recv := receiverName(enum)
	method := func(name string) *jen.Statement {
		return f.Func().Params(jen.Id(recv).Id(enum.Name)).Id(name).Params()
	}
	variant := func(name string) []jen.Code { return []jen.Code{jen.Id(name)} }

	if opts.AssertInterface {
		f.Var().Id("_").Qual(RuntimePath, "EnumMessage").Op("=").Parens(jen.Op("*").Id(enum.Name)).Call(jen.Nil())
		f.Line()
	}

	f.Commentf("Message returns the short message of %s, false when it has none.", enum.Name)
	method("Message").Parens(jen.List(jen.String(), jen.Bool())).Block(
		messageBody(jen.Switch(jen.Id(recv)), table.Messages, variant)...,
	)
	f.Line()

	f.Commentf("DetailedMessage returns the detailed message of %s, falling back to the short message.", enum.Name)
	method("DetailedMessage").Parens(jen.List(jen.String(), jen.Bool())).Block(
		messageBody(jen.Switch(jen.Id(recv)), table.DetailedMessages, variant)...,
	)
	f.Line()

	f.Commentf("Serializations returns the canonical names of %s.", enum.Name)
	method("Serializations").Index().String().Block(
		serializationBody(jen.Switch(jen.Id(recv)), table.Serializations, variant)...,
	)
	f.Line()
}

func renderSealed(f *jen.File, enum *types.Enum, table *Table) error {
	var missing []string
	cases := func(name string) []jen.Code {
		v := enum.Lookup(name)
		if v == nil {
			missing = append(missing, name)
			return []jen.Code{jen.Id(name)}
		}
		var out []jen.Code
		if v.ValueImpl {
			out = append(out, jen.Id(name))
		}
		if v.PointerImpl {
			out = append(out, jen.Op("*").Id(name))
		}
		return out
	}
	typeSwitch := func() *jen.Statement { return jen.Switch(jen.Id("v").Assert(jen.Type())) }
	fn := func(name string) *jen.Statement {
		return f.Func().Id(enum.Name + name).Params(jen.Id("v").Id(enum.Name))
	}

	f.Commentf("%sMessage returns the short message of v, false when it has none.", enum.Name)
	fn("Message").Parens(jen.List(jen.String(), jen.Bool())).Block(
		messageBody(typeSwitch(), table.Messages, cases)...,
	)
	f.Line()

	f.Commentf("%sDetailedMessage returns the detailed message of v, falling back to the short message.", enum.Name)
	fn("DetailedMessage").Parens(jen.List(jen.String(), jen.Bool())).Block(
		messageBody(typeSwitch(), table.DetailedMessages, cases)...,
	)
	f.Line()

	f.Commentf("%sSerializations returns the canonical names of v.", enum.Name)
	fn("Serializations").Index().String().Block(
		serializationBody(typeSwitch(), table.Serializations, cases)...,
	)
	f.Line()

	if len(missing) > 0 {
		return fmt.Errorf("%s: table references unknown variants %s", enum.Name, strings.Join(missing, ", "))
	}
	return nil
}

// messageBody emits the switch followed by the fallback return. The fallback
// is always present: a Go enum value may lie outside the declared variants.
func messageBody(sw *jen.Statement, arms []Arm, cases func(string) []jen.Code) []jen.Code {
	var body []jen.Code
	if len(arms) > 0 {
		var clauses []jen.Code
		for _, arm := range arms {
			clauses = append(clauses, jen.Case(cases(arm.Variant)...).Block(
				jen.Return(jen.Lit(arm.Text), jen.True()),
			))
		}
		body = append(body, sw.Block(clauses...))
	}
	return append(body, jen.Return(jen.Lit(""), jen.False()))
}

func serializationBody(sw *jen.Statement, arms []SerializationArm, cases func(string) []jen.Code) []jen.Code {
	var body []jen.Code
	if len(arms) > 0 {
		var clauses []jen.Code
		for _, arm := range arms {
			values := make([]jen.Code, len(arm.Values))
			for i, s := range arm.Values {
				values[i] = jen.Lit(s)
			}
			clauses = append(clauses, jen.Case(cases(arm.Variant)...).Block(
				jen.Return(jen.Index().String().Values(values...)),
			))
		}
		body = append(body, sw.Block(clauses...))
	}
	return append(body, jen.Return(jen.Nil()))
}

// receiverName returns the lower-cased initial of the type, or "e" when a
// variant already uses that name.
func receiverName(enum *types.Enum) string {
	r := []rune(enum.Name)
	name := string(unicode.ToLower(r[0]))
	for _, candidate := range []string{name, "e", "x"} {
		if enum.Lookup(candidate) == nil && candidate != enum.Name {
			return candidate
		}
	}
	return "recv"
}
