// Package annotations parses the @name(...) annotations written in Go doc
// comments and defines the vocabulary understood by enummessage.
package annotations

import "go/token"

// Annotation represents a parsed annotation from Go comments (@name(params))
type Annotation struct {
	Name    string            // e.g., "message", "serialize"
	Params  map[string]string // key-value parameters
	Args    []string          // positional parameters, in source order
	RawText string            // original text
	Pos     token.Pos         // position of the comment holding the annotation
	Problem string            // syntax error found while parsing, empty when well-formed
}

// AnnotationValidOn represents where an annotation can be used
type AnnotationValidOn string

const (
	AnnotationValidOnEnum      AnnotationValidOn = "enum"
	AnnotationValidOnEnumValue AnnotationValidOn = "enumValue"
	AnnotationValidOnAll       AnnotationValidOn = "all"
)

// AnnotationParam defines a parameter for an annotation specification
type AnnotationParam struct {
	Name         string   `yaml:"name" json:"name"`
	Types        []string `yaml:"types" json:"types"`
	Description  string   `yaml:"description" json:"description"`
	IsDefault    bool     `yaml:"isDefault" json:"isDefault"` // positional arguments bind to this param
	Aliases      []string `yaml:"aliases" json:"aliases"`
	DefaultValue string   `yaml:"defaultValue" json:"defaultValue"`
	IsRequired   bool     `yaml:"isRequired" json:"isRequired"`
}

// AnnotationSpec defines the specification for an annotation
type AnnotationSpec struct {
	// Annotation name, for example: "message", "serialize"
	Name string `yaml:"name" json:"name"`
	// Parameters for the annotation
	Params []AnnotationParam `yaml:"params" json:"params"`
	// Where the annotation is valid on, empty means all
	ValidOn     []AnnotationValidOn `yaml:"validOn" json:"validOn"`
	Aliases     []string            `yaml:"aliases" json:"aliases"`
	Description string              `yaml:"description" json:"description"`
	Multiple    bool                `yaml:"multiple" json:"multiple"` // can be used multiple times per target
}

// IsValidOn reports whether the annotation may be placed on the given target.
func (s *AnnotationSpec) IsValidOn(target AnnotationValidOn) bool {
	if len(s.ValidOn) == 0 {
		return true
	}
	for _, v := range s.ValidOn {
		if v == target || v == AnnotationValidOnAll {
			return true
		}
	}
	return false
}

// DefaultParam returns the parameter positional arguments bind to, if any.
func (s *AnnotationSpec) DefaultParam() *AnnotationParam {
	for i := range s.Params {
		if s.Params[i].IsDefault {
			return &s.Params[i]
		}
	}
	return nil
}
