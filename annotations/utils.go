package annotations

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateAnnotation is returned when a unique annotation is repeated on one target.
	ErrDuplicateAnnotation = errors.New("duplicate annotation")
	// ErrMissingValue is returned when an annotation that needs a value has none.
	ErrMissingValue = errors.New("missing value")
	// ErrMalformedAnnotation is returned for annotations with a syntax problem.
	ErrMalformedAnnotation = errors.New("malformed annotation")
)

// MatchesAnnotation checks if an annotation name matches the expected pattern with the configured prefix
// For example, with prefix "@em" and suffix "message", it matches "@emmessage" or "@emMessage"
// The suffix alone always matches.
func MatchesAnnotation(annName string, prefix string, suffixes ...string) bool {
	annName = NormalizeAnnotationName(annName)
	prefix = NormalizeAnnotationName(strings.TrimPrefix(prefix, "@"))

	for _, suffix := range suffixes {
		suffix = NormalizeAnnotationName(suffix)

		if prefix != "" && annName == prefix+suffix {
			return true
		}
		if annName == suffix {
			return true
		}
	}

	return false
}

// NormalizeAnnotationName normalizes annotation names for comparison.
// Case, underscores and dashes are ignored, so detailed_message,
// detailedMessage and DetailedMessage are the same name.
func NormalizeAnnotationName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("_", "", "-", "").Replace(name)
}

// Filter returns the annotations matching any of names, in source order.
func Filter(anns []Annotation, prefix string, names ...string) []Annotation {
	var out []Annotation
	for _, a := range anns {
		if MatchesAnnotation(a.Name, prefix, names...) {
			out = append(out, a)
		}
	}
	return out
}

// Unique returns the single annotation matching names, nil when absent.
// More than one match is an error.
func Unique(anns []Annotation, prefix string, names ...string) (*Annotation, error) {
	matches := Filter(anns, prefix, names...)
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("@%s appears %d times: %w", names[0], len(matches), ErrDuplicateAnnotation)
	}
}

// UniqueValue returns the value of the single annotation matching names.
func UniqueValue(anns []Annotation, prefix string, names ...string) (*string, error) {
	ann, err := Unique(anns, prefix, names...)
	if err != nil || ann == nil {
		return nil, err
	}
	if ann.Problem != "" {
		return nil, fmt.Errorf("@%s: %w: %s", ann.Name, ErrMalformedAnnotation, ann.Problem)
	}
	v, ok := ann.Value()
	if !ok {
		return nil, fmt.Errorf("@%s: %w; quote the text, e.g. @%s(\"...\")", ann.Name, ErrMissingValue, ann.Name)
	}
	return &v, nil
}

// Extract returns every value of a repeatable annotation, in source order.
func Extract(anns []Annotation, prefix string, names ...string) []string {
	var out []string
	for _, a := range Filter(anns, prefix, names...) {
		out = append(out, a.Values()...)
	}
	return out
}

// IsDisabled reports whether the annotations carry an effective @disabled.
// "@disabled", "@disabled(true)" and "@disabled(value=yes)" disable,
// "@disabled(false)" does not.
func IsDisabled(anns []Annotation, prefix string) bool {
	for _, a := range Filter(anns, prefix, Disabled) {
		if flag(a) {
			return true
		}
	}
	return false
}

func flag(a Annotation) bool {
	if v, ok := a.Value(); ok {
		b, ok := parseBool(v)
		return !ok || b
	}
	// bare identifiers parse as flags, so (true) and (false) land in Params
	if _, ok := a.Params["false"]; ok {
		return false
	}
	return true
}
