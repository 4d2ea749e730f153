package parser

import (
	"errors"
	"fmt"

	"github.com/pablor21/enummessage/annotations"
	"github.com/pablor21/enummessage/config"
	"github.com/pablor21/enummessage/logger"
)

// Severity of a validation problem
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationError represents a validation error
type ValidationError struct {
	Location string   // Where the error occurred (e.g., "Status.Active (status.go:12:2)")
	Message  string   // Error message
	Severity Severity // error or warning
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Message)
}

// Validator validates annotation placement and parameters
type Validator struct {
	action config.ValidationAction
	defs   annotations.PluginDefinitions
	log    logger.Logger
	errors []ValidationError
	logged int
}

// NewValidator creates a new validator. An empty action means warn.
func NewValidator(action config.ValidationAction, log logger.Logger) *Validator {
	if action == "" {
		action = config.ValidationActionWarn
	}
	if log == nil {
		log = logger.NewDefaultLogger()
	}
	return &Validator{
		action: action,
		defs:   annotations.Definitions(),
		log:    log,
	}
}

// ValidateTarget checks the enummessage annotations found on one target.
// Annotations outside the enummessage vocabulary are left alone.
func (v *Validator) ValidateTarget(anns []annotations.Annotation, prefix string, target annotations.AnnotationValidOn, location string) {
	if v.action == config.ValidationActionDisabled {
		return
	}

	for _, ann := range anns {
		spec := v.defs.Lookup(ann, prefix)
		if spec == nil {
			continue
		}
		if !spec.IsValidOn(target) {
			v.Add(location, fmt.Sprintf("@%s is not valid on %s", ann.Name, describeTarget(target)), SeverityError)
			continue
		}
		if ann.Problem != "" {
			v.Add(location, fmt.Sprintf("@%s: %s in %q", ann.Name, ann.Problem, ann.RawText), SeverityError)
			continue
		}
		v.validateParams(ann, spec, location)
	}
}

func (v *Validator) validateParams(ann annotations.Annotation, spec *annotations.AnnotationSpec, location string) {
	param := spec.DefaultParam()
	if param == nil {
		return
	}

	value, ok := ann.Value()
	if !ok {
		if param.IsRequired {
			msg := fmt.Sprintf("@%s requires a value", ann.Name)
			if len(ann.Params) > 0 {
				msg += "; quote the text, e.g. @" + ann.Name + `("...")`
			}
			v.Add(location, msg, SeverityError)
		}
		return
	}

	for _, t := range param.Types {
		if t == "bool" {
			if _, err := parseBoolValue(value); err != nil {
				v.Add(location, fmt.Sprintf("@%s expects a boolean, got %q", ann.Name, value), SeverityWarning)
			}
		}
	}
	if param.IsRequired && value == "" {
		v.Add(location, fmt.Sprintf("@%s has an empty value", ann.Name), SeverityWarning)
	}
}

func describeTarget(target annotations.AnnotationValidOn) string {
	switch target {
	case annotations.AnnotationValidOnEnum:
		return "an enum type"
	case annotations.AnnotationValidOnEnumValue:
		return "an enum variant"
	default:
		return string(target)
	}
}

func parseBoolValue(s string) (bool, error) {
	switch s {
	case "true", "1", "yes", "TRUE", "True", "YES", "Yes":
		return true, nil
	case "false", "0", "no", "FALSE", "False", "NO", "No":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

// Add records a validation problem. Nothing is recorded when validation is disabled.
func (v *Validator) Add(location, message string, severity Severity) {
	if v.action == config.ValidationActionDisabled {
		return
	}
	v.errors = append(v.errors, ValidationError{
		Location: location,
		Message:  message,
		Severity: severity,
	})
}

// Errors returns all validation problems
func (v *Validator) Errors() []ValidationError {
	return v.errors
}

// HasErrors returns true if there are any errors
func (v *Validator) HasErrors() bool {
	for _, err := range v.errors {
		if err.Severity == SeverityError {
			return true
		}
	}
	return false
}

// HasWarnings returns true if there are any warnings
func (v *Validator) HasWarnings() bool {
	for _, err := range v.errors {
		if err.Severity == SeverityWarning {
			return true
		}
	}
	return false
}

// Err logs the problems recorded since the last call and returns them
// joined when the action is fail and at least one is an error.
func (v *Validator) Err() error {
	for _, e := range v.errors[v.logged:] {
		if e.Severity == SeverityError && v.action == config.ValidationActionFail {
			v.log.Error("Invalid annotation", "location", e.Location, "problem", e.Message)
		} else {
			v.log.Warn("Invalid annotation", "location", e.Location, "problem", e.Message, "severity", e.Severity)
		}
	}
	v.logged = len(v.errors)

	if v.action != config.ValidationActionFail || !v.HasErrors() {
		return nil
	}
	var errs []error
	for _, e := range v.errors {
		if e.Severity == SeverityError {
			errs = append(errs, e)
		}
	}
	return fmt.Errorf("annotation validation failed: %w", errors.Join(errs...))
}
