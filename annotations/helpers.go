package annotations

import (
	"strconv"
	"strings"
)

// Value returns the annotation's primary value: the first positional argument,
// or the "value" parameter.
func (a *Annotation) Value() (string, bool) {
	if len(a.Args) > 0 {
		return a.Args[0], true
	}
	return a.GetParamValue("value")
}

// Values returns every positional argument followed by the "value" parameter, if set.
func (a *Annotation) Values() []string {
	out := append([]string(nil), a.Args...)
	if v, ok := a.Params["value"]; ok {
		out = append(out, v)
	}
	return out
}

// GetParamValue returns the value of an annotation parameter by name.
// It first checks for the exact parameter name, then checks aliases.
// Returns the value and true if found, empty string and false otherwise.
func (a *Annotation) GetParamValue(name string, aliases ...string) (string, bool) {
	if val, ok := a.Params[name]; ok {
		return val, true
	}

	for _, alias := range aliases {
		if val, ok := a.Params[alias]; ok {
			return val, true
		}
	}

	return "", false
}

// GetParamValueOrDefault returns the value of an annotation parameter by name,
// or returns the default value if not found.
func (a *Annotation) GetParamValueOrDefault(name string, defaultValue string, aliases ...string) string {
	if val, ok := a.GetParamValue(name, aliases...); ok {
		return val
	}
	return defaultValue
}

// HasParam checks if an annotation has a parameter with the given name or aliases.
func (a *Annotation) HasParam(name string, aliases ...string) bool {
	_, ok := a.GetParamValue(name, aliases...)
	return ok
}

// GetParamBool returns a boolean parameter value. Accepted true values (case-insensitive):
// "true", "1", "yes", "on". Returns (value, true) if the param exists and was parsed, (false, false) if absent or unparsable.
func (a *Annotation) GetParamBool(name string, aliases ...string) (bool, bool) {
	if raw, ok := a.GetParamValue(name, aliases...); ok {
		return parseBool(raw)
	}
	return false, false
}

// GetParamInt returns an int parameter value. Returns (value, true) if present and parsed, (0,false) otherwise.
func (a *Annotation) GetParamInt(name string, aliases ...string) (int, bool) {
	if raw, ok := a.GetParamValue(name, aliases...); ok {
		iv, err := strconv.Atoi(strings.TrimSpace(raw))
		if err == nil {
			return iv, true
		}
	}
	return 0, false
}

// GetParamFloat returns a float64 parameter value. Returns (value,true) if parsed, (0,false) otherwise.
func (a *Annotation) GetParamFloat(name string, aliases ...string) (float64, bool) {
	if raw, ok := a.GetParamValue(name, aliases...); ok {
		fv, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err == nil {
			return fv, true
		}
	}
	return 0, false
}

// GetParamStringList returns a list of strings from a comma or semicolon
// separated parameter value (e.g., "a,b,c" or "[a, b]").
func (a *Annotation) GetParamStringList(name string, aliases ...string) ([]string, bool) {
	raw, ok := a.GetParamValue(name, aliases...)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, false
	}
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")

	var list []string
	for _, p := range splitUnquoted(raw, ',', ';') {
		p = unquote(strings.TrimSpace(p))
		if p != "" {
			list = append(list, p)
		}
	}
	return list, len(list) > 0
}

func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off":
		return false, true
	default:
		return false, false
	}
}
