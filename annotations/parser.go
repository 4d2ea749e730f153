package annotations

import (
	"go/ast"
	"strconv"
	"strings"
)

// ParseAnnotations extracts annotations from comment groups
func ParseAnnotations(comments []*ast.CommentGroup) []Annotation {
	var annotations []Annotation

	for _, cg := range comments {
		if cg == nil {
			continue
		}
		for _, c := range cg.List {
			text := strings.TrimSpace(c.Text)
			text = strings.TrimPrefix(text, "//")
			text = strings.TrimPrefix(text, "/*")
			text = strings.TrimSuffix(text, "*/")
			text = strings.TrimSpace(text)

			for _, line := range strings.Split(text, "\n") {
				line = strings.TrimSpace(line)
				line = strings.TrimPrefix(line, "*")
				line = strings.TrimSpace(line)

				if strings.HasPrefix(line, "@") {
					ann := parseAnnotation(line)
					if ann.Name != "" {
						ann.Pos = c.Slash
						annotations = append(annotations, ann)
					}
				}
			}
		}
	}

	return annotations
}

// parseAnnotation parses single annotation: @name or @name(key:value) or @name key="value"
func parseAnnotation(line string) Annotation {
	ann := Annotation{
		RawText: line,
		Params:  make(map[string]string),
	}

	line = strings.TrimPrefix(line, "@")
	nameEnd := strings.IndexAny(line, "( \t")
	rest := ""
	if nameEnd != -1 {
		rest = strings.TrimLeft(line[nameEnd:], " \t")
	}

	// Format 1: @name(key:value, key2:value2), also written @name (...)
	if strings.HasPrefix(rest, "(") {
		ann.Name = strings.TrimSpace(line[:nameEnd])
		paramsStr := rest[1:]
		if isInQuotes(paramsStr, len(paramsStr)) {
			ann.Problem = "unterminated quoted value"
		}
		if endIdx := lastUnquoted(paramsStr, ')'); endIdx != -1 {
			paramsStr = paramsStr[:endIdx]
		} else if ann.Problem == "" {
			ann.Problem = "missing closing parenthesis"
		}
		ann.Params, ann.Args = parseParams(splitUnquoted(paramsStr, ','))
		return ann
	}

	// Format 2: @name key="value" "positional" (space-separated)
	// or Format 3: @name (no parameters)
	parts := splitUnquoted(line, ' ', '\t')
	if len(parts) == 0 {
		return ann
	}

	ann.Name = strings.TrimSpace(parts[0])
	if isInQuotes(line, len(line)) {
		ann.Problem = "unterminated quoted value"
	}
	if len(parts) > 1 {
		ann.Params, ann.Args = parseParams(parts[1:])
	}

	return ann
}

// parseParams turns raw parameter parts into named params and positional args.
// A part without separator is a boolean flag when it is a bare identifier,
// otherwise a positional argument.
func parseParams(parts []string) (map[string]string, []string) {
	params := make(map[string]string)
	var args []string

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		// Support both : and = as separators
		sepIdx := -1
		for i, ch := range part {
			if (ch == ':' || ch == '=') && !isInQuotes(part, i) {
				sepIdx = i
				break
			}
		}

		if sepIdx == -1 {
			if !isQuoted(part) && isBooleanFlag(part) {
				params[part] = "true"
			} else {
				args = append(args, unquote(part))
			}
			continue
		}

		key := strings.TrimSpace(part[:sepIdx])
		value := strings.TrimSpace(part[sepIdx+1:])
		params[key] = unquote(value)
	}

	return params, args
}

// splitUnquoted splits s on any of seps, respecting quotes and brackets.
// Empty parts are dropped.
func splitUnquoted(s string, seps ...rune) []string {
	var parts []string
	var current strings.Builder
	inQuotes := false
	escaped := false
	quoteChar := rune(0)
	bracketDepth := 0

	isSep := func(ch rune) bool {
		for _, sep := range seps {
			if ch == sep {
				return true
			}
		}
		return false
	}

	for _, ch := range s {
		switch {
		case escaped:
			escaped = false
			current.WriteRune(ch)
		case ch == '\\' && inQuotes:
			escaped = true
			current.WriteRune(ch)
		case ch == '"' || ch == '\'' || ch == '`':
			if !inQuotes {
				inQuotes = true
				quoteChar = ch
			} else if ch == quoteChar {
				inQuotes = false
			}
			current.WriteRune(ch)
		case ch == '[' && !inQuotes:
			bracketDepth++
			current.WriteRune(ch)
		case ch == ']' && !inQuotes:
			bracketDepth--
			current.WriteRune(ch)
		case isSep(ch) && !inQuotes && bracketDepth == 0:
			if strings.TrimSpace(current.String()) != "" {
				parts = append(parts, current.String())
			}
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	if strings.TrimSpace(current.String()) != "" {
		parts = append(parts, current.String())
	}

	return parts
}

// lastUnquoted returns the index of the last target rune outside quotes, or -1.
func lastUnquoted(s string, target rune) int {
	idx := -1
	for i, ch := range s {
		if ch == target && !isInQuotes(s, i) {
			idx = i
		}
	}
	return idx
}

// isInQuotes checks if a character at given index is inside quotes
func isInQuotes(s string, idx int) bool {
	inQuotes := false
	escaped := false
	quoteChar := rune(0)

	for i, ch := range s {
		if i >= idx {
			break
		}
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inQuotes {
			escaped = true
			continue
		}
		if ch == '"' || ch == '\'' || ch == '`' {
			if !inQuotes {
				inQuotes = true
				quoteChar = ch
			} else if ch == quoteChar {
				inQuotes = false
			}
		}
	}

	return inQuotes
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}
	first, last := s[0], s[len(s)-1]
	return first == last && (first == '"' || first == '\'' || first == '`')
}

// unquote strips matching quotes. Double-quoted and backquoted values follow
// Go string literal rules so escapes like \" and \n work inside messages.
func unquote(s string) string {
	if !isQuoted(s) {
		return s
	}
	if s[0] != '\'' {
		if v, err := strconv.Unquote(s); err == nil {
			return v
		}
	}
	return s[1 : len(s)-1]
}

// isBooleanFlag checks if a string looks like a boolean flag (simple identifier)
func isBooleanFlag(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, ch := range s {
		isLetter := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
		isDigit := ch >= '0' && ch <= '9'
		isSpecial := ch == '_' || ch == '-'
		if !isLetter && !isDigit && !isSpecial {
			return false
		}
	}
	return true
}
