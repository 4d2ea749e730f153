// Package enummessage generates message accessors for Go enums from
// annotations written in their doc comments.
//
// A const enum is a named integer or string type whose typed constants are
// the variants:
//
//	// @enummessage
//	type Status int
//
//	const (
//		// @message("Waiting to start")
//		// @detailed_message("The job is queued and waits for a free worker")
//		Pending Status = iota
//		// @message("Running")
//		// @serialize("running")
//		// @serialize("in_progress")
//		Running
//	)
//
// Running `enummessage generate` (usually from a //go:generate directive)
// writes Message, DetailedMessage and Serializations methods for Status.
// A sealed enum is an interface whose implementations in the same package
// are the variants; it gets StatusMessage-style package functions instead.
package enummessage

// EnumMessage is implemented by the generated code of const enums.
type EnumMessage interface {
	// Message returns the short message of the variant, false when it has none.
	Message() (string, bool)
	// DetailedMessage returns the detailed message, or the short message when
	// no detailed message was given.
	DetailedMessage() (string, bool)
	// Serializations returns the canonical names of the variant: the
	// @serialize values, or the variant name. Nil for values outside the enum.
	Serializations() []string
}

// MessageOr returns the message of v, or def when v has none.
func MessageOr(v EnumMessage, def string) string {
	if msg, ok := v.Message(); ok {
		return msg
	}
	return def
}

// DetailedMessageOr returns the detailed message of v, or def when v has none.
func DetailedMessageOr(v EnumMessage, def string) string {
	if msg, ok := v.DetailedMessage(); ok {
		return msg
	}
	return def
}

// Serialization returns the first serialization of v, empty for values
// outside the enum.
func Serialization(v EnumMessage) string {
	if s := v.Serializations(); len(s) > 0 {
		return s[0]
	}
	return ""
}
