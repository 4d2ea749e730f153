// Package generator turns extracted enums into message lookup tables and
// renders them as Go source.
package generator

import "github.com/pablor21/enummessage/types"

// Arm maps one variant to a message.
type Arm struct {
	Variant string `json:"variant" yaml:"variant"`
	Text    string `json:"text" yaml:"text"`
}

// SerializationArm maps one variant to its serializations.
type SerializationArm struct {
	Variant string   `json:"variant" yaml:"variant"`
	Values  []string `json:"values" yaml:"values"`
}

// Table is the lookup table of one enum, arms in declaration order.
type Table struct {
	Enum             string             `json:"enum" yaml:"enum"`
	Kind             types.EnumKind     `json:"kind" yaml:"kind"`
	Messages         []Arm              `json:"messages" yaml:"messages"`
	DetailedMessages []Arm              `json:"detailed_messages" yaml:"detailed_messages"`
	Serializations   []SerializationArm `json:"serializations" yaml:"serializations"`
	// MessageFallback is set when some variant has no message arm.
	MessageFallback bool `json:"message_fallback" yaml:"message_fallback"`
	// DetailedFallback is set when some variant has no detailed message arm.
	DetailedFallback bool `json:"detailed_fallback" yaml:"detailed_fallback"`
}

// BuildTable walks the variants once. Every variant gets a serialization
// arm, disabled ones included. A message without a detailed message
// doubles as the detailed message.
func BuildTable(enum *types.Enum) *Table {
	t := &Table{Enum: enum.Name, Kind: enum.Kind}

	for _, v := range enum.Variants {
		values := v.Serializations
		if len(values) == 0 {
			values = []string{v.Name}
		}
		t.Serializations = append(t.Serializations, SerializationArm{
			Variant: v.Name,
			Values:  append([]string(nil), values...),
		})

		if v.Disabled {
			continue
		}

		if v.Message != nil {
			t.Messages = append(t.Messages, Arm{Variant: v.Name, Text: *v.Message})
			if v.DetailedMessage == nil {
				t.DetailedMessages = append(t.DetailedMessages, Arm{Variant: v.Name, Text: *v.Message})
			}
		}
		if v.DetailedMessage != nil {
			t.DetailedMessages = append(t.DetailedMessages, Arm{Variant: v.Name, Text: *v.DetailedMessage})
		}
	}

	t.MessageFallback = len(t.Messages) < len(enum.Variants)
	t.DetailedFallback = len(t.DetailedMessages) < len(enum.Variants)
	return t
}
