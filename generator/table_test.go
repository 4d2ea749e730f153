package generator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pablor21/enummessage/types"
	"github.com/pablor21/enummessage/utils"
)

func TestBuildTable(t *testing.T) {
	tests := []struct {
		name     string
		variants []*types.Variant
		want     *Table
	}{
		{
			name: "mixed",
			variants: []*types.Variant{
				{Name: "Pending", Message: utils.Ptr("Waiting"), DetailedMessage: utils.Ptr("Waiting for a worker"), Serializations: []string{"Pending"}},
				{Name: "Running", Message: utils.Ptr("Running"), Serializations: []string{"running", "in_progress"}},
				{Name: "Hidden", Message: utils.Ptr("Hidden"), Disabled: true, Serializations: []string{"Hidden"}},
				{Name: "Unknown", Serializations: []string{"Unknown"}},
				{Name: "OnlyDetailed", DetailedMessage: utils.Ptr("Only the long one")},
			},
			want: &Table{
				Enum: "Status",
				Kind: types.EnumKindConst,
				Messages: []Arm{
					{Variant: "Pending", Text: "Waiting"},
					{Variant: "Running", Text: "Running"},
				},
				DetailedMessages: []Arm{
					{Variant: "Pending", Text: "Waiting for a worker"},
					{Variant: "Running", Text: "Running"},
					{Variant: "OnlyDetailed", Text: "Only the long one"},
				},
				Serializations: []SerializationArm{
					{Variant: "Pending", Values: []string{"Pending"}},
					{Variant: "Running", Values: []string{"running", "in_progress"}},
					{Variant: "Hidden", Values: []string{"Hidden"}},
					{Variant: "Unknown", Values: []string{"Unknown"}},
					{Variant: "OnlyDetailed", Values: []string{"OnlyDetailed"}},
				},
				MessageFallback:  true,
				DetailedFallback: true,
			},
		},
		{
			name: "complete",
			variants: []*types.Variant{
				{Name: "A", Message: utils.Ptr("a"), Serializations: []string{"A"}},
				{Name: "B", Message: utils.Ptr("b"), DetailedMessage: utils.Ptr("bee"), Serializations: []string{"b"}},
			},
			want: &Table{
				Enum:             "Status",
				Kind:             types.EnumKindConst,
				Messages:         []Arm{{Variant: "A", Text: "a"}, {Variant: "B", Text: "b"}},
				DetailedMessages: []Arm{{Variant: "A", Text: "a"}, {Variant: "B", Text: "bee"}},
				Serializations: []SerializationArm{
					{Variant: "A", Values: []string{"A"}},
					{Variant: "B", Values: []string{"b"}},
				},
			},
		},
		{
			name: "empty",
			want: &Table{Enum: "Status", Kind: types.EnumKindConst},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enum := &types.Enum{Name: "Status", Kind: types.EnumKindConst, Variants: tt.variants}
			if diff := cmp.Diff(tt.want, BuildTable(enum)); diff != "" {
				t.Errorf("BuildTable() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildTableCopiesSerializations(t *testing.T) {
	v := &types.Variant{Name: "A", Serializations: []string{"a"}}
	table := BuildTable(&types.Enum{Name: "E", Variants: []*types.Variant{v}})
	table.Serializations[0].Values[0] = "changed"
	if v.Serializations[0] != "a" {
		t.Fatalf("variant serializations were modified through the table")
	}
}
