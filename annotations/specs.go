package annotations

// Annotation names understood by enummessage.
const (
	EnumMessage     = "enummessage"
	Message         = "message"
	DetailedMessage = "detailed_message"
	Serialize       = "serialize"
	Disabled        = "disabled"
)

// PluginDefinitions contains the annotation specifications of a generator
type PluginDefinitions struct {
	Annotations []AnnotationSpec `json:"annotations" yaml:"annotations"`
}

// GetAnnotationSpecByName finds an annotation specification by name or alias
func (d PluginDefinitions) GetAnnotationSpecByName(name string) *AnnotationSpec {
	name = NormalizeAnnotationName(name)
	for i := range d.Annotations {
		if NormalizeAnnotationName(d.Annotations[i].Name) == name {
			return &d.Annotations[i]
		}
		for _, alias := range d.Annotations[i].Aliases {
			if NormalizeAnnotationName(alias) == name {
				return &d.Annotations[i]
			}
		}
	}
	return nil
}

// Lookup finds the spec an annotation refers to, honoring the configured prefix.
func (d PluginDefinitions) Lookup(ann Annotation, prefix string) *AnnotationSpec {
	for i := range d.Annotations {
		names := append([]string{d.Annotations[i].Name}, d.Annotations[i].Aliases...)
		if MatchesAnnotation(ann.Name, prefix, names...) {
			return &d.Annotations[i]
		}
	}
	return nil
}

// Definitions returns the enummessage annotation vocabulary.
func Definitions() PluginDefinitions {
	valueParam := AnnotationParam{
		Name:       "value",
		Types:      []string{"string"},
		IsDefault:  true,
		IsRequired: true,
	}
	return PluginDefinitions{
		Annotations: []AnnotationSpec{
			{
				Name:        EnumMessage,
				Description: "Marks a type for message accessor generation",
				ValidOn:     []AnnotationValidOn{AnnotationValidOnEnum},
				Aliases:     []string{"enum_messages"},
			},
			{
				Name:        Message,
				Description: "Short human-readable message of a variant",
				ValidOn:     []AnnotationValidOn{AnnotationValidOnEnumValue},
				Aliases:     []string{"msg"},
				Params:      []AnnotationParam{valueParam},
			},
			{
				Name:        DetailedMessage,
				Description: "Long message of a variant, defaults to the short message",
				ValidOn:     []AnnotationValidOn{AnnotationValidOnEnumValue},
				Aliases:     []string{"detailed"},
				Params:      []AnnotationParam{valueParam},
			},
			{
				Name:        Serialize,
				Description: "Canonical string name of a variant, repeatable",
				ValidOn:     []AnnotationValidOn{AnnotationValidOnEnumValue},
				Multiple:    true,
				Params:      []AnnotationParam{valueParam},
			},
			{
				Name:        Disabled,
				Description: "Excludes the variant from the message tables; serializations are kept",
				ValidOn:     []AnnotationValidOn{AnnotationValidOnEnumValue},
				Params: []AnnotationParam{{
					Name:         "value",
					Types:        []string{"bool"},
					IsDefault:    true,
					DefaultValue: "true",
				}},
			},
		},
	}
}

// Names returns the name and aliases of an annotation, nil when unknown.
func (d PluginDefinitions) Names(name string) []string {
	spec := d.GetAnnotationSpecByName(name)
	if spec == nil {
		return nil
	}
	return append([]string{spec.Name}, spec.Aliases...)
}
