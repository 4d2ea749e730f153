package main

import (
	"encoding/json"
	"fmt"

	"github.com/pablor21/enummessage/generator"
	"github.com/pablor21/enummessage/types"
	"gopkg.in/yaml.v3"
)

type enumReport struct {
	Type     string           `json:"type" yaml:"type"` // module-relative, the form accepted by --types
	Package  string           `json:"package" yaml:"package"`
	Position string           `json:"position" yaml:"position"`
	Aliases  []string         `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Table    *generator.Table `json:"table" yaml:"table"`
}

func buildReport(pctx *types.ProcessContext, res *types.ProcessResult) []enumReport {
	reports := make([]enumReport, 0, len(res.Enums))
	for _, e := range res.Enums {
		r := enumReport{
			Type:     pctx.RelativeType(e),
			Package:  e.PkgPath,
			Position: e.Position.String(),
			Table:    generator.BuildTable(e),
		}
		for _, v := range e.Variants {
			for _, a := range v.Aliases {
				r.Aliases = append(r.Aliases, a+"="+v.Name)
			}
		}
		reports = append(reports, r)
	}
	return reports
}

func marshalReport(reports []enumReport, format string) ([]byte, error) {
	switch format {
	case "json", "":
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml":
		return yaml.Marshal(reports)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
