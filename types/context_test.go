package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualifyType(t *testing.T) {
	ctx := &ProcessContext{ModulePath: "example.com/app"}

	tests := []struct {
		in   string
		want string
	}{
		{"./models.Side", "example.com/app/models.Side"},
		{"./internal/jobs.Status", "example.com/app/internal/jobs.Status"},
		{"./Side", "example.com/app.Side"},
		{"Side", "Side"},
		{"example.com/other.Side", "example.com/other.Side"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ctx.QualifyType(tt.in))
		})
	}

	assert.Equal(t, "./models.Side", (&ProcessContext{}).QualifyType("./models.Side"), "no module path")
}

func TestRelativeType(t *testing.T) {
	ctx := &ProcessContext{ModulePath: "example.com/app"}

	for _, e := range []*Enum{
		{Name: "Side", PkgPath: "example.com/app/models"},
		{Name: "Mode", PkgPath: "example.com/app"},
	} {
		rel := ctx.RelativeType(e)
		assert.Equal(t, e.Qualified(), ctx.QualifyType(rel), rel)
	}

	assert.Equal(t, "./models.Side", ctx.RelativeType(&Enum{Name: "Side", PkgPath: "example.com/app/models"}))
	assert.Equal(t, "example.com/application.Side", ctx.RelativeType(&Enum{Name: "Side", PkgPath: "example.com/application"}))
	assert.Equal(t, "example.com/app.Mode", (&ProcessContext{}).RelativeType(&Enum{Name: "Mode", PkgPath: "example.com/app"}))
}
