package types

// ProcessResult holds every enum found, in package then declaration order.
type ProcessResult struct {
	Enums []*Enum
}

// PackageEnums groups the enums of one package.
type PackageEnums struct {
	Name    string
	PkgPath string
	Dir     string
	Enums   []*Enum
}

func NewProcessResult() *ProcessResult {
	return &ProcessResult{}
}

// Add appends enums to the result.
func (pr *ProcessResult) Add(enums ...*Enum) {
	pr.Enums = append(pr.Enums, enums...)
}

// ByPackage groups the enums by package, keeping first-seen package order.
func (pr *ProcessResult) ByPackage() []*PackageEnums {
	var out []*PackageEnums
	index := make(map[string]*PackageEnums)
	for _, e := range pr.Enums {
		p, ok := index[e.PkgPath]
		if !ok {
			p = &PackageEnums{Name: e.Package, PkgPath: e.PkgPath, Dir: e.Dir}
			index[e.PkgPath] = p
			out = append(out, p)
		}
		p.Enums = append(p.Enums, e)
	}
	return out
}

// Find returns the enum with the given name, optionally qualified by import path.
func (pr *ProcessResult) Find(name string) *Enum {
	for _, e := range pr.Enums {
		if e.Name == name || e.Qualified() == name {
			return e
		}
	}
	return nil
}
