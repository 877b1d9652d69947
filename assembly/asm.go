package assembly

import (
	"fmt"
	"math"
)

// Assembly is a named set of scaffolds, plus the header lines carried
// through from its source document and the curator tool's pixel
// resolution, if known.
type Assembly struct {
	Name        string
	HeaderLines []string
	Scaffolds   []*Scaffold
	BpPerTexel  float64 // 0 means "not set"
}

// NewAssembly creates an empty, named Assembly.
func NewAssembly(name string) *Assembly {
	return &Assembly{Name: name}
}

// AddScaffold appends scffld to the assembly.
func (a *Assembly) AddScaffold(scffld *Scaffold) {
	a.Scaffolds = append(a.Scaffolds, scffld)
}

// ErrorLength is the upper bound on coordinate noise introduced by the
// curator tool's pixel grid: floor(bp_per_texel) + 1, guaranteed to exceed
// the smallest representable distance even when bp_per_texel has no
// fractional part (e.g. 2300.000000 becomes 2301).
func (a *Assembly) ErrorLength() int64 {
	return 1 + int64(math.Floor(a.BpPerTexel))
}

func (a *Assembly) String() string {
	out := fmt.Sprintf("Assembly: %s\n", a.Name)
	for _, line := range a.HeaderLines {
		out += fmt.Sprintf("  %s\n", line)
	}
	for _, scffld := range a.Scaffolds {
		out += scffld.String()
	}
	return out
}
