package assembly

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// AssemblyStats accumulates the counters BuildAssembly reports once its
// pipeline has finished, plus a per-output-assembly length summary.
type AssemblyStats struct {
	InputAssembly  *IndexedAssembly
	AutosomePrefix string
	Cuts           int

	Reports map[string]AssemblyReport
}

// AssemblyReport summarises one output assembly.
type AssemblyReport struct {
	Name           string
	ScaffoldCount  int
	BaseCount      int64
	MeanScaffoldLn float64
	N50            int64
}

// MakeStats computes a per-assembly report for every entry in assemblies.
func (s *AssemblyStats) MakeStats(assemblies map[string]*Assembly) {
	s.Reports = make(map[string]AssemblyReport, len(assemblies))
	for key, asm := range assemblies {
		s.Reports[key] = reportFor(asm)
	}
}

func reportFor(asm *Assembly) AssemblyReport {
	lengths := make([]float64, len(asm.Scaffolds))
	var total int64
	for i, s := range asm.Scaffolds {
		l := s.Length()
		lengths[i] = float64(l)
		total += l
	}
	var mean float64
	if len(lengths) > 0 {
		mean = stat.Mean(lengths, nil)
	}
	return AssemblyReport{
		Name:           asm.Name,
		ScaffoldCount:  len(asm.Scaffolds),
		BaseCount:      total,
		MeanScaffoldLn: mean,
		N50:            n50(lengths, total),
	}
}

// n50 returns the length of the scaffold at which half the total assembly
// length has been accumulated when scaffolds are considered longest first.
func n50(lengths []float64, total int64) int64 {
	if total == 0 {
		return 0
	}
	sorted := append([]float64(nil), lengths...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))
	var cum int64
	half := total / 2
	for _, l := range sorted {
		cum += int64(l)
		if cum >= half {
			return int64(l)
		}
	}
	return 0
}
