package assembly_test

import (
	"testing"

	"github.com/grailbio/bio-tola/assembly"
	"github.com/stretchr/testify/require"
)

func TestAssemblyErrorLength(t *testing.T) {
	a := assembly.NewAssembly("test")
	a.BpPerTexel = 2300
	require.Equal(t, int64(2301), a.ErrorLength())

	a.BpPerTexel = 2300.5
	require.Equal(t, int64(2301), a.ErrorLength())
}

func TestAssemblyAddScaffoldAndString(t *testing.T) {
	a := assembly.NewAssembly("test")
	a.HeaderLines = []string{"## header bp/texel 2300"}
	s := assembly.NewScaffold("chr1")
	f, _ := assembly.NewFragment("in1", 1, 10, assembly.StrandPlus)
	require.NoError(t, s.AppendRow(assembly.FragmentRow(f)))
	a.AddScaffold(s)

	require.Len(t, a.Scaffolds, 1)
	out := a.String()
	require.Contains(t, out, "Assembly: test")
	require.Contains(t, out, "## header bp/texel 2300")
	require.Contains(t, out, "chr1")
}
