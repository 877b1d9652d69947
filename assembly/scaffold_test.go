package assembly_test

import (
	"fmt"
	"testing"

	"github.com/grailbio/bio-tola/assembly"
	"github.com/stretchr/testify/require"
)

func TestScaffoldAppendRowInvariants(t *testing.T) {
	s := assembly.NewScaffold("chr1")
	gap, _ := assembly.NewGap(200, "scaffold")

	require.Error(t, s.AppendRow(assembly.GapRow(gap)), "must not start with a gap")

	f1, _ := assembly.NewFragment("in1", 1, 10, assembly.StrandPlus)
	require.NoError(t, s.AppendRow(assembly.FragmentRow(f1)))
	require.NoError(t, s.AppendRow(assembly.GapRow(gap)))
	require.Error(t, s.AppendRow(assembly.GapRow(gap)), "must not follow a gap with a gap")

	f2, _ := assembly.NewFragment("in1", 11, 20, assembly.StrandPlus)
	require.NoError(t, s.AppendRow(assembly.FragmentRow(f2)))
}

func TestScaffoldValidate(t *testing.T) {
	s := assembly.NewScaffold("chr1")
	require.Error(t, s.Validate(), "empty scaffold is invalid")

	f1, _ := assembly.NewFragment("in1", 1, 10, assembly.StrandPlus)
	require.NoError(t, s.AppendRow(assembly.FragmentRow(f1)))
	require.NoError(t, s.Validate())
}

func TestScaffoldFragmentsAndTags(t *testing.T) {
	s := assembly.NewScaffold("chr1")
	f1, _ := assembly.NewFragment("in1", 1, 10, assembly.StrandPlus, "Painted")
	gap, _ := assembly.NewGap(200, "scaffold")
	f2, _ := assembly.NewFragment("in1", 211, 220, assembly.StrandPlus, "A1")
	require.NoError(t, s.AppendRow(assembly.FragmentRow(f1)))
	require.NoError(t, s.AppendRow(assembly.GapRow(gap)))
	require.NoError(t, s.AppendRow(assembly.FragmentRow(f2)))

	require.Len(t, s.Fragments(), 2)
	require.Equal(t, int64(220), s.Length())

	tags := s.FragmentTags()
	_, hasPainted := tags["Painted"]
	_, hasA1 := tags["A1"]
	require.True(t, hasPainted)
	require.True(t, hasA1)
}

func TestScaffoldAppendScaffold(t *testing.T) {
	gap, _ := assembly.NewGap(200, "scaffold")

	a := assembly.NewScaffold("chr1")
	fa, _ := assembly.NewFragment("in1", 1, 10, assembly.StrandPlus)
	require.NoError(t, a.AppendRow(assembly.FragmentRow(fa)))

	b := assembly.NewScaffold("chr1_part2")
	fb, _ := assembly.NewFragment("in2", 1, 5, assembly.StrandPlus)
	require.NoError(t, b.AppendRow(assembly.FragmentRow(fb)))

	require.NoError(t, a.AppendScaffold(b, &gap))
	require.Len(t, a.Rows, 3)
	require.True(t, a.Rows[1].IsGap())
}

func TestScaffoldString(t *testing.T) {
	s := assembly.NewScaffold("chr1")
	f, _ := assembly.NewFragment("scaffold_2", 1, 100, assembly.StrandPlus, "Painted")
	require.NoError(t, s.AppendRow(assembly.FragmentRow(f)))

	want := "  chr1\n" + fmt.Sprintf("%15d%12d  %s\n", 1, 100, "scaffold_2:1-100(+)")
	require.Equal(t, want, s.String())
}
