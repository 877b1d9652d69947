package assembly_test

import (
	"testing"

	"github.com/grailbio/bio-tola/assembly"
	"github.com/stretchr/testify/require"
)

func TestRowKindAndLength(t *testing.T) {
	f, _ := assembly.NewFragment("chr1", 1, 10, assembly.StrandPlus)
	gap, _ := assembly.NewGap(200, "scaffold")

	fr := assembly.FragmentRow(f)
	require.True(t, fr.IsFragment())
	require.False(t, fr.IsGap())
	require.Equal(t, int64(10), fr.Length())

	gr := assembly.GapRow(gap)
	require.True(t, gr.IsGap())
	require.False(t, gr.IsFragment())
	require.Equal(t, int64(200), gr.Length())
}

func TestGapValidation(t *testing.T) {
	_, err := assembly.NewGap(0, "scaffold")
	require.Error(t, err)

	_, err = assembly.NewGap(-5, "scaffold")
	require.Error(t, err)

	g, err := assembly.NewGap(100, "TYPE-2")
	require.NoError(t, err)
	require.Equal(t, "Gap:100 TYPE-2", g.String())
}
