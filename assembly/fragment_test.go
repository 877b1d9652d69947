package assembly_test

import (
	"testing"

	"github.com/grailbio/bio-tola/assembly"
	"github.com/stretchr/testify/require"
)

func TestNewFragmentValidation(t *testing.T) {
	_, err := assembly.NewFragment("chr1", 0, 10, assembly.StrandPlus)
	require.Error(t, err)

	_, err = assembly.NewFragment("chr1", 10, 5, assembly.StrandPlus)
	require.Error(t, err)

	f, err := assembly.NewFragment("chr1", 1, 10, assembly.StrandPlus)
	require.NoError(t, err)
	require.Equal(t, int64(10), f.Length())
}

func TestFragmentString(t *testing.T) {
	plus, err := assembly.NewFragment("scaffold_2", 1, 100, assembly.StrandPlus)
	require.NoError(t, err)
	require.Equal(t, "scaffold_2:1-100(+)", plus.String())

	unknown, err := assembly.NewFragment("scaffold_2", 1, 100, assembly.StrandUnknown)
	require.NoError(t, err)
	require.Equal(t, "scaffold_2:1-100(.)", unknown.String())
}

func TestFragmentOverlapsAndAbuts(t *testing.T) {
	a, _ := assembly.NewFragment("chr1", 1, 10, assembly.StrandPlus)
	b, _ := assembly.NewFragment("chr1", 8, 20, assembly.StrandPlus)
	c, _ := assembly.NewFragment("chr1", 11, 20, assembly.StrandPlus)
	d, _ := assembly.NewFragment("chr2", 11, 20, assembly.StrandPlus)

	require.True(t, a.Overlaps(b))
	require.False(t, a.Overlaps(c))
	require.True(t, a.Abuts(c))
	require.False(t, a.Abuts(b))
	require.False(t, a.Overlaps(d))
	require.False(t, a.Abuts(d))
}

func TestFragmentReverse(t *testing.T) {
	plus, _ := assembly.NewFragment("chr1", 1, 10, assembly.StrandPlus)
	require.Equal(t, assembly.StrandMinus, plus.Reverse().Strand)

	unknown, _ := assembly.NewFragment("chr1", 1, 10, assembly.StrandUnknown)
	require.Equal(t, assembly.StrandUnknown, unknown.Reverse().Strand)
}

func TestFragmentKeyTupleEquality(t *testing.T) {
	a, _ := assembly.NewFragment("chr1", 1, 10, assembly.StrandPlus)
	b, _ := assembly.NewFragment("chr1", 1, 10, assembly.StrandPlus)
	c, _ := assembly.NewFragment("chr1", 1, 10, assembly.StrandMinus)

	require.Equal(t, a.KeyTuple(), b.KeyTuple())
	require.NotEqual(t, a.KeyTuple(), c.KeyTuple())
}

func TestFragmentHasTag(t *testing.T) {
	f, err := assembly.NewFragment("chr1", 1, 10, assembly.StrandPlus, "Painted", "A1")
	require.NoError(t, err)
	require.True(t, f.HasTag("Painted"))
	require.True(t, f.HasTag("A1"))
	require.False(t, f.HasTag("Haplotig"))
}
