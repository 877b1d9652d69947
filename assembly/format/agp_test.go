package format_test

import (
	"strings"
	"testing"

	"github.com/grailbio/bio-tola/assembly"
	"github.com/grailbio/bio-tola/assembly/format"
	"github.com/stretchr/testify/require"
)

const sampleAGP = "##agp-version 2.1\n" +
	"#\n" +
	"# DESCRIPTION: Generated by PretextView Version 0.2.5\n" +
	"# HiC MAP RESOLUTION: 8666.611572 bp/texel\n" +
	"\n" +
	"Scaffold_1\t1\t21337197\t1\tW\tscaffold_1\t1\t21337197\t+\tPainted\n" +
	"Scaffold_1\t21337198\t21337297\t2\tU\t100\tscaffold\tyes\tproximity_ligation\n" +
	"Scaffold_1\t21337298\t21917959\t3\tW\tscaffold_21\t1\t580662\t+\n" +
	"Scaffold_1\t21917960\t21918059\t4\tU\t100\tscaffold\tyes\tproximity_ligation\n" +
	"Scaffold_1\t21918060\t24379376\t5\tW\tscaffold_1\t21770529\t24231845\t-\tPainted\n" +
	"Scaffold_2\t1\t3206646\t1\tW\tscaffold_2\t1\t3206646\t+\tPainted\n" +
	"Scaffold_2\t3206647\t3206746\t2\tU\t100\tscaffold\tyes\tproximity_ligation\n" +
	"Scaffold_2\t3206747\t3267412\t3\tW\tscaffold_67\t1\t60666\t+\tPainted\n" +
	"Scaffold_2\t3267413\t3267512\t4\tU\t100\tscaffold\tyes\tproximity_ligation\n" +
	"Scaffold_2\t3267513\t28348686\t5\tW\tscaffold_2\t3206647\t28287820\t?\tPainted\n"

func TestParseAGP(t *testing.T) {
	asm, err := format.ParseAGP(strings.NewReader(sampleAGP), "aaBbbCccc1")
	require.NoError(t, err)

	require.Equal(t, "aaBbbCccc1", asm.Name)
	require.Equal(t, 8666.611572, asm.BpPerTexel)
	require.Equal(t, []string{
		"# DESCRIPTION: Generated by PretextView Version 0.2.5",
		"# HiC MAP RESOLUTION: 8666.611572 bp/texel",
	}, asm.HeaderLines)

	require.Len(t, asm.Scaffolds, 2)
	s1 := asm.Scaffolds[0]
	require.Equal(t, "Scaffold_1", s1.Name)
	require.Len(t, s1.Rows, 5)

	first := s1.Rows[0]
	require.True(t, first.IsFragment())
	require.Equal(t, "scaffold_1", first.Frag.SeqName)
	require.Equal(t, int64(1), first.Frag.Start)
	require.Equal(t, int64(21337197), first.Frag.End)
	require.Equal(t, assembly.StrandPlus, first.Frag.Strand)
	require.True(t, first.Frag.HasTag("Painted"))

	gap := s1.Rows[1]
	require.True(t, gap.IsGap())
	require.Equal(t, int64(100), gap.Gap.Length)
	require.Equal(t, "scaffold", gap.Gap.Type)

	untagged := s1.Rows[2]
	require.Empty(t, untagged.Frag.Tags)

	minus := s1.Rows[4]
	require.Equal(t, assembly.StrandMinus, minus.Frag.Strand)

	s2 := asm.Scaffolds[1]
	unknown := s2.Rows[4]
	require.Equal(t, assembly.StrandUnknown, unknown.Frag.Strand)
}

func TestParseAGPErrors(t *testing.T) {
	_, err := format.ParseAGP(strings.NewReader("Scaffold_1\t1\t100\t1\n"), "short")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Wrong field count")

	_, err = format.ParseAGP(strings.NewReader("Scaffold_1\t1\t100\t1\tZ\tx\t1\t100\t+\n"), "bad_type")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Unknown row type")

	_, err = format.ParseAGP(strings.NewReader("Scaffold_1\t1\t100\t1\tW\tx\tone\thundred\t+\n"), "bad_coords")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Bad fragment coordinates")
}

func TestWriteAGPRoundTrip(t *testing.T) {
	asm, err := format.ParseAGP(strings.NewReader(sampleAGP), "aaBbbCccc1")
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, format.WriteAGP(&buf, asm))

	// The writer emits the canonical layout: version pragma, carried
	// headers, then rows; blank comment and padding lines are not
	// preserved.
	want := "##agp-version 2.1\n" +
		"# DESCRIPTION: Generated by PretextView Version 0.2.5\n" +
		"# HiC MAP RESOLUTION: 8666.611572 bp/texel\n" +
		strings.Join(strings.Split(sampleAGP, "\n")[5:], "\n")
	require.Equal(t, want, buf.String())

	again, err := format.ParseAGP(strings.NewReader(buf.String()), "aaBbbCccc1")
	require.NoError(t, err)
	require.Equal(t, asm, again)
}
