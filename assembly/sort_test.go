package assembly_test

import (
	"testing"

	"github.com/grailbio/bio-tola/assembly"
	"github.com/stretchr/testify/require"
)

func namedScaffold(t *testing.T, name string, length int64) *assembly.Scaffold {
	t.Helper()
	return bScaffold(t, name, assembly.FragmentRow(bFrag(t, "s", 1, length)))
}

func TestSmartSortScaffolds(t *testing.T) {
	scaffolds := []*assembly.Scaffold{
		namedScaffold(t, "RL_10", 10),
		namedScaffold(t, "small_other", 100),
		namedScaffold(t, "RL_2", 20),
		namedScaffold(t, "RL_1_unloc_2", 5),
		namedScaffold(t, "RL_1", 30),
		namedScaffold(t, "big_other", 5000),
		namedScaffold(t, "RL_1_unloc_1", 4),
	}

	assembly.SmartSortScaffolds(scaffolds, "RL_")

	var names []string
	for _, s := range scaffolds {
		names = append(names, s.Name)
	}
	require.Equal(t, []string{
		// Chromosomes by number, each followed by its unlocs in suffix
		// order, then everything else longest first.
		"RL_1", "RL_1_unloc_1", "RL_1_unloc_2", "RL_2", "RL_10",
		"big_other", "small_other",
	}, names)
}

func TestSmartSortOrphanUnlocFallsBackToLengthOrder(t *testing.T) {
	scaffolds := []*assembly.Scaffold{
		namedScaffold(t, "X9_unloc_1", 70),
		namedScaffold(t, "big_other", 5000),
		namedScaffold(t, "RL_1", 30),
	}

	assembly.SmartSortScaffolds(scaffolds, "RL_")

	require.Equal(t, "RL_1", scaffolds[0].Name)
	require.Equal(t, "big_other", scaffolds[1].Name)
	require.Equal(t, "X9_unloc_1", scaffolds[2].Name)
}
