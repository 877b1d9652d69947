package assembly

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var unlocSuffixRe = regexp.MustCompile(`^(.*)_unloc_(\d+)$`)

// sortKey classifies a scaffold name for SmartSortScaffolds: chromosome
// names sort by number, unlocs sort with their parent chromosome, and
// everything else falls back to length order.
type sortKey struct {
	kind      int // 0 = numbered chromosome, 1 = unloc, 2 = other
	chrNumber int
	chrName   string
	unlocN    int
	length    int64
	orig      int // stabilises ties at the same kind/length
}

const (
	sortKindChromosome = iota
	sortKindUnloc
	sortKindOther
)

func classify(scffld *Scaffold, autosomePrefix string, orig int) sortKey {
	k := sortKey{length: scffld.Length(), orig: orig}
	if m := unlocSuffixRe.FindStringSubmatch(scffld.Name); m != nil {
		k.kind = sortKindUnloc
		k.chrName = m[1]
		n, _ := strconv.Atoi(m[2])
		k.unlocN = n
		return k
	}
	if autosomePrefix != "" && strings.HasPrefix(scffld.Name, autosomePrefix) {
		if n, err := strconv.Atoi(scffld.Name[len(autosomePrefix):]); err == nil {
			k.kind = sortKindChromosome
			k.chrNumber = n
			k.chrName = scffld.Name
			return k
		}
	}
	k.kind = sortKindOther
	return k
}

// SmartSortScaffolds orders scaffolds so that autosome-named scaffolds
// (autosomePrefix followed by a number) come first by ascending number, each
// autosome's unlocalised scaffolds are grouped immediately after it in
// suffix order, and every other scaffold follows, ordered by length
// descending. Other chromosome names (such as "X1" from a tag) and their
// unlocs are not recognised as chromosomes and sort with the others.
func SmartSortScaffolds(scaffolds []*Scaffold, autosomePrefix string) {
	keys := make([]sortKey, len(scaffolds))
	chrRank := make(map[string]int)
	for i, s := range scaffolds {
		keys[i] = classify(s, autosomePrefix, i)
		if keys[i].kind == sortKindChromosome {
			chrRank[keys[i].chrName] = keys[i].chrNumber
		}
	}

	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		aParent, aIsUnloc := a.chrName, a.kind == sortKindUnloc
		bParent, bIsUnloc := b.chrName, b.kind == sortKindUnloc

		aGroupKind, aGroupKey := groupOf(a, chrRank)
		bGroupKind, bGroupKey := groupOf(b, chrRank)

		if aGroupKind != bGroupKind {
			return aGroupKind < bGroupKind
		}
		switch aGroupKind {
		case sortKindChromosome:
			if aGroupKey != bGroupKey {
				return aGroupKey < bGroupKey
			}
			// Same chromosome group: the chromosome scaffold itself sorts
			// before its unlocs, which sort in suffix order.
			if aIsUnloc != bIsUnloc {
				return !aIsUnloc
			}
			if aIsUnloc && bIsUnloc && aParent == bParent {
				return a.unlocN < b.unlocN
			}
			return a.orig < b.orig
		default:
			if a.length != b.length {
				return a.length > b.length
			}
			return a.orig < b.orig
		}
	})
	unsorted := append([]*Scaffold(nil), scaffolds...)
	for i, k := range keys {
		scaffolds[i] = unsorted[k.orig]
	}
}

// groupOf returns a (kind, sort key within kind) pair used to cluster a
// scaffold with its chromosome family.
func groupOf(k sortKey, chrRank map[string]int) (int, int) {
	switch k.kind {
	case sortKindChromosome:
		return sortKindChromosome, k.chrNumber
	case sortKindUnloc:
		if n, ok := chrRank[k.chrName]; ok {
			return sortKindChromosome, n
		}
		return sortKindOther, 0
	default:
		return sortKindOther, 0
	}
}
