package assembly

import (
	"sort"

	"github.com/biogo/store/interval"
)

// IndexedAssembly wraps an Assembly with per-sequence interval trees,
// letting the build engine look up which input fragments a bait edit
// fragment corresponds to. It embeds Assembly so callers needing the
// ordered scaffold list (add_missing_scaffolds_from_input) can use it
// directly, the same way the index carries its source's fields through.
type IndexedAssembly struct {
	Assembly
	trees  map[string]*interval.IntTree
	nextID uintptr
}

// fragmentInterval adapts a Fragment to github.com/biogo/store/interval's
// half-open, 0-based IntRange convention.
type fragmentInterval struct {
	id   uintptr
	frag Fragment
}

func (f fragmentInterval) Overlap(b interval.IntRange) bool {
	start, end := f.span()
	return start < b.End && b.Start < end
}

func (f fragmentInterval) ID() uintptr { return f.id }

func (f fragmentInterval) Range() interval.IntRange {
	start, end := f.span()
	return interval.IntRange{Start: start, End: end}
}

func (f fragmentInterval) span() (int, int) {
	return int(f.frag.Start - 1), int(f.frag.End)
}

// NewIndexedAssembly builds an IndexedAssembly from asm, indexing every
// Fragment row on its named sequence. Gap rows are not indexed; they carry
// no sequence.
func NewIndexedAssembly(asm *Assembly) (*IndexedAssembly, error) {
	ia := &IndexedAssembly{
		Assembly: *asm,
		trees:    make(map[string]*interval.IntTree),
	}
	for _, scffld := range asm.Scaffolds {
		for _, row := range scffld.Rows {
			if !row.IsFragment() {
				continue
			}
			tree, ok := ia.trees[row.Frag.SeqName]
			if !ok {
				tree = &interval.IntTree{}
				ia.trees[row.Frag.SeqName] = tree
			}
			ia.nextID++
			if err := tree.Insert(fragmentInterval{id: ia.nextID, frag: row.Frag}, true); err != nil {
				return nil, err
			}
		}
	}
	for _, tree := range ia.trees {
		tree.AdjustRanges()
	}
	return ia, nil
}

// FindOverlaps finds every input fragment overlapping bait and assembles
// them into an OverlapResult, reporting false if nothing overlaps. Rows are
// the whole input fragments, kept in ascending input coordinate order
// whatever the bait's strand: the same input fragment overlapped by two
// baits must carry the same key tuple in both OverlapResults, or the build
// engine cannot see that it has been claimed twice. Orientation is applied
// when an OverlapResult is converted to an output Scaffold.
func (ia *IndexedAssembly) FindOverlaps(bait Fragment) (*OverlapResult, bool) {
	tree, ok := ia.trees[bait.SeqName]
	if !ok {
		return nil, false
	}
	query := fragmentInterval{frag: bait}
	hits := tree.Get(query)
	if len(hits) == 0 {
		return nil, false
	}

	frags := make([]Fragment, 0, len(hits))
	for _, h := range hits {
		frags = append(frags, h.(fragmentInterval).frag)
	}
	sort.Slice(frags, func(i, j int) bool { return frags[i].Start < frags[j].Start })

	rows := make([]Row, len(frags))
	for i, f := range frags {
		rows[i] = FragmentRow(f)
	}

	return &OverlapResult{
		Scaffold:      Scaffold{Rows: rows},
		Bait:          bait,
		StartOverhang: bait.Start - frags[0].Start,
		EndOverhang:   frags[len(frags)-1].End - bait.End,
	}, true
}
