package assembly

// OverlapResult is the set of input fragments overlapping a bait edit
// fragment, with the bait recorded. Its rows are whole input fragments; the
// terminal rows are not clipped to the bait when the result is built.
// TrimLargeOverhangs may discard terminal rows, and TrimFragment clips a row
// only when a shared fragment is cut. It extends Scaffold (by embedding)
// with bait bookkeeping.
type OverlapResult struct {
	Scaffold
	Bait          Fragment
	StartOverhang int64
	EndOverhang   int64
}

func overlapLength(a, b Fragment) int64 {
	lo := maxI64(a.Start, b.Start)
	hi := minI64(a.End, b.End)
	if hi < lo {
		return 0
	}
	return hi - lo + 1
}

func maxI64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// StartRowBaitOverlap returns the number of bases the first row shares with
// the bait.
func (o *OverlapResult) StartRowBaitOverlap() int64 {
	if len(o.Rows) == 0 {
		return 0
	}
	return overlapLength(o.Rows[0].Frag, o.Bait)
}

// EndRowBaitOverlap returns the number of bases the last row shares with the
// bait.
func (o *OverlapResult) EndRowBaitOverlap() int64 {
	if len(o.Rows) == 0 {
		return 0
	}
	return overlapLength(o.Rows[len(o.Rows)-1].Frag, o.Bait)
}

// OverhangIfStartRemoved reports what StartOverhang would become if the
// first row were discarded. For a scaffold with at most one row (removal
// would empty it) the current overhang is returned unchanged; the caller
// never acts on this value in that case.
func (o *OverlapResult) OverhangIfStartRemoved() int64 {
	if len(o.Rows) <= 1 {
		return o.StartOverhang
	}
	return o.Bait.Start - o.Rows[1].Frag.Start
}

// OverhangIfEndRemoved reports what EndOverhang would become if the last row
// were discarded.
func (o *OverlapResult) OverhangIfEndRemoved() int64 {
	if len(o.Rows) <= 1 {
		return o.EndOverhang
	}
	return o.Rows[len(o.Rows)-2].Frag.End - o.Bait.End
}

// DiscardStart removes the first row and recomputes StartOverhang from the
// new first row, if any remains.
func (o *OverlapResult) DiscardStart() {
	if len(o.Rows) == 0 {
		return
	}
	o.Rows = o.Rows[1:]
	if len(o.Rows) > 0 {
		o.StartOverhang = o.Bait.Start - o.Rows[0].Frag.Start
	}
}

// DiscardEnd removes the last row and recomputes EndOverhang from the new
// last row, if any remains.
func (o *OverlapResult) DiscardEnd() {
	n := len(o.Rows)
	if n == 0 {
		return
	}
	o.Rows = o.Rows[:n-1]
	if len(o.Rows) > 0 {
		o.EndOverhang = o.Rows[len(o.Rows)-1].Frag.End - o.Bait.End
	}
}

func (o *OverlapResult) startInnerBoundaryInsideBait() bool {
	if len(o.Rows) == 0 {
		return false
	}
	end := o.Rows[0].Frag.End
	return end >= o.Bait.Start && end <= o.Bait.End
}

func (o *OverlapResult) endInnerBoundaryInsideBait() bool {
	if len(o.Rows) == 0 {
		return false
	}
	start := o.Rows[len(o.Rows)-1].Frag.Start
	return start >= o.Bait.Start && start <= o.Bait.End
}

// TrimLargeOverhangs discards terminal rows which extend past the bait by
// more than errLength while their inner boundary still falls inside the
// bait, repeating inward until the remaining overhang is within noise.
// Interior rows are never touched.
func (o *OverlapResult) TrimLargeOverhangs(errLength int64) {
	for len(o.Rows) > 0 && o.StartOverhang > errLength && o.startInnerBoundaryInsideBait() {
		o.DiscardStart()
	}
	for len(o.Rows) > 0 && o.EndOverhang > errLength && o.endInnerBoundaryInsideBait() {
		o.DiscardEnd()
	}
}

// FragmentStartIfTrimmed returns the start coordinate the row matching
// key's fragment would have after clipping to this OverlapResult's bait,
// used to order OverlapResults sharing a duplicated fragment before cutting.
func (o *OverlapResult) FragmentStartIfTrimmed(key FragmentKey) (int64, bool) {
	for _, row := range o.Rows {
		if row.IsFragment() && row.Frag.KeyTuple() == key {
			return maxI64(row.Frag.Start, o.Bait.Start), true
		}
	}
	return 0, false
}

// TrimFragment produces the sub-fragment of f that belongs to this
// OverlapResult and replaces f's row in place with that sub-fragment.
// keepStart/keepEnd force the sub-fragment to retain f's own original start
// or end instead of clipping to the bait; otherwise the sub-fragment is
// clipped to the bait's boundary on that side.
func (o *OverlapResult) TrimFragment(f Fragment, keepStart, keepEnd bool) Fragment {
	start := f.Start
	end := f.End
	if !keepStart && o.Bait.Start > start {
		start = o.Bait.Start
	}
	if !keepEnd && o.Bait.End < end {
		end = o.Bait.End
	}
	sub := f
	sub.Start = start
	sub.End = end

	key := f.KeyTuple()
	for i, row := range o.Rows {
		if row.IsFragment() && row.Frag.KeyTuple() == key {
			o.Rows[i] = FragmentRow(sub)
			break
		}
	}
	return sub
}

// ToScaffold returns a plain Scaffold holding o's rows, name, tag and
// haplotype, discarding the bait/overhang bookkeeping. Rows are kept in
// input coordinate order while the build engine works on them; a minus
// strand bait flips them into the curator's orientation here, on the way to
// the final output. Used when fusing the working list into output scaffolds.
func (o *OverlapResult) ToScaffold() *Scaffold {
	rows := make([]Row, len(o.Rows))
	if o.Bait.Strand == StrandMinus {
		for i, row := range o.Rows {
			if row.IsFragment() {
				row = FragmentRow(row.Frag.Reverse())
			}
			rows[len(rows)-1-i] = row
		}
	} else {
		copy(rows, o.Rows)
	}
	return &Scaffold{
		Name:      o.Name,
		Rows:      rows,
		Haplotype: o.Haplotype,
		Tag:       o.Tag,
	}
}
