package assembly

import (
	"sort"

	"github.com/grailbio/base/log"
)

// FoundFragment records every OverlapResult a given input fragment was
// placed into. It holds non-owning references (pointers) into
// BuildAssembly's working scaffold list; it never owns them.
type FoundFragment struct {
	Fragment  Fragment
	Scaffolds []*OverlapResult
}

// NewFoundFragment creates a FoundFragment for fragment with no scaffolds
// yet recorded.
func NewFoundFragment(fragment Fragment) *FoundFragment {
	return &FoundFragment{Fragment: fragment}
}

// ScaffoldCount is the number of OverlapResults fragment has been placed in.
func (f *FoundFragment) ScaffoldCount() int { return len(f.Scaffolds) }

// AddScaffold records that fragment was placed in scffld.
func (f *FoundFragment) AddScaffold(scffld *OverlapResult) {
	f.Scaffolds = append(f.Scaffolds, scffld)
}

// RemoveScaffold removes the first recorded occurrence of scffld.
func (f *FoundFragment) RemoveScaffold(scffld *OverlapResult) {
	for i, s := range f.Scaffolds {
		if s == scffld {
			f.Scaffolds = append(f.Scaffolds[:i], f.Scaffolds[i+1:]...)
			return
		}
	}
}

// premiseEnd selects which terminal row (and which overhang) an
// OverhangPremise concerns. A single premise type carrying this selector
// replaces the start/end premise subclasses of the original design; the
// four accessors below dispatch on it rather than on inheritance.
type premiseEnd int

const (
	premiseAtStart premiseEnd = iota
	premiseAtEnd
)

// OverhangPremise is a candidate repair action: discard the terminal
// fragment row at one end of an OverlapResult, because that fragment is
// also claimed by another OverlapResult.
type OverhangPremise struct {
	Scaffold *OverlapResult
	Fragment Fragment
	End      premiseEnd
}

// BaitOverlap returns the bases of the relevant terminal row that overlap
// the bait.
func (p *OverhangPremise) BaitOverlap() int64 {
	if p.End == premiseAtStart {
		return p.Scaffold.StartRowBaitOverlap()
	}
	return p.Scaffold.EndRowBaitOverlap()
}

// OverhangIfApplied returns what the relevant overhang would become if this
// premise were applied.
func (p *OverhangPremise) OverhangIfApplied() int64 {
	if p.End == premiseAtStart {
		return p.Scaffold.OverhangIfStartRemoved()
	}
	return p.Scaffold.OverhangIfEndRemoved()
}

// currentOverhang returns the relevant overhang as it stands now.
func (p *OverhangPremise) currentOverhang() int64 {
	if p.End == premiseAtStart {
		return p.Scaffold.StartOverhang
	}
	return p.Scaffold.EndOverhang
}

// OverhangErrorDeltaIfApplied is |overhang_if_applied| - |current_overhang|:
// negative means applying the premise shrinks the error.
func (p *OverhangPremise) OverhangErrorDeltaIfApplied() int64 {
	return absI64(p.OverhangIfApplied()) - absI64(p.currentOverhang())
}

func absI64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// Improves reports whether applying the premise is a safe improvement: the
// OverlapResult must have more than one row, the error delta must shrink,
// and the resulting overhang must not become a large negative value that
// should instead be handled by cutting.
func (p *OverhangPremise) Improves(errLength int64) bool {
	if len(p.Scaffold.Rows) == 1 {
		return false
	}
	delta := p.OverhangErrorDeltaIfApplied()
	return delta < 0 && p.OverhangIfApplied() > -3*errLength
}

// MakesWorse is the negation of Improves.
func (p *OverhangPremise) MakesWorse(errLength int64) bool {
	return !p.Improves(errLength)
}

// Apply discards the terminal row this premise concerns.
func (p *OverhangPremise) Apply() {
	if p.End == premiseAtStart {
		p.Scaffold.DiscardStart()
	} else {
		p.Scaffold.DiscardEnd()
	}
}

// OverhangResolver takes a set of FoundFragments whose fragment appears in
// more than one OverlapResult and runs one round of deciding which copy to
// discard.
type OverhangResolver struct {
	ErrLength int64
	premises  map[FragmentKey][]*OverhangPremise
}

// NewOverhangResolver creates an OverhangResolver bounding decisions to
// errLength bases of noise.
func NewOverhangResolver(errLength int64) *OverhangResolver {
	return &OverhangResolver{ErrLength: errLength, premises: make(map[FragmentKey][]*OverhangPremise)}
}

// AddOverhangPremise records a premise for fragment sitting in scffld, if it
// sits at the first or last row; interior occurrences are ignored, since
// they are handled by cutting instead.
func (r *OverhangResolver) AddOverhangPremise(fragment Fragment, scffld *OverlapResult) {
	var end premiseEnd
	switch {
	case len(scffld.Rows) > 0 && scffld.Rows[0].Frag.KeyTuple() == fragment.KeyTuple():
		end = premiseAtStart
	case len(scffld.Rows) > 0 && scffld.Rows[len(scffld.Rows)-1].Frag.KeyTuple() == fragment.KeyTuple():
		end = premiseAtEnd
	default:
		return
	}
	fk := fragment.KeyTuple()
	r.premises[fk] = append(r.premises[fk], &OverhangPremise{Scaffold: scffld, Fragment: fragment, End: end})
}

// MakeFixes processes every fragment's premise list once, returning the
// premises that were applied.
func (r *OverhangResolver) MakeFixes() []*OverhangPremise {
	var fixesMade []*OverhangPremise
	errLength := r.ErrLength

	for _, premList := range r.premises {
		log.Debug.Printf("%d OverhangPremises for %v", len(premList), premList[0].Fragment)

		if len(premList) == 2 {
			frst, scnd := premList[0], premList[1]
			if frst.BaitOverlap() < errLength && scnd.BaitOverlap() < errLength {
				if frst.BaitOverlap() < scnd.BaitOverlap() {
					frst.Apply()
					fixesMade = append(fixesMade, frst)
				} else {
					scnd.Apply()
					fixesMade = append(fixesMade, scnd)
				}
				continue
			}
		}

		if len(premList) > 1 {
			bestToWorst := append([]*OverhangPremise(nil), premList...)
			sort.SliceStable(bestToWorst, func(i, j int) bool {
				return bestToWorst[i].OverhangErrorDeltaIfApplied() < bestToWorst[j].OverhangErrorDeltaIfApplied()
			})
			bst, nxt := bestToWorst[0], bestToWorst[1]
			if bst.Improves(errLength) && nxt.MakesWorse(errLength) {
				bst.Apply()
				fixesMade = append(fixesMade, bst)
			}
		}
	}

	return fixesMade
}
