// Package assembly implements the assembly-rebuild engine: reconciling a
// curator-edited genome assembly against the single-base-resolution input
// assembly it was derived from.
package assembly

import "fmt"

// Strand is the orientation of a Fragment relative to its named sequence.
type Strand byte

const (
	StrandUnknown Strand = '?'
	StrandPlus    Strand = '+'
	StrandMinus   Strand = '-'
)

func (s Strand) String() string {
	if s == 0 {
		return string(StrandUnknown)
	}
	return string(s)
}

// FragmentKey is the (seq_name, start, end, strand) tuple two Fragments are
// compared by. It is comparable, so it can be used directly as a map key --
// the Go counterpart of the Python implementation's key_tuple.
type FragmentKey struct {
	SeqName string
	Start   int64
	End     int64
	Strand  Strand
}

// Fragment is a 1-based, inclusive, oriented interval on a named input
// sequence, carrying a set of curator tags.
type Fragment struct {
	SeqName string
	Start   int64
	End     int64
	Strand  Strand
	Tags    map[string]struct{}
}

// NewFragment builds a Fragment from a name, coordinates and tags, applying
// the package's interval invariants.
func NewFragment(seqName string, start, end int64, strand Strand, tags ...string) (Fragment, error) {
	f := Fragment{SeqName: seqName, Start: start, End: end, Strand: strand}
	if len(tags) > 0 {
		f.Tags = make(map[string]struct{}, len(tags))
		for _, t := range tags {
			f.Tags[t] = struct{}{}
		}
	}
	if err := f.Validate(); err != nil {
		return Fragment{}, err
	}
	return f, nil
}

// Validate checks the interval invariants: start >= 1, end >= start.
func (f Fragment) Validate() error {
	if f.Start < 1 {
		return errFragment("start must be >= 1", f)
	}
	if f.End < f.Start {
		return errFragment("end must be >= start", f)
	}
	return nil
}

func errFragment(msg string, f Fragment) error {
	return fmt.Errorf("%s: %s", msg, f)
}

// Length returns the number of bases covered by the Fragment.
func (f Fragment) Length() int64 {
	return f.End - f.Start + 1
}

// KeyTuple returns the value Fragments are compared and hashed by.
func (f Fragment) KeyTuple() FragmentKey {
	return FragmentKey{SeqName: f.SeqName, Start: f.Start, End: f.End, Strand: f.Strand}
}

// HasTag reports whether tag is present on the Fragment.
func (f Fragment) HasTag(tag string) bool {
	_, ok := f.Tags[tag]
	return ok
}

// Overlaps reports whether f and other share any base on the same sequence.
func (f Fragment) Overlaps(other Fragment) bool {
	if f.SeqName != other.SeqName {
		return false
	}
	return f.Start <= other.End && other.Start <= f.End
}

// Abuts reports whether f and other are contiguous on the same sequence,
// i.e. one starts exactly where the other ends.
func (f Fragment) Abuts(other Fragment) bool {
	if f.SeqName != other.SeqName {
		return false
	}
	return f.End+1 == other.Start || other.End+1 == f.Start
}

// Reverse returns a copy of f spanning the same interval with the strand
// flipped.
func (f Fragment) Reverse() Fragment {
	g := f
	switch f.Strand {
	case StrandPlus:
		g.Strand = StrandMinus
	case StrandMinus:
		g.Strand = StrandPlus
	default:
		g.Strand = StrandUnknown
	}
	return g
}

// WithTags returns a copy of f with the given tag set.
func (f Fragment) WithTags(tags map[string]struct{}) Fragment {
	g := f
	g.Tags = tags
	return g
}

func (f Fragment) String() string {
	glyph := "."
	switch f.Strand {
	case StrandPlus, StrandMinus:
		glyph = string(f.Strand)
	}
	return fmt.Sprintf("%s:%d-%d(%s)", f.SeqName, f.Start, f.End, glyph)
}
