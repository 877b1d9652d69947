package assembly

import "fmt"

// Scaffold is an ordered sequence of rows (fragments and gaps) naming one
// output or input sequence. The first and last rows must be fragments, and
// two consecutive rows may never both be gaps.
type Scaffold struct {
	Name      string
	Rows      []Row
	Haplotype string
	Tag       string
}

// NewScaffold creates an empty, named Scaffold.
func NewScaffold(name string) *Scaffold {
	return &Scaffold{Name: name}
}

// AppendRow appends row, enforcing the no-leading-gap and no-adjacent-gap
// invariants.
func (s *Scaffold) AppendRow(row Row) error {
	if row.IsGap() {
		if len(s.Rows) == 0 {
			return fmt.Errorf("scaffold %q: cannot start with a gap row", s.Name)
		}
		if s.Rows[len(s.Rows)-1].IsGap() {
			return fmt.Errorf("scaffold %q: cannot append a gap after a gap", s.Name)
		}
	}
	s.Rows = append(s.Rows, row)
	return nil
}

// AppendScaffold appends every row of other to s. If gap is non-nil and s
// already holds rows, a separator gap row is inserted first, mirroring the
// way fused Scaffolds join physically discontiguous pieces of the same
// named sequence.
func (s *Scaffold) AppendScaffold(other *Scaffold, gap *Gap) error {
	if gap != nil && len(s.Rows) > 0 {
		if err := s.AppendRow(GapRow(*gap)); err != nil {
			return err
		}
	}
	for _, row := range other.Rows {
		if err := s.AppendRow(row); err != nil {
			return err
		}
	}
	return nil
}

// Fragments iterates the Fragment rows of s, in row order.
func (s *Scaffold) Fragments() []Fragment {
	out := make([]Fragment, 0, len(s.Rows))
	for _, row := range s.Rows {
		if row.IsFragment() {
			out = append(out, row.Frag)
		}
	}
	return out
}

// FragmentTags returns the union of tags across every fragment row.
func (s *Scaffold) FragmentTags() map[string]struct{} {
	tags := make(map[string]struct{})
	for _, row := range s.Rows {
		if !row.IsFragment() {
			continue
		}
		for t := range row.Frag.Tags {
			tags[t] = struct{}{}
		}
	}
	return tags
}

// Length returns the sum of every row's length.
func (s *Scaffold) Length() int64 {
	var n int64
	for _, row := range s.Rows {
		n += row.Length()
	}
	return n
}

// Validate checks the well-formedness invariants: the scaffold must be
// non-empty, and its first and last rows must be fragments.
func (s *Scaffold) Validate() error {
	if len(s.Rows) == 0 {
		return fmt.Errorf("scaffold %q: has no rows", s.Name)
	}
	if s.Rows[0].IsGap() {
		return fmt.Errorf("scaffold %q: first row is a gap", s.Name)
	}
	if s.Rows[len(s.Rows)-1].IsGap() {
		return fmt.Errorf("scaffold %q: last row is a gap", s.Name)
	}
	return nil
}

func (s *Scaffold) String() string {
	out := fmt.Sprintf("  %s\n", s.Name)
	var pos int64 = 1
	for _, row := range s.Rows {
		end := pos + row.Length() - 1
		out += fmt.Sprintf("%15d%12d  %s\n", pos, end, row.String())
		pos = end + 1
	}
	return out
}
