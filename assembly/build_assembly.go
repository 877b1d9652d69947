package assembly

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/grailbio/base/log"
)

// workingEntry is one element of BuildAssembly's working scaffold list. It
// holds either an OverlapResult (produced while walking the edit assembly)
// or a plain Scaffold (produced by addMissingScaffoldsFromInput); exactly
// one field is set. A Kind-tagged union was not used here, unlike Row,
// because the two cases never need anything beyond the accessors below.
type workingEntry struct {
	overlap *OverlapResult
	plain   *Scaffold
}

func (e workingEntry) Name() string {
	if e.overlap != nil {
		return e.overlap.Name
	}
	return e.plain.Name
}

func (e workingEntry) Haplotype() string {
	if e.overlap != nil {
		return e.overlap.Haplotype
	}
	return e.plain.Haplotype
}

func (e workingEntry) Tag() string {
	if e.overlap != nil {
		return e.overlap.Tag
	}
	return e.plain.Tag
}

func (e workingEntry) Rows() []Row {
	if e.overlap != nil {
		return e.overlap.Rows
	}
	return e.plain.Rows
}

// appendTo fuses this entry's rows onto dst. OverlapResults are physically
// discontiguous pieces of the same named sequence, so a separator gap goes
// between them; plain scaffolds carried over from the input keep their own
// internal gap structure and get no extra separator.
func (e workingEntry) appendTo(dst *Scaffold, gap *Gap) error {
	if e.overlap != nil {
		return dst.AppendScaffold(e.overlap.ToScaffold(), gap)
	}
	return dst.AppendScaffold(e.plain, nil)
}

// BuildAssembly reconciles a curator-edited assembly against the
// single-base-resolution input assembly it was derived from. It holds a
// working list of mutable OverlapResults (and, once
// addMissingScaffoldsFromInput runs, plain Scaffolds) rather than finished
// Scaffolds; AssembliesWithScaffoldsFused fuses them by name into the final
// output assemblies.
type BuildAssembly struct {
	Name        string
	HeaderLines []string
	BpPerTexel  float64
	DefaultGap  *Gap

	ChrNamer *ChrNamer
	Stats    *AssemblyStats

	workingList    []workingEntry
	foundFragments map[FragmentKey]*FoundFragment
	multi          map[FragmentKey]*FoundFragment
}

// NewBuildAssembly creates a BuildAssembly. defaultGap is used to separate
// fused scaffold pieces and to bridge non-adjacent missing fragments; pass
// the empty string as autosomePrefix to keep ChrNamer's "RL_" default.
func NewBuildAssembly(name string, defaultGap *Gap, autosomePrefix string) *BuildAssembly {
	namer := NewChrNamer()
	if autosomePrefix != "" {
		namer.AutosomePrefix = autosomePrefix
	}
	return &BuildAssembly{
		Name:           name,
		DefaultGap:     defaultGap,
		ChrNamer:       namer,
		Stats:          &AssemblyStats{AutosomePrefix: namer.AutosomePrefix},
		foundFragments: make(map[FragmentKey]*FoundFragment),
		multi:          make(map[FragmentKey]*FoundFragment),
	}
}

// ErrorLength is the upper bound on coordinate noise introduced by the
// curator tool's pixel grid.
func (b *BuildAssembly) ErrorLength() int64 {
	return 1 + int64(math.Floor(b.BpPerTexel))
}

// RemapToInputAssembly runs the whole reconciliation pipeline: it finds
// every input fragment overlapping editAsm's fragments, resolves or cuts
// fragments claimed by more than one overlap, renames haplotigs by size, and
// carries forward input scaffolds left untouched by the edit.
func (b *BuildAssembly) RemapToInputAssembly(editAsm *Assembly, inputAsm *IndexedAssembly) error {
	if b.BpPerTexel == 0 {
		b.BpPerTexel = editAsm.BpPerTexel
	}
	b.Stats.InputAssembly = inputAsm

	if err := b.findAssemblyOverlaps(editAsm, inputAsm); err != nil {
		return err
	}
	b.discardOverhangingFragments()
	if err := b.cutRemainingOverhangs(); err != nil {
		return err
	}
	b.ChrNamer.RenameHaplotigsBySize()
	return b.addMissingScaffoldsFromInput(&inputAsm.Assembly)
}

func (b *BuildAssembly) findAssemblyOverlaps(editAsm *Assembly, inputAsm *IndexedAssembly) error {
	log.Printf("Pretext resolution = %.0f bp per texel", b.BpPerTexel)
	errLength := b.ErrorLength()
	namer := b.ChrNamer
	for _, scffld := range editAsm.Scaffolds {
		if err := namer.MakeChrName(scffld); err != nil {
			return err
		}
		for _, frag := range scffld.Fragments() {
			found, ok := inputAsm.FindOverlaps(frag)
			if !ok {
				log.Error.Printf("No overlaps found for: %s", frag)
				continue
			}
			namer.LabelScaffold(found, frag)
			found.TrimLargeOverhangs(errLength)
			if len(found.Rows) > 0 {
				b.workingList = append(b.workingList, workingEntry{overlap: found})
				b.storeFragmentsFound(found)
			}
		}
		namer.RenameUnlocsBySize()
	}
	return nil
}

// storeFragmentsFound records every fragment of scffld against the
// fragment it came from in the input assembly, tracking fragments found in
// more than one OverlapResult in multi.
func (b *BuildAssembly) storeFragmentsFound(scffld *OverlapResult) {
	for _, f := range scffld.Fragments() {
		key := f.KeyTuple()
		fnd, ok := b.foundFragments[key]
		if ok {
			b.multi[key] = fnd
		} else {
			fnd = NewFoundFragment(f)
			b.foundFragments[key] = fnd
		}
		fnd.AddScaffold(scffld)
	}
}

// discardOverhangingFragments repeatedly runs an OverhangResolver over the
// current multi set until a round applies no fixes. Each successful round
// strictly decreases the sum of scaffold counts across multi, so this
// terminates within that initial sum's worth of iterations.
func (b *BuildAssembly) discardOverhangingFragments() {
	errLength := b.ErrorLength()
	for len(b.multi) > 0 {
		resolver := NewOverhangResolver(errLength)
		for _, fnd := range b.multi {
			for _, scffld := range fnd.Scaffolds {
				resolver.AddOverhangPremise(fnd.Fragment, scffld)
			}
		}
		fixesMade := resolver.MakeFixes()
		if len(fixesMade) == 0 {
			break
		}
		for _, premise := range fixesMade {
			fk := premise.Fragment.KeyTuple()
			fxd, ok := b.multi[fk]
			if !ok {
				continue
			}
			fxd.RemoveScaffold(premise.Scaffold)
			if fxd.ScaffoldCount() <= 1 {
				delete(b.multi, fk)
			}
		}
	}
}

// cutRemainingOverhangs cuts every fragment still left in multi after
// discardOverhangingFragments gave up on it, then empties multi.
func (b *BuildAssembly) cutRemainingOverhangs() error {
	for _, fnd := range b.multi {
		if err := b.cutFragments(fnd); err != nil {
			return err
		}
	}
	b.multi = make(map[FragmentKey]*FoundFragment)
	return nil
}

// cutFragments replaces fnd's fragment, in each OverlapResult that claims
// it, with the sub-fragment belonging to that OverlapResult, partitioning
// the original fragment with no loss or overlap.
func (b *BuildAssembly) cutFragments(fnd *FoundFragment) error {
	frgmnt := fnd.Fragment
	key := frgmnt.KeyTuple()

	ordered := append([]*OverlapResult(nil), fnd.Scaffolds...)
	sort.SliceStable(ordered, func(i, j int) bool {
		si, _ := ordered[i].FragmentStartIfTrimmed(key)
		sj, _ := ordered[j].FragmentStartIfTrimmed(key)
		return si < sj
	})

	subFragments := make([]Fragment, len(ordered))
	last := len(ordered) - 1
	for i, scffld := range ordered {
		subFragments[i] = scffld.TrimFragment(frgmnt, i == 0, i == last)
	}

	if err := qcSubFragments(frgmnt, subFragments, ordered); err != nil {
		return err
	}
	b.Stats.Cuts += len(subFragments) - 1

	var cuts strings.Builder
	for _, sub := range subFragments {
		fmt.Fprintf(&cuts, "  %15d  %s\n", sub.Length(), sub)
	}
	log.Error.Printf("Contig:\n  %15d  %s\ncut into:\n%s", frgmnt.Length(), frgmnt, cuts.String())
	return nil
}

// qcSubFragments checks that subs abut each other exactly n-1 times, never
// overlap, and sum to original's length, raising
// ErrFragmentConservationViolation otherwise.
func qcSubFragments(original Fragment, subs []Fragment, scaffolds []*OverlapResult) error {
	var abutCount, overlapCount int
	n := len(subs)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if subs[i].Abuts(subs[j]) {
				abutCount++
			}
			if subs[i].Overlaps(subs[j]) {
				overlapCount++
			}
		}
	}

	var total int64
	for _, s := range subs {
		total += s.Length()
	}

	var msg strings.Builder
	if original.Length() != total {
		fmt.Fprintf(&msg, "Sum of fragment lengths %d does not match original fragment length %d\n",
			total, original.Length())
	}
	if overlapCount != 0 {
		fmt.Fprintf(&msg, "Expecting 0 but got %d overlaps in new sub fragments\n", overlapCount)
	}
	if abutCount != n-1 {
		fmt.Fprintf(&msg, "Expecting %d abutting sub fragments but got %d\n", n-1, abutCount)
	}
	if msg.Len() == 0 {
		return nil
	}
	for _, s := range scaffolds {
		fmt.Fprintf(&msg, "\n%s", s.String())
	}
	return ErrFragmentConservationViolation(msg.String())
}

// addMissingScaffoldsFromInput carries forward every input fragment that
// find_assembly_overlaps never touched, grouped back into scaffolds named
// after their input scaffold. Kept fragments on consecutive input rows stay
// adjacent with no gap between them; otherwise the input row just before
// the current fragment is inserted if it is a gap, and DefaultGap if it is
// not.
func (b *BuildAssembly) addMissingScaffoldsFromInput(inputAsm *Assembly) error {
	for _, scffld := range inputAsm.Scaffolds {
		var newScffld *Scaffold
		lastAddedI := -1
		haveLast := false

		for i, row := range scffld.Rows {
			if !row.IsFragment() {
				continue
			}
			if _, ok := b.foundFragments[row.Frag.KeyTuple()]; ok {
				continue
			}
			if newScffld == nil {
				newScffld = NewScaffold(scffld.Name)
			}
			if haveLast && lastAddedI != i-1 {
				prevRow := scffld.Rows[i-1]
				if prevRow.IsGap() {
					if err := newScffld.AppendRow(prevRow); err != nil {
						return err
					}
				} else if b.DefaultGap != nil {
					if err := newScffld.AppendRow(GapRow(*b.DefaultGap)); err != nil {
						return err
					}
				}
			}
			if err := newScffld.AppendRow(FragmentRow(row.Frag)); err != nil {
				return err
			}
			lastAddedI = i
			haveLast = true
		}

		if newScffld != nil {
			if err := b.ChrNamer.MakeChrName(newScffld); err != nil {
				return err
			}
			newScffld.Haplotype = b.ChrNamer.CurrentHaplotype
			b.workingList = append(b.workingList, workingEntry{plain: newScffld})
		}
	}
	return nil
}

// AssembliesWithScaffoldsFused fuses the working list into final Scaffolds,
// partitions them into output assemblies keyed by tag (else haplotype, else
// the primary assembly), sorts each assembly's scaffolds, and computes
// AssemblyStats. It must be called once, after RemapToInputAssembly.
func (b *BuildAssembly) AssembliesWithScaffoldsFused() map[string]*Assembly {
	assemblies := make(map[string]*Assembly)
	for _, scffld := range b.scaffoldsFusedByName() {
		var key, name string
		switch {
		case scffld.Tag != "":
			key = scffld.Tag
			name = fmt.Sprintf("%s_%ss", b.Name, scffld.Tag)
		case scffld.Haplotype != "":
			key = scffld.Haplotype
			name = fmt.Sprintf("%s_%s", b.Name, scffld.Haplotype)
		default:
			name = b.Name
		}
		asm, ok := assemblies[key]
		if !ok {
			asm = NewAssembly(name)
			assemblies[key] = asm
		}
		asm.AddScaffold(scffld)
	}

	autosomePrefix := b.ChrNamer.AutosomePrefix
	for _, asm := range assemblies {
		SmartSortScaffolds(asm.Scaffolds, autosomePrefix)
	}

	b.Stats.MakeStats(assemblies)
	return assemblies
}

// scaffoldsFusedByName walks the working list, grouping consecutive entries
// sharing (haplotype, name) into a single fused Scaffold. Entries with no
// rows are skipped; discardOverhangingFragments may have emptied an
// OverlapResult entirely.
func (b *BuildAssembly) scaffoldsFusedByName() []*Scaffold {
	var out []*Scaffold
	var current *Scaffold
	var currentHap, currentName string
	haveCurrent := false

	for _, entry := range b.workingList {
		if len(entry.Rows()) == 0 {
			continue
		}
		hap, name := entry.Haplotype(), entry.Name()
		if !haveCurrent || hap != currentHap || name != currentName {
			if current != nil {
				out = append(out, current)
			}
			currentHap, currentName = hap, name
			haveCurrent = true
			current = &Scaffold{Name: name, Tag: entry.Tag(), Haplotype: hap}
		}
		if err := entry.appendTo(current, b.DefaultGap); err != nil {
			log.Error.Printf("fusing scaffold %q: %v", name, err)
		}
	}
	if current != nil {
		out = append(out, current)
	}
	return out
}
