package assembly

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	chrNameTagRe = regexp.MustCompile(`^[A-Z][0-9]*$`)

	// Tags with a structural meaning of their own; never haplotype names.
	notHaplotypeTags = map[string]struct{}{
		"Contaminant": {},
		"Cut":         {},
		"Haplotig":    {},
		"Unloc":       {},
	}
)

// ChrNamer assigns chromosome names, haplotype labels and unlocalised
// contig suffixes as an edit assembly is walked, one edit scaffold at a
// time. It must be explicitly constructed and passed to BuildAssembly; it is
// not a singleton.
type ChrNamer struct {
	AutosomePrefix string

	chrNameN  int
	haplotigN int
	unlocN    int

	CurrentChrName   string
	CurrentHaplotype string
	haplotypeSet     map[string]struct{}

	HaplotigScaffolds []*OverlapResult
	unlocScaffolds    []*OverlapResult
}

// NewChrNamer creates a ChrNamer with the default "RL_" autosome prefix.
func NewChrNamer() *ChrNamer {
	return &ChrNamer{
		AutosomePrefix: "RL_",
		haplotypeSet:   make(map[string]struct{}),
	}
}

// MakeChrName inspects the union of fragment tags on an edit scaffold and
// decides the chromosome name and haplotype that every fragment within it
// will be labelled with. It must be called once per edit scaffold, before
// any of that scaffold's fragments are labelled.
func (c *ChrNamer) MakeChrName(scffld *Scaffold) error {
	var chrName, haplotype string
	var isPainted bool

	for tag := range scffld.FragmentTags() {
		switch {
		case tag == "Painted":
			isPainted = true
		case chrNameTagRe.MatchString(tag):
			if chrName != "" && tag != chrName {
				return ErrInconsistentChrName(scffld.Name, chrName, tag)
			}
			chrName = tag
		case !isHaplotypeExcluded(tag):
			if haplotype != "" && tag != haplotype {
				return ErrInconsistentHaplotype(scffld.Name, haplotype, tag)
			}
			haplotype = tag
		}
	}

	if chrName == "" {
		if isPainted {
			chrName = c.autosomeName()
		} else {
			if len(scffld.Rows) == 0 || !scffld.Rows[0].IsFragment() {
				return ErrMalformedInput(scffld.Name, "scaffold has no leading fragment to derive a name from")
			}
			chrName = scffld.Rows[0].Frag.SeqName
			if prefix, ok := haplotypePrefixOf(chrName); ok {
				if _, seen := c.haplotypeSet[prefix]; seen {
					haplotype = prefix
				}
			}
		}
	}

	c.CurrentChrName = chrName
	c.CurrentHaplotype = haplotype
	if haplotype != "" {
		c.haplotypeSet[haplotype] = struct{}{}
	}
	c.unlocN = 0
	c.unlocScaffolds = nil
	return nil
}

func isHaplotypeExcluded(tag string) bool {
	_, ok := notHaplotypeTags[tag]
	return ok
}

// haplotypePrefixOf splits name on the first underscore, returning the
// part before it. It preserves the upstream tool's documented limitation:
// an unplaced contig from a haplotype that appears before any scaffold
// assigned to that haplotype will not be recognised here.
func haplotypePrefixOf(name string) (string, bool) {
	i := strings.IndexByte(name, '_')
	if i <= 0 {
		return "", false
	}
	return name[:i], true
}

// LabelScaffold assigns the current chromosome/haplotig/unloc/contaminant
// name to result, based on the tags of the edit fragment that produced it.
func (c *ChrNamer) LabelScaffold(result *OverlapResult, fragment Fragment) {
	name := c.CurrentChrName
	switch {
	case fragment.HasTag("Contaminant"):
		result.Tag = "Contaminant"
	case fragment.HasTag("Haplotig"):
		name = c.haplotigName()
		result.Tag = "Haplotig"
		c.HaplotigScaffolds = append(c.HaplotigScaffolds, result)
	case fragment.HasTag("Unloc"):
		name = c.unlocName()
		c.unlocScaffolds = append(c.unlocScaffolds, result)
	}
	result.Name = name
	result.Haplotype = c.CurrentHaplotype
}

func (c *ChrNamer) autosomeName() string {
	c.chrNameN++
	return fmt.Sprintf("%s%d", c.AutosomePrefix, c.chrNameN)
}

func (c *ChrNamer) haplotigName() string {
	c.haplotigN++
	return fmt.Sprintf("H_%d", c.haplotigN)
}

func (c *ChrNamer) unlocName() string {
	c.unlocN++
	return fmt.Sprintf("%s_unloc_%d", c.CurrentChrName, c.unlocN)
}

// RenameHaplotigsBySize re-sorts HaplotigScaffolds by length, reassigning
// the same set of names in that new order so names track length ranking.
// Called once, globally, after the whole edit assembly has been walked.
func (c *ChrNamer) RenameHaplotigsBySize() {
	renameBySize(c.HaplotigScaffolds)
}

// RenameUnlocsBySize performs the same re-sort, scoped to the unlocs seen
// since the last MakeChrName call. Called once per edit scaffold.
func (c *ChrNamer) RenameUnlocsBySize() {
	renameBySize(c.unlocScaffolds)
}

func renameBySize(scaffolds []*OverlapResult) {
	if len(scaffolds) == 0 {
		return
	}
	names := make([]string, len(scaffolds))
	for i, s := range scaffolds {
		names[i] = s.Name
	}
	bySize := make([]*OverlapResult, len(scaffolds))
	copy(bySize, scaffolds)
	sort.SliceStable(bySize, func(i, j int) bool {
		return bySize[i].Length() > bySize[j].Length()
	})
	for i, s := range bySize {
		s.Name = names[i]
	}
}
