package assembly

import (
	"fmt"

	"github.com/grailbio/base/errors"
)

// Error kinds raised by the build engine's algorithmic invariants.
// MissingOverlap is deliberately absent here: a missing overlap is a
// per-fragment warning, not a fatal condition, so it is only ever logged
// (see build_assembly.go), never wrapped as an error.

// ErrInconsistentChrName reports that an edit scaffold carried two distinct
// chromosome-name tags.
func ErrInconsistentChrName(scaffoldName, first, second string) error {
	return errors.E(errors.Invalid,
		fmt.Sprintf("InconsistentChrName: scaffold %q carries both chromosome-name tags %q and %q",
			scaffoldName, first, second))
}

// ErrInconsistentHaplotype reports that an edit scaffold carried two
// distinct haplotype tags.
func ErrInconsistentHaplotype(scaffoldName, first, second string) error {
	return errors.E(errors.Invalid,
		fmt.Sprintf("InconsistentHaplotype: scaffold %q carries both haplotype tags %q and %q",
			scaffoldName, first, second))
}

// ErrFragmentConservationViolation reports that cutting a duplicated
// fragment failed to produce an exact, non-overlapping partition of it.
func ErrFragmentConservationViolation(msg string) error {
	return errors.E(errors.Precondition, "FragmentConservationViolation: "+msg)
}

// ErrMalformedInput wraps a structural parse failure in format A or B.
func ErrMalformedInput(path string, msg string) error {
	return errors.E(errors.Invalid, path, "MalformedInput: "+msg)
}
