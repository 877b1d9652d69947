// Package format parses and writes the two tabular interval-list formats the
// build engine consumes: the TPF-like input assembly format ("format B")
// and PretextView's AGP-like edit output ("format A").
package format

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/grailbio/bio-tola/assembly"
	"github.com/pkg/errors"
)

var tpfFragmentRe = regexp.MustCompile(`^([^:]+):(\d+)-(\d+)$`)

// ParseTPF reads a TPF-style input assembly: each row is either
// "?  target:start-end  scaffold_name  orient" for a fragment or
// "GAP  type  length" for a gap. name becomes the resulting Assembly's name.
func ParseTPF(r io.Reader, name string) (*assembly.Assembly, error) {
	asm := assembly.NewAssembly(name)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var current *assembly.Scaffold
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")

		if fields[0] == "GAP" {
			if len(fields) != 3 {
				return nil, malformed(name, lineNo, "Wrong field count")
			}
			if current == nil {
				return nil, malformed(name, lineNo, "Gap line before first sequence fragment")
			}
			length, err := strconv.ParseInt(fields[2], 10, 64)
			if err != nil {
				return nil, malformed(name, lineNo, fmt.Sprintf("Bad gap length %q", fields[2]))
			}
			gap, err := assembly.NewGap(length, fields[1])
			if err != nil {
				return nil, malformed(name, lineNo, err.Error())
			}
			if err := current.AppendRow(assembly.GapRow(gap)); err != nil {
				return nil, malformed(name, lineNo, err.Error())
			}
			continue
		}

		if len(fields) != 4 {
			return nil, malformed(name, lineNo, "Wrong field count")
		}
		m := tpfFragmentRe.FindStringSubmatch(fields[1])
		if m == nil {
			return nil, malformed(name, lineNo, fmt.Sprintf("Unexpected name format: %q", fields[1]))
		}
		start, _ := strconv.ParseInt(m[2], 10, 64)
		end, _ := strconv.ParseInt(m[3], 10, 64)
		frag, err := assembly.NewFragment(m[1], start, end, parseTpfOrient(fields[3]))
		if err != nil {
			return nil, malformed(name, lineNo, err.Error())
		}

		scaffoldName := fields[2]
		if current == nil || current.Name != scaffoldName {
			if current != nil {
				asm.AddScaffold(current)
			}
			current = assembly.NewScaffold(scaffoldName)
		}
		if err := current.AppendRow(assembly.FragmentRow(frag)); err != nil {
			return nil, malformed(name, lineNo, err.Error())
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading "+name)
	}
	if current != nil {
		asm.AddScaffold(current)
	}
	return asm, nil
}

func parseTpfOrient(s string) assembly.Strand {
	switch strings.ToUpper(s) {
	case "PLUS":
		return assembly.StrandPlus
	case "MINUS":
		return assembly.StrandMinus
	default:
		return assembly.StrandUnknown
	}
}

func tpfOrient(s assembly.Strand) string {
	switch s {
	case assembly.StrandPlus:
		return "PLUS"
	case assembly.StrandMinus:
		return "MINUS"
	default:
		return "?"
	}
}

// WriteTPF writes asm in the same TPF-style row format ParseTPF reads.
func WriteTPF(w io.Writer, asm *assembly.Assembly) error {
	bw := bufio.NewWriter(w)
	for _, scffld := range asm.Scaffolds {
		for _, row := range scffld.Rows {
			var err error
			if row.IsFragment() {
				f := row.Frag
				_, err = fmt.Fprintf(bw, "?\t%s:%d-%d\t%s\t%s\n",
					f.SeqName, f.Start, f.End, scffld.Name, tpfOrient(f.Strand))
			} else {
				g := row.Gap
				_, err = fmt.Fprintf(bw, "GAP\t%s\t%d\n", g.Type, g.Length)
			}
			if err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func malformed(name string, lineNo int, msg string) error {
	return assembly.ErrMalformedInput(name, fmt.Sprintf("line %d: %s", lineNo, msg))
}
