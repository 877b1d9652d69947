package format

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/grailbio/bio-tola/assembly"
	"github.com/pkg/errors"
)

var bpPerTexelRe = regexp.MustCompile(`([0-9.]+)\s*bp/texel`)

// ParseAGP reads a PretextView-style AGP edit assembly: comment lines may
// declare the pixel grid's bp/texel resolution, "W" rows are fragments and
// "U" rows are gaps. name becomes the resulting Assembly's name.
func ParseAGP(r io.Reader, name string) (*assembly.Assembly, error) {
	asm := assembly.NewAssembly(name)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var current *assembly.Scaffold
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "##"):
			continue
		case strings.HasPrefix(line, "#"):
			if m := bpPerTexelRe.FindStringSubmatch(line); m != nil {
				bp, err := strconv.ParseFloat(m[1], 64)
				if err != nil {
					return nil, malformed(name, lineNo, fmt.Sprintf("Bad bp/texel value %q", m[1]))
				}
				asm.BpPerTexel = bp
			}
			if strings.TrimSpace(strings.TrimPrefix(line, "#")) != "" {
				asm.HeaderLines = append(asm.HeaderLines, line)
			}
			continue
		case strings.TrimSpace(line) == "":
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 5 {
			return nil, malformed(name, lineNo, "Wrong field count")
		}
		scaffoldName := fields[0]
		rowType := fields[4]

		var row assembly.Row
		switch rowType {
		case "W":
			if len(fields) < 9 {
				return nil, malformed(name, lineNo, "Wrong field count")
			}
			start, err1 := strconv.ParseInt(fields[6], 10, 64)
			end, err2 := strconv.ParseInt(fields[7], 10, 64)
			if err1 != nil || err2 != nil {
				return nil, malformed(name, lineNo, "Bad fragment coordinates")
			}
			strand := agpStrand(fields[8])
			frag, err := assembly.NewFragment(fields[5], start, end, strand)
			if err != nil {
				return nil, malformed(name, lineNo, err.Error())
			}
			if len(fields) > 9 {
				frag.Tags = make(map[string]struct{}, len(fields)-9)
				for _, tag := range fields[9:] {
					if tag != "" {
						frag.Tags[tag] = struct{}{}
					}
				}
			}
			row = assembly.FragmentRow(frag)
		case "U":
			if len(fields) < 9 {
				return nil, malformed(name, lineNo, "Wrong field count")
			}
			length, err := strconv.ParseInt(fields[5], 10, 64)
			if err != nil {
				return nil, malformed(name, lineNo, fmt.Sprintf("Bad gap length %q", fields[5]))
			}
			gap, err := assembly.NewGap(length, fields[6])
			if err != nil {
				return nil, malformed(name, lineNo, err.Error())
			}
			row = assembly.GapRow(gap)
		default:
			return nil, malformed(name, lineNo, fmt.Sprintf("Unknown row type %q", rowType))
		}

		if current == nil || current.Name != scaffoldName {
			if current != nil {
				asm.AddScaffold(current)
			}
			current = assembly.NewScaffold(scaffoldName)
		}
		if err := current.AppendRow(row); err != nil {
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

func agpStrand(s string) assembly.Strand {
	if len(s) != 1 {
		return assembly.StrandUnknown
	}
	switch assembly.Strand(s[0]) {
	case assembly.StrandPlus:
		return assembly.StrandPlus
	case assembly.StrandMinus:
		return assembly.StrandMinus
	default:
		return assembly.StrandUnknown
	}
}

// WriteAGP writes asm in the same AGP layout ParseAGP reads: an agp-version
// pragma, the carried header lines, then one row per fragment or gap with
// running scaffold coordinates and part numbers. Fragment tags are written
// in sorted order.
func WriteAGP(w io.Writer, asm *assembly.Assembly) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "##agp-version 2.1"); err != nil {
		return err
	}
	for _, line := range asm.HeaderLines {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	for _, scffld := range asm.Scaffolds {
		var pos int64 = 1
		for partN, row := range scffld.Rows {
			end := pos + row.Length() - 1
			var err error
			if row.IsFragment() {
				f := row.Frag
				_, err = fmt.Fprintf(bw, "%s\t%d\t%d\t%d\tW\t%s\t%d\t%d\t%s%s\n",
					scffld.Name, pos, end, partN+1, f.SeqName, f.Start, f.End,
					f.Strand, tagColumns(f))
			} else {
				g := row.Gap
				_, err = fmt.Fprintf(bw, "%s\t%d\t%d\t%d\tU\t%d\t%s\tyes\tproximity_ligation\n",
					scffld.Name, pos, end, partN+1, g.Length, g.Type)
			}
			if err != nil {
				return err
			}
			pos = end + 1
		}
	}
	return bw.Flush()
}

func tagColumns(f assembly.Fragment) string {
	if len(f.Tags) == 0 {
		return ""
	}
	tags := make([]string, 0, len(f.Tags))
	for t := range f.Tags {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return "\t" + strings.Join(tags, "\t")
}
