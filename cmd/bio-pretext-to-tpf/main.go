// bio-pretext-to-tpf reconciles a PretextView curator edit against the
// single-base-resolution TPF assembly it was derived from, writing one TPF
// file per resulting output assembly (primary, plus one per haplotype or
// tag such as Haplotig/Contaminant).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bio-tola/assembly"
	"github.com/grailbio/bio-tola/assembly/assemblyio"
	"github.com/grailbio/bio-tola/assembly/format"
)

var (
	assemblyPath   = flag.String("assembly", "", "Input assembly, in TPF format (required)")
	pretextPath    = flag.String("pretext", "", "Curator edit assembly, in PretextView AGP format (required)")
	outputPath     = flag.String("output", "", "Output path for the primary output assembly's TPF file (required)")
	writeLog       = flag.Bool("write-log", false, "Write a run summary alongside the output, named like the output but with a .log extension")
	autosomePrefix = flag.String("autosome-prefix", "", "Prefix for generated autosome names (default RL_)")
	gapLength      = flag.Int64("default-gap-length", 200, "Length of gaps inserted between fused pieces and missing scaffolds")
	gapType        = flag.String("default-gap-type", "TYPE-2", "Type of gaps inserted between fused pieces and missing scaffolds")
)

func main() {
	shutdown := grail.Init()
	defer shutdown()

	if *assemblyPath == "" || *pretextPath == "" || *outputPath == "" {
		log.Fatalf("-assembly, -pretext and -output are all required")
	}

	ctx := vcontext.Background()

	inputAsm, err := readAssembly(ctx, *assemblyPath, format.ParseTPF)
	if err != nil {
		log.Panicf("%v", err)
	}
	editAsm, err := readAssembly(ctx, *pretextPath, format.ParseAGP)
	if err != nil {
		log.Panicf("%v", err)
	}

	indexedInput, err := assembly.NewIndexedAssembly(inputAsm)
	if err != nil {
		log.Panicf("indexing %s: %v", *assemblyPath, err)
	}

	defaultGap, err := assembly.NewGap(*gapLength, *gapType)
	if err != nil {
		log.Panicf("%v", err)
	}

	build := assembly.NewBuildAssembly(outputBaseName(*outputPath), &defaultGap, *autosomePrefix)
	if err := build.RemapToInputAssembly(editAsm, indexedInput); err != nil {
		log.Panicf("%v", err)
	}

	assemblies := build.AssembliesWithScaffoldsFused()

	if err := writeOutputs(ctx, *outputPath, assemblies); err != nil {
		log.Panicf("%v", err)
	}

	if *writeLog {
		if err := writeRunLog(ctx, logPath(*outputPath), build.Stats); err != nil {
			log.Panicf("writing run log: %v", err)
		}
	}

	log.Debug.Printf("exiting")
}

// readAssembly opens path and feeds it through parse, naming the resulting
// Assembly after the file's base name (without extension).
func readAssembly(ctx context.Context, path string, parse func(r io.Reader, name string) (*assembly.Assembly, error)) (*assembly.Assembly, error) {
	r, err := assemblyio.OpenInput(ctx, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return parse(r, outputBaseName(path))
}

func outputBaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func logPath(outputPath string) string {
	return filepath.Join(filepath.Dir(outputPath), outputBaseName(outputPath)+".log")
}

// writeOutputs writes one TPF file per output assembly. The primary
// assembly (keyed "" by AssembliesWithScaffoldsFused, named exactly
// outputBaseName(outputPath)) is written to outputPath itself; every other
// assembly (a haplotype or tag partition) is written alongside it, named
// after the assembly and sharing outputPath's extension.
func writeOutputs(ctx context.Context, outputPath string, assemblies map[string]*assembly.Assembly) error {
	base := outputBaseName(outputPath)
	dir := filepath.Dir(outputPath)
	ext := filepath.Ext(outputPath)

	for _, asm := range assemblies {
		path := outputPath
		if asm.Name != base {
			path = filepath.Join(dir, asm.Name+ext)
		}
		if err := writeOneTPF(ctx, path, asm); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		log.Printf("Wrote %s: %d scaffolds", path, len(asm.Scaffolds))
	}
	return nil
}

func writeOneTPF(ctx context.Context, path string, asm *assembly.Assembly) error {
	w, err := assemblyio.CreateOutput(ctx, path)
	if err != nil {
		return err
	}
	if err := format.WriteTPF(w, asm); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// writeRunLog writes a plain-text summary of the run: the autosome prefix,
// the number of cuts made, and each output assembly's scaffold count, base
// count, mean scaffold length and N50.
func writeRunLog(ctx context.Context, path string, stats *assembly.AssemblyStats) error {
	w, err := assemblyio.CreateOutput(ctx, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "autosome prefix: %s\n", stats.AutosomePrefix)
	fmt.Fprintf(w, "cuts: %d\n", stats.Cuts)
	names := make([]string, 0, len(stats.Reports))
	for name := range stats.Reports {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r := stats.Reports[name]
		fmt.Fprintf(w, "%s: %d scaffolds, %d bp, mean %.1f, N50 %d\n",
			r.Name, r.ScaffoldCount, r.BaseCount, r.MeanScaffoldLn, r.N50)
	}
	return w.Close()
}
