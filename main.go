package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"uvmasm/pkg/asm"
)

func main() {
	inPath := flag.String("in", "", "input source file path")
	outPath := flag.String("out", "", "output binary file path (default: input with .bin extension)")
	dump := flag.Bool("dump", false, "print the parsed program instead of writing a binary")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: provide -in to assemble")
		flag.Usage()
		os.Exit(2)
	}

	source, err := os.ReadFile(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read input file %q: %v\n", *inPath, err)
		os.Exit(1)
	}

	if *dump {
		prog, err := asm.Parse(string(source))
		if err != nil {
			reportErrors(err)
			os.Exit(1)
		}
		fmt.Print(asm.Listing(prog))
		return
	}

	code, err := asm.Assemble(string(source))
	if err != nil {
		reportErrors(err)
		os.Exit(1)
	}

	output := *outPath
	if output == "" {
		output = defaultOutputPath(*inPath)
	}

	if err := writeBinary(output, code); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write binary file %q: %v\n", output, err)
		os.Exit(1)
	}

	fmt.Printf("assembled %d bytes -> %s\n", len(code), output)
}

// reportErrors prints every collected line error on its own line.
func reportErrors(err error) {
	fmt.Fprintln(os.Stderr, "assembly failed:")
	if aerr, ok := err.(*asm.AssemblyError); ok {
		for _, e := range aerr.Errors {
			fmt.Fprintf(os.Stderr, "  - %v\n", e)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "  - %v\n", err)
}

func defaultOutputPath(inPath string) string {
	ext := filepath.Ext(inPath)
	if ext == "" {
		return inPath + ".bin"
	}
	return strings.TrimSuffix(inPath, ext) + ".bin"
}

func writeBinary(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
