// uvmasm is the subcommand front end for the teaching-VM assembler.
// It wraps the same pkg/asm core as the root binary: `build` writes
// the binary instruction stream, `list` prints the parsed program.
package main

import (
	goflag "flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"uvmasm/pkg/asm"
)

var rootCmd = &cobra.Command{
	Use:   "uvmasm",
	Short: "Assembler for the four-opcode teaching virtual machine",
	Long: `uvmasm translates line-oriented source text (mnemonic[,operand]
per line, # comments) into the fixed-format binary instruction stream
of the teaching virtual machine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var outPath string

var buildCmd = &cobra.Command{
	Use:   "build sourceFile",
	Short: "Assemble a source file into a binary instruction stream",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		code, err := asm.Assemble(string(source))
		if err != nil {
			printErrors(err)
			return fmt.Errorf("assembly of %s failed", args[0])
		}

		output := outPath
		if output == "" {
			output = replaceExt(args[0], ".bin")
		}
		if err := os.WriteFile(output, code, 0o644); err != nil {
			return err
		}

		glog.V(1).Infof("assembled %s: %d bytes", args[0], len(code))
		fmt.Printf("assembled %d bytes -> %s\n", len(code), output)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list sourceFile",
	Short: "Print the parsed program with its encoded bytes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		prog, err := asm.Parse(string(source))
		if err != nil {
			printErrors(err)
			return fmt.Errorf("parse of %s failed", args[0])
		}

		glog.V(1).Infof("parsed %s: %d instructions", args[0], len(prog))
		fmt.Print(asm.Listing(prog))
		return nil
	},
}

func printErrors(err error) {
	if aerr, ok := err.(*asm.AssemblyError); ok {
		for _, e := range aerr.Errors {
			fmt.Fprintf(os.Stderr, "  - %v\n", e)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "  - %v\n", err)
}

func replaceExt(path, newExt string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return path + newExt
	}
	return strings.TrimSuffix(path, ext) + newExt
}

func init() {
	// glog registers its flags (-v, -logtostderr, ...) on the stdlib
	// flag set; expose them through cobra.
	rootCmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)
	buildCmd.Flags().StringVarP(&outPath, "out", "o", "", "output binary file path (default: input with .bin extension)")
	rootCmd.AddCommand(buildCmd, listCmd)
}

func main() {
	defer glog.Flush()
	if err := rootCmd.Execute(); err != nil {
		glog.Errorf("%v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
