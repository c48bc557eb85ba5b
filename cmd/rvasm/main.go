// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/rvasm/asm"
	"github.com/ezrec/rvasm/translate"
)

// options are the command line settings.
type options struct {
	input   string
	output  string
	format  string
	defines []string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "rvasm",
		Short:         "Translate RV32I assembly into machine code",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "input.asm", "assembly source file")
	flags.StringVarP(&opts.output, "output", "o", "output.mc", "machine code output file")
	flags.StringVarP(&opts.format, "format", "f", string(asm.OUTPUT_LISTING), "output format: listing, hex or bin")
	flags.StringArrayVarP(&opts.defines, "define", "D", nil, "NAME=VALUE constant for $(...) expressions")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose mode")

	return rootCmd
}

func run(cmd *cobra.Command, opts *options) (err error) {
	assembler := &asm.Assembler{Verbose: opts.verbose}
	for _, def := range opts.defines {
		err = assembler.PredefineString(def)
		if err != nil {
			return fmt.Errorf("%v: %w", def, err)
		}
	}

	format, err := asm.ParseOutputFormat(opts.format)
	if err != nil {
		return fmt.Errorf("%v: %w", opts.format, err)
	}

	inf, err := os.Open(opts.input)
	if err != nil {
		return err
	}
	defer inf.Close()

	ouf, err := os.Create(opts.output)
	if err != nil {
		return err
	}
	defer ouf.Close()

	prog, err := assembler.Parse(inf)
	if err != nil {
		return fmt.Errorf("%v: %w", opts.input, err)
	}

	for _, diag := range prog.Diagnostics {
		fmt.Fprintf(cmd.ErrOrStderr(), "%v: %v\n", opts.input, diag)
	}

	err = prog.Write(ouf, format)
	if err != nil {
		return fmt.Errorf("%v: %w", opts.output, err)
	}

	err = ouf.Close()
	if err != nil {
		return fmt.Errorf("%v: %w", opts.output, err)
	}

	translate.Fprintf(cmd.OutOrStdout(), "Assembly successfully translated to machine code in %v!\n", opts.output)

	return
}

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}
