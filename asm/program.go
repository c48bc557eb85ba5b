// Package asm assembles RV32I source text into 32-bit instruction words.
package asm

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"iter"

	"github.com/ezrec/rvasm/rv"
)

// Line is an instruction line kept by the address assignment pass.
type Line struct {
	LineNo  int    // Source line number, from 1.
	Address uint32 // Assigned address.
	Text    string // Instruction text, without labels or comments.
	Source  string // Original source line.
}

// Record is a single encoded instruction.
type Record struct {
	LineNo      int
	Address     uint32
	Word        rv.Word
	Source      string
	Instruction rv.Instruction
}

// Program is the result of assembling a source file.
type Program struct {
	Lines       []Line            // Instruction lines, in source order.
	Labels      map[string]uint32 // Label addresses.
	Records     []Record          // Encoded instructions, in source order.
	Diagnostics []error           // Per-line errors, as *ErrSyntax.
}

// Words iterates over the address and word of each record.
func (prog *Program) Words() iter.Seq2[uint32, rv.Word] {
	return func(yield func(address uint32, word rv.Word) bool) {
		for _, record := range prog.Records {
			if !yield(record.Address, record.Word) {
				return
			}
		}
	}
}

// Binary returns the encoded words in record order.
func (prog *Program) Binary() (bins []uint32) {
	for _, word := range prog.Words() {
		bins = append(bins, uint32(word))
	}

	return
}

// OutputFormat selects how a Program is written.
type OutputFormat string

const (
	OUTPUT_LISTING = OutputFormat("listing") // address, binary word and source
	OUTPUT_HEX     = OutputFormat("hex")     // one 8 digit hex word per line
	OUTPUT_BIN     = OutputFormat("bin")     // little endian 32-bit words
)

// ParseOutputFormat validates an output format name.
func ParseOutputFormat(name string) (format OutputFormat, err error) {
	format = OutputFormat(name)
	switch format {
	case OUTPUT_LISTING, OUTPUT_HEX, OUTPUT_BIN:
	default:
		err = ErrFormatInvalid
	}
	return
}

// Write writes the program in the given output format.
func (prog *Program) Write(w io.Writer, format OutputFormat) error {
	switch format {
	case OUTPUT_LISTING:
		return prog.WriteListing(w)
	case OUTPUT_HEX:
		return prog.WriteHex(w)
	case OUTPUT_BIN:
		return prog.WriteBinary(w)
	}
	return ErrFormatInvalid
}

// WriteListing writes one line per record:
//
//	0x<address> 0x<binary word> , <source line>
func (prog *Program) WriteListing(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, record := range prog.Records {
		fmt.Fprintf(bw, "0x%x 0x%v , %v\n", record.Address, record.Word, record.Source)
	}
	return bw.Flush()
}

// WriteHex writes one hexadecimal word per line.
func (prog *Program) WriteHex(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, word := range prog.Words() {
		fmt.Fprintf(bw, "%08x\n", uint32(word))
	}
	return bw.Flush()
}

// WriteBinary writes the words as little endian 32-bit values.
func (prog *Program) WriteBinary(w io.Writer) error {
	return binary.Write(w, binary.LittleEndian, prog.Binary())
}
