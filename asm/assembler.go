// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/rvasm/rv"
)

// INSTRUCTION_SIZE is the address step between instructions, in bytes.
const INSTRUCTION_SIZE = 4

// Assembler is a two pass assembler for the RV32I instruction subset.
//
// The first pass assigns addresses and records labels, the second pass
// encodes each instruction line. Errors on a single line are collected as
// diagnostics and do not stop the remaining lines from being encoded.
type Assembler struct {
	Verbose   bool            // If set, verbosely logs the assembler actions.
	Catalog   *rv.Catalog     // Instruction catalog. nil selects rv.DefaultCatalog().
	Registers *rv.RegisterSet // Register names. nil selects rv.DefaultRegisters().

	predefine map[string]int64  // Predefines
	Label     map[string]uint32 // Map of labels to addresses.
}

// Predefine defines a new constant for $(...) expressions, or redefines an
// existing one.
func (asm *Assembler) Predefine(name string, value int64) {
	if asm.predefine == nil {
		asm.predefine = map[string]int64{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// PredefineString parses a NAME=VALUE definition.
func (asm *Assembler) PredefineString(def string) (err error) {
	name, text, ok := strings.Cut(def, "=")
	if !ok || len(name) == 0 {
		err = ErrPredefineSyntax
		return
	}

	value, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		err = ErrParseNumber(text)
		return
	}

	asm.Predefine(name, value)
	return
}

func (asm *Assembler) catalog() *rv.Catalog {
	if asm.Catalog == nil {
		return rv.DefaultCatalog()
	}
	return asm.Catalog
}

func (asm *Assembler) registers() *rv.RegisterSet {
	if asm.Registers == nil {
		return rv.DefaultRegisters()
	}
	return asm.Registers
}

// stripComment removes '#' and ';' comments from a line.
func stripComment(text string) string {
	n := strings.IndexAny(text, "#;")
	if n >= 0 {
		text = text[:n]
	}
	return text
}

// Parse reads an input stream and assembles it into a Program.
//
// The returned error is only set for failures that stop the whole run: an
// unreadable input or a malformed label. Errors in individual instruction
// lines are in Program.Diagnostics.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	lines, err := asm.assignAddresses(input)
	if err != nil {
		return
	}

	prog = &Program{
		Lines:  lines,
		Labels: maps.Clone(asm.Label),
	}

	for _, line := range lines {
		var record Record
		record, err = asm.encodeLine(line)
		if err != nil {
			err = &ErrSyntax{LineNo: line.LineNo, Line: line.Source, Err: err}
			if asm.Verbose {
				log.Printf("asm: %v", err)
			}
			prog.Diagnostics = append(prog.Diagnostics, err)
			err = nil
			continue
		}

		if asm.Verbose {
			log.Printf("asm: 0x%x: %v %v", record.Address, record.Word.Split(record.Instruction.Format()), record.Instruction)
		}
		prog.Records = append(prog.Records, record)
	}

	if asm.Verbose {
		log.Printf("asm: %d records, %d labels, %d diagnostics", len(prog.Records), len(prog.Labels), len(prog.Diagnostics))
	}

	return
}

// assignAddresses is the first pass. It records each label at the current
// address, and assigns an address to every instruction line.
func (asm *Assembler) assignAddresses(input io.Reader) (lines []Line, err error) {
	scanner := bufio.NewScanner(input)

	var source string
	var lineno int
	var address uint32

	asm.Label = make(map[string]uint32, 16)

	for scanner.Scan() {
		source = scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, source)
		}

		words := strings.Fields(stripComment(source))

		for len(words) > 0 && strings.HasSuffix(words[0], ":") {
			label := strings.TrimSuffix(words[0], ":")
			if len(label) == 0 {
				err = &ErrSyntax{LineNo: lineno, Line: source, Err: ErrLabelInvalid}
				return
			}
			_, ok := asm.Label[label]
			if ok {
				err = &ErrSyntax{LineNo: lineno, Line: source, Err: ErrLabelDuplicate}
				return
			}
			asm.Label[label] = address
			words = words[1:]
		}

		if len(words) == 0 {
			continue
		}

		lines = append(lines, Line{
			LineNo:  lineno,
			Address: address,
			Text:    strings.Join(words, " "),
			Source:  source,
		})
		address += INSTRUCTION_SIZE
	}

	err = scanner.Err()

	return
}

// exprMatch finds $(...) compile-time expressions, allowing one level of
// nested parentheses.
var exprMatch = regexp.MustCompile(`\$\((?:[^$()]|\([^$()]*\))*\)`)

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string, line Line) (value int64, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for label, address := range asm.Label {
		pred[label] = starlark.MakeUint64(uint64(address))
	}
	for name, value := range asm.predefine {
		pred[name] = starlark.MakeInt64(value)
	}
	pred["ADDR"] = starlark.MakeUint64(uint64(line.Address))
	pred["LINENO"] = starlark.MakeInt(line.LineNo)

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		if asm.Verbose {
			log.Printf("asm: $(%v): %v", expr, err)
		}
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// isSeparator splits operands on whitespace and commas.
func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}

// splitLine evaluates expressions in the line, then splits it into words.
func (asm *Assembler) splitLine(line Line) (words []string, err error) {
	text := exprMatch.ReplaceAllStringFunc(line.Text, func(str string) string {
		value, _err := asm.parenEval(str[2:len(str)-1], line)
		if _err != nil && err == nil {
			err = _err
		}
		return strconv.FormatInt(value, 10)
	})
	if err != nil {
		return
	}

	words = strings.FieldsFunc(text, isSeparator)
	return
}

// immediate parses an integer immediate.
func (asm *Assembler) immediate(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}

// offsetBase parses an imm(reg) operand.
func (asm *Assembler) offsetBase(word string) (imm int64, base rv.Reg, err error) {
	open := strings.IndexByte(word, '(')
	if open < 0 || !strings.HasSuffix(word, ")") {
		err = ErrOperandInvalid
		return
	}

	if open > 0 {
		imm, err = asm.immediate(word[:open])
		if err != nil {
			return
		}
	}

	base, err = asm.registers().Resolve(word[open+1 : len(word)-1])
	return
}

// regs resolves a list of register names.
func (asm *Assembler) regs(words ...string) (regs []rv.Reg, err error) {
	regs = make([]rv.Reg, len(words))
	for n, word := range words {
		regs[n], err = asm.registers().Resolve(word)
		if err != nil {
			return
		}
	}
	return
}

// regsImm resolves register operands followed by a final immediate.
func (asm *Assembler) regsImm(words ...string) (regs []rv.Reg, imm int64, err error) {
	regs, err = asm.regs(words[:len(words)-1]...)
	if err != nil {
		return
	}
	imm, err = asm.immediate(words[len(words)-1])
	return
}

// encodeLine is the second pass for a single line.
func (asm *Assembler) encodeLine(line Line) (record Record, err error) {
	words, err := asm.splitLine(line)
	if err != nil {
		return
	}

	if len(words) == 0 {
		err = ErrOperandInvalid
		return
	}

	mnemonic, args := words[0], words[1:]
	entry, ok := asm.catalog().Lookup(mnemonic)
	if !ok {
		err = ErrMnemonic(mnemonic)
		return
	}

	var inst rv.Instruction
	var regs []rv.Reg
	var imm int64

	switch {
	case entry.Format == rv.FORMAT_R && len(args) == 3:
		// rd, rs1, rs2
		regs, err = asm.regs(args...)
		if err == nil {
			inst = entry.R(regs[0], regs[1], regs[2])
		}
	case entry.Format == rv.FORMAT_I && len(args) == 3:
		// rd, rs1, imm
		regs, imm, err = asm.regsImm(args...)
		if err == nil {
			inst = entry.I(regs[0], regs[1], imm)
		}
	case entry.Format == rv.FORMAT_I && len(args) == 2:
		// rd, imm(rs1)
		var base rv.Reg
		regs, err = asm.regs(args[0])
		if err == nil {
			imm, base, err = asm.offsetBase(args[1])
		}
		if err == nil {
			inst = entry.I(regs[0], base, imm)
		}
	case entry.Format == rv.FORMAT_S && len(args) == 3:
		// rs2, rs1, imm
		regs, imm, err = asm.regsImm(args...)
		if err == nil {
			inst = entry.S(regs[1], regs[0], imm)
		}
	case entry.Format == rv.FORMAT_S && len(args) == 2:
		// rs2, imm(rs1)
		var base rv.Reg
		regs, err = asm.regs(args[0])
		if err == nil {
			imm, base, err = asm.offsetBase(args[1])
		}
		if err == nil {
			inst = entry.S(base, regs[0], imm)
		}
	case entry.Format == rv.FORMAT_SB && len(args) == 3:
		// rs1, rs2, offset
		regs, imm, err = asm.regsImm(args...)
		if err == nil {
			inst = entry.SB(regs[0], regs[1], imm)
		}
	case entry.Format == rv.FORMAT_U && len(args) == 2:
		// rd, imm
		regs, imm, err = asm.regsImm(args...)
		if err == nil {
			inst = entry.U(regs[0], imm)
		}
	case entry.Format == rv.FORMAT_UJ && len(args) == 2:
		// rd, offset
		regs, imm, err = asm.regsImm(args...)
		if err == nil {
			inst = entry.UJ(regs[0], imm)
		}
	default:
		err = ErrOperandCount{Mnemonic: mnemonic, Count: len(args)}
	}

	if err != nil {
		return
	}

	record = Record{
		LineNo:      line.LineNo,
		Address:     line.Address,
		Word:        inst.Encode(),
		Source:      line.Source,
		Instruction: inst,
	}

	return
}
