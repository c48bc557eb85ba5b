package asm

import (
	"errors"

	"github.com/ezrec/rvasm/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrLabelInvalid    = errors.New(f("label invalid"))
	ErrOperandInvalid  = errors.New(f("operand invalid"))
	ErrFormatInvalid   = errors.New(f("output format invalid"))
	ErrPredefineSyntax = errors.New(f("predefine syntax"))
)

// ErrMnemonic is an instruction mnemonic missing from the catalog.
type ErrMnemonic string

func (em ErrMnemonic) Error() string {
	return f("Unsupported instruction: %v", string(em))
}

// ErrOperandCount is an instruction with the wrong number of operands.
type ErrOperandCount struct {
	Mnemonic string
	Count    int
}

func (err ErrOperandCount) Error() string {
	return f("%v: %v operands unexpected", err.Mnemonic, err.Count)
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
