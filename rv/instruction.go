package rv

import (
	"fmt"
	"strings"
)

// Word is an encoded 32-bit instruction.
type Word uint32

// String returns the word as 32 binary digits, MSB first.
func (word Word) String() string {
	return fmt.Sprintf("%032b", uint32(word))
}

// Split returns the binary digits of the word, with a space between each
// segment of the format layout.
func (word Word) Split(format Format) string {
	bits := word.String()
	var parts []string
	for _, seg := range format.Layout() {
		parts = append(parts, bits[:seg.Width])
		bits = bits[seg.Width:]
	}
	if len(bits) > 0 {
		parts = append(parts, bits)
	}
	return strings.Join(parts, " ")
}

// Opcode returns bits 6:0 of the word.
func (word Word) Opcode() uint8 {
	return uint8(word & 0x7f)
}

// Rd returns bits 11:7 of the word.
func (word Word) Rd() Reg {
	return Reg((word >> 7) & 0x1f)
}

// Funct3 returns bits 14:12 of the word.
func (word Word) Funct3() uint8 {
	return uint8((word >> 12) & 0x7)
}

// Rs1 returns bits 19:15 of the word.
func (word Word) Rs1() Reg {
	return Reg((word >> 15) & 0x1f)
}

// Rs2 returns bits 24:20 of the word.
func (word Word) Rs2() Reg {
	return Reg((word >> 20) & 0x1f)
}

// Funct7 returns bits 31:25 of the word.
func (word Word) Funct7() uint8 {
	return uint8((word >> 25) & 0x7f)
}

// Instruction is an instruction of one of the RV32I encoding formats.
// The variants are RType, IType, SType, SBType, UType and UJType.
type Instruction interface {
	Format() Format
	Encode() Word
	String() string

	instruction()
}

func reg(r Reg) uint32 {
	return uint32(r) & 0x1f
}

func opcode(op uint8) uint32 {
	return uint32(op) & 0x7f
}

func funct3(fn uint8) uint32 {
	return (uint32(fn) & 0x7) << 12
}

// RType is a register-register instruction.
type RType struct {
	Mnemonic string
	Opcode   uint8
	Funct3   uint8
	Funct7   uint8
	Rd       Reg
	Rs1      Reg
	Rs2      Reg
}

func (RType) instruction() {}

func (RType) Format() Format { return FORMAT_R }

// Encode packs funct7 | rs2 | rs1 | funct3 | rd | opcode.
func (op RType) Encode() Word {
	return Word((uint32(op.Funct7)&0x7f)<<25 |
		reg(op.Rs2)<<20 |
		reg(op.Rs1)<<15 |
		funct3(op.Funct3) |
		reg(op.Rd)<<7 |
		opcode(op.Opcode))
}

func (op RType) String() string {
	return fmt.Sprintf("%v %v, %v, %v", op.Mnemonic, op.Rd, op.Rs1, op.Rs2)
}

// IType is a register-immediate instruction with a 12-bit immediate.
type IType struct {
	Mnemonic string
	Opcode   uint8
	Funct3   uint8
	Rd       Reg
	Rs1      Reg
	Imm      int64
}

func (IType) instruction() {}

func (IType) Format() Format { return FORMAT_I }

// Encode packs imm[11:0] | rs1 | funct3 | rd | opcode.
func (op IType) Encode() Word {
	imm := NewImm(op.Imm, 12)
	return Word(imm.Field(11, 0)<<20 |
		reg(op.Rs1)<<15 |
		funct3(op.Funct3) |
		reg(op.Rd)<<7 |
		opcode(op.Opcode))
}

func (op IType) String() string {
	return fmt.Sprintf("%v %v, %v, %d", op.Mnemonic, op.Rd, op.Rs1, op.Imm)
}

// SType is a store instruction with a 12-bit immediate split in two.
type SType struct {
	Mnemonic string
	Opcode   uint8
	Funct3   uint8
	Rs1      Reg
	Rs2      Reg
	Imm      int64
}

func (SType) instruction() {}

func (SType) Format() Format { return FORMAT_S }

// Encode packs imm[11:5] | rs2 | rs1 | funct3 | imm[4:0] | opcode.
func (op SType) Encode() Word {
	imm := NewImm(op.Imm, 12)
	return Word(imm.Field(11, 5)<<25 |
		reg(op.Rs2)<<20 |
		reg(op.Rs1)<<15 |
		funct3(op.Funct3) |
		imm.Field(4, 0)<<7 |
		opcode(op.Opcode))
}

func (op SType) String() string {
	return fmt.Sprintf("%v %v, %d(%v)", op.Mnemonic, op.Rs2, op.Imm, op.Rs1)
}

// SBType is a conditional branch with a 13-bit byte offset.
// Bit 0 of the offset is implicitly zero and is not encoded.
type SBType struct {
	Mnemonic string
	Opcode   uint8
	Funct3   uint8
	Rs1      Reg
	Rs2      Reg
	Offset   int64
}

func (SBType) instruction() {}

func (SBType) Format() Format { return FORMAT_SB }

// Encode packs imm[12] | imm[10:5] | rs2 | rs1 | funct3 | imm[4:1] | imm[11] | opcode.
func (op SBType) Encode() Word {
	imm := NewImm(op.Offset, 13)
	return Word(imm.Bit(12)<<31 |
		imm.Field(10, 5)<<25 |
		reg(op.Rs2)<<20 |
		reg(op.Rs1)<<15 |
		funct3(op.Funct3) |
		imm.Field(4, 1)<<8 |
		imm.Bit(11)<<7 |
		opcode(op.Opcode))
}

func (op SBType) String() string {
	return fmt.Sprintf("%v %v, %v, %d", op.Mnemonic, op.Rs1, op.Rs2, op.Offset)
}

// UType is an upper immediate instruction with a 20-bit immediate.
type UType struct {
	Mnemonic string
	Opcode   uint8
	Rd       Reg
	Imm      int64
}

func (UType) instruction() {}

func (UType) Format() Format { return FORMAT_U }

// Encode packs imm[19:0] | rd | opcode, the immediate landing in word bits 31:12.
func (op UType) Encode() Word {
	imm := NewImm(op.Imm, 20)
	return Word(imm.Field(19, 0)<<12 |
		reg(op.Rd)<<7 |
		opcode(op.Opcode))
}

func (op UType) String() string {
	return fmt.Sprintf("%v %v, %#x", op.Mnemonic, op.Rd, op.Imm)
}

// UJType is a jump with a 21-bit byte offset.
// Bit 0 of the offset is implicitly zero and is not encoded.
type UJType struct {
	Mnemonic string
	Opcode   uint8
	Rd       Reg
	Offset   int64
}

func (UJType) instruction() {}

func (UJType) Format() Format { return FORMAT_UJ }

// Encode packs imm[20] | imm[10:1] | imm[11] | imm[19:12] | rd | opcode.
func (op UJType) Encode() Word {
	imm := NewImm(op.Offset, 21)
	return Word(imm.Bit(20)<<31 |
		imm.Field(10, 1)<<21 |
		imm.Bit(11)<<20 |
		imm.Field(19, 12)<<12 |
		reg(op.Rd)<<7 |
		opcode(op.Opcode))
}

func (op UJType) String() string {
	return fmt.Sprintf("%v %v, %d", op.Mnemonic, op.Rd, op.Offset)
}
