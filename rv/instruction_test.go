package rv

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func mustEntry(t *testing.T, mnemonic string) Entry {
	entry, ok := DefaultCatalog().Lookup(mnemonic)
	if !ok {
		t.Fatalf("%v: not in catalog", mnemonic)
	}
	return entry
}

func TestEncodeR(t *testing.T) {
	assert := assert.New(t)

	op := mustEntry(t, "add").R(1, 2, 3)
	word := op.Encode()
	assert.Equal("0000000"+"00011"+"00010"+"000"+"00001"+"0110011", word.String())
	assert.Equal(Word(0x003100b3), word)
	assert.Equal("0000000 00011 00010 000 00001 0110011", word.Split(FORMAT_R))
	assert.Equal("add x1, x2, x3", op.String())

	assert.Equal(Word(0x402081b3), mustEntry(t, "sub").R(3, 1, 2).Encode())
	assert.Equal(Word(0x4030d133), mustEntry(t, "sra").R(2, 1, 3).Encode())
}

func TestEncodeI(t *testing.T) {
	assert := assert.New(t)

	op := mustEntry(t, "addi").I(5, 0, 10)
	word := op.Encode()
	assert.Equal("000000001010"+"00000"+"000"+"00101"+"0010011", word.String())
	assert.Equal(Word(0x00a00293), word)
	assert.Equal("addi x5, x0, 10", op.String())

	assert.Equal(Word(0xfff08093), mustEntry(t, "addi").I(1, 1, -1).Encode())
	assert.Equal(Word(0x00412303), mustEntry(t, "lw").I(6, 2, 4).Encode())
	assert.Equal(Word(0x000080e7), mustEntry(t, "jalr").I(1, 1, 0).Encode())

	// Immediates wrap to 12 bits.
	assert.Equal(Word(0x00000093), mustEntry(t, "addi").I(1, 0, 4096).Encode())
	assert.Equal(Word(0x80000093), mustEntry(t, "addi").I(1, 0, 2048).Encode())
}

func TestEncodeS(t *testing.T) {
	assert := assert.New(t)

	op := mustEntry(t, "sw").S(2, 5, 8)
	word := op.Encode()
	assert.Equal(Word(0x00512423), word)
	assert.Equal("0000000 00101 00010 010 01000 0100011", word.Split(FORMAT_S))
	assert.Equal("sw x5, 8(x2)", op.String())

	assert.Equal(Word(0xfe512e23), mustEntry(t, "sw").S(2, 5, -4).Encode())
}

func TestEncodeSB(t *testing.T) {
	assert := assert.New(t)

	op := mustEntry(t, "beq").SB(1, 2, 8)
	imm := NewImm(8, 13)
	assert.Equal("0000000001000", imm.String())

	// imm[12] | imm[10:5] | rs2 | rs1 | funct3 | imm[4:1] | imm[11] | opcode
	bits := imm.String()
	expected := bits[0:1] + bits[2:8] + "00010" + "00001" + "000" + bits[8:12] + bits[1:2] + "1100011"
	word := op.Encode()
	assert.Equal(expected, word.String())
	assert.Equal(Word(0x00208463), word)
	assert.Equal("0 000000 00010 00001 000 0100 0 1100011", word.Split(FORMAT_SB))

	// Bit 0 of the offset is never encoded.
	assert.Equal(word, mustEntry(t, "beq").SB(1, 2, 9).Encode())

	word = mustEntry(t, "bne").SB(1, 2, -4).Encode()
	assert.Equal(Word(0xfe209ee3), word)
	assert.Equal("1 111111 00010 00001 001 1110 1 1100011", word.Split(FORMAT_SB))

	// imm[11] and imm[12] land in word bits 7 and 31.
	assert.Equal(Word(0x000008e3), mustEntry(t, "beq").SB(0, 0, 0x800|0x10).Encode())
	assert.Equal(Word(0x80000063), mustEntry(t, "beq").SB(0, 0, -4096).Encode())
}

func TestEncodeU(t *testing.T) {
	assert := assert.New(t)

	op := mustEntry(t, "lui").U(5, 0x12345)
	assert.Equal(Word(0x123452b7), op.Encode())
	assert.Equal("lui x5, 0x12345", op.String())
	assert.Equal(Word(0xfffff097), mustEntry(t, "auipc").U(1, -1).Encode())
}

func TestEncodeUJ(t *testing.T) {
	assert := assert.New(t)

	op := mustEntry(t, "jal").UJ(1, 4)
	imm := NewImm(4, 21)
	assert.Equal("000000000000000000100", imm.String())
	word := op.Encode()
	assert.Equal(Word(0x004000ef), word)
	assert.Equal("0 0000000010 0 00000000 00001 1101111", word.Split(FORMAT_UJ))
	assert.Equal("jal x1, 4", op.String())

	// Sign bit imm[20] is the most significant bit of the word.
	word = mustEntry(t, "jal").UJ(0, -8).Encode()
	assert.Equal(Word(0xff9ff06f), word)
	assert.True(strings.HasPrefix(word.String(), "1"))
	assert.Equal(mustEntry(t, "jal").UJ(0, -7).Encode(), word)

	assert.Equal(Word(0x800000ef), mustEntry(t, "jal").UJ(1, -1<<20).Encode())
	assert.Equal(Word(0x001000ef), mustEntry(t, "jal").UJ(1, 1<<11).Encode())
	assert.Equal(Word(0x000010ef), mustEntry(t, "jal").UJ(1, 1<<12).Encode())
}

func TestWordFields(t *testing.T) {
	assert := assert.New(t)

	word := Word(0x4030d133) // sra x2, x1, x3
	assert.Equal(uint8(0b0110011), word.Opcode())
	assert.Equal(Reg(2), word.Rd())
	assert.Equal(uint8(0b101), word.Funct3())
	assert.Equal(Reg(1), word.Rs1())
	assert.Equal(Reg(3), word.Rs2())
	assert.Equal(uint8(0b0100000), word.Funct7())
}
