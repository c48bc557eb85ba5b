package asm

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func parseProgram(t *testing.T, lines ...string) *Program {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(lines, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

func TestProgram_WriteListing(t *testing.T) {
	assert := assert.New(t)

	prog := parseProgram(t,
		"add x1, x2, x3",
		"loop:",
		"addi x5, x0, 10",
		"mul a b c",
		"beq x1, x2, 8",
		"jal x1, 4",
	)

	var out bytes.Buffer
	assert.NoError(prog.WriteListing(&out))

	expected := []string{
		"0x0 0x00000000001100010000000010110011 , add x1, x2, x3",
		"0x4 0x00000000101000000000001010010011 , addi x5, x0, 10",
		"0xc 0x00000000001000001000010001100011 , beq x1, x2, 8",
		"0x10 0x00000000010000000000000011101111 , jal x1, 4",
	}
	assert.Equal(strings.Join(expected, "\n")+"\n", out.String())
}

func TestProgram_WriteHex(t *testing.T) {
	assert := assert.New(t)

	prog := parseProgram(t, "add x1, x2, x3", "jal x0, -8")

	var out bytes.Buffer
	assert.NoError(prog.Write(&out, OUTPUT_HEX))
	assert.Equal("003100b3\nff9ff06f\n", out.String())
}

func TestProgram_WriteBinary(t *testing.T) {
	assert := assert.New(t)

	prog := parseProgram(t, "add x1, x2, x3", "jal x0, -8")
	assert.Equal([]uint32{0x003100b3, 0xff9ff06f}, prog.Binary())

	var out bytes.Buffer
	assert.NoError(prog.Write(&out, OUTPUT_BIN))
	assert.Equal([]byte{0xb3, 0x00, 0x31, 0x00, 0x6f, 0xf0, 0x9f, 0xff}, out.Bytes())

	out.Reset()
	assert.NoError(parseProgram(t).WriteBinary(&out))
	assert.Equal(0, out.Len())
}

func TestProgram_Words(t *testing.T) {
	assert := assert.New(t)

	prog := parseProgram(t, "add x1, x2, x3", "bad", "addi x5, x0, 10", "jal x1, 4")

	var addrs []uint32
	for addr := range prog.Words() {
		addrs = append(addrs, addr)
		if len(addrs) == 2 {
			break
		}
	}
	assert.Equal([]uint32{0, 8}, addrs)
}

type failWriter struct{}

var errFail = errors.New("fail")

func (failWriter) Write(p []byte) (int, error) {
	return 0, errFail
}

func TestProgram_WriteError(t *testing.T) {
	assert := assert.New(t)

	prog := parseProgram(t, "add x1, x2, x3")
	for _, format := range []OutputFormat{OUTPUT_LISTING, OUTPUT_HEX, OUTPUT_BIN} {
		assert.ErrorIs(prog.Write(failWriter{}, format), errFail, format)
	}
}

func TestParseOutputFormat(t *testing.T) {
	assert := assert.New(t)

	for _, name := range []string{"listing", "hex", "bin"} {
		format, err := ParseOutputFormat(name)
		assert.NoError(err)
		assert.Equal(OutputFormat(name), format)
	}

	_, err := ParseOutputFormat("elf")
	assert.ErrorIs(err, ErrFormatInvalid)
	assert.ErrorIs(parseProgram(t).Write(&bytes.Buffer{}, OutputFormat("elf")), ErrFormatInvalid)
}
