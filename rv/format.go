package rv

import (
	"slices"
)

// Format is an instruction encoding format.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_R  = Format(0) // R
	FORMAT_I  = Format(1) // I
	FORMAT_S  = Format(2) // S
	FORMAT_SB = Format(3) // SB
	FORMAT_U  = Format(4) // U
	FORMAT_UJ = Format(5) // UJ
)

// Segment is a named bit range of an instruction word.
type Segment struct {
	Name  string
	Width uint
}

// layouts are the word segments of each format, MSB first.
var layouts = [...][]Segment{
	FORMAT_R: {
		{"funct7", 7}, {"rs2", 5}, {"rs1", 5}, {"funct3", 3}, {"rd", 5}, {"opcode", 7},
	},
	FORMAT_I: {
		{"imm[11:0]", 12}, {"rs1", 5}, {"funct3", 3}, {"rd", 5}, {"opcode", 7},
	},
	FORMAT_S: {
		{"imm[11:5]", 7}, {"rs2", 5}, {"rs1", 5}, {"funct3", 3}, {"imm[4:0]", 5}, {"opcode", 7},
	},
	FORMAT_SB: {
		{"imm[12]", 1}, {"imm[10:5]", 6}, {"rs2", 5}, {"rs1", 5}, {"funct3", 3},
		{"imm[4:1]", 4}, {"imm[11]", 1}, {"opcode", 7},
	},
	FORMAT_U: {
		{"imm[31:12]", 20}, {"rd", 5}, {"opcode", 7},
	},
	FORMAT_UJ: {
		{"imm[20]", 1}, {"imm[10:1]", 10}, {"imm[11]", 1}, {"imm[19:12]", 8}, {"rd", 5}, {"opcode", 7},
	},
}

// Valid returns true if the format is one of the known formats.
func (format Format) Valid() bool {
	return format >= FORMAT_R && format <= FORMAT_UJ
}

// Layout returns the segments of the format, most significant first.
func (format Format) Layout() []Segment {
	if !format.Valid() {
		return nil
	}
	return slices.Clone(layouts[format])
}

// HasFunct3 returns true if the format carries a funct3 field.
func (format Format) HasFunct3() bool {
	switch format {
	case FORMAT_R, FORMAT_I, FORMAT_S, FORMAT_SB:
		return true
	}
	return false
}

// HasFunct7 returns true if the format carries a funct7 field.
func (format Format) HasFunct7() bool {
	return format == FORMAT_R
}
