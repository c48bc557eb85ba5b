// Package rv implements instruction encoding for a subset of the RV32I
// instruction set.
//
// The Catalog maps mnemonics to their encoding format (R, I, S, SB, U, UJ)
// and fixed opcode/funct3/funct7 fields. The RegisterSet resolves the
// symbolic register names x0-x31. Each format has an Instruction variant
// that packs its fields into a 32-bit Word, including the scrambled
// immediate layouts of the branch (SB) and jump (UJ) formats.
//
// Immediates are carried as Imm values, which truncate to the width of
// their field. Values outside the field range wrap rather than fail.
package rv
