package rv

import (
	"iter"
	"slices"

	"github.com/ezrec/rvasm/internal"
)

// Entry is the catalog description of a mnemonic.
type Entry struct {
	Mnemonic string
	Format   Format
	Opcode   uint8 // 7 bits
	Funct3   uint8 // 3 bits, R, I, S and SB formats only
	Funct7   uint8 // 7 bits, R format only
}

// R creates a register-register instruction.
func (entry Entry) R(rd, rs1, rs2 Reg) RType {
	return RType{Mnemonic: entry.Mnemonic, Opcode: entry.Opcode, Funct3: entry.Funct3, Funct7: entry.Funct7,
		Rd: rd, Rs1: rs1, Rs2: rs2}
}

// I creates a register-immediate instruction.
func (entry Entry) I(rd, rs1 Reg, imm int64) IType {
	return IType{Mnemonic: entry.Mnemonic, Opcode: entry.Opcode, Funct3: entry.Funct3,
		Rd: rd, Rs1: rs1, Imm: imm}
}

// S creates a store instruction of rs2 to imm(rs1).
func (entry Entry) S(rs1, rs2 Reg, imm int64) SType {
	return SType{Mnemonic: entry.Mnemonic, Opcode: entry.Opcode, Funct3: entry.Funct3,
		Rs1: rs1, Rs2: rs2, Imm: imm}
}

// SB creates a conditional branch instruction.
func (entry Entry) SB(rs1, rs2 Reg, offset int64) SBType {
	return SBType{Mnemonic: entry.Mnemonic, Opcode: entry.Opcode, Funct3: entry.Funct3,
		Rs1: rs1, Rs2: rs2, Offset: offset}
}

// U creates an upper immediate instruction.
func (entry Entry) U(rd Reg, imm int64) UType {
	return UType{Mnemonic: entry.Mnemonic, Opcode: entry.Opcode, Rd: rd, Imm: imm}
}

// UJ creates a jump instruction.
func (entry Entry) UJ(rd Reg, offset int64) UJType {
	return UJType{Mnemonic: entry.Mnemonic, Opcode: entry.Opcode, Rd: rd, Offset: offset}
}

// decodeKey is the part of a word that selects a catalog entry.
type decodeKey struct {
	opcode uint8
	funct3 uint8
	funct7 uint8
}

func (entry Entry) key() decodeKey {
	return decodeKey{opcode: entry.Opcode, funct3: entry.Funct3, funct7: entry.Funct7}
}

// Catalog maps mnemonics to their encoding.
// It is not modified after construction.
type Catalog struct {
	order  []Entry
	entry  map[string]Entry
	format map[uint8]Format
	decode map[decodeKey]Entry
}

// NewCatalog creates a catalog from a list of entries.
//
// Entries must have unique mnemonics, fields that fit their widths, no
// funct3/funct7 bits for formats that lack them, and an opcode that selects
// a single format.
func NewCatalog(entries ...Entry) (cat *Catalog, err error) {
	cat = &Catalog{
		entry:  make(map[string]Entry, len(entries)),
		format: make(map[uint8]Format),
		decode: make(map[decodeKey]Entry, len(entries)),
	}

	for _, entry := range entries {
		err = cat.add(entry)
		if err != nil {
			cat = nil
			err = &ErrEntry{Mnemonic: entry.Mnemonic, Err: err}
			return
		}
	}

	return
}

func (cat *Catalog) add(entry Entry) (err error) {
	switch {
	case len(entry.Mnemonic) == 0:
		return ErrCatalogMnemonic
	case !entry.Format.Valid():
		return ErrCatalogFormat
	case entry.Opcode > 0x7f, entry.Funct3 > 0x7, entry.Funct7 > 0x7f:
		return ErrCatalogField
	case !entry.Format.HasFunct3() && entry.Funct3 != 0:
		return ErrCatalogField
	case !entry.Format.HasFunct7() && entry.Funct7 != 0:
		return ErrCatalogField
	}

	_, ok := cat.entry[entry.Mnemonic]
	if ok {
		return ErrCatalogDuplicate
	}

	format, ok := cat.format[entry.Opcode]
	if ok && format != entry.Format {
		return ErrCatalogAmbiguous
	}

	key := entry.key()
	_, ok = cat.decode[key]
	if ok {
		return ErrCatalogAmbiguous
	}

	cat.order = append(cat.order, entry)
	cat.entry[entry.Mnemonic] = entry
	cat.format[entry.Opcode] = entry.Format
	cat.decode[key] = entry

	return
}

// Lookup returns the entry for a mnemonic. Matching is exact and case sensitive.
func (cat *Catalog) Lookup(mnemonic string) (entry Entry, ok bool) {
	entry, ok = cat.entry[mnemonic]
	return
}

// Entries returns the catalog entries in definition order.
func (cat *Catalog) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, entry := range cat.order {
			if !yield(entry) {
				return
			}
		}
	}
}

// Extend returns a new catalog with the entries of cat followed by entries.
// cat is unchanged.
func (cat *Catalog) Extend(entries ...Entry) (*Catalog, error) {
	return NewCatalog(slices.Collect(internal.Concat(cat.Entries(), slices.Values(entries)))...)
}

var baseEntries = []Entry{
	{Mnemonic: "add", Format: FORMAT_R, Opcode: 0b0110011, Funct3: 0b000, Funct7: 0b0000000},
	{Mnemonic: "sub", Format: FORMAT_R, Opcode: 0b0110011, Funct3: 0b000, Funct7: 0b0100000},
	{Mnemonic: "and", Format: FORMAT_R, Opcode: 0b0110011, Funct3: 0b111, Funct7: 0b0000000},
	{Mnemonic: "or", Format: FORMAT_R, Opcode: 0b0110011, Funct3: 0b110, Funct7: 0b0000000},
	{Mnemonic: "xor", Format: FORMAT_R, Opcode: 0b0110011, Funct3: 0b100, Funct7: 0b0000000},
	{Mnemonic: "sll", Format: FORMAT_R, Opcode: 0b0110011, Funct3: 0b001, Funct7: 0b0000000},
	{Mnemonic: "srl", Format: FORMAT_R, Opcode: 0b0110011, Funct3: 0b101, Funct7: 0b0000000},
	{Mnemonic: "sra", Format: FORMAT_R, Opcode: 0b0110011, Funct3: 0b101, Funct7: 0b0100000},

	{Mnemonic: "addi", Format: FORMAT_I, Opcode: 0b0010011, Funct3: 0b000},
	{Mnemonic: "andi", Format: FORMAT_I, Opcode: 0b0010011, Funct3: 0b111},
	{Mnemonic: "ori", Format: FORMAT_I, Opcode: 0b0010011, Funct3: 0b110},
	{Mnemonic: "jalr", Format: FORMAT_I, Opcode: 0b1100111, Funct3: 0b000},
	{Mnemonic: "lw", Format: FORMAT_I, Opcode: 0b0000011, Funct3: 0b010},

	{Mnemonic: "sw", Format: FORMAT_S, Opcode: 0b0100011, Funct3: 0b010},

	{Mnemonic: "beq", Format: FORMAT_SB, Opcode: 0b1100011, Funct3: 0b000},
	{Mnemonic: "bne", Format: FORMAT_SB, Opcode: 0b1100011, Funct3: 0b001},

	{Mnemonic: "lui", Format: FORMAT_U, Opcode: 0b0110111},
	{Mnemonic: "auipc", Format: FORMAT_U, Opcode: 0b0010111},

	{Mnemonic: "jal", Format: FORMAT_UJ, Opcode: 0b1101111},
}

var defaultCatalog = func() *Catalog {
	cat, err := NewCatalog(baseEntries...)
	if err != nil {
		panic(err)
	}
	return cat
}()

// DefaultCatalog returns the catalog of supported RV32I instructions.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}
