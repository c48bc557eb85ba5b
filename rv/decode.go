package rv

// Decode returns the instruction encoded by word.
//
// Immediates and offsets are sign extended from their field width, except
// for the U format whose 20-bit immediate is returned zero extended.
func (cat *Catalog) Decode(word Word) (inst Instruction, err error) {
	format, ok := cat.format[word.Opcode()]
	if !ok {
		err = ErrDecode(word)
		return
	}

	key := decodeKey{opcode: word.Opcode()}
	if format.HasFunct3() {
		key.funct3 = word.Funct3()
	}
	if format.HasFunct7() {
		key.funct7 = word.Funct7()
	}

	entry, ok := cat.decode[key]
	if !ok {
		err = ErrDecode(word)
		return
	}

	switch format {
	case FORMAT_R:
		inst = entry.R(word.Rd(), word.Rs1(), word.Rs2())
	case FORMAT_I:
		imm := NewImm(int64(word>>20), 12)
		inst = entry.I(word.Rd(), word.Rs1(), imm.Int())
	case FORMAT_S:
		imm := NewImm(int64((word>>25)<<5|(word>>7)&0x1f), 12)
		inst = entry.S(word.Rs1(), word.Rs2(), imm.Int())
	case FORMAT_SB:
		bits := (word>>31)&0x1<<12 |
			(word>>7)&0x1<<11 |
			(word>>25)&0x3f<<5 |
			(word>>8)&0xf<<1
		inst = entry.SB(word.Rs1(), word.Rs2(), NewImm(int64(bits), 13).Int())
	case FORMAT_U:
		imm := NewImm(int64(word>>12), 20)
		inst = entry.U(word.Rd(), int64(imm.Uint()))
	case FORMAT_UJ:
		bits := (word>>31)&0x1<<20 |
			(word>>12)&0xff<<12 |
			(word>>20)&0x1<<11 |
			(word>>21)&0x3ff<<1
		inst = entry.UJ(word.Rd(), NewImm(int64(bits), 21).Int())
	}

	return
}
