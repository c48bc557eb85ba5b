package rv

import (
	"fmt"
	"strings"
)

// IMM_WIDTH_MAX is the widest supported immediate, in bits.
const IMM_WIDTH_MAX = 64

// Imm is a two's-complement integer of a fixed bit width.
//
// NewImm keeps only the low width bits of its value, so values outside the
// signed or unsigned range of the width wrap around instead of failing.
type Imm struct {
	bits  uint64
	width uint
}

func mask(width uint) uint64 {
	return ^uint64(0) >> (IMM_WIDTH_MAX - width)
}

// NewImm truncates value to width bits.
func NewImm(value int64, width uint) Imm {
	if width > IMM_WIDTH_MAX {
		panic(fmt.Sprintf("rv: immediate width %d exceeds %d", width, IMM_WIDTH_MAX))
	}
	if width == 0 {
		return Imm{}
	}
	return Imm{bits: uint64(value) & mask(width), width: width}
}

// Width returns the width of the immediate in bits.
func (imm Imm) Width() uint {
	return imm.width
}

// Uint returns the immediate bits, zero extended.
func (imm Imm) Uint() uint64 {
	return imm.bits
}

// Int returns the immediate bits, sign extended.
func (imm Imm) Int() int64 {
	if imm.width == 0 {
		return 0
	}
	shift := IMM_WIDTH_MAX - imm.width
	return int64(imm.bits<<shift) >> shift
}

// Bit returns bit n of the immediate.
func (imm Imm) Bit(n uint) uint32 {
	return uint32((imm.bits >> n) & 1)
}

// Field returns bits hi down to lo of the immediate.
func (imm Imm) Field(hi, lo uint) uint32 {
	return uint32((imm.bits >> lo) & mask(hi-lo+1))
}

// String returns the immediate as width '0' and '1' characters, MSB first.
func (imm Imm) String() string {
	var sb strings.Builder
	sb.Grow(int(imm.width))
	for n := imm.width; n > 0; n-- {
		if imm.Bit(n-1) == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// ToBits returns the low width bits of value as a binary string, MSB first.
func ToBits(value int64, width uint) string {
	return NewImm(value, width).String()
}
