package rv

import (
	"fmt"
)

// REG_COUNT is the number of general purpose registers.
const REG_COUNT = 32

// Reg is a general purpose register index, 0 to 31.
type Reg uint8

// String returns the canonical register name.
func (reg Reg) String() string {
	return fmt.Sprintf("x%d", uint8(reg))
}

// RegisterSet resolves symbolic register names to register indexes.
// It is not modified after construction.
type RegisterSet struct {
	index map[string]Reg
}

// NewRegisterSet creates a register set where names[n] resolves to register n.
func NewRegisterSet(names ...string) (rs *RegisterSet, err error) {
	if len(names) != REG_COUNT {
		err = ErrRegisterCount
		return
	}

	index := make(map[string]Reg, len(names))
	for n, name := range names {
		_, ok := index[name]
		if ok || len(name) == 0 {
			err = ErrRegister(name)
			return
		}
		index[name] = Reg(n)
	}

	rs = &RegisterSet{index: index}
	return
}

// Resolve returns the register named by name.
// Names are matched exactly; there is no case folding or aliasing.
func (rs *RegisterSet) Resolve(name string) (reg Reg, err error) {
	reg, ok := rs.index[name]
	if !ok {
		err = ErrRegister(name)
	}
	return
}

var defaultRegisters = func() *RegisterSet {
	names := make([]string, REG_COUNT)
	for n := range names {
		names[n] = Reg(n).String()
	}
	rs, err := NewRegisterSet(names...)
	if err != nil {
		panic(err)
	}
	return rs
}()

// DefaultRegisters returns the x0-x31 register set.
func DefaultRegisters() *RegisterSet {
	return defaultRegisters
}
