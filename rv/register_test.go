package rv

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterResolve(t *testing.T) {
	assert := assert.New(t)

	rs := DefaultRegisters()
	for n := range REG_COUNT {
		reg, err := rs.Resolve(fmt.Sprintf("x%d", n))
		assert.NoError(err)
		assert.Equal(Reg(n), reg)
		assert.Equal(fmt.Sprintf("x%d", n), reg.String())
	}
}

func TestRegisterResolveInvalid(t *testing.T) {
	assert := assert.New(t)

	rs := DefaultRegisters()
	for _, name := range []string{"", "x", "x32", "x-1", "x01", "X1", "zero", "ra", "x1,", " x1", "r1"} {
		_, err := rs.Resolve(name)
		assert.Error(err, name)
		assert.True(errors.Is(err, ErrRegisterInvalid), name)
		var er ErrRegister
		assert.True(errors.As(err, &er), name)
		assert.Equal(name, string(er))
	}
}

func TestNewRegisterSet(t *testing.T) {
	assert := assert.New(t)

	_, err := NewRegisterSet("a", "b")
	assert.ErrorIs(err, ErrRegisterCount)

	names := make([]string, REG_COUNT)
	for n := range names {
		names[n] = fmt.Sprintf("r%d", n)
	}
	rs, err := NewRegisterSet(names...)
	assert.NoError(err)
	reg, err := rs.Resolve("r31")
	assert.NoError(err)
	assert.Equal(Reg(31), reg)
	_, err = rs.Resolve("x31")
	assert.ErrorIs(err, ErrRegisterInvalid)

	names[4] = "r3"
	_, err = NewRegisterSet(names...)
	assert.ErrorIs(err, ErrRegisterInvalid)
}
