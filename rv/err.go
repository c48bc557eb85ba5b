package rv

import (
	"errors"

	"github.com/ezrec/rvasm/translate"
)

var f = translate.From

var (
	// Register errors
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrRegisterCount   = errors.New(f("register set must name 32 registers"))

	// Catalog errors
	ErrCatalogMnemonic  = errors.New(f("mnemonic missing"))
	ErrCatalogDuplicate = errors.New(f("mnemonic duplicated"))
	ErrCatalogFormat    = errors.New(f("format invalid"))
	ErrCatalogField     = errors.New(f("field out of range"))
	ErrCatalogAmbiguous = errors.New(f("decode ambiguous"))
)

// ErrRegister is a register name that could not be resolved.
type ErrRegister string

func (er ErrRegister) Error() string {
	return f("register invalid: '%v'", string(er))
}

func (er ErrRegister) Is(err error) bool {
	return err == ErrRegisterInvalid
}

// ErrEntry is a catalog entry rejected by NewCatalog.
type ErrEntry struct {
	Mnemonic string
	Err      error
}

func (err *ErrEntry) Error() string {
	return f("%v: %v", err.Mnemonic, err.Err)
}

func (err *ErrEntry) Unwrap() error {
	return err.Err
}

// ErrDecode is an instruction word not described by the catalog.
type ErrDecode Word

func (ed ErrDecode) Error() string {
	return f("bad instruction word 0x%08x", uint32(ed))
}
