package wallet

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

const (
	// HardenedKeyStart is the first hardened BIP32 index
	HardenedKeyStart uint32 = 0x80000000
	// MaxBip32Index is the largest index of a BIP32 step, hardened or not
	MaxBip32Index uint64 = uint64(HardenedKeyStart) - 1
	// MaxUint32Index is the largest index of Monero and Electrum V1 steps
	MaxUint32Index uint64 = math.MaxUint32

	// DefaultAddressNum is the number of addresses generated when not set
	DefaultAddressNum uint32 = 20
)

// Option identifies one generation option. Options combine as a bit set.
type Option uint8

// Options understood by Generate
const (
	OptAccount Option = 1 << iota
	OptChange
	OptAddressNum
	OptAddressOffset
	OptPath
)

func (o Option) String() string {
	switch o {
	case OptAccount:
		return "account"
	case OptChange:
		return "change"
	case OptAddressNum:
		return "address number"
	case OptAddressOffset:
		return "address offset"
	case OptPath:
		return "path"
	default:
		return fmt.Sprintf("option(%d)", uint8(o))
	}
}

// Change selects the change chain. Each family defines its own enum.
type Change interface {
	ChangeIndex() uint32
}

// Params are the resolved generation parameters
type Params struct {
	AccountIdx uint32
	Change     Change
	AddrNum    uint32
	AddrOff    uint32
	Path       string

	set Option
}

// GenerateOption customizes a Generate call
type GenerateOption func(*Params)

// WithAccount sets the account index
func WithAccount(idx uint32) GenerateOption {
	return func(p *Params) {
		p.AccountIdx = idx
		p.set |= OptAccount
	}
}

// WithChange sets the change chain
func WithChange(change Change) GenerateOption {
	return func(p *Params) {
		p.Change = change
		p.set |= OptChange
	}
}

// WithAddressNum sets the number of addresses to generate
func WithAddressNum(num uint32) GenerateOption {
	return func(p *Params) {
		p.AddrNum = num
		p.set |= OptAddressNum
	}
}

// WithAddressOffset sets the index of the first generated address
func WithAddressOffset(off uint32) GenerateOption {
	return func(p *Params) {
		p.AddrOff = off
		p.set |= OptAddressOffset
	}
}

// WithPath sets the derivation path
func WithPath(path string) GenerateOption {
	return func(p *Params) {
		p.Path = path
		p.set |= OptPath
	}
}

// NewParams applies opts over the defaults
func NewParams(opts ...GenerateOption) Params {
	p := Params{
		AddrNum: DefaultAddressNum,
	}

	for _, opt := range opts {
		opt(&p)
	}

	return p
}

// IsSet reports whether opt was explicitly passed
func (p Params) IsSet(opt Option) bool {
	return p.set&opt != 0
}

// CheckSupported fails with ErrUnsupportedParameter if an option outside
// supported was passed
func (p Params) CheckSupported(supported Option) error {
	for opt := OptAccount; opt <= OptPath; opt <<= 1 {
		if p.IsSet(opt) && supported&opt == 0 {
			return errors.Wrapf(ErrUnsupportedParameter, "%s is not supported by this spec", opt)
		}
	}

	return nil
}

// CheckIndex fails with ErrInvalidDerivationIndex if idx > maxIdx
func CheckIndex(what string, idx uint32, maxIdx uint64) error {
	if uint64(idx) > maxIdx {
		return errors.Wrapf(ErrInvalidDerivationIndex, "%s %d is out of range", what, idx)
	}

	return nil
}

// CheckRange fails with ErrInvalidDerivationIndex if the last index of
// [off, off+num) exceeds maxIdx
func CheckRange(off, num uint32, maxIdx uint64) error {
	if num == 0 {
		return CheckIndex("address offset", off, maxIdx)
	}

	last := uint64(off) + uint64(num) - 1
	if last > maxIdx {
		return errors.Wrapf(ErrInvalidDerivationIndex, "address index %d is out of range", last)
	}

	return nil
}

// AddressLabel returns the label of the address at index i
func AddressLabel(i uint32) string {
	return fmt.Sprintf("address_%d", i)
}

// SubaddressLabel returns the label of the Monero subaddress at index i
func SubaddressLabel(i uint32) string {
	return fmt.Sprintf("subaddress_%d", i)
}
