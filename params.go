package argon

import "math"

// syncPoints is the number of slices each lane is split into.
const syncPoints = 4

// Cost parameter limits from RFC 9106 §3.1.
const (
	MinMCost uint32 = 2 * syncPoints
	MaxMCost uint32 = math.MaxUint32
	MinTCost uint32 = 1
	MaxTCost uint32 = math.MaxUint32
	MinPCost uint32 = 1
	MaxPCost uint32 = 1<<24 - 1

	MinOutputLen = 4
	MaxOutputLen = math.MaxUint32

	MinSaltLen = 8
	MaxSaltLen = math.MaxUint32

	maxInputLen = math.MaxUint32
)

// Recommended defaults (OWASP minimum for Argon2id).
const (
	DefaultMCost     uint32 = 19 * 1024
	DefaultTCost     uint32 = 2
	DefaultPCost     uint32 = 1
	DefaultOutputLen        = 32
)

// Params holds the Argon2 cost parameters.
//
// MCost is the memory size in KiB (1 KiB = 1 block), TCost the number of
// passes and PCost the number of lanes. OutputLen is the length of the
// output produced by Argon2.Hash; zero means DefaultOutputLen.
type Params struct {
	MCost     uint32
	TCost     uint32
	PCost     uint32
	OutputLen int
}

// DefaultParams returns the recommended parameters.
func DefaultParams() Params {
	return Params{
		MCost: DefaultMCost,
		TCost: DefaultTCost,
		PCost: DefaultPCost,
	}
}

// NewParams returns validated parameters. outputLen may be zero.
func NewParams(m, t, p uint32, outputLen int) (Params, error) {
	params := Params{MCost: m, TCost: t, PCost: p, OutputLen: outputLen}
	if err := params.validate(); err != nil {
		return Params{}, err
	}
	return params, nil
}

func (p Params) validate() error {
	if p.PCost < MinPCost {
		return ErrThreadsTooFew
	}
	if p.PCost > MaxPCost {
		return ErrThreadsTooMany
	}
	if p.MCost < MinMCost || uint64(p.MCost) < 2*syncPoints*uint64(p.PCost) {
		return ErrMemoryTooLittle
	}
	// The whole matrix must be addressable as one slice.
	if uint64(p.MCost) > math.MaxInt/BlockSize {
		return ErrMemoryTooMuch
	}
	if p.TCost < MinTCost {
		return ErrTimeTooSmall
	}
	if p.OutputLen != 0 {
		if p.OutputLen < MinOutputLen {
			return ErrOutputTooShort
		}
		if uint64(p.OutputLen) > MaxOutputLen {
			return ErrOutputTooLong
		}
	}
	return nil
}

// BlockCount returns the number of 1 KiB blocks Argon2 works over: MCost
// rounded down to a multiple of 4*PCost, and never less than 8*PCost.
func (p Params) BlockCount() int {
	m := uint64(p.MCost)
	if floor := 2 * syncPoints * uint64(p.PCost); m < floor {
		m = floor
	}
	q := syncPoints * uint64(p.PCost)
	return int(m / q * q)
}

func (p Params) outputLen() int {
	if p.OutputLen == 0 {
		return DefaultOutputLen
	}
	return p.OutputLen
}
