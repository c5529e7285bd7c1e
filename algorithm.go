package argon

import (
	"strconv"
	"strings"
)

// Algorithm selects the Argon2 variant.
type Algorithm uint32

const (
	// Argon2d uses data-dependent memory access. It is the fastest variant
	// but its access pattern leaks through cache timing.
	Argon2d Algorithm = 0

	// Argon2i uses data-independent memory access.
	Argon2i Algorithm = 1

	// Argon2id uses data-independent access for the first half of the first
	// pass and data-dependent access afterwards.
	Argon2id Algorithm = 2
)

// ParseAlgorithm parses the lowercase identifier used in PHC strings and on
// the command line ("argon2d", "argon2i", "argon2id").
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(s) {
	case "argon2d":
		return Argon2d, nil
	case "argon2i":
		return Argon2i, nil
	case "argon2id":
		return Argon2id, nil
	}
	return 0, ErrAlgorithmInvalid
}

// Ident returns the lowercase identifier, e.g. "argon2id".
func (a Algorithm) Ident() string {
	return strings.ToLower(a.String())
}

func (a Algorithm) String() string {
	switch a {
	case Argon2d:
		return "Argon2d"
	case Argon2i:
		return "Argon2i"
	case Argon2id:
		return "Argon2id"
	}
	return "Algorithm(" + strconv.FormatUint(uint64(a), 10) + ")"
}

func (a Algorithm) valid() bool {
	return a <= Argon2id
}

// Version is the Argon2 version number.
type Version uint32

const (
	// Version10 overwrites blocks on every pass.
	Version10 Version = 0x10

	// Version13 XORs new blocks over the old ones after the first pass.
	// This is the version standardized in RFC 9106.
	Version13 Version = 0x13

	// DefaultVersion is the current version.
	DefaultVersion = Version13
)

// ParseVersion checks that v is a known version number. Both the hex form
// (0x10, 0x13) and the decimal form used in PHC strings (16, 19) are the
// same integers, so any caller can pass the raw value.
func ParseVersion(v uint32) (Version, error) {
	switch Version(v) {
	case Version10, Version13:
		return Version(v), nil
	}
	return 0, ErrVersionInvalid
}

func (v Version) String() string {
	return "0x" + strconv.FormatUint(uint64(v), 16)
}

func (v Version) valid() bool {
	return v == Version10 || v == Version13
}
