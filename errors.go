package argon

import "github.com/pkg/errors"

// Errors returned by parameter validation. Every check runs before any
// memory is touched, so a returned error means no work was done.
var (
	ErrOutputTooShort = errors.New("argon: output too short")
	ErrOutputTooLong  = errors.New("argon: output too long")

	ErrPwdTooLong    = errors.New("argon: password too long")
	ErrSecretTooLong = errors.New("argon: secret too long")
	ErrAdTooLong     = errors.New("argon: associated data too long")

	ErrSaltTooShort = errors.New("argon: salt too short")
	ErrSaltTooLong  = errors.New("argon: salt too long")

	ErrMemoryTooLittle = errors.New("argon: memory cost too small")
	ErrMemoryTooMuch   = errors.New("argon: memory cost too large")
	ErrTimeTooSmall    = errors.New("argon: time cost too small")

	ErrThreadsTooFew  = errors.New("argon: not enough threads")
	ErrThreadsTooMany = errors.New("argon: too many threads")

	ErrAlgorithmInvalid = errors.New("argon: invalid algorithm")
	ErrVersionInvalid   = errors.New("argon: invalid version")

	// ErrMemoryInsufficient is returned by HashIntoWithMemory when the
	// supplied block buffer is smaller than Params.BlockCount.
	ErrMemoryInsufficient = errors.New("argon: memory buffer too small")
)
