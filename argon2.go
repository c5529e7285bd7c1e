package argon

import (
	"io"

	"github.com/dchest/blake2b"
	"github.com/sirupsen/logrus"
)

/*

inputs:

 P password
 S salt
 K secret (optional)
 X associated data (optional)

 p parallelism (lanes)
 m memory size in KiB
 t passes

*/

// Options holds the optional inputs of an Argon2 context.
type Options struct {
	// Secret is the optional key K mixed into the initial hash.
	Secret []byte

	// AssociatedData is the optional data X mixed into the initial hash.
	AssociatedData []byte

	// Parallel fills the lanes of each slice concurrently. The output is
	// the same either way.
	Parallel bool

	// Logger receives parameter and per-pass trace entries. Passwords,
	// salts and secrets are never logged.
	Logger logrus.FieldLogger
}

// Argon2 is a configured Argon2 context. It is immutable and safe for
// concurrent use; every hash call works on its own memory.
type Argon2 struct {
	algorithm Algorithm
	version   Version
	params    Params
	secret    []byte
	ad        []byte
	parallel  bool
	log       logrus.FieldLogger
}

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// New returns an Argon2 context after validating every parameter. opts may
// be nil. Byte slices in opts are retained and must not be modified.
func New(algorithm Algorithm, version Version, params Params, opts *Options) (*Argon2, error) {
	if !algorithm.valid() {
		return nil, ErrAlgorithmInvalid
	}
	if !version.valid() {
		return nil, ErrVersionInvalid
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	a := &Argon2{
		algorithm: algorithm,
		version:   version,
		params:    params,
		log:       discardLogger,
	}
	if opts != nil {
		if uint64(len(opts.Secret)) > maxInputLen {
			return nil, ErrSecretTooLong
		}
		if uint64(len(opts.AssociatedData)) > maxInputLen {
			return nil, ErrAdTooLong
		}
		a.secret = opts.Secret
		a.ad = opts.AssociatedData
		a.parallel = opts.Parallel
		if opts.Logger != nil {
			a.log = opts.Logger
		}
	}
	return a, nil
}

func (a *Argon2) Algorithm() Algorithm { return a.algorithm }
func (a *Argon2) Version() Version     { return a.version }
func (a *Argon2) Params() Params       { return a.params }

// Hash returns Params.OutputLen bytes of output (32 if unset).
func (a *Argon2) Hash(password, salt []byte) ([]byte, error) {
	out := make([]byte, a.params.outputLen())
	if err := a.HashInto(password, salt, out); err != nil {
		return nil, err
	}
	return out, nil
}

// HashInto fills out with Argon2 output, allocating the memory matrix
// internally. The output length is len(out).
func (a *Argon2) HashInto(password, salt, out []byte) error {
	if err := a.checkInputs(password, salt, out); err != nil {
		return err
	}
	return a.hash(password, salt, out, make([]Block, a.params.BlockCount()))
}

// HashIntoWithMemory is like HashInto but works in the caller's blocks,
// which must number at least Params.BlockCount. Blocks past that count are
// left alone. The contents of the used blocks are overwritten and hold
// password-derived data afterwards.
func (a *Argon2) HashIntoWithMemory(password, salt, out []byte, blocks []Block) error {
	if err := a.checkInputs(password, salt, out); err != nil {
		return err
	}
	n := a.params.BlockCount()
	if len(blocks) < n {
		return ErrMemoryInsufficient
	}
	return a.hash(password, salt, out, blocks[:n])
}

func (a *Argon2) checkInputs(password, salt, out []byte) error {
	if len(out) < MinOutputLen {
		return ErrOutputTooShort
	}
	if uint64(len(out)) > MaxOutputLen {
		return ErrOutputTooLong
	}
	if uint64(len(password)) > maxInputLen {
		return ErrPwdTooLong
	}
	if len(salt) < MinSaltLen {
		return ErrSaltTooShort
	}
	if uint64(len(salt)) > MaxSaltLen {
		return ErrSaltTooLong
	}
	return nil
}

func (a *Argon2) hash(password, salt, out []byte, blocks []Block) error {
	p := a.params
	mem := newMemory(blocks, p.PCost)

	a.log.WithFields(logrus.Fields{
		"type":        a.algorithm.String(),
		"version":     a.version.String(),
		"passes":      p.TCost,
		"memory":      p.MCost,
		"blocks":      len(blocks),
		"lanes":       p.PCost,
		"tag_length":  len(out),
		"parallel":    a.parallel,
		"secret":      len(a.secret) > 0,
		"data_length": len(a.ad),
	}).Debug("argon: hashing")

	h0 := a.initialHash(password, salt, len(out))
	seed(mem, &h0)
	for i := range h0 {
		h0[i] = 0
	}

	in := &instance{
		alg:      a.algorithm,
		version:  a.version,
		mem:      mem,
		passes:   p.TCost,
		parallel: a.parallel,
		log:      a.log,
	}
	in.fillMemory()
	return in.finalize(out)
}

// initialHash computes H0 over all the parameters and inputs.
func (a *Argon2) initialHash(password, salt []byte, outLen int) [blake2b.Size]byte {
	var h0 [blake2b.Size]byte

	h := blake2b.New512()
	write32(h, a.params.PCost)
	write32(h, uint32(outLen))
	write32(h, a.params.MCost)
	write32(h, a.params.TCost)
	write32(h, uint32(a.version))
	write32(h, uint32(a.algorithm))
	write32(h, uint32(len(password)))
	h.Write(password)
	write32(h, uint32(len(salt)))
	h.Write(salt)
	write32(h, uint32(len(a.secret)))
	h.Write(a.secret)
	write32(h, uint32(len(a.ad)))
	h.Write(a.ad)
	h.Sum(h0[:0])
	return h0
}

// seed uses H0 to initialize the first two blocks of every lane:
// B[lane][j] = H'(H0 || LE32(j) || LE32(lane)) for j = 0, 1.
func seed(mem *memory, h0 *[blake2b.Size]byte) {
	var buf [blake2b.Size + 8]byte
	var tmp [BlockSize]byte
	copy(buf[:], h0[:])

	for lane := uint32(0); lane < mem.lanes; lane++ {
		buf[68] = uint8(lane)
		buf[69] = uint8(lane >> 8)
		buf[70] = uint8(lane >> 16)
		buf[71] = uint8(lane >> 24)

		for j := uint32(0); j < 2; j++ {
			buf[64] = uint8(j)
			if err := blake2bLong(tmp[:], buf[:]); err != nil {
				panic("argon: internal error: " + err.Error())
			}
			mem.blocks[lane*mem.laneLength+j].load(tmp[:])
		}
	}

	for i := range buf {
		buf[i] = 0
	}
	for i := range tmp {
		tmp[i] = 0
	}
}
