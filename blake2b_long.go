package argon

import (
	"hash"

	"github.com/dchest/blake2b"
)

// blake2bLong is the variable-length hash H' from RFC 9106 §3.3. It hashes
// the little-endian output length followed by the inputs. Outputs of up to
// 64 bytes are a single BLAKE2b digest of that size; longer outputs are
// chained in 32-byte steps with a final digest of 33 to 64 bytes.
func blake2bLong(out []byte, in ...[]byte) error {
	if len(out) == 0 {
		return ErrOutputTooShort
	}
	if uint64(len(out)) > MaxOutputLen {
		return ErrOutputTooLong
	}

	if len(out) <= blake2b.Size {
		h := newHash(len(out))
		write32(h, uint32(len(out)))
		for _, b := range in {
			h.Write(b)
		}
		h.Sum(out[:0])
		return nil
	}

	const half = blake2b.Size / 2
	var buf [blake2b.Size]byte
	h := blake2b.New512()
	write32(h, uint32(len(out)))
	for _, b := range in {
		h.Write(b)
	}
	h.Sum(buf[:0])
	copy(out, buf[:half])

	n := half
	for len(out)-n > blake2b.Size {
		h.Reset()
		h.Write(buf[:])
		h.Sum(buf[:0])
		copy(out[n:], buf[:half])
		n += half
	}

	h = newHash(len(out) - n)
	h.Write(buf[:])
	h.Sum(out[n:n])
	return nil
}

// newHash returns an unkeyed BLAKE2b with a digest of size bytes.
func newHash(size int) hash.Hash {
	h, err := blake2b.New(&blake2b.Config{Size: uint8(size)})
	if err != nil {
		panic("argon: internal error: " + err.Error())
	}
	return h
}

func write32(h hash.Hash, v uint32) (n int, err error) {
	var b [4]byte
	b[0] = uint8(v)
	b[1] = uint8(v >> 8)
	b[2] = uint8(v >> 16)
	b[3] = uint8(v >> 24)
	return h.Write(b[:])
}
