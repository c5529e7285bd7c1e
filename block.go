package argon

import (
	"encoding/binary"
	"math/bits"
)

const (
	// BlockSize is the size of a memory block in bytes.
	BlockSize = 1024

	blockLength = BlockSize / 8
)

// Block is one 1 KiB unit of Argon2 memory, viewed as 128 little-endian
// 64-bit words.
type Block [blockLength]uint64

// Word groups permuted by the compression function. The 128 words form an
// 8x16 matrix; columnGroups are its eight runs of 16 consecutive words and
// rowGroups take two adjacent words from each run.
var columnGroups, rowGroups [8][16]int

func init() {
	for i := 0; i < 8; i++ {
		for j := 0; j < 16; j++ {
			columnGroups[i][j] = 16*i + j
			rowGroups[i][j] = 16*(j/2) + 2*i + j%2
		}
	}
}

// fill computes G(prev, ref) into b. With xor set the result is XORed over
// the current contents of b instead of replacing them (version 0x13 on
// later passes). prev and ref may alias b.
func (b *Block) fill(prev, ref *Block, xor bool) {
	var r, t Block
	for i := range r {
		r[i] = prev[i] ^ ref[i]
	}
	t = r
	if xor {
		for i := range t {
			t[i] ^= b[i]
		}
	}
	for i := range columnGroups {
		permuteGroup(&r, &columnGroups[i])
	}
	for i := range rowGroups {
		permuteGroup(&r, &rowGroups[i])
	}
	for i := range b {
		b[i] = r[i] ^ t[i]
	}
}

func (b *Block) xor(other *Block) {
	for i := range b {
		b[i] ^= other[i]
	}
}

func (b *Block) load(buf []byte) {
	for i := range b {
		b[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
}

func (b *Block) store(buf []byte) {
	for i, v := range b {
		binary.LittleEndian.PutUint64(buf[i*8:], v)
	}
}

func permuteGroup(b *Block, idx *[16]int) {
	var v [16]uint64
	for i, j := range idx {
		v[i] = b[j]
	}
	blamkaRound(&v)
	for i, j := range idx {
		b[j] = v[i]
	}
}

// blamkaRound is one BLAKE2b round with fBlaMka in place of addition:
// four column quarter-rounds followed by four diagonal ones.
func blamkaRound(v *[16]uint64) {
	v[0], v[4], v[8], v[12] = gb(v[0], v[4], v[8], v[12])
	v[1], v[5], v[9], v[13] = gb(v[1], v[5], v[9], v[13])
	v[2], v[6], v[10], v[14] = gb(v[2], v[6], v[10], v[14])
	v[3], v[7], v[11], v[15] = gb(v[3], v[7], v[11], v[15])

	v[0], v[5], v[10], v[15] = gb(v[0], v[5], v[10], v[15])
	v[1], v[6], v[11], v[12] = gb(v[1], v[6], v[11], v[12])
	v[2], v[7], v[8], v[13] = gb(v[2], v[7], v[8], v[13])
	v[3], v[4], v[9], v[14] = gb(v[3], v[4], v[9], v[14])
}

func gb(a, b, c, d uint64) (uint64, uint64, uint64, uint64) {
	a = fBlaMka(a, b)
	d = bits.RotateLeft64(d^a, -32)
	c = fBlaMka(c, d)
	b = bits.RotateLeft64(b^c, -24)

	a = fBlaMka(a, b)
	d = bits.RotateLeft64(d^a, -16)
	c = fBlaMka(c, d)
	b = bits.RotateLeft64(b^c, -63)
	return a, b, c, d
}

// fBlaMka is x + y + 2*lo(x)*lo(y), all mod 2^64.
func fBlaMka(x, y uint64) uint64 {
	return x + y + 2*uint64(uint32(x))*uint64(uint32(y))
}
