package argon

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pseudoRandoms() []uint64 {
	rands := []uint64{
		0,
		1,
		0xffffffff,
		0xffffffff_ffffffff,
		0x00000001_00000000,
		0x80000000_80000000,
		0x7fffffff_00000001,
	}
	r := rand.New(rand.NewSource(9106))
	for i := 0; i < 256; i++ {
		rands = append(rands, r.Uint64())
	}
	return rands
}

// Every reference must be a finished block that the current lane is
// allowed to read while the other lanes fill the same slice.
func TestReferenceIndexAccessRule(t *testing.T) {
	shapes := []struct{ lanes, laneLength uint32 }{
		{2, 8},
		{1, 8},
		{3, 16},
		{4, 12},
	}
	rands := pseudoRandoms()

	for _, s := range shapes {
		t.Run(fmt.Sprintf("%dx%d", s.lanes, s.laneLength), func(t *testing.T) {
			segmentLength := s.laneLength / syncPoints
			for pass := uint32(0); pass < 3; pass++ {
				for slice := uint32(0); slice < syncPoints; slice++ {
					for lane := uint32(0); lane < s.lanes; lane++ {
						start := uint32(0)
						if pass == 0 && slice == 0 {
							start = 2
						}
						for i := start; i < segmentLength; i++ {
							pos := position{pass: pass, lane: lane, slice: slice, index: i}
							cur := slice*segmentLength + i
							prev := (cur + s.laneLength - 1) % s.laneLength

							for _, rnd := range rands {
								refLane, ref := referenceIndex(pos, rnd, s.lanes, s.laneLength, segmentLength)
								refSlice := ref / segmentLength

								require.Less(t, refLane, s.lanes)
								require.Less(t, ref, s.laneLength)
								require.True(t, refLane == lane || refSlice != slice,
									"%+v rand %#x read lane %d block %d", pos, rnd, refLane, ref)
								if refLane == lane {
									require.NotEqual(t, cur, ref, "%+v references itself", pos)
									require.NotEqual(t, prev, ref, "%+v references its previous block", pos)
								}
								if pass == 0 {
									written := ref < slice*segmentLength
									if refLane == lane {
										written = ref < cur
									}
									require.True(t, written, "%+v rand %#x read unwritten lane %d block %d",
										pos, rnd, refLane, ref)
								}
								if pass == 0 && slice == 0 {
									require.Equal(t, lane, refLane)
								}
							}
						}
					}
				}
			}
		})
	}
}

func TestReferenceIndexBias(t *testing.T) {
	const laneLength, segmentLength = 64, 16

	// J1 = 0 selects the most recent eligible block, J1 = 2^32-1 the oldest.
	pos := position{pass: 0, lane: 0, slice: 0, index: 5}
	_, ref := referenceIndex(pos, 0, 1, laneLength, segmentLength)
	assert.Equal(t, uint32(3), ref)
	_, ref = referenceIndex(pos, 0xffffffff, 1, laneLength, segmentLength)
	assert.Equal(t, uint32(0), ref)

	// Later passes start right after the current segment and wrap.
	pos = position{pass: 1, lane: 0, slice: 1, index: 0}
	_, ref = referenceIndex(pos, 0, 1, laneLength, segmentLength)
	assert.Equal(t, uint32(14), ref)
	_, ref = referenceIndex(pos, 0xffffffff, 1, laneLength, segmentLength)
	assert.Equal(t, uint32(32), ref)

	pos = position{pass: 2, lane: 0, slice: 3, index: 4}
	_, ref = referenceIndex(pos, 0, 1, laneLength, segmentLength)
	assert.Equal(t, uint32(50), ref)

	// Most references land in the newer half of the reference area.
	pos = position{pass: 1, lane: 0, slice: 3, index: 0}
	newer := 0
	rands := pseudoRandoms()
	for _, rnd := range rands {
		_, ref := referenceIndex(pos, rnd, 1, laneLength, segmentLength)
		if ref >= 24 {
			newer++
		}
	}
	assert.Greater(t, newer, len(rands)/2)
}

func TestReferenceLane(t *testing.T) {
	const lanes, laneLength, segmentLength = 4, 16, 4

	pos := position{pass: 0, lane: 2, slice: 0, index: 3}
	for _, rnd := range pseudoRandoms() {
		refLane, _ := referenceIndex(pos, rnd, lanes, laneLength, segmentLength)
		assert.Equal(t, uint32(2), refLane)
	}

	pos = position{pass: 0, lane: 2, slice: 1, index: 3}
	refLane, _ := referenceIndex(pos, 3<<32, lanes, laneLength, segmentLength)
	assert.Equal(t, uint32(3), refLane)
	refLane, _ = referenceIndex(pos, 9<<32, lanes, laneLength, segmentLength)
	assert.Equal(t, uint32(1), refLane)
}

func TestDataIndependent(t *testing.T) {
	tests := []struct {
		alg         Algorithm
		pass, slice uint32
		want        bool
	}{
		{Argon2d, 0, 0, false},
		{Argon2d, 1, 3, false},
		{Argon2i, 0, 0, true},
		{Argon2i, 2, 3, true},
		{Argon2id, 0, 0, true},
		{Argon2id, 0, 1, true},
		{Argon2id, 0, 2, false},
		{Argon2id, 0, 3, false},
		{Argon2id, 1, 0, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, dataIndependent(tt.alg, tt.pass, tt.slice), "%s pass %d slice %d", tt.alg, tt.pass, tt.slice)
	}
}

func TestAddressGenerator(t *testing.T) {
	pos := position{pass: 1, lane: 2, slice: 3}
	g := newAddressGenerator(pos, 64, 3, Argon2i)
	assert.Equal(t, []uint64{1, 2, 3, 64, 3, 1, 0}, g.input[:7])

	g.next()
	assert.Equal(t, uint64(1), g.input[6])
	first := g.address

	var want, zero Block
	want.fill(&zero, &g.input, false)
	want.fill(&zero, &want, false)
	assert.Equal(t, want, first)

	g.next()
	assert.Equal(t, uint64(2), g.input[6])
	assert.NotEqual(t, first, g.address)

	// The generator never looks at memory contents, so another generator
	// for the same position yields the same stream.
	h := newAddressGenerator(pos, 64, 3, Argon2i)
	h.next()
	assert.Equal(t, first, h.address)
}
