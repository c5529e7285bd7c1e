package argon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLayout(t *testing.T) {
	m := newMemory(make([]Block, 17), 2)
	assert.Len(t, m.blocks, 16, "trailing blocks beyond lanes*laneLength are dropped")
	assert.Equal(t, uint32(8), m.laneLength)
	assert.Equal(t, uint32(2), m.segmentLength)

	assert.Equal(t, uint32(0), m.laneOf(7))
	assert.Equal(t, uint32(1), m.laneOf(8))
	assert.Equal(t, uint32(0), m.sliceOf(8))
	assert.Equal(t, uint32(3), m.sliceOf(15))
	assert.Equal(t, uint32(1), m.sliceOf(3))

	assert.Same(t, &m.blocks[7], m.lastBlock(0))
	assert.Same(t, &m.blocks[15], m.lastBlock(1))

	require.Panics(t, func() { newMemory(make([]Block, 12), 2) })
	require.Panics(t, func() { newMemory(make([]Block, 4), 1) })
}

func TestSegmentViewAccess(t *testing.T) {
	// 2 lanes x 8 blocks: lane 0 is blocks 0-7, lane 1 is blocks 8-15,
	// slice s of lane l is blocks 8l+2s and 8l+2s+1.
	m := newMemory(make([]Block, 16), 2)
	m.beginSlice(1)
	v := m.segment(1, 0)
	defer v.release()

	for i := uint32(0); i < 16; i++ {
		sameLane := i < 8
		sameSlice := i%8/2 == 1
		if sameLane || !sameSlice {
			assert.NotPanics(t, func() { v.get(i) }, "read %d", i)
		} else {
			assert.Panics(t, func() { v.get(i) }, "read %d", i)
		}
		if sameLane && sameSlice {
			assert.NotPanics(t, func() { v.getMut(i) }, "write %d", i)
		} else {
			assert.Panics(t, func() { v.getMut(i) }, "write %d", i)
		}
	}

	assert.Same(t, &m.blocks[3], v.getMut(3))
	assert.Same(t, &m.blocks[12], v.get(12))
}

func TestSegmentViewClaims(t *testing.T) {
	m := newMemory(make([]Block, 16), 2)
	m.beginSlice(0)

	v0 := m.segment(0, 0)
	v1 := m.segment(0, 1)
	require.Panics(t, func() { m.segment(0, 0) }, "second view of lane 0")
	require.Panics(t, func() { m.segment(1, 1) }, "view outside the active slice")
	require.Panics(t, func() { m.beginSlice(1) }, "slice change with live views")

	v0.release()
	require.Panics(t, func() { v0.release() })
	v1.release()

	require.NotPanics(t, func() { m.beginSlice(1) })
	v := m.segment(1, 0)
	v.release()
}

func TestFillMemoryReleasesViews(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		m := newMemory(make([]Block, 32), 4)
		in := &instance{alg: Argon2id, version: Version13, mem: m, passes: 2, parallel: parallel}
		require.NotPanics(t, func() { in.fillMemory() })
		for lane, c := range m.claimed {
			assert.Zero(t, c, "lane %d left claimed", lane)
		}
	}
}
