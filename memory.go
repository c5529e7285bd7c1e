package argon

import (
	"fmt"
	"sync/atomic"
)

// memory is the block matrix: lanes rows of laneLength blocks, each lane
// split into syncPoints segments of segmentLength blocks.
//
// Lanes working on the same slice run concurrently without locks. That is
// safe because a segment view may only write inside its own segment and
// may only read blocks that are in its own lane or in another slice, and
// no other worker writes those until the slice barrier. Views check this
// on every access.
type memory struct {
	blocks        []Block
	lanes         uint32
	laneLength    uint32
	segmentLength uint32

	// slice is the slice being filled. Only changed between barriers.
	slice uint32
	// claimed[l] is non-zero while lane l has a live segment view.
	claimed []uint32
}

func newMemory(blocks []Block, lanes uint32) *memory {
	laneLength := uint32(len(blocks)) / lanes
	if laneLength%syncPoints != 0 || laneLength < 2*syncPoints {
		panic("argon: internal error: invalid lane length")
	}
	return &memory{
		blocks:        blocks[:laneLength*lanes],
		lanes:         lanes,
		laneLength:    laneLength,
		segmentLength: laneLength / syncPoints,
		claimed:       make([]uint32, lanes),
	}
}

// beginSlice sets the slice every subsequent segment view must belong to.
// It must not be called while any view is live.
func (m *memory) beginSlice(slice uint32) {
	for lane := range m.claimed {
		if atomic.LoadUint32(&m.claimed[lane]) != 0 {
			panic(fmt.Sprintf("argon: internal error: lane %d still active at slice %d", lane, slice))
		}
	}
	m.slice = slice
}

// segment claims the segment of lane in the active slice.
func (m *memory) segment(slice, lane uint32) *segmentView {
	if slice != m.slice {
		panic(fmt.Sprintf("argon: internal error: segment for slice %d requested during slice %d", slice, m.slice))
	}
	if !atomic.CompareAndSwapUint32(&m.claimed[lane], 0, 1) {
		panic(fmt.Sprintf("argon: internal error: lane %d already has a segment view", lane))
	}
	return &segmentView{mem: m, slice: slice, lane: lane}
}

func (m *memory) laneOf(i uint32) uint32 {
	return i / m.laneLength
}

func (m *memory) sliceOf(i uint32) uint32 {
	return i % m.laneLength / m.segmentLength
}

// lastBlock returns the final block of lane. Only valid once every
// segment has been filled.
func (m *memory) lastBlock(lane uint32) *Block {
	return &m.blocks[lane*m.laneLength+m.laneLength-1]
}

// segmentView grants one worker access to one (slice, lane) segment.
type segmentView struct {
	mem   *memory
	slice uint32
	lane  uint32
}

// get returns block i for reading.
func (v *segmentView) get(i uint32) *Block {
	m := v.mem
	if m.laneOf(i) != v.lane && m.sliceOf(i) == v.slice {
		panic(fmt.Sprintf("argon: internal error: lane %d slice %d read block %d of lane %d",
			v.lane, v.slice, i, m.laneOf(i)))
	}
	return &m.blocks[i]
}

// getMut returns block i for writing.
func (v *segmentView) getMut(i uint32) *Block {
	m := v.mem
	if m.laneOf(i) != v.lane || m.sliceOf(i) != v.slice {
		panic(fmt.Sprintf("argon: internal error: lane %d slice %d wrote block %d outside its segment",
			v.lane, v.slice, i))
	}
	return &m.blocks[i]
}

// release ends the view. The lane may then move to the next slice.
func (v *segmentView) release() {
	if v.mem == nil || !atomic.CompareAndSwapUint32(&v.mem.claimed[v.lane], 1, 0) {
		panic("argon: internal error: segment view released twice")
	}
	v.mem = nil
}
