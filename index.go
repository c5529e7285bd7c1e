package argon

// position locates the block being filled.
type position struct {
	pass  uint32
	lane  uint32
	slice uint32
	index uint32 // within the segment
}

// dataIndependent reports whether the segment at (pass, slice) takes its
// pseudo-random values from address blocks rather than from memory.
func dataIndependent(alg Algorithm, pass, slice uint32) bool {
	switch alg {
	case Argon2i:
		return true
	case Argon2id:
		return pass == 0 && slice < syncPoints/2
	}
	return false
}

// addressGenerator produces the pseudo-random values of a data-independent
// segment, 128 at a time, as G(0, G(0, input)) over a counter block.
type addressGenerator struct {
	input   Block
	address Block
	zero    Block
}

func newAddressGenerator(pos position, blockCount, passes uint32, alg Algorithm) *addressGenerator {
	g := new(addressGenerator)
	g.input[0] = uint64(pos.pass)
	g.input[1] = uint64(pos.lane)
	g.input[2] = uint64(pos.slice)
	g.input[3] = uint64(blockCount)
	g.input[4] = uint64(passes)
	g.input[5] = uint64(alg)
	return g
}

func (g *addressGenerator) next() {
	g.input[6]++
	g.address.fill(&g.zero, &g.input, false)
	g.address.fill(&g.zero, &g.address, false)
}

// referenceIndex maps the pseudo-random value rand to the lane and the
// index within that lane of the reference block for pos.
//
// The low 32 bits (J1) pick the block, the high 32 bits (J2) the lane.
// Only blocks that are already finished and that no other lane can be
// writing are eligible:
//
//   - in the first pass, blocks in earlier slices, plus the finished part of
//     the current segment when staying in the same lane;
//   - in later passes, every slice but the current one, plus the finished
//     part of the current segment when staying in the same lane.
//
// The block right before pos is always excluded (it is the other input),
// and a segment's first block also excludes the last block of every other
// lane's previous segment. J1 is squared so that recent blocks are
// referenced more often.
func referenceIndex(pos position, rand uint64, lanes, laneLength, segmentLength uint32) (refLane, refIndex uint32) {
	refLane = uint32(rand>>32) % lanes
	if pos.pass == 0 && pos.slice == 0 {
		refLane = pos.lane
	}
	sameLane := refLane == pos.lane

	var area uint32
	if pos.pass == 0 {
		switch {
		case pos.slice == 0:
			area = pos.index - 1
		case sameLane:
			area = pos.slice*segmentLength + pos.index - 1
		default:
			area = pos.slice * segmentLength
			if pos.index == 0 {
				area--
			}
		}
	} else {
		if sameLane {
			area = laneLength - segmentLength + pos.index - 1
		} else {
			area = laneLength - segmentLength
			if pos.index == 0 {
				area--
			}
		}
	}

	x := rand & 0xffffffff
	x = x * x >> 32
	rel := uint64(area) - 1 - (uint64(area) * x >> 32)

	var start uint64
	if pos.pass != 0 && pos.slice != syncPoints-1 {
		start = uint64(pos.slice+1) * uint64(segmentLength)
	}
	return refLane, uint32((start + rel) % uint64(laneLength))
}
