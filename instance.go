package argon

import (
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// instance drives one Argon2 run over a seeded memory matrix.
type instance struct {
	alg      Algorithm
	version  Version
	mem      *memory
	passes   uint32
	parallel bool
	log      logrus.FieldLogger
}

// fillMemory runs every pass. All lanes finish a slice before any lane
// starts the next one; within a slice lanes are independent and, with
// parallel set, run on a bounded pool of goroutines.
func (in *instance) fillMemory() {
	m := in.mem
	for pass := uint32(0); pass < in.passes; pass++ {
		for slice := uint32(0); slice < syncPoints; slice++ {
			m.beginSlice(slice)
			if !in.parallel || m.lanes == 1 {
				for lane := uint32(0); lane < m.lanes; lane++ {
					in.fillSegment(pass, slice, lane)
				}
				continue
			}

			var g errgroup.Group
			g.SetLimit(runtime.GOMAXPROCS(0))
			for lane := uint32(0); lane < m.lanes; lane++ {
				lane := lane
				g.Go(func() error {
					in.fillSegment(pass, slice, lane)
					return nil
				})
			}
			g.Wait()
		}
		if in.log != nil {
			in.log.WithFields(logrus.Fields{
				"pass":  pass,
				"block": m.lastBlock(0)[0],
			}).Trace("argon: pass done")
		}
	}
}

func (in *instance) fillSegment(pass, slice, lane uint32) {
	m := in.mem
	v := m.segment(slice, lane)
	defer v.release()

	pos := position{pass: pass, lane: lane, slice: slice}

	var addr *addressGenerator
	if dataIndependent(in.alg, pass, slice) {
		addr = newAddressGenerator(pos, uint32(len(m.blocks)), in.passes, in.alg)
	}

	// The first two blocks of every lane are seeded from H0.
	start := uint32(0)
	if pass == 0 && slice == 0 {
		start = 2
		if addr != nil {
			addr.next()
		}
	}

	xor := pass > 0 && in.version == Version13
	laneStart := lane * m.laneLength
	cur := laneStart + slice*m.segmentLength + start
	for i := start; i < m.segmentLength; i, cur = i+1, cur+1 {
		prev := cur - 1
		if slice == 0 && i == 0 {
			prev = laneStart + m.laneLength - 1
		}

		var rand uint64
		if addr != nil {
			if i%blockLength == 0 {
				addr.next()
			}
			rand = addr.address[i%blockLength]
		} else {
			rand = v.get(prev)[0]
		}

		pos.index = i
		refLane, refIndex := referenceIndex(pos, rand, m.lanes, m.laneLength, m.segmentLength)
		ref := v.get(refLane*m.laneLength + refIndex)

		v.getMut(cur).fill(v.get(prev), ref, xor)
	}
}

// finalize XORs the last block of every lane and expands the result into out.
func (in *instance) finalize(out []byte) error {
	final := *in.mem.lastBlock(0)
	for lane := uint32(1); lane < in.mem.lanes; lane++ {
		final.xor(in.mem.lastBlock(lane))
	}

	var buf [BlockSize]byte
	final.store(buf[:])
	return blake2bLong(out, buf[:])
}
