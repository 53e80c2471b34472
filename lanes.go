// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netsim

import "encoding/binary"

// Pack and unpack Logic slices to and from bit planes, 8 lanes at a time.
//
// A chunk of 8 Logic values is loaded as a little endian uint64, one byte per
// lane. Since a Logic keeps its level in bit 0 and the unknown flag in bit 1,
// masking with lsbMask isolates one bit plane with a single 0/1 byte per lane.
// Multiplying by gatherMul then moves the low bit of lane i to bit 56+i, all
// partial products landing on distinct bit positions.

const (
	laneWidth = 8
	lsbMask   = 0x0101010101010101
	gatherMul = 0x0102040810204080
	padLanes  = uint64(Unknown) * lsbMask // lanes past the end of input read as X
)

// spreadLanes[b] has byte i set to bit i of b.
var spreadLanes [256]uint64

func init() {
	for b := range spreadLanes {
		var w uint64
		for i := 0; i < laneWidth; i++ {
			w |= uint64(b>>uint(i)&1) << uint(8*i)
		}
		spreadLanes[b] = w
	}
}

func gather(w uint64) uint64 {
	return (w & lsbMask) * gatherMul >> 56
}

func loadLanes(ls []Logic) uint64 {
	if len(ls) >= laneWidth {
		var buf [laneWidth]byte
		for i := range buf {
			buf[i] = byte(ls[i])
		}
		return binary.LittleEndian.Uint64(buf[:])
	}
	w := padLanes
	for i, l := range ls {
		w &^= 0xff << uint(8*i)
		w |= uint64(l) << uint(8*i)
	}
	return w
}

func storeLanes(w uint64, out []Logic) {
	var buf [laneWidth]byte
	binary.LittleEndian.PutUint64(buf[:], w)
	for i := range out {
		if i == laneWidth {
			break
		}
		out[i] = Logic(buf[i])
	}
}

func packLanes(ls []Logic) (v, x uint64) {
	for i := 0; i < len(ls); i += laneWidth {
		end := i + laneWidth
		if end > len(ls) {
			end = len(ls)
		}
		w := loadLanes(ls[i:end])
		v |= gather(w) << uint(i)
		x |= gather(w>>1) << uint(i)
	}
	if n := uint(len(ls)); n < 64 {
		m := uint64(1)<<n - 1
		v &= m
		x &= m
	}
	return v, x
}

func unpackLanes(v, x uint64, out []Logic) {
	for i := 0; i < len(out); i += laneWidth {
		bv := spreadLanes[byte(v>>uint(i))]
		bx := spreadLanes[byte(x>>uint(i))]
		storeLanes(bv&^bx|bx<<1, out[i:])
	}
}
