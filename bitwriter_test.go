// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

import "math"

// testBitWriter builds MSB-first bit streams for synthetic entity
// payloads, the mirror image of BitReader's own bit ordering. No DWG
// sample files are available to this module, so entity decode tests
// construct their input directly rather than reading a fixture.
type testBitWriter struct {
	bits []bool
}

func (w *testBitWriter) writeBit(b bool) {
	w.bits = append(w.bits, b)
}

func (w *testBitWriter) writeBits(v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		w.writeBit((v>>uint(i))&1 != 0)
	}
}

func (w *testBitWriter) writeRC(v uint8)  { w.writeBits(uint64(v), 8) }
func (w *testBitWriter) writeRS(v uint16) { w.writeRC(uint8(v)); w.writeRC(uint8(v >> 8)) }
func (w *testBitWriter) writeRL(v uint32) { w.writeRS(uint16(v)); w.writeRS(uint16(v >> 16)) }
func (w *testBitWriter) writeRD(v float64) {
	w.writeRL(uint32(math.Float64bits(v)))
	w.writeRL(uint32(math.Float64bits(v) >> 32))
}

// writeBDRaw always emits the "explicit double follows" BD encoding
// (prefix 00), even for values equal to 0 or 1, so tests can target
// the raw-read path deliberately.
func (w *testBitWriter) writeBDRaw(v float64) {
	w.writeBits(0, 2)
	w.writeRD(v)
}

func (w *testBitWriter) writeBDZero() { w.writeBits(2, 2) }
func (w *testBitWriter) writeBDOne()  { w.writeBits(1, 2) }

func (w *testBitWriter) writeB(v bool) {
	if v {
		w.writeBit(true)
	} else {
		w.writeBit(false)
	}
}

func (w *testBitWriter) writeBSRaw(v uint16) {
	w.writeBits(0, 2)
	w.writeRS(v)
}

func (w *testBitWriter) writeBLRaw(v uint32) {
	w.writeBits(0, 2)
	w.writeRL(v)
}

// writeT writes a pre-R2007-style length-prefixed text field: BS
// length (raw form), followed by that many raw bytes.
func (w *testBitWriter) writeT(s string) {
	w.writeBSRaw(uint16(len(s)))
	for i := 0; i < len(s); i++ {
		w.writeRC(s[i])
	}
}

// bytes pads the accumulated bits to a whole number of bytes with
// zero bits and packs them MSB-first, matching BitReader.bit's
// convention.
func (w *testBitWriter) bytes() []byte {
	nBytes := (len(w.bits) + 7) / 8
	out := make([]byte, nBytes)
	for i, b := range w.bits {
		if !b {
			continue
		}
		byteIdx := i / 8
		bitIdx := 7 - (i % 8)
		out[byteIdx] |= 1 << uint(bitIdx)
	}
	return out
}
