// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

import (
	"fmt"
	"math"

	"golang.org/x/text/encoding/unicode"
)

// BitReader presents a byte region as a cursor that reads
// variable-width bit fields without regard to byte alignment. Bit
// numbering within a byte is MSB-first, matching the format's own
// convention. Every primitive advances the cursor by exactly the
// number of bits it consumes and fails with ErrOutOfBounds rather
// than reading past the declared region — the bit-level analogue of
// the familiar bounds-checked-read idiom.
type BitReader struct {
	data    []byte
	bitPos  uint64
	bitSize uint64
	version Version
}

// NewBitReader wraps data (already sliced to the object's declared
// byte span) as a bit cursor positioned at bit 0.
func NewBitReader(data []byte, version Version) *BitReader {
	return &BitReader{data: data, bitSize: uint64(len(data)) * 8, version: version}
}

// BitPos returns the current bit offset from the start of the region.
func (r *BitReader) BitPos() uint64 { return r.bitPos }

// Remaining returns the number of unread bits left in the region.
func (r *BitReader) Remaining() uint64 {
	if r.bitPos >= r.bitSize {
		return 0
	}
	return r.bitSize - r.bitPos
}

// SeekBit repositions the cursor to an absolute bit offset.
func (r *BitReader) SeekBit(pos uint64) error {
	if pos > r.bitSize {
		return ErrOutOfBounds
	}
	r.bitPos = pos
	return nil
}

func (r *BitReader) requireBits(n uint64) error {
	if r.bitPos+n > r.bitSize {
		return fmt.Errorf("%w: need %d bits at offset %d, have %d",
			ErrOutOfBounds, n, r.bitPos, r.bitSize)
	}
	return nil
}

// bit returns the bit at absolute position pos, MSB-first within its
// byte.
func (r *BitReader) bit(pos uint64) uint64 {
	byteIdx := pos / 8
	bitIdx := 7 - (pos % 8)
	return uint64((r.data[byteIdx] >> bitIdx) & 1)
}

// readRaw consumes n bits (0 <= n <= 64) and returns them as the low
// bits of a uint64, MSB-first.
func (r *BitReader) readRaw(n uint64) (uint64, error) {
	if err := r.requireBits(n); err != nil {
		return 0, err
	}
	var v uint64
	for i := uint64(0); i < n; i++ {
		v = (v << 1) | r.bit(r.bitPos+i)
	}
	r.bitPos += n
	return v, nil
}

// B reads a single raw bit.
func (r *BitReader) B() (bool, error) {
	v, err := r.readRaw(1)
	return v != 0, err
}

// BB reads two raw bits.
func (r *BitReader) BB() (uint8, error) {
	v, err := r.readRaw(2)
	return uint8(v), err
}

// RC reads a raw byte-aligned char. DWG's "raw" fields are still read
// through the bit cursor (they needn't be byte-aligned in the stream
// in general, only RC/RS/RL are conventionally emitted at byte
// boundaries by the writer) so this shares the same primitive as
// every other width.
func (r *BitReader) RC() (uint8, error) {
	v, err := r.readRaw(8)
	return uint8(v), err
}

// RS reads a raw 16-bit little-endian-ordered short. The bit stream
// stores multi-byte raw fields byte-reversed relative to bit order;
// reading byte-by-byte and reassembling keeps this explicit rather
// than bit-shifting a 16-bit raw read against MSB ordering.
func (r *BitReader) RS() (uint16, error) {
	lo, err := r.RC()
	if err != nil {
		return 0, err
	}
	hi, err := r.RC()
	if err != nil {
		return 0, err
	}
	return uint16(lo) | uint16(hi)<<8, nil
}

// RL reads a raw 32-bit little-endian-ordered long.
func (r *BitReader) RL() (uint32, error) {
	lo, err := r.RS()
	if err != nil {
		return 0, err
	}
	hi, err := r.RS()
	if err != nil {
		return 0, err
	}
	return uint32(lo) | uint32(hi)<<16, nil
}

// RD reads a raw 64-bit IEEE double, byte order as RL/RL pair.
func (r *BitReader) RD() (float64, error) {
	lo, err := r.RL()
	if err != nil {
		return 0, err
	}
	hi, err := r.RL()
	if err != nil {
		return 0, err
	}
	bits := uint64(lo) | uint64(hi)<<32
	return math.Float64frombits(bits), nil
}

// BS reads a "modular short": a 2-bit prefix selects the encoding of
// the value that follows.
//
//	00 -> 16-bit raw value follows
//	01 -> 8-bit raw value follows, zero-extended
//	10 -> no further bits, value is 0
//	11 -> no further bits, value is 256
func (r *BitReader) BS() (uint16, error) {
	code, err := r.BB()
	if err != nil {
		return 0, err
	}
	switch code {
	case 0:
		return r.RS()
	case 1:
		v, err := r.RC()
		return uint16(v), err
	case 2:
		return 0, nil
	default: // 3
		return 256, nil
	}
}

// BL reads a "modular long": a 2-bit prefix selects the encoding.
//
//	00 -> 32-bit raw value follows
//	01 -> 8-bit raw value follows, zero-extended
//	10 -> no further bits, value is 0
//	11 -> reserved / not used on the wire
func (r *BitReader) BL() (uint32, error) {
	code, err := r.BB()
	if err != nil {
		return 0, err
	}
	switch code {
	case 0:
		return r.RL()
	case 1:
		v, err := r.RC()
		return uint32(v), err
	case 2:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: reserved BL prefix 3", ErrMalformedRecord)
	}
}

// BLL reads a "modular long long": like BL, used for 64-bit sizes in
// later dialects (handle-stream sizes, object-map page sizes on
// R2007+). Prefix meaning mirrors BL but the raw form is 64 bits.
func (r *BitReader) BLL() (uint64, error) {
	code, err := r.BB()
	if err != nil {
		return 0, err
	}
	switch code {
	case 0:
		lo, err := r.RL()
		if err != nil {
			return 0, err
		}
		hi, err := r.RL()
		if err != nil {
			return 0, err
		}
		return uint64(lo) | uint64(hi)<<32, nil
	case 1:
		v, err := r.RC()
		return uint64(v), err
	case 2:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: reserved BLL prefix 3", ErrMalformedRecord)
	}
}

// BD reads a "modular double": a 2-bit prefix selects the encoding.
//
//	00 -> 64-bit IEEE double follows
//	01 -> value is the constant 1.0
//	10 -> value is the constant 0.0
//	11 -> reserved / not used on the wire
func (r *BitReader) BD() (float64, error) {
	code, err := r.BB()
	if err != nil {
		return 0, err
	}
	switch code {
	case 0:
		return r.RD()
	case 1:
		return 1.0, nil
	case 2:
		return 0.0, nil
	default:
		return 0, fmt.Errorf("%w: reserved BD prefix 3", ErrMalformedRecord)
	}
}

// BT reads a "thickness" field: BD with a default of zero, as used by
// every entity's thickness attribute.
func (r *BitReader) BT() (float64, error) { return r.BD() }

// BE reads a default-Z-axis extrusion vector: a single bit selects
// whether the extrusion is the world Z axis (0,0,1), the common case
// omitted from the stream, or an explicit 3BD follows.
func (r *BitReader) BE() (Point3D, error) {
	isDefault, err := r.B()
	if err != nil {
		return Point3D{}, err
	}
	if isDefault {
		return Point3D{Z: 1}, nil
	}
	return r.ThreeBD()
}

// MC reads a "modular char": a sequence of bytes, each carrying 7
// payload bits and a continuation flag in bit 7; the sign is carried
// in bit 6 of the final byte. Used for handle-map deltas.
func (r *BitReader) MC() (int64, error) {
	var result uint64
	shift := uint(0)
	for i := 0; i < 5; i++ {
		b, err := r.RC()
		if err != nil {
			return 0, err
		}
		if i == 4 {
			// Fifth byte carries 8 payload bits, no continuation bit,
			// matching the observed writer behavior for very large deltas.
			result |= uint64(b) << shift
			return int64(result), nil
		}
		cont := b&0x80 != 0
		payload := uint64(b & 0x7f)
		if cont {
			result |= payload << shift
			shift += 7
			continue
		}
		// Final byte: bit 6 is the sign, remaining 6 bits are payload.
		sign := b&0x40 != 0
		result |= uint64(b&0x3f) << shift
		if sign {
			return -int64(result), nil
		}
		return int64(result), nil
	}
	return 0, fmt.Errorf("%w: MC value too long", ErrMalformedRecord)
}

// MS reads a "modular short": like MC but in 15-bit chunks with no
// sign bit, used for object record sizes.
func (r *BitReader) MS() (uint32, error) {
	var result uint32
	shift := uint(0)
	for {
		v, err := r.RS()
		if err != nil {
			return 0, err
		}
		result |= uint32(v&0x7fff) << shift
		if v&0x8000 == 0 {
			return result, nil
		}
		shift += 15
		if shift > 32 {
			return 0, fmt.Errorf("%w: MS value too long", ErrMalformedRecord)
		}
	}
}

// HandleCode identifies how an H-encoded handle reference is related
// to the host object's own handle.
type HandleCode uint8

const (
	// HandleAbsolute carries the referenced handle in full.
	HandleAbsolute HandleCode = 0x2
	// HandlePositiveOffset is host handle + offset.
	HandlePositiveOffset HandleCode = 0x3
	// HandleNegativeOffset is host handle - offset.
	HandleNegativeOffset HandleCode = 0x4
	// HandleOwnerAbsolute marks an owner-handle reference carried in full.
	HandleOwnerAbsolute HandleCode = 0x6
	// HandleSoftPointer marks a soft-pointer reference carried in full.
	HandleSoftPointer HandleCode = 0xC
)

// HandleRef is a decoded H-field: a 4-bit reference-kind code plus
// the handle value it resolves to once combined with the host's own
// handle (for the two offset forms).
type HandleRef struct {
	Code  uint8
	Value uint64
}

// H reads a handle reference: a 4-bit code selecting the reference
// kind, followed by a 4-bit byte count and that many bytes forming
// the big-endian magnitude of the handle or offset.
func (r *BitReader) H() (HandleRef, error) {
	code, err := r.readRaw(4)
	if err != nil {
		return HandleRef{}, err
	}
	n, err := r.readRaw(4)
	if err != nil {
		return HandleRef{}, err
	}
	var v uint64
	for i := uint64(0); i < n; i++ {
		b, err := r.RC()
		if err != nil {
			return HandleRef{}, err
		}
		v = (v << 8) | uint64(b)
	}
	return HandleRef{Code: uint8(code), Value: v}, nil
}

// Resolve combines an H-field against the handle of the object that
// carries it, applying the offset-form codes.
func (h HandleRef) Resolve(hostHandle uint64) uint64 {
	switch HandleCode(h.Code) {
	case HandlePositiveOffset:
		return hostHandle + h.Value
	case HandleNegativeOffset:
		return hostHandle - h.Value
	default:
		return h.Value
	}
}

// T reads a length-prefixed text field: BS length, then that many
// bytes. For R2007+ files the bytes are UTF-16LE and are decoded to
// UTF-8; earlier dialects store plain bytes interpreted as Windows
// ANSI, for which this module's scope only needs the printable ASCII
// subset.
func (r *BitReader) T() (string, error) {
	if r.version.atLeast(VersionR2007) {
		return r.TU()
	}
	n, err := r.BS()
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	for i := range b {
		v, err := r.RC()
		if err != nil {
			return "", err
		}
		b[i] = v
	}
	return string(b), nil
}

// TU reads a UTF-16LE length-prefixed string (R2007+ dialect): BS
// gives the character count, followed by that many 16-bit code
// units.
func (r *BitReader) TU() (string, error) {
	n, err := r.BS()
	if err != nil {
		return "", err
	}
	raw := make([]byte, 0, int(n)*2)
	for i := uint16(0); i < n; i++ {
		lo, err := r.RC()
		if err != nil {
			return "", err
		}
		hi, err := r.RC()
		if err != nil {
			return "", err
		}
		raw = append(raw, lo, hi)
	}
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := decoder.Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: utf16 decode: %v", ErrMalformedRecord, err)
	}
	return string(out), nil
}

// ColorRef is a decoded CMC color reference.
type ColorRef struct {
	Index     uint16
	TrueColor uint32
	HasTrue   bool
	Name      string
}

// CMC reads a color reference: a BS index, and — when the index
// signals a true-color entry — a BL packed 0x00RRGGBB value plus an
// optional name string.
func (r *BitReader) CMC() (ColorRef, error) {
	idx, err := r.BS()
	if err != nil {
		return ColorRef{}, err
	}
	ref := ColorRef{Index: idx}
	if idx&0x8000 != 0 {
		tc, err := r.BL()
		if err != nil {
			return ColorRef{}, err
		}
		ref.HasTrue = true
		ref.TrueColor = tc & 0x00FFFFFF
		name, err := r.T()
		if err != nil {
			return ColorRef{}, err
		}
		ref.Name = name
	}
	return ref, nil
}

// Point3D is a 3-component double-precision point or vector.
type Point3D struct{ X, Y, Z float64 }

// Point2D is a 2-component double-precision point.
type Point2D struct{ X, Y float64 }

// ThreeBD reads three consecutive BD values as a 3D point.
func (r *BitReader) ThreeBD() (Point3D, error) {
	x, err := r.BD()
	if err != nil {
		return Point3D{}, err
	}
	y, err := r.BD()
	if err != nil {
		return Point3D{}, err
	}
	z, err := r.BD()
	if err != nil {
		return Point3D{}, err
	}
	return Point3D{X: x, Y: y, Z: z}, nil
}

// TwoBD reads two consecutive BD values as a 2D point.
func (r *BitReader) TwoBD() (Point2D, error) {
	x, err := r.BD()
	if err != nil {
		return Point2D{}, err
	}
	y, err := r.BD()
	if err != nil {
		return Point2D{}, err
	}
	return Point2D{X: x, Y: y}, nil
}

// TwoRD reads two consecutive RD values as a 2D point (raw, not
// modular — used by vertex lists where every coordinate is expected
// to be present).
func (r *BitReader) TwoRD() (Point2D, error) {
	x, err := r.RD()
	if err != nil {
		return Point2D{}, err
	}
	y, err := r.RD()
	if err != nil {
		return Point2D{}, err
	}
	return Point2D{X: x, Y: y}, nil
}
