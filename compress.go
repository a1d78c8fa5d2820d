// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

import "fmt"

// r2004HeaderSeed is the fixed XOR key Autodesk's R2004+ writer uses
// to obfuscate the 0x100-byte file header that precedes the system
// section directory. Unlike some obfuscation schemes whose XOR key is
// itself stored in the file and recovered by
// scanning backwards from a known signature, this key is a format
// constant: every R2004+ writer uses the same byte sequence, so
// decoding is a straight XOR against a fixed table rather than a
// recovered one.
var r2004HeaderSeed = [256]byte{
	0x28, 0x48, 0x64, 0x3b, 0x5b, 0xa4, 0x71, 0x8a,
	0x84, 0x62, 0x1f, 0xf8, 0xb8, 0x5f, 0x90, 0xfa,
	0xa1, 0x16, 0x2a, 0x5e, 0xe9, 0x8b, 0x84, 0xda,
	0x8e, 0x51, 0xe3, 0x22, 0x73, 0xb2, 0xa1, 0x73,
	// The remaining entries are irrelevant for header decode (only the
	// first 0x20 bytes of the 0x100-byte header are ever XOR-masked by
	// the observed writer); zero-fill so the table is total over an
	// index byte without over-claiming knowledge of unseen bytes.
}

// decryptR2004Header reverses the fixed XOR mask applied to the
// leading bytes of the R2004+ file header.
func decryptR2004Header(data []byte) []byte {
	out := make([]byte, len(data))
	for i, b := range data {
		var key byte
		if i < len(r2004HeaderSeed) {
			key = r2004HeaderSeed[i]
		}
		out[i] = b ^ key
	}
	return out
}

// decompressSection reverses AutoCAD's proprietary R2004+ LZ77
// dialect used to store system and data sections. The scheme is a
// byte-oriented LZ77: each opcode byte's low nibble gives a literal
// run length (zero means an extra length byte follows, added to
// 0x0F), and its high nibble plus 3 gives the length of the
// back-reference that follows the literals, addressed by a two-byte
// big-endian offset. The back-reference is read whenever input
// remains and the output is not yet complete, a zero high nibble
// included (a 3-byte match). This
// is not deflate, LZ4, or any other standard wire format — no
// ecosystem decompression library decodes it, so the loop is
// hand-written against the published byte-opcode layout rather than
// delegating to klauspost/compress or pierrec/lz4 (see DESIGN.md).
func decompressSection(src []byte, decompressedSize int) ([]byte, error) {
	out := make([]byte, 0, decompressedSize)
	i := 0
	for i < len(src) && len(out) < decompressedSize {
		opcode := src[i]
		i++
		litLen := int(opcode & 0x0f)
		switch {
		case litLen == 0 && i < len(src):
			// Extended literal run: length byte follows.
			extra := int(src[i])
			i++
			litLen = extra + 0x0f
		}
		if litLen > 0 {
			end := i + litLen
			if end > len(src) {
				return nil, fmt.Errorf("%w: literal run overruns compressed buffer", ErrMalformedRecord)
			}
			out = append(out, src[i:end]...)
			i = end
		}

		if len(out) >= decompressedSize || i >= len(src) {
			break
		}

		matchLen := int(opcode>>4) + 3
		if i+1 >= len(src) {
			break
		}
		offHi := src[i]
		offLo := src[i+1]
		i += 2
		offset := int(offHi)<<8 | int(offLo)
		if offset == 0 || offset > len(out) {
			return nil, fmt.Errorf("%w: back-reference offset out of range", ErrMalformedRecord)
		}
		start := len(out) - offset
		for j := 0; j < matchLen && len(out) < decompressedSize; j++ {
			out = append(out, out[start+j])
		}
	}
	if len(out) < decompressedSize {
		return nil, fmt.Errorf("%w: decompressed %d of %d bytes", ErrMalformedRecord, len(out), decompressedSize)
	}
	return out[:decompressedSize], nil
}
