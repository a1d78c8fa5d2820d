// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

import "testing"

// buildObjectMapPage assembles one AcDb:Handles page: a big-endian
// uint16 size header, the MC-encoded (handle-delta, offset-delta)
// body, and a trailing CRC-16 seeded at 0xC0C1 over header+body.
func buildObjectMapPage(body []byte) []byte {
	pageSize := 2 + len(body) + 2
	page := make([]byte, 0, pageSize)
	page = append(page, byte(pageSize>>8), byte(pageSize))
	page = append(page, body...)
	crc := crc16(page, 0xC0C1)
	page = append(page, byte(crc>>8), byte(crc))
	return page
}

func TestParseObjectMapSinglePage(t *testing.T) {
	// Two entries: handle 5 at offset 100, then handle 8 (delta +3) at
	// offset 150 (delta +50). MC's single-byte form only carries
	// payloads up to 0x3f (bit 6 is the sign bit), so 100 needs the
	// two-byte continuation form: 0xE4 (continuation, low 7 bits of
	// 100) then 0x00 (final byte, sign clear, remaining bits zero).
	body := []byte{5, 0xE4, 0x00, 3, 50}
	page := buildObjectMapPage(body)
	terminator := []byte{0x00, 0x00}

	f := newFile(&Options{})
	f.raw = append(page, terminator...)
	f.sections = []SectionLocator{{Name: SectionHandles, Offset: 0, Size: uint64(len(f.raw))}}

	if err := f.ParseObjectMap(); err != nil {
		t.Fatalf("ParseObjectMap() error: %v", err)
	}

	want := map[uint64]uint64{5: 100, 8: 150}
	if len(f.objectMap) != len(want) {
		t.Fatalf("objectMap has %d entries, want %d", len(f.objectMap), len(want))
	}
	for h, off := range want {
		if f.objectMap[h] != off {
			t.Fatalf("objectMap[%d] = %d, want %d", h, f.objectMap[h], off)
		}
	}
	if f.duplicateHandles != 0 {
		t.Fatalf("duplicateHandles = %d, want 0", f.duplicateHandles)
	}
}

func TestParseObjectMapBadCRC(t *testing.T) {
	body := []byte{5, 0xE4, 0x00}
	page := buildObjectMapPage(body)
	page[len(page)-1] ^= 0xFF // corrupt the stored CRC

	f := newFile(&Options{})
	f.raw = append(page, 0x00, 0x00)
	f.sections = []SectionLocator{{Name: SectionHandles, Offset: 0, Size: uint64(len(f.raw))}}

	if err := f.ParseObjectMap(); err == nil {
		t.Fatal("ParseObjectMap() with a corrupted CRC should fail")
	}
}
