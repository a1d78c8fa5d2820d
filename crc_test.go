// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

import "testing"

func TestCRC16KnownVector(t *testing.T) {
	// CRC-16/ARC of the canonical check string "123456789" is 0xBB3D;
	// this generator/update loop is that same reflected 0xA001
	// polynomial seeded at zero.
	got := crc16([]byte("123456789"), 0)
	if got != 0xBB3D {
		t.Fatalf("crc16(\"123456789\", 0) = %#x, want 0xbb3d", got)
	}
}

func TestCRC16SeedIsIdentityOverEmptyInput(t *testing.T) {
	if got := crc16(nil, 0xC0C1); got != 0xC0C1 {
		t.Fatalf("crc16(nil, seed) = %#x, want seed unchanged", got)
	}
}

func TestVerifyCRC16(t *testing.T) {
	data := []byte("handle table page")
	want := crc16(data, 0xC0C1)

	if err := verifyCRC16(data, 0xC0C1, want); err != nil {
		t.Fatalf("verifyCRC16 with matching CRC returned error: %v", err)
	}
	if err := verifyCRC16(data, 0xC0C1, want^0xFFFF); err == nil {
		t.Fatal("verifyCRC16 with mismatched CRC should fail")
	}
}
