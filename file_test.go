// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

import "testing"

func TestNewBytesRejectsUnknownVersion(t *testing.T) {
	_, err := NewBytes([]byte("GARBAGE_NOT_A_DWG_FILE_AT_ALL"), &Options{})
	if err == nil {
		t.Fatal("NewBytes() on a non-DWG buffer should fail at the version probe")
	}
}

func TestNewBytesRejectsTruncatedInput(t *testing.T) {
	_, err := NewBytes([]byte("AC1015"), &Options{})
	if err == nil {
		t.Fatal("NewBytes() on a signature-only buffer should fail once section parsing runs")
	}
}

func TestNewFileDefaultsLimit(t *testing.T) {
	f := newFile(nil)
	if f.opts.Limit != DefaultQueryLimit {
		t.Fatalf("newFile(nil).opts.Limit = %d, want %d", f.opts.Limit, DefaultQueryLimit)
	}
	if f.objectMap == nil || f.objectHeaders == nil || f.classes == nil {
		t.Fatal("newFile(nil) should initialize its index maps")
	}
}

// FuzzParse exercises the full decode pipeline against arbitrary byte
// sequences, the native testing.F replacement for a
// go-fuzz-style Fuzz(data []byte) int entry point. Every tier-1
// failure path should return an error, never panic.
func FuzzParse(f *testing.F) {
	f.Add([]byte("AC1015"))
	f.Add([]byte("AC1018"))
	f.Add([]byte{})
	f.Add([]byte("AC1015\x00\x00\x00\x00\x00\x00\x00\x00"))

	f.Fuzz(func(t *testing.T, data []byte) {
		file, err := NewBytes(data, &Options{Fast: true})
		if err != nil {
			return
		}
		defer file.Close()
		_ = file.ObjectHeaders()
		_ = file.Stats()
	})
}
