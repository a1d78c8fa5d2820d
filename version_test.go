// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

import "testing"

func TestProbeVersion(t *testing.T) {
	tests := []struct {
		name    string
		sig     string
		want    Version
		wantErr bool
	}{
		{"R2000", "AC1015", VersionR2000, false},
		{"R2004", "AC1018", VersionR2004, false},
		{"R2018", "AC1032", VersionR2018, false},
		{"unknown", "AC9999", "", true},
		{"too short", "AC10", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := probeVersion([]byte(tt.sig))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("probeVersion(%q) = %v, want error", tt.sig, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("probeVersion(%q) error: %v", tt.sig, err)
			}
			if got != tt.want {
				t.Fatalf("probeVersion(%q) = %v, want %v", tt.sig, got, tt.want)
			}
		})
	}
}

func TestVersionAtLeast(t *testing.T) {
	if !VersionR2010.atLeast(VersionR2000) {
		t.Fatal("R2010 should be at least R2000")
	}
	if VersionR14.atLeast(VersionR2000) {
		t.Fatal("R14 should not be at least R2000")
	}
	if !VersionR2000.atLeast(VersionR2000) {
		t.Fatal("a version should be at least itself")
	}
}

func TestVersionPreR2004(t *testing.T) {
	if !VersionR2000.preR2004() {
		t.Fatal("R2000 should be preR2004")
	}
	if VersionR2004.preR2004() {
		t.Fatal("R2004 itself should not be preR2004")
	}
	if VersionR2018.preR2004() {
		t.Fatal("R2018 should not be preR2004")
	}
}
