// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

// Version identifies the release dialect a DWG file was written in.
// Every dependent structure (section locator layout, common-header
// bits, string encoding) carries an implicit association to this tag.
type Version string

// Supported release codes, AutoCAD R14 through R2018. These are
// exactly the seven prefixes the format's signature probe accepts;
// any other six-byte prefix is rejected with ErrUnsupportedVersion.
const (
	VersionR14   Version = "AC1014"
	VersionR2000 Version = "AC1015"
	VersionR2004 Version = "AC1018"
	VersionR2007 Version = "AC1021"
	VersionR2010 Version = "AC1024"
	VersionR2013 Version = "AC1027"
	VersionR2018 Version = "AC1032"
)

// versionSignatureLen is the number of leading ASCII bytes that carry
// the release code.
const versionSignatureLen = 6

// supportedVersions enumerates, in signature order, the only accepted
// prefixes. Keeping this as a map (rather than scattering version
// comparisons across the decoder) makes the probe a total function
// over its domain-probe invariant.
var supportedVersions = map[string]Version{
	string(VersionR14):   VersionR14,
	string(VersionR2000): VersionR2000,
	string(VersionR2004): VersionR2004,
	string(VersionR2007): VersionR2007,
	string(VersionR2010): VersionR2010,
	string(VersionR2013): VersionR2013,
	string(VersionR2018): VersionR2018,
}

// probeVersion classifies the file from its fixed six-byte ASCII
// prefix. It never partially matches: the whole prefix must equal one
// of the seven accepted codes.
func probeVersion(data []byte) (Version, error) {
	if len(data) < versionSignatureLen {
		return "", ErrUnsupportedVersion
	}
	v, ok := supportedVersions[string(data[:versionSignatureLen])]
	if !ok {
		return "", ErrUnsupportedVersion
	}
	return v, nil
}

// atLeast reports whether the receiver's release is the same as or
// newer than other, in format-dialect order. Used throughout the
// common-header and section-locator code to branch on "R2007+",
// "R2010+", "R2013+" style cutoffs instead of scattering per-version
// equality checks through every decoder (see commonheader.go).
func (v Version) atLeast(other Version) bool {
	order := map[Version]int{
		VersionR14:   0,
		VersionR2000: 1,
		VersionR2004: 2,
		VersionR2007: 3,
		VersionR2010: 4,
		VersionR2013: 5,
		VersionR2018: 6,
	}
	return order[v] >= order[other]
}

// preR2004 reports whether the section locator for this version uses
// the flat AC1014/AC1015-style table, as opposed to the R2004+
// two-level system/data section map.
func (v Version) preR2004() bool {
	return !v.atLeast(VersionR2004)
}
