// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

// commonEntityData holds the fields every entity's common header
// carries, decoded ahead of its type-specific payload.
type commonEntityData struct {
	Handle      uint64
	EntMode     uint8
	HasLinks    bool
	LayerRef    HandleRef
	HasLayer    bool
	ColorRef    ColorRef
}

// The handful of cross-version bits that gate on release are the
// only conditionals that span many decoders; they are kept in
// exactly one place — this function — rather than scattered
// through every typed decoder. Version-conditional branching belongs at
// one dispatch point, not scattered across every caller.
func skipCrossVersionBits(r *BitReader, v Version) error {
	if v.atLeast(VersionR2007) {
		// Material flag.
		if _, err := r.B(); err != nil {
			return err
		}
		// Shadow flags: cast/receive shadows, 2 bits.
		if _, err := r.readRaw(2); err != nil {
			return err
		}
	}
	if v.atLeast(VersionR2010) {
		// Visual style handle presence, 3 bits.
		if _, err := r.readRaw(3); err != nil {
			return err
		}
	}
	if v.atLeast(VersionR2013) {
		// has-ds-binary-data bit.
		if _, err := r.B(); err != nil {
			return err
		}
	}
	return nil
}

// parseCommonEntityData decodes the version-aware header common to
// every entity record, landing the cursor at the type-specific
// payload start. Field order and presence follow the
// object-header-index preamble.
func parseCommonEntityData(r *BitReader, v Version, handle uint64) (commonEntityData, error) {
	c := commonEntityData{Handle: handle}

	entMode, err := r.BB()
	if err != nil {
		return c, err
	}
	c.EntMode = entMode

	numReactors, err := r.BL()
	if err != nil {
		return c, err
	}
	for i := uint32(0); i < numReactors; i++ {
		if _, err := r.H(); err != nil {
			return c, err
		}
	}

	if v.atLeast(VersionR2004) {
		if _, err := r.B(); err != nil { // xdictionary-missing flag
			return c, err
		}
	}
	if _, err := r.B(); err != nil { // no-links flag (pre-R2004 layouts only meaningfully read; harmless elsewhere)
		return c, err
	}

	colorRef, err := r.CMC()
	if err != nil {
		return c, err
	}
	c.ColorRef = colorRef

	if _, err := r.BD(); err != nil { // linetype scale
		return c, err
	}

	if err := skipCrossVersionBits(r, v); err != nil {
		return c, err
	}

	if _, err := r.BS(); err != nil { // invisibility flag
		return c, err
	}
	if _, err := r.RC(); err != nil { // lineweight
		return c, err
	}

	return c, nil
}
