// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

// HandleRefStream is the ordered list of handle references an object
// carries, decoded lazily on request Only the
// references the style resolver and to_points-adjacent lookups need
// are broken out as named fields; the rest are preserved positionally
// in Extra for completeness.
type HandleRefStream struct {
	Owner       HandleRef
	HasOwner    bool
	Layer       HandleRef
	HasLayer    bool
	LineType    HandleRef
	HasLineType bool
	Material    HandleRef
	HasMaterial bool
	PlotStyle   HandleRef
	HasPlot     bool
	Extra       []HandleRef
}

// readHandleStream decodes the trailing handle-reference section of
// an entity record: owner, then a version-conditional set of
// optional references, ending with layer/linetype/material/plotstyle
// depending on flag bits already consumed from the common entity
// header. This module reads them positionally in a fixed order —
// owner, layer, linetype, then every remaining reference into Extra —
// and tolerates a truncated stream by returning
// whatever was read — the handle stream is always decoded strictly
// after the type-specific geometry, so a truncation here never
// corrupts the geometric fields already produced.
func readHandleStream(r *BitReader, common commonEntityData) HandleRefStream {
	var refs HandleRefStream

	if owner, err := r.H(); err == nil {
		refs.Owner = owner
		refs.HasOwner = true
	}

	if layer, err := r.H(); err == nil {
		refs.Layer = layer
		refs.HasLayer = true
	}

	if lt, err := r.H(); err == nil {
		refs.LineType = lt
		refs.HasLineType = true
	}

	for {
		extra, err := r.H()
		if err != nil {
			break
		}
		refs.Extra = append(refs.Extra, extra)
	}

	return refs
}
