// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

// StyleRecord is the resolved (color-index, true-color, layer-handle)
// triple defined for both entities and LAYER objects.
type StyleRecord struct {
	ColorIndex    uint8
	TrueColor     uint32
	HasTrueColor  bool
	LayerHandle   uint64
}

// layerRecord is the subset of a decoded LAYER object the style
// resolver needs: its own color.
type layerRecord struct {
	handle    uint64
	colorIdx  uint8
	trueColor uint32
	hasTrue   bool
}

// buildLayerIndex eagerly decodes every object-header entry whose
// resolved type is LAYER, populating f.layerIndex keyed by layer
// handle. Mirrors a getSectionByName-style "scan the
// known table once, cache by key" pattern, except here
// the cache is populated from a full decode pass rather than a
// linear section scan, since layers aren't a contiguous table the
// way PE sections are.
func (f *File) buildLayerIndex() {
	for _, handle := range f.objectOrder {
		hdr := f.objectHeaders[handle]
		if !hdr.Valid || hdr.TypeName != "LAYER" {
			continue
		}
		lr, err := f.decodeLayer(hdr)
		if err != nil {
			f.logger.Debugf("layer handle %d failed to decode: %v", handle, err)
			continue
		}
		f.layerIndex[handle] = StyleRecord{
			ColorIndex:   lr.colorIdx,
			TrueColor:    lr.trueColor,
			HasTrueColor: lr.hasTrue,
		}
	}
}

// decodeLayer reads just enough of a LAYER object's payload to
// recover its stored color; DWG LAYER objects carry their name,
// flags, and a CMC color reference immediately after the common
// non-entity object header.
func (f *File) decodeLayer(hdr ObjectHeader) (layerRecord, error) {
	objData, err := f.sectionBytes(SectionObjects)
	if err != nil {
		return layerRecord{}, err
	}
	r := NewBitReader(objData[hdr.Offset:], f.version)
	if _, err := r.MS(); err != nil { // size
		return layerRecord{}, err
	}
	if _, err := r.RS(); err != nil { // type-code
		return layerRecord{}, err
	}
	if err := skipCrossVersionBits(r, f.version); err != nil {
		return layerRecord{}, err
	}
	if _, err := r.H(); err != nil { // handle (self) stream entry, absolute form
		return layerRecord{}, err
	}
	numReactors, err := r.BL()
	if err != nil {
		return layerRecord{}, err
	}
	for i := uint32(0); i < numReactors; i++ {
		if _, err := r.H(); err != nil {
			return layerRecord{}, err
		}
	}
	if f.version.atLeast(VersionR2004) {
		if _, err := r.B(); err != nil {
			return layerRecord{}, err
		}
	}
	if _, err := r.T(); err != nil { // layer name
		return layerRecord{}, err
	}
	if _, err := r.B(); err != nil { // 64-flag
		return layerRecord{}, err
	}
	if _, err := r.BS(); err != nil { // xref index + flags
		return layerRecord{}, err
	}
	if _, err := r.B(); err != nil { // xdep flag
		return layerRecord{}, err
	}

	colorRef, err := r.CMC()
	if err != nil {
		return layerRecord{}, err
	}
	return layerRecord{
		handle:    hdr.Handle,
		colorIdx:  uint8(colorRef.Index & 0xff),
		trueColor: colorRef.TrueColor,
		hasTrue:   colorRef.HasTrue,
	}, nil
}

// resolveStyle: given an entity's common
// header color and its handle-stream layer reference, yields
// (color-index, true-color, layer-handle). A missing layer yields
// layer-handle 0 and the entity's own CMC color.
func (f *File) resolveStyle(common commonEntityData, refs HandleRefStream) StyleRecord {
	style := StyleRecord{
		ColorIndex:   uint8(common.ColorRef.Index & 0xff),
		TrueColor:    common.ColorRef.TrueColor,
		HasTrueColor: common.ColorRef.HasTrue,
	}
	if !refs.HasLayer {
		return style
	}
	layerHandle := refs.Layer.Resolve(common.Handle)
	style.LayerHandle = layerHandle
	if layer, ok := f.layerIndex[layerHandle]; ok && !style.HasTrueColor {
		if !common.ColorRef.HasTrue && common.ColorRef.Index == 0 {
			style.ColorIndex = layer.ColorIndex
			style.TrueColor = layer.TrueColor
			style.HasTrueColor = layer.HasTrueColor
		}
	}
	return style
}
