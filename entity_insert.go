// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

// Insert is the decoded attribute record for an INSERT entity: a
// block reference placed at a point with scale, rotation, and
// extrusion. This module does not evaluate the referenced block's
// geometry — BlockHandle is left for a caller
// to resolve through File.Decode if it wants the block's own
// contents.
type Insert struct {
	entityBase
	Insert      Point3D
	ScaleX      float64
	ScaleY      float64
	ScaleZ      float64
	HasScale    bool
	Rotation    float64
	Extrusion   Point3D
	ColumnCount uint32
	RowCount    uint32
	ColSpacing  float64
	RowSpacing  float64
	BlockHandle HandleRef
}

// TypeName implements Entity.
func (i Insert) TypeName() string { return "INSERT" }

// decodeInsert decodes INSERT's type-specific payload: insertion
// point, a scale-present flag gating the 3-axis scale (uniform scale
// is the common case, stored as a single BD when the flag says so),
// rotation, extrusion, and the MINSERT-style array parameters.
func decodeInsert(f *File, hdr ObjectHeader, r *BitReader) (Entity, error) {
	insert, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}

	ins := Insert{
		entityBase: entityBase{handle: hdr.Handle},
		Insert:     insert,
		ScaleX:     1, ScaleY: 1, ScaleZ: 1,
	}

	scaleFlag, err := r.BB()
	if err != nil {
		return nil, err
	}
	switch scaleFlag {
	case 0: // non-uniform scale, three explicit values follow
		sx, err := r.BD()
		if err != nil {
			return nil, err
		}
		sy, err := r.BD()
		if err != nil {
			return nil, err
		}
		sz, err := r.BD()
		if err != nil {
			return nil, err
		}
		ins.ScaleX, ins.ScaleY, ins.ScaleZ = sx, sy, sz
		ins.HasScale = true
	case 1: // uniform scale, one value for all three axes
		s, err := r.BD()
		if err != nil {
			return nil, err
		}
		ins.ScaleX, ins.ScaleY, ins.ScaleZ = s, s, s
		ins.HasScale = true
	case 2: // unit scale (1,1,1), no value present
	default: // X stays 1; explicit Y and Z values follow
		sy, err := r.BD()
		if err != nil {
			return nil, err
		}
		sz, err := r.BD()
		if err != nil {
			return nil, err
		}
		ins.ScaleY, ins.ScaleZ = sy, sz
		ins.HasScale = true
	}

	rotation, err := r.BD()
	if err != nil {
		return nil, err
	}
	ins.Rotation = rotation

	extrusion, err := r.BE()
	if err != nil {
		return nil, err
	}
	ins.Extrusion = extrusion

	hasAttribs, err := r.B()
	if err != nil {
		return nil, err
	}
	_ = hasAttribs

	isMInsert, err := r.B()
	if err != nil {
		return nil, err
	}
	if isMInsert {
		cols, err := r.BS()
		if err != nil {
			return nil, err
		}
		rows, err := r.BS()
		if err != nil {
			return nil, err
		}
		colSpacing, err := r.BD()
		if err != nil {
			return nil, err
		}
		rowSpacing, err := r.BD()
		if err != nil {
			return nil, err
		}
		ins.ColumnCount = uint32(cols)
		ins.RowCount = uint32(rows)
		ins.ColSpacing = colSpacing
		ins.RowSpacing = rowSpacing
	} else {
		ins.ColumnCount, ins.RowCount = 1, 1
	}

	blockHandle, err := r.H()
	if err != nil {
		return nil, err
	}
	ins.BlockHandle = blockHandle

	return &ins, nil
}
