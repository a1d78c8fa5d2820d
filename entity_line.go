// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

// Line is the decoded attribute record for a LINE entity: two 3D
// points. Field layout mirrors the LINE record exactly.
type Line struct {
	entityBase
	Start     Point3D
	End       Point3D
	Thickness float64
	Extrusion Point3D
}

// TypeName implements Entity.
func (l Line) TypeName() string { return "LINE" }

// decodeLine decodes a LINE's type-specific payload: a z-present
// flag, a full start point, an end point whose Z defaults to the
// start's Z unless the flag says otherwise, then thickness and
// extrusion. A small, linear decoder: read fixed fields in declared
// order, no branching beyond the declared schema).
func decodeLine(f *File, hdr ObjectHeader, r *BitReader) (Entity, error) {
	zPresent, err := r.B()
	if err != nil {
		return nil, err
	}

	start, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}

	endXY, err := r.TwoBD()
	if err != nil {
		return nil, err
	}
	end := Point3D{X: endXY.X, Y: endXY.Y, Z: start.Z}
	if zPresent {
		z, err := r.BD()
		if err != nil {
			return nil, err
		}
		end.Z = z
	}

	thickness, err := r.BT()
	if err != nil {
		return nil, err
	}
	extrusion, err := r.BE()
	if err != nil {
		return nil, err
	}

	return &Line{
		entityBase: entityBase{handle: hdr.Handle},
		Start:      start,
		End:        end,
		Thickness:  thickness,
		Extrusion:  extrusion,
	}, nil
}
