// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

// Point is the decoded attribute record for a POINT entity.
type Point struct {
	entityBase
	Location    Point3D
	Thickness   float64
	Extrusion   Point3D
	XAxisAngle  float64
}

// TypeName implements Entity.
func (p Point) TypeName() string { return "POINT" }

func decodePoint(f *File, hdr ObjectHeader, r *BitReader) (Entity, error) {
	loc, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	thickness, err := r.BT()
	if err != nil {
		return nil, err
	}
	extrusion, err := r.BE()
	if err != nil {
		return nil, err
	}
	xAxisAngle, err := r.BD()
	if err != nil {
		return nil, err
	}

	return &Point{
		entityBase: entityBase{handle: hdr.Handle},
		Location:   loc,
		Thickness:  thickness,
		Extrusion:  extrusion,
		XAxisAngle: xAxisAngle,
	}, nil
}
