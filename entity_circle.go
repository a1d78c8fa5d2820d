// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

// Circle is the decoded attribute record for a CIRCLE entity.
type Circle struct {
	entityBase
	Center    Point3D
	Radius    float64
	Thickness float64
	Extrusion Point3D
}

// TypeName implements Entity.
func (c Circle) TypeName() string { return "CIRCLE" }

func decodeCircle(f *File, hdr ObjectHeader, r *BitReader) (Entity, error) {
	center, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	radius, err := r.BD()
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

	return &Circle{
		entityBase: entityBase{handle: hdr.Handle},
		Center:     center,
		Radius:     radius,
		Thickness:  thickness,
		Extrusion:  extrusion,
	}, nil
}
