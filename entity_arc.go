// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

// Arc is the decoded attribute record for an ARC entity: center,
// radius, and start/end angle in radians, the convention pinned
// at the decoder boundary.
type Arc struct {
	entityBase
	Center     Point3D
	Radius     float64
	Thickness  float64
	Extrusion  Point3D
	StartAngle float64
	EndAngle   float64
}

// TypeName implements Entity.
func (a Arc) TypeName() string { return "ARC" }

func decodeArc(f *File, hdr ObjectHeader, r *BitReader) (Entity, error) {
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
	startAngle, err := r.BD()
	if err != nil {
		return nil, err
	}
	endAngle, err := r.BD()
	if err != nil {
		return nil, err
	}

	return &Arc{
		entityBase: entityBase{handle: hdr.Handle},
		Center:     center,
		Radius:     radius,
		Thickness:  thickness,
		Extrusion:  extrusion,
		StartAngle: startAngle,
		EndAngle:   endAngle,
	}, nil
}
