// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

// Ellipse is the decoded attribute record for an ELLIPSE entity. Its
// start/end parameters remain radians end-to-end — unlike ARC, there
// is no façade-side degree conversion for ELLIPSE, since these are
// sweep parameters rather than presentation angles.
type Ellipse struct {
	entityBase
	Center     Point3D
	MajorAxis  Point3D
	Extrusion  Point3D
	Ratio      float64
	StartParam float64
	EndParam   float64
}

// TypeName implements Entity.
func (e Ellipse) TypeName() string { return "ELLIPSE" }

func decodeEllipse(f *File, hdr ObjectHeader, r *BitReader) (Entity, error) {
	center, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	major, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	extrusion, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	ratio, err := r.BD()
	if err != nil {
		return nil, err
	}
	startParam, err := r.BD()
	if err != nil {
		return nil, err
	}
	endParam, err := r.BD()
	if err != nil {
		return nil, err
	}

	return &Ellipse{
		entityBase: entityBase{handle: hdr.Handle},
		Center:     center,
		MajorAxis:  major,
		Extrusion:  extrusion,
		Ratio:      ratio,
		StartParam: startParam,
		EndParam:   endParam,
	}, nil
}
