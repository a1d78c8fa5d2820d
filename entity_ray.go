// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

// Ray is the decoded attribute record for a RAY entity: an
// unbounded line starting at Point and extending in Vector's
// direction.
type Ray struct {
	entityBase
	Point  Point3D
	Vector Point3D
}

// TypeName implements Entity.
func (r Ray) TypeName() string { return "RAY" }

func decodeRay(f *File, hdr ObjectHeader, r *BitReader) (Entity, error) {
	point, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	vector, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	return &Ray{entityBase: entityBase{handle: hdr.Handle}, Point: point, Vector: vector}, nil
}

// XLine is the decoded attribute record for an XLINE entity: an
// unbounded line passing through Point in both directions of
// Vector.
type XLine struct {
	entityBase
	Point  Point3D
	Vector Point3D
}

// TypeName implements Entity.
func (x XLine) TypeName() string { return "XLINE" }

func decodeXLine(f *File, hdr ObjectHeader, r *BitReader) (Entity, error) {
	point, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	vector, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	return &XLine{entityBase: entityBase{handle: hdr.Handle}, Point: point, Vector: vector}, nil
}
