// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

import (
	"fmt"
	"math"
)

// unitVectorOrDefault returns v normalized, falling back to the Z
// axis when v is the zero vector, so RAY/XLINE projection never
// divides by zero for a degenerate direction.
func unitVectorOrDefault(v Point3D) Point3D {
	lenSq := v.X*v.X + v.Y*v.Y + v.Z*v.Z
	if lenSq == 0 {
		return Point3D{Z: 1}
	}
	length := math.Sqrt(lenSq)
	return Point3D{X: v.X / length, Y: v.Y / length, Z: v.Z / length}
}

func addPoints(a, b Point3D) Point3D {
	return Point3D{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

func subPoints(a, b Point3D) Point3D {
	return Point3D{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

// ToPoints projects entity onto a flat list of 3D points, per the
// fixed to_points table below. Types without a defined projection return
// ErrNoPointProjection so a caller can distinguish "no geometry here"
// from a decode failure.
func ToPoints(entity Entity) ([]Point3D, error) {
	switch e := entity.(type) {
	case *Line:
		return []Point3D{e.Start, e.End}, nil
	case *Point:
		return []Point3D{e.Location}, nil
	case *LWPolyline:
		pts := make([]Point3D, 0, len(e.Points))
		for _, v := range e.Points {
			pts = append(pts, Point3D{X: v.X, Y: v.Y, Z: e.Elevation})
		}
		return pts, nil
	case *Text:
		return []Point3D{{X: e.Insert.X, Y: e.Insert.Y, Z: e.Elevation}}, nil
	case *MText:
		return []Point3D{e.Insert}, nil
	case *Dimension:
		if e.HasDefPoint2 && e.HasDefPoint3 {
			return []Point3D{e.DefPoint2, e.DefPoint3}, nil
		}
		return []Point3D{e.TextMidpoint}, nil
	case *Ray:
		dir := unitVectorOrDefault(e.Vector)
		return []Point3D{e.Point, addPoints(e.Point, dir)}, nil
	case *XLine:
		dir := unitVectorOrDefault(e.Vector)
		return []Point3D{subPoints(e.Point, dir), addPoints(e.Point, dir)}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNoPointProjection, entity.TypeName())
	}
}
