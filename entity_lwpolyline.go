// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

import "fmt"

// LWPolyline flag bits gating the optional scalar fields that
// precede the vertex lists.
const (
	lwFlagClosed      = 0x01
	lwFlagConstWidth  = 0x04
	lwFlagElevation   = 0x08
	lwFlagThickness   = 0x10
	lwFlagExtrusion   = 0x20
)

// Vertex2D is one LWPOLYLINE vertex position. Per-vertex bulges and
// widths are held in LWPolyline's separate Bulges and Widths lists.
type Vertex2D struct {
	X, Y float64
}

// SegmentWidth is a per-segment (start, end) width pair.
type SegmentWidth struct {
	Start, End float64
}

// LWPolyline is the decoded attribute record for an LWPOLYLINE
// entity. Closedness is a flag, not a duplicated vertex:
// Points never contains a trailing repeat of Points[0].
type LWPolyline struct {
	entityBase
	Flags       uint16
	ConstWidth  float64
	HasConst    bool
	Elevation   float64
	Thickness   float64
	Extrusion   Point3D
	Points      []Vertex2D
	Bulges      []float64
	Widths      []SegmentWidth
}

// Closed reports whether bit 0 of Flags is set.
func (l LWPolyline) Closed() bool { return l.Flags&lwFlagClosed != 0 }

// TypeName implements Entity.
func (l LWPolyline) TypeName() string { return "LWPOLYLINE" }

// decodeLWPolyline decodes flags, then the optional scalar fields the
// flag bits gate, then the three count-prefixed vertex lists.
// Follows a fixed-record-table parser's shape: read a
// count (n-points/n-bulges/n-widths here), then loop that many times
// building a slice, the same "count then records" shape used for
// every table in the file.
func decodeLWPolyline(f *File, hdr ObjectHeader, r *BitReader) (Entity, error) {
	flags, err := r.BS()
	if err != nil {
		return nil, err
	}

	lw := LWPolyline{entityBase: entityBase{handle: hdr.Handle}, Flags: flags}

	if flags&lwFlagConstWidth != 0 {
		v, err := r.BD()
		if err != nil {
			return nil, err
		}
		lw.ConstWidth = v
		lw.HasConst = true
	}
	if flags&lwFlagElevation != 0 {
		v, err := r.BD()
		if err != nil {
			return nil, err
		}
		lw.Elevation = v
	}
	if flags&lwFlagThickness != 0 {
		v, err := r.BD()
		if err != nil {
			return nil, err
		}
		lw.Thickness = v
	}
	if flags&lwFlagExtrusion != 0 {
		v, err := r.ThreeBD()
		if err != nil {
			return nil, err
		}
		lw.Extrusion = v
	} else {
		lw.Extrusion = Point3D{Z: 1}
	}

	numPoints, err := r.BL()
	if err != nil {
		return nil, err
	}
	numBulges, err := r.BL()
	if err != nil {
		return nil, err
	}
	numWidths, err := r.BL()
	if err != nil {
		return nil, err
	}

	lw.Points = make([]Vertex2D, 0, numPoints)
	for i := uint32(0); i < numPoints; i++ {
		p, err := r.TwoRD()
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		lw.Points = append(lw.Points, Vertex2D{X: p.X, Y: p.Y})
	}

	if numBulges > 0 {
		lw.Bulges = make([]float64, 0, numBulges)
		for i := uint32(0); i < numBulges; i++ {
			b, err := r.BD()
			if err != nil {
				return nil, fmt.Errorf("bulge %d: %w", i, err)
			}
			lw.Bulges = append(lw.Bulges, b)
		}
	}

	if numWidths > 0 {
		lw.Widths = make([]SegmentWidth, 0, numWidths)
		for i := uint32(0); i < numWidths; i++ {
			start, err := r.BD()
			if err != nil {
				return nil, fmt.Errorf("width %d start: %w", i, err)
			}
			end, err := r.BD()
			if err != nil {
				return nil, fmt.Errorf("width %d end: %w", i, err)
			}
			lw.Widths = append(lw.Widths, SegmentWidth{Start: start, End: end})
		}
	}

	return &lw, nil
}
