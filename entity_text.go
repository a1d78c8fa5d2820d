// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

// Text data-flag bits: each set bit means the corresponding field is
// OMITTED from the stream and takes the stated default, a storage
// optimization the format applies to its most commonly-default
// fields.
const (
	textNoElevation   = 0x01 // elevation omitted, defaults to 0
	textNoAlign       = 0x02 // alignment point omitted, defaults to insert point
	textNoExtrusion   = 0x04 // extrusion omitted, defaults to (0,0,1)
	textNoThickness   = 0x08 // thickness omitted, defaults to 0
	textNoOblique     = 0x10 // oblique angle omitted, defaults to 0
	textNoRotation    = 0x20 // rotation omitted, defaults to 0
	textNoWidthFactor = 0x40 // width factor omitted, defaults to 1
	textNoGeneration  = 0x80 // generation flags omitted, defaults to 0
)

// Text is the decoded attribute record for a TEXT entity.
type Text struct {
	entityBase
	Elevation    float64
	Insert       Point2D
	Align        Point2D
	HasAlign     bool
	Extrusion    Point3D
	Thickness    float64
	ObliqueAngle float64
	Rotation     float64
	Height       float64
	WidthFactor  float64
	String       string
	Generation   uint16
	HAlign       uint16
	VAlign       uint16
	StyleHandle  HandleRef
}

// TypeName implements Entity.
func (t Text) TypeName() string { return "TEXT" }

func decodeText(f *File, hdr ObjectHeader, r *BitReader) (Entity, error) {
	flags, err := r.RC()
	if err != nil {
		return nil, err
	}

	t := Text{
		entityBase:  entityBase{handle: hdr.Handle},
		Extrusion:   Point3D{Z: 1},
		WidthFactor: 1,
	}

	if flags&textNoElevation == 0 {
		v, err := r.BD()
		if err != nil {
			return nil, err
		}
		t.Elevation = v
	}

	insert, err := r.TwoRD()
	if err != nil {
		return nil, err
	}
	t.Insert = insert

	if flags&textNoAlign == 0 {
		align, err := r.TwoRD()
		if err != nil {
			return nil, err
		}
		t.Align = align
		t.HasAlign = true
	} else {
		t.Align = insert
	}

	if flags&textNoExtrusion == 0 {
		v, err := r.ThreeBD()
		if err != nil {
			return nil, err
		}
		t.Extrusion = v
	}
	if flags&textNoThickness == 0 {
		v, err := r.BD()
		if err != nil {
			return nil, err
		}
		t.Thickness = v
	}
	if flags&textNoOblique == 0 {
		v, err := r.BD()
		if err != nil {
			return nil, err
		}
		t.ObliqueAngle = v
	}
	if flags&textNoRotation == 0 {
		v, err := r.BD()
		if err != nil {
			return nil, err
		}
		t.Rotation = v
	}

	height, err := r.BD()
	if err != nil {
		return nil, err
	}
	t.Height = height

	if flags&textNoWidthFactor == 0 {
		v, err := r.BD()
		if err != nil {
			return nil, err
		}
		t.WidthFactor = v
	}

	str, err := r.T()
	if err != nil {
		return nil, err
	}
	t.String = str

	if flags&textNoGeneration == 0 {
		v, err := r.BS()
		if err != nil {
			return nil, err
		}
		t.Generation = v
	}

	hAlign, err := r.BS()
	if err != nil {
		return nil, err
	}
	t.HAlign = hAlign
	vAlign, err := r.BS()
	if err != nil {
		return nil, err
	}
	t.VAlign = vAlign

	styleHandle, err := r.H()
	if err != nil {
		return nil, err
	}
	t.StyleHandle = styleHandle

	return &t, nil
}
