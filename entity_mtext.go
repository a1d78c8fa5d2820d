// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

// MText is the decoded attribute record for an MTEXT entity.
type MText struct {
	entityBase
	Insert           Point3D
	Extrusion        Point3D
	XAxis            Point3D
	RefRectWidth     float64
	RefRectHeight    float64
	Attachment       uint16
	DrawingDirection uint16
	ExtentsHeight    float64
	ExtentsWidth     float64
	Text             string
	LineSpacingStyle uint16
	LineSpacingFactor float64
	HasBackgroundFill bool
	BackgroundFillColor uint32
}

// TypeName implements Entity.
func (m MText) TypeName() string { return "MTEXT" }

func decodeMText(f *File, hdr ObjectHeader, r *BitReader) (Entity, error) {
	insert, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	extrusion, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	xAxis, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	refWidth, err := r.BD()
	if err != nil {
		return nil, err
	}

	m := MText{
		entityBase:   entityBase{handle: hdr.Handle},
		Insert:       insert,
		Extrusion:    extrusion,
		XAxis:        xAxis,
		RefRectWidth: refWidth,
	}

	if f.version.atLeast(VersionR2007) {
		h, err := r.BD()
		if err != nil {
			return nil, err
		}
		m.RefRectHeight = h
	}

	attachment, err := r.BS()
	if err != nil {
		return nil, err
	}
	m.Attachment = attachment

	drawingDir, err := r.BS()
	if err != nil {
		return nil, err
	}
	m.DrawingDirection = drawingDir

	extH, err := r.BD()
	if err != nil {
		return nil, err
	}
	m.ExtentsHeight = extH
	extW, err := r.BD()
	if err != nil {
		return nil, err
	}
	m.ExtentsWidth = extW

	text, err := r.T()
	if err != nil {
		return nil, err
	}
	m.Text = text

	if f.version.atLeast(VersionR2000) {
		style, err := r.BS()
		if err != nil {
			return nil, err
		}
		m.LineSpacingStyle = style
		factor, err := r.BD()
		if err != nil {
			return nil, err
		}
		m.LineSpacingFactor = factor
	}

	if f.version.atLeast(VersionR2004) {
		hasFill, err := r.B()
		if err != nil {
			return nil, err
		}
		m.HasBackgroundFill = hasFill
		if hasFill {
			color, err := r.BL()
			if err != nil {
				return nil, err
			}
			m.BackgroundFillColor = color
		}
	}

	return &m, nil
}
