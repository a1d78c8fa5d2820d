// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

// DimensionCommon holds the fields shared by every DIMENSION subtype,
// decoded once before dispatching to the subtype-specific tail, per
// the DIMENSION record's common prefix. Subtype selection itself happens one
// layer up, in entities.go's dimensionDecoders table, keyed by the
// resolved type-name (DIMENSION_LINEAR, DIMENSION_ALIGNED, ...) — the
// format assigns each dimension subtype its own fixed type-code
//, so no additional in-stream discriminator byte needs
// re-reading here.
type DimensionCommon struct {
	ClassVersion      uint8
	Extrusion         Point3D
	TextMidpoint      Point3D
	Insert            Point3D
	Flags             uint8
	UserText          string
	TextRotation      float64
	HorizDir          float64
	InsScale          Point3D
	InsRotation       float64
	Attachment        uint16
	LineSpacingStyle  uint16
	LineSpacingFactor float64
	ActualMeasurement float64
}

// Dimension is the decoded attribute record for any DIMENSION
// subtype. Subtype-specific fields beyond the shared prefix are
// carried in the fields below; a subtype that doesn't populate a
// given field leaves it at its zero value (HasXxx flags indicate
// which are meaningful, the familiar pattern of explicit
// Has*/Is* booleans alongside optional fields rather than a separate
// struct per variant.
type Dimension struct {
	entityBase
	DimensionCommon
	Subtype      string
	DefPoint2    Point3D
	HasDefPoint2 bool
	DefPoint3    Point3D
	HasDefPoint3 bool
	DefPoint4    Point3D
	HasDefPoint4 bool
	LeaderEndpoint Point3D
	Radius       float64
	HasRadius    bool
}

// TypeName implements Entity.
func (d Dimension) TypeName() string { return d.Subtype }

// parseDimensionCommon decodes the prefix shared by every DIMENSION
// subtype.
func parseDimensionCommon(f *File, hdr ObjectHeader, r *BitReader) (DimensionCommon, error) {
	var c DimensionCommon

	if f.version.atLeast(VersionR2010) {
		v, err := r.RC()
		if err != nil {
			return c, err
		}
		c.ClassVersion = v
	}

	extrusion, err := r.ThreeBD()
	if err != nil {
		return c, err
	}
	c.Extrusion = extrusion

	midXY, err := r.TwoRD()
	if err != nil {
		return c, err
	}
	midZ, err := r.BD()
	if err != nil {
		return c, err
	}
	c.TextMidpoint = Point3D{X: midXY.X, Y: midXY.Y, Z: midZ}

	insert, err := r.ThreeBD()
	if err != nil {
		return c, err
	}
	c.Insert = insert

	flags, err := r.RC()
	if err != nil {
		return c, err
	}
	c.Flags = flags

	userText, err := r.T()
	if err != nil {
		return c, err
	}
	c.UserText = userText

	textRotation, err := r.BD()
	if err != nil {
		return c, err
	}
	c.TextRotation = textRotation

	horizDir, err := r.BD()
	if err != nil {
		return c, err
	}
	c.HorizDir = horizDir

	insScale, err := r.ThreeBD()
	if err != nil {
		return c, err
	}
	c.InsScale = insScale

	insRotation, err := r.BD()
	if err != nil {
		return c, err
	}
	c.InsRotation = insRotation

	if f.version.atLeast(VersionR2000) {
		attachment, err := r.BS()
		if err != nil {
			return c, err
		}
		c.Attachment = attachment
		lsStyle, err := r.BS()
		if err != nil {
			return c, err
		}
		c.LineSpacingStyle = lsStyle
		lsFactor, err := r.BD()
		if err != nil {
			return c, err
		}
		c.LineSpacingFactor = lsFactor
		measurement, err := r.BD()
		if err != nil {
			return c, err
		}
		c.ActualMeasurement = measurement
	}

	return c, nil
}

func decodeDimensionLinear(f *File, hdr ObjectHeader, r *BitReader, common DimensionCommon) (Entity, error) {
	defPoint3, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	defPoint2, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	defPoint4, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	if _, err := r.BD(); err != nil { // obliquing angle
		return nil, err
	}
	if _, err := r.BD(); err != nil { // dimension rotation
		return nil, err
	}
	return &Dimension{
		entityBase:      entityBase{handle: hdr.Handle},
		DimensionCommon: common,
		Subtype:         hdr.TypeName,
		DefPoint2:       defPoint2,
		HasDefPoint2:    true,
		DefPoint3:       defPoint3,
		HasDefPoint3:    true,
		DefPoint4:       defPoint4,
		HasDefPoint4:    true,
	}, nil
}

func decodeDimensionAligned(f *File, hdr ObjectHeader, r *BitReader, common DimensionCommon) (Entity, error) {
	defPoint3, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	defPoint2, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	defPoint4, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	if _, err := r.BD(); err != nil { // extension line angle
		return nil, err
	}
	return &Dimension{
		entityBase:      entityBase{handle: hdr.Handle},
		DimensionCommon: common,
		Subtype:         hdr.TypeName,
		DefPoint2:       defPoint2,
		HasDefPoint2:    true,
		DefPoint3:       defPoint3,
		HasDefPoint3:    true,
		DefPoint4:       defPoint4,
		HasDefPoint4:    true,
	}, nil
}

func decodeDimensionRadius(f *File, hdr ObjectHeader, r *BitReader, common DimensionCommon) (Entity, error) {
	defPoint2, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	leader, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	radius, err := r.BD()
	if err != nil {
		return nil, err
	}
	return &Dimension{
		entityBase:      entityBase{handle: hdr.Handle},
		DimensionCommon: common,
		Subtype:         hdr.TypeName,
		DefPoint2:       defPoint2,
		HasDefPoint2:    true,
		LeaderEndpoint:  leader,
		Radius:          radius,
		HasRadius:       true,
	}, nil
}

func decodeDimensionDiameter(f *File, hdr ObjectHeader, r *BitReader, common DimensionCommon) (Entity, error) {
	defPoint2, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	leader, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	radius, err := r.BD()
	if err != nil {
		return nil, err
	}
	return &Dimension{
		entityBase:      entityBase{handle: hdr.Handle},
		DimensionCommon: common,
		Subtype:         hdr.TypeName,
		DefPoint2:       defPoint2,
		HasDefPoint2:    true,
		LeaderEndpoint:  leader,
		Radius:          radius,
		HasRadius:       true,
	}, nil
}

func decodeDimensionAngular(f *File, hdr ObjectHeader, r *BitReader, common DimensionCommon) (Entity, error) {
	defPoint3, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	defPoint4, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	defPoint2, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	centerPoint, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	return &Dimension{
		entityBase:      entityBase{handle: hdr.Handle},
		DimensionCommon: common,
		Subtype:         hdr.TypeName,
		DefPoint2:       defPoint2,
		HasDefPoint2:    true,
		DefPoint3:       defPoint3,
		HasDefPoint3:    true,
		DefPoint4:       centerPoint,
		HasDefPoint4:    true,
		LeaderEndpoint:  defPoint4,
	}, nil
}

func decodeDimensionOrdinate(f *File, hdr ObjectHeader, r *BitReader, common DimensionCommon) (Entity, error) {
	defPoint2, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	defPoint3, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	defPoint4, err := r.ThreeBD()
	if err != nil {
		return nil, err
	}
	return &Dimension{
		entityBase:      entityBase{handle: hdr.Handle},
		DimensionCommon: common,
		Subtype:         hdr.TypeName,
		DefPoint2:       defPoint2,
		HasDefPoint2:    true,
		DefPoint3:       defPoint3,
		HasDefPoint3:    true,
		DefPoint4:       defPoint4,
		HasDefPoint4:    true,
	}, nil
}
