// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

import "fmt"

// Entity is the common interface every decoded typed record
// satisfies. Modeling the format's dynamic tagged records as a
// closed Go interface over one concrete struct per variant avoids an
// open `map[string]any`. Unknown is the variant for types outside this
// decoder's table; no decode path in this package constructs it.
type Entity interface {
	Handle() uint64
	TypeName() string
	Style() StyleRecord
}

// entityBase is embedded by every typed record to supply Handle/Style
// without repeating the boilerplate accessor in each decoder.
type entityBase struct {
	handle uint64
	style  StyleRecord
}

func (e entityBase) Handle() uint64    { return e.handle }
func (e entityBase) Style() StyleRecord { return e.style }

// Unknown preserves the raw bytes of an object whose type has no
// registered decoder, so a catalog consumer can still account for it
//.
type Unknown struct {
	entityBase
	Type string
	Raw  []byte
}

// TypeName implements Entity.
func (u Unknown) TypeName() string { return u.Type }

// entityDecoder decodes one object's payload, given its already-read
// object header and a bit reader positioned at the type-specific
// payload start (the common entity header has been consumed).
type entityDecoder func(f *File, hdr ObjectHeader, r *BitReader) (Entity, error)

// entityDecoders is the dispatch table keyed by resolved type-name,
// a funcMaps-style dispatch — one function per supported type, selected
// once, rather than a chain of type-name string comparisons spread
// through the catalog.
var entityDecoders = map[string]entityDecoder{
	"LINE":       decodeLine,
	"ARC":        decodeArc,
	"CIRCLE":     decodeCircle,
	"POINT":      decodePoint,
	"ELLIPSE":    decodeEllipse,
	"LWPOLYLINE": decodeLWPolyline,
	"TEXT":       decodeText,
	"MTEXT":      decodeMText,
	"INSERT":     decodeInsert,
	"RAY":        decodeRay,
	"XLINE":      decodeXLine,
}

// dimensionDecoders hold the subtype-specific tails of DIMENSION.
// init registers each one in entityDecoders under its own resolved
// type-name, wrapped so that parseDimensionCommon parses the shared
// prefix once before the tail; no in-stream subtype discriminator is
// read.
var dimensionDecoders = map[string]func(f *File, hdr ObjectHeader, r *BitReader, common DimensionCommon) (Entity, error){
	"DIMENSION_LINEAR":    decodeDimensionLinear,
	"DIMENSION_ALIGNED":   decodeDimensionAligned,
	"DIMENSION_RADIUS":    decodeDimensionRadius,
	"DIMENSION_DIAMETER":  decodeDimensionDiameter,
	"DIMENSION_ANG3PT":    decodeDimensionAngular,
	"DIMENSION_ANG2LN":    decodeDimensionAngular,
	"DIMENSION_ORDINATE":  decodeDimensionOrdinate,
}

func init() {
	for name, fn := range dimensionDecoders {
		name, fn := name, fn
		entityDecoders[name] = func(f *File, hdr ObjectHeader, r *BitReader) (Entity, error) {
			common, err := parseDimensionCommon(f, hdr, r)
			if err != nil {
				return nil, err
			}
			return fn(f, hdr, r, common)
		}
	}
}

// decodeEntityPayload decodes one object given its header: the common
// entity header, then the type-specific payload via entityDecoders.
// A type-name with no registered decoder yields ErrUnsupportedType;
// no Unknown record is produced in that case.
func (f *File) decodeEntityPayload(hdr ObjectHeader, raw []byte) (Entity, error) {
	r := NewBitReader(raw, f.version)

	if _, err := r.MS(); err != nil { // size, already known from hdr but re-consumed to reach the same offset
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if _, err := r.RS(); err != nil { // type-code
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	common, err := parseCommonEntityData(r, f.version, hdr.Handle)
	if err != nil {
		return nil, fmt.Errorf("%w: common entity header: %v", ErrMalformedRecord, err)
	}

	decode, ok := entityDecoders[hdr.TypeName]
	if !ok {
		return nil, ErrUnsupportedType
	}

	entity, err := decode(f, hdr, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	refs := readHandleStream(r, common)
	style := f.resolveStyle(common, refs)
	setEntityStyle(entity, style)
	return entity, nil
}

// setEntityStyle back-patches the resolved style onto the decoded
// entity. Each typed struct embeds entityBase by value, so the style
// is applied through a small type switch rather than reflection,
// preferring explicit type switches over reflection-driven field access.
func setEntityStyle(e Entity, style StyleRecord) {
	switch v := e.(type) {
	case *Line:
		v.style = style
	case *Arc:
		v.style = style
	case *Circle:
		v.style = style
	case *Point:
		v.style = style
	case *Ellipse:
		v.style = style
	case *LWPolyline:
		v.style = style
	case *Text:
		v.style = style
	case *MText:
		v.style = style
	case *Insert:
		v.style = style
	case *Dimension:
		v.style = style
	case *Ray:
		v.style = style
	case *XLine:
		v.style = style
	}
}
