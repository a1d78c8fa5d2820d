// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

import "errors"

// Errors surfaced at the decoder boundary, one per code named in the
// format's public contract.
var (
	// ErrUnsupportedVersion is returned when the six-byte file signature does
	// not match one of the seven known release codes.
	ErrUnsupportedVersion = errors.New("dwg: unsupported version signature")

	// ErrMissingSection is returned when a section required for the decoder
	// to operate (AcDb:Handles, AcDb:AcDbObjects, AcDb:Classes)
	// is absent from the section locator.
	ErrMissingSection = errors.New("dwg: required section missing")

	// ErrCRCMismatch is returned when a section-locator header CRC,
	// object-map page CRC, or per-object CRC does not match the bytes it
	// covers.
	ErrCRCMismatch = errors.New("dwg: CRC mismatch")

	// ErrMalformedRecord is returned when a per-object bit stream is
	// truncated or its tag bits do not match the schema of its declared
	// type.
	ErrMalformedRecord = errors.New("dwg: malformed record")

	// ErrUnknownHandle is returned when a requested handle is absent from
	// the object map.
	ErrUnknownHandle = errors.New("dwg: unknown handle")

	// ErrUnsupportedType is returned when decode is requested for a type
	// with no registered decoder.
	ErrUnsupportedType = errors.New("dwg: unsupported entity type")

	// ErrNoPointProjection is returned when to_points is requested for a
	// supported type that has no point-projection rule.
	ErrNoPointProjection = errors.New("dwg: type has no point projection")

	// ErrOutOfBounds is returned by every bit-stream primitive when the
	// cursor would advance past the declared bit length of its region.
	ErrOutOfBounds = errors.New("dwg: read past end of bit stream")

	// ErrInvalidSentinel is returned when a section's bracketing sentinel
	// magic does not match the expected bytes.
	ErrInvalidSentinel = errors.New("dwg: invalid section sentinel")
)
