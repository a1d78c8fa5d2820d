// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

import (
	"encoding/binary"
	"fmt"
)

// ObjectHeader is the enriched index entry, built for every handle at
// open time by BuildObjectHeaderIndex, used for
// type-filtered queries: the object-map (handle, offset) plus the
// preamble fields read one layer deeper (size, type-code, and — once
// resolved against the class table — a symbolic name and class).
type ObjectHeader struct {
	Handle       uint64
	Offset       uint64
	Size         uint32
	TypeCode     uint16
	TypeName     string
	IsEntity     bool
	Valid        bool
}

// BuildObjectHeaderIndex walks every object-map entry, reading the
// object record preamble (MS size, RS type-code) to produce the
// enriched index. Entries whose trailing CRC fails to verify or whose
// type-code cannot be resolved are still recorded (diagnostic value)
// but marked invalid. Follows a fixed-count table-validation loop,
// which likewise walks a fixed-count table validating each record
// before trusting it and tallying failures rather than aborting on
// the first one.
func (f *File) BuildObjectHeaderIndex() error {
	objData, err := f.sectionBytes(SectionObjects)
	if err != nil {
		return err
	}

	headers := make(map[uint64]ObjectHeader, len(f.objectOrder))
	errs := make(map[uint64]error, len(f.objectOrder))
	for _, handle := range f.objectOrder {
		offset := f.objectMap[handle]
		h, recErr := f.readObjectHeader(objData, handle, offset)
		headers[handle] = h
		if recErr != nil {
			errs[handle] = recErr
			f.decodeStates[handle] = stateBad
			f.diagnostics = append(f.diagnostics, Diagnostic{
				Handle: handle, Offset: offset, TypeCode: h.TypeCode, Reason: recErr.Error(),
			})
		} else {
			f.decodeStates[handle] = stateHeaderRead
		}
	}
	f.objectHeaders = headers
	f.headerErrors = errs
	return nil
}

// readObjectHeader parses one object's preamble without decoding its
// type-specific payload, verifying the record's trailing CRC before
// trusting anything it says about its own type.
func (f *File) readObjectHeader(objData []byte, handle, offset uint64) (ObjectHeader, error) {
	h := ObjectHeader{Handle: handle, Offset: offset}
	if offset >= uint64(len(objData)) {
		return h, fmt.Errorf("%w: object at handle %d", ErrOutOfBounds, handle)
	}
	r := NewBitReader(objData[offset:], f.version)

	size, err := r.MS()
	if err != nil {
		return h, err
	}
	h.Size = size

	typeCode, err := r.RS()
	if err != nil {
		return h, err
	}
	h.TypeCode = typeCode

	if err := f.verifyObjectCRC(objData, offset, size); err != nil {
		return h, fmt.Errorf("%w: handle %d", err, handle)
	}

	if err := skipCrossVersionBits(r, f.version); err != nil {
		return h, err
	}

	name, isEntity, ok := f.resolveTypeName(typeCode)
	if !ok {
		return h, fmt.Errorf("%w: unresolved type-code %d", ErrMalformedRecord, typeCode)
	}
	h.TypeName = name
	h.IsEntity = isEntity
	h.Valid = true
	return h, nil
}

// verifyObjectCRC checks the trailing two bytes of an object's byte
// range — objData[offset:offset+size], per the MS size field already
// read — against the CRC-16 of everything preceding them, the same
// seed-and-check shape ParseObjectMap uses for each handle-map page.
func (f *File) verifyObjectCRC(objData []byte, offset uint64, size uint32) error {
	if size < 2 {
		return fmt.Errorf("%w: object record shorter than its CRC trailer", ErrMalformedRecord)
	}
	end := offset + uint64(size)
	if end > uint64(len(objData)) {
		return ErrOutOfBounds
	}
	record := objData[offset:end]
	stored := binary.BigEndian.Uint16(record[len(record)-2:])
	return verifyCRC16(record[:len(record)-2], objectRecordCRCSeed, stored)
}

// ObjectHeaders returns the object header index built at open time,
// in object-map order.
func (f *File) ObjectHeaders() []ObjectHeader {
	out := make([]ObjectHeader, 0, len(f.objectOrder))
	for _, handle := range f.objectOrder {
		out = append(out, f.objectHeaders[handle])
	}
	return out
}
