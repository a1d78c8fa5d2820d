// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

import (
	"errors"
	"fmt"
)

// DecodeState tracks a handle's progress through the lazy decode
// lifecycle: UNSEEN objects are only known through the object map;
// BuildObjectHeaderIndex advances every handle to HEADER_READ or, on
// a CRC mismatch or unresolved type-code, straight to the terminal
// BAD state; Decode advances a HEADER_READ handle to PAYLOAD_DECODED
// and caches the result, or to BAD on any decode failure. f.decodeStates
// holds the current state per handle; DecodeState exposes it for
// diagnostics and tests.
type DecodeState int

// String renders a DecodeState as its lifecycle state name, for
// logging and test failure messages.
func (s DecodeState) String() string {
	switch s {
	case stateUnseen:
		return "UNSEEN"
	case stateHeaderRead:
		return "HEADER_READ"
	case statePayloadDecoded:
		return "PAYLOAD_DECODED"
	case stateBad:
		return "BAD"
	default:
		return "UNKNOWN"
	}
}

const (
	stateUnseen DecodeState = iota
	stateHeaderRead
	statePayloadDecoded
	stateBad
)

// Query returns the object headers matching types, in object-map
// order. A nil or empty types filters nothing. This mirrors
// query(types?): a lazy sequence over the index built at open
// time, no payload decode performed. At most Options.Limit headers
// are returned (DefaultQueryLimit when the option is left at zero).
func (f *File) Query(types ...string) []ObjectHeader {
	limit := f.opts.Limit
	if len(types) == 0 {
		all := f.ObjectHeaders()
		if limit > 0 && len(all) > limit {
			all = all[:limit]
		}
		return all
	}
	want := make(map[string]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	var out []ObjectHeader
	for _, handle := range f.objectOrder {
		if limit > 0 && len(out) >= limit {
			break
		}
		h := f.objectHeaders[handle]
		if want[h.TypeName] {
			out = append(out, h)
		}
	}
	return out
}

// ReadObject returns the raw bytes of the object record at handle —
// read_object(handle) → raw record — once BuildObjectHeaderIndex has
// already verified its trailing CRC. ErrUnknownHandle is returned for
// a handle absent from the object map entirely; a handle whose CRC
// failed to verify returns the same ErrCRCMismatch recorded in
// Diagnostics rather than silently handing back unverified bytes.
func (f *File) ReadObject(handle uint64) ([]byte, error) {
	if cached, ok := f.rawCache[handle]; ok {
		return cached, nil
	}

	offset, ok := f.objectMap[handle]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, handle)
	}
	if recErr, ok := f.headerErrors[handle]; ok && errors.Is(recErr, ErrCRCMismatch) {
		return nil, recErr
	}

	objData, err := f.sectionBytes(SectionObjects)
	if err != nil {
		return nil, err
	}
	if offset >= uint64(len(objData)) {
		return nil, fmt.Errorf("%w: handle %d at offset %d", ErrOutOfBounds, handle, offset)
	}

	hdr, ok := f.objectHeaders[handle]
	end := uint64(len(objData))
	if ok && hdr.Valid {
		candidate := offset + uint64(hdr.Size)
		if candidate <= uint64(len(objData)) {
			end = candidate
		}
	}

	raw := objData[offset:end]
	f.rawCache[handle] = raw
	return raw, nil
}

// Decode returns the typed entity record for handle, decoding and
// caching it on first access (decode(handle) → entity
// record, with write-once caching). ErrUnknownHandle propagates
// from ReadObject; a handle whose header build failed — CRC mismatch
// or unresolved type-code — returns the same error recorded in
// Diagnostics; ErrUnsupportedType is returned for a resolved
// type-code with no registered decoder; ErrMalformedRecord wraps any
// other failure encountered while walking the bit stream.
func (f *File) Decode(handle uint64) (Entity, error) {
	if cached, ok := f.entityCache[handle]; ok {
		if cachedErr, isErr := cached.(error); isErr {
			return nil, cachedErr
		}
		return cached.(Entity), nil
	}

	hdr, ok := f.objectHeaders[handle]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, handle)
	}
	if !hdr.Valid {
		recErr, ok := f.headerErrors[handle]
		if !ok {
			recErr = fmt.Errorf("%w: handle %d has no resolved type", ErrMalformedRecord, handle)
		}
		f.entityCache[handle] = recErr
		return nil, recErr
	}

	raw, err := f.ReadObject(handle)
	if err != nil {
		f.decodeStates[handle] = stateBad
		return nil, err
	}

	entity, err := f.decodeEntityPayload(hdr, raw)
	if err != nil {
		f.entityCache[handle] = err
		f.decodeStates[handle] = stateBad
		f.diagnostics = append(f.diagnostics, Diagnostic{
			Handle: handle, Offset: hdr.Offset, TypeCode: hdr.TypeCode, Reason: err.Error(),
		})
		return nil, err
	}

	f.entityCache[handle] = entity
	f.decodeStates[handle] = statePayloadDecoded
	return entity, nil
}

// DecodeState reports handle's current position in the lazy decode
// lifecycle. A handle absent from the object map entirely reports
// UNSEEN.
func (f *File) DecodeState(handle uint64) DecodeState {
	return f.decodeStates[handle]
}

// Stats summarizes the catalog: the number of objects resolved per
// type-name, and the count of handles whose object header failed to
// build (payload failures recorded later by Decode are not counted).
// A supplemented convenience beyond the original worked-example table,
// useful for the CLI's summary output and for tests asserting overall
// shape without enumerating every handle.
type Stats struct {
	TotalObjects  int
	ByType        map[string]int
	HeaderFailures int
	DuplicateHandles int
}

// Stats computes a Stats snapshot from the already-built indices; it
// does not force-decode any payload.
func (f *File) Stats() Stats {
	s := Stats{
		TotalObjects:      len(f.objectOrder),
		ByType:            make(map[string]int),
		DuplicateHandles:  f.duplicateHandles,
	}
	for _, handle := range f.objectOrder {
		h := f.objectHeaders[handle]
		if !h.Valid {
			s.HeaderFailures++
			continue
		}
		s.ByType[h.TypeName]++
	}
	return s
}
