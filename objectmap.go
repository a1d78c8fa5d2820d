// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

import (
	"encoding/binary"
	"fmt"
)

// ObjectMapEntry is one (handle, offset) pair from the handle map —
// the root index used to locate any object by handle.
type ObjectMapEntry struct {
	Handle uint64
	Offset uint64
}

// ParseObjectMap reads AcDb:Handles as a sequence of pages. Each page
// begins with a big-endian uint16 page size; the page body is a
// sequence of MC-encoded (handle-delta, offset-delta) pairs
// accumulating against running handle and offset values; each page
// ends with a CRC. A zero-size page terminates the map, the same
// "loop a count-prefixed table until a sentinel record" shape used
// throughout section.go's own section-header loop.
func (f *File) ParseObjectMap() error {
	data, err := f.sectionBytes(SectionHandles)
	if err != nil {
		return err
	}

	entries := make(map[uint64]uint64)
	order := make([]uint64, 0)
	duplicates := 0

	pos := 0
	var runningHandle, runningOffset uint64
	for {
		if pos+2 > len(data) {
			return fmt.Errorf("%w: object map page header", ErrOutOfBounds)
		}
		pageSize := binary.BigEndian.Uint16(data[pos : pos+2])
		if pageSize == 0 {
			break
		}
		if pageSize < 4 {
			return fmt.Errorf("%w: object map page size %d", ErrMalformedRecord, pageSize)
		}
		if pos+int(pageSize) > len(data) {
			return fmt.Errorf("%w: object map page body", ErrOutOfBounds)
		}
		body := data[pos+2 : pos+int(pageSize)-2]
		storedCRC := binary.BigEndian.Uint16(data[pos+int(pageSize)-2 : pos+int(pageSize)])
		if err := verifyCRC16(data[pos:pos+int(pageSize)-2], 0xC0C1, storedCRC); err != nil {
			return fmt.Errorf("%w: object map page at byte %d", err, pos)
		}

		r := NewBitReader(body, f.version)
		runningHandle, runningOffset = 0, 0
		for r.Remaining() >= 8 {
			handleDelta, err := r.MC()
			if err != nil {
				break
			}
			offsetDelta, err := r.MC()
			if err != nil {
				return fmt.Errorf("%w: object map offset delta", err)
			}
			runningHandle = uint64(int64(runningHandle) + handleDelta)
			runningOffset = uint64(int64(runningOffset) + offsetDelta)

			if _, exists := entries[runningHandle]; exists {
				duplicates++
			}
			// Last wins: the observed writer behavior
			if _, exists := entries[runningHandle]; !exists {
				order = append(order, runningHandle)
			}
			entries[runningHandle] = runningOffset
		}

		pos += int(pageSize)
	}

	f.objectMap = entries
	f.objectOrder = order
	f.duplicateHandles = duplicates
	return nil
}

// ObjectMap returns the handle -> file-offset mapping built at open
// time, in object-map insertion order (duplicates resolved "last
// wins").
func (f *File) ObjectMap() []ObjectMapEntry {
	out := make([]ObjectMapEntry, 0, len(f.objectOrder))
	for _, h := range f.objectOrder {
		out = append(out, ObjectMapEntry{Handle: h, Offset: f.objectMap[h]})
	}
	return out
}
