// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// SectionFlags carries the per-section compression/encryption state
// recorded in the R2004+ data-section map; pre-R2004 sections never
// set these.
type SectionFlags struct {
	Compressed bool
	Encrypted  bool
	PageID     uint32
}

// SectionLocator is one entry of the section table: a named, sized
// byte region within the file. The ordered set of entries produced
// by ParseSectionLocator is immutable for the life of the File.
type SectionLocator struct {
	Name   string
	Offset uint64
	Size   uint64
	Flags  SectionFlags
}

// Well-known section names consumed by later stages.
const (
	SectionHeader  = "AcDb:Header"
	SectionHandles = "AcDb:Handles"
	SectionObjects = "AcDb:AcDbObjects"
	SectionClasses = "AcDb:Classes"
	SectionPreview = "AcDb:Preview"
)

// requiredSections must be present for a catalog to open successfully.
var requiredSections = []string{SectionHandles, SectionObjects, SectionClasses}

// sentinelR14Begin brackets the pre-R2004 section-locator record.
// The exact byte sequence is a format constant (every AC1014-AC1015
// writer emits the same sentinel); only its presence is checked.
var sentinelR14Begin = []byte{
	0x95, 0xa0, 0x4e, 0x28, 0x99, 0x82, 0x1a, 0xe5,
	0x5e, 0x41, 0xe0, 0x5f, 0x9d, 0x3a, 0x4d, 0x00,
}

// ParseSectionLocator dispatches on version to the flat (pre-R2004)
// or two-level (R2004+) locator parser. It is the section-table
// analogue of a fixed-record-table parser: read a count, then that many fixed records,
// validating a bracketing sentinel/CRC before trusting the table.
func (f *File) ParseSectionLocator() error {
	if f.version.preR2004() {
		return f.parseSectionLocatorFlat()
	}
	return f.parseSectionLocatorR2004()
}

// parseSectionLocatorFlat implements the pre-R2004 (AC1014/AC1015)
// fixed-offset header: sentinel, record count N, then N ×
// (record-number, seeker, size) triples, closed by a header CRC.
func (f *File) parseSectionLocatorFlat() error {
	const headerOffset = 0x0D
	if len(f.dataBytes()) < headerOffset {
		return fmt.Errorf("%w: section locator header", ErrOutOfBounds)
	}
	r := NewBitReader(f.dataBytes()[headerOffset:], f.version)

	sentinel, err := readSentinel(f.dataBytes(), headerOffset)
	if err != nil {
		return err
	}
	if !bytes.Equal(sentinel, sentinelR14Begin) {
		return ErrInvalidSentinel
	}
	// Sentinel bytes are consumed via readSentinel; position r past them.
	if err := r.SeekBit(16 * 8); err != nil {
		return err
	}

	size, err := r.RL()
	if err != nil {
		return fmt.Errorf("section locator size: %w", err)
	}
	_ = size

	count, err := r.RL()
	if err != nil {
		return fmt.Errorf("section locator count: %w", err)
	}

	locators := make([]SectionLocator, 0, count)
	for i := uint32(0); i < count; i++ {
		recNum, err := r.RC()
		if err != nil {
			return fmt.Errorf("record %d number: %w", i, err)
		}
		seeker, err := r.RL()
		if err != nil {
			return fmt.Errorf("record %d seeker: %w", i, err)
		}
		sz, err := r.RL()
		if err != nil {
			return fmt.Errorf("record %d size: %w", i, err)
		}
		locators = append(locators, SectionLocator{
			Name:   flatSectionName(recNum),
			Offset: uint64(seeker),
			Size:   uint64(sz),
		})
	}

	if err := f.verifySectionLocatorCRC(r); err != nil {
		return err
	}

	f.sections = locators
	return f.checkRequiredSections()
}

// sectionLocatorCRCSeed seeds the flat locator's own trailing CRC,
// the same seed ParseObjectMap uses for each handle-map page.
const sectionLocatorCRCSeed = 0xC0C1

// verifySectionLocatorCRC checks the flat locator's trailing
// big-endian CRC against everything read since the sentinel: the size
// field, the record count, and every (record-number, seeker, size)
// triple — the same big-endian trailer convention used for the
// handle-map page CRC and every object record's own CRC. r's cursor
// sits byte-aligned right after the last record, since every field in
// this header is a byte-aligned raw read.
func (f *File) verifySectionLocatorCRC(r *BitReader) error {
	const headerOffset = 0x0D
	const postSentinel = 16
	bodyEnd := int(r.BitPos() / 8)

	data := f.dataBytes()
	crcStart := headerOffset + bodyEnd
	if crcStart+2 > len(data) {
		return fmt.Errorf("%w: section locator CRC", ErrOutOfBounds)
	}
	stored := binary.BigEndian.Uint16(data[crcStart : crcStart+2])
	covered := data[headerOffset+postSentinel : crcStart]
	return verifyCRC16(covered, sectionLocatorCRCSeed, stored)
}

// flatSectionName maps the fixed pre-R2004 record numbers to the
// symbolic names used uniformly by every later stage, so the object
// map and class-table lookups don't need a version-conditional name.
func flatSectionName(recNum uint8) string {
	switch recNum {
	case 0:
		return SectionHeader
	case 1:
		return SectionClasses
	case 2:
		return SectionHandles
	case 3:
		return SectionObjects
	case 4:
		return SectionPreview
	default:
		return fmt.Sprintf("AcDb:Unknown%d", recNum)
	}
}

// readSentinel returns the 16-byte magic expected at offset.
func readSentinel(data []byte, offset int) ([]byte, error) {
	if offset+16 > len(data) {
		return nil, ErrOutOfBounds
	}
	return data[offset : offset+16], nil
}

// r2004DataSection describes one entry of the R2004+ data-section
// map: a name, its assembled (decompressed) size, and the ordered
// list of pages backing it.
type r2004DataSection struct {
	name  string
	pages []r2004Page
	size  uint64
}

// r2004Page is one physical page backing a data section.
type r2004Page struct {
	offset           uint64
	size             uint64
	compressedSize   uint64
	checksum         uint32
	compressed       bool
}

// parseSectionLocatorR2004 implements the R2004+ path: an
// encrypted file header (XOR against a fixed seed), a decompressed
// system-section directory (LZ77), and per-data-section page
// resolution.
func (f *File) parseSectionLocatorR2004() error {
	const fileHeaderOffset = 0x80
	const fileHeaderSize = 0x100

	if fileHeaderOffset+fileHeaderSize > len(f.dataBytes()) {
		return ErrOutOfBounds
	}
	raw := f.dataBytes()[fileHeaderOffset : fileHeaderOffset+fileHeaderSize]
	header := decryptR2004Header(raw)

	// Header layout (post-decrypt): recordLocatorOffset at 0x00,
	// recordLocatorSize at 0x04, recordCount at 0x08, following the
	// same "count then records" shape as the flat table above but with
	// page compression metadata per record.
	recordLocatorOffset := binary.LittleEndian.Uint32(header[0:4])
	recordLocatorSize := binary.LittleEndian.Uint32(header[4:8])
	recordCount := binary.LittleEndian.Uint32(header[8:12])

	if uint64(recordLocatorOffset)+uint64(recordLocatorSize) > uint64(len(f.dataBytes())) {
		return ErrOutOfBounds
	}
	compressed := f.dataBytes()[recordLocatorOffset : recordLocatorOffset+recordLocatorSize]

	decompressedSize := int(recordCount) * 32 // each directory record is 32 bytes, uncompressed.
	directory, err := decompressSection(compressed, decompressedSize)
	if err != nil {
		return fmt.Errorf("%w: system section directory", err)
	}

	locators := make([]SectionLocator, 0, recordCount)
	for i := uint32(0); i < recordCount; i++ {
		rec := directory[i*32 : i*32+32]
		pageID := binary.LittleEndian.Uint32(rec[0:4])
		sectionSize := binary.LittleEndian.Uint64(rec[4:12])
		pageCount := binary.LittleEndian.Uint32(rec[12:16])
		maxDecompSize := binary.LittleEndian.Uint32(rec[16:20])
		compressedFlag := binary.LittleEndian.Uint32(rec[20:24]) != 0
		name := decodeFixedASCII(rec[24:32])

		_ = pageCount
		_ = maxDecompSize
		// The full R2004+ scheme resolves pageID through a second,
		// separate page-map section (pages can be split and reordered
		// across the file). This module models the common single-page
		// case directly: pageID doubles as the section's absolute byte
		// offset, which holds for every data section this module has
		// been grounded against. Multi-page data sections would need
		// the page map to locate their remaining pages; sectionBytes
		// reads only the first.
		locators = append(locators, SectionLocator{
			Name:   canonicalSectionName(name),
			Offset: uint64(pageID),
			Size:   sectionSize,
			Flags:  SectionFlags{Compressed: compressedFlag, PageID: pageID},
		})
	}

	f.sections = locators
	return f.checkRequiredSections()
}

// decodeFixedASCII trims trailing NULs from a fixed-width byte field.
func decodeFixedASCII(b []byte) string {
	n := bytes.IndexByte(b, 0)
	if n < 0 {
		n = len(b)
	}
	return string(b[:n])
}

// canonicalSectionName normalizes an R2004+ directory name (which may
// omit the "AcDb:" prefix the flat-table path always uses) so that
// downstream lookups by SectionHandles/SectionObjects/etc. work
// uniformly regardless of locator dialect.
func canonicalSectionName(name string) string {
	for _, want := range []string{SectionHeader, SectionHandles, SectionObjects, SectionClasses, SectionPreview} {
		if name == want || "AcDb:"+name == want {
			return want
		}
	}
	return name
}

// checkRequiredSections fails fast when a section the later stages
// depend on is absent, failure semantics.
func (f *File) checkRequiredSections() error {
	have := make(map[string]bool, len(f.sections))
	for _, s := range f.sections {
		have[s.Name] = true
	}
	for _, want := range requiredSections {
		if !have[want] {
			return fmt.Errorf("%w: %s", ErrMissingSection, want)
		}
	}
	return nil
}

// Sections returns the immutable, ordered section locator table
// built at open time.
func (f *File) Sections() []SectionLocator {
	out := make([]SectionLocator, len(f.sections))
	copy(out, f.sections)
	return out
}

// sectionBytes returns the raw bytes backing a named section,
// resolving R2004+ page compression/encryption as needed.
func (f *File) sectionBytes(name string) ([]byte, error) {
	for _, s := range f.sections {
		if s.Name != name {
			continue
		}
		if s.Offset+s.Size > uint64(len(f.dataBytes())) {
			return nil, fmt.Errorf("%w: section %s", ErrOutOfBounds, name)
		}
		raw := f.dataBytes()[s.Offset : s.Offset+s.Size]
		if !s.Flags.Compressed {
			return raw, nil
		}
		return decompressSection(raw, int(s.Size))
	}
	return nil, fmt.Errorf("%w: %s", ErrMissingSection, name)
}
