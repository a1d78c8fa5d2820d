// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

import "fmt"

// classFence is the boundary between fixed type-codes (< classFence)
// and class-table-resolved type-codes (>= classFence).
const classFence = 500

// itemClassIDEntity is the itemclassid value that marks a class
// entry as an entity (as opposed to a non-graphical object).
const itemClassIDEntity = 0x1F2

// ClassEntry is one resolved row of the AcDb:Classes table: a
// type-code mapped to its symbolic DXF name and entity/object class.
type ClassEntry struct {
	Number       uint16
	Version      uint16
	AppName      string
	CppClassName string
	DxfName      string
	WasAZombie   bool
	IsEntity     bool
}

// ParseClasses parses AcDb:Classes: sentinel, total size, then N ×
// (class-number BS, version BS, appname T, cppclassname T, dxfname
// T, wasazombie B, itemclassid BS). Follows the same
// "count/size-prefixed table of named entries" shape used for the
// handle and descriptor tables elsewhere, generalized to
// this format's bit-packed field types.
func (f *File) ParseClasses() error {
	data, err := f.sectionBytes(SectionClasses)
	if err != nil {
		return err
	}
	if len(data) < 16+4 {
		return fmt.Errorf("%w: classes section too small", ErrMalformedRecord)
	}

	r := NewBitReader(data, f.version)
	if err := r.SeekBit(16 * 8); err != nil { // skip the 16-byte sentinel
		return err
	}
	if _, err := r.RL(); err != nil { // total size, unused beyond bounds checking
		return fmt.Errorf("classes size: %w", err)
	}

	classes := make(map[uint16]ClassEntry)
	for r.Remaining() >= 16 {
		number, err := r.BS()
		if err != nil {
			break
		}
		version, err := r.BS()
		if err != nil {
			return fmt.Errorf("class %d version: %w", number, err)
		}
		appName, err := r.T()
		if err != nil {
			return fmt.Errorf("class %d appname: %w", number, err)
		}
		cppName, err := r.T()
		if err != nil {
			return fmt.Errorf("class %d cppclassname: %w", number, err)
		}
		dxfName, err := r.T()
		if err != nil {
			return fmt.Errorf("class %d dxfname: %w", number, err)
		}
		zombie, err := r.B()
		if err != nil {
			return fmt.Errorf("class %d wasazombie: %w", number, err)
		}
		itemClassID, err := r.BS()
		if err != nil {
			return fmt.Errorf("class %d itemclassid: %w", number, err)
		}

		classes[number] = ClassEntry{
			Number:       number,
			Version:      version,
			AppName:      appName,
			CppClassName: cppName,
			DxfName:      dxfName,
			WasAZombie:   zombie,
			IsEntity:     itemClassID == itemClassIDEntity,
		}
	}

	f.classes = classes
	return nil
}

// resolveTypeName maps a numeric type-code to a symbolic name and
// entity/object class, step 5 and §4.4.
func (f *File) resolveTypeName(code uint16) (name string, isEntity bool, ok bool) {
	if code < classFence {
		if fixed, present := fixedTypeNames[code]; present {
			return fixed.name, fixed.isEntity, true
		}
		return "", false, false
	}
	class, present := f.classes[code]
	if !present {
		return "", false, false
	}
	return class.DxfName, class.IsEntity, true
}
