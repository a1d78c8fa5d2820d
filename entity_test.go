// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

import (
	"errors"
	"testing"
)

func TestDecodeLine(t *testing.T) {
	w := &testBitWriter{}
	w.writeB(false) // zPresent = false, end.Z defaults to start.Z
	w.writeBDRaw(1) // start.X
	w.writeBDRaw(2) // start.Y
	w.writeBDRaw(3) // start.Z
	w.writeBDRaw(4) // end.X
	w.writeBDRaw(5) // end.Y
	w.writeBDZero() // thickness
	w.writeB(true)  // extrusion default (0,0,1)

	r := NewBitReader(w.bytes(), VersionR2000)
	entity, err := decodeLine(nil, ObjectHeader{Handle: 0x10}, r)
	if err != nil {
		t.Fatalf("decodeLine() error: %v", err)
	}
	line, ok := entity.(*Line)
	if !ok {
		t.Fatalf("decodeLine() returned %T, want *Line", entity)
	}
	if line.Start != (Point3D{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("Start = %+v, want {1 2 3}", line.Start)
	}
	if line.End != (Point3D{X: 4, Y: 5, Z: 3}) {
		t.Fatalf("End = %+v, want {4 5 3} (Z inherited from Start)", line.End)
	}
	if line.Thickness != 0 {
		t.Fatalf("Thickness = %v, want 0", line.Thickness)
	}
	if line.Extrusion != (Point3D{Z: 1}) {
		t.Fatalf("Extrusion = %+v, want {0 0 1}", line.Extrusion)
	}
	if line.Handle() != 0x10 {
		t.Fatalf("Handle() = %d, want 0x10", line.Handle())
	}
}

func TestDecodeCircle(t *testing.T) {
	w := &testBitWriter{}
	w.writeBDRaw(10) // center.X
	w.writeBDRaw(20) // center.Y
	w.writeBDRaw(0)  // center.Z
	w.writeBDRaw(5)  // radius
	w.writeBDZero()  // thickness
	w.writeB(true)   // extrusion default

	r := NewBitReader(w.bytes(), VersionR2000)
	entity, err := decodeCircle(nil, ObjectHeader{Handle: 0x20}, r)
	if err != nil {
		t.Fatalf("decodeCircle() error: %v", err)
	}
	circle := entity.(*Circle)
	if circle.Center != (Point3D{X: 10, Y: 20, Z: 0}) {
		t.Fatalf("Center = %+v, want {10 20 0}", circle.Center)
	}
	if circle.Radius != 5 {
		t.Fatalf("Radius = %v, want 5", circle.Radius)
	}

	// CIRCLE has no defined to_points projection; it must fail with
	// ErrNoPointProjection like every other supported type outside the
	// explicit table.
	if _, err := ToPoints(entity); !errors.Is(err, ErrNoPointProjection) {
		t.Fatalf("ToPoints() error = %v, want ErrNoPointProjection", err)
	}
}

func TestDecodeLWPolylineClosedFlagNotDuplicatedVertex(t *testing.T) {
	w := &testBitWriter{}
	w.writeBSRaw(0x01) // flags: closed, no const-width/elevation/thickness/extrusion
	w.writeBLRaw(3)    // numPoints
	w.writeBLRaw(0)    // numBulges
	w.writeBLRaw(0)    // numWidths
	for _, p := range [][2]float64{{0, 0}, {1, 0}, {1, 1}} {
		w.writeRD(p[0])
		w.writeRD(p[1])
	}

	r := NewBitReader(w.bytes(), VersionR2000)
	entity, err := decodeLWPolyline(nil, ObjectHeader{Handle: 0x30}, r)
	if err != nil {
		t.Fatalf("decodeLWPolyline() error: %v", err)
	}
	lw := entity.(*LWPolyline)
	if !lw.Closed() {
		t.Fatal("Closed() = false, want true")
	}
	if len(lw.Points) != 3 {
		t.Fatalf("len(Points) = %d, want 3 (no duplicated closing vertex)", len(lw.Points))
	}
}

func TestDecodeInsertScaleFlags(t *testing.T) {
	w := &testBitWriter{}
	w.writeBDRaw(1) // insert.X
	w.writeBDRaw(2) // insert.Y
	w.writeBDRaw(3) // insert.Z
	w.writeBits(2, 2) // scale flag 2: unit scale, no values follow
	w.writeBDRaw(0) // rotation
	w.writeB(true)  // extrusion default
	w.writeB(false) // hasAttribs
	w.writeB(false) // isMInsert
	// handle H: code 2 (absolute) in top 4 bits, count 1 in low 4 bits, then 1 byte of value.
	w.writeBits(0x21, 8)
	w.writeRC(0x05)

	r := NewBitReader(w.bytes(), VersionR2000)
	entity, err := decodeInsert(nil, ObjectHeader{Handle: 0x40}, r)
	if err != nil {
		t.Fatalf("decodeInsert() error: %v", err)
	}
	ins := entity.(*Insert)
	if ins.ScaleX != 1 || ins.ScaleY != 1 || ins.ScaleZ != 1 {
		t.Fatalf("unit scale flag should leave ScaleX/Y/Z at 1, got %v/%v/%v", ins.ScaleX, ins.ScaleY, ins.ScaleZ)
	}
	if ins.ColumnCount != 1 || ins.RowCount != 1 {
		t.Fatalf("non-MINSERT should default ColumnCount/RowCount to 1, got %d/%d", ins.ColumnCount, ins.RowCount)
	}
}

func TestToPointsUnsupportedType(t *testing.T) {
	u := &Unknown{entityBase: entityBase{handle: 1}, Type: "SOME_OBJECT"}
	if _, err := ToPoints(u); err == nil {
		t.Fatal("ToPoints() on Unknown should return an error")
	}
}
