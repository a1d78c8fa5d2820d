// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

// fixedType describes one statically-assigned type-code entry.
type fixedType struct {
	name     string
	isEntity bool
}

// fixedTypeNames are the type-codes below classFence, fixed per the
// format spec across every supported version. Only
// the subset this decoder's typed-decoder table (entities.go) and
// the control-object handles referenced by the object-map
// invariant actually need are enumerated with confidence; the rest
// of the object-only range is still named for diagnostic reporting
// even though this module registers no decoder for them.
var fixedTypeNames = map[uint16]fixedType{
	1:  {"TEXT", true},
	2:  {"ATTRIB", true},
	3:  {"ATTDEF", true},
	4:  {"BLOCK", true},
	5:  {"ENDBLK", true},
	6:  {"SEQEND", true},
	7:  {"INSERT", true},
	8:  {"MINSERT", true},
	10: {"VERTEX_2D", true},
	11: {"VERTEX_3D", true},
	17: {"POLYLINE_2D", true},
	18: {"POLYLINE_3D", true},
	19: {"ARC", true},
	20: {"CIRCLE", true},
	21: {"LINE", true},
	22: {"DIMENSION_ORDINATE", true},
	23: {"DIMENSION_LINEAR", true},
	24: {"DIMENSION_ALIGNED", true},
	25: {"DIMENSION_ANG3PT", true},
	26: {"DIMENSION_ANG2LN", true},
	27: {"DIMENSION_RADIUS", true},
	28: {"DIMENSION_DIAMETER", true},
	29: {"POINT", true},
	30: {"FACE3D", true},
	33: {"SOLID", true},
	34: {"TRACE", true},
	35: {"SHAPE", true},
	36: {"VIEWPORT", true},
	37: {"ELLIPSE", true},
	38: {"SPLINE", true},
	40: {"SOLID3D", true},
	41: {"BODY", true},
	42: {"RAY", true},
	43: {"XLINE", true},
	44: {"DICTIONARY", false},
	46: {"MTEXT", true},
	47: {"LEADER", true},
	48: {"TOLERANCE", true},
	49: {"MLINE", true},
	50: {"BLOCK_CONTROL", false},
	51: {"BLOCK_HEADER", false},
	52: {"LAYER_CONTROL", false},
	53: {"LAYER", false},
	54: {"STYLE_CONTROL", false},
	55: {"STYLE", false},
	58: {"LTYPE_CONTROL", false},
	59: {"LTYPE", false},
	61: {"VIEW_CONTROL", false},
	62: {"VIEW", false},
	63: {"UCS_CONTROL", false},
	64: {"UCS", false},
	65: {"VPORT_CONTROL", false},
	66: {"VPORT", false},
	67: {"APPID_CONTROL", false},
	68: {"APPID", false},
	69: {"DIMSTYLE_CONTROL", false},
	70: {"DIMSTYLE", false},
	78: {"LWPOLYLINE", true},
	79: {"HATCH", true},
	80: {"XRECORD", false},
}
