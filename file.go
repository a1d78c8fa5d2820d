// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

package dwg

import (
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/cadkit/dwg/internal/log"
)

// DefaultQueryLimit bounds the number of headers Query returns when
// Options.Limit is left at zero.
const DefaultQueryLimit = 1 << 20

// Options configures a File at construction time. There is no
// external configuration surface (no config file, no environment
// variables) — every tunable is a field here.
type Options struct {
	// Fast stops after the object-map/object-header index is built;
	// layer records used by the style resolver are not eagerly
	// decoded.
	Fast bool

	// Limit caps the number of object headers Query returns; zero
	// selects DefaultQueryLimit.
	Limit int

	// Logger overrides the default stderr/Error-level logger.
	Logger log.Logger
}

// File represents an open DWG file: the immutable indices built at
// open time (section locator, object map, object header index, class
// table) plus the raw byte buffer they reference.
type File struct {
	version Version

	sections          []SectionLocator
	objectMap         map[uint64]uint64
	objectOrder       []uint64
	duplicateHandles  int
	objectHeaders     map[uint64]ObjectHeader
	headerErrors      map[uint64]error
	decodeStates      map[uint64]DecodeState
	classes           map[uint16]ClassEntry
	diagnostics       []Diagnostic

	rawCache     map[uint64][]byte
	entityCache  map[uint64]interface{}
	layerIndex   map[uint64]StyleRecord

	data mmap.MMap
	raw  []byte
	f    *os.File

	opts   *Options
	logger *log.Helper
}

// Diagnostic records one record-local failure: a handle that failed
// CRC, truncated, or otherwise didn't decode, plus enough context to
// report it without re-reading the file. A diagnostics side channel,
// generalized from a flat
// string list to structured (handle, offset, type-code, reason)
// tuples tier 2.
type Diagnostic struct {
	Handle   uint64
	Offset   uint64
	TypeCode uint16
	Reason   string
}

// New opens name, memory-mapping it, and runs Parse.
func New(name string, opts *Options) (*File, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	file := newFile(opts)
	file.data = data
	file.raw = data
	file.f = f

	if err := file.Parse(); err != nil {
		file.Close()
		return nil, err
	}
	return file, nil
}

// NewBytes opens an in-memory buffer, used by tests and by callers
// who already hold the file's bytes.
func NewBytes(data []byte, opts *Options) (*File, error) {
	file := newFile(opts)
	file.raw = data

	if err := file.Parse(); err != nil {
		return nil, err
	}
	return file, nil
}

func newFile(opts *Options) *File {
	file := &File{
		objectMap:     make(map[uint64]uint64),
		objectHeaders: make(map[uint64]ObjectHeader),
		headerErrors:  make(map[uint64]error),
		decodeStates:  make(map[uint64]DecodeState),
		classes:       make(map[uint16]ClassEntry),
		rawCache:      make(map[uint64][]byte),
		entityCache:   make(map[uint64]interface{}),
		layerIndex:    make(map[uint64]StyleRecord),
	}
	if opts != nil {
		file.opts = opts
	} else {
		file.opts = &Options{}
	}
	if file.opts.Limit == 0 {
		file.opts.Limit = DefaultQueryLimit
	}

	var logger log.Logger
	if file.opts.Logger == nil {
		logger = log.NewStdLogger(os.Stderr)
		file.logger = log.NewHelper(log.NewFilter(logger, log.FilterLevel(log.LevelError)))
	} else {
		file.logger = log.NewHelper(file.opts.Logger)
	}
	return file
}

// Close releases the file's memory mapping and underlying descriptor,
// deterministically.
func (f *File) Close() error {
	if f.data != nil {
		_ = f.data.Unmap()
	}
	if f.f != nil {
		return f.f.Close()
	}
	return nil
}

// dataBytes returns the buffer backing the file, whichever construction
// path produced it.
func (f *File) dataBytes() []byte {
	return f.raw
}

// Version returns the probed release dialect.
func (f *File) Version() Version { return f.version }

// Diagnostics returns the side channel of record-local decode
// failures accumulated while building the object header index and by
// Decode when a payload fails to decode.
func (f *File) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(f.diagnostics))
	copy(out, f.diagnostics)
	return out
}

// Parse runs the decoder's dependency-ordered stages:
// version probe, section locator, object map, object header index,
// and — unless Fast is set — eager decode of LAYER records for the
// style resolver. File-fatal errors abort here
// and no catalog is produced; record-local failures are recorded to
// Diagnostics and do not abort.
func (f *File) Parse() error {
	v, err := probeVersion(f.dataBytes())
	if err != nil {
		return err
	}
	f.version = v

	if err := f.ParseSectionLocator(); err != nil {
		return err
	}
	if err := f.ParseClasses(); err != nil {
		return fmt.Errorf("parsing classes: %w", err)
	}
	if err := f.ParseObjectMap(); err != nil {
		return fmt.Errorf("parsing object map: %w", err)
	}
	if err := f.BuildObjectHeaderIndex(); err != nil {
		return fmt.Errorf("building object header index: %w", err)
	}

	if f.opts.Fast {
		return nil
	}

	f.buildLayerIndex()
	return nil
}
