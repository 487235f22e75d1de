// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package bake

import (
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/nyando/bake/log"
)

// ClassMagic is the four-byte signature every class file begins with. The
// core reads it but does not fail parsing if it mismatches — only the
// surrounding structure matters to the lowering pipeline.
const ClassMagic = 0xCAFEBABE

// ClassFile is the parsed structural form of a JVM class file: a constant
// pool, the method table, and their supporting attribute lists. It is built
// once by Open/OpenBytes and is treated as immutable by every downstream
// pass (Constants, Codeblocks, planLayout, buildLUT, Link).
type ClassFile struct {
	Magic        uint32
	MinorVersion uint16
	MajorVersion uint16

	// ConstPoolCount is constpool_count from the file; the raw pool has
	// ConstPoolCount-1 entries, but Long/Double entries occupy two slots
	// each (see rawPool's construction in parseConstantPool).
	ConstPoolCount uint16
	rawPool        []rawConstEntry

	AccessFlags uint16
	ThisClass   uint16
	SuperClass  uint16

	Interfaces []uint16
	Fields     []memberInfo
	Methods    []memberInfo
	Attributes []attributeInfo

	data   []byte
	mapped mmap.MMap
	f      *os.File
	opts   *Options
	logger *log.Helper
}

// memberInfo mirrors the JVM field_info/method_info layout: they share the
// exact same shape (access flags, name/descriptor indices, attributes).
type memberInfo struct {
	AccessFlags     uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []attributeInfo
}

// attributeInfo is the generic, unparsed container every class/field/
// method/Code attribute arrives in; attribute_name_index names it and info
// is parsed on demand by whichever pass understands that name (only "Code"
// is ever interpreted by this core).
type attributeInfo struct {
	NameIndex uint16
	Info      []byte
}

// Open memory-maps path and parses it into a ClassFile.
func Open(path string, opts *Options) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening class file %q: %w", path, err)
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mapping class file %q: %w", path, err)
	}

	cf, err := parse(data, opts)
	if err != nil {
		data.Unmap()
		f.Close()
		return nil, err
	}
	cf.mapped = data
	cf.f = f
	return cf, nil
}

// OpenBytes parses a class file already resident in memory. Used by tests
// and the fuzzer, where there is no backing file to map.
func OpenBytes(data []byte, opts *Options) (*ClassFile, error) {
	return parse(data, opts)
}

// Close releases the backing mmap and file handle, if any. Safe to call on
// a ClassFile built by OpenBytes.
func (cf *ClassFile) Close() error {
	if cf.mapped != nil {
		if err := cf.mapped.Unmap(); err != nil {
			return err
		}
	}
	if cf.f != nil {
		return cf.f.Close()
	}
	return nil
}

func parse(data []byte, opts *Options) (*ClassFile, error) {
	cf := &ClassFile{data: data, opts: opts}
	if cf.opts == nil {
		cf.opts = &Options{}
	}

	var logger log.Logger
	if cf.opts.Logger == nil {
		logger = log.NewStdLogger(os.Stderr)
		cf.logger = log.NewHelper(log.NewFilter(logger, log.FilterLevel(log.LevelError)))
	} else {
		cf.logger = log.NewHelper(cf.opts.Logger)
	}

	r := &cursor{data: data}

	magic, err := r.u32()
	if err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	cf.Magic = magic
	if cf.Magic != ClassMagic {
		cf.logger.Warnf("magic %#08x does not match expected CAFEBABE", cf.Magic)
	}

	if cf.MinorVersion, err = r.u16(); err != nil {
		return nil, fmt.Errorf("reading minor_version: %w", err)
	}
	if cf.MajorVersion, err = r.u16(); err != nil {
		return nil, fmt.Errorf("reading major_version: %w", err)
	}
	if cf.ConstPoolCount, err = r.u16(); err != nil {
		return nil, fmt.Errorf("reading constant_pool_count: %w", err)
	}

	cf.rawPool, err = parseConstantPool(r, cf.ConstPoolCount)
	if err != nil {
		return nil, err
	}

	if cf.AccessFlags, err = r.u16(); err != nil {
		return nil, fmt.Errorf("reading access_flags: %w", err)
	}
	if cf.ThisClass, err = r.u16(); err != nil {
		return nil, fmt.Errorf("reading this_class: %w", err)
	}
	if cf.SuperClass, err = r.u16(); err != nil {
		return nil, fmt.Errorf("reading super_class: %w", err)
	}

	ifaceCount, err := r.u16()
	if err != nil {
		return nil, fmt.Errorf("reading interfaces_count: %w", err)
	}
	cf.Interfaces = make([]uint16, ifaceCount)
	for i := range cf.Interfaces {
		if cf.Interfaces[i], err = r.u16(); err != nil {
			return nil, fmt.Errorf("reading interface %d: %w", i, err)
		}
	}

	if cf.Fields, err = parseMembers(r); err != nil {
		return nil, fmt.Errorf("reading fields: %w", err)
	}
	if cf.Methods, err = parseMembers(r); err != nil {
		return nil, fmt.Errorf("reading methods: %w", err)
	}
	if cf.Attributes, err = parseAttributes(r); err != nil {
		return nil, fmt.Errorf("reading class attributes: %w", err)
	}

	return cf, nil
}

// parseMembers reads a count-prefixed vector of field_info/method_info
// entries; the two have an identical on-disk shape in the class file
// format.
func parseMembers(r *cursor) ([]memberInfo, error) {
	count, err := r.u16()
	if err != nil {
		return nil, err
	}
	members := make([]memberInfo, count)
	for i := range members {
		if members[i].AccessFlags, err = r.u16(); err != nil {
			return nil, fmt.Errorf("member %d access_flags: %w", i, err)
		}
		if members[i].NameIndex, err = r.u16(); err != nil {
			return nil, fmt.Errorf("member %d name_index: %w", i, err)
		}
		if members[i].DescriptorIndex, err = r.u16(); err != nil {
			return nil, fmt.Errorf("member %d descriptor_index: %w", i, err)
		}
		if members[i].Attributes, err = parseAttributes(r); err != nil {
			return nil, fmt.Errorf("member %d attributes: %w", i, err)
		}
	}
	return members, nil
}

// parseAttributes reads a count-prefixed vector of generic attribute_info
// entries.
func parseAttributes(r *cursor) ([]attributeInfo, error) {
	count, err := r.u16()
	if err != nil {
		return nil, err
	}
	attrs := make([]attributeInfo, count)
	for i := range attrs {
		if attrs[i].NameIndex, err = r.u16(); err != nil {
			return nil, fmt.Errorf("attribute %d name_index: %w", i, err)
		}
		length, err := r.u32()
		if err != nil {
			return nil, fmt.Errorf("attribute %d attribute_length: %w", i, err)
		}
		if attrs[i].Info, err = r.bytes(length); err != nil {
			return nil, fmt.Errorf("attribute %d info: %w", i, err)
		}
	}
	return attrs, nil
}
