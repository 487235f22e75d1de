// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package bake

import (
	"fmt"
	"unicode/utf8"
)

// Constant pool tags this core recognizes or must skip past. Values match
// the JVM specification.
const (
	tagUTF8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldRef           = 9
	tagMethodRef          = 10
	tagInterfaceMethodRef = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
)

// rawConstEntry is the sum type over constant-pool entry kinds. Only the
// five kinds the core interprets carry fields the lowering pipeline reads;
// everything else is parsed for length and kept only as a tag so the
// stream advances correctly (§3 table).
type rawConstEntry interface {
	tag() uint8
}

type utf8Entry struct{ value string }
type integerEntry struct{ value int32 }
type classEntry struct{ nameIndex uint16 }
type methodRefEntry struct{ classIndex, nameAndTypeIndex uint16 }
type nameAndTypeEntry struct{ nameIndex, descriptorIndex uint16 }
type ignoredEntry struct{ rawTag uint8 }

func (utf8Entry) tag() uint8         { return tagUTF8 }
func (integerEntry) tag() uint8      { return tagInteger }
func (classEntry) tag() uint8        { return tagClass }
func (methodRefEntry) tag() uint8    { return tagMethodRef }
func (nameAndTypeEntry) tag() uint8  { return tagNameAndType }
func (e ignoredEntry) tag() uint8    { return e.rawTag }

// parseConstantPool reads constpool_count-1 entries from r into a
// 1-based, ConstPoolCount-sized slice (index 0 unused). Long and Double
// entries occupy two pool slots per the JVM spec (§9 open question 2): the
// reader advances the loop index by one extra position and leaves that
// slot nil, exactly like javac's own compiler does.
func parseConstantPool(r *cursor, count uint16) ([]rawConstEntry, error) {
	pool := make([]rawConstEntry, count)

	for i := uint16(1); i < count; i++ {
		tagByte, err := r.u8()
		if err != nil {
			return nil, fmt.Errorf("reading constant pool tag at index %d: %w", i, err)
		}

		switch tagByte {
		case tagUTF8:
			length, err := r.u16()
			if err != nil {
				return nil, fmt.Errorf("reading Utf8 length at index %d: %w", i, err)
			}
			raw, err := r.bytes(uint32(length))
			if err != nil {
				return nil, fmt.Errorf("reading Utf8 bytes at index %d: %w", i, err)
			}
			if !utf8.Valid(raw) {
				return nil, fmt.Errorf("constant pool index %d: %w: invalid modified UTF-8", i, ErrTruncatedStream)
			}
			pool[i] = utf8Entry{value: string(raw)}

		case tagInteger:
			v, err := r.i32()
			if err != nil {
				return nil, fmt.Errorf("reading Integer at index %d: %w", i, err)
			}
			pool[i] = integerEntry{value: v}

		case tagFloat:
			if _, err := r.bytes(4); err != nil {
				return nil, fmt.Errorf("reading Float at index %d: %w", i, err)
			}
			pool[i] = ignoredEntry{rawTag: tagByte}

		case tagLong:
			if _, err := r.bytes(8); err != nil {
				return nil, fmt.Errorf("reading Long at index %d: %w", i, err)
			}
			pool[i] = ignoredEntry{rawTag: tagByte}
			i++ // occupies two pool slots

		case tagDouble:
			if _, err := r.bytes(8); err != nil {
				return nil, fmt.Errorf("reading Double at index %d: %w", i, err)
			}
			pool[i] = ignoredEntry{rawTag: tagByte}
			i++ // occupies two pool slots

		case tagClass:
			nameIndex, err := r.u16()
			if err != nil {
				return nil, fmt.Errorf("reading Class at index %d: %w", i, err)
			}
			pool[i] = classEntry{nameIndex: nameIndex}

		case tagString:
			if _, err := r.bytes(2); err != nil {
				return nil, fmt.Errorf("reading String at index %d: %w", i, err)
			}
			pool[i] = ignoredEntry{rawTag: tagByte}

		case tagFieldRef, tagInterfaceMethodRef:
			if _, err := r.bytes(4); err != nil {
				return nil, fmt.Errorf("reading ref at index %d: %w", i, err)
			}
			pool[i] = ignoredEntry{rawTag: tagByte}

		case tagMethodRef:
			classIndex, err := r.u16()
			if err != nil {
				return nil, fmt.Errorf("reading MethodRef class_index at index %d: %w", i, err)
			}
			natIndex, err := r.u16()
			if err != nil {
				return nil, fmt.Errorf("reading MethodRef name_and_type_index at index %d: %w", i, err)
			}
			pool[i] = methodRefEntry{classIndex: classIndex, nameAndTypeIndex: natIndex}

		case tagNameAndType:
			nameIndex, err := r.u16()
			if err != nil {
				return nil, fmt.Errorf("reading NameAndType name_index at index %d: %w", i, err)
			}
			descIndex, err := r.u16()
			if err != nil {
				return nil, fmt.Errorf("reading NameAndType descriptor_index at index %d: %w", i, err)
			}
			pool[i] = nameAndTypeEntry{nameIndex: nameIndex, descriptorIndex: descIndex}

		case tagMethodHandle:
			if _, err := r.bytes(3); err != nil {
				return nil, fmt.Errorf("reading MethodHandle at index %d: %w", i, err)
			}
			pool[i] = ignoredEntry{rawTag: tagByte}

		case tagMethodType:
			if _, err := r.bytes(2); err != nil {
				return nil, fmt.Errorf("reading MethodType at index %d: %w", i, err)
			}
			pool[i] = ignoredEntry{rawTag: tagByte}

		case tagDynamic, tagInvokeDynamic:
			if _, err := r.bytes(4); err != nil {
				return nil, fmt.Errorf("reading Dynamic/InvokeDynamic at index %d: %w", i, err)
			}
			pool[i] = ignoredEntry{rawTag: tagByte}

		default:
			return nil, fmt.Errorf("%w: tag %d at index %d", ErrUnknownTag, tagByte, i)
		}
	}

	return pool, nil
}

// ConstPoolValue is the projected representation of a constant pool entry
// the lowering core interprets (§3 table). Implementations are one of
// UTF8Value, IntegerValue, ClassValue, MethodRefValue, NameAndTypeValue.
type ConstPoolValue interface {
	isConstPoolValue()
}

// UTF8Value is a projected CONSTANT_Utf8 entry.
type UTF8Value string

// IntegerValue is a projected CONSTANT_Integer entry.
type IntegerValue int32

// ClassValue is a projected CONSTANT_Class entry.
type ClassValue struct{ NameIndex uint16 }

// MethodRefValue is a projected CONSTANT_Methodref entry.
type MethodRefValue struct{ ClassIndex, NameAndTypeIndex uint16 }

// NameAndTypeValue is a projected CONSTANT_NameAndType entry.
type NameAndTypeValue struct{ NameIndex, DescriptorIndex uint16 }

func (UTF8Value) isConstPoolValue()         {}
func (IntegerValue) isConstPoolValue()      {}
func (ClassValue) isConstPoolValue()        {}
func (MethodRefValue) isConstPoolValue()    {}
func (NameAndTypeValue) isConstPoolValue()  {}

// ConstEntry pairs a 1-based constant pool index with its projected value.
type ConstEntry struct {
	Index uint16
	Value ConstPoolValue
}

// Constants projects the raw constant pool into the subset the core
// interprets, in ascending index order (§4.2). Long/Double/Float/String/
// FieldRef/InterfaceMethodRef/MethodHandle/MethodType/InvokeDynamic entries
// are skipped, not projected.
func (cf *ClassFile) Constants() []ConstEntry {
	entries := make([]ConstEntry, 0, len(cf.rawPool))
	for i := uint16(1); i < uint16(len(cf.rawPool)); i++ {
		switch e := cf.rawPool[i].(type) {
		case utf8Entry:
			entries = append(entries, ConstEntry{i, UTF8Value(e.value)})
		case integerEntry:
			entries = append(entries, ConstEntry{i, IntegerValue(e.value)})
		case classEntry:
			entries = append(entries, ConstEntry{i, ClassValue{NameIndex: e.nameIndex}})
		case methodRefEntry:
			entries = append(entries, ConstEntry{i, MethodRefValue{ClassIndex: e.classIndex, NameAndTypeIndex: e.nameAndTypeIndex}})
		case nameAndTypeEntry:
			entries = append(entries, ConstEntry{i, NameAndTypeValue{NameIndex: e.nameIndex, DescriptorIndex: e.descriptorIndex}})
		}
	}
	return entries
}

// utf8At resolves index as a CONSTANT_Utf8 entry.
func (cf *ClassFile) utf8At(index uint16) (string, error) {
	if index == 0 || int(index) >= len(cf.rawPool) || cf.rawPool[index] == nil {
		return "", fmt.Errorf("%w: %d", ErrInvalidConstIndex, index)
	}
	e, ok := cf.rawPool[index].(utf8Entry)
	if !ok {
		return "", fmt.Errorf("%w: %d is not Utf8", ErrInvalidConstIndex, index)
	}
	return e.value, nil
}

// classNameAt resolves index as a CONSTANT_Class entry and follows it to
// its name.
func (cf *ClassFile) classNameAt(index uint16) (string, error) {
	if index == 0 || int(index) >= len(cf.rawPool) || cf.rawPool[index] == nil {
		return "", fmt.Errorf("%w: %d", ErrInvalidConstIndex, index)
	}
	e, ok := cf.rawPool[index].(classEntry)
	if !ok {
		return "", fmt.Errorf("%w: %d is not Class", ErrInvalidConstIndex, index)
	}
	return cf.utf8At(e.nameIndex)
}

// MethodRefInfo is the two-hop resolution of a CONSTANT_Methodref entry:
// its declaring class name plus its MethodKey (name++descriptor).
type MethodRefInfo struct {
	ClassName string
	Key       MethodKey
}

// resolveMethodRef resolves a CONSTANT_Methodref entry at index into its
// declaring class name and MethodKey, following MethodRef -> NameAndType
// -> two Utf8 entries (§9 "cyclic identifier resolution": two hops, no
// graph traversal).
func (cf *ClassFile) resolveMethodRef(index uint16) (MethodRefInfo, error) {
	if index == 0 || int(index) >= len(cf.rawPool) || cf.rawPool[index] == nil {
		return MethodRefInfo{}, fmt.Errorf("%w: %d", ErrInvalidConstIndex, index)
	}
	ref, ok := cf.rawPool[index].(methodRefEntry)
	if !ok {
		return MethodRefInfo{}, fmt.Errorf("%w: %d is not MethodRef", ErrInvalidConstIndex, index)
	}

	className, err := cf.classNameAt(ref.classIndex)
	if err != nil {
		return MethodRefInfo{}, fmt.Errorf("resolving MethodRef %d class: %w", index, err)
	}

	if int(ref.nameAndTypeIndex) >= len(cf.rawPool) || cf.rawPool[ref.nameAndTypeIndex] == nil {
		return MethodRefInfo{}, fmt.Errorf("%w: %d", ErrInvalidConstIndex, ref.nameAndTypeIndex)
	}
	nat, ok := cf.rawPool[ref.nameAndTypeIndex].(nameAndTypeEntry)
	if !ok {
		return MethodRefInfo{}, fmt.Errorf("%w: %d is not NameAndType", ErrInvalidConstIndex, ref.nameAndTypeIndex)
	}

	name, err := cf.utf8At(nat.nameIndex)
	if err != nil {
		return MethodRefInfo{}, fmt.Errorf("resolving MethodRef %d name: %w", index, err)
	}
	descriptor, err := cf.utf8At(nat.descriptorIndex)
	if err != nil {
		return MethodRefInfo{}, fmt.Errorf("resolving MethodRef %d descriptor: %w", index, err)
	}

	return MethodRefInfo{ClassName: className, Key: MethodKey(name + descriptor)}, nil
}

// MethodRefMap is a bijection between constant-pool MethodRef indices and
// their resolved MethodKey (§3 "MethodRefMap").
type MethodRefMap struct {
	byIndex map[uint16]MethodKey
	byKey   map[MethodKey]uint16
}

// methodRefs builds the MethodRefMap for every MethodRef entry in the pool.
func (cf *ClassFile) methodRefs() (MethodRefMap, error) {
	m := MethodRefMap{byIndex: map[uint16]MethodKey{}, byKey: map[MethodKey]uint16{}}
	for i := uint16(1); i < uint16(len(cf.rawPool)); i++ {
		if _, ok := cf.rawPool[i].(methodRefEntry); !ok {
			continue
		}
		info, err := cf.resolveMethodRef(i)
		if err != nil {
			return MethodRefMap{}, err
		}
		m.byIndex[i] = info.Key
		m.byKey[info.Key] = i
	}
	return m, nil
}

// KeyOf returns the MethodKey a MethodRef pool index resolves to.
func (m MethodRefMap) KeyOf(index uint16) (MethodKey, bool) {
	k, ok := m.byIndex[index]
	return k, ok
}
