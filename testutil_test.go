// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package bake

import "encoding/binary"

// classBuilder assembles a class file byte slice by hand, the way a
// from-scratch class file parser's tests build their own fixtures in the
// absence of any on-disk .class files to draw from. It tracks constant
// pool entries as they are added so tests can refer back to their index.
type classBuilder struct {
	pool    [][]byte
	methods []builtMethod
}

type builtMethod struct {
	nameIndex, descIndex uint16
	maxStack, maxLocals  uint16
	code                 []byte
	leadingDecoyAttr     bool
}

func newClassBuilder() *classBuilder {
	return &classBuilder{pool: [][]byte{nil}} // index 0 is unused
}

func (b *classBuilder) addUTF8(s string) uint16 {
	entry := make([]byte, 0, 3+len(s))
	entry = append(entry, tagUTF8)
	entry = appendU16(entry, uint16(len(s)))
	entry = append(entry, s...)
	b.pool = append(b.pool, entry)
	return uint16(len(b.pool) - 1)
}

func (b *classBuilder) addInteger(v int32) uint16 {
	entry := make([]byte, 0, 5)
	entry = append(entry, tagInteger)
	entry = appendU32(entry, uint32(v))
	b.pool = append(b.pool, entry)
	return uint16(len(b.pool) - 1)
}

func (b *classBuilder) addClass(nameIndex uint16) uint16 {
	entry := []byte{tagClass}
	entry = appendU16(entry, nameIndex)
	b.pool = append(b.pool, entry)
	return uint16(len(b.pool) - 1)
}

func (b *classBuilder) addNameAndType(nameIndex, descIndex uint16) uint16 {
	entry := []byte{tagNameAndType}
	entry = appendU16(entry, nameIndex)
	entry = appendU16(entry, descIndex)
	b.pool = append(b.pool, entry)
	return uint16(len(b.pool) - 1)
}

func (b *classBuilder) addMethodRef(classIndex, natIndex uint16) uint16 {
	entry := []byte{tagMethodRef}
	entry = appendU16(entry, classIndex)
	entry = appendU16(entry, natIndex)
	b.pool = append(b.pool, entry)
	return uint16(len(b.pool) - 1)
}

// addMethod registers a method whose name and descriptor are interned as
// UTF8 constants, with the given Code attribute body.
func (b *classBuilder) addMethod(name, descriptor string, maxStack, maxLocals uint16, code []byte) {
	b.methods = append(b.methods, builtMethod{
		nameIndex: b.addUTF8(name),
		descIndex: b.addUTF8(descriptor),
		maxStack:  maxStack,
		maxLocals: maxLocals,
		code:      code,
	})
}

// addMethodWithDecoyAttr is like addMethod but emits an unrelated attribute
// before the Code attribute, exercising the extractor's requirement to scan
// every attribute rather than assume Code is first.
func (b *classBuilder) addMethodWithDecoyAttr(name, descriptor string, maxStack, maxLocals uint16, code []byte) {
	b.methods = append(b.methods, builtMethod{
		nameIndex:        b.addUTF8(name),
		descIndex:        b.addUTF8(descriptor),
		maxStack:         maxStack,
		maxLocals:        maxLocals,
		code:             code,
		leadingDecoyAttr: true,
	})
}

// build assembles the full class file byte stream.
func (b *classBuilder) build() []byte {
	codeNameIndex := b.addUTF8("Code")
	decoyNameIndex := b.addUTF8("Deprecated")
	thisNameIndex := b.addUTF8("Test")
	thisClassIndex := b.addClass(thisNameIndex)

	var out []byte
	out = appendU32(out, ClassMagic)
	out = appendU16(out, 0)  // minor_version
	out = appendU16(out, 61) // major_version

	out = appendU16(out, uint16(len(b.pool))) // constant_pool_count
	for i := 1; i < len(b.pool); i++ {
		out = append(out, b.pool[i]...)
	}

	out = appendU16(out, 0x0021)       // access_flags: ACC_PUBLIC | ACC_SUPER
	out = appendU16(out, thisClassIndex) // this_class
	out = appendU16(out, 0)              // super_class
	out = appendU16(out, 0)              // interfaces_count

	out = appendU16(out, 0) // fields_count

	out = appendU16(out, uint16(len(b.methods))) // methods_count
	for _, m := range b.methods {
		out = appendU16(out, 0x0009) // access_flags: ACC_PUBLIC | ACC_STATIC
		out = appendU16(out, m.nameIndex)
		out = appendU16(out, m.descIndex)

		attrCount := uint16(1)
		if m.leadingDecoyAttr {
			attrCount = 2
		}
		out = appendU16(out, attrCount)

		if m.leadingDecoyAttr {
			out = appendU16(out, decoyNameIndex)
			out = appendU32(out, 0) // zero-length attribute body
		}

		var codeAttr []byte
		codeAttr = appendU16(codeAttr, m.maxStack)
		codeAttr = appendU16(codeAttr, m.maxLocals)
		codeAttr = appendU32(codeAttr, uint32(len(m.code)))
		codeAttr = append(codeAttr, m.code...)
		codeAttr = appendU16(codeAttr, 0) // exception_table_length
		codeAttr = appendU16(codeAttr, 0) // attributes_count

		out = appendU16(out, codeNameIndex)
		out = appendU32(out, uint32(len(codeAttr)))
		out = append(out, codeAttr...)
	}

	out = appendU16(out, 0) // class attributes_count

	return out
}

func appendU16(b []byte, v uint16) []byte {
	var tmp [2]byte
	binary.BigEndian.PutUint16(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendU32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

// minimalClassBytes builds a one-method class whose sole method is a
// trivial main([Ljava/lang/String;)V that returns immediately — the
// smallest input the lowering pipeline accepts.
func minimalClassBytes() []byte {
	b := newClassBuilder()
	b.addMethod(
		"main", "([Ljava/lang/String;)V",
		1, 1,
		[]byte{byte(OpReturn)},
	)
	return b.build()
}
