// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package bake

import "fmt"

// BaliCode is one method's lowered body: its frame requirements plus
// bytecode already rewritten by normalizeCode (§4.3).
type BaliCode struct {
	MaxStack  uint16
	MaxLocals uint16
	ArgCount  uint16
	Code      []byte
}

// exceptionTableEntry mirrors the Code attribute's exception table row. The
// core never interprets it — exception handling is out of scope (§1
// Non-goals) — but it must be parsed and skipped to keep the attribute
// cursor aligned.
type exceptionTableEntry struct {
	StartPC, EndPC, HandlerPC, CatchType uint16
}

// Codeblocks extracts every method's Code attribute and returns it keyed by
// MethodKey (name++descriptor). Unlike the walker this behavior is distilled
// from, which assumed a method's Code attribute is always attributes[0],
// this scans every attribute of every method for one named "Code" (§9 open
// question 1) and fails with ErrCodeAttributeNotFound if none is present.
//
// <init>()V is included in the returned map like any other method; it is
// the layout planner's job (not this one's) to exclude it from placement.
func (cf *ClassFile) Codeblocks() (map[MethodKey]BaliCode, error) {
	blocks := make(map[MethodKey]BaliCode, len(cf.Methods))

	for _, m := range cf.Methods {
		name, err := cf.utf8At(m.NameIndex)
		if err != nil {
			return nil, fmt.Errorf("method name: %w", err)
		}
		descriptor, err := cf.utf8At(m.DescriptorIndex)
		if err != nil {
			return nil, fmt.Errorf("method %s descriptor: %w", name, err)
		}
		key := MethodKey(name + descriptor)

		var codeAttr *attributeInfo
		for i := range m.Attributes {
			attrName, err := cf.utf8At(m.Attributes[i].NameIndex)
			if err != nil {
				return nil, fmt.Errorf("method %s attribute name: %w", key, err)
			}
			if attrName == "Code" {
				codeAttr = &m.Attributes[i]
				break
			}
		}
		if codeAttr == nil {
			return nil, fmt.Errorf("method %s: %w", key, ErrCodeAttributeNotFound)
		}

		raw, exceptionTable, err := parseCodeAttribute(codeAttr.Info)
		if err != nil {
			return nil, fmt.Errorf("method %s Code attribute: %w", key, err)
		}
		_ = exceptionTable // parsed for alignment only; never interpreted

		normalized, err := normalizeCode(raw.code)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", key, err)
		}

		blocks[key] = BaliCode{
			MaxStack:  raw.maxStack,
			MaxLocals: raw.maxLocals,
			ArgCount:  parseArgCount(descriptor),
			Code:      normalized,
		}
	}

	return blocks, nil
}

// rawCode is the unnormalized Code attribute body.
type rawCode struct {
	maxStack  uint16
	maxLocals uint16
	code      []byte
}

// parseCodeAttribute parses a Code attribute's info bytes: max_stack,
// max_locals, a length-prefixed code array, the exception table (skipped),
// and nested attributes (skipped) — §4.3 of the class file format.
func parseCodeAttribute(info []byte) (rawCode, []exceptionTableEntry, error) {
	r := &cursor{data: info}

	maxStack, err := r.u16()
	if err != nil {
		return rawCode{}, nil, fmt.Errorf("max_stack: %w", err)
	}
	maxLocals, err := r.u16()
	if err != nil {
		return rawCode{}, nil, fmt.Errorf("max_locals: %w", err)
	}
	codeLength, err := r.u32()
	if err != nil {
		return rawCode{}, nil, fmt.Errorf("code_length: %w", err)
	}
	code, err := r.bytes(codeLength)
	if err != nil {
		return rawCode{}, nil, fmt.Errorf("code: %w", err)
	}

	excCount, err := r.u16()
	if err != nil {
		return rawCode{}, nil, fmt.Errorf("exception_table_length: %w", err)
	}
	exceptionTable := make([]exceptionTableEntry, excCount)
	for i := range exceptionTable {
		if exceptionTable[i].StartPC, err = r.u16(); err != nil {
			return rawCode{}, nil, fmt.Errorf("exception_table[%d].start_pc: %w", i, err)
		}
		if exceptionTable[i].EndPC, err = r.u16(); err != nil {
			return rawCode{}, nil, fmt.Errorf("exception_table[%d].end_pc: %w", i, err)
		}
		if exceptionTable[i].HandlerPC, err = r.u16(); err != nil {
			return rawCode{}, nil, fmt.Errorf("exception_table[%d].handler_pc: %w", i, err)
		}
		if exceptionTable[i].CatchType, err = r.u16(); err != nil {
			return rawCode{}, nil, fmt.Errorf("exception_table[%d].catch_type: %w", i, err)
		}
	}

	if _, err := parseAttributes(r); err != nil {
		return rawCode{}, nil, fmt.Errorf("nested attributes: %w", err)
	}

	return rawCode{maxStack: maxStack, maxLocals: maxLocals, code: code}, exceptionTable, nil
}
