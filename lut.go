// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package bake

import (
	"encoding/binary"
	"fmt"
)

// lutEntrySize is the fixed width of every LUT descriptor, method or
// integer alike (§3 "LUT"): [addr_hi, addr_lo, argcount, max_locals] for a
// method, or a big-endian int32 for an integer constant.
const lutEntrySize = 4

// maxLUTSlots is the total number of descriptors the LUT can hold: ldc's
// rewritten operand is a single byte, so method slots plus integer slots
// together can never exceed 256 (§9 open question 4).
const maxLUTSlots = 256

// ConstIndexMap maps a constant pool index carrying an Integer value to the
// global LUT slot its descriptor was placed at.
type ConstIndexMap map[uint16]uint8

// LUT is the assembled lookup table plus the indices needed to rewrite
// invokestatic and ldc operands against it (§3, §4.6, §4.7).
type LUT struct {
	Bytes       []byte
	MethodIndex map[MethodKey]uint8
	ConstIndex  ConstIndexMap
}

// buildLUT lays out the method descriptors (main first, then layout's
// deterministic order) followed by the integer constant descriptors, in
// ascending constant-pool index order. main's argcount is always encoded as
// 0: the device never receives call arguments for the entry method (§4.6).
func buildLUT(blocks map[MethodKey]BaliCode, layout MemLayout, consts []ConstEntry) (LUT, error) {
	methodOrder := layout.Order()

	if len(methodOrder) > maxLUTSlots {
		return LUT{}, fmt.Errorf("%d methods: %w", len(methodOrder), ErrConstSlotOverflow)
	}

	var integerIndices []uint16
	integerValues := map[uint16]int32{}
	for _, c := range consts {
		if v, ok := c.Value.(IntegerValue); ok {
			integerIndices = append(integerIndices, c.Index)
			integerValues[c.Index] = int32(v)
		}
	}

	if len(methodOrder)+len(integerIndices) > maxLUTSlots {
		return LUT{}, fmt.Errorf("%d methods + %d integer constants: %w",
			len(methodOrder), len(integerIndices), ErrConstSlotOverflow)
	}

	totalSlots := len(methodOrder) + len(integerIndices)
	lutSize := uint32(totalSlots * lutEntrySize)
	lutBytes := make([]byte, lutSize)
	methodIndex := make(map[MethodKey]uint8, len(methodOrder))

	for slot, key := range methodOrder {
		code := blocks[key]
		codeOffset, ok := layout.AddressOf(key)
		if !ok {
			return LUT{}, fmt.Errorf("method %s has no assigned address", key)
		}
		// addr is absolute from the start of the assembled image: the LUT
		// region precedes the code region (§6 "Method LUT entry").
		addr := lutSize + codeOffset
		if addr > 0xFFFF {
			return LUT{}, fmt.Errorf("method %s at address %d: %w", key, addr, ErrAddressOverflow)
		}
		if code.MaxLocals > 0xFF {
			return LUT{}, fmt.Errorf("method %s: %w", key, ErrLocalsOverflow)
		}

		argCount := code.ArgCount
		if key == MainSignature {
			argCount = 0
		}
		if argCount > 0xFF {
			return LUT{}, fmt.Errorf("method %s: argcount %d exceeds a byte", key, argCount)
		}

		off := slot * lutEntrySize
		binary.BigEndian.PutUint16(lutBytes[off:off+2], uint16(addr))
		lutBytes[off+2] = byte(argCount)
		lutBytes[off+3] = byte(code.MaxLocals)

		methodIndex[key] = uint8(slot)
	}

	constIndex := make(ConstIndexMap, len(integerIndices))
	for i, poolIndex := range integerIndices {
		slot := len(methodOrder) + i

		off := slot * lutEntrySize
		binary.BigEndian.PutUint32(lutBytes[off:off+4], uint32(integerValues[poolIndex]))
		constIndex[poolIndex] = uint8(slot)
	}

	return LUT{Bytes: lutBytes, MethodIndex: methodIndex, ConstIndex: constIndex}, nil
}
