// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package bake

import (
	"encoding/binary"
	"fmt"
)

// Image is a fully assembled device image: the LUT followed by every
// method's rewritten bytecode, concatenated in layout order (§3 "Image").
type Image struct {
	Bytes  []byte
	Layout MemLayout
	LUT    LUT
}

// Link runs the project -> extract -> layout -> LUT -> rewrite -> assemble
// stages of the pipeline (§2) over an already-parsed class file and returns
// the finished image.
func Link(cf *ClassFile) (Image, error) {
	blocks, err := cf.Codeblocks()
	if err != nil {
		return Image{}, err
	}

	layout, err := planLayout(blocks)
	if err != nil {
		return Image{}, err
	}

	consts := cf.Constants()

	lut, err := buildLUT(blocks, layout, consts)
	if err != nil {
		return Image{}, err
	}

	refs, err := cf.methodRefs()
	if err != nil {
		return Image{}, err
	}

	var body []byte
	for _, key := range layout.Order() {
		rewritten, err := rewriteCode(blocks[key].Code, key, refs, lut)
		if err != nil {
			return Image{}, fmt.Errorf("method %s: %w", key, err)
		}
		body = append(body, rewritten...)
	}

	image := make([]byte, 0, len(lut.Bytes)+len(body))
	image = append(image, lut.Bytes...)
	image = append(image, body...)

	return Image{Bytes: image, Layout: layout, LUT: lut}, nil
}

// rewriteCode rewrites a method's invokestatic and ldc operands from
// constant-pool indices to LUT slot indices, and, in main, turns every
// return into the device halt byte (§4.8).
func rewriteCode(code []byte, key MethodKey, refs MethodRefMap, lut LUT) ([]byte, error) {
	out := make([]byte, len(code))
	copy(out, code)

	for i := 0; i < len(out); {
		op := Opcode(out[i])
		width, err := operandWidth(op)
		if err != nil {
			return nil, err
		}

		switch op {
		case OpInvokeStatic:
			poolIndex := binary.BigEndian.Uint16(out[i+1 : i+3])
			target, ok := refs.KeyOf(poolIndex)
			if !ok {
				return nil, fmt.Errorf("invokestatic at %d, constant %d: %w", i, poolIndex, ErrUnresolvedMethodRef)
			}
			if target == InitSignature {
				return nil, fmt.Errorf("invokestatic at %d targets %s: %w", i, InitSignature, ErrUnresolvedMethodRef)
			}
			slot, ok := lut.MethodIndex[target]
			if !ok {
				return nil, fmt.Errorf("invokestatic at %d, method %s: %w", i, target, ErrUnresolvedMethodRef)
			}
			binary.BigEndian.PutUint16(out[i+1:i+3], uint16(slot))

		case OpLdc:
			poolIndex := uint16(out[i+1])
			slot, ok := lut.ConstIndex[poolIndex]
			if !ok {
				return nil, fmt.Errorf("ldc at %d, constant %d: %w", i, poolIndex, ErrNotAnInteger)
			}
			out[i+1] = slot

		case OpReturn:
			if key == MainSignature {
				out[i] = byte(OpHalt)
			}
		}

		i += 1 + width
	}

	return out, nil
}
