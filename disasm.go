// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package bake

import (
	"encoding/binary"
	"fmt"
	"io"
)

// PrintMethod writes a disassembly listing for the method named by key: a
// two-line header giving its frame requirements, then one line per
// instruction giving its address, mnemonic, and operand — invokestatic
// resolves its operand to the target's signature rather than printing the
// raw constant pool index (§4.9, Supplemented Feature 2).
func (cf *ClassFile) PrintMethod(w io.Writer, key MethodKey) error {
	blocks, err := cf.Codeblocks()
	if err != nil {
		return err
	}
	code, ok := blocks[key]
	if !ok {
		return fmt.Errorf("method %s: %w", key, ErrCodeAttributeNotFound)
	}

	refs, err := cf.methodRefs()
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "stack size: %d\n", code.MaxStack); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "local variable array size: %d\n", code.MaxLocals); err != nil {
		return err
	}

	for i := 0; i < len(code.Code); {
		op := Opcode(code.Code[i])
		width, err := operandWidth(op)
		if err != nil {
			return err
		}

		line, err := formatInstruction(uint32(i), op, code.Code[i+1:i+1+width], refs)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}

		i += 1 + width
	}

	return nil
}

func formatInstruction(addr uint32, op Opcode, operand []byte, refs MethodRefMap) (string, error) {
	switch len(operand) {
	case 0:
		return fmt.Sprintf("%4d: %s", addr, op.mnemonic()), nil

	case 1:
		return fmt.Sprintf("%4d: %-14s %#02x", addr, op.mnemonic(), operand[0]), nil

	case 2:
		poolIndex := binary.BigEndian.Uint16(operand)
		if op == OpInvokeStatic {
			if key, ok := refs.KeyOf(poolIndex); ok {
				return fmt.Sprintf("%4d: %-14s %s", addr, op.mnemonic(), methodString(key)), nil
			}
		}
		return fmt.Sprintf("%4d: %-14s %#04x", addr, op.mnemonic(), poolIndex), nil

	default:
		return fmt.Sprintf("%4d: %s", addr, op.mnemonic()), nil
	}
}
