// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package bake

// normalizeCode rewrites bytecode the device does not implement natively
// into equivalent supported sequences. The only such rewrite today is
// iinc idx, const (3 bytes) -> iload idx; bipush const; iadd; istore idx
// (7 bytes) (§4.5).
//
// Unlike the naive walker this behavior is distilled from (which decrements
// a fixed argument counter and can misalign on an operand byte that happens
// to equal the iinc opcode), this walk consults the opcode table for every
// instruction's immediate-operand width, so operand bytes are never
// reinterpreted as opcodes.
func normalizeCode(code []byte) ([]byte, error) {
	out := make([]byte, 0, len(code))

	for i := 0; i < len(code); {
		op := Opcode(code[i])

		if op == OpIInc {
			if i+2 >= len(code) {
				return nil, ErrTruncatedStream
			}
			idx := code[i+1]
			constVal := code[i+2]
			out = append(out,
				byte(OpILoad), idx,
				byte(OpBipush), constVal,
				byte(OpIAdd),
				byte(OpIStore), idx,
			)
			i += 3
			continue
		}

		width, err := operandWidth(op)
		if err != nil {
			return nil, err
		}
		if i+1+width > len(code) {
			return nil, ErrTruncatedStream
		}
		out = append(out, code[i:i+1+width]...)
		i += 1 + width
	}

	return out, nil
}
