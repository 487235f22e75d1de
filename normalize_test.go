// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package bake

import (
	"bytes"
	"testing"
)

func TestNormalizeCodeRewritesIInc(t *testing.T) {
	in := []byte{byte(OpIInc), 1, 3, byte(OpReturn)}
	want := []byte{
		byte(OpILoad), 1,
		byte(OpBipush), 3,
		byte(OpIAdd),
		byte(OpIStore), 1,
		byte(OpReturn),
	}

	got, err := normalizeCode(in)
	if err != nil {
		t.Fatalf("normalizeCode: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("normalizeCode(%v) = %v, want %v", in, got, want)
	}
}

func TestNormalizeCodeLengthPreservingWithoutIInc(t *testing.T) {
	in := []byte{byte(OpIConst1), byte(OpIConst2), byte(OpIAdd), byte(OpReturn)}
	got, err := normalizeCode(in)
	if err != nil {
		t.Fatalf("normalizeCode: %v", err)
	}
	if len(got) != len(in) {
		t.Errorf("len(got) = %d, want %d", len(got), len(in))
	}
	if !bytes.Equal(got, in) {
		t.Errorf("normalizeCode(%v) = %v, want identical", in, got)
	}
}

func TestNormalizeCodeGrowsByFourPerIInc(t *testing.T) {
	in := []byte{
		byte(OpIInc), 0, 1,
		byte(OpIInc), 1, 2,
		byte(OpReturn),
	}
	got, err := normalizeCode(in)
	if err != nil {
		t.Fatalf("normalizeCode: %v", err)
	}
	if len(got) != len(in)+4*2 {
		t.Errorf("len(got) = %d, want %d", len(got), len(in)+8)
	}
}

func TestNormalizeCodeDoesNotMisalignOnOperandByteMatchingIInc(t *testing.T) {
	// bipush's operand byte is chosen to equal OpIInc's opcode value; a
	// naive fixed-countdown walker would misinterpret it as a new
	// instruction and desync. This walker must not.
	in := []byte{byte(OpBipush), byte(OpIInc), byte(OpReturn)}
	got, err := normalizeCode(in)
	if err != nil {
		t.Fatalf("normalizeCode: %v", err)
	}
	want := []byte{byte(OpBipush), byte(OpIInc), byte(OpReturn)}
	if !bytes.Equal(got, want) {
		t.Errorf("normalizeCode(%v) = %v, want %v", in, got, want)
	}
}

func TestNormalizeCodeUnknownOpcode(t *testing.T) {
	if _, err := normalizeCode([]byte{0xCB}); err == nil {
		t.Fatal("want error for unknown opcode")
	}
}

func TestNormalizeCodeTruncatedOperand(t *testing.T) {
	if _, err := normalizeCode([]byte{byte(OpSipush), 0x01}); err == nil {
		t.Fatal("want error for truncated operand")
	}
}
