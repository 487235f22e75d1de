// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package bake

import "testing"

func TestPlanLayoutMissingMain(t *testing.T) {
	blocks := map[MethodKey]BaliCode{
		"helper()V": {Code: []byte{byte(OpReturn)}},
	}
	if _, err := planLayout(blocks); err == nil {
		t.Fatal("want error when main is absent")
	}
}

func TestPlanLayoutMainAtZero(t *testing.T) {
	blocks := map[MethodKey]BaliCode{
		MainSignature: {Code: []byte{byte(OpIConst0), byte(OpReturn)}},
		"add(II)I":    {Code: []byte{byte(OpIReturn)}},
	}
	layout, err := planLayout(blocks)
	if err != nil {
		t.Fatalf("planLayout: %v", err)
	}
	addr, ok := layout.AddressOf(MainSignature)
	if !ok || addr != 0 {
		t.Errorf("AddressOf(main) = (%d, %v), want (0, true)", addr, ok)
	}
}

func TestPlanLayoutExcludesInit(t *testing.T) {
	blocks := map[MethodKey]BaliCode{
		MainSignature: {Code: []byte{byte(OpReturn)}},
		InitSignature: {Code: []byte{byte(OpReturn)}},
		"helper()V":   {Code: []byte{byte(OpReturn)}},
	}
	layout, err := planLayout(blocks)
	if err != nil {
		t.Fatalf("planLayout: %v", err)
	}
	for _, key := range layout.Order() {
		if key == InitSignature {
			t.Errorf("layout includes %s", InitSignature)
		}
	}
	if len(layout.Order()) != 2 {
		t.Errorf("len(Order()) = %d, want 2", len(layout.Order()))
	}
}

func TestPlanLayoutSizeIsSumOfCodeLengths(t *testing.T) {
	blocks := map[MethodKey]BaliCode{
		MainSignature: {Code: make([]byte, 3)},
		"a()V":        {Code: make([]byte, 5)},
		"b()V":        {Code: make([]byte, 2)},
	}
	layout, err := planLayout(blocks)
	if err != nil {
		t.Fatalf("planLayout: %v", err)
	}
	if layout.Size() != 10 {
		t.Errorf("Size() = %d, want 10", layout.Size())
	}
}

func TestPlanLayoutDeterministicOrder(t *testing.T) {
	blocks := map[MethodKey]BaliCode{
		MainSignature: {Code: []byte{byte(OpReturn)}},
		"zeta()V":     {Code: []byte{byte(OpReturn)}},
		"alpha()V":    {Code: []byte{byte(OpReturn)}},
	}
	layout, err := planLayout(blocks)
	if err != nil {
		t.Fatalf("planLayout: %v", err)
	}
	order := layout.Order()
	if order[0] != MainSignature || order[1] != "alpha()V" || order[2] != "zeta()V" {
		t.Errorf("Order() = %v, want [main, alpha()V, zeta()V]", order)
	}
}
