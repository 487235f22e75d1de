// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package bake

import "testing"

func TestCodeblocksFindsCodeNotJustFirstAttribute(t *testing.T) {
	b := newClassBuilder()
	b.addMethodWithDecoyAttr("main", "([Ljava/lang/String;)V", 2, 2, []byte{byte(OpReturn)})

	cf, err := OpenBytes(b.build(), nil)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer cf.Close()

	blocks, err := cf.Codeblocks()
	if err != nil {
		t.Fatalf("Codeblocks: %v", err)
	}
	code, ok := blocks[MainSignature]
	if !ok {
		t.Fatalf("Codeblocks missing %s", MainSignature)
	}
	if code.MaxStack != 2 || code.MaxLocals != 2 {
		t.Errorf("code = %+v, want MaxStack=2 MaxLocals=2", code)
	}
}

func TestCodeblocksIncludesInit(t *testing.T) {
	b := newClassBuilder()
	objectNameIndex := b.addUTF8("java/lang/Object")
	objectClassIndex := b.addClass(objectNameIndex)
	initNameIndex := b.addUTF8("<init>")
	initDescIndex := b.addUTF8("()V")
	natIndex := b.addNameAndType(initNameIndex, initDescIndex)
	superInitRef := b.addMethodRef(objectClassIndex, natIndex)

	// the synthetic no-op constructor javac emits for every class without an
	// explicit one: aload_0; invokespecial Object.<init>()V; return.
	initCode := []byte{byte(OpALoad0), byte(OpInvokeSpecial)}
	initCode = appendU16(initCode, superInitRef)
	initCode = append(initCode, byte(OpReturn))

	b.addMethod("<init>", "()V", 1, 1, initCode)
	b.addMethod("main", "([Ljava/lang/String;)V", 1, 1, []byte{byte(OpReturn)})

	cf, err := OpenBytes(b.build(), nil)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer cf.Close()

	blocks, err := cf.Codeblocks()
	if err != nil {
		t.Fatalf("Codeblocks: %v", err)
	}
	if _, ok := blocks[InitSignature]; !ok {
		t.Error("Codeblocks should still include <init>()V; exclusion happens at layout time")
	}
}

func TestCodeblocksArgCount(t *testing.T) {
	b := newClassBuilder()
	b.addMethod("add", "(II)I", 2, 2, []byte{byte(OpIReturn)})
	b.addMethod("main", "([Ljava/lang/String;)V", 1, 1, []byte{byte(OpReturn)})

	cf, err := OpenBytes(b.build(), nil)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer cf.Close()

	blocks, err := cf.Codeblocks()
	if err != nil {
		t.Fatalf("Codeblocks: %v", err)
	}
	if got := blocks["add(II)I"].ArgCount; got != 2 {
		t.Errorf("ArgCount = %d, want 2", got)
	}
}

func TestCodeblocksEmptyClassHasNoMethods(t *testing.T) {
	b := newClassBuilder()
	data := b.build()

	cf, err := OpenBytes(data, nil)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer cf.Close()

	blocks, err := cf.Codeblocks()
	if err != nil {
		t.Fatalf("Codeblocks on a methodless class should not fail: %v", err)
	}
	if len(blocks) != 0 {
		t.Errorf("len(blocks) = %d, want 0", len(blocks))
	}
}
