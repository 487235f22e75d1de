// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package bake

import "strings"

// MainSignature is the method key the layout planner anchors at address 0
// (§3 "Layout").
const MainSignature = "main([Ljava/lang/String;)V"

// InitSignature is the synthetic no-arg constructor key, excluded from the
// layout, the method LUT, and every rewritten call target (§3 invariants).
const InitSignature = "<init>()V"

// MethodKey is a method's fully-qualified signature: its name concatenated
// with its raw descriptor (e.g. "add(II)I"). Bare names collide under
// overloading, so this is the unique identifier used throughout (§3).
type MethodKey string

// parseArgCount derives a method's argument count from its descriptor
// (…)R: the number of characters between the parens, with array marker
// characters '[' not counted (§4.4). Every character counts once, so a
// reference type such as Ljava/lang/String; adds one per character.
func parseArgCount(descriptor string) uint16 {
	open := strings.IndexByte(descriptor, '(')
	close := strings.IndexByte(descriptor, ')')
	if open < 0 || close < 0 || close < open {
		return 0
	}

	var count uint16
	for _, c := range descriptor[open+1 : close] {
		if c == '[' {
			continue
		}
		count++
	}
	return count
}

// fieldType maps a single-letter (or array-prefixed) descriptor type code
// to its pretty-printed Java type name (§4.4).
func fieldType(typeID string) string {
	switch typeID {
	case "B":
		return "byte"
	case "C":
		return "char"
	case "I":
		return "int"
	case "S":
		return "short"
	case "V":
		return "void"
	case "Z":
		return "boolean"
	case "[B":
		return "byte[]"
	case "[C":
		return "char[]"
	case "[I":
		return "int[]"
	case "[S":
		return "short[]"
	case "[Z":
		return "boolean[]"
	default:
		return typeID
	}
}

// methodString pretty-prints a MethodKey as "<return> <name>(<args>)",
// special-casing main's descriptor to "void main(String[])" — the one
// reference-type rendering this system recognizes (§4.4).
func methodString(key MethodKey) string {
	if string(key) == MainSignature {
		return "void main(String[])"
	}

	sig := string(key)
	open := strings.IndexByte(sig, '(')
	close := strings.IndexByte(sig, ')')
	if open < 0 || close < 0 || close < open || close+1 >= len(sig) {
		return sig
	}

	name := sig[:open]
	args := sig[open+1 : close]
	returnType := fieldType(sig[close+1:])

	var argList []string
	isArray := false
	for _, c := range args {
		if c == '[' {
			isArray = true
			continue
		}
		expr := string(c)
		if isArray {
			expr = "[" + expr
		}
		argList = append(argList, fieldType(expr))
		isArray = false
	}

	return returnType + " " + name + "(" + strings.Join(argList, ", ") + ")"
}
