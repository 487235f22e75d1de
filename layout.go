// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package bake

import (
	"fmt"
	"sort"
)

// MemLayout is the address assignment computed for one class's methods:
// main's body always starts at address 0 (§3 "Layout"), every other
// callable method follows it in deterministic order, and AddressOf resolves
// where a given method's body begins.
type MemLayout struct {
	order     []MethodKey
	addresses map[MethodKey]uint32
	total     uint32
}

// AddressOf returns the byte address a method's normalized code begins at
// within the assembled image's code region (i.e. excluding the LUT).
func (l MemLayout) AddressOf(key MethodKey) (uint32, bool) {
	addr, ok := l.addresses[key]
	return addr, ok
}

// Order returns methods in the order they were laid out, main first.
func (l MemLayout) Order() []MethodKey { return l.order }

// Size returns the total code region size in bytes.
func (l MemLayout) Size() uint32 { return l.total }

// planLayout places main([Ljava/lang/String;)V at address 0, followed by
// every other method (excluding <init>()V, which is never callable from
// device code) in ascending lexicographic MethodKey order — deterministic
// so repeated runs over the same class produce byte-identical images (§3).
func planLayout(blocks map[MethodKey]BaliCode) (MemLayout, error) {
	mainCode, ok := blocks[MainSignature]
	if !ok {
		return MemLayout{}, ErrMissingMain
	}

	var rest []MethodKey
	for key := range blocks {
		if key == MainSignature || key == InitSignature {
			continue
		}
		rest = append(rest, key)
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })

	order := append([]MethodKey{MainSignature}, rest...)
	addresses := make(map[MethodKey]uint32, len(order))

	var addr uint32
	addresses[MainSignature] = 0
	addr += uint32(len(mainCode.Code))

	for _, key := range rest {
		addresses[key] = addr
		size := uint32(len(blocks[key].Code))
		if addr+size < addr {
			return MemLayout{}, fmt.Errorf("method %s: %w", key, ErrAddressOverflow)
		}
		addr += size
	}

	return MemLayout{order: order, addresses: addresses, total: addr}, nil
}
