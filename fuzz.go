// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package bake

// Fuzz is the classic go-fuzz entry point, kept alongside the native
// testing.F harness in fuzz_test.go: it parses data as a class file and, on
// success, runs it through the full lowering pipeline. Returning 1 tells a
// corpus-driven fuzzer the input was interesting enough to keep.
func Fuzz(data []byte) int {
	cf, err := OpenBytes(data, nil)
	if err != nil {
		return 0
	}
	defer cf.Close()

	if _, err := Link(cf); err != nil {
		return 0
	}
	return 1
}
