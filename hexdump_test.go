// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package bake

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteHexDumpFormat(t *testing.T) {
	data := []byte("Hello, Bali!")
	var buf bytes.Buffer
	if err := WriteHexDump(&buf, data); err != nil {
		t.Fatalf("WriteHexDump: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "00000000  ") {
		t.Errorf("missing offset prefix: %q", out)
	}
	if !strings.Contains(out, "|Hello, Bali!|") {
		t.Errorf("missing ASCII column: %q", out)
	}
}

func TestWriteHexDumpMultiRow(t *testing.T) {
	data := make([]byte, 20)
	for i := range data {
		data[i] = byte(i)
	}
	var buf bytes.Buffer
	if err := WriteHexDump(&buf, data); err != nil {
		t.Fatalf("WriteHexDump: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[1], "00000010  ") {
		t.Errorf("second row offset = %q, want prefix 00000010", lines[1])
	}
}
