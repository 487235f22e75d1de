// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package bake

import (
	"fmt"
	"io"
)

// WriteHexDump writes data to w in the canonical 16-bytes-per-row
// offset/hex/ASCII format, a minimal stand-in for the terminal-formatting
// tool the original shells out to (§4.9, Supplemented Feature 4).
func WriteHexDump(w io.Writer, data []byte) error {
	for offset := 0; offset < len(data); offset += 16 {
		end := offset + 16
		if end > len(data) {
			end = len(data)
		}
		row := data[offset:end]

		if _, err := fmt.Fprintf(w, "%08x  ", offset); err != nil {
			return err
		}
		for i := 0; i < 16; i++ {
			if i < len(row) {
				if _, err := fmt.Fprintf(w, "%02x ", row[i]); err != nil {
					return err
				}
			} else {
				if _, err := io.WriteString(w, "   "); err != nil {
					return err
				}
			}
			if i == 7 {
				if _, err := io.WriteString(w, " "); err != nil {
					return err
				}
			}
		}

		if _, err := io.WriteString(w, " |"); err != nil {
			return err
		}
		for _, b := range row {
			if b >= 0x20 && b < 0x7f {
				if _, err := w.Write([]byte{b}); err != nil {
					return err
				}
			} else {
				if _, err := io.WriteString(w, "."); err != nil {
					return err
				}
			}
		}
		if _, err := io.WriteString(w, "|\n"); err != nil {
			return err
		}
	}
	return nil
}
