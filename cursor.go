// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package bake

import (
	"encoding/binary"
	"fmt"
)

// cursor is a sequential big-endian reader over a class file's raw bytes:
// every read is bounds-checked against the backing buffer and reports the
// byte offset at which it failed, rather than panicking or silently
// truncating.
type cursor struct {
	data []byte
	pos  uint32
}

func (c *cursor) bytes(n uint32) ([]byte, error) {
	end := c.pos + n
	if end < c.pos || end > uint32(len(c.data)) {
		return nil, fmt.Errorf("%w: at offset %d, wanted %d bytes", ErrTruncatedStream, c.pos, n)
	}
	b := c.data[c.pos:end]
	c.pos = end
	return b, nil
}

func (c *cursor) u8() (uint8, error) {
	b, err := c.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) u16() (uint16, error) {
	b, err := c.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// i32 reads a signed 32-bit big-endian integer (used for Integer constants).
func (c *cursor) i32() (int32, error) {
	v, err := c.u32()
	return int32(v), err
}
