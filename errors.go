// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package bake

import (
	"errors"

	"github.com/nyando/bake/log"
)

// Sentinel errors returned by the class-file-to-Bali-image lowering
// pipeline. Callers should use errors.Is against these, since most sites
// wrap them with fmt.Errorf("...: %w", ...) to attach an offset or name.
var (
	// ErrTruncatedStream is returned when the class file ends before a
	// length-prefixed region has been fully read, and when a Utf8 constant's
	// bytes are not valid UTF-8.
	ErrTruncatedStream = errors.New("bake: truncated class file")

	// ErrUnknownTag is returned when a constant-pool entry carries a tag
	// byte this reader does not recognize.
	ErrUnknownTag = errors.New("bake: unknown constant pool tag")

	// ErrInvalidConstIndex is returned when a constant-pool index is 0,
	// out of range, or points at the wrong entry kind for the context.
	ErrInvalidConstIndex = errors.New("bake: invalid constant pool index")

	// ErrCodeAttributeNotFound is returned when a method has no attribute
	// named "Code".
	ErrCodeAttributeNotFound = errors.New("bake: method has no Code attribute")

	// ErrMissingMain is returned when the class has no
	// main([Ljava/lang/String;)V method, so the layout has no address-0
	// anchor.
	ErrMissingMain = errors.New("bake: class has no main([Ljava/lang/String;)V method")

	// ErrUnresolvedMethodRef is returned when a MethodRef constant resolves
	// to a method key absent from the method layout.
	ErrUnresolvedMethodRef = errors.New("bake: method reference does not resolve to a laid-out method")

	// ErrNotAnInteger is returned when an ldc operand names a constant-pool
	// entry that is not an Integer constant.
	ErrNotAnInteger = errors.New("bake: ldc operand is not an Integer constant")

	// ErrAddressOverflow is returned when a method or LUT address would not
	// fit in the 16-bit address space the device LUT encodes.
	ErrAddressOverflow = errors.New("bake: image address exceeds 16-bit addressable space")

	// ErrLocalsOverflow is returned when a method's max_locals exceeds 255,
	// the single byte available for it in a method LUT entry.
	ErrLocalsOverflow = errors.New("bake: max_locals exceeds 255")

	// ErrConstSlotOverflow is returned when the number of Integer constants
	// plus the method count would not fit in the single-byte ldc slot
	// index space.
	ErrConstSlotOverflow = errors.New("bake: integer constant count overflows the single-byte LUT slot index")

	// ErrUnknownOpcode is returned when the bytecode normalizer or rewriter
	// encounters an opcode byte absent from the opcode table.
	ErrUnknownOpcode = errors.New("bake: unknown opcode")

	// ErrSerialTimeout is what the serial subcommand reports when the
	// serial transport's ErrTimeout surfaces: a handshake byte wasn't
	// acknowledged before the configured deadline.
	ErrSerialTimeout = errors.New("bake: serial handshake timed out")
)

// Options controls optional behavior of class file parsing. The zero value
// is the default: parse everything, log nothing below Error.
type Options struct {
	// Logger receives non-fatal diagnostics encountered during parsing.
	// If nil, a standard logger writing to os.Stderr at Error level is
	// used.
	Logger log.Logger
}
