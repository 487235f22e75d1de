// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

// Package serial implements the host side of the byte-at-a-time device
// upload protocol: a length prefix, one image byte at a time each
// acknowledged individually, and a final little-endian cycle-count read
// (§4.9, §6 "Serial wire protocol").
package serial

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	goserial "go.bug.st/serial"
)

// ErrTimeout is returned when a handshake byte is not acknowledged before
// the configured deadline.
var ErrTimeout = errors.New("bake/serial: handshake timed out")

// LengthMode selects how the image length prefix is framed.
type LengthMode int

const (
	// ShortLength sends the image length as a single byte; images must be
	// at most 255 bytes in this mode.
	ShortLength LengthMode = iota
	// LongLength sends the image length as two little-endian bytes, low
	// byte first, each acknowledged individually.
	LongLength
)

// Options configures a Transport's Send call.
type Options struct {
	// Length selects the length-prefix framing. Defaults to ShortLength.
	Length LengthMode
	// CycleWidth is the number of little-endian bytes the device's final
	// telemetry read consumes: 4 or 8. Defaults to 8.
	CycleWidth int
	// AckTimeout bounds how long Send waits for each handshake byte.
	// Defaults to one second.
	AckTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.CycleWidth == 0 {
		o.CycleWidth = 8
	}
	if o.AckTimeout == 0 {
		o.AckTimeout = time.Second
	}
	return o
}

// Transport is an open connection to a device over a serial port.
type Transport struct {
	port goserial.Port
}

// Open opens device at 9600 baud, 8-N-1, the fixed framing this protocol
// uses (§6).
func Open(device string) (*Transport, error) {
	mode := &goserial.Mode{
		BaudRate: 9600,
		DataBits: 8,
		Parity:   goserial.NoParity,
		StopBits: goserial.OneStopBit,
	}
	port, err := goserial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("bake/serial: opening %s: %w", device, err)
	}
	return &Transport{port: port}, nil
}

// Close releases the underlying port.
func (t *Transport) Close() error {
	return t.port.Close()
}

// Send writes a length prefix, then image to the device one byte at a time,
// each byte followed by an individually-acknowledged handshake, then reads
// back the device's cycle-count telemetry (§6, original_source/
// uart.rs::binwrite).
func (t *Transport) Send(image []byte, opts Options) (cycles uint64, err error) {
	opts = opts.withDefaults()

	if err := t.port.SetReadTimeout(opts.AckTimeout); err != nil {
		return 0, fmt.Errorf("bake/serial: setting read timeout: %w", err)
	}

	switch opts.Length {
	case ShortLength:
		if len(image) > 0xFF {
			return 0, fmt.Errorf("bake/serial: image of %d bytes exceeds short length mode's 255-byte limit", len(image))
		}
		if err := t.writeAcked(byte(len(image))); err != nil {
			return 0, fmt.Errorf("bake/serial: writing length byte: %w", err)
		}

	case LongLength:
		length := uint16(len(image))
		lo, hi := byte(length), byte(length>>8)
		if err := t.writeAcked(lo); err != nil {
			return 0, fmt.Errorf("bake/serial: writing length low byte: %w", err)
		}
		if err := t.writeAcked(hi); err != nil {
			return 0, fmt.Errorf("bake/serial: writing length high byte: %w", err)
		}

	default:
		return 0, fmt.Errorf("bake/serial: unknown length mode %d", opts.Length)
	}

	for i, b := range image {
		if err := t.writeAcked(b); err != nil {
			return 0, fmt.Errorf("bake/serial: writing image byte %d: %w", i, err)
		}
	}

	width := opts.CycleWidth
	buf := make([]byte, width)
	if err := t.readFull(buf); err != nil {
		return 0, fmt.Errorf("bake/serial: reading cycle telemetry: %w", err)
	}

	switch width {
	case 4:
		cycles = uint64(binary.LittleEndian.Uint32(buf))
	case 8:
		cycles = binary.LittleEndian.Uint64(buf)
	default:
		return 0, fmt.Errorf("bake/serial: unsupported cycle width %d", width)
	}

	return cycles, nil
}

// writeAcked writes a single byte and blocks for its one-byte
// acknowledgement, surfacing ErrTimeout if none arrives in time.
func (t *Transport) writeAcked(b byte) error {
	if _, err := t.port.Write([]byte{b}); err != nil {
		return err
	}
	ack := make([]byte, 1)
	if err := t.readFull(ack); err != nil {
		return err
	}
	return nil
}

// readFull reads exactly len(buf) bytes, looping over partial reads.
// go.bug.st/serial's Read returns zero bytes, with no error, once the
// configured read timeout elapses — so a zero-byte read (rather than a
// particular error value) is this protocol's timeout signal.
func (t *Transport) readFull(buf []byte) error {
	got := 0
	for got < len(buf) {
		n, err := t.port.Read(buf[got:])
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrTimeout
		}
		got += n
	}
	return nil
}
