// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nyando/bake"
	bakeserial "github.com/nyando/bake/serial"
)

func readImage(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func newSerialCmd() *cobra.Command {
	var binPath string
	var device string
	var long bool

	cmd := &cobra.Command{
		Use:   "serial",
		Short: "Transmits an assembled image to a device over serial",
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := readImage(binPath)
			if err != nil {
				return err
			}

			transport, err := bakeserial.Open(device)
			if err != nil {
				return err
			}
			defer transport.Close()

			lengthMode := bakeserial.ShortLength
			if long {
				lengthMode = bakeserial.LongLength
			}

			cycles, err := transport.Send(image, bakeserial.Options{Length: lengthMode})
			if err != nil {
				return fmt.Errorf("%s: %w", device, wrapTimeout(err))
			}

			fmt.Printf("device reported %d cycles\n", cycles)
			return nil
		},
	}

	cmd.Flags().StringVar(&binPath, "bin", "", "path to an assembled .bali.out image")
	cmd.Flags().StringVar(&device, "device", "", "serial device path")
	cmd.Flags().BoolVar(&long, "long", false, "use the 2-byte length prefix")
	cmd.MarkFlagRequired("bin")
	cmd.MarkFlagRequired("device")

	return cmd
}

func wrapTimeout(err error) error {
	if errors.Is(err, bakeserial.ErrTimeout) {
		return bake.ErrSerialTimeout
	}
	return err
}
