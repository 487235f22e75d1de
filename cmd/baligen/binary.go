// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nyando/bake"
)

func newBinaryCmd() *cobra.Command {
	var classfile string
	var output bool

	cmd := &cobra.Command{
		Use:   "binary",
		Short: "Lowers the class file into a device image and writes <path>.bali.out",
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := bake.Open(classfile, &bake.Options{Logger: newLogger()})
			if err != nil {
				return fmt.Errorf("opening %s: %w", classfile, err)
			}
			defer cf.Close()

			image, err := bake.Link(cf)
			if err != nil {
				return fmt.Errorf("lowering %s: %w", classfile, err)
			}

			outPath := classfile + ".bali.out"
			if err := os.WriteFile(outPath, image.Bytes, 0644); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}

			if output {
				if err := bake.WriteHexDump(os.Stdout, image.Bytes); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&classfile, "classfile", "", "path to the input class file")
	cmd.Flags().BoolVar(&output, "output", false, "print a hex dump of the assembled image")
	cmd.MarkFlagRequired("classfile")

	return cmd
}
