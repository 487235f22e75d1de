// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nyando/bake"
)

func newTestfileCmd() *cobra.Command {
	var classfile string

	cmd := &cobra.Command{
		Use:   "testfile",
		Short: "Writes <path>.mem, the image as space-separated hex bytes",
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

			var sb strings.Builder
			for _, b := range image.Bytes {
				fmt.Fprintf(&sb, "%02x ", b)
			}

			outPath := classfile + ".mem"
			if err := os.WriteFile(outPath, []byte(sb.String()), 0644); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&classfile, "classfile", "", "path to the input class file")
	cmd.MarkFlagRequired("classfile")

	return cmd
}
