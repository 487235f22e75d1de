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

func newConstsCmd() *cobra.Command {
	var classfile string

	cmd := &cobra.Command{
		Use:   "consts",
		Short: "Prints the projected constant pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := bake.Open(classfile, &bake.Options{Logger: newLogger()})
			if err != nil {
				return fmt.Errorf("opening %s: %w", classfile, err)
			}
			defer cf.Close()

			return cf.PrintConstants(os.Stdout)
		},
	}

	cmd.Flags().StringVar(&classfile, "classfile", "", "path to the input class file")
	cmd.MarkFlagRequired("classfile")

	return cmd
}
