// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/nyando/bake"
)

func newMethodCmd() *cobra.Command {
	var classfile string

	cmd := &cobra.Command{
		Use:   "method",
		Short: "Disassembles every method (excluding <init>)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := bake.Open(classfile, &bake.Options{Logger: newLogger()})
			if err != nil {
				return fmt.Errorf("opening %s: %w", classfile, err)
			}
			defer cf.Close()

			blocks, err := cf.Codeblocks()
			if err != nil {
				return err
			}

			var keys []bake.MethodKey
			for key := range blocks {
				if key == bake.InitSignature {
					continue
				}
				keys = append(keys, key)
			}
			sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

			for _, key := range keys {
				fmt.Fprintln(os.Stdout, string(key))
				if err := cf.PrintMethod(os.Stdout, key); err != nil {
					return fmt.Errorf("method %s: %w", key, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&classfile, "classfile", "", "path to the input class file")
	cmd.MarkFlagRequired("classfile")

	return cmd
}
