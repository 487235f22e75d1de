// Copyright 2026 The Bake Authors. All rights reserved.
// Use of this source code is governed by an Apache v2
// license that can be found in the LICENSE file.

// Command baligen lowers a single JVM class file into a Bali device image
// and drives the supporting inspection and upload subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nyando/bake/log"
)

var verbose bool

func newLogger() log.Logger {
	base := log.NewStdLogger(os.Stderr)
	if verbose {
		return log.NewFilter(base, log.FilterLevel(log.LevelDebug))
	}
	return log.NewFilter(base, log.FilterLevel(log.LevelError))
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "baligen",
		Short: "Lowers JVM class files into Bali device images",
		Long:  "baligen parses a single JVM class file and lowers it into the flat binary image the Bali stack machine runs, or prints an inspection view of the class file's constants and methods.",
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic output")

	rootCmd.AddCommand(
		newConstsCmd(),
		newMethodCmd(),
		newBinaryCmd(),
		newTestfileCmd(),
		newSerialCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
