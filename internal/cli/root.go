// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package cli implements the evsim command line interface.
package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/db47h/evsim"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	MaxDeltas int
}

// kernelOptions returns the kernel options selected by the global flags.
// Kernel logs go to errOut.
func (o *RootOptions) kernelOptions(errOut io.Writer) []evsim.Option {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))
	return []evsim.Option{
		evsim.WithLogger(l),
		evsim.WithMaxDeltas(o.MaxDeltas),
	}
}

// NewRootCommand creates the root command for the evsim CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "evsim",
		Short:         "Event driven logic simulation demos",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log simulation progress to stderr")
	cmd.PersistentFlags().IntVar(&opts.MaxDeltas, "max-deltas", evsim.DefaultMaxDeltas, "maximum delta cycles per instant")

	cmd.AddCommand(NewHelloCommand(opts))
	cmd.AddCommand(NewConcurrencyCommand(opts))
	cmd.AddCommand(NewPeriodCommand(opts))
	cmd.AddCommand(NewNandCommand(opts))
	cmd.AddCommand(NewGatesCommand(opts))
	cmd.AddCommand(NewDemuxCommand(opts))

	return cmd
}
