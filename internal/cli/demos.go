// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/db47h/evsim"
	"github.com/db47h/evsim/internal/demo"
)

// NewHelloCommand creates the hello command.
func NewHelloCommand(rootOpts *RootOptions) *cobra.Command {
	var d uint64
	cmd := &cobra.Command{
		Use:   "hello",
		Short: "Print a greeting every 10 time units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return demo.Hello(cmd.Context(), cmd.OutOrStdout(), evsim.Time(d), rootOpts.kernelOptions(cmd.ErrOrStderr())...)
		},
	}
	cmd.Flags().Uint64VarP(&d, "duration", "d", uint64(demo.HelloDuration), "simulation duration")
	return cmd
}

// NewConcurrencyCommand creates the concurrency command.
func NewConcurrencyCommand(rootOpts *RootOptions) *cobra.Command {
	var d uint64
	cmd := &cobra.Command{
		Use:   "concurrency",
		Short: "Print a greeting on every rising edge of a clock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return demo.Concurrency(cmd.Context(), cmd.OutOrStdout(), evsim.Time(d), rootOpts.kernelOptions(cmd.ErrOrStderr())...)
		},
	}
	cmd.Flags().Uint64VarP(&d, "duration", "d", uint64(demo.ConcurrencyDuration), "simulation duration")
	return cmd
}

// NewPeriodCommand creates the period command.
func NewPeriodCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		d       uint64
		periods []uint
	)
	cmd := &cobra.Command{
		Use:   "period",
		Short: "Drive one clock with several clock drivers and greet on falling edges",
		Long: `Drive a single clock signal with one clock driver per period. Each driver
is paired with a process printing a greeting on every falling edge.

Example:
  evsim period --period 5 --period 13 --duration 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ps := make([]evsim.Time, len(periods))
			for i, p := range periods {
				ps[i] = evsim.Time(p)
			}
			return demo.Period(cmd.Context(), cmd.OutOrStdout(), ps, evsim.Time(d), rootOpts.kernelOptions(cmd.ErrOrStderr())...)
		},
	}
	cmd.Flags().Uint64VarP(&d, "duration", "d", uint64(demo.PeriodDuration), "simulation duration")
	cmd.Flags().UintSliceVarP(&periods, "period", "p", []uint{5, 13}, "clock periods")
	return cmd
}

// NewNandCommand creates the nand command.
func NewNandCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "nand",
		Short: "Print the truth table of a NAND gate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return demo.Nand(cmd.Context(), cmd.OutOrStdout(), rootOpts.kernelOptions(cmd.ErrOrStderr())...)
		},
	}
}

// NewGatesCommand creates the gates command.
func NewGatesCommand(rootOpts *RootOptions) *cobra.Command {
	var width uint
	cmd := &cobra.Command{
		Use:       "gates <gate>",
		Short:     "Print the truth table of a gate",
		Long:      "Print the truth table of a gate. Supported gates: " + strings.Join(demo.Gates(), ", ") + ".",
		Args:      cobra.ExactArgs(1),
		ValidArgs: demo.Gates(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return demo.Gate(cmd.Context(), cmd.OutOrStdout(), args[0], width, rootOpts.kernelOptions(cmd.ErrOrStderr())...)
		},
	}
	cmd.Flags().UintVarP(&width, "width", "w", 2, "input width in bits")
	return cmd
}

// NewDemuxCommand creates the demux command.
func NewDemuxCommand(rootOpts *RootOptions) *cobra.Command {
	var width uint
	cmd := &cobra.Command{
		Use:   "demux",
		Short: "Route a value through every output of a demultiplexer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return demo.Demux(cmd.Context(), cmd.OutOrStdout(), width, rootOpts.kernelOptions(cmd.ErrOrStderr())...)
		},
	}
	cmd.Flags().UintVarP(&width, "width", "w", 3, "selector width in bits")
	return cmd
}
