// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command qddctl is a small inspection tool built on top of package qdd:
// it builds a canned state (all-zero or GHZ), prints its table or dot
// representation, and reports table statistics.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dalzilio/qdd"
)

var qubits int

func main() {
	root := &cobra.Command{
		Use:   "qddctl",
		Short: "Inspect decision-diagram states",
	}
	root.PersistentFlags().IntVarP(&qubits, "qubits", "n", 3, "number of qubits")

	root.AddCommand(buildCmd())
	root.AddCommand(inspectCmd())
	root.AddCommand(statsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildCmd() *cobra.Command {
	var state string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a canned state vector and write its dot representation to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg := qdd.New(qubits)
			var e = pkg.ZeroState(qubits)
			switch state {
			case "zero":
				// already built above
			case "ghz":
				e = ghzState(pkg, qubits)
			default:
				return fmt.Errorf("unknown state %q", state)
			}
			return pkg.PrintDotVector(os.Stdout, e)
		},
	}
	cmd.Flags().StringVar(&state, "state", "zero", "state to build: zero, ghz")
	return cmd
}

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Build a GHZ state on --qubits qubits and print its node table",
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg := qdd.New(qubits)
			e := ghzState(pkg, qubits)
			pkg.PrintTableVector(os.Stdout, e)
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Build a GHZ state on --qubits qubits and print table statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg := qdd.New(qubits)
			_ = ghzState(pkg, qubits)
			pkg.PrintStats()
			return nil
		},
	}
}

// ghzState builds the n-qubit GHZ state (|0..0> + |1..1>)/sqrt(2) by
// applying a Hadamard to qubit 0 and a chain of CNOTs, the canonical
// smoke test for a decision-diagram engine's normalization and multiply
// operators.
func ghzState(pkg *qdd.Package, n int) qdd.VEdge {
	h := qdd.Hadamard(pkg, n, 0)
	e := pkg.MultiplyMV(h, pkg.ZeroState(n))
	for target := 1; target < n; target++ {
		cx := qdd.CNOT(pkg, n, 0, qdd.Qubit(target))
		e = pkg.MultiplyMV(cx, e)
	}
	return e
}
