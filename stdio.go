// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
)

// PrintStats writes a textual summary of a package's tables to stdout,
// following rudd's PrintStats layout.
func (pkg *Package) PrintStats() {
	s := pkg.Stats()
	fmt.Println("==============")
	fmt.Printf("Floats:     pop=%d peak=%d hits=%d lookups=%d gc=%d\n",
		s.FloatPopulation, s.FloatPeak, s.FloatHits, s.FloatLookups, s.FloatGCRuns)
	fmt.Println("==============")
	fmt.Printf("Vectors:    nodes=%d peak=%d active=%d gc=%d\n",
		s.VectorNodes, s.VectorPeakNodes, s.VectorActive, s.VectorGCRuns)
	fmt.Printf("Matrices:   nodes=%d peak=%d active=%d gc=%d\n",
		s.MatrixNodes, s.MatrixPeakNodes, s.MatrixActive, s.MatrixGCRuns)
	fmt.Println("==============")
}

// PrintTableVector writes one line per reachable vector node, sorted by
// node level, in the tab-aligned form rudd's stdio.go uses for BDD nodes.
func (pkg *Package) PrintTableVector(w io.Writer, e vEdge) {
	seen := make(map[*vNode]bool)
	var nodes []*vNode
	var walk func(e vEdge)
	walk = func(e vEdge) {
		if e.isZero() || e.isTerminal() || seen[e.p] {
			return
		}
		seen[e.p] = true
		nodes = append(nodes, e.p)
		walk(e.p.e[0])
		walk(e.p.e[1])
	}
	walk(e)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].v < nodes[j].v })
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, n := range nodes {
		fmt.Fprintf(tw, "%p\t[%d]\t? %s\t: %s\n", n, n.v, edgeLabelV(n.e[1]), edgeLabelV(n.e[0]))
	}
	tw.Flush()
}

// PrintTableMatrix is PrintTableVector's matrix analog.
func (pkg *Package) PrintTableMatrix(w io.Writer, e mEdge) {
	seen := make(map[*mNode]bool)
	var nodes []*mNode
	var walk func(e mEdge)
	walk = func(e mEdge) {
		if e.isZero() || e.isTerminal() || seen[e.p] {
			return
		}
		seen[e.p] = true
		nodes = append(nodes, e.p)
		for _, c := range e.p.e {
			walk(c)
		}
	}
	walk(e)
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].v < nodes[j].v })
	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, n := range nodes {
		flags := ""
		if n.symm {
			flags += "S"
		}
		if n.ident {
			flags += "I"
		}
		fmt.Fprintf(tw, "%p\t[%d]%s\t%s %s\t%s %s\n", n, n.v, flags,
			edgeLabel(n.e[0]), edgeLabel(n.e[1]), edgeLabel(n.e[2]), edgeLabel(n.e[3]))
	}
	tw.Flush()
}

func edgeLabel(e mEdge) string {
	if e.isZero() {
		return "0"
	}
	if e.isTerminal() {
		return fmt.Sprintf("(%s)T", formatComplex(complex(e.w.value())))
	}
	return fmt.Sprintf("(%s)%p", formatComplex(complex(e.w.value())), e.p)
}

func edgeLabelV(e vEdge) string {
	if e.isZero() {
		return "0"
	}
	if e.isTerminal() {
		return fmt.Sprintf("(%s)T", formatComplex(complex(e.w.value())))
	}
	return fmt.Sprintf("(%s)%p", formatComplex(complex(e.w.value())), e.p)
}

// PrintDotVector writes a Graphviz dot description of the diagram rooted
// at e to w, one box per node and one edge per branch, weight labels on
// each edge.
func (pkg *Package) PrintDotVector(w io.Writer, e vEdge) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph vector {")
	fmt.Fprintln(bw, "  rankdir=TB;")
	seen := make(map[*vNode]bool)
	var walk func(e vEdge)
	walk = func(e vEdge) {
		if e.isZero() || e.isTerminal() || seen[e.p] {
			return
		}
		seen[e.p] = true
		fmt.Fprintf(bw, "  n%p [label=\"q%d\"];\n", e.p, e.p.v)
		for i, c := range e.p.e {
			if c.isZero() {
				continue
			}
			target := terminalDotName(c.isTerminal(), c.p)
			re, im := c.w.value()
			fmt.Fprintf(bw, "  n%p -> %s [label=\"%s\", style=%s];\n",
				e.p, target, formatComplex(complex(re, im)), dotStyle(i))
			walk(c)
		}
	}
	walk(e)
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func terminalDotName(isTerminal bool, p *vNode) string {
	if isTerminal {
		return "terminal"
	}
	return fmt.Sprintf("n%p", p)
}

func dotStyle(branch int) string {
	if branch == 0 {
		return "solid"
	}
	return "dashed"
}

// FPrintDotVector is PrintDotVector's file-target convenience wrapper,
// following rudd's FPrintAut "-" means stdout convention.
func (pkg *Package) FPrintDotVector(filename string, e vEdge) error {
	var out *os.File
	var err error
	if filename == "-" {
		out = os.Stdout
	} else {
		out, err = os.Create(filename)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	return pkg.PrintDotVector(out, e)
}
