// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qdd

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// The binary and text formats both describe a diagram bottom-up: one
// record per node, in an order where every child index refers to a
// record already emitted. A child index of -1 means the terminal, -2
// means the structural zero edge; any other non-negative index refers to
// an earlier record in the same stream. Both formats are selected by the
// binaryFormat flag on the four public entry points below (SPEC_FULL.md
// §6: "serialize / deserialize | stream, binary flag | written bytes /
// edge"); the wire content is otherwise the same between kinds, just
// binary-packed vs. line-oriented.

const (
	childTerminal = -1
	childZero     = -2
)

// SerializeVector writes v in either the versioned binary format or the
// versioned text format described in SPEC_FULL.md §6, selected by
// binaryFormat.
func (pkg *Package) SerializeVector(w io.Writer, e vEdge, n int, binaryFormat bool) error {
	if binaryFormat {
		return pkg.serializeVectorBinary(w, e, n)
	}
	return pkg.serializeVectorText(w, e, n)
}

// DeserializeVector reads back a diagram written by SerializeVector in the
// matching format.
func (pkg *Package) DeserializeVector(r io.Reader, binaryFormat bool) (vEdge, int, error) {
	if binaryFormat {
		return pkg.deserializeVectorBinary(r)
	}
	return pkg.deserializeVectorText(r)
}

// SerializeMatrix is SerializeVector's matrix counterpart: same record
// shape, radix 4 per node instead of radix 2.
func (pkg *Package) SerializeMatrix(w io.Writer, e mEdge, n int, binaryFormat bool) error {
	if binaryFormat {
		return pkg.serializeMatrixBinary(w, e, n)
	}
	return pkg.serializeMatrixText(w, e, n)
}

// DeserializeMatrix reads back a diagram written by SerializeMatrix in the
// matching format.
func (pkg *Package) DeserializeMatrix(r io.Reader, binaryFormat bool) (mEdge, int, error) {
	if binaryFormat {
		return pkg.deserializeMatrixBinary(r)
	}
	return pkg.deserializeMatrixText(r)
}

// ---------------------------------------------------------------------
// Vector, binary.

func (pkg *Package) serializeVectorBinary(w io.Writer, e vEdge, n int) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, serializationVersion); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, int64(n)); err != nil {
		return err
	}
	index := make(map[*vNode]int64)
	var order []*vNode
	var walk func(e vEdge)
	walk = func(e vEdge) {
		if e.isZero() || e.isTerminal() {
			return
		}
		if _, ok := index[e.p]; ok {
			return
		}
		walk(e.p.e[0])
		walk(e.p.e[1])
		index[e.p] = int64(len(order))
		order = append(order, e.p)
	}
	walk(e)
	if err := binary.Write(bw, binary.LittleEndian, int64(len(order))); err != nil {
		return err
	}
	childIndex := func(c vEdge) int64 {
		if c.isZero() {
			return childZero
		}
		if c.isTerminal() {
			return childTerminal
		}
		return index[c.p]
	}
	for _, node := range order {
		if err := binary.Write(bw, binary.LittleEndian, int8(node.v)); err != nil {
			return err
		}
		for _, c := range node.e {
			re, im := c.w.value()
			if err := binary.Write(bw, binary.LittleEndian, childIndex(c)); err != nil {
				return err
			}
			if err := binary.Write(bw, binary.LittleEndian, re); err != nil {
				return err
			}
			if err := binary.Write(bw, binary.LittleEndian, im); err != nil {
				return err
			}
		}
	}
	if err := binary.Write(bw, binary.LittleEndian, childIndex(e)); err != nil {
		return err
	}
	re, im := e.w.value()
	if err := binary.Write(bw, binary.LittleEndian, re); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, im); err != nil {
		return err
	}
	return bw.Flush()
}

func (pkg *Package) deserializeVectorBinary(r io.Reader) (vEdge, int, error) {
	var version float64
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return vEdge{}, 0, err
	}
	if version != serializationVersion {
		return vEdge{}, 0, FormatError{Msg: fmt.Sprintf("unsupported version %v", version)}
	}
	var n64 int64
	if err := binary.Read(r, binary.LittleEndian, &n64); err != nil {
		return vEdge{}, 0, err
	}
	var count int64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return vEdge{}, 0, err
	}
	nodes := make([]*vNode, count)
	for i := int64(0); i < count; i++ {
		var lvl int8
		if err := binary.Read(r, binary.LittleEndian, &lvl); err != nil {
			return vEdge{}, 0, err
		}
		var children [2]vEdge
		for k := 0; k < 2; k++ {
			var childIdx int64
			var re, im float64
			if err := binary.Read(r, binary.LittleEndian, &childIdx); err != nil {
				return vEdge{}, 0, err
			}
			if err := binary.Read(r, binary.LittleEndian, &re); err != nil {
				return vEdge{}, 0, err
			}
			if err := binary.Read(r, binary.LittleEndian, &im); err != nil {
				return vEdge{}, 0, err
			}
			children[k] = pkg.resolveVChild(childIdx, nodes, re, im)
		}
		res := pkg.normalizeVector(qubit(lvl), children[0], children[1])
		nodes[i] = res.p
	}
	var rootIdx int64
	var re, im float64
	if err := binary.Read(r, binary.LittleEndian, &rootIdx); err != nil {
		return vEdge{}, 0, err
	}
	if err := binary.Read(r, binary.LittleEndian, &re); err != nil {
		return vEdge{}, 0, err
	}
	if err := binary.Read(r, binary.LittleEndian, &im); err != nil {
		return vEdge{}, 0, err
	}
	root := pkg.resolveVChild(rootIdx, nodes, re, im)
	return root, int(n64), nil
}

func (pkg *Package) resolveVChild(idx int64, nodes []*vNode, re, im float64) vEdge {
	w := pkg.internComplex(re, im)
	switch idx {
	case childZero:
		return vZero
	case childTerminal:
		return vEdge{p: vTerminal, w: w}
	default:
		return vEdge{p: nodes[idx], w: w}
	}
}

// ---------------------------------------------------------------------
// Vector, text. Line 1 the version, line 2 the qubit count, line 3 the
// root edge (child index and weight), then one line per node:
// "nodeIdx qubit childIdx0 weight0 childIdx1 weight1" (SPEC_FULL.md §6).

func (pkg *Package) serializeVectorText(w io.Writer, e vEdge, n int) error {
	bw := bufio.NewWriter(w)
	index := make(map[*vNode]int64)
	var order []*vNode
	var walk func(e vEdge)
	walk = func(e vEdge) {
		if e.isZero() || e.isTerminal() {
			return
		}
		if _, ok := index[e.p]; ok {
			return
		}
		walk(e.p.e[0])
		walk(e.p.e[1])
		index[e.p] = int64(len(order))
		order = append(order, e.p)
	}
	walk(e)
	childIndex := func(c vEdge) int64 {
		if c.isZero() {
			return childZero
		}
		if c.isTerminal() {
			return childTerminal
		}
		return index[c.p]
	}
	if _, err := fmt.Fprintln(bw, formatVersion()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(bw, n); err != nil {
		return err
	}
	re, im := e.w.value()
	if _, err := fmt.Fprintf(bw, "%d %s\n", childIndex(e), formatComplex(complex(re, im))); err != nil {
		return err
	}
	for i, node := range order {
		line := fmt.Sprintf("%d %d", i, node.v)
		for _, c := range node.e {
			cre, cim := c.w.value()
			line += fmt.Sprintf(" %d %s", childIndex(c), formatComplex(complex(cre, cim)))
		}
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (pkg *Package) deserializeVectorText(r io.Reader) (vEdge, int, error) {
	sc := bufio.NewScanner(r)
	version, err := readVersionLine(sc)
	if err != nil {
		return vEdge{}, 0, err
	}
	if version != serializationVersion {
		return vEdge{}, 0, FormatError{Msg: fmt.Sprintf("unsupported version %v", version)}
	}
	n, err := readIntLine(sc, "qubit count")
	if err != nil {
		return vEdge{}, 0, err
	}
	rootIdx, rootWeight, err := readRootLine(sc)
	if err != nil {
		return vEdge{}, 0, err
	}
	var nodes []*vNode
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 6 {
			return vEdge{}, 0, FormatError{Msg: "malformed vector node line: " + line}
		}
		idx, lvl, err := parseNodeHeader(fields)
		if err != nil {
			return vEdge{}, 0, err
		}
		if idx != int64(len(nodes)) {
			return vEdge{}, 0, FormatError{Msg: "out-of-order node index in text stream: " + line}
		}
		var children [2]vEdge
		for k := 0; k < 2; k++ {
			childIdx, w, err := parseChildField(fields[2+2*k], fields[3+2*k])
			if err != nil {
				return vEdge{}, 0, err
			}
			children[k] = pkg.resolveVChild(childIdx, nodes, real(w), imag(w))
		}
		res := pkg.normalizeVector(qubit(lvl), children[0], children[1])
		nodes = append(nodes, res.p)
	}
	if err := sc.Err(); err != nil {
		return vEdge{}, 0, err
	}
	root := pkg.resolveVChild(rootIdx, nodes, real(rootWeight), imag(rootWeight))
	return root, n, nil
}

// ---------------------------------------------------------------------
// Matrix, binary. Mirrors the vector layout at radix 4.

func (pkg *Package) serializeMatrixBinary(w io.Writer, e mEdge, n int) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, serializationVersion); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, int64(n)); err != nil {
		return err
	}
	index := make(map[*mNode]int64)
	var order []*mNode
	var walk func(e mEdge)
	walk = func(e mEdge) {
		if e.isZero() || e.isTerminal() {
			return
		}
		if _, ok := index[e.p]; ok {
			return
		}
		for _, c := range e.p.e {
			walk(c)
		}
		index[e.p] = int64(len(order))
		order = append(order, e.p)
	}
	walk(e)
	if err := binary.Write(bw, binary.LittleEndian, int64(len(order))); err != nil {
		return err
	}
	childIndex := func(c mEdge) int64 {
		if c.isZero() {
			return childZero
		}
		if c.isTerminal() {
			return childTerminal
		}
		return index[c.p]
	}
	for _, node := range order {
		if err := binary.Write(bw, binary.LittleEndian, int8(node.v)); err != nil {
			return err
		}
		for _, c := range node.e {
			re, im := c.w.value()
			if err := binary.Write(bw, binary.LittleEndian, childIndex(c)); err != nil {
				return err
			}
			if err := binary.Write(bw, binary.LittleEndian, re); err != nil {
				return err
			}
			if err := binary.Write(bw, binary.LittleEndian, im); err != nil {
				return err
			}
		}
	}
	if err := binary.Write(bw, binary.LittleEndian, childIndex(e)); err != nil {
		return err
	}
	re, im := e.w.value()
	if err := binary.Write(bw, binary.LittleEndian, re); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, im); err != nil {
		return err
	}
	return bw.Flush()
}

func (pkg *Package) deserializeMatrixBinary(r io.Reader) (mEdge, int, error) {
	var version float64
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return mEdge{}, 0, err
	}
	if version != serializationVersion {
		return mEdge{}, 0, FormatError{Msg: fmt.Sprintf("unsupported version %v", version)}
	}
	var n64 int64
	if err := binary.Read(r, binary.LittleEndian, &n64); err != nil {
		return mEdge{}, 0, err
	}
	var count int64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return mEdge{}, 0, err
	}
	nodes := make([]*mNode, count)
	for i := int64(0); i < count; i++ {
		var lvl int8
		if err := binary.Read(r, binary.LittleEndian, &lvl); err != nil {
			return mEdge{}, 0, err
		}
		var children [4]mEdge
		for k := 0; k < 4; k++ {
			var childIdx int64
			var re, im float64
			if err := binary.Read(r, binary.LittleEndian, &childIdx); err != nil {
				return mEdge{}, 0, err
			}
			if err := binary.Read(r, binary.LittleEndian, &re); err != nil {
				return mEdge{}, 0, err
			}
			if err := binary.Read(r, binary.LittleEndian, &im); err != nil {
				return mEdge{}, 0, err
			}
			children[k] = pkg.resolveMChild(childIdx, nodes, re, im)
		}
		res := pkg.normalizeMatrix(qubit(lvl), children[0], children[1], children[2], children[3])
		nodes[i] = res.p
	}
	var rootIdx int64
	var re, im float64
	if err := binary.Read(r, binary.LittleEndian, &rootIdx); err != nil {
		return mEdge{}, 0, err
	}
	if err := binary.Read(r, binary.LittleEndian, &re); err != nil {
		return mEdge{}, 0, err
	}
	if err := binary.Read(r, binary.LittleEndian, &im); err != nil {
		return mEdge{}, 0, err
	}
	root := pkg.resolveMChild(rootIdx, nodes, re, im)
	return root, int(n64), nil
}

func (pkg *Package) resolveMChild(idx int64, nodes []*mNode, re, im float64) mEdge {
	w := pkg.internComplex(re, im)
	switch idx {
	case childZero:
		return mZero
	case childTerminal:
		return mEdge{p: mTerminal, w: w}
	default:
		return mEdge{p: nodes[idx], w: w}
	}
}

// ---------------------------------------------------------------------
// Matrix, text. Same shape as the vector text format, radix 4 per node.

func (pkg *Package) serializeMatrixText(w io.Writer, e mEdge, n int) error {
	bw := bufio.NewWriter(w)
	index := make(map[*mNode]int64)
	var order []*mNode
	var walk func(e mEdge)
	walk = func(e mEdge) {
		if e.isZero() || e.isTerminal() {
			return
		}
		if _, ok := index[e.p]; ok {
			return
		}
		for _, c := range e.p.e {
			walk(c)
		}
		index[e.p] = int64(len(order))
		order = append(order, e.p)
	}
	walk(e)
	childIndex := func(c mEdge) int64 {
		if c.isZero() {
			return childZero
		}
		if c.isTerminal() {
			return childTerminal
		}
		return index[c.p]
	}
	if _, err := fmt.Fprintln(bw, formatVersion()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(bw, n); err != nil {
		return err
	}
	re, im := e.w.value()
	if _, err := fmt.Fprintf(bw, "%d %s\n", childIndex(e), formatComplex(complex(re, im))); err != nil {
		return err
	}
	for i, node := range order {
		line := fmt.Sprintf("%d %d", i, node.v)
		for _, c := range node.e {
			cre, cim := c.w.value()
			line += fmt.Sprintf(" %d %s", childIndex(c), formatComplex(complex(cre, cim)))
		}
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (pkg *Package) deserializeMatrixText(r io.Reader) (mEdge, int, error) {
	sc := bufio.NewScanner(r)
	version, err := readVersionLine(sc)
	if err != nil {
		return mEdge{}, 0, err
	}
	if version != serializationVersion {
		return mEdge{}, 0, FormatError{Msg: fmt.Sprintf("unsupported version %v", version)}
	}
	n, err := readIntLine(sc, "qubit count")
	if err != nil {
		return mEdge{}, 0, err
	}
	rootIdx, rootWeight, err := readRootLine(sc)
	if err != nil {
		return mEdge{}, 0, err
	}
	var nodes []*mNode
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 10 {
			return mEdge{}, 0, FormatError{Msg: "malformed matrix node line: " + line}
		}
		idx, lvl, err := parseNodeHeader(fields)
		if err != nil {
			return mEdge{}, 0, err
		}
		if idx != int64(len(nodes)) {
			return mEdge{}, 0, FormatError{Msg: "out-of-order node index in text stream: " + line}
		}
		var children [4]mEdge
		for k := 0; k < 4; k++ {
			childIdx, w, err := parseChildField(fields[2+2*k], fields[3+2*k])
			if err != nil {
				return mEdge{}, 0, err
			}
			children[k] = pkg.resolveMChild(childIdx, nodes, real(w), imag(w))
		}
		res := pkg.normalizeMatrix(qubit(lvl), children[0], children[1], children[2], children[3])
		nodes = append(nodes, res.p)
	}
	if err := sc.Err(); err != nil {
		return mEdge{}, 0, err
	}
	root := pkg.resolveMChild(rootIdx, nodes, real(rootWeight), imag(rootWeight))
	return root, n, nil
}

// ---------------------------------------------------------------------
// Shared text-format line parsing.

func formatVersion() string { return strconv.FormatFloat(serializationVersion, 'g', -1, 64) }

func readVersionLine(sc *bufio.Scanner) (float64, error) {
	if !sc.Scan() {
		return 0, firstOf(sc.Err(), io.ErrUnexpectedEOF)
	}
	line := strings.TrimSpace(sc.Text())
	v, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return 0, FormatError{Msg: "invalid version line: " + line}
	}
	return v, nil
}

func readIntLine(sc *bufio.Scanner, what string) (int, error) {
	if !sc.Scan() {
		return 0, firstOf(sc.Err(), io.ErrUnexpectedEOF)
	}
	line := strings.TrimSpace(sc.Text())
	v, err := strconv.Atoi(line)
	if err != nil {
		return 0, FormatError{Msg: "invalid " + what + " line: " + line}
	}
	return v, nil
}

func readRootLine(sc *bufio.Scanner) (int64, complex128, error) {
	if !sc.Scan() {
		return 0, 0, firstOf(sc.Err(), io.ErrUnexpectedEOF)
	}
	line := strings.TrimSpace(sc.Text())
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, FormatError{Msg: "malformed root edge line: " + line}
	}
	idx, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, 0, FormatError{Msg: "invalid root child index: " + fields[0]}
	}
	w, err := parseComplex(fields[1])
	if err != nil {
		return 0, 0, err
	}
	return idx, w, nil
}

func parseNodeHeader(fields []string) (idx, lvl int64, err error) {
	idx, err = strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, 0, FormatError{Msg: "invalid node index: " + fields[0]}
	}
	lvl, err = strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0, 0, FormatError{Msg: "invalid qubit level: " + fields[1]}
	}
	return idx, lvl, nil
}

func parseChildField(idxField, weightField string) (int64, complex128, error) {
	idx, err := strconv.ParseInt(idxField, 10, 64)
	if err != nil {
		return 0, 0, FormatError{Msg: "invalid child index: " + idxField}
	}
	w, err := parseComplex(weightField)
	if err != nil {
		return 0, 0, err
	}
	return idx, w, nil
}

func firstOf(err, fallback error) error {
	if err != nil {
		return err
	}
	return fallback
}

// parseComplex parses the compact "a+bi" / "a-bi" / "a" / "bi" text form
// used by the reference ComplexValue::from_string helper, supplemented
// here as the text serialization format's scalar grammar (SPEC_FULL.md
// §2.3).
func parseComplex(s string) (complex128, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, FormatError{Msg: "empty complex literal"}
	}
	if !strings.ContainsAny(s, "iI") {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, FormatError{Msg: "invalid real literal: " + s}
		}
		return complex(v, 0), nil
	}
	body := strings.TrimSuffix(strings.TrimSuffix(s, "i"), "I")
	splitAt := -1
	for i := len(body) - 1; i > 0; i-- {
		if (body[i] == '+' || body[i] == '-') && body[i-1] != 'e' && body[i-1] != 'E' {
			splitAt = i
			break
		}
	}
	if splitAt < 0 {
		im, err := strconv.ParseFloat(body, 64)
		if err != nil {
			return 0, FormatError{Msg: "invalid imaginary literal: " + s}
		}
		return complex(0, im), nil
	}
	reStr, imStr := body[:splitAt], body[splitAt:]
	re, err := strconv.ParseFloat(reStr, 64)
	if err != nil {
		return 0, FormatError{Msg: "invalid real part: " + s}
	}
	if imStr == "+" {
		imStr = "1"
	} else if imStr == "-" {
		imStr = "-1"
	}
	im, err := strconv.ParseFloat(imStr, 64)
	if err != nil {
		return 0, FormatError{Msg: "invalid imaginary part: " + s}
	}
	return complex(re, im), nil
}

// formatComplex is parseComplex's inverse, used by the text dumpers.
func formatComplex(c complex128) string {
	re, im := real(c), imag(c)
	if im == 0 {
		return strconv.FormatFloat(re, 'g', -1, 64)
	}
	if re == 0 {
		return strconv.FormatFloat(im, 'g', -1, 64) + "i"
	}
	sign := "+"
	if im < 0 {
		sign = ""
	}
	return fmt.Sprintf("%s%s%si", strconv.FormatFloat(re, 'g', -1, 64), sign, strconv.FormatFloat(im, 'g', -1, 64))
}
