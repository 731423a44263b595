package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/kdgo/kdtree"
)

// NullLine marks an absent child.
const NullLine = "NULL"

// maxLineSize bounds a single node line.
const maxLineSize = 32 << 20

// Encode writes t to w in pre-order.
func Encode(w io.Writer, t *kdtree.Tree) error {
	bw := bufio.NewWriter(w)

	// nil entries stand for absent children.
	stack := []*kdtree.Node{t.Root()}
	buf := make([]byte, 0, 64)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n == nil {
			if _, err := bw.WriteString(NullLine + "\n"); err != nil {
				return err
			}
			continue
		}

		buf = appendNode(buf[:0], n)
		if _, err := bw.Write(buf); err != nil {
			return err
		}
		stack = append(stack, n.Right, n.Left)
	}

	return bw.Flush()
}

func appendNode(buf []byte, n *kdtree.Node) []byte {
	for _, c := range n.Point.Coords {
		buf = strconv.AppendInt(buf, c, 10)
		buf = append(buf, ',')
	}
	buf = strconv.AppendInt(buf, int64(n.Point.Index), 10)
	buf = append(buf, ',')
	buf = strconv.AppendInt(buf, int64(n.Axis), 10)
	return append(buf, '\n')
}

// Decode reads a tree written by Encode.
//
// Trailing blank lines are ignored; any other content after the last node is
// an error.
func Decode(r io.Reader) (*kdtree.Tree, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	d := &decoder{sc: sc}
	root, err := d.decode()
	if err != nil {
		return nil, err
	}

	tree, err := kdtree.NewTree(root)
	if err != nil {
		return nil, &ParseError{Reason: "inconsistent tree", cause: err}
	}
	return tree, nil
}

type decoder struct {
	sc   *bufio.Scanner
	line int
	dims int
}

// next returns the next trimmed line; ok is false at end of input.
func (d *decoder) next() (text string, ok bool, err error) {
	if !d.sc.Scan() {
		if err := d.sc.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				return "", false, &ParseError{Line: d.line + 1, Reason: "line too long", cause: err}
			}
			return "", false, err
		}
		return "", false, nil
	}
	d.line++
	return strings.TrimSpace(d.sc.Text()), true, nil
}

func (d *decoder) decode() (*kdtree.Node, error) {
	text, ok, err := d.next()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &ParseError{Reason: "empty input"}
	}
	if text == NullLine {
		return nil, &ParseError{Line: d.line, Text: text, Reason: "root cannot be NULL"}
	}

	root, err := d.parseRoot(text)
	if err != nil {
		return nil, err
	}

	// Pending child slots, left on top so that pre-order is preserved.
	stack := []**kdtree.Node{&root.Right, &root.Left}
	for len(stack) > 0 {
		slot := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		text, ok, err := d.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &ParseError{Reason: fmt.Sprintf("unexpected end of input after line %d", d.line)}
		}
		if text == NullLine {
			continue
		}

		n, err := d.parseNode(text)
		if err != nil {
			return nil, err
		}
		*slot = n
		stack = append(stack, &n.Right, &n.Left)
	}

	for {
		text, ok, err := d.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return root, nil
		}
		if text != "" {
			return nil, &ParseError{Line: d.line, Text: text, Reason: "trailing data after tree"}
		}
	}
}

func (d *decoder) parseRoot(text string) (*kdtree.Node, error) {
	fields := strings.Split(text, ",")
	if len(fields) < 3 {
		return nil, &ParseError{Line: d.line, Text: text, Reason: "expected coordinates, index and axis"}
	}
	d.dims = len(fields) - 2
	return d.parseFields(text, fields)
}

func (d *decoder) parseNode(text string) (*kdtree.Node, error) {
	fields := strings.Split(text, ",")
	if len(fields) != d.dims+2 {
		return nil, &ParseError{
			Line:   d.line,
			Text:   text,
			Reason: fmt.Sprintf("expected %d fields, got %d", d.dims+2, len(fields)),
		}
	}
	return d.parseFields(text, fields)
}

func (d *decoder) parseFields(text string, fields []string) (*kdtree.Node, error) {
	coords := make([]int64, d.dims)
	for i := range coords {
		v, err := strconv.ParseInt(strings.TrimSpace(fields[i]), 10, 64)
		if err != nil {
			return nil, &ParseError{Line: d.line, Text: text, Reason: fmt.Sprintf("invalid coordinate %d", i), cause: err}
		}
		coords[i] = v
	}

	index, err := strconv.Atoi(strings.TrimSpace(fields[d.dims]))
	if err != nil {
		return nil, &ParseError{Line: d.line, Text: text, Reason: "invalid index", cause: err}
	}
	if index < 0 {
		return nil, &ParseError{Line: d.line, Text: text, Reason: "negative index"}
	}

	axis, err := strconv.Atoi(strings.TrimSpace(fields[d.dims+1]))
	if err != nil {
		return nil, &ParseError{Line: d.line, Text: text, Reason: "invalid axis", cause: err}
	}
	if axis < 0 || axis >= d.dims {
		return nil, &ParseError{Line: d.line, Text: text, Reason: "axis out of range"}
	}

	return &kdtree.Node{
		Point: kdtree.Point{Coords: coords, Index: index},
		Axis:  axis,
	}, nil
}
