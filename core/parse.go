package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Grammar fragments. Spacing and punctuation are matched exactly.
const (
	tagValve    = "Valve "
	tagFlow     = " has flow rate="
	tagTunnels  = "; tunnels lead to valves "
	tagTunnel   = "; tunnel leads to valve "
	tagLinkSep  = ", "
	nameLength  = 2
	maxLineSize = 1 << 16
)

// ParseError reports a record that could not be parsed.
type ParseError struct {
	// Line is the 1-based line number, or 0 when parsing a lone record.
	Line int

	// Column is the 0-based byte offset where parsing stopped.
	Column int

	// Text is the offending line.
	Text string

	// Reason describes what was expected at Column.
	Reason string

	// Err is ErrMalformedLine or ErrDuplicateValve.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v: line %d, column %d: %s: %q", e.Err, e.Line, e.Column, e.Reason, e.Text)
	}

	return fmt.Sprintf("%v: column %d: %s: %q", e.Err, e.Column, e.Reason, e.Text)
}

// Unwrap returns the sentinel behind e.
func (e *ParseError) Unwrap() error { return e.Err }

// cursor walks one input line; every method consumes on success only.
type cursor struct {
	s   string
	pos int
}

func (c *cursor) rest() string { return c.s[c.pos:] }

// tag consumes lit exactly.
func (c *cursor) tag(lit string) bool {
	if !strings.HasPrefix(c.rest(), lit) {
		return false
	}
	c.pos += len(lit)

	return true
}

// name consumes two uppercase letters.
func (c *cursor) name() (Name, bool) {
	r := c.rest()
	if len(r) < nameLength {
		return Name{}, false
	}
	n := Name{r[0], r[1]}
	if !n.Valid() {
		return Name{}, false
	}
	c.pos += nameLength

	return n, true
}

// uint consumes a run of decimal digits that fits in uint64.
func (c *cursor) uint() (uint64, bool) {
	r := c.rest()
	end := 0
	for end < len(r) && r[end] >= '0' && r[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseUint(r[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	c.pos += end

	return v, true
}

// ParseValve parses a single record. The whole line must be consumed.
func ParseValve(line string) (Valve, error) {
	c := &cursor{s: line}
	fail := func(reason string) (Valve, error) {
		return Valve{}, &ParseError{Column: c.pos, Text: line, Reason: reason, Err: ErrMalformedLine}
	}

	if !c.tag(tagValve) {
		return fail(fmt.Sprintf("expected %q", tagValve))
	}
	name, ok := c.name()
	if !ok {
		return fail("expected valve name")
	}
	if !c.tag(tagFlow) {
		return fail(fmt.Sprintf("expected %q", tagFlow))
	}
	flow, ok := c.uint()
	if !ok {
		return fail("expected flow rate")
	}
	if !c.tag(tagTunnels) && !c.tag(tagTunnel) {
		return fail("expected tunnel clause")
	}

	var links []Name
	for {
		link, ok := c.name()
		if !ok {
			return fail("expected tunnel name")
		}
		links = append(links, link)
		if !c.tag(tagLinkSep) {
			break
		}
	}
	if c.pos != len(line) {
		return fail("unexpected trailing input")
	}

	return Valve{Name: name, Flow: flow, Links: links}, nil
}

// Parse builds a Graph from newline-separated records.
// A trailing newline is allowed; a trailing '\r' on each line is stripped.
func Parse(text string) (*Graph, error) {
	text = strings.TrimSuffix(text, "\n")
	g := NewGraph()
	if text == "" {
		return g, nil
	}
	for i, line := range strings.Split(text, "\n") {
		if err := addLine(g, i+1, strings.TrimSuffix(line, "\r")); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// ParseReader is like Parse but reads records from r.
func ParseReader(r io.Reader) (*Graph, error) {
	g := NewGraph()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		if err := addLine(g, lineNo, sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("core: reading input: %w", err)
	}

	return g, nil
}

// addLine parses one record into g, stamping lineNo on any error.
func addLine(g *Graph, lineNo int, line string) error {
	v, err := ParseValve(line)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Line = lineNo
		}

		return err
	}
	if err = g.AddValve(v); err != nil {
		return &ParseError{Line: lineNo, Column: len(tagValve), Text: line, Reason: "name already defined", Err: ErrDuplicateValve}
	}

	return nil
}
