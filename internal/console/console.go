// Package console parses the line commands typed on standard input.
//
// Lines are read on a separate goroutine and delivered as Commands on a
// channel; the main loop executes them between frames.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/xgraphix/internal/expression"
	"github.com/Faultbox/xgraphix/internal/surface"
)

// Op identifies a console command.
type Op int

const (
	OpPlot Op = iota + 1
	OpDomain
	OpDialect
	OpSelect
	OpNew
	OpSave
	OpDelete
	OpList
	OpGrid
	OpNumbers
	OpWireframe
	OpReset
	OpExport
	OpScreenshot
	OpHelp
	OpQuit
)

var opNames = map[string]Op{
	"plot":       OpPlot,
	"domain":     OpDomain,
	"dialect":    OpDialect,
	"select":     OpSelect,
	"load":       OpSelect,
	"new":        OpNew,
	"save":       OpSave,
	"delete":     OpDelete,
	"list":       OpList,
	"ls":         OpList,
	"grid":       OpGrid,
	"numbers":    OpNumbers,
	"wireframe":  OpWireframe,
	"reset":      OpReset,
	"export":     OpExport,
	"screenshot": OpScreenshot,
	"help":       OpHelp,
	"?":          OpHelp,
	"quit":       OpQuit,
	"exit":       OpQuit,
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
)

// Command is one parsed console line.
type Command struct {
	Op Op

	// Text is the function text for plot, or the name for select, save
	// and delete.
	Text string

	// Domain is set by domain, and by plot when bounds follow the text.
	Domain    surface.Domain
	HasDomain bool

	Dialect expression.Dialect

	// Toggle is set by grid, numbers and wireframe without an argument;
	// otherwise On carries the requested state.
	Toggle bool
	On     bool
}

// Help lists the console commands.
const Help = `commands:
  plot <function> [xmin xmax ymin ymax]   plot a function
  domain <xmin> <xmax> <ymin> <ymax>       replot on a new domain
  dialect expr|lisp|auto                  choose the function syntax
  select <name>                           load a default or saved function
  new                                     start a new function
  save [name]                             save the current function
  delete [name]                           delete a saved function
  list                                    list functions
  grid [on|off]                           show or hide the ground grid
  numbers [on|off]                        show or hide axis numbers
  wireframe [on|off]                      draw the surface as edges or filled
  reset                                   reset the camera
  export                                  write the surface as DXF
  screenshot                              save a PNG of the window
  help                                    show this text
  quit                                    exit`

// Parse parses one line. Blank lines and lines starting with # yield
// (Command{}, nil) with a zero Op.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Command{}, nil
	}

	word, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	op, ok := opNames[strings.ToLower(word)]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, word)
	}
	cmd := Command{Op: op}

	switch op {
	case OpPlot:
		if rest == "" {
			return Command{}, fmt.Errorf("%w: plot <function> [xmin xmax ymin ymax]", ErrUsage)
		}
		cmd.Text, cmd.Domain, cmd.HasDomain = splitTrailingDomain(rest)

	case OpDomain:
		fields := strings.Fields(rest)
		d, ok := parseDomain(fields)
		if !ok {
			return Command{}, fmt.Errorf("%w: domain <xmin> <xmax> <ymin> <ymax>", ErrUsage)
		}
		cmd.Domain, cmd.HasDomain = d, true

	case OpDialect:
		d, err := expression.ParseDialect(rest)
		if err != nil || rest == "" {
			return Command{}, fmt.Errorf("%w: dialect expr|lisp|auto", ErrUsage)
		}
		cmd.Dialect = d

	case OpSelect:
		if rest == "" {
			return Command{}, fmt.Errorf("%w: select <name>", ErrUsage)
		}
		cmd.Text = rest

	case OpSave, OpDelete:
		cmd.Text = rest

	case OpGrid, OpNumbers, OpWireframe:
		switch strings.ToLower(rest) {
		case "":
			cmd.Toggle = true
		case "on", "show", "true", "1":
			cmd.On = true
		case "off", "hide", "false", "0":
			cmd.On = false
		default:
			return Command{}, fmt.Errorf("%w: %s [on|off]", ErrUsage, word)
		}
	}

	return cmd, nil
}

// splitTrailingDomain separates four trailing numbers from function text.
// The bounds are only taken when text remains in front of them.
func splitTrailingDomain(s string) (string, surface.Domain, bool) {
	fields := strings.Fields(s)
	if len(fields) <= 4 {
		return s, surface.Domain{}, false
	}
	d, ok := parseDomain(fields[len(fields)-4:])
	if !ok {
		return s, surface.Domain{}, false
	}
	text := strings.Join(fields[:len(fields)-4], " ")
	return text, d, true
}

// parseDomain reads exactly four numbers. Range checks happen when plotting
// so the user sees the same message as for any other bad domain.
func parseDomain(fields []string) (surface.Domain, bool) {
	if len(fields) != 4 {
		return surface.Domain{}, false
	}
	var v [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return surface.Domain{}, false
		}
		v[i] = n
	}
	return surface.Domain{XMin: v[0], XMax: v[1], YMin: v[2], YMax: v[3]}, true
}

// Result is a parsed line or the error it produced.
type Result struct {
	Line    string
	Command Command
	Err     error
}

// Read scans r line by line and sends each non-empty parse result on out
// until r is exhausted or ctx is done. out is closed on return.
func Read(ctx context.Context, r io.Reader, out chan<- Result) error {
	defer close(out)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		cmd, err := Parse(line)
		if err == nil && cmd.Op == 0 {
			continue
		}
		select {
		case out <- Result{Line: line, Command: cmd, Err: err}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return scanner.Err()
}
