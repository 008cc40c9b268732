package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/xgraphix/internal/console"
	"github.com/Faultbox/xgraphix/internal/export"
	"github.com/Faultbox/xgraphix/internal/library"
	"github.com/Faultbox/xgraphix/internal/plotter"
	"github.com/Faultbox/xgraphix/internal/session"
)

// keyHelp lists the window key bindings.
const keyHelp = `keys:
  G            toggle ground grid
  N            toggle axis numbers
  W            toggle wireframe
  R, Ctrl+R    reset view
  1-4          load a default function
  Ctrl+N       new function
  Ctrl+S       save function
  E            export surface as DXF
  F12          screenshot
  ?            help
  Esc          quit
mouse:
  left drag    orbit
  right drag   pan
  wheel        zoom`

// App routes console commands and key actions to the session and plotter.
// All methods run on the main loop.
type App struct {
	plot    *plotter.Plotter
	session *session.Session
	notify  session.Notifier
	out     io.Writer
	log     *zap.Logger

	exportDir string

	// Set by the screenshot action; the loop captures after rendering.
	screenshotPending bool
	statusDirty       bool

	// Surface drawing mode; the loop hands it to the renderer.
	wireframe bool

	cursor    plotter.Pick
	hasCursor bool
	quit      bool
}

// Execute runs one console command.
func (a *App) Execute(cmd console.Command) {
	var err error
	a.statusDirty = true

	switch cmd.Op {
	case console.OpPlot:
		d := a.session.Domain()
		if cmd.HasDomain {
			d = cmd.Domain
		}
		err = a.session.Plot(cmd.Text, d)
	case console.OpDomain:
		err = a.session.Plot(a.session.Text(), cmd.Domain)
	case console.OpDialect:
		a.session.SetDialect(cmd.Dialect)
		fmt.Fprintf(a.out, "dialect: %s\n", cmd.Dialect)
	case console.OpSelect:
		err = a.session.Select(cmd.Text)
	case console.OpNew:
		err = a.session.New()
	case console.OpSave:
		err = a.session.Save(cmd.Text)
	case console.OpDelete:
		err = a.session.Delete(cmd.Text)
	case console.OpList:
		a.list()
	case console.OpGrid:
		a.setVisibility(cmd, a.plot.ToggleGrid, a.plot.SetGridVisibility)
	case console.OpNumbers:
		a.setVisibility(cmd, a.plot.ToggleNumbers, a.plot.SetNumbersVisibility)
	case console.OpWireframe:
		a.setVisibility(cmd, a.toggleWireframe, func(on bool) { a.wireframe = on })
	case console.OpReset:
		a.resetView()
	case console.OpExport:
		_, err = a.Export()
	case console.OpScreenshot:
		a.screenshotPending = true
	case console.OpHelp:
		fmt.Fprintln(a.out, console.Help)
		fmt.Fprintln(a.out, keyHelp)
	case console.OpQuit:
		a.quit = true
	}

	a.logResult(cmd.Op, err)
}

func (a *App) setVisibility(cmd console.Command, toggle func() bool, set func(bool)) {
	if cmd.Toggle {
		toggle()
		return
	}
	set(cmd.On)
}

func (a *App) toggleWireframe() bool {
	a.wireframe = !a.wireframe
	return a.wireframe
}

func (a *App) resetView() {
	a.plot.ResetView()
	a.notify.Notify(session.Info, "View reset to default position")
}

// LoadDefault selects the i-th default function (zero based).
func (a *App) LoadDefault(i int) {
	f, ok := library.Default(i)
	if !ok {
		return
	}
	a.logResult(console.OpSelect, a.session.Select(f.Name))
}

// SaveFromKey saves the current function. A new function needs a name,
// which only the console can supply.
func (a *App) SaveFromKey() {
	if a.session.State() == session.EditingNew {
		a.notify.Notify(session.Info, "Type \"save <name>\" in the console to name the new function.")
		return
	}
	a.logResult(console.OpSave, a.session.Save(""))
}

// Export writes the committed surface to a timestamped DXF file.
func (a *App) Export() (string, error) {
	path := export.Filename(a.exportDir, "xgraphix", ".dxf", time.Now())
	if err := export.WriteDXF(path, a.plot.Frame()); err != nil {
		if errors.Is(err, export.ErrNothingToExport) {
			a.notify.Notify(session.Warning, "Nothing to export yet.")
		} else {
			a.notify.Notify(session.Failure, "Export failed: "+err.Error())
		}
		return "", err
	}
	a.notify.Notify(session.Success, "Exported "+path)
	return path, nil
}

func (a *App) list() {
	store := a.session.Library()
	for _, name := range store.Names() {
		f, _ := store.Get(name)
		mark := " "
		if f.Builtin {
			mark = "*"
		}
		if name == a.session.Selected() {
			mark += ">"
		} else {
			mark += " "
		}
		fmt.Fprintf(a.out, "%s %-16s %-36s [%g, %g] x [%g, %g]\n",
			mark, name, f.Text, f.XMin, f.XMax, f.YMin, f.YMax)
	}
}

// StatusLines describes the committed plot for the overlay panel.
func (a *App) StatusLines() []string {
	text, dialect := a.session.Plotted()
	if text == "" {
		text = "0"
	}
	if dialect == "" {
		dialect = a.session.Dialect().Resolve(text)
	}
	lines := []string{
		fmt.Sprintf("f(x, y) = %s   [%s]", text, dialect),
	}
	if edited := a.session.Text(); edited != "" && edited != text {
		lines = append(lines, fmt.Sprintf("not plotted: %s", edited))
	}

	if d, ok := a.plot.Domain(); ok {
		lines = append(lines, fmt.Sprintf("x: [%g, %g]   y: [%g, %g]", d.XMin, d.XMax, d.YMin, d.YMax))
	}

	res := a.plot.LastResult()
	if !res.Range.Empty() {
		lines = append(lines, fmt.Sprintf("z: [%.4g, %.4g]", res.Range.Min, res.Range.Max))
	}
	if res.Degraded() {
		lines = append(lines, fmt.Sprintf("%d of %d points drawn at zero", res.Failures.Len(), res.Vertices))
	}

	if a.hasCursor {
		lines = append(lines, fmt.Sprintf("f(%.3g, %.3g) = %.4g", a.cursor.X, a.cursor.Y, a.cursor.Z))
	}

	name := a.session.Selected()
	if name == "" {
		name = "(unsaved)"
	}
	lines = append(lines, fmt.Sprintf("%s   %s   ? for help", name, a.session.State()))
	return lines
}

// Hover records the surface point under the mouse.
func (a *App) Hover(p plotter.Pick, ok bool) {
	if ok == a.hasCursor && p == a.cursor {
		return
	}
	a.cursor, a.hasCursor = p, ok
	a.statusDirty = true
}

// logResult records command failures. Users already saw the diagnostic, so
// cancellations and session errors only go to the debug log.
func (a *App) logResult(op console.Op, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, session.ErrCancelled) {
		a.log.Debug("cancelled", zap.Int("op", int(op)))
		return
	}
	a.log.Debug("command failed", zap.Int("op", int(op)), zap.Error(err))
}

// report prints a console parse error.
func (a *App) report(r console.Result) {
	msg := r.Err.Error()
	if errors.Is(r.Err, console.ErrUnknownCommand) {
		msg += " (type help)"
	}
	fmt.Fprintln(a.out, strings.TrimSpace(msg))
}
