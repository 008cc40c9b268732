// Package session implements function editing: selecting, creating, saving
// and deleting named functions, and plotting the text being edited.
package session

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/xgraphix/internal/expression"
	"github.com/Faultbox/xgraphix/internal/library"
	"github.com/Faultbox/xgraphix/internal/logger"
	"github.com/Faultbox/xgraphix/internal/plotter"
	"github.com/Faultbox/xgraphix/internal/surface"
)

// State is the editing mode.
type State int

const (
	Idle State = iota
	EditingExisting
	EditingNew
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case EditingExisting:
		return "editing-existing"
	case EditingNew:
		return "editing-new"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Kind classifies a notification.
type Kind int

const (
	Success Kind = iota
	Info
	Warning
	Failure
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Info:
		return "info"
	case Warning:
		return "warning"
	default:
		return "error"
	}
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(message string) bool
}

// Notifier shows a short message to the user.
type Notifier interface {
	Notify(kind Kind, message string)
}

// Surface is the plot the session drives.
type Surface interface {
	UpdateSurface(eval surface.Evaluator, xMin, xMax, yMin, yMax float64) (plotter.UpdateResult, error)
}

// Compiler turns function text into an evaluator.
type Compiler func(d expression.Dialect, src string) (surface.Evaluator, error)

var (
	ErrCancelled       = errors.New("cancelled")
	ErrNoSelection     = errors.New("no function selected")
	ErrEmptyFunction   = errors.New("no function entered")
	ErrDomain          = errors.New("minimum values must be less than maximum values")
	ErrInvalidFunction = errors.New("invalid function")
)

// NewFunctionDomain is the domain shown when starting a new function.
var NewFunctionDomain = surface.Domain{XMin: -5, XMax: 5, YMin: -5, YMax: 5}

// Config wires a Session to its collaborators.
type Config struct {
	Surface  Surface
	Library  *library.Store
	Confirm  Confirmer
	Notify   Notifier
	Compiler Compiler           // nil means expression.Compile
	Dialect  expression.Dialect // empty means expression.Auto
}

// Session is the editing state machine. Like the plotter it drives, it is
// used from a single goroutine.
type Session struct {
	surface Surface
	store   *library.Store
	confirm Confirmer
	notify  Notifier
	compile Compiler
	log     *zap.Logger

	state    State
	selected string
	text     string
	domain   surface.Domain
	dialect  expression.Dialect

	// Text and resolved dialect of the surface last committed by Plot.
	plotted        string
	plottedDialect expression.Dialect
}

// New creates an idle session.
func New(cfg Config) *Session {
	s := &Session{
		surface: cfg.Surface,
		store:   cfg.Library,
		confirm: cfg.Confirm,
		notify:  cfg.Notify,
		compile: cfg.Compiler,
		dialect: cfg.Dialect,
		log:     logger.Named("session"),
		domain:  NewFunctionDomain,
	}
	if s.compile == nil {
		s.compile = expression.Compile
	}
	if s.dialect == "" {
		s.dialect = expression.Auto
	}
	return s
}

// State returns the editing mode.
func (s *Session) State() State { return s.state }

// Selected returns the name of the selected function, if any.
func (s *Session) Selected() string { return s.selected }

// Text returns the function text being edited.
func (s *Session) Text() string { return s.text }

// Plotted returns the text and resolved dialect of the committed surface.
// The text is empty after New.
func (s *Session) Plotted() (string, expression.Dialect) {
	return s.plotted, s.plottedDialect
}

// Domain returns the domain being edited.
func (s *Session) Domain() surface.Domain { return s.domain }

// Dialect returns the dialect used to compile edited text.
func (s *Session) Dialect() expression.Dialect { return s.dialect }

// SetDialect changes the dialect for later plots.
func (s *Session) SetDialect(d expression.Dialect) { s.dialect = d }

// Library returns the function store.
func (s *Session) Library() *library.Store { return s.store }

func displayName(f library.Function) string {
	if f.Builtin {
		return "★ " + f.Name
	}
	return f.Name
}

// Select loads a default or saved function after confirmation and plots it.
func (s *Session) Select(name string) error {
	f, ok := s.store.Get(name)
	if !ok {
		s.notify.Notify(Failure, fmt.Sprintf("Function %q not found.", name))
		return fmt.Errorf("select %q: %w", name, library.ErrNotFound)
	}

	dn := displayName(f)
	if !s.confirm.Confirm(fmt.Sprintf("Load function %q? This will replace your current function and settings.", dn)) {
		return ErrCancelled
	}

	s.state = EditingExisting
	s.selected = f.Name
	// A missing or unknown dialect is detected from the text.
	d, err := expression.ParseDialect(f.Dialect)
	if err != nil {
		d = expression.Auto
	}
	s.dialect = d
	s.log.Debug("function selected", zap.String("name", f.Name), zap.Stringer("state", s.state))

	if err := s.Plot(f.Text, f.Domain()); err != nil {
		return err
	}
	s.notify.Notify(Success, fmt.Sprintf("Function %q loaded.", dn))
	return nil
}

// New clears the editor and shows a flat surface on NewFunctionDomain.
func (s *Session) New() error {
	s.state = EditingNew
	s.selected = ""
	s.text = ""
	s.domain = NewFunctionDomain

	d := NewFunctionDomain
	if _, err := s.surface.UpdateSurface(surface.Zero, d.XMin, d.XMax, d.YMin, d.YMax); err != nil {
		return fmt.Errorf("new function: %w", err)
	}
	s.plotted, s.plottedDialect = "", expression.Expr
	s.notify.Notify(Info, "Ready to create a new function.")
	return nil
}

// Plot validates the domain, compiles text, probes it once at the domain
// center and then updates the surface exactly once. The editor keeps text
// and domain even when plotting fails.
func (s *Session) Plot(text string, d surface.Domain) error {
	s.text = text
	s.domain = d

	if err := d.Validate(); err != nil {
		s.notify.Notify(Failure, "Minimum values must be less than maximum values.")
		return fmt.Errorf("%w: %w", ErrDomain, err)
	}

	eval, err := s.compile(s.dialect, text)
	if err != nil {
		return s.reject(err)
	}
	cx, cy := d.Center()
	if _, err := surface.Probe(eval, cx, cy); err != nil {
		return s.reject(err)
	}

	res, err := s.surface.UpdateSurface(eval, d.XMin, d.XMax, d.YMin, d.YMax)
	if err != nil {
		s.notify.Notify(Failure, err.Error())
		return fmt.Errorf("plot: %w", err)
	}
	s.plotted, s.plottedDialect = text, s.dialect.Resolve(text)

	switch {
	case res.TotalFailure():
		return s.reject(res.Failures.Items()[0].Err)
	case res.Degraded():
		s.notify.Notify(Warning, fmt.Sprintf("%d of %d points could not be evaluated and are drawn at zero.",
			res.Failures.Len(), res.Vertices))
	}
	return nil
}

// Replot plots the current editor contents.
func (s *Session) Replot() error {
	return s.Plot(s.text, s.domain)
}

func (s *Session) reject(cause error) error {
	s.notify.Notify(Failure, "Invalid function: "+cause.Error())
	s.log.Debug("function rejected", zap.Error(cause))
	return fmt.Errorf("%w: %w", ErrInvalidFunction, cause)
}

// Save stores the edited function. In EditingNew it saves under name, asking
// before overwriting; otherwise it replaces the selected function after
// confirmation. A successful save returns to Idle.
func (s *Session) Save(name string) error {
	if s.text == "" {
		s.notify.Notify(Failure, "Please enter a function first.")
		return ErrEmptyFunction
	}

	f := library.Function{
		Text:    s.text,
		Dialect: string(s.dialect.Resolve(s.text)),
		XMin:    s.domain.XMin,
		XMax:    s.domain.XMax,
		YMin:    s.domain.YMin,
		YMax:    s.domain.YMax,
	}

	var verb string
	if s.state == EditingNew {
		f.Name = strings.TrimSpace(name)
		if f.Name == "" {
			s.notify.Notify(Failure, "Function name cannot be empty.")
			return library.ErrEmptyName
		}
		if s.store.Exists(f.Name) && !s.confirm.Confirm(fmt.Sprintf("Function %q already exists. Replace it?", f.Name)) {
			return ErrCancelled
		}
		verb = "saved successfully"
	} else {
		if s.selected == "" {
			s.notify.Notify(Failure, "Please select a function to modify first.")
			return ErrNoSelection
		}
		f.Name = s.selected
		if !s.confirm.Confirm(fmt.Sprintf("Replace function %q with current function and settings?", f.Name)) {
			return ErrCancelled
		}
		verb = "updated successfully"
	}

	if err := s.store.Put(f); err != nil {
		if errors.Is(err, library.ErrProtected) {
			s.notify.Notify(Warning, "Cannot modify built-in functions.")
		} else {
			s.notify.Notify(Failure, err.Error())
		}
		return fmt.Errorf("save %q: %w", f.Name, err)
	}

	s.state = Idle
	s.selected = f.Name
	s.notify.Notify(Success, fmt.Sprintf("Function %q %s.", f.Name, verb))
	s.log.Info("function saved", zap.String("name", f.Name), zap.String("path", s.store.Path()))
	return nil
}

// Delete removes a saved function after confirmation. An empty name means
// the selected function.
func (s *Session) Delete(name string) error {
	if name == "" {
		name = s.selected
	}
	if name == "" {
		s.notify.Notify(Failure, "Please select a function to delete.")
		return ErrNoSelection
	}
	if library.IsDefault(name) {
		s.notify.Notify(Warning, "Cannot delete built-in functions.")
		return fmt.Errorf("delete %q: %w", name, library.ErrProtected)
	}
	if !s.confirm.Confirm(fmt.Sprintf("Are you sure you want to delete %q?", name)) {
		return ErrCancelled
	}

	if err := s.store.Delete(name); err != nil {
		s.notify.Notify(Failure, err.Error())
		return fmt.Errorf("delete %q: %w", name, err)
	}
	if s.selected == name {
		s.selected = ""
	}
	s.notify.Notify(Success, fmt.Sprintf("Function %q deleted.", name))
	return nil
}
